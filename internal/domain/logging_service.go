package domain

import (
	"context"
	"log/slog"

	"github.com/Flarenzy/ipam-engine/internal/ipaddr"
)

type loggingService struct {
	logger *slog.Logger
	next   Service
}

func NewLoggingService(logger *slog.Logger, next Service) Service {
	if logger == nil || next == nil {
		return next
	}

	return &loggingService{
		logger: logger,
		next:   next,
	}
}

func (s *loggingService) ListSubnets(ctx context.Context) ([]Subnet, error) {
	subnets, err := s.next.ListSubnets(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "list subnets failed", "err", err.Error())
	}
	return subnets, err
}

func (s *loggingService) CreateSubnet(ctx context.Context, input CreateSubnetInput) (Subnet, error) {
	subnet, err := s.next.CreateSubnet(ctx, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "create subnet failed", "cidr", input.CIDR, "err", err.Error())
		return Subnet{}, err
	}

	s.logger.InfoContext(ctx, "subnet created", "id", subnet.ID, "cidr", subnet.CIDR())
	return subnet, nil
}

func (s *loggingService) GetSubnet(ctx context.Context, id int64) (Subnet, error) {
	subnet, err := s.next.GetSubnet(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "get subnet failed", "id", id, "err", err.Error())
	}
	return subnet, err
}

func (s *loggingService) DeleteSubnet(ctx context.Context, id int64) error {
	err := s.next.DeleteSubnet(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "delete subnet failed", "id", id, "err", err.Error())
		return err
	}

	s.logger.InfoContext(ctx, "subnet deleted", "id", id)
	return nil
}

func (s *loggingService) ListRecords(ctx context.Context, subnetID int64) ([]AddressRecord, error) {
	records, err := s.next.ListRecords(ctx, subnetID)
	if err != nil {
		s.logger.ErrorContext(ctx, "list records failed", "subnet_id", subnetID, "err", err.Error())
	}
	return records, err
}

func (s *loggingService) Allocate(ctx context.Context, subnetID int64, input AllocateInput) (AddressRecord, error) {
	rec, err := s.next.Allocate(ctx, subnetID, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "allocate failed", "subnet_id", subnetID, "address", input.Address, "err", err.Error())
		return AddressRecord{}, err
	}

	s.logger.InfoContext(ctx, "address allocated", "subnet_id", subnetID, "address", rec.Address.String(), "status", string(rec.Status))
	return rec, nil
}

func (s *loggingService) Release(ctx context.Context, id AddressRecordID) (AddressRecord, error) {
	rec, err := s.next.Release(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "release failed", "record_id", string(id), "err", err.Error())
		return AddressRecord{}, err
	}

	s.logger.InfoContext(ctx, "address released", "record_id", string(id), "address", rec.Address.String())
	return rec, nil
}

func (s *loggingService) UpdateMetadata(ctx context.Context, id AddressRecordID, input UpdateMetadataInput) (AddressRecord, error) {
	rec, err := s.next.UpdateMetadata(ctx, id, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "update metadata failed", "record_id", string(id), "err", err.Error())
	}
	return rec, err
}

func (s *loggingService) ListReservations(ctx context.Context, subnetID int64) ([]Reservation, error) {
	reservations, err := s.next.ListReservations(ctx, subnetID)
	if err != nil {
		s.logger.ErrorContext(ctx, "list reservations failed", "subnet_id", subnetID, "err", err.Error())
	}
	return reservations, err
}

func (s *loggingService) CreateReservation(ctx context.Context, subnetID int64, input ReserveInput) (Reservation, error) {
	res, err := s.next.CreateReservation(ctx, subnetID, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "create reservation failed", "subnet_id", subnetID, "start", input.Start, "end", input.End, "err", err.Error())
		return Reservation{}, err
	}

	s.logger.InfoContext(ctx, "reservation created", "id", res.ID, "subnet_id", subnetID, "start", res.Start.String(), "end", res.End.String())
	return res, nil
}

func (s *loggingService) DeleteReservation(ctx context.Context, id int64) (int64, error) {
	count, err := s.next.DeleteReservation(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "delete reservation failed", "id", id, "err", err.Error())
		return 0, err
	}

	s.logger.InfoContext(ctx, "reservation deleted", "id", id, "released", count)
	return count, nil
}

func (s *loggingService) ComputeRange(ctx context.Context, network string, prefix int, family string) (ipaddr.Range, error) {
	r, err := s.next.ComputeRange(ctx, network, prefix, family)
	if err != nil {
		s.logger.DebugContext(ctx, "compute range failed", "network", network, "prefix", prefix, "err", err.Error())
	}
	return r, err
}

func (s *loggingService) IsInSubnet(ctx context.Context, address, network string, prefix int) (bool, error) {
	ok, err := s.next.IsInSubnet(ctx, address, network, prefix)
	if err != nil {
		s.logger.DebugContext(ctx, "membership check failed", "address", address, "network", network, "err", err.Error())
	}
	return ok, err
}
