package domain

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/Flarenzy/ipam-engine/internal/ipaddr"
)

type captureHandler struct {
	records []slog.Record
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *captureHandler) Handle(_ context.Context, record slog.Record) error {
	clone := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		clone.AddAttrs(attr)
		return true
	})
	h.records = append(h.records, clone)
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler {
	return h
}

func (h *captureHandler) WithGroup(string) slog.Handler {
	return h
}

type stubService struct {
	allocateFn          func(context.Context, int64, AllocateInput) (AddressRecord, error)
	releaseFn           func(context.Context, AddressRecordID) (AddressRecord, error)
	createSubnetFn      func(context.Context, CreateSubnetInput) (Subnet, error)
	createReservationFn func(context.Context, int64, ReserveInput) (Reservation, error)
}

func (s stubService) ListSubnets(context.Context) ([]Subnet, error) { return nil, nil }

func (s stubService) CreateSubnet(ctx context.Context, input CreateSubnetInput) (Subnet, error) {
	if s.createSubnetFn == nil {
		return Subnet{}, nil
	}
	return s.createSubnetFn(ctx, input)
}

func (s stubService) GetSubnet(context.Context, int64) (Subnet, error) { return Subnet{}, nil }
func (s stubService) DeleteSubnet(context.Context, int64) error       { return nil }

func (s stubService) ListRecords(context.Context, int64) ([]AddressRecord, error) {
	return nil, nil
}

func (s stubService) Allocate(ctx context.Context, subnetID int64, input AllocateInput) (AddressRecord, error) {
	if s.allocateFn == nil {
		return AddressRecord{}, nil
	}
	return s.allocateFn(ctx, subnetID, input)
}

func (s stubService) Release(ctx context.Context, id AddressRecordID) (AddressRecord, error) {
	if s.releaseFn == nil {
		return AddressRecord{}, nil
	}
	return s.releaseFn(ctx, id)
}

func (s stubService) UpdateMetadata(context.Context, AddressRecordID, UpdateMetadataInput) (AddressRecord, error) {
	return AddressRecord{}, nil
}

func (s stubService) ListReservations(context.Context, int64) ([]Reservation, error) {
	return nil, nil
}

func (s stubService) CreateReservation(ctx context.Context, subnetID int64, input ReserveInput) (Reservation, error) {
	if s.createReservationFn == nil {
		return Reservation{}, nil
	}
	return s.createReservationFn(ctx, subnetID, input)
}

func (s stubService) DeleteReservation(context.Context, int64) (int64, error) { return 0, nil }

func (s stubService) ComputeRange(context.Context, string, int, string) (ipaddr.Range, error) {
	return ipaddr.Range{}, nil
}

func (s stubService) IsInSubnet(context.Context, string, string, int) (bool, error) {
	return false, nil
}

func TestLoggingServiceLogsAllocation(t *testing.T) {
	handler := &captureHandler{}
	logger := slog.New(handler)
	addr, _ := ipaddr.ParseAddr("10.0.0.2")
	service := NewLoggingService(logger, stubService{
		allocateFn: func(context.Context, int64, AllocateInput) (AddressRecord, error) {
			return AddressRecord{ID: "rec-1", Address: addr, Status: StatusAssigned}, nil
		},
	})

	_, err := service.Allocate(context.Background(), 1, AllocateInput{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(handler.records) != 1 {
		t.Fatalf("expected 1 log record, got %d", len(handler.records))
	}
	if handler.records[0].Level != slog.LevelInfo || handler.records[0].Message != "address allocated" {
		t.Fatalf("unexpected log record: level=%v message=%q", handler.records[0].Level, handler.records[0].Message)
	}
}

func TestLoggingServiceLogsErrors(t *testing.T) {
	handler := &captureHandler{}
	logger := slog.New(handler)
	service := NewLoggingService(logger, stubService{
		createReservationFn: func(context.Context, int64, ReserveInput) (Reservation, error) {
			return Reservation{}, ErrInvalidOrder
		},
	})

	_, err := service.CreateReservation(context.Background(), 1, ReserveInput{Start: "10.0.0.5", End: "10.0.0.1"})
	if !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("expected ErrInvalidOrder, got %v", err)
	}

	if len(handler.records) != 1 {
		t.Fatalf("expected 1 log record, got %d", len(handler.records))
	}
	if handler.records[0].Level != slog.LevelError || handler.records[0].Message != "create reservation failed" {
		t.Fatalf("unexpected log record: level=%v message=%q", handler.records[0].Level, handler.records[0].Message)
	}
}

func TestNewLoggingServiceReturnsNextWhenLoggerNil(t *testing.T) {
	called := false
	next := stubService{
		createSubnetFn: func(context.Context, CreateSubnetInput) (Subnet, error) {
			called = true
			return Subnet{ID: 99}, nil
		},
	}
	wrapped := NewLoggingService(nil, next)
	subnet, err := wrapped.CreateSubnet(context.Background(), CreateSubnetInput{CIDR: "10.0.0.0/24"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !called {
		t.Fatal("expected wrapped service to delegate to next")
	}
	if subnet.ID != 99 {
		t.Fatalf("unexpected subnet id: %d", subnet.ID)
	}
}
