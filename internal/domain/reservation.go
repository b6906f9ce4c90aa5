package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/Flarenzy/ipam-engine/internal/ipaddr"
)

func (e *engine) ListReservations(ctx context.Context, subnetID int64) ([]Reservation, error) {
	if _, err := e.subnets.FindByID(ctx, subnetID); err != nil {
		return nil, err
	}
	return e.reservations.ListBySubnet(ctx, subnetID)
}

func (e *engine) CreateReservation(ctx context.Context, subnetID int64, input ReserveInput) (Reservation, error) {
	subnet, err := e.subnets.FindByID(ctx, subnetID)
	if err != nil {
		return Reservation{}, err
	}

	start, err := ipaddr.ParseAddr(input.Start)
	if err != nil {
		return Reservation{}, fmt.Errorf("%w: start: %v", ErrInvalidInput, err)
	}
	end, err := ipaddr.ParseAddr(input.End)
	if err != nil {
		return Reservation{}, fmt.Errorf("%w: end: %v", ErrInvalidInput, err)
	}
	if start.Family() != subnet.Family() || end.Family() != subnet.Family() {
		return Reservation{}, fmt.Errorf("%w: range endpoints must be %s", ErrFamilyMismatch, subnet.Family())
	}

	usable, err := ipaddr.Compute(subnet.Network, subnet.Prefix)
	if err != nil {
		return Reservation{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !ipaddr.InRange(start, usable.First, usable.Last) {
		return Reservation{}, fmt.Errorf("%w: %s not in %s", ErrOutOfRange, start, subnet.CIDR())
	}
	if !ipaddr.InRange(end, usable.First, usable.Last) {
		return Reservation{}, fmt.Errorf("%w: %s not in %s", ErrOutOfRange, end, subnet.CIDR())
	}
	if start.Cmp(end) > 0 {
		return Reservation{}, fmt.Errorf("%w: %s > %s", ErrInvalidOrder, start, end)
	}

	conflicts, err := e.records.FindInRange(ctx, subnetID, start, end, NonReservableStatuses)
	if err != nil {
		return Reservation{}, err
	}
	if len(conflicts) > 0 {
		conflictErr := &RangeConflictError{Addresses: make([]string, 0, len(conflicts))}
		for _, rec := range conflicts {
			conflictErr.Addresses = append(conflictErr.Addresses, rec.Address.String())
		}
		return Reservation{}, conflictErr
	}

	created, err := e.reservations.Create(ctx, Reservation{
		SubnetID:  subnetID,
		Start:     start,
		End:       end,
		Purpose:   input.Purpose,
		Owner:     input.Owner,
		ExpiresAt: input.ExpiresAt,
	})
	if err != nil {
		return Reservation{}, err
	}

	if err := e.materialize(ctx, created); err != nil {
		return Reservation{}, err
	}
	if err := e.emit(ctx, ActionReserveRange, nil, nil, &created); err != nil {
		return Reservation{}, err
	}
	return created, nil
}

// materialize creates Reserved records for the reservation range, capped at
// reservationRecordCap. The allocator consults the interval directly, so
// addresses past the cap stay covered. An insert conflict means a concurrent
// caller claimed the address after the conflict check; the constraint is the
// arbiter, so the address is skipped rather than failing the reservation.
func (e *engine) materialize(ctx context.Context, res Reservation) error {
	existing, err := e.records.FindInRange(ctx, res.SubnetID, res.Start, res.End, nil)
	if err != nil {
		return err
	}
	byAddr := make(map[ipaddr.Addr]AddressRecord, len(existing))
	for _, rec := range existing {
		byAddr[rec.Address] = rec
	}

	count := 0
	for addr := res.Start; count < reservationRecordCap; addr = addr.Next() {
		if addr.Cmp(res.End) > 0 {
			break
		}
		count++

		if rec, ok := byAddr[addr]; ok {
			if rec.Status.Occupied() {
				continue
			}
			rec.Status = StatusReserved
			if _, err := e.records.Update(ctx, rec); err != nil {
				return err
			}
			continue
		}

		_, err := e.records.Insert(ctx, AddressRecord{
			Address:  addr,
			SubnetID: res.SubnetID,
			Status:   StatusReserved,
		})
		if err != nil && !errors.Is(err, ErrConflict) {
			return err
		}
	}
	return nil
}

// DeleteReservation releases every still-Reserved record inside the range
// and removes the reservation. Records promoted to a stronger status keep it.
func (e *engine) DeleteReservation(ctx context.Context, id int64) (int64, error) {
	res, err := e.reservations.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}

	releasedCount, err := e.records.BulkTransition(ctx, res.SubnetID, res.Start, res.End, StatusReserved, StatusAvailable)
	if err != nil {
		return 0, err
	}

	deleted, err := e.reservations.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if !deleted {
		return 0, ErrNotFound
	}

	if err := e.emit(ctx, ActionDeleteReservation, nil, nil, &res); err != nil {
		return 0, err
	}
	return releasedCount, nil
}
