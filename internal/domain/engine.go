package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Flarenzy/ipam-engine/internal/auth"
	"github.com/Flarenzy/ipam-engine/internal/ipaddr"
)

const (
	// allocSearchBudget caps the candidates inspected by one automatic
	// allocation scan. IPv6 usable ranges can exceed 2^64 addresses, so the
	// scan can never be allowed to run to the end of the range.
	allocSearchBudget = 1000

	// allocMaxRetries bounds rescans after the store reports a concurrent
	// claim of the selected address.
	allocMaxRetries = 3

	// reservationRecordCap bounds how many Reserved records a single
	// reservation materializes. Addresses past the cap are still covered by
	// the reservation interval.
	reservationRecordCap = 1000
)

type engine struct {
	subnets      SubnetRepository
	records      RecordStore
	reservations ReservationStore
	audit        AuditRecorder
}

func NewService(subnets SubnetRepository, records RecordStore, reservations ReservationStore, audit AuditRecorder) Service {
	return &engine{
		subnets:      subnets,
		records:      records,
		reservations: reservations,
		audit:        audit,
	}
}

func (e *engine) ListSubnets(ctx context.Context) ([]Subnet, error) {
	return e.subnets.List(ctx)
}

func (e *engine) CreateSubnet(ctx context.Context, input CreateSubnetInput) (Subnet, error) {
	addr, prefix, err := ipaddr.ParseCIDR(input.CIDR)
	if err != nil {
		return Subnet{}, fmt.Errorf("%w: invalid cidr: %v", ErrInvalidInput, err)
	}
	if input.ParentID != nil {
		if _, err := e.subnets.FindByID(ctx, *input.ParentID); err != nil {
			return Subnet{}, fmt.Errorf("parent subnet: %w", err)
		}
	}
	return e.subnets.Create(ctx, CreateSubnetRecord{
		Network:     ipaddr.Mask(addr, prefix),
		Prefix:      prefix,
		Description: input.Description,
		ParentID:    input.ParentID,
	})
}

func (e *engine) GetSubnet(ctx context.Context, id int64) (Subnet, error) {
	return e.subnets.FindByID(ctx, id)
}

func (e *engine) DeleteSubnet(ctx context.Context, id int64) error {
	deleted, err := e.subnets.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (e *engine) ListRecords(ctx context.Context, subnetID int64) ([]AddressRecord, error) {
	if _, err := e.subnets.FindByID(ctx, subnetID); err != nil {
		return nil, err
	}
	return e.records.ListBySubnet(ctx, subnetID)
}

func (e *engine) Allocate(ctx context.Context, subnetID int64, input AllocateInput) (AddressRecord, error) {
	subnet, err := e.subnets.FindByID(ctx, subnetID)
	if err != nil {
		return AddressRecord{}, err
	}

	status := StatusAssigned
	if input.Status != "" {
		status, err = ParseStatus(input.Status)
		if err != nil {
			return AddressRecord{}, err
		}
		if !OpAllocate.Allowed(StatusAvailable, status) {
			return AddressRecord{}, fmt.Errorf("%w: cannot allocate to status %q", ErrInvalidInput, status)
		}
	}

	if input.Address != "" {
		return e.allocateManual(ctx, subnet, input.Address, status, input.Metadata)
	}
	return e.allocateAuto(ctx, subnet, status, input.Metadata)
}

// allocateManual claims the exact address the caller asked for.
func (e *engine) allocateManual(ctx context.Context, subnet Subnet, address string, status Status, meta Metadata) (AddressRecord, error) {
	addr, err := ipaddr.ParseAddr(address)
	if err != nil {
		return AddressRecord{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if addr.Family() != subnet.Family() {
		return AddressRecord{}, fmt.Errorf("%w: %s address in %s subnet", ErrFamilyMismatch, addr.Family(), subnet.Family())
	}
	usable, err := ipaddr.Compute(subnet.Network, subnet.Prefix)
	if err != nil {
		return AddressRecord{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !ipaddr.InRange(addr, usable.First, usable.Last) {
		return AddressRecord{}, fmt.Errorf("%w: %s not in %s", ErrOutOfRange, addr, subnet.CIDR())
	}

	existing, err := e.records.FindByAddress(ctx, subnet.ID, addr)
	switch {
	case err == nil:
		if existing.Status.Occupied() {
			return AddressRecord{}, fmt.Errorf("%w: %s is %s", ErrConflict, addr, existing.Status)
		}
		updated := existing
		updated.Status = status
		updated.Metadata = meta
		after, err := e.records.Update(ctx, updated)
		if err != nil {
			return AddressRecord{}, err
		}
		if err := e.emit(ctx, ActionAllocate, &existing, &after, nil); err != nil {
			return AddressRecord{}, err
		}
		return after, nil
	case errors.Is(err, ErrNotFound):
		after, err := e.records.Insert(ctx, AddressRecord{
			Address:  addr,
			SubnetID: subnet.ID,
			Status:   status,
			Metadata: meta,
		})
		if err != nil {
			// a concurrent caller claimed it between check and insert
			if errors.Is(err, ErrConflict) {
				return AddressRecord{}, fmt.Errorf("%w: %s was claimed concurrently", ErrConflict, addr)
			}
			return AddressRecord{}, err
		}
		if err := e.emit(ctx, ActionAllocate, nil, &after, nil); err != nil {
			return AddressRecord{}, err
		}
		return after, nil
	default:
		return AddressRecord{}, err
	}
}

// allocateAuto scans for the numerically smallest free address. The occupied
// set is the union of occupied-status records and active reservation
// intervals, so the allocator never selects inside a reservation even where
// no record was materialized. Insert conflicts from concurrent callers are
// retried with the contested address excluded.
func (e *engine) allocateAuto(ctx context.Context, subnet Subnet, status Status, meta Metadata) (AddressRecord, error) {
	usable, err := ipaddr.Compute(subnet.Network, subnet.Prefix)
	if err != nil {
		return AddressRecord{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	taken, err := e.records.FindInRange(ctx, subnet.ID, usable.First, usable.Last, OccupiedStatuses)
	if err != nil {
		return AddressRecord{}, err
	}
	occupied := make(map[ipaddr.Addr]struct{}, len(taken))
	for _, rec := range taken {
		occupied[rec.Address] = struct{}{}
	}

	reserved, err := e.activeReservations(ctx, subnet.ID)
	if err != nil {
		return AddressRecord{}, err
	}

	for attempt := 0; attempt <= allocMaxRetries; attempt++ {
		addr, outcome := firstFree(usable, occupied, reserved)
		switch outcome {
		case scanExhausted:
			return AddressRecord{}, fmt.Errorf("%w: %s", ErrSubnetExhausted, subnet.CIDR())
		case scanBudget:
			return AddressRecord{}, fmt.Errorf("%w: scanned %d candidates in %s", ErrSearchBudget, allocSearchBudget, subnet.CIDR())
		}

		after, err := e.records.Insert(ctx, AddressRecord{
			Address:  addr,
			SubnetID: subnet.ID,
			Status:   status,
			Metadata: meta,
		})
		if errors.Is(err, ErrConflict) {
			occupied[addr] = struct{}{}
			continue
		}
		if err != nil {
			return AddressRecord{}, err
		}
		if err := e.emit(ctx, ActionAllocate, nil, &after, nil); err != nil {
			return AddressRecord{}, err
		}
		return after, nil
	}
	return AddressRecord{}, fmt.Errorf("%w: retries exhausted by concurrent allocations", ErrSearchBudget)
}

type scanOutcome int

const (
	scanFound scanOutcome = iota
	scanBudget
	scanExhausted
)

func firstFree(usable ipaddr.Range, occupied map[ipaddr.Addr]struct{}, reserved []Reservation) (ipaddr.Addr, scanOutcome) {
	inspected := 0
	for addr := usable.First; ; addr = addr.Next() {
		if addr.Cmp(usable.Last) > 0 {
			return ipaddr.Addr{}, scanExhausted
		}
		if inspected >= allocSearchBudget {
			return ipaddr.Addr{}, scanBudget
		}
		inspected++

		if _, taken := occupied[addr]; taken {
			continue
		}
		if insideReservation(addr, reserved) {
			continue
		}
		return addr, scanFound
	}
}

func insideReservation(addr ipaddr.Addr, reservations []Reservation) bool {
	for _, res := range reservations {
		if res.Contains(addr) {
			return true
		}
	}
	return false
}

func (e *engine) activeReservations(ctx context.Context, subnetID int64) ([]Reservation, error) {
	all, err := e.reservations.ListBySubnet(ctx, subnetID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	active := all[:0]
	for _, res := range all {
		if res.Active(now) {
			active = append(active, res)
		}
	}
	return active, nil
}

func (e *engine) Release(ctx context.Context, id AddressRecordID) (AddressRecord, error) {
	rec, err := e.records.FindByID(ctx, id)
	if err != nil {
		return AddressRecord{}, err
	}
	if !rec.Status.Occupied() {
		// releasing an available address is a no-op success
		return rec, nil
	}

	before := rec
	after, err := e.records.Update(ctx, released(rec))
	if err != nil {
		return AddressRecord{}, err
	}
	if err := e.emit(ctx, ActionRelease, &before, &after, nil); err != nil {
		return AddressRecord{}, err
	}
	return after, nil
}

func (e *engine) UpdateMetadata(ctx context.Context, id AddressRecordID, input UpdateMetadataInput) (AddressRecord, error) {
	rec, err := e.records.FindByID(ctx, id)
	if err != nil {
		return AddressRecord{}, err
	}

	before := rec
	rec.Metadata = input.Metadata
	if input.Status != "" {
		status, err := ParseStatus(input.Status)
		if err != nil {
			return AddressRecord{}, err
		}
		if !OpUpdateMetadata.Allowed(rec.Status, status) {
			return AddressRecord{}, fmt.Errorf("%w: cannot move %s from %s to %s", ErrInvalidInput, rec.Address, rec.Status, status)
		}
		rec.Status = status
		if status == StatusAvailable {
			rec.Metadata = Metadata{}
		}
	}

	after, err := e.records.Update(ctx, rec)
	if err != nil {
		return AddressRecord{}, err
	}
	if err := e.emit(ctx, ActionUpdateMetadata, &before, &after, nil); err != nil {
		return AddressRecord{}, err
	}
	return after, nil
}

func (e *engine) ComputeRange(ctx context.Context, network string, prefix int, family string) (ipaddr.Range, error) {
	addr, err := ipaddr.ParseAddr(network)
	if err != nil {
		return ipaddr.Range{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if family != "" {
		f, err := ipaddr.ParseFamily(family)
		if err != nil {
			return ipaddr.Range{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if f != addr.Family() {
			return ipaddr.Range{}, fmt.Errorf("%w: %s network with family %s", ErrFamilyMismatch, addr.Family(), f)
		}
	}
	r, err := ipaddr.Compute(addr, prefix)
	if err != nil {
		return ipaddr.Range{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return r, nil
}

func (e *engine) IsInSubnet(ctx context.Context, address, network string, prefix int) (bool, error) {
	addr, err := ipaddr.ParseAddr(address)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	net, err := ipaddr.ParseAddr(network)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if prefix < 0 || prefix > net.Family().Bits() {
		return false, fmt.Errorf("%w: /%d for %s", ErrInvalidInput, prefix, net.Family())
	}
	return ipaddr.Contains(addr, net, prefix), nil
}

// emit records the audit entry for a committed mutation. The operation is
// not complete until its entry lands.
func (e *engine) emit(ctx context.Context, action string, before, after *AddressRecord, res *Reservation) error {
	entry := AuditEntry{
		Action:      action,
		Actor:       actorFromContext(ctx),
		Before:      before,
		After:       after,
		Reservation: res,
		At:          time.Now().UTC(),
	}
	if err := e.audit.Record(ctx, entry); err != nil {
		return fmt.Errorf("audit %s: %w", action, err)
	}
	return nil
}

func actorFromContext(ctx context.Context) string {
	if principal, ok := auth.PrincipalFromContext(ctx); ok && principal.Subject != "" {
		return principal.Subject
	}
	return "system"
}
