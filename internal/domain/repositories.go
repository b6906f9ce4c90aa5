package domain

import (
	"context"

	"github.com/Flarenzy/ipam-engine/internal/ipaddr"
)

type SubnetRepository interface {
	List(ctx context.Context) ([]Subnet, error)
	FindByID(ctx context.Context, id int64) (Subnet, error)
	Create(ctx context.Context, input CreateSubnetRecord) (Subnet, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// RecordStore is the abstract record store the engine runs against. The
// store owns address uniqueness: Insert on an address that already has a
// record fails with ErrConflict, and the engine treats that as the final
// arbiter for concurrent allocation.
type RecordStore interface {
	ListBySubnet(ctx context.Context, subnetID int64) ([]AddressRecord, error)
	FindByID(ctx context.Context, id AddressRecordID) (AddressRecord, error)
	FindByAddress(ctx context.Context, subnetID int64, addr ipaddr.Addr) (AddressRecord, error)
	// FindInRange returns records in [start, end] inclusive whose status is
	// one of statuses; a nil statuses slice matches every status.
	FindInRange(ctx context.Context, subnetID int64, start, end ipaddr.Addr, statuses []Status) ([]AddressRecord, error)
	Insert(ctx context.Context, rec AddressRecord) (AddressRecord, error)
	Update(ctx context.Context, rec AddressRecord) (AddressRecord, error)
	// BulkTransition moves every record in [start, end] currently in status
	// from into status to, clearing metadata when to is available, and
	// returns the number of records changed.
	BulkTransition(ctx context.Context, subnetID int64, start, end ipaddr.Addr, from, to Status) (int64, error)
}

type ReservationStore interface {
	ListBySubnet(ctx context.Context, subnetID int64) ([]Reservation, error)
	FindByID(ctx context.Context, id int64) (Reservation, error)
	Create(ctx context.Context, res Reservation) (Reservation, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// AuditRecorder receives exactly one entry per committed mutation. A failed
// emission fails the operation: the engine never silently drops a mutation.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry) error
}
