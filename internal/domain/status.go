package domain

import "fmt"

// Status is the occupancy state of an address. The empty string and
// StatusAvailable are interchangeable: a missing record is an available
// address.
type Status string

const (
	StatusAvailable     Status = "available"
	StatusAssigned      Status = "assigned"
	StatusReserved      Status = "reserved"
	StatusDhcpManaged   Status = "dhcp_managed"
	StatusStaticManaged Status = "static_managed"
)

// OccupiedStatuses are the states that make an address unavailable to the
// allocator.
var OccupiedStatuses = []Status{StatusAssigned, StatusReserved, StatusDhcpManaged, StatusStaticManaged}

// NonReservableStatuses are the occupied states a new reservation may not
// overlap. Reserved is absent: overlapping reservations are tolerated.
var NonReservableStatuses = []Status{StatusAssigned, StatusDhcpManaged, StatusStaticManaged}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusAvailable, StatusAssigned, StatusReserved, StatusDhcpManaged, StatusStaticManaged:
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
	}
}

func (s Status) Occupied() bool {
	switch s {
	case StatusAssigned, StatusReserved, StatusDhcpManaged, StatusStaticManaged:
		return true
	default:
		return false
	}
}

// Operation is the kind of mutation attempting a status transition.
type Operation int

const (
	OpAllocate Operation = iota
	OpReserve
	OpRelease
	OpUpdateMetadata
)

// Allowed reports whether a transition is legal for the operation.
// Allocation and reservation only claim available addresses; release always
// lands on available (available -> available is a no-op); moving between two
// occupied states requires the explicit metadata-update operation.
func (op Operation) Allowed(from, to Status) bool {
	switch op {
	case OpAllocate, OpReserve:
		return !from.Occupied() && to.Occupied()
	case OpRelease:
		return to == StatusAvailable
	case OpUpdateMetadata:
		return to.Occupied() || to == StatusAvailable
	default:
		return false
	}
}

// released returns rec reset to available with every metadata field cleared.
func released(rec AddressRecord) AddressRecord {
	rec.Status = StatusAvailable
	rec.Metadata = Metadata{}
	return rec
}
