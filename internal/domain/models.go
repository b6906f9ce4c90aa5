package domain

import (
	"fmt"
	"time"

	"github.com/Flarenzy/ipam-engine/internal/ipaddr"
)

type AddressRecordID string

// Subnet is a declared address block. Parent references form a forest; the
// engine does not enforce acyclicity.
type Subnet struct {
	ID          int64
	Network     ipaddr.Addr
	Prefix      int
	ParentID    *int64
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (s Subnet) Family() ipaddr.Family {
	return s.Network.Family()
}

func (s Subnet) CIDR() string {
	return fmt.Sprintf("%s/%d", s.Network, s.Prefix)
}

// Metadata is the free-form bag attached to an occupied address. Release
// always clears every field.
type Metadata struct {
	Hostname   string
	MACAddress string
	DeviceName string
	Assignee   string
	Note       string
}

func (m Metadata) IsZero() bool {
	return m == Metadata{}
}

// AddressRecord tracks the occupancy of a single address. Absence of a
// record is equivalent to StatusAvailable.
type AddressRecord struct {
	ID        AddressRecordID
	Address   ipaddr.Addr
	SubnetID  int64
	Status    Status
	Metadata  Metadata
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Reservation holds a contiguous inclusive address range. Its member records
// are materialized up to a cap; membership beyond the cap is decided by the
// interval itself.
type Reservation struct {
	ID        int64
	SubnetID  int64
	Start     ipaddr.Addr
	End       ipaddr.Addr
	Purpose   string
	Owner     string
	ExpiresAt *time.Time
	CreatedAt time.Time
}

func (r Reservation) Active(now time.Time) bool {
	return r.ExpiresAt == nil || now.Before(*r.ExpiresAt)
}

func (r Reservation) Contains(addr ipaddr.Addr) bool {
	return ipaddr.InRange(addr, r.Start, r.End)
}

// AuditEntry is emitted once per committed mutation. Record mutations carry
// before/after snapshots; reservation mutations carry the reservation.
type AuditEntry struct {
	Action      string
	Actor       string
	Before      *AddressRecord
	After       *AddressRecord
	Reservation *Reservation
	At          time.Time
}

const (
	ActionAllocate          = "allocate"
	ActionRelease           = "release"
	ActionUpdateMetadata    = "update_metadata"
	ActionReserveRange      = "reserve_range"
	ActionDeleteReservation = "delete_reservation"
)
