package domain

import (
	"time"

	"github.com/Flarenzy/ipam-engine/internal/ipaddr"
)

type CreateSubnetInput struct {
	CIDR        string
	Description string
	ParentID    *int64
}

// CreateSubnetRecord is the parsed, canonicalized form handed to the store.
// Network is already masked to the prefix.
type CreateSubnetRecord struct {
	Network     ipaddr.Addr
	Prefix      int
	Description string
	ParentID    *int64
}

// AllocateInput carries an optional caller-supplied address (manual path)
// and an optional target status, defaulting to assigned.
type AllocateInput struct {
	Address  string
	Status   string
	Metadata Metadata
}

type UpdateMetadataInput struct {
	Metadata Metadata
	Status   string
}

type ReserveInput struct {
	Start     string
	End       string
	Purpose   string
	Owner     string
	ExpiresAt *time.Time
}
