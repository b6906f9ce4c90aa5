package domain

import (
	"context"

	"github.com/Flarenzy/ipam-engine/internal/ipaddr"
)

type Service interface {
	ListSubnets(ctx context.Context) ([]Subnet, error)
	CreateSubnet(ctx context.Context, input CreateSubnetInput) (Subnet, error)
	GetSubnet(ctx context.Context, id int64) (Subnet, error)
	DeleteSubnet(ctx context.Context, id int64) error

	ListRecords(ctx context.Context, subnetID int64) ([]AddressRecord, error)
	Allocate(ctx context.Context, subnetID int64, input AllocateInput) (AddressRecord, error)
	Release(ctx context.Context, id AddressRecordID) (AddressRecord, error)
	UpdateMetadata(ctx context.Context, id AddressRecordID, input UpdateMetadataInput) (AddressRecord, error)

	ListReservations(ctx context.Context, subnetID int64) ([]Reservation, error)
	CreateReservation(ctx context.Context, subnetID int64, input ReserveInput) (Reservation, error)
	DeleteReservation(ctx context.Context, id int64) (int64, error)

	ComputeRange(ctx context.Context, network string, prefix int, family string) (ipaddr.Range, error)
	IsInSubnet(ctx context.Context, address, network string, prefix int) (bool, error)
}
