package http

import (
	"time"

	"github.com/Flarenzy/ipam-engine/internal/domain"
	"github.com/Flarenzy/ipam-engine/internal/ipaddr"
)

// SubnetResponse is a simplified view returned to clients and used in Swagger.
type SubnetResponse struct {
	ID          int64     `json:"id" example:"1"`
	CIDR        string    `json:"cidr" example:"10.0.0.0/24"`
	Family      string    `json:"family" example:"ipv4"`
	ParentID    *int64    `json:"parent_id,omitempty" example:"2"`
	Description string    `json:"description" example:"Office network"`
	CreatedAt   time.Time `json:"created_at" example:"2024-05-10T15:04:05Z"`
	UpdatedAt   time.Time `json:"updated_at" example:"2024-05-10T15:04:05Z"`
}

// CreateSubnetRequest is the payload accepted when creating a subnet.
type CreateSubnetRequest struct {
	CIDR        string `json:"cidr" example:"10.0.0.0/24" validate:"required"`
	Description string `json:"description" example:"Office network"`
	ParentID    *int64 `json:"parent_id,omitempty" example:"2"`
}

// ErrorResponse is a simple envelope for error messages. Conflicts carries
// the occupied addresses when a reservation is rejected.
type ErrorResponse struct {
	Error     string   `json:"error" example:"subnet not found"`
	Conflicts []string `json:"conflicts,omitempty"`
}

// MetadataPayload mirrors the free-form fields attached to an address.
type MetadataPayload struct {
	Hostname   string `json:"hostname,omitempty" example:"printer-1"`
	MACAddress string `json:"mac_address,omitempty" example:"aa:bb:cc:dd:ee:ff"`
	DeviceName string `json:"device_name,omitempty" example:"hp-laserjet"`
	Assignee   string `json:"assignee,omitempty" example:"facilities"`
	Note       string `json:"note,omitempty" example:"second floor"`
}

// RecordResponse is the client view of an address record.
type RecordResponse struct {
	ID        string          `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Address   string          `json:"address" example:"10.0.0.1"`
	SubnetID  int64           `json:"subnet_id" example:"4"`
	Status    string          `json:"status" example:"assigned"`
	Metadata  MetadataPayload `json:"metadata"`
	CreatedAt time.Time       `json:"created_at" example:"2024-05-10T15:04:05Z"`
	UpdatedAt time.Time       `json:"updated_at" example:"2024-05-10T15:04:05Z"`
}

// AllocateRequest asks for an address. An empty address means first free.
type AllocateRequest struct {
	Address  string          `json:"address,omitempty" example:"10.0.0.5"`
	Status   string          `json:"status,omitempty" example:"assigned"`
	Metadata MetadataPayload `json:"metadata"`
}

// UpdateRecordRequest replaces the metadata of a record and optionally moves
// it to a new status.
type UpdateRecordRequest struct {
	Status   string          `json:"status,omitempty" example:"dhcp_managed"`
	Metadata MetadataPayload `json:"metadata"`
}

// ReservationResponse is the client view of a reserved range.
type ReservationResponse struct {
	ID        int64      `json:"id" example:"7"`
	SubnetID  int64      `json:"subnet_id" example:"4"`
	Start     string     `json:"start" example:"10.0.0.100"`
	End       string     `json:"end" example:"10.0.0.150"`
	Purpose   string     `json:"purpose,omitempty" example:"voip phones"`
	Owner     string     `json:"owner,omitempty" example:"telephony"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" example:"2024-06-10T15:04:05Z"`
	CreatedAt time.Time  `json:"created_at" example:"2024-05-10T15:04:05Z"`
}

// CreateReservationRequest is the payload accepted when reserving a range.
type CreateReservationRequest struct {
	Start     string     `json:"start" example:"10.0.0.100" validate:"required"`
	End       string     `json:"end" example:"10.0.0.150" validate:"required"`
	Purpose   string     `json:"purpose,omitempty" example:"voip phones"`
	Owner     string     `json:"owner,omitempty" example:"telephony"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" example:"2024-06-10T15:04:05Z"`
}

// DeleteReservationResponse reports how many member records were released.
type DeleteReservationResponse struct {
	Released int64 `json:"released" example:"51"`
}

// RangeResponse describes the usable span of a network. For very large IPv6
// networks the usable count saturates and unbounded is set.
type RangeResponse struct {
	First     string `json:"first" example:"10.0.0.1"`
	Last      string `json:"last" example:"10.0.0.254"`
	Usable    uint64 `json:"usable" example:"254"`
	Unbounded bool   `json:"unbounded,omitempty"`
}

// ContainsResponse answers a membership probe.
type ContainsResponse struct {
	Contains bool `json:"contains" example:"true"`
}

func subnetToResponse(s domain.Subnet) SubnetResponse {
	return SubnetResponse{
		ID:          s.ID,
		CIDR:        s.CIDR(),
		Family:      s.Family().String(),
		ParentID:    s.ParentID,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func subnetsToResponse(subnets []domain.Subnet) []SubnetResponse {
	out := make([]SubnetResponse, 0, len(subnets))
	for _, s := range subnets {
		out = append(out, subnetToResponse(s))
	}
	return out
}

func recordToResponse(rec domain.AddressRecord) RecordResponse {
	return RecordResponse{
		ID:       string(rec.ID),
		Address:  rec.Address.String(),
		SubnetID: rec.SubnetID,
		Status:   string(rec.Status),
		Metadata: MetadataPayload{
			Hostname:   rec.Metadata.Hostname,
			MACAddress: rec.Metadata.MACAddress,
			DeviceName: rec.Metadata.DeviceName,
			Assignee:   rec.Metadata.Assignee,
			Note:       rec.Metadata.Note,
		},
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func recordsToResponse(recs []domain.AddressRecord) []RecordResponse {
	out := make([]RecordResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, recordToResponse(rec))
	}
	return out
}

func reservationToResponse(res domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:        res.ID,
		SubnetID:  res.SubnetID,
		Start:     res.Start.String(),
		End:       res.End.String(),
		Purpose:   res.Purpose,
		Owner:     res.Owner,
		ExpiresAt: res.ExpiresAt,
		CreatedAt: res.CreatedAt,
	}
}

func reservationsToResponse(reservations []domain.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(reservations))
	for _, res := range reservations {
		out = append(out, reservationToResponse(res))
	}
	return out
}

func rangeToResponse(r ipaddr.Range) RangeResponse {
	return RangeResponse{
		First:     r.First.String(),
		Last:      r.Last.String(),
		Usable:    r.Usable,
		Unbounded: r.Unbounded,
	}
}

func (p MetadataPayload) toDomain() domain.Metadata {
	return domain.Metadata{
		Hostname:   p.Hostname,
		MACAddress: p.MACAddress,
		DeviceName: p.DeviceName,
		Assignee:   p.Assignee,
		Note:       p.Note,
	}
}

func (r AllocateRequest) toInput() domain.AllocateInput {
	return domain.AllocateInput{
		Address:  r.Address,
		Status:   r.Status,
		Metadata: r.Metadata.toDomain(),
	}
}

func (r UpdateRecordRequest) toInput() domain.UpdateMetadataInput {
	return domain.UpdateMetadataInput{
		Status:   r.Status,
		Metadata: r.Metadata.toDomain(),
	}
}

func (r CreateReservationRequest) toInput() domain.ReserveInput {
	return domain.ReserveInput{
		Start:     r.Start,
		End:       r.End,
		Purpose:   r.Purpose,
		Owner:     r.Owner,
		ExpiresAt: r.ExpiresAt,
	}
}

func (r CreateSubnetRequest) toInput() domain.CreateSubnetInput {
	return domain.CreateSubnetInput{
		CIDR:        r.CIDR,
		Description: r.Description,
		ParentID:    r.ParentID,
	}
}
