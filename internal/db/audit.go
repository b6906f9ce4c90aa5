package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Flarenzy/ipam-engine/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditLog appends one row per committed mutation. Snapshots are stored as
// JSONB so the log survives schema changes to the live tables.
type AuditLog struct {
	pool *pgxpool.Pool
}

func NewAuditLog(pool *pgxpool.Pool) *AuditLog {
	return &AuditLog{pool: pool}
}

func (l *AuditLog) Record(ctx context.Context, entry domain.AuditEntry) error {
	before, err := marshalRecord(entry.Before)
	if err != nil {
		return err
	}
	after, err := marshalRecord(entry.After)
	if err != nil {
		return err
	}
	reservation, err := marshalReservation(entry.Reservation)
	if err != nil {
		return err
	}

	_, err = l.pool.Exec(ctx,
		"INSERT INTO audit_log (action, actor, before, after, reservation, at) VALUES ($1, $2, $3, $4, $5, $6)",
		entry.Action, entry.Actor, before, after, reservation, entry.At,
	)
	if err != nil {
		return fmt.Errorf("recording audit entry: %w", err)
	}
	return nil
}

type recordSnapshot struct {
	ID         string `json:"id"`
	Address    string `json:"address"`
	SubnetID   int64  `json:"subnet_id"`
	Status     string `json:"status"`
	Hostname   string `json:"hostname,omitempty"`
	MACAddress string `json:"mac_address,omitempty"`
	DeviceName string `json:"device_name,omitempty"`
	Assignee   string `json:"assignee,omitempty"`
	Note       string `json:"note,omitempty"`
}

type reservationSnapshot struct {
	ID        int64      `json:"id"`
	SubnetID  int64      `json:"subnet_id"`
	Start     string     `json:"start"`
	End       string     `json:"end"`
	Purpose   string     `json:"purpose,omitempty"`
	Owner     string     `json:"owner,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func marshalRecord(rec *domain.AddressRecord) ([]byte, error) {
	if rec == nil {
		return nil, nil
	}
	return json.Marshal(recordSnapshot{
		ID:         string(rec.ID),
		Address:    rec.Address.String(),
		SubnetID:   rec.SubnetID,
		Status:     string(rec.Status),
		Hostname:   rec.Metadata.Hostname,
		MACAddress: rec.Metadata.MACAddress,
		DeviceName: rec.Metadata.DeviceName,
		Assignee:   rec.Metadata.Assignee,
		Note:       rec.Metadata.Note,
	})
}

func marshalReservation(res *domain.Reservation) ([]byte, error) {
	if res == nil {
		return nil, nil
	}
	return json.Marshal(reservationSnapshot{
		ID:        res.ID,
		SubnetID:  res.SubnetID,
		Start:     res.Start.String(),
		End:       res.End.String(),
		Purpose:   res.Purpose,
		Owner:     res.Owner,
		ExpiresAt: res.ExpiresAt,
	})
}
