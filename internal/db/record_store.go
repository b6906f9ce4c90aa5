package db

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/Flarenzy/ipam-engine/internal/domain"
	"github.com/Flarenzy/ipam-engine/internal/ipaddr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RecordStore persists address records. The unique_address constraint on
// (subnet_id, address) is the arbiter for concurrent allocation: a losing
// insert surfaces as domain.ErrConflict.
type RecordStore struct {
	pool *pgxpool.Pool
}

func NewRecordStore(pool *pgxpool.Pool) *RecordStore {
	return &RecordStore{pool: pool}
}

const recordColumns = "id, subnet_id, address, status, hostname, mac_address, device_name, assignee, note, created_at, updated_at"

func (r *RecordStore) ListBySubnet(ctx context.Context, subnetID int64) ([]domain.AddressRecord, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+recordColumns+" FROM address_records WHERE subnet_id = $1 ORDER BY address",
		subnetID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (r *RecordStore) FindByID(ctx context.Context, id domain.AddressRecordID) (domain.AddressRecord, error) {
	parsedID, err := parseRecordID(id)
	if err != nil {
		return domain.AddressRecord{}, fmt.Errorf("%w: invalid record id", domain.ErrInvalidInput)
	}

	row := r.pool.QueryRow(ctx, "SELECT "+recordColumns+" FROM address_records WHERE id = $1", parsedID)
	rec, err := scanRecord(row)
	if err != nil {
		if isNoRows(err) {
			return domain.AddressRecord{}, domain.ErrNotFound
		}
		return domain.AddressRecord{}, err
	}
	return rec, nil
}

func (r *RecordStore) FindByAddress(ctx context.Context, subnetID int64, addr ipaddr.Addr) (domain.AddressRecord, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+recordColumns+" FROM address_records WHERE subnet_id = $1 AND address = $2",
		subnetID, addr.NetIP(),
	)
	rec, err := scanRecord(row)
	if err != nil {
		if isNoRows(err) {
			return domain.AddressRecord{}, domain.ErrNotFound
		}
		return domain.AddressRecord{}, err
	}
	return rec, nil
}

func (r *RecordStore) FindInRange(ctx context.Context, subnetID int64, start, end ipaddr.Addr, statuses []domain.Status) ([]domain.AddressRecord, error) {
	query := "SELECT " + recordColumns + " FROM address_records WHERE subnet_id = $1 AND address BETWEEN $2 AND $3"
	args := []any{subnetID, start.NetIP(), end.NetIP()}
	if statuses != nil {
		query += " AND status = ANY($4)"
		set := make([]string, len(statuses))
		for i, s := range statuses {
			set[i] = string(s)
		}
		args = append(args, set)
	}
	query += " ORDER BY address"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (r *RecordStore) Insert(ctx context.Context, rec domain.AddressRecord) (domain.AddressRecord, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO address_records (subnet_id, address, status, hostname, mac_address, device_name, assignee, note)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING `+recordColumns,
		rec.SubnetID, rec.Address.NetIP(), string(rec.Status),
		rec.Metadata.Hostname, rec.Metadata.MACAddress, rec.Metadata.DeviceName, rec.Metadata.Assignee, rec.Metadata.Note,
	)
	inserted, err := scanRecord(row)
	if err != nil {
		if isUniqueAddressViolation(err) {
			return domain.AddressRecord{}, fmt.Errorf("%w: address %s already recorded", domain.ErrConflict, rec.Address)
		}
		return domain.AddressRecord{}, err
	}
	return inserted, nil
}

func (r *RecordStore) Update(ctx context.Context, rec domain.AddressRecord) (domain.AddressRecord, error) {
	parsedID, err := parseRecordID(rec.ID)
	if err != nil {
		return domain.AddressRecord{}, fmt.Errorf("%w: invalid record id", domain.ErrInvalidInput)
	}

	row := r.pool.QueryRow(ctx,
		`UPDATE address_records
		 SET status = $1, hostname = $2, mac_address = $3, device_name = $4, assignee = $5, note = $6, updated_at = now()
		 WHERE id = $7 RETURNING `+recordColumns,
		string(rec.Status),
		rec.Metadata.Hostname, rec.Metadata.MACAddress, rec.Metadata.DeviceName, rec.Metadata.Assignee, rec.Metadata.Note,
		parsedID,
	)
	updated, err := scanRecord(row)
	if err != nil {
		if isNoRows(err) {
			return domain.AddressRecord{}, domain.ErrNotFound
		}
		return domain.AddressRecord{}, err
	}
	return updated, nil
}

func (r *RecordStore) BulkTransition(ctx context.Context, subnetID int64, start, end ipaddr.Addr, from, to domain.Status) (int64, error) {
	query := `UPDATE address_records SET status = $1, updated_at = now()
		 WHERE subnet_id = $2 AND status = $3 AND address BETWEEN $4 AND $5`
	if to == domain.StatusAvailable {
		query = `UPDATE address_records
		 SET status = $1, hostname = '', mac_address = '', device_name = '', assignee = '', note = '', updated_at = now()
		 WHERE subnet_id = $2 AND status = $3 AND address BETWEEN $4 AND $5`
	}
	tag, err := r.pool.Exec(ctx, query, string(to), subnetID, string(from), start.NetIP(), end.NetIP())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func collectRecords(rows pgx.Rows) ([]domain.AddressRecord, error) {
	var out []domain.AddressRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanRecord(row rowScanner) (domain.AddressRecord, error) {
	var (
		rec  domain.AddressRecord
		id   pgtype.UUID
		addr netip.Addr
	)
	err := row.Scan(&id, &rec.SubnetID, &addr, &rec.Status,
		&rec.Metadata.Hostname, &rec.Metadata.MACAddress, &rec.Metadata.DeviceName, &rec.Metadata.Assignee, &rec.Metadata.Note,
		&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return domain.AddressRecord{}, err
	}
	rec.ID = domain.AddressRecordID(id.String())
	rec.Address = ipaddr.FromNetIP(addr)
	return rec, nil
}

func parseRecordID(id domain.AddressRecordID) (pgtype.UUID, error) {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return pgtype.UUID{}, err
	}

	var parsed pgtype.UUID
	copy(parsed.Bytes[:], u[:])
	parsed.Valid = true

	return parsed, nil
}
