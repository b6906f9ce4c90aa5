package db

import (
	"context"
	"net/netip"

	"github.com/Flarenzy/ipam-engine/internal/domain"
	"github.com/Flarenzy/ipam-engine/internal/ipaddr"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationStore struct {
	pool *pgxpool.Pool
}

func NewReservationStore(pool *pgxpool.Pool) *ReservationStore {
	return &ReservationStore{pool: pool}
}

const reservationColumns = "id, subnet_id, start_address, end_address, purpose, owner, expires_at, created_at"

func (r *ReservationStore) ListBySubnet(ctx context.Context, subnetID int64) ([]domain.Reservation, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE subnet_id = $1 ORDER BY id",
		subnetID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *ReservationStore) FindByID(ctx context.Context, id int64) (domain.Reservation, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+reservationColumns+" FROM reservations WHERE id = $1", id)
	res, err := scanReservation(row)
	if err != nil {
		if isNoRows(err) {
			return domain.Reservation{}, domain.ErrNotFound
		}
		return domain.Reservation{}, err
	}
	return res, nil
}

func (r *ReservationStore) Create(ctx context.Context, res domain.Reservation) (domain.Reservation, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO reservations (subnet_id, start_address, end_address, purpose, owner, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING `+reservationColumns,
		res.SubnetID, res.Start.NetIP(), res.End.NetIP(), res.Purpose, res.Owner, res.ExpiresAt,
	)
	return scanReservation(row)
}

func (r *ReservationStore) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM reservations WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanReservation(row rowScanner) (domain.Reservation, error) {
	var (
		res        domain.Reservation
		start, end netip.Addr
	)
	err := row.Scan(&res.ID, &res.SubnetID, &start, &end, &res.Purpose, &res.Owner, &res.ExpiresAt, &res.CreatedAt)
	if err != nil {
		return domain.Reservation{}, err
	}
	res.Start = ipaddr.FromNetIP(start)
	res.End = ipaddr.FromNetIP(end)
	return res, nil
}
