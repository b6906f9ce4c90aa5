package db

import (
	"context"
	"net/netip"

	"github.com/Flarenzy/ipam-engine/internal/domain"
	"github.com/Flarenzy/ipam-engine/internal/ipaddr"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubnetRepository struct {
	pool *pgxpool.Pool
}

func NewSubnetRepository(pool *pgxpool.Pool) *SubnetRepository {
	return &SubnetRepository{pool: pool}
}

const subnetColumns = "id, network, prefix, parent_id, description, created_at, updated_at"

func (r *SubnetRepository) List(ctx context.Context) ([]domain.Subnet, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+subnetColumns+" FROM subnets ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Subnet
	for rows.Next() {
		subnet, err := scanSubnet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, subnet)
	}
	return out, rows.Err()
}

func (r *SubnetRepository) FindByID(ctx context.Context, id int64) (domain.Subnet, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+subnetColumns+" FROM subnets WHERE id = $1", id)
	subnet, err := scanSubnet(row)
	if err != nil {
		if isNoRows(err) {
			return domain.Subnet{}, domain.ErrNotFound
		}
		return domain.Subnet{}, err
	}
	return subnet, nil
}

func (r *SubnetRepository) Create(ctx context.Context, input domain.CreateSubnetRecord) (domain.Subnet, error) {
	row := r.pool.QueryRow(ctx,
		"INSERT INTO subnets (network, prefix, parent_id, description) VALUES ($1, $2, $3, $4) RETURNING "+subnetColumns,
		input.Network.NetIP(), input.Prefix, input.ParentID, input.Description,
	)
	return scanSubnet(row)
}

func (r *SubnetRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM subnets WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubnet(row rowScanner) (domain.Subnet, error) {
	var (
		subnet  domain.Subnet
		network netip.Addr
	)
	err := row.Scan(&subnet.ID, &network, &subnet.Prefix, &subnet.ParentID, &subnet.Description, &subnet.CreatedAt, &subnet.UpdatedAt)
	if err != nil {
		return domain.Subnet{}, err
	}
	subnet.Network = ipaddr.FromNetIP(network)
	return subnet, nil
}
