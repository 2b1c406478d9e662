package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// AssetFilter captures asset listing parameters. Location scoping follows the
// same rule as tickets: a scoped empty set matches no rows.
type AssetFilter struct {
	Type              *string
	Status            *domain.AssetStatus
	AssignedProfileID *string
	LocationScoped    bool
	LocationIDs       []string
	Limit             int
	Offset            int
}

// AssetRepository manages asset inventory persistence.
type AssetRepository interface {
	Create(ctx context.Context, asset *domain.Asset) error
	Update(ctx context.Context, asset *domain.Asset) error
	GetByID(ctx context.Context, id string) (*domain.Asset, error)
	GetByTag(ctx context.Context, tag string) (*domain.Asset, error)
	ListWithFilter(ctx context.Context, filter AssetFilter) ([]domain.Asset, error)
}

type assetRepository struct {
	pool *pgxpool.Pool
}

// NewAssetRepository builds the repository.
func NewAssetRepository(pool *pgxpool.Pool) AssetRepository {
	return &assetRepository{pool: pool}
}

const assetColumns = `id, tag, type, status, specs, assigned_profile_id, location_id, created_at, updated_at`

func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	const query = `
        INSERT INTO assets (tag, type, status, specs, assigned_profile_id, location_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		asset.Tag,
		asset.Type,
		asset.Status,
		asset.Specs,
		asset.AssignedProfileID,
		asset.LocationID,
	).Scan(&asset.ID, &asset.CreatedAt, &asset.UpdatedAt)
}

func (r *assetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	const query = `
        UPDATE assets SET tag=$1, type=$2, status=$3, specs=$4, assigned_profile_id=$5, location_id=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		asset.Tag,
		asset.Type,
		asset.Status,
		asset.Specs,
		asset.AssignedProfileID,
		asset.LocationID,
		asset.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *assetRepository) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *assetRepository) GetByTag(ctx context.Context, tag string) (*domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE tag=$1`
	return r.fetchSingle(ctx, query, tag)
}

func (r *assetRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Asset, error) {
	var asset domain.Asset
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&asset.ID,
		&asset.Tag,
		&asset.Type,
		&asset.Status,
		&asset.Specs,
		&asset.AssignedProfileID,
		&asset.LocationID,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) ListWithFilter(ctx context.Context, filter AssetFilter) ([]domain.Asset, error) {
	base := `SELECT ` + assetColumns + ` FROM assets`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, fmt.Sprintf("type=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.AssignedProfileID != nil {
		args = append(args, *filter.AssignedProfileID)
		clauses = append(clauses, fmt.Sprintf("assigned_profile_id=$%d", len(args)))
	}
	if filter.LocationScoped {
		if len(filter.LocationIDs) == 0 {
			clauses = append(clauses, "FALSE")
		} else {
			placeholders := make([]string, len(filter.LocationIDs))
			for i, id := range filter.LocationIDs {
				args = append(args, id)
				placeholders[i] = fmt.Sprintf("$%d", len(args))
			}
			clauses = append(clauses, fmt.Sprintf("location_id IN (%s)", strings.Join(placeholders, ",")))
		}
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY tag LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Asset
	for rows.Next() {
		var asset domain.Asset
		if err := rows.Scan(
			&asset.ID,
			&asset.Tag,
			&asset.Type,
			&asset.Status,
			&asset.Specs,
			&asset.AssignedProfileID,
			&asset.LocationID,
			&asset.CreatedAt,
			&asset.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, asset)
	}
	return result, rows.Err()
}
