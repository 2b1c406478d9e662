package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// LocationRepository manages location persistence.
type LocationRepository interface {
	Create(ctx context.Context, location *domain.Location) error
	Update(ctx context.Context, location *domain.Location) error
	GetByID(ctx context.Context, id string) (*domain.Location, error)
	GetByCode(ctx context.Context, code string) (*domain.Location, error)
	List(ctx context.Context, includeInactive bool) ([]domain.Location, error)
}

type locationRepository struct {
	pool *pgxpool.Pool
}

// NewLocationRepository builds the repository.
func NewLocationRepository(pool *pgxpool.Pool) LocationRepository {
	return &locationRepository{pool: pool}
}

const locationColumns = `id, code, name, address, contact_email, contact_phone, active, created_at, updated_at`

func (r *locationRepository) Create(ctx context.Context, location *domain.Location) error {
	const query = `
        INSERT INTO locations (code, name, address, contact_email, contact_phone, active)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		location.Code,
		location.Name,
		location.Address,
		location.ContactEmail,
		location.ContactPhone,
		location.Active,
	).Scan(&location.ID, &location.CreatedAt, &location.UpdatedAt)
}

func (r *locationRepository) Update(ctx context.Context, location *domain.Location) error {
	const query = `
        UPDATE locations SET code=$1, name=$2, address=$3, contact_email=$4, contact_phone=$5, active=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		location.Code,
		location.Name,
		location.Address,
		location.ContactEmail,
		location.ContactPhone,
		location.Active,
		location.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *locationRepository) GetByID(ctx context.Context, id string) (*domain.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *locationRepository) GetByCode(ctx context.Context, code string) (*domain.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE code=$1`
	return r.fetchSingle(ctx, query, code)
}

func (r *locationRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Location, error) {
	var location domain.Location
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&location.ID,
		&location.Code,
		&location.Name,
		&location.Address,
		&location.ContactEmail,
		&location.ContactPhone,
		&location.Active,
		&location.CreatedAt,
		&location.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *locationRepository) List(ctx context.Context, includeInactive bool) ([]domain.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations`
	if !includeInactive {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY code`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Location
	for rows.Next() {
		var location domain.Location
		if err := rows.Scan(
			&location.ID,
			&location.Code,
			&location.Name,
			&location.Address,
			&location.ContactEmail,
			&location.ContactPhone,
			&location.Active,
			&location.CreatedAt,
			&location.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, location)
	}
	return result, rows.Err()
}
