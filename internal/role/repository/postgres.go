package repository

import (
	"context"
	"database/sql"
	"errors"

	"blog-platform/backend/internal/role/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a role repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByCode returns the role for code, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByCode(ctx context.Context, code domain.Code) (*domain.Role, error) {
	return r.getOne(ctx, `SELECT id, code, name FROM roles WHERE code = $1`, string(code))
}

// GetByName returns the role for the display name, or nil if not found.
func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	return r.getOne(ctx, `SELECT id, code, name FROM roles WHERE name = $1`, name)
}

// Create persists the role. The role must have ID set; it is not assigned by this method.
func (r *PostgresRepository) Create(ctx context.Context, role *domain.Role) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO roles (id, code, name) VALUES ($1, $2, $3)`,
		role.ID, string(role.Code), role.Name,
	)
	return err
}

func (r *PostgresRepository) getOne(ctx context.Context, query, arg string) (*domain.Role, error) {
	var role domain.Role
	var code string
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&role.ID, &code, &role.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	role.Code = domain.Code(code)
	return &role, nil
}
