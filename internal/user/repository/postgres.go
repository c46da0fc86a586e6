package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	roledomain "blog-platform/backend/internal/role/domain"
	"blog-platform/backend/internal/user/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a user repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const baseColumns = `u.id, u.name, u.email, u.is_active, u.refresh_token_expires_at,
	u.created_at, u.updated_at, r.id, r.code, r.name`

// GetByEmail returns the user with the given email, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string, includePasswordHash bool) (*domain.User, error) {
	query := `SELECT ` + baseColumns + `, u.password_hash
		FROM users u JOIN roles r ON r.id = u.role_id WHERE u.email = $1`
	if !includePasswordHash {
		query = `SELECT ` + baseColumns + `, ''
			FROM users u JOIN roles r ON r.id = u.role_id WHERE u.email = $1`
	}
	return r.scanOne(ctx, query, email, scanPassword)
}

// GetByID returns the user for id, or nil if not found. The stored refresh
// digest is only selected when includeRefreshHash is set.
func (r *PostgresRepository) GetByID(ctx context.Context, id string, includeRefreshHash bool) (*domain.User, error) {
	query := `SELECT ` + baseColumns + `, COALESCE(u.refresh_token_hash, '')
		FROM users u JOIN roles r ON r.id = u.role_id WHERE u.id = $1`
	if !includeRefreshHash {
		query = `SELECT ` + baseColumns + `, ''
			FROM users u JOIN roles r ON r.id = u.role_id WHERE u.id = $1`
	}
	return r.scanOne(ctx, query, id, scanRefreshHash)
}

// ExistsByEmail reports whether a user with the given email exists.
func (r *PostgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	return exists, err
}

// Create persists the user to the database. The user must have ID and Role.ID
// set. A unique-constraint violation on email is mapped to ErrDuplicateEmail
// so the caller never sees a raw driver error for the register race.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, is_active, role_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.IsActive, u.Role.ID, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// UpdateRefreshState replaces the stored refresh digest and expiry; nil clears both.
func (r *PostgresRepository) UpdateRefreshState(ctx context.Context, id string, refreshTokenHash *string, expiresAt *time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET refresh_token_hash = $2, refresh_token_expires_at = $3, updated_at = $4
		 WHERE id = $1`,
		id, stringToNullString(refreshTokenHash), timeToNullTime(expiresAt), time.Now().UTC(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type hashTarget int

const (
	scanPassword hashTarget = iota
	scanRefreshHash
)

func (r *PostgresRepository) scanOne(ctx context.Context, query, arg string, target hashTarget) (*domain.User, error) {
	var (
		u           domain.User
		roleCode    string
		refreshExp  sql.NullTime
		hashedValue string
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.IsActive, &refreshExp,
		&u.CreatedAt, &u.UpdatedAt,
		&u.Role.ID, &roleCode, &u.Role.Name,
		&hashedValue,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Role.Code = roledomain.Code(roleCode)
	u.RefreshTokenExpiresAt = nullTimeToPtr(refreshExp)
	switch target {
	case scanPassword:
		u.PasswordHash = hashedValue
	case scanRefreshHash:
		u.RefreshTokenHash = hashedValue
	}
	return &u, nil
}

func stringToNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func timeToNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullTimeToPtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	return &n.Time
}
