// Package users provides a PostgreSQL-backed repository for user identity
// records.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"dialog/internal/common"
	"dialog/internal/dbx"
	"dialog/internal/server/models"
)

// Postgres error codes relevant to this repository.
const (
	pgUniqueViolation           = "23505"
	pgInvalidTextRepresentation = "22P02"
)

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user. The login-handle uniqueness check and the
// insert are a single atomic statement; a unique violation surfaces as
// common.ErrorConflict.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (id, login_handle, display_name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.LoginHandle, user.DisplayName, user.PasswordHash).Scan(&user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// GetByID returns the user with the given id, or common.ErrorNotFound. An id
// that is not a valid uuid matches no user, so the failed cast is also a
// not-found rather than a server fault.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, login_handle, display_name, password_hash, created_at
		FROM users
		WHERE id = $1
	`
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.LoginHandle, &user.DisplayName, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepresentation {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// GetByLoginHandle returns the user owning the handle (case-sensitive
// comparison), or common.ErrorNotFound.
func (r *PostgresRepository) GetByLoginHandle(ctx context.Context, handle string) (*models.User, error) {
	query := `
		SELECT id, login_handle, display_name, password_hash, created_at
		FROM users
		WHERE login_handle = $1
	`
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, handle).Scan(
		&user.ID, &user.LoginHandle, &user.DisplayName, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// SearchByDisplayName performs a case-insensitive substring match against
// display names. The pattern must already have ILIKE metacharacters escaped
// with a backslash; it is wrapped in %...% here. Results are ordered by
// display name, then id, for stable pagination.
func (r *PostgresRepository) SearchByDisplayName(ctx context.Context, pattern string, limit int) ([]models.DirectoryEntry, error) {
	query := `
		SELECT id, display_name
		FROM users
		WHERE display_name ILIKE $1 ESCAPE '\'
		ORDER BY display_name, id
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, "%"+pattern+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	entries := []models.DirectoryEntry{}
	for rows.Next() {
		var e models.DirectoryEntry
		if err := rows.Scan(&e.ID, &e.DisplayName); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entries, nil
}
