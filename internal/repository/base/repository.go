package base

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the SQLSTATE Postgres returns when a unique index rejects a write.
const uniqueViolation = "23505"

// DB is the part of *pgxpool.Pool (and pgx.Tx) the repositories need
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repository holds the connection shared by the concrete repositories
type Repository struct {
	db DB
}

// NewRepository creates a base repository
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// QueryRow runs a query expected to return at most one row
func (r *Repository) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return r.db.QueryRow(ctx, query, args...)
}

// Query runs a query returning many rows
func (r *Repository) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return r.db.Query(ctx, query, args...)
}

// IsNotFound reports a "no rows" result
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsUniqueViolation reports a write rejected by a unique constraint
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
