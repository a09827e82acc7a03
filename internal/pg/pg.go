// Package pg implements document persistence on PostgreSQL.
//
// All four document variants live in one wide documents table discriminated
// by doc_type; variant-specific columns are NULL for the other variants.
// Expense amount and date are stored as raw text because extraction may
// leave them decorated ("$45.00") or as the Missing placeholder. Every field
// update is recorded in document_changes.
package pg

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when a document id does not exist, including a
// repeat delete of an already-deleted id.
var ErrNotFound = errors.New("document not found")

// FieldError reports a rejected field value.
type FieldError struct {
	Field   string
	Value   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Repo is the PostgreSQL-backed document repository.
type Repo struct {
	pool *pgxpool.Pool
}

// NewRepo creates a repository over the given connection pool.
func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Bootstrap creates the schema if it does not exist.
func (r *Repo) Bootstrap(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("bootstrap schema: %w", err)
	}
	return nil
}
