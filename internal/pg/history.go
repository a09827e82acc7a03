package pg

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
)

// Change is one recorded field edit.
type Change struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"documentId"`
	Field      string    `json:"field"`
	OldValue   string    `json:"oldValue"`
	NewValue   string    `json:"newValue"`
	ChangedAt  time.Time `json:"changedAt"`
}

// recordChange appends one edit to the change log inside the update
// transaction so the log never references an update that did not land.
func recordChange(ctx context.Context, tx pgx.Tx, docID int64, field, oldValue, newValue string) error {
	_, err := tx.Exec(ctx,
		"INSERT INTO document_changes (document_id, field, old_value, new_value) VALUES ($1, $2, $3, $4)",
		docID, field, oldValue, newValue,
	)
	if err != nil {
		return fmt.Errorf("record change: %w", err)
	}
	return nil
}

// History returns the recorded edits for one document, newest first.
func (r *Repo) History(ctx context.Context, id string) ([]Change, error) {
	num, err := parseID(id)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, document_id, field, old_value, new_value, changed_at
		 FROM document_changes WHERE document_id = $1 ORDER BY id DESC`, num)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var changes []Change
	for rows.Next() {
		var (
			changeID int64
			docID    int64
			c        Change
		)
		if err := rows.Scan(&changeID, &docID, &c.Field, &c.OldValue, &c.NewValue, &c.ChangedAt); err != nil {
			return nil, err
		}
		c.ID = strconv.FormatInt(changeID, 10)
		c.DocumentID = strconv.FormatInt(docID, 10)
		changes = append(changes, c)
	}
	return changes, rows.Err()
}
