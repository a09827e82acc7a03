// Package store defines the contract of the remote persistence service the
// table engine mediates against, plus the HTTP client implementation.
package store

import (
	"context"
	"fmt"
	"io"

	"github.com/taxdesk/taxdesk/internal/document"
)

// RemoteError reports a failed remote call. Status carries the HTTP status
// the persistence service answered with, or 0 when the transport itself
// failed before a response arrived.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("remote error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("remote error: %s", e.Message)
}

// FilterOptions are the advisory option lists for multi-select filters.
// Absence or fetch failure degrades to empty lists; it never blocks a table.
type FilterOptions struct {
	Categories     []string `json:"categories"`
	PaymentMethods []string `json:"payment_methods"`
	Statuses       []string `json:"statuses"`
	Vendors        []string `json:"vendors"`
}

// Store is the remote persistence contract. Every call is a suspension
// point; implementations must honor ctx cancellation.
type Store interface {
	// List returns a full snapshot, optionally type-filtered server-side.
	// An empty type returns all documents.
	List(ctx context.Context, typ document.Type) ([]document.Document, error)

	// Update applies a partial field update and returns the updated record.
	// Field values are transmitted in their canonical string form; the
	// service parses and validates them per column kind.
	Update(ctx context.Context, id string, fields map[string]string) (document.Document, error)

	// Delete removes one document. Deleting an id that no longer exists is
	// an error, never a silent success.
	Delete(ctx context.Context, id string) error

	// Upload stores a document image and creates its pending record.
	Upload(ctx context.Context, filename string, content io.Reader, typ document.Type) (document.Document, error)

	// Options returns the advisory filter option lists.
	Options(ctx context.Context) (FilterOptions, error)
}
