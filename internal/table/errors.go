package table

import (
	"fmt"
	"strings"

	"github.com/taxdesk/taxdesk/internal/store"
)

// ValidationError reports a value rejected locally, before any remote call
// was made.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// RemoteError reports a failed remote call. It is produced by the store
// client; the alias makes the engine's full error taxonomy available from
// this package.
type RemoteError = store.RemoteError

// PartialBulkFailure reports a bulk operation in which some per-item calls
// failed. Items that succeeded stay applied server-side; there is no
// compensating rollback for deletes. First preserves the first failure for
// user-visible reporting.
type PartialBulkFailure struct {
	FailedIDs []string
	First     error
}

func (e *PartialBulkFailure) Error() string {
	return fmt.Sprintf("%d of bulk operation failed (ids: %s): %v",
		len(e.FailedIDs), strings.Join(e.FailedIDs, ", "), e.First)
}

func (e *PartialBulkFailure) Unwrap() error { return e.First }
