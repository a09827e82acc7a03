package table

// coordinator.go owns the single in-memory document list and mediates every
// mutation against the remote store: optimistic local patch, remote call,
// then a reconciling full re-fetch. Snapshots carry a generation number so a
// rapid sequence of mutations can never race a stale snapshot into view, and
// a snapshot fetched for a previous active type is dropped on arrival.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/taxdesk/taxdesk/internal/document"
	"github.com/taxdesk/taxdesk/internal/store"
)

// Coordinator applies edits and deletes for one active document type.
type Coordinator struct {
	store store.Store

	mu       sync.Mutex
	typ      document.Type
	docs     []document.Document
	sel      *Selection
	fetchGen uint64
}

// NewCoordinator creates a coordinator for the given active type. The
// document list is empty until the first Refresh.
func NewCoordinator(st store.Store, typ document.Type) *Coordinator {
	return &Coordinator{
		store: st,
		typ:   typ,
		sel:   NewSelection(),
	}
}

// Documents returns a copy of the current snapshot.
func (c *Coordinator) Documents() []document.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]document.Document, len(c.docs))
	copy(out, c.docs)
	return out
}

// Selection returns the selection model. It is owned by the coordinator and
// cleared on type switches and successful bulk deletes.
func (c *Coordinator) Selection() *Selection {
	return c.sel
}

// Type returns the active document type.
func (c *Coordinator) Type() document.Type {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.typ
}

// SetType switches the active document type. The selection is cleared
// unconditionally (identifiers are not namespaced by type) and a fresh
// snapshot is fetched.
func (c *Coordinator) SetType(ctx context.Context, typ document.Type) error {
	c.mu.Lock()
	c.typ = typ
	c.docs = nil
	c.sel.Clear()
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// Refresh fetches an authoritative snapshot and installs it, unless a newer
// fetch started or the active type changed while this one was in flight.
func (c *Coordinator) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.fetchGen++
	gen := c.fetchGen
	typ := c.typ
	c.mu.Unlock()

	docs, err := c.store.List(ctx, typ)
	if err != nil {
		return asRemote(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.fetchGen || typ != c.typ {
		// Superseded; a newer snapshot is on its way or already installed.
		return nil
	}
	c.docs = docs
	return nil
}

// UpdateField normalizes value for the column kind, applies an optimistic
// local patch, issues the remote update, and reconciles with a re-fetch. On
// remote failure the re-fetch discards the optimistic patch and the error is
// returned to the caller.
func (c *Coordinator) UpdateField(ctx context.Context, id, fieldID, value string) error {
	if err := validateID(id); err != nil {
		return err
	}

	c.mu.Lock()
	typ := c.typ
	c.mu.Unlock()

	col, ok := document.ColumnByID(typ, fieldID)
	if !ok {
		return &ValidationError{Field: fieldID, Message: "unknown column for document type " + string(typ)}
	}

	norm, err := NormalizeFieldValue(col, value)
	if err != nil {
		return err
	}

	c.applyOptimistic(id, fieldID, norm)

	_, updateErr := c.store.Update(ctx, id, map[string]string{fieldID: wireValue(norm)})

	// Re-fetch after the remote call settles, success or failure: on
	// success it reconciles, on failure it rolls the optimistic patch back.
	refreshErr := c.Refresh(ctx)

	if updateErr != nil {
		return asRemote(updateErr)
	}
	return refreshErr
}

// DeleteOne issues a single remote delete. On failure the local state is
// untouched beyond a reconciling re-fetch; there is no automatic retry.
func (c *Coordinator) DeleteOne(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	if err := c.store.Delete(ctx, id); err != nil {
		_ = c.Refresh(ctx)
		return asRemote(err)
	}
	return c.Refresh(ctx)
}

// DeleteMany fans the per-id deletes out concurrently and awaits their
// collective settlement. Deletes that succeeded stay deleted server-side
// even when others fail; a PartialBulkFailure reports the failed ids and the
// first error. On full success the selection is cleared.
func (c *Coordinator) DeleteMany(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := validateID(id); err != nil {
			return err
		}
	}

	var (
		g        errgroup.Group
		resultMu sync.Mutex
		failed   []string
		first    error
	)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			if err := c.store.Delete(ctx, id); err != nil {
				resultMu.Lock()
				failed = append(failed, id)
				if first == nil {
					first = err
				}
				resultMu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	// Reconcile regardless of outcome so the view reflects whichever
	// deletes actually landed.
	refreshErr := c.Refresh(ctx)

	if len(failed) > 0 {
		return &PartialBulkFailure{FailedIDs: failed, First: asRemote(first)}
	}

	c.mu.Lock()
	c.sel.Clear()
	c.mu.Unlock()
	return refreshErr
}

// Upload stores a new document image for the active type and re-fetches.
func (c *Coordinator) Upload(ctx context.Context, filename string, content io.Reader) (document.Document, error) {
	c.mu.Lock()
	typ := c.typ
	c.mu.Unlock()

	doc, err := c.store.Upload(ctx, filename, content, typ)
	if err != nil {
		return nil, asRemote(err)
	}
	return doc, c.Refresh(ctx)
}

// applyOptimistic patches the in-memory copy of one document. A missing id
// is silently ignored; the follow-up re-fetch is authoritative either way.
func (c *Coordinator) applyOptimistic(id, fieldID string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, doc := range c.docs {
		if doc.ID() != id {
			continue
		}
		patched, err := document.Patch(doc, map[string]any{fieldID: value})
		if err == nil {
			c.docs[i] = patched
		}
		return
	}
}

// NormalizeFieldValue validates and canonicalizes a raw edit value for a
// column: amounts become floats with currency decoration stripped, dates are
// canonicalized to ISO form, closed-list values take their canonical casing,
// text is trimmed.
func NormalizeFieldValue(col document.Column, value string) (any, error) {
	switch col.Kind {
	case document.KindAmount:
		f, ok := NormalizeAmount(value)
		if !ok {
			return nil, &ValidationError{Field: col.ID, Value: value, Message: "invalid amount"}
		}
		return f, nil

	case document.KindDate:
		t, ok := ParseDate(value)
		if !ok {
			return nil, &ValidationError{Field: col.ID, Value: value, Message: "invalid date (use YYYY-MM-DD)"}
		}
		return t.Format("2006-01-02"), nil

	case document.KindSelect:
		for _, opt := range col.Options {
			if strings.EqualFold(opt, value) {
				return opt, nil
			}
		}
		return nil, &ValidationError{Field: col.ID, Value: value, Message: "value is not in the allowed list"}
	}

	return strings.TrimSpace(value), nil
}

// wireValue renders a normalized field value in the canonical string form the
// persistence service's PATCH body carries. Amounts normalize to floats
// locally but travel as plain numeric strings; everything else is already a
// string.
func wireValue(norm any) string {
	switch v := norm.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	}
	return fmt.Sprint(norm)
}

func validateID(id string) error {
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return &ValidationError{Field: "id", Value: id, Message: "identifier must be numeric"}
	}
	return nil
}

func asRemote(err error) error {
	if err == nil {
		return nil
	}
	var re *RemoteError
	if errors.As(err, &re) {
		return re
	}
	return &RemoteError{Message: err.Error()}
}
