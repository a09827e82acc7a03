package table

// editor.go is the per-cell edit state machine. At most one cell of a table
// is editable at a time; the orchestrator enforces that by owning a single
// CellEditor. Transitions:
//
//	Viewing -> Editing   Begin on an editable column, seeding the pending
//	                     value from the current display value
//	Editing -> Saving    Commit, guarded by per-kind validation (a date that
//	                     does not parse refuses the commit and stays Editing)
//	Saving  -> Viewing   remote acknowledgment
//	Saving  -> Editing   remote failure; the attempted value is retained so
//	                     the user can retry, and the error is surfaced
//	Editing -> Viewing   Cancel; the pending value is discarded, no remote call

import (
	"context"
	"fmt"

	"github.com/taxdesk/taxdesk/internal/document"
)

// CellState is the edit state of the active cell.
type CellState int

const (
	Viewing CellState = iota
	Editing
	Saving
)

func (s CellState) String() string {
	switch s {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	}
	return fmt.Sprintf("CellState(%d)", int(s))
}

// CellEditor governs one table's active edit session.
type CellEditor struct {
	coord *Coordinator

	state    CellState
	docID    string
	col      document.Column
	original string
	pending  string
}

// NewCellEditor creates an editor bound to a coordinator.
func NewCellEditor(coord *Coordinator) *CellEditor {
	return &CellEditor{coord: coord}
}

// State returns the current edit state.
func (e *CellEditor) State() CellState { return e.state }

// Pending returns the pending value of the active edit session.
func (e *CellEditor) Pending() string { return e.pending }

// Active returns the document id and column id of the active session.
func (e *CellEditor) Active() (docID, fieldID string) {
	return e.docID, e.col.ID
}

// Begin activates editing on a cell, seeding the pending value from the
// current display value. Only editable columns accept activation, and a cell
// already Saving cannot be re-activated.
func (e *CellEditor) Begin(doc document.Document, fieldID string) error {
	if e.state == Saving {
		return &ValidationError{Field: fieldID, Message: "a save is in progress"}
	}

	col, ok := document.ColumnByID(doc.Type(), fieldID)
	if !ok {
		return &ValidationError{Field: fieldID, Message: "unknown column for document type " + string(doc.Type())}
	}
	if !col.Editable {
		return &ValidationError{Field: fieldID, Message: "column is not editable"}
	}

	v, _ := doc.Field(fieldID)
	display := ""
	if v != nil {
		display = stringify(v)
	}

	e.state = Editing
	e.docID = doc.ID()
	e.col = col
	e.original = display
	e.pending = display
	return nil
}

// SetPending replaces the pending value while Editing.
func (e *CellEditor) SetPending(value string) {
	if e.state == Editing {
		e.pending = value
	}
}

// Commit validates the pending value and saves it through the coordinator.
// A validation failure keeps the session in Editing and issues no remote
// call. A remote failure returns the session to Editing with the attempted
// value retained, and the error is returned for user-visible reporting. A
// commit while a save is already in flight is ignored.
func (e *CellEditor) Commit(ctx context.Context) error {
	switch e.state {
	case Viewing:
		return nil
	case Saving:
		// Conceptual per-document serialization: the second commit on a
		// saving cell is dropped rather than queued.
		return nil
	}

	// Validate before leaving Editing so an invalid value never reaches
	// the network layer.
	if _, err := NormalizeFieldValue(e.col, e.pending); err != nil {
		return err
	}

	e.state = Saving
	err := e.coord.UpdateField(ctx, e.docID, e.col.ID, e.pending)
	if err != nil {
		e.state = Editing
		return err
	}

	e.state = Viewing
	e.original = e.pending
	return nil
}

// Cancel aborts the edit session, discarding the pending value. No remote
// call is made. Canceling while Saving is ignored; the in-flight save wins.
func (e *CellEditor) Cancel() {
	if e.state != Editing {
		return
	}
	e.state = Viewing
	e.pending = e.original
}
