package table

// orchestrator.go composes the pipeline per active document type: snapshot
// -> filter -> sort -> selection join, plus the action surface (edit,
// delete, bulk delete, filter and sort changes). Filters and sort specs are
// kept per type so switching tabs never leaks state between types.

import (
	"context"

	"github.com/taxdesk/taxdesk/internal/document"
	"github.com/taxdesk/taxdesk/internal/store"
)

// Row is one rendering-ready table row.
type Row struct {
	Doc      document.Document
	Selected bool
}

// View is the rendering-ready output for the active type. EditDoc and
// EditField identify the cell with an active edit session, empty when the
// table is in plain viewing mode.
type View struct {
	Type      document.Type
	Columns   []document.Column
	Rows      []Row
	Sort      *SortSpec
	Filter    Filter
	Selected  int
	EditDoc   string
	EditField string
}

// Orchestrator drives one document table through the engine.
type Orchestrator struct {
	coord   *Coordinator
	editor  *CellEditor
	options *OptionsCache

	filters map[document.Type]Filter
	sorts   map[document.Type]*SortSpec
}

// NewOrchestrator wires an orchestrator over a store, starting on the given
// document type. The options cache is injected so it can be shared with
// other consumers.
func NewOrchestrator(st store.Store, typ document.Type, opts *OptionsCache) *Orchestrator {
	coord := NewCoordinator(st, typ)
	return &Orchestrator{
		coord:   coord,
		editor:  NewCellEditor(coord),
		options: opts,
		filters: make(map[document.Type]Filter),
		sorts:   make(map[document.Type]*SortSpec),
	}
}

// Load fetches the initial snapshot for the active type.
func (o *Orchestrator) Load(ctx context.Context) error {
	return o.coord.Refresh(ctx)
}

// SetType switches the active document type. The selection is cleared; the
// per-type filter and sort of the new type (if any) apply.
func (o *Orchestrator) SetType(ctx context.Context, typ document.Type) error {
	if o.editor.State() == Editing {
		o.editor.Cancel()
	}
	return o.coord.SetType(ctx, typ)
}

// SetFilter replaces the filter of the active type.
func (o *Orchestrator) SetFilter(f Filter) {
	o.filters[o.coord.Type()] = f
}

// SetSort replaces the sort spec of the active type. A nil spec restores
// natural order.
func (o *Orchestrator) SetSort(spec *SortSpec) {
	o.sorts[o.coord.Type()] = spec
}

// ToggleSort cycles the sort on a column the way a header click does:
// ascending first, then flipped on repeat clicks.
func (o *Orchestrator) ToggleSort(column string) {
	typ := o.coord.Type()
	cur := o.sorts[typ]
	if cur != nil && cur.Column == column {
		dir := Asc
		if cur.Dir == Asc {
			dir = Desc
		}
		o.sorts[typ] = &SortSpec{Column: column, Dir: dir}
		return
	}
	o.sorts[typ] = &SortSpec{Column: column, Dir: Asc}
}

// View assembles the rendering-ready row set for the active type.
func (o *Orchestrator) View() View {
	typ := o.coord.Type()
	filter := o.filters[typ]
	spec := o.sorts[typ]
	sel := o.coord.Selection()

	docs := FilterDocuments(o.coord.Documents(), typ, filter)
	docs = SortDocuments(docs, spec)

	rows := make([]Row, len(docs))
	for i, d := range docs {
		rows[i] = Row{Doc: d, Selected: sel.IsSelected(d.ID())}
	}

	var editDoc, editField string
	if o.editor.State() != Viewing {
		editDoc, editField = o.editor.Active()
	}

	return View{
		Type:      typ,
		Columns:   document.Columns(typ),
		Rows:      rows,
		Sort:      spec,
		Filter:    filter,
		Selected:  sel.Count(),
		EditDoc:   editDoc,
		EditField: editField,
	}
}

// VisibleIDs returns the ids of the currently filtered and sorted rows, the
// collection SelectAllVisible operates on.
func (o *Orchestrator) VisibleIDs() []string {
	view := o.View()
	ids := make([]string, len(view.Rows))
	for i, r := range view.Rows {
		ids[i] = r.Doc.ID()
	}
	return ids
}

// ToggleSelect toggles one row's selection.
func (o *Orchestrator) ToggleSelect(id string) {
	o.coord.Selection().Toggle(id)
}

// SelectAllVisible selects exactly the currently visible rows.
func (o *Orchestrator) SelectAllVisible() {
	o.coord.Selection().SelectAll(o.VisibleIDs())
}

// ClearSelection empties the selection.
func (o *Orchestrator) ClearSelection() {
	o.coord.Selection().Clear()
}

// Editor exposes the cell edit state machine.
func (o *Orchestrator) Editor() *CellEditor { return o.editor }

// Coordinator exposes the mutation coordinator.
func (o *Orchestrator) Coordinator() *Coordinator { return o.coord }

// Options returns the advisory filter option lists, from cache.
func (o *Orchestrator) Options(ctx context.Context) store.FilterOptions {
	if o.options == nil {
		return store.FilterOptions{}
	}
	return o.options.Get(ctx)
}

// DeleteSelected bulk-deletes the selected rows.
func (o *Orchestrator) DeleteSelected(ctx context.Context) error {
	return o.coord.DeleteMany(ctx, o.coord.Selection().IDs())
}
