package table

// sort.go applies the single active sort spec to a filtered document slice.
// The sort is stable: equal keys keep their relative input order, which is
// also what makes the invalid-date and null policies deterministic.

import (
	"sort"

	"github.com/taxdesk/taxdesk/internal/document"
)

// SortDocuments returns the documents ordered by spec. A nil spec or empty
// column returns a copy in the input order. The input slice is not mutated.
func SortDocuments(docs []document.Document, spec *SortSpec) []document.Document {
	out := make([]document.Document, len(docs))
	copy(out, docs)

	if spec == nil || spec.Column == "" {
		return out
	}

	dir := spec.Dir
	if dir != Desc {
		dir = Asc
	}

	sort.SliceStable(out, func(i, j int) bool {
		return docLess(out[i], out[j], spec.Column, dir)
	})
	return out
}

func docLess(a, b document.Document, col string, dir Direction) bool {
	ka := docKey(a, col)
	kb := docKey(b, col)
	return ka.less(kb, dir)
}

// docKey resolves a document's sort key for a column, using the column's
// declared kind for that document's own type.
func docKey(d document.Document, col string) sortKey {
	kind := document.KindText
	if c, ok := document.ColumnByID(d.Type(), col); ok {
		kind = c.Kind
	}
	v, ok := d.Field(col)
	return makeKey(v, ok, kind)
}
