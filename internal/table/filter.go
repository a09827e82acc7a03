package table

// filter.go evaluates the declarative per-type filter-field list against a
// document slice. A document survives only if every populated constraint
// passes; an empty or absent constraint always passes. Evaluation is pure
// and order-preserving.

import (
	"strings"

	"github.com/taxdesk/taxdesk/internal/document"
)

// NumberRange is an inclusive numeric constraint. A nil bound is unbounded.
type NumberRange struct {
	Min *float64
	Max *float64
}

// DateRange is an inclusive date constraint. An empty bound is unbounded.
type DateRange struct {
	Start string
	End   string
}

// Filter maps filter-field names (employer, amountRange, dateRange, ...) to
// their constraints. Filters are scoped to one document type; the
// orchestrator keeps a separate Filter per type so state never leaks across
// a type switch.
type Filter struct {
	Select map[string][]string
	Number map[string]NumberRange
	Date   map[string]DateRange
}

// Empty reports whether no constraint is populated.
func (f Filter) Empty() bool {
	for _, vals := range f.Select {
		if len(vals) > 0 {
			return false
		}
	}
	for _, r := range f.Number {
		if r.Min != nil || r.Max != nil {
			return false
		}
	}
	for _, r := range f.Date {
		if r.Start != "" || r.End != "" {
			return false
		}
	}
	return true
}

// FilterDocuments returns the documents of the given type that pass every
// populated constraint. The input is never reordered or mutated.
func FilterDocuments(docs []document.Document, typ document.Type, filter Filter) []document.Document {
	fields := document.FilterFields(typ)

	out := make([]document.Document, 0, len(docs))
	for _, doc := range docs {
		if doc.Type() != typ {
			continue
		}
		if matchesAll(doc, fields, filter) {
			out = append(out, doc)
		}
	}
	return out
}

func matchesAll(doc document.Document, fields []document.FilterField, filter Filter) bool {
	for _, ff := range fields {
		switch ff.Kind {
		case document.FilterMultiSelect:
			vals := filter.Select[ff.Name]
			if len(vals) == 0 {
				continue
			}
			if !matchSelect(doc, ff.Column, vals) {
				return false
			}

		case document.FilterNumberRange:
			r, ok := filter.Number[ff.Name]
			if !ok || (r.Min == nil && r.Max == nil) {
				continue
			}
			if !matchNumber(doc, ff.Column, r) {
				return false
			}

		case document.FilterDateRange:
			r, ok := filter.Date[ff.Name]
			if !ok || (r.Start == "" && r.End == "") {
				continue
			}
			if !matchDate(doc, ff.Column, r) {
				return false
			}
		}
	}
	return true
}

func matchSelect(doc document.Document, col string, allowed []string) bool {
	v, ok := doc.Field(col)
	if !ok || v == nil {
		return false
	}
	s := stringify(v)
	for _, a := range allowed {
		if strings.EqualFold(s, a) {
			return true
		}
	}
	return false
}

func matchNumber(doc document.Document, col string, r NumberRange) bool {
	v, ok := doc.Field(col)
	if !ok {
		return false
	}
	f, valid := NormalizeAmount(v)
	if !valid {
		return false
	}
	if r.Min != nil && f < *r.Min {
		return false
	}
	if r.Max != nil && f > *r.Max {
		return false
	}
	return true
}

func matchDate(doc document.Document, col string, r DateRange) bool {
	v, ok := doc.Field(col)
	if !ok {
		return false
	}
	s, isStr := v.(string)
	if !isStr {
		return false
	}
	t, valid := ParseDate(s)
	if !valid {
		return false
	}

	if r.Start != "" {
		start, ok := ParseDate(r.Start)
		if !ok || t.Before(start) {
			return false
		}
	}
	if r.End != "" {
		end, ok := ParseDate(r.End)
		if !ok || t.After(end) {
			return false
		}
	}
	return true
}
