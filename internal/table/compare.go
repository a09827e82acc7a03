package table

// compare.go is the type-aware ordering library behind the sort pipeline.
// Values are reduced to sort keys first so the placement policies are
// explicit in one place:
//
//   - null/absent values (including amounts that cannot be normalized) sort
//     after every defined value, in both directions
//   - invalid dates sort to the end ascending and to the start descending;
//     two invalid dates preserve their input order
//   - currency-decorated strings are numerically normalized before comparison
//   - text compares case-insensitively

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/taxdesk/taxdesk/internal/document"
)

// Direction of a sort.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortSpec is the single active (column, direction) ordering instruction.
type SortSpec struct {
	Column string
	Dir    Direction
}

// amountJunk strips everything that is not part of a plain decimal number:
// currency symbols, thousands separators, surrounding text.
var amountJunk = regexp.MustCompile(`[^0-9.\-]`)

// NormalizeAmount reduces an amount value to a float64. Accepts native
// numbers and currency-decorated strings ("$1,234.56"). Returns false when
// the value carries no parseable number (nil, "", "Missing").
func NormalizeAmount(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		cleaned := amountJunk.ReplaceAllString(n, "")
		if cleaned == "" || cleaned == "-" {
			return 0, false
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
}

// ParseDate parses a date string against the accepted layouts. A value is
// valid only if it resolves to a real calendar date.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// sortKey is a value reduced to its comparable form.
type sortKey struct {
	null        bool
	invalidDate bool
	num         float64
	isNum       bool
	date        time.Time
	isDate      bool
	str         string
}

func makeKey(v any, ok bool, kind document.Kind) sortKey {
	if !ok || v == nil {
		return sortKey{null: true}
	}

	switch kind {
	case document.KindAmount:
		f, valid := NormalizeAmount(v)
		if !valid {
			return sortKey{null: true}
		}
		return sortKey{num: f, isNum: true}

	case document.KindDate:
		s, isStr := v.(string)
		if !isStr {
			return sortKey{null: true}
		}
		t, valid := ParseDate(s)
		if !valid {
			return sortKey{invalidDate: true}
		}
		return sortKey{date: t, isDate: true}
	}

	// Text and select columns; native numbers still compare numerically.
	switch n := v.(type) {
	case float64:
		return sortKey{num: n, isNum: true}
	case int:
		return sortKey{num: float64(n), isNum: true}
	case int64:
		return sortKey{num: float64(n), isNum: true}
	case string:
		return sortKey{str: strings.ToLower(n)}
	}
	return sortKey{str: strings.ToLower(stringify(v))}
}

// less reports whether a orders before b under the given direction.
func (a sortKey) less(b sortKey, dir Direction) bool {
	// Nulls are pinned after all defined values regardless of direction.
	if a.null || b.null {
		if a.null && b.null {
			return false
		}
		return !a.null
	}

	// Invalid dates: stable pair when both invalid; otherwise an extreme
	// value in the ascending basis, so direction reversal moves it to the
	// front descending.
	if a.invalidDate || b.invalidDate {
		if a.invalidDate && b.invalidDate {
			return false
		}
		cmp := 1
		if b.invalidDate {
			cmp = -1
		}
		if dir == Desc {
			cmp = -cmp
		}
		return cmp < 0
	}

	cmp := a.compare(b)
	if dir == Desc {
		cmp = -cmp
	}
	return cmp < 0
}

// compare orders two defined keys in the ascending basis.
func (a sortKey) compare(b sortKey) int {
	switch {
	case a.isDate && b.isDate:
		if a.date.Before(b.date) {
			return -1
		}
		if a.date.After(b.date) {
			return 1
		}
		return 0
	case a.isNum && b.isNum:
		if a.num < b.num {
			return -1
		}
		if a.num > b.num {
			return 1
		}
		return 0
	}
	return strings.Compare(keyString(a), keyString(b))
}

func keyString(k sortKey) string {
	if k.isNum {
		return strconv.FormatFloat(k.num, 'f', -1, 64)
	}
	if k.isDate {
		return k.date.Format("2006-01-02")
	}
	return k.str
}

func stringify(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02")
	}
	return fmt.Sprintf("%v", v)
}
