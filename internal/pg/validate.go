package pg

// validate.go checks edit values before they reach the database. The rules
// mirror what the review UI enforces: amounts must be non-negative numbers
// (currency decoration tolerated), dates must be real YYYY-MM-DD days not in
// the future, closed-list values must match an allowed entry and are stored
// with canonical casing.

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/taxdesk/taxdesk/internal/document"
)

var amountDecoration = regexp.MustCompile(`[$,\s]`)

// validateField converts a raw edit value to its storage representation.
// Numeric amount columns return float64; expense amounts stay strings so the
// raw representation round-trips. Everything else returns string.
func validateField(typ document.Type, col document.Column, raw string) (any, error) {
	raw = strings.TrimSpace(raw)

	switch col.Kind {
	case document.KindAmount:
		cleaned := amountDecoration.ReplaceAllString(raw, "")
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return nil, &FieldError{Field: col.ID, Value: raw, Message: "invalid number format"}
		}
		if f < 0 {
			return nil, &FieldError{Field: col.ID, Value: raw, Message: "amount must not be negative"}
		}
		if typ == document.TypeExpense {
			return strconv.FormatFloat(f, 'f', 2, 64), nil
		}
		return f, nil

	case document.KindDate:
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, &FieldError{Field: col.ID, Value: raw, Message: "invalid date format (use YYYY-MM-DD)"}
		}
		if t.After(time.Now()) {
			return nil, &FieldError{Field: col.ID, Value: raw, Message: "date must not be in the future"}
		}
		return t.Format("2006-01-02"), nil

	case document.KindSelect:
		for _, opt := range col.Options {
			if strings.EqualFold(opt, raw) {
				return opt, nil
			}
		}
		return nil, &FieldError{
			Field: col.ID, Value: raw,
			Message: "value must be one of: " + strings.Join(col.Options, ", "),
		}
	}

	if raw == "" {
		return nil, &FieldError{Field: col.ID, Message: "required field is empty"}
	}
	return raw, nil
}
