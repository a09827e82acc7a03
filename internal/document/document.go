// Package document defines the tax document model: a tagged union over the
// four supported document variants plus the per-type column and filter
// registries that drive the table engine.
//
// The union is sealed: every variant embeds Base and implements the
// unexported marker method, so a type switch over W2 / Form1099 / Expense /
// Donation is exhaustive. Generic field access goes through Field and Patch,
// which return not-ok or an error for fields the variant does not carry.
// Cross-variant access is a caller bug, never a silent zero value.
package document

import (
	"fmt"
	"strings"
)

// Type identifies one of the four document variants.
// The string values are the wire values used by the persistence service.
type Type string

const (
	TypeW2       Type = "w2"
	Type1099     Type = "1099"
	TypeExpense  Type = "expenses"
	TypeDonation Type = "donations"
)

// Valid reports whether t is one of the four known types.
func (t Type) Valid() bool {
	switch t {
	case TypeW2, Type1099, TypeExpense, TypeDonation:
		return true
	}
	return false
}

// ParseType resolves a wire value to a Type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown document type: %q", s)
	}
	return t, nil
}

// Status is the review state of a document. Stored and transmitted with
// canonical capitalization.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Statuses lists all statuses in display order.
func Statuses() []string {
	return []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}
}

// NormalizeStatus resolves a case-insensitive status value to its canonical
// form. Returns false if the value is not a known status.
func NormalizeStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, true
	case "approved":
		return StatusApproved, true
	case "rejected":
		return StatusRejected, true
	}
	return "", false
}

// Missing is the placeholder the persistence layer stores for expense fields
// that could not be extracted from the uploaded image.
const Missing = "Missing"

// Document is the sealed interface over the four variants.
type Document interface {
	ID() string
	Type() Type
	Status() Status
	UploadDate() string
	ImagePath() string

	// Field returns the value of a column by its column id. The shared
	// columns (status, uploadDate) are available on every variant;
	// variant-specific columns return ok=false on other variants.
	Field(id string) (any, bool)

	isDocument()
}

// Base carries the fields shared by every variant.
type Base struct {
	DocID   string
	DocType Type
	State   Status
	Upload  string // ISO-8601 date
	Image   string // stored image path, may be empty
}

func (b Base) ID() string         { return b.DocID }
func (b Base) Type() Type         { return b.DocType }
func (b Base) Status() Status     { return b.State }
func (b Base) UploadDate() string { return b.Upload }
func (b Base) ImagePath() string  { return b.Image }

// baseField resolves the columns shared by all variants.
func (b Base) baseField(id string) (any, bool) {
	switch id {
	case ColStatus:
		return string(b.State), true
	case ColUploadDate:
		return b.Upload, true
	}
	return nil, false
}

// W2 is a wage and tax statement.
type W2 struct {
	Base
	Employer       string
	Wages          float64
	FedWithholding float64
}

func (d W2) isDocument() {}

func (d W2) Field(id string) (any, bool) {
	switch id {
	case ColEmployer:
		return d.Employer, true
	case ColWages:
		return d.Wages, true
	case ColFedWithholding:
		return d.FedWithholding, true
	}
	return d.baseField(id)
}

// Form1099 is a 1099-NEC style statement of non-employee compensation.
type Form1099 struct {
	Base
	Payer  string
	Amount float64
}

func (d Form1099) isDocument() {}

func (d Form1099) Field(id string) (any, bool) {
	switch id {
	case ColPayer:
		return d.Payer, true
	case ColAmount:
		return d.Amount, true
	}
	return d.baseField(id)
}

// Expense is a receipt-backed business expense. Amount and Date keep the raw
// stored strings: either may carry currency decoration or the Missing
// placeholder when extraction failed.
type Expense struct {
	Base
	Vendor        string
	Amount        string
	Date          string
	PaymentMethod string
	Category      string
}

func (d Expense) isDocument() {}

func (d Expense) Field(id string) (any, bool) {
	switch id {
	case ColVendor:
		return d.Vendor, true
	case ColAmount:
		return d.Amount, true
	case ColDate:
		return d.Date, true
	case ColPaymentMethod:
		return d.PaymentMethod, true
	case ColCategory:
		return d.Category, true
	}
	return d.baseField(id)
}

// Donation is a charitable donation record.
type Donation struct {
	Base
	CharityName  string
	DonationType string
	Amount       float64
	Date         string
}

func (d Donation) isDocument() {}

func (d Donation) Field(id string) (any, bool) {
	switch id {
	case ColCharityName:
		return d.CharityName, true
	case ColDonationType:
		return d.DonationType, true
	case ColAmount:
		return d.Amount, true
	case ColDate:
		return d.Date, true
	}
	return d.baseField(id)
}

// Patch returns a copy of doc with the given column values applied. Values
// are the already-normalized representations the coordinator produces:
// float64 for numeric amounts, string for everything else. Patching a column
// the variant does not carry is an error.
func Patch(doc Document, fields map[string]any) (Document, error) {
	for id, v := range fields {
		var err error
		doc, err = patchOne(doc, id, v)
		if err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func patchOne(doc Document, id string, v any) (Document, error) {
	// Shared columns first.
	switch id {
	case ColStatus:
		s, ok := NormalizeStatus(fmt.Sprintf("%v", v))
		if !ok {
			return nil, fmt.Errorf("invalid status value: %v", v)
		}
		return withStatus(doc, s), nil
	case ColUploadDate:
		return nil, fmt.Errorf("column %q is not editable", id)
	}

	switch d := doc.(type) {
	case W2:
		switch id {
		case ColEmployer:
			d.Employer = asString(v)
		case ColWages:
			f, err := asFloat(v)
			if err != nil {
				return nil, err
			}
			d.Wages = f
		case ColFedWithholding:
			f, err := asFloat(v)
			if err != nil {
				return nil, err
			}
			d.FedWithholding = f
		default:
			return nil, fmt.Errorf("document type %s has no column %q", d.DocType, id)
		}
		return d, nil

	case Form1099:
		switch id {
		case ColPayer:
			d.Payer = asString(v)
		case ColAmount:
			f, err := asFloat(v)
			if err != nil {
				return nil, err
			}
			d.Amount = f
		default:
			return nil, fmt.Errorf("document type %s has no column %q", d.DocType, id)
		}
		return d, nil

	case Expense:
		switch id {
		case ColVendor:
			d.Vendor = asString(v)
		case ColAmount:
			d.Amount = asString(v)
		case ColDate:
			d.Date = asString(v)
		case ColPaymentMethod:
			d.PaymentMethod = asString(v)
		case ColCategory:
			d.Category = asString(v)
		default:
			return nil, fmt.Errorf("document type %s has no column %q", d.DocType, id)
		}
		return d, nil

	case Donation:
		switch id {
		case ColCharityName:
			d.CharityName = asString(v)
		case ColDonationType:
			d.DonationType = asString(v)
		case ColAmount:
			f, err := asFloat(v)
			if err != nil {
				return nil, err
			}
			d.Amount = f
		case ColDate:
			d.Date = asString(v)
		default:
			return nil, fmt.Errorf("document type %s has no column %q", d.DocType, id)
		}
		return d, nil
	}

	return nil, fmt.Errorf("unknown document variant %T", doc)
}

func withStatus(doc Document, s Status) Document {
	switch d := doc.(type) {
	case W2:
		d.State = s
		return d
	case Form1099:
		d.State = s
		return d
	case Expense:
		d.State = s
		return d
	case Donation:
		d.State = s
		return d
	}
	return doc
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func asFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("numeric column requires a number, got %T", v)
}
