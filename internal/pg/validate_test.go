package pg

import (
	"errors"
	"testing"
	"time"

	"github.com/taxdesk/taxdesk/internal/document"
)

func mustCol(t *testing.T, typ document.Type, id string) document.Column {
	t.Helper()
	col, ok := document.ColumnByID(typ, id)
	if !ok {
		t.Fatalf("no column %s for %s", id, typ)
	}
	return col
}

func TestValidateFieldAmounts(t *testing.T) {
	wages := mustCol(t, document.TypeW2, document.ColWages)

	got, err := validateField(document.TypeW2, wages, "$52,000.50")
	if err != nil {
		t.Fatalf("decorated amount rejected: %v", err)
	}
	if got != 52000.5 {
		t.Errorf("wages = %v, want 52000.5", got)
	}

	if _, err := validateField(document.TypeW2, wages, "-5"); err == nil {
		t.Error("negative amount accepted")
	}
	if _, err := validateField(document.TypeW2, wages, "lots"); err == nil {
		t.Error("non-numeric amount accepted")
	}
}

func TestValidateFieldExpenseAmountStaysString(t *testing.T) {
	amount := mustCol(t, document.TypeExpense, document.ColAmount)

	got, err := validateField(document.TypeExpense, amount, "$45")
	if err != nil {
		t.Fatalf("expense amount rejected: %v", err)
	}
	if got != "45.00" {
		t.Errorf("stored value = %v, want canonical string 45.00", got)
	}
}

func TestValidateFieldDates(t *testing.T) {
	date := mustCol(t, document.TypeExpense, document.ColDate)

	if _, err := validateField(document.TypeExpense, date, "2024-03-15"); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}

	future := time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	if _, err := validateField(document.TypeExpense, date, future); err == nil {
		t.Error("future date accepted")
	}
	if _, err := validateField(document.TypeExpense, date, "03/15/2024"); err == nil {
		t.Error("non-ISO layout accepted")
	}
	if _, err := validateField(document.TypeExpense, date, "2024-02-30"); err == nil {
		t.Error("impossible calendar date accepted")
	}
}

func TestValidateFieldSelectCanonicalCasing(t *testing.T) {
	pm := mustCol(t, document.TypeExpense, document.ColPaymentMethod)

	got, err := validateField(document.TypeExpense, pm, "credit card")
	if err != nil {
		t.Fatalf("case-insensitive select rejected: %v", err)
	}
	if got != "Credit Card" {
		t.Errorf("stored value = %v, want canonical casing", got)
	}

	_, err = validateField(document.TypeExpense, pm, "Gold Bars")
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("unknown option err = %v, want FieldError", err)
	}
}

func TestValidateFieldTextRequired(t *testing.T) {
	vendor := mustCol(t, document.TypeExpense, document.ColVendor)

	if _, err := validateField(document.TypeExpense, vendor, "  Acme  "); err != nil {
		t.Errorf("trimmed text rejected: %v", err)
	}
	if _, err := validateField(document.TypeExpense, vendor, "   "); err == nil {
		t.Error("blank text accepted")
	}
}
