package table

import (
	"testing"

	"github.com/taxdesk/taxdesk/internal/document"
)

func TestSortDocumentsNilSpecKeepsOrder(t *testing.T) {
	docs := []document.Document{
		expense("3", "C", "$30.00", "2024-01-03"),
		expense("1", "A", "$10.00", "2024-01-01"),
		expense("2", "B", "$20.00", "2024-01-02"),
	}

	got := SortDocuments(docs, nil)
	if !sameIDs(ids(got), "3", "1", "2") {
		t.Fatalf("nil spec reordered rows: %v", ids(got))
	}
}

func TestSortDocumentsDoesNotMutateInput(t *testing.T) {
	docs := []document.Document{
		expense("2", "B", "$20.00", "2024-01-02"),
		expense("1", "A", "$10.00", "2024-01-01"),
	}

	SortDocuments(docs, &SortSpec{Column: "vendor", Dir: Asc})
	if !sameIDs(ids(docs), "2", "1") {
		t.Fatalf("input slice mutated: %v", ids(docs))
	}
}

func TestSortCurrencyStringsNumerically(t *testing.T) {
	docs := []document.Document{
		expense("1", "A", "$50.00", "2024-01-01"),
		expense("2", "B", "$5.00", "2024-01-01"),
		expense("3", "C", "$500.00", "2024-01-01"),
	}

	desc := SortDocuments(docs, &SortSpec{Column: "amount", Dir: Desc})
	if !sameIDs(ids(desc), "3", "1", "2") {
		t.Errorf("desc amount order = %v, want [3 1 2]", ids(desc))
	}

	asc := SortDocuments(docs, &SortSpec{Column: "amount", Dir: Asc})
	if !sameIDs(ids(asc), "2", "1", "3") {
		t.Errorf("asc amount order = %v, want [2 1 3]", ids(asc))
	}
}

func TestSortUnparsableAmountsLastBothDirections(t *testing.T) {
	docs := []document.Document{
		expense("1", "A", document.Missing, "2024-01-01"),
		expense("2", "B", "$20.00", "2024-01-01"),
		expense("3", "C", "$10.00", "2024-01-01"),
	}

	asc := SortDocuments(docs, &SortSpec{Column: "amount", Dir: Asc})
	if !sameIDs(ids(asc), "3", "2", "1") {
		t.Errorf("asc order = %v, want [3 2 1]", ids(asc))
	}
	desc := SortDocuments(docs, &SortSpec{Column: "amount", Dir: Desc})
	if !sameIDs(ids(desc), "2", "3", "1") {
		t.Errorf("desc order = %v, want [2 3 1]", ids(desc))
	}
}

func TestSortInvalidDatesPlacement(t *testing.T) {
	docs := []document.Document{
		expense("1", "A", "$10.00", "Missing"),
		expense("2", "B", "$10.00", "2024-02-01"),
		expense("3", "C", "$10.00", "2024-01-01"),
	}

	asc := SortDocuments(docs, &SortSpec{Column: "date", Dir: Asc})
	if !sameIDs(ids(asc), "3", "2", "1") {
		t.Errorf("asc order = %v, want [3 2 1]", ids(asc))
	}
	desc := SortDocuments(docs, &SortSpec{Column: "date", Dir: Desc})
	if !sameIDs(ids(desc), "1", "2", "3") {
		t.Errorf("desc order = %v, want [1 2 3]", ids(desc))
	}
}

func TestSortStableForEqualKeys(t *testing.T) {
	docs := []document.Document{
		expense("1", "Acme", "$10.00", "2024-01-01"),
		expense("2", "acme", "$20.00", "2024-01-01"),
		expense("3", "ACME", "$30.00", "2024-01-01"),
	}

	got := SortDocuments(docs, &SortSpec{Column: "vendor", Dir: Asc})
	if !sameIDs(ids(got), "1", "2", "3") {
		t.Fatalf("equal keys reordered: %v", ids(got))
	}
}

func TestSortIdempotent(t *testing.T) {
	docs := []document.Document{
		expense("1", "C", "$10.00", "2024-01-01"),
		expense("2", "A", "$20.00", "2024-01-01"),
		expense("3", "B", "$30.00", "2024-01-01"),
	}

	spec := &SortSpec{Column: "vendor", Dir: Asc}
	once := SortDocuments(docs, spec)
	twice := SortDocuments(once, spec)
	if !sameIDs(ids(twice), ids(once)[0], ids(once)[1], ids(once)[2]) {
		t.Fatalf("second sort changed order: %v vs %v", ids(once), ids(twice))
	}
}
