package table

import (
	"sort"
	"testing"
)

func TestSelectionToggle(t *testing.T) {
	sel := NewSelection()

	sel.Toggle("1")
	if !sel.IsSelected("1") || sel.Count() != 1 {
		t.Fatal("toggle did not select")
	}
	sel.Toggle("1")
	if sel.IsSelected("1") || sel.Count() != 0 {
		t.Fatal("second toggle did not deselect")
	}
}

func TestSelectionSelectAllReplaces(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("9")

	sel.SelectAll([]string{"1", "2", "3"})
	if sel.Count() != 3 {
		t.Fatalf("count = %d, want 3", sel.Count())
	}
	if sel.IsSelected("9") {
		t.Error("prior selection survived SelectAll")
	}

	got := sel.IDs()
	sort.Strings(got)
	if !sameIDs(got, "1", "2", "3") {
		t.Errorf("IDs = %v, want [1 2 3]", got)
	}
}

func TestSelectionClear(t *testing.T) {
	sel := NewSelection()
	sel.SelectAll([]string{"1", "2"})
	sel.Clear()
	if sel.Count() != 0 {
		t.Fatalf("count after clear = %d", sel.Count())
	}
	if len(sel.IDs()) != 0 {
		t.Error("IDs not empty after clear")
	}
}
