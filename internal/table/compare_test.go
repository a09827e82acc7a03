package table

import (
	"testing"

	"github.com/taxdesk/taxdesk/internal/document"
)

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"plain float", 42.5, 42.5, true},
		{"int", 7, 7, true},
		{"bare string", "19.99", 19.99, true},
		{"dollar sign", "$45.00", 45, true},
		{"thousands separators", "$1,234.56", 1234.56, true},
		{"negative", "-$12.50", -12.5, true},
		{"missing placeholder", document.Missing, 0, false},
		{"empty string", "", 0, false},
		{"junk", "n/a", 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeAmount(tt.in)
			if ok != tt.ok {
				t.Fatalf("NormalizeAmount(%v) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("NormalizeAmount(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"2024-03-15", true},
		{"2024/03/15", true},
		{"03/15/2024", true},
		{"3/5/2024", true},
		{"Missing", false},
		{"", false},
		{"15th of March", false},
		{"2024-13-40", false},
	}
	for _, tt := range tests {
		if _, ok := ParseDate(tt.in); ok != tt.ok {
			t.Errorf("ParseDate(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
	}
}

func TestCompareTextCaseInsensitive(t *testing.T) {
	a := makeKey("apple", true, document.KindText)
	b := makeKey("Banana", true, document.KindText)
	if !a.less(b, Asc) {
		t.Error("apple should sort before Banana ascending")
	}
	if a.less(b, Desc) {
		t.Error("apple should sort after Banana descending")
	}
}

func TestCompareNullsAlwaysLast(t *testing.T) {
	present := makeKey(10.0, true, document.KindAmount)
	absent := makeKey(nil, false, document.KindAmount)

	for _, dir := range []Direction{Asc, Desc} {
		if absent.less(present, dir) {
			t.Errorf("dir %v: null ordered before present value", dir)
		}
		if !present.less(absent, dir) {
			t.Errorf("dir %v: present value not ordered before null", dir)
		}
	}
}

func TestCompareInvalidDates(t *testing.T) {
	valid := makeKey("2024-03-15", true, document.KindDate)
	invalid := makeKey("Missing", true, document.KindDate)
	invalid2 := makeKey("soon", true, document.KindDate)

	// Invalid dates sink to the end ascending and rise to the front
	// descending.
	if invalid.less(valid, Asc) {
		t.Error("asc: invalid date ordered before valid date")
	}
	if !invalid.less(valid, Desc) {
		t.Error("desc: invalid date not ordered before valid date")
	}

	// Two invalid dates never reorder relative to each other.
	if invalid.less(invalid2, Asc) || invalid2.less(invalid, Asc) {
		t.Error("asc: two invalid dates reported an ordering")
	}
	if invalid.less(invalid2, Desc) || invalid2.less(invalid, Desc) {
		t.Error("desc: two invalid dates reported an ordering")
	}
}
