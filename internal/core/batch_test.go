package core

import (
	"math"
	"testing"

	"staffcast/internal/csvio"
	"staffcast/internal/engine"
)

func intPtr(i int) *int { return &i }

func TestCoerceNumeric(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"", 0},
		{"   ", 0},
		{"800", 800},
		{"12.5", 12.5},
		{"-3", -3},
		{" 42 ", 42},
	}

	for _, tt := range tests {
		if got := coerceNumeric(tt.input); got != tt.want {
			t.Errorf("coerceNumeric(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	for _, bad := range []string{"abc", "12abc", "1,200"} {
		if got := coerceNumeric(bad); !math.IsNaN(got) {
			t.Errorf("coerceNumeric(%q) = %v, want NaN", bad, got)
		}
	}
}

func TestLookupAlias_Priority(t *testing.T) {
	// square_footage outranks area when both headers are present.
	doc := csvio.Parse("area,square_footage\n100,200")

	got := lookupAlias(doc, doc.Rows[0], areaAliases)
	if got != "200" {
		t.Errorf("lookupAlias = %q, want 200 (square_footage wins over area)", got)
	}
}

func TestLookupAlias_FallbackSpellings(t *testing.T) {
	tests := []struct {
		header string
		field  []string
	}{
		{"sqft", areaAliases},
		{"SQUARE_FOOTAGE", areaAliases},
		{"footfall", footfallAliases},
		{"mallTraffic", footfallAliases},
		{"MALL_FOOTFALL", footfallAliases},
	}

	for _, tt := range tests {
		doc := csvio.Parse(tt.header + "\n123")
		if got := lookupAlias(doc, doc.Rows[0], tt.field); got != "123" {
			t.Errorf("alias %q not resolved, got %q", tt.header, got)
		}
	}
}

func TestLookupAlias_Missing(t *testing.T) {
	doc := csvio.Parse("store\nDowntown")
	if got := lookupAlias(doc, doc.Rows[0], areaAliases); got != "" {
		t.Errorf("expected empty value for missing alias, got %q", got)
	}
}

func TestAugment_MissingFieldsDefaultToZero(t *testing.T) {
	// No recognized headers at all: area=0, footfall=0 -> 1.5 -> ceil 2.
	doc := csvio.Parse("store\nDowntown")

	rs, flagged := augment(doc, engine.RoundCeil, 1, nil)
	if flagged != 0 {
		t.Errorf("flagged = %d, want 0", flagged)
	}
	row := rs.Rows[0]
	if row[1] != "1.500" {
		t.Errorf("continuous = %q, want 1.500", row[1])
	}
	if row[2] != "2" {
		t.Errorf("recommended = %q, want 2", row[2])
	}
}

func TestAugment_NaNPropagation(t *testing.T) {
	doc := csvio.Parse("square_footage,mall_footfall\nbig,5000\n800,5000")

	rs, flagged := augment(doc, engine.RoundCeil, 1, nil)
	if flagged != 1 {
		t.Errorf("flagged = %d, want 1", flagged)
	}
	if len(rs.Rows) != 2 {
		t.Fatalf("no row may be dropped, got %d rows", len(rs.Rows))
	}
	if rs.Rows[0][2] != "NaN" || rs.Rows[0][3] != "NaN" {
		t.Errorf("bad row should carry NaN outputs, got %v", rs.Rows[0])
	}
	if rs.Rows[1][3] == "NaN" {
		t.Errorf("good row should not be NaN, got %v", rs.Rows[1])
	}
}

func TestAugment_SharedOptionsApplyToAllRows(t *testing.T) {
	doc := csvio.Parse("square_footage,mall_footfall\n800,5000\n100000,900000")

	rs, _ := augment(doc, engine.RoundCeil, 1, intPtr(5))
	for i, row := range rs.Rows {
		if row[3] > "5" && len(row[3]) == 1 {
			t.Errorf("row %d exceeds max clamp: %v", i, row)
		}
	}
	if rs.Rows[1][3] != "5" {
		t.Errorf("large store should clamp to 5, got %q", rs.Rows[1][3])
	}
}

func TestAugment_OrderPreserved(t *testing.T) {
	doc := csvio.Parse("store,square_footage\nA,100\nB,200\nC,300")

	rs, _ := augment(doc, engine.RoundCeil, 1, nil)
	for i, want := range []string{"A", "B", "C"} {
		if rs.Rows[i][0] != want {
			t.Errorf("row %d store = %q, want %q", i, rs.Rows[i][0], want)
		}
	}
}
