package engine

import (
	"errors"
	"math"
	"testing"
)

func intPtr(i int) *int { return &i }

func TestPredictContinuous_KnownValue(t *testing.T) {
	// 1.5 + 0.03*sqrt(1200) + 15000/20000
	got := PredictContinuous(1200, 15000)
	want := 1.5 + 0.03*math.Sqrt(1200) + 0.75

	if math.Abs(got-want) > 1e-9 {
		t.Errorf("PredictContinuous(1200, 15000) = %v, want %v", got, want)
	}
	if got < 3.289 || got > 3.290 {
		t.Errorf("expected estimate near 3.2892, got %v", got)
	}
}

func TestPredictContinuous_NegativeAreaClamped(t *testing.T) {
	got := PredictContinuous(-500, 0)
	if got != baseStaff {
		t.Errorf("negative area should clamp to 0, got %v want %v", got, baseStaff)
	}
}

func TestPredictContinuous_MonotoneInArea(t *testing.T) {
	footfall := 10000.0
	prev := PredictContinuous(0, footfall)
	for _, area := range []float64{1, 50, 400, 1200, 5000, 100000} {
		cur := PredictContinuous(area, footfall)
		if cur < prev {
			t.Errorf("estimate decreased from %v to %v at area=%v", prev, cur, area)
		}
		prev = cur
	}
}

func TestPredictContinuous_MonotoneInFootfall(t *testing.T) {
	area := 1200.0
	prev := PredictContinuous(area, 0)
	for _, footfall := range []float64{100, 5000, 15000, 40000, 1e6} {
		cur := PredictContinuous(area, footfall)
		if cur < prev {
			t.Errorf("estimate decreased from %v to %v at footfall=%v", prev, cur, footfall)
		}
		prev = cur
	}
}

func TestParseRoundRule(t *testing.T) {
	tests := []struct {
		input string
		want  RoundRule
	}{
		{"ceil", RoundCeil},
		{"floor", RoundFloor},
		{"round", RoundNearest},
		{" floor ", RoundFloor},
		{"", RoundCeil},
		{"banana", RoundCeil},
		{"CEIL", RoundCeil}, // matching is case-sensitive; unknown falls back
	}

	for _, tt := range tests {
		if got := ParseRoundRule(tt.input); got != tt.want {
			t.Errorf("ParseRoundRule(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestRoundRule_String_RoundTrip(t *testing.T) {
	for _, rule := range []RoundRule{RoundCeil, RoundFloor, RoundNearest} {
		if got := ParseRoundRule(rule.String()); got != rule {
			t.Errorf("ParseRoundRule(%q) = %v, want %v", rule.String(), got, rule)
		}
	}
}

func TestApplyRounding(t *testing.T) {
	tests := []struct {
		name       string
		continuous float64
		rule       RoundRule
		minStaff   int
		maxStaff   *int
		want       int
	}{
		{"ceil rounds up", 3.2, RoundCeil, 1, nil, 4},
		{"floor rounds down", 3.8, RoundFloor, 1, nil, 3},
		{"nearest rounds half up", 3.5, RoundNearest, 1, nil, 4},
		{"nearest rounds down below half", 3.4, RoundNearest, 1, nil, 3},
		{"min clamp applies", 0.2, RoundFloor, 3, nil, 3},
		{"zero min is treated as one", 0.2, RoundFloor, 0, nil, 1},
		{"negative min is treated as one", 0.2, RoundFloor, -5, nil, 1},
		{"max clamp applies", 9.7, RoundCeil, 1, intPtr(6), 6},
		{"max below min silently wins", 9.7, RoundCeil, 8, intPtr(2), 2},
		{"exact integer unchanged", 4.0, RoundCeil, 1, nil, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyRounding(tt.continuous, tt.rule, tt.minStaff, tt.maxStaff)
			if got != tt.want {
				t.Errorf("ApplyRounding(%v, %v, %d, %v) = %d, want %d",
					tt.continuous, tt.rule, tt.minStaff, tt.maxStaff, got, tt.want)
			}
		})
	}
}

func TestApplyRounding_LowerBoundProperty(t *testing.T) {
	// Output must always be >= max(minStaff, 1) when no max cap interferes.
	for _, continuous := range []float64{0, 0.1, 1.9, 3.2892, 100.5} {
		for _, min := range []int{-2, 0, 1, 3, 10} {
			got := ApplyRounding(continuous, RoundFloor, min, nil)
			lower := min
			if lower < 1 {
				lower = 1
			}
			if got < lower {
				t.Errorf("ApplyRounding(%v, floor, %d, nil) = %d, below lower bound %d",
					continuous, min, got, lower)
			}
		}
	}
}

func TestCompute_GoldenCase(t *testing.T) {
	// Worked example: 1200 sqft, 15000 footfall, ceil, min 1, no max.
	res, err := Compute(Params{Area: 1200, Footfall: 15000, Rule: RoundCeil, MinStaff: 1})
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if res.Recommended != 4 {
		t.Errorf("Recommended = %d, want 4", res.Recommended)
	}
	if math.Abs(res.Continuous-3.2892) > 0.001 {
		t.Errorf("Continuous = %v, want ~3.2892", res.Continuous)
	}
}

func TestCompute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{"zero area", Params{Area: 0, Footfall: 100}, ErrInvalidArea},
		{"negative area", Params{Area: -10, Footfall: 100}, ErrInvalidArea},
		{"NaN area", Params{Area: math.NaN(), Footfall: 100}, ErrInvalidArea},
		{"infinite area", Params{Area: math.Inf(1), Footfall: 100}, ErrInvalidArea},
		{"negative footfall", Params{Area: 800, Footfall: -5}, ErrInvalidFootfall},
		{"NaN footfall", Params{Area: 800, Footfall: math.NaN()}, ErrInvalidFootfall},
		{"valid zero footfall", Params{Area: 800, Footfall: 0}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.params)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Compute() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
