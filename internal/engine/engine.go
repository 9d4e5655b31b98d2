// Package engine implements the staffing recommendation heuristic.
//
// The heuristic maps a store's square footage and the surrounding mall's
// footfall to a continuous staffing estimate, then applies a configurable
// rounding and clamping policy to produce an integer headcount. It is a
// placeholder model: the coefficients were hand-tuned, not fitted, and the
// whole function is expected to be swapped for a trained model eventually.
//
// This package has no I/O and no dependencies on the web layer, so it can be
// exercised directly by the batch pipeline or by tests.
package engine

import (
	"errors"
	"math"
	"strings"
)

// Heuristic coefficients. A store needs a base crew regardless of size,
// grows with the square root of floor area (coverage, not volume), and
// gains one head per 20k daily mall visitors.
const (
	baseStaff        = 1.5
	areaCoefficient  = 0.03
	footfallPerStaff = 20000.0
)

// Sentinel errors for single-record input validation. The web layer maps
// these to user-facing messages via core.MapError.
var (
	ErrInvalidArea     = errors.New("invalid area")
	ErrInvalidFootfall = errors.New("invalid footfall")
)

// RoundRule selects how the continuous estimate is converted to an integer.
type RoundRule int

const (
	// RoundCeil rounds up. This is the default: understaffing is assumed
	// to be worse than overstaffing by one head.
	RoundCeil RoundRule = iota

	// RoundFloor rounds down.
	RoundFloor

	// RoundNearest rounds half away from zero.
	RoundNearest
)

// ParseRoundRule converts a string to a RoundRule.
// Unrecognized values fall back to RoundCeil rather than erroring, so a
// stale or hand-edited form value never blocks a computation.
func ParseRoundRule(s string) RoundRule {
	switch strings.TrimSpace(s) {
	case "floor":
		return RoundFloor
	case "round":
		return RoundNearest
	default:
		return RoundCeil
	}
}

// String returns the wire name of the rule ("ceil", "floor", "round").
func (r RoundRule) String() string {
	switch r {
	case RoundFloor:
		return "floor"
	case RoundNearest:
		return "round"
	default:
		return "ceil"
	}
}

// apply rounds v according to the rule.
func (r RoundRule) apply(v float64) float64 {
	switch r {
	case RoundFloor:
		return math.Floor(v)
	case RoundNearest:
		return math.Round(v)
	default:
		return math.Ceil(v)
	}
}

// Params are the inputs to a single recommendation.
type Params struct {
	Area     float64   // store floor area in square feet
	Footfall float64   // daily mall footfall
	Rule     RoundRule // rounding policy
	MinStaff int       // lower clamp; values below 1 are treated as 1
	MaxStaff *int      // upper clamp; nil means unbounded
}

// Result is the output of a recommendation.
type Result struct {
	Continuous  float64 `json:"continuous"`
	Recommended int     `json:"recommended"`
}

// PredictContinuous evaluates the heuristic at (area, footfall).
// Negative area is clamped to zero before use; footfall is taken as-is
// (callers validate it on the interactive path, batch rows deliberately
// do not). The result is non-decreasing in both inputs and finite for
// finite inputs.
func PredictContinuous(area, footfall float64) float64 {
	if area < 0 {
		area = 0
	}
	return baseStaff + areaCoefficient*math.Sqrt(area) + footfall/footfallPerStaff
}

// ApplyRounding converts a continuous estimate to an integer headcount:
// round per rule, clamp up to max(minStaff, 1), then clamp down to
// maxStaff when set.
//
// There is intentionally no check that maxStaff is above the lower clamp;
// a maxStaff below minStaff silently wins. That mirrors how store managers
// use the max field (a hard budget cap that overrides everything else).
func ApplyRounding(continuous float64, rule RoundRule, minStaff int, maxStaff *int) int {
	staff := int(rule.apply(continuous))

	lower := minStaff
	if lower < 1 {
		lower = 1
	}
	if staff < lower {
		staff = lower
	}
	if maxStaff != nil && staff > *maxStaff {
		staff = *maxStaff
	}
	return staff
}

// Compute validates the interactive inputs and runs the full
// predict-then-round path.
//
// Area must be finite and strictly positive; footfall must be finite and
// non-negative. Batch rows bypass this validation on purpose (see the
// core package), so Compute is the only place these errors originate.
func Compute(p Params) (Result, error) {
	if math.IsNaN(p.Area) || math.IsInf(p.Area, 0) || p.Area <= 0 {
		return Result{}, ErrInvalidArea
	}
	if math.IsNaN(p.Footfall) || math.IsInf(p.Footfall, 0) || p.Footfall < 0 {
		return Result{}, ErrInvalidFootfall
	}

	continuous := PredictContinuous(p.Area, p.Footfall)
	return Result{
		Continuous:  continuous,
		Recommended: ApplyRounding(continuous, p.Rule, p.MinStaff, p.MaxStaff),
	}, nil
}
