package emissions

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// ErrUnknownParameter is returned by ParseParameter for unrecognised names.
var ErrUnknownParameter = errors.New("unknown parameter")

// Parameter selects the activity input perturbed by a sweep.
type Parameter int

const (
	ParamProduction Parameter = iota
	ParamCoal
	ParamElectricity
	ParamScrap
)

// Parameters lists every sweepable input.
var Parameters = [...]Parameter{ParamProduction, ParamCoal, ParamElectricity, ParamScrap}

func (p Parameter) String() string {
	switch p {
	case ParamProduction:
		return "production"
	case ParamCoal:
		return "coal"
	case ParamElectricity:
		return "electricity"
	case ParamScrap:
		return "scrap"
	default:
		return fmt.Sprintf("parameter(%d)", int(p))
	}
}

// ParseParameter resolves a parameter name.
func ParseParameter(s string) (Parameter, error) {
	for _, p := range Parameters {
		if strings.EqualFold(strings.TrimSpace(s), p.String()) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, s)
}

// Perturb returns a copy of a with parameter p shifted by delta percent.
// Quantities scale by (1 + delta/100). Scrap moves by delta percentage
// points and is clamped to [0,100].
func Perturb(a PlantActivity, p Parameter, delta float64) PlantActivity {
	switch p {
	case ParamProduction:
		a.AnnualProduction *= 1 + delta/100
	case ParamCoal:
		a.AnnualCoal *= 1 + delta/100
	case ParamElectricity:
		a.AnnualElectricity *= 1 + delta/100
	case ParamScrap:
		a.ScrapPercent = clampPercent(a.ScrapPercent + delta)
	}
	return a
}

func clampPercent(v float64) float64 { return math.Min(math.Max(v, 0), 100) }

// Sweep yields (delta, total) for every delta, re-estimating with only p
// perturbed. The sequence is evaluated lazily and can be ranged over any
// number of times.
func Sweep(base PlantActivity, f EmissionFactors, p Parameter, deltas []float64) iter.Seq2[float64, float64] {
	return func(yield func(float64, float64) bool) {
		for _, d := range deltas {
			if !yield(d, Estimate(Perturb(base, p, d), f).Total) {
				return
			}
		}
	}
}

// Point is one sample of a sweep.
type Point struct {
	Delta float64 `json:"delta"`
	Total float64 `json:"total"`
}

// Collect drains a sweep into a slice.
func Collect(seq iter.Seq2[float64, float64]) []Point {
	var out []Point
	for d, t := range seq {
		out = append(out, Point{Delta: d, Total: t})
	}
	return out
}

// MaxDeltaPoints bounds the size of a delta grid.
const MaxDeltaPoints = 1001

// ErrInvalidRange is returned by ParseDeltaRange for grids that are not
// finite, empty or larger than MaxDeltaPoints.
var ErrInvalidRange = errors.New("invalid delta range")

// ParseDeltaRange returns evenly spaced deltas from..to inclusive.
func ParseDeltaRange(from, to, step float64) ([]float64, error) {
	for _, v := range []float64{from, to, step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite bound %v", ErrInvalidRange, v)
		}
	}
	if step <= 0 {
		return nil, fmt.Errorf("%w: step %v must be positive", ErrInvalidRange, step)
	}
	if to < from {
		return nil, fmt.Errorf("%w: %v..%v is empty", ErrInvalidRange, from, to)
	}
	span := math.Floor((to-from)/step + 1e-9)
	if span >= MaxDeltaPoints {
		return nil, fmt.Errorf("%w: more than %d points", ErrInvalidRange, MaxDeltaPoints)
	}
	n := int(span) + 1
	if n == 1 {
		return []float64{from}, nil
	}
	return floats.Span(make([]float64, n), from, from+float64(n-1)*step), nil
}

// DeltaRange is ParseDeltaRange returning nil for an invalid grid.
func DeltaRange(from, to, step float64) []float64 {
	d, err := ParseDeltaRange(from, to, step)
	if err != nil {
		return nil
	}
	return d
}

// DefaultElectricityDeltas is the -50..50 grid in steps of 5.
func DefaultElectricityDeltas() []float64 { return DeltaRange(-50, 50, 5) }

// Sensitivity holds simultaneous percent deltas for every input. Scrap is in
// percentage points.
type Sensitivity struct {
	Production  float64 `json:"production"`
	Coal        float64 `json:"coal"`
	Electricity float64 `json:"electricity"`
	Scrap       float64 `json:"scrap"`
}

// Apply perturbs every input of a by the matching delta.
func (s Sensitivity) Apply(a PlantActivity) PlantActivity {
	a = Perturb(a, ParamProduction, s.Production)
	a = Perturb(a, ParamCoal, s.Coal)
	a = Perturb(a, ParamElectricity, s.Electricity)
	if s.Scrap != 0 {
		a = Perturb(a, ParamScrap, s.Scrap)
	}
	return a
}

// IsZero reports whether no delta is set.
func (s Sensitivity) IsZero() bool { return s == Sensitivity{} }
