// Package schedule generates capital-call deployment curves. A schedule is a
// percentage of committed capital to call in each period of the investment
// horizon; except for the custom shape, every generated schedule sums to 100.
package schedule

import (
	"fmt"
)

// Shape selects the deployment curve.
type Shape string

const (
	// Even spreads calls equally across the horizon.
	Even Shape = "even"
	// FrontLoaded concentrates calls in early periods.
	FrontLoaded Shape = "front-loaded"
	// BackLoaded concentrates calls in late periods.
	BackLoaded Shape = "back-loaded"
	// Custom uses caller-supplied per-period percentages.
	Custom Shape = "custom"
)

// frontShare is the multiple of the evenly-remaining balance an early period
// takes when no curated curve exists for the horizon.
const frontShare = 1.3

// Curated front-loaded curves for the horizons funds most commonly use.
var curatedFront = map[int][]float64{
	3: {50, 30, 20},
	4: {40, 30, 20, 10},
	5: {35, 25, 20, 12, 8},
}

// Entry is one caller-supplied period percentage for the custom shape.
type Entry struct {
	Period  int
	Percent float64
}

// ParseShape validates a configured shape string.
func ParseShape(s string) (Shape, error) {
	switch Shape(s) {
	case Even, FrontLoaded, BackLoaded, Custom:
		return Shape(s), nil
	}
	return "", fmt.Errorf("unsupported capital call schedule %q: expected one of %s, %s, %s, %s",
		s, Even, FrontLoaded, BackLoaded, Custom)
}

// Generate returns the per-period call percentages for the given shape and
// horizon. The output always has length horizonPeriods. For even, front-loaded
// and back-loaded shapes the percentages sum to 100; for custom the sum is
// whatever the caller supplied, and downstream validation may flag it.
func Generate(shape Shape, horizonPeriods int, custom []Entry) ([]float64, error) {
	if horizonPeriods <= 0 {
		return nil, fmt.Errorf("schedule horizon must be positive, got %d", horizonPeriods)
	}

	switch shape {
	case Even:
		pcts := make([]float64, horizonPeriods)
		for i := range pcts {
			pcts[i] = 100.0 / float64(horizonPeriods)
		}
		return pcts, nil
	case FrontLoaded:
		return frontLoaded(horizonPeriods), nil
	case BackLoaded:
		return reverse(frontLoaded(horizonPeriods)), nil
	case Custom:
		if len(custom) == 0 {
			return nil, fmt.Errorf("custom capital call schedule selected but no custom percentages supplied")
		}
		pcts := make([]float64, horizonPeriods)
		for _, e := range custom {
			if e.Period < 0 || e.Period >= horizonPeriods {
				return nil, fmt.Errorf("custom schedule period %d is outside horizon 0..%d", e.Period, horizonPeriods-1)
			}
			pcts[e.Period] = e.Percent
		}
		return pcts, nil
	}
	return nil, fmt.Errorf("unsupported capital call schedule %q", shape)
}

// frontLoaded returns the curated curve when one exists, otherwise a
// decreasing curve where each period takes a frontShare multiple of the
// evenly-split remaining balance. The last period absorbs the remainder, so
// the curve sums to exactly 100 by construction.
func frontLoaded(horizonPeriods int) []float64 {
	if curve, ok := curatedFront[horizonPeriods]; ok {
		out := make([]float64, len(curve))
		copy(out, curve)
		return out
	}

	pcts := make([]float64, horizonPeriods)
	remaining := 100.0
	for i := 0; i < horizonPeriods; i++ {
		if i == horizonPeriods-1 {
			pcts[i] = remaining
			break
		}
		share := remaining / float64(horizonPeriods-i) * frontShare
		pcts[i] = share
		remaining -= share
	}
	return pcts
}

func reverse(pcts []float64) []float64 {
	out := make([]float64, len(pcts))
	for i, p := range pcts {
		out[len(pcts)-1-i] = p
	}
	return out
}
