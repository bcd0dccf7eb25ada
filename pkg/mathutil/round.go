// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/fund-forecast/pkg/constants"
	"github.com/shopspring/decimal"
)

// RoundCurrency rounds a monetary decimal to two decimal places for reporting.
// The engine keeps full precision internally; rounding happens only at the
// output boundary.
func RoundCurrency(val decimal.Decimal) decimal.Decimal {
	return val.Round(constants.DecimalPrecision)
}

// RoundRatio rounds a reported ratio (TVPI, DPI, MOIC) to four decimal places.
func RoundRatio(val float64) float64 {
	shift := math.Pow(10, constants.RatioPrecision)
	return math.Round(val*shift) / shift
}

// Ratio divides numerator by denominator as float64, returning 0 for a zero
// denominator. This matches how paid-in ratios are defined for an unfunded
// vehicle.
func Ratio(numerator, denominator decimal.Decimal) float64 {
	if denominator.IsZero() {
		return 0
	}
	return numerator.Div(denominator).InexactFloat64()
}

// IsFinite reports whether val is a usable number (neither NaN nor infinite).
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// SumsTo checks whether the values sum to total within tolerance.
func SumsTo(values []float64, total, tolerance float64) bool {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return WithinTolerance(sum, total, tolerance)
}

// ApplyPercentage applies a percentage to a decimal value.
func ApplyPercentage(value decimal.Decimal, percentage float64) decimal.Decimal {
	return value.Mul(decimal.NewFromFloat(percentage / constants.PercentageMultiplier))
}
