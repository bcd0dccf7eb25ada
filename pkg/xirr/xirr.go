// Package xirr solves for the annualized internal rate of return of an
// irregularly dated cash-flow series.
//
// The solver is a pure function: it holds no state across calls and identical
// input always produces an identical result. Failures are never surfaced as
// errors or panics; every failure path resolves to a Result carrying a
// machine-readable reason so callers can render "N/A" instead of crashing.
//
// Year fractions use the Actual/365.25 day count over UTC-midnight-normalized
// dates. This convention tracks common spreadsheet XIRR output more closely
// than Actual/365 and is the anchor for this package's golden tests.
package xirr

import (
	"math"
	"sort"
	"time"

	"github.com/iwvelando/fund-forecast/pkg/constants"
	"github.com/iwvelando/fund-forecast/pkg/datetime"
	"github.com/shopspring/decimal"
)

// Cashflow is one dated, signed amount. Negative amounts are capital
// outflows (contributions); positive amounts are inflows (distributions or a
// terminal NAV realization).
type Cashflow struct {
	Date   time.Time
	Amount decimal.Decimal
}

// Reason explains why a solve produced no rate.
type Reason string

const (
	// ReasonInsufficientData is returned for fewer than two cash flows.
	ReasonInsufficientData Reason = "insufficient-data"
	// ReasonNoSignChange is returned when all amounts share one sign; such a
	// series has no finite internal rate of return.
	ReasonNoSignChange Reason = "no-sign-change"
	// ReasonNonConvergent is returned when the selected strategy exhausts its
	// iteration budget without meeting tolerance.
	ReasonNonConvergent Reason = "non-convergent"
	// ReasonOutOfBounds is returned when Newton-only iteration escapes the
	// bounded rate interval.
	ReasonOutOfBounds Reason = "out-of-bounds"
	// ReasonNoBracketableRoot is returned when bisection cannot find a sign
	// change in the NPV even after expanding the bracket.
	ReasonNoBracketableRoot Reason = "no-bracketable-root"
)

// Result is the outcome of a solve: either a finite annualized rate or an
// explicit undefined marker with a reason. Rate is meaningful only when
// Undefined is false.
type Result struct {
	Rate      float64
	Undefined bool
	Reason    Reason
}

func undefined(reason Reason) Result {
	return Result{Undefined: true, Reason: reason}
}

// Strategy selects the root-finding algorithm.
type Strategy string

const (
	// Hybrid runs Newton-Raphson and falls back to bisection. This is the
	// default and the most resilient choice.
	Hybrid Strategy = "hybrid"
	// Newton runs Newton-Raphson only.
	Newton Strategy = "newton"
	// Bisection runs bisection only.
	Bisection Strategy = "bisection"
)

// Config tunes the solver. A zero Strategy, Tolerance, or MaxIterations
// selects the default; Guess is taken as given, so the zero value starts
// Newton-Raphson from a 0% rate. Construct via DefaultConfig for the
// documented 10% starting guess.
type Config struct {
	Strategy Strategy
	// Guess is the Newton-Raphson starting rate. Any in-bounds value is
	// honored, including 0.
	Guess         float64
	Tolerance     float64
	MaxIterations int
	// DisableNetting keeps same-day flows as separate entries. Netting is on
	// by default because collapsing same-day flows improves numerical
	// stability.
	DisableNetting bool
}

// DefaultConfig returns the default solver configuration: hybrid strategy,
// 10% initial guess, 1e-6 NPV tolerance, 100 iterations, same-day netting on.
func DefaultConfig() Config {
	return Config{
		Strategy:      Hybrid,
		Guess:         constants.SolverGuess,
		Tolerance:     constants.SolverTolerance,
		MaxIterations: constants.SolverMaxIterations,
	}
}

func (c Config) withDefaults() Config {
	if c.Strategy == "" {
		c.Strategy = Hybrid
	}
	if c.Tolerance == 0 {
		c.Tolerance = constants.SolverTolerance
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = constants.SolverMaxIterations
	}
	return c
}

// Solve computes the annualized internal rate of return of the flows using
// the default configuration.
func Solve(flows []Cashflow) Result {
	return SolveWithConfig(flows, DefaultConfig())
}

// SolveWithConfig computes the annualized internal rate of return of the
// flows. Preconditions are checked first: fewer than two flows, or flows that
// never change sign, produce an undefined result rather than an error.
func SolveWithConfig(flows []Cashflow, cfg Config) Result {
	cfg = cfg.withDefaults()

	if len(flows) < 2 {
		return undefined(ReasonInsufficientData)
	}

	prepared := prepare(flows, !cfg.DisableNetting)
	if len(prepared) < 2 {
		return undefined(ReasonInsufficientData)
	}
	if !hasSignChange(prepared) {
		return undefined(ReasonNoSignChange)
	}

	switch cfg.Strategy {
	case Newton:
		res, _ := newton(prepared, cfg)
		return res
	case Bisection:
		return bisect(prepared, cfg)
	default:
		if res, converged := newton(prepared, cfg); converged {
			return res
		}
		return bisect(prepared, cfg)
	}
}

// point is a cash flow reduced to its year fraction from the earliest flow
// and its amount as float64. Decimal precision is kept through sorting and
// netting; the root search itself requires fractional exponentiation, which
// is done in floating point.
type point struct {
	years  float64
	amount float64
}

// prepare sorts the flows by date, optionally nets same-day flows into one
// entry per date, and converts to year-fraction points. Zero-amount entries
// left by netting are dropped.
func prepare(flows []Cashflow, net bool) []point {
	sorted := make([]Cashflow, len(flows))
	copy(sorted, flows)
	for i := range sorted {
		sorted[i].Date = datetime.Normalize(sorted[i].Date)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	if net {
		netted := sorted[:0]
		for _, f := range sorted {
			if n := len(netted); n > 0 && netted[n-1].Date.Equal(f.Date) {
				netted[n-1].Amount = netted[n-1].Amount.Add(f.Amount)
				continue
			}
			netted = append(netted, f)
		}
		sorted = netted
	}

	start := sorted[0].Date
	points := make([]point, 0, len(sorted))
	for _, f := range sorted {
		if f.Amount.IsZero() {
			continue
		}
		points = append(points, point{
			years:  datetime.YearFraction(start, f.Date),
			amount: f.Amount.InexactFloat64(),
		})
	}
	return points
}

func hasSignChange(points []point) bool {
	var positive, negative bool
	for _, p := range points {
		if p.amount > 0 {
			positive = true
		}
		if p.amount < 0 {
			negative = true
		}
	}
	return positive && negative
}

// npv returns the net present value of the flows at the given rate, and its
// first derivative with respect to the rate.
func npv(points []point, rate float64) (value, derivative float64) {
	for _, p := range points {
		discount := math.Pow(1+rate, p.years)
		value += p.amount / discount
		derivative -= p.years * p.amount / (discount * (1 + rate))
	}
	return value, derivative
}

// newton runs the Newton-Raphson phase. The second return value reports
// whether the phase reached a definitive answer; false means the hybrid
// strategy should fall through to bisection.
func newton(points []point, cfg Config) (Result, bool) {
	rate := cfg.Guess
	for i := 0; i < cfg.MaxIterations; i++ {
		value, derivative := npv(points, rate)
		if !finite(value) || !finite(derivative) {
			return undefined(ReasonNonConvergent), false
		}
		if math.Abs(value) < cfg.Tolerance {
			return Result{Rate: rate}, true
		}
		if math.Abs(derivative) < constants.SolverDerivativeFloor {
			return undefined(ReasonNonConvergent), false
		}
		rate -= value / derivative
		if rate <= constants.SolverRateLow || rate >= constants.SolverRateHigh {
			return undefined(ReasonOutOfBounds), false
		}
	}
	return undefined(ReasonNonConvergent), false
}

// bisect searches a bracket for a sign change in NPV and halves it until the
// NPV magnitude or the interval width meets tolerance. The initial bracket
// covers rates from roughly -99.9% to 1000%; it expands once to 10000% for
// extreme-return series.
func bisect(points []point, cfg Config) Result {
	low, high := constants.SolverRateLow, constants.SolverRateHigh
	lowVal, _ := npv(points, low)
	highVal, _ := npv(points, high)
	if sameSign(lowVal, highVal) {
		high = constants.SolverRateExtreme
		highVal, _ = npv(points, high)
	}
	if sameSign(lowVal, highVal) {
		return undefined(ReasonNoBracketableRoot)
	}

	for i := 0; i < cfg.MaxIterations; i++ {
		mid := (low + high) / 2
		midVal, _ := npv(points, mid)
		if !finite(midVal) {
			return undefined(ReasonNonConvergent)
		}
		if math.Abs(midVal) < cfg.Tolerance || high-low < cfg.Tolerance {
			return Result{Rate: mid}
		}
		if sameSign(lowVal, midVal) {
			low, lowVal = mid, midVal
		} else {
			high = mid
		}
	}
	return undefined(ReasonNonConvergent)
}

func sameSign(a, b float64) bool {
	return (a > 0) == (b > 0)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
