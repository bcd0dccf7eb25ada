package xirr

import (
	"math"
	"testing"
	"time"

	"github.com/iwvelando/fund-forecast/pkg/datetime"
	"github.com/shopspring/decimal"
)

func date(s string) time.Time {
	return datetime.MustParseTime(datetime.DateTimeLayout, s)
}

func flow(day string, amount int64) Cashflow {
	return Cashflow{Date: date(day), Amount: decimal.NewFromInt(amount)}
}

func TestSolvePreconditions(t *testing.T) {
	tests := []struct {
		name   string
		flows  []Cashflow
		reason Reason
	}{
		{
			name:   "Empty list",
			flows:  nil,
			reason: ReasonInsufficientData,
		},
		{
			name:   "Single cash flow",
			flows:  []Cashflow{flow("2025-01-01", -100000)},
			reason: ReasonInsufficientData,
		},
		{
			name: "All-zero amounts",
			flows: []Cashflow{
				flow("2025-01-01", 0),
				flow("2026-01-01", 0),
			},
			reason: ReasonInsufficientData,
		},
		{
			name: "No sign change",
			flows: []Cashflow{
				flow("2025-01-01", -100000),
				flow("2026-01-01", -50000),
			},
			reason: ReasonNoSignChange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Solve(tt.flows)
			if !result.Undefined {
				t.Fatalf("Solve() = %+v, expected undefined", result)
			}
			if result.Reason != tt.reason {
				t.Errorf("Solve() reason = %s, expected %s", result.Reason, tt.reason)
			}
		})
	}
}

func TestSolveSimpleTwoFlow(t *testing.T) {
	// -100,000 at t0 and +120,000 one calendar year later solves near 20%.
	// The exact value follows the Actual/365.25 day count: 365 elapsed days
	// is slightly less than one year, so the annualized rate lands just
	// above 0.20.
	flows := []Cashflow{
		flow("2025-01-01", -100000),
		flow("2026-01-01", 120000),
	}
	result := Solve(flows)
	if result.Undefined {
		t.Fatalf("Solve() undefined (%s), expected a rate", result.Reason)
	}

	years := datetime.YearFraction(date("2025-01-01"), date("2026-01-01"))
	expected := math.Pow(1.2, 1/years) - 1
	if math.Abs(result.Rate-expected) > 1e-6 {
		t.Errorf("Solve() = %.8f, expected %.8f", result.Rate, expected)
	}
	if math.Abs(result.Rate-0.20) > 2e-4 {
		t.Errorf("Solve() = %.6f, expected approximately 0.20", result.Rate)
	}
}

func TestSolveStrategiesAgree(t *testing.T) {
	flows := []Cashflow{
		flow("2025-01-01", -100000),
		flow("2026-07-01", 30000),
		flow("2028-01-01", 40000),
		flow("2030-01-01", 90000),
	}

	hybrid := SolveWithConfig(flows, Config{Strategy: Hybrid})
	newtonOnly := SolveWithConfig(flows, Config{Strategy: Newton})
	bisectionOnly := SolveWithConfig(flows, Config{Strategy: Bisection})

	if hybrid.Undefined || newtonOnly.Undefined || bisectionOnly.Undefined {
		t.Fatalf("expected all strategies to converge: hybrid=%+v newton=%+v bisection=%+v",
			hybrid, newtonOnly, bisectionOnly)
	}
	if math.Abs(hybrid.Rate-newtonOnly.Rate) > 1e-4 {
		t.Errorf("hybrid rate %.6f and newton rate %.6f disagree", hybrid.Rate, newtonOnly.Rate)
	}
	if math.Abs(hybrid.Rate-bisectionOnly.Rate) > 1e-4 {
		t.Errorf("hybrid rate %.6f and bisection rate %.6f disagree", hybrid.Rate, bisectionOnly.Rate)
	}
}

func TestSolveExtremeReturnFallsBackToBisection(t *testing.T) {
	// An IRR near 4,900% is outside Newton's bounded interval; the hybrid
	// strategy must still recover it through the expanded bisection bracket.
	flows := []Cashflow{
		flow("2025-01-01", -1),
		flow("2026-01-01", 50),
	}

	newtonOnly := SolveWithConfig(flows, Config{Strategy: Newton})
	if !newtonOnly.Undefined || newtonOnly.Reason != ReasonOutOfBounds {
		t.Errorf("newton-only = %+v, expected undefined out-of-bounds", newtonOnly)
	}

	hybrid := Solve(flows)
	if hybrid.Undefined {
		t.Fatalf("hybrid = %+v, expected a rate", hybrid)
	}
	years := datetime.YearFraction(date("2025-01-01"), date("2026-01-01"))
	expected := math.Pow(50, 1/years) - 1
	if math.Abs(hybrid.Rate-expected) > 1e-3 {
		t.Errorf("hybrid rate = %.4f, expected %.4f", hybrid.Rate, expected)
	}
}

func TestSolveUnbracketableRoot(t *testing.T) {
	// An IRR above 10,000% cannot be bracketed even by the expanded
	// interval; the solver must report it rather than guess.
	flows := []Cashflow{
		flow("2025-01-01", -1),
		flow("2026-01-01", 200),
	}
	result := Solve(flows)
	if !result.Undefined {
		t.Fatalf("Solve() = %+v, expected undefined", result)
	}
	if result.Reason != ReasonNoBracketableRoot {
		t.Errorf("Solve() reason = %s, expected %s", result.Reason, ReasonNoBracketableRoot)
	}
}

func TestSolveNettingEquivalence(t *testing.T) {
	flows := []Cashflow{
		flow("2025-01-01", -100000),
		flow("2025-01-01", 30000),
		flow("2027-01-01", 95000),
	}

	netted := Solve(flows)
	unnetted := SolveWithConfig(flows, Config{DisableNetting: true})
	if netted.Undefined || unnetted.Undefined {
		t.Fatalf("expected both to converge: netted=%+v unnetted=%+v", netted, unnetted)
	}
	// Netting is a numerical-stability measure; it must not change the root.
	if math.Abs(netted.Rate-unnetted.Rate) > 1e-6 {
		t.Errorf("netted rate %.8f differs from unnetted rate %.8f", netted.Rate, unnetted.Rate)
	}
}

func TestSolveOrderIndependence(t *testing.T) {
	ordered := []Cashflow{
		flow("2025-01-01", -100000),
		flow("2026-01-01", 40000),
		flow("2027-01-01", 40000),
		flow("2028-01-01", 40000),
	}
	shuffled := []Cashflow{ordered[2], ordered[0], ordered[3], ordered[1]}

	first := Solve(ordered)
	second := Solve(shuffled)
	if first != second {
		t.Errorf("input order changed the result: %+v vs %+v", first, second)
	}
}

func TestSolveDeterminism(t *testing.T) {
	flows := []Cashflow{
		flow("2025-01-01", -100000),
		flow("2025-06-15", -25000),
		flow("2028-03-01", 90000),
		flow("2031-01-01", 110000),
	}
	first := Solve(flows)
	second := Solve(flows)
	if first != second {
		t.Errorf("repeated solves differ: %+v vs %+v", first, second)
	}
	if first.Undefined {
		t.Fatalf("Solve() = %+v, expected a rate", first)
	}
	if math.IsNaN(first.Rate) || math.IsInf(first.Rate, 0) {
		t.Errorf("Solve() rate is not finite: %v", first.Rate)
	}
}

func TestSolveGuessSelectsRoot(t *testing.T) {
	// A series with two sign changes has two internal rates of return, near
	// 10% and 20% here. Newton-Raphson converges to the root whose basin
	// contains the starting guess, so the configured guess must reach the
	// solver as given - including a literal 0, which must not be silently
	// replaced with the 10% default.
	flows := []Cashflow{
		flow("2025-01-01", -1000),
		flow("2026-01-01", 2300),
		flow("2027-01-01", -1320),
	}

	fromZero := SolveWithConfig(flows, Config{Strategy: Newton, Guess: 0})
	if fromZero.Undefined {
		t.Fatalf("guess 0 = %+v, expected a rate", fromZero)
	}
	if fromZero.Rate > 0.15 {
		t.Errorf("guess 0 converged to %.4f, expected the lower root near 0.10", fromZero.Rate)
	}

	fromQuarter := SolveWithConfig(flows, Config{Strategy: Newton, Guess: 0.25})
	if fromQuarter.Undefined {
		t.Fatalf("guess 0.25 = %+v, expected a rate", fromQuarter)
	}
	if fromQuarter.Rate < 0.15 {
		t.Errorf("guess 0.25 converged to %.4f, expected the upper root near 0.20", fromQuarter.Rate)
	}
}

func TestSolveNegativeRate(t *testing.T) {
	// A losing fund has a well-defined negative IRR.
	flows := []Cashflow{
		flow("2025-01-01", -100000),
		flow("2030-01-01", 40000),
	}
	result := Solve(flows)
	if result.Undefined {
		t.Fatalf("Solve() undefined (%s), expected a rate", result.Reason)
	}
	years := datetime.YearFraction(date("2025-01-01"), date("2030-01-01"))
	expected := math.Pow(0.4, 1/years) - 1
	if math.Abs(result.Rate-expected) > 1e-6 {
		t.Errorf("Solve() = %.8f, expected %.8f", result.Rate, expected)
	}
	if result.Rate >= 0 {
		t.Errorf("Solve() = %.6f, expected a negative rate", result.Rate)
	}
}
