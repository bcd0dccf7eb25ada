// Package kpi derives summary performance metrics from a completed fund
// simulation: paid-in ratios, MOIC, and the annualized IRR via the xirr
// solver.
package kpi

import (
	"fmt"

	"github.com/iwvelando/fund-forecast/internal/fund"
	"github.com/iwvelando/fund-forecast/pkg/mathutil"
	"github.com/iwvelando/fund-forecast/pkg/xirr"
	"github.com/shopspring/decimal"
)

// Summary holds the fund-level performance metrics. Every field is finite;
// an undefined IRR is reported as 0 with the reason in IRRUndefined rather
// than an error or NaN.
type Summary struct {
	TVPI      float64
	DPI       float64
	IRR       float64
	GrossMOIC float64
	NetMOIC   float64

	// IRRUndefined carries the solver's reason when no rate exists; empty
	// otherwise.
	IRRUndefined xirr.Reason

	// Diagnostics lists advisory invariant violations (TVPI < DPI, negative
	// NAV, gross MOIC below net). These are never fatal; unusual input can
	// legitimately produce them.
	Diagnostics []string
}

// BuildCashflows flattens period snapshots into the solver's cash-flow
// series: capital calls as negative flows at period start, distributions as
// positive flows at period end, and the final NAV as a terminal positive flow
// dated at the last period's end.
func BuildCashflows(periods []fund.PeriodSnapshot) []xirr.Cashflow {
	var flows []xirr.Cashflow
	for _, period := range periods {
		if !period.CalledCapital.IsZero() {
			flows = append(flows, xirr.Cashflow{Date: period.StartDate, Amount: period.CalledCapital.Neg()})
		}
		if !period.Distributions.IsZero() {
			flows = append(flows, xirr.Cashflow{Date: period.EndDate, Amount: period.Distributions})
		}
	}
	if len(periods) > 0 {
		last := periods[len(periods)-1]
		if !last.NAV.IsZero() {
			flows = append(flows, xirr.Cashflow{Date: last.EndDate, Amount: last.NAV})
		}
	}
	return flows
}

// Aggregate computes the summary for a simulation result using the default
// solver configuration.
func Aggregate(result *fund.Result) Summary {
	return AggregateWithConfig(result, xirr.DefaultConfig())
}

// AggregateWithConfig computes the summary with an explicit solver
// configuration.
func AggregateWithConfig(result *fund.Result, solverCfg xirr.Config) Summary {
	var contributions, distributions, invested, fees decimal.Decimal
	for _, period := range result.Periods {
		contributions = contributions.Add(period.CalledCapital)
		distributions = distributions.Add(period.Distributions)
		invested = invested.Add(period.NewInvestment)
		fees = fees.Add(period.ManagementFee)
	}
	nav := result.FinalNAV()
	totalValue := distributions.Add(nav)

	summary := Summary{
		DPI:       mathutil.RoundRatio(mathutil.Ratio(distributions, contributions)),
		TVPI:      mathutil.RoundRatio(mathutil.Ratio(totalValue, contributions)),
		GrossMOIC: mathutil.RoundRatio(mathutil.Ratio(totalValue.Add(fees), invested)),
		NetMOIC:   mathutil.RoundRatio(mathutil.Ratio(totalValue, contributions)),
	}

	solved := xirr.SolveWithConfig(BuildCashflows(result.Periods), solverCfg)
	if solved.Undefined {
		summary.IRRUndefined = solved.Reason
	} else {
		summary.IRR = solved.Rate
	}

	summary.Diagnostics = diagnose(result, summary)
	return summary
}

// diagnose reports advisory invariant violations. A violation does not
// invalidate the result; it flags input worth a second look.
func diagnose(result *fund.Result, summary Summary) []string {
	var diagnostics []string
	if summary.TVPI < summary.DPI {
		diagnostics = append(diagnostics, fmt.Sprintf("TVPI %.4f is below DPI %.4f", summary.TVPI, summary.DPI))
	}
	if summary.GrossMOIC < summary.NetMOIC {
		diagnostics = append(diagnostics, fmt.Sprintf("gross MOIC %.4f is below net MOIC %.4f", summary.GrossMOIC, summary.NetMOIC))
	}
	for _, period := range result.Periods {
		if period.NAV.IsNegative() {
			diagnostics = append(diagnostics, fmt.Sprintf("period %d NAV is negative (%s)", period.Index, period.NAV.StringFixed(2)))
		}
	}
	return diagnostics
}
