// Package output provides utilities for formatting and displaying simulation results.
package output

import (
	"fmt"

	"github.com/iwvelando/fund-forecast/internal/fund"
	"github.com/iwvelando/fund-forecast/pkg/datetime"
	"github.com/iwvelando/fund-forecast/pkg/kpi"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(result *fund.Result, summary kpi.Summary) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- Results for fund %s ---\n", result.Name)
	fmt.Printf("Period | Start      | Called        | Invested      | Fees        | Fee Offset  | Proceeds      | Distributions | NAV           | TVPI   | DPI\n")
	fmt.Printf("______ | _____      | ______        | ________      | ____        | __________  | ________      | _____________ | ___           | ____   | ___\n")
	for _, period := range result.Periods {
		_, _ = p.Printf("%6d | %s | $%.2f | $%.2f | $%.2f | $%.2f | $%.2f | $%.2f | $%.2f | %.4f | %.4f\n",
			period.Index,
			period.StartDate.Format(datetime.DateTimeLayout),
			period.CalledCapital.InexactFloat64(),
			period.NewInvestment.InexactFloat64(),
			period.ManagementFee.InexactFloat64(),
			period.FeeOffset.InexactFloat64(),
			period.ExitProceeds.InexactFloat64(),
			period.Distributions.InexactFloat64(),
			period.NAV.InexactFloat64(),
			period.TVPI,
			period.DPI,
		)
	}

	fmt.Printf("\n--- Summary ---\n")
	_, _ = p.Printf("TVPI: %.4fx | DPI: %.4fx | Gross MOIC: %.4fx | Net MOIC: %.4fx\n",
		summary.TVPI, summary.DPI, summary.GrossMOIC, summary.NetMOIC)
	if summary.IRRUndefined != "" {
		fmt.Printf("IRR: N/A (%s)\n", summary.IRRUndefined)
	} else {
		_, _ = p.Printf("IRR: %.2f%%\n", summary.IRR*100)
	}
	for _, diagnostic := range summary.Diagnostics {
		fmt.Printf("note: %s\n", diagnostic)
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(result *fund.Result, summary kpi.Summary) {
	fmt.Printf(`"period","startDate","endDate","calledCapital","newInvestment","managementFee","feeOffset","exitProceeds","distributions","nav","tvpi","dpi"`)
	fmt.Printf("\n")
	for _, period := range result.Periods {
		fmt.Printf(`"%d","%s","%s","%s","%s","%s","%s","%s","%s","%s","%.4f","%.4f"`,
			period.Index,
			period.StartDate.Format(datetime.DateTimeLayout),
			period.EndDate.Format(datetime.DateTimeLayout),
			period.CalledCapital.StringFixed(2),
			period.NewInvestment.StringFixed(2),
			period.ManagementFee.StringFixed(2),
			period.FeeOffset.StringFixed(2),
			period.ExitProceeds.StringFixed(2),
			period.Distributions.StringFixed(2),
			period.NAV.StringFixed(2),
			period.TVPI,
			period.DPI,
		)
		fmt.Printf("\n")
	}
	irr := "N/A"
	if summary.IRRUndefined == "" {
		irr = fmt.Sprintf("%.6f", summary.IRR)
	}
	fmt.Printf(`"summary","tvpi","%.4f","dpi","%.4f","grossMoic","%.4f","netMoic","%.4f","irr","%s"`,
		summary.TVPI, summary.DPI, summary.GrossMOIC, summary.NetMOIC, irr)
	fmt.Printf("\n")
}
