package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/iwvelando/fund-forecast/internal/fund"
	"github.com/iwvelando/fund-forecast/pkg/kpi"
	"github.com/iwvelando/fund-forecast/pkg/xirr"
	"github.com/shopspring/decimal"
)

func captureStdout(t *testing.T, render func()) string {
	t.Helper()
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	render()

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func sampleResult() (*fund.Result, kpi.Summary) {
	result := &fund.Result{
		Name: "Render Fund",
		Periods: []fund.PeriodSnapshot{
			{
				Index:         0,
				CalledCapital: decimal.NewFromInt(20_000_000),
				NewInvestment: decimal.NewFromInt(15_000_000),
				ManagementFee: decimal.NewFromInt(2_000_000),
				FeeOffset:     decimal.NewFromInt(500_000),
				NAV:           decimal.NewFromInt(18_000_000),
				TVPI:          0.9,
			},
		},
	}
	summary := kpi.Summary{TVPI: 0.9, DPI: 0, GrossMOIC: 1.1, NetMOIC: 0.9, IRR: 0.12}
	return result, summary
}

func TestPrettyFormat(t *testing.T) {
	result, summary := sampleResult()
	output := captureStdout(t, func() {
		PrettyFormat(result, summary)
	})

	if !strings.Contains(output, "--- Results for fund Render Fund ---") {
		t.Error("PrettyFormat missing fund header")
	}
	if !strings.Contains(output, "$20,000,000.00") {
		t.Error("PrettyFormat missing grouped called capital value")
	}
	if !strings.Contains(output, "Fee Offset") || !strings.Contains(output, "$500,000.00") {
		t.Error("PrettyFormat missing fee offset column")
	}
	if !strings.Contains(output, "IRR: 12.00%") {
		t.Error("PrettyFormat missing IRR line")
	}
}

func TestPrettyFormatUndefinedIRR(t *testing.T) {
	result, summary := sampleResult()
	summary.IRR = 0
	summary.IRRUndefined = xirr.ReasonNoSignChange
	output := captureStdout(t, func() {
		PrettyFormat(result, summary)
	})

	if !strings.Contains(output, "IRR: N/A (no-sign-change)") {
		t.Error("PrettyFormat should render an undefined IRR as N/A with its reason")
	}
}

func TestCsvFormat(t *testing.T) {
	result, summary := sampleResult()
	output := captureStdout(t, func() {
		CsvFormat(result, summary)
	})

	if !strings.Contains(output, `"period","startDate","endDate"`) {
		t.Error("CsvFormat missing header row")
	}
	if !strings.Contains(output, `"20000000.00"`) {
		t.Error("CsvFormat missing called capital value")
	}
	if !strings.Contains(output, `"feeOffset"`) || !strings.Contains(output, `"500000.00"`) {
		t.Error("CsvFormat missing fee offset field")
	}
	if !strings.Contains(output, `"summary","tvpi","0.9000"`) {
		t.Error("CsvFormat missing summary row")
	}
}
