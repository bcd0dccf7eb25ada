package validation

import (
	"strings"
	"testing"
)

func TestValidateOutputFormat(t *testing.T) {
	for _, valid := range []string{"pretty", "csv"} {
		if err := ValidateOutputFormat(valid); err != nil {
			t.Errorf("ValidateOutputFormat(%q) error = %v", valid, err)
		}
	}
	if err := ValidateOutputFormat("xlsx"); err == nil {
		t.Error("ValidateOutputFormat(\"xlsx\") expected an error, got nil")
	}
}

func TestValidateCustomScheduleSum(t *testing.T) {
	if warning := ValidateCustomScheduleSum("Fund I", []float64{25, 25, 25, 25}); warning != "" {
		t.Errorf("expected no warning for a full schedule, got %q", warning)
	}
	warning := ValidateCustomScheduleSum("Fund I", []float64{50, 30})
	if warning == "" {
		t.Fatal("expected a warning for an 80% schedule")
	}
	if !strings.Contains(warning, "80.00%") {
		t.Errorf("warning = %q, expected it to name the 80.00%% sum", warning)
	}
}

func TestValidateStages(t *testing.T) {
	stages := []StageInfo{
		{Name: "seed", Allocation: 0.5, AvgCheckSize: 1_000_000, ExitMonths: 60},
		{Name: "growth", Allocation: 0.5, AvgCheckSize: 0, ExitMonths: 96},
	}
	warnings := ValidateStages(stages)
	if len(warnings) != 1 {
		t.Fatalf("warnings = %d, expected 1", len(warnings))
	}
	if !strings.Contains(warnings[0], "growth") {
		t.Errorf("warning = %q, expected it to name the growth stage", warnings[0])
	}

	// A zero-allocation stage with no check size is fine.
	if got := ValidateStages([]StageInfo{{Name: "idle", Allocation: 0, AvgCheckSize: 0}}); len(got) != 0 {
		t.Errorf("expected no warnings for a zero-allocation stage, got %v", got)
	}
}

func TestValidateFeeHorizon(t *testing.T) {
	stages := []StageInfo{{Name: "seed", ExitMonths: 144}}
	if warning := ValidateFeeHorizon(10, stages); warning == "" {
		t.Error("expected a warning when exits outlast the fee horizon")
	}
	if warning := ValidateFeeHorizon(12, stages); warning != "" {
		t.Errorf("expected no warning, got %q", warning)
	}
}
