// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"math"

	"github.com/iwvelando/fund-forecast/pkg/constants"
)

// ValidateOutputFormat checks that a requested output format names one of the
// supported renderers.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV:
		return nil
	}
	return fmt.Errorf("unsupported output format %q: expected %s or %s",
		format, constants.OutputFormatPretty, constants.OutputFormatCSV)
}

// StageInfo carries the stage fields the advisory checks need.
type StageInfo struct {
	Name             string
	Allocation       float64
	AvgCheckSize     float64
	ExitMonths       int
	GraduationMonths int
}

// ValidateCustomScheduleSum warns when a custom capital-call schedule sums
// far from 100 percent. Custom schedules are never auto-normalized, so a
// caller who supplies 95% has simply left 5% uncalled.
func ValidateCustomScheduleSum(fundName string, percentages []float64) string {
	sum := 0.0
	for _, p := range percentages {
		sum += p
	}
	if math.Abs(sum-constants.PercentageMultiplier) > constants.CustomScheduleWarnTolerance {
		return fmt.Sprintf("Fund '%s' custom schedule sums to %.2f%% rather than 100%% - capital calls will not cover the full commitment",
			fundName, sum)
	}
	return ""
}

// ValidateStages returns advisory warnings about stage parameters that are
// legal but likely unintended.
func ValidateStages(stages []StageInfo) []string {
	var warnings []string
	for _, stage := range stages {
		if stage.Allocation > 0 && stage.AvgCheckSize == 0 {
			warnings = append(warnings, fmt.Sprintf("Stage '%s' has capital allocated but a zero average check size - no companies will be deployed for it",
				stage.Name))
		}
	}
	return warnings
}

// ValidateFeeHorizon warns when fees stop accruing before the portfolio's
// last exit; the simulation still runs through the later of the two horizons.
func ValidateFeeHorizon(feeHorizonYears int, stages []StageInfo) string {
	longestExit := 0
	for _, stage := range stages {
		if stage.ExitMonths > longestExit {
			longestExit = stage.ExitMonths
		}
	}
	if feeHorizonYears*constants.MonthsPerYear < longestExit {
		return fmt.Sprintf("Management fee horizon (%d years) ends before the longest stage exit (%d months) - later periods accrue no fees",
			feeHorizonYears, longestExit)
	}
	return ""
}
