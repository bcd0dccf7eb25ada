package config

import (
	"github.com/iwvelando/fund-forecast/pkg/schedule"
	"github.com/iwvelando/fund-forecast/pkg/validation"
)

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Unlike Validate, nothing reported here stops a run; the
// caller decides whether to log or surface the warnings.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	stages := make([]validation.StageInfo, 0, len(conf.Fund.Stages))
	for _, stage := range conf.Fund.Stages {
		stages = append(stages, validation.StageInfo{
			Name:             stage.Stage,
			Allocation:       stage.Allocation,
			AvgCheckSize:     stage.AvgCheckSize,
			ExitMonths:       stage.ExitMonths,
			GraduationMonths: stage.GraduationMonths,
		})
	}

	warnings = append(warnings, validation.ValidateStages(stages)...)

	if warning := validation.ValidateFeeHorizon(conf.Fund.FeeHorizonYears, stages); warning != "" {
		warnings = append(warnings, warning)
	}

	if schedule.Shape(conf.Fund.Schedule.Shape) == schedule.Custom {
		percentages := make([]float64, 0, len(conf.Fund.Schedule.Custom))
		for _, entry := range conf.Fund.Schedule.Custom {
			percentages = append(percentages, entry.Percent)
		}
		if warning := validation.ValidateCustomScheduleSum(conf.Fund.Name, percentages); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	return warnings
}
