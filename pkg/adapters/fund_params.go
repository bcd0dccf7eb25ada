// Package adapters converts validated configuration structures into the
// decimal engine parameters the simulator consumes.
package adapters

import (
	"fmt"
	"time"

	"github.com/iwvelando/fund-forecast/internal/config"
	"github.com/iwvelando/fund-forecast/internal/fund"
	"github.com/iwvelando/fund-forecast/pkg/constants"
	"github.com/iwvelando/fund-forecast/pkg/datetime"
	"github.com/iwvelando/fund-forecast/pkg/schedule"
	"github.com/shopspring/decimal"
)

// FundToParameters converts fund configuration into engine parameters,
// generating the capital-call schedule along the way. An unset start date
// defaults to today.
func FundToParameters(conf config.FundParameters) (fund.Parameters, error) {
	return FundToParametersWithFixedTime(conf, time.Now())
}

// FundToParametersWithFixedTime converts fund configuration into engine
// parameters with injectable fixed time for testing.
func FundToParametersWithFixedTime(conf config.FundParameters, fixedTime time.Time) (fund.Parameters, error) {
	var params fund.Parameters

	start := datetime.Normalize(fixedTime)
	if conf.StartDate != "" {
		parsed, err := time.Parse(config.DateTimeLayout, conf.StartDate)
		if err != nil {
			return params, fmt.Errorf("fund %s: invalid start date %q: %w", conf.Name, conf.StartDate, err)
		}
		start = datetime.Normalize(parsed)
	}

	shape, err := schedule.ParseShape(conf.Schedule.Shape)
	if err != nil {
		return params, err
	}
	horizonMonths := conf.InvestmentPeriodYears * constants.MonthsPerYear
	horizonPeriods := (horizonMonths + conf.PeriodLengthMonths - 1) / conf.PeriodLengthMonths
	custom := make([]schedule.Entry, 0, len(conf.Schedule.Custom))
	for _, entry := range conf.Schedule.Custom {
		custom = append(custom, schedule.Entry{Period: entry.Period, Percent: entry.Percent})
	}
	pattern, err := schedule.Generate(shape, horizonPeriods, custom)
	if err != nil {
		return params, err
	}

	committed := decimal.NewFromFloat(conf.CommittedCapital)
	gpCommitment := percentOf(committed, conf.GPCommitmentPct)

	params = fund.Parameters{
		Name:             conf.Name,
		CommittedCapital: committed,
		StartDate:        start,
		PeriodMonths:     conf.PeriodLengthMonths,
		FeeRate:          fraction(conf.ManagementFeePct),
		FeeStepDownYear:  conf.FeeStepDownYear,
		FeeStepDownRate:  fraction(conf.FeeStepDownPct),
		FeeHorizonYears:  conf.FeeHorizonYears,
		ReserveRatio:     fraction(conf.ReservePct),
		GPCommitment:     gpCommitment,
		GPCashCommitment: percentOf(gpCommitment, conf.GPCashPct),
		Schedule:         pattern,
	}

	params.Stages = make([]fund.Stage, 0, len(conf.Stages))
	for _, stage := range conf.Stages {
		params.Stages = append(params.Stages, fund.Stage{
			Name:             stage.Stage,
			Allocation:       decimal.NewFromFloat(stage.Allocation),
			AvgCheckSize:     decimal.NewFromFloat(stage.AvgCheckSize),
			Ownership:        fraction(stage.OwnershipPct),
			GraduationMonths: stage.GraduationMonths,
			ExitMonths:       stage.ExitMonths,
			GraduationRate:   stage.GraduationRate,
			ExitRate:         stage.ExitRate,
		})
	}

	return params, nil
}

// fraction converts a percentage (2.0 means 2%) to a decimal fraction.
func fraction(pct float64) decimal.Decimal {
	return decimal.NewFromFloat(pct / constants.PercentageMultiplier)
}

func percentOf(value decimal.Decimal, pct float64) decimal.Decimal {
	return value.Mul(fraction(pct))
}
