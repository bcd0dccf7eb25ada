// Package testutil provides common utility functions for testing.
package testutil

import (
	"time"

	"github.com/iwvelando/fund-forecast/internal/config"
	"github.com/iwvelando/fund-forecast/internal/fund"
)

// FixedStart is the deterministic fund start date used across tests.
var FixedStart = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// BaselineFund returns a small, valid fund configuration that tests can
// modify. Defaults are already applied.
func BaselineFund() config.FundParameters {
	return config.FundParameters{
		Name:                  "Test Fund I",
		CommittedCapital:      100_000_000,
		StartDate:             "2025-01-01",
		InvestmentPeriodYears: 5,
		PeriodLengthMonths:    12,
		ManagementFeePct:      2.0,
		FeeHorizonYears:       10,
		ReservePct:            20,
		Stages: []config.StageAllocation{
			{
				Stage:            "seed",
				Allocation:       0.4,
				AvgCheckSize:     1_000_000,
				OwnershipPct:     100,
				GraduationMonths: 24,
				ExitMonths:       60,
				GraduationRate:   0.5,
				ExitRate:         1.0,
			},
			{
				Stage:            "series-a",
				Allocation:       0.6,
				AvgCheckSize:     3_000_000,
				OwnershipPct:     100,
				GraduationMonths: 36,
				ExitMonths:       84,
				GraduationRate:   0.5,
				ExitRate:         1.0,
			},
		},
		Schedule: config.ScheduleConfig{Shape: "even"},
	}
}

// FindCompany finds a company by ID in a simulation result. Returns nil when
// absent.
func FindCompany(result *fund.Result, id string) *fund.CompanyRecord {
	for i := range result.Companies {
		if result.Companies[i].ID == id {
			return &result.Companies[i]
		}
	}
	return nil
}

// FindPeriod finds a period snapshot by index. Returns nil when absent.
func FindPeriod(result *fund.Result, index int) *fund.PeriodSnapshot {
	for i := range result.Periods {
		if result.Periods[i].Index == index {
			return &result.Periods[i]
		}
	}
	return nil
}
