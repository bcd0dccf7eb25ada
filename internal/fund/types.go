// Package fund defines the data structures related to a fund simulation and
// includes functions for computing the period-by-period ledger.
package fund

import (
	"time"

	"github.com/shopspring/decimal"
)

// Parameters is the engine-side mirror of the fund configuration: monetary
// fields as decimals, rates as decimal fractions, and the capital-call
// schedule already generated. Built by pkg/adapters from a validated
// configuration; immutable during a run.
type Parameters struct {
	Name             string
	CommittedCapital decimal.Decimal
	StartDate        time.Time
	PeriodMonths     int

	// FeeRate and FeeStepDownRate are annual fractions (0.02 means 2%).
	// Fees accrue until elapsed years reach FeeHorizonYears and step down
	// permanently from FeeStepDownYear onward. FeeStepDownYear of zero means
	// no step-down.
	FeeRate         decimal.Decimal
	FeeStepDownYear int
	FeeStepDownRate decimal.Decimal
	FeeHorizonYears int

	// ReserveRatio is the fraction of each stage's capital held back for
	// follow-on investments.
	ReserveRatio decimal.Decimal

	// GPCommitment is the GP's share of committed capital; GPCashCommitment
	// is the portion funded in cash. The remainder is contributed as a
	// management-fee offset drawn down period by period.
	GPCommitment     decimal.Decimal
	GPCashCommitment decimal.Decimal

	Stages []Stage

	// Schedule holds the per-period capital-call percentages for the
	// investment period.
	Schedule []float64
}

// Stage is one row of the stage allocation table, converted for the engine.
type Stage struct {
	Name string
	// Allocation is this stage's fraction of investable capital (committed
	// capital net of projected lifetime fees). Stage allocations sum to 1.
	Allocation   decimal.Decimal
	AvgCheckSize decimal.Decimal
	// Ownership is the fund's ownership fraction of a company at exit.
	Ownership        decimal.Decimal
	GraduationMonths int
	ExitMonths       int
	GraduationRate   float64
	ExitRate         float64
}

// ExitBucket is a company's deterministic exit outcome.
type ExitBucket string

const (
	TotalLoss      ExitBucket = "total-loss"
	Acquired       ExitBucket = "acquired"
	PublicOffering ExitBucket = "public-offering"
	SecondarySale  ExitBucket = "secondary-sale"
)

// bucketCycle fixes the round-robin assignment order. Companies receive
// buckets by deployment order modulo this list; the order is part of the
// engine's contract because golden vectors depend on it.
var bucketCycle = [...]ExitBucket{TotalLoss, Acquired, PublicOffering, SecondarySale}

// exitMultiple returns the deterministic exit-value multiple for a bucket.
func exitMultiple(bucket ExitBucket) decimal.Decimal {
	switch bucket {
	case TotalLoss:
		return decimal.RequireFromString("0.1")
	case Acquired:
		return decimal.NewFromInt(3)
	case PublicOffering:
		return decimal.NewFromInt(15)
	case SecondarySale:
		return decimal.NewFromInt(5)
	}
	return decimal.Zero
}

// CompanyRecord is one simulated portfolio investment. A record is created at
// deployment, mutated exactly once when its exit period arrives, and never
// deleted.
type CompanyRecord struct {
	ID              string
	Stage           string
	DeploymentOrder int
	ExitBucket      ExitBucket

	InitialInvestment  decimal.Decimal
	FollowOnInvestment decimal.Decimal
	Ownership          decimal.Decimal

	GraduationMonths int
	ExitMonths       int
	// Graduates and WillExit are the deterministic cohort selections made at
	// deployment from the stage's graduation and exit rates.
	Graduates bool
	WillExit  bool

	Exited       bool
	ExitPeriod   int
	ExitValue    decimal.Decimal
	FundProceeds decimal.Decimal

	// pendingFollowOn is the reserve amount earmarked at deployment and
	// cleared once invested at the graduation period.
	pendingFollowOn decimal.Decimal
}

// TotalInvested returns initial plus follow-on capital in the company.
func (c *CompanyRecord) TotalInvested() decimal.Decimal {
	return c.InitialInvestment.Add(c.FollowOnInvestment)
}

// PeriodSnapshot is one row of the simulation ledger. Snapshots are produced
// in increasing period order and never mutated after being appended.
type PeriodSnapshot struct {
	Index     int
	StartDate time.Time
	EndDate   time.Time

	CalledCapital decimal.Decimal
	NewInvestment decimal.Decimal
	ManagementFee decimal.Decimal
	// FeeOffset is the portion of the management fee satisfied by the GP's
	// non-cash commitment this period. Informational; the fee itself is
	// charged in full.
	FeeOffset     decimal.Decimal
	ExitProceeds  decimal.Decimal
	Distributions decimal.Decimal
	NAV           decimal.Decimal

	// Running ratios as of this period, rounded to four decimal places.
	TVPI float64
	DPI  float64
}

// Result is the complete output of one simulation run.
type Result struct {
	Name      string
	Periods   []PeriodSnapshot
	Companies []CompanyRecord
}

// FinalNAV returns the last period's NAV, or zero for an empty run.
func (r *Result) FinalNAV() decimal.Decimal {
	if len(r.Periods) == 0 {
		return decimal.Zero
	}
	return r.Periods[len(r.Periods)-1].NAV
}
