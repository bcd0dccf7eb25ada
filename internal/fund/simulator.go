package fund

import (
	"fmt"

	"github.com/iwvelando/fund-forecast/pkg/constants"
	"github.com/iwvelando/fund-forecast/pkg/datetime"
	"github.com/iwvelando/fund-forecast/pkg/mathutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Simulator runs the deterministic period-by-period fund model. It holds no
// state across runs; two calls with identical parameters produce identical
// results.
type Simulator struct {
	logger *zap.Logger
}

// NewSimulator creates a simulator with the given logger. If logger is nil,
// it will use a no-op logger to prevent panics.
func NewSimulator(logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{logger: logger}
}

// Run simulates the fund's full lifetime. Capital calls follow the schedule
// across the investment period; companies are deployed up-front at period 0,
// the only supported deployment policy. The run always covers periods 0..N
// where N is derived from the longer of the last stage exit and the fee
// horizon, because fees may still accrue after every company has exited.
func (s *Simulator) Run(params Parameters) (*Result, error) {
	if params.PeriodMonths <= 0 {
		return nil, fmt.Errorf("period length must be positive, got %d months", params.PeriodMonths)
	}
	if len(params.Schedule) == 0 {
		return nil, fmt.Errorf("fund %s has an empty capital call schedule", params.Name)
	}

	lastPeriod := s.horizon(params)
	companies := s.deploy(params)

	s.logger.Debug("starting fund simulation",
		zap.String("op", "fund.Run"),
		zap.String("fund", params.Name),
		zap.Int("periods", lastPeriod+1),
		zap.Int("companies", len(companies)),
	)

	result := &Result{
		Name:      params.Name,
		Periods:   make([]PeriodSnapshot, 0, lastPeriod+1),
		Companies: companies,
	}

	cash := decimal.Zero
	cumulativeCalled := decimal.Zero
	cumulativeDistributions := decimal.Zero
	feeOffsetPool := params.GPCommitment.Sub(params.GPCashCommitment)

	for p := 0; p <= lastPeriod; p++ {
		start, end := datetime.PeriodBounds(params.StartDate, params.PeriodMonths, p)

		called := s.calledCapital(params, p)
		fee := s.managementFee(params, p)
		offset := decimal.Min(feeOffsetPool, fee)
		feeOffsetPool = feeOffsetPool.Sub(offset)

		newInvestment := decimal.Zero
		if p == 0 {
			for i := range result.Companies {
				newInvestment = newInvestment.Add(result.Companies[i].InitialInvestment)
			}
		} else {
			newInvestment = s.processGraduations(result.Companies, params, p)
		}

		proceeds := decimal.Zero
		if p > 0 {
			proceeds = s.processExits(result.Companies, params, p)
		}

		// Policy A: distributions in a period equal exactly that period's
		// exit proceeds.
		distributions := proceeds

		cash = cash.Add(called).Add(proceeds).Sub(fee).Sub(newInvestment).Sub(distributions)

		nav := cash
		for i := range result.Companies {
			if !result.Companies[i].Exited {
				nav = nav.Add(result.Companies[i].TotalInvested())
			}
		}

		cumulativeCalled = cumulativeCalled.Add(called)
		cumulativeDistributions = cumulativeDistributions.Add(distributions)

		result.Periods = append(result.Periods, PeriodSnapshot{
			Index:         p,
			StartDate:     start,
			EndDate:       end,
			CalledCapital: called,
			NewInvestment: newInvestment,
			ManagementFee: fee,
			FeeOffset:     offset,
			ExitProceeds:  proceeds,
			Distributions: distributions,
			NAV:           nav,
			TVPI:          mathutil.RoundRatio(mathutil.Ratio(cumulativeDistributions.Add(nav), cumulativeCalled)),
			DPI:           mathutil.RoundRatio(mathutil.Ratio(cumulativeDistributions, cumulativeCalled)),
		})
	}

	return result, nil
}

// horizon returns the last period index N: the longer of the latest stage
// exit and the fee horizon, divided by the period length, rounded up. The
// schedule length is also covered so every scheduled call lands in a period.
func (s *Simulator) horizon(params Parameters) int {
	months := params.FeeHorizonYears * constants.MonthsPerYear
	for _, stage := range params.Stages {
		if stage.ExitMonths > months {
			months = stage.ExitMonths
		}
	}
	last := (months + params.PeriodMonths - 1) / params.PeriodMonths
	if scheduled := len(params.Schedule) - 1; scheduled > last {
		last = scheduled
	}
	return last
}

// deploy creates the company ledger at period 0. Each stage receives its
// allocation of investable capital (commitment net of projected lifetime
// fees, so the ledger cannot systematically overdraw); cohorts are sized with
// floor(deployable/check); exit buckets cycle through the fixed bucket list
// in global deployment order; the graduation and exit cohorts are the first
// floor(count*rate) companies of each stage.
func (s *Simulator) deploy(params Parameters) []CompanyRecord {
	investable := params.CommittedCapital.Sub(s.lifetimeFees(params))
	var companies []CompanyRecord
	order := 0
	for _, stage := range params.Stages {
		if stage.AvgCheckSize.IsZero() {
			s.logger.Debug("skipping stage with zero average check size",
				zap.String("op", "fund.deploy"),
				zap.String("stage", stage.Name),
			)
			continue
		}
		capital := investable.Mul(stage.Allocation)
		reserve := capital.Mul(params.ReserveRatio)
		deployable := capital.Sub(reserve)
		count := int(deployable.Div(stage.AvgCheckSize).IntPart())
		if count <= 0 {
			continue
		}

		graduating := int(float64(count) * stage.GraduationRate)
		if stage.GraduationMonths <= 0 {
			graduating = 0
		}
		exiting := int(float64(count) * stage.ExitRate)
		followOn := decimal.Zero
		if graduating > 0 {
			followOn = reserve.Div(decimal.NewFromInt(int64(graduating)))
		}

		for i := 0; i < count; i++ {
			company := CompanyRecord{
				ID:                fmt.Sprintf("%s-%d", stage.Name, i+1),
				Stage:             stage.Name,
				DeploymentOrder:   order,
				ExitBucket:        bucketCycle[order%len(bucketCycle)],
				InitialInvestment: stage.AvgCheckSize,
				Ownership:         stage.Ownership,
				GraduationMonths:  stage.GraduationMonths,
				ExitMonths:        stage.ExitMonths,
				Graduates:         i < graduating,
				WillExit:          i < exiting,
			}
			if company.Graduates {
				// The reserve follow-on is earmarked at deployment but only
				// invested at the graduation period.
				company.pendingFollowOn = followOn
			}
			companies = append(companies, company)
			order++
		}
	}
	return companies
}

// processGraduations invests reserve follow-ons into companies whose
// graduation month falls inside period p. Returns the total invested this
// period.
func (s *Simulator) processGraduations(companies []CompanyRecord, params Parameters, p int) decimal.Decimal {
	elapsed := datetime.ElapsedMonths(params.PeriodMonths, p)
	invested := decimal.Zero
	for i := range companies {
		c := &companies[i]
		if !c.Graduates || c.Exited || c.pendingFollowOn.IsZero() {
			continue
		}
		if c.GraduationMonths <= elapsed {
			c.FollowOnInvestment = c.pendingFollowOn
			c.pendingFollowOn = decimal.Zero
			invested = invested.Add(c.FollowOnInvestment)
			s.logger.Debug("follow-on investment",
				zap.String("op", "fund.processGraduations"),
				zap.String("company", c.ID),
				zap.Int("period", p),
			)
		}
	}
	return invested
}

// processExits realizes exits for companies whose exit month falls inside
// period p. Exit value is total invested times the bucket multiple; fund
// proceeds apply the ownership fraction. Returns total proceeds this period.
func (s *Simulator) processExits(companies []CompanyRecord, params Parameters, p int) decimal.Decimal {
	elapsed := datetime.ElapsedMonths(params.PeriodMonths, p)
	proceeds := decimal.Zero
	for i := range companies {
		c := &companies[i]
		if c.Exited || !c.WillExit {
			continue
		}
		if c.ExitMonths <= elapsed {
			c.Exited = true
			c.ExitPeriod = p
			c.ExitValue = c.TotalInvested().Mul(exitMultiple(c.ExitBucket))
			c.FundProceeds = c.ExitValue.Mul(c.Ownership)
			proceeds = proceeds.Add(c.FundProceeds)
			s.logger.Debug("company exit",
				zap.String("op", "fund.processExits"),
				zap.String("company", c.ID),
				zap.String("bucket", string(c.ExitBucket)),
				zap.Int("period", p),
			)
		}
	}
	return proceeds
}

// lifetimeFees projects the total management fees over the fund's life by
// summing the per-period accrual through the fee horizon. Uses the same
// per-period formula as the running simulation so the projection and the
// ledger agree exactly.
func (s *Simulator) lifetimeFees(params Parameters) decimal.Decimal {
	total := decimal.Zero
	for p := 0; p <= s.horizon(params); p++ {
		total = total.Add(s.managementFee(params, p))
	}
	return total
}

// calledCapital returns the capital called in period p per the schedule.
// Periods beyond the schedule call nothing.
func (s *Simulator) calledCapital(params Parameters, p int) decimal.Decimal {
	if p >= len(params.Schedule) {
		return decimal.Zero
	}
	return mathutil.ApplyPercentage(params.CommittedCapital, params.Schedule[p])
}

// managementFee returns the fee accrued in period p: the annual rate
// pro-rated to the period length, on full fund size. The rate steps down
// permanently from the step-down year; accrual stops once elapsed years reach
// the fee horizon. Both thresholds are evaluated at the period's start,
// independent of exit activity.
func (s *Simulator) managementFee(params Parameters, p int) decimal.Decimal {
	elapsedYears := datetime.ElapsedYears(params.PeriodMonths, p)
	if elapsedYears >= params.FeeHorizonYears {
		return decimal.Zero
	}
	rate := params.FeeRate
	if params.FeeStepDownYear > 0 && elapsedYears >= params.FeeStepDownYear-1 {
		rate = params.FeeStepDownRate
	}
	return params.CommittedCapital.
		Mul(rate).
		Mul(decimal.NewFromInt(int64(params.PeriodMonths))).
		Div(decimal.NewFromInt(constants.MonthsPerYear))
}
