// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/iwvelando/fund-forecast/pkg/constants"
	"github.com/iwvelando/fund-forecast/pkg/schedule"
	"github.com/spf13/viper"
)

// DateTimeLayout is the format expected in config files and is also the output
// date format.
const DateTimeLayout = constants.DateTimeLayout

// Configuration holds all configuration for fund-forecast.
type Configuration struct {
	Fund    FundParameters
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// FundParameters describes one closed-end fund. Fields suffixed Pct are
// percentages (2.0 means 2%); stage Allocation values are fractions of
// investable capital and must sum to 1.0 across stages.
type FundParameters struct {
	Name             string  `validate:"required"`
	CommittedCapital float64 `validate:"required,gt=0"`
	// StartDate is the fund's first close in YYYY-MM-DD form. Empty defaults
	// to the run date.
	StartDate             string
	InvestmentPeriodYears int `validate:"required,gt=0"`
	PeriodLengthMonths    int `validate:"gte=0"`

	GPCommitmentPct float64 `validate:"gte=0,lte=100"`
	// GPCashPct is the share of the GP commitment funded in cash; the
	// remainder is contributed as a management-fee offset.
	GPCashPct float64 `validate:"gte=0,lte=100"`

	ManagementFeePct float64 `validate:"gte=0,lte=100"`
	FeeStepDownYear  int     `validate:"gte=0"`
	FeeStepDownPct   float64 `validate:"gte=0,lte=100"`
	FeeHorizonYears  int     `validate:"gte=0"`

	ReservePct float64 `validate:"gte=0,lt=100"`

	Stages   []StageAllocation `validate:"required,min=1,dive"`
	Schedule ScheduleConfig
}

// StageAllocation describes how one stage's share of investable capital is
// deployed and harvested.
type StageAllocation struct {
	Stage string `validate:"required"`
	// Allocation is this stage's fraction of investable capital, 0..1.
	Allocation   float64 `validate:"gte=0,lte=1"`
	AvgCheckSize float64 `validate:"gte=0"`
	// OwnershipPct is the fund's ownership of a company at exit. Zero
	// defaults to 100.
	OwnershipPct     float64 `validate:"gte=0,lte=100"`
	GraduationMonths int     `validate:"gte=0"`
	ExitMonths       int     `validate:"gt=0"`
	// GraduationRate and ExitRate are deterministic cohort fractions, 0..1:
	// the first floor(count*rate) companies in deployment order graduate
	// (receive reserve follow-on) or exit at the stage's threshold month.
	GraduationRate float64 `validate:"gte=0,lte=1"`
	ExitRate       float64 `validate:"gte=0,lte=1"`
}

// ScheduleConfig selects the capital-call pacing curve.
type ScheduleConfig struct {
	Shape  string `validate:"required"`
	Custom []CustomPeriod
}

// CustomPeriod is one entry of a custom capital-call schedule.
type CustomPeriod struct {
	Period  int
	Percent float64
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.ApplyDefaults()
	return &configuration, nil
}

// ApplyDefaults fills unset optional fields with their documented defaults.
func (conf *Configuration) ApplyDefaults() {
	if conf.Fund.PeriodLengthMonths == 0 {
		conf.Fund.PeriodLengthMonths = constants.DefaultPeriodLengthMonths
	}
	if conf.Fund.FeeHorizonYears == 0 {
		conf.Fund.FeeHorizonYears = constants.DefaultFeeHorizonYears
	}
	for i := range conf.Fund.Stages {
		if conf.Fund.Stages[i].OwnershipPct == 0 {
			conf.Fund.Stages[i].OwnershipPct = 100
		}
	}
}

// Validate checks the configuration for errors that make a simulation
// meaningless. These are fatal: the run must not start with a failing
// configuration.
func (conf *Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(conf.Fund); err != nil {
		return fmt.Errorf("invalid fund parameters: %w", err)
	}

	shape, err := schedule.ParseShape(conf.Fund.Schedule.Shape)
	if err != nil {
		return err
	}
	if shape == schedule.Custom && len(conf.Fund.Schedule.Custom) == 0 {
		return fmt.Errorf("fund %s: custom capital call schedule selected but no custom percentages supplied", conf.Fund.Name)
	}

	allocationSum := 0.0
	for _, stage := range conf.Fund.Stages {
		allocationSum += stage.Allocation
		if stage.GraduationMonths > 0 && stage.GraduationMonths >= stage.ExitMonths {
			return fmt.Errorf("stage %s: graduation month %d must be strictly before exit month %d",
				stage.Stage, stage.GraduationMonths, stage.ExitMonths)
		}
	}
	if diff := allocationSum - 1.0; diff > constants.AllocationTolerance || diff < -constants.AllocationTolerance {
		return fmt.Errorf("stage allocations must sum to 1.0, got %.6f", allocationSum)
	}

	return nil
}
