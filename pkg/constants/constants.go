// Package constants provides shared constants for the fund-forecast application.
package constants

// DateTimeLayout is the format expected in config files and is also the output
// date format.
const DateTimeLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerYear is the day-count denominator for year fractions.
	// Actual/365.25 tracks spreadsheet XIRR output more closely than
	// Actual/365 over multi-year horizons.
	DaysPerYear = 365.25

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 2

	// RatioPrecision is the precision for reported ratios such as TVPI and DPI
	RatioPrecision = 4

	// DefaultFeeHorizonYears is the number of years management fees accrue when
	// the configuration does not specify a horizon
	DefaultFeeHorizonYears = 10

	// DefaultPeriodLengthMonths is the simulation step when the configuration
	// does not specify one
	DefaultPeriodLengthMonths = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Solver defaults
const (
	// SolverGuess is the initial Newton-Raphson rate guess
	SolverGuess = 0.10

	// SolverTolerance is the NPV magnitude below which the solver converges
	SolverTolerance = 1e-6

	// SolverMaxIterations bounds both Newton and bisection phases
	SolverMaxIterations = 100

	// SolverDerivativeFloor aborts Newton when the NPV derivative magnitude
	// falls below it
	SolverDerivativeFloor = 1e-12

	// SolverRateLow and SolverRateHigh bound the searched rate interval.
	// SolverRateExtreme widens the bisection bracket for extreme returns.
	SolverRateLow     = -0.999
	SolverRateHigh    = 10.0
	SolverRateExtreme = 100.0
)

// Validation constants
const (
	// AllocationTolerance is how far stage allocations may drift from 1.0
	AllocationTolerance = 1e-6

	// CustomScheduleWarnTolerance flags custom schedules whose percentages sum
	// far from 100; they are accepted but reported as a warning
	CustomScheduleWarnTolerance = 1.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "fund.yaml"
)
