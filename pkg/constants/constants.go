// Package constants provides shared constants for the event-viability application.
package constants

// Unit conversion
const (
	// DollarsPerMillion converts dollar amounts into the $M unit used by all results.
	DollarsPerMillion = 1_000_000
)

// Stream model constants
const (
	// LegacyDecayRate is the continuous decay rate applied to post-event tourism.
	LegacyDecayRate = 0.2

	// ConstructionWindowYears is the length of the pre-event construction period.
	ConstructionWindowYears = 6

	// MigrationRetentionMultiplier is applied uniformly to cumulative migrants.
	MigrationRetentionMultiplier = 1.05

	// UtilizationBase is the infrastructure utilization in the event year.
	UtilizationBase = 0.3

	// UtilizationStep is the yearly utilization ramp-up.
	UtilizationStep = 0.035

	// EarlyCostShare applies to infrastructure years 0 through EarlyCostLastYear.
	EarlyCostShare    = 0.3
	EarlyCostLastYear = 2

	// MidCostShare applies up to MidCostLastYear.
	MidCostShare    = 0.1
	MidCostLastYear = 5

	// MaintenanceCostShare applies to every later year.
	MaintenanceCostShare = 0.02

	// DefaultInfrastructureYears is the default infrastructure analysis horizon.
	DefaultInfrastructureYears = 20
)

// Assessment constants
const (
	// MarginalThreshold is the break-even BCR.
	MarginalThreshold = 1.0

	// ViableThreshold is the lowest BCR considered viable.
	ViableThreshold = 1.2

	// HighlyViableThreshold is the lowest BCR considered highly viable.
	HighlyViableThreshold = 1.5

	// ReturnHorizonYears is the horizon used for the implied return and payback estimates.
	ReturnHorizonYears = 20
)

// Composite score reference bounds and weights
const (
	TourismRevenueScoreMax = 15000.0
	TotalRevenueScoreMax   = 20000.0
	ROIScoreMin            = 0.5
	ROIScoreMax            = 2.0
	InfrastructureScoreMax = 10000.0
	MigrationScoreMax      = 5000.0

	RevenueWeight        = 0.30
	EconomicWeight       = 0.30
	InfrastructureWeight = 0.25
	MigrationWeight      = 0.15
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the machine-readable JSON format
	OutputFormatJSON = "json"

	// OutputFormatXLSX writes a spreadsheet workbook and requires an output path
	OutputFormatXLSX = "xlsx"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// EnvPrefix is prepended to environment variable overrides.
	EnvPrefix = "EVENT_VIABILITY"

	// DefaultConcurrency bounds how many scenarios are evaluated at once.
	DefaultConcurrency = 4
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultRequestsPerSecond is the sustained request rate allowed by the API.
	DefaultRequestsPerSecond = 10

	// DefaultRequestBurst is the token bucket size of the API rate limiter.
	DefaultRequestBurst = 20
)

// Validation constants
const (
	// MoneyTolerance is the tolerance for comparisons of $M amounts (one dollar)
	MoneyTolerance = 1e-6

	// DecimalPlaces is the rounding applied to $M amounts in reports
	DecimalPlaces = 2

	// TypicalDiscountRateMin and TypicalDiscountRateMax bound the usual public-sector range.
	TypicalDiscountRateMin = 0.02
	TypicalDiscountRateMax = 0.08
)
