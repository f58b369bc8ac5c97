// Package constants provides shared constants for the venue-forecast application.
package constants

// Financial constants
const (
	// WeeksPerMonth converts monthly figures to weekly figures
	// (365.25 / 12 / 7 rounded to two decimals, applied consistently).
	WeeksPerMonth = 4.33

	// WeeksPerYear is the number of calendar weeks in a forecast year
	WeeksPerYear = 52

	// VATRate is the fixed German VAT rate applied to taxable revenue
	VATRate = 0.19

	// GrossFactor converts a net amount to gross (1 + VATRate)
	GrossFactor = 1.19

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Multiplier constants
const (
	// DefaultMultiplier is the neutral per-week scaling factor
	DefaultMultiplier = 1.0

	// MaxConventionalMultiplier is the upper end of the conventional
	// multiplier range; values beyond it are treated as manual overrides
	MaxConventionalMultiplier = 2.0
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
	DefaultConfigFile = "config.yaml"

	// DefaultDataDir is the default directory for the file-backed store
	DefaultDataDir = "data"
)

// Store backend constants
const (
	// StoreBackendFile selects the JSON-file-backed scenario store
	StoreBackendFile = "file"

	// StoreBackendPostgres selects the Postgres-backed scenario store
	StoreBackendPostgres = "postgres"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024
)
