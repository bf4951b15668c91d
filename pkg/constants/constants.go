// Package constants provides shared constants for the loan amortizer.
package constants

import "time"

// DateLayout is the format expected for loan start dates in config files and
// API requests.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent).
	// A balance at or below it counts as paid off.
	CurrencyTolerance = 0.01

	// MinimumProgress is the smallest amount of principal a payment must
	// retire beyond interest and insurance.
	MinimumProgress = 0.01
)

// Currency display constants
const (
	// CurrencyLocale is the locale used for digit grouping
	CurrencyLocale = "es-BO"

	// CurrencySuffix is appended to every formatted amount
	CurrencySuffix = " Bs"
)

// Export constants
const (
	// ExportFileName is the download name of the CSV export
	ExportFileName = "tabla_amortizacion_personalizada.csv"
)

// CSVHeader is the fixed column order of the CSV export.
var CSVHeader = []string{
	"Cuota",
	"Fecha",
	"Tu Pago",
	"Cuota Minima",
	"Intereses",
	"A Capital",
	"Pago Extra",
	"Seguro Desgravamen",
	"Saldo",
}

// Alert constants
const (
	// DefaultAlertDelay is how long an advisory message stays visible
	DefaultAlertDelay = 8 * time.Second
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024

	// DefaultRateLimitRPS is the default sustained requests per second per client
	DefaultRateLimitRPS = 10.0

	// DefaultRateLimitBurst is the default burst size per client
	DefaultRateLimitBurst = 20

	// DefaultShutdownTimeout bounds graceful server shutdown
	DefaultShutdownTimeout = 20 * time.Second
)

// Loan limits
const (
	// MaxTermMonths caps the schedule length (100 years)
	MaxTermMonths = 1200
)
