// Package constants provides shared constants for the huquq application.
package constants

// Financial constants
const (
	// HuquqRate is the fraction of assessable wealth that is payable (19%).
	HuquqRate = 0.19

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100
)

// DateTimeDisplayLayout is the format used when printing observation and
// target timestamps in the detailed report.
const DateTimeDisplayLayout = "2006-01-02 15:04:05"

// FiscalDateLayout is the month-day format expected for the fiscal date in
// config files (e.g. "04-20").
const FiscalDateLayout = "01-02"

// ClockTimeLayout is the 24-hour clock format accepted for a literal fiscal
// time in config files.
const ClockTimeLayout = "15:04"

// Currency constants
const (
	// DefaultCurrency is the reserve currency used when no currency is
	// configured and as the retry currency for spot providers that do not
	// support the requested one.
	DefaultCurrency = "USD"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "huquq.yaml"

	// DefaultRecordFile is the default CSV record file name
	DefaultRecordFile = "huququllah_record.csv"
)
