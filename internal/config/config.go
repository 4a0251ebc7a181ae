// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/srahimian/huquq/pkg/constants"
	"github.com/srahimian/huquq/pkg/validation"
	"github.com/srahimian/huquq/pkg/weights"
)

// Configuration holds all configuration for huquq.
type Configuration struct {
	Location LocationConfig `yaml:"location"`
	Fiscal   FiscalConfig   `yaml:"fiscal"`
	Pricing  PricingConfig  `yaml:"pricing,omitempty"`
	Record   RecordConfig   `yaml:"record,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
}

// LocationConfig identifies where the fiscal moment's solar events are
// observed from. Either an address (city and country at minimum) or
// explicit coordinates must be present; coordinates win when both are.
type LocationConfig struct {
	City      string `yaml:"city,omitempty"`
	State     string `yaml:"state,omitempty"`
	Country   string `yaml:"country,omitempty"`
	Latitude  string `yaml:"latitude,omitempty"`
	Longitude string `yaml:"longitude,omitempty"`
}

// FiscalConfig anchors the moment whose metal price the levy is reckoned
// against.
type FiscalConfig struct {
	// Date is the fiscal anniversary in "MM-DD" form.
	Date string `yaml:"date"`

	// Time is a solar period (dawn, sunrise, noon, sunset, dusk), the word
	// "now", or a literal 24-hour "HH:MM".
	Time string `yaml:"time"`
}

// PricingConfig selects the currency and weight unit prices are fetched in.
type PricingConfig struct {
	Currency string `yaml:"currency,omitempty"` // defaults to USD
	Unit     string `yaml:"unit,omitempty"`     // defaults to troy ounces
}

// RecordConfig points at the CSV file run history is appended to.
type RecordConfig struct {
	File string `yaml:"file,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

var (
	fiscalDatePattern = regexp.MustCompile(`^[0-1][0-9]-[0-3][0-9]$`)
	clockTimePattern  = regexp.MustCompile(`^[0-9][0-9]:[0-9][0-9]$`)
)

// solarPeriods are the named sun positions a fiscal time may reference.
var solarPeriods = map[string]bool{
	"dawn":    true,
	"sunrise": true,
	"noon":    true,
	"sunset":  true,
	"dusk":    true,
}

// IsSolarPeriod reports whether the given fiscal time names a sun position.
func IsSolarPeriod(s string) bool {
	return solarPeriods[s]
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

	configuration.applyDefaults()
	return &configuration, nil
}

func (c *Configuration) applyDefaults() {
	if c.Pricing.Currency == "" {
		c.Pricing.Currency = constants.DefaultCurrency
	}
	if c.Pricing.Unit == "" {
		c.Pricing.Unit = "oz"
	}
	if c.Record.File == "" {
		c.Record.File = constants.DefaultRecordFile
	}
}

// ValidateConfiguration checks the loaded values and returns the first
// problem found. Invalid configuration terminates the run; values are never
// silently defaulted past this point.
func (c *Configuration) ValidateConfiguration() error {
	if err := c.validateLocation(); err != nil {
		return err
	}
	if err := c.validateFiscal(); err != nil {
		return err
	}
	if err := validation.ValidateCurrencyCode(c.Pricing.Currency); err != nil {
		return err
	}
	if !weights.Recognized(c.Pricing.Unit) {
		return fmt.Errorf("pricing unit is not a recognized weight unit: %q", c.Pricing.Unit)
	}
	return nil
}

func (c *Configuration) validateLocation() error {
	loc := c.Location
	hasAddress := loc.City != "" && loc.Country != ""
	hasCoords := loc.Latitude != "" && loc.Longitude != ""
	if !hasAddress && !hasCoords {
		return fmt.Errorf("missing location: add either city/country or latitude/longitude")
	}
	return nil
}

func (c *Configuration) validateFiscal() error {
	if c.Fiscal.Date == "" {
		return fmt.Errorf("missing value for fiscal date")
	}
	if !fiscalDatePattern.MatchString(c.Fiscal.Date) {
		return fmt.Errorf("fiscal date value is invalid: %q", c.Fiscal.Date)
	}
	if _, err := time.Parse(constants.FiscalDateLayout, c.Fiscal.Date); err != nil {
		return fmt.Errorf("fiscal date value is not a valid \"MM-DD\" date: %q", c.Fiscal.Date)
	}

	t := strings.ToLower(strings.TrimSpace(c.Fiscal.Time))
	if t == "" {
		return fmt.Errorf("missing value for fiscal time")
	}
	if IsSolarPeriod(t) || t == "now" {
		return nil
	}
	if !clockTimePattern.MatchString(t) {
		return fmt.Errorf("fiscal time value is invalid: %q", t)
	}
	if _, err := time.Parse(constants.ClockTimeLayout, t); err != nil {
		return fmt.Errorf("fiscal time value is not a valid 24-hour time: %q", t)
	}
	return nil
}
