// Package validation provides common validation utilities for user input.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/currency"

	"github.com/srahimian/huquq/pkg/weights"
)

// priceOverridePattern matches "<currency>,<price>,<weight-unit>": a
// 3-letter currency, a numeric price with up to two decimal places, and a
// weight-unit label. The unit's aliases are checked separately against the
// recognized set.
var priceOverridePattern = regexp.MustCompile(`^([a-zA-Z]{3}),([0-9]+(?:\.[0-9]{1,2})?),([a-zA-Z ]+)$`)

// PriceOverride is a user-supplied metal price parsed from the structured
// "cur,price,unit" form.
type PriceOverride struct {
	Currency string
	Price    float64
	Unit     string
}

// ParsePriceOverride validates and parses a price-override string such as
// "usd,1950.25,troy oz". Invalid input is an error, never defaulted.
func ParsePriceOverride(s string) (PriceOverride, error) {
	m := priceOverridePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return PriceOverride{}, fmt.Errorf("incorrect format for custom metal price %q: expected '[currency],[price],[weight]' (e.g., 'usd,1950.25,troy oz')", s)
	}
	if err := ValidateCurrencyCode(m[1]); err != nil {
		return PriceOverride{}, err
	}
	price, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return PriceOverride{}, fmt.Errorf("invalid price in custom metal price %q: %w", s, err)
	}
	unit := strings.ToLower(strings.TrimSpace(m[3]))
	if !weights.Recognized(unit) {
		return PriceOverride{}, fmt.Errorf("unrecognized weight unit in custom metal price %q", s)
	}
	return PriceOverride{
		Currency: strings.ToUpper(m[1]),
		Price:    price,
		Unit:     unit,
	}, nil
}

// ValidateCurrencyCode checks that the given string is a recognized ISO 4217
// currency code.
func ValidateCurrencyCode(code string) error {
	if _, err := currency.ParseISO(strings.ToUpper(code)); err != nil {
		return fmt.Errorf("unrecognized currency code %q", code)
	}
	return nil
}
