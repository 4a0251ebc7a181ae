// Package weights maps metal weight-unit labels to the conversion factors
// that express nineteen mithqals of metal in that unit.
package weights

import (
	"fmt"
	"strings"
)

// ErrUnrecognizedUnit indicates a weight-unit label that matches none of the
// recognized aliases.
var ErrUnrecognizedUnit = fmt.Errorf("unrecognized weight unit")

// Conversion factors: multiplying a per-unit metal price by the factor for
// that unit yields the price of 19 mithqals (69.192 g) of the metal.
//
//	361 nakhud = 19 mithqal = 69.192 g = 2.22457446 troy oz
const (
	TroyOunces = 2.22457446
	Grams      = 69.192
	Mithqals   = 19
)

// factors maps each recognized alias to its conversion factor. Matching is
// exact after trimming and lowercasing; there is no fuzzy matching.
var factors = map[string]float64{
	"troy oz":     TroyOunces,
	"troy ounce":  TroyOunces,
	"troy ounces": TroyOunces,
	"t oz":        TroyOunces,
	"toz":         TroyOunces,
	"oz":          TroyOunces,
	"oz troy":     TroyOunces,
	"gram":        Grams,
	"grams":       Grams,
	"g":           Grams,
	"mithqal":     Mithqals,
	"mithqals":    Mithqals,
	"mq":          Mithqals,
}

// Factor returns how many of the given weight unit make up the basic
// quantity of 19 mithqals. The lookup is case-insensitive and ignores
// surrounding whitespace.
func Factor(unit string) (float64, error) {
	f, ok := factors[strings.ToLower(strings.TrimSpace(unit))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnrecognizedUnit, unit)
	}
	return f, nil
}

// Recognized reports whether the given label is a recognized weight-unit
// alias.
func Recognized(unit string) bool {
	_, err := Factor(unit)
	return err == nil
}
