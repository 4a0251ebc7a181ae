// Package huquq computes the Ḥuqúqu'lláh payment: the basic sum equal to
// nineteen mithqals of gold, the remainder of wealth below a whole multiple
// of it, and the 19% payable on the rest.
package huquq

import (
	"fmt"
	"math"

	"github.com/srahimian/huquq/pkg/constants"
	"github.com/srahimian/huquq/pkg/weights"
)

var (
	// ErrMissingPrice indicates the metal price needed for the basic sum was
	// absent or non-positive.
	ErrMissingPrice = fmt.Errorf("no metal price to compute the basic sum from")

	// ErrZeroBasic indicates a zero basic sum, which makes the remainder
	// undefined. It signals corrupt input data and is never masked as a zero
	// payable.
	ErrZeroBasic = fmt.Errorf("basic sum cannot be equal to zero")
)

// Calculation holds one Ḥuqúqu'lláh computation. The three derived fields
// are populated in strict order, each depending only on the fields before
// it: Basic from the price and weight unit, Remainder from wealth and Basic,
// Payable from all three.
type Calculation struct {
	// Wealth is the amount of capital, after debts and expenses, the payment
	// is reckoned on.
	Wealth float64

	// Price is the metal price per weight unit the basic sum was derived
	// from. Zero when the caller overrode Basic directly.
	Price float64

	// Unit is the weight unit Price is quoted in.
	Unit string

	// Basic is the monetary value of 19 mithqals of gold, the unit amount
	// against which the payment is reckoned.
	Basic float64

	// Remainder is the portion of wealth below the nearest whole multiple of
	// Basic; no payment is due on it.
	Remainder float64

	// Payable is the computed payment: 19% of wealth above the remainder.
	Payable float64
}

// New computes a Calculation from a per-unit metal price and a wealth
// amount. It fails with ErrMissingPrice for a non-positive price and with
// weights.ErrUnrecognizedUnit for an unknown weight unit.
func New(wealth, price float64, unit string) (*Calculation, error) {
	if price <= 0 {
		return nil, ErrMissingPrice
	}
	factor, err := weights.Factor(unit)
	if err != nil {
		return nil, err
	}
	c := &Calculation{
		Wealth: wealth,
		Price:  price,
		Unit:   unit,
		Basic:  price * factor,
	}
	if err := c.recompute(); err != nil {
		return nil, err
	}
	return c, nil
}

// SetBasic replaces the computed basic sum with a caller-chosen value and
// recomputes Remainder and Payable from it. Wealth and Price are untouched.
// This is the path for a user supplying the 19-mithqal equivalent directly.
func (c *Calculation) SetBasic(basic float64) error {
	c.Basic = basic
	return c.recompute()
}

// recompute derives Remainder and Payable from Wealth and Basic.
func (c *Calculation) recompute() error {
	if c.Basic == 0 {
		return ErrZeroBasic
	}
	// Basic is positive by construction, so math.Mod keeps the remainder in
	// [0, Basic) for non-negative wealth.
	c.Remainder = math.Mod(c.Wealth, c.Basic)
	if c.Wealth < c.Basic {
		c.Payable = 0
	} else {
		c.Payable = (c.Wealth - c.Remainder) * constants.HuquqRate
	}
	return nil
}

// Units returns how many whole basic sums the wealth contains.
func (c *Calculation) Units() float64 {
	return math.Floor(c.Wealth / c.Basic)
}

// Assessable returns the amount of wealth the payment is due on.
func (c *Calculation) Assessable() float64 {
	return c.Wealth - c.Remainder
}

// Round rounds a value to two decimals for display. Internal values keep
// full precision.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// String returns the terse one-line result.
func (c *Calculation) String() string {
	return fmt.Sprintf("Payable: $%.2f", Round(c.Payable))
}
