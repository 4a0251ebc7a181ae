package huquq

import (
	"errors"
	"math"
	"testing"

	"github.com/srahimian/huquq/pkg/weights"
)

const tolerance = 0.005

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestNew(t *testing.T) {
	tests := []struct {
		name              string
		wealth            float64
		price             float64
		unit              string
		expectedBasic     float64
		expectedRemainder float64
		expectedPayable   float64
	}{
		{
			name:              "Wealth below one basic sum pays nothing",
			wealth:            1000,
			price:             500,
			unit:              "toz",
			expectedBasic:     1112.29,
			expectedRemainder: 1000,
			expectedPayable:   0,
		},
		{
			name:              "Wealth above one basic sum",
			wealth:            2000,
			price:             500,
			unit:              "toz",
			expectedBasic:     1112.29,
			expectedRemainder: 887.71,
			expectedPayable:   211.33,
		},
		{
			name:              "Exact multiple leaves no remainder",
			wealth:            57,
			price:             1,
			unit:              "mq",
			expectedBasic:     19,
			expectedRemainder: 0,
			expectedPayable:   57 * 0.19,
		},
		{
			name:              "Zero wealth",
			wealth:            0,
			price:             500,
			unit:              "toz",
			expectedBasic:     1112.29,
			expectedRemainder: 0,
			expectedPayable:   0,
		},
		{
			name:              "Mithqal pricing",
			wealth:            100,
			price:             1,
			unit:              "mq",
			expectedBasic:     19,
			expectedRemainder: 5,
			expectedPayable:   95 * 0.19,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc, err := New(tt.wealth, tt.price, tt.unit)
			if err != nil {
				t.Fatalf("New() returned error: %v", err)
			}
			if !almostEqual(calc.Basic, tt.expectedBasic) {
				t.Errorf("Basic = %.4f, expected %.2f", calc.Basic, tt.expectedBasic)
			}
			if !almostEqual(calc.Remainder, tt.expectedRemainder) {
				t.Errorf("Remainder = %.4f, expected %.2f", calc.Remainder, tt.expectedRemainder)
			}
			if !almostEqual(calc.Payable, tt.expectedPayable) {
				t.Errorf("Payable = %.4f, expected %.2f", calc.Payable, tt.expectedPayable)
			}
		})
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name     string
		wealth   float64
		price    float64
		unit     string
		expected error
	}{
		{
			name:     "Zero price",
			wealth:   1000,
			price:    0,
			unit:     "toz",
			expected: ErrMissingPrice,
		},
		{
			name:     "Negative price",
			wealth:   1000,
			price:    -5,
			unit:     "toz",
			expected: ErrMissingPrice,
		},
		{
			name:     "Unknown weight unit",
			wealth:   1000,
			price:    500,
			unit:     "stone",
			expected: weights.ErrUnrecognizedUnit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.wealth, tt.price, tt.unit)
			if !errors.Is(err, tt.expected) {
				t.Errorf("New() error = %v, expected %v", err, tt.expected)
			}
		})
	}
}

// Remainder stays in [0, Basic) and payable is never negative for
// non-negative wealth.
func TestInvariants(t *testing.T) {
	wealths := []float64{0, 0.01, 500, 1112.28, 1112.29, 5000, 1e9}
	prices := []float64{0.01, 1, 500, 1950.25}
	for _, w := range wealths {
		for _, p := range prices {
			calc, err := New(w, p, "toz")
			if err != nil {
				t.Fatalf("New(%v, %v) returned error: %v", w, p, err)
			}
			if calc.Remainder < 0 || calc.Remainder >= calc.Basic {
				t.Errorf("Remainder %v outside [0, %v) for wealth %v price %v", calc.Remainder, calc.Basic, w, p)
			}
			if calc.Payable < 0 {
				t.Errorf("Payable %v negative for wealth %v price %v", calc.Payable, w, p)
			}
			if w < calc.Basic && calc.Payable != 0 {
				t.Errorf("Payable %v non-zero for sub-threshold wealth %v (basic %v)", calc.Payable, w, calc.Basic)
			}
		}
	}
}

// Equal basic sums computed from a troy-ounce price and its gram-equivalent
// price must agree on every derived value.
func TestCrossUnitConsistency(t *testing.T) {
	wealth := 2000.0
	tozPrice := 500.0
	gramPrice := tozPrice * weights.TroyOunces / weights.Grams

	fromToz, err := New(wealth, tozPrice, "toz")
	if err != nil {
		t.Fatalf("New(toz) returned error: %v", err)
	}
	fromGrams, err := New(wealth, gramPrice, "g")
	if err != nil {
		t.Fatalf("New(g) returned error: %v", err)
	}

	if !almostEqual(fromToz.Basic, fromGrams.Basic) {
		t.Errorf("Basic differs across units: %v vs %v", fromToz.Basic, fromGrams.Basic)
	}
	if !almostEqual(fromToz.Remainder, fromGrams.Remainder) {
		t.Errorf("Remainder differs across units: %v vs %v", fromToz.Remainder, fromGrams.Remainder)
	}
	if !almostEqual(fromToz.Payable, fromGrams.Payable) {
		t.Errorf("Payable differs across units: %v vs %v", fromToz.Payable, fromGrams.Payable)
	}
}

func TestSetBasic(t *testing.T) {
	calc, err := New(2000, 500, "toz")
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	if err := calc.SetBasic(750); err != nil {
		t.Fatalf("SetBasic() returned error: %v", err)
	}

	if calc.Wealth != 2000 {
		t.Errorf("Wealth changed by SetBasic: %v", calc.Wealth)
	}
	if calc.Basic != 750 {
		t.Errorf("Basic = %v, expected 750", calc.Basic)
	}
	if !almostEqual(calc.Remainder, 500) {
		t.Errorf("Remainder = %v, expected 500", calc.Remainder)
	}
	if !almostEqual(calc.Payable, 1500*0.19) {
		t.Errorf("Payable = %v, expected %v", calc.Payable, 1500*0.19)
	}
}

func TestSetBasicZero(t *testing.T) {
	calc, err := New(2000, 500, "toz")
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if err := calc.SetBasic(0); !errors.Is(err, ErrZeroBasic) {
		t.Errorf("SetBasic(0) error = %v, expected ErrZeroBasic", err)
	}
}

func TestUnitsAndAssessable(t *testing.T) {
	calc, err := New(2500, 1, "mq") // basic = 19
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if units := calc.Units(); units != math.Floor(2500.0/19.0) {
		t.Errorf("Units() = %v, expected %v", units, math.Floor(2500.0/19.0))
	}
	if !almostEqual(calc.Assessable(), 2500-calc.Remainder) {
		t.Errorf("Assessable() = %v, expected %v", calc.Assessable(), 2500-calc.Remainder)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		val      float64
		expected float64
	}{
		{
			name:     "Rounds up",
			val:      211.3345,
			expected: 211.33,
		},
		{
			name:     "Rounds down",
			val:      887.713,
			expected: 887.71,
		},
		{
			name:     "Already exact",
			val:      0.19,
			expected: 0.19,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round(tt.val); got != tt.expected {
				t.Errorf("Round(%v) = %v, expected %v", tt.val, got, tt.expected)
			}
		})
	}
}
