// Package metal defines metal price observations, the price-source adapters
// that fetch them, and the resolver that picks the observation nearest a
// target moment.
package metal

import (
	"fmt"

	"github.com/srahimian/huquq/pkg/constants"
	"github.com/srahimian/huquq/pkg/datetime"
)

// UserSource marks an observation supplied by the user instead of fetched
// from a provider.
const UserSource = "user"

// Metal identifies the priced element.
type Metal string

const (
	Gold   Metal = "au"
	Silver Metal = "ag"
)

// ParseMetal maps user-facing metal names to a Metal.
func ParseMetal(s string) (Metal, error) {
	switch s {
	case "gold", "au":
		return Gold, nil
	case "silver", "ag":
		return Silver, nil
	}
	return "", fmt.Errorf("unrecognized metal: %q", s)
}

// Observation is one metal price at a point in time from a named source.
// It is a value type and is never mutated after construction.
type Observation struct {
	// Price of one weight unit of the metal in Currency. Always positive.
	Price float64

	// Timestamp is the epoch-millisecond moment the observation is valid for.
	Timestamp int64

	// Currency is the 3-letter code the price is quoted in.
	Currency string

	// Unit is the weight unit the price is quoted per.
	Unit string

	// Metal is the priced element.
	Metal Metal

	// Source names the provider that produced the observation. Audit and
	// display only; never used for selection.
	Source string
}

// String renders the observation the way the terse output shows it.
func (o Observation) String() string {
	return fmt.Sprintf("%.2f %s/%s (%s)", o.Price, o.Currency, o.Unit,
		datetime.FromEpochMillis(o.Timestamp).Format(constants.DateTimeDisplayLayout))
}
