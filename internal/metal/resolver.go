package metal

import (
	"context"
	"fmt"
	"time"

	"github.com/srahimian/huquq/internal/timewindow"
	"github.com/srahimian/huquq/pkg/datetime"
	"go.uber.org/zap"
)

// ErrNoPrice indicates no source produced any observation, so there is
// nothing to resolve. No fallback price is ever fabricated.
var ErrNoPrice = fmt.Errorf("no metal price available from any source")

// Resolver merges observations from a set of sources and selects the one
// nearest a target moment.
type Resolver struct {
	sources []Source
	logger  *zap.Logger
}

// NewResolver creates a Resolver over the given sources. Sources are queried
// in the order given, which also fixes the tie-break order for selection.
func NewResolver(sources []Source, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{sources: sources, logger: logger}
}

// Resolve queries every source for the currency over the window and returns
// the observation whose timestamp is nearest the target.
//
// A failing or empty source is tolerated: resolution proceeds as long as the
// merged pool is non-empty. A silver request short-circuits to the spot
// silver observation when one exists, since no chart source carries silver.
// Equal distances keep the first-seen observation in pool order. When the
// winning observation's currency differs from the requested one, the
// mismatch is returned as a non-empty advisory rather than an error.
func (r *Resolver) Resolve(ctx context.Context, target time.Time, currency string, m Metal, window timewindow.Window) (Observation, string, error) {
	var pool []Observation
	for _, src := range r.sources {
		obs, err := src.Fetch(ctx, currency, window)
		if err != nil {
			r.logger.Warn("price source failed, continuing without it",
				zap.String("op", "metal.Resolver.Resolve"),
				zap.String("source", src.Name()),
				zap.Error(err),
			)
			continue
		}
		pool = append(pool, obs...)
	}
	if len(pool) == 0 {
		return Observation{}, "", ErrNoPrice
	}

	if m == Silver {
		for _, o := range pool {
			if o.Metal == Silver {
				return o, currencyAdvisory(o, currency), nil
			}
		}
	}

	targetMillis := datetime.ToEpochMillis(target)
	nearest := pool[0]
	best := absDistance(pool[0].Timestamp, targetMillis)
	for _, o := range pool[1:] {
		// Strict comparison keeps the earliest-pooled observation on ties.
		if d := absDistance(o.Timestamp, targetMillis); d < best {
			nearest = o
			best = d
		}
	}
	return nearest, currencyAdvisory(nearest, currency), nil
}

func absDistance(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}

// currencyAdvisory returns a warning string when a provider substituted a
// currency other than the requested one, empty otherwise.
func currencyAdvisory(o Observation, requested string) string {
	if o.Currency == requested {
		return ""
	}
	return fmt.Sprintf("price resolved in %s, not the requested %s (provider substituted a default)", o.Currency, requested)
}
