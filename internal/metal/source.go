package metal

import (
	"context"
	"fmt"

	"github.com/srahimian/huquq/internal/timewindow"
)

var (
	// ErrSourceUnavailable indicates a provider returned no usable payload.
	ErrSourceUnavailable = fmt.Errorf("no data retrieved from price source")

	// ErrSourceData indicates a provider returned a payload of an unexpected
	// shape.
	ErrSourceData = fmt.Errorf("malformed payload from price source")
)

// Source is a price provider. Implementations fetch the observations they
// hold for a currency over a time window; order is not significant. A source
// with nothing for the requested key may return an empty slice with a nil
// error, letting resolution proceed on whatever other sources returned.
type Source interface {
	Fetch(ctx context.Context, currency string, window timewindow.Window) ([]Observation, error)
	Name() string
}
