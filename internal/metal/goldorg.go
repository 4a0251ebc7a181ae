package metal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/srahimian/huquq/internal/timewindow"
	"go.uber.org/zap"
)

const goldOrgBaseURL = "https://fsapi.gold.org/api/goldprice/v11/chart/price"

// GoldOrgClient implements Source using the gold.org historical chart API.
// It returns gold observations spanning the requested window at the
// provider's native sampling rate.
type GoldOrgClient struct {
	Client  *http.Client
	BaseURL string

	// Unit is the weight unit to request the series in; gold.org supports
	// grams and troy ounces.
	Unit string

	logger *zap.Logger
}

// NewGoldOrgClient creates a gold.org chart client quoting in the given
// weight unit.
func NewGoldOrgClient(unit string, logger *zap.Logger) *GoldOrgClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoldOrgClient{
		Client:  &http.Client{Timeout: 30 * time.Second},
		BaseURL: goldOrgBaseURL,
		Unit:    unit,
		logger:  logger,
	}
}

func (c *GoldOrgClient) Name() string { return "gold.org" }

// goldOrgChart is the response structure from the chart price endpoint.
// Each series entry is a [timestampMillis, price] pair keyed by currency.
type goldOrgChart struct {
	ChartData map[string][][2]float64 `json:"chartData"`
}

// Fetch returns the chart series for the currency over the window. A payload
// that decodes but lacks the requested currency key yields an empty slice
// and a nil error: the caller proceeds on whatever other sources returned.
func (c *GoldOrgClient) Fetch(ctx context.Context, currency string, window timewindow.Window) ([]Observation, error) {
	u := fmt.Sprintf("%s/%s/%s/%d,%d", c.BaseURL, currency, c.Unit, window.StartMillis(), window.EndMillis())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, c.Name(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s read body: %w", c.Name(), err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: status %d", ErrSourceUnavailable, c.Name(), resp.StatusCode)
	}

	var chart goldOrgChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceData, c.Name(), err)
	}

	series, ok := chart.ChartData[currency]
	if !ok {
		c.logger.Debug("chart payload has no series for currency",
			zap.String("op", "metal.GoldOrgClient.Fetch"),
			zap.String("currency", currency),
		)
		return nil, nil
	}

	obs := make([]Observation, 0, len(series))
	for _, point := range series {
		if point[1] <= 0 {
			continue // null samples (market holidays etc.)
		}
		obs = append(obs, Observation{
			Price:     point[1],
			Timestamp: int64(point[0]),
			Currency:  currency,
			Unit:      c.Unit,
			Metal:     Gold,
			Source:    c.Name(),
		})
	}
	return obs, nil
}
