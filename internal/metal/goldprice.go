package metal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/srahimian/huquq/internal/timewindow"
	"github.com/srahimian/huquq/pkg/constants"
	"go.uber.org/zap"
)

const goldPriceBaseURL = "https://data-asg.goldprice.org/dbXRates"

// userAgent mimics a browser; goldprice.org rejects default Go clients.
const userAgent = "Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:120.0) Gecko/20100101 Firefox/120.0"

// GoldPriceClient implements Source using the goldprice.org spot rates API.
// It yields exactly two observations per fetch, the current gold and silver
// prices per troy ounce, regardless of the requested window.
type GoldPriceClient struct {
	Client  *http.Client
	BaseURL string
	logger  *zap.Logger
}

// NewGoldPriceClient creates a goldprice.org spot client.
func NewGoldPriceClient(logger *zap.Logger) *GoldPriceClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoldPriceClient{
		Client:  &http.Client{Timeout: 30 * time.Second},
		BaseURL: goldPriceBaseURL,
		logger:  logger,
	}
}

func (c *GoldPriceClient) Name() string { return "goldprice.org" }

// goldPriceRates is the response structure from the dbXRates endpoint.
type goldPriceRates struct {
	Timestamp int64 `json:"tsj"`
	Items     []struct {
		Currency    string  `json:"curr"`
		GoldPrice   float64 `json:"xauPrice"`
		SilverPrice float64 `json:"xagPrice"`
	} `json:"items"`
}

// Fetch returns the current gold and silver spot observations for the given
// currency. An unsupported currency is retried once against the default
// reserve currency before the fetch fails with ErrSourceUnavailable.
func (c *GoldPriceClient) Fetch(ctx context.Context, currency string, _ timewindow.Window) ([]Observation, error) {
	obs, err := c.fetchRates(ctx, currency)
	if err == nil || currency == constants.DefaultCurrency {
		return obs, err
	}
	c.logger.Warn("spot provider has no rates for currency, retrying with default",
		zap.String("op", "metal.GoldPriceClient.Fetch"),
		zap.String("currency", currency),
		zap.String("fallback", constants.DefaultCurrency),
		zap.Error(err),
	)
	return c.fetchRates(ctx, constants.DefaultCurrency)
}

func (c *GoldPriceClient) fetchRates(ctx context.Context, currency string) ([]Observation, error) {
	u := fmt.Sprintf("%s/%s", c.BaseURL, currency)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

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

	var rates goldPriceRates
	if err := json.Unmarshal(body, &rates); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceData, c.Name(), err)
	}
	if len(rates.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSourceUnavailable, c.Name())
	}

	item := rates.Items[0]
	if item.GoldPrice <= 0 || item.SilverPrice <= 0 {
		return nil, fmt.Errorf("%w: %s: non-positive metal price", ErrSourceData, c.Name())
	}
	return []Observation{
		{Price: item.GoldPrice, Timestamp: rates.Timestamp, Currency: item.Currency, Unit: "oz", Metal: Gold, Source: c.Name()},
		{Price: item.SilverPrice, Timestamp: rates.Timestamp, Currency: item.Currency, Unit: "oz", Metal: Silver, Source: c.Name()},
	}, nil
}
