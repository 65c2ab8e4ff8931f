package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/leonid6372/stock-trader/internal/common/domain"
	"github.com/leonid6372/stock-trader/internal/tradeerrs"
	"github.com/shopspring/decimal"
)

const (
	DefaultBaseURL = "https://www.alphavantage.co"
	userAgent      = "stock-trader/1.0"
)

// Client talks to the Alpha Vantage query API. It implements both
// domain.PriceProvider and domain.HistoryProvider.
type Client struct {
	client *resty.Client
	apiKey string
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("User-Agent", userAgent)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &Client{
		client: client,
		apiKey: apiKey,
	}
}

// GetPrice returns the GLOBAL_QUOTE price of symbol.
func (c *Client) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	body, err := c.query(ctx, functionGlobalQuote, symbol, nil)
	if err != nil {
		return decimal.Zero, err
	}

	return globalQuotePrice(body)
}

// GetDailyCloses returns up to limit daily closes of symbol, newest first.
func (c *Client) GetDailyCloses(ctx context.Context, symbol string, limit int) ([]decimal.Decimal, error) {
	if limit <= 0 {
		return nil, nil
	}

	body, err := c.query(ctx, functionDaily, symbol, map[string]string{"outputsize": "compact"})
	if err != nil {
		return nil, err
	}

	return dailyCloses(body, limit)
}

func (c *Client) query(ctx context.Context, function, symbol string, extra map[string]string) (map[string]any, error) {
	if c.apiKey == "" {
		return nil, tradeerrs.ErrAPIKeyMissing
	}

	symbol = domain.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("%w: empty symbol", tradeerrs.ErrPriceNotFound)
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function": function,
			"symbol":   symbol,
			"apikey":   c.apiKey,
		}).
		SetQueryParams(extra).
		Get("/query")
	if err != nil {
		return nil, fmt.Errorf("alphavantage %s %s: %w", function, symbol, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("alphavantage %s %s: http %d", function, symbol, resp.StatusCode())
	}

	var body map[string]any
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("alphavantage %s %s: failed to decode body: %w", function, symbol, err)
	}

	if err := checkNotice(body); err != nil {
		return nil, err
	}

	return body, nil
}
