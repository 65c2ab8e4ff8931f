// Package yahoo serves quotes and daily history from Yahoo Finance.
package yahoo

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/leonid6372/stock-trader/internal/common/domain"
	"github.com/leonid6372/stock-trader/internal/tradeerrs"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"
)

// DefaultLookback covers more than 30 trading days.
const DefaultLookback = 60 * 24 * time.Hour

type Client struct {
	lookback time.Duration
	now      func() time.Time
}

func NewClient(lookback time.Duration) *Client {
	if lookback <= 0 {
		lookback = DefaultLookback
	}

	return &Client{
		lookback: lookback,
		now:      time.Now,
	}
}

func (c *Client) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}

	symbol = domain.NormalizeSymbol(symbol)

	q, err := quote.Get(symbol)
	if err != nil {
		return decimal.Zero, fmt.Errorf("yahoo quote %s: %w", symbol, err)
	}
	if q == nil || q.RegularMarketPrice <= 0 {
		return decimal.Zero, fmt.Errorf("%w: yahoo quote %s", tradeerrs.ErrPriceNotFound, symbol)
	}

	return decimal.NewFromFloat(q.RegularMarketPrice), nil
}

// GetDailyCloses returns up to limit daily closes, newest first.
func (c *Client) GetDailyCloses(ctx context.Context, symbol string, limit int) ([]decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, nil
	}

	symbol = domain.NormalizeSymbol(symbol)

	end := c.now()
	start := end.Add(-c.lookback)

	iter := chart.Get(&chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	})

	var closes []decimal.Decimal
	for iter.Next() {
		if bar := iter.Bar(); bar != nil && bar.Close.IsPositive() {
			closes = append(closes, bar.Close)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: yahoo chart %s: %w", tradeerrs.ErrHistoryUnavailable, symbol, err)
	}

	slices.Reverse(closes)
	if len(closes) > limit {
		closes = closes[:limit]
	}

	return closes, nil
}
