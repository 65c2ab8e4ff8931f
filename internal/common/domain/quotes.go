package domain

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PriceProvider returns the latest price for a symbol.
type PriceProvider interface {
	GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// HistoryProvider returns up to limit daily closing prices, newest first.
type HistoryProvider interface {
	GetDailyCloses(ctx context.Context, symbol string, limit int) ([]decimal.Decimal, error)
}

// MarketData serves both current prices and history.
type MarketData interface {
	PriceProvider
	HistoryProvider
}

type Quote struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Synthetic bool            `json:"synthetic"`
	FetchedAt time.Time       `json:"fetched_at"`
}

type MarketSnapshot struct {
	Quotes      []Quote               `json:"quotes"`
	Predictions map[string]Prediction `json:"predictions"`
	RefreshedAt time.Time             `json:"refreshed_at"`
}

// Quote returns the snapshot quote for symbol, if any.
func (s *MarketSnapshot) Quote(symbol string) (Quote, bool) {
	if s == nil {
		return Quote{}, false
	}

	for _, q := range s.Quotes {
		if q.Symbol == symbol {
			return q, true
		}
	}

	return Quote{}, false
}

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
