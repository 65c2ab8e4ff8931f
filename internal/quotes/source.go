// Package quotes resolves current prices for a set of symbols, substituting a
// synthetic price whenever the live provider cannot answer.
package quotes

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/leonid6372/stock-trader/internal/common/domain"
	"github.com/leonid6372/stock-trader/internal/tradeerrs"
	"github.com/leonid6372/stock-trader/pkg/log"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	SyntheticMin = 50
	SyntheticMax = 350
)

type Source struct {
	provider domain.PriceProvider
	random   func() float64
	now      func() time.Time
}

type Option func(*Source)

// WithRandom overrides the [0, 1) generator behind synthetic prices.
func WithRandom(random func() float64) Option {
	return func(s *Source) { s.random = random }
}

func WithClock(now func() time.Time) Option {
	return func(s *Source) { s.now = now }
}

// NewSource builds a quote source over provider. A nil provider yields
// synthetic prices only.
func NewSource(provider domain.PriceProvider, opts ...Option) *Source {
	s := &Source{
		provider: provider,
		random:   rand.Float64,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// GetQuotes returns one quote per distinct symbol, in request order. Symbols
// are looked up one after another, each at most once. It never fails: a
// symbol whose lookup fails gets a synthetic price in [50, 350).
func (s *Source) GetQuotes(ctx context.Context, symbols []string) []domain.Quote {
	quotes := make([]domain.Quote, 0, len(symbols))
	seen := make(map[string]struct{}, len(symbols))

	for _, raw := range symbols {
		symbol := domain.NormalizeSymbol(raw)
		if symbol == "" {
			continue
		}
		if _, ok := seen[symbol]; ok {
			continue
		}
		seen[symbol] = struct{}{}

		quotes = append(quotes, s.GetQuote(ctx, symbol))
	}

	return quotes
}

// GetQuote resolves a single symbol the same way GetQuotes does.
func (s *Source) GetQuote(ctx context.Context, symbol string) domain.Quote {
	symbol = domain.NormalizeSymbol(symbol)

	price, err := s.live(ctx, symbol)
	if err != nil {
		log.Warn("quote fetch failed, using synthetic price",
			zap.String("symbol", symbol),
			zap.Error(err),
		)

		return domain.Quote{
			Symbol:    symbol,
			Price:     s.synthetic(),
			Synthetic: true,
			FetchedAt: s.now(),
		}
	}

	return domain.Quote{
		Symbol:    symbol,
		Price:     price,
		FetchedAt: s.now(),
	}
}

func (s *Source) live(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if s.provider == nil {
		return decimal.Zero, fmt.Errorf("%w: no live provider", tradeerrs.ErrQuoteFetchFailed)
	}
	if symbol == "" {
		return decimal.Zero, fmt.Errorf("%w: %w", tradeerrs.ErrQuoteFetchFailed, tradeerrs.ErrPriceNotFound)
	}

	price, err := s.provider.GetPrice(ctx, symbol)
	if err != nil {
		if errors.Is(err, tradeerrs.ErrQuoteFetchFailed) {
			return decimal.Zero, err
		}
		return decimal.Zero, fmt.Errorf("%w: %w", tradeerrs.ErrQuoteFetchFailed, err)
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: non-positive price %s", tradeerrs.ErrQuoteFetchFailed, price)
	}

	return price, nil
}

// synthetic draws uniformly from [SyntheticMin, SyntheticMax), truncated to cents.
func (s *Source) synthetic() decimal.Decimal {
	r := s.random()
	if r < 0 || r >= 1 {
		r = 0
	}

	return decimal.NewFromFloat(SyntheticMin + r*(SyntheticMax-SyntheticMin)).RoundDown(2)
}
