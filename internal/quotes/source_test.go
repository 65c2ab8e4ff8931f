package quotes

import (
	"context"
	"errors"
	"testing"

	"github.com/leonid6372/stock-trader/internal/tradeerrs"
	"github.com/shopspring/decimal"
)

type fakeProvider struct {
	prices map[string]decimal.Decimal
	errs   map[string]error
	calls  []string
}

func (f *fakeProvider) GetPrice(_ context.Context, symbol string) (decimal.Decimal, error) {
	f.calls = append(f.calls, symbol)
	if err, ok := f.errs[symbol]; ok {
		return decimal.Zero, err
	}
	price, ok := f.prices[symbol]
	if !ok {
		return decimal.Zero, tradeerrs.ErrPriceNotFound
	}
	return price, nil
}

func fixedRandom(v float64) Option {
	return WithRandom(func() float64 { return v })
}

func TestSource_GetQuotes(t *testing.T) {
	provider := &fakeProvider{
		prices: map[string]decimal.Decimal{
			"AAPL": decimal.RequireFromString("189.12"),
			"TSLA": decimal.Zero,
			"NFLX": decimal.NewFromInt(-3),
		},
		errs: map[string]error{
			"GOOGL": errors.New("connection reset"),
		},
	}
	source := NewSource(provider, fixedRandom(0.5))

	quotes := source.GetQuotes(context.Background(), []string{"aapl", "GOOGL", " tsla ", "AAPL", "", "NFLX", "MSFT"})

	wantSymbols := []string{"AAPL", "GOOGL", "TSLA", "NFLX", "MSFT"}
	if len(quotes) != len(wantSymbols) {
		t.Fatalf("GetQuotes() returned %d quotes, want %d: %+v", len(quotes), len(wantSymbols), quotes)
	}
	for i, want := range wantSymbols {
		if quotes[i].Symbol != want {
			t.Errorf("quotes[%d].Symbol = %q, want %q", i, quotes[i].Symbol, want)
		}
	}

	if quotes[0].Synthetic || !quotes[0].Price.Equal(decimal.RequireFromString("189.12")) {
		t.Errorf("AAPL quote = %+v, want live 189.12", quotes[0])
	}

	synthetic := decimal.NewFromInt(200)
	for _, q := range quotes[1:] {
		if !q.Synthetic {
			t.Errorf("%s quote not marked synthetic", q.Symbol)
		}
		if !q.Price.Equal(synthetic) {
			t.Errorf("%s price = %s, want %s", q.Symbol, q.Price, synthetic)
		}
	}

	if len(provider.calls) != len(wantSymbols) {
		t.Errorf("provider called %d times (%v), want once per distinct symbol", len(provider.calls), provider.calls)
	}
}

func TestSource_SyntheticRange(t *testing.T) {
	testCases := []struct {
		name   string
		random float64
		want   decimal.Decimal
	}{
		{name: "lower bound", random: 0, want: decimal.NewFromInt(SyntheticMin)},
		{name: "just below one", random: 0.9999999999, want: decimal.RequireFromString("349.99")},
		{name: "out of range resets", random: 1.5, want: decimal.NewFromInt(SyntheticMin)},
		{name: "negative resets", random: -0.1, want: decimal.NewFromInt(SyntheticMin)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := NewSource(nil, fixedRandom(tc.random)).GetQuote(context.Background(), "AAPL")
			if !q.Price.Equal(tc.want) {
				t.Errorf("price = %s, want %s", q.Price, tc.want)
			}
		})
	}
}

func TestSource_NeverNonPositive(t *testing.T) {
	source := NewSource(&fakeProvider{errs: map[string]error{}})
	low := decimal.NewFromInt(SyntheticMin)
	high := decimal.NewFromInt(SyntheticMax)

	for i := 0; i < 500; i++ {
		q := source.GetQuote(context.Background(), "ZZZ")
		if q.Price.LessThan(low) || !q.Price.LessThan(high) {
			t.Fatalf("synthetic price %s outside [%s, %s)", q.Price, low, high)
		}
	}
}
