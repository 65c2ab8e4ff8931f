package bot

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/leonid6372/stock-trader/internal/common/config"
	"github.com/leonid6372/stock-trader/internal/common/domain"
	"github.com/leonid6372/stock-trader/internal/tradeerrs"
	"github.com/leonid6372/stock-trader/pkg/dictionary"
	"github.com/shopspring/decimal"
)

func newTestBot(t *testing.T) *Bot {
	t.Helper()

	d, err := dictionary.New("../../dictionary.json")
	if err != nil {
		t.Fatalf("dictionary.New() failed: %v", err)
	}

	return &Bot{
		cfg:  &config.Bot{Languages: []string{"en", "ru"}},
		deps: &Dependencies{dictionary: d},
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertContains(t *testing.T, text string, want ...string) {
	t.Helper()

	for _, w := range want {
		if !strings.Contains(text, w) {
			t.Errorf("text does not contain %q:\n%s", w, text)
		}
	}
}

func TestDictionaryCoversLanguages(t *testing.T) {
	b := newTestBot(t)

	keys := []string{
		msgDefaultError, msgStart, msgLoginRequired, msgLanguage, msgDashboardHeader, msgDashboardQuote,
		msgDashboardEmpty, msgPortfolioHeader, msgPortfolioPosition, msgPortfolioFooter, msgPortfolioEmpty,
		msgTradeHelp, msgTradePrice, msgOrderUsage, msgOrderFilled, msgRejectedInvalidOrder,
		msgRejectedInsufficientFunds, msgRejectedInsufficientShare, msgHistoryHeader, msgHistoryOperation,
		msgHistoryEmpty, msgSynthetic, msgNotQuoted, btnLanguage, btnDashboard, btnPortfolio, btnTrade,
		btnHistory, btnNextPage, btnPreviousPage, "method_model", "method_fallback", "method_zero",
		"side_buy", "side_sell",
	}

	for _, lang := range b.cfg.Languages {
		for _, key := range keys {
			if b.deps.dictionary.Text(lang, key) == "" {
				t.Errorf("%s: missing %q", lang, key)
			}
		}
	}
}

func TestBot_DashboardText(t *testing.T) {
	b := newTestBot(t)

	snapshot := &domain.MarketSnapshot{
		Quotes: []domain.Quote{
			{Symbol: "AAPL", Price: dec("150"), Synthetic: true},
			{Symbol: "TSLA", Price: dec("240")},
		},
		Predictions: map[string]domain.Prediction{
			"AAPL": {Symbol: "AAPL", PredictedPrice: dec("157.5"), Method: domain.PredictionMethodFallback},
			"TSLA": {Symbol: "TSLA", PredictedPrice: dec("231.2"), Method: domain.PredictionMethodModel},
		},
		RefreshedAt: time.Date(2025, time.March, 3, 14, 30, 0, 0, time.UTC),
	}

	text := b.dashboardText("en", snapshot)

	assertContains(t, text,
		"2025-03-03 14:30 UTC",
		trendBullish+" <b>AAPL</b> $150.00 (simulated) → $157.50 <i>(estimate)</i>",
		trendBearish+" <b>TSLA</b> $240.00 → $231.20 <i>(model)</i>",
	)

	if got := b.dashboardText("en", &domain.MarketSnapshot{}); got != b.deps.dictionary.Text("en", msgDashboardEmpty) {
		t.Errorf("empty dashboard = %q", got)
	}
}

func TestBot_PortfolioText(t *testing.T) {
	b := newTestBot(t)

	empty := b.portfolioText("en", &domain.PortfolioSummary{Balance: dec("10000")})
	assertContains(t, empty, "$10,000.00", "no positions")

	last := dec("190")
	summary := &domain.PortfolioSummary{
		Balance: dec("8500"),
		Positions: []domain.PositionView{
			{
				Position:   domain.Position{Symbol: "AAPL", Quantity: 10, AveragePrice: dec("150")},
				LastPrice:  &last,
				Prediction: domain.Prediction{PredictedPrice: dec("151.55"), Method: domain.PredictionMethodModel},
			},
			{
				Position:   domain.Position{Symbol: "MSFT", Quantity: 2, AveragePrice: dec("150")},
				Prediction: domain.Prediction{PredictedPrice: dec("157.5"), Method: domain.PredictionMethodFallback},
			},
		},
		CostValue:   dec("1800"),
		MarketValue: dec("2200"),
	}

	text := b.portfolioText("en", summary)

	assertContains(t, text,
		"$8,500.00",
		"<b>AAPL</b> × 10 @ $150.00",
		"last $190.00, forecast $151.55",
		"last n/a, forecast $157.50 <i>(estimate)</i>",
		"Cost value: $1,800.00",
		"Market value: $2,200.00",
	)
}

func TestBot_OrderTexts(t *testing.T) {
	b := newTestBot(t)

	filled := b.orderFilledText("en", &domain.Fill{
		Symbol:       "AAPL",
		Side:         domain.SideBuy,
		Quantity:     10,
		UnitPrice:    dec("150"),
		Amount:       dec("1500"),
		BalanceAfter: dec("8500"),
	})
	assertContains(t, filled, "Bought 10 <b>AAPL</b> @ $150.00 for $1,500.00", "$8,500.00")

	details := rejectionDetails{symbol: "AAPL", amount: dec("150000"), held: 5}

	testCases := []struct {
		name string
		err  error
		want string
	}{
		{name: "funds", err: fmt.Errorf("%w: need more", tradeerrs.ErrInsufficientFunds), want: "costs $150,000.00, your balance is $100.00"},
		{name: "shares", err: tradeerrs.ErrInsufficientShares, want: "you hold 5 AAPL"},
		{name: "invalid", err: tradeerrs.ErrInvalidOrder, want: "Invalid order"},
		{name: "other rejection", err: errors.New("boom"), want: "Invalid order"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assertContains(t, b.rejectionText("en", tc.err, details, dec("100")), tc.want)
		})
	}
}

func TestBot_HistoryText(t *testing.T) {
	b := newTestBot(t)

	if got := b.historyText("ru", nil, 1, 0); got != b.deps.dictionary.Text("ru", msgHistoryEmpty) {
		t.Errorf("empty history = %q", got)
	}

	operations := []*domain.Operation{{
		Type:        domain.OperationTypeSell,
		Symbol:      "AAPL",
		Count:       5,
		Price:       dec("150"),
		TotalAmount: dec("750"),
		CreatedAt:   time.Date(2025, time.March, 3, 9, 5, 0, 0, time.UTC),
	}}

	text := b.historyText("en", operations, 2, 3)

	assertContains(t, text, "page 2 of 3", "2025-03-03 09:05 Sold <b>AAPL</b> × 5 @ $150.00 = $750.00")
}

func TestBot_Pagination(t *testing.T) {
	b := newTestBot(t)

	testCases := []struct {
		name        string
		currentPage int64
		pagesCount  int64
		wantData    []string
	}{
		{name: "single page", currentPage: 1, pagesCount: 1},
		{name: "first page", currentPage: 1, pagesCount: 3, wantData: []string{"2"}},
		{name: "middle page", currentPage: 2, pagesCount: 3, wantData: []string{"1", "3"}},
		{name: "last page", currentPage: 3, pagesCount: 3, wantData: []string{"2"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rows := b.addPaginationCbkButtons(nil, "en", cbkHistoryPage, tc.currentPage, tc.pagesCount)

			if tc.wantData == nil {
				if len(rows) != 0 {
					t.Errorf("rows = %+v, want none", rows)
				}
				return
			}

			if len(rows) != 1 || len(rows[0]) != len(tc.wantData) {
				t.Fatalf("rows = %+v, want one row of %d buttons", rows, len(tc.wantData))
			}
			for i, btn := range rows[0] {
				if btn.Unique != cbkHistoryPage || btn.Data != tc.wantData[i] {
					t.Errorf("button %d = %q/%q, want %q/%q", i, btn.Unique, btn.Data, cbkHistoryPage, tc.wantData[i])
				}
			}
		})
	}
}

func TestParseOrder(t *testing.T) {
	testCases := []struct {
		name   string
		args   []string
		want   domain.Order
		wantOK bool
	}{
		{name: "buy", args: []string{"aapl", "10"}, want: domain.Order{Symbol: "aapl", Quantity: 10, Side: domain.SideBuy}, wantOK: true},
		{name: "negative quantity is left to the ledger", args: []string{"AAPL", "-1"}, want: domain.Order{Symbol: "AAPL", Quantity: -1, Side: domain.SideBuy}, wantOK: true},
		{name: "missing quantity", args: []string{"AAPL"}},
		{name: "fractional quantity", args: []string{"AAPL", "1.5"}},
		{name: "too many args", args: []string{"AAPL", "1", "2"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := parseOrder(tc.args, domain.SideBuy)
			if ok != tc.wantOK || got != tc.want {
				t.Errorf("parseOrder(%v) = %+v, %v, want %+v, %v", tc.args, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}
