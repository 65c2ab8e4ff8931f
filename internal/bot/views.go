package bot

import (
	"errors"
	"strings"

	"github.com/leonid6372/stock-trader/internal/common/domain"
	"github.com/leonid6372/stock-trader/internal/tradeerrs"
	"github.com/leonid6372/stock-trader/pkg/format"
	"github.com/shopspring/decimal"
)

const timeLayout = "2006-01-02 15:04"

type symbolPrice struct {
	symbol string
	price  decimal.Decimal
}

type rejectionDetails struct {
	symbol string
	amount decimal.Decimal
	held   int64
}

func money(amount decimal.Decimal) string {
	return format.Money(amount, domain.DefaultCurrency)
}

func trend(bullish bool) string {
	if bullish {
		return trendBullish
	}

	return trendBearish
}

func (b *Bot) methodText(lang string, method domain.PredictionMethod) string {
	return b.deps.dictionary.Text(lang, "method_"+string(method))
}

func (b *Bot) dashboardText(lang string, snapshot *domain.MarketSnapshot) string {
	if snapshot == nil || len(snapshot.Quotes) == 0 {
		return b.deps.dictionary.Text(lang, msgDashboardEmpty)
	}

	lines := []string{
		b.deps.dictionary.Text(lang, msgDashboardHeader, map[string]any{
			"RefreshedAt": snapshot.RefreshedAt.UTC().Format(timeLayout) + " UTC",
		}),
	}

	for _, q := range snapshot.Quotes {
		prediction := snapshot.Predictions[q.Symbol]

		synthetic := ""
		if q.Synthetic {
			synthetic = b.deps.dictionary.Text(lang, msgSynthetic)
		}

		lines = append(lines, b.deps.dictionary.Text(lang, msgDashboardQuote, map[string]any{
			"Trend":     trend(prediction.Bullish(q.Price)),
			"Symbol":    q.Symbol,
			"Price":     money(q.Price),
			"Synthetic": synthetic,
			"Predicted": money(prediction.PredictedPrice),
			"Method":    b.methodText(lang, prediction.Method),
		}))
	}

	return strings.Join(lines, "\n")
}

func (b *Bot) portfolioText(lang string, summary *domain.PortfolioSummary) string {
	if len(summary.Positions) == 0 {
		return b.deps.dictionary.Text(lang, msgPortfolioEmpty, map[string]any{
			"Balance": money(summary.Balance),
		})
	}

	lines := []string{
		b.deps.dictionary.Text(lang, msgPortfolioHeader, map[string]any{
			"Balance": money(summary.Balance),
		}),
	}

	for _, p := range summary.Positions {
		lastPrice := b.deps.dictionary.Text(lang, msgNotQuoted)
		if p.LastPrice != nil {
			lastPrice = money(*p.LastPrice)
		}

		lines = append(lines, b.deps.dictionary.Text(lang, msgPortfolioPosition, map[string]any{
			"Trend":        trend(p.Prediction.Bullish(p.AveragePrice)),
			"Symbol":       p.Symbol,
			"Quantity":     p.Quantity,
			"AveragePrice": money(p.AveragePrice),
			"LastPrice":    lastPrice,
			"Predicted":    money(p.Prediction.PredictedPrice),
			"Method":       b.methodText(lang, p.Prediction.Method),
		}))
	}

	lines = append(lines, b.deps.dictionary.Text(lang, msgPortfolioFooter, map[string]any{
		"CostValue":   money(summary.CostValue),
		"MarketValue": money(summary.MarketValue),
	}))

	return strings.Join(lines, "\n")
}

func (b *Bot) tradeText(lang string, prices []symbolPrice) string {
	lines := []string{b.deps.dictionary.Text(lang, msgTradeHelp)}

	for _, p := range prices {
		lines = append(lines, b.deps.dictionary.Text(lang, msgTradePrice, map[string]any{
			"Symbol": p.symbol,
			"Price":  money(p.price),
		}))
	}

	return strings.Join(lines, "\n")
}

func (b *Bot) orderFilledText(lang string, fill *domain.Fill) string {
	return b.deps.dictionary.Text(lang, msgOrderFilled, map[string]any{
		"Side":     b.deps.dictionary.Text(lang, "side_"+string(fill.Side)),
		"Quantity": fill.Quantity,
		"Symbol":   fill.Symbol,
		"Price":    money(fill.UnitPrice),
		"Amount":   money(fill.Amount),
		"Balance":  money(fill.BalanceAfter),
	})
}

func (b *Bot) rejectionText(lang string, err error, details rejectionDetails, balance decimal.Decimal) string {
	switch {
	case errors.Is(err, tradeerrs.ErrInsufficientFunds):
		return b.deps.dictionary.Text(lang, msgRejectedInsufficientFunds, map[string]any{
			"Amount":  money(details.amount),
			"Balance": money(balance),
		})
	case errors.Is(err, tradeerrs.ErrInsufficientShares):
		return b.deps.dictionary.Text(lang, msgRejectedInsufficientShare, map[string]any{
			"Held":   details.held,
			"Symbol": details.symbol,
		})
	default:
		return b.deps.dictionary.Text(lang, msgRejectedInvalidOrder)
	}
}

func (b *Bot) historyText(lang string, operations []*domain.Operation, currentPage, pagesCount int64) string {
	if pagesCount == 0 || len(operations) == 0 {
		return b.deps.dictionary.Text(lang, msgHistoryEmpty)
	}

	lines := []string{
		b.deps.dictionary.Text(lang, msgHistoryHeader, map[string]any{
			"CurrentPage": currentPage,
			"PagesCount":  pagesCount,
		}),
	}

	for _, op := range operations {
		lines = append(lines, b.deps.dictionary.Text(lang, msgHistoryOperation, map[string]any{
			"Time":     op.CreatedAt.UTC().Format(timeLayout),
			"Side":     b.deps.dictionary.Text(lang, "side_"+op.Type),
			"Symbol":   op.Symbol,
			"Quantity": op.Count,
			"Price":    money(op.Price),
			"Amount":   money(op.TotalAmount),
		}))
	}

	return strings.Join(lines, "\n")
}
