package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/leonid6372/stock-trader/internal/common/domain"
	"github.com/leonid6372/stock-trader/pkg/format"
	"github.com/shopspring/decimal"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	bullishStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	bearishStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)
)

func money(amount decimal.Decimal) string {
	return format.Money(amount, domain.DefaultCurrency)
}

func trend(bullish bool) string {
	if bullish {
		return bullishStyle.Render("▲")
	}

	return bearishStyle.Render("▼")
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func renderQuotes(snapshot *domain.MarketSnapshot) string {
	t := newTable("", "Symbol", "Price", "Source", "Prediction", "Method")

	for _, q := range snapshot.Quotes {
		prediction := snapshot.Predictions[q.Symbol]

		source := "live"
		if q.Synthetic {
			source = mutedStyle.Render("simulated")
		}

		t.Row(
			trend(prediction.Bullish(q.Price)),
			q.Symbol,
			money(q.Price),
			source,
			money(prediction.PredictedPrice),
			string(prediction.Method),
		)
	}

	return t.Render()
}

func renderPrediction(price decimal.Decimal, prediction domain.Prediction) string {
	out := fmt.Sprintf("%s %s %s → %s (%s)",
		trend(prediction.Bullish(price)),
		prediction.Symbol,
		money(price),
		money(prediction.PredictedPrice),
		prediction.Method,
	)

	if prediction.Cause != nil {
		out += "\n" + mutedStyle.Render("cause: "+prediction.Cause.Error())
	}

	return out
}

func renderFill(fill *domain.Fill) string {
	return successStyle.Render(fmt.Sprintf("✔ %s %d %s @ %s = %s, balance %s",
		fill.Side, fill.Quantity, fill.Symbol,
		money(fill.UnitPrice), money(fill.Amount), money(fill.BalanceAfter),
	))
}

func renderRejection(order domain.Order, err error) string {
	return errorStyle.Render(fmt.Sprintf("✘ %s %d %s rejected: %v",
		order.Side, order.Quantity, domain.NormalizeSymbol(order.Symbol), err,
	))
}

func renderPortfolio(summary *domain.PortfolioSummary) string {
	out := fmt.Sprintf("Balance: %s\n", money(summary.Balance))

	if len(summary.Positions) == 0 {
		return out + mutedStyle.Render("no positions")
	}

	t := newTable("Symbol", "Quantity", "Average", "Last", "Prediction")

	for _, p := range summary.Positions {
		last := mutedStyle.Render("n/a")
		if p.LastPrice != nil {
			last = money(*p.LastPrice)
		}

		t.Row(
			p.Symbol,
			strconv.FormatInt(p.Quantity, 10),
			money(p.AveragePrice),
			last,
			money(p.Prediction.PredictedPrice)+" "+trend(p.Prediction.Bullish(p.AveragePrice)),
		)
	}

	return out + t.Render() + fmt.Sprintf("\nCost value: %s\nMarket value: %s",
		money(summary.CostValue), money(summary.MarketValue))
}
