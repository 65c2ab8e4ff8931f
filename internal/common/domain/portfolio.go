package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Side string

const (
	SideBuy  Side = OperationTypeBuy
	SideSell Side = OperationTypeSell
)

func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

type Position struct {
	Symbol       string          `json:"symbol"`
	Quantity     int64           `json:"quantity"`
	AveragePrice decimal.Decimal `json:"average_price"`
}

// CostValue is quantity × average price.
func (p Position) CostValue() decimal.Decimal {
	return p.AveragePrice.Mul(decimal.NewFromInt(p.Quantity))
}

type Order struct {
	Symbol   string `json:"symbol"`
	Quantity int64  `json:"quantity"`
	Side     Side   `json:"side"`
}

type Fill struct {
	OrderID  uuid.UUID `json:"order_id"`
	Symbol   string    `json:"symbol"`
	Side     Side      `json:"side"`
	Quantity int64     `json:"quantity"`

	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`

	BalanceAfter          decimal.Decimal `json:"balance_after"`
	PositionQuantityAfter int64           `json:"position_quantity_after"`

	ExecutedAt time.Time `json:"executed_at"`
}

type PositionView struct {
	Position

	LastPrice  *decimal.Decimal `json:"last_price,omitempty"`
	Prediction Prediction       `json:"prediction"`
}

type PortfolioSummary struct {
	Balance   decimal.Decimal `json:"balance"`
	Positions []PositionView  `json:"positions"`

	// CostValue sums quantity × average price.
	CostValue decimal.Decimal `json:"cost_value"`
	// MarketValue uses the last quote, or the average price when no quote is known.
	MarketValue decimal.Decimal `json:"market_value"`
}
