package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OperationsRepository interface {
	SaveOperation(ctx context.Context, operation *Operation) error
	GetOperationsPagesCount(ctx context.Context, userID int64) (int64, error)
	GetOperationsByPage(ctx context.Context, userID, page int64) ([]*Operation, error)
}

type Operation struct {
	ID     uuid.UUID `json:"id"`
	UserID int64     `json:"user_id"`

	Type        string          `json:"type"`
	Symbol      string          `json:"symbol"`
	Count       int64           `json:"count"`
	Price       decimal.Decimal `json:"price"`
	TotalAmount decimal.Decimal `json:"total_amount"`

	CreatedAt time.Time `json:"created_at"`
}

// NewOperation builds the journal row for a fill executed on behalf of userID.
func NewOperation(userID int64, fill *Fill) *Operation {
	return &Operation{
		ID:          fill.OrderID,
		UserID:      userID,
		Type:        string(fill.Side),
		Symbol:      fill.Symbol,
		Count:       fill.Quantity,
		Price:       fill.UnitPrice,
		TotalAmount: fill.Amount,
		CreatedAt:   fill.ExecutedAt,
	}
}

// PagesCount returns how many pages of perPage items count items fill.
func PagesCount(count, perPage int64) int64 {
	return (count + perPage - 1) / perPage
}
