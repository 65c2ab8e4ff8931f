package postgres

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/leonid6372/stock-trader/internal/common/domain"
	"github.com/shopspring/decimal"
)

type User struct {
	ID int64 `db:"id"`

	Username     string `db:"username"`
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	LanguageCode string `db:"language_code"`

	UpdatedAt time.Time `db:"updated_at"`
	CreatedAt time.Time `db:"created_at"`
}

func (u *User) CreateDomain() *domain.User {
	return &domain.User{
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		LanguageCode: u.LanguageCode,
		UpdatedAt:    u.UpdatedAt,
		CreatedAt:    u.CreatedAt,
	}
}

// Operation is a journal row. Numeric and uuid columns are read as text.
type Operation struct {
	ID     string `db:"id"`
	UserID int64  `db:"user_id"`

	Type        string `db:"type"`
	Symbol      string `db:"symbol"`
	Count       int64  `db:"count"`
	Price       string `db:"price"`
	TotalAmount string `db:"total_amount"`

	CreatedAt time.Time `db:"created_at"`
}

func (o *Operation) CreateDomain() (*domain.Operation, error) {
	id, err := uuid.Parse(o.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse operation id %q: %w", o.ID, err)
	}

	price, err := decimal.NewFromString(o.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to parse operation price %q: %w", o.Price, err)
	}

	totalAmount, err := decimal.NewFromString(o.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse operation total amount %q: %w", o.TotalAmount, err)
	}

	operation := &domain.Operation{
		ID:          id,
		UserID:      o.UserID,
		Type:        o.Type,
		Symbol:      o.Symbol,
		Count:       o.Count,
		Price:       price,
		TotalAmount: totalAmount,
		CreatedAt:   o.CreatedAt,
	}

	return operation, nil
}
