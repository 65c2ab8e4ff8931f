// Package ledger holds a cash balance and share positions and applies buy/sell
// orders against them.
//
// A Ledger is not safe for concurrent use; callers serialize writers.
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/leonid6372/stock-trader/internal/common/domain"
	"github.com/leonid6372/stock-trader/internal/tradeerrs"
	"github.com/shopspring/decimal"
)

type Ledger struct {
	balance   decimal.Decimal
	positions []*domain.Position

	weightedAverage bool
	now             func() time.Time
	newID           func() uuid.UUID
}

type Option func(*Ledger)

// WithWeightedAverage recomputes the average price on repeated buys of a symbol.
// Without it the first purchase price is kept for the life of the position.
func WithWeightedAverage() Option {
	return func(l *Ledger) { l.weightedAverage = true }
}

// WithClock overrides the fill timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New creates a ledger with the given cash balance and seed positions.
// Seed positions with a blank symbol or a non-positive quantity are skipped;
// repeated symbols are merged.
func New(balance decimal.Decimal, seed []domain.Position, opts ...Option) *Ledger {
	l := &Ledger{
		balance: balance,
		now:     time.Now,
		newID:   uuid.New,
	}

	for _, opt := range opts {
		opt(l)
	}

	for _, p := range seed {
		symbol := domain.NormalizeSymbol(p.Symbol)
		if symbol == "" || p.Quantity <= 0 {
			continue
		}

		if existing := l.find(symbol); existing != nil {
			existing.Quantity += p.Quantity
			continue
		}

		l.positions = append(l.positions, &domain.Position{
			Symbol:       symbol,
			Quantity:     p.Quantity,
			AveragePrice: p.AveragePrice,
		})
	}

	return l
}

func (l *Ledger) Balance() decimal.Decimal {
	return l.balance
}

// Positions returns a copy of the open positions in the order they were opened.
func (l *Ledger) Positions() []domain.Position {
	positions := make([]domain.Position, 0, len(l.positions))
	for _, p := range l.positions {
		positions = append(positions, *p)
	}

	return positions
}

func (l *Ledger) Position(symbol string) (domain.Position, bool) {
	p := l.find(domain.NormalizeSymbol(symbol))
	if p == nil {
		return domain.Position{}, false
	}

	return *p, true
}

// Apply validates order and, when it is acceptable, mutates balance and
// positions at unitPrice. A rejected order leaves the ledger untouched and
// returns an error wrapping ErrInvalidOrder, ErrInsufficientFunds or
// ErrInsufficientShares.
func (l *Ledger) Apply(order domain.Order, unitPrice decimal.Decimal) (*domain.Fill, error) {
	symbol := domain.NormalizeSymbol(order.Symbol)

	if err := validate(symbol, order, unitPrice); err != nil {
		return nil, err
	}

	amount := unitPrice.Mul(decimal.NewFromInt(order.Quantity))

	var quantityAfter int64

	switch order.Side {
	case domain.SideBuy:
		if l.balance.LessThan(amount) {
			return nil, fmt.Errorf("%w: need %s, have %s", tradeerrs.ErrInsufficientFunds, amount, l.balance)
		}

		quantityAfter = l.buy(symbol, order.Quantity, unitPrice)
		l.balance = l.balance.Sub(amount)

	case domain.SideSell:
		p := l.find(symbol)
		if p == nil {
			return nil, fmt.Errorf("%w: no %s position", tradeerrs.ErrInsufficientShares, symbol)
		}
		if p.Quantity < order.Quantity {
			return nil, fmt.Errorf("%w: want %d %s, hold %d",
				tradeerrs.ErrInsufficientShares, order.Quantity, symbol, p.Quantity)
		}

		quantityAfter = l.sell(p, order.Quantity)
		l.balance = l.balance.Add(amount)
	}

	return &domain.Fill{
		OrderID:               l.newID(),
		Symbol:                symbol,
		Side:                  order.Side,
		Quantity:              order.Quantity,
		UnitPrice:             unitPrice,
		Amount:                amount,
		BalanceAfter:          l.balance,
		PositionQuantityAfter: quantityAfter,
		ExecutedAt:            l.now(),
	}, nil
}

func validate(symbol string, order domain.Order, unitPrice decimal.Decimal) error {
	switch {
	case symbol == "":
		return fmt.Errorf("%w: empty symbol", tradeerrs.ErrInvalidOrder)
	case order.Quantity <= 0:
		return fmt.Errorf("%w: quantity must be positive, got %d", tradeerrs.ErrInvalidOrder, order.Quantity)
	case !order.Side.Valid():
		return fmt.Errorf("%w: unknown side %q", tradeerrs.ErrInvalidOrder, order.Side)
	case !unitPrice.IsPositive():
		return fmt.Errorf("%w: unit price must be positive, got %s", tradeerrs.ErrInvalidOrder, unitPrice)
	}

	return nil
}

func (l *Ledger) buy(symbol string, quantity int64, unitPrice decimal.Decimal) int64 {
	p := l.find(symbol)
	if p == nil {
		l.positions = append(l.positions, &domain.Position{
			Symbol:       symbol,
			Quantity:     quantity,
			AveragePrice: unitPrice,
		})

		return quantity
	}

	if l.weightedAverage {
		oldCost := p.AveragePrice.Mul(decimal.NewFromInt(p.Quantity))
		newCost := unitPrice.Mul(decimal.NewFromInt(quantity))
		p.AveragePrice = oldCost.Add(newCost).Div(decimal.NewFromInt(p.Quantity + quantity))
	}

	p.Quantity += quantity

	return p.Quantity
}

func (l *Ledger) sell(p *domain.Position, quantity int64) int64 {
	p.Quantity -= quantity
	if p.Quantity == 0 {
		l.remove(p.Symbol)
	}

	return p.Quantity
}

func (l *Ledger) find(symbol string) *domain.Position {
	for _, p := range l.positions {
		if p.Symbol == symbol {
			return p
		}
	}

	return nil
}

func (l *Ledger) remove(symbol string) {
	for i, p := range l.positions {
		if p.Symbol == symbol {
			l.positions = append(l.positions[:i], l.positions[i+1:]...)
			return
		}
	}
}
