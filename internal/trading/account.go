package trading

import (
	"sync"

	"github.com/leonid6372/stock-trader/internal/common/domain"
	"github.com/leonid6372/stock-trader/internal/ledger"
	"github.com/shopspring/decimal"
)

// Account is one user's paper-trading session. All ledger writes go through mu.
type Account struct {
	mu sync.Mutex

	userID   int64
	language string
	ledger   *ledger.Ledger
}

func (a *Account) UserID() int64 {
	return a.userID
}

func (a *Account) Language() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.language
}

func (a *Account) SetLanguage(language string) {
	a.mu.Lock()
	a.language = language
	a.mu.Unlock()
}

func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.ledger.Balance()
}

func (a *Account) Positions() []domain.Position {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.ledger.Positions()
}

func (a *Account) apply(order domain.Order, unitPrice decimal.Decimal) (*domain.Fill, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.ledger.Apply(order, unitPrice)
}

// state returns balance and positions read under one lock.
func (a *Account) state() (decimal.Decimal, []domain.Position) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.ledger.Balance(), a.ledger.Positions()
}
