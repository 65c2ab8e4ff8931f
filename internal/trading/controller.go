// Package trading owns the application state shared by the UI surfaces: the
// market snapshot, user accounts and order placement.
package trading

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/leonid6372/stock-trader/internal/common/config"
	"github.com/leonid6372/stock-trader/internal/common/domain"
	"github.com/leonid6372/stock-trader/internal/ledger"
	"github.com/leonid6372/stock-trader/pkg/dictionary"
	"github.com/leonid6372/stock-trader/pkg/errs"
	"github.com/leonid6372/stock-trader/pkg/log"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const snapshotKey = "snapshot"

type QuoteSource interface {
	GetQuotes(ctx context.Context, symbols []string) []domain.Quote
}

type Predictor interface {
	Predict(ctx context.Context, symbol string, price decimal.Decimal) domain.Prediction
	PredictPosition(ctx context.Context, position domain.Position) domain.Prediction
}

type Controller struct {
	cfg *config.Config

	quotes     QuoteSource
	predictor  Predictor
	operations domain.OperationsRepository

	snapshots *cache.Cache
	refreshMu sync.Mutex

	now func() time.Time
}

type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func NewController(
	cfg *config.Config,
	quotes QuoteSource,
	predictor Predictor,
	operations domain.OperationsRepository,
	opts ...Option,
) *Controller {
	interval := cfg.Quotes.RefreshInterval

	c := &Controller{
		cfg:        cfg,
		quotes:     quotes,
		predictor:  predictor,
		operations: operations,
		snapshots:  cache.New(interval, 2*interval),
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// RefreshInterval is how long a snapshot stays cached.
func (c *Controller) RefreshInterval() time.Duration {
	return c.cfg.Quotes.RefreshInterval
}

// Refresh fetches quotes for the watchlist and predicts each of them, one
// symbol after another, and caches the result for the refresh interval.
func (c *Controller) Refresh(ctx context.Context) *domain.MarketSnapshot {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	quotes := c.quotes.GetQuotes(ctx, c.cfg.Quotes.Symbols)

	snapshot := &domain.MarketSnapshot{
		Quotes:      quotes,
		Predictions: make(map[string]domain.Prediction, len(quotes)),
	}

	for _, q := range quotes {
		snapshot.Predictions[q.Symbol] = c.predictor.Predict(ctx, q.Symbol, q.Price)
	}

	snapshot.RefreshedAt = c.now()
	c.snapshots.SetDefault(snapshotKey, snapshot)

	log.Debug("market snapshot refreshed",
		zap.Int("quotes", len(quotes)),
		zap.Time("refreshed_at", snapshot.RefreshedAt),
	)

	return snapshot
}

// Snapshot returns the cached snapshot, refreshing it when it has expired.
func (c *Controller) Snapshot(ctx context.Context) *domain.MarketSnapshot {
	if cached, ok := c.snapshots.Get(snapshotKey); ok {
		return cached.(*domain.MarketSnapshot)
	}

	return c.Refresh(ctx)
}

// OpenAccount starts a fresh session for userID seeded from the ledger config.
func (c *Controller) OpenAccount(userID int64) *Account {
	seed := make([]domain.Position, 0, len(c.cfg.Ledger.Seed))
	for _, s := range c.cfg.Ledger.Seed {
		seed = append(seed, domain.Position{
			Symbol:       s.Symbol,
			Quantity:     s.Quantity,
			AveragePrice: decimal.NewFromFloat(s.AveragePrice),
		})
	}

	var opts []ledger.Option
	if c.cfg.Ledger.WeightedAverage {
		opts = append(opts, ledger.WithWeightedAverage())
	}
	opts = append(opts, ledger.WithClock(c.now))

	return &Account{
		userID:   userID,
		language: dictionary.DefaultLanguage,
		ledger:   ledger.New(decimal.NewFromFloat(c.cfg.Ledger.InitialBalance), seed, opts...),
	}
}

// OrderPrice is the unit price an order for symbol would execute at.
func (c *Controller) OrderPrice(ctx context.Context, symbol string) decimal.Decimal {
	mockPrice := decimal.NewFromFloat(c.cfg.Trading.MockPrice)

	if c.cfg.Trading.PriceMode != config.PriceModeQuote {
		return mockPrice
	}

	q, ok := c.Snapshot(ctx).Quote(domain.NormalizeSymbol(symbol))
	if !ok {
		return mockPrice
	}

	return q.Price
}

// PlaceOrder executes order against the account and journals the fill.
// Rejections come back unchanged from the ledger. A journal failure is logged
// and does not undo the fill.
func (c *Controller) PlaceOrder(ctx context.Context, account *Account, order domain.Order) (*domain.Fill, error) {
	unitPrice := c.OrderPrice(ctx, order.Symbol)

	fill, err := account.apply(order, unitPrice)
	if err != nil {
		log.Info("order rejected",
			zap.Int64("user_id", account.UserID()),
			zap.String("symbol", order.Symbol),
			zap.String("side", string(order.Side)),
			zap.Int64("quantity", order.Quantity),
			zap.Error(err),
		)

		return nil, err
	}

	log.Info("order filled",
		zap.Int64("user_id", account.UserID()),
		zap.Stringer("order_id", fill.OrderID),
		zap.String("symbol", fill.Symbol),
		zap.String("side", string(fill.Side)),
		zap.Int64("quantity", fill.Quantity),
		zap.Stringer("unit_price", fill.UnitPrice),
		zap.Stringer("balance", fill.BalanceAfter),
	)

	if c.operations != nil {
		if err := c.operations.SaveOperation(ctx, domain.NewOperation(account.UserID(), fill)); err != nil {
			log.Error("failed to journal operation",
				zap.Stringer("order_id", fill.OrderID),
				zap.Error(err),
			)
		}
	}

	return fill, nil
}

// Portfolio values the account's positions against the current snapshot.
func (c *Controller) Portfolio(ctx context.Context, account *Account) *domain.PortfolioSummary {
	balance, positions := account.state()
	snapshot := c.Snapshot(ctx)

	summary := &domain.PortfolioSummary{
		Balance:     balance,
		Positions:   make([]domain.PositionView, 0, len(positions)),
		CostValue:   decimal.Zero,
		MarketValue: decimal.Zero,
	}

	for _, p := range positions {
		view := domain.PositionView{
			Position:   p,
			Prediction: c.predictor.PredictPosition(ctx, p),
		}

		marketPrice := p.AveragePrice
		if q, ok := snapshot.Quote(p.Symbol); ok {
			price := q.Price
			view.LastPrice = &price
			marketPrice = price
		}

		summary.CostValue = summary.CostValue.Add(p.CostValue())
		summary.MarketValue = summary.MarketValue.Add(marketPrice.Mul(decimal.NewFromInt(p.Quantity)))
		summary.Positions = append(summary.Positions, view)
	}

	return summary
}

// History returns one page of the user's journaled operations, newest first,
// with the total pages count.
func (c *Controller) History(ctx context.Context, userID, page int64) ([]*domain.Operation, int64, error) {
	if c.operations == nil {
		return []*domain.Operation{}, 0, nil
	}

	pagesCount, err := c.operations.GetOperationsPagesCount(ctx, userID)
	if err != nil {
		return nil, 0, errs.NewStack(fmt.Errorf("failed to get operations pages count: %w", err))
	}

	if pagesCount > 0 && page > pagesCount {
		page = pagesCount
	}

	operations, err := c.operations.GetOperationsByPage(ctx, userID, page)
	if err != nil {
		return nil, 0, errs.NewStack(fmt.Errorf("failed to get operations page: %w", err))
	}

	return operations, pagesCount, nil
}
