// Package prediction estimates a symbol's next price from a frozen regression
// model, re-anchored to the live price, with a fallback strategy for every
// path where the model cannot answer.
package prediction

import (
	"context"
	"fmt"
	"math"

	"github.com/leonid6372/stock-trader/internal/common/domain"
	"github.com/leonid6372/stock-trader/internal/tradeerrs"
	"github.com/leonid6372/stock-trader/pkg/log"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const DefaultHistorySize = 30

type Engine struct {
	model       Regressor
	history     domain.HistoryProvider
	fallback    FallbackStrategy
	historySize int
}

type Option func(*Engine)

func WithFallback(fallback FallbackStrategy) Option {
	return func(e *Engine) { e.fallback = fallback }
}

func WithHistorySize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.historySize = size
		}
	}
}

// NewEngine builds an engine. A nil model puts the engine in mock mode where
// every model step degrades to the fallback.
func NewEngine(model Regressor, history domain.HistoryProvider, opts ...Option) *Engine {
	e := &Engine{
		model:       model,
		history:     history,
		fallback:    NewOptimisticFallback(DefaultMultiplier),
		historySize: DefaultHistorySize,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// MockMode reports whether the engine runs without a model.
func (e *Engine) MockMode() bool {
	if e.model == nil {
		return true
	}

	m, ok := e.model.(*Model)
	return ok && m == nil
}

// Predict returns the predicted next price for symbol quoted at price.
// It never fails: degradations are reported through Prediction.Method and
// Prediction.Cause.
func (e *Engine) Predict(ctx context.Context, symbol string, price decimal.Decimal) domain.Prediction {
	if !price.IsPositive() {
		return domain.Prediction{
			Symbol:         symbol,
			PredictedPrice: decimal.Zero,
			Method:         domain.PredictionMethodZero,
		}
	}

	closes, err := e.closes(ctx, symbol)
	if err != nil {
		return e.degrade(symbol, price, err)
	}

	anchor := closes[0]

	raw, err := e.infer(anchor)
	if err != nil {
		return e.degrade(symbol, price, err)
	}

	denominator := anchor
	if denominator.IsZero() {
		denominator = price
	}

	return domain.Prediction{
		Symbol:         symbol,
		PredictedPrice: raw.Mul(price).Div(denominator),
		Method:         domain.PredictionMethodModel,
	}
}

// PredictPosition runs the model directly on a position's average price.
func (e *Engine) PredictPosition(_ context.Context, position domain.Position) domain.Prediction {
	if !position.AveragePrice.IsPositive() {
		return domain.Prediction{Symbol: position.Symbol, Method: domain.PredictionMethodZero}
	}

	raw, err := e.infer(position.AveragePrice)
	if err != nil {
		return e.degrade(position.Symbol, position.AveragePrice, err)
	}

	return domain.Prediction{
		Symbol:         position.Symbol,
		PredictedPrice: raw,
		Method:         domain.PredictionMethodModel,
	}
}

func (e *Engine) closes(ctx context.Context, symbol string) ([]decimal.Decimal, error) {
	if e.history == nil {
		return nil, fmt.Errorf("%w: no history provider", tradeerrs.ErrHistoryUnavailable)
	}

	closes, err := e.history.GetDailyCloses(ctx, symbol, e.historySize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tradeerrs.ErrHistoryUnavailable, err)
	}
	if len(closes) == 0 {
		return nil, tradeerrs.ErrHistoryUnavailable
	}
	if len(closes) > e.historySize {
		closes = closes[:e.historySize]
	}

	return closes, nil
}

func (e *Engine) infer(input decimal.Decimal) (decimal.Decimal, error) {
	if e.MockMode() {
		return decimal.Zero, fmt.Errorf("%w: %w", tradeerrs.ErrInferenceFailed, tradeerrs.ErrModelNotLoaded)
	}

	out, err := e.model.Predict([]float64{input.InexactFloat64()})
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", tradeerrs.ErrInferenceFailed, err)
	}
	if len(out) == 0 {
		return decimal.Zero, fmt.Errorf("%w: empty output", tradeerrs.ErrInferenceFailed)
	}
	if math.IsNaN(out[0]) || math.IsInf(out[0], 0) {
		return decimal.Zero, fmt.Errorf("%w: non-finite output", tradeerrs.ErrInferenceFailed)
	}

	return decimal.NewFromFloat(out[0]), nil
}

func (e *Engine) degrade(symbol string, price decimal.Decimal, cause error) domain.Prediction {
	log.Warn("prediction degraded to fallback",
		zap.String("symbol", symbol),
		zap.String("price", price.String()),
		zap.Error(cause),
	)

	return e.fallback.Fallback(symbol, price, cause)
}
