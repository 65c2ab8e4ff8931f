package prediction

import (
	"github.com/leonid6372/stock-trader/internal/common/domain"
	"github.com/shopspring/decimal"
)

// FallbackStrategy produces the prediction used when the model path cannot.
type FallbackStrategy interface {
	Fallback(symbol string, price decimal.Decimal, cause error) domain.Prediction
}

// OptimisticFallback predicts price × Multiplier.
type OptimisticFallback struct {
	Multiplier decimal.Decimal
}

var DefaultMultiplier = decimal.RequireFromString("1.05")

func NewOptimisticFallback(multiplier decimal.Decimal) OptimisticFallback {
	if !multiplier.IsPositive() {
		multiplier = DefaultMultiplier
	}

	return OptimisticFallback{Multiplier: multiplier}
}

func (f OptimisticFallback) Fallback(symbol string, price decimal.Decimal, cause error) domain.Prediction {
	return domain.Prediction{
		Symbol:         symbol,
		PredictedPrice: price.Mul(f.Multiplier),
		Method:         domain.PredictionMethodFallback,
		Cause:          cause,
	}
}
