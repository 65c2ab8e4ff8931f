package domain

import "github.com/shopspring/decimal"

type PredictionMethod string

const (
	PredictionMethodModel    PredictionMethod = "model"
	PredictionMethodFallback PredictionMethod = "fallback"
	PredictionMethodZero     PredictionMethod = "zero"
)

type Prediction struct {
	Symbol         string           `json:"symbol"`
	PredictedPrice decimal.Decimal  `json:"predicted_price"`
	Method         PredictionMethod `json:"method"`

	// Cause is set when Method is fallback.
	Cause error `json:"-"`
}

// Bullish reports whether the prediction is above price.
func (p Prediction) Bullish(price decimal.Decimal) bool {
	return p.PredictedPrice.GreaterThan(price)
}
