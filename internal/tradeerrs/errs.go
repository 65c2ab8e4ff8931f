package tradeerrs

import "errors"

// Degradations: recovered internally, never shown to the user.
var (
	ErrQuoteFetchFailed   = errors.New("quote fetch failed")
	ErrHistoryUnavailable = errors.New("price history unavailable")
	ErrInferenceFailed    = errors.New("model inference failed")
	ErrModelNotLoaded     = errors.New("prediction model not loaded")
	ErrAPIKeyMissing      = errors.New("quote provider api key not set")
	ErrPriceNotFound      = errors.New("price not found")
	ErrRateLimited        = errors.New("quote provider rate limit or information note")
)

// Order rejections: surfaced to the user as a plain notification.
var (
	ErrInvalidOrder       = errors.New("invalid order")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientShares = errors.New("insufficient shares")
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrUnknownProvider = errors.New("unknown quote provider")
)

// IsRejection reports whether err rejects an order without touching state.
func IsRejection(err error) bool {
	return errors.Is(err, ErrInvalidOrder) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrInsufficientShares)
}
