package domain

const (
	OperationsPerPage = 10

	OperationTypeBuy  = "buy"
	OperationTypeSell = "sell"

	DefaultCurrency = "USD"
)
