package alphavantage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/leonid6372/stock-trader/internal/tradeerrs"
	"github.com/shopspring/decimal"
)

const (
	functionGlobalQuote = "GLOBAL_QUOTE"
	functionDaily       = "TIME_SERIES_DAILY"

	pathGlobalQuotePrice = `$["Global Quote"]["05. price"]`
	pathDailySeries      = `$["Time Series (Daily)"]`
	dailyCloseKey        = "4. close"
)

// noticeKeys mark bodies that carry no data: throttling, bad key, bad symbol.
var noticeKeys = []string{"Note", "Information", "Error Message"}

func checkNotice(body map[string]any) error {
	for _, key := range noticeKeys {
		if msg, ok := body[key]; ok {
			if key == "Error Message" {
				return fmt.Errorf("%w: %v", tradeerrs.ErrPriceNotFound, msg)
			}
			return fmt.Errorf("%w: %v", tradeerrs.ErrRateLimited, msg)
		}
	}

	return nil
}

// globalQuotePrice extracts the positive price of a GLOBAL_QUOTE body.
func globalQuotePrice(body map[string]any) (decimal.Decimal, error) {
	raw, err := jsonpath.Get(pathGlobalQuotePrice, body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", tradeerrs.ErrPriceNotFound, err)
	}

	price, err := parseDecimal(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", tradeerrs.ErrPriceNotFound, err)
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: non-positive price %s", tradeerrs.ErrPriceNotFound, price)
	}

	return price, nil
}

// dailyCloses extracts closing prices of a TIME_SERIES_DAILY body, newest
// first. Entries whose close cannot be parsed are skipped.
func dailyCloses(body map[string]any, limit int) ([]decimal.Decimal, error) {
	raw, err := jsonpath.Get(pathDailySeries, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tradeerrs.ErrHistoryUnavailable, err)
	}

	series, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected series type %T", tradeerrs.ErrHistoryUnavailable, raw)
	}

	days := make([]string, 0, len(series))
	for day := range series {
		days = append(days, day)
	}
	// ISO dates sort chronologically as strings.
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	closes := make([]decimal.Decimal, 0, min(limit, len(days)))
	for _, day := range days {
		if len(closes) == limit {
			break
		}

		bar, ok := series[day].(map[string]any)
		if !ok {
			continue
		}

		value, err := parseDecimal(bar[dailyCloseKey])
		if err != nil {
			continue
		}

		closes = append(closes, value)
	}

	return closes, nil
}

func parseDecimal(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case string:
		return decimal.NewFromString(strings.TrimSpace(v))
	case float64:
		return decimal.NewFromFloat(v), nil
	default:
		return decimal.Zero, fmt.Errorf("unexpected value %v (%T)", raw, raw)
	}
}
