package format

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPrettyNumber(t *testing.T) {
	testCases := []struct {
		name             string
		number           any
		originalDecimals bool
		want             string
	}{
		{name: "small int", number: 150, want: "150"},
		{name: "thousands int", number: int64(1234567), want: "1 234 567"},
		{name: "negative int", number: -10000, want: "-10 000"},
		{name: "float", number: 8500.5, want: "8 500,50"},
		{name: "float original decimals", number: 0.125, originalDecimals: true, want: "0,125"},
		{name: "decimal", number: decimal.RequireFromString("9250"), want: "9 250,00"},
		{name: "decimal original decimals", number: decimal.RequireFromString("157.5"), originalDecimals: true, want: "157,5"},
		{name: "unsupported", number: "abc", want: "abc"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PrettyNumber(tc.number, " ", ",", tc.originalDecimals); got != tc.want {
				t.Errorf("PrettyNumber(%v) = %q, want %q", tc.number, got, tc.want)
			}
		})
	}
}

func TestPrettyNumber_NoSeparators(t *testing.T) {
	if got := PrettyNumber(1234.5, "", "", false); got != "1234.50" {
		t.Errorf("PrettyNumber() = %q, want 1234.50", got)
	}
}

func TestMoney(t *testing.T) {
	testCases := []struct {
		amount string
		want   string
	}{
		{amount: "8500", want: "$8,500.00"},
		{amount: "157.5", want: "$157.50"},
		{amount: "0.004", want: "$0.00"},
		{amount: "1234567.891", want: "$1,234,567.89"},
	}

	for _, tc := range testCases {
		t.Run(tc.amount, func(t *testing.T) {
			if got := Money(decimal.RequireFromString(tc.amount), "USD"); got != tc.want {
				t.Errorf("Money(%s) = %q, want %q", tc.amount, got, tc.want)
			}
		})
	}
}
