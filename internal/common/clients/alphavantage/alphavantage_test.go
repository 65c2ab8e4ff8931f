package alphavantage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/leonid6372/stock-trader/internal/tradeerrs"
	"github.com/shopspring/decimal"
)

const globalQuoteBody = `{
	"Global Quote": {
		"01. symbol": "AAPL",
		"05. price": "189.8400",
		"07. latest trading day": "2025-03-03"
	}
}`

const dailyBody = `{
	"Meta Data": {"2. Symbol": "AAPL"},
	"Time Series (Daily)": {
		"2025-02-27": {"4. close": "180.00"},
		"2025-03-03": {"4. close": "189.84"},
		"2025-02-28": {"4. close": "n/a"},
		"2025-03-01": {"4. close": "185.10"},
		"2025-02-26": {"4. close": "178.50"}
	}
}`

// newTestServer answers /query with the body registered for its function parameter.
func newTestServer(t *testing.T, status int, bodies map[string]string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/query" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("apikey"); got != "secret" {
			t.Errorf("apikey = %q, want secret", got)
		}
		if got := r.URL.Query().Get("symbol"); got != "AAPL" {
			t.Errorf("symbol = %q, want AAPL", got)
		}

		w.WriteHeader(status)
		_, _ = w.Write([]byte(bodies[r.URL.Query().Get("function")]))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestClient_GetPrice(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		body    string
		want    decimal.Decimal
		fail    bool
		wantErr error
	}{
		{name: "ok", status: http.StatusOK, body: globalQuoteBody, want: decimal.RequireFromString("189.84")},
		{name: "empty global quote", status: http.StatusOK, body: `{"Global Quote": {}}`, wantErr: tradeerrs.ErrPriceNotFound},
		{name: "missing global quote", status: http.StatusOK, body: `{}`, wantErr: tradeerrs.ErrPriceNotFound},
		{name: "zero price", status: http.StatusOK, body: `{"Global Quote": {"05. price": "0.0000"}}`, wantErr: tradeerrs.ErrPriceNotFound},
		{name: "garbage price", status: http.StatusOK, body: `{"Global Quote": {"05. price": "abc"}}`, wantErr: tradeerrs.ErrPriceNotFound},
		{name: "rate limited", status: http.StatusOK, body: `{"Note": "Thank you for using Alpha Vantage!"}`, wantErr: tradeerrs.ErrRateLimited},
		{name: "information", status: http.StatusOK, body: `{"Information": "premium endpoint"}`, wantErr: tradeerrs.ErrRateLimited},
		{name: "error message", status: http.StatusOK, body: `{"Error Message": "Invalid API call"}`, wantErr: tradeerrs.ErrPriceNotFound},
		{name: "http error", status: http.StatusBadGateway, body: ``, fail: true},
		{name: "malformed json", status: http.StatusOK, body: `{"Global Quote":`, fail: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t, tc.status, map[string]string{functionGlobalQuote: tc.body})
			client := NewClient(srv.URL, "secret", time.Second)

			got, err := client.GetPrice(context.Background(), "aapl")

			if tc.fail || tc.wantErr != nil {
				if err == nil {
					t.Fatalf("GetPrice() = %s, want error", got)
				}
				if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
					t.Errorf("GetPrice() error = %v, want %v", err, tc.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("GetPrice() failed: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("GetPrice() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestClient_GetDailyCloses(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, map[string]string{functionDaily: dailyBody})
	client := NewClient(srv.URL, "secret", time.Second)

	got, err := client.GetDailyCloses(context.Background(), "AAPL", 3)
	if err != nil {
		t.Fatalf("GetDailyCloses() failed: %v", err)
	}

	want := []string{"189.84", "185.1", "180"}
	if len(got) != len(want) {
		t.Fatalf("GetDailyCloses() = %v, want %v", got, want)
	}
	for i := range want {
		if !got[i].Equal(decimal.RequireFromString(want[i])) {
			t.Errorf("close[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	all, err := client.GetDailyCloses(context.Background(), "AAPL", 30)
	if err != nil {
		t.Fatalf("GetDailyCloses() failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("GetDailyCloses(30) returned %d closes, want 4 parsable ones", len(all))
	}
}

func TestClient_GetDailyClosesMissingSeries(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, map[string]string{functionDaily: `{"Meta Data": {}}`})
	client := NewClient(srv.URL, "secret", time.Second)

	if _, err := client.GetDailyCloses(context.Background(), "AAPL", 30); !errors.Is(err, tradeerrs.ErrHistoryUnavailable) {
		t.Errorf("GetDailyCloses() error = %v, want ErrHistoryUnavailable", err)
	}
}

func TestClient_MissingAPIKey(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "", time.Second)

	if _, err := client.GetPrice(context.Background(), "AAPL"); !errors.Is(err, tradeerrs.ErrAPIKeyMissing) {
		t.Errorf("GetPrice() error = %v, want ErrAPIKeyMissing", err)
	}
	if _, err := client.GetDailyCloses(context.Background(), "AAPL", 30); !errors.Is(err, tradeerrs.ErrAPIKeyMissing) {
		t.Errorf("GetDailyCloses() error = %v, want ErrAPIKeyMissing", err)
	}
}
