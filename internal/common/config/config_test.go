package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

const testConfig = `
env: test
log:
  level: debug
alpha_vantage:
  api_key: from-file
quotes:
  provider: yahoo
  symbols: [MSFT, NVDA]
  refresh_interval: 2m
ledger:
  initial_balance: 5000
  seed:
    - symbol: AAPL
      quantity: 10
      average_price: 150
trading:
  price_mode: quote
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	// Isolate from any .env next to the package.
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, testConfig))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Env != EnvTest {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvTest)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Encoding != "console" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Quotes.Provider != ProviderYahoo || !reflect.DeepEqual(cfg.Quotes.Symbols, []string{"MSFT", "NVDA"}) {
		t.Errorf("Quotes = %+v", cfg.Quotes)
	}
	if cfg.Quotes.RefreshInterval != 2*time.Minute {
		t.Errorf("RefreshInterval = %v, want 2m", cfg.Quotes.RefreshInterval)
	}
	if cfg.Ledger.InitialBalance != 5000 || len(cfg.Ledger.Seed) != 1 || cfg.Ledger.Seed[0].Symbol != "AAPL" {
		t.Errorf("Ledger = %+v", cfg.Ledger)
	}
	if cfg.Trading.PriceMode != PriceModeQuote || cfg.Trading.MockPrice != 150 {
		t.Errorf("Trading = %+v", cfg.Trading)
	}
	if cfg.Prediction.ModelPath != "tfjs_model/model.json" || cfg.Prediction.HistorySize != 30 || cfg.Prediction.FallbackMultiplier != 1.05 {
		t.Errorf("Prediction = %+v", cfg.Prediction)
	}
	if cfg.AlphaVantage.Timeout != 10*time.Second {
		t.Errorf("AlphaVantage.Timeout = %v, want 10s", cfg.AlphaVantage.Timeout)
	}
	if cfg.JournalEnabled() {
		t.Errorf("JournalEnabled() = true without a postgres host")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, testConfig)
	t.Setenv("ALPHA_VANTAGE_KEY", "from-env")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("TRADING_MOCK_PRICE", "99.5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.AlphaVantage.APIKey != "from-env" {
		t.Errorf("APIKey = %q, want from-env", cfg.AlphaVantage.APIKey)
	}
	if cfg.Trading.MockPrice != 99.5 {
		t.Errorf("MockPrice = %v, want 99.5", cfg.Trading.MockPrice)
	}
	if !cfg.JournalEnabled() {
		t.Errorf("JournalEnabled() = false with POSTGRES_HOST set")
	}
	if got := cfg.GetPostgresURL(); !strings.Contains(got, "@db:5432/") {
		t.Errorf("GetPostgresURL() = %q", got)
	}
}

func TestLoad_Invalid(t *testing.T) {
	testCases := map[string]string{
		"unknown provider":    "quotes:\n  provider: bloomberg\n",
		"unknown price mode":  "trading:\n  price_mode: auction\n",
		"negative mock price": "trading:\n  mock_price: -1\n",
		"negative balance":    "ledger:\n  initial_balance: -10\n",
	}

	for name, content := range testCases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, content)); err == nil {
				t.Errorf("Load() accepted an invalid config")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Load() of a missing file must fail")
	}
}
