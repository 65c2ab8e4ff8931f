package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/leonid6372/stock-trader/pkg/log"
)

const (
	EnvProd = "prod"
	EnvTest = "test"

	ProviderAlphaVantage = "alphavantage"
	ProviderYahoo        = "yahoo"

	PriceModeMock  = "mock"
	PriceModeQuote = "quote"
)

type Config struct {
	Env string `yaml:"env" env:"ENV" env-upd:"" env-default:"prod"`

	Log Log `yaml:"log"`

	Postgres Postgres `yaml:"postgres"`

	AlphaVantage AlphaVantage `yaml:"alpha_vantage"`

	Quotes     Quotes     `yaml:"quotes"`
	Prediction Prediction `yaml:"prediction"`
	Ledger     Ledger     `yaml:"ledger"`
	Trading    Trading    `yaml:"trading"`

	Bot Bot `yaml:"bot"`
}

type Log struct {
	Level    string `yaml:"level" env:"LOG_LEVEL" env-upd:"" env-default:"info"`
	Encoding string `yaml:"encoding" env:"LOG_ENCODING" env-upd:"" env-default:"console"`
}

// Postgres backs the operations journal. The journal is kept in memory when Host is empty.
type Postgres struct {
	Database string `yaml:"database" env:"POSTGRES_DATABASE" env-upd:""`
	Host     string `yaml:"host" env:"POSTGRES_HOST" env-upd:""`
	Schema   string `yaml:"schema" env:"POSTGRES_SCHEMA" env-upd:"" env-default:"stock_trader"`
	Username string `yaml:"username" env:"POSTGRES_USER" env-upd:""`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD" env-upd:""`
	Port     int64  `yaml:"port" env:"POSTGRES_PORT" env-upd:"" env-default:"5432"`

	MigrationsPath string `yaml:"migrations_path" env:"POSTGRES_MIGRATIONS_PATH" env-upd:"" env-default:"migrations"`
}

type AlphaVantage struct {
	APIKey  string        `yaml:"api_key" env:"ALPHA_VANTAGE_KEY" env-upd:""`
	BaseURL string        `yaml:"base_url" env:"ALPHA_VANTAGE_URL" env-upd:"" env-default:"https://www.alphavantage.co"`
	Timeout time.Duration `yaml:"timeout" env:"ALPHA_VANTAGE_TIMEOUT" env-upd:"" env-default:"10s"`
}

type Quotes struct {
	Provider        string        `yaml:"provider" env:"QUOTES_PROVIDER" env-upd:"" env-default:"alphavantage"`
	Symbols         []string      `yaml:"symbols" env:"QUOTES_SYMBOLS" env-upd:"" env-separator:"," env-default:"AAPL,GOOGL,TSLA"`
	RefreshInterval time.Duration `yaml:"refresh_interval" env:"QUOTES_REFRESH_INTERVAL" env-upd:"" env-default:"5m"`
}

type Prediction struct {
	ModelPath          string  `yaml:"model_path" env:"PREDICTION_MODEL_PATH" env-upd:"" env-default:"tfjs_model/model.json"`
	HistorySize        int     `yaml:"history_size" env:"PREDICTION_HISTORY_SIZE" env-upd:"" env-default:"30"`
	FallbackMultiplier float64 `yaml:"fallback_multiplier" env:"PREDICTION_FALLBACK_MULTIPLIER" env-upd:"" env-default:"1.05"`
}

type Ledger struct {
	InitialBalance  float64        `yaml:"initial_balance" env:"LEDGER_INITIAL_BALANCE" env-upd:"" env-default:"10000"`
	WeightedAverage bool           `yaml:"weighted_average" env:"LEDGER_WEIGHTED_AVERAGE" env-upd:""`
	Seed            []SeedPosition `yaml:"seed"`
}

type SeedPosition struct {
	Symbol       string  `yaml:"symbol"`
	Quantity     int64   `yaml:"quantity"`
	AveragePrice float64 `yaml:"average_price"`
}

type Trading struct {
	PriceMode string  `yaml:"price_mode" env:"TRADING_PRICE_MODE" env-upd:"" env-default:"mock"`
	MockPrice float64 `yaml:"mock_price" env:"TRADING_MOCK_PRICE" env-upd:"" env-default:"150"`
}

type Bot struct {
	APIKey         string        `yaml:"api_key" env:"BOT_API_KEY" env-upd:""`
	Timeout        time.Duration `yaml:"timeout" env:"BOT_TIMEOUT" env-upd:"" env-default:"10s"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"BOT_REQUEST_TIMEOUT" env-upd:"" env-default:"30s"`
	SessionTTL     time.Duration `yaml:"session_ttl" env:"BOT_SESSION_TTL" env-upd:"" env-default:"24h"`
	Languages      []string      `yaml:"languages" env:"BOT_LANGUAGES" env-upd:"" env-separator:"," env-default:"en,ru"`
	DictionaryPath string        `yaml:"dictionary_path" env:"BOT_DICTIONARY_PATH" env-upd:"" env-default:"dictionary.json"`
}

func (c *Config) GetPostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Postgres.Username, c.Postgres.Password, c.Postgres.Host, c.Postgres.Port, c.Postgres.Database)
}

// JournalEnabled reports whether operations are journaled to Postgres.
func (c *Config) JournalEnabled() bool {
	return c.Postgres.Host != ""
}

func (c *Config) Validate() error {
	var errList []error

	switch c.Quotes.Provider {
	case ProviderAlphaVantage, ProviderYahoo:
	default:
		errList = append(errList, fmt.Errorf("quotes.provider: unknown provider %q", c.Quotes.Provider))
	}

	switch c.Trading.PriceMode {
	case PriceModeMock, PriceModeQuote:
	default:
		errList = append(errList, fmt.Errorf("trading.price_mode: unknown mode %q", c.Trading.PriceMode))
	}

	if c.Trading.MockPrice <= 0 {
		errList = append(errList, fmt.Errorf("trading.mock_price must be positive, got %v", c.Trading.MockPrice))
	}

	if c.Ledger.InitialBalance < 0 {
		errList = append(errList, fmt.Errorf("ledger.initial_balance must not be negative, got %v", c.Ledger.InitialBalance))
	}

	if c.Quotes.RefreshInterval <= 0 {
		errList = append(errList, fmt.Errorf("quotes.refresh_interval must be positive, got %v", c.Quotes.RefreshInterval))
	}

	return errors.Join(errList...)
}

// Load reads the YAML file at configPath, then applies environment overrides.
// A .env file in the working directory, if any, is loaded into the environment
// first. An empty configPath reads the environment only.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file loaded")
	}

	var cfg Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read env config: %w", err)
		}
	} else {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %q: %w", configPath, err)
		}

		if err := cleanenv.UpdateEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to update config from env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func GetConfig(configPath string) *Config {
	if configPath == "" {
		log.Fatal("config path is required")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	return cfg
}
