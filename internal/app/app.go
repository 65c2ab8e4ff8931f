// Package app assembles the trading components from config for the binaries.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/leonid6372/stock-trader/internal/common/clients/alphavantage"
	"github.com/leonid6372/stock-trader/internal/common/clients/yahoo"
	"github.com/leonid6372/stock-trader/internal/common/config"
	"github.com/leonid6372/stock-trader/internal/common/domain"
	"github.com/leonid6372/stock-trader/internal/common/repositories/memory"
	"github.com/leonid6372/stock-trader/internal/common/repositories/postgres"
	"github.com/leonid6372/stock-trader/internal/prediction"
	"github.com/leonid6372/stock-trader/internal/quotes"
	"github.com/leonid6372/stock-trader/internal/tradeerrs"
	"github.com/leonid6372/stock-trader/internal/trading"
	"github.com/leonid6372/stock-trader/pkg/goosemigrate"
	"github.com/leonid6372/stock-trader/pkg/log"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type App struct {
	Provider   domain.MarketData
	Quotes     *quotes.Source
	Engine     *prediction.Engine
	Operations domain.OperationsRepository
	Users      domain.UsersRepository
	Controller *trading.Controller

	pool *pgxpool.Pool
}

// New wires the provider, quote source, prediction engine, repositories and
// controller. A model that fails to load leaves the engine in mock mode.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}

	a := &App{
		Provider: provider,
		Quotes:   quotes.NewSource(provider),
		Engine:   NewEngine(cfg, provider),
	}

	if cfg.JournalEnabled() {
		log.Info("init postgres...")
		pool, err := pgxpool.New(ctx, cfg.GetPostgresURL())
		if err != nil {
			return nil, fmt.Errorf("postgres init failed: %w", err)
		}

		if err := goosemigrate.NewMigrator(cfg.GetPostgresURL(), cfg.Postgres.MigrationsPath, cfg.Postgres.Schema).Up(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations up failed: %w", err)
		}

		a.pool = pool
		a.Operations = postgres.NewOperationsRepository(pool)
		a.Users = postgres.NewUsersRepository(pool)
	} else {
		log.Info("postgres host is not set, operations journal is kept in memory")
		a.Operations = memory.NewOperationsRepository()
		a.Users = memory.NewUsersRepository()
	}

	a.Controller = trading.NewController(cfg, a.Quotes, a.Engine, a.Operations)

	return a, nil
}

func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

// NewProvider returns the market data client selected by quotes.provider.
func NewProvider(cfg *config.Config) (domain.MarketData, error) {
	switch cfg.Quotes.Provider {
	case config.ProviderAlphaVantage:
		if cfg.AlphaVantage.APIKey == "" {
			log.Warn("alpha vantage api key is not set, quotes will be simulated")
		}
		return alphavantage.NewClient(cfg.AlphaVantage.BaseURL, cfg.AlphaVantage.APIKey, cfg.AlphaVantage.Timeout), nil
	case config.ProviderYahoo:
		return yahoo.NewClient(yahoo.DefaultLookback), nil
	default:
		return nil, fmt.Errorf("%w: %q", tradeerrs.ErrUnknownProvider, cfg.Quotes.Provider)
	}
}

func NewEngine(cfg *config.Config, history domain.HistoryProvider) *prediction.Engine {
	opts := []prediction.Option{
		prediction.WithHistorySize(cfg.Prediction.HistorySize),
		prediction.WithFallback(prediction.NewOptimisticFallback(decimal.NewFromFloat(cfg.Prediction.FallbackMultiplier))),
	}

	model, err := prediction.LoadModel(cfg.Prediction.ModelPath)
	if err != nil {
		log.Warn("model load failed, predictions run in mock mode",
			zap.String("path", cfg.Prediction.ModelPath),
			zap.Error(err),
		)

		return prediction.NewEngine(nil, history, opts...)
	}

	log.Info("model loaded", zap.String("path", cfg.Prediction.ModelPath), zap.Int("input_size", model.InputSize()))

	return prediction.NewEngine(model, history, opts...)
}
