package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/leonid6372/stock-trader/internal/app"
	"github.com/leonid6372/stock-trader/internal/common/config"
	"github.com/leonid6372/stock-trader/internal/common/domain"
	"github.com/leonid6372/stock-trader/internal/common/repositories/memory"
	"github.com/leonid6372/stock-trader/internal/quotes"
	"github.com/leonid6372/stock-trader/internal/tradeerrs"
	"github.com/leonid6372/stock-trader/internal/trading"
	"github.com/leonid6372/stock-trader/pkg/goosemigrate"
	"github.com/leonid6372/stock-trader/pkg/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var configPath string
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:           "tradectl",
		Short:         "Operator tools for the paper trading desk",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}

			level := loaded.Log.Level
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				level = "debug"
			}
			if err := log.Init(level, loaded.Log.Encoding); err != nil {
				return fmt.Errorf("log init failed: %w", err)
			}

			*cfg = *loaded
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "prod.yaml", "config file path, empty to read the environment only")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newQuotesCmd(cfg))
	rootCmd.AddCommand(newPredictCmd(cfg))
	rootCmd.AddCommand(newMigrateCmd(cfg))
	rootCmd.AddCommand(newSimulateCmd(cfg))

	return rootCmd
}

func newQuotesCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "quotes [SYMBOL...]",
		Short: "Show quotes and predictions, the configured watchlist by default",
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := app.NewProvider(cfg)
			if err != nil {
				return err
			}

			symbols := args
			if len(symbols) == 0 {
				symbols = cfg.Quotes.Symbols
			}

			engine := app.NewEngine(cfg, provider)
			source := quotes.NewSource(provider)

			snapshot := &domain.MarketSnapshot{Predictions: map[string]domain.Prediction{}}
			snapshot.Quotes = source.GetQuotes(cmd.Context(), symbols)
			for _, q := range snapshot.Quotes {
				snapshot.Predictions[q.Symbol] = engine.Predict(cmd.Context(), q.Symbol, q.Price)
			}

			fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render("Market"))
			fmt.Fprintln(cmd.OutOrStdout(), renderQuotes(snapshot))

			return nil
		},
	}
}

func newPredictCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "predict SYMBOL PRICE",
		Short: "Predict the next price of SYMBOL from a current PRICE",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", args[1], err)
			}

			provider, err := app.NewProvider(cfg)
			if err != nil {
				return err
			}

			prediction := app.NewEngine(cfg, provider).Predict(cmd.Context(), domain.NormalizeSymbol(args[0]), price)

			fmt.Fprintln(cmd.OutOrStdout(), renderPrediction(price, prediction))

			return nil
		},
	}
}

func newMigrateCmd(cfg *config.Config) *cobra.Command {
	migrator := func() (*goosemigrate.Migrator, error) {
		if !cfg.JournalEnabled() {
			return nil, errors.New("postgres.host is not set")
		}

		return goosemigrate.NewMigrator(cfg.GetPostgresURL(), cfg.Postgres.MigrationsPath, cfg.Postgres.Schema), nil
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the operations journal schema",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := migrator()
			if err != nil {
				return err
			}
			if err := m.Up(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("migrations applied"))
			return nil
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the latest migration and drop the schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := migrator()
			if err != nil {
				return err
			}
			if err := m.Down(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("migrations rolled back"))
			return nil
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := migrator()
			if err != nil {
				return err
			}

			version, err := m.Version(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "version %d\n", version)
			return nil
		},
	})

	return migrateCmd
}

func newSimulateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "simulate SIDE:SYMBOL:QTY...",
		Short: "Replay orders against a fresh account and print the result",
		Long: `Replay orders against a freshly seeded account, offline.
Quotes are simulated and the journal is kept in memory.
Example: tradectl simulate buy:AAPL:10 sell:AAPL:5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orders := make([]domain.Order, 0, len(args))
			for _, arg := range args {
				order, err := parseOrderArg(arg)
				if err != nil {
					return err
				}
				orders = append(orders, order)
			}

			controller := trading.NewController(cfg,
				quotes.NewSource(nil),
				app.NewEngine(cfg, nil),
				memory.NewOperationsRepository(),
			)
			account := controller.OpenAccount(0)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("Orders"))

			for _, order := range orders {
				fill, err := controller.PlaceOrder(cmd.Context(), account, order)
				if err != nil {
					if !tradeerrs.IsRejection(err) {
						return err
					}
					fmt.Fprintln(out, renderRejection(order, err))
					continue
				}
				fmt.Fprintln(out, renderFill(fill))
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, titleStyle.Render("Portfolio"))
			fmt.Fprintln(out, renderPortfolio(controller.Portfolio(cmd.Context(), account)))

			return nil
		},
	}
}

// parseOrderArg reads "side:symbol:quantity".
func parseOrderArg(arg string) (domain.Order, error) {
	parts := strings.Split(arg, ":")
	if len(parts) != 3 {
		return domain.Order{}, fmt.Errorf("invalid order %q, want side:symbol:quantity", arg)
	}

	side := domain.Side(strings.ToLower(parts[0]))
	if !side.Valid() {
		return domain.Order{}, fmt.Errorf("invalid order %q: unknown side %q", arg, parts[0])
	}

	quantity, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return domain.Order{}, fmt.Errorf("invalid order %q: %w", arg, err)
	}

	return domain.Order{Symbol: parts[1], Quantity: quantity, Side: side}, nil
}
