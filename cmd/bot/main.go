package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/leonid6372/stock-trader/internal/app"
	"github.com/leonid6372/stock-trader/internal/bot"
	"github.com/leonid6372/stock-trader/internal/common/config"
	"github.com/leonid6372/stock-trader/pkg/dictionary"
	"github.com/leonid6372/stock-trader/pkg/log"
	"go.uber.org/zap"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "prod.yaml", "bot config path")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())

	cfg := config.GetConfig(configPath)

	if err := log.Init(cfg.Log.Level, cfg.Log.Encoding); err != nil {
		log.Fatal("log init failed", zap.Error(err))
	}

	log.Info("bot starting...", zap.String("env", cfg.Env))

	log.Info("init dictionary...")
	dictionary, err := dictionary.New(cfg.Bot.DictionaryPath)
	if err != nil {
		log.Fatal("dictionary init failed", zap.Error(err))
	}

	log.Info("init trading...")
	trader, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal("trading init failed", zap.Error(err))
	}

	log.Info("init telebot...")
	bot, err := bot.New(ctx, &cfg.Bot, trader.Controller, trader.Users, dictionary)
	if err != nil {
		log.Fatal("bot starting failed", zap.Error(err))
	}

	go func() {
		bot.Start()
	}()

	log.Info("bot starting complete",
		zap.String("provider", cfg.Quotes.Provider),
		zap.Bool("mock_predictions", trader.Engine.MockMode()),
		zap.Bool("journal", cfg.JournalEnabled()),
	)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-done
	log.Info("bot shutting down...")

	cancel()
	bot.Stop()
	trader.Close()

	if err := log.Sync(); err != nil {
		log.Error("log sync failed", zap.Error(err))
	}

	log.Info("bot shut down complete")
}
