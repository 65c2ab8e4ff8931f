package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/leonid6372/stock-trader/internal/common/config"
	"github.com/leonid6372/stock-trader/internal/common/domain"
	"github.com/leonid6372/stock-trader/internal/tradeerrs"
	"github.com/leonid6372/stock-trader/internal/trading"
	"github.com/leonid6372/stock-trader/pkg/dictionary"
	"github.com/leonid6372/stock-trader/pkg/errs"
	"github.com/leonid6372/stock-trader/pkg/log"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"gopkg.in/telebot.v4"
)

type Bot struct {
	Telebot  *telebot.Bot
	cfg      *config.Bot
	accounts *cache.Cache // map[telegram_id]*trading.Account

	ctx  context.Context
	deps *Dependencies
}

type Dependencies struct {
	controller *trading.Controller
	dictionary *dictionary.Dictionary

	usersRepository domain.UsersRepository
}

func New(ctx context.Context,
	cfg *config.Bot,
	controller *trading.Controller,
	usersRepository domain.UsersRepository,
	dictionary *dictionary.Dictionary,
) (*Bot, error) {
	b, err := telebot.NewBot(telebot.Settings{
		Token:  cfg.APIKey,
		Poller: &telebot.LongPoller{Timeout: cfg.Timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("telebot.NewBot: %w", err)
	}

	bot := &Bot{
		Telebot:  b,
		cfg:      cfg,
		accounts: cache.New(cfg.SessionTTL, cfg.SessionTTL/2),
		ctx:      ctx,
		deps: &Dependencies{
			controller:      controller,
			dictionary:      dictionary,
			usersRepository: usersRepository,
		},
	}

	if err := bot.setCommands(); err != nil {
		return nil, fmt.Errorf("bot.setCommands: %w", err)
	}

	bot.setupMiddlewares()
	bot.setupRoutes()

	return bot, nil
}

func (b *Bot) setCommands() error {
	commands := []telebot.Command{
		{Text: "start", Description: "📈 Open a paper trading account"},
		{Text: "dashboard", Description: "📊 Quotes and forecasts"},
		{Text: "portfolio", Description: "💼 Balance and positions"},
		{Text: "buy", Description: "🛒 Buy: /buy SYMBOL QTY"},
		{Text: "sell", Description: "💸 Sell: /sell SYMBOL QTY"},
		{Text: "history", Description: "🧾 Operations history"},
		{Text: "language", Description: "🌎 Choose language"},
	}

	if err := b.Telebot.SetCommands(commands); err != nil {
		return errs.NewStack(err)
	}

	return nil
}

func (b *Bot) setupMiddlewares() {
	b.Telebot.Use(
		b.recoveryMiddleware,
		b.defaultErrorMiddleware,
		b.timeoutMiddleware,
	)
}

func (b *Bot) setupRoutes() {
	b.Telebot.Handle("/start", b.startHandler)

	// Everything else needs an open account.
	session := b.Telebot.Group()
	session.Use(b.accountMiddleware)

	session.Handle("/language", b.selectLanguageHandler)
	session.Handle("/dashboard", b.dashboardHandler)
	session.Handle("/portfolio", b.portfolioHandler)
	session.Handle("/trade", b.tradeHandler)
	session.Handle("/buy", b.buyHandler)
	session.Handle("/sell", b.sellHandler)
	session.Handle("/history", b.historyHandler)

	for _, lang := range b.cfg.Languages {
		session.Handle(&telebot.Btn{Text: b.deps.dictionary.Text(lang, btnDashboard)}, b.dashboardHandler)
		session.Handle(&telebot.Btn{Text: b.deps.dictionary.Text(lang, btnPortfolio)}, b.portfolioHandler)
		session.Handle(&telebot.Btn{Text: b.deps.dictionary.Text(lang, btnTrade)}, b.tradeHandler)
		session.Handle(&telebot.Btn{Text: b.deps.dictionary.Text(lang, btnHistory)}, b.historyHandler)
	}

	session.Handle(&telebot.Btn{Unique: cbkLanguage}, b.setLanguageHandler)
	session.Handle(&telebot.Btn{Unique: cbkHistoryPage}, b.historyHandler)
}

// Start runs the market refresher and blocks polling updates until Stop.
func (b *Bot) Start() {
	go b.marketRefresher()

	b.Telebot.Start()
}

func (b *Bot) Stop() {
	b.Telebot.Stop()
}

// account returns the sender's session, extending its TTL.
func (b *Bot) account(c telebot.Context) (*trading.Account, error) {
	sender := c.Sender()
	if sender == nil {
		return nil, fmt.Errorf("%w: update has no sender", tradeerrs.ErrAccountNotFound)
	}

	raw, ok := b.accounts.Get(accountKey(sender.ID))
	if !ok {
		return nil, fmt.Errorf("%w: telegram id %d", tradeerrs.ErrAccountNotFound, sender.ID)
	}

	b.accounts.SetDefault(accountKey(sender.ID), raw)

	return raw.(*trading.Account), nil
}

func (b *Bot) mustAccount(c telebot.Context) *trading.Account {
	account, ok := c.Get(ctxAccount).(*trading.Account)
	if !ok {
		log.Panic("account not found in context", zap.Int64("telegram_id", c.Sender().ID))
	}

	return account
}

// openAccount starts a session for the sender, restoring the language saved
// on a previous login.
func (b *Bot) openAccount(ctx context.Context, c telebot.Context) (*trading.Account, error) {
	sender := c.Sender()
	account := b.deps.controller.OpenAccount(sender.ID)

	if b.deps.dictionary.HasLanguage(sender.LanguageCode) {
		account.SetLanguage(sender.LanguageCode)
	}

	user, err := b.deps.usersRepository.GetUserByID(ctx, sender.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID from repository: %w", err)
	}
	if user != nil && b.deps.dictionary.HasLanguage(user.LanguageCode) {
		account.SetLanguage(user.LanguageCode)
	}

	if err := b.deps.usersRepository.SaveUser(ctx, &domain.User{
		ID:           sender.ID,
		Username:     sender.Username,
		FirstName:    sender.FirstName,
		LastName:     sender.LastName,
		LanguageCode: account.Language(),
	}); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	b.accounts.SetDefault(accountKey(sender.ID), account)

	return account, nil
}

func accountKey(telegramID int64) string {
	return fmt.Sprintf("%d", telegramID)
}

func isAccountNotFound(err error) bool {
	return errors.Is(err, tradeerrs.ErrAccountNotFound)
}
