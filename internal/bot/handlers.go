package bot

import (
	"fmt"

	"github.com/leonid6372/stock-trader/internal/common/domain"
	"github.com/leonid6372/stock-trader/internal/tradeerrs"
	"github.com/leonid6372/stock-trader/pkg/errs"
	"github.com/leonid6372/stock-trader/pkg/log"
	"go.uber.org/zap"
	"gopkg.in/telebot.v4"
)

// startHandler is the fake login: it opens an account for the sender unless
// one is already active.
func (b *Bot) startHandler(c telebot.Context) error {
	if c.Sender() == nil {
		return nil
	}

	account, err := b.account(c)
	if err != nil {
		if !isAccountNotFound(err) {
			return errs.NewStack(err)
		}

		account, err = b.openAccount(requestContext(c), c)
		if err != nil {
			return errs.NewStack(err)
		}

		log.Info("account opened",
			zap.Int64("telegram_id", account.UserID()),
			zap.String("username", c.Sender().Username),
		)
	}

	lang := account.Language()

	data := map[string]any{
		"Name":    c.Sender().FirstName,
		"Balance": money(account.Balance()),
	}

	text := b.deps.dictionary.Text(lang, msgStart, data)

	if err := c.Send(text, &telebot.SendOptions{
		ReplyMarkup: b.mainMenuKeyboard(lang),
		ParseMode:   telebot.ModeHTML,
	}); err != nil {
		return errs.NewStack(fmt.Errorf("failed to send message: %v", err))
	}

	return nil
}

func (b *Bot) selectLanguageHandler(c telebot.Context) error {
	account := b.mustAccount(c)

	text := b.deps.dictionary.Text(account.Language(), msgLanguage)

	if err := c.Send(text, &telebot.SendOptions{ReplyMarkup: b.languagesKeyboard()}); err != nil {
		return errs.NewStack(fmt.Errorf("failed to send message: %v", err))
	}

	return nil
}

func (b *Bot) setLanguageHandler(c telebot.Context) error {
	defer c.Respond()

	args := c.Args()
	if len(args) != 1 {
		return errs.NewStack(fmt.Errorf("failed to parse data: param language not found"))
	}

	langCode := args[0]
	if !b.deps.dictionary.HasLanguage(langCode) {
		return errs.NewStack(fmt.Errorf("unsupported language %q", langCode))
	}

	account := b.mustAccount(c)

	if err := b.deps.usersRepository.UpdateUserLanguage(requestContext(c), account.UserID(), langCode); err != nil {
		return errs.NewStack(fmt.Errorf("failed to update user language_code in repository: %w", err))
	}

	account.SetLanguage(langCode)

	if err := c.Delete(); err != nil {
		log.Warn("failed to delete message", zap.Error(err))
	}

	return b.dashboardHandler(c)
}

func (b *Bot) dashboardHandler(c telebot.Context) error {
	ctx := requestContext(c)
	account := b.mustAccount(c)
	lang := account.Language()

	snapshot := b.deps.controller.Snapshot(ctx)

	text := b.dashboardText(lang, snapshot)

	if err := c.Send(text, &telebot.SendOptions{
		ReplyMarkup: b.mainMenuKeyboard(lang),
		ParseMode:   telebot.ModeHTML,
	}); err != nil {
		return errs.NewStack(fmt.Errorf("failed to send message: %v", err))
	}

	return nil
}

func (b *Bot) portfolioHandler(c telebot.Context) error {
	ctx := requestContext(c)
	account := b.mustAccount(c)

	summary := b.deps.controller.Portfolio(ctx, account)

	text := b.portfolioText(account.Language(), summary)

	if err := c.Send(text, &telebot.SendOptions{ParseMode: telebot.ModeHTML}); err != nil {
		return errs.NewStack(fmt.Errorf("failed to send message: %v", err))
	}

	return nil
}

func (b *Bot) tradeHandler(c telebot.Context) error {
	ctx := requestContext(c)
	account := b.mustAccount(c)

	snapshot := b.deps.controller.Snapshot(ctx)

	prices := make([]symbolPrice, 0, len(snapshot.Quotes))
	for _, q := range snapshot.Quotes {
		prices = append(prices, symbolPrice{
			symbol: q.Symbol,
			price:  b.deps.controller.OrderPrice(ctx, q.Symbol),
		})
	}

	text := b.tradeText(account.Language(), prices)

	if err := c.Send(text, &telebot.SendOptions{ParseMode: telebot.ModeHTML}); err != nil {
		return errs.NewStack(fmt.Errorf("failed to send message: %v", err))
	}

	return nil
}

func (b *Bot) buyHandler(c telebot.Context) error {
	return b.orderHandler(c, domain.SideBuy)
}

func (b *Bot) sellHandler(c telebot.Context) error {
	return b.orderHandler(c, domain.SideSell)
}

func (b *Bot) orderHandler(c telebot.Context, side domain.Side) error {
	ctx := requestContext(c)
	account := b.mustAccount(c)
	lang := account.Language()

	order, ok := parseOrder(c.Args(), side)
	if !ok {
		text := b.deps.dictionary.Text(lang, msgOrderUsage, map[string]any{"Command": string(side)})

		if err := c.Send(text, &telebot.SendOptions{ParseMode: telebot.ModeHTML}); err != nil {
			return errs.NewStack(fmt.Errorf("failed to send message: %v", err))
		}

		return nil
	}

	var text string

	fill, err := b.deps.controller.PlaceOrder(ctx, account, order)
	switch {
	case err == nil:
		text = b.orderFilledText(lang, fill)
	case tradeerrs.IsRejection(err):
		text = b.rejectionText(lang, err, rejectionDetails{
			symbol: domain.NormalizeSymbol(order.Symbol),
			amount: b.deps.controller.OrderPrice(ctx, order.Symbol).Mul(decimalInt(order.Quantity)),
			held:   heldQuantity(account.Positions(), order.Symbol),
		}, account.Balance())
	default:
		return errs.NewStack(fmt.Errorf("failed to place order: %w", err))
	}

	if err := c.Send(text, &telebot.SendOptions{ParseMode: telebot.ModeHTML}); err != nil {
		return errs.NewStack(fmt.Errorf("failed to send message: %v", err))
	}

	return nil
}

func (b *Bot) historyHandler(c telebot.Context) error {
	if c.Callback() != nil {
		defer c.Respond()
	}

	ctx := requestContext(c)
	account := b.mustAccount(c)
	lang := account.Language()

	currentPage, err := b.getCurrentPage(c)
	if err != nil {
		return err
	}

	operations, pagesCount, err := b.deps.controller.History(ctx, account.UserID(), currentPage)
	if err != nil {
		return errs.NewStack(fmt.Errorf("failed to get history: %w", err))
	}

	if pagesCount > 0 && currentPage > pagesCount {
		currentPage = pagesCount
	}

	text := b.historyText(lang, operations, currentPage, pagesCount)

	opts := &telebot.SendOptions{
		ReplyMarkup: b.historyKeyboard(lang, currentPage, pagesCount),
		ParseMode:   telebot.ModeHTML,
	}

	if c.Callback() != nil {
		if err := c.Edit(text, opts); err != nil {
			return errs.NewStack(fmt.Errorf("failed to edit message: %v", err))
		}

		return nil
	}

	if err := c.Send(text, opts); err != nil {
		return errs.NewStack(fmt.Errorf("failed to send message: %v", err))
	}

	return nil
}
