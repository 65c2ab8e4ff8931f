package bot

import (
	"context"
	"fmt"

	"github.com/leonid6372/stock-trader/pkg/dictionary"
	"github.com/leonid6372/stock-trader/pkg/log"
	"go.uber.org/zap"
	"gopkg.in/telebot.v4"
)

const (
	ctxContext = "context"
	ctxAccount = "account"
)

func (b *Bot) recoveryMiddleware(next telebot.HandlerFunc) telebot.HandlerFunc {
	return func(c telebot.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("recovered from panic",
					zap.Any("panic", r),
					zap.Stack("stack"),
				)

				err = b.defaultErrorHandler(c)
			}
		}()

		return next(c)
	}
}

func (b *Bot) defaultErrorMiddleware(next telebot.HandlerFunc) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		if err := next(c); err != nil {
			log.Error("unknown error", zap.Error(err))
			return b.defaultErrorHandler(c)
		}

		return nil
	}
}

// timeoutMiddleware bounds each update by the request timeout and exposes the
// context to handlers under ctxContext.
func (b *Bot) timeoutMiddleware(next telebot.HandlerFunc) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		ctx, cancel := context.WithTimeout(b.ctx, b.cfg.RequestTimeout)
		defer cancel()

		c.Set(ctxContext, ctx)

		return next(c)
	}
}

func (b *Bot) accountMiddleware(next telebot.HandlerFunc) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		account, err := b.account(c)
		if err != nil {
			if isAccountNotFound(err) {
				log.Debug("update without account", zap.Error(err))
				return b.loginRequiredHandler(c)
			}

			return err
		}

		c.Set(ctxAccount, account)

		return next(c)
	}
}

func (b *Bot) defaultErrorHandler(c telebot.Context) error {
	lang := dictionary.DefaultLanguage
	if account, err := b.account(c); err == nil {
		lang = account.Language()
	}

	text := b.deps.dictionary.Text(lang, msgDefaultError)

	if err := c.Send(text); err != nil {
		return fmt.Errorf("failed to send message: %v", err)
	}

	return nil
}

func (b *Bot) loginRequiredHandler(c telebot.Context) error {
	if c.Callback() != nil {
		defer c.Respond()
	}

	text := b.deps.dictionary.Text(dictionary.DefaultLanguage, msgLoginRequired)

	if err := c.Send(text); err != nil {
		return fmt.Errorf("failed to send message: %v", err)
	}

	return nil
}

func requestContext(c telebot.Context) context.Context {
	if ctx, ok := c.Get(ctxContext).(context.Context); ok {
		return ctx
	}

	return context.Background()
}
