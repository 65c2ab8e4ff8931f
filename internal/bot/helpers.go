package bot

import (
	"fmt"
	"strconv"
	"time"

	"github.com/leonid6372/stock-trader/internal/common/domain"
	"github.com/leonid6372/stock-trader/pkg/errs"
	"github.com/leonid6372/stock-trader/pkg/log"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/telebot.v4"
)

// marketRefresher keeps the market snapshot warm until the bot context is done.
func (b *Bot) marketRefresher() {
	interval := b.deps.controller.RefreshInterval()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	b.deps.controller.Refresh(b.ctx)

	for {
		select {
		case <-b.ctx.Done():
			log.Info("market refresher shutting down...")
			return

		case <-ticker.C:
			snapshot := b.deps.controller.Refresh(b.ctx)

			log.Info("market refreshed",
				zap.Int("quotes", len(snapshot.Quotes)),
				zap.Duration("next_in", interval),
			)
		}
	}
}

func (b *Bot) getCurrentPage(c telebot.Context) (int64, error) {
	args := c.Args()

	if c.Callback() != nil && len(args) == 1 {
		currentPage, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return 0, errs.NewStack(fmt.Errorf("failed to parse current page: %v", err))
		}

		if currentPage < 1 {
			currentPage = 1
		}

		return currentPage, nil
	}

	return 1, nil
}

// parseOrder reads "SYMBOL QTY" command arguments. Quantity sign and symbol
// content are left to the ledger to validate.
func parseOrder(args []string, side domain.Side) (domain.Order, bool) {
	if len(args) != 2 {
		return domain.Order{}, false
	}

	quantity, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return domain.Order{}, false
	}

	return domain.Order{
		Symbol:   args[0],
		Quantity: quantity,
		Side:     side,
	}, true
}

func heldQuantity(positions []domain.Position, symbol string) int64 {
	symbol = domain.NormalizeSymbol(symbol)

	for _, p := range positions {
		if p.Symbol == symbol {
			return p.Quantity
		}
	}

	return 0
}

func decimalInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
