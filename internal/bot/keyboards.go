package bot

import (
	"strconv"

	"gopkg.in/telebot.v4"
)

func (b *Bot) mainMenuKeyboard(lang string) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}

	btnDashboard := telebot.Btn{Text: b.deps.dictionary.Text(lang, btnDashboard)}
	btnPortfolio := telebot.Btn{Text: b.deps.dictionary.Text(lang, btnPortfolio)}
	btnTrade := telebot.Btn{Text: b.deps.dictionary.Text(lang, btnTrade)}
	btnHistory := telebot.Btn{Text: b.deps.dictionary.Text(lang, btnHistory)}

	rows := []telebot.Row{
		{btnDashboard, btnPortfolio},
		{btnTrade, btnHistory},
	}

	markup.Reply(rows...)
	markup.ResizeKeyboard = true
	return markup
}

func (b *Bot) languagesKeyboard() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	var rows []telebot.Row

	for _, lang := range b.cfg.Languages {
		if !b.deps.dictionary.HasLanguage(lang) {
			continue
		}

		text := b.deps.dictionary.Text(lang, btnLanguage)

		btn := markup.Data(text, cbkLanguage, lang)
		rows = append(rows, telebot.Row{btn})
	}

	markup.Inline(rows...)
	return markup
}

func (b *Bot) historyKeyboard(lang string, currentPage, pagesCount int64) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}

	rows := b.addPaginationCbkButtons(nil, lang, cbkHistoryPage, currentPage, pagesCount)
	if len(rows) == 0 {
		return nil
	}

	markup.Inline(rows...)
	return markup
}

func (b *Bot) addPaginationCbkButtons(
	rows []telebot.Row, lang, cbkName string, currentPage, pagesCount int64,
) []telebot.Row {
	markup := &telebot.ReplyMarkup{}

	if pagesCount < 2 {
		return rows
	}

	var row telebot.Row

	if currentPage > 1 {
		row = append(row, markup.Data(
			b.deps.dictionary.Text(lang, btnPreviousPage),
			cbkName,
			strconv.FormatInt(currentPage-1, 10),
		))
	}

	if currentPage < pagesCount {
		row = append(row, markup.Data(
			b.deps.dictionary.Text(lang, btnNextPage),
			cbkName,
			strconv.FormatInt(currentPage+1, 10),
		))
	}

	return append(rows, row)
}
