package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

func buildPickKeyboard(p *entities.WordPick) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Дальше ▶️", buildPickCallback(p.WordID, p.WasInRepeat)),
		),
	)
}

// buildRoundKeyboard puts every option on its own row, in round order.
func buildRoundKeyboard(r *entities.Round) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(r.Options))
	for i, opt := range r.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(opt, buildRoundCallback(r.Difficulty, r.WordID, i)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func buildStartQuizKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Начать", buildQuizCallback()),
		),
	)
}

// optionAt returns the text of the idx-th option button of a round keyboard.
func optionAt(kb *tgbotapi.InlineKeyboardMarkup, idx int) (string, bool) {
	if kb == nil {
		return "", false
	}

	i := 0
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			if i == idx {
				return btn.Text, true
			}
			i++
		}
	}
	return "", false
}
