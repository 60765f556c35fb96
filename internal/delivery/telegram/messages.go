package telegram

import (
	"fmt"
	"html"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

const (
	msgWelcome = "Привет! Я помогу выучить английские слова.\n\n" +
		"/quiz — следующее слово\n" +
		"/easy, /medium, /hard — тест с вариантами ответа\n" +
		"/stats — ваш прогресс"
	msgHelp = "<b>Как это работает</b>\n\n" +
		"/quiz показывает слово с переводом под спойлером. Каждое новое слово попадает в повторение, " +
		"а слово из повторения после ответа считается выученным.\n\n" +
		"/easy, /medium, /hard — выберите правильный перевод из четырёх вариантов.\n" +
		"/stats — сколько слов выучено и сколько ждут повторения."
	msgUnknownCommand = "Неизвестная команда. Список команд: /help"
	msgInternalError  = "Что‑то пошло не так. Попробуйте позже."
	msgAllStudied     = "🎉 Вы прошли все слова каталога!"
	msgCorrect        = "✅ Верно!"
	msgWrong          = "❌ Неверно."
)

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

// formatPick renders an adaptive word with its translation hidden under a spoiler.
func formatPick(p *entities.WordPick) string {
	text := fmt.Sprintf("<b>%s</b> — <tg-spoiler>%s</tg-spoiler>",
		html.EscapeString(p.Source),
		html.EscapeString(p.Target),
	)
	if p.WasInRepeat {
		text = "🔁 Повторение\n\n" + text
	}
	return text
}

func formatRound(r *entities.Round) string {
	return fmt.Sprintf("Выберите перевод (%s):\n\n<b>%s</b>", r.Difficulty.Mode(), html.EscapeString(r.Source))
}

// formatVerdict is the edited round message once an option has been chosen.
func formatVerdict(source, selected string, correct bool) string {
	verdict := msgWrong
	if correct {
		verdict = msgCorrect
	}
	return fmt.Sprintf("<b>%s</b> → %s\n\n%s", html.EscapeString(source), html.EscapeString(selected), verdict)
}

func formatStats(s *entities.Stats) string {
	return fmt.Sprintf("📊 <b>Прогресс</b>\n\nВыучено: %d\nНа повторении: %d", s.StudiedCount, s.RepeatCount)
}

func formatNoWordsOfDifficulty(d entities.Difficulty) string {
	return fmt.Sprintf("Слов уровня %s пока нет.", d.Mode())
}

func formatRepeatReminder(repeatCount int) string {
	return fmt.Sprintf("⏰ На повторении ждут слов: %d. Самое время их закрепить!", repeatCount)
}
