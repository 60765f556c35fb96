package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// SendRepeatReminder tells the user how many words wait in the repeat pool and
// deletes the previous reminder if it is still around.
// Private chats share their id with the user, so externalID is the chat.
func (h *Handler) SendRepeatReminder(_ context.Context, externalID int64, repeatCount int) error {
	msg := newHTMLMessage(externalID, formatRepeatReminder(repeatCount))
	msg.ReplyMarkup = buildStartQuizKeyboard()

	sent, err := h.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("send reminder to %d: %w", externalID, err)
	}

	if prev, ok := h.reminderMsgs.Swap(externalID, sent.MessageID); ok {
		if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(externalID, prev)); err != nil {
			h.logger.Debug("failed to delete previous reminder",
				zap.Int64("user_id", externalID),
				zap.Error(err),
			)
		}
	}

	return nil
}
