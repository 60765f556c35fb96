package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Remove the user's "clock".
	defer func() {
		if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			h.logger.Warn("callback answer error", zap.Error(err))
		}
	}()

	if cb.Message == nil || cb.From == nil {
		return
	}

	chatID := cb.Message.Chat.ID
	cd := decodeCallback(cb.Data)

	switch cd.Action {
	case actionPick:
		_ = h.withErrorHandling(h.handlePickCallback(cb, cd))(ctx, chatID)
	case actionRound:
		_ = h.withErrorHandling(h.handleRoundCallback(cb, cd))(ctx, chatID)
	case actionQuiz:
		// A tapped reminder has served its purpose; the next one must not delete it.
		h.reminderMsgs.Take(cb.From.ID)
		_ = h.withErrorHandling(h.handleQuiz(cb.From.ID))(ctx, chatID)
	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
	}
}

// handlePickCallback records the answer to an adaptive word and sends the next one.
func (h *Handler) handlePickCallback(cb *tgbotapi.CallbackQuery, cd callbackData) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		wordID, wasInRepeat, err := parsePickCallback(cd)
		if err != nil {
			h.logger.Warn("invalid pick callback", zap.String("data", cd.Raw))
			return nil
		}

		user, err := h.users.EnsureUser(ctx, cb.From.ID)
		if err != nil {
			return fmt.Errorf("ensure user: %w", err)
		}

		if err := h.resolver.RecordAnswer(ctx, user.ID, wordID, wasInRepeat); err != nil {
			return fmt.Errorf("record answer: %w", err)
		}

		// Drop the button so the same answer is not submitted twice.
		edit := tgbotapi.NewEditMessageReplyMarkup(chatID, cb.Message.MessageID,
			tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}})
		_ = h.send(edit)

		return h.handleQuiz(cb.From.ID)(ctx, chatID)
	}
}

// handleRoundCallback checks the chosen option, shows the verdict and sends the
// next round of the same difficulty.
func (h *Handler) handleRoundCallback(cb *tgbotapi.CallbackQuery, cd callbackData) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		ans, err := parseRoundCallback(cd)
		if err != nil {
			h.logger.Warn("invalid round callback", zap.String("data", cd.Raw))
			return nil
		}

		selected, ok := optionAt(cb.Message.ReplyMarkup, ans.OptionIdx)
		if !ok {
			h.logger.Warn("round option not found", zap.String("data", cd.Raw))
			return nil
		}

		correct, err := h.rounds.CheckAnswer(ctx, ans.WordID, selected)
		if err != nil {
			return fmt.Errorf("check answer: %w", err)
		}

		edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID,
			formatVerdict(roundSource(cb.Message.Text), selected, correct))
		edit.ParseMode = tgbotapi.ModeHTML
		_ = h.send(edit)

		return h.sendRound(ctx, chatID, ans.Difficulty)
	}
}

// roundSource recovers the asked word from a round message: it is the last line.
func roundSource(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
