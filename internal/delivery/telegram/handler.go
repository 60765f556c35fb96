// Package telegram serves the quiz as a Telegram bot.
package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/storage"
)

const updatesTimeout = 60

type Handler struct {
	bot      botAPI
	logger   *zap.Logger
	users    UserService
	selector WordSelector
	resolver AnswerResolver
	rounds   RoundBuilder
	stats    StatsService

	reminderMsgs *storage.ReminderMessages
}

func NewHandler(
	bot botAPI,
	logger *zap.Logger,
	users UserService,
	selector WordSelector,
	resolver AnswerResolver,
	rounds RoundBuilder,
	stats StatsService,
) *Handler {
	return &Handler{
		bot:      bot,
		logger:   logger,
		users:    users,
		selector: selector,
		resolver: resolver,
		rounds:   rounds,
		stats:    stats,

		reminderMsgs: storage.NewReminderMessages(),
	}
}

// Run polls for updates until ctx is done.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = updatesTimeout

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	if !update.Message.IsCommand() {
		h.sendText(chatID, msgUnknownCommand)
		return
	}

	switch cmd := update.Message.Command(); cmd {
	case "start":
		h.sendText(chatID, msgWelcome)
	case "help":
		h.sendText(chatID, msgHelp)
	case "quiz":
		_ = h.withErrorHandling(h.handleQuiz(userID))(ctx, chatID)
	case "easy", "medium", "hard":
		_ = h.withErrorHandling(h.handleRound(userID, cmd))(ctx, chatID)
	case "stats":
		_ = h.withErrorHandling(h.handleStats(userID))(ctx, chatID)
	default:
		h.sendText(chatID, msgUnknownCommand)
	}
}

func (h *Handler) sendText(chatID int64, text string) {
	_ = h.send(newHTMLMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message", zap.Error(err))
		return err
	}
	return nil
}
