package telegram

import (
	"context"
	"errors"
	"fmt"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/service"
)

// handleQuiz sends the next adaptive word of the user.
func (h *Handler) handleQuiz(externalID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		user, err := h.users.EnsureUser(ctx, externalID)
		if err != nil {
			return fmt.Errorf("ensure user: %w", err)
		}

		pick, err := h.selector.SelectNext(ctx, user.ID)
		if err != nil {
			if errors.Is(err, service.ErrNoWordsAvailable) {
				return h.send(newHTMLMessage(chatID, msgAllStudied))
			}
			return fmt.Errorf("select next word: %w", err)
		}

		msg := newHTMLMessage(chatID, formatPick(pick))
		msg.ReplyMarkup = buildPickKeyboard(pick)
		return h.send(msg)
	}
}

// handleRound sends a multiple-choice round of the mode ("easy", "medium", "hard").
func (h *Handler) handleRound(externalID int64, mode string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		d, ok := entities.ParseMode(mode)
		if !ok {
			return fmt.Errorf("%w: %q", service.ErrInvalidDifficulty, mode)
		}

		if _, err := h.users.EnsureUser(ctx, externalID); err != nil {
			return fmt.Errorf("ensure user: %w", err)
		}

		return h.sendRound(ctx, chatID, d)
	}
}

func (h *Handler) sendRound(ctx context.Context, chatID int64, d entities.Difficulty) error {
	round, err := h.rounds.BuildRound(ctx, d)
	if err != nil {
		if errors.Is(err, service.ErrNoWordsAvailable) {
			return h.send(newHTMLMessage(chatID, formatNoWordsOfDifficulty(d)))
		}
		return fmt.Errorf("build round: %w", err)
	}

	msg := newHTMLMessage(chatID, formatRound(round))
	msg.ReplyMarkup = buildRoundKeyboard(round)
	return h.send(msg)
}

func (h *Handler) handleStats(externalID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		user, err := h.users.EnsureUser(ctx, externalID)
		if err != nil {
			return fmt.Errorf("ensure user: %w", err)
		}

		stats, err := h.stats.GetStats(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("get stats: %w", err)
		}

		return h.send(newHTMLMessage(chatID, formatStats(stats)))
	}
}
