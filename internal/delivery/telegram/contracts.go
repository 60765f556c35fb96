package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// botAPI is the part of *tgbotapi.BotAPI the handler uses.
type botAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type UserService interface {
	EnsureUser(ctx context.Context, externalID int64) (*entities.User, error)
}

type WordSelector interface {
	SelectNext(ctx context.Context, userID int64) (*entities.WordPick, error)
}

type AnswerResolver interface {
	RecordAnswer(ctx context.Context, userID, wordID int64, wasInRepeat bool) error
}

type RoundBuilder interface {
	BuildRound(ctx context.Context, d entities.Difficulty) (*entities.Round, error)
	CheckAnswer(ctx context.Context, wordID int64, selected string) (bool, error)
}

type StatsService interface {
	GetStats(ctx context.Context, userID int64) (*entities.Stats, error)
}
