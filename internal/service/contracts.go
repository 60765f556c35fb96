package service

import (
	"context"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

type UserRepository interface {
	GetOrCreate(ctx context.Context, externalID int64) (*entities.User, error)
	ListWithRepeats(ctx context.Context, afterUserID int64, limit int) ([]entities.RepeatDigest, error)
}

type WordRepository interface {
	Count(ctx context.Context) (int, error)
	CountByDifficulty(ctx context.Context, d entities.Difficulty) (int, error)
	CountFresh(ctx context.Context, userID int64, d entities.Difficulty) (int, error)
	ByDifficultyAt(ctx context.Context, d entities.Difficulty, offset int) (*entities.Word, error)
	FreshAt(ctx context.Context, userID int64, d entities.Difficulty, offset int) (*entities.Word, error)
	GetByID(ctx context.Context, id int64) (*entities.Word, error)
	RandomDistractors(ctx context.Context, word *entities.Word, limit int) ([]string, error)
	RandomTargets(ctx context.Context, limit int) ([]string, error)
	InsertBatch(ctx context.Context, words []entities.Word) (int, error)
}

type ProgressRepository interface {
	CountRepeat(ctx context.Context, userID int64) (int, error)
	CountStudied(ctx context.Context, userID int64) (int, error)
	RepeatAt(ctx context.Context, userID int64, offset int) (*entities.Word, error)
	AddRepeat(ctx context.Context, userID, wordID int64) (bool, error)
	RemoveRepeat(ctx context.Context, userID, wordID int64) (bool, error)
	AddStudied(ctx context.Context, userID, wordID int64) (bool, error)
}

// Transactor runs fn inside a single database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReminderNotifier delivers repeat reminders to users.
type ReminderNotifier interface {
	SendRepeatReminder(ctx context.Context, externalID int64, repeatCount int) error
}
