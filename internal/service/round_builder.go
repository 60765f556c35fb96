package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/samber/lo"

	"github.com/aliskhannn/vocab-quiz/internal/domain"
	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

const (
	optionsCount    = 4
	distractorCount = optionsCount - 1
)

// RoundBuilder builds multiple-choice rounds for the difficulty modes.
// Rounds do not depend on the user's progress.
type RoundBuilder struct {
	wordRepo WordRepository
	tx       Transactor

	rng *lockedRand
}

// NewRoundBuilder creates a new RoundBuilder. A nil rng is replaced by a time-seeded one.
func NewRoundBuilder(wordRepo WordRepository, tx Transactor, rng *rand.Rand) *RoundBuilder {
	return &RoundBuilder{
		wordRepo: wordRepo,
		tx:       tx,
		rng:      newLockedRand(rng),
	}
}

// BuildRound samples a word of the difficulty and three distractor translations,
// and returns them as four shuffled options.
func (b *RoundBuilder) BuildRound(ctx context.Context, d entities.Difficulty) (*entities.Round, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDifficulty, d)
	}

	var round *entities.Round

	err := b.tx.WithinTx(ctx, func(ctx context.Context) error {
		n, err := b.wordRepo.CountByDifficulty(ctx, d)
		if err != nil {
			return fmt.Errorf("count words: %w", err)
		}
		if n == 0 {
			return ErrNoWordsAvailable
		}

		word, err := b.wordRepo.ByDifficultyAt(ctx, d, b.rng.Intn(n))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrNoWordsAvailable
			}
			return fmt.Errorf("sample word: %w", err)
		}

		distractors, err := b.wordRepo.RandomDistractors(ctx, word, distractorCount)
		if err != nil {
			return fmt.Errorf("sample distractors: %w", err)
		}

		distractors = lo.Uniq(lo.Without(distractors, word.Target))
		if len(distractors) < distractorCount {
			return ErrNoWordsAvailable
		}

		round = &entities.Round{
			WordID:     word.ID,
			Source:     word.Source,
			Options:    b.buildOptions(word.Target, distractors[:distractorCount]),
			Difficulty: d,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return round, nil
}

// buildOptions returns the correct answer and the distractors in uniformly random order.
func (b *RoundBuilder) buildOptions(correct string, distractors []string) []string {
	options := make([]string, 0, len(distractors)+1)
	options = append(options, distractors...)
	options = append(options, correct)

	b.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return options
}

// CheckAnswer reports whether selected is exactly the target text of the word.
// Unknown words are answered with false.
func (b *RoundBuilder) CheckAnswer(ctx context.Context, wordID int64, selected string) (bool, error) {
	word, err := b.wordRepo.GetByID(ctx, wordID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get word: %w", err)
	}

	return word.Target == selected, nil
}
