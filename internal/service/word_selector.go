package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/aliskhannn/vocab-quiz/internal/domain"
	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// WordSelector picks the next word for a user with a two-stage draw: a weighted
// choice of category, then a uniform choice of word inside it.
type WordSelector struct {
	weigher      *CategoryWeigher
	wordRepo     WordRepository
	progressRepo ProgressRepository
	tx           Transactor

	rng *lockedRand
}

// NewWordSelector creates a new WordSelector. A nil rng is replaced by a time-seeded one.
func NewWordSelector(
	weigher *CategoryWeigher,
	wordRepo WordRepository,
	progressRepo ProgressRepository,
	tx Transactor,
	rng *rand.Rand,
) *WordSelector {
	return &WordSelector{
		weigher:      weigher,
		wordRepo:     wordRepo,
		progressRepo: progressRepo,
		tx:           tx,
		rng:          newLockedRand(rng),
	}
}

// SelectNext returns the next word for the user, or ErrNoWordsAvailable when
// every pool is empty or the drawn pool emptied between counting and sampling.
func (s *WordSelector) SelectNext(ctx context.Context, userID int64) (*entities.WordPick, error) {
	var pick *entities.WordPick

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		categories, err := s.weigher.Weigh(ctx, userID)
		if err != nil {
			return err
		}
		if len(categories) == 0 {
			return ErrNoWordsAvailable
		}

		category := s.draw(categories)

		word, err := s.sample(ctx, userID, category)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrNoWordsAvailable
			}
			return fmt.Errorf("sample %s: %w", category, err)
		}

		pick = &entities.WordPick{
			WordID:      word.ID,
			Source:      word.Source,
			Target:      word.Target,
			WasInRepeat: category.Kind == entities.CategoryRepeat,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return pick, nil
}

// draw chooses a category with probability equal to its normalized weight,
// by binary search over the cumulative distribution.
func (s *WordSelector) draw(categories []entities.Category) entities.Category {
	cumulative := make([]float64, len(categories))
	var total float64
	for i, c := range categories {
		total += c.Probability
		cumulative[i] = total
	}

	x := s.rng.Float64() * total
	i := sort.Search(len(cumulative), func(i int) bool { return cumulative[i] > x })
	if i == len(cumulative) {
		i = len(cumulative) - 1
	}

	return categories[i]
}

func (s *WordSelector) sample(ctx context.Context, userID int64, c entities.Category) (*entities.Word, error) {
	if c.Size <= 0 {
		return nil, domain.ErrNotFound
	}

	offset := s.rng.Intn(c.Size)

	if c.Kind == entities.CategoryRepeat {
		return s.progressRepo.RepeatAt(ctx, userID, offset)
	}
	return s.wordRepo.FreshAt(ctx, userID, c.Difficulty, offset)
}
