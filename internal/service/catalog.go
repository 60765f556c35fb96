package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/catalog"
	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

const defaultMaxRandomWords = 100

// CatalogService owns the word catalog: seeding and filler samples.
type CatalogService struct {
	wordRepo       WordRepository
	tx             Transactor
	logger         *zap.Logger
	maxRandomWords int
}

// NewCatalogService creates a new CatalogService. maxRandomWords caps RandomTargets.
func NewCatalogService(wordRepo WordRepository, tx Transactor, logger *zap.Logger, maxRandomWords int) *CatalogService {
	if maxRandomWords <= 0 {
		maxRandomWords = defaultMaxRandomWords
	}
	return &CatalogService{
		wordRepo:       wordRepo,
		tx:             tx,
		logger:         logger,
		maxRandomWords: maxRandomWords,
	}
}

// SeedIfEmpty inserts words when the catalog has none and returns how many were inserted.
// A populated catalog is left untouched.
func (s *CatalogService) SeedIfEmpty(ctx context.Context, words []entities.Word) (int, error) {
	if err := catalog.ValidateAll(words); err != nil {
		return 0, err
	}

	var inserted int

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		n, err := s.wordRepo.Count(ctx)
		if err != nil {
			return fmt.Errorf("count catalog: %w", err)
		}
		if n > 0 {
			s.logger.Info("catalog already seeded", zap.Int("words", n))
			return nil
		}

		inserted, err = s.wordRepo.InsertBatch(ctx, words)
		if err != nil {
			return fmt.Errorf("insert catalog: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if inserted > 0 {
		s.logger.Info("catalog seeded", zap.Int("words", inserted))
	}

	return inserted, nil
}

// RandomTargets returns up to count target texts sampled uniformly from the catalog.
// count must be positive; values above the configured maximum are capped.
func (s *CatalogService) RandomTargets(ctx context.Context, count int) ([]string, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	if count > s.maxRandomWords {
		count = s.maxRandomWords
	}

	targets, err := s.wordRepo.RandomTargets(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("random targets: %w", err)
	}
	if targets == nil {
		targets = []string{}
	}

	return targets, nil
}
