package service

import (
	"context"
	"fmt"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// Raw category weights of the first-stage draw.
const (
	repeatWeight = 0.1
	freshWeight  = 0.3
)

// CategoryWeigher decides which pools a user can currently draw from.
type CategoryWeigher struct {
	wordRepo     WordRepository
	progressRepo ProgressRepository
}

// NewCategoryWeigher creates a new CategoryWeigher.
func NewCategoryWeigher(wordRepo WordRepository, progressRepo ProgressRepository) *CategoryWeigher {
	return &CategoryWeigher{
		wordRepo:     wordRepo,
		progressRepo: progressRepo,
	}
}

// Weigh returns the non-empty categories for the user in the order repeat,
// difficulty 1, 2, 3, with probabilities normalized over that set.
// An empty result means the user has exhausted the catalog.
func (w *CategoryWeigher) Weigh(ctx context.Context, userID int64) ([]entities.Category, error) {
	categories := make([]entities.Category, 0, 1+len(entities.Difficulties))

	repeatCount, err := w.progressRepo.CountRepeat(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count repeat pool: %w", err)
	}
	if repeatCount > 0 {
		categories = append(categories, entities.Category{
			Kind:   entities.CategoryRepeat,
			Weight: repeatWeight,
			Size:   repeatCount,
		})
	}

	for _, d := range entities.Difficulties {
		n, err := w.wordRepo.CountFresh(ctx, userID, d)
		if err != nil {
			return nil, fmt.Errorf("count fresh pool %d: %w", d, err)
		}
		if n == 0 {
			continue
		}
		categories = append(categories, entities.Category{
			Kind:       entities.CategoryFresh,
			Difficulty: d,
			Weight:     freshWeight,
			Size:       n,
		})
	}

	normalize(categories)

	return categories, nil
}

func normalize(categories []entities.Category) {
	var total float64
	for _, c := range categories {
		total += c.Weight
	}
	if total == 0 {
		return
	}
	for i := range categories {
		categories[i].Probability = categories[i].Weight / total
	}
}
