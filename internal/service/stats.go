package service

import (
	"context"
	"fmt"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

type StatsService struct {
	progressRepo ProgressRepository
}

func NewStatsService(progressRepo ProgressRepository) *StatsService {
	return &StatsService{progressRepo: progressRepo}
}

func (s *StatsService) GetStats(ctx context.Context, userID int64) (*entities.Stats, error) {
	studied, err := s.progressRepo.CountStudied(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count studied: %w", err)
	}

	repeat, err := s.progressRepo.CountRepeat(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count repeat: %w", err)
	}

	return &entities.Stats{StudiedCount: studied, RepeatCount: repeat}, nil
}
