package service

import (
	"context"
	"fmt"
)

// AnswerResolver moves words between the repeat and studied pools.
type AnswerResolver struct {
	progressRepo ProgressRepository
	tx           Transactor
}

func NewAnswerResolver(progressRepo ProgressRepository, tx Transactor) *AnswerResolver {
	return &AnswerResolver{progressRepo: progressRepo, tx: tx}
}

// RecordAnswer applies the user's answer atomically.
//
// A word answered from the repeat pool leaves it and becomes studied. A word
// answered from a fresh pool enters the repeat pool whatever the answer was, so
// every word passes through repeat once before it can be studied.
func (r *AnswerResolver) RecordAnswer(ctx context.Context, userID, wordID int64, wasInRepeat bool) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context) error {
		if !wasInRepeat {
			if _, err := r.progressRepo.AddRepeat(ctx, userID, wordID); err != nil {
				return fmt.Errorf("mark for repeat: %w", err)
			}
			return nil
		}

		if _, err := r.progressRepo.RemoveRepeat(ctx, userID, wordID); err != nil {
			return fmt.Errorf("unmark repeat: %w", err)
		}
		if _, err := r.progressRepo.AddStudied(ctx, userID, wordID); err != nil {
			return fmt.Errorf("mark studied: %w", err)
		}
		return nil
	})
}
