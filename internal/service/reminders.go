package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

const (
	defaultReminderSchedule  = "0 18 * * *"
	defaultReminderBatchSize = 100
	maxConcurrentReminders   = 10
)

var errNotifierNotSet = errors.New("notifier not set")

// ReminderService periodically reminds users about words waiting in their repeat pool.
type ReminderService struct {
	userRepo  UserRepository
	notifier  ReminderNotifier
	logger    *zap.Logger
	schedule  string
	batchSize int
}

// NewReminderService creates a new reminder service. Empty schedule and
// non-positive batchSize fall back to defaults.
func NewReminderService(userRepo UserRepository, logger *zap.Logger, schedule string, batchSize int) *ReminderService {
	if schedule == "" {
		schedule = defaultReminderSchedule
	}
	if batchSize <= 0 {
		batchSize = defaultReminderBatchSize
	}
	return &ReminderService{
		userRepo:  userRepo,
		logger:    logger,
		schedule:  schedule,
		batchSize: batchSize,
	}
}

// SetNotifier sets the notifier (called after the delivery handler is created).
func (s *ReminderService) SetNotifier(notifier ReminderNotifier) {
	s.notifier = notifier
}

// Start runs the cron scheduler until ctx is done.
func (s *ReminderService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.schedule, func() {
		s.logger.Info("cron triggered: sending repeat reminders")
		if err := s.SendReminders(ctx); err != nil {
			s.logger.Error("failed to send repeat reminders", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add cron job %q: %w", s.schedule, err)
	}

	c.Start()
	s.logger.Info("reminder service started", zap.String("schedule", s.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("reminder service stopped")

	return nil
}

// SendReminders notifies every user with a non-empty repeat pool, batch by batch.
// A failed delivery is logged and does not stop the run.
func (s *ReminderService) SendReminders(ctx context.Context) error {
	if s.notifier == nil {
		return errNotifierNotSet
	}

	var (
		after     int64
		totalSent int
	)

	for {
		digests, err := s.userRepo.ListWithRepeats(ctx, after, s.batchSize)
		if err != nil {
			return fmt.Errorf("list users with repeats: %w", err)
		}
		if len(digests) == 0 {
			break
		}

		totalSent += s.processBatch(ctx, digests)

		if len(digests) < s.batchSize {
			break
		}
		after = digests[len(digests)-1].UserID
	}

	s.logger.Info("repeat reminders processed", zap.Int("total_sent", totalSent))

	return nil
}

// processBatch sends a batch of reminders concurrently and returns how many succeeded.
func (s *ReminderService) processBatch(ctx context.Context, digests []entities.RepeatDigest) int {
	sem := make(chan struct{}, maxConcurrentReminders)
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		sent int
	)

	for _, d := range digests {
		wg.Add(1)
		sem <- struct{}{}

		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			if err := s.notifier.SendRepeatReminder(ctx, d.ExternalID, d.RepeatCount); err != nil {
				s.logger.Error("failed to send repeat reminder",
					zap.Int64("user_id", d.UserID),
					zap.Error(err),
				)
				return
			}

			mu.Lock()
			sent++
			mu.Unlock()
		}()
	}

	wg.Wait()
	return sent
}
