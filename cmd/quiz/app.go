package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/catalog"
	"github.com/aliskhannn/vocab-quiz/internal/config"
	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/infra/postgres"
	"github.com/aliskhannn/vocab-quiz/internal/infra/postgres/repository"
	"github.com/aliskhannn/vocab-quiz/internal/service"
)

// app holds the services built on top of a single pool.
type app struct {
	users     *service.UserService
	selector  *service.WordSelector
	resolver  *service.AnswerResolver
	rounds    *service.RoundBuilder
	stats     *service.StatsService
	catalog   *service.CatalogService
	reminders *service.ReminderService
}

func newApp(pool *pgxpool.Pool, cfg *config.Config, log *zap.Logger) *app {
	userRepo := repository.NewUserRepository(pool)
	wordRepo := repository.NewWordRepository(pool)
	progressRepo := repository.NewProgressRepository(pool)
	tx := postgres.NewTransactor(pool)

	seed := time.Now().UnixNano()

	return &app{
		users: service.NewUserService(userRepo),
		selector: service.NewWordSelector(
			service.NewCategoryWeigher(wordRepo, progressRepo),
			wordRepo,
			progressRepo,
			tx,
			rand.New(rand.NewSource(seed)),
		),
		resolver:  service.NewAnswerResolver(progressRepo, tx),
		rounds:    service.NewRoundBuilder(wordRepo, tx, rand.New(rand.NewSource(seed+1))),
		stats:     service.NewStatsService(progressRepo),
		catalog:   service.NewCatalogService(wordRepo, tx, log, cfg.Quiz.MaxRandomWords),
		reminders: service.NewReminderService(userRepo, log, cfg.Reminders.Schedule, cfg.Reminders.BatchSize),
	}
}

func openPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB.DSN(), postgres.PoolConfig{
		MaxConns:        cfg.DB.MaxConnections,
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return pool, nil
}

func migrateUp(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	m, err := postgres.NewMigrator(cfg.DB.DSN(), log)
	if err != nil {
		return err
	}
	defer m.Close() //nolint:errcheck

	return m.Up(ctx)
}

// loadCatalog reads the seed file, falling back to the bundled catalog when path is empty.
func loadCatalog(path string) ([]entities.Word, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}
