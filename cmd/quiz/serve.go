package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/config"
	"github.com/aliskhannn/vocab-quiz/internal/delivery/rest"
	"github.com/aliskhannn/vocab-quiz/internal/delivery/telegram"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API, and the Telegram bot when a token is configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg, log)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if err := migrateUp(ctx, cfg, log); err != nil {
		return err
	}

	pool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	a := newApp(pool, cfg, log)

	words, err := loadCatalog(cfg.Catalog.SeedPath)
	if err != nil {
		return err
	}
	if _, err := a.catalog.SeedIfEmpty(ctx, words); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	handler := rest.NewHandler(a.users, a.selector, a.resolver, a.rounds, a.stats, a.catalog, log)
	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      rest.NewRouter(handler, rest.NewHealthHandler(pool, cfg.Server.Version), log, cfg.CORS.AllowedOrigins),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 3)

	go func() {
		log.Info("http server started", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	if cfg.TelegramEnabled() {
		if err := startBot(ctx, cfg, log, a, errCh); err != nil {
			return err
		}
	} else {
		log.Info("telegram token not set, bot and reminders disabled")
	}

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		log.Error("component failed, shutting down", zap.Error(err))
		shutdown(srv, cfg, log)
		return err
	}

	shutdown(srv, cfg, log)
	return nil
}

func shutdown(srv *http.Server, cfg *config.Config, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("http server shutdown", zap.Error(err))
	}
}

func startBot(ctx context.Context, cfg *config.Config, log *zap.Logger, a *app, errCh chan<- error) error {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return fmt.Errorf("telegram bot: %w", err)
	}
	log.Info("authorized on telegram", zap.String("username", bot.Self.UserName))

	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Запустить бота"},
		{Command: "quiz", Description: "Следующее слово"},
		{Command: "easy", Description: "Тест: лёгкие слова"},
		{Command: "medium", Description: "Тест: средние слова"},
		{Command: "hard", Description: "Тест: сложные слова"},
		{Command: "stats", Description: "Показать прогресс"},
		{Command: "help", Description: "Помощь"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		log.Warn("failed to set bot commands", zap.Error(err))
	}

	handler := telegram.NewHandler(bot, log, a.users, a.selector, a.resolver, a.rounds, a.stats)
	a.reminders.SetNotifier(handler)

	go func() {
		if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- fmt.Errorf("telegram handler: %w", err)
		}
	}()

	go func() {
		if err := a.reminders.Start(ctx); err != nil {
			errCh <- fmt.Errorf("reminders: %w", err)
		}
	}()

	return nil
}
