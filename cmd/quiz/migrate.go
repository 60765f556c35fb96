package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aliskhannn/vocab-quiz/internal/infra/postgres"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Apply, roll back or inspect database migrations",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status"},
	RunE: func(cmd *cobra.Command, args []string) error {
		direction := "up"
		if len(args) == 1 {
			direction = args[0]
		}

		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		m, err := postgres.NewMigrator(cfg.DB.DSN(), log)
		if err != nil {
			return err
		}
		defer m.Close() //nolint:errcheck

		switch direction {
		case "up":
			return m.Up(cmd.Context())
		case "down":
			return m.Down(cmd.Context())
		case "status":
			return m.Status(cmd.Context())
		default:
			return fmt.Errorf("unknown migrate direction %q", direction)
		}
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
