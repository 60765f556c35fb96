package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the word catalog into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		path, _ := cmd.Flags().GetString("file")
		if path == "" {
			path = cfg.Catalog.SeedPath
		}

		words, err := loadCatalog(path)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if err := migrateUp(ctx, cfg, log); err != nil {
			return err
		}

		pool, err := openPool(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		n, err := newApp(pool, cfg, log).catalog.SeedIfEmpty(ctx, words)
		if err != nil {
			return err
		}

		log.Info("seed finished", zap.Int("inserted", n))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().String("file", "", "catalog file (.json or .xlsx); defaults to catalog.seed_path or the bundled catalog")
}
