package main

import (
	"github.com/spf13/cobra"

	"uims/internal/platform/config"
	"uims/internal/platform/database"
	"uims/internal/platform/logger"
)

func newMigrateCmd(load func() (config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			log := logger.New(cfg.Log)
			ctx := cmd.Context()

			db, dialect, err := database.Open(ctx, cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Migrate(ctx, db, dialect); err != nil {
				return err
			}
			log.InfoContext(ctx, "migrations applied", "dialect", dialect)
			return nil
		},
	}
}
