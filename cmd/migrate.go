package cmd

import (
	"tms/internal/adapters/out/postgres"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return err
	}

	logger, err := NewLogger(cfg.Logging, cfg.IsDevelopment())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := postgres.Open(cmd.Context(), cfg.Database.toPostgres(), logger)
	if err != nil {
		return errors.Wrap(err, "failed to open database")
	}
	if sqlDB, dbErr := db.DB(); dbErr == nil {
		defer sqlDB.Close()
	}

	if err := postgres.Migrate(db); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	logger.Info("database schema is up to date", zap.String("database", cfg.Database.Name))
	return nil
}
