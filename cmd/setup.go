package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/moodlist/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase writes config.toml from the template when it is missing,
// then creates the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else if config, err := shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load created config, using defaults", "error", err)
		} else {
			config.ApplyEnv()
			r.config = config
			r.writePlain("✓ Created %s\n", configPath)
		}
	}

	dbConfig := r.config.Database
	if path := cmd.String("path"); path != "" {
		dbConfig.Path = path
	}

	r.logger.Info("initializing database", "path", dbConfig.Path)

	db, err := shared.OpenDatabase(ctx, dbConfig)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer db.Close()

	r.logger.Infof("setup complete for database: %v", dbConfig.Path)
	return r.writePlain("✓ Database ready at %s\n", dbConfig.Path)
}
