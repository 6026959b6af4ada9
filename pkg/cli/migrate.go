package cli

import (
	"context"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/cli/config"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/repository/postgres"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdMigrate() *cli.Command {
	var repoCfg config.Repository
	var dryRun bool

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Preview changes without applying",
			Destination: &dryRun,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Create the PostgreSQL schema",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()
			logger.Info("Migrate configuration", "repository", repoCfg, "dryRun", dryRun)

			if dryRun {
				logger.Info("Dry run mode - previewing changes")
				for _, table := range postgres.Tables() {
					logger.Info("Migration step", "operation", "CREATE TABLE IF NOT EXISTS", "table", table)
				}
				return nil
			}

			repo, err := repoCfg.Postgres(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			logger.Info("Applying migrations")
			if err := repo.Migrate(ctx); err != nil {
				return goerr.Wrap(err, "failed to apply migrations")
			}
			logger.Info("Migrations applied successfully", "tables", len(postgres.Tables()))
			return nil
		},
	}
}
