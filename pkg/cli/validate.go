package cli

import (
	"context"
	"os"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/cli/config"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/logging"
	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var catalogCfg config.Catalog
	var databaseURL string

	var flags []cli.Flag
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, &cli.StringFlag{
		Name:        "database-url",
		Usage:       "PostgreSQL connection URL (if specified, connectivity and schema are checked)",
		Sources:     cli.EnvVars("GRC_DATABASE_URL", "DATABASE_URL"),
		Destination: &databaseURL,
	})

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the catalog and optionally check the database",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()
			ok := color.New(color.FgGreen, color.Bold)

			// Step 1: Load and validate the catalog
			file, err := catalogCfg.Load()
			if err != nil {
				return goerr.Wrap(err, "catalog validation failed")
			}

			for _, f := range file.Frameworks {
				controls := 0
				for _, d := range f.Domains {
					controls += len(d.Controls)
				}
				logger.Info("Framework template validated",
					"id", f.ID,
					"name", f.Name,
					"domain_count", len(f.Domains),
					"control_count", controls,
				)
			}
			for _, m := range file.MaturityModels {
				logger.Info("Maturity model validated",
					"id", m.ID,
					"name", m.Name,
					"domain_count", len(m.Domains),
				)
			}
			_, _ = ok.Fprintf(os.Stdout, "catalog OK: %d framework template(s), %d maturity model(s)\n",
				len(file.Frameworks), len(file.MaturityModels))

			// Step 2: If a database URL is specified, check the schema
			if databaseURL == "" {
				logger.Info("No database URL specified, skipping database check")
				return nil
			}

			repo, err := config.NewPostgresRepository(databaseURL).Postgres(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			missing, err := repo.MissingTables(ctx)
			if err != nil {
				return goerr.Wrap(err, "database schema check failed")
			}
			if len(missing) > 0 {
				for _, table := range missing {
					logger.Warn("Missing table", "table", table)
				}
				return goerr.New("database schema is incomplete, run grc migrate", goerr.V("missing", len(missing)))
			}
			_, _ = ok.Fprintln(os.Stdout, "database OK")
			return nil
		},
	}
}
