package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/entigen/entigen/pkg/adapters/datasource"
	"github.com/entigen/entigen/pkg/config"
	"github.com/entigen/entigen/pkg/inspect"
	"github.com/entigen/entigen/pkg/logging"
	"github.com/entigen/entigen/pkg/models"
)

// datasourceFlags are shared by every command that connects to a database.
// The url flag help lists the adapter types registered at startup.
func datasourceFlags() []cli.Flag {
	var types []string
	for _, info := range datasource.RegisteredAdapters() {
		types = append(types, info.Type)
	}

	return []cli.Flag{
		&cli.StringFlag{
			Name:    "url",
			Usage:   fmt.Sprintf("datasource connection URL (types: %s)", strings.Join(types, ", ")),
			Sources: cli.EnvVars("ENTIGEN_DATASOURCE_URL"),
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "schema names to skip during inspection",
		},
		&cli.BoolFlag{
			Name:  "no-row-counts",
			Usage: "skip row count collection",
		},
	}
}

func inspectCommand(version string) *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Connect to a datasource and print a schema summary",
		Flags: append(datasourceFlags(),
			&cli.StringFlag{
				Name:  "out",
				Usage: "write the schema snapshot as JSON to this file (\"-\" for stdout)",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			cfg, err := loadConfig(cmd, version)
			if err != nil {
				return err
			}

			snapshot, err := buildSnapshot(ctx, cfg, cmd, logger)
			if err != nil {
				return err
			}

			if out := cmd.String("out"); out != "" {
				if err := writeJSON(out, snapshot); err != nil {
					return err
				}
				if out != "-" {
					fmt.Fprintf(cmd.Writer, "Snapshot written to %s\n", out)
				}
				return nil
			}

			fmt.Fprint(cmd.Writer, inspect.Summary(snapshot))
			return nil
		},
	}
}

// buildSnapshot opens the configured datasource and builds a schema snapshot.
func buildSnapshot(ctx context.Context, cfg *config.Config, cmd *cli.Command, logger *zap.Logger) (*models.SchemaSnapshot, error) {
	inspector, err := datasource.Open(ctx, cfg.Datasource.URL, logger)
	if err != nil {
		return nil, err
	}
	defer inspector.Close()

	collectRowCounts := cfg.Datasource.CollectRowCounts
	if cmd.Bool("no-row-counts") {
		collectRowCounts = false
	}

	builder := inspect.NewBuilder(inspector, logger)
	return builder.Build(ctx, inspect.Options{
		Source:           logging.SanitizeConnectionString(cfg.Datasource.URL),
		ExcludeSchemas:   cfg.Datasource.ExcludeSchemas,
		CollectRowCounts: collectRowCounts,
	})
}
