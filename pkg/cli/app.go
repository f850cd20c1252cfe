// Package cli assembles the entigen command tree. This is the composition
// root: configuration and credentials are resolved here and passed into the
// pipeline packages as data.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/entigen/entigen/pkg/config"
	"github.com/entigen/entigen/pkg/models"

	// Register datasource adapters.
	_ "github.com/entigen/entigen/pkg/adapters/datasource/mssql"
	_ "github.com/entigen/entigen/pkg/adapters/datasource/postgres"
)

// New builds the root command.
func New(version string) *cli.Command {
	return &cli.Command{
		Name:    "entigen",
		Usage:   "Scaffold entity-resolution projects and generate ontologies from relational schemas",
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			newCommand(version),
			inspectCommand(version),
			generateCommand(version),
			refineCommand(version),
			suggestCommand(version),
		},
	}
}

// newLogger builds the CLI logger. Output goes to stderr so stdout stays
// clean for machine-readable output.
func newLogger(cmd *cli.Command) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cmd.Bool("verbose") {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}

// loadConfig loads file/env configuration and applies flag overrides.
func loadConfig(cmd *cli.Command, version string) (*config.Config, error) {
	cfg, err := config.Load(version)
	if err != nil {
		return nil, err
	}

	if url := cmd.String("url"); url != "" {
		cfg.Datasource.URL = url
	}
	if cmd.IsSet("exclude") {
		cfg.Datasource.ExcludeSchemas = cmd.StringSlice("exclude")
	}
	if provider := cmd.String("provider"); provider != "" {
		cfg.LLM.Provider = provider
	}

	if cfg.Datasource.URL == "" {
		return nil, fmt.Errorf("no datasource configured: set ENTIGEN_DATASOURCE_URL or pass --url")
	}

	return cfg, nil
}

// writeJSON writes v as indented JSON to path, or to stdout when path is "-".
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	data = append(data, '\n')

	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// loadOntology reads and validates an ontology JSON file.
func loadOntology(path string) (*models.Ontology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ontology %s: %w", path, err)
	}

	var o models.Ontology
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parse ontology %s: %w", path, err)
	}
	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("ontology %s: %w", path, err)
	}

	return &o, nil
}
