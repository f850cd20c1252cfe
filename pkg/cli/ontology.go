package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/entigen/entigen/pkg/apperrors"
	"github.com/entigen/entigen/pkg/config"
	"github.com/entigen/entigen/pkg/llm"
	"github.com/entigen/entigen/pkg/models"
	"github.com/entigen/entigen/pkg/ontology"
	"github.com/entigen/entigen/pkg/retry"
)

// llmFlags are shared by every command that calls a hosted model.
func llmFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "provider",
			Usage:   "LLM provider (anthropic or openai); default is detected from credentials",
			Sources: cli.EnvVars("ENTIGEN_LLM_PROVIDER"),
		},
		&cli.IntFlag{
			Name:  "retries",
			Usage: "retries when the model returns a malformed response",
			Value: 2,
		},
	}
}

func generateCommand(version string) *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate an ontology proposal from the datasource schema",
		Flags: append(append(datasourceFlags(), llmFlags()...),
			&cli.StringFlag{
				Name:  "out",
				Usage: "output file for the ontology JSON (\"-\" for stdout)",
				Value: "ontology.json",
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

			designer, err := newDesigner(cfg, logger)
			if err != nil {
				return err
			}

			result, err := runWithRetries(ctx, cmd, logger, func() (*models.Ontology, error) {
				return designer.Generate(ctx, snapshot)
			})
			if err != nil {
				return err
			}

			return writeOntology(cmd, result)
		},
	}
}

func refineCommand(version string) *cli.Command {
	return &cli.Command{
		Name:  "refine",
		Usage: "Refine an existing ontology with natural-language feedback",
		Flags: append(append(datasourceFlags(), llmFlags()...),
			&cli.StringFlag{
				Name:     "ontology",
				Usage:    "path to the current ontology JSON",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "feedback",
				Usage:    "feedback describing the desired changes",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "output file for the refined ontology (defaults to the input file)",
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

			current, err := loadOntology(cmd.String("ontology"))
			if err != nil {
				return err
			}

			snapshot, err := buildSnapshot(ctx, cfg, cmd, logger)
			if err != nil {
				return err
			}

			designer, err := newDesigner(cfg, logger)
			if err != nil {
				return err
			}

			feedback := cmd.String("feedback")
			result, err := runWithRetries(ctx, cmd, logger, func() (*models.Ontology, error) {
				return designer.Refine(ctx, snapshot, current, feedback)
			})
			if err != nil {
				return err
			}

			return writeOntology(cmd, result)
		},
	}
}

func suggestCommand(version string) *cli.Command {
	return &cli.Command{
		Name:  "suggest",
		Usage: "List model-suggested improvements for an existing ontology",
		Flags: append(append(datasourceFlags(), llmFlags()...),
			&cli.StringFlag{
				Name:     "ontology",
				Usage:    "path to the current ontology JSON",
				Required: true,
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

			current, err := loadOntology(cmd.String("ontology"))
			if err != nil {
				return err
			}

			snapshot, err := buildSnapshot(ctx, cfg, cmd, logger)
			if err != nil {
				return err
			}

			designer, err := newDesigner(cfg, logger)
			if err != nil {
				return err
			}

			suggestions, err := runWithRetries(ctx, cmd, logger, func() ([]string, error) {
				return designer.SuggestImprovements(ctx, snapshot, current)
			})
			if err != nil {
				return err
			}

			if len(suggestions) == 0 {
				fmt.Fprintln(cmd.Writer, "No suggestions.")
				return nil
			}
			for i, s := range suggestions {
				fmt.Fprintf(cmd.Writer, "%d. %s\n", i+1, s)
			}
			return nil
		},
	}
}

// newDesigner builds the LLM client and designer from configuration.
func newDesigner(cfg *config.Config, logger *zap.Logger) (*ontology.Designer, error) {
	client, err := llm.NewClient(cfg.LLM.ClientConfig(), logger)
	if err != nil {
		return nil, err
	}
	return ontology.NewDesigner(client, logger), nil
}

// cycleRetryable reports whether a failed prompt/call/assemble cycle is
// worth re-running: the model produced an unusable response, or the provider
// error is classified transient (timeouts, rate limits, 5xx).
func cycleRetryable(err error) bool {
	return errors.Is(err, apperrors.ErrMalformedResponse) || retry.IsRetryable(err)
}

// runWithRetries runs a designer call, re-running the whole cycle on
// retryable failures.
func runWithRetries[T any](ctx context.Context, cmd *cli.Command, logger *zap.Logger, fn func() (T, error)) (T, error) {
	cfg := retry.DefaultConfig()
	cfg.MaxRetries = int(cmd.Int("retries"))

	shouldRetry := func(err error) bool {
		if !cycleRetryable(err) {
			return false
		}
		logger.Warn("model cycle failed, retrying",
			zap.String("error", err.Error()))
		return true
	}

	return retry.DoWithResult(ctx, cfg, shouldRetry, fn)
}

// writeOntology writes the result to --out and prints a short confirmation.
func writeOntology(cmd *cli.Command, o *models.Ontology) error {
	out := cmd.String("out")
	if out == "" {
		out = cmd.String("ontology")
	}

	if err := writeJSON(out, o); err != nil {
		return err
	}

	if out != "-" {
		fmt.Fprintf(cmd.Writer, "Ontology %q written to %s (%d classes, %d properties, %d relationships)\n",
			o.Name, out, len(o.Classes), len(o.Properties), len(o.Relationships))
	}
	return nil
}
