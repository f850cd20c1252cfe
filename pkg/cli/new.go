package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/entigen/entigen/pkg/scaffold"
)

func newCommand(version string) *cli.Command {
	return &cli.Command{
		Name:      "new",
		Usage:     "Create a new entity-resolution project skeleton",
		ArgsUsage: "<name>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Usage: "target directory (defaults to ./<name>)",
			},
			&cli.StringFlag{
				Name:  "description",
				Usage: "project description written into the generated files",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("usage: entigen new <name>")
			}
			name := cmd.Args().Get(0)

			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			dir := cmd.String("dir")
			if dir == "" {
				dir = name
			}

			gen := scaffold.NewGenerator(logger)
			if err := gen.Generate(scaffold.Options{
				Name:        name,
				Dir:         dir,
				Description: cmd.String("description"),
			}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.Writer, "Created project %q in %s\n", name, dir)
			return nil
		},
	}
}
