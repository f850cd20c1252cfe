package main

import (
	"context"
	"fmt"
	"os"

	"github.com/entigen/entigen/pkg/cli"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	app := cli.New(Version)
	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
