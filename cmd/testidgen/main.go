// Package main provides the entry point for the testidgen CLI tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/testidgen/cmd/testidgen/commands"
	"github.com/Sumatoshi-tech/testidgen/pkg/version"
)

func main() {
	version.Init()

	rootCmd := &cobra.Command{
		Use:   "testidgen",
		Short: "testidgen - data-testid codemod for JSX/TSX",
		Long: `testidgen adds stable, human-readable data-testid attributes to JSX/TSX
markup so browser tests can select elements without relying on styling.

Commands:
  annotate  Annotate a file or, with --batch, a directory
  version   Show version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewAnnotateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
