package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/catalogprobe/internal/cli"
	perrors "github.com/matzehuels/catalogprobe/pkg/errors"
	"github.com/matzehuels/catalogprobe/pkg/probe"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := exitCode(run(ctx))
	cancel()
	os.Exit(code)
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stdout, os.Stderr, cli.LogInfo)
	root := c.RootCommand()

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	originalPreRun := root.PersistentPreRun
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if originalPreRun != nil {
			originalPreRun(cmd, args)
		}
	}

	return root.ExecuteContext(ctx)
}

// exitCode maps a command error to a monitoring exit code. Errors that did
// not produce a probe report are UNKNOWN.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, context.Canceled) {
		return 130 // Standard shell convention for SIGINT
	}
	var se *cli.StatusError
	if errors.As(err, &se) {
		return se.ExitCode()
	}
	fmt.Fprintf(os.Stderr, "%s - %s\n", probe.Unknown, perrors.UserMessage(err))
	return probe.Unknown.ExitCode()
}
