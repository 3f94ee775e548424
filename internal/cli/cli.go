// Package cli implements the catalogprobe command-line interface.
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/catalogprobe/pkg/buildinfo"
	"github.com/matzehuels/catalogprobe/pkg/observability"
	"github.com/matzehuels/catalogprobe/pkg/probe"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "catalogprobe"

	// defaultTimeout is the default catalog fetch timeout.
	defaultTimeout = 10 * time.Second

	// defaultURLTimeout is the default timeout for each URL check.
	defaultURLTimeout = 30 * time.Second
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	out    io.Writer
}

// New creates a new CLI instance. Logs go to logw, command output to out.
func New(out, logw io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(logw, level),
		out:    out,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "catalogprobe checks catalog entries for monitoring",
		Long: `catalogprobe fetches a JSON catalog entry by identifier and checks it:
required keys carry values, linked URLs respond, and dates are recent enough.
The exit code follows monitoring conventions: 0 OK, 1 WARNING, 2 CRITICAL, 3 UNKNOWN.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			observability.SetHTTPHooks(&logHooks{logger: c.Logger})
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.out)

	root.AddCommand(c.checkCommand())
	root.AddCommand(c.getCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Exit Status
// =============================================================================

// StatusError is returned by commands whose outcome maps to a non-zero probe
// state. The result has already been printed.
type StatusError struct {
	Status probe.Status
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("probe status %s", e.Status)
}

// ExitCode returns the process exit code for the probe state.
func (e *StatusError) ExitCode() int { return e.Status.ExitCode() }
