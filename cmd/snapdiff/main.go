// Command snapdiff compares project snapshots with each other or with the
// live workspace.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fwojciec/snapdiff/config"
	"github.com/fwojciec/snapdiff/fs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Exit codes.
const (
	ExitClean   = 0 // No differences
	ExitChanges = 1 // Differences found
	ExitError   = 2
)

// errChangesFound is returned by a successful diff that found differences.
var errChangesFound = errors.New("changes found")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// Run executes the command line and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return ExitClean
	case errors.Is(err, errChangesFound):
		return ExitChanges
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}
}

// options holds flags shared by all commands.
type options struct {
	configPath string
	logLevel   string
	stdout     io.Writer
	stderr     io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{stdout: stdout, stderr: stderr}
	cmd := &cobra.Command{
		Use:   "snapdiff",
		Short: "Compare project snapshots and the live workspace",
		Long: `snapdiff reports which files were added, deleted or changed between two
saved snapshots of a project, or between a snapshot and the live workspace.
Use "current" to refer to the workspace.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", fs.DefaultConfigPath(), "Config file path")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newDiffCmd(opts))
	cmd.AddCommand(newSnapshotsCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	return cmd
}

// load reads the config file and applies the shared flag overrides.
func (o *options) load() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	return cfg, nil
}

func (o *options) logger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := newLogger(cfg.LogLevel, o.stderr)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return logger, nil
}
