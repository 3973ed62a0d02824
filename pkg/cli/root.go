package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	bberrors "github.com/backbee/bbinstall/pkg/errors"
	"github.com/backbee/bbinstall/pkg/logging"
)

const name = "bbinstall"

var (
	// overridden during build with ldflags
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitInterrupted = 2
)

// Execute runs the CLI with the process arguments and returns the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// replaced by the root Before hook once flags are parsed
	logging.SetDefaultStructuredLogger(name, version)
	return run(ctx, newRootCmd(), os.Args)
}

func run(ctx context.Context, root *cli.Command, args []string) int {
	err := root.Run(ctx, args)
	code := exitCode(err)
	if code != ExitOK {
		slog.Error("command failed", "error", err, "code", bberrors.CodeOf(err))
	}
	return code
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	default:
		return ExitError
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Prepare a BackBee project: directories, parameters and configuration",
		Version:               fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date),
		EnableShellCompletion: true,
		ShellComplete:         commandLister,
		Flags:                 globalFlags(),
		Before:                configureLogging,
		After:                 writeMetrics,
		Commands: []*cli.Command{
			installCmd(),
			structureCmd(),
			parametersCmd(),
			bootstrapCmd(),
			doctrineCmd(),
			servicesCmd(),
			clearCmd(),
			optionsCmd(),
		},
	}
}

func configureLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	opts := logging.Options{
		JSON:   cmd.Bool(flagLogJSON),
		Output: cmd.Root().ErrWriter,
	}
	if cmd.Bool(flagDebug) {
		level := slog.LevelDebug
		opts.Level = &level
	}
	logging.SetDefaultStructuredLoggerWithOptions(name, version, opts)
	return ctx, nil
}

// commandLister prints the visible subcommands, one per line.
func commandLister(_ context.Context, cmd *cli.Command) {
	if cmd == nil {
		return
	}
	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}
	for _, c := range cmd.Commands {
		if c.Hidden {
			continue
		}
		fmt.Fprintln(w, c.Name)
	}
}
