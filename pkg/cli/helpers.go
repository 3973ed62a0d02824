package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/urfave/cli/v3"

	"github.com/backbee/bbinstall/pkg/defaults"
	"github.com/backbee/bbinstall/pkg/header"
	"github.com/backbee/bbinstall/pkg/installer"
	"github.com/backbee/bbinstall/pkg/options"
	"github.com/backbee/bbinstall/pkg/parameters"
	"github.com/backbee/bbinstall/pkg/paths"
	"github.com/backbee/bbinstall/pkg/scaffold"
	"github.com/backbee/bbinstall/pkg/serializer"
)

const reportKind = "Report"

// parseOutputFormat extracts and validates the report format from CLI flags.
// Without --format, a report file's extension picks the format.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String(flagFormat))
	if output := cmd.String(flagOutput); !cmd.IsSet(flagFormat) && output != "" && output != serializer.StdoutURI {
		outFormat = serializer.FormatFromPath(output)
	}
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: %s",
			outFormat, strings.Join(serializer.SupportedFormats(), ", "))
	}
	return outFormat, nil
}

// session is the state shared by every command of one invocation.
type session struct {
	fs   billy.Filesystem
	root *paths.Root
	opts options.Options
}

func newSession(cmd *cli.Command) (*session, error) {
	s := &session{fs: scaffold.OSFilesystem()}

	dir := cmd.String(flagRoot)
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("invalid --root %q: %w", dir, err)
		}
		dir = abs
	}
	s.root = paths.NewRoot(dir)

	composer := cmd.String(flagComposer)
	if !path.IsAbs(composer) {
		p, err := s.root.Build(composer)
		if err != nil {
			return nil, err
		}
		composer = p
	}
	extra, err := options.LoadExtra(s.fs, composer)
	if err != nil {
		return nil, err
	}

	sets, err := options.ParseOverrides(cmd.StringSlice(flagSet))
	if err != nil {
		return nil, fmt.Errorf("invalid --set flag: %w", err)
	}

	overrides := options.Overlay(extra, sets)
	defs := defaults.Options()
	for _, u := range options.Unknown(defs, overrides) {
		if u.Suggestion != "" {
			slog.Warn("unknown option ignored", "option", u.Key, "suggestion", u.Suggestion)
			continue
		}
		slog.Warn("unknown option ignored", "option", u.Key)
	}

	s.opts = options.Resolve(defs, overrides)
	for _, k := range s.opts.Keys() {
		slog.Debug("effective option", "option", k, "value", s.opts[k])
	}
	return s, nil
}

func (s *session) installer(cmd *cli.Command) (*installer.Installer, error) {
	var copts []parameters.Option
	if r := cmd.Root().Reader; r != nil {
		copts = append(copts, parameters.WithInput(r))
	}
	if w := cmd.Root().ErrWriter; w != nil {
		copts = append(copts, parameters.WithOutput(w))
	}
	if cmd.Bool(flagNoInteraction) {
		copts = append(copts, parameters.WithInteractive(false))
	}

	return installer.New(
		installer.WithFilesystem(s.fs),
		installer.WithRoot(s.root),
		installer.WithOptions(s.opts),
		installer.WithCollector(parameters.NewPromptCollector(copts...)),
	)
}

type stepFunc func(ctx context.Context, inst *installer.Installer) error

// stepAction runs a single step. Generator steps load an existing
// parameters.yml first.
func stepAction(step string) cli.ActionFunc {
	var loadParameters bool
	switch step {
	case installer.StepBootstrap, installer.StepDoctrine, installer.StepServices:
		loadParameters = true
	}
	return func(ctx context.Context, cmd *cli.Command) error {
		return runStep(ctx, cmd, loadParameters, func(ctx context.Context, inst *installer.Installer) error {
			return inst.Run(ctx, step)
		})
	}
}

// runStep builds an installer for cmd, runs fn and reports the result.
func runStep(ctx context.Context, cmd *cli.Command, loadParameters bool, fn stepFunc) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	inst, err := s.installer(cmd)
	if err != nil {
		return err
	}

	runErr := runWithParameters(ctx, inst, loadParameters, fn)
	if runErr != nil {
		inst.Result().MarkFailure()
	} else {
		inst.Result().MarkSuccess()
	}

	// the report of an interrupted run is still written
	err = writeReport(context.WithoutCancel(ctx), cmd, format, s.newReport(cmd, inst.Result()))
	if runErr != nil {
		if err != nil {
			slog.Warn("failed to write report", "error", err)
		}
		return runErr
	}
	return err
}

func runWithParameters(ctx context.Context, inst *installer.Installer, load bool, fn stepFunc) error {
	if load {
		if err := inst.LoadParameters(); err != nil {
			inst.Result().AddError(err)
			return err
		}
	}
	return fn(ctx, inst)
}

// report is the document written after a step command.
type report struct {
	header.Header    `yaml:",inline"`
	installer.Result `yaml:",inline"`
}

func (s *session) newReport(cmd *cli.Command, res *installer.Result) *report {
	opts := []header.Option{
		header.WithKind(reportKind),
		header.WithMetadata("command", cmd.Name),
		header.WithMetadata("version", version),
	}
	if dir, err := s.root.Dir(); err == nil {
		opts = append(opts, header.WithMetadata("root", dir))
	}
	return &report{Header: *header.New(opts...), Result: *res}
}

func writeReport(ctx context.Context, cmd *cli.Command, format serializer.Format, v any) error {
	output := cmd.String(flagOutput)
	if output == "" {
		return serializer.NewWriter(format, cmd.Root().Writer).Serialize(ctx, v)
	}

	ser, err := serializer.NewFileWriterOrStdout(format, output)
	if err != nil {
		return err
	}
	defer func() {
		if c, ok := ser.(serializer.Closer); ok {
			if err := c.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}
	}()
	return ser.Serialize(ctx, v)
}
