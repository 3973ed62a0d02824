package installer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-git/go-billy/v5"

	"github.com/backbee/bbinstall/pkg/defaults"
	bberrors "github.com/backbee/bbinstall/pkg/errors"
	"github.com/backbee/bbinstall/pkg/options"
	"github.com/backbee/bbinstall/pkg/parameters"
	"github.com/backbee/bbinstall/pkg/paths"
	"github.com/backbee/bbinstall/pkg/scaffold"
	"github.com/backbee/bbinstall/pkg/yamldoc"
)

// Step names, as used by the CLI and in results.
const (
	StepStructure  = "structure"
	StepParameters = "parameters"
	StepBootstrap  = "bootstrap"
	StepDoctrine   = "doctrine"
	StepServices   = "services"
	StepClear      = "clear"
)

const (
	reasonExists          = "already exists"
	reasonNoParameters    = "parameters not collected"
	reasonStructureOff    = "generate-structure disabled"
	reasonPromptOff       = "prompt disabled"
	reasonAllConfigExists = "all configuration files exist"
	reasonKeyPresent      = "secret_key already set"
)

// Installer is a single installation run.
type Installer struct {
	fs        billy.Filesystem
	root      *paths.Root
	opts      options.Options
	collector parameters.Collector

	params    *parameters.Bag
	collected bool
	result    *Result
}

// Option is a functional option for New.
type Option func(*Installer)

// WithFilesystem sets the filesystem; paths given to it are absolute.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(i *Installer) {
		i.fs = fs
	}
}

// WithRoot sets the project root.
func WithRoot(root *paths.Root) Option {
	return func(i *Installer) {
		i.root = root
	}
}

// WithOptions sets the effective options.
func WithOptions(opts options.Options) Option {
	return func(i *Installer) {
		i.opts = opts
	}
}

// WithCollector sets the parameter collector.
func WithCollector(c parameters.Collector) Option {
	return func(i *Installer) {
		i.collector = c
	}
}

// New returns an Installer. Defaults are the OS filesystem, the working
// directory as root, the default options and a PromptCollector.
func New(opts ...Option) (*Installer, error) {
	i := &Installer{result: NewResult()}
	for _, opt := range opts {
		opt(i)
	}

	if i.fs == nil {
		i.fs = scaffold.OSFilesystem()
	}
	if i.root == nil {
		i.root = paths.NewRoot("")
	}
	if i.opts == nil {
		i.opts = options.Resolve(defaults.Options(), nil)
	}
	if i.collector == nil {
		i.collector = parameters.NewPromptCollector()
	}

	if err := i.opts.Validate(defaults.OptPrompt, defaults.OptGenerateStructure); err != nil {
		return nil, err
	}
	return i, nil
}

// Options returns the effective options.
func (i *Installer) Options() options.Options {
	return i.opts
}

// Parameters returns the parameter bag, nil until collected or loaded.
func (i *Installer) Parameters() *parameters.Bag {
	return i.params
}

// Result returns what the run did so far.
func (i *Installer) Result() *Result {
	return i.result
}

// InstallSteps are the steps Install runs, in order.
var InstallSteps = []string{StepStructure, StepParameters, StepBootstrap, StepDoctrine, StepServices}

// Run executes the named step.
func (i *Installer) Run(ctx context.Context, step string) error {
	var fn func(context.Context) error
	switch step {
	case StepStructure:
		fn = i.BuildStructure
	case StepParameters:
		fn = i.CollectParameters
	case StepBootstrap:
		fn = i.BuildBootstrap
	case StepDoctrine:
		fn = i.BuildDoctrineConfig
	case StepServices:
		fn = i.BuildServicesConfig
	case StepClear:
		fn = func(context.Context) error { return i.Clear() }
	default:
		return bberrors.New(bberrors.ErrCodeInvalidOption, fmt.Sprintf("unknown step %q", step))
	}

	start := time.Now()
	err := fn(ctx)
	observeStep(step, start, err)
	if err != nil {
		i.result.AddError(fmt.Errorf("%s: %w", step, err))
	}
	return err
}

// Install runs every step in order. When a step fails the raw parameters
// file written by this run is removed before the error is returned.
func (i *Installer) Install(ctx context.Context) error {
	for _, step := range InstallSteps {
		err := ctx.Err()
		if err != nil {
			i.result.AddError(fmt.Errorf("%s: %w", step, err))
		} else {
			err = i.Run(ctx, step)
		}
		if err != nil {
			i.rollback()
			return fmt.Errorf("step %s: %w", step, err)
		}
	}

	i.result.MarkSuccess()
	slog.Info("installation complete",
		"directories", len(i.result.Directories),
		"files", len(i.result.Files),
		"skipped", len(i.result.Skipped),
		"duration", i.result.Duration)
	return nil
}

func (i *Installer) rollback() {
	if !i.collected {
		return
	}
	if err := i.Clear(); err != nil {
		slog.Warn("failed to remove parameters file during rollback", "error", err)
	}
}

// Clear removes the raw parameters file. A missing file is not an error.
func (i *Installer) Clear() error {
	target, err := i.configPath(defaults.ParametersFile)
	if err != nil {
		return err
	}

	exists, err := yamldoc.Exists(i.fs, target)
	if err != nil {
		return err
	}
	if !exists {
		i.result.AddSkip(StepClear, target, "not found")
		return nil
	}

	if err := i.fs.Remove(target); err != nil && !os.IsNotExist(err) {
		return bberrors.WrapWithContext(bberrors.ErrCodeFilesystem,
			"failed to remove parameters file", err, map[string]any{"path": target})
	}
	slog.Info("parameters file removed", "step", StepClear, "path", target)
	return nil
}

// CollectParameters runs the collector when prompting is enabled and at
// least one configuration file is missing, then loads the parameter bag.
func (i *Installer) CollectParameters(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !i.opts.Bool(defaults.OptPrompt) {
		i.skip(StepParameters, "", reasonPromptOff)
		return nil
	}

	missing, err := i.anyConfigMissing()
	if err != nil {
		return err
	}
	if !missing {
		i.skip(StepParameters, "", reasonAllConfigExists)
		return nil
	}

	target, err := i.configPath(defaults.ParametersFile)
	if err != nil {
		return err
	}
	existed, err := yamldoc.Exists(i.fs, target)
	if err != nil {
		return err
	}

	if err := i.collector.Collect(ctx, i.fs, target); err != nil {
		if ctx.Err() != nil {
			return err
		}
		return bberrors.WrapWithContext(bberrors.ErrCodeCollector,
			"parameter collection failed", err, map[string]any{"path": target})
	}
	i.collected = !existed

	bag, found, err := parameters.Load(i.fs, target)
	if err != nil {
		return err
	}
	if !found {
		return bberrors.WrapWithContext(bberrors.ErrCodeCollector,
			"collector did not write the parameters file", nil, map[string]any{"path": target})
	}

	i.params = bag
	i.result.AddFile(target)
	slog.Info("parameters collected", "step", StepParameters, "path", target)
	return nil
}

// LoadParameters fills the parameter bag from an existing parameters file
// without running the collector. It is a no-op when the bag is already set
// or the file does not exist.
func (i *Installer) LoadParameters() error {
	if i.params != nil {
		return nil
	}
	target, err := i.configPath(defaults.ParametersFile)
	if err != nil {
		return err
	}
	bag, found, err := parameters.Load(i.fs, target)
	if err != nil {
		return err
	}
	if !found {
		slog.Debug("no parameters file to load", "path", target)
		return nil
	}
	i.params = bag
	return nil
}

func (i *Installer) anyConfigMissing() (bool, error) {
	for _, name := range []string{defaults.BootstrapFile, defaults.DoctrineFile, defaults.ServicesFile} {
		p, err := i.configPath(name)
		if err != nil {
			return false, err
		}
		exists, err := yamldoc.Exists(i.fs, p)
		if err != nil {
			return false, err
		}
		if !exists {
			return true, nil
		}
	}
	return false, nil
}

func (i *Installer) configPath(name string) (string, error) {
	return i.root.Abs(defaults.ConfigDir, name)
}

func (i *Installer) skip(step, target, reason string) {
	i.result.AddSkip(step, target, reason)
	slog.Debug("step skipped", "step", step, "target", target, "reason", reason)
}
