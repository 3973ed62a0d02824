package installer

import (
	"context"
	"log/slog"

	"github.com/backbee/bbinstall/pkg/defaults"
	bberrors "github.com/backbee/bbinstall/pkg/errors"
	"github.com/backbee/bbinstall/pkg/yamldoc"
)

type bootstrapConfig struct {
	Debug     any                `yaml:"debug"`
	Container bootstrapContainer `yaml:"container"`
}

type bootstrapContainer struct {
	DumpDirectory any `yaml:"dump_directory"`
	Autogenerate  any `yaml:"autogenerate"`
}

type doctrineConfig struct {
	DBAL dbalConfig `yaml:"dbal"`
}

type dbalConfig struct {
	Driver    any `yaml:"driver"`
	Host      any `yaml:"host"`
	Port      any `yaml:"port"`
	DBName    any `yaml:"dbname"`
	User      any `yaml:"user"`
	Password  any `yaml:"password"`
	Charset   any `yaml:"charset"`
	Collation any `yaml:"collation"`
}

// BuildBootstrap writes bootstrap.yml unless it exists. A missing container
// dump directory defaults to <cache dir>/container, which is created when
// structure generation is enabled.
func (i *Installer) BuildBootstrap(ctx context.Context) error {
	target, ok, err := i.generatorTarget(ctx, StepBootstrap, defaults.BootstrapFile)
	if err != nil || !ok {
		return err
	}

	if i.params.IsNull(defaults.ParamContainerDumpDirectory) {
		dumpDir, err := i.root.Abs(i.opts.String(defaults.OptCacheDir), defaults.ContainerDumpDir)
		if err != nil {
			return err
		}
		if i.opts.Bool(defaults.OptGenerateStructure) {
			if err := i.ensureDir(StepBootstrap, dumpDir, defaults.DirMode); err != nil {
				return err
			}
		}
		i.params.SetDefault(defaults.ParamContainerDumpDirectory, dumpDir)
	}

	cfg := bootstrapConfig{
		Debug: i.params.Get(defaults.ParamDebug),
		Container: bootstrapContainer{
			DumpDirectory: i.params.Get(defaults.ParamContainerDumpDirectory),
			Autogenerate:  i.params.Get(defaults.ParamCacheAutogenerate),
		},
	}
	return i.writeConfig(StepBootstrap, target, cfg)
}

// BuildDoctrineConfig writes doctrine.yml unless it exists.
func (i *Installer) BuildDoctrineConfig(ctx context.Context) error {
	target, ok, err := i.generatorTarget(ctx, StepDoctrine, defaults.DoctrineFile)
	if err != nil || !ok {
		return err
	}

	cfg := doctrineConfig{DBAL: dbalConfig{
		Driver:    i.params.Get(defaults.ParamDatabaseDriver),
		Host:      i.params.Get(defaults.ParamDatabaseHost),
		Port:      i.params.Get(defaults.ParamDatabasePort),
		DBName:    i.params.Get(defaults.ParamDatabaseName),
		User:      i.params.Get(defaults.ParamDatabaseUser),
		Password:  i.params.Get(defaults.ParamDatabasePassword),
		Charset:   i.params.Get(defaults.ParamDatabaseCharset),
		Collation: i.params.Get(defaults.ParamDatabaseCollation),
	}}
	return i.writeConfig(StepDoctrine, target, cfg)
}

// BuildServicesConfig adds secret_key to the parameters of services.yml when
// it is not set. Everything else in the file is kept as is.
func (i *Installer) BuildServicesConfig(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := i.configPath(defaults.ServicesFile)
	if err != nil {
		return err
	}
	if i.params == nil {
		i.skip(StepServices, target, reasonNoParameters)
		return nil
	}

	doc, _, err := yamldoc.Read(i.fs, target)
	if err != nil {
		return err
	}
	added, err := doc.SetDefault(i.params.Get(defaults.ParamSecretKey), defaults.ParametersRootKey, defaults.ParamSecretKey)
	if err != nil {
		return invalidDocument(target, err)
	}
	if !added {
		i.skip(StepServices, target, reasonKeyPresent)
		return nil
	}
	return i.writeConfig(StepServices, target, doc)
}

// generatorTarget returns the target path of a generator and whether the
// generator should run.
func (i *Installer) generatorTarget(ctx context.Context, step, name string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	target, err := i.configPath(name)
	if err != nil {
		return "", false, err
	}

	exists, err := yamldoc.Exists(i.fs, target)
	if err != nil {
		return "", false, err
	}
	if exists {
		i.skip(step, target, reasonExists)
		return target, false, nil
	}
	if i.params == nil {
		i.skip(step, target, reasonNoParameters)
		return target, false, nil
	}
	return target, true, nil
}

func (i *Installer) writeConfig(step, target string, v any) error {
	if err := yamldoc.Write(i.fs, target, v); err != nil {
		return err
	}
	i.result.AddFile(target)
	slog.Info("configuration written", "step", step, "path", target)
	return nil
}

func invalidDocument(path string, err error) error {
	return bberrors.WrapWithContext(bberrors.ErrCodeParse,
		"unexpected document structure", err, map[string]any{"path": path})
}
