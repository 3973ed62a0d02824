package installer

import (
	"context"
	"log/slog"
	"os"

	"github.com/backbee/bbinstall/pkg/defaults"
	"github.com/backbee/bbinstall/pkg/scaffold"
	"github.com/backbee/bbinstall/pkg/yamldoc"
)

// Service parameter names for the directories created by BuildStructure.
const (
	ServiceCacheDir = "bbapp.cache.dir"
	ServiceLogDir   = "bbapp.log.dir"
	ServiceDataDir  = "bbapp.data.dir"
)

type dirSpec struct {
	segments []string
	mode     os.FileMode
}

// BuildStructure creates the cache, log and data directories and records
// their absolute paths in services.yml. It does nothing when
// generate-structure is disabled.
func (i *Installer) BuildStructure(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !i.opts.Bool(defaults.OptGenerateStructure) {
		i.skip(StepStructure, "", reasonStructureOff)
		return nil
	}

	cacheDir := i.opts.String(defaults.OptCacheDir)
	logDir := i.opts.String(defaults.OptLogDir)
	dataDir := i.opts.String(defaults.OptDataDir)

	dirs := []dirSpec{
		{[]string{cacheDir}, defaults.DirMode},
		{[]string{logDir}, defaults.DirMode},
		{[]string{dataDir}, defaults.DirMode},
		{[]string{dataDir, i.opts.String(defaults.OptDataMediaDir)}, defaults.DataSubdirMode},
		{[]string{dataDir, i.opts.String(defaults.OptDataStorageDir)}, defaults.DataSubdirMode},
		{[]string{dataDir, i.opts.String(defaults.OptDataTmpDir)}, defaults.DataSubdirMode},
	}

	err := scaffold.WithUmask(defaults.ScaffoldUmask, func() error {
		for _, d := range dirs {
			p, err := i.root.Abs(d.segments...)
			if err != nil {
				return err
			}
			if err := i.ensureDir(StepStructure, p, d.mode); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return i.recordDirectories(cacheDir, logDir, dataDir)
}

// recordDirectories fills the bbapp.*.dir service parameters that are not set yet.
func (i *Installer) recordDirectories(cacheDir, logDir, dataDir string) error {
	target, err := i.configPath(defaults.ServicesFile)
	if err != nil {
		return err
	}
	doc, _, err := yamldoc.Read(i.fs, target)
	if err != nil {
		return err
	}

	changed := false
	for _, entry := range []struct{ key, dir string }{
		{ServiceCacheDir, cacheDir},
		{ServiceLogDir, logDir},
		{ServiceDataDir, dataDir},
	} {
		abs, err := i.root.Abs(entry.dir)
		if err != nil {
			return err
		}
		added, err := doc.SetDefault(abs, defaults.ParametersRootKey, entry.key)
		if err != nil {
			return invalidDocument(target, err)
		}
		changed = changed || added
	}

	if !changed {
		i.skip(StepStructure, target, "directory parameters already set")
		return nil
	}
	if err := yamldoc.Write(i.fs, target, doc); err != nil {
		return err
	}
	i.result.AddFile(target)
	slog.Info("directory parameters recorded", "step", StepStructure, "path", target)
	return nil
}

func (i *Installer) ensureDir(step, path string, mode os.FileMode) error {
	created, err := scaffold.EnsureDir(i.fs, path, mode)
	if err != nil {
		return err
	}
	if created {
		i.result.AddDirectory(path)
		slog.Info("directory created", "step", step, "path", path)
	}
	return nil
}
