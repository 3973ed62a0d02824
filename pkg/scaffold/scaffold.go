// Package scaffold creates directories idempotently under a scoped umask.
package scaffold

import (
	"errors"
	"log/slog"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	bberrors "github.com/backbee/bbinstall/pkg/errors"
)

// OSFilesystem returns the host filesystem rooted at "/". Its MkdirAll
// applies the requested mode, minus the umask.
func OSFilesystem() billy.Filesystem {
	return osfs.New("/", osfs.WithBoundOS())
}

// EnsureDir creates path, and any missing parent, with mode unless path is
// already a directory. It returns whether the directory was created.
func EnsureDir(fs billy.Filesystem, path string, mode os.FileMode) (bool, error) {
	info, err := fs.Stat(path)
	switch {
	case err == nil && info.IsDir():
		slog.Debug("directory exists", "path", path)
		return false, nil
	case err == nil:
		return false, bberrors.WrapWithContext(bberrors.ErrCodeFilesystem,
			"path exists and is not a directory", nil, map[string]any{"path": path})
	case !errors.Is(err, os.ErrNotExist):
		return false, bberrors.WrapWithContext(bberrors.ErrCodeFilesystem,
			"failed to stat directory", err, map[string]any{"path": path})
	}

	if err := fs.MkdirAll(path, mode); err != nil {
		return false, bberrors.WrapWithContext(bberrors.ErrCodeFilesystem,
			"failed to create directory", err, map[string]any{"path": path})
	}

	slog.Debug("directory created", "path", path, "mode", mode)
	return true, nil
}

// WithUmask sets the process umask to mask while fn runs and restores the
// previous umask when fn returns or panics.
func WithUmask(mask int, fn func() error) error {
	prev := setUmask(mask)
	defer setUmask(prev)
	return fn()
}
