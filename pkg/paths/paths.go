// Package paths builds project-relative paths from a lazily resolved root.
package paths

import (
	"os"
	"path"
	"regexp"
	"strings"
	"sync"

	bberrors "github.com/backbee/bbinstall/pkg/errors"
)

var repeatedSeparators = regexp.MustCompile(`//+`)

// Root is the project root of one installer run. The directory is resolved
// on first use and reused for the rest of the run.
type Root struct {
	dir func() (string, error)
}

// NewRoot returns a Root for dir. An empty dir resolves to the working directory.
func NewRoot(dir string) *Root {
	if strings.TrimSpace(dir) == "" {
		return NewRootFunc(os.Getwd)
	}
	return NewRootFunc(func() (string, error) { return dir, nil })
}

// NewRootFunc returns a Root whose directory is computed by resolve, called at most once.
func NewRootFunc(resolve func() (string, error)) *Root {
	return &Root{dir: sync.OnceValues(resolve)}
}

// Dir returns the resolved root directory.
func (r *Root) Dir() (string, error) {
	dir, err := r.dir()
	if err != nil {
		return "", bberrors.Wrap(bberrors.ErrCodeFilesystem, "failed to resolve project root", err)
	}
	return dir, nil
}

// Build joins the root with segments and collapses repeated separators.
func (r *Root) Build(segments ...string) (string, error) {
	dir, err := r.Dir()
	if err != nil {
		return "", err
	}
	return Join(dir, segments...), nil
}

// Abs is like Build and also removes "." and ".." elements.
func (r *Root) Abs(segments ...string) (string, error) {
	p, err := r.Build(segments...)
	if err != nil {
		return "", err
	}
	return path.Clean(p), nil
}

// Join concatenates root and segments with "/" and collapses any run of
// separators into one, so Join("/p/", "/q") is "/p/q".
func Join(root string, segments ...string) string {
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, root)
	parts = append(parts, segments...)
	return repeatedSeparators.ReplaceAllString(strings.Join(parts, "/"), "/")
}
