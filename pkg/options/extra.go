package options

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	bberrors "github.com/backbee/bbinstall/pkg/errors"
)

type packageDescriptor struct {
	Extra map[string]any `json:"extra"`
}

// LoadExtra reads the "extra" object of the package descriptor at path.
// A missing descriptor yields an empty map.
func LoadExtra(fs billy.Filesystem, path string) (map[string]any, error) {
	data, err := util.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("package descriptor not found, using default options", "path", path)
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, bberrors.WrapWithContext(bberrors.ErrCodeFilesystem,
			"failed to read package descriptor", err, map[string]any{"path": path})
	}

	var desc packageDescriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, bberrors.WrapWithContext(bberrors.ErrCodeParse,
			"malformed package descriptor", err, map[string]any{"path": path})
	}
	if desc.Extra == nil {
		return map[string]any{}, nil
	}
	return desc.Extra, nil
}
