package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuredError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *StructuredError
		want string
	}{
		{
			name: "message only",
			err:  New(ErrCodeInvalidOption, "bad value"),
			want: "[INVALID_OPTION] bad value",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeFilesystem, "failed to create directory", fs.ErrPermission),
			want: "[FILESYSTEM] failed to create directory: permission denied",
		},
		{
			name: "with sorted context",
			err: WrapWithContext(ErrCodeParse, "malformed document", errors.New("line 3"),
				map[string]any{"path": "/p/services.yml", "kind": "yaml"}),
			want: "[PARSE] malformed document kind=yaml path=/p/services.yml: line 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestStructuredError_Unwrap(t *testing.T) {
	err := Wrap(ErrCodeFilesystem, "failed to remove file", fs.ErrNotExist)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	wrapped := fmt.Errorf("step bootstrap: %w", err)
	var se *StructuredError
	if assert.ErrorAs(t, wrapped, &se) {
		assert.Equal(t, ErrCodeFilesystem, se.Code)
	}
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeParse, CodeOf(fmt.Errorf("outer: %w", New(ErrCodeParse, "x"))))
	assert.Equal(t, ErrCodeInternal, CodeOf(errors.New("plain")))
	assert.Equal(t, ErrCodeInternal, CodeOf(nil))
}
