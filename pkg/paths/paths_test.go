package paths

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bberrors "github.com/backbee/bbinstall/pkg/errors"
)

func TestJoin(t *testing.T) {
	tests := []struct {
		name     string
		root     string
		segments []string
		want     string
	}{
		{name: "single segment", root: "/p", segments: []string{"cache"}, want: "/p/cache"},
		{name: "trailing and leading separators", root: "/p/", segments: []string{"/q"}, want: "/p/q"},
		{name: "many separators", root: "/p///", segments: []string{"//a//", "b"}, want: "/p/a/b"},
		{name: "array form", root: "/p", segments: []string{"repository", "Config"}, want: "/p/repository/Config"},
		{name: "dot segments kept", root: "/p", segments: []string{"./repository/Data", "Media"}, want: "/p/./repository/Data/Media"},
		{name: "no segments", root: "/p", want: "/p"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Join(tt.root, tt.segments...))
		})
	}
}

func TestRoot_BuildIsStable(t *testing.T) {
	r := NewRoot("/project")

	first, err := r.Build("a", "b")
	require.NoError(t, err)
	second, err := r.Build("a", "b")
	require.NoError(t, err)

	assert.Equal(t, "/project/a/b", first)
	assert.Equal(t, first, second)
}

func TestRoot_ResolvesOnce(t *testing.T) {
	calls := 0
	r := NewRootFunc(func() (string, error) {
		calls++
		return "/srv/site", nil
	})

	for i := 0; i < 3; i++ {
		_, err := r.Build("cache")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, calls)
}

func TestRoot_Abs(t *testing.T) {
	r := NewRoot("/srv/site/")

	got, err := r.Abs("./repository/Data")
	require.NoError(t, err)
	assert.Equal(t, "/srv/site/repository/Data", got)

	got, err = r.Abs("cache", "..", "log")
	require.NoError(t, err)
	assert.Equal(t, "/srv/site/log", got)
}

func TestRoot_ResolveError(t *testing.T) {
	r := NewRootFunc(func() (string, error) { return "", errors.New("getwd failed") })

	_, err := r.Build("cache")
	require.Error(t, err)
	assert.Equal(t, bberrors.ErrCodeFilesystem, bberrors.CodeOf(err))
}

func TestNewRoot_EmptyUsesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	got, err := NewRoot("").Dir()
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}
