package options

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backbee/bbinstall/pkg/defaults"
	bberrors "github.com/backbee/bbinstall/pkg/errors"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		defaults  map[string]any
		overrides map[string]any
		want      Options
	}{
		{
			name:     "no overrides keeps defaults",
			defaults: map[string]any{"prompt": true, "backbee-cache-dir": "cache"},
			want:     Options{"prompt": true, "backbee-cache-dir": "cache"},
		},
		{
			name:      "override wins",
			defaults:  map[string]any{"prompt": true, "backbee-cache-dir": "cache"},
			overrides: map[string]any{"backbee-cache-dir": "var/cache"},
			want:      Options{"prompt": true, "backbee-cache-dir": "var/cache"},
		},
		{
			name:      "unknown keys are not introduced",
			defaults:  map[string]any{"prompt": true},
			overrides: map[string]any{"incenteev-parameters": map[string]any{"file": "x"}},
			want:      Options{"prompt": true},
		},
		{
			name:      "nil override still wins",
			defaults:  map[string]any{"backbee-log-dir": "log"},
			overrides: map[string]any{"backbee-log-dir": nil},
			want:      Options{"backbee-log-dir": nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.defaults, tt.overrides)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, len(tt.defaults))
		})
	}
}

func TestResolve_DoesNotMutateDefaults(t *testing.T) {
	d := defaults.Options()
	_ = Resolve(d, map[string]any{defaults.OptCacheDir: "other"})
	assert.Equal(t, "cache", d[defaults.OptCacheDir])
}

func TestOverlay(t *testing.T) {
	got := Overlay(
		map[string]any{"prompt": true, "backbee-log-dir": "log"},
		map[string]any{"prompt": "false"},
	)
	assert.Equal(t, map[string]any{"prompt": "false", "backbee-log-dir": "log"}, got)
}

func TestOptions_Accessors(t *testing.T) {
	o := Options{
		"b1": true,
		"b2": "false",
		"b3": "yes",
		"s1": "cache",
		"s2": 42,
		"s3": nil,
	}

	assert.True(t, o.Bool("b1"))
	assert.False(t, o.Bool("b2"))
	assert.False(t, o.Bool("b3"))
	assert.False(t, o.Bool("missing"))

	assert.Equal(t, "cache", o.String("s1"))
	assert.Equal(t, "42", o.String("s2"))
	assert.Equal(t, "", o.String("s3"))
	assert.Equal(t, "", o.String("missing"))
}

func TestOptions_Keys(t *testing.T) {
	o := Options{"tmp": "Tmp", "media": "Media", "prompt": true}
	assert.Equal(t, []string{"media", "prompt", "tmp"}, o.Keys())
	assert.Empty(t, Options{}.Keys())
}

func TestOptions_Validate(t *testing.T) {
	ok := Options{"prompt": true, "generate-structure": "0"}
	require.NoError(t, ok.Validate("prompt", "generate-structure"))

	bad := Options{"prompt": "sometimes"}
	err := bad.Validate("prompt")
	require.Error(t, err)
	assert.Equal(t, bberrors.ErrCodeInvalidOption, bberrors.CodeOf(err))
	assert.Contains(t, err.Error(), "option=prompt")
}

func TestUnknown(t *testing.T) {
	got := Unknown(defaults.Options(), map[string]any{
		"backbee-data-Storage-dir": "Files",
		"backbee-cahce-dir":        "c",
		"incenteev-parameters":     map[string]any{},
		"prompt":                   false,
	})

	assert.Equal(t, []UnknownKey{
		{Key: "backbee-cahce-dir", Suggestion: defaults.OptCacheDir},
		{Key: "backbee-data-Storage-dir", Suggestion: defaults.OptDataStorageDir},
		{Key: "incenteev-parameters", Suggestion: ""},
	}, got)
}

func TestParseOverrides(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    map[string]any
		wantErr bool
	}{
		{name: "empty", pairs: nil, want: map[string]any{}},
		{name: "single", pairs: []string{"prompt=false"}, want: map[string]any{"prompt": "false"}},
		{name: "value with equals", pairs: []string{"backbee-log-dir=a=b"}, want: map[string]any{"backbee-log-dir": "a=b"}},
		{name: "trims spaces", pairs: []string{" prompt = true "}, want: map[string]any{"prompt": "true"}},
		{name: "last wins", pairs: []string{"prompt=true", "prompt=false"}, want: map[string]any{"prompt": "false"}},
		{name: "missing equals", pairs: []string{"prompt"}, wantErr: true},
		{name: "empty key", pairs: []string{"=true"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOverrides(tt.pairs)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, bberrors.ErrCodeInvalidOption, bberrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadExtra(t *testing.T) {
	fs := memfs.New()

	t.Run("missing descriptor", func(t *testing.T) {
		got, err := LoadExtra(fs, "/p/composer.json")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("extra section", func(t *testing.T) {
		require.NoError(t, util.WriteFile(fs, "/p1/composer.json", []byte(`{
  "name": "backbee/standard",
  "extra": {"generate-structure": false, "backbee-cache-dir": "var/cache"}
}`), 0o644))

		got, err := LoadExtra(fs, "/p1/composer.json")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"generate-structure": false, "backbee-cache-dir": "var/cache"}, got)
	})

	t.Run("no extra section", func(t *testing.T) {
		require.NoError(t, util.WriteFile(fs, "/p2/composer.json", []byte(`{"name": "x"}`), 0o644))

		got, err := LoadExtra(fs, "/p2/composer.json")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("malformed descriptor", func(t *testing.T) {
		require.NoError(t, util.WriteFile(fs, "/p3/composer.json", []byte(`{"extra": `), 0o644))

		_, err := LoadExtra(fs, "/p3/composer.json")
		require.Error(t, err)
		assert.Equal(t, bberrors.ErrCodeParse, bberrors.CodeOf(err))
	})
}
