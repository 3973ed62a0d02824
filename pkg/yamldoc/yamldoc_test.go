package yamldoc

import (
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bberrors "github.com/backbee/bbinstall/pkg/errors"
)

func TestParse_EmptyAndNull(t *testing.T) {
	for _, in := range []string{"", "~\n", "# only a comment\n"} {
		doc, err := Parse([]byte(in))
		require.NoError(t, err, "input %q", in)
		assert.False(t, doc.Has("parameters"))
	}
}

func TestParse_RejectsNonMapping(t *testing.T) {
	_, err := Parse([]byte("- a\n- b\n"))
	require.Error(t, err)
}

func TestSetDefault(t *testing.T) {
	doc, err := Parse([]byte(`# services
parameters:
    bbapp.cache.dir: /custom/cache
services: {}
`))
	require.NoError(t, err)

	changed, err := doc.SetDefault("/p/cache", "parameters", "bbapp.cache.dir")
	require.NoError(t, err)
	assert.False(t, changed, "existing key must not change")

	changed, err = doc.SetDefault("/p/log", "parameters", "bbapp.log.dir")
	require.NoError(t, err)
	assert.True(t, changed)

	var got string
	require.NoError(t, doc.Decode(&got, "parameters", "bbapp.cache.dir"))
	assert.Equal(t, "/custom/cache", got)
	require.NoError(t, doc.Decode(&got, "parameters", "bbapp.log.dir"))
	assert.Equal(t, "/p/log", got)

	out, err := Marshal(doc.Node())
	require.NoError(t, err)
	assert.Contains(t, string(out), "# services")
	assert.Less(t, strings.Index(string(out), "bbapp.cache.dir"), strings.Index(string(out), "bbapp.log.dir"))
}

func TestSetDefault_CreatesMissingAndNullParents(t *testing.T) {
	doc := New()
	changed, err := doc.SetDefault("s3cr3t", "parameters", "secret_key")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, doc.Has("parameters", "secret_key"))

	doc, err = Parse([]byte("parameters: ~\n"))
	require.NoError(t, err)
	changed, err = doc.SetDefault("s3cr3t", "parameters", "secret_key")
	require.NoError(t, err)
	assert.True(t, changed)

	params, err := doc.ParametersMap()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"secret_key": "s3cr3t"}, params)
}

func TestSetDefault_NullLeafCountsAsPresent(t *testing.T) {
	doc, err := Parse([]byte("parameters:\n    secret_key: ~\n"))
	require.NoError(t, err)

	changed, err := doc.SetDefault("generated", "parameters", "secret_key")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestSetDefault_ScalarParent(t *testing.T) {
	doc, err := Parse([]byte("parameters: 3\n"))
	require.NoError(t, err)

	_, err = doc.SetDefault("x", "parameters", "secret_key")
	require.Error(t, err)
}

func TestReadWrite(t *testing.T) {
	fs := memfs.New()

	doc, found, err := Read(fs, "/p/repository/Config/services.yml")
	require.NoError(t, err)
	assert.False(t, found)

	_, err = doc.SetDefault("abc", "parameters", "secret_key")
	require.NoError(t, err)
	require.NoError(t, Write(fs, "/p/repository/Config/services.yml", doc))

	data, err := util.ReadFile(fs, "/p/repository/Config/services.yml")
	require.NoError(t, err)
	assert.Equal(t, "parameters:\n    secret_key: abc\n", string(data))

	doc, found, err = Read(fs, "/p/repository/Config/services.yml")
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, doc.Has("parameters", "secret_key"))
}

func TestRead_Malformed(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "/p/bad.yml", []byte("parameters: [unclosed\n"), 0o644))

	_, found, err := Read(fs, "/p/bad.yml")
	require.Error(t, err)
	assert.True(t, found)
	assert.Equal(t, bberrors.ErrCodeParse, bberrors.CodeOf(err))
}

func TestExists(t *testing.T) {
	fs := memfs.New()
	ok, err := Exists(fs, "/p/doctrine.yml")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, util.WriteFile(fs, "/p/doctrine.yml", []byte("dbal: {}\n"), 0o644))
	ok, err = Exists(fs, "/p/doctrine.yml")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestKeys_DocumentOrder(t *testing.T) {
	doc, err := Parse([]byte("parameters:\n    zeta: 1\n    alpha: 2\n    mid: ~\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, doc.Keys("parameters"))
	assert.Nil(t, doc.Keys("missing"))
	assert.Nil(t, doc.Keys("parameters", "zeta"))
}
