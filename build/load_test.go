package build

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDir(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "dist/a.js", []byte("a"), 0o644))
	require.NoError(t, util.WriteFile(fs, "dist/static/css/b.css", []byte("bb"), 0o644))
	require.NoError(t, util.WriteFile(fs, "other/c.txt", []byte("c"), 0o644))

	comp, err := LoadDir(fs, "dist")
	require.NoError(t, err)

	assert.Equal(t, []string{"a.js", "static/css/b.css"}, comp.Names())

	a, ok := comp.Asset("static/css/b.css")
	require.True(t, ok)
	assert.Equal(t, []byte("bb"), a.Source())
	assert.Equal(t, fs.Join("dist", "static", "css", "b.css"), a.ExistsAt())
}

func TestLoadDir_Missing(t *testing.T) {
	_, err := LoadDir(memfs.New(), "nope")
	assert.Error(t, err)
}
