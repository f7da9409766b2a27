package resources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/linelayout/core"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("not really a font"), 0o644))
	return p
}

func TestResolveFileReference(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lyt.resources")
	defer teardown()
	tracing.Select("lyt.resources").SetTraceLevel(tracing.LevelDebug)
	//
	dir := t.TempDir()
	p := writeFile(t, dir, "a.ttf")
	fpath, err := ResolveFontPath(nil, "file://"+p)
	require.NoError(t, err)
	assert.Equal(t, p, fpath)
	//
	fpath, err = ResolveFontPath(nil, p) // bare path
	require.NoError(t, err)
	assert.Equal(t, p, fpath)
}

func TestResolveAssetsReference(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lyt.resources")
	defer teardown()
	//
	dir := t.TempDir()
	p := writeFile(t, dir, "fonts/b.ttf")
	conf := testconfig.Conf{
		"assets-dir": dir,
	}
	fpath, err := ResolveFontPath(conf, "assets://fonts/b.ttf")
	require.NoError(t, err)
	assert.Equal(t, p, fpath)
	assert.Equal(t, DefaultAssetsDir, AssetsDir(nil))
}

func TestResolveMissing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lyt.resources")
	defer teardown()
	//
	dir := t.TempDir()
	refs := []string{
		"",
		"file://" + filepath.Join(dir, "nope.ttf"),
		"assets://nope.ttf",
		"system://no-such-font-installed-anywhere.ttf",
		"http://example.com/font.ttf",
		dir, // a folder, not a file
	}
	for _, ref := range refs {
		_, err := ResolveFontPath(testconfig.Conf{"assets-dir": dir}, ref)
		require.Error(t, err, "reference %q", ref)
		assert.Equal(t, core.EMISSING, core.Code(err), "reference %q", ref)
	}
}

func TestNormalizePath(t *testing.T) {
	p := NormalizePath("fonts/../fonts/./x.ttf")
	assert.True(t, filepath.IsAbs(p))
	assert.Equal(t, "x.ttf", filepath.Base(p))
	assert.Equal(t, NormalizePath("fonts/x.ttf"), p)
}
