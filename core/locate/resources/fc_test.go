package resources

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fcList = `/usr/share/fonts/noto/NotoSans-Regular.ttf: Noto Sans:style=Regular
/usr/share/fonts/noto/NotoSansHebrew-Bold.ttf: Noto Sans Hebrew,Noto Sans Hebrew Bold:style=Bold

/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc: Noto Sans CJK JP:style=Regular
/usr/share/fonts/dejavu/DejaVuSans.ttf: .DejaVu Sans:style=Book
garbage
`

func TestParseFontConfigList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lyt.resources")
	defer teardown()
	//
	entries, err := parseFontConfigList(strings.NewReader(fcList))
	require.NoError(t, err)
	require.Len(t, entries, 3, "collections and garbage are skipped")
	assert.Equal(t, "Noto Sans Hebrew", entries[1].Family)
	assert.Equal(t, "DejaVu Sans", entries[2].Family)
	//
	p, ok := matchFontConfig(entries, "notosans-regular.ttf")
	assert.True(t, ok)
	assert.Equal(t, "/usr/share/fonts/noto/NotoSans-Regular.ttf", p)
	p, ok = matchFontConfig(entries, "DejaVu Sans")
	assert.True(t, ok)
	assert.Equal(t, "/usr/share/fonts/dejavu/DejaVuSans.ttf", p)
	_, ok = matchFontConfig(entries, "NotoSansCJK-Regular.ttc")
	assert.False(t, ok)
}

func TestFontConfigNotConfigured(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lyt.resources")
	defer teardown()
	//
	_, ok := findFontConfigFont(testconfig.Conf{}, "DejaVuSans.ttf")
	assert.False(t, ok)
	_, ok = findFontConfigFont(nil, "DejaVuSans.ttf")
	assert.False(t, ok)
	_, ok = cacheFontConfigList(testconfig.Conf{"fontconfig": "relative/fc-list"})
	assert.False(t, ok)
}

func TestCacheDirPath(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	dir, err := CacheDirPath(testconfig.Conf{"app-key": "lyt-test"}, "fonts")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(dir, "lyt-test/fonts"), dir)
	assert.DirExists(t, dir)
	dir, err = CacheDirPath(nil)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(dir, DefaultAppKey), dir)
}
