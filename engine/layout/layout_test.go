package layout

import (
	"errors"
	"testing"

	"github.com/npillmayer/linelayout/core"
	"github.com/npillmayer/linelayout/core/font"
	"github.com/npillmayer/linelayout/core/font/fallback"
	"github.com/npillmayer/linelayout/engine/glyphing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/language"
)

// scriptedShaper returns pre-defined glyph records per font and counts calls.
type scriptedShaper struct {
	records map[*font.Font][]glyphing.GlyphRecord
	calls   int
}

func (sh *scriptedShaper) Shape(run glyphing.Run, f *font.Font) ([]glyphing.GlyphRecord, error) {
	sh.calls++
	return sh.records[f], nil
}

func glyph(id font.GlyphID, cluster uint32, adv float32) glyphing.GlyphRecord {
	return glyphing.GlyphRecord{GlyphID: id, Cluster: cluster, XAdvance: adv}
}

func missing(cluster uint32) glyphing.GlyphRecord {
	return glyphing.GlyphRecord{GlyphID: font.NotDef, Cluster: cluster}
}

func twoFonts(t *testing.T) (*font.Font, *font.Font) {
	t.Helper()
	f0, err := font.Parse(goregular.TTF, 16, false)
	require.NoError(t, err)
	f1, err := font.Parse(gomono.TTF, 16, false)
	require.NoError(t, err)
	return f0, f1
}

func clusterIDs(rc *RunClusters) []uint32 {
	return rc.IDs()
}

func TestClusteringPrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lyt.layout")
	defer teardown()
	//
	f0, f1 := twoFonts(t)
	sh := &scriptedShaper{records: map[*font.Font][]glyphing.GlyphRecord{
		f0: {glyph(10, 0, 5), missing(1), glyph(12, 2, 7)},
		f1: {missing(0), glyph(21, 1, 6), missing(2)},
	}}
	fs := fallback.NewFontSet(f0, f1)
	run := glyphing.NewRun("abc", language.English, glyphing.LeftToRight)
	rc, err := ShapeRun(run, fs, sh)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2}, clusterIDs(rc))
	assert.False(t, rc.Unresolved())
	ll := NewLineLayout(glyphing.LeftToRight, language.English)
	ll.AppendRun(rc, glyphing.LeftToRight)
	require.Equal(t, 3, ll.Len())
	assert.Same(t, f0, ll.Clusters[0].Cluster.Font)
	assert.Same(t, f1, ll.Clusters[1].Cluster.Font)
	assert.Same(t, f0, ll.Clusters[2].Cluster.Font)
	assert.Equal(t, []float32{0, 5, 11}, []float32{
		ll.Clusters[0].Position, ll.Clusters[1].Position, ll.Clusters[2].Position,
	})
	assert.Equal(t, float32(18), ll.Advance)
}

func TestFallbackStopsAtFirstCompleteFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lyt.layout")
	defer teardown()
	//
	f0, f1 := twoFonts(t)
	sh := &scriptedShaper{records: map[*font.Font][]glyphing.GlyphRecord{
		f0: {glyph(10, 0, 5), glyph(11, 1, 5)},
		f1: {glyph(20, 0, 6), glyph(21, 1, 6)},
	}}
	rc, err := ShapeRun(glyphing.Run{Text: "ab"}, fallback.NewFontSet(f0, f1), sh)
	require.NoError(t, err)
	assert.Equal(t, 1, sh.calls, "second font must not be shaped with")
	c, ok := rc.Cluster(1)
	require.True(t, ok)
	assert.Same(t, f0, c.Font)
}

func TestClustersAreNotCorrupted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lyt.layout")
	defer teardown()
	//
	f0, f1 := twoFonts(t)
	sh := &scriptedShaper{records: map[*font.Font][]glyphing.GlyphRecord{
		f0: {glyph(10, 0, 5), missing(1)},
		f1: {glyph(20, 0, 9), glyph(20, 0, 9), glyph(21, 1, 6)},
	}}
	rc, err := ShapeRun(glyphing.Run{Text: "ab"}, fallback.NewFontSet(f0, f1), sh)
	require.NoError(t, err)
	c0, ok := rc.Cluster(0)
	require.True(t, ok)
	assert.Same(t, f0, c0.Font)
	assert.Equal(t, []Shape{{GlyphID: 10}}, c0.Shapes)
	assert.Equal(t, float32(5), c0.CombinedAdvance)
	c1, ok := rc.Cluster(1)
	require.True(t, ok)
	assert.Same(t, f1, c1.Font)
}

func TestMultiGlyphClusterOffsets(t *testing.T) {
	f0, _ := twoFonts(t)
	sh := &scriptedShaper{records: map[*font.Font][]glyphing.GlyphRecord{
		f0: {
			glyph(10, 0, 5),
			{GlyphID: 11, Cluster: 0, XOffset: 1, YOffset: 2, XAdvance: 3},
			glyph(12, 4, 7),
		},
	}}
	rc, err := ShapeRun(glyphing.Run{Text: "ab"}, fallback.NewFontSet(f0), sh)
	require.NoError(t, err)
	c0, _ := rc.Cluster(0)
	require.Len(t, c0.Shapes, 2)
	assert.Equal(t, Point{X: 6, Y: -2}, c0.Shapes[1].Offset)
	assert.Equal(t, float32(8), c0.CombinedAdvance)
	assert.Equal(t, []uint32{0, 4}, rc.IDs())
}

func TestDirectionalReordering(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lyt.layout")
	defer teardown()
	//
	f0, _ := twoFonts(t)
	sh := &scriptedShaper{records: map[*font.Font][]glyphing.GlyphRecord{
		f0: {glyph(17, 7, 1), glyph(15, 5, 2), glyph(16, 6, 3)},
	}}
	fs := fallback.NewFontSet(f0)
	rc, err := ShapeRun(glyphing.Run{Text: "xyz", Direction: glyphing.RightToLeft}, fs, sh)
	require.NoError(t, err)
	rtl := NewLineLayout(glyphing.RightToLeft, language.Hebrew)
	rtl.AppendRun(rc, glyphing.RightToLeft)
	ltr := NewLineLayout(glyphing.LeftToRight, language.English)
	ltr.AppendRun(rc, glyphing.LeftToRight)
	ids := func(ll *LineLayout) []font.GlyphID {
		var gids []font.GlyphID
		for _, pc := range ll.Clusters {
			gids = append(gids, pc.Cluster.Shapes[0].GlyphID)
		}
		return gids
	}
	assert.Equal(t, []font.GlyphID{17, 16, 15}, ids(rtl))
	assert.Equal(t, []font.GlyphID{15, 16, 17}, ids(ltr))
	assert.Equal(t, rtl.Advance, ltr.Advance)
}

func TestTotalAdvance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lyt.layout")
	defer teardown()
	//
	f0, f1 := twoFonts(t)
	sh := glyphing.ShaperFunc(func(run glyphing.Run, f *font.Font) ([]glyphing.GlyphRecord, error) {
		if f == f0 {
			return []glyphing.GlyphRecord{glyph(1, 0, 1.5), missing(1), glyph(3, 2, 2.25)}, nil
		}
		return []glyphing.GlyphRecord{glyph(4, 1, 4)}, nil
	})
	runs := []glyphing.Run{
		{Text: "abc", Direction: glyphing.LeftToRight, Language: language.English},
		{Text: "def", Direction: glyphing.RightToLeft, Language: language.English},
	}
	ll, err := Build(runs, fallback.NewFontSet(f0, f1), sh)
	require.NoError(t, err)
	require.Equal(t, 6, ll.Len())
	var sum float32
	for i, pc := range ll.Clusters {
		assert.Equal(t, sum, pc.Position, "position of cluster #%d", i)
		sum += pc.Cluster.CombinedAdvance
	}
	assert.Equal(t, sum, ll.Advance)
	assert.Equal(t, float32(2*(1.5+4+2.25)), ll.Advance)
	assert.Equal(t, 6, ll.GlyphCount())
	assert.Equal(t, []*font.Font{f0, f1}, ll.Fonts())
	assert.Equal(t, language.English, ll.Language)
}

func TestMetricsOfContributingFonts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lyt.layout")
	defer teardown()
	//
	small, err := font.Parse(goregular.TTF, 10, false)
	require.NoError(t, err)
	large, err := font.Parse(goregular.TTF, 40, false)
	require.NoError(t, err)
	sh := &scriptedShaper{records: map[*font.Font][]glyphing.GlyphRecord{
		small: {glyph(10, 0, 5)},
		large: {glyph(10, 0, 20)},
	}}
	ll, err := Build([]glyphing.Run{{Text: "a"}}, fallback.NewFontSet(small, large), sh)
	require.NoError(t, err)
	m := small.Metrics()
	assert.Equal(t, m.Ascent, ll.MaxAscent)
	assert.Equal(t, m.Descent, ll.MaxDescent)
	assert.Equal(t, m.Height, ll.MaxHeight)
	assert.Equal(t, m.LineThickness, ll.LineThickness)
	assert.Equal(t, m.UnderlineOffset, ll.UnderlineOffset)
	assert.Equal(t, m.StrikethroughOffset, ll.StrikethroughOffset)
}

func TestUnresolvedAndEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lyt.layout")
	defer teardown()
	//
	f0, f1 := twoFonts(t)
	sh := &scriptedShaper{records: map[*font.Font][]glyphing.GlyphRecord{
		f0: {glyph(10, 0, 5), missing(1)},
		f1: {missing(0), missing(1)},
	}}
	rc, err := ShapeRun(glyphing.Run{Text: "ab"}, fallback.NewFontSet(f0, f1), sh)
	require.NoError(t, err)
	assert.True(t, rc.Unresolved())
	assert.Equal(t, []uint32{0}, rc.IDs())
	//
	ll, err := Build([]glyphing.Run{{Text: "ab"}}, fallback.NewFontSet(), sh)
	require.NoError(t, err)
	assert.Equal(t, 0, ll.Len())
	assert.Equal(t, float32(0), ll.Advance)
	assert.Equal(t, float32(0), ll.MaxHeight)
}

func TestShaperErrorAborts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lyt.layout")
	defer teardown()
	//
	f0, f1 := twoFonts(t)
	boom := errors.New("engine failure")
	sh := glyphing.ShaperFunc(func(run glyphing.Run, f *font.Font) ([]glyphing.GlyphRecord, error) {
		if f == f1 {
			return nil, boom
		}
		return []glyphing.GlyphRecord{missing(0)}, nil
	})
	_, err := ShapeRun(glyphing.Run{Text: "a"}, fallback.NewFontSet(f0, f1), sh)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, core.EINTERNAL, core.Code(err))
	_, err = Build([]glyphing.Run{{Text: "a"}}, fallback.NewFontSet(f0, f1), sh)
	assert.ErrorIs(t, err, boom)
	_, err = ShapeRun(glyphing.Run{Text: "a"}, fallback.NewFontSet(f0), nil)
	assert.Error(t, err)
}
