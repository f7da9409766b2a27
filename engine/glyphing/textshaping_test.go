package glyphing

import (
	"testing"

	"github.com/npillmayer/linelayout/core"
	"github.com/npillmayer/linelayout/core/font"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestDirections(t *testing.T) {
	for s, d := range map[string]Direction{
		"ltr": LeftToRight, "RTL": RightToLeft, "ttb": TopToBottom, "btt": BottomToTop, "": LeftToRight,
	} {
		dir, err := ParseDirection(s)
		require.NoError(t, err)
		assert.Equal(t, d, dir)
	}
	_, err := ParseDirection("sideways")
	assert.Equal(t, core.EINVALID, core.Code(err))
	assert.True(t, RightToLeft.IsBackward())
	assert.True(t, BottomToTop.IsBackward())
	assert.False(t, TopToBottom.IsBackward())
	assert.Equal(t, "rtl", RightToLeft.String())
	assert.Equal(t, RightToLeft, DirectionOf(language.Hebrew))
	assert.Equal(t, RightToLeft, DirectionOf(language.Arabic))
	assert.Equal(t, LeftToRight, DirectionOf(language.Japanese))
}

func TestNewRun(t *testing.T) {
	run := NewRun("שלום", language.Hebrew, RightToLeft)
	assert.Equal(t, "Hebr", run.Script.String())
	run = NewRun("Hello", language.MustParse("en-US"), LeftToRight)
	assert.Equal(t, "Latn", run.Script.String())
}

func TestSplitRuns(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lyt.glyphs")
	defer teardown()
	//
	assert.Nil(t, SplitRuns("", language.English))
	runs := SplitRuns("Hello World", language.English)
	require.Len(t, runs, 1)
	assert.Equal(t, LeftToRight, runs[0].Direction)
	assert.Equal(t, "Hello World", runs[0].Text)
	//
	runs = SplitRuns("hello שלום world", language.English)
	require.Len(t, runs, 3)
	assert.Equal(t, []Direction{LeftToRight, RightToLeft, LeftToRight},
		[]Direction{runs[0].Direction, runs[1].Direction, runs[2].Direction})
	assert.Equal(t, "שלום", runs[1].Text)
	//
	runs = SplitRuns("שלום", language.Hebrew)
	require.Len(t, runs, 1)
	assert.Equal(t, RightToLeft, runs[0].Direction)
}

func TestShaperFunc(t *testing.T) {
	var sh Shaper = ShaperFunc(func(run Run, f *font.Font) ([]GlyphRecord, error) {
		return []GlyphRecord{{GlyphID: 0, Cluster: 0}, {GlyphID: 7, Cluster: 1, XAdvance: 5}}, nil
	})
	recs, err := sh.Shape(Run{Text: "ab"}, nil)
	require.NoError(t, err)
	assert.True(t, recs[0].Missing())
	assert.False(t, recs[1].Missing())
}

func TestSplitRunsWithBase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lyt.glyphs")
	defer teardown()
	//
	runs := SplitRunsWithBase("abc", language.Hebrew, LeftToRight)
	require.Len(t, runs, 1)
	assert.Equal(t, LeftToRight, runs[0].Direction)
	runs = SplitRunsWithBase("שלום", language.English, RightToLeft)
	require.Len(t, runs, 1)
	assert.Equal(t, RightToLeft, runs[0].Direction)
	//
	runs = SplitRunsWithBase("abc שלום", language.English, TopToBottom)
	require.Len(t, runs, 1)
	assert.Equal(t, TopToBottom, runs[0].Direction)
}
