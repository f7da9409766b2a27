package font

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/npillmayer/linelayout/core"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/sfnt"
)

// --- Test Suite Preparation ------------------------------------------------

type FontTestEnviron struct {
	suite.Suite
	dir  string
	path string
	font *Font
}

// listen for 'go test' command --> run test methods
func TestFontFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lyt.fonts")
	defer teardown()
	suite.Run(t, new(FontTestEnviron))
}

// run once, before test suite methods
func (env *FontTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("lyt.fonts").SetTraceLevel(tracing.LevelError)
	env.dir = env.T().TempDir()
	env.path = filepath.Join(env.dir, "goregular.ttf")
	env.Require().NoError(os.WriteFile(env.path, goregular.TTF, 0o644))
	f, err := Load(env.path, 16, false)
	env.Require().NoError(err)
	env.font = f
}

// run once, after test suite methods
func (env *FontTestEnviron) TearDownSuite() {
	env.T().Log("Tearing down test suite")
}

// --- Tests -----------------------------------------------------------------

func (env *FontTestEnviron) TestLoad() {
	env.Equal("Go Regular", env.font.Name())
	env.Equal(env.path, env.font.Path())
	env.Equal(float32(16), env.font.Size())
	env.False(env.font.Mipmap())
	env.Equal(uint16(2048), env.font.UnitsPerEm())
	env.InDelta(16.0/2048.0, env.font.Scale(), 1e-6)
}

func (env *FontTestEnviron) TestLoadMissing() {
	_, err := Load(filepath.Join(env.dir, "does-not-exist.ttf"), 16, false)
	env.Error(err)
	env.Equal(core.EMISSING, core.Code(err))
}

func (env *FontTestEnviron) TestLoadInvalid() {
	p := filepath.Join(env.dir, "garbage.ttf")
	env.Require().NoError(os.WriteFile(p, []byte("this is not a font at all"), 0o644))
	_, err := Load(p, 16, false)
	env.Error(err)
	env.Equal(core.EINVALID, core.Code(err))
	_, err = Parse(goregular.TTF, 0, false)
	env.Equal(core.EINVALID, core.Code(err))
}

func (env *FontTestEnviron) TestMetrics() {
	m := env.font.Metrics()
	env.Greater(m.Ascent, float32(0))
	env.Greater(m.Descent, float32(0))
	env.GreaterOrEqual(m.Height, m.Ascent+m.Descent)
	env.Greater(m.LineThickness, float32(0))
	env.Greater(m.UnderlineOffset, float32(0)) // below baseline
	env.Greater(m.StrikethroughOffset, float32(0))
	env.Less(m.StrikethroughOffset, m.Ascent)
	// metrics scale linearly with size
	f32, err := Parse(goregular.TTF, 32, false)
	env.Require().NoError(err)
	env.InDelta(2*m.Ascent, f32.Metrics().Ascent, 1e-3)
}

func (env *FontTestEnviron) TestGlyphIndex() {
	env.NotEqual(NotDef, env.font.GlyphIndex('A'))
	env.NotEqual(env.font.GlyphIndex('A'), env.font.GlyphIndex('B'))
	env.Equal(NotDef, env.font.GlyphIndex('א')) // Go fonts have no Hebrew
}

func (env *FontTestEnviron) TestGlyphCache() {
	f, err := Load(env.path, 16, true)
	env.Require().NoError(err)
	gA := f.GlyphIndex('A')
	img := f.Glyph(gA)
	env.True(img.Valid())
	env.True(img.Mipmap)
	env.NotNil(img.Mask)
	env.False(img.Bounds.Empty())
	env.Greater(img.Advance, float32(0))
	env.Equal(img.Advance, f.GlyphAdvance(gA))
	env.Same(img, f.Glyph(gA))
	//
	space := f.Glyph(f.GlyphIndex(' '))
	env.True(space.Valid())
	env.Nil(space.Mask)
	env.Greater(space.Advance, float32(0))
	env.Equal(2, f.GlyphCount())
	//
	f.DiscardImages()
	env.False(img.Valid())
	env.Nil(img.Mask)
	env.Equal(2, f.GlyphCount())
	again := f.Glyph(gA)
	env.Same(img, again, "re-rendering must happen in place")
	env.True(again.Valid())
	env.NotNil(again.Mask)
	//
	f.ClearGlyphCache()
	env.Equal(0, f.GlyphCount())
	env.NotSame(img, f.Glyph(gA))
}

func (env *FontTestEnviron) TestGlyphMaskWhileDiscarding() {
	f, err := Load(env.path, 16, false)
	env.Require().NoError(err)
	gA := f.GlyphIndex('A')
	mask, bounds, adv := f.GlyphMask(gA)
	env.Require().NotNil(mask)
	env.Equal(mask.Bounds().Size(), bounds.Size())
	env.Greater(adv, float32(0))
	//
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			f.DiscardImages()
		}
	}()
	masks := make([]bool, 100)
	go func() {
		defer wg.Done()
		for i := range masks {
			m, b, _ := f.GlyphMask(gA)
			masks[i] = m != nil && m.Bounds().Size() == b.Size()
		}
	}()
	wg.Wait()
	for i, ok := range masks {
		env.True(ok, "snapshot %d of glyph mask is inconsistent", i)
	}
	var again *image.Alpha
	again, _, _ = f.GlyphMask(gA)
	env.Equal(mask.Pix, again.Pix, "re-rendered mask must be equal")
}

func (env *FontTestEnviron) TestGoSans() {
	f := GoSans(12)
	env.Same(f, GoSans(12))
	env.Equal("Go Regular", f.Name())
}

func TestStrikeoutPosition(t *testing.T) {
	pos, ok := strikeoutPosition(goregular.TTF)
	if !ok || pos <= 0 {
		t.Errorf("expected positive strikeout position for Go Regular, have %d (%v)", pos, ok)
	}
	if _, ok = strikeoutPosition(goregular.TTF[:20]); ok {
		t.Errorf("expected truncated font data to have no OS/2 table")
	}
	if _, ok = strikeoutPosition(nil); ok {
		t.Errorf("expected empty font data to have no OS/2 table")
	}
}

func TestStrikethroughWithoutOS2Table(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lyt.fonts")
	defer teardown()
	//
	info, err := sfnt.Read(bytes.NewReader(goregular.TTF))
	require.NoError(t, err)
	m := computeMetrics(info, nil, 100)
	require.Greater(t, m.Descent, float32(0))
	// Go Regular: ascent 77.10px, descent 19.29px
	assert.InDelta(t, 0.5*(m.Ascent-m.Descent), m.StrikethroughOffset, 0.001)
	assert.InDelta(t, 28.91, m.StrikethroughOffset, 0.05)
	assert.Less(t, m.StrikethroughOffset, m.Ascent)
}
