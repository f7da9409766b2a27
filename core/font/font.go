package font

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/npillmayer/linelayout/core"
	xsfnt "golang.org/x/image/font/sfnt"
	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"
)

// GlyphID is a font-specific glyph index as produced by a shaper.
// Glyph 0 is the 'notdef' glyph, denoting a missing glyph.
type GlyphID uint32

// NotDef is the glyph id shapers produce for characters a font cannot display.
const NotDef GlyphID = 0

// Font is a font loaded at a fixed pixel size.
type Font struct {
	name    string
	path    string
	size    float32
	mipmap  bool
	binary  []byte
	sfnt    *xsfnt.Font   // outlines and names
	cmap    cmap.Subtable // validated Unicode character map
	upem    uint16
	metrics Metrics
	glyphs  glyphCache
}

// Load reads a font file and prepares it for pixel size `size`.
//
// If the file cannot be read, an error with code core.EMISSING is returned.
// If it cannot be parsed or does not contain a Unicode character map,
// an error with code core.EINVALID is returned.
func Load(path string, size float32, mipmap bool) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", path)
	}
	f, err := Parse(data, size, mipmap)
	if err != nil {
		return nil, err
	}
	f.path = path
	tracer().Infof("loaded font %s from %s at %.1fpx", f.name, path, size)
	return f, nil
}

// Parse prepares a font from font data in memory. The returned font does not
// have a path.
func Parse(data []byte, size float32, mipmap bool) (*Font, error) {
	if size <= 0 {
		return nil, core.Error(core.EINVALID, "font size must be positive, is %g", size)
	}
	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font")
	}
	if info.UnitsPerEm == 0 {
		return nil, core.Error(core.EINVALID, "font has invalid units-per-em")
	}
	if info.CMapTable == nil {
		return nil, core.Error(core.EINVALID, "font has no character map")
	}
	subtable, err := info.CMapTable.GetBest()
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "font has no Unicode character map")
	}
	outlines, err := xsfnt.Parse(data)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font outlines")
	}
	f := &Font{
		size:   size,
		mipmap: mipmap,
		binary: data,
		sfnt:   outlines,
		cmap:   subtable,
		upem:   info.UnitsPerEm,
	}
	f.name, _ = outlines.Name(nil, xsfnt.NameIDFull)
	if f.name == "" {
		f.name = info.FamilyName
	}
	f.metrics = computeMetrics(info, data, size)
	f.glyphs.images = make(map[GlyphID]*GlyphImage)
	return f, nil
}

// --- Accessors -------------------------------------------------------------

// Name returns the full name of the font, as stated in its name table.
func (f *Font) Name() string { return f.name }

// Path returns the file path the font has been loaded from.
func (f *Font) Path() string { return f.path }

// Size returns the pixel size the font is prepared for.
func (f *Font) Size() float32 { return f.size }

// Mipmap returns true if glyph images of this font are intended for mipmapped
// textures.
func (f *Font) Mipmap() bool { return f.mipmap }

// UnitsPerEm returns the design units per em of the font.
func (f *Font) UnitsPerEm() uint16 { return f.upem }

// Binary returns the raw font data. Clients must not alter it.
func (f *Font) Binary() []byte { return f.binary }

// SFNT returns the parsed font container.
func (f *Font) SFNT() *xsfnt.Font { return f.sfnt }

// Metrics returns the vertical metrics of the font in pixels.
func (f *Font) Metrics() Metrics { return f.metrics }

// Scale returns the factor to convert font design units to pixels.
func (f *Font) Scale() float32 {
	return f.size / float32(f.upem)
}

// GlyphIndex maps a code-point to a glyph, using the font's character map.
// If the font does not have a glyph for r, NotDef is returned.
func (f *Font) GlyphIndex(r rune) GlyphID {
	return GlyphID(f.cmap.Lookup(r))
}

func (f *Font) String() string {
	return fmt.Sprintf("font(%s@%.1f)", f.name, f.size)
}

// --- Go Sans ---------------------------------------------------------------

var goSans struct {
	sync.Mutex
	fonts map[float32]*Font
}

// GoSans returns Go Sans at pixel size `size`. It is always present and will
// be used as a default font by tools, if nothing else is configured.
func GoSans(size float32) *Font {
	goSans.Lock()
	defer goSans.Unlock()
	if f, ok := goSans.fonts[size]; ok {
		return f
	}
	f, err := Parse(goregular.TTF, size, false)
	if err != nil {
		panic(fmt.Sprintf("cannot load Go Sans: %v", err)) // this cannot happen
	}
	f.path = "internal:goregular"
	if goSans.fonts == nil {
		goSans.fonts = make(map[float32]*Font)
	}
	goSans.fonts[size] = f
	return f
}
