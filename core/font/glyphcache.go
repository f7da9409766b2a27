package font

import (
	"image"
	"image/draw"
	"sync"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// GlyphImage is a rendered glyph, ready to be uploaded to a texture.
//
// Glyphs without an outline, such as spaces, have a nil Mask. They are kept
// in the cache nevertheless, so they will not be rendered again.
type GlyphImage struct {
	ID      GlyphID
	Mask    *image.Alpha    // coverage mask, or nil
	Bounds  image.Rectangle // mask position relative to the pen position, y downwards
	Advance float32         // horizontal advance in pixels
	Mipmap  bool
	valid   bool
}

// Valid returns false if the image has been discarded and needs to be
// rendered again.
func (img *GlyphImage) Valid() bool {
	return img != nil && img.valid
}

// Discard releases the glyph's image data.
func (img *GlyphImage) Discard() {
	img.Mask = nil
	img.valid = false
}

type glyphCache struct {
	sync.Mutex
	buf    sfnt.Buffer
	images map[GlyphID]*GlyphImage
}

// Glyph returns the image of glyph `id`, rendering it if necessary.
//
// If the glyph has been rendered before but its image has since been
// discarded, the existing cache entry is rendered again in place. Clients
// holding the entry will therefore see the new image.
//
// The fields of the returned entry are written under the cache lock by
// Glyph and DiscardImages. Reading them directly is safe only on the
// goroutine which owns the font's images, usually the rendering goroutine.
// Other goroutines use GlyphMask.
func (f *Font) Glyph(id GlyphID) *GlyphImage {
	f.glyphs.Lock()
	defer f.glyphs.Unlock()
	img, ok := f.glyphs.images[id]
	if ok && img.valid {
		return img
	}
	if !ok {
		img = &GlyphImage{ID: id, Mipmap: f.mipmap}
		f.glyphs.images[id] = img
	} else {
		tracer().Debugf("re-rendering discarded glyph %d of %s", id, f.name)
	}
	if err := f.render(img); err != nil {
		tracer().Errorf("cannot render glyph %d of %s: %v", id, f.name, err)
	}
	img.valid = true
	return img
}

// GlyphMask returns a snapshot of the image of glyph `id`, rendering it if
// necessary. It is safe for concurrent use with Glyph and DiscardImages.
// A mask, once rendered, is never written to again, so the returned mask
// stays valid even if the cache entry is discarded afterwards.
func (f *Font) GlyphMask(id GlyphID) (mask *image.Alpha, bounds image.Rectangle, advance float32) {
	img := f.Glyph(id)
	f.glyphs.Lock()
	defer f.glyphs.Unlock()
	if !img.valid { // discarded between the calls
		if err := f.render(img); err != nil {
			tracer().Errorf("cannot render glyph %d of %s: %v", id, f.name, err)
		}
		img.valid = true
	}
	return img.Mask, img.Bounds, img.Advance
}

// DiscardImages invalidates all glyph images of the font, keeping the
// cache entries.
func (f *Font) DiscardImages() {
	f.glyphs.Lock()
	defer f.glyphs.Unlock()
	for _, img := range f.glyphs.images {
		img.Discard()
	}
}

// ClearGlyphCache drops all cache entries.
func (f *Font) ClearGlyphCache() {
	f.glyphs.Lock()
	defer f.glyphs.Unlock()
	f.glyphs.images = make(map[GlyphID]*GlyphImage)
}

// GlyphCount returns the number of entries in the glyph cache.
func (f *Font) GlyphCount() int {
	f.glyphs.Lock()
	defer f.glyphs.Unlock()
	return len(f.glyphs.images)
}

// GlyphAdvance returns the horizontal advance of a glyph in pixels, without
// rendering it.
func (f *Font) GlyphAdvance(id GlyphID) float32 {
	f.glyphs.Lock()
	defer f.glyphs.Unlock()
	ppem := fixed.Int26_6(f.size * 64)
	adv, err := f.sfnt.GlyphAdvance(&f.glyphs.buf, sfnt.GlyphIndex(id), ppem, xfont.HintingNone)
	if err != nil {
		tracer().Debugf("no advance for glyph %d of %s: %v", id, f.name, err)
		return 0
	}
	return float32(adv) / 64
}

// render has to be called with the glyph cache locked.
func (f *Font) render(img *GlyphImage) error {
	img.Mask, img.Bounds = nil, image.Rectangle{}
	ppem := fixed.Int26_6(f.size * 64)
	gid := sfnt.GlyphIndex(img.ID)
	adv, err := f.sfnt.GlyphAdvance(&f.glyphs.buf, gid, ppem, xfont.HintingNone)
	if err != nil {
		return err
	}
	img.Advance = float32(adv) / 64
	segs, err := f.sfnt.LoadGlyph(&f.glyphs.buf, gid, ppem, nil)
	if err != nil {
		return err
	}
	if len(segs) == 0 {
		return nil
	}
	b := segs.Bounds()
	bounds := image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil())
	if bounds.Empty() {
		return nil
	}
	tx, ty := -float32(bounds.Min.X), -float32(bounds.Min.Y)
	w, h := bounds.Dx(), bounds.Dy()
	rast := vector.NewRasterizer(w, h)
	rast.DrawOp = draw.Src
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			rast.MoveTo(tx+float32(seg.Args[0].X)/64, ty+float32(seg.Args[0].Y)/64)
		case sfnt.SegmentOpLineTo:
			rast.LineTo(tx+float32(seg.Args[0].X)/64, ty+float32(seg.Args[0].Y)/64)
		case sfnt.SegmentOpQuadTo:
			rast.QuadTo(
				tx+float32(seg.Args[0].X)/64, ty+float32(seg.Args[0].Y)/64,
				tx+float32(seg.Args[1].X)/64, ty+float32(seg.Args[1].Y)/64,
			)
		case sfnt.SegmentOpCubeTo:
			rast.CubeTo(
				tx+float32(seg.Args[0].X)/64, ty+float32(seg.Args[0].Y)/64,
				tx+float32(seg.Args[1].X)/64, ty+float32(seg.Args[1].Y)/64,
				tx+float32(seg.Args[2].X)/64, ty+float32(seg.Args[2].Y)/64,
			)
		}
	}
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	rast.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	img.Mask, img.Bounds = mask, bounds
	return nil
}
