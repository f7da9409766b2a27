package monospace

import (
	"unicode/utf8"

	"github.com/npillmayer/linelayout/core"
	"github.com/npillmayer/linelayout/core/font"
	"github.com/npillmayer/linelayout/engine/glyphing"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
)

// Shaper is a shaper for monospace typesetting. It is safe for concurrent use.
type Shaper struct {
	context *uax11.Context
}

var _ glyphing.Shaper = (*Shaper)(nil)

// New creates a shaper for monospace typesetting. A uax11 context may be
// given to determine the width of ambiguous characters. If it is nil,
// a Latin context is used.
func New(context *uax11.Context) *Shaper {
	sh := &Shaper{context: context}
	if context == nil {
		sh.context = uax11.LatinContext
	}
	grapheme.SetupGraphemeClasses()
	return sh
}

// Shape creates glyph records from a text, one per grapheme cluster.
// Cluster ids are rune positions of the start of each grapheme.
//
// The cell width is the advance of the font's glyph for '0'.
func (ms *Shaper) Shape(run glyphing.Run, f *font.Font) ([]glyphing.GlyphRecord, error) {
	if f == nil {
		return nil, core.Error(core.EINTERNAL, "monospace shaper needs a font")
	}
	gstr := grapheme.StringFromString(run.Text)
	if gstr.Len() == 0 {
		return nil, nil
	}
	cell := f.GlyphAdvance(f.GlyphIndex('0'))
	if cell <= 0 {
		cell = f.Size() / 2
	}
	records := make([]glyphing.GlyphRecord, 0, gstr.Len())
	pos := 0
	for i := 0; i < gstr.Len(); i++ {
		grphm := []byte(gstr.Nth(i))
		w := uax11.Width(grphm, ms.context)
		codepoint, _ := utf8.DecodeRune(grphm)
		records = append(records, glyphing.GlyphRecord{
			GlyphID:  f.GlyphIndex(codepoint),
			Cluster:  uint32(pos),
			XAdvance: float32(w) * cell,
		})
		pos += utf8.RuneCount(grphm)
	}
	tracer().Debugf("monospace shaper produced %d glyphs with %s", len(records), f)
	return records, nil
}
