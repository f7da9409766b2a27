/*
Package harfbuzz uses HarfBuzz to convert text to sequences of glyphs.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package harfbuzz

import (
	"bytes"
	"encoding/binary"
	"sync"
	"unicode"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	hblang "github.com/benoitkugler/textlayout/language"
	"github.com/npillmayer/linelayout/core"
	"github.com/npillmayer/linelayout/core/font"
	"github.com/npillmayer/linelayout/engine/glyphing"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/language"
)

// tracer traces with key 'lyt.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("lyt.glyphs")
}

// --- Type conversion -------------------------------------------------------

// Lang4HB returns a language tag as a HarfBuzz language.
func Lang4HB(l language.Tag) hblang.Language {
	return hblang.NewLanguage(l.String())
}

// Script4HB returns a script as a HarfBuzz script.
func Script4HB(s language.Script) hblang.Script {
	b := []byte(s.String())
	b[0] = byte(unicode.ToLower(rune(b[0])))
	h := binary.BigEndian.Uint32(b)
	return hblang.Script(h)
}

// Direction4HB translates a direction to a HarfBuzz direction.
func Direction4HB(d glyphing.Direction) hb.Direction {
	switch d {
	case glyphing.LeftToRight:
		return hb.LeftToRight
	case glyphing.RightToLeft:
		return hb.RightToLeft
	case glyphing.TopToBottom:
		return hb.TopToBottom
	case glyphing.BottomToTop:
		return hb.BottomToTop
	}
	return hb.LeftToRight
}

// Feature4HB converts a 4-letter OpenType feature tag to a HarfBuzz truetype tag.
// Shorter tags are padded with spaces.
func Feature4HB(tag string) hbtt.Tag {
	b := []byte("    ")
	copy(b, tag)
	return hbtt.Tag(binary.BigEndian.Uint32(b))
}

// FeatureRange4HB converts a feature range struct to a HarfBuzz Feature switch.
func FeatureRange4HB(frng glyphing.FeatureRange) hb.Feature {
	f := hb.Feature{
		Tag:   Feature4HB(frng.Feature),
		Start: frng.Start,
		End:   frng.End,
	}
	if frng.On {
		if frng.Arg > 0 {
			f.Value = uint32(frng.Arg)
		} else {
			f.Value = 1
		}
	}
	return f
}

// --- Shaper ----------------------------------------------------------------

// Shaper calls the HarfBuzz shaper. HarfBuzz fonts are created once per font
// and kept for subsequent calls. A Shaper is safe for concurrent use.
type Shaper struct {
	mx    sync.Mutex
	fonts map[*font.Font]*hb.Font
}

var _ glyphing.Shaper = (*Shaper)(nil)

// New creates a HarfBuzz shaper.
func New() *Shaper {
	return &Shaper{fonts: make(map[*font.Font]*hb.Font)}
}

// Shape shapes a run of text, turning its Unicode characters to
// positioned glyphs. It will select a shape plan based on the run's
// properties and the font.
//
// If `run.Features` is not empty, it will be used to control the
// features applied during shaping. If two features have the same tag but
// overlapping ranges the value of the feature with the higher index takes
// precedence.
//
// Cluster ids of the resulting glyph records are rune positions within the
// run's text.
func (sh *Shaper) Shape(run glyphing.Run, f *font.Font) ([]glyphing.GlyphRecord, error) {
	if f == nil {
		return nil, core.Error(core.EINTERNAL, "HarfBuzz shaper needs a font")
	}
	if run.Text == "" {
		return nil, nil
	}
	sh.mx.Lock()
	defer sh.mx.Unlock()
	hbFont, err := sh.hbFont(f)
	if err != nil {
		return nil, err
	}
	features := make([]hb.Feature, 0, len(run.Features))
	for _, feat := range run.Features {
		features = append(features, FeatureRange4HB(feat))
	}
	buf := hb.NewBuffer()
	convertParams(&buf.Props, run)
	runes := []rune(run.Text)
	buf.AddRunes(runes, 0, len(runes))
	buf.Shape(hbFont, features)
	// HarfBuzz positions are in font units, as we do not set a scale
	scale := f.Scale()
	vertical := run.Direction == glyphing.TopToBottom || run.Direction == glyphing.BottomToTop
	records := make([]glyphing.GlyphRecord, len(buf.Info))
	for i, ginfo := range buf.Info {
		gpos := buf.Pos[i]
		g := &records[i]
		g.GlyphID = font.GlyphID(ginfo.Glyph)
		g.Cluster = uint32(ginfo.Cluster)
		g.XOffset = float32(gpos.XOffset) * scale
		g.YOffset = float32(gpos.YOffset) * scale
		if vertical {
			g.XAdvance = -float32(gpos.YAdvance) * scale
		} else {
			g.XAdvance = float32(gpos.XAdvance) * scale
		}
	}
	tracer().Debugf("HarfBuzz shaped %d runes into %d glyphs with %s", len(runes), len(records), f)
	return records, nil
}

// hbFont has to be called with the shaper locked.
func (sh *Shaper) hbFont(f *font.Font) (*hb.Font, error) {
	if hbFont, ok := sh.fonts[f]; ok {
		return hbFont, nil
	}
	face, err := hbtt.Parse(bytes.NewReader(f.Binary()), true)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "HarfBuzz cannot parse font %s", f.Name())
	}
	hbFont := hb.NewFont(face)
	sh.fonts[f] = hbFont
	return hbFont, nil
}

// convertParams is a helper function to convert run parameters to
// HarfBuzz's format.
func convertParams(props *hb.SegmentProperties, run glyphing.Run) {
	if run.Language != language.Und {
		props.Language = Lang4HB(run.Language)
	}
	var none language.Script
	if run.Script != none {
		props.Script = Script4HB(run.Script)
	}
	props.Direction = Direction4HB(run.Direction)
}
