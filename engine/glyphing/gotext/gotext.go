/*
Package gotext implements a shaper on top of the HarfBuzz port of the
go-text project (github.com/go-text/typesetting).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gotext

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	gtlang "github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/npillmayer/linelayout/core"
	"github.com/npillmayer/linelayout/core/font"
	"github.com/npillmayer/linelayout/engine/glyphing"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
)

// tracer traces with key 'lyt.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("lyt.glyphs")
}

// Shaper shapes text with the go-text HarfBuzz shaper. Faces are parsed once
// per font. Go-text faces are not safe for concurrent use, so calls to Shape
// are serialized.
type Shaper struct {
	mx     sync.Mutex
	shaper shaping.HarfbuzzShaper
	faces  map[*font.Font]*gtfont.Face
}

var _ glyphing.Shaper = (*Shaper)(nil)

// New creates a go-text shaper.
func New() *Shaper {
	return &Shaper{faces: make(map[*font.Font]*gtfont.Face)}
}

// Shape shapes a run of text with a single font. Cluster ids of the
// resulting glyph records are rune positions within the run's text.
func (sh *Shaper) Shape(run glyphing.Run, f *font.Font) ([]glyphing.GlyphRecord, error) {
	if f == nil {
		return nil, core.Error(core.EINTERNAL, "go-text shaper needs a font")
	}
	if run.Text == "" {
		return nil, nil
	}
	sh.mx.Lock()
	defer sh.mx.Unlock()
	face, err := sh.face(f)
	if err != nil {
		return nil, err
	}
	runes := []rune(run.Text)
	input := shaping.Input{
		Text:         runes,
		RunStart:     0,
		RunEnd:       len(runes),
		Direction:    Direction4GT(run.Direction),
		Face:         face,
		FontFeatures: features4GT(run.Features),
		Size:         fixed.Int26_6(f.Size() * 64),
		Script:       Script4GT(run.Script),
	}
	if run.Language != language.Und {
		input.Language = gtlang.NewLanguage(run.Language.String())
	}
	out := sh.shaper.Shape(input)
	records := make([]glyphing.GlyphRecord, len(out.Glyphs))
	for i, g := range out.Glyphs {
		records[i] = glyphing.GlyphRecord{
			GlyphID:  font.GlyphID(g.GlyphID),
			Cluster:  uint32(g.TextIndex()),
			XOffset:  fromFixed(g.XOffset),
			YOffset:  fromFixed(g.YOffset),
			XAdvance: fromFixed(g.Advance),
		}
		if input.Direction.IsVertical() {
			records[i].XAdvance = -records[i].XAdvance
		}
	}
	tracer().Debugf("go-text shaped %d runes into %d glyphs with %s", len(runes), len(records), f)
	return records, nil
}

// face has to be called with the shaper locked.
func (sh *Shaper) face(f *font.Font) (*gtfont.Face, error) {
	if face, ok := sh.faces[f]; ok {
		return face, nil
	}
	face, err := gtfont.ParseTTF(bytes.NewReader(f.Binary()))
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "go-text cannot parse font %s", f.Name())
	}
	sh.faces[f] = face
	return face, nil
}

// --- Type conversion -------------------------------------------------------

// Direction4GT translates a direction to a go-text direction.
func Direction4GT(d glyphing.Direction) di.Direction {
	switch d {
	case glyphing.RightToLeft:
		return di.DirectionRTL
	case glyphing.TopToBottom:
		return di.DirectionTTB
	case glyphing.BottomToTop:
		return di.DirectionBTT
	}
	return di.DirectionLTR
}

// Script4GT translates a script to a go-text script. Unknown scripts
// translate to 0, letting the shaper guess.
func Script4GT(s language.Script) gtlang.Script {
	var none language.Script
	if s == none {
		return 0
	}
	script, err := gtlang.ParseScript(s.String())
	if err != nil {
		return 0
	}
	return script
}

func features4GT(franges []glyphing.FeatureRange) []shaping.FontFeature {
	if len(franges) == 0 {
		return nil
	}
	features := make([]shaping.FontFeature, 0, len(franges))
	for _, frng := range franges {
		b := []byte("    ")
		copy(b, frng.Feature)
		feat := shaping.FontFeature{Tag: gtfont.Tag(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))}
		if frng.On {
			feat.Value = 1
			if frng.Arg > 0 {
				feat.Value = uint32(frng.Arg)
			}
		}
		features = append(features, feat)
	}
	return features
}

func fromFixed(x fixed.Int26_6) float32 {
	return float32(x) / 64
}
