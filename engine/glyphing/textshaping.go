package glyphing

import (
	"fmt"
	"strings"

	"github.com/npillmayer/linelayout/core"
	"github.com/npillmayer/linelayout/core/font"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/bidi"
)

// Direction is the direction to typeset text in.
type Direction int

// Direction to typeset text in.
const (
	LeftToRight Direction = iota
	RightToLeft
	TopToBottom
	BottomToTop
)

func (d Direction) String() string {
	switch d {
	case LeftToRight:
		return "ltr"
	case RightToLeft:
		return "rtl"
	case TopToBottom:
		return "ttb"
	case BottomToTop:
		return "btt"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// IsBackward is true for directions which place glyphs against the logical
// order of the text, i.e. right-to-left and bottom-to-top.
func (d Direction) IsBackward() bool {
	return d == RightToLeft || d == BottomToTop
}

// ParseDirection parses "ltr", "rtl", "ttb" or "btt".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ltr", "":
		return LeftToRight, nil
	case "rtl":
		return RightToLeft, nil
	case "ttb":
		return TopToBottom, nil
	case "btt":
		return BottomToTop, nil
	}
	return LeftToRight, core.Error(core.EINVALID, "unknown text direction %q", s)
}

// Run is a piece of text of uniform script, direction and language.
type Run struct {
	Text      string
	Script    language.Script // 4-letter ISO 15924 script identifier
	Direction Direction       // writing direction
	Language  language.Tag    // BCP 47 language tag
	Features  []FeatureRange  // OpenType features to apply
}

// FeatureRange tells a shaper to turn a certain OpenType feature on or off for a
// range of code-points.
type FeatureRange struct {
	Feature    string // 4-letter feature tag
	Arg        int    // optional argument for this feature
	On         bool   // turn it on or off?
	Start, End int    // position of code-points to apply feature for
}

// GlyphRecord is a positioned glyph, as produced by a shaper. All values are
// in pixels at the size of the font used for shaping.
//
// Cluster groups glyphs resulting from the same piece of text. Cluster ids are
// unique within a run, ascending in logical order, but not necessarily
// contiguous.
type GlyphRecord struct {
	GlyphID  font.GlyphID
	Cluster  uint32
	XOffset  float32
	YOffset  float32
	XAdvance float32
}

// Missing is true if the font used for shaping does not have a glyph for
// this record's piece of text.
func (g GlyphRecord) Missing() bool {
	return g.GlyphID == font.NotDef
}

func (g GlyphRecord) String() string {
	return fmt.Sprintf("(GID=%d, cluster=%d, advance=%.2f)", g.GlyphID, g.Cluster, g.XAdvance)
}

// A Shaper creates a sequence of glyphs from a run of text, using glyphs from a
// single font. Characters the font cannot display result in glyph records for
// the 'notdef' glyph.
type Shaper interface {
	Shape(run Run, f *font.Font) ([]GlyphRecord, error)
}

// ShaperFunc adapts a function to the Shaper interface.
type ShaperFunc func(run Run, f *font.Font) ([]GlyphRecord, error)

// Shape calls sf(run, f).
func (sf ShaperFunc) Shape(run Run, f *font.Font) ([]GlyphRecord, error) {
	return sf(run, f)
}

// --- Runs ------------------------------------------------------------------

// NewRun creates a run for a piece of text in a given language. The script is
// derived from the language tag.
func NewRun(text string, lang language.Tag, dir Direction) Run {
	script, _ := lang.Script()
	return Run{
		Text:      text,
		Script:    script,
		Direction: dir,
		Language:  lang,
	}
}

// SplitRuns splits a paragraph of text into runs of uniform direction, in
// logical order. The paragraph's base direction follows from the language's
// script. Splitting is delegated to package golang.org/x/text/unicode/bidi.
func SplitRuns(text string, lang language.Tag) []Run {
	return SplitRunsWithBase(text, lang, DirectionOf(lang))
}

// SplitRunsWithBase is SplitRuns with an explicit base direction. Vertical
// base directions are not subject to the bidi algorithm and yield a single run.
func SplitRunsWithBase(text string, lang language.Tag, base Direction) []Run {
	if text == "" {
		return nil
	}
	if base != LeftToRight && base != RightToLeft {
		return []Run{NewRun(text, lang, base)}
	}
	bidiBase := bidi.LeftToRight
	if base == RightToLeft {
		bidiBase = bidi.RightToLeft
	}
	var p bidi.Paragraph
	if _, err := p.SetString(text, bidi.DefaultDirection(bidiBase)); err != nil {
		tracer().Errorf("cannot split text into bidi runs: %v", err)
		return []Run{NewRun(text, lang, base)}
	}
	order, err := p.Order()
	if err != nil {
		tracer().Errorf("cannot order bidi runs: %v", err)
		return []Run{NewRun(text, lang, base)}
	}
	runs := make([]Run, 0, order.NumRuns())
	for i := 0; i < order.NumRuns(); i++ {
		r := order.Run(i)
		dir := LeftToRight
		if r.Direction() == bidi.RightToLeft {
			dir = RightToLeft
		}
		runs = append(runs, NewRun(r.String(), lang, dir))
	}
	tracer().Debugf("split text into %d bidi runs", len(runs))
	return runs
}

// DirectionOf returns the dominant writing direction for a language.
func DirectionOf(lang language.Tag) Direction {
	script, _ := lang.Script()
	switch script.String() {
	case "Arab", "Hebr", "Syrc", "Thaa", "Nkoo", "Adlm", "Rohg", "Samr", "Mand":
		return RightToLeft
	}
	return LeftToRight
}
