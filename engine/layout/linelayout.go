package layout

import (
	"fmt"

	"github.com/npillmayer/linelayout/core/font"
	"github.com/npillmayer/linelayout/core/font/fallback"
	"github.com/npillmayer/linelayout/engine/glyphing"
	"golang.org/x/text/language"
)

// PlacedCluster is a cluster together with its position on a line, measured
// from the start of the line.
type PlacedCluster struct {
	Cluster  *Cluster
	Position float32
}

// LineLayout is a line of clusters in visual order, together with metrics
// aggregated over all fonts contributing to the line.
//
// A completed LineLayout must not be altered. It is then safe for concurrent
// reads.
type LineLayout struct {
	Clusters            []PlacedCluster
	Advance             float32 // total advance of all clusters
	MaxHeight           float32
	MaxAscent           float32
	MaxDescent          float32
	StrikethroughOffset float32
	UnderlineOffset     float32
	LineThickness       float32
	Direction           glyphing.Direction
	Language            language.Tag
}

// NewLineLayout creates an empty line layout.
func NewLineLayout(dir glyphing.Direction, lang language.Tag) *LineLayout {
	return &LineLayout{
		Direction: dir,
		Language:  lang,
	}
}

// AppendRun appends the clusters of a shaped run at the end of the line.
// Clusters are appended in ascending order of their ids for left-to-right
// (and top-to-bottom) runs, in descending order otherwise.
func (ll *LineLayout) AppendRun(rc *RunClusters, dir glyphing.Direction) {
	if rc == nil {
		return
	}
	rc.each(dir.IsBackward(), func(_ uint32, c *Cluster) {
		ll.addCluster(c)
	})
}

func (ll *LineLayout) addCluster(c *Cluster) {
	ll.Clusters = append(ll.Clusters, PlacedCluster{Cluster: c, Position: ll.Advance})
	ll.Advance += c.CombinedAdvance
	if c.Font != nil {
		ll.updateMetrics(c.Font.Metrics())
	}
}

func (ll *LineLayout) updateMetrics(m font.Metrics) {
	ll.MaxHeight = max(ll.MaxHeight, m.Height)
	ll.MaxAscent = max(ll.MaxAscent, m.Ascent)
	ll.MaxDescent = max(ll.MaxDescent, m.Descent)
	ll.StrikethroughOffset = max(ll.StrikethroughOffset, m.StrikethroughOffset)
	ll.UnderlineOffset = max(ll.UnderlineOffset, m.UnderlineOffset)
	ll.LineThickness = max(ll.LineThickness, m.LineThickness)
}

// Len returns the number of clusters on the line.
func (ll *LineLayout) Len() int {
	return len(ll.Clusters)
}

// GlyphCount returns the number of glyphs on the line.
func (ll *LineLayout) GlyphCount() int {
	n := 0
	for _, pc := range ll.Clusters {
		n += len(pc.Cluster.Shapes)
	}
	return n
}

// Fonts returns the fonts contributing to the line, in order of first
// appearance.
func (ll *LineLayout) Fonts() []*font.Font {
	var fonts []*font.Font
	seen := make(map[*font.Font]bool)
	for _, pc := range ll.Clusters {
		if f := pc.Cluster.Font; f != nil && !seen[f] {
			seen[f] = true
			fonts = append(fonts, f)
		}
	}
	return fonts
}

func (ll *LineLayout) String() string {
	return fmt.Sprintf("line(%s, %s, %d clusters, adv=%.2f)", ll.Language, ll.Direction,
		len(ll.Clusters), ll.Advance)
}

// Build shapes runs of text and places them on a new line, in the order given.
// Direction and language of the line are taken from the first run.
func Build(runs []glyphing.Run, fs *fallback.FontSet, shaper glyphing.Shaper) (*LineLayout, error) {
	ll := NewLineLayout(glyphing.LeftToRight, language.Und)
	if len(runs) > 0 {
		ll.Language = runs[0].Language
		ll.Direction = runs[0].Direction
	}
	for _, run := range runs {
		rc, err := ShapeRun(run, fs, shaper)
		if err != nil {
			return nil, err
		}
		ll.AppendRun(rc, run.Direction)
	}
	tracer().Debugf("built %s with font set #%d", ll, fs.ID())
	return ll, nil
}
