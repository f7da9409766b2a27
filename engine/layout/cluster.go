package layout

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/linelayout/core"
	"github.com/npillmayer/linelayout/core/font"
	"github.com/npillmayer/linelayout/core/font/fallback"
	"github.com/npillmayer/linelayout/engine/glyphing"
)

// Point is a position in pixels, y growing downwards.
type Point struct {
	X, Y float32
}

// Shape is a glyph placed relative to the origin of its cluster.
type Shape struct {
	GlyphID font.GlyphID
	Offset  Point
}

// Cluster is a group of glyphs shaped from the same piece of text.
// All glyphs of a cluster are taken from the same font.
type Cluster struct {
	Font            *font.Font
	CombinedAdvance float32
	Shapes          []Shape
}

// addShape appends a glyph, positioned after the glyphs already in the cluster.
func (c *Cluster) addShape(g glyphing.GlyphRecord) {
	c.Shapes = append(c.Shapes, Shape{
		GlyphID: g.GlyphID,
		Offset:  Point{X: c.CombinedAdvance + g.XOffset, Y: -g.YOffset},
	})
	c.CombinedAdvance += g.XAdvance
}

func (c *Cluster) String() string {
	return fmt.Sprintf("cluster(%d shapes, adv=%.2f, %v)", len(c.Shapes), c.CombinedAdvance, c.Font)
}

// RunClusters holds the clusters of a shaped run, ordered by cluster id.
type RunClusters struct {
	Run        glyphing.Run
	clusters   *treemap.Map // uint32 -> *Cluster
	unresolved bool
}

func newRunClusters(run glyphing.Run) *RunClusters {
	return &RunClusters{
		Run:      run,
		clusters: treemap.NewWith(utils.UInt32Comparator),
	}
}

// Len returns the number of clusters.
func (rc *RunClusters) Len() int {
	return rc.clusters.Size()
}

// Cluster returns the cluster for a source cluster id.
func (rc *RunClusters) Cluster(id uint32) (*Cluster, bool) {
	c, ok := rc.clusters.Get(id)
	if !ok {
		return nil, false
	}
	return c.(*Cluster), true
}

// IDs returns the cluster ids in ascending order.
func (rc *RunClusters) IDs() []uint32 {
	ids := make([]uint32, 0, rc.clusters.Size())
	for _, k := range rc.clusters.Keys() {
		ids = append(ids, k.(uint32))
	}
	return ids
}

// Unresolved is true if some text of the run could not be displayed with any
// font of the font set. Clusters for this text are absent.
func (rc *RunClusters) Unresolved() bool {
	return rc.unresolved
}

// each calls f for every cluster, in ascending order of cluster ids or in
// descending order if backwards is set.
func (rc *RunClusters) each(backwards bool, f func(id uint32, c *Cluster)) {
	it := rc.clusters.Iterator()
	if backwards {
		for it.End(); it.Prev(); {
			f(it.Key().(uint32), it.Value().(*Cluster))
		}
		return
	}
	for it.Begin(); it.Next(); {
		f(it.Key().(uint32), it.Value().(*Cluster))
	}
}

// ShapeRun shapes a run of text against the fonts of a font set.
//
// Fonts are tried in order. A piece of text is bound to the first font which
// produces a glyph for it; glyphs of later fonts for the same piece of text
// are ignored. As soon as a font leaves no piece of text without a glyph, the
// remaining fonts are skipped. Text without a glyph in any font does not
// produce a cluster.
//
// An error returned by the shaper aborts shaping and is returned.
func ShapeRun(run glyphing.Run, fs *fallback.FontSet, shaper glyphing.Shaper) (*RunClusters, error) {
	rc := newRunClusters(run)
	if shaper == nil {
		return nil, core.Error(core.EINTERNAL, "cannot shape run without a shaper")
	}
	rc.unresolved = run.Text != ""
	for _, f := range fs.Fonts() {
		records, err := shaper.Shape(run, f)
		if err != nil {
			return nil, core.WrapError(err, core.Code(err), "cannot shape run with font %s", f.Name())
		}
		hasMissing := false
		for _, g := range records {
			c, found := rc.Cluster(g.Cluster)
			if g.Missing() {
				if !found {
					hasMissing = true
				}
				continue
			}
			if found && c.Font != f {
				continue // cluster already bound to an earlier font
			}
			if !found {
				c = &Cluster{Font: f}
				rc.clusters.Put(g.Cluster, c)
			}
			c.addShape(g)
		}
		if !hasMissing {
			rc.unresolved = false
			break
		}
		tracer().Debugf("font %s leaves glyphs missing, trying next font", f.Name())
	}
	if rc.unresolved {
		tracer().Infof("run %q has text without glyphs in font set #%d", run.Text, fs.ID())
	}
	return rc, nil
}
