package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/npillmayer/linelayout/engine/layout"
)

const margin = 8

// renderPNG draws a line layout as black text on white background, using the
// glyph images of the fonts involved.
func renderPNG(ll *layout.LineLayout, outPath string) error {
	w := int(math.Ceil(float64(ll.Advance))) + 2*margin
	h := int(math.Ceil(float64(ll.MaxAscent+ll.MaxDescent))) + 2*margin
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	baseline := float32(margin) + ll.MaxAscent
	for _, pc := range ll.Clusters {
		for _, sh := range pc.Cluster.Shapes {
			mask, bounds, _ := pc.Cluster.Font.GlyphMask(sh.GlyphID)
			if mask == nil {
				continue
			}
			pen := image.Pt(
				int(math.Round(float64(margin+pc.Position+sh.Offset.X))),
				int(math.Round(float64(baseline+sh.Offset.Y))),
			)
			r := bounds.Add(pen)
			draw.DrawMask(img, r, image.Black, image.Point{}, mask, image.Point{}, draw.Over)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("cannot encode png: %w", err)
	}
	return nil
}
