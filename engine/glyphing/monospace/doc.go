/*
Package monospace implements a simple shaper for monospace output.

The shaper does not apply any OpenType layout features. It splits text into
grapheme clusters, maps each cluster to the glyph of its first code-point and
advances by one or two cells, depending on the East Asian width of the
cluster.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package monospace

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lyt.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("lyt.glyphs")
}
