/*
Package glyphing is the boundary between text layout and text shaping.

Shaping turns a run of text into positioned glyphs of a single font. This
package defines the data a shaper receives (a Run) and the data it produces
(GlyphRecords), together with the Shaper interface. Sub-packages implement
shapers on top of different engines.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyphing

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'lyt.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("lyt.glyphs")
}
