/*
Package layout assembles shaped text into line layouts.

Text is given as runs of uniform script, direction and language. Each run is
shaped against the fonts of a fallback chain (a FontSet), one font after the
other, until every piece of text has a glyph or the chain is exhausted. The
results are merged into clusters: groups of glyphs which stem from the same
piece of text and are bound to a single font. The first font producing a glyph
for a piece of text wins.

Clusters of all runs are then placed on a line, in visual order, and the
vertical metrics of all contributing fonts are aggregated.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package layout

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'lyt.layout'.
func tracer() tracing.Trace {
	return tracing.Select("lyt.layout")
}
