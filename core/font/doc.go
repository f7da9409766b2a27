/*
Package font is for font handling.

We will stick to the following nomenclature:

* A "typeface" is a family of fonts. An example is "Helvetica".

* A "font" in this package is a font file loaded at a certain pixel size.
An example is "Helvetica regular at 16px". Go (Golang) calls this a face.

Fonts are loaded once per (path, size, mipmap) triple, usually by a
fontregistry.Registry, and shared by pointer thereafter. A font is validated
when loaded: it must parse as an OpenType/TrueType font and contain a usable
Unicode character map.

Each font owns a cache of glyph images, which are rendered lazily. Images may
be discarded, e.g. when a rendering context is lost; they are re-rendered in
place on next access.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package font

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'lyt.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("lyt.fonts")
}
