/*
Package linelayout lays out lines of text with font fallback.

A Context bundles the parts needed to turn a string into a positioned line
of glyphs:

■ a font registry, loading each font file once per size

■ a fallback resolver, mapping language tags to font sets according to an
XML fallback configuration

■ a shaper, turning runs of text into glyphs

■ an LRU cache of line layouts

Clients create a Context from a configuration:

	conf := testconfig.Conf{
	    "fallback-config":       "assets/fallback.xml",
	    "layout-cache-capacity": 8192,
	}
	ctx, err := linelayout.New(conf, nil)
	fs, _ := ctx.ResolveFontSet("en")
	line, err := ctx.GetLineLayout(fs, "Hello World", language.English, glyphing.LeftToRight)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package linelayout

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'lyt.layout'.
func tracer() tracing.Trace {
	return tracing.Select("lyt.layout")
}
