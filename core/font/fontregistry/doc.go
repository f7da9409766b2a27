/*
Package fontregistry manages a registry for loaded fonts.

A registry is a context object; there is no application-wide singleton.
Clients create a registry, resolve font references through it, and close it
when no layout derived from its fonts is in use any more.

Fonts are identified by the triple (file path, pixel size, mipmap flag).
Resolving the same triple twice yields the identical *font.Font.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'lyt.fonts'
func tracer() tracing.Trace {
	return tracing.Select("lyt.fonts")
}
