/*
Package cache holds line layouts for re-use.

Line layouts are keyed by font set, text, language and direction. The cache
is bounded by a cost budget; the cost of a layout is the byte length of its
text. When the budget would be exceeded, least recently used layouts are
evicted. A layout for a text which alone costs the whole budget clears the
cache before it is inserted.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cache

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'lyt.cache'.
func tracer() tracing.Trace {
	return tracing.Select("lyt.cache")
}
