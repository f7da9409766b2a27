/*
Package resources resolves font references to files.

A font reference is a URI-like string. Supported schemes are

   file://path/to/font.ttf      a file in the local file system
   assets://fonts/font.ttf      a file relative to the configured assets folder
   system://DejaVuSans.ttf      a font installed on the system

A reference without a scheme is treated as a file path. The assets folder is
taken from configuration key `assets-dir`.

System fonts are located with package github.com/flopp/go-findfont. If that
fails and configuration key `fontconfig` points to the 'fc-list' binary of
fontconfig, the list of fonts known to fontconfig is searched as well, by
file name and then by family name.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'lyt.resources'.
func tracer() tracing.Trace {
	return tracing.Select("lyt.resources")
}
