/*
Command lytcli lays out lines of text from the command line.

	lytcli layout --config fallback.xml --lang he --dir rtl "שלום"
	lytcli font assets://GoRegular.ttf --text "Hello"
	lytcli repl --config fallback.xml

Font references are resolved relative to the assets folder given with
--assets.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/linelayout"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

// tracer traces with key 'lyt.cli'.
func tracer() tracing.Trace {
	return tracing.Select("lyt.cli")
}

var traceKeys = []string{"lyt.cli", "lyt.fonts", "lyt.resources", "lyt.glyphs", "lyt.layout", "lyt.cache"}

func main() {
	initDisplay()
	commando.
		SetExecutableName("lytcli").
		SetVersion("v0.1.0").
		SetDescription("CLI for laying out lines of text with font fallback.")

	commando.
		Register("layout").
		SetDescription("Lay out a line of text and print its clusters.").
		SetShortDescription("lay out text").
		AddArgument("text", "text to lay out", "").
		AddFlag("config,c", "fallback configuration (XML)", commando.String, "-").
		AddFlag("assets,a", "folder for assets:// font references", commando.String, "-").
		AddFlag("lang,l", "language tag (BCP 47, e.g. en, ar, he)", commando.String, "en").
		AddFlag("dir,d", "direction: ltr|rtl|ttb|btt|auto", commando.String, "auto").
		AddFlag("shaper,s", "shaper: harfbuzz|gotext|monospace", commando.String, "harfbuzz").
		AddFlag("size,z", "font size in pixels", commando.Int, 16).
		AddFlag("output,o", "render the line to a PNG file", commando.String, "-").
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runLayoutCommand)

	commando.
		Register("font").
		SetDescription("Load a font and print its metrics.").
		SetShortDescription("font metrics").
		AddArgument("font", "font reference (file://, assets:// or system://)", "").
		AddFlag("assets,a", "folder for assets:// font references", commando.String, "-").
		AddFlag("size,z", "font size in pixels", commando.Int, 16).
		AddFlag("text,x", "print glyph indices and advances for this text", commando.String, "-").
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runFontCommand)

	commando.
		Register("repl").
		SetDescription("Interactively lay out lines of text.").
		SetShortDescription("interactive mode").
		AddFlag("config,c", "fallback configuration (XML)", commando.String, "-").
		AddFlag("assets,a", "folder for assets:// font references", commando.String, "-").
		AddFlag("shaper,s", "shaper: harfbuzz|gotext|monospace", commando.String, "harfbuzz").
		AddFlag("size,z", "font size in pixels", commando.Int, 16).
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runREPLCommand)

	commando.Parse(nil)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// initTracing sets up logging to stderr, with all tracers of this module at
// a common level.
func initTracing(level string) {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace."+key] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Fprintln(os.Stderr, "error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	l := tracing.TraceLevelFromString(level)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(l)
	}
}

// contextConfig collects the configuration of a layout context from
// command line flags.
func contextConfig(flags map[string]commando.FlagValue) testconfig.Conf {
	conf := testconfig.Conf{}
	if cfg := optFlag(flags, "config"); cfg != "" {
		conf[linelayout.KeyFallbackConfig] = cfg
	}
	if assets := optFlag(flags, "assets"); assets != "" {
		conf["assets-dir"] = assets
	}
	if shaper := optFlag(flags, "shaper"); shaper != "" {
		conf[linelayout.KeyShaper] = shaper
	}
	if _, ok := flags["size"]; ok {
		conf[linelayout.KeyFontSize] = strconv.Itoa(mustFlagInt(flags["size"], "size"))
	}
	return conf
}

func newContext(flags map[string]commando.FlagValue) *linelayout.Context {
	initTracing(optFlag(flags, "trace"))
	ctx, err := linelayout.New(contextConfig(flags), nil)
	if err != nil {
		fatalf("cannot create layout context: %v", err)
	}
	return ctx
}

// optFlag returns the value of a string flag, with "-" denoting an unset
// flag.
func optFlag(flags map[string]commando.FlagValue, name string) string {
	fv, ok := flags[name]
	if !ok {
		return ""
	}
	s, err := fv.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	if s = strings.TrimSpace(s); s == "-" {
		return ""
	}
	return s
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func fatalf(format string, args ...interface{}) {
	pterm.Error.Printfln(format, args...)
	os.Exit(1)
}
