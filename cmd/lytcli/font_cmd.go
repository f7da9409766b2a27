package main

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/linelayout/core/font"
	"github.com/npillmayer/linelayout/core/font/fontregistry"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runFontCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	initTracing(optFlag(flags, "trace"))
	conf := testconfig.Conf{}
	if assets := optFlag(flags, "assets"); assets != "" {
		conf["assets-dir"] = assets
	}
	reg := fontregistry.NewRegistry(conf)
	defer reg.Close()
	size := mustFlagInt(flags["size"], "size")
	f, err := reg.Resolve(args["font"].Value, float32(size), false)
	if err != nil {
		fatalf("%v", err)
	}
	printFontInfo(f)
	if text := optFlag(flags, "text"); text != "" {
		printGlyphs(f, text)
	}
}

func printFontInfo(f *font.Font) {
	m := f.Metrics()
	pf := func(x float32) string { return strconv.FormatFloat(float64(x), 'f', 2, 32) }
	data := pterm.TableData{
		{"Property", "Value"},
		{"Name", f.Name()},
		{"Path", f.Path()},
		{"Size", pf(f.Size())},
		{"Units per em", fmt.Sprintf("%d", f.UnitsPerEm())},
		{"Height", pf(m.Height)},
		{"Ascent", pf(m.Ascent)},
		{"Descent", pf(m.Descent)},
		{"Line thickness", pf(m.LineThickness)},
		{"Underline offset", pf(m.UnderlineOffset)},
		{"Strikethrough offset", pf(m.StrikethroughOffset)},
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		tracer().Errorf("cannot print table: %v", err)
	}
}

func printGlyphs(f *font.Font, text string) {
	data := pterm.TableData{{"Char", "Code point", "Glyph", "Advance", "Image"}}
	for _, r := range text {
		gid := f.GlyphIndex(r)
		img := "-"
		if gid != font.NotDef {
			if mask, bounds, _ := f.GlyphMask(gid); mask != nil {
				img = fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy())
			}
		}
		data = append(data, []string{
			string(r),
			fmt.Sprintf("U+%04X", r),
			fmt.Sprintf("%d", gid),
			fmt.Sprintf("%.2f", f.GlyphAdvance(gid)),
			img,
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		tracer().Errorf("cannot print table: %v", err)
	}
}
