package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/linelayout"
	"github.com/npillmayer/linelayout/engine/glyphing"
	"github.com/npillmayer/linelayout/engine/layout"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
	"golang.org/x/text/language"
)

func runLayoutCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	ctx := newContext(flags)
	defer ctx.Close()
	lang, err := parseLanguage(optFlag(flags, "lang"))
	if err != nil {
		fatalf("%v", err)
	}
	text := args["text"].Value
	ll, err := layoutLine(ctx, text, lang, optFlag(flags, "dir"))
	if err != nil {
		fatalf("layout failed: %v", err)
	}
	printLayout(ll)
	if out := optFlag(flags, "output"); out != "" {
		if err := renderPNG(ll, out); err != nil {
			fatalf("render failed: %v", err)
		}
		pterm.Info.Printfln("wrote %s", out)
	}
}

// layoutLine lays out text either as a single run with a given direction
// or, for direction "auto", split into runs of uniform direction.
func layoutLine(ctx *linelayout.Context, text string, lang language.Tag, dir string) (*layout.LineLayout, error) {
	if dir == "" || strings.EqualFold(dir, "auto") {
		return ctx.Layout(text, lang)
	}
	d, err := glyphing.ParseDirection(dir)
	if err != nil {
		return nil, err
	}
	fs, err := ctx.ResolveFontSet(lang.String())
	if err != nil {
		pterm.Warning.Printfln("font set for %s is incomplete: %v", lang, err)
	}
	return ctx.GetLineLayout(fs, text, lang, d)
}

func parseLanguage(s string) (language.Tag, error) {
	if s == "" {
		s = "en"
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("invalid language tag %q: %w", s, err)
	}
	return tag, nil
}

func printLayout(ll *layout.LineLayout) {
	data := pterm.TableData{{"#", "Position", "Advance", "Font", "Glyphs"}}
	for i, pc := range ll.Clusters {
		gids := make([]string, len(pc.Cluster.Shapes))
		for j, sh := range pc.Cluster.Shapes {
			gids[j] = fmt.Sprintf("%d", sh.GlyphID)
		}
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%.2f", pc.Position),
			fmt.Sprintf("%.2f", pc.Cluster.CombinedAdvance),
			pc.Cluster.Font.Name(),
			strings.Join(gids, " "),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		tracer().Errorf("cannot print table: %v", err)
	}
	pterm.Printfln("%s: advance=%.2f height=%.2f ascent=%.2f descent=%.2f",
		ll.Direction, ll.Advance, ll.MaxHeight, ll.MaxAscent, ll.MaxDescent)
}
