package main

import (
	"errors"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/linelayout"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
	"golang.org/x/text/language"
)

func runREPLCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	ctx := newContext(flags)
	defer ctx.Close()
	pterm.Info.Println("Welcome to the line layout CLI")
	repl, err := readline.New("lyt > ")
	if err != nil {
		fatalf("%v", err)
	}
	defer repl.Close()
	intp := &Intp{ctx: ctx, repl: repl, lang: language.English, dir: "auto"}
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()
}

// Intp is our interpreter object
type Intp struct {
	ctx  *linelayout.Context
	repl *readline.Instance
	lang language.Tag
	dir  string
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.execute(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// execute runs a command. Commands start with a colon, everything else is
// text to lay out.
func (intp *Intp) execute(line string) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		ll, err := layoutLine(intp.ctx, line, intp.lang, intp.dir)
		if err != nil {
			return false, err
		}
		printLayout(ll)
		return false, nil
	}
	cmd, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)
	tracer().Debugf("command %q, argument %q", cmd, arg)
	switch strings.ToLower(cmd) {
	case "quit", "q":
		return true, nil
	case "lang":
		tag, err := parseLanguage(arg)
		if err != nil {
			return false, err
		}
		intp.lang = tag
		pterm.Printfln("language is %s", tag)
	case "dir":
		intp.dir = arg
		pterm.Printfln("direction is %s", arg)
	case "capacity":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return false, errors.New("capacity must be a number")
		}
		if err := intp.ctx.SetCapacity(n); err != nil {
			return false, err
		}
		pterm.Printfln("cache capacity is %d", n)
	case "usage":
		pterm.Printfln("cache usage is %d", intp.ctx.MemoryUsage())
	case "clear":
		intp.ctx.Clear()
	case "fonts":
		fs, err := intp.ctx.ResolveFontSet(intp.lang.String())
		if err != nil {
			pterm.Warning.Println(err.Error())
		}
		for i, f := range fs.Fonts() {
			pterm.Printfln("%2d: %s", i, f)
		}
		intp.ctx.Registry().LogFontList()
	case "discard":
		intp.ctx.Registry().DiscardGlyphImages()
	default:
		help()
	}
	return false, nil
}

func help() {
	pterm.Info.Println("Commands")
	pterm.Println(`
	:lang <tag>       set the language (BCP 47)
	:dir <dir>        set the direction: ltr, rtl, ttb, btt or auto
	:capacity <n>     set the capacity of the layout cache
	:usage            print the usage of the layout cache
	:clear            clear the layout cache
	:fonts            list the fonts for the current language
	:discard          discard all glyph images
	:quit             leave
	
	Any other input is laid out as a line of text.`)
}
