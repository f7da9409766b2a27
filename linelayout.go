package linelayout

import (
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/linelayout/core"
	"github.com/npillmayer/linelayout/core/font/fallback"
	"github.com/npillmayer/linelayout/core/font/fontregistry"
	"github.com/npillmayer/linelayout/engine/glyphing"
	"github.com/npillmayer/linelayout/engine/glyphing/gotext"
	"github.com/npillmayer/linelayout/engine/glyphing/harfbuzz"
	"github.com/npillmayer/linelayout/engine/glyphing/monospace"
	"github.com/npillmayer/linelayout/engine/layout"
	"github.com/npillmayer/linelayout/engine/layout/cache"
	"github.com/npillmayer/schuko"
	"golang.org/x/text/language"
)

// Configuration keys
const (
	KeyCacheCapacity  = "layout-cache-capacity"
	KeyFontSize       = "font-size"
	KeyFontMipmap     = "font-mipmap"
	KeyFallbackConfig = "fallback-config"
	KeyShaper         = "shaper" // harfbuzz (default), gotext or monospace
)

// Defaults for unset configuration keys
const (
	DefaultCacheCapacity = 4096
	DefaultFontSize      = 16
)

// Context is the entry point for laying out lines of text.
// A Context is safe for concurrent use.
type Context struct {
	registry *fontregistry.Registry
	resolver *fallback.Resolver
	shaper   glyphing.Shaper
	cache    *cache.Cache
	size     float32
	mipmap   bool
}

// New creates a context from a configuration. If shaper is nil, a shaper is
// selected by configuration key "shaper".
func New(conf schuko.Configuration, shaper glyphing.Shaper) (*Context, error) {
	if conf == nil {
		return nil, core.Error(core.EINTERNAL, "layout context needs a configuration")
	}
	ctx := &Context{
		registry: fontregistry.NewRegistry(conf),
		shaper:   shaper,
		size:     DefaultFontSize,
		mipmap:   conf.GetBool(KeyFontMipmap),
	}
	if conf.IsSet(KeyFontSize) {
		size, err := strconv.ParseFloat(conf.GetString(KeyFontSize), 32)
		if err != nil || size <= 0 {
			return nil, core.Error(core.EINVALID, "invalid font size: %q", conf.GetString(KeyFontSize))
		}
		ctx.size = float32(size)
	}
	if ctx.shaper == nil {
		var err error
		if ctx.shaper, err = shaperByName(conf.GetString(KeyShaper)); err != nil {
			return nil, err
		}
	}
	capacity := DefaultCacheCapacity
	if conf.IsSet(KeyCacheCapacity) {
		capacity = conf.GetInt(KeyCacheCapacity)
	}
	var err error
	if ctx.cache, err = cache.New(capacity, cache.ShapingBuilder(ctx.shaper)); err != nil {
		return nil, err
	}
	var cfg *fallback.Config
	if conf.IsSet(KeyFallbackConfig) {
		if cfg, err = fallback.ReadConfigFile(conf.GetString(KeyFallbackConfig)); err != nil {
			return nil, err
		}
	}
	ctx.resolver = fallback.NewResolver(cfg, ctx.registry, ctx.size, ctx.mipmap)
	tracer().Infof("layout context: font size %.1f, cache capacity %d", ctx.size, capacity)
	return ctx, nil
}

func shaperByName(name string) (glyphing.Shaper, error) {
	switch strings.ToLower(name) {
	case "", "harfbuzz":
		return harfbuzz.New(), nil
	case "gotext":
		return gotext.New(), nil
	case "monospace":
		return monospace.New(nil), nil
	}
	return nil, core.Error(core.EINVALID, "unknown shaper: %q", name)
}

// GetLineLayout returns the layout for a single run of text, shaped with the
// fonts of a font set. Layouts are cached.
func (ctx *Context) GetLineLayout(fs *fallback.FontSet, text string, lang language.Tag,
	dir glyphing.Direction) (*layout.LineLayout, error) {
	return ctx.cache.Get(fs, text, lang, dir)
}

// Layout lays out a paragraph of possibly mixed-direction text, using the
// font set for lang. The result is not cached.
func (ctx *Context) Layout(text string, lang language.Tag) (*layout.LineLayout, error) {
	fs, err := ctx.ResolveFontSet(lang.String())
	if err != nil {
		tracer().Errorf("font set for %s is incomplete: %v", lang, err)
	}
	return layout.Build(glyphing.SplitRuns(text, lang), fs, ctx.shaper)
}

// ResolveFontSet returns the font set for a language tag. Errors for invalid
// fonts are returned together with a usable font set.
func (ctx *Context) ResolveFontSet(tag string) (*fallback.FontSet, error) {
	return ctx.resolver.ResolveFontSet(tag)
}

// LoadFallbackConfig replaces the fallback configuration. Font sets resolved
// so far stay valid, but are no longer handed out.
func (ctx *Context) LoadFallbackConfig(r io.Reader) error {
	cfg, err := fallback.ReadConfig(r)
	if err != nil {
		return err
	}
	ctx.resolver.Reset(cfg)
	return nil
}

// Clear removes all cached line layouts.
func (ctx *Context) Clear() {
	ctx.cache.Clear()
}

// SetCapacity changes the capacity of the layout cache.
func (ctx *Context) SetCapacity(capacity int) error {
	return ctx.cache.SetCapacity(capacity)
}

// MemoryUsage returns the cost of all cached line layouts.
func (ctx *Context) MemoryUsage() int {
	return ctx.cache.MemoryUsage()
}

// Registry returns the font registry of the context.
func (ctx *Context) Registry() *fontregistry.Registry {
	return ctx.registry
}

// Shaper returns the shaper of the context.
func (ctx *Context) Shaper() glyphing.Shaper {
	return ctx.shaper
}

// Close releases all fonts and cached layouts. A closed context must not be
// used any more.
func (ctx *Context) Close() {
	ctx.cache.Clear()
	ctx.registry.Close()
}
