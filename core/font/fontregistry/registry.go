package fontregistry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/npillmayer/linelayout/core"
	"github.com/npillmayer/linelayout/core/font"
	"github.com/npillmayer/linelayout/core/locate/resources"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
)

// Registry is a type for holding loaded fonts.
type Registry struct {
	sync.Mutex
	conf  schuko.Configuration
	fonts map[fontKey]*font.Font
}

type fontKey struct {
	path   string // normalized
	size   float32
	mipmap bool
}

func (k fontKey) String() string {
	s := fmt.Sprintf("%s@%.2f", k.path, k.size)
	if k.mipmap {
		s += "+mip"
	}
	return s
}

// NewRegistry creates an empty font registry. conf is used for resolving
// font references and may be nil.
func NewRegistry(conf schuko.Configuration) *Registry {
	return &Registry{
		conf:  conf,
		fonts: make(map[fontKey]*font.Font),
	}
}

// Resolve returns the font a reference points to, prepared for pixel size
// `size`. The first request for a (path, size, mipmap) triple loads the font,
// later requests return the same font.
//
// If the reference does not lead to a readable file, an error with code
// core.EMISSING is returned. If the file is not a usable font, an error with
// code core.EINVALID is returned. In both cases nothing is stored.
func (fr *Registry) Resolve(ref string, size float32, mipmap bool) (*font.Font, error) {
	fpath, err := resources.ResolveFontPath(fr.conf, ref)
	if err != nil {
		return nil, err
	}
	key := fontKey{path: resources.NormalizePath(fpath), size: size, mipmap: mipmap}
	fr.Lock()
	defer fr.Unlock()
	if fr.fonts == nil {
		return nil, core.Error(core.EINTERNAL, "font registry has been closed")
	}
	if f, ok := fr.fonts[key]; ok {
		tracer().Debugf("registry found font %s", key)
		return f, nil
	}
	f, err := font.Load(fpath, size, mipmap)
	if err != nil {
		tracer().Errorf("registry cannot load font %s: %v", ref, err)
		return nil, err
	}
	tracer().Infof("registry stores font %s as %s", f.Name(), key)
	fr.fonts[key] = f
	return f, nil
}

// Fonts returns the number of fonts in the registry.
func (fr *Registry) Fonts() int {
	fr.Lock()
	defer fr.Unlock()
	return len(fr.fonts)
}

// DiscardGlyphImages invalidates the glyph images of all fonts, as is
// necessary after the loss of a rendering context. Images will be rendered
// again on demand.
func (fr *Registry) DiscardGlyphImages() {
	fr.Lock()
	defer fr.Unlock()
	for _, f := range fr.fonts {
		f.DiscardImages()
	}
}

// Close drops all fonts. The registry must not be used afterwards.
func (fr *Registry) Close() {
	fr.Lock()
	defer fr.Unlock()
	tracer().Debugf("closing font registry with %d fonts", len(fr.fonts))
	fr.fonts = nil
}

// LogFontList is a helper function to dump the list of known fonts
// in a registry to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	fr.Lock()
	defer fr.Unlock()
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- registered fonts ---")
	keys := make([]fontKey, 0, len(fr.fonts))
	for k := range fr.fonts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	for _, k := range keys {
		f := fr.fonts[k]
		tracer().Infof("font [%s] = %v, %d glyphs cached", k, f.Name(), f.GlyphCount())
	}
	tracer().Infof("------------------------")
	tracer().SetTraceLevel(level)
}
