package fallback

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/npillmayer/linelayout/core"
	"github.com/npillmayer/linelayout/core/font"
	"golang.org/x/text/language"
)

// FontLoader loads fonts from references. It is implemented by
// fontregistry.Registry.
type FontLoader interface {
	Resolve(ref string, size float32, mipmap bool) (*font.Font, error)
}

// FontSet is an ordered, immutable list of fonts, used as a fallback chain.
// Every font set has an identity, which may be used as a cache key.
type FontSet struct {
	id    uint64
	fonts []*font.Font
}

var fontSetIDs uint64

// NewFontSet creates a font set with a new identity.
func NewFontSet(fonts ...*font.Font) *FontSet {
	fs := &FontSet{
		id:    atomic.AddUint64(&fontSetIDs, 1),
		fonts: make([]*font.Font, len(fonts)),
	}
	copy(fs.fonts, fonts)
	return fs
}

// ID returns the identity of a font set. It is unique within a process.
func (fs *FontSet) ID() uint64 {
	if fs == nil {
		return 0
	}
	return fs.id
}

// Len returns the number of fonts in the set.
func (fs *FontSet) Len() int {
	if fs == nil {
		return 0
	}
	return len(fs.fonts)
}

// At returns the i-th font of the chain.
func (fs *FontSet) At(i int) *font.Font {
	return fs.fonts[i]
}

// Fonts returns the fonts of the chain, in order. Clients must not alter the
// returned slice.
func (fs *FontSet) Fonts() []*font.Font {
	if fs == nil {
		return nil
	}
	return fs.fonts
}

// --- Resolver --------------------------------------------------------------

// Resolver turns language tags into font sets, according to a fallback
// configuration. Font sets are memoized: resolving a tag twice yields the
// identical font set.
type Resolver struct {
	sync.Mutex
	loader FontLoader
	size   float32
	mipmap bool
	chains map[string][]Variant // normalized tag -> variants
	sets   map[string]resolved
}

type resolved struct {
	fs  *FontSet
	err error
}

// noChain is the memo key for tags without any matching chain.
const noChain = "\x00"

// NewResolver creates a resolver for a configuration, loading fonts at
// pixel size `size` through `loader`. cfg may be nil.
func NewResolver(cfg *Config, loader FontLoader, size float32, mipmap bool) *Resolver {
	r := &Resolver{
		loader: loader,
		size:   size,
		mipmap: mipmap,
	}
	r.setConfig(cfg)
	return r
}

// Reset replaces the configuration of a resolver and forgets all font sets
// resolved so far.
func (r *Resolver) Reset(cfg *Config) {
	r.Lock()
	defer r.Unlock()
	r.setConfig(cfg)
}

func (r *Resolver) setConfig(cfg *Config) {
	r.chains = make(map[string][]Variant)
	r.sets = make(map[string]resolved)
	if cfg == nil {
		return
	}
	for _, lang := range cfg.Languages {
		for _, tag := range lang.Tags {
			t := normalizeTag(tag)
			r.chains[t] = append(r.chains[t], lang.Variants...)
		}
	}
}

// ResolveFontSet returns the font set for a language tag.
//
// The chain for a tag is found by exact match, then by the tag's base
// language, then the default chain is used. If none of these is configured,
// an empty font set is returned.
//
// Fonts which are not found are silently skipped. Fonts which are found but
// are invalid are skipped as well, but their errors are collected and
// returned together with the font set. The font set is never nil.
func (r *Resolver) ResolveFontSet(tag string) (*FontSet, error) {
	r.Lock()
	defer r.Unlock()
	key := r.match(tag)
	if res, ok := r.sets[key]; ok {
		return res.fs, res.err
	}
	fonts, err := r.resolveChain(r.chains[key])
	res := resolved{fs: NewFontSet(fonts...), err: err}
	tracer().Infof("font set #%d for language %q (chain %q) has %d fonts",
		res.fs.ID(), tag, key, res.fs.Len())
	r.sets[key] = res
	return res.fs, res.err
}

func (r *Resolver) match(tag string) string {
	t := normalizeTag(tag)
	if _, ok := r.chains[t]; ok {
		return t
	}
	if lt, err := language.Parse(t); err == nil {
		base, _ := lt.Base()
		if b := base.String(); b != t {
			if _, ok := r.chains[b]; ok {
				return b
			}
		}
	}
	if _, ok := r.chains[DefaultTag]; ok {
		return DefaultTag
	}
	return noChain
}

func (r *Resolver) resolveChain(variants []Variant) ([]*font.Font, error) {
	var fonts []*font.Font
	var errs []error
	for _, v := range variants {
		if !v.IsGroup() {
			if f, err := r.load(v.Ref); err == nil {
				fonts = append(fonts, f)
			} else if !core.IsNotFound(err) {
				errs = append(errs, err)
			}
			continue
		}
		for _, ref := range v.Group {
			f, err := r.load(ref)
			if err == nil {
				fonts = append(fonts, f)
				break
			}
			if !core.IsNotFound(err) {
				errs = append(errs, err)
			}
		}
	}
	return fonts, errors.Join(errs...)
}

func (r *Resolver) load(ref string) (*font.Font, error) {
	if r.loader == nil {
		return nil, core.Error(core.EINTERNAL, "font resolver has no font loader")
	}
	f, err := r.loader.Resolve(ref, r.size, r.mipmap)
	if err != nil {
		tracer().Debugf("skipping font %s: %v", ref, err)
	}
	return f, err
}

func normalizeTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	tag = strings.ReplaceAll(tag, "_", "-")
	if tag == "" {
		return DefaultTag
	}
	return tag
}
