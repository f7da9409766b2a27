package cache

import (
	"sync"

	"github.com/npillmayer/linelayout/core"
	"github.com/npillmayer/linelayout/core/font/fallback"
	"github.com/npillmayer/linelayout/engine/glyphing"
	"github.com/npillmayer/linelayout/engine/layout"
	"golang.org/x/text/language"
)

// Builder creates a line layout on a cache miss.
type Builder interface {
	BuildLayout(fs *fallback.FontSet, text string, lang language.Tag, dir glyphing.Direction) (*layout.LineLayout, error)
}

// BuilderFunc is an adapter to use ordinary functions as Builders.
type BuilderFunc func(fs *fallback.FontSet, text string, lang language.Tag, dir glyphing.Direction) (*layout.LineLayout, error)

// BuildLayout calls bf(fs, text, lang, dir).
func (bf BuilderFunc) BuildLayout(fs *fallback.FontSet, text string, lang language.Tag,
	dir glyphing.Direction) (*layout.LineLayout, error) {
	return bf(fs, text, lang, dir)
}

// ShapingBuilder returns a Builder which splits text into bidi runs, using
// the requested direction as the paragraph's base direction, and shapes each
// run. The resulting layout carries the requested language and direction.
func ShapingBuilder(shaper glyphing.Shaper) Builder {
	return BuilderFunc(func(fs *fallback.FontSet, text string, lang language.Tag,
		dir glyphing.Direction) (*layout.LineLayout, error) {
		runs := glyphing.SplitRunsWithBase(text, lang, dir)
		ll, err := layout.Build(runs, fs, shaper)
		if err != nil {
			return nil, err
		}
		ll.Language, ll.Direction = lang, dir
		return ll, nil
	})
}

// Cache is an LRU cache for line layouts, bounded by the summed byte length
// of the cached texts. A cache is safe for concurrent use.
type Cache struct {
	mx       sync.Mutex
	builder  Builder
	capacity int
	size     int
	lru      lru
}

// New creates a cache with a given capacity, using builder to create
// layouts on cache misses.
func New(capacity int, builder Builder) (*Cache, error) {
	if capacity <= 0 {
		return nil, core.Error(core.ECAPACITY, "layout cache capacity must be positive, is %d", capacity)
	}
	if builder == nil {
		return nil, core.Error(core.EINTERNAL, "layout cache needs a builder")
	}
	c := &Cache{builder: builder, capacity: capacity}
	c.lru.init()
	return c, nil
}

// Get returns the layout for a text. On a hit, the layout is marked as most
// recently used and the identical layout is returned. On a miss, the layout
// is built and inserted. If building fails, the error is returned and
// nothing is inserted.
func (c *Cache) Get(fs *fallback.FontSet, text string, lang language.Tag,
	dir glyphing.Direction) (*layout.LineLayout, error) {
	//
	c.mx.Lock()
	defer c.mx.Unlock()
	k := makeKey(fs, text, lang.String(), dir)
	if e, ok := c.lru.get(k); ok {
		tracer().Debugf("cache hit for %q", text)
		return e.layout, nil
	}
	cost := len(text)
	if cost >= c.capacity {
		c.clear()
	} else {
		for c.size+cost > c.capacity {
			c.evict()
		}
	}
	ll, err := c.builder.BuildLayout(fs, text, lang, dir)
	if err != nil {
		return nil, err
	}
	c.lru.put(&entry{key: k, layout: ll, cost: cost})
	c.size += cost
	tracer().Debugf("cached layout for %q, size is now %d/%d", text, c.size, c.capacity)
	return ll, nil
}

func (c *Cache) evict() {
	e := c.lru.oldest()
	if e == nil {
		c.size = 0
		return
	}
	c.size -= e.cost
	tracer().Debugf("evicted layout for %q", e.key.text)
}

// Clear removes all layouts from the cache.
func (c *Cache) Clear() {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.clear()
}

func (c *Cache) clear() {
	c.lru.init()
	c.size = 0
}

// SetCapacity changes the capacity of the cache. If the new capacity is
// smaller than the current size, the cache is cleared.
func (c *Cache) SetCapacity(capacity int) error {
	if capacity <= 0 {
		return core.Error(core.ECAPACITY, "layout cache capacity must be positive, is %d", capacity)
	}
	c.mx.Lock()
	defer c.mx.Unlock()
	c.capacity = capacity
	if capacity < c.size {
		tracer().Infof("layout cache shrinks to %d, clearing it", capacity)
		c.clear()
	}
	return nil
}

// MemoryUsage returns the summed cost of all cached layouts.
func (c *Cache) MemoryUsage() int {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.size
}

// Capacity returns the current capacity.
func (c *Cache) Capacity() int {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.capacity
}

// Len returns the number of cached layouts.
func (c *Cache) Len() int {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.lru.len()
}
