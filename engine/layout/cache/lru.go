package cache

import (
	"github.com/npillmayer/linelayout/core/font/fallback"
	"github.com/npillmayer/linelayout/engine/glyphing"
	"github.com/npillmayer/linelayout/engine/layout"
)

// key identifies a layout. Font sets are compared by identity.
type key struct {
	fontSet   uint64
	text      string
	language  string
	direction glyphing.Direction
}

func makeKey(fs *fallback.FontSet, text string, lang string, dir glyphing.Direction) key {
	return key{fontSet: fs.ID(), text: text, language: lang, direction: dir}
}

// entry is an element of a circular list, anchored at a sentinel.
// sentinel.next is the most recently used entry, sentinel.prev the least
// recently used one.
type entry struct {
	key        key
	layout     *layout.LineLayout
	cost       int
	prev, next *entry
}

type lru struct {
	entries  map[key]*entry
	sentinel entry
}

func (l *lru) init() {
	l.entries = make(map[key]*entry)
	l.sentinel.next = &l.sentinel
	l.sentinel.prev = &l.sentinel
}

func (l *lru) len() int {
	return len(l.entries)
}

// get looks up a layout and marks it as most recently used.
func (l *lru) get(k key) (*entry, bool) {
	e, ok := l.entries[k]
	if !ok {
		return nil, false
	}
	l.unlink(e)
	l.pushFront(e)
	return e, true
}

func (l *lru) put(e *entry) {
	l.entries[e.key] = e
	l.pushFront(e)
}

// oldest removes and returns the least recently used entry.
func (l *lru) oldest() *entry {
	e := l.sentinel.prev
	if e == &l.sentinel {
		return nil
	}
	l.unlink(e)
	delete(l.entries, e.key)
	return e
}

func (l *lru) pushFront(e *entry) {
	e.prev = &l.sentinel
	e.next = l.sentinel.next
	e.next.prev = e
	l.sentinel.next = e
}

func (l *lru) unlink(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev, e.next = nil, nil
}

// keys returns the keys from most to least recently used.
func (l *lru) keys() []key {
	ks := make([]key, 0, len(l.entries))
	for e := l.sentinel.next; e != &l.sentinel; e = e.next {
		ks = append(ks, e.key)
	}
	return ks
}
