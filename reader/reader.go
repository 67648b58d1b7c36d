// Package reader implements WindowReader: a random-access byte source
// that exposes contiguous windows over an underlying io.ReaderAt, with a
// pluggable cache policy. It is grounded on the teacher's
// pkg/core/siegreader package (Buffer/Reader/ReverseReader, Slice/EofSlice,
// the readSz windowing constant) generalised from "file or stream" to any
// io.ReaderAt.
//
// Windows are borrowed references: they are only valid until the next
// call to the Source that might evict them from the cache (spec.md §4,
// §5). Callers must not retain a Window past that point.
package reader

import (
	"io"

	"github.com/binaryforge/byteseek/config"
)

// Window is a contiguous slice of a byte source together with its
// absolute starting position and the count of valid bytes it holds.
//
// Valid always reflects the *effective limit* of the source at this
// window — i.e. how many of len(Bytes) actually belong to the source,
// not the raw capacity of the backing array. This resolves the Open
// Question of spec.md §9 in favour of the effective-limit semantics.
type Window struct {
	Bytes []byte
	Start int64
	Valid int
}

// end is the absolute, exclusive end of the valid data in this window.
func (w Window) end() int64 { return w.Start + int64(w.Valid) }

// Source is a WindowReader: a byte source that exposes its length and
// lets callers fetch a contiguous Window containing any absolute
// position, or read a single byte.
type Source interface {
	// Length returns the total number of bytes in the source, if known.
	// Implementations backed by a growing stream may return the length
	// read so far; see Buffer for the concrete policy.
	Length() int64

	// ReadByte returns the byte at an absolute position, and false if pos
	// is out of range.
	ReadByte(pos int64) (byte, bool)

	// Window returns the window containing pos, and false if pos is out
	// of range. The returned Window is only valid until the next call
	// that may evict it from the source's cache.
	Window(pos int64) (Window, bool)
}

// Cache is a pluggable window-eviction policy for Buffer.
type Cache interface {
	// Get returns the cached window aligned at id, if present.
	Get(id int64) (Window, bool)
	// Put stores w under the alignment key id, possibly evicting another
	// window to make room.
	Put(id int64, w Window)
}

// NoopCache never caches: every Window call re-reads from the source.
type NoopCache struct{}

func (NoopCache) Get(int64) (Window, bool) { return Window{}, false }
func (NoopCache) Put(int64, Window)        {}

// mruEntry is one slot of an MRUCache.
type mruEntry struct {
	id int64
	w  Window
	ok bool
}

// MRUCache keeps the K most recently stored windows: when full, Put
// replaces its K slots in round-robin (insertion) order. A Get hit does
// not change which window is replaced next. It is intentionally
// simple (linear scan over K entries) since K is expected to be small
// (single digits); this mirrors the teacher's own small, fixed-size
// window wheel (siegreader's wheelSz constant).
type MRUCache struct {
	entries []mruEntry
	next    int
}

// NewMRUCache builds a cache holding up to k windows.
func NewMRUCache(k int) *MRUCache {
	if k < 1 {
		k = 1
	}
	return &MRUCache{entries: make([]mruEntry, k)}
}

// NewDefaultMRUCache builds an MRUCache sized to config.DefaultMRUDepth.
func NewDefaultMRUCache() *MRUCache {
	return NewMRUCache(config.DefaultMRUDepth())
}

func (c *MRUCache) Get(id int64) (Window, bool) {
	for i := range c.entries {
		if c.entries[i].ok && c.entries[i].id == id {
			return c.entries[i].w, true
		}
	}
	return Window{}, false
}

func (c *MRUCache) Put(id int64, w Window) {
	for i := range c.entries {
		if c.entries[i].ok && c.entries[i].id == id {
			c.entries[i].w = w
			return
		}
	}
	c.entries[c.next] = mruEntry{id: id, w: w, ok: true}
	c.next = (c.next + 1) % len(c.entries)
}

// Buffer is the default Source: an io.ReaderAt windowed into fixed-size,
// aligned chunks, with a pluggable Cache.
type Buffer struct {
	ra         io.ReaderAt
	length     int64
	windowSize int
	cache      Cache
}

// NewBuffer builds a Buffer over ra, a source of the given total length,
// windowed in chunks of windowSize bytes and cached per the given policy.
// A nil cache defaults to NoopCache.
func NewBuffer(ra io.ReaderAt, length int64, windowSize int, cache Cache) *Buffer {
	if windowSize < 1 {
		windowSize = config.DefaultWindowSize()
	}
	if cache == nil {
		cache = NoopCache{}
	}
	return &Buffer{ra: ra, length: length, windowSize: windowSize, cache: cache}
}

// NewBytesBuffer wraps an in-memory byte slice as a Source, windowed per
// windowSize (0 for an unbounded default matching the slice length).
func NewBytesBuffer(b []byte, windowSize int, cache Cache) *Buffer {
	if windowSize < 1 {
		windowSize = len(b)
		if windowSize == 0 {
			windowSize = 1
		}
	}
	return NewBuffer(bytesReaderAt(b), int64(len(b)), windowSize, cache)
}

type bytesReaderAt []byte

func (b bytesReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(b)) {
		return 0, io.EOF
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *Buffer) Length() int64 { return b.length }

func (b *Buffer) alignedStart(pos int64) int64 {
	return (pos / int64(b.windowSize)) * int64(b.windowSize)
}

func (b *Buffer) Window(pos int64) (Window, bool) {
	if pos < 0 || pos >= b.length {
		return Window{}, false
	}
	start := b.alignedStart(pos)
	if w, ok := b.cache.Get(start); ok {
		return w, true
	}
	buf := make([]byte, b.windowSize)
	n, err := b.ra.ReadAt(buf, start)
	if n == 0 && err != nil && err != io.EOF {
		return Window{}, false
	}
	w := Window{Bytes: buf, Start: start, Valid: n}
	b.cache.Put(start, w)
	return w, true
}

func (b *Buffer) ReadByte(pos int64) (byte, bool) {
	w, ok := b.Window(pos)
	if !ok {
		return 0, false
	}
	off := pos - w.Start
	if off < 0 || off >= int64(w.Valid) {
		return 0, false
	}
	return w.Bytes[off], true
}
