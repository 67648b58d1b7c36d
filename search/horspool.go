package search

import (
	"iter"
	"sync/atomic"

	"github.com/binaryforge/byteseek/reader"
	"github.com/binaryforge/byteseek/sequence"
)

// Horspool implements Boyer-Moore-Horspool search for a single
// sequence.Matcher, per spec.md §4.6.1.
type Horspool struct {
	seq  *sequence.Matcher
	fwd  atomic.Pointer[[256]int]
	back atomic.Pointer[[256]int]
}

// NewHorspool builds a Horspool searcher over seq.
func NewHorspool(seq *sequence.Matcher) *Horspool { return &Horspool{seq: seq} }

func (h *Horspool) forwardShift() *[256]int {
	if t := h.fwd.Load(); t != nil {
		return t
	}
	m := h.seq.Len()
	var t [256]int
	for i := range t {
		t[i] = m
	}
	// the final position (i == m-1) never reduces the default, which
	// guarantees a strictly positive shift on every miss.
	for i := 0; i < m-1; i++ {
		d := m - 1 - i
		for _, b := range h.seq.MatcherAt(i).MatchingBytes() {
			if d < t[b] {
				t[b] = d
			}
		}
	}
	h.fwd.Store(&t)
	return &t
}

func (h *Horspool) backwardShift() *[256]int {
	if t := h.back.Load(); t != nil {
		return t
	}
	m := h.seq.Len()
	var t [256]int
	for i := range t {
		t[i] = m
	}
	for i := 1; i < m; i++ {
		for _, b := range h.seq.MatcherAt(i).MatchingBytes() {
			if i < t[b] {
				t[b] = i
			}
		}
	}
	h.back.Store(&t)
	return &t
}

func (h *Horspool) SearchForward(src reader.Source, from, to int64) (Position, bool) {
	m := int64(h.seq.Len())
	if m == 0 {
		return Position{}, false
	}
	shift := h.forwardShift()
	last := clampUpper(src, to, m)
	for p := from; p <= last; {
		lastByte, ok := src.ReadByte(p + m - 1)
		if !ok {
			return Position{}, false
		}
		if h.seq.MatchesReader(src, p) {
			return Position{Offset: p}, true
		}
		p += int64(shift[lastByte])
	}
	return Position{}, false
}

func (h *Horspool) SearchBackward(src reader.Source, from, to int64) (Position, bool) {
	m := int64(h.seq.Len())
	if m == 0 {
		return Position{}, false
	}
	shift := h.backwardShift()
	length := src.Length()
	p := from
	if p+m > length {
		p = length - m
	}
	floor := to
	if floor < 0 {
		floor = 0
	}
	for p >= floor {
		if h.seq.MatchesReader(src, p) {
			return Position{Offset: p}, true
		}
		b, ok := src.ReadByte(p)
		if !ok {
			return Position{}, false
		}
		p -= int64(shift[b])
	}
	return Position{}, false
}

func (h *Horspool) SearchAll(src reader.Source, from, to int64) iter.Seq[Position] {
	return searchAllFrom(func(f, t int64) (Position, bool) { return h.SearchForward(src, f, t) }, from, to)
}
