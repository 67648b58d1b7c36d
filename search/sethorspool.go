package search

import (
	"iter"
	"sync/atomic"

	"github.com/binaryforge/byteseek/multiseq"
	"github.com/binaryforge/byteseek/reader"
)

// SetHorspool generalises Horspool to a multiseq.Matcher (a set of
// sequences), per spec.md §4.6.3: the shift table is built from every
// contributing sequence's first m-1 positions, where m is the shortest
// sequence's length (as in Horspool, position m-1 never reduces the
// default, so every shift is positive), and a hit is verified (and, for
// SearchAll, enumerated) via the trie's FirstMatch/AllMatches.
type SetHorspool struct {
	trie  *multiseq.Matcher
	shift atomic.Pointer[[256]int]
}

// NewSetHorspool builds a SetHorspool searcher over trie.
func NewSetHorspool(trie *multiseq.Matcher) *SetHorspool { return &SetHorspool{trie: trie} }

func (s *SetHorspool) table() *[256]int {
	if t := s.shift.Load(); t != nil {
		return t
	}
	m := s.trie.MinLen()
	var t [256]int
	for i := range t {
		t[i] = m
	}
	for _, seq := range s.trie.Sequences() {
		for i := 0; i < m-1; i++ {
			d := m - 1 - i
			for _, b := range seq.MatcherAt(i).MatchingBytes() {
				if d < t[b] {
					t[b] = d
				}
			}
		}
	}
	s.shift.Store(&t)
	return &t
}

func (s *SetHorspool) SearchForward(src reader.Source, from, to int64) (Position, bool) {
	m := int64(s.trie.MinLen())
	if m == 0 {
		return Position{}, false
	}
	shift := s.table()
	last := clampUpper(src, to, m)
	for p := from; p <= last; {
		lastByte, ok := src.ReadByte(p + m - 1)
		if !ok {
			return Position{}, false
		}
		buf, ok := readBytes(src, p, s.trie.MaxLen())
		if ok {
			if match := s.trie.FirstMatch(buf, 0); match != nil {
				return Position{Offset: p, Seq: match}, true
			}
		}
		p += int64(shift[lastByte])
	}
	return Position{}, false
}

func (s *SetHorspool) SearchBackward(src reader.Source, from, to int64) (Position, bool) {
	m := int64(s.trie.MinLen())
	if m == 0 {
		return Position{}, false
	}
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
		if buf, ok := readBytes(src, p, s.trie.MaxLen()); ok {
			if match := s.trie.FirstMatch(buf, 0); match != nil {
				return Position{Offset: p, Seq: match}, true
			}
		}
		p--
	}
	return Position{}, false
}

func (s *SetHorspool) SearchAll(src reader.Source, from, to int64) iter.Seq[Position] {
	return func(yield func(Position) bool) {
		m := int64(s.trie.MinLen())
		if m == 0 {
			return
		}
		last := clampUpper(src, to, m)
		for p := from; p <= last; p++ {
			buf, ok := readBytes(src, p, s.trie.MaxLen())
			if !ok {
				continue
			}
			for _, match := range s.trie.AllMatches(buf, 0) {
				if !yield(Position{Offset: p, Seq: match}) {
					return
				}
			}
		}
	}
}
