package search

import (
	"iter"
	"sync/atomic"

	"github.com/binaryforge/byteseek/reader"
	"github.com/binaryforge/byteseek/sequence"
)

// Sunday implements the Sunday quick-search variant of Horspool, per
// spec.md §4.6.2: it looks one byte past the end of the pattern instead
// of at its last byte, trading a wider default shift for one byte of
// required look-ahead.
type Sunday struct {
	seq   *sequence.Matcher
	shift atomic.Pointer[[256]int]
}

// NewSunday builds a Sunday searcher over seq.
func NewSunday(seq *sequence.Matcher) *Sunday { return &Sunday{seq: seq} }

func (s *Sunday) table() *[256]int {
	if t := s.shift.Load(); t != nil {
		return t
	}
	m := s.seq.Len()
	var t [256]int
	for i := range t {
		t[i] = m + 1
	}
	for i := 0; i < m; i++ {
		d := m - i
		for _, b := range s.seq.MatcherAt(i).MatchingBytes() {
			if d < t[b] {
				t[b] = d
			}
		}
	}
	s.shift.Store(&t)
	return &t
}

func (s *Sunday) SearchForward(src reader.Source, from, to int64) (Position, bool) {
	m := int64(s.seq.Len())
	if m == 0 {
		return Position{}, false
	}
	shift := s.table()
	length := src.Length()
	last := clampUpper(src, to, m)
	for p := from; p <= last; {
		if s.seq.MatchesReader(src, p) {
			return Position{Offset: p}, true
		}
		lookahead := p + m
		if lookahead >= length {
			break
		}
		b, ok := src.ReadByte(lookahead)
		if !ok {
			break
		}
		p += int64(shift[b])
	}
	return Position{}, false
}

func (s *Sunday) SearchBackward(src reader.Source, from, to int64) (Position, bool) {
	// Sunday's look-ahead construction has no natural backward twin in
	// spec.md §4.6.2; a backward scan checks the matcher directly at each
	// position, walking down one position at a time (still bounded by
	// the searcher's shared contracts, just without a shift table).
	m := int64(s.seq.Len())
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
		if s.seq.MatchesReader(src, p) {
			return Position{Offset: p}, true
		}
		p--
	}
	return Position{}, false
}

func (s *Sunday) SearchAll(src reader.Source, from, to int64) iter.Seq[Position] {
	return searchAllFrom(func(f, t int64) (Position, bool) { return s.SearchForward(src, f, t) }, from, to)
}
