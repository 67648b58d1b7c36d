package search

import (
	"iter"
	"sync/atomic"

	"github.com/binaryforge/byteseek/config"
	"github.com/binaryforge/byteseek/multiseq"
	"github.com/binaryforge/byteseek/reader"
)

// WuManber implements the Wu-Manber multi-pattern search of spec.md
// §4.6.4: a block of B bytes at the end of the current alignment is
// hashed; the hash indexes a shift table built from every B-byte block
// within the first m = MinLen bytes of each contributing sequence.
// Verification, as with Set-Horspool, defers to the trie.
//
// Wu-Manber's skip logic is only sound when every contributing sequence
// is a literal byte string (it indexes concrete byte blocks, not byte
// predicates), matching how the algorithm is used in practice for exact
// multi-pattern matching; NewWuManber panics if trie contains a
// non-literal sequence.
type WuManber struct {
	trie      *multiseq.Matcher
	blockSize int
	shift     atomic.Pointer[map[uint32]int]
}

// NewWuManber builds a WuManber searcher over trie with the given block
// size B (spec.md §4.6.4 suggests 2 or 3 depending on pattern-set size).
func NewWuManber(trie *multiseq.Matcher, blockSize int) *WuManber {
	if blockSize < 1 {
		blockSize = config.DefaultWuManberBlockSize()
	}
	if trie.MinLen() < blockSize {
		blockSize = trie.MinLen()
	}
	for _, s := range trie.Sequences() {
		if _, ok := s.Bytes(); !ok {
			panic("search: WuManber requires every contributing sequence to be a literal byte string")
		}
	}
	return &WuManber{trie: trie, blockSize: blockSize}
}

func hashBlock(b []byte) uint32 {
	var h uint32
	for _, c := range b {
		h = h*131 + uint32(c)
	}
	return h
}

func (w *WuManber) table() map[uint32]int {
	if t := w.shift.Load(); t != nil {
		return *t
	}
	m := w.trie.MinLen()
	b := w.blockSize
	defaultShift := m - b + 1
	if defaultShift < 1 {
		defaultShift = 1
	}
	t := make(map[uint32]int)
	for _, seq := range w.trie.Sequences() {
		lit, _ := seq.Bytes()
		for j := 0; j+b <= m; j++ {
			h := hashBlock(lit[j : j+b])
			d := m - b - j
			if cur, ok := t[h]; !ok || d < cur {
				t[h] = d
			}
		}
	}
	w.shift.Store(&t)
	return t
}

func (w *WuManber) SearchForward(src reader.Source, from, to int64) (Position, bool) {
	m := int64(w.trie.MinLen())
	b := int64(w.blockSize)
	if m == 0 || b == 0 {
		return Position{}, false
	}
	shift := w.table()
	last := clampUpper(src, to, m)
	for p := from; p <= last; {
		block, ok := readBytes(src, p+m-b, int(b))
		if !ok || len(block) < int(b) {
			return Position{}, false
		}
		d, known := shift[hashBlock(block)]
		if !known {
			d = int(m) - int(b) + 1
			if d < 1 {
				d = 1
			}
		}
		if d == 0 {
			if buf, ok := readBytes(src, p, w.trie.MaxLen()); ok {
				if match := w.trie.FirstMatch(buf, 0); match != nil {
					return Position{Offset: p, Seq: match}, true
				}
			}
			d = 1
		}
		p += int64(d)
	}
	return Position{}, false
}

func (w *WuManber) SearchBackward(src reader.Source, from, to int64) (Position, bool) {
	m := int64(w.trie.MinLen())
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
		if buf, ok := readBytes(src, p, w.trie.MaxLen()); ok {
			if match := w.trie.FirstMatch(buf, 0); match != nil {
				return Position{Offset: p, Seq: match}, true
			}
		}
		p--
	}
	return Position{}, false
}

func (w *WuManber) SearchAll(src reader.Source, from, to int64) iter.Seq[Position] {
	return func(yield func(Position) bool) {
		m := int64(w.trie.MinLen())
		if m == 0 {
			return
		}
		last := clampUpper(src, to, m)
		for p := from; p <= last; p++ {
			buf, ok := readBytes(src, p, w.trie.MaxLen())
			if !ok {
				continue
			}
			for _, match := range w.trie.AllMatches(buf, 0) {
				if !yield(Position{Offset: p, Seq: match}) {
					return
				}
			}
		}
	}
}
