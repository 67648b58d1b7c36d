// Package search implements Searcher (C7): immutable objects
// parameterised by a matcher that locate matching positions in a
// reader.Source, forward or backward, using the shift-table algorithms
// of spec.md §4.6 (Horspool, Sunday, Set-Horspool, Wu-Manber) plus a
// Naive linear-scan oracle.
//
// The overall shape — a searcher wrapping a matcher plus a lazily built,
// then-immutable shift table — is grounded on the teacher's
// bytematcher.ByteMatcher/wac.Wac split, where Start() builds the
// Aho-Corasick tree on first use and Identify walks it; that same
// lazy-then-frozen lifecycle is reimplemented here directly from spec.md
// §4.6 because the teacher's actual search engine,
// github.com/richardlehane/match, isn't present in the retrieval.
package search

import (
	"iter"

	"github.com/binaryforge/byteseek/reader"
	"github.com/binaryforge/byteseek/sequence"
)

// Position is a single search hit. Seq is nil for a single-sequence
// search and holds the matched sequence for a multi-sequence search.
type Position struct {
	Offset int64
	Seq    *sequence.Matcher
}

// Searcher locates Positions of a matcher in a reader.Source.
// Implementations never mutate the matcher or the source; their shift
// tables are built exactly once via lazy single-check initialisation
// and are read-only thereafter (spec.md §4.6, §5).
type Searcher interface {
	// SearchForward returns the first matching position p in
	// [from, min(to, source.Length())-minLen], or false if none.
	SearchForward(src reader.Source, from, to int64) (Position, bool)

	// SearchBackward returns the first matching position scanning
	// downward from min(from, source.Length()-minLen) to to, or false.
	SearchBackward(src reader.Source, from, to int64) (Position, bool)

	// SearchAll lazily yields every matching position in
	// [from, min(to, source.Length())-minLen] in ascending order.
	SearchAll(src reader.Source, from, to int64) iter.Seq[Position]
}

// clampUpper returns the inclusive highest start position a match of
// length n may begin at, within [0, to] and the source's own length.
func clampUpper(src reader.Source, to int64, n int64) int64 {
	length := src.Length()
	upper := to
	if length < upper {
		upper = length
	}
	return upper - n
}

// readBytes reads up to n bytes starting at pos into a fresh slice,
// clamped to the source's remaining length; ok is false only if pos
// itself is out of range. This lets trie-based verification (multiseq)
// work directly against a reader.Source without needing its own
// window-spanning logic, at the cost of one byte-by-byte copy per
// candidate — acceptable since candidates are already shift-table-sparse.
func readBytes(src reader.Source, pos int64, n int) ([]byte, bool) {
	length := src.Length()
	if pos < 0 || pos >= length {
		return nil, false
	}
	if avail := length - pos; int64(n) > avail {
		n = int(avail)
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		b, ok := src.ReadByte(pos + int64(i))
		if !ok {
			return nil, false
		}
		out[i] = b
	}
	return out, true
}

// searchAllFrom builds a generic SearchAll out of a searcher's own
// SearchForward, per spec.md §3's "lazy sequence of Position" — the
// Go-native rendering is a plain iter.Seq[Position] (range-over-func).
func searchAllFrom(forward func(from, to int64) (Position, bool), from, to int64) iter.Seq[Position] {
	return func(yield func(Position) bool) {
		p := from
		for {
			pos, ok := forward(p, to)
			if !ok {
				return
			}
			if !yield(pos) {
				return
			}
			p = pos.Offset + 1
		}
	}
}
