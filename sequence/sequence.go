// Package sequence implements SequenceMatcher: an ordered, fixed-length
// sequence of pattern.Matcher that tests against a buffer or a
// reader.Source at a given offset. It is grounded on the teacher's
// patterns.Sequence (a specialised []byte fast path) and patterns.List
// (the general multi-pattern walk), unified into one type.
package sequence

import (
	"bytes"

	"github.com/binaryforge/byteseek/pattern"
	"github.com/binaryforge/byteseek/reader"
)

// Matcher is an ordered sequence of pattern.Matcher of fixed length n >= 1.
// When every element is a pattern.OneByte, matching is done against a
// plain byte slice (the "all-literal" fast path); otherwise each position
// is tested individually.
type Matcher struct {
	// literal holds the plain bytes when every position is a OneByte.
	// It backs subsequence/reverse views without copying.
	literal []byte
	isLit   bool

	// elems holds the general case: one pattern.Matcher per position.
	elems []pattern.Matcher

	// reversed marks a view that matches the same bytes back to front.
	reversed bool
}

// New builds a Matcher from an explicit list of byte matchers. Panics if
// elems is empty, matching the teacher's "invalid argument at
// construction" contract (spec.md §7).
func New(elems []pattern.Matcher) *Matcher {
	if len(elems) == 0 {
		panic("sequence: empty matcher")
	}
	lit, isLit := true, true
	literal := make([]byte, len(elems))
	for i, e := range elems {
		ob, ok := e.(pattern.OneByte)
		if !ok {
			lit = false
			continue
		}
		literal[i] = byte(ob)
	}
	isLit = lit
	if !isLit {
		literal = nil
	}
	return &Matcher{literal: literal, isLit: isLit, elems: elems}
}

// Literal builds a Matcher directly from a fixed byte string, taking the
// all-OneByte fast path without per-byte boxing.
func Literal(s []byte) *Matcher {
	cp := append([]byte(nil), s...)
	return &Matcher{literal: cp, isLit: true}
}

// Len returns the sequence length.
func (m *Matcher) Len() int {
	if m.isLit {
		return len(m.literal)
	}
	return len(m.elems)
}

// MatcherAt returns the byte matcher at position i (0 <= i < Len()).
func (m *Matcher) MatcherAt(i int) pattern.Matcher {
	if m.isLit {
		b := m.literal[i]
		if m.reversed {
			b = m.literal[len(m.literal)-1-i]
		}
		return pattern.OneByte(b)
	}
	if m.reversed {
		return m.elems[len(m.elems)-1-i]
	}
	return m.elems[i]
}

// Matches reports whether the sequence matches buf at pos, bounds-checked:
// an out-of-range pos is a mismatch (false), never an error or panic.
func (m *Matcher) Matches(buf []byte, pos int) bool {
	n := m.Len()
	if pos < 0 || pos+n > len(buf) {
		return false
	}
	return m.MatchesNoCheck(buf, pos)
}

// MatchesNoCheck matches without bounds checking; the caller guarantees
// pos >= 0 && pos+Len() <= len(buf). Out-of-range access is undefined
// behaviour, per spec.md §7.
func (m *Matcher) MatchesNoCheck(buf []byte, pos int) bool {
	n := m.Len()
	if m.isLit {
		if m.reversed {
			for i := 0; i < n; i++ {
				if buf[pos+i] != m.literal[n-1-i] {
					return false
				}
			}
			return true
		}
		return bytes.Equal(m.literal, buf[pos:pos+n])
	}
	for i := 0; i < n; i++ {
		if !m.MatcherAt(i).Matches(buf[pos+i]) {
			return false
		}
	}
	return true
}

// MatchesReader matches the sequence against a reader.Source at an
// absolute position, spanning window boundaries as necessary. This is
// the critical correctness point of spec.md §4.2: the implementation
// must handle a match that straddles two windows.
func (m *Matcher) MatchesReader(src reader.Source, abs int64) bool {
	n := int64(m.Len())
	if abs < 0 || abs+n > src.Length() {
		return false
	}
	var consumed int64
	for consumed < n {
		w, ok := src.Window(abs + consumed)
		if !ok {
			return false
		}
		offsetInWindow := int(abs + consumed - w.Start)
		avail := w.Valid - offsetInWindow
		if avail <= 0 {
			return false
		}
		remaining := int(n - consumed)
		take := avail
		if take > remaining {
			take = remaining
		}
		for i := 0; i < take; i++ {
			idx := int(consumed) + i
			pos := m.posIndex(idx)
			if !m.MatcherAt(pos).Matches(w.Bytes[offsetInWindow+i]) {
				return false
			}
		}
		consumed += int64(take)
	}
	return true
}

// posIndex maps a "consumed so far" index to the sequence-position index;
// identity unless reversed, in which case MatcherAt already applies the
// mirroring, so the raw index is what MatcherAt expects.
func (m *Matcher) posIndex(i int) int { return i }

// Subsequence returns a view over elements [begin,end), sharing backing
// storage (O(1)); begin=0,end=Len() returns the receiver. A one-element
// range yields a length-1 *Matcher view, not a bare pattern.Matcher.
func (m *Matcher) Subsequence(begin int, end ...int) *Matcher {
	e := m.Len()
	if len(end) > 0 {
		e = end[0]
	}
	if begin == 0 && e == m.Len() {
		return m
	}
	if m.reversed {
		// logical [begin,e) of a reversed view is physical [n-e, n-begin).
		n := m.Len()
		begin, e = n-e, n-begin
	}
	if m.isLit {
		return &Matcher{literal: m.literal[begin:e:e], isLit: true, reversed: m.reversed}
	}
	return &Matcher{elems: m.elems[begin:e:e], reversed: m.reversed}
}

// Reverse returns a view matching the same bytes in reverse order,
// without copying. Reverse is involutive: Reverse().Reverse() behaves
// identically to the original (spec.md §4.2, invariant 3 of §8).
func (m *Matcher) Reverse() *Matcher {
	cp := *m
	cp.reversed = !m.reversed
	return &cp
}

// Repeat returns a sequence that is k concatenated copies of m. Repeat(1)
// returns m itself (spec.md §4.2).
func (m *Matcher) Repeat(k int) *Matcher {
	if k < 1 {
		panic("sequence: repeat count must be >= 1")
	}
	if k == 1 {
		return m
	}
	if m.isLit {
		lit := m.snapshotLiteral()
		out := make([]byte, 0, len(lit)*k)
		for i := 0; i < k; i++ {
			out = append(out, lit...)
		}
		return &Matcher{literal: out, isLit: true}
	}
	elems := m.snapshotElems()
	out := make([]pattern.Matcher, 0, len(elems)*k)
	for i := 0; i < k; i++ {
		out = append(out, elems...)
	}
	return &Matcher{elems: out}
}

func (m *Matcher) snapshotLiteral() []byte {
	if !m.reversed {
		return append([]byte(nil), m.literal...)
	}
	return reverseBytes(m.literal)
}

func (m *Matcher) snapshotElems() []pattern.Matcher {
	if !m.reversed {
		return append([]pattern.Matcher(nil), m.elems...)
	}
	return reverseElems(m.elems)
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, j := 0, len(b)-1; j >= 0; i, j = i+1, j-1 {
		out[i] = b[j]
	}
	return out
}

func reverseElems(e []pattern.Matcher) []pattern.Matcher {
	out := make([]pattern.Matcher, len(e))
	for i, j := 0, len(e)-1; j >= 0; i, j = i+1, j-1 {
		out[i] = e[j]
	}
	return out
}

// Bytes returns the literal byte string for an all-OneByte sequence (the
// fast path), and false otherwise.
func (m *Matcher) Bytes() ([]byte, bool) {
	if !m.isLit {
		return nil, false
	}
	if m.reversed {
		return reverseBytes(m.literal), true
	}
	return m.literal, true
}
