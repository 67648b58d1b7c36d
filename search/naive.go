package search

import (
	"iter"

	"github.com/binaryforge/byteseek/multiseq"
	"github.com/binaryforge/byteseek/reader"
	"github.com/binaryforge/byteseek/sequence"
)

// NaiveSequence walks every candidate position calling the matcher
// directly, with no shift table. It is a correctness oracle for the
// shift-table searchers and is the cheapest option when a pattern is
// searched only once (spec.md §4.6.5).
type NaiveSequence struct {
	seq *sequence.Matcher
}

func NewNaiveSequence(seq *sequence.Matcher) *NaiveSequence { return &NaiveSequence{seq: seq} }

func (n *NaiveSequence) SearchForward(src reader.Source, from, to int64) (Position, bool) {
	m := int64(n.seq.Len())
	last := clampUpper(src, to, m)
	for p := from; p <= last; p++ {
		if n.seq.MatchesReader(src, p) {
			return Position{Offset: p}, true
		}
	}
	return Position{}, false
}

func (n *NaiveSequence) SearchBackward(src reader.Source, from, to int64) (Position, bool) {
	m := int64(n.seq.Len())
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
		if n.seq.MatchesReader(src, p) {
			return Position{Offset: p}, true
		}
		p--
	}
	return Position{}, false
}

func (n *NaiveSequence) SearchAll(src reader.Source, from, to int64) iter.Seq[Position] {
	return searchAllFrom(func(f, t int64) (Position, bool) { return n.SearchForward(src, f, t) }, from, to)
}

// NaiveMulti is NaiveSequence's multiseq.Matcher counterpart.
type NaiveMulti struct {
	trie *multiseq.Matcher
}

func NewNaiveMulti(trie *multiseq.Matcher) *NaiveMulti { return &NaiveMulti{trie: trie} }

func (n *NaiveMulti) SearchForward(src reader.Source, from, to int64) (Position, bool) {
	m := int64(n.trie.MinLen())
	last := clampUpper(src, to, m)
	for p := from; p <= last; p++ {
		buf, ok := readBytes(src, p, n.trie.MaxLen())
		if !ok {
			continue
		}
		if match := n.trie.FirstMatch(buf, 0); match != nil {
			return Position{Offset: p, Seq: match}, true
		}
	}
	return Position{}, false
}

func (n *NaiveMulti) SearchBackward(src reader.Source, from, to int64) (Position, bool) {
	m := int64(n.trie.MinLen())
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
		if buf, ok := readBytes(src, p, n.trie.MaxLen()); ok {
			if match := n.trie.FirstMatch(buf, 0); match != nil {
				return Position{Offset: p, Seq: match}, true
			}
		}
		p--
	}
	return Position{}, false
}

func (n *NaiveMulti) SearchAll(src reader.Source, from, to int64) iter.Seq[Position] {
	return func(yield func(Position) bool) {
		m := int64(n.trie.MinLen())
		last := clampUpper(src, to, m)
		for p := from; p <= last; p++ {
			buf, ok := readBytes(src, p, n.trie.MaxLen())
			if !ok {
				continue
			}
			for _, match := range n.trie.AllMatches(buf, 0) {
				if !yield(Position{Offset: p, Seq: match}) {
					return
				}
			}
		}
	}
}
