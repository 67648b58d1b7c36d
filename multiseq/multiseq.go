// Package multiseq implements MultiSequenceMatcher: a set of
// sequence.Matcher queried together at a given offset, backed by a trie
// of byte transitions. It is grounded on the trie-building idiom of the
// Aho-Corasick reference in the retrieval pack (one node per prefix,
// children indexed by byte, terminal nodes carrying payloads) but omits
// fail links: callers needing sub-linear skip distances wrap this trie
// in a Set-Horspool searcher (see package search), which derives its own
// shift table from the contributing sequences instead of an automaton
// failure function.
package multiseq

import (
	"math"

	"github.com/binaryforge/byteseek/sequence"
)

// node is one trie state. children is indexed directly by byte value;
// a nil entry means no transition. seqs holds the sequences (if any)
// that terminate at this node.
type node struct {
	children [256]*node
	seqs     []*sequence.Matcher
}

// Matcher is a MultiSequenceMatcher: a trie over the contributing
// sequences, queryable at any absolute position within a buffer.
type Matcher struct {
	root      *node
	sequences []*sequence.Matcher

	// fallback holds sequences that are not all-literal (contain a
	// general byte matcher somewhere) and so cannot be represented as
	// trie edges; they are checked directly against the buffer at
	// each query.
	fallback []*sequence.Matcher

	minLen int
	maxLen int
}

// New builds a Matcher over the given sequences. Panics if seqs is empty.
func New(seqs []*sequence.Matcher) *Matcher {
	if len(seqs) == 0 {
		panic("multiseq: empty matcher set")
	}
	m := &Matcher{
		root:      &node{},
		sequences: append([]*sequence.Matcher(nil), seqs...),
		minLen:    math.MaxInt,
	}
	for _, s := range seqs {
		m.insert(s)
		if l := s.Len(); l < m.minLen {
			m.minLen = l
		}
		if l := s.Len(); l > m.maxLen {
			m.maxLen = l
		}
	}
	return m
}

// insert walks from the root, creating byte transitions for each
// literal-fast-path byte of s (spec.md §4.3: "for each, walk from the
// initial state, creating transitions for each required byte"). Only
// sequences with a fixed literal byte string can be inserted into a
// trie this way; general (non-literal) sequences fall back to a
// linear list instead.
func (m *Matcher) insert(s *sequence.Matcher) {
	lit, ok := s.Bytes()
	if !ok {
		m.fallback = append(m.fallback, s)
		return
	}
	cur := m.root
	for _, b := range lit {
		next := cur.children[b]
		if next == nil {
			next = &node{}
			cur.children[b] = next
		}
		cur = next
	}
	cur.seqs = append(cur.seqs, s)
}

// FirstMatch returns the first contributing sequence that matches buf
// at pos, walking the trie until a final state is reached or no
// transition exists for the next byte. Returns nil if none match.
func (m *Matcher) FirstMatch(buf []byte, pos int) *sequence.Matcher {
	if pos < 0 || pos+m.minLen > len(buf) {
		return nil
	}
	cur := m.root
	if len(cur.seqs) > 0 {
		return cur.seqs[0]
	}
	for i := 0; pos+i < len(buf); i++ {
		next := cur.children[buf[pos+i]]
		if next == nil {
			break
		}
		cur = next
		if len(cur.seqs) > 0 {
			return cur.seqs[0]
		}
	}
	for _, s := range m.fallback {
		if s.Matches(buf, pos) {
			return s
		}
	}
	return nil
}

// AllMatches returns every contributing sequence that matches buf at
// pos: every final state visited along the walk, in trie-depth order,
// plus every matching fallback (non-literal) sequence.
func (m *Matcher) AllMatches(buf []byte, pos int) []*sequence.Matcher {
	if pos < 0 || pos+m.minLen > len(buf) {
		return nil
	}
	var out []*sequence.Matcher
	cur := m.root
	out = append(out, cur.seqs...)
	for i := 0; pos+i < len(buf); i++ {
		next := cur.children[buf[pos+i]]
		if next == nil {
			break
		}
		cur = next
		out = append(out, cur.seqs...)
	}
	for _, s := range m.fallback {
		if s.Matches(buf, pos) {
			out = append(out, s)
		}
	}
	return out
}

// MinLen returns the minimum length across all contributing sequences.
func (m *Matcher) MinLen() int { return m.minLen }

// MaxLen returns the maximum length across all contributing sequences.
func (m *Matcher) MaxLen() int { return m.maxLen }

// Sequences returns the full, original set of contributing sequences.
func (m *Matcher) Sequences() []*sequence.Matcher {
	return append([]*sequence.Matcher(nil), m.sequences...)
}
