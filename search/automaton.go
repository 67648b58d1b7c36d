package search

import (
	"iter"

	"github.com/binaryforge/byteseek/automaton"
	"github.com/binaryforge/byteseek/config"
	"github.com/binaryforge/byteseek/reader"
)

// AutomatonSearch is the Searcher for a compiled automaton.DFA (spec.md
// §3: a Searcher is "parameterised by a matcher (sequence, multi-
// sequence, or automaton)"). Unlike the shift-table searchers it has no
// precomputed skip table — every candidate start position is driven
// through the DFA byte by byte until a final state is reached or the
// run dies, which is the only sound strategy for a matcher whose match
// length isn't known until consumed. matchLen bounds how far a single
// attempt is allowed to run, so a pattern like `61* 62` doesn't walk the
// rest of a large run of 61 bytes looking for a 62 that never comes.
type AutomatonSearch struct {
	dfa      *automaton.DFA
	matchLen int
}

// NewAutomatonSearch wraps dfa for searching, capping a single match
// attempt at config.DefaultMaxMatchLength bytes.
func NewAutomatonSearch(dfa *automaton.DFA) *AutomatonSearch {
	return &AutomatonSearch{dfa: dfa, matchLen: config.DefaultMaxMatchLength()}
}

// attempt reports whether the DFA reaches a final state starting from
// pos, consuming at most a.matchLen bytes of src.
func (a *AutomatonSearch) attempt(src reader.Source, pos int64) bool {
	state := a.dfa.Start()
	if a.dfa.IsFinal(state) {
		return true
	}
	length := src.Length()
	for i := 0; i < a.matchLen; i++ {
		p := pos + int64(i)
		if p >= length {
			return false
		}
		b, ok := src.ReadByte(p)
		if !ok {
			return false
		}
		state = a.dfa.Step(state, b)
		if state < 0 {
			return false
		}
		if a.dfa.IsFinal(state) {
			return true
		}
	}
	return false
}

func (a *AutomatonSearch) SearchForward(src reader.Source, from, to int64) (Position, bool) {
	length := src.Length()
	upper := to
	if length < upper {
		upper = length
	}
	for p := from; p <= upper; p++ {
		if a.attempt(src, p) {
			return Position{Offset: p}, true
		}
	}
	return Position{}, false
}

func (a *AutomatonSearch) SearchBackward(src reader.Source, from, to int64) (Position, bool) {
	length := src.Length()
	p := from
	if p > length {
		p = length
	}
	floor := to
	if floor < 0 {
		floor = 0
	}
	for p >= floor {
		if a.attempt(src, p) {
			return Position{Offset: p}, true
		}
		p--
	}
	return Position{}, false
}

func (a *AutomatonSearch) SearchAll(src reader.Source, from, to int64) iter.Seq[Position] {
	return searchAllFrom(func(f, t int64) (Position, bool) { return a.SearchForward(src, f, t) }, from, to)
}
