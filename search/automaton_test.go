package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binaryforge/byteseek/automaton"
	"github.com/binaryforge/byteseek/compiler"
	"github.com/binaryforge/byteseek/search"
	"github.com/binaryforge/byteseek/sequence"
	"github.com/binaryforge/byteseek/syntax"
)

func compileDFA(t *testing.T, pat string) *automaton.DFA {
	t.Helper()
	n, err := syntax.Parse(pat)
	require.NoError(t, err)
	out, err := compiler.Compile(n)
	require.NoError(t, err)
	nfa, ok := out.(*automaton.NFA)
	if seq, isSeq := out.(*sequence.Matcher); isSeq {
		// fixed strings compile to a sequence; chain its positions into an NFA.
		nfa, ok = automaton.FromMatcher(seq.MatcherAt(0)), true
		for i := 1; i < seq.Len(); i++ {
			nfa = automaton.Concat(nfa, automaton.FromMatcher(seq.MatcherAt(i)))
		}
	}
	require.True(t, ok, "expected an automaton or a sequence for %q", pat)
	return automaton.Determinize(nfa)
}

func TestAutomatonSearchFindsAlternation(t *testing.T) {
	dfa := compileDFA(t, "61 | 62")
	s := search.NewAutomatonSearch(dfa)

	p, ok := s.SearchForward(src("xxbxx"), 0, 5)
	require.True(t, ok)
	assert.EqualValues(t, 2, p.Offset)
}

func TestAutomatonSearchAllFindsEveryRepetition(t *testing.T) {
	dfa := compileDFA(t, "61+")
	s := search.NewAutomatonSearch(dfa)

	var got []int64
	for p := range s.SearchAll(src("xaaxax"), 0, 6) {
		got = append(got, p.Offset)
	}
	assert.Equal(t, []int64{1, 2, 4}, got)
}

func TestAutomatonSearchBackward(t *testing.T) {
	dfa := compileDFA(t, "'cd'")
	s := search.NewAutomatonSearch(dfa)

	p, ok := s.SearchBackward(src("abcdcd"), 6, 0)
	require.True(t, ok)
	assert.EqualValues(t, 4, p.Offset)
}

func TestAutomatonSearchNoMatch(t *testing.T) {
	dfa := compileDFA(t, "'zz'")
	s := search.NewAutomatonSearch(dfa)

	_, ok := s.SearchForward(src("abcdef"), 0, 6)
	assert.False(t, ok)
}
