package multiseq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binaryforge/byteseek/multiseq"
	"github.com/binaryforge/byteseek/pattern"
	"github.com/binaryforge/byteseek/sequence"
)

func TestFirstMatchScenarioS4(t *testing.T) {
	// S4: trie {"Mid","and"} against "Midsommer and Gunnar" reports a
	// match at offset 0 ("Mid") and at the offset of "and".
	mid := sequence.Literal([]byte("Mid"))
	and := sequence.Literal([]byte("and"))
	m := multiseq.New([]*sequence.Matcher{mid, and})

	data := []byte("Midsommer and Gunnar")
	got := m.FirstMatch(data, 0)
	require.NotNil(t, got)
	b, ok := got.Bytes()
	require.True(t, ok)
	assert.Equal(t, []byte("Mid"), b)

	andPos := 10
	require.Equal(t, byte('a'), data[andPos])
	got2 := m.FirstMatch(data, andPos)
	require.NotNil(t, got2)
	b2, _ := got2.Bytes()
	assert.Equal(t, []byte("and"), b2)

	assert.Nil(t, m.FirstMatch(data, 1))
}

func TestAllMatchesOverlappingPrefixes(t *testing.T) {
	// "he" and "hers" share a prefix; both should be reported when the
	// longer one also matches.
	he := sequence.Literal([]byte("he"))
	hers := sequence.Literal([]byte("hers"))
	m := multiseq.New([]*sequence.Matcher{he, hers})

	data := []byte("hers")
	all := m.AllMatches(data, 0)
	require.Len(t, all, 2)

	// A duplicate literal ("he" again, as a distinct *sequence.Matcher)
	// ends at the same trie node as the first "he" and must be reported
	// alongside it rather than shadowed.
	only := sequence.Literal([]byte("he"))
	m2 := multiseq.New([]*sequence.Matcher{he, hers, only})
	all2 := m2.AllMatches(data, 0)
	require.Len(t, all2, 3)
	assert.Contains(t, all2, he)
	assert.Contains(t, all2, hers)
	assert.Contains(t, all2, only)
}

func TestMinMaxLen(t *testing.T) {
	a := sequence.Literal([]byte("ab"))
	b := sequence.Literal([]byte("abcd"))
	m := multiseq.New([]*sequence.Matcher{a, b})
	assert.Equal(t, 2, m.MinLen())
	assert.Equal(t, 4, m.MaxLen())
}

func TestBoundsCheckBeforeWalk(t *testing.T) {
	s := sequence.Literal([]byte("longpattern"))
	m := multiseq.New([]*sequence.Matcher{s})
	assert.Nil(t, m.FirstMatch([]byte("short"), 0))
	assert.Nil(t, m.FirstMatch([]byte("short"), -1))
}

func TestFallbackForGeneralSequence(t *testing.T) {
	// A sequence with a general (non-literal) element cannot be a trie
	// edge and must still be found via the fallback list.
	ws := pattern.NewSet([]byte{0x09, 0x20})
	gen := sequence.New([]pattern.Matcher{ws, pattern.OneByte('x')})
	lit := sequence.Literal([]byte("ab"))
	m := multiseq.New([]*sequence.Matcher{gen, lit})

	data := []byte(" x")
	got := m.FirstMatch(data, 0)
	require.NotNil(t, got)
	assert.Same(t, gen, got)
}
