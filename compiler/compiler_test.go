package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binaryforge/byteseek/automaton"
	"github.com/binaryforge/byteseek/compiler"
	"github.com/binaryforge/byteseek/pattern"
	"github.com/binaryforge/byteseek/sequence"
)

func compileAs[T any](t *testing.T, n *compiler.Node) T {
	t.Helper()
	out, err := compiler.Compile(n)
	require.NoError(t, err)
	v, ok := out.(T)
	require.Truef(t, ok, "expected %T, got %T", *new(T), out)
	return v
}

func TestCompileByte(t *testing.T) {
	m := compileAs[pattern.Matcher](t, compiler.NewByte('Z'))
	assert.True(t, m.Matches('Z'))
	assert.False(t, m.Matches('A'))
}

func TestCompileRange(t *testing.T) {
	// constructed out of order; compiler must normalise.
	m := compileAs[pattern.Matcher](t, compiler.NewRange('z', 'a'))
	r, ok := m.(pattern.Range)
	require.True(t, ok)
	assert.Equal(t, byte('a'), r.Lo)
	assert.Equal(t, byte('z'), r.Hi)
}

func TestCompileSet(t *testing.T) {
	m := compileAs[pattern.Matcher](t, compiler.NewSet(compiler.NewByte('a'), compiler.NewByte('b')))
	assert.True(t, m.Matches('a'))
	assert.True(t, m.Matches('b'))
	assert.False(t, m.Matches('c'))
}

func TestCompileInvertedSet(t *testing.T) {
	m := compileAs[pattern.Matcher](t, compiler.NewInvertedSet(compiler.NewByte('a')))
	assert.False(t, m.Matches('a'))
	assert.True(t, m.Matches('b'))
}

func TestCompileEmptySetErrors(t *testing.T) {
	_, err := compiler.Compile(compiler.NewSet())
	assert.Error(t, err)
}

func TestCompileCaseSensitiveString(t *testing.T) {
	s := compileAs[*sequence.Matcher](t, compiler.NewCaseSensitiveString("Go"))
	assert.True(t, s.Matches([]byte("Go"), 0))
	assert.False(t, s.Matches([]byte("go"), 0))
}

func TestCompileCaseInsensitiveString(t *testing.T) {
	s := compileAs[*sequence.Matcher](t, compiler.NewCaseInsensitiveString("Go1"))
	assert.True(t, s.Matches([]byte("Go1"), 0))
	assert.True(t, s.Matches([]byte("gO1"), 0))
	assert.False(t, s.Matches([]byte("Go2"), 0))
}

func TestCompileSequence(t *testing.T) {
	s := compileAs[*sequence.Matcher](t, compiler.NewSequence(
		compiler.NewByte('a'), compiler.NewByte('b'), compiler.NewByte('c'),
	))
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Matches([]byte("abc"), 0))
}

func TestCompileRepeatExact(t *testing.T) {
	s := compileAs[*sequence.Matcher](t, compiler.NewRepeatExact(3, compiler.NewByte('x')))
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Matches([]byte("xxx"), 0))
}

func TestCompileRepeatRangeProducesAutomaton(t *testing.T) {
	n := compiler.NewRepeatRange(1, 3, compiler.NewByte('a'))
	out, err := compiler.Compile(n)
	require.NoError(t, err)
	nfa, ok := out.(*automaton.NFA)
	require.True(t, ok)
	dfa := automaton.Determinize(nfa)
	assert.False(t, dfa.Accepts([]byte("")))
	assert.True(t, dfa.Accepts([]byte("a")))
	assert.True(t, dfa.Accepts([]byte("aaa")))
	assert.False(t, dfa.Accepts([]byte("aaaa")))
}

func TestCompileAlt(t *testing.T) {
	n := compiler.NewAlt(compiler.NewByte('a'), compiler.NewByte('b'))
	out, err := compiler.Compile(n)
	require.NoError(t, err)
	dfa := automaton.Determinize(out.(*automaton.NFA))
	assert.True(t, dfa.Accepts([]byte("a")))
	assert.True(t, dfa.Accepts([]byte("b")))
	assert.False(t, dfa.Accepts([]byte("c")))
}

func TestCompileEmptyAltErrors(t *testing.T) {
	_, err := compiler.Compile(compiler.NewAlt())
	assert.Error(t, err)
}

func TestCompileMany(t *testing.T) {
	n := compiler.NewMany(compiler.NewByte('a'))
	out, err := compiler.Compile(n)
	require.NoError(t, err)
	dfa := automaton.Determinize(out.(*automaton.NFA))
	assert.True(t, dfa.Accepts([]byte("")))
	assert.True(t, dfa.Accepts([]byte("aaa")))
}

func TestCompileUnknownKindErrors(t *testing.T) {
	n := &compiler.Node{Kind: compiler.Kind(99)}
	_, err := compiler.Compile(n)
	assert.Error(t, err)
}
