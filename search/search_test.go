package search_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binaryforge/byteseek/compiler"
	"github.com/binaryforge/byteseek/multiseq"
	"github.com/binaryforge/byteseek/pattern"
	"github.com/binaryforge/byteseek/reader"
	"github.com/binaryforge/byteseek/search"
	"github.com/binaryforge/byteseek/sequence"
)

func src(data string) reader.Source {
	return reader.NewBytesBuffer([]byte(data), len(data), nil)
}

func TestHorspoolScenarioS1(t *testing.T) {
	seq := sequence.Literal([]byte("Here"))
	h := search.NewHorspool(seq)
	s := src("xHereHerey")

	p1, ok := h.SearchForward(s, 0, 10)
	require.True(t, ok)
	assert.EqualValues(t, 1, p1.Offset)

	p2, ok := h.SearchForward(s, p1.Offset+1, 10)
	require.True(t, ok)
	assert.EqualValues(t, 5, p2.Offset)

	_, ok = h.SearchForward(s, p2.Offset+1, 10)
	assert.False(t, ok)

	// backward from the end reports 5 then 1.
	b1, ok := h.SearchBackward(s, 10, 0)
	require.True(t, ok)
	assert.EqualValues(t, 5, b1.Offset)
	b2, ok := h.SearchBackward(s, b1.Offset-1, 0)
	require.True(t, ok)
	assert.EqualValues(t, 1, b2.Offset)
}

func TestHorspoolScenarioS2WhitespaceSet(t *testing.T) {
	ws := pattern.NewSet([]byte{0x09, 0x0a, 0x0d, 0x20})
	seq := sequence.New([]pattern.Matcher{ws})
	h := search.NewHorspool(seq)
	s := src("a b\tc\nd")

	var got []int64
	for p := range h.SearchAll(s, 0, int64(len("a b\tc\nd"))) {
		got = append(got, p.Offset)
	}
	assert.Equal(t, []int64{1, 3, 5}, got)
}

func TestHorspoolShiftTableScenarioS7(t *testing.T) {
	// S7: 'abc' (m=3): default entries 3; shift[0x61]=2, shift[0x62]=1, shift[0x63]=3.
	seq := sequence.Literal([]byte("abc"))
	h := search.NewHorspool(seq)

	// Exercise the table indirectly: at p=0 the probe byte is 'a', so the
	// search advances by 2 to p=2; there the probe is 'b', advancing by 1
	// to the match at p=3.
	data := "xxaabc"
	p, ok := h.SearchForward(src(data), 0, int64(len(data)))
	require.True(t, ok)
	assert.EqualValues(t, 3, p.Offset)
}

func TestSetHorspoolScenarioS4(t *testing.T) {
	mid := sequence.Literal([]byte("Mid"))
	and := sequence.Literal([]byte("and"))
	trie := multiseq.New([]*sequence.Matcher{mid, and})
	sh := search.NewSetHorspool(trie)

	data := "Midsommer and"
	var got [][2]any
	for p := range sh.SearchAll(src(data), 0, int64(len(data))) {
		b, _ := p.Seq.Bytes()
		got = append(got, [2]any{p.Offset, string(b)})
	}
	require.Len(t, got, 2)
	assert.EqualValues(t, 0, got[0][0])
	assert.Equal(t, "Mid", got[0][1])
	assert.EqualValues(t, 10, got[1][0])
	assert.Equal(t, "and", got[1][1])
}

func TestScenarioS5CaseInsensitiveForwardAll(t *testing.T) {
	node := compiler.NewCaseInsensitiveString("HtMl")
	out, err := compiler.Compile(node)
	require.NoError(t, err)
	seq := out.(*sequence.Matcher)
	h := search.NewHorspool(seq)

	data := "xhtmlHTMLhTmL"
	var got []int64
	for p := range h.SearchAll(src(data), 0, int64(len(data))) {
		got = append(got, p.Offset)
	}
	assert.Equal(t, []int64{1, 5, 9}, got)
}

func TestScenarioS6WindowBoundary(t *testing.T) {
	data := []byte("AAAAAAAGutenberg")
	s := reader.NewBuffer(bytesAt(data), int64(len(data)), 8, nil)
	seq := sequence.Literal([]byte("Gutenberg"))
	h := search.NewHorspool(seq)

	p, ok := h.SearchForward(s, 0, int64(len(data)))
	require.True(t, ok)
	assert.EqualValues(t, 7, p.Offset)
}

func TestSundayFindsSameMatchesAsHorspool(t *testing.T) {
	seq := sequence.Literal([]byte("Here"))
	sun := search.NewSunday(seq)
	s := src("xHereHerey")

	p1, ok := sun.SearchForward(s, 0, 10)
	require.True(t, ok)
	assert.EqualValues(t, 1, p1.Offset)
	p2, ok := sun.SearchForward(s, p1.Offset+1, 10)
	require.True(t, ok)
	assert.EqualValues(t, 5, p2.Offset)
}

func TestWuManberFindsBothPatterns(t *testing.T) {
	mid := sequence.Literal([]byte("Mid"))
	and := sequence.Literal([]byte("and"))
	trie := multiseq.New([]*sequence.Matcher{mid, and})
	wm := search.NewWuManber(trie, 2)

	data := "Midsommer and"
	var offsets []int64
	for p := range wm.SearchAll(src(data), 0, int64(len(data))) {
		offsets = append(offsets, p.Offset)
	}
	assert.Contains(t, offsets, int64(0))
	assert.Contains(t, offsets, int64(10))
}

func TestNaiveSequenceMatchesHorspool(t *testing.T) {
	seq := sequence.Literal([]byte("Here"))
	naive := search.NewNaiveSequence(seq)
	s := src("xHereHerey")

	p, ok := naive.SearchForward(s, 0, 10)
	require.True(t, ok)
	assert.EqualValues(t, 1, p.Offset)
}

type bytesAt []byte

func (b bytesAt) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(b)) {
		return 0, io.EOF
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
