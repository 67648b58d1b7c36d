// Package compiler turns a parse-tree Node (as produced by package
// syntax) into one of the matcher types: a pattern.Matcher, a
// sequence.Matcher, or an automaton.NFA, per the dispatch table of
// spec.md §4.5. It is grounded on that table directly, and on the
// teacher's pronom/patterns.go for the case-insensitive-string-as-a-
// 2-byte-set-per-letter idiom.
package compiler

import (
	"fmt"

	"github.com/binaryforge/byteseek/automaton"
	"github.com/binaryforge/byteseek/pattern"
	"github.com/binaryforge/byteseek/sequence"
)

// Kind tags the variety of a Node.
type Kind int

const (
	Byte Kind = iota
	AllBitmask
	AnyBitmask
	Any
	Set
	InvertedSet
	Range
	CaseSensitiveString
	CaseInsensitiveString
	Sequence
	Repeat
	Alt
	Many
	OneToMany
	Optional
)

// Node is one parse-tree node. Only the fields relevant to Kind are
// populated; see the constructors below.
type Node struct {
	Kind     Kind
	Byte     byte
	Mask     byte
	Lo, Hi   byte
	Str      string
	Children []*Node

	// Repeat bounds: exactly N if !Bounded; between N and M inclusive if
	// Bounded; N or more if Bounded && Unbounded (M is ignored).
	N         int
	M         int
	Bounded   bool
	Unbounded bool
}

func NewByte(v byte) *Node                   { return &Node{Kind: Byte, Byte: v} }
func NewAllBitmask(m byte) *Node              { return &Node{Kind: AllBitmask, Mask: m} }
func NewAnyBitmask(m byte) *Node              { return &Node{Kind: AnyBitmask, Mask: m} }
func NewAny() *Node                           { return &Node{Kind: Any} }
func NewSet(children ...*Node) *Node          { return &Node{Kind: Set, Children: children} }
func NewInvertedSet(children ...*Node) *Node  { return &Node{Kind: InvertedSet, Children: children} }
func NewRange(lo, hi byte) *Node              { return &Node{Kind: Range, Lo: lo, Hi: hi} }
func NewCaseSensitiveString(s string) *Node   { return &Node{Kind: CaseSensitiveString, Str: s} }
func NewCaseInsensitiveString(s string) *Node { return &Node{Kind: CaseInsensitiveString, Str: s} }
func NewSequence(children ...*Node) *Node     { return &Node{Kind: Sequence, Children: children} }
func NewAlt(children ...*Node) *Node          { return &Node{Kind: Alt, Children: children} }
func NewMany(child *Node) *Node               { return &Node{Kind: Many, Children: []*Node{child}} }
func NewOneToMany(child *Node) *Node          { return &Node{Kind: OneToMany, Children: []*Node{child}} }
func NewOptional(child *Node) *Node           { return &Node{Kind: Optional, Children: []*Node{child}} }

// NewRepeatExact builds REPEAT(n, child).
func NewRepeatExact(n int, child *Node) *Node {
	return &Node{Kind: Repeat, N: n, Children: []*Node{child}}
}

// NewRepeatRange builds REPEAT(n..m, child).
func NewRepeatRange(n, m int, child *Node) *Node {
	return &Node{Kind: Repeat, N: n, M: m, Bounded: true, Children: []*Node{child}}
}

// NewRepeatAtLeast builds REPEAT(n..*, child): n mandatory copies
// followed by zero or more further copies (X{n,*} in spec.md §6).
func NewRepeatAtLeast(n int, child *Node) *Node {
	return &Node{Kind: Repeat, N: n, Bounded: true, Unbounded: true, Children: []*Node{child}}
}

// Compile converts n into its matcher, per spec.md §4.5's table. The
// concrete result type depends on n.Kind: a pattern.Matcher for
// byte-level kinds, a *sequence.Matcher for strings/sequences/exact
// repeats, or an *automaton.NFA for alternation, Kleene-style
// quantifiers, and variable-bound repeats.
func Compile(n *Node) (any, error) {
	if n == nil {
		return nil, fmt.Errorf("compiler: nil node")
	}
	switch n.Kind {
	case Byte:
		return pattern.OneByte(n.Byte), nil
	case AllBitmask:
		return pattern.AllBitmask(n.Mask), nil
	case AnyBitmask:
		return pattern.AnyBitmask(n.Mask), nil
	case Any:
		return pattern.Any{}, nil
	case Set:
		return compileSet(n, false)
	case InvertedSet:
		return compileSet(n, true)
	case Range:
		lo, hi := n.Lo, n.Hi
		if lo > hi {
			lo, hi = hi, lo
		}
		return pattern.NewRange(lo, hi), nil
	case CaseSensitiveString:
		return compileLiteralString(n.Str), nil
	case CaseInsensitiveString:
		return compileCaseInsensitiveString(n.Str), nil
	case Sequence:
		return compileSequence(n)
	case Repeat:
		return compileRepeat(n)
	case Alt:
		return compileAlt(n)
	case Many:
		child, err := compileToNFA(n.Children[0])
		if err != nil {
			return nil, err
		}
		return automaton.Many(child), nil
	case OneToMany:
		child, err := compileToNFA(n.Children[0])
		if err != nil {
			return nil, err
		}
		return automaton.OneToMany(child), nil
	case Optional:
		child, err := compileToNFA(n.Children[0])
		if err != nil {
			return nil, err
		}
		return automaton.Optional(child), nil
	default:
		return nil, fmt.Errorf("compiler: unknown node kind %d", n.Kind)
	}
}

// compileSet unions the matching bytes of every child into the
// tightest representation, inverting the result if inverted is true.
func compileSet(n *Node, inverted bool) (pattern.Matcher, error) {
	if len(n.Children) == 0 {
		return nil, fmt.Errorf("compiler: empty set")
	}
	var bytes []byte
	for _, c := range n.Children {
		m, err := Compile(c)
		if err != nil {
			return nil, err
		}
		bm, ok := m.(pattern.Matcher)
		if !ok {
			return nil, fmt.Errorf("compiler: set child %d did not compile to a byte matcher", c.Kind)
		}
		bytes = append(bytes, bm.MatchingBytes()...)
	}
	m := pattern.FromBytes(bytes)
	if inverted {
		return pattern.Invert(m), nil
	}
	return m, nil
}

func compileLiteralString(s string) *sequence.Matcher {
	return sequence.Literal([]byte(s))
}

// compileCaseInsensitiveString emits a SequenceMatcher where every ASCII
// letter position becomes a 2-byte {lower,upper} Set and every other
// position stays a plain OneByte, per spec.md §4.5.
func compileCaseInsensitiveString(s string) *sequence.Matcher {
	elems := make([]pattern.Matcher, len(s))
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b >= 'a' && b <= 'z' {
			elems[i] = pattern.NewSet([]byte{b, b - 32})
		} else if b >= 'A' && b <= 'Z' {
			elems[i] = pattern.NewSet([]byte{b, b + 32})
		} else {
			elems[i] = pattern.OneByte(b)
		}
	}
	return sequence.New(elems)
}

// compileSequence concatenates every child's compiled form into one.
// If every child is a fixed-length byte matcher or sequence, the result
// is a flat *sequence.Matcher (the common, cheap case). If any child
// compiled to an *automaton.NFA (an alternation or quantifier inside the
// sequence, e.g. "(a|b) c"), the whole sequence is built as an NFA
// concatenation instead, per spec.md §4.5's "concatenate compiled
// children" generalised to mixed fixed/automaton children.
func compileSequence(n *Node) (any, error) {
	if len(n.Children) == 0 {
		return nil, fmt.Errorf("compiler: empty sequence")
	}
	compiled := make([]any, len(n.Children))
	fixedLength := true
	for i, c := range n.Children {
		out, err := Compile(c)
		if err != nil {
			return nil, err
		}
		compiled[i] = out
		if _, ok := out.(*automaton.NFA); ok {
			fixedLength = false
		}
	}
	if fixedLength {
		var elems []pattern.Matcher
		for _, out := range compiled {
			switch v := out.(type) {
			case pattern.Matcher:
				elems = append(elems, v)
			case *sequence.Matcher:
				for i := 0; i < v.Len(); i++ {
					elems = append(elems, v.MatcherAt(i))
				}
			}
		}
		return sequence.New(elems), nil
	}
	var out *automaton.NFA
	for i, c := range compiled {
		var nfa *automaton.NFA
		switch v := c.(type) {
		case *automaton.NFA:
			nfa = v
		case pattern.Matcher:
			nfa = automaton.FromMatcher(v)
		case *sequence.Matcher:
			nfa = sequenceToNFA(v)
		default:
			return nil, fmt.Errorf("compiler: sequence child %d is not quantifiable", n.Children[i].Kind)
		}
		if out == nil {
			out = nfa
			continue
		}
		out = automaton.Concat(out, nfa)
	}
	return out, nil
}

// compileRepeat handles both exact (n-fold concatenation, producing a
// SequenceMatcher when possible) and variable-bound repeats (n..m,
// producing an automaton): n..m expands to n mandatory copies followed
// by (m-n) optional copies, each joined by automaton.Concat.
func compileRepeat(n *Node) (any, error) {
	child := n.Children[0]
	if !n.Bounded {
		if n.N < 1 {
			return nil, fmt.Errorf("compiler: repeat count must be >= 1")
		}
		out, err := Compile(child)
		if err != nil {
			return nil, err
		}
		seq, ok := asSequence(out)
		if !ok {
			return nil, fmt.Errorf("compiler: repeated target must be a fixed-length matcher")
		}
		return seq.Repeat(n.N), nil
	}
	if n.N < 0 {
		return nil, fmt.Errorf("compiler: invalid repeat bound %d", n.N)
	}
	nfa, err := compileToNFA(child)
	if err != nil {
		return nil, err
	}
	if n.Unbounded {
		tail := automaton.Many(nfa)
		if n.N == 0 {
			return tail, nil
		}
		return automaton.Concat(automaton.Repeat(nfa, n.N), tail), nil
	}
	if n.M < n.N {
		return nil, fmt.Errorf("compiler: invalid repeat bounds %d..%d", n.N, n.M)
	}
	var out *automaton.NFA
	if n.N == 0 {
		out = automaton.Epsilon()
	} else {
		out = automaton.Repeat(nfa, n.N)
	}
	for i := n.N; i < n.M; i++ {
		out = automaton.Concat(out, automaton.Optional(nfa))
	}
	return out, nil
}

func compileAlt(n *Node) (*automaton.NFA, error) {
	if len(n.Children) == 0 {
		return nil, fmt.Errorf("compiler: empty alternation")
	}
	var out *automaton.NFA
	for _, c := range n.Children {
		nfa, err := compileToNFA(c)
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = nfa
			continue
		}
		out = automaton.Alt(out, nfa)
	}
	return out, nil
}

// compileToNFA compiles n and promotes the result to an *automaton.NFA
// regardless of which concrete type Compile produced, so that Alt/Many/
// OneToMany/Optional/variable-bound Repeat can combine children
// uniformly via the automaton package's epsilon-NFA combinators.
func compileToNFA(n *Node) (*automaton.NFA, error) {
	out, err := Compile(n)
	if err != nil {
		return nil, err
	}
	switch v := out.(type) {
	case *automaton.NFA:
		return v, nil
	case pattern.Matcher:
		return automaton.FromMatcher(v), nil
	case *sequence.Matcher:
		return sequenceToNFA(v), nil
	default:
		return nil, fmt.Errorf("compiler: unquantifiable target of kind %d", n.Kind)
	}
}

// sequenceToNFA builds the linear-chain NFA matching exactly the bytes
// of seq, one FromMatcher per position concatenated in order.
func sequenceToNFA(seq *sequence.Matcher) *automaton.NFA {
	out := automaton.FromMatcher(seq.MatcherAt(0))
	for i := 1; i < seq.Len(); i++ {
		out = automaton.Concat(out, automaton.FromMatcher(seq.MatcherAt(i)))
	}
	return out
}

// asSequence promotes a bare pattern.Matcher (a byte-level compile
// result) to a length-1 sequence.Matcher so single-byte targets like
// `61{3}` can go through sequence.Matcher.Repeat the same as a multi-byte
// one; a *sequence.Matcher passes through unchanged.
func asSequence(out any) (*sequence.Matcher, bool) {
	switch v := out.(type) {
	case *sequence.Matcher:
		return v, true
	case pattern.Matcher:
		return sequence.New([]pattern.Matcher{v}), true
	default:
		return nil, false
	}
}
