// Package automaton implements Automaton: a directed graph of States
// linked by Transitions, used both to drive regular-expression-style
// matching and to back the trie multi-sequence matcher. States and
// transitions live in a flat arena addressed by integer StateID rather
// than as a pointer-linked graph, per spec.md §9's recommendation — this
// sidesteps the need for a pointer-identity visited set when copying
// cyclic sub-graphs (Repeat/Alt duplicate sub-automata routinely):
// copying a sub-graph into another arena is just an array copy with
// every transition target rebased by a constant offset.
//
// NFA construction is Thompson-style: a transition either consumes a
// byte (guarded by a pattern.Matcher) or is an epsilon move (Matcher ==
// nil), and Concat/Alt/Many join sub-automata with epsilon edges. It is
// not a Glushkov position automaton: states do not correspond one to one
// with pattern positions. DFA construction is the standard subset
// construction, deduplicating DFA states by the (epsilon-closed) set of
// NFA states they represent — grounded on the teacher-adjacent
// google/codesearch regexp engine's dstate/nstate split, generalised
// from single-byte transitions to arbitrary pattern.Matcher guards.
package automaton

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/codesearch/sparse"

	"github.com/binaryforge/byteseek/pattern"
)

// StateID addresses a State within an NFA's or DFA's arena.
type StateID int

// Transition is a guarded edge: Matcher == nil denotes an epsilon
// transition (taken without consuming input).
type Transition struct {
	Matcher pattern.Matcher
	Target  StateID
}

// State is one automaton node: a final flag and its outgoing transitions.
type State struct {
	IsFinal     bool
	Transitions []Transition
}

// NFA is a nondeterministic automaton with epsilon transitions: an
// arena of States plus a distinguished start StateID.
type NFA struct {
	states []State
	start  StateID
}

// NewNFA returns an NFA with a single, non-final start state.
func NewNFA() *NFA {
	return &NFA{states: []State{{}}, start: 0}
}

// Start returns the NFA's start state.
func (a *NFA) Start() StateID { return a.start }

// NumStates returns the number of states in the arena.
func (a *NFA) NumStates() int { return len(a.states) }

// AddState appends a new state, final or not, and returns its ID.
func (a *NFA) AddState(final bool) StateID {
	a.states = append(a.states, State{IsFinal: final})
	return StateID(len(a.states) - 1)
}

// SetFinal sets the final flag of an existing state.
func (a *NFA) SetFinal(id StateID, final bool) { a.states[id].IsFinal = final }

// IsFinal reports whether id is a final state.
func (a *NFA) IsFinal(id StateID) bool { return a.states[id].IsFinal }

// AddTransition adds a guarded edge from -> to. m == nil adds an
// epsilon transition.
func (a *NFA) AddTransition(from StateID, m pattern.Matcher, to StateID) {
	a.states[from].Transitions = append(a.states[from].Transitions, Transition{Matcher: m, Target: to})
}

// Transitions returns the outgoing transitions of a state.
func (a *NFA) Transitions(id StateID) []Transition { return a.states[id].Transitions }

// FromMatcher builds the minimal two-state NFA accepting exactly one
// byte satisfying m: start --m--> final.
func FromMatcher(m pattern.Matcher) *NFA {
	a := NewNFA()
	final := a.AddState(true)
	a.AddTransition(a.start, m, final)
	return a
}

// Epsilon returns the NFA accepting only the empty string.
func Epsilon() *NFA {
	a := NewNFA()
	a.SetFinal(a.start, true)
	return a
}

// Clone returns an independent copy of a: a flat array copy in which
// every state and transition target keeps its ID. Because states are
// addressed by integer ID rather than pointer, no pointer-identity
// visited set is needed to terminate on cycles (spec.md §4.4) — the
// whole arena is copied in one pass regardless of how its internal
// transitions loop back on each other.
func (a *NFA) Clone() *NFA {
	out := &NFA{states: make([]State, len(a.states)), start: a.start}
	for i, s := range a.states {
		ts := make([]Transition, len(s.Transitions))
		copy(ts, s.Transitions)
		out.states[i] = State{IsFinal: s.IsFinal, Transitions: ts}
	}
	return out
}

// merge appends a clone of src's states into dst's arena (rebasing
// every transition target by the offset at which they land) and
// returns that offset, i.e. src's StateID i now lives at dst StateID
// offset+i.
func merge(dst, src *NFA) StateID {
	offset := StateID(len(dst.states))
	for _, s := range src.states {
		ts := make([]Transition, len(s.Transitions))
		for i, t := range s.Transitions {
			ts[i] = Transition{Matcher: t.Matcher, Target: t.Target + offset}
		}
		dst.states = append(dst.states, State{IsFinal: s.IsFinal, Transitions: ts})
	}
	return offset
}

// finals returns the IDs of every final state in a.
func (a *NFA) finals() []StateID {
	var out []StateID
	for i, s := range a.states {
		if s.IsFinal {
			out = append(out, StateID(i))
		}
	}
	return out
}

// Concat returns an NFA matching a followed by b: a's final states stop
// being final and gain an epsilon edge to (a clone of) b's start; the
// result's finals are b's (cloned) finals.
func Concat(a, b *NFA) *NFA {
	out := a.Clone()
	aFinals := out.finals()
	for _, id := range aFinals {
		out.states[id].IsFinal = false
	}
	offset := merge(out, b)
	for _, id := range aFinals {
		out.AddTransition(id, nil, offset+b.start)
	}
	return out
}

// Alt returns an NFA matching a or b: a fresh start state epsilon-
// branches into clones of both; the result's finals are the union of
// both clones' finals.
func Alt(a, b *NFA) *NFA {
	out := &NFA{states: []State{{}}}
	aOff := merge(out, a)
	bOff := merge(out, b)
	out.AddTransition(out.start, nil, aOff+a.start)
	out.AddTransition(out.start, nil, bOff+b.start)
	return out
}

// Optional returns an NFA matching a or the empty string.
func Optional(a *NFA) *NFA { return Alt(a, Epsilon()) }

// Many returns an NFA matching zero or more repetitions of a (Kleene
// star): a fresh, final start state epsilon-branches into a clone of
// a's start, and a's finals loop back via epsilon to the fresh start.
func Many(a *NFA) *NFA {
	out := &NFA{states: []State{{IsFinal: true}}}
	offset := merge(out, a)
	out.AddTransition(out.start, nil, offset+a.start)
	for _, id := range a.finals() {
		out.AddTransition(offset+id, nil, out.start)
	}
	return out
}

// OneToMany returns an NFA matching one or more repetitions of a.
func OneToMany(a *NFA) *NFA { return Concat(a, Many(a)) }

// Repeat returns an NFA matching exactly k concatenated copies of a.
// Panics if k < 1.
func Repeat(a *NFA, k int) *NFA {
	if k < 1 {
		panic("automaton: repeat count must be >= 1")
	}
	out := a
	for i := 1; i < k; i++ {
		out = Concat(out, a)
	}
	return out.Clone()
}

// epsilonClosure extends the sparse Set in place with the
// epsilon-reachable closure of the states already in it.
func epsilonClosure(a *NFA, set *sparse.Set) {
	stack := append([]uint32(nil), set.Dense()...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range a.Transitions(StateID(id)) {
			if t.Matcher != nil {
				continue
			}
			if !set.Has(uint32(t.Target)) {
				set.Add(uint32(t.Target))
				stack = append(stack, uint32(t.Target))
			}
		}
	}
}

// DFA is the result of subset-constructing an NFA: states are
// deduplicated by the exact set of NFA states they represent (spec.md
// §4.4's "dedup invariant").
type DFA struct {
	states []dfaState
	start  int
}

type dfaState struct {
	next  [256]int // -1 means no transition
	final bool
}

// Determinize runs the standard subset construction over nfa, using a
// github.com/google/codesearch/sparse.Set to track each DFA state's
// underlying NFA-state set, and a canonical encoding of that set as the
// deduplication key.
func Determinize(nfa *NFA) *DFA {
	n := nfa.NumStates()
	dfa := &DFA{}

	seen := make(map[string]int)
	var queue []*sparse.Set

	newSet := func() *sparse.Set {
		s := &sparse.Set{}
		s.Init(uint32(n))
		return s
	}

	startSet := newSet()
	startSet.Add(uint32(nfa.Start()))
	epsilonClosure(nfa, startSet)

	newState := func(set *sparse.Set) int {
		key := encodeSet(set)
		if id, ok := seen[key]; ok {
			return id
		}
		id := len(dfa.states)
		st := dfaState{final: setHasFinal(nfa, set)}
		for i := range st.next {
			st.next[i] = -1
		}
		dfa.states = append(dfa.states, st)
		seen[key] = id
		queue = append(queue, set)
		return id
	}

	dfa.start = newState(startSet)

	for qi := 0; qi < len(queue); qi++ {
		cur := queue[qi]
		for b := 0; b < 256; b++ {
			next := newSet()
			for _, id := range cur.Dense() {
				for _, t := range nfa.Transitions(StateID(id)) {
					if t.Matcher == nil {
						continue
					}
					if t.Matcher.Matches(byte(b)) && !next.Has(uint32(t.Target)) {
						next.Add(uint32(t.Target))
					}
				}
			}
			if len(next.Dense()) == 0 {
				continue
			}
			epsilonClosure(nfa, next)
			dfa.states[qi].next[b] = newState(next)
		}
	}
	return dfa
}

func setHasFinal(nfa *NFA, set *sparse.Set) bool {
	for _, id := range set.Dense() {
		if nfa.IsFinal(StateID(id)) {
			return true
		}
	}
	return false
}

// encodeSet canonicalises a sparse.Set's membership into a stable
// string key, used to dedupe DFA states by the equality of their
// underlying NFA-state sets.
func encodeSet(set *sparse.Set) string {
	ids := append([]uint32(nil), set.Dense()...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return b.String()
}

// Start returns the DFA's start state index.
func (d *DFA) Start() int { return d.start }

// IsFinal reports whether state i is final.
func (d *DFA) IsFinal(i int) bool { return d.states[i].final }

// Step returns the next state reached from i on byte b, or -1 if the
// DFA has no transition for it.
func (d *DFA) Step(i int, b byte) int { return d.states[i].next[b] }

// NumStates returns the number of DFA states produced.
func (d *DFA) NumStates() int { return len(d.states) }

// Accepts reports whether the DFA accepts buf in its entirety.
func (d *DFA) Accepts(buf []byte) bool {
	s := d.start
	for _, b := range buf {
		s = d.Step(s, b)
		if s < 0 {
			return false
		}
	}
	return d.IsFinal(s)
}
