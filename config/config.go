// Package config gathers the tunable numeric defaults used across the
// module — window size, cache depth, Wu-Manber block size — behind
// package-level accessor functions, mirroring the teacher's own
// referenced config.MaxBOF()/config.Home() shape: plain functions, no
// struct to construct, no file to load.
package config

// defaultWindowSize is the byte-window chunk size a reader.Buffer reads
// from its source when none is given explicitly.
var defaultWindowSize = 4096

// DefaultWindowSize returns the window size reader.NewBuffer falls back
// to when called with windowSize <= 0.
func DefaultWindowSize() int { return defaultWindowSize }

// SetDefaultWindowSize overrides DefaultWindowSize's return value, for
// callers tuning memory/IO tradeoffs for their own workload.
func SetDefaultWindowSize(n int) {
	if n < 1 {
		return
	}
	defaultWindowSize = n
}

// defaultMRUDepth is how many windows a reader.MRUCache retains by
// default.
var defaultMRUDepth = 3

// DefaultMRUDepth returns the window count reader.NewMRUCache is given
// when a caller wants the package's own default depth instead of
// picking one itself.
func DefaultMRUDepth() int { return defaultMRUDepth }

// SetDefaultMRUDepth overrides DefaultMRUDepth.
func SetDefaultMRUDepth(n int) {
	if n < 1 {
		return
	}
	defaultMRUDepth = n
}

// defaultWuManberBlockSize is the block length Wu-Manber hashes when a
// caller doesn't pick one, per spec.md §4.6.4.
var defaultWuManberBlockSize = 2

// DefaultWuManberBlockSize returns the block size search.NewWuManber
// uses absent an explicit override.
func DefaultWuManberBlockSize() int { return defaultWuManberBlockSize }

// SetDefaultWuManberBlockSize overrides DefaultWuManberBlockSize.
func SetDefaultWuManberBlockSize(n int) {
	if n < 1 {
		return
	}
	defaultWuManberBlockSize = n
}

// defaultMaxMatchLength caps how many bytes a single match is allowed to
// span when reading ahead from a reader.Source, guarding against
// unbounded automaton match attempts (e.g. an X* Y pattern over a long
// run of X) consuming the rest of a large file.
var defaultMaxMatchLength = 1 << 20

// DefaultMaxMatchLength returns the byte cap search's automaton-backed
// searchers apply when growing a candidate match.
func DefaultMaxMatchLength() int { return defaultMaxMatchLength }

// SetDefaultMaxMatchLength overrides DefaultMaxMatchLength.
func SetDefaultMaxMatchLength(n int) {
	if n < 1 {
		return
	}
	defaultMaxMatchLength = n
}
