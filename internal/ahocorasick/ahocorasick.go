// Package ahocorasick implements the multi-pattern automaton shared by all
// scan entry points. The automaton is built once from a normalized pattern
// set and is immutable afterwards; any number of goroutines may traverse it
// concurrently.
//
// The representation is the classic goto/failure construction with two
// build-time twists:
//
//   - transitions are stored as dense 256-way rows, and after the failure
//     BFS every row is rewritten into the full goto closure, so traversal
//     never walks failure links: next[s][c] is defined for every byte.
//   - output sets are unioned down failure chains during the BFS, so
//     arriving at a state yields every pattern whose spelling is a suffix
//     of the path to that state.
package ahocorasick

// Hit is a raw automaton hit: the exclusive end offset of the occurrence in
// the logical input and the ordinal of the recognized pattern. Start offsets
// are recovered by the caller from the pattern length.
type Hit struct {
	End     int64
	Pattern int
}

// Opts configures automaton construction.
type Opts struct {
	// ASCIICaseInsensitive folds bytes 'A'..'Z' to 'a'..'z' before every
	// transition lookup. Patterns must be handed to Build already folded
	// the same way.
	ASCIICaseInsensitive bool
}

// Automaton is the compiled multi-pattern state machine. State 0 is the
// root. Frozen after Build; safe for concurrent scans.
type Automaton struct {
	next [][256]int32
	out  [][]int32

	patternLens []int
	maxLen      int
	fold        [256]byte
}

// Builder constructs an Automaton from a pattern set.
type Builder struct {
	opts Opts
}

// NewBuilder returns a Builder with the given options.
func NewBuilder(opts Opts) *Builder {
	return &Builder{opts: opts}
}

// Build compiles the automaton over the given patterns. Patterns are indexed
// by position; the caller guarantees the slice is non-empty and free of
// empty entries. Build is total: it cannot fail on a valid pattern set.
func (b *Builder) Build(patterns [][]byte) *Automaton {
	a := &Automaton{
		next:        make([][256]int32, 1, 16),
		out:         make([][]int32, 1, 16),
		patternLens: make([]int, len(patterns)),
	}

	for c := 0; c < 256; c++ {
		a.fold[c] = byte(c)
	}
	if b.opts.ASCIICaseInsensitive {
		for c := 'A'; c <= 'Z'; c++ {
			a.fold[c] = byte(c) + ('a' - 'A')
		}
	}

	for i, p := range patterns {
		a.patternLens[i] = len(p)
		if len(p) > a.maxLen {
			a.maxLen = len(p)
		}
		a.insert(i, p)
	}
	a.computeFailures()
	return a
}

// insert adds one pattern as a trie path from the root. State 0 doubles as
// the "no edge" sentinel during construction; no trie node ever has the
// root as a child, so the ambiguity is harmless until computeFailures
// rewrites the rows.
func (a *Automaton) insert(ordinal int, pattern []byte) {
	state := int32(0)
	for _, c := range pattern {
		c = a.fold[c]
		if a.next[state][c] == 0 {
			a.next = append(a.next, [256]int32{})
			a.out = append(a.out, nil)
			a.next[state][c] = int32(len(a.next) - 1)
		}
		state = a.next[state][c]
	}
	a.out[state] = append(a.out[state], int32(ordinal))
}

// computeFailures runs the breadth-first failure-link pass and leaves every
// row in full goto closure form. The failure links themselves are only
// needed during this pass, so they are not retained on the Automaton.
func (a *Automaton) computeFailures() {
	fail := make([]int32, len(a.next))

	queue := make([]int32, 0, len(a.next))
	for c := 0; c < 256; c++ {
		if s := a.next[0][c]; s != 0 {
			fail[s] = 0
			queue = append(queue, s)
		}
		// missing root edges already loop back to the root
	}

	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]

		for c := 0; c < 256; c++ {
			t := a.next[s][c]
			if t != 0 {
				queue = append(queue, t)
				fail[t] = a.next[fail[s]][c]
				a.out[t] = append(a.out[t], a.out[fail[t]]...)
			} else {
				a.next[s][c] = a.next[fail[s]][c]
			}
		}
	}
}

// Scan walks data left to right from the root state and calls emit for
// every hit, in discovery order (nondecreasing end offset). base is the
// absolute offset of data[0] in the logical input; emitted end offsets are
// absolute.
func (a *Automaton) Scan(data []byte, base int64, emit func(Hit)) {
	state := int32(0)
	for i := 0; i < len(data); i++ {
		state = a.next[state][a.fold[data[i]]]
		for _, p := range a.out[state] {
			emit(Hit{End: base + int64(i) + 1, Pattern: int(p)})
		}
	}
}

// Contains reports whether any pattern occurs in data, returning at the
// first hit instead of walking the full input.
func (a *Automaton) Contains(data []byte) bool {
	state := int32(0)
	for i := 0; i < len(data); i++ {
		state = a.next[state][a.fold[data[i]]]
		if len(a.out[state]) > 0 {
			return true
		}
	}
	return false
}

// Fold returns the byte the automaton indexes transitions by: the ASCII
// case fold of c in case-insensitive mode, c itself otherwise.
func (a *Automaton) Fold(c byte) byte {
	return a.fold[c]
}

// PatternCount returns the number of patterns the automaton was built with.
func (a *Automaton) PatternCount() int {
	return len(a.patternLens)
}

// PatternLen returns the byte length of the pattern with the given ordinal.
func (a *Automaton) PatternLen(ordinal int) int {
	return a.patternLens[ordinal]
}

// MaxPatternLen returns the length of the longest pattern. Chunked scans
// size their overlap from this.
func (a *Automaton) MaxPatternLen() int {
	return a.maxLen
}

// StateCount returns the number of automaton states, root included.
func (a *Automaton) StateCount() int {
	return len(a.next)
}
