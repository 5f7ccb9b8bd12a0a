// Package matcher exposes the multi-pattern text search engine: a compiled
// set of literal byte patterns that can be located in byte buffers,
// memory-mapped files, streamed reads, and parallel partitions of a file.
//
// A TextMatcher is built once and is immutable; it may be shared by any
// number of concurrent scans. Each scan owns its input view and result
// buffer.
package matcher

import (
	"sync/atomic"

	"github.com/trustshield/voluta/internal/ahocorasick"
	"github.com/trustshield/voluta/pkg/metrics"
)

// Match is one occurrence of a pattern: Start is the inclusive byte offset
// in the original input, End is exclusive (Start + pattern length), Pattern
// is the pattern exactly as supplied to New, and Index is its ordinal in
// the normalized pattern set.
type Match struct {
	Start   int64  `json:"start"`
	End     int64  `json:"end"`
	Pattern string `json:"pattern"`
	Index   int    `json:"index"`
}

// LineMatch is a Match carried by the line-oriented MatchFile helper,
// with the 1-based line number the occurrence was found on. Offsets are
// absolute file offsets, not line-relative.
type LineMatch struct {
	Line int `json:"line"`
	Match
}

// Options configures a TextMatcher. The zero value is all-off; use
// DefaultOptions for the documented defaults.
type Options struct {
	// Overlapping emits every hit. When false, a left-to-right greedy
	// cover is applied: a hit is kept only if it starts at or after the
	// end of the previously kept hit.
	Overlapping bool

	// CaseInsensitive folds ASCII 'A'..'Z' with 'a'..'z' before automaton
	// lookup. Bytes above 0x7F are compared verbatim.
	CaseInsensitive bool

	// WholeWord keeps a hit only if both neighboring bytes are non-word.
	// Word bytes are ASCII letters, digits, and underscore; input edges
	// count as non-word.
	WholeWord bool

	// Metrics, when non-nil, receives scan counters. Disabled when nil.
	Metrics *metrics.Metrics
}

// DefaultOptions returns the default matcher configuration: overlapping,
// case-insensitive, no whole-word gating.
func DefaultOptions() Options {
	return Options{
		Overlapping:     true,
		CaseInsensitive: true,
		WholeWord:       false,
	}
}

// TextMatcher is the compiled multi-pattern matcher. Construction compiles
// the automaton; all Match* entry points share it read-only.
type TextMatcher struct {
	ac       *ahocorasick.Automaton
	patterns []string
	opts     Options
}

// New builds a TextMatcher over the given patterns. Empty patterns are
// dropped and exact duplicates are collapsed to their first occurrence;
// ErrEmptyPatternSet is returned when nothing survives. Two distinct
// patterns that fold equal in case-insensitive mode are both kept and both
// reported at every hit position.
func New(patterns []string, opts Options) (*TextMatcher, error) {
	kept, folded, err := normalize(patterns, opts.CaseInsensitive)
	if err != nil {
		return nil, err
	}

	builder := ahocorasick.NewBuilder(ahocorasick.Opts{
		ASCIICaseInsensitive: opts.CaseInsensitive,
	})
	return &TextMatcher{
		ac:       builder.Build(folded),
		patterns: kept,
		opts:     opts,
	}, nil
}

// normalize drops empty patterns, collapses exact duplicates, and produces
// the (possibly folded) byte form fed to the automaton builder.
func normalize(patterns []string, fold bool) ([]string, [][]byte, error) {
	kept := make([]string, 0, len(patterns))
	seen := make(map[string]struct{}, len(patterns))
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return nil, nil, ErrEmptyPatternSet
	}

	folded := make([][]byte, len(kept))
	for i, p := range kept {
		if fold {
			folded[i] = foldASCII(p)
		} else {
			folded[i] = unsafeBytes(p)
		}
	}
	return kept, folded, nil
}

// foldASCII returns a lowercased copy of s, folding only ASCII 'A'..'Z'.
func foldASCII(s string) []byte {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return b
}

// MatchBytes scans an in-memory buffer in a single pass and returns all
// matches ordered by (start, end, pattern ordinal).
func (t *TextMatcher) MatchBytes(data []byte) []Match {
	var matches []Match
	t.ac.Scan(data, 0, func(h ahocorasick.Hit) {
		start := h.End - int64(t.ac.PatternLen(h.Pattern))
		if t.opts.WholeWord && !wholeWordOK(data, 0, start, h.End, int64(len(data))) {
			return
		}
		matches = append(matches, t.newMatch(start, h.End, h.Pattern))
	})
	t.countBytes(int64(len(data)))
	return t.finish(matches)
}

// MatchStream scans the accumulated stream buffer. It is an alias of
// MatchBytes: every call performs a full scan of its argument and returns
// all matches, so a caller feeding a growing buffer deduplicates by
// (start, end, pattern) across calls.
func (t *TextMatcher) MatchStream(buf []byte) []Match {
	return t.MatchBytes(buf)
}

// Overlapping reports whether the matcher emits overlapping hits.
func (t *TextMatcher) Overlapping() bool { return t.opts.Overlapping }

// CaseInsensitive reports whether ASCII case folding is applied.
func (t *TextMatcher) CaseInsensitive() bool { return t.opts.CaseInsensitive }

// WholeWord reports whether hits are gated by ASCII word boundaries.
func (t *TextMatcher) WholeWord() bool { return t.opts.WholeWord }

// PatternCount returns the number of patterns after normalization.
func (t *TextMatcher) PatternCount() int { return len(t.patterns) }

// MaxPatternLen returns the length in bytes of the longest pattern.
func (t *TextMatcher) MaxPatternLen() int { return t.ac.MaxPatternLen() }

// Patterns returns the normalized pattern set in ordinal order. The caller
// must not modify the returned slice.
func (t *TextMatcher) Patterns() []string { return t.patterns }

func (t *TextMatcher) newMatch(start, end int64, ordinal int) Match {
	return Match{
		Start:   start,
		End:     end,
		Pattern: t.patterns[ordinal],
		Index:   ordinal,
	}
}

// finish applies the final ordering and, in non-overlapping mode, the
// greedy cover. Applying the cover on the globally sorted list keeps every
// entry point byte-identical regardless of chunking or partitioning.
func (t *TextMatcher) finish(matches []Match) []Match {
	sortMatches(matches)
	if !t.opts.Overlapping {
		matches = nonOverlappingCover(matches)
	}
	if m := t.opts.Metrics; m != nil {
		atomic.AddInt64(&m.MatchesFound, int64(len(matches)))
	}
	return matches
}

func (t *TextMatcher) countBytes(n int64) {
	if m := t.opts.Metrics; m != nil {
		atomic.AddInt64(&m.BytesScanned, n)
	}
}
