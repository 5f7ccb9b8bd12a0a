package matcher_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustshield/voluta/pkg/matcher"
)

func newMatcher(t *testing.T, patterns []string, mutate func(*matcher.Options)) *matcher.TextMatcher {
	t.Helper()
	opts := matcher.DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}
	tm, err := matcher.New(patterns, opts)
	require.NoError(t, err)
	return tm
}

func patternsOf(matches []matcher.Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Pattern
	}
	return out
}

func TestMatchBytes_BasicExample(t *testing.T) {
	tm := newMatcher(t, []string{"fox", "jump", "quick"}, nil)
	text := "The fox jumped over the fence. The fox is quick."

	matches := tm.MatchBytes([]byte(text))

	require.Len(t, matches, 4)
	assert.Equal(t, matcher.Match{Start: 4, End: 7, Pattern: "fox", Index: 0}, matches[0])
	assert.Equal(t, matcher.Match{Start: 8, End: 12, Pattern: "jump", Index: 1}, matches[1])
	assert.Equal(t, matcher.Match{Start: 35, End: 38, Pattern: "fox", Index: 0}, matches[2])
	assert.Equal(t, matcher.Match{Start: 42, End: 47, Pattern: "quick", Index: 2}, matches[3])

	for _, m := range matches {
		assert.Equal(t, m.Pattern, text[m.Start:m.End])
	}
}

func TestMatchBytes_OverlappingPolicy(t *testing.T) {
	patterns := []string{"abcd", "bcde", "cdef"}

	overlapping := newMatcher(t, patterns, nil)
	matches := overlapping.MatchBytes([]byte("abcdefgh"))
	require.Len(t, matches, 3)
	assert.Equal(t, int64(0), matches[0].Start)
	assert.Equal(t, int64(1), matches[1].Start)
	assert.Equal(t, int64(2), matches[2].Start)

	// the greedy cover keeps "abcd" and then rejects "cdef": it starts
	// before the watermark at 4
	greedy := newMatcher(t, patterns, func(o *matcher.Options) { o.Overlapping = false })
	matches = greedy.MatchBytes([]byte("abcdefgh"))
	require.Len(t, matches, 1)
	assert.Equal(t, "abcd", matches[0].Pattern)
}

func TestMatchBytes_NonOverlappingBanana(t *testing.T) {
	overlapping := newMatcher(t, []string{"ana"}, nil)
	require.Len(t, overlapping.MatchBytes([]byte("banana")), 2)

	greedy := newMatcher(t, []string{"ana"}, func(o *matcher.Options) { o.Overlapping = false })
	matches := greedy.MatchBytes([]byte("banana"))
	require.Len(t, matches, 1)
	assert.Equal(t, int64(1), matches[0].Start)
}

func TestMatchBytes_NonOverlappingDisjointIncreasing(t *testing.T) {
	tm := newMatcher(t, []string{"aa", "aaa"}, func(o *matcher.Options) { o.Overlapping = false })

	matches := tm.MatchBytes([]byte("aaaaaaa"))

	var prevEnd int64
	for _, m := range matches {
		assert.GreaterOrEqual(t, m.Start, prevEnd)
		prevEnd = m.End
	}
}

func TestMatchBytes_CaseSensitivity(t *testing.T) {
	text := []byte("HELLO World! hello world!")

	insensitive := newMatcher(t, []string{"hello", "world"}, nil)
	assert.Len(t, insensitive.MatchBytes(text), 4)

	sensitive := newMatcher(t, []string{"hello", "world"}, func(o *matcher.Options) { o.CaseInsensitive = false })
	matches := sensitive.MatchBytes(text)
	require.Len(t, matches, 2)
	assert.Equal(t, int64(13), matches[0].Start)
	assert.Equal(t, int64(19), matches[1].Start)
}

func TestMatchBytes_WholeWord(t *testing.T) {
	tm := newMatcher(t, []string{"cat", "dog", "a"}, func(o *matcher.Options) {
		o.WholeWord = true
		o.CaseInsensitive = false
	})

	matches := tm.MatchBytes([]byte("The cat is fast and ask the dog about a task"))

	require.Equal(t, []string{"cat", "dog", "a"}, patternsOf(matches))
	assert.Equal(t, int64(4), matches[0].Start)
	assert.Equal(t, int64(28), matches[1].Start)
	assert.Equal(t, int64(38), matches[2].Start)
}

func TestMatchBytes_WholeWordBoundaries(t *testing.T) {
	tm := newMatcher(t, []string{"test"}, func(o *matcher.Options) {
		o.WholeWord = true
		o.CaseInsensitive = false
	})

	for _, text := range []string{"test", "test end", "start test", "start test end", "test.", ".test", "(test)", "test!"} {
		assert.Len(t, tm.MatchBytes([]byte(text)), 1, "input %q", text)
	}
	for _, text := range []string{"testing", "pretest", "pretesting", "test_case", "my_test"} {
		assert.Empty(t, tm.MatchBytes([]byte(text)), "input %q", text)
	}
}

func TestMatchBytes_WholeWordNonASCIIIsBoundary(t *testing.T) {
	tm := newMatcher(t, []string{"word"}, func(o *matcher.Options) { o.WholeWord = true })

	// bytes above 0x7F are non-word, so they delimit matches
	assert.Len(t, tm.MatchBytes([]byte("\xc3\xa9word\xc3\xa9")), 1)
}

func TestMatchBytes_WholeWordWithCaseFolding(t *testing.T) {
	tm := newMatcher(t, []string{"Test"}, func(o *matcher.Options) { o.WholeWord = true })

	matches := tm.MatchBytes([]byte("This is a Test and testing and TEST case"))

	require.Len(t, matches, 2)
	assert.Equal(t, int64(10), matches[0].Start)
	assert.Equal(t, int64(31), matches[1].Start)
}

func TestMatchBytes_UnderscorePatterns(t *testing.T) {
	tm := newMatcher(t, []string{"my_var", "test_func"}, func(o *matcher.Options) {
		o.WholeWord = true
		o.CaseInsensitive = false
	})

	matches := tm.MatchBytes([]byte("call my_var and test_func but not my_var_2"))

	assert.Equal(t, []string{"my_var", "test_func"}, patternsOf(matches))
}

func TestMatchBytes_SpecialCharacters(t *testing.T) {
	patterns := []string{"a\\b", "a*b+c?", "[abc]", "hello\tworld", "<div>"}
	tm := newMatcher(t, patterns, nil)

	data := []byte("a\\b a*b+c? [abc] hello\tworld <div>")
	matches := tm.MatchBytes(data)

	found := map[string]bool{}
	for _, m := range matches {
		found[m.Pattern] = true
		assert.Equal(t, m.Pattern, string(data[m.Start:m.End]))
	}
	for _, p := range patterns {
		assert.True(t, found[p], "pattern %q not found", p)
	}
}

func TestMatchBytes_BinaryInput(t *testing.T) {
	tm := newMatcher(t, []string{"\x00\x01\x02"}, nil)

	matches := tm.MatchBytes([]byte{0xff, 0x00, 0x01, 0x02, 0x00, 0x01, 0x02})

	require.Len(t, matches, 2)
	assert.Equal(t, int64(1), matches[0].Start)
	assert.Equal(t, int64(4), matches[1].Start)
}

func TestMatchBytes_EmptyInput(t *testing.T) {
	tm := newMatcher(t, []string{"x"}, nil)
	assert.Empty(t, tm.MatchBytes(nil))
	assert.Empty(t, tm.MatchBytes([]byte{}))
}

func TestMatchStream_AliasOfMatchBytes(t *testing.T) {
	tm := newMatcher(t, []string{"error", "warning"}, nil)
	buf := []byte("error in system\nwarning: disk full")

	assert.Equal(t, tm.MatchBytes(buf), tm.MatchStream(buf))
}

func TestMatchStream_AccumulatedBufferUnion(t *testing.T) {
	tm := newMatcher(t, []string{"abc", "bcd", "cde"}, nil)
	full := []byte("abcde")

	// feeding growing prefixes and unioning yields the full-buffer scan
	seen := map[matcher.Match]struct{}{}
	for i := 2; i < len(full)+2; i += 2 {
		end := min(i, len(full))
		for _, m := range tm.MatchStream(full[:end]) {
			seen[m] = struct{}{}
		}
	}

	want := tm.MatchBytes(full)
	require.Len(t, want, 3)
	assert.Len(t, seen, len(want))
	for _, m := range want {
		_, ok := seen[m]
		assert.True(t, ok)
	}
}

func TestNew_EmptyPatternSet(t *testing.T) {
	_, err := matcher.New(nil, matcher.DefaultOptions())
	assert.ErrorIs(t, err, matcher.ErrEmptyPatternSet)

	_, err = matcher.New([]string{"", "", ""}, matcher.DefaultOptions())
	assert.ErrorIs(t, err, matcher.ErrEmptyPatternSet)
}

func TestNew_FiltersEmptyPatterns(t *testing.T) {
	tm := newMatcher(t, []string{"", "valid", "", "another", ""}, nil)

	assert.Equal(t, 2, tm.PatternCount())

	matches := tm.MatchBytes([]byte("a valid test with another valid pattern"))
	for _, m := range matches {
		assert.NotEmpty(t, m.Pattern)
	}
}

func TestNew_CollapsesExactDuplicates(t *testing.T) {
	tm := newMatcher(t, []string{"dup", "dup", "other"}, nil)

	assert.Equal(t, 2, tm.PatternCount())
	assert.Len(t, tm.MatchBytes([]byte("dup")), 1)
}

func TestNew_FoldEqualPatternsBothReported(t *testing.T) {
	tm := newMatcher(t, []string{"Fox", "fox"}, nil)

	matches := tm.MatchBytes([]byte("FOX"))

	require.Len(t, matches, 2)
	assert.Equal(t, "Fox", matches[0].Pattern)
	assert.Equal(t, "fox", matches[1].Pattern)
}

func TestProperties(t *testing.T) {
	tm := newMatcher(t, []string{"ab", "abcd"}, func(o *matcher.Options) {
		o.Overlapping = false
		o.CaseInsensitive = false
		o.WholeWord = true
	})

	assert.False(t, tm.Overlapping())
	assert.False(t, tm.CaseInsensitive())
	assert.True(t, tm.WholeWord())
	assert.Equal(t, 2, tm.PatternCount())
	assert.Equal(t, 4, tm.MaxPatternLen())
	assert.Equal(t, []string{"ab", "abcd"}, tm.Patterns())

	defaults := newMatcher(t, []string{"x"}, nil)
	assert.True(t, defaults.Overlapping())
	assert.True(t, defaults.CaseInsensitive())
	assert.False(t, defaults.WholeWord())
}

func TestMatchBytes_Deterministic(t *testing.T) {
	tm := newMatcher(t, []string{"the", "he", "eth"}, nil)
	data := []byte("the theme of the ethics lecture")

	first := tm.MatchBytes(data)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, tm.MatchBytes(data))
	}
}

func TestMatchBytes_ConcurrentScans(t *testing.T) {
	tm := newMatcher(t, []string{"alpha", "beta"}, nil)
	data := []byte("alpha beta ALPHA Beta alphabeta")

	want := tm.MatchBytes(data)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, tm.MatchBytes(data))
		}()
	}
	wg.Wait()
}
