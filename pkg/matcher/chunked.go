package matcher

import (
	"log/slog"
	"sync/atomic"

	"github.com/trustshield/voluta/internal/ahocorasick"
	"github.com/trustshield/voluta/internal/mmapfile"
)

// DefaultChunkSize is used by the memory-mapped scanners when no chunk
// size is supplied.
const DefaultChunkSize = 1 << 20

// MatchFileMemmap memory-maps path and scans it in bounded chunks,
// returning the same match set as MatchBytes over the whole file.
// chunkSize 0 selects DefaultChunkSize; sizes below the longest pattern
// are raised to it; negative sizes return ErrInvalidChunkSize.
func (t *TextMatcher) MatchFileMemmap(path string, chunkSize int) ([]Match, error) {
	c, err := t.resolveChunkSize(chunkSize)
	if err != nil {
		return nil, err
	}

	m, err := mmapfile.Open(path)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	data := m.Bytes()
	t.countFile()
	matches := t.collectChunked(data, 0, len(data), c, nil)
	return t.finish(matches), nil
}

// resolveChunkSize applies the chunk-size policy: reject negatives, default
// zero, and raise anything below the longest pattern so a chunk can always
// contain a full match.
func (t *TextMatcher) resolveChunkSize(chunkSize int) (int, error) {
	if chunkSize < 0 {
		return 0, ErrInvalidChunkSize
	}
	c := chunkSize
	if c == 0 {
		c = DefaultChunkSize
	}
	if m := t.ac.MaxPatternLen(); c < m {
		slog.Debug("raising chunk size to longest pattern", "requested", c, "raised", m)
		c = m
	}
	return c, nil
}

// collectChunked scans data[lo:hi] in chunks of c bytes with an overlap of
// maxLen-1, resetting the automaton at each chunk boundary. A hit is kept
// only if its start lies in the chunk's primary region (or the chunk is the
// last one), which yields exactly-once reporting across the overlap.
// keepStart, when non-nil, additionally restricts reported starts; the
// parallel scanner uses it to bound each worker to its own partition.
// Whole-word gating reads neighbors from the full data slice, so chunk
// edges never misclassify a boundary. The returned matches are unordered;
// callers run them through finish.
func (t *TextMatcher) collectChunked(data []byte, lo, hi, c int, keepStart func(int64) bool) []Match {
	if lo >= hi {
		return nil
	}

	stride := c - (t.ac.MaxPatternLen() - 1)
	var matches []Match
	var chunks int64

	for base := lo; ; base += stride {
		end := base + c
		last := end >= hi
		if end > hi {
			end = hi
		}
		primaryEnd := int64(base + stride)

		t.ac.Scan(data[base:end], int64(base), func(h ahocorasick.Hit) {
			start := h.End - int64(t.ac.PatternLen(h.Pattern))
			if !last && start >= primaryEnd {
				return
			}
			if keepStart != nil && !keepStart(start) {
				return
			}
			if t.opts.WholeWord && !wholeWordOK(data, 0, start, h.End, int64(len(data))) {
				return
			}
			matches = append(matches, t.newMatch(start, h.End, h.Pattern))
		})
		chunks++

		if last {
			break
		}
	}

	t.countBytes(int64(hi - lo))
	if m := t.opts.Metrics; m != nil {
		atomic.AddInt64(&m.ChunksScanned, chunks)
	}
	return matches
}

func (t *TextMatcher) countFile() {
	if m := t.opts.Metrics; m != nil {
		atomic.AddInt64(&m.FilesScanned, 1)
	}
}
