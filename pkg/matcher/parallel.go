package matcher

import (
	"log/slog"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/trustshield/voluta/internal/mmapfile"
)

// MatchFileMemmapParallel memory-maps path, partitions it across nThreads
// workers, and returns the same match set as MatchFileMemmap. nThreads 0
// selects the host's parallelism; negative counts return
// ErrInvalidThreadCount. Workers share the immutable automaton and take no
// locks; the coordinator merges their results deterministically. If any
// worker fails, the first error is returned and partial results are
// discarded.
func (t *TextMatcher) MatchFileMemmapParallel(path string, chunkSize, nThreads int) ([]Match, error) {
	c, err := t.resolveChunkSize(chunkSize)
	if err != nil {
		return nil, err
	}
	if nThreads < 0 {
		return nil, ErrInvalidThreadCount
	}
	n := nThreads
	if n == 0 {
		n = runtime.GOMAXPROCS(0)
	}

	m, err := mmapfile.Open(path)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	data := m.Bytes()
	t.countFile()
	if len(data) == 0 {
		return nil, nil
	}

	// Roughly equal primary ranges; each extended right by maxLen-1 bytes
	// so a straddling match is fully visible to exactly one worker.
	rangeLen := (len(data) + n - 1) / n
	overlap := t.ac.MaxPatternLen() - 1

	type part struct {
		lo, hi, ext int
	}
	var parts []part
	for lo := 0; lo < len(data); lo += rangeLen {
		hi := lo + rangeLen
		if hi > len(data) {
			hi = len(data)
		}
		ext := hi + overlap
		if ext > len(data) {
			ext = len(data)
		}
		parts = append(parts, part{lo: lo, hi: hi, ext: ext})
	}
	slog.Debug("parallel scan partitioned", "workers", len(parts), "range_len", rangeLen, "chunk_size", c)

	results := make([][]Match, len(parts))
	var g errgroup.Group
	for i, p := range parts {
		g.Go(func() error {
			primaryEnd := int64(p.hi)
			results[i] = t.collectChunked(data, p.lo, p.ext, c, func(start int64) bool {
				return start < primaryEnd
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if mm := t.opts.Metrics; mm != nil {
		atomic.AddInt64(&mm.ParallelWorkers, int64(len(parts)))
	}

	var matches []Match
	for _, r := range results {
		matches = append(matches, r...)
	}
	return t.finish(matches), nil
}
