package matcher

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"
	"sync/atomic"

	"github.com/trustshield/voluta/internal/ahocorasick"
)

// MatchFile iterates path line by line and scans each line, returning
// matches tagged with their 1-based line number. Offsets are absolute file
// offsets, so the positions agree with the other entry points for any
// pattern that does not span a line break. Patterns containing a newline
// are only found when the newline terminates a line.
func (t *TextMatcher) MatchFile(path string) ([]LineMatch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	t.countFile()

	r := bufio.NewReader(f)
	var (
		matches []LineMatch
		offset  int64
		lineNo  int
	)
	for {
		line, err := r.ReadBytes('\n')
		if len(line) > 0 {
			lineNo++
			lineEnd := offset + int64(len(line))
			t.ac.Scan(line, offset, func(h ahocorasick.Hit) {
				start := h.End - int64(t.ac.PatternLen(h.Pattern))
				// a line's outer neighbors are a line break or the file
				// edge, never word bytes, so gating within the line view
				// is exact
				if t.opts.WholeWord && !wholeWordOK(line, offset, start, h.End, lineEnd) {
					return
				}
				matches = append(matches, LineMatch{Line: lineNo, Match: t.newMatch(start, h.End, h.Pattern)})
			})
			t.countBytes(int64(len(line)))
			offset = lineEnd
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	slices.SortFunc(matches, func(a, b LineMatch) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		if c := cmp.Compare(a.End, b.End); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
	if !t.opts.Overlapping {
		kept := matches[:0]
		var watermark int64
		for _, m := range matches {
			if m.Start >= watermark {
				kept = append(kept, m)
				watermark = m.End
			}
		}
		matches = kept
	}
	if m := t.opts.Metrics; m != nil {
		atomic.AddInt64(&m.MatchesFound, int64(len(matches)))
	}
	return matches, nil
}
