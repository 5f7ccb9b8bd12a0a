package matcher

import (
	"fmt"
	"io"
	"os"

	"github.com/trustshield/voluta/internal/ahocorasick"
)

// DefaultBufferSize is the read size used by MatchFileStream when no
// buffer size is supplied.
const DefaultBufferSize = 64 << 10

// MatchFileStream scans path with sequential reads, returning the same
// match set as MatchBytes over the whole file without ever holding more
// than one read window in memory. bufferSize 0 selects DefaultBufferSize;
// negative sizes return ErrInvalidBufferSize. The window is always large
// enough to contain a full match plus one byte of context on each side, so
// arbitrarily small buffer sizes remain correct.
func (t *TextMatcher) MatchFileStream(path string, bufferSize int) ([]Match, error) {
	if bufferSize < 0 {
		return nil, ErrInvalidBufferSize
	}
	readSize := bufferSize
	if readSize == 0 {
		readSize = DefaultBufferSize
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	t.countFile()

	return t.scanReader(f, readSize, path)
}

// scanReader drives the windowed scan over r. The window retains
// maxLen+2 trailing bytes between fills: maxLen-1 for boundary-straddling
// matches, one so a match flush against the window end is re-scanned once
// its right neighbor is known, one of left context for the whole-word
// gate, and one spare byte. A hit is emitted by the first window that contains it with its
// right neighbor available, tracked by the reported watermark; that yields
// exactly-once reporting without carrying automaton state across windows.
func (t *TextMatcher) scanReader(r io.Reader, readSize int, path string) ([]Match, error) {
	keep := t.ac.MaxPatternLen() + 2
	buf := make([]byte, 0, readSize+keep)

	var (
		matches  []Match
		base     int64
		reported int64
		eof      bool
	)

	for {
		n, err := io.ReadFull(r, buf[len(buf):cap(buf)])
		buf = buf[:len(buf)+n]
		switch err {
		case nil:
		case io.EOF, io.ErrUnexpectedEOF:
			eof = true
		default:
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		bufEnd := base + int64(len(buf))
		emitLimit := bufEnd
		if !eof {
			// the right neighbor of a match ending flush at the window
			// end is still unread; defer it to the next window
			emitLimit = bufEnd - 1
		}

		t.ac.Scan(buf, base, func(h ahocorasick.Hit) {
			if h.End > emitLimit || h.End <= reported {
				return
			}
			start := h.End - int64(t.ac.PatternLen(h.Pattern))
			if t.opts.WholeWord && !wholeWordOK(buf, base, start, h.End, bufEnd) {
				return
			}
			matches = append(matches, t.newMatch(start, h.End, h.Pattern))
		})
		t.countBytes(int64(n))
		reported = emitLimit

		if eof {
			break
		}
		if len(buf) > keep {
			consumed := len(buf) - keep
			copy(buf, buf[consumed:])
			buf = buf[:keep]
			base += int64(consumed)
		}
	}

	return t.finish(matches), nil
}
