package results

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// MatchRecord is the flattened per-match form used for JSONL output, one
// object per line, suitable for line-based tooling.
type MatchRecord struct {
	Input   string `json:"input"`
	Line    int    `json:"line,omitempty"`
	Start   int64  `json:"start"`
	End     int64  `json:"end"`
	Pattern string `json:"pattern"`
}

// WriteJSONL writes one JSON object per match to w.
func WriteJSONL(w io.Writer, result *ScanResult) error {
	enc := json.NewEncoder(w)
	for i, m := range result.Matches {
		rec := MatchRecord{
			Input:   result.Input,
			Start:   m.Start,
			End:     m.End,
			Pattern: m.Pattern,
		}
		if len(result.Lines) == len(result.Matches) {
			rec.Line = result.Lines[i]
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode match: %w", err)
		}
	}
	return nil
}

// WriteJSONLFile writes JSONL output to path, creating or truncating it.
func WriteJSONLFile(path string, result *ScanResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteJSONL(f, result); err != nil {
		return err
	}
	return f.Close()
}
