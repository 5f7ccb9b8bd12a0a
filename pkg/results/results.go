// Package results renders scan output: a plain table for terminals, JSONL
// for pipelines, and a self-contained HTML report.
package results

import (
	"time"

	"github.com/trustshield/voluta/pkg/matcher"
)

// ScanResult captures the complete output of one scan invocation.
type ScanResult struct {
	// StartTime marks when the scan began.
	StartTime time.Time `json:"start_time"`

	// EndTime marks when the scan completed.
	EndTime time.Time `json:"end_time"`

	// Input identifies what was scanned (a file path, or "-" for bytes
	// supplied directly).
	Input string `json:"input"`

	// Mode is the entry point used: bytes, lines, mmap, parallel, stream.
	Mode string `json:"mode"`

	// Patterns is the normalized pattern set, in ordinal order.
	Patterns []string `json:"patterns"`

	// Matches contains the ordered matches.
	Matches []matcher.Match `json:"matches"`

	// Lines carries line numbers parallel to Matches when Mode is
	// "lines"; empty otherwise.
	Lines []int `json:"lines,omitempty"`

	// Summary provides aggregated statistics.
	Summary Summary `json:"summary"`
}

// Summary provides aggregate statistics for a scan.
type Summary struct {
	// TotalMatches is the number of matches reported.
	TotalMatches int `json:"total_matches"`

	// PerPattern counts matches by pattern, in ordinal order.
	PerPattern []PatternCount `json:"per_pattern"`

	// Duration is the wall-clock scan time.
	Duration time.Duration `json:"duration_ns"`
}

// PatternCount pairs a pattern with its match count.
type PatternCount struct {
	Pattern string `json:"pattern"`
	Count   int    `json:"count"`
}

// NewScanResult assembles a ScanResult, computing the summary from the
// match list.
func NewScanResult(input, mode string, patterns []string, matches []matcher.Match, start, end time.Time) *ScanResult {
	counts := make([]int, len(patterns))
	for _, m := range matches {
		counts[m.Index]++
	}
	perPattern := make([]PatternCount, len(patterns))
	for i, p := range patterns {
		perPattern[i] = PatternCount{Pattern: p, Count: counts[i]}
	}

	return &ScanResult{
		StartTime: start,
		EndTime:   end,
		Input:     input,
		Mode:      mode,
		Patterns:  patterns,
		Matches:   matches,
		Summary: Summary{
			TotalMatches: len(matches),
			PerPattern:   perPattern,
			Duration:     end.Sub(start),
		},
	}
}

// FromLineMatches converts line-oriented matches into a ScanResult with a
// parallel Lines slice.
func FromLineMatches(input string, patterns []string, lineMatches []matcher.LineMatch, start, end time.Time) *ScanResult {
	matches := make([]matcher.Match, len(lineMatches))
	lines := make([]int, len(lineMatches))
	for i, lm := range lineMatches {
		matches[i] = lm.Match
		lines[i] = lm.Line
	}
	r := NewScanResult(input, "lines", patterns, matches, start, end)
	r.Lines = lines
	return r
}
