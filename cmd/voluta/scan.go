package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/trustshield/voluta/pkg/config"
	"github.com/trustshield/voluta/pkg/logging"
	"github.com/trustshield/voluta/pkg/matcher"
	"github.com/trustshield/voluta/pkg/metrics"
	"github.com/trustshield/voluta/pkg/results"
)

// Auto-mode size thresholds: whole-file reads below mmapThreshold,
// parallel partitioning above parallelThreshold.
const (
	mmapThreshold     = 1 << 20
	parallelThreshold = 32 << 20
)

func (s *ScanCmd) execute() error {
	cfg, err := config.Load(s.ConfigFile)
	if err != nil {
		return err
	}
	s.overlayFlags(cfg)

	level := cfg.Log.Level
	if CLI.Debug {
		level = "debug"
	}
	logging.Configure(level, cfg.Log.Format, os.Stderr)

	patterns, err := s.loadPatterns(cfg)
	if err != nil {
		return err
	}

	var m metrics.Metrics
	opts := matcher.Options{
		Overlapping:     cfg.Matcher.Overlapping,
		CaseInsensitive: cfg.Matcher.CaseInsensitive,
		WholeWord:       cfg.Matcher.WholeWord,
	}
	if s.Metrics {
		opts.Metrics = &m
	}
	tm, err := matcher.New(patterns, opts)
	if err != nil {
		return err
	}

	result, err := s.runScan(tm, cfg)
	if err != nil {
		return err
	}

	if err := s.writeResult(result, cfg); err != nil {
		return err
	}

	if s.Metrics {
		fmt.Fprint(os.Stderr, metrics.NewPrometheusExporter(&m).Export())
	}
	return nil
}

// overlayFlags applies explicitly set flags over the loaded configuration.
// Flags hold the highest precedence; zero values fall through to the
// config file and defaults.
func (s *ScanCmd) overlayFlags(cfg *config.Config) {
	if s.CaseSensitive {
		cfg.Matcher.CaseInsensitive = false
	}
	if s.NoOverlapping {
		cfg.Matcher.Overlapping = false
	}
	if s.WholeWord {
		cfg.Matcher.WholeWord = true
	}
	if s.Mode != "auto" || cfg.Scan.Mode == "" {
		cfg.Scan.Mode = s.Mode
	}
	if s.ChunkSize != 0 {
		cfg.Scan.ChunkSize = s.ChunkSize
	}
	if s.Threads != 0 {
		cfg.Scan.Threads = s.Threads
	}
	if s.BufferSize != 0 {
		cfg.Scan.BufferSize = s.BufferSize
	}
	if s.Format != "table" || cfg.Output.Format == "" {
		cfg.Output.Format = s.Format
	}
	if s.Output != "" {
		cfg.Output.Path = s.Output
	}
	if s.HTML != "" {
		cfg.Output.HTML = s.HTML
	}
	if s.LogLevel != "info" {
		cfg.Log.Level = s.LogLevel
	}
	if s.LogFormat != "text" {
		cfg.Log.Format = s.LogFormat
	}
}

// loadPatterns merges repeated --pattern flags with the patterns file, one
// pattern per line. Blank lines are dropped by the matcher's normalizer.
func (s *ScanCmd) loadPatterns(cfg *config.Config) ([]string, error) {
	patterns := append([]string(nil), s.Pattern...)

	path := s.PatternsFile
	if path == "" {
		path = cfg.Scan.PatternsFile
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open patterns file %s: %w", path, err)
		}
		defer f.Close()

		sc := bufio.NewScanner(f)
		for sc.Scan() {
			patterns = append(patterns, sc.Text())
		}
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read patterns file %s: %w", path, err)
		}
	}
	return patterns, nil
}

func (s *ScanCmd) runScan(tm *matcher.TextMatcher, cfg *config.Config) (*results.ScanResult, error) {
	mode := cfg.Scan.Mode
	if mode == "auto" || mode == "" {
		mode = pickMode(s.Path)
	}

	start := time.Now()
	switch mode {
	case "bytes":
		data, err := os.ReadFile(s.Path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s.Path, err)
		}
		matches := tm.MatchBytes(data)
		return results.NewScanResult(s.Path, mode, tm.Patterns(), matches, start, time.Now()), nil

	case "lines":
		lineMatches, err := tm.MatchFile(s.Path)
		if err != nil {
			return nil, err
		}
		return results.FromLineMatches(s.Path, tm.Patterns(), lineMatches, start, time.Now()), nil

	case "mmap":
		matches, err := tm.MatchFileMemmap(s.Path, cfg.Scan.ChunkSize)
		if err != nil {
			return nil, err
		}
		return results.NewScanResult(s.Path, mode, tm.Patterns(), matches, start, time.Now()), nil

	case "parallel":
		matches, err := tm.MatchFileMemmapParallel(s.Path, cfg.Scan.ChunkSize, cfg.Scan.Threads)
		if err != nil {
			return nil, err
		}
		return results.NewScanResult(s.Path, mode, tm.Patterns(), matches, start, time.Now()), nil

	case "stream":
		matches, err := tm.MatchFileStream(s.Path, cfg.Scan.BufferSize)
		if err != nil {
			return nil, err
		}
		return results.NewScanResult(s.Path, mode, tm.Patterns(), matches, start, time.Now()), nil

	default:
		return nil, fmt.Errorf("unknown scan mode: %s", mode)
	}
}

// pickMode chooses an entry point from the file size: small files are read
// whole, mid-size files are memory-mapped, large files are partitioned
// across workers.
func pickMode(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "bytes"
	}
	switch {
	case info.Size() >= parallelThreshold:
		return "parallel"
	case info.Size() >= mmapThreshold:
		return "mmap"
	default:
		return "bytes"
	}
}

func (s *ScanCmd) writeResult(result *results.ScanResult, cfg *config.Config) error {
	var out io.Writer = os.Stdout
	if cfg.Output.Path != "" {
		f, err := os.Create(cfg.Output.Path)
		if err != nil {
			return fmt.Errorf("create %s: %w", cfg.Output.Path, err)
		}
		defer f.Close()
		out = f
	}

	switch cfg.Output.Format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	case "jsonl":
		if err := results.WriteJSONL(out, result); err != nil {
			return err
		}
	default:
		if err := results.WriteTable(out, result); err != nil {
			return err
		}
	}

	if cfg.Output.HTML != "" {
		if err := results.WriteHTML(cfg.Output.HTML, result); err != nil {
			return err
		}
	}
	return nil
}
