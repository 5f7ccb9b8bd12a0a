// Package config loads the voluta configuration with the precedence
// CLI flags > environment variables > config file > defaults.
package config

import (
	"fmt"
)

// Config is the complete voluta configuration.
type Config struct {
	Matcher MatcherConfig `yaml:"matcher" koanf:"matcher"`
	Scan    ScanConfig    `yaml:"scan" koanf:"scan"`
	Output  OutputConfig  `yaml:"output" koanf:"output"`
	Log     LogConfig     `yaml:"log" koanf:"log"`
}

// MatcherConfig mirrors the matcher options fixed at construction.
type MatcherConfig struct {
	Overlapping     bool `yaml:"overlapping" koanf:"overlapping"`
	CaseInsensitive bool `yaml:"case_insensitive" koanf:"case_insensitive"`
	WholeWord       bool `yaml:"whole_word" koanf:"whole_word"`
}

// ScanConfig contains per-scan tuning knobs. Zero values select the
// engine defaults.
type ScanConfig struct {
	// Mode selects the scan entry point.
	Mode string `yaml:"mode" koanf:"mode" validate:"omitempty,oneof=auto bytes lines mmap parallel stream"`

	// ChunkSize is the memory-mapped chunk size in bytes.
	ChunkSize int `yaml:"chunk_size" koanf:"chunk_size" validate:"gte=0"`

	// Threads is the parallel worker count.
	Threads int `yaml:"threads" koanf:"threads" validate:"gte=0"`

	// BufferSize is the streamed read size in bytes.
	BufferSize int `yaml:"buffer_size" koanf:"buffer_size" validate:"gte=0"`

	// PatternsFile points to a file with one pattern per line.
	PatternsFile string `yaml:"patterns_file" koanf:"patterns_file"`
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	Format string `yaml:"format" koanf:"format" validate:"omitempty,oneof=table json jsonl"`
	Path   string `yaml:"path" koanf:"path"`
	HTML   string `yaml:"html" koanf:"html"`
}

// LogConfig controls the slog setup.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `yaml:"format" koanf:"format" validate:"omitempty,oneof=text json"`
}

// Default returns the configuration used when no file, environment, or
// flag overrides anything: overlapping case-insensitive matching, auto
// mode, table output, info-level text logs.
func Default() Config {
	return Config{
		Matcher: MatcherConfig{
			Overlapping:     true,
			CaseInsensitive: true,
			WholeWord:       false,
		},
		Scan: ScanConfig{
			Mode: "auto",
		},
		Output: OutputConfig{
			Format: "table",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate applies the cross-field checks the struct tags cannot express.
func (c *Config) Validate() error {
	if c.Output.Path != "" && c.Output.Path == c.Output.HTML {
		return fmt.Errorf("output.path and output.html point at the same file: %s", c.Output.Path)
	}
	return nil
}
