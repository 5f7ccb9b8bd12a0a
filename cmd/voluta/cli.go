package main

import (
	"fmt"
)

const version = "0.1.0"

// CLI represents the voluta command-line interface.
var CLI struct {
	Debug      bool          `help:"Enable debug logging." short:"d" env:"VOLUTA_DEBUG"`
	Version    VersionCmd    `cmd:"" help:"Print version information."`
	Scan       ScanCmd       `cmd:"" help:"Scan a file for literal patterns."`
	Completion CompletionCmd `cmd:"" help:"Generate shell completion scripts."`
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (v *VersionCmd) Run() error {
	fmt.Printf("voluta %s\n", version)
	return nil
}

// ScanCmd locates every occurrence of the given patterns in a file.
type ScanCmd struct {
	Path string `arg:"" help:"File to scan." type:"existingfile"`

	// Pattern selection
	Pattern      []string `help:"Literal pattern (repeatable)." short:"p" name:"pattern"`
	PatternsFile string   `help:"File with one pattern per line." name:"patterns-file" type:"existingfile"`

	// Matcher behavior
	CaseSensitive bool `help:"Disable ASCII case folding."`
	NoOverlapping bool `help:"Apply the left-to-right non-overlapping cover."`
	WholeWord     bool `help:"Only match at ASCII word boundaries." short:"w"`

	// Execution
	Mode       string `help:"Scan mode." enum:"auto,bytes,lines,mmap,parallel,stream" default:"auto"`
	ChunkSize  int    `help:"Chunk size in bytes for mmap modes (0 = engine default)." name:"chunk-size"`
	Threads    int    `help:"Worker count for parallel mode (0 = all CPUs)." short:"t" env:"VOLUTA_THREADS"`
	BufferSize int    `help:"Read size in bytes for stream mode (0 = engine default)." name:"buffer-size"`

	// Configuration
	ConfigFile string `help:"YAML config file path." type:"existingfile" name:"config-file"`

	// Output
	Format    string `help:"Output format." enum:"table,json,jsonl" default:"table" short:"f"`
	Output    string `help:"Write results to a file instead of stdout." short:"o" type:"path"`
	HTML      string `help:"HTML report file path." type:"path" name:"html"`
	Metrics   bool   `help:"Print scan metrics to stderr after the scan."`
	LogLevel  string `help:"Log level." enum:"debug,info,warn,error" default:"info" name:"log-level"`
	LogFormat string `help:"Log format." enum:"text,json" default:"text" name:"log-format"`
}

func (s *ScanCmd) Run() error {
	return s.execute()
}

func (s *ScanCmd) Validate() error {
	if len(s.Pattern) == 0 && s.PatternsFile == "" {
		return fmt.Errorf("at least one --pattern or a --patterns-file is required")
	}
	if s.ChunkSize < 0 {
		return fmt.Errorf("--chunk-size must not be negative")
	}
	if s.Threads < 0 {
		return fmt.Errorf("--threads must not be negative")
	}
	if s.BufferSize < 0 {
		return fmt.Errorf("--buffer-size must not be negative")
	}
	return nil
}

// CompletionCmd generates shell completion scripts.
type CompletionCmd struct {
	Shell string `arg:"" enum:"bash,zsh,fish" help:"Shell type (bash, zsh, fish)."`
}

func (c *CompletionCmd) Run() error {
	switch c.Shell {
	case "bash":
		fmt.Println("# Bash completion for voluta")
		fmt.Println("# Add to ~/.bashrc:")
		fmt.Println("# eval \"$(voluta completion bash)\"")
	case "zsh":
		fmt.Println("# Zsh completion for voluta")
		fmt.Println("# Add to ~/.zshrc:")
		fmt.Println("# eval \"$(voluta completion zsh)\"")
	case "fish":
		fmt.Println("# Fish completion for voluta")
		fmt.Println("# Run: voluta completion fish | source")
	}
	return nil
}
