// Package config holds the elaborator options and the vela.yaml project
// file loader. Options are threaded explicitly through the passes; there
// is no global configuration state.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Options represents the top-level vela.yaml configuration.
type Options struct {
	// Forcing enables the forcing analysis and translation. With forcing
	// disabled every constructor argument is treated as not forced and
	// clauses are left untouched.
	Forcing bool `yaml:"forcing"`

	// Verbosity gates diagnostic trace output. 0 disables tracing;
	// higher levels include lower ones. The passes report summaries at
	// 30, per-step records at 50 and raw detail at 60.
	Verbosity int `yaml:"verbosity,omitempty"`

	// NoColor disables ANSI color in diagnostics even on a terminal.
	NoColor bool `yaml:"no_color,omitempty"`
}

// Default returns the options used when no project file is present.
func Default() *Options {
	return &Options{Forcing: true}
}

// Load reads and parses a vela.yaml file.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses vela.yaml content from bytes. The path argument is used
// only for error messages. Omitted fields keep their defaults.
func Parse(data []byte, path string) (*Options, error) {
	opts := Default()
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if opts.Verbosity < 0 {
		return nil, fmt.Errorf("%s: verbosity must not be negative", path)
	}
	return opts, nil
}

// Find searches for a project file starting from dir and walking up to
// parent directories. Returns the path if found, or an empty string and
// nil error if not found.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range ProjectFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}
