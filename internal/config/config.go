package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is searched for upward from the start directory.
const FileName = "metaast.toml"

// File is the static configuration read once at startup: which built-in
// analyzers to auto-register plus their default configuration tables.
type File struct {
	// Enabled restricts auto-registration to these names; empty means all built-ins.
	Enabled []string `toml:"enabled"`
	// Disabled names are never auto-registered, even when listed in Enabled.
	Disabled []string `toml:"disabled"`
	// Analyzers holds default per-analyzer configuration, keyed by name.
	Analyzers map[string]map[string]any `toml:"analyzers"`
}

func Default() File {
	return File{Analyzers: map[string]map[string]any{}}
}

// Load searches startDir and its parents for metaast.toml and decodes the
// first hit. Returns the defaults and an empty path when no file exists.
func Load(startDir string) (File, string, error) {
	cfg := Default()
	dir := startDir
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			if _, err := toml.DecodeFile(candidate, &cfg); err != nil {
				return Default(), candidate, err
			}
			return cfg, candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached root
			break
		}
		dir = parent
	}
	return cfg, "", nil
}

// Disallowed reports whether name is excluded by the enabled/disabled sets.
func (f File) Disallowed(name string) bool {
	for _, d := range f.Disabled {
		if d == name {
			return true
		}
	}
	if len(f.Enabled) == 0 {
		return false
	}
	for _, e := range f.Enabled {
		if e == name {
			return false
		}
	}
	return true
}

// WriteDefault writes a commented starter config to path.
func WriteDefault(path string) error {
	const stub = `# metaast static analysis configuration.
# Analyzers listed in disabled are never auto-registered.
disabled = []

# Per-analyzer defaults, keyed by analyzer name.
# [analyzers.nesting-depth]
# max_nesting = 4
`
	return os.WriteFile(path, []byte(stub), 0o644)
}
