// Package config handles repository and global configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents repository configuration stored in .bibwire/config.json.
type Config struct {
	CorpusPath string `json:"corpus_path,omitempty"` // JSONL corpus, relative to repo root
	BibPath    string `json:"bib_path,omitempty"`    // Output .bib database
	PDFRoot    string `json:"pdf_root,omitempty"`    // Absolute path to PDF folder for enrichment
	Strict     bool   `json:"strict,omitempty"`      // Fail the run on any soft error
}

const (
	BibwireDir = ".bibwire"
	ConfigFile = "config.json"
	CorpusFile = "corpus.jsonl"
	BibFile    = "references.bib"
	CacheDir   = "cache"
	DBFile     = "corpus.db"
)

// BibwirePath returns the path to the .bibwire directory from a root path.
func BibwirePath(root string) string {
	return filepath.Join(root, BibwireDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, BibwireDir, ConfigFile)
}

// CorpusPath returns the corpus JSONL path for a repository, honoring a
// configured override.
func (c *Config) ResolvedCorpusPath(root string) string {
	if c.CorpusPath != "" {
		return filepath.Join(root, c.CorpusPath)
	}
	return filepath.Join(root, BibwireDir, CorpusFile)
}

// ResolvedBibPath returns the output .bib path for a repository.
func (c *Config) ResolvedBibPath(root string) string {
	if c.BibPath != "" {
		return filepath.Join(root, c.BibPath)
	}
	return filepath.Join(root, BibFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, BibwireDir, CacheDir)
}

// DBPath returns the path to the SQLite corpus cache from a root path.
func DBPath(root string) string {
	return filepath.Join(root, BibwireDir, CacheDir, DBFile)
}

// IsRepository checks if the given path contains a bibwire repository.
func IsRepository(root string) bool {
	info, err := os.Stat(BibwirePath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a bibwire repository.
// Returns the repository root path or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a bibwire repository (no .bibwire directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the repository at the given root.
// A missing config file yields defaults, not an error.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the repository at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ValidatePDFRoot checks that the PDF root path exists and is a directory.
func ValidatePDFRoot(path string) error {
	if path == "" {
		return nil // Empty is allowed (not yet configured)
	}

	expandedPath := ExpandPath(path)

	info, err := os.Stat(expandedPath)
	if err != nil {
		return fmt.Errorf("path does not exist: %s", expandedPath)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", expandedPath)
	}

	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
