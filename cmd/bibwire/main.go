// Package main provides the bibwire CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/bibwire/bibwire/internal/config"
	"github.com/bibwire/bibwire/internal/corpus"
	"github.com/bibwire/bibwire/internal/record"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bibwire",
	Short: "Citation resolution for technical documents",
	Long: `bibwire resolves inline citations in markdown documents against a
bibliographic corpus and emits a deduplicated BibTeX bibliography.

Core features:
  - Citation mention extraction ([Author, Year](url) links)
  - Multi-strategy matching: URL, DOI, ISBN, arXiv, then fuzzy author/year
  - Stable, collision-free citation keys
  - Per-mention resolution report for auditing failures
  - Corpus import from Zotero-compatible APIs and JSONL files

Data is stored in git-versionable JSONL with ephemeral SQLite for queries.
All commands output JSON by default for scripting and agent integration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// mustFindRepository finds and validates the repository, exits on error.
// Returns the repository root path.
func mustFindRepository() string {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	repoRoot, err := config.FindRepository(cwd)
	if err != nil {
		exitWithError(ExitConfigError, "%v\n\nRun 'bibwire init' to create a repository here.", err)
	}
	return repoRoot
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig(repoRoot string) *config.Config {
	cfg, err := config.Load(repoRoot)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustLoadCorpus loads the complete corpus snapshot, exits on error.
// Corpus load failures are fatal by contract: resolution never runs
// against a partial corpus.
func mustLoadCorpus(path string) []record.Record {
	records, err := corpus.ReadAll(path)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	return records
}

// mustOpenDatabase opens the SQLite corpus cache, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(repoRoot string) *corpus.DB {
	if err := os.MkdirAll(config.CachePath(repoRoot), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}
	db, err := corpus.OpenDB(config.DBPath(repoRoot))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}
