package main

import (
	"os"

	"github.com/bibwire/bibwire/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new bibwire repository",
	Long: `Initialize a new bibwire repository in the current directory.

Creates:
  .bibwire/
  ├── corpus.jsonl    # Empty corpus
  ├── config.json     # Default config
  └── cache/          # SQLite cache (gitignored)`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	if config.IsRepository(root) {
		exitWithError(ExitError, "directory already contains a bibwire repository")
	}

	if err := os.MkdirAll(config.BibwirePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating .bibwire directory: %v", err)
	}
	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}

	cfg := &config.Config{}
	corpusPath := cfg.ResolvedCorpusPath(root)
	f, err := os.Create(corpusPath)
	if err != nil {
		exitWithError(ExitError, "creating corpus.jsonl: %v", err)
	}
	f.Close()

	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "creating config.json: %v", err)
	}

	if humanOutput {
		outputHuman("Initialized bibwire repository in %s\n", root)
		return nil
	}
	return outputJSON(StatusResponse{Status: "initialized", Path: root})
}
