package main

import (
	"fmt"
	"strconv"

	"github.com/bibwire/bibwire/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  bibwire config                        # Show all config
  bibwire config pdf-root               # Get specific value
  bibwire config pdf-root ~/pdfs        # Set value
  bibwire config strict true            # Fail runs on unresolved citations

Keys:
  corpus-path  Corpus JSONL path, relative to repo root
  bib-path     Output .bib path, relative to repo root
  pdf-root     Path to PDF folder used by enrich
  strict       Exit non-zero when a resolution run has failures`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// ConfigResponse is the JSON output when showing all config.
type ConfigResponse struct {
	CorpusPath string `json:"corpus_path"`
	BibPath    string `json:"bib_path"`
	PDFRoot    string `json:"pdf_root"`
	Strict     bool   `json:"strict"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	if len(args) == 0 {
		if humanOutput {
			outputHuman("corpus-path: %s\n", cfg.CorpusPath)
			outputHuman("bib-path:    %s\n", cfg.BibPath)
			outputHuman("pdf-root:    %s\n", cfg.PDFRoot)
			outputHuman("strict:      %t\n", cfg.Strict)
			return nil
		}
		return outputJSON(ConfigResponse{
			CorpusPath: cfg.CorpusPath,
			BibPath:    cfg.BibPath,
			PDFRoot:    cfg.PDFRoot,
			Strict:     cfg.Strict,
		})
	}

	key := args[0]

	if len(args) == 1 {
		value, ok := configValue(cfg, key)
		if !ok {
			exitWithError(ExitError, "unknown configuration key: %s", key)
		}
		if humanOutput {
			outputHuman("%s\n", value)
			return nil
		}
		return outputJSON(map[string]string{key: value})
	}

	value := args[1]
	switch key {
	case "corpus-path":
		cfg.CorpusPath = value
	case "bib-path":
		cfg.BibPath = value
	case "pdf-root":
		expanded := config.ExpandPath(value)
		if err := config.ValidatePDFRoot(expanded); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		cfg.PDFRoot = expanded
	case "strict":
		b, err := strconv.ParseBool(value)
		if err != nil {
			exitWithError(ExitError, "strict must be true or false, got %q", value)
		}
		cfg.Strict = b
	default:
		exitWithError(ExitError, "unknown configuration key: %s", key)
	}

	if err := cfg.Save(repoRoot); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		outputHuman("Set %s\n", key)
		return nil
	}
	return outputJSON(StatusResponse{Status: "updated", Path: config.ConfigPath(repoRoot)})
}

func configValue(cfg *config.Config, key string) (string, bool) {
	switch key {
	case "corpus-path":
		return cfg.CorpusPath, true
	case "bib-path":
		return cfg.BibPath, true
	case "pdf-root":
		return cfg.PDFRoot, true
	case "strict":
		return fmt.Sprintf("%t", cfg.Strict), true
	default:
		return "", false
	}
}
