package main

import (
	"os"
	"strings"

	"github.com/bibwire/bibwire/internal/citekey"
	"github.com/bibwire/bibwire/internal/export"
	"github.com/bibwire/bibwire/internal/report"
	"github.com/spf13/cobra"
)

var (
	exportOut   string
	exportMerge bool
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write BibTeX to this file instead of stdout")
	exportCmd.Flags().BoolVar(&exportMerge, "merge", false, "Append to the repository bib file, skipping entries already present")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the corpus as BibTeX",
	Long: `Export every corpus record as a BibTeX entry, with citation keys
assigned in corpus order. With --merge, entries whose key or DOI already
appear in the repository bib file are skipped and the rest are appended,
so hand edits to the file survive.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

// ExportResponse is the JSON output of the export command.
type ExportResponse struct {
	Entries int    `json:"entries"`
	Skipped int    `json:"skipped,omitempty"`
	BibPath string `json:"bib_path,omitempty"`
}

func runExport(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	records := mustLoadCorpus(cfg.ResolvedCorpusPath(repoRoot))

	assigner := citekey.NewAssigner()

	if exportMerge {
		bibPath := cfg.ResolvedBibPath(repoRoot)
		idx, err := export.ParseBibTeXFile(bibPath)
		if err != nil {
			exitWithError(ExitDataError, "reading bib file: %v", err)
		}

		var appended strings.Builder
		written, skipped := 0, 0
		for _, rec := range records {
			key, err := assigner.Assign(rec)
			if err != nil {
				exitWithError(ExitDataError, "assigning keys: %v", err)
			}
			if idx.HasEntry(key.Key, rec.DOI) {
				skipped++
				continue
			}
			appended.WriteString(export.ToBibTeX(report.MatchedRecord{Record: rec, Key: key}))
			appended.WriteString("\n")
			written++
		}

		if written > 0 {
			if err := export.AppendToBibFile(bibPath, appended.String()); err != nil {
				exitWithError(ExitError, "writing bib file: %v", err)
			}
		}

		if humanOutput {
			outputHuman("Appended %d entries to %s (%d already present)\n", written, bibPath, skipped)
			return nil
		}
		return outputJSON(ExportResponse{Entries: written, Skipped: skipped, BibPath: bibPath})
	}

	var out strings.Builder
	for _, rec := range records {
		key, err := assigner.Assign(rec)
		if err != nil {
			exitWithError(ExitDataError, "assigning keys: %v", err)
		}
		out.WriteString(export.ToBibTeX(report.MatchedRecord{Record: rec, Key: key}))
		out.WriteString("\n")
	}

	if exportOut != "" {
		if err := os.WriteFile(exportOut, []byte(out.String()), 0644); err != nil {
			exitWithError(ExitError, "writing %s: %v", exportOut, err)
		}
		if humanOutput {
			outputHuman("Wrote %d entries to %s\n", len(records), exportOut)
			return nil
		}
		return outputJSON(ExportResponse{Entries: len(records), BibPath: exportOut})
	}

	// No destination: the BibTeX itself is the output, regardless of --human.
	outputHuman("%s", out.String())
	return nil
}
