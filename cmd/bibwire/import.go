package main

import (
	"os"

	"github.com/bibwire/bibwire/internal/corpus"
	"github.com/bibwire/bibwire/internal/importer"
	"github.com/bibwire/bibwire/internal/record"
	"github.com/spf13/cobra"
)

var (
	importFormat string
	importDryRun bool
)

func init() {
	importCmd.Flags().StringVar(&importFormat, "format", "csl-json", "Import format (csl-json, jsonl)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Show what would be imported without writing")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import records from an external bibliography export",
	Long: `Import records from an external bibliography export into the corpus.

Records are matched against existing corpus entries first by DOI, then
by ID. Matches update the existing entry in place; everything else is
added. Malformed entries are reported and skipped.

Usage:
  bibwire import library.json                 # CSL-JSON (Zotero, Mendeley, Paperpile)
  bibwire import --format jsonl extra.jsonl   # Another corpus file
  bibwire import library.json --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// ImportResponse is the JSON output of the import command.
type ImportResponse struct {
	Added   int      `json:"added"`
	Updated int      `json:"updated"`
	DryRun  bool     `json:"dry_run,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func runImport(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	newRecords, parseErrors := readImportFile(args[0], importFormat)
	if len(newRecords) == 0 && len(parseErrors) > 0 {
		exitWithError(ExitDataError, "failed to parse any records: %v", parseErrors[0])
	}

	corpusPath := cfg.ResolvedCorpusPath(repoRoot)
	existing := mustLoadCorpus(corpusPath)

	var added, updated int
	for _, rec := range newRecords {
		idx, found := classifyImport(existing, rec)
		if found {
			existing[idx] = mergeRecords(existing[idx], rec)
			updated++
		} else {
			existing = append(existing, rec)
			added++
		}
	}

	if !importDryRun {
		if err := corpus.WriteAll(corpusPath, existing); err != nil {
			exitWithError(ExitDataError, "writing corpus: %v", err)
		}
	}

	resp := ImportResponse{Added: added, Updated: updated, DryRun: importDryRun}
	for _, e := range parseErrors {
		resp.Errors = append(resp.Errors, e.Error())
	}

	if humanOutput {
		outputHuman("Imported %d records: %d added, %d updated, %d skipped\n",
			len(newRecords), added, updated, len(parseErrors))
		for _, e := range parseErrors {
			outputHuman("  skipped: %s\n", e)
		}
		return nil
	}
	return outputJSON(resp)
}

// readImportFile parses the input file in the requested format.
func readImportFile(path, format string) ([]record.Record, []error) {
	switch format {
	case "csl-json":
		data, err := os.ReadFile(path)
		if err != nil {
			exitWithError(ExitError, "reading file: %v", err)
		}
		return importer.ParseCSLJSON(data)
	case "jsonl":
		records, err := corpus.ReadAll(path)
		if err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
		return records, nil
	default:
		exitWithError(ExitError, "unknown format: %s", format)
		return nil, nil
	}
}

// classifyImport finds the existing record an incoming record should
// update. DOI matches take precedence over ID matches: the DOI is the
// stronger identity claim.
func classifyImport(existing []record.Record, rec record.Record) (int, bool) {
	if rec.DOI != "" {
		if idx, ok := corpus.FindByDOI(existing, rec.DOI); ok {
			return idx, true
		}
	}
	if idx, ok := corpus.FindByID(existing, rec.ID); ok {
		return idx, true
	}
	return 0, false
}

// mergeRecords overlays the incoming record on the existing one,
// keeping existing fields the import does not provide. The corpus ID
// never changes on update: citation keys and report history refer to it.
func mergeRecords(existing, incoming record.Record) record.Record {
	merged := incoming
	merged.ID = existing.ID
	if merged.DOI == "" {
		merged.DOI = existing.DOI
	}
	if merged.ISBN == "" {
		merged.ISBN = existing.ISBN
	}
	if merged.ArXivID == "" {
		merged.ArXivID = existing.ArXivID
	}
	if merged.URL == "" {
		merged.URL = existing.URL
	}
	if merged.PDFPath == "" {
		merged.PDFPath = existing.PDFPath
	}
	if merged.Year == record.YearUnknown {
		merged.Year = existing.Year
	}
	if merged.Venue == "" {
		merged.Venue = existing.Venue
	}
	return merged
}
