package main

import (
	"path/filepath"
	"strings"

	"github.com/bibwire/bibwire/internal/config"
	"github.com/bibwire/bibwire/internal/corpus"
	"github.com/bibwire/bibwire/internal/pdf"
	"github.com/spf13/cobra"
)

var enrichDryRun bool

func init() {
	rootCmd.AddCommand(enrichCmd)
	enrichCmd.Flags().BoolVar(&enrichDryRun, "dry-run", false, "Report what would change without writing the corpus")
}

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Fill missing identifiers from attached PDFs",
	Long: `Scan the PDFs attached to corpus records and fill in what the records
are missing: DOIs, arXiv IDs, and titles (best-effort, from the first
page). A recovered title upgrades the record's citation key from the
surname+year fallback. Records without a PDF, or already complete, are
left alone. Unreadable PDFs are reported but do not stop the pass.`,
	Args: cobra.NoArgs,
	RunE: runEnrich,
}

// EnrichResponse is the JSON output of the enrich command.
type EnrichResponse struct {
	Scanned int                `json:"scanned"`
	Updated int                `json:"updated"`
	Errors  int                `json:"errors"`
	Results []pdf.EnrichResult `json:"results"`
	DryRun  bool               `json:"dry_run,omitempty"`
}

func runEnrich(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	corpusPath := cfg.ResolvedCorpusPath(repoRoot)
	records := mustLoadCorpus(corpusPath)

	pdfRoot := config.ExpandPath(cfg.PDFRoot)
	resolvePath := func(p string) string {
		if filepath.IsAbs(p) || pdfRoot == "" {
			return p
		}
		return filepath.Join(pdfRoot, p)
	}

	results := pdf.EnrichRecords(records, resolvePath)

	resp := EnrichResponse{Scanned: len(results), Results: results, DryRun: enrichDryRun}
	for _, r := range results {
		if r.Err != "" {
			resp.Errors++
		} else if r.DOI != "" || r.ArXivID != "" || r.Title != "" {
			resp.Updated++
		}
	}

	if resp.Updated > 0 && !enrichDryRun {
		if err := corpus.WriteAll(corpusPath, records); err != nil {
			exitWithError(ExitDataError, "writing corpus: %v", err)
		}
	}

	if humanOutput {
		outputHuman("Scanned %d PDFs: %d updated, %d errors\n", resp.Scanned, resp.Updated, resp.Errors)
		for _, r := range results {
			if r.Err != "" {
				outputHuman("  %s: error: %s\n", r.RecordID, r.Err)
				continue
			}
			var fields []string
			if r.DOI != "" {
				fields = append(fields, "doi="+r.DOI)
			}
			if r.ArXivID != "" {
				fields = append(fields, "arxiv="+r.ArXivID)
			}
			if r.Title != "" {
				fields = append(fields, "title="+r.Title)
			}
			outputHuman("  %s: %s\n", r.RecordID, strings.Join(fields, " "))
		}
		return nil
	}

	return outputJSON(resp)
}
