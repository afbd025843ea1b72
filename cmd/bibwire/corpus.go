package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(corpusCmd)
	corpusCmd.AddCommand(corpusInfoCmd)
	corpusCmd.AddCommand(corpusRebuildCmd)
}

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Inspect and maintain the reference corpus",
}

var corpusInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show corpus statistics",
	Args:  cobra.NoArgs,
	RunE:  runCorpusInfo,
}

var corpusRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the SQLite cache from the corpus file",
	Long: `Rebuild the ephemeral SQLite cache from corpus.jsonl. The JSONL file
is the source of truth; the cache only exists to speed up lookups and
can always be regenerated.`,
	Args: cobra.NoArgs,
	RunE: runCorpusRebuild,
}

// CorpusInfoResponse is the JSON output of corpus info.
type CorpusInfoResponse struct {
	CorpusPath string `json:"corpus_path"`
	Records    int    `json:"records"`
	WithDOI    int    `json:"with_doi"`
	WithISBN   int    `json:"with_isbn"`
	WithArXiv  int    `json:"with_arxiv"`
	WithPDF    int    `json:"with_pdf"`
}

func runCorpusInfo(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	corpusPath := cfg.ResolvedCorpusPath(repoRoot)
	records := mustLoadCorpus(corpusPath)

	resp := CorpusInfoResponse{
		CorpusPath: corpusPath,
		Records:    len(records),
	}
	for _, rec := range records {
		if rec.DOI != "" {
			resp.WithDOI++
		}
		if rec.ISBN != "" {
			resp.WithISBN++
		}
		if rec.ArXivID != "" {
			resp.WithArXiv++
		}
		if rec.PDFPath != "" {
			resp.WithPDF++
		}
	}

	if humanOutput {
		outputHuman("Corpus: %s\n", resp.CorpusPath)
		outputHuman("  records: %d\n", resp.Records)
		outputHuman("  with DOI: %d\n", resp.WithDOI)
		outputHuman("  with ISBN: %d\n", resp.WithISBN)
		outputHuman("  with arXiv: %d\n", resp.WithArXiv)
		outputHuman("  with PDF: %d\n", resp.WithPDF)
		return nil
	}

	return outputJSON(resp)
}

// CorpusRebuildResponse is the JSON output of corpus rebuild.
type CorpusRebuildResponse struct {
	CorpusPath string `json:"corpus_path"`
	Records    int    `json:"records"`
}

func runCorpusRebuild(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	corpusPath := cfg.ResolvedCorpusPath(repoRoot)

	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	count, err := db.RebuildFromJSONL(corpusPath)
	if err != nil {
		exitWithError(ExitDataError, "rebuilding cache: %v", err)
	}

	if humanOutput {
		outputHuman("Rebuilt cache with %d records from %s\n", count, corpusPath)
		return nil
	}

	return outputJSON(CorpusRebuildResponse{CorpusPath: corpusPath, Records: count})
}
