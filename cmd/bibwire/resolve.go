package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bibwire/bibwire/internal/engine"
	"github.com/bibwire/bibwire/internal/export"
	"github.com/bibwire/bibwire/internal/match"
	"github.com/bibwire/bibwire/internal/report"
	"github.com/spf13/cobra"
)

var (
	resolveStrict     bool
	resolvePermissive bool
	resolveWrite      bool
	resolveCorpusPath string
)

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().BoolVar(&resolveStrict, "strict", false, "Exit nonzero if any citation is unresolved or ambiguous")
	resolveCmd.Flags().BoolVar(&resolvePermissive, "permissive", false, "Proceed despite unresolved citations (overrides config strict)")
	resolveCmd.Flags().BoolVar(&resolveWrite, "write", false, "Write the .bib database and the rewritten document")
	resolveCmd.Flags().StringVar(&resolveCorpusPath, "corpus", "", "Corpus JSONL path (overrides config)")
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <document.md>",
	Short: "Resolve a document's citations against the corpus",
	Long: `Resolve every citation mention in a document against the bibliographic
corpus and report, per mention, the matched record and its citation key,
or the failure (unmatched / ambiguous) a human needs to act on.

With --write, also emits the .bib database keyed by the assigned keys and
a rewritten copy of the document with \cite commands; unresolved and
ambiguous citations are visibly flagged in the output, never blanked.

Examples:
  bibwire resolve paper.md                 # Report only
  bibwire resolve paper.md --write         # Emit paper.resolved.md + references.bib
  bibwire resolve paper.md --strict        # Nonzero exit on any soft failure`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

// ResolveResponse is the JSON output of the resolve command.
type ResolveResponse struct {
	Summary    report.Summary `json:"summary"`
	Entries    []report.Entry `json:"entries"`
	BibPath    string         `json:"bib_path,omitempty"`
	OutputPath string         `json:"output_path,omitempty"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	corpusPath := cfg.ResolvedCorpusPath(repoRoot)
	if resolveCorpusPath != "" {
		corpusPath = resolveCorpusPath
	}

	docPath := args[0]
	docText, err := os.ReadFile(docPath)
	if err != nil {
		exitWithError(ExitError, "reading document: %v", err)
	}

	records := mustLoadCorpus(corpusPath)

	rep, err := engine.Run(records, string(docText))
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	printWarnings(rep.Warnings)

	resp := ResolveResponse{Summary: rep.Summary(), Entries: rep.Entries()}

	if resolveWrite {
		bibPath := cfg.ResolvedBibPath(repoRoot)
		if err := os.WriteFile(bibPath, []byte(export.ToBibTeXList(rep)), 0644); err != nil {
			exitWithError(ExitError, "writing bibliography: %v", err)
		}
		resp.BibPath = bibPath

		outPath := resolvedDocPath(docPath)
		if err := os.WriteFile(outPath, []byte(export.RewriteDocument(string(docText), rep)), 0644); err != nil {
			exitWithError(ExitError, "writing rewritten document: %v", err)
		}
		resp.OutputPath = outPath
	}

	if humanOutput {
		printResolveHuman(resp)
	} else {
		outputJSON(resp)
	}

	strict := resolveStrict || (cfg.Strict && !resolvePermissive)
	if strict && !rep.Clean() {
		os.Exit(ExitUnresolved)
	}
	return nil
}

// resolvedDocPath derives the rewritten document path: paper.md ->
// paper.resolved.md.
func resolvedDocPath(docPath string) string {
	ext := filepath.Ext(docPath)
	return strings.TrimSuffix(docPath, ext) + ".resolved" + ext
}

// printResolveHuman prints the resolve result in human-readable format.
func printResolveHuman(resp ResolveResponse) {
	s := resp.Summary
	outputHuman("Resolved %d mentions: %d matched, %d ambiguous, %d unmatched\n",
		s.Mentions, s.Matched, s.Ambiguous, s.Unmatched)
	if s.LowConfidenceKeys > 0 {
		outputHuman("Low-confidence keys (no title): %d\n", s.LowConfidenceKeys)
	}

	for _, e := range resp.Entries {
		switch e.Status {
		case match.StatusMatched:
			outputHuman("  line %d: %q -> %s (%s)\n", e.Mention.Line, e.Mention.RawText, e.Key.Key, e.Strategy)
		case match.StatusAmbiguous:
			var ids []string
			for _, c := range e.Candidates {
				ids = append(ids, fmt.Sprintf("%s %q", c.ID, c.Title))
			}
			outputHuman("  line %d: %q AMBIGUOUS between %s\n", e.Mention.Line, e.Mention.RawText, strings.Join(ids, "; "))
		case match.StatusUnmatched:
			outputHuman("  line %d: %q UNMATCHED (%s)\n", e.Mention.Line, e.Mention.RawText, e.Reason)
		}
	}

	if resp.BibPath != "" {
		outputHuman("Wrote %s and %s\n", resp.BibPath, resp.OutputPath)
	}
}
