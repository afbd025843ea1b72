package main

import (
	"os"
	"strconv"

	"github.com/bibwire/bibwire/internal/mention"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract <document.md>",
	Short: "Extract citation mentions from a document",
	Long: `Extract citation mentions without resolving them, for inspecting what
the resolver will see. Plain hyperlinks (no year token) are excluded.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

// ExtractResponse is the JSON output of the extract command.
type ExtractResponse struct {
	Count    int               `json:"count"`
	Mentions []mention.Mention `json:"mentions"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	docText, err := os.ReadFile(args[0])
	if err != nil {
		exitWithError(ExitError, "reading document: %v", err)
	}

	mentions := mention.Extract(string(docText))

	if humanOutput {
		outputHuman("%d citation mentions\n", len(mentions))
		for _, m := range mentions {
			year := "????"
			if m.Year != 0 {
				year = strconv.Itoa(m.Year)
			}
			outputHuman("  line %d: %s (%s) -> %s\n", m.Line, m.RawText, year, m.SourceURL)
		}
		return nil
	}

	return outputJSON(ExtractResponse{Count: len(mentions), Mentions: mentions})
}
