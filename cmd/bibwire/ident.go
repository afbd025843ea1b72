package main

import (
	"github.com/bibwire/bibwire/internal/ident"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(identCmd)
}

var identCmd = &cobra.Command{
	Use:   "ident <url-or-text>",
	Short: "Run the identifier extractors over a URL or text snippet",
	Long: `Run the DOI, ISBN and arXiv extractors over the argument and print
what each one finds. Useful for checking why a mention did or did not
match by identifier.`,
	Args: cobra.ExactArgs(1),
	RunE: runIdent,
}

// IdentResponse is the JSON output of the ident command.
type IdentResponse struct {
	Input         string `json:"input"`
	DOI           string `json:"doi,omitempty"`
	ISBN          string `json:"isbn,omitempty"`
	ArXivID       string `json:"arxiv_id,omitempty"`
	NormalizedURL string `json:"normalized_url,omitempty"`
}

func runIdent(cmd *cobra.Command, args []string) error {
	input := args[0]

	resp := IdentResponse{
		Input:         input,
		DOI:           ident.ExtractDOI(input),
		ISBN:          ident.ExtractISBN(input),
		ArXivID:       ident.ExtractArXivID(input),
		NormalizedURL: ident.NormalizeURL(input),
	}

	if humanOutput {
		printIdentField("DOI", resp.DOI)
		printIdentField("ISBN", resp.ISBN)
		printIdentField("arXiv", resp.ArXivID)
		printIdentField("URL", resp.NormalizedURL)
		return nil
	}

	return outputJSON(resp)
}

func printIdentField(name, value string) {
	if value == "" {
		value = "(none)"
	}
	outputHuman("%-6s %s\n", name+":", value)
}
