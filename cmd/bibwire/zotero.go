package main

import (
	"context"

	"github.com/bibwire/bibwire/internal/config"
	"github.com/bibwire/bibwire/internal/corpus"
	"github.com/bibwire/bibwire/internal/record"
	"github.com/bibwire/bibwire/internal/zotero"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var zoteroUserID string

func init() {
	// Load .env file if present (for ZOTERO_API_KEY)
	_ = godotenv.Load()

	zoteroPullCmd.Flags().StringVar(&zoteroUserID, "user", "", "Zotero user ID (overrides global config)")
	zoteroCmd.AddCommand(zoteroPullCmd)
	rootCmd.AddCommand(zoteroCmd)
}

var zoteroCmd = &cobra.Command{
	Use:   "zotero",
	Short: "Import references from a Zotero library",
}

var zoteroPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Pull the Zotero library into the corpus",
	Long: `Fetch every item in the configured Zotero library and append the ones
not already in the corpus. Records are matched against existing corpus
entries by DOI and by ID, so repeated pulls are safe. The API key comes
from ZOTERO_API_KEY or the global config; the user ID from --user or
the global config.`,
	Args: cobra.NoArgs,
	RunE: runZoteroPull,
}

// ZoteroPullResponse is the JSON output of zotero pull.
type ZoteroPullResponse struct {
	Fetched int `json:"fetched"`
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

func runZoteroPull(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	global, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	userID := zoteroUserID
	if userID == "" {
		userID = global.ZoteroUserID
	}
	if userID == "" {
		exitWithError(ExitConfigError, "no Zotero user ID: pass --user or set zotero_user_id in %s", config.GlobalConfigPath())
	}

	var opts []zotero.ClientOption
	if global.ZoteroAPIKey != "" {
		opts = append(opts, zotero.WithAPIKey(global.ZoteroAPIKey))
	}
	if global.ZoteroAPIURL != "" {
		opts = append(opts, zotero.WithBaseURL(global.ZoteroAPIURL))
	}
	client := zotero.NewClient(opts...)

	fetched, err := client.FetchAll(context.Background(), userID)
	if err != nil {
		exitWithError(ExitError, "fetching Zotero library: %v", err)
	}

	corpusPath := cfg.ResolvedCorpusPath(repoRoot)
	existing := mustLoadCorpus(corpusPath)

	seenID := make(map[string]bool, len(existing))
	seenDOI := make(map[string]bool, len(existing))
	for _, rec := range existing {
		seenID[rec.ID] = true
		if rec.DOI != "" {
			seenDOI[rec.DOI] = true
		}
	}

	var added []record.Record
	skipped := 0
	for _, rec := range fetched {
		if seenID[rec.ID] || (rec.DOI != "" && seenDOI[rec.DOI]) {
			skipped++
			continue
		}
		seenID[rec.ID] = true
		if rec.DOI != "" {
			seenDOI[rec.DOI] = true
		}
		added = append(added, rec)
	}

	for _, rec := range added {
		if err := corpus.Append(corpusPath, rec); err != nil {
			exitWithError(ExitDataError, "appending to corpus: %v", err)
		}
	}

	resp := ZoteroPullResponse{Fetched: len(fetched), Added: len(added), Skipped: skipped}
	if humanOutput {
		outputHuman("Fetched %d items: %d added, %d already in corpus\n", resp.Fetched, resp.Added, resp.Skipped)
		return nil
	}
	return outputJSON(resp)
}
