// Package match resolves citation mentions against a record index.
//
// The cascade runs the most stable identifier first: a URL hit is never
// second-guessed by a fuzzy match. Ambiguity is reported, never resolved
// by picking an arbitrary candidate.
package match

import (
	"github.com/bibwire/bibwire/internal/ident"
	"github.com/bibwire/bibwire/internal/index"
	"github.com/bibwire/bibwire/internal/mention"
	"github.com/bibwire/bibwire/internal/record"
)

// Status classifies the outcome for one mention.
type Status string

// Match outcomes.
const (
	StatusMatched   Status = "matched"
	StatusAmbiguous Status = "ambiguous"
	StatusUnmatched Status = "unmatched"
)

// Strategy identifies which cascade stage produced a match.
type Strategy string

// Cascade stages, in precedence order.
const (
	StrategyURL   Strategy = "url"
	StrategyDOI   Strategy = "doi"
	StrategyISBN  Strategy = "isbn"
	StrategyArXiv Strategy = "arxiv"
	StrategyFuzzy Strategy = "fuzzy"
)

// Result is the outcome of matching one mention.
type Result struct {
	Status     Status          `json:"status"`
	Record     record.Record   `json:"record,omitempty"`     // present iff matched
	Strategy   Strategy        `json:"strategy,omitempty"`   // present iff matched
	Candidates []record.Record `json:"candidates,omitempty"` // present iff ambiguous
	Reason     string          `json:"reason,omitempty"`     // present iff unmatched
}

// Fuzzy-ranking parameters. The similarity metric is normalized
// Levenshtein; candidates within Epsilon of the best score tie and the
// outcome is ambiguous.
const (
	TitleSimilarityThreshold = 0.5
	TitleTieEpsilon          = 0.05
)

// Resolve matches one mention against the index, trying each cascade
// stage only if the previous yielded nothing. A mention with no source
// URL is unmatched by policy: fuzzy is the fallback for mentions whose
// URL missed the index, not a path around the missing link.
func Resolve(m mention.Mention, idx *index.Index) Result {
	if m.SourceURL == "" {
		return Result{Status: StatusUnmatched, Reason: "mention has no source URL"}
	}

	if rec, ok := idx.ByURL(ident.NormalizeURL(m.SourceURL)); ok {
		return Result{Status: StatusMatched, Record: rec, Strategy: StrategyURL}
	}
	if doi := ident.ExtractDOI(m.SourceURL); doi != "" {
		if rec, ok := idx.ByDOI(doi); ok {
			return Result{Status: StatusMatched, Record: rec, Strategy: StrategyDOI}
		}
	}
	if isbn := ident.ExtractISBN(m.SourceURL); isbn != "" {
		if rec, ok := idx.ByISBN(isbn); ok {
			return Result{Status: StatusMatched, Record: rec, Strategy: StrategyISBN}
		}
	}
	if arxiv := ident.ExtractArXivID(m.SourceURL); arxiv != "" {
		if rec, ok := idx.ByArXiv(arxiv); ok {
			return Result{Status: StatusMatched, Record: rec, Strategy: StrategyArXiv}
		}
	}

	return resolveFuzzy(m, idx)
}

// resolveFuzzy is the final cascade stage: author/year candidates ranked
// by title similarity against the mention's title hint.
func resolveFuzzy(m mention.Mention, idx *index.Index) Result {
	if m.Surname == "" || m.Year == record.YearUnknown {
		return Result{Status: StatusUnmatched, Reason: "no identifier match and no author/year parse"}
	}

	candidates := idx.ByAuthorYear(m.Surname, m.Year)
	switch len(candidates) {
	case 0:
		return Result{Status: StatusUnmatched, Reason: "no record for author/year"}
	case 1:
		return Result{Status: StatusMatched, Record: candidates[0], Strategy: StrategyFuzzy}
	}

	// Multiple candidates: rank by title similarity when a hint exists.
	if m.TitleHint == "" {
		return Result{Status: StatusAmbiguous, Candidates: candidates}
	}

	best, bestScore, tied := rankByTitle(m.TitleHint, candidates)
	if bestScore < TitleSimilarityThreshold || len(tied) > 1 {
		return Result{Status: StatusAmbiguous, Candidates: candidates}
	}
	return Result{Status: StatusMatched, Record: best, Strategy: StrategyFuzzy}
}

// rankByTitle scores candidates against the hint and returns the best
// candidate, its score, and every candidate within TitleTieEpsilon of
// that score. Candidates are visited in corpus order so ties resolve the
// same way every run.
func rankByTitle(hint string, candidates []record.Record) (record.Record, float64, []record.Record) {
	var best record.Record
	bestScore := -1.0

	scores := make([]float64, len(candidates))
	for i, cand := range candidates {
		scores[i] = TitleSimilarity(hint, cand.Title)
		if scores[i] > bestScore {
			best = cand
			bestScore = scores[i]
		}
	}

	var tied []record.Record
	for i, cand := range candidates {
		if bestScore-scores[i] <= TitleTieEpsilon {
			tied = append(tied, cand)
		}
	}

	return best, bestScore, tied
}
