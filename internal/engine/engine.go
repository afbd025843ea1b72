// Package engine runs the citation resolution pipeline.
//
// The engine is single-threaded and synchronous: it consumes a complete,
// immutable corpus snapshot and the full document text, already loaded by
// the collaborators, and performs pure in-memory computation. Mentions
// are processed strictly in document order, so identical inputs always
// produce identical reports and keys.
package engine

import (
	"fmt"

	"github.com/bibwire/bibwire/internal/citekey"
	"github.com/bibwire/bibwire/internal/index"
	"github.com/bibwire/bibwire/internal/match"
	"github.com/bibwire/bibwire/internal/mention"
	"github.com/bibwire/bibwire/internal/record"
	"github.com/bibwire/bibwire/internal/report"
)

// Run resolves every citation mention in the document text against the
// corpus snapshot. The snapshot must be frozen before the call: any
// metadata enrichment happens in the corpus loading phase, never while
// the engine runs, so an assigned key can never change underfoot.
//
// Soft failures (unmatched, ambiguous) become report entries. The only
// error returned is key-suffix exhaustion, which is fatal.
func Run(records []record.Record, docText string) (*report.Report, error) {
	mentions := mention.Extract(docText)
	idx := index.Build(records)

	rep := report.New()
	rep.Warnings = idx.Warnings

	assigner := citekey.NewAssigner()
	for _, m := range mentions {
		result := match.Resolve(m, idx)
		switch result.Status {
		case match.StatusMatched:
			key, err := assigner.Assign(result.Record)
			if err != nil {
				return nil, fmt.Errorf("assigning key for record %s: %w", result.Record.ID, err)
			}
			rep.AddMatched(m, result.Record, result.Strategy, key)
		case match.StatusAmbiguous:
			rep.AddAmbiguous(m, result.Candidates)
		case match.StatusUnmatched:
			rep.AddUnmatched(m, result.Reason)
		}
	}

	return rep, nil
}
