package export

import (
	"fmt"
	"strings"

	"github.com/bibwire/bibwire/internal/match"
	"github.com/bibwire/bibwire/internal/mention"
	"github.com/bibwire/bibwire/internal/report"
)

// RewriteDocument replaces each citation link in the document with a
// \cite command for its assigned key. Report entries are consumed in
// document order, which matches the rewrite scan order by construction.
//
// Unresolved and ambiguous citations are rendered as visible markers
// carrying the original raw text, never as blanks or generic
// placeholders; permissive runs produce output a human can grep for.
func RewriteDocument(text string, rep *report.Report) string {
	entries := rep.Entries()
	next := 0

	return mention.Rewrite(text, func(ms []mention.Mention) string {
		var keys []string
		var failed []string

		for range ms {
			if next >= len(entries) {
				break
			}
			e := entries[next]
			next++

			switch e.Status {
			case match.StatusMatched:
				keys = append(keys, e.Key.Key)
			case match.StatusAmbiguous:
				failed = append(failed, fmt.Sprintf("[AMBIGUOUS: %s]", e.Mention.RawText))
			case match.StatusUnmatched:
				failed = append(failed, fmt.Sprintf("[UNRESOLVED: %s]", e.Mention.RawText))
			}
		}

		var parts []string
		if len(keys) > 0 {
			parts = append(parts, fmt.Sprintf(`\cite{%s}`, strings.Join(keys, ",")))
		}
		parts = append(parts, failed...)
		return strings.Join(parts, " ")
	})
}
