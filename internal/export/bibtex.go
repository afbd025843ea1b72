// Package export emits the resolved bibliography and the rewritten
// document. Entries are keyed exactly by the assigned citation key with
// no further transformation; cross-referencing downstream depends on it.
package export

import (
	"fmt"
	"strings"

	"github.com/bibwire/bibwire/internal/record"
	"github.com/bibwire/bibwire/internal/report"
)

// ToBibTeX converts one matched record to a BibTeX entry under its
// assigned key.
func ToBibTeX(mr report.MatchedRecord) string {
	rec := mr.Record
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType(rec), mr.Key.Key))

	if len(rec.Authors) > 0 {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", formatAuthors(rec.Authors)))
	}

	b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(rec.Title)))

	if rec.Venue != "" {
		fieldName := "journal"
		if rec.ItemType == record.TypeBook {
			fieldName = "publisher"
		}
		b.WriteString(fmt.Sprintf("  %s = {%s},\n", fieldName, escapeLatex(rec.Venue)))
	}

	if rec.Year != record.YearUnknown {
		b.WriteString(fmt.Sprintf("  year = {%d},\n", rec.Year))
	}

	if rec.DOI != "" {
		b.WriteString(fmt.Sprintf("  doi = {%s},\n", rec.DOI))
	}
	if rec.ISBN != "" {
		b.WriteString(fmt.Sprintf("  isbn = {%s},\n", rec.ISBN))
	}
	if rec.ArXivID != "" {
		b.WriteString(fmt.Sprintf("  eprint = {%s},\n  archiveprefix = {arXiv},\n", rec.ArXivID))
	}
	if rec.URL != "" {
		b.WriteString(fmt.Sprintf("  url = {%s},\n", rec.URL))
	}

	b.WriteString("}\n")

	return b.String()
}

// ToBibTeXList converts the report's matched records, in first-mention
// order, to a BibTeX database. Unmatched mentions never appear here.
func ToBibTeXList(rep *report.Report) string {
	var entries []string
	for _, mr := range rep.MatchedRecords() {
		entries = append(entries, ToBibTeX(mr))
	}
	return strings.Join(entries, "\n")
}

// entryType returns the BibTeX entry type for a record.
func entryType(rec record.Record) string {
	switch rec.ItemType {
	case record.TypeBook:
		return "book"
	case record.TypeWebpage:
		return "misc"
	case record.TypePreprint:
		return "article"
	default:
		return "article"
	}
}

// formatAuthors formats authors in BibTeX style: "Last, First and Last, First"
func formatAuthors(authors []record.Author) string {
	var formatted []string
	for _, a := range authors {
		if a.First != "" {
			formatted = append(formatted, fmt.Sprintf("%s, %s", a.Last, a.First))
		} else {
			formatted = append(formatted, a.Last)
		}
	}
	return strings.Join(formatted, " and ")
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	// Order matters: & must be first (before other escapes that might produce &)
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
