// Package index builds per-run lookup tables over a bibliographic corpus.
//
// The index is a pure function of the corpus: the same records always
// yield the same tables, which reproducible matching depends on. It is
// built once per run and read-only afterward.
package index

import (
	"fmt"
	"strings"

	"github.com/bibwire/bibwire/internal/ident"
	"github.com/bibwire/bibwire/internal/record"
)

// AuthorYearKey keys the many-valued author/year table.
type AuthorYearKey struct {
	Surname string // lowercased primary author surname
	Year    int
}

// Index holds the lookup tables for one resolution run.
type Index struct {
	byURL        map[string]record.Record
	byDOI        map[string]record.Record
	byISBN       map[string]record.Record
	byArXiv      map[string]record.Record
	byAuthorYear map[AuthorYearKey][]record.Record

	// Warnings collected while building (duplicate URLs and the like).
	// Corpus data quality issues, reported but not fatal.
	Warnings []string

	// records preserves corpus order for deterministic iteration.
	records []record.Record
}

// Build constructs the index from a complete corpus snapshot.
//
// URL, DOI, ISBN and arXiv tables hold one record per key; a duplicate
// key is last-write-wins with a collected warning. Identifiers are taken
// from the record's own metadata and, when absent there, extracted from
// its URL. The author/year table is intentionally many-valued: collisions
// there are expected and resolved by the fuzzy matching stage.
func Build(records []record.Record) *Index {
	idx := &Index{
		byURL:        make(map[string]record.Record),
		byDOI:        make(map[string]record.Record),
		byISBN:       make(map[string]record.Record),
		byArXiv:      make(map[string]record.Record),
		byAuthorYear: make(map[AuthorYearKey][]record.Record),
		records:      records,
	}

	for _, rec := range records {
		if rec.URL != "" {
			key := ident.NormalizeURL(rec.URL)
			if prev, dup := idx.byURL[key]; dup && prev.ID != rec.ID {
				idx.Warnings = append(idx.Warnings,
					fmt.Sprintf("duplicate URL %s: record %s replaces %s", key, rec.ID, prev.ID))
			}
			idx.byURL[key] = rec
		}

		if doi := recordDOI(rec); doi != "" {
			idx.byDOI[doi] = rec
		}
		if isbn := recordISBN(rec); isbn != "" {
			idx.byISBN[isbn] = rec
		}
		if arxiv := recordArXiv(rec); arxiv != "" {
			idx.byArXiv[arxiv] = rec
		}

		if surname := rec.PrimarySurname(); surname != "" {
			key := AuthorYearKey{Surname: strings.ToLower(surname), Year: rec.Year}
			idx.byAuthorYear[key] = append(idx.byAuthorYear[key], rec)
		}
	}

	return idx
}

// ByURL looks up a record by normalized URL.
func (idx *Index) ByURL(normalized string) (record.Record, bool) {
	rec, ok := idx.byURL[normalized]
	return rec, ok
}

// ByDOI looks up a record by normalized DOI.
func (idx *Index) ByDOI(doi string) (record.Record, bool) {
	rec, ok := idx.byDOI[ident.NormalizeDOI(doi)]
	return rec, ok
}

// ByISBN looks up a record by normalized ISBN.
func (idx *Index) ByISBN(isbn string) (record.Record, bool) {
	rec, ok := idx.byISBN[isbn]
	return rec, ok
}

// ByArXiv looks up a record by normalized arXiv ID.
func (idx *Index) ByArXiv(id string) (record.Record, bool) {
	rec, ok := idx.byArXiv[ident.NormalizeArXivID(id)]
	return rec, ok
}

// ByAuthorYear returns all records sharing a primary surname and year,
// in corpus order.
func (idx *Index) ByAuthorYear(surname string, year int) []record.Record {
	return idx.byAuthorYear[AuthorYearKey{Surname: strings.ToLower(surname), Year: year}]
}

// Records returns the corpus snapshot in its original order.
func (idx *Index) Records() []record.Record {
	return idx.records
}

// Len returns the number of records in the corpus snapshot.
func (idx *Index) Len() int {
	return len(idx.records)
}

// recordDOI returns the record's normalized DOI, from metadata first and
// its URL as a fallback.
func recordDOI(rec record.Record) string {
	if rec.DOI != "" {
		return ident.NormalizeDOI(rec.DOI)
	}
	return ident.ExtractDOI(rec.URL)
}

// recordISBN returns the record's ISBN, validating metadata values and
// falling back to URL extraction.
func recordISBN(rec record.Record) string {
	if rec.ISBN != "" {
		isbn := strings.ToUpper(strings.ReplaceAll(strings.ReplaceAll(rec.ISBN, "-", ""), " ", ""))
		if ident.ValidISBN(isbn) {
			return isbn
		}
	}
	return ident.ExtractISBN(rec.URL)
}

// recordArXiv returns the record's normalized arXiv ID, from metadata
// first and its URL as a fallback.
func recordArXiv(rec record.Record) string {
	if rec.ArXivID != "" {
		return ident.NormalizeArXivID(rec.ArXivID)
	}
	return ident.ExtractArXivID(rec.URL)
}
