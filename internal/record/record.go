// Package record defines the core domain types for bibliographic records.
package record

import "strings"

// ItemType classifies a bibliographic record.
type ItemType string

// Item types recognized by the resolver and the BibTeX exporter.
const (
	TypeArticle  ItemType = "article"
	TypeBook     ItemType = "book"
	TypeWebpage  ItemType = "webpage"
	TypePreprint ItemType = "preprint"
	TypeOther    ItemType = "other"
)

// YearUnknown marks a record or mention with no usable year.
const YearUnknown = 0

// Record represents one entry in the bibliographic corpus.
type Record struct {
	// Identity
	ID  string `json:"id"` // Internal stable identifier (corpus-assigned)
	DOI string `json:"doi,omitempty"`

	// External identifiers (any subset may be empty)
	ISBN    string `json:"isbn,omitempty"`
	ArXivID string `json:"arxiv_id,omitempty"`
	URL     string `json:"url,omitempty"`

	// Metadata
	Title   string   `json:"title"`
	Authors []Author `json:"authors"`
	Year    int      `json:"year"` // YearUnknown if not known
	Venue   string   `json:"venue,omitempty"`

	ItemType ItemType `json:"item_type,omitempty"`

	// File paths (relative to the configured PDF root)
	PDFPath string `json:"pdf_path,omitempty"`

	// Import tracking
	Source ImportSource `json:"source,omitempty"`
}

// Author represents a record author.
type Author struct {
	First string `json:"first,omitempty"` // First/given name(s)
	Last  string `json:"last"`            // Last/family name
}

// ImportSource tracks where a record was imported from.
type ImportSource struct {
	Type string `json:"type,omitempty"` // zotero, jsonl, manual
	ID   string `json:"id,omitempty"`   // Original ID from source system
}

// PrimarySurname returns the surname of the first author, or "" if the
// record has no authors.
func (r Record) PrimarySurname() string {
	if len(r.Authors) == 0 {
		return ""
	}
	return r.Authors[0].Last
}

// HasIdentifier reports whether the record carries at least one canonical
// identifier (DOI, ISBN, arXiv ID or URL).
func (r Record) HasIdentifier() bool {
	return r.DOI != "" || r.ISBN != "" || r.ArXivID != "" || r.URL != ""
}

// ParseItemType maps a free-form type string to an ItemType.
// Unrecognized values map to TypeOther.
func ParseItemType(s string) ItemType {
	switch ItemType(strings.ToLower(strings.TrimSpace(s))) {
	case TypeArticle:
		return TypeArticle
	case TypeBook:
		return TypeBook
	case TypeWebpage:
		return TypeWebpage
	case TypePreprint:
		return TypePreprint
	default:
		return TypeOther
	}
}
