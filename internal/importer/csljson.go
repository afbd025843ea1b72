// Package importer parses external bibliography exports into corpus records.
package importer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/bibwire/bibwire/internal/ident"
	"github.com/bibwire/bibwire/internal/record"
)

// FlexibleString can unmarshal from either string or number JSON values.
// CSL-JSON exporters disagree on whether date parts are strings.
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexibleString(n.String())
		return nil
	}

	return fmt.Errorf("cannot unmarshal %s into FlexibleString", string(data))
}

func (f FlexibleString) String() string {
	return string(f)
}

// CSLEntry represents a single item from a CSL-JSON export.
type CSLEntry struct {
	ID             FlexibleString `json:"id"`
	Type           string         `json:"type"`
	Title          string         `json:"title"`
	DOI            string         `json:"DOI"`
	ISBN           string         `json:"ISBN"`
	URL            string         `json:"URL"`
	ContainerTitle string         `json:"container-title"`
	Author         []struct {
		Given   string `json:"given"`
		Family  string `json:"family"`
		Literal string `json:"literal"`
	} `json:"author"`
	Issued struct {
		DateParts [][]FlexibleString `json:"date-parts"`
	} `json:"issued"`
}

// ParseCSLJSON parses a CSL-JSON export and returns corpus records.
// Entries that fail to convert are reported as errors without aborting
// the rest of the batch.
func ParseCSLJSON(data []byte) ([]record.Record, []error) {
	var entries []CSLEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, []error{fmt.Errorf("parsing CSL-JSON: %w", err)}
	}

	var records []record.Record
	var errs []error

	for i, entry := range entries {
		rec, err := cslEntryToRecord(entry)
		if err != nil {
			errs = append(errs, fmt.Errorf("entry %d (%s): %w", i+1, entry.ID, err))
			continue
		}
		records = append(records, rec)
	}

	return records, errs
}

// cslEntryToRecord converts a CSL entry to a corpus record.
func cslEntryToRecord(entry CSLEntry) (record.Record, error) {
	if entry.Title == "" {
		return record.Record{}, fmt.Errorf("missing required field 'title'")
	}

	var authors []record.Author
	for _, a := range entry.Author {
		switch {
		case a.Family != "":
			authors = append(authors, record.Author{First: a.Given, Last: a.Family})
		case a.Literal != "":
			// Institutional author
			authors = append(authors, record.Author{Last: a.Literal})
		}
	}

	year := record.YearUnknown
	if parts := entry.Issued.DateParts; len(parts) > 0 && len(parts[0]) > 0 {
		y, err := strconv.Atoi(parts[0][0].String())
		if err != nil {
			return record.Record{}, fmt.Errorf("invalid year: %s", parts[0][0].String())
		}
		year = y
	}

	id := entry.ID.String()
	if id == "" {
		return record.Record{}, fmt.Errorf("missing required field 'id'")
	}

	isbn := ident.ExtractISBN("isbn:" + entry.ISBN)

	rec := record.Record{
		ID:       id,
		DOI:      ident.NormalizeDOI(entry.DOI),
		ISBN:     isbn,
		URL:      entry.URL,
		Title:    entry.Title,
		Authors:  authors,
		Year:     year,
		Venue:    entry.ContainerTitle,
		ItemType: cslItemType(entry.Type),
		Source: record.ImportSource{
			Type: "csl-json",
			ID:   id,
		},
	}

	if rec.ArXivID == "" && rec.URL != "" {
		rec.ArXivID = ident.ExtractArXivID(rec.URL)
	}

	return rec, nil
}

// cslItemType maps CSL item types onto the corpus taxonomy.
func cslItemType(cslType string) record.ItemType {
	switch strings.ToLower(cslType) {
	case "article-journal", "article-magazine", "paper-conference", "article":
		return record.TypeArticle
	case "book", "chapter":
		return record.TypeBook
	case "webpage", "post", "post-weblog":
		return record.TypeWebpage
	case "manuscript", "preprint":
		return record.TypePreprint
	default:
		return record.TypeOther
	}
}
