// Package pdf recovers canonical identifiers from PDF files.
//
// Used during the corpus enrichment phase only: enrichment completes and
// the snapshot freezes before the resolution engine runs, so keys never
// change after assignment.
package pdf

import (
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/bibwire/bibwire/internal/ident"
	"github.com/bibwire/bibwire/internal/record"
)

// MaxScanPages bounds how many pages are scanned for identifiers.
// DOIs and arXiv stamps appear on the first page of almost every paper.
const MaxScanPages = 3

// Identifiers holds what a PDF scan recovered.
type Identifiers struct {
	DOI     string
	ArXivID string
}

// ExtractIdentifiers scans the first pages of a PDF for a DOI and an
// arXiv ID. A PDF with neither returns zero values and no error.
func ExtractIdentifiers(filePath string) (Identifiers, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return Identifiers{}, err
	}
	defer f.Close()

	maxPages := MaxScanPages
	if r.NumPage() < maxPages {
		maxPages = r.NumPage()
	}

	var ids Identifiers
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if ids.DOI == "" {
			ids.DOI = ident.ExtractDOI(text)
		}
		if ids.ArXivID == "" {
			ids.ArXivID = ident.ExtractArXivID(text)
		}
		if ids.DOI != "" && ids.ArXivID != "" {
			break
		}
	}

	return ids, nil
}

// ExtractTitle attempts to extract the title from a PDF.
// Best-effort: the first substantial line of the first page.
func ExtractTitle(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if r.NumPage() < 1 {
		return "", nil
	}

	page := r.Page(1)
	if page.V.IsNull() {
		return "", nil
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", nil
	}

	lines := strings.Split(text, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		// Skip short lines, headers, etc.
		if len(line) > 20 && !isHeaderLine(line) {
			return line, nil
		}
	}

	return "", nil
}

// EnrichResult describes one record touched by an enrichment pass.
type EnrichResult struct {
	RecordID string `json:"record_id"`
	DOI      string `json:"doi,omitempty"`
	ArXivID  string `json:"arxiv_id,omitempty"`
	Title    string `json:"title,omitempty"`
	Err      string `json:"error,omitempty"`
}

// EnrichRecords fills missing DOI, arXiv IDs and titles on records that
// carry a PDF path, mutating the slice in place. A recovered title feeds
// key assignment, so title-less records stop producing low-confidence
// surname+year keys. Returns one result per record that was scanned.
// This runs strictly before index build and key assignment; the caller
// freezes the corpus afterward.
func EnrichRecords(records []record.Record, resolvePath func(string) string) []EnrichResult {
	var results []EnrichResult
	for i := range records {
		rec := &records[i]
		needIDs := rec.DOI == "" || rec.ArXivID == ""
		needTitle := rec.Title == ""
		if rec.PDFPath == "" || (!needIDs && !needTitle) {
			continue
		}

		path := rec.PDFPath
		if resolvePath != nil {
			path = resolvePath(path)
		}

		result := EnrichResult{RecordID: rec.ID}

		if needIDs {
			ids, err := ExtractIdentifiers(path)
			if err != nil {
				result.Err = err.Error()
				results = append(results, result)
				continue
			}
			if rec.DOI == "" && ids.DOI != "" {
				rec.DOI = ids.DOI
				result.DOI = ids.DOI
			}
			if rec.ArXivID == "" && ids.ArXivID != "" {
				rec.ArXivID = ids.ArXivID
				result.ArXivID = ids.ArXivID
			}
		}

		if needTitle {
			title, err := ExtractTitle(path)
			if err != nil {
				result.Err = err.Error()
				results = append(results, result)
				continue
			}
			if title != "" {
				rec.Title = title
				result.Title = title
			}
		}

		if result.DOI != "" || result.ArXivID != "" || result.Title != "" || result.Err != "" {
			results = append(results, result)
		}
	}
	return results
}

// isHeaderLine checks if a line is likely a header/footer.
func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	if strings.Contains(lower, "journal") {
		return true
	}
	if strings.Contains(lower, "volume") && strings.Contains(lower, "issue") {
		return true
	}
	if strings.Contains(lower, "copyright") {
		return true
	}
	if strings.Contains(lower, "article") && strings.Contains(lower, "published") {
		return true
	}
	return false
}
