// Package ident extracts canonical identifiers (DOI, ISBN, arXiv ID) from
// URLs and free text, and normalizes URLs for index lookups. All functions
// are pure; no network access.
package ident

import (
	"regexp"
	"strings"
)

// DOI pattern: 10.XXXX/... where XXXX is 4+ digits
// More specific: 10.\d{4,9}/[-._;()/:A-Z0-9]+
var doiPattern = regexp.MustCompile(`(?i)10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// ExtractDOI extracts a DOI from a URL or free text.
// Accepts doi.org and dx.doi.org host forms, bare doi: prefixes, and raw
// 10.XXXX/suffix patterns anywhere in the input. Returns "" if no valid
// DOI is found.
func ExtractDOI(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	matches := doiPattern.FindAllString(s, -1)
	for _, match := range matches {
		// Remove trailing punctuation
		match = strings.TrimRight(match, ".,;:)")
		if isValidDOI(match) {
			return NormalizeDOI(match)
		}
	}

	return ""
}

// NormalizeDOI normalizes a DOI for comparison.
// Removes resolver prefixes like "https://doi.org/" and lowercases.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "https://dx.doi.org/")
	doi = strings.TrimPrefix(doi, "http://dx.doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	doi = strings.TrimPrefix(doi, "DOI:")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.ToLower(strings.TrimSpace(doi))
}

// isValidDOI performs basic validation on a DOI.
func isValidDOI(doi string) bool {
	if len(doi) < 10 {
		return false
	}
	// Must start with 10. and have something after the /
	if !strings.HasPrefix(doi, "10.") {
		return false
	}
	slashIdx := strings.Index(doi, "/")
	if slashIdx == -1 || slashIdx >= len(doi)-1 {
		return false
	}
	return true
}
