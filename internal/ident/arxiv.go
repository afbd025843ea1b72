package ident

import (
	"regexp"
	"strings"
)

// arXiv new-format IDs: YYMM.NNNNN with optional version suffix vN.
// Matched after arxiv.org path markers or an arxiv: prefix.
var arxivPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)arxiv\.org/abs/(\d{4}\.\d{4,5}(?:v\d+)?)`),
	regexp.MustCompile(`(?i)arxiv\.org/pdf/(\d{4}\.\d{4,5}(?:v\d+)?)`),
	regexp.MustCompile(`(?i)arxiv\.org/html/(\d{4}\.\d{4,5}(?:v\d+)?)`),
	regexp.MustCompile(`(?i)arxiv[:\s]+(\d{4}\.\d{4,5}(?:v\d+)?)`),
}

// ExtractArXivID extracts an arXiv identifier from a URL or free text.
// Returns "" if no ID is found.
func ExtractArXivID(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	for _, pattern := range arxivPatterns {
		if matches := pattern.FindStringSubmatch(s); len(matches) > 1 {
			return NormalizeArXivID(matches[1])
		}
	}

	return ""
}

// NormalizeArXivID lowercases an arXiv ID and strips surrounding
// whitespace and punctuation. The version suffix is preserved.
func NormalizeArXivID(id string) string {
	id = strings.TrimSpace(id)
	id = strings.Trim(id, ".,;:)")
	return strings.ToLower(id)
}
