// Package mention extracts citation mentions from document text.
//
// A markdown link is a citation mention iff its visible text contains a
// 4-digit year token; links without one are plain hyperlinks and are not
// extracted. Extraction is pure text processing in document order.
package mention

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bibwire/bibwire/internal/record"
)

// Mention is one citation occurrence in the source document.
// Created once per extraction pass; immutable thereafter.
type Mention struct {
	RawText   string `json:"raw_text"`             // The author/year phrase as written
	SourceURL string `json:"source_url,omitempty"` // Link target; may be empty for malformed input
	Surname   string `json:"surname,omitempty"`    // Best-effort primary surname parse
	Year      int    `json:"year"`                 // record.YearUnknown if unparseable
	Line      int    `json:"line"`                 // 1-based line in the document
	TitleHint string `json:"title_hint,omitempty"` // Nearby title text, if any
}

var (
	// linkPattern matches markdown link constructs [text](url).
	// The URL part may be empty for malformed input.
	linkPattern = regexp.MustCompile(`\[([^\[\]]+)\]\(([^()\s]*)\)`)

	// yearPattern matches a standalone 4-digit year token.
	yearPattern = regexp.MustCompile(`\b((?:1[5-9]|20)\d{2})\b`)

	// groupSplit separates citations packed into one bracket:
	// "Smith, 2020; Jones, 2021" or "Smith 2020, Jones 2021".
	groupSplit = regexp.MustCompile(`\s*;\s*`)

	// titleHintPattern captures quoted or emphasized text immediately
	// following a citation, used as a fuzzy-ranking hint:
	// [Smith, 2020](url) "Some Title" or [Smith, 2020](url) *Some Title*.
	titleHintPattern = regexp.MustCompile(`^\s*(?:"([^"]+)"|\*([^*]+)\*)`)
)

// Extract scans document text and returns the citation mentions in
// document order. Plain hyperlinks (no year token in the visible text)
// are excluded. Malformed citations (empty URL, unparseable year) still
// produce a Mention so they surface downstream as unmatched rather than
// disappearing.
func Extract(text string) []Mention {
	var mentions []Mention

	line := 1
	offset := 0
	for {
		loc := linkPattern.FindStringSubmatchIndex(text[offset:])
		if loc == nil {
			break
		}

		start := offset + loc[0]
		visible := text[offset+loc[2] : offset+loc[3]]
		url := ""
		if loc[4] >= 0 {
			url = text[offset+loc[4] : offset+loc[5]]
		}
		end := offset + loc[1]

		line += strings.Count(text[offset:start], "\n")

		if yearPattern.MatchString(visible) {
			hint := titleHintAfter(text[end:])
			for _, group := range splitGroups(visible) {
				surname, year := parseAuthorYear(group)
				mentions = append(mentions, Mention{
					RawText:   group,
					SourceURL: strings.TrimSpace(url),
					Surname:   surname,
					Year:      year,
					Line:      line,
					TitleHint: hint,
				})
			}
		}

		line += strings.Count(text[start:end], "\n")
		offset = end
	}

	return mentions
}

// Rewrite scans the text exactly like Extract and replaces each citation
// link construct with the string returned by fn, which receives the
// bracket's mentions in order. Plain hyperlinks pass through untouched.
// Classification lives here so extraction and rewriting can never
// disagree about what counts as a citation.
func Rewrite(text string, fn func(ms []Mention) string) string {
	var b strings.Builder

	line := 1
	offset := 0
	for {
		loc := linkPattern.FindStringSubmatchIndex(text[offset:])
		if loc == nil {
			break
		}

		start := offset + loc[0]
		visible := text[offset+loc[2] : offset+loc[3]]
		url := ""
		if loc[4] >= 0 {
			url = text[offset+loc[4] : offset+loc[5]]
		}
		end := offset + loc[1]

		b.WriteString(text[offset:start])
		line += strings.Count(text[offset:start], "\n")

		if yearPattern.MatchString(visible) {
			hint := titleHintAfter(text[end:])
			var ms []Mention
			for _, group := range splitGroups(visible) {
				surname, year := parseAuthorYear(group)
				ms = append(ms, Mention{
					RawText:   group,
					SourceURL: strings.TrimSpace(url),
					Surname:   surname,
					Year:      year,
					Line:      line,
					TitleHint: hint,
				})
			}
			b.WriteString(fn(ms))
		} else {
			b.WriteString(text[start:end])
		}

		line += strings.Count(text[start:end], "\n")
		offset = end
	}

	b.WriteString(text[offset:])
	return b.String()
}

// splitGroups splits a bracket's visible text into independent citation
// groups. Semicolons always separate groups. Commas separate groups only
// when both sides carry their own year token ("Smith 2020, Jones 2021");
// otherwise the comma belongs to one author/year phrase ("Smith, 2020").
func splitGroups(visible string) []string {
	var groups []string
	for _, part := range groupSplit.Split(visible, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		groups = append(groups, splitCommaGroups(part)...)
	}
	if len(groups) == 0 {
		groups = []string{strings.TrimSpace(visible)}
	}
	return groups
}

// splitCommaGroups splits on commas when every comma-separated piece has
// its own year; otherwise returns the input unsplit.
func splitCommaGroups(s string) []string {
	pieces := strings.Split(s, ",")
	if len(pieces) < 2 {
		return []string{s}
	}

	var trimmed []string
	for _, p := range pieces {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !yearPattern.MatchString(p) {
			return []string{s}
		}
		trimmed = append(trimmed, p)
	}
	return trimmed
}

// parseAuthorYear parses "Smith, 2020", "Smith et al. 2020", or
// "Smith and Jones, 2020" into a primary surname and year.
// The year is record.YearUnknown when no 4-digit token parses.
func parseAuthorYear(raw string) (surname string, year int) {
	year = record.YearUnknown
	if m := yearPattern.FindString(raw); m != "" {
		if y, err := strconv.Atoi(m); err == nil {
			year = y
		}
	}

	// Author phrase is everything before the year token, or before the
	// first comma when no year parses.
	authorPart := raw
	if idx := yearPattern.FindStringIndex(raw); idx != nil {
		authorPart = raw[:idx[0]]
	} else if idx := strings.Index(raw, ","); idx >= 0 {
		authorPart = raw[:idx]
	}
	authorPart = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(authorPart), ",("))

	// Strip trailing "et al." and secondary authors.
	if idx := strings.Index(strings.ToLower(authorPart), " et al"); idx >= 0 {
		authorPart = authorPart[:idx]
	}
	if idx := strings.Index(strings.ToLower(authorPart), " and "); idx >= 0 {
		authorPart = authorPart[:idx]
	}
	if idx := strings.Index(authorPart, "&"); idx >= 0 {
		authorPart = authorPart[:idx]
	}

	fields := strings.Fields(strings.Trim(authorPart, " ,.&"))
	if len(fields) > 0 {
		surname = fields[len(fields)-1]
	}
	return surname, year
}

// titleHintAfter extracts a quoted or emphasized title immediately
// following the link construct, if present.
func titleHintAfter(rest string) string {
	m := titleHintPattern.FindStringSubmatch(rest)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(m[2])
}
