package ident

import (
	"regexp"
	"strings"
)

// ISBN candidates appear after a /dp/, /isbn/, or isbn: marker.
// Hyphens and spaces inside the digit run are tolerated.
var isbnPattern = regexp.MustCompile(`(?i)(?:/dp/|/isbn/|isbn:\s*)([0-9][0-9Xx \-]{8,16})`)

// ExtractISBN extracts a validated ISBN-10 or ISBN-13 from a URL or free
// text. The checksum is verified; candidates that fail validation yield ""
// rather than a bad identifier.
func ExtractISBN(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	for _, match := range isbnPattern.FindAllStringSubmatch(s, -1) {
		candidate := normalizeISBN(match[1])
		if ValidISBN(candidate) {
			return candidate
		}
	}

	return ""
}

// ValidISBN reports whether the (already normalized) string is a
// checksum-valid ISBN-10 or ISBN-13.
func ValidISBN(isbn string) bool {
	switch len(isbn) {
	case 10:
		return validISBN10(isbn)
	case 13:
		return validISBN13(isbn)
	default:
		return false
	}
}

// normalizeISBN strips hyphens and spaces and uppercases the X check digit.
func normalizeISBN(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'x' || r == 'X':
			b.WriteRune('X')
		}
	}
	return b.String()
}

// validISBN10 checks the mod-11 checksum. The check digit may be X (=10).
func validISBN10(isbn string) bool {
	sum := 0
	for i := 0; i < 10; i++ {
		c := isbn[i]
		var digit int
		switch {
		case c >= '0' && c <= '9':
			digit = int(c - '0')
		case c == 'X' && i == 9:
			digit = 10
		default:
			return false
		}
		sum += digit * (10 - i)
	}
	return sum%11 == 0
}

// validISBN13 checks the EAN-13 mod-10 checksum.
func validISBN13(isbn string) bool {
	sum := 0
	for i := 0; i < 13; i++ {
		c := isbn[i]
		if c < '0' || c > '9' {
			return false
		}
		digit := int(c - '0')
		if i%2 == 1 {
			digit *= 3
		}
		sum += digit
	}
	return sum%10 == 0
}
