// Package citekey assigns stable, human-interpretable citation keys to
// matched records.
//
// A key is lowercase(primary surname) + CamelCased significant title
// words + year, pure ASCII. Collisions between distinct records take
// letter suffixes in first-encounter order; an assigned key is never
// mutated afterward. Given the same corpus and mention order, assignment
// is identical across runs.
package citekey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/bibwire/bibwire/internal/record"
)

// MaxTitleWords caps how many significant title words enter the base key.
const MaxTitleWords = 3

// ErrKeyspaceExhausted is returned when more than 26+26*26 records
// collide on one base key. Should never occur in practice; detected
// rather than silently truncated.
var ErrKeyspaceExhausted = errors.New("citekey: collision suffixes exhausted for base key")

// Key is a record's resolved output key.
type Key struct {
	Key           string `json:"key"`
	Base          string `json:"base"`             // key without the collision suffix
	Suffix        string `json:"suffix,omitempty"` // "", "a".."z", "aa".."zz"
	LowConfidence bool   `json:"low_confidence,omitempty"`
}

// Assigner hands out keys for one run. Not safe for concurrent use; the
// engine is single-threaded by design.
type Assigner struct {
	byRecord map[string]Key  // record ID -> assigned key
	taken    map[string]bool // full keys already emitted
	perBase  map[string]int  // base key -> suffixes handed out
}

// NewAssigner creates an empty per-run assigner.
func NewAssigner() *Assigner {
	return &Assigner{
		byRecord: make(map[string]Key),
		taken:    make(map[string]bool),
		perBase:  make(map[string]int),
	}
}

// Assign returns the key for a record, computing it on first encounter
// and returning the cached key afterward. Distinct records never share a
// key: the first holder of a base key keeps it unsuffixed, later
// colliders get "a", "b", ... then "aa", "ab", ...
func (a *Assigner) Assign(rec record.Record) (Key, error) {
	if key, ok := a.byRecord[rec.ID]; ok {
		return key, nil
	}

	base, lowConfidence := BaseKey(rec)

	// The first holder keeps the base unsuffixed (it occupies the "a"
	// slot); later colliders get "b", "c", ... then "aa", "ab", ...
	// Cross-base clashes (one base equal to another base plus suffix)
	// advance to the next free suffix so no two records share a key.
	n := a.perBase[base]
	for {
		var suffix string
		if n > 0 {
			suffix = letterSuffix(n)
			if suffix == "" {
				return Key{}, fmt.Errorf("%w: %s", ErrKeyspaceExhausted, base)
			}
		}

		full := base + suffix
		if a.taken[full] {
			n++
			continue
		}

		key := Key{
			Key:           full,
			Base:          base,
			Suffix:        suffix,
			LowConfidence: lowConfidence,
		}
		a.byRecord[rec.ID] = key
		a.taken[full] = true
		a.perBase[base] = n + 1
		return key, nil
	}
}

// Assigned returns the key previously assigned to a record, if any.
func (a *Assigner) Assigned(recordID string) (Key, bool) {
	key, ok := a.byRecord[recordID]
	return key, ok
}

// BaseKey computes the un-suffixed candidate key for a record. The
// second return value is true when the record had no usable title and
// the key fell back to surname+year only.
func BaseKey(rec record.Record) (string, bool) {
	surname := keyWord(rec.PrimarySurname())
	if surname == "" {
		surname = "anon"
	}

	year := ""
	if rec.Year != record.YearUnknown {
		year = strconv.Itoa(rec.Year)
	}

	title := significantTitleWords(rec.Title)
	if title == "" {
		return surname + year, true
	}
	return surname + title + year, false
}

// stopwords excluded from significant title words.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true,
	"and": true, "or": true, "nor": true, "but": true,
	"of": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "from": true, "with": true, "by": true, "as": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"its": true, "into": true, "via": true, "using": true,
	"toward": true, "towards": true, "about": true,
}

// significantTitleWords strips stopwords and non-alphanumerics, then
// CamelCases the first MaxTitleWords remaining words.
func significantTitleWords(title string) string {
	var b strings.Builder
	count := 0
	for _, word := range strings.Fields(title) {
		cleaned := keyWord(word)
		if cleaned == "" || stopwords[cleaned] {
			continue
		}
		b.WriteString(strings.ToUpper(cleaned[:1]))
		b.WriteString(cleaned[1:])
		count++
		if count == MaxTitleWords {
			break
		}
	}
	return b.String()
}

// keyWord lowercases a word, transliterates it to ASCII, and drops
// anything that is not a letter or digit.
func keyWord(word string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(word) {
		for _, ascii := range transliterate(r) {
			if (ascii >= 'a' && ascii <= 'z') || (ascii >= '0' && ascii <= '9') {
				b.WriteRune(ascii)
			}
		}
	}
	return b.String()
}

// letterSuffix maps 0->"a", 25->"z", 26->"aa", ... Returns "" when n is
// outside the single- and double-letter range.
func letterSuffix(n int) string {
	if n < 26 {
		return string(rune('a' + n))
	}
	n -= 26
	if n < 26*26 {
		return string(rune('a'+n/26)) + string(rune('a'+n%26))
	}
	return ""
}

// asciiFold maps common non-decomposing Latin letters to ASCII.
var asciiFold = map[rune]string{
	'ß': "ss", 'ø': "o", 'æ': "ae", 'œ': "oe", 'þ': "th", 'ð': "d",
	'đ': "d", 'ł': "l", 'ħ': "h", 'ı': "i", 'ŋ': "ng", 'ŧ': "t",
}

// transliterate folds a rune to its closest ASCII form. Letters with
// diacritics fold to their base letter; runes with no mapping fold to
// nothing and are dropped from keys.
func transliterate(r rune) string {
	if r < 128 {
		return string(r)
	}
	if s, ok := asciiFold[r]; ok {
		return s
	}
	if folded, ok := diacriticBase[r]; ok {
		return string(folded)
	}
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		// No mapping: dropped rather than left as invalid bytes.
		return ""
	}
	return ""
}
