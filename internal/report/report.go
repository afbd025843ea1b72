// Package report aggregates per-mention resolution outcomes.
//
// The report is the audit trail for "why does citation X render the way
// it does": entries are appended in document order and never mutated.
package report

import (
	"github.com/bibwire/bibwire/internal/citekey"
	"github.com/bibwire/bibwire/internal/match"
	"github.com/bibwire/bibwire/internal/mention"
	"github.com/bibwire/bibwire/internal/record"
)

// Entry is the outcome for one mention.
type Entry struct {
	Mention mention.Mention `json:"mention"`
	Status  match.Status    `json:"status"`

	// Matched outcomes. Pointers so unmatched and ambiguous entries
	// omit them from the JSON report entirely.
	Key      *citekey.Key   `json:"key,omitempty"`
	Record   *record.Record `json:"record,omitempty"`
	Strategy match.Strategy `json:"strategy,omitempty"`

	// Ambiguous outcomes
	Candidates []record.Record `json:"candidates,omitempty"`

	// Unmatched outcomes
	Reason string `json:"reason,omitempty"`
}

// Summary holds the aggregate counts for a run.
type Summary struct {
	Mentions  int `json:"mentions"`
	Matched   int `json:"matched"`
	Ambiguous int `json:"ambiguous"`
	Unmatched int `json:"unmatched"`

	// Records that received a key in this run.
	KeysAssigned int `json:"keys_assigned"`

	// Matched records whose key fell back to surname+year only.
	LowConfidenceKeys int `json:"low_confidence_keys"`
}

// Report collects outcomes for one resolution run.
type Report struct {
	entries []Entry

	// Index warnings surfaced alongside the outcomes.
	Warnings []string `json:"warnings,omitempty"`

	keysAssigned map[string]bool // record IDs that got a key
}

// New creates an empty report.
func New() *Report {
	return &Report{keysAssigned: make(map[string]bool)}
}

// AddMatched appends a matched outcome with its assigned key.
func (r *Report) AddMatched(m mention.Mention, rec record.Record, strategy match.Strategy, key citekey.Key) {
	r.entries = append(r.entries, Entry{
		Mention:  m,
		Status:   match.StatusMatched,
		Key:      &key,
		Record:   &rec,
		Strategy: strategy,
	})
	r.keysAssigned[rec.ID] = true
}

// AddAmbiguous appends an ambiguous outcome with the full tied set.
func (r *Report) AddAmbiguous(m mention.Mention, candidates []record.Record) {
	r.entries = append(r.entries, Entry{
		Mention:    m,
		Status:     match.StatusAmbiguous,
		Candidates: candidates,
	})
}

// AddUnmatched appends an unmatched outcome with its reason.
func (r *Report) AddUnmatched(m mention.Mention, reason string) {
	r.entries = append(r.entries, Entry{
		Mention: m,
		Status:  match.StatusUnmatched,
		Reason:  reason,
	})
}

// Entries returns the outcomes in document order. The returned slice is
// the report's own storage; callers must not modify it.
func (r *Report) Entries() []Entry {
	return r.entries
}

// Summary computes the aggregate counts.
func (r *Report) Summary() Summary {
	s := Summary{Mentions: len(r.entries), KeysAssigned: len(r.keysAssigned)}
	lowConfSeen := make(map[string]bool)
	for _, e := range r.entries {
		switch e.Status {
		case match.StatusMatched:
			s.Matched++
			if e.Key.LowConfidence && !lowConfSeen[e.Record.ID] {
				lowConfSeen[e.Record.ID] = true
				s.LowConfidenceKeys++
			}
		case match.StatusAmbiguous:
			s.Ambiguous++
		case match.StatusUnmatched:
			s.Unmatched++
		}
	}
	return s
}

// Clean reports whether the run had no soft failures. Strict mode exits
// nonzero unless this holds.
func (r *Report) Clean() bool {
	for _, e := range r.entries {
		if e.Status != match.StatusMatched {
			return false
		}
	}
	return true
}

// MatchedRecords returns the distinct matched records in first-mention
// order, paired with their keys. This is the set emitted to the
// bibliography; unmatched mentions never appear in it.
func (r *Report) MatchedRecords() []MatchedRecord {
	seen := make(map[string]bool)
	var out []MatchedRecord
	for _, e := range r.entries {
		if e.Status != match.StatusMatched || seen[e.Record.ID] {
			continue
		}
		seen[e.Record.ID] = true
		out = append(out, MatchedRecord{Record: *e.Record, Key: *e.Key})
	}
	return out
}

// MatchedRecord pairs a record with its assigned key.
type MatchedRecord struct {
	Record record.Record `json:"record"`
	Key    citekey.Key   `json:"key"`
}
