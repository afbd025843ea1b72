package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/bibwire/bibwire/internal/citekey"
	"github.com/bibwire/bibwire/internal/match"
	"github.com/bibwire/bibwire/internal/mention"
	"github.com/bibwire/bibwire/internal/record"
)

func TestReport_DocumentOrderPreserved(t *testing.T) {
	r := New()
	r.AddMatched(mention.Mention{RawText: "first"}, record.Record{ID: "a"}, match.StrategyURL, citekey.Key{Key: "a2020"})
	r.AddUnmatched(mention.Mention{RawText: "second"}, "no record")
	r.AddAmbiguous(mention.Mention{RawText: "third"}, []record.Record{{ID: "x"}, {ID: "y"}})

	entries := r.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	wantRaw := []string{"first", "second", "third"}
	for i, e := range entries {
		if e.Mention.RawText != wantRaw[i] {
			t.Errorf("entry %d out of order: got %q", i, e.Mention.RawText)
		}
	}
}

func TestReport_Summary(t *testing.T) {
	r := New()
	rec := record.Record{ID: "a"}
	r.AddMatched(mention.Mention{}, rec, match.StrategyDOI, citekey.Key{Key: "a2020"})
	r.AddMatched(mention.Mention{}, rec, match.StrategyDOI, citekey.Key{Key: "a2020"}) // same record cited twice
	r.AddUnmatched(mention.Mention{}, "no record")
	r.AddAmbiguous(mention.Mention{}, []record.Record{{ID: "x"}, {ID: "y"}})

	s := r.Summary()
	if s.Mentions != 4 {
		t.Errorf("Mentions = %d, want 4", s.Mentions)
	}
	if s.Matched != 2 {
		t.Errorf("Matched = %d, want 2", s.Matched)
	}
	if s.Unmatched != 1 || s.Ambiguous != 1 {
		t.Errorf("Unmatched/Ambiguous = %d/%d, want 1/1", s.Unmatched, s.Ambiguous)
	}
	if s.KeysAssigned != 1 {
		t.Errorf("KeysAssigned = %d, want 1 (one distinct record)", s.KeysAssigned)
	}
}

func TestReport_LowConfidenceCountedOncePerRecord(t *testing.T) {
	r := New()
	rec := record.Record{ID: "a"}
	key := citekey.Key{Key: "smith2020", LowConfidence: true}
	r.AddMatched(mention.Mention{}, rec, match.StrategyFuzzy, key)
	r.AddMatched(mention.Mention{}, rec, match.StrategyFuzzy, key)

	if s := r.Summary(); s.LowConfidenceKeys != 1 {
		t.Errorf("LowConfidenceKeys = %d, want 1", s.LowConfidenceKeys)
	}
}

func TestReport_FailedEntriesOmitKeyAndRecordJSON(t *testing.T) {
	r := New()
	r.AddUnmatched(mention.Mention{RawText: "ghost"}, "no record")
	r.AddAmbiguous(mention.Mention{RawText: "twins"}, []record.Record{{ID: "x"}, {ID: "y"}})

	data, err := json.Marshal(r.Entries())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out := string(data)
	if strings.Contains(out, `"key"`) || strings.Contains(out, `"record"`) {
		t.Errorf("failed entries serialized empty key/record objects: %s", out)
	}

	r.AddMatched(mention.Mention{}, record.Record{ID: "a"}, match.StrategyURL, citekey.Key{Key: "a2020"})
	data, err = json.Marshal(r.Entries())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"key"`) {
		t.Error("matched entry lost its key in JSON")
	}
}

func TestReport_Clean(t *testing.T) {
	r := New()
	r.AddMatched(mention.Mention{}, record.Record{ID: "a"}, match.StrategyURL, citekey.Key{Key: "k"})
	if !r.Clean() {
		t.Error("all-matched report must be clean")
	}

	r.AddUnmatched(mention.Mention{}, "nope")
	if r.Clean() {
		t.Error("report with unmatched entry must not be clean")
	}
}

func TestReport_MatchedRecordsDeduplicated(t *testing.T) {
	r := New()
	recA := record.Record{ID: "a", Title: "First"}
	recB := record.Record{ID: "b", Title: "Second"}
	r.AddMatched(mention.Mention{}, recA, match.StrategyURL, citekey.Key{Key: "ka"})
	r.AddMatched(mention.Mention{}, recB, match.StrategyDOI, citekey.Key{Key: "kb"})
	r.AddMatched(mention.Mention{}, recA, match.StrategyURL, citekey.Key{Key: "ka"})
	r.AddUnmatched(mention.Mention{RawText: "ghost"}, "no record")

	matched := r.MatchedRecords()
	if len(matched) != 2 {
		t.Fatalf("expected 2 distinct records, got %d", len(matched))
	}
	if matched[0].Record.ID != "a" || matched[1].Record.ID != "b" {
		t.Errorf("first-mention order broken: %s, %s", matched[0].Record.ID, matched[1].Record.ID)
	}
	// Unmatched mentions never surface in the bibliography set.
	for _, m := range matched {
		if m.Key.Key == "" {
			t.Errorf("record %s emitted without a key", m.Record.ID)
		}
	}
}
