package index

import (
	"strings"
	"testing"

	"github.com/bibwire/bibwire/internal/record"
)

func TestBuild_URLIndex(t *testing.T) {
	records := []record.Record{
		{ID: "r1", URL: "https://www.example.com/paper/", Title: "Paper One"},
	}

	idx := Build(records)

	rec, ok := idx.ByURL("https://example.com/paper")
	if !ok {
		t.Fatal("expected URL lookup to hit after normalization")
	}
	if rec.ID != "r1" {
		t.Errorf("expected r1, got %s", rec.ID)
	}
}

func TestBuild_DuplicateURLLastWriteWins(t *testing.T) {
	records := []record.Record{
		{ID: "r1", URL: "https://example.com/paper", Title: "First"},
		{ID: "r2", URL: "https://example.com/paper/", Title: "Second"},
	}

	idx := Build(records)

	rec, ok := idx.ByURL("https://example.com/paper")
	if !ok {
		t.Fatal("expected URL lookup to hit")
	}
	if rec.ID != "r2" {
		t.Errorf("expected last write r2 to win, got %s", rec.ID)
	}
	if len(idx.Warnings) != 1 {
		t.Fatalf("expected 1 duplicate warning, got %d", len(idx.Warnings))
	}
	if !strings.Contains(idx.Warnings[0], "duplicate URL") {
		t.Errorf("unexpected warning text: %s", idx.Warnings[0])
	}
}

func TestBuild_DOIFromMetadataAndURL(t *testing.T) {
	records := []record.Record{
		{ID: "meta", DOI: "10.1234/FROM-Meta"},
		{ID: "url", URL: "https://doi.org/10.5678/from-url"},
	}

	idx := Build(records)

	if rec, ok := idx.ByDOI("10.1234/from-meta"); !ok || rec.ID != "meta" {
		t.Errorf("metadata DOI lookup failed: ok=%v", ok)
	}
	// Lookup accepts unnormalized forms too.
	if rec, ok := idx.ByDOI("https://doi.org/10.1234/from-meta"); !ok || rec.ID != "meta" {
		t.Errorf("unnormalized DOI lookup failed: ok=%v", ok)
	}
	if rec, ok := idx.ByDOI("10.5678/from-url"); !ok || rec.ID != "url" {
		t.Errorf("URL-derived DOI lookup failed: ok=%v", ok)
	}
}

func TestBuild_ISBNChecksumEnforced(t *testing.T) {
	records := []record.Record{
		{ID: "good", ISBN: "1-138-02101-6"},
		{ID: "bad", ISBN: "1138021017"}, // bad checksum, must not index
	}

	idx := Build(records)

	if rec, ok := idx.ByISBN("1138021016"); !ok || rec.ID != "good" {
		t.Errorf("valid ISBN lookup failed: ok=%v", ok)
	}
	if _, ok := idx.ByISBN("1138021017"); ok {
		t.Error("checksum-invalid ISBN must not be indexed")
	}
}

func TestBuild_ArXivIndex(t *testing.T) {
	records := []record.Record{
		{ID: "meta", ArXivID: "2506.02153V1"},
		{ID: "url", URL: "https://arxiv.org/abs/2301.00001"},
	}

	idx := Build(records)

	if rec, ok := idx.ByArXiv("2506.02153v1"); !ok || rec.ID != "meta" {
		t.Errorf("arXiv metadata lookup failed: ok=%v", ok)
	}
	if rec, ok := idx.ByArXiv("2301.00001"); !ok || rec.ID != "url" {
		t.Errorf("arXiv URL-derived lookup failed: ok=%v", ok)
	}
}

func TestBuild_AuthorYearManyValued(t *testing.T) {
	records := []record.Record{
		{ID: "a", Authors: []record.Author{{Last: "Moore"}}, Year: 2025, Title: "Preprint PDF"},
		{ID: "b", Authors: []record.Author{{Last: "Moore"}}, Year: 2025, Title: "Human Alignment Calibration"},
		{ID: "c", Authors: []record.Author{{Last: "Other"}}, Year: 2025},
	}

	idx := Build(records)

	got := idx.ByAuthorYear("moore", 2025)
	if len(got) != 2 {
		t.Fatalf("expected 2 records for (moore, 2025), got %d", len(got))
	}
	// Corpus order preserved.
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("expected corpus order a,b; got %s,%s", got[0].ID, got[1].ID)
	}
	// Case-insensitive surname lookup.
	if len(idx.ByAuthorYear("MOORE", 2025)) != 2 {
		t.Error("surname lookup must be case-insensitive")
	}
}

func TestBuild_Deterministic(t *testing.T) {
	records := []record.Record{
		{ID: "a", URL: "https://example.com/a", DOI: "10.1/a", Authors: []record.Author{{Last: "Smith"}}, Year: 2020},
		{ID: "b", URL: "https://example.com/b", Authors: []record.Author{{Last: "Smith"}}, Year: 2020},
	}

	first := Build(records)
	second := Build(records)

	if first.Len() != second.Len() {
		t.Fatal("index sizes differ across builds")
	}
	ay1 := first.ByAuthorYear("smith", 2020)
	ay2 := second.ByAuthorYear("smith", 2020)
	if len(ay1) != len(ay2) {
		t.Fatal("author/year sets differ across builds")
	}
	for i := range ay1 {
		if ay1[i].ID != ay2[i].ID {
			t.Errorf("author/year order differs at %d", i)
		}
	}
}
