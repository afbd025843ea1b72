package pdf

import (
	"testing"

	"github.com/bibwire/bibwire/internal/record"
)

func TestEnrichRecords_SkipsRecordsWithoutPDF(t *testing.T) {
	records := []record.Record{
		{ID: "no-pdf", Title: "No File"},
		{ID: "complete", PDFPath: "x.pdf", Title: "Done", DOI: "10.1/a", ArXivID: "2301.00001"},
	}

	results := EnrichRecords(records, nil)
	if len(results) != 0 {
		t.Errorf("expected no scans, got %d results", len(results))
	}
}

func TestEnrichRecords_MissingTitleTriggersScan(t *testing.T) {
	// Both identifiers present but no title: the record still gets a
	// first-page scan, so the key assigner has a title to work with.
	records := []record.Record{
		{ID: "untitled", PDFPath: "does-not-exist.pdf", DOI: "10.1/a", ArXivID: "2301.00001"},
	}

	results := EnrichRecords(records, nil)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].RecordID != "untitled" || results[0].Err == "" {
		t.Errorf("expected an error result for missing file, got %+v", results[0])
	}
	if records[0].Title != "" {
		t.Errorf("title fabricated from failed scan: %q", records[0].Title)
	}
}

func TestEnrichRecords_MissingFileReported(t *testing.T) {
	records := []record.Record{
		{ID: "gone", PDFPath: "does-not-exist.pdf"},
	}

	results := EnrichRecords(records, nil)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].RecordID != "gone" || results[0].Err == "" {
		t.Errorf("expected an error result for missing file, got %+v", results[0])
	}
	// Failed enrichment must not fabricate identifiers.
	if records[0].DOI != "" || records[0].ArXivID != "" {
		t.Errorf("record mutated despite scan failure: %+v", records[0])
	}
}

func TestEnrichRecords_PathResolver(t *testing.T) {
	var resolved string
	resolver := func(p string) string {
		resolved = "/pdf-root/" + p
		return resolved
	}

	records := []record.Record{{ID: "r", PDFPath: "paper.pdf"}}
	EnrichRecords(records, resolver)

	if resolved != "/pdf-root/paper.pdf" {
		t.Errorf("resolver not applied: %q", resolved)
	}
}

func TestIsHeaderLine(t *testing.T) {
	headers := []string{
		"Journal of Theoretical Biology",
		"Volume 12, Issue 3",
		"Copyright 2020 The Authors",
	}
	for _, line := range headers {
		if !isHeaderLine(line) {
			t.Errorf("expected header: %q", line)
		}
	}

	if isHeaderLine("A Novel Approach to Sequence Alignment") {
		t.Error("title misclassified as header")
	}
}
