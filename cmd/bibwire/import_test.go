package main

import (
	"testing"

	"github.com/bibwire/bibwire/internal/record"
)

func TestClassifyImport(t *testing.T) {
	existing := []record.Record{
		{ID: "rec1", DOI: "10.1234/abc", Title: "Paper One"},
		{ID: "rec2", DOI: "", Title: "Paper Two (no DOI)"},
		{ID: "rec3", DOI: "10.5678/xyz", Title: "Paper Three"},
	}

	tests := []struct {
		name      string
		incoming  record.Record
		wantFound bool
		wantIdx   int
	}{
		{
			name:      "DOI match wins",
			incoming:  record.Record{ID: "new-id", DOI: "10.1234/abc", Title: "Updated Paper One"},
			wantFound: true,
			wantIdx:   0,
		},
		{
			name:      "ID match without DOI",
			incoming:  record.Record{ID: "rec2", Title: "Updated Paper Two"},
			wantFound: true,
			wantIdx:   1,
		},
		{
			name:      "DOI match beats ID match",
			incoming:  record.Record{ID: "rec1", DOI: "10.5678/xyz", Title: "Matches rec3 by DOI"},
			wantFound: true,
			wantIdx:   2,
		},
		{
			name:      "ID match when DOI is new",
			incoming:  record.Record{ID: "rec2", DOI: "10.9999/new", Title: "New DOI for existing ID"},
			wantFound: true,
			wantIdx:   1,
		},
		{
			name:      "no match",
			incoming:  record.Record{ID: "brand-new", DOI: "10.9999/brand-new", Title: "Brand New Paper"},
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, found := classifyImport(existing, tt.incoming)
			if found != tt.wantFound {
				t.Fatalf("found = %v, want %v", found, tt.wantFound)
			}
			if found && idx != tt.wantIdx {
				t.Errorf("idx = %d, want %d", idx, tt.wantIdx)
			}
		})
	}
}

func TestMergeRecords(t *testing.T) {
	existing := record.Record{
		ID:      "rec1",
		DOI:     "10.1234/abc",
		ISBN:    "9780306406157",
		URL:     "https://example.com/old",
		Title:   "Old Title",
		Year:    2019,
		PDFPath: "papers/rec1.pdf",
	}
	incoming := record.Record{
		ID:    "other-id",
		DOI:   "10.1234/abc",
		Title: "New Title",
		Year:  2020,
	}

	merged := mergeRecords(existing, incoming)

	if merged.ID != "rec1" {
		t.Errorf("ID must never change on update, got %q", merged.ID)
	}
	if merged.Title != "New Title" {
		t.Errorf("Title = %q, want incoming value", merged.Title)
	}
	if merged.Year != 2020 {
		t.Errorf("Year = %d, want incoming value", merged.Year)
	}
	if merged.ISBN != "9780306406157" {
		t.Errorf("ISBN = %q, want existing value preserved", merged.ISBN)
	}
	if merged.URL != "https://example.com/old" {
		t.Errorf("URL = %q, want existing value preserved", merged.URL)
	}
	if merged.PDFPath != "papers/rec1.pdf" {
		t.Errorf("PDFPath = %q, want existing value preserved", merged.PDFPath)
	}
}

func TestMergeRecords_UnknownYearKeepsExisting(t *testing.T) {
	existing := record.Record{ID: "rec1", Year: 2015}
	incoming := record.Record{ID: "rec1", Year: record.YearUnknown, Title: "T"}

	if got := mergeRecords(existing, incoming).Year; got != 2015 {
		t.Errorf("Year = %d, want 2015", got)
	}
}
