package zotero

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/bibwire/bibwire/internal/record"
)

func itemJSON(key, title, date string) Item {
	return Item{
		Key: key,
		Data: ItemData{
			Key:      key,
			ItemType: "journalArticle",
			Title:    title,
			Date:     date,
			Creators: []Creator{{CreatorType: "author", FirstName: "Ann", LastName: "Smith"}},
		},
	}
}

func TestFetchAll_Paginated(t *testing.T) {
	// 150 items across two pages.
	var all []Item
	for i := 0; i < 150; i++ {
		all = append(all, itemJSON(fmt.Sprintf("KEY%03d", i), fmt.Sprintf("Paper %d", i), "2020"))
	}

	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		start, _ := strconv.Atoi(r.URL.Query().Get("start"))
		end := start + PageSize
		if end > len(all) {
			end = len(all)
		}
		w.Header().Set("Total-Results", strconv.Itoa(len(all)))
		json.NewEncoder(w).Encode(all[start:end])
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithAPIKey("test-key"))
	records, err := client.FetchAll(context.Background(), "12345")
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	if len(records) != 150 {
		t.Errorf("expected 150 records, got %d", len(records))
	}
	if requests != 2 {
		t.Errorf("expected 2 page requests, got %d", requests)
	}
	if records[0].ID != "KEY000" || records[0].Year != 2020 {
		t.Errorf("first record malformed: %+v", records[0])
	}
}

func TestFetchAll_ServerErrorFailsWholeFetch(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 2 {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Total-Results", "150")
		var page []Item
		for i := 0; i < PageSize; i++ {
			page = append(page, itemJSON(fmt.Sprintf("K%d", i), "T", "2020"))
		}
		json.NewEncoder(w).Encode(page)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.FetchAll(context.Background(), "12345")
	if err == nil {
		t.Fatal("expected error when a page fails; partial snapshots are forbidden")
	}
}

func TestFetchAll_APIKeyHeader(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Zotero-API-Key")
		w.Header().Set("Total-Results", "0")
		json.NewEncoder(w).Encode([]Item{})
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithAPIKey("secret"))
	if _, err := client.FetchAll(context.Background(), "12345"); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if gotKey != "secret" {
		t.Errorf("API key header = %q, want secret", gotKey)
	}
}

func TestToRecord(t *testing.T) {
	item := Item{
		Key: "ABCD1234",
		Data: ItemData{
			ItemType: "journalArticle",
			Title:    "Example Work",
			Date:     "2020-06-01",
			DOI:      "https://doi.org/10.1234/Example",
			ISBN:     "978-0-306-40615-7",
			URL:      "https://example.com/paper",
			Extra:    "arXiv:2301.00001",
			Creators: []Creator{
				{CreatorType: "author", FirstName: "Ann", LastName: "Smith"},
				{CreatorType: "editor", FirstName: "Ed", LastName: "Itor"},
			},
		},
	}

	rec, ok := item.toRecord()
	if !ok {
		t.Fatal("expected conversion to succeed")
	}
	if rec.DOI != "10.1234/example" {
		t.Errorf("DOI not normalized: %q", rec.DOI)
	}
	if rec.ISBN != "9780306406157" {
		t.Errorf("ISBN not normalized: %q", rec.ISBN)
	}
	if rec.ArXivID != "2301.00001" {
		t.Errorf("arXiv ID not extracted from extra: %q", rec.ArXivID)
	}
	if rec.Year != 2020 {
		t.Errorf("year = %d, want 2020", rec.Year)
	}
	if len(rec.Authors) != 1 || rec.Authors[0].Last != "Smith" {
		t.Errorf("editors must be excluded: %+v", rec.Authors)
	}
	if rec.ItemType != record.TypeArticle {
		t.Errorf("item type = %s", rec.ItemType)
	}
	if rec.Source.Type != "zotero" {
		t.Errorf("source type = %s", rec.Source.Type)
	}
}

func TestToRecord_AttachmentsSkipped(t *testing.T) {
	item := Item{Key: "X", Data: ItemData{ItemType: "attachment", Title: "paper.pdf"}}
	if _, ok := item.toRecord(); ok {
		t.Error("attachments must not become records")
	}
}

func TestToRecord_BadISBNDropped(t *testing.T) {
	item := Item{Key: "X", Data: ItemData{ItemType: "book", Title: "B", ISBN: "1138021017"}}
	rec, ok := item.toRecord()
	if !ok {
		t.Fatal("expected record")
	}
	if rec.ISBN != "" {
		t.Errorf("checksum-invalid ISBN kept: %q", rec.ISBN)
	}
}
