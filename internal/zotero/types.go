package zotero

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bibwire/bibwire/internal/ident"
	"github.com/bibwire/bibwire/internal/record"
)

// Item is one entry in a Zotero API items response.
type Item struct {
	Key  string   `json:"key"`
	Data ItemData `json:"data"`
}

// ItemData carries the item's bibliographic fields.
type ItemData struct {
	Key      string    `json:"key"`
	ItemType string    `json:"itemType"`
	Title    string    `json:"title"`
	Creators []Creator `json:"creators"`
	Date     string    `json:"date"`
	DOI      string    `json:"DOI"`
	ISBN     string    `json:"ISBN"`
	URL      string    `json:"url"`
	Extra    string    `json:"extra"` // free text; arXiv IDs commonly live here
	Venue    string    `json:"publicationTitle"`
}

// Creator is one author/editor entry.
type Creator struct {
	CreatorType string `json:"creatorType"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Name        string `json:"name"` // single-field form for institutional authors
}

var yearRe = regexp.MustCompile(`\b(\d{4})\b`)

// toRecord converts an item to a corpus record. Attachment and note
// items carry no bibliographic identity and convert to nothing.
func (it Item) toRecord() (record.Record, bool) {
	d := it.Data
	switch d.ItemType {
	case "attachment", "note", "annotation":
		return record.Record{}, false
	}

	id := it.Key
	if id == "" {
		id = d.Key
	}
	if id == "" {
		return record.Record{}, false
	}

	rec := record.Record{
		ID:       id,
		DOI:      ident.NormalizeDOI(d.DOI),
		URL:      d.URL,
		Title:    d.Title,
		Venue:    d.Venue,
		ItemType: itemType(d.ItemType),
		Source:   record.ImportSource{Type: "zotero", ID: id},
	}

	if d.ISBN != "" {
		isbn := strings.ToUpper(strings.NewReplacer("-", "", " ", "").Replace(d.ISBN))
		if ident.ValidISBN(isbn) {
			rec.ISBN = isbn
		}
	}

	// arXiv IDs live in extra ("arXiv:2301.00001") or in the URL.
	if arxiv := ident.ExtractArXivID(d.Extra); arxiv != "" {
		rec.ArXivID = arxiv
	} else if arxiv := ident.ExtractArXivID(d.URL); arxiv != "" {
		rec.ArXivID = arxiv
	}

	if m := yearRe.FindString(d.Date); m != "" {
		if y, err := strconv.Atoi(m); err == nil {
			rec.Year = y
		}
	}

	for _, cr := range d.Creators {
		if cr.CreatorType != "" && cr.CreatorType != "author" {
			continue
		}
		author := record.Author{First: cr.FirstName, Last: cr.LastName}
		if author.Last == "" && cr.Name != "" {
			author.Last = cr.Name
		}
		if author.Last != "" {
			rec.Authors = append(rec.Authors, author)
		}
	}

	return rec, true
}

// itemType maps Zotero item types onto the resolver's coarser enum.
func itemType(zoteroType string) record.ItemType {
	switch zoteroType {
	case "journalArticle", "conferencePaper", "magazineArticle":
		return record.TypeArticle
	case "book", "bookSection":
		return record.TypeBook
	case "webpage", "blogPost", "forumPost":
		return record.TypeWebpage
	case "preprint", "manuscript":
		return record.TypePreprint
	default:
		return record.TypeOther
	}
}
