package corpus

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/bibwire/bibwire/internal/record"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite corpus cache.
type DB struct {
	db *sql.DB
}

// selectRecordFields is the standard field list for SELECT queries.
const selectRecordFields = `id, doi, isbn, arxiv_id, url, title,
	authors_json, pub_year, venue, item_type, pdf_path, source_type, source_id`

// OpenDB opens or creates a SQLite corpus cache at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			doi TEXT,
			isbn TEXT,
			arxiv_id TEXT,
			url TEXT,
			title TEXT NOT NULL,
			authors_json TEXT NOT NULL,
			pub_year INTEGER NOT NULL,
			venue TEXT,
			item_type TEXT,
			pdf_path TEXT,
			source_type TEXT,
			source_id TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_records_doi ON records(doi) WHERE doi IS NOT NULL AND doi != '';
		CREATE INDEX IF NOT EXISTS idx_records_arxiv ON records(arxiv_id) WHERE arxiv_id IS NOT NULL AND arxiv_id != '';
		CREATE INDEX IF NOT EXISTS idx_records_isbn ON records(isbn) WHERE isbn IS NOT NULL AND isbn != '';
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSONL clears the cache and repopulates it from a JSONL
// corpus file. Returns the number of records written.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	records, err := ReadAll(jsonlPath)
	if err != nil {
		return 0, err
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM records"); err != nil {
		return 0, fmt.Errorf("clearing records table: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO records (` + selectRecordFields + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		authorsJSON, err := json.Marshal(rec.Authors)
		if err != nil {
			return 0, fmt.Errorf("encoding authors for %s: %w", rec.ID, err)
		}
		if _, err := stmt.Exec(
			rec.ID, rec.DOI, rec.ISBN, rec.ArXivID, rec.URL, rec.Title,
			string(authorsJSON), rec.Year, rec.Venue, string(rec.ItemType),
			rec.PDFPath, rec.Source.Type, rec.Source.ID,
		); err != nil {
			return 0, fmt.Errorf("inserting record %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}

	return len(records), nil
}

// LoadAll reads the complete corpus snapshot from the cache, ordered by
// record ID for a stable snapshot order.
func (d *DB) LoadAll() ([]record.Record, error) {
	rows, err := d.db.Query(`SELECT ` + selectRecordFields + ` FROM records ORDER BY id`)
	if err != nil {
		return nil, &LoadError{Path: "sqlite", Err: err}
	}
	defer rows.Close()

	var records []record.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, &LoadError{Path: "sqlite", Err: err}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &LoadError{Path: "sqlite", Err: err}
	}

	return records, nil
}

// Count returns the number of records in the cache.
func (d *DB) Count() (int, error) {
	var n int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

// GetByDOI fetches a single record by DOI.
func (d *DB) GetByDOI(doi string) (record.Record, bool, error) {
	row := d.db.QueryRow(`SELECT `+selectRecordFields+` FROM records WHERE doi = ?`, doi)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return record.Record{}, false, nil
	}
	if err != nil {
		return record.Record{}, false, fmt.Errorf("querying by DOI: %w", err)
	}
	return rec, true, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanRecord.
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord scans one record row.
func scanRecord(s scanner) (record.Record, error) {
	var rec record.Record
	var authorsJSON, itemType string
	if err := s.Scan(
		&rec.ID, &rec.DOI, &rec.ISBN, &rec.ArXivID, &rec.URL, &rec.Title,
		&authorsJSON, &rec.Year, &rec.Venue, &itemType,
		&rec.PDFPath, &rec.Source.Type, &rec.Source.ID,
	); err != nil {
		return record.Record{}, err
	}
	if err := json.Unmarshal([]byte(authorsJSON), &rec.Authors); err != nil {
		return record.Record{}, fmt.Errorf("decoding authors for %s: %w", rec.ID, err)
	}
	rec.ItemType = record.ParseItemType(itemType)
	return rec, nil
}
