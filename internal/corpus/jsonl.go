// Package corpus loads and persists the bibliographic corpus.
//
// Loaders present the engine with one complete, immutable snapshot per
// run. A load failure is fatal: the engine never matches against a
// partial corpus.
package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/bibwire/bibwire/internal/ident"
	"github.com/bibwire/bibwire/internal/record"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines
// (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// LoadError marks a corpus load failure. Fatal by contract: it is
// propagated unchanged, never downgraded to a partial snapshot.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading corpus %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ReadAll reads the full corpus from a JSONL file, one record per line.
// A missing file is a load failure, not an empty corpus: resolving
// against nothing is never what the caller meant.
func ReadAll(path string) ([]record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	var records []record.Record
	scanner := bufio.NewScanner(f)

	// Increase buffer size for long lines
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}

		var rec record.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("parsing line %d: %w", lineNum, err)}
		}
		if rec.ID == "" {
			rec.ID = fmt.Sprintf("line-%d", lineNum)
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	return records, nil
}

// WriteAll writes all records to a JSONL file, replacing existing content.
func WriteAll(path string, records []record.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating corpus file: %w", err)
	}
	defer f.Close()

	for i, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding record %d: %w", i, err)
		}

		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
		if _, err := f.WriteString("\n"); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}

	return nil
}

// Append adds a record to the end of a JSONL corpus file.
func Append(path string, rec record.Record) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening corpus file for append: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	if _, err := f.WriteString("\n"); err != nil {
		return fmt.Errorf("writing newline: %w", err)
	}

	return nil
}

// FindByDOI searches records by normalized DOI equality. Both sides are
// normalized, so a corpus line storing a resolver URL still matches a
// bare DOI.
func FindByDOI(records []record.Record, doi string) (int, bool) {
	want := ident.NormalizeDOI(doi)
	if want == "" {
		return -1, false
	}
	for i, rec := range records {
		if ident.NormalizeDOI(rec.DOI) == want {
			return i, true
		}
	}
	return -1, false
}

// FindByID searches records by ID.
func FindByID(records []record.Record, id string) (int, bool) {
	for i, rec := range records {
		if rec.ID == id {
			return i, true
		}
	}
	return -1, false
}
