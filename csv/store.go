// Package csv provides a CSV file implementation of foerder.RecordStore.
//
// The header is the union of all record columns in first-seen order.
// Saves replace the whole file atomically: rows are written to a
// temporary file in the same directory, which is then renamed over the
// target.
package csv

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Lechtr/foerder"
)

// DefaultPath is the default output file.
const DefaultPath = "foerderungen_list.csv"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Ensure RecordStore implements foerder.RecordStore at compile time.
var _ foerder.RecordStore = (*RecordStore)(nil)

// RecordStore persists records to a single CSV file.
type RecordStore struct {
	path string
}

// NewRecordStore creates a store backed by the file at path.
func NewRecordStore(path string) *RecordStore {
	return &RecordStore{path: path}
}

// Path returns the backing file path.
func (s *RecordStore) Path() string {
	return s.path
}

// Exists reports whether the backing file exists.
func (s *RecordStore) Exists(ctx context.Context) (bool, error) {
	info, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if info.IsDir() {
		return false, foerder.Errorf(foerder.EINVALID, "%s is a directory", s.path)
	}
	return true, nil
}

// Load reads every row. Every header column is set on every record, empty
// cells included, so the column union survives a round trip.
func (s *RecordStore) Load(ctx context.Context) ([]*foerder.Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, foerder.Errorf(foerder.ENOTFOUND, "record store %s not found", s.path)
	}
	if err != nil {
		return nil, err
	}
	return Decode(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
}

// Save replaces the file contents with records.
func (s *RecordStore) Save(ctx context.Context, records []*foerder.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := Encode(tmp, records); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Encode writes records as CSV with a header row. Cells for columns a
// record lacks are left empty.
func Encode(w io.Writer, records []*foerder.Record) error {
	cols := foerder.Columns(records)
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}

	row := make([]string, len(cols))
	for _, r := range records {
		for i, c := range cols {
			row[i] = r.Value(c)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Decode reads CSV with a header row into records. An empty input yields
// no records.
func Decode(r io.Reader) ([]*foerder.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, foerder.Errorf(foerder.EINVALID, "reading CSV header: %v", err)
	}

	var records []*foerder.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, foerder.Errorf(foerder.EINVALID, "reading CSV row %d: %v", len(records)+1, err)
		}
		if len(row) > len(header) {
			return nil, foerder.Errorf(foerder.EINVALID, "CSV row %d has %d fields, header has %d", len(records)+1, len(row), len(header))
		}

		rec := foerder.NewRecord()
		for i, col := range header {
			var v string
			if i < len(row) {
				v = row[i]
			}
			rec.Set(col, v)
		}
		records = append(records, rec)
	}
	return records, nil
}
