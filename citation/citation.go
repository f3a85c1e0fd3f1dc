// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package citation reads and writes tables of citation records.
//
// A citation table has one row per attribution of a citing paper to a
// country: a paper with three authors at two institutions each
// contributes six rows.
package citation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aclements/go-gg/table"
)

// Column names of a citation table.
const (
	ColPublication = "my_publication"
	ColTitle       = "cited_by_title"
	ColAuthor      = "cited_by_author"
	ColInstitution = "cited_by_institution"
	ColCountry     = "cited_by_country"
)

// Columns is the column order of tables written by WriteCSV.
var Columns = []string{ColPublication, ColTitle, ColAuthor, ColInstitution, ColCountry}

// NA fills fields whose value is unknown.
const NA = "N/A"

// ErrMissingColumn is returned when a table lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// A Record is one row of a citation table.
type Record struct {
	Publication string // title of the cited publication
	Title       string // title of the citing paper
	Author      string // citing author
	Institution string // institution of Author
	Country     string // ISO alpha-2 code of Institution, or NA
}

// ReadTable reads a CSV file with a header row into a table whose
// columns are all strings. A UTF-8 byte order mark before the header
// is ignored.
func ReadTable(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("empty CSV file: no header row")
	}
	header := rows[0]
	header[0] = strings.TrimPrefix(header[0], bom)
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	return table.TableFromStrings(header, rows[1:], false), nil
}

// ReadFile is like ReadTable, but reads the named file.
func ReadFile(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Countries returns the values of column col of t, one per citation
// record. It fails with ErrMissingColumn if t has no such column.
func Countries(t *table.Table, col string) ([]string, error) {
	c := t.Column(col)
	if c == nil {
		return nil, fmt.Errorf("%w %q (have %s)", ErrMissingColumn, col, strings.Join(t.Columns(), ", "))
	}
	codes, ok := c.([]string)
	if !ok {
		return nil, fmt.Errorf("column %q is not a string column", col)
	}
	return codes, nil
}

const bom = "\ufeff"

// Table returns recs as a table with the columns of Columns.
func Table(recs []Record) *table.Table {
	cols := make([][]string, len(Columns))
	for i := range cols {
		cols[i] = make([]string, len(recs))
	}
	for i, r := range recs {
		cols[0][i] = r.Publication
		cols[1][i] = r.Title
		cols[2][i] = r.Author
		cols[3][i] = r.Institution
		cols[4][i] = r.Country
	}
	b := new(table.Builder)
	for i, name := range Columns {
		b.Add(name, cols[i])
	}
	return b.Done()
}

// WriteCSV writes recs as CSV with a header row. Empty fields are
// written as NA. The output starts with a UTF-8 byte order mark, which
// spreadsheet programs need to recognize non-ASCII names.
func WriteCSV(w io.Writer, recs []Record) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	na := func(s string) string {
		if s == "" {
			return NA
		}
		return s
	}
	for _, r := range recs {
		row := []string{na(r.Publication), na(r.Title), na(r.Author), na(r.Institution), na(r.Country)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
