// Copyright (C) 2026 The Authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package xsv

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// CsvChopper reads a CSV-formatted table file (RFC 4180, no header)
// and splits each row into its individual, whitespace-trimmed fields.
// A row that, once read, contains a single empty field is treated as a
// blank line and skipped, matching spec.md §4.2's "one Tuple per
// non-empty line".
type CsvChopper struct {
	r      io.ReadCloser
	cr     *csv.Reader
	path   string
	gzip   bool
	lineNr int
}

// Open opens path for reading. If path ends in ".gz" the reader is
// transparently decompressed with klauspost/compress/gzip, the same
// decoder the teacher repo prefers over the standard library's
// compress/gzip throughout its own ion/xsv/db packages.
func Open(path string) (*CsvChopper, error) {
	c := &CsvChopper{path: path, gzip: strings.HasSuffix(path, ".gz")}
	if err := c.reopen(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *CsvChopper) reopen() error {
	if c.r != nil {
		c.r.Close()
	}
	f, err := os.Open(c.path)
	if err != nil {
		return err
	}
	var r io.Reader = f
	closer := io.Closer(f)
	if c.gzip {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return err
		}
		r = gz
		closer = multiCloser{gz, f}
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	c.r = closer
	c.cr = cr
	c.lineNr = 0
	return nil
}

// GetNext fetches the next non-empty CSV record, trimming surrounding
// whitespace from every field. It returns io.EOF once the file is
// exhausted.
func (c *CsvChopper) GetNext() ([]string, error) {
	for {
		fields, err := c.cr.Read()
		if err != nil {
			return nil, err
		}
		c.lineNr++
		if len(fields) == 1 && strings.TrimSpace(fields[0]) == "" {
			continue
		}
		for i, f := range fields {
			fields[i] = strings.TrimSpace(f)
		}
		return fields, nil
	}
}

// Reset re-opens the underlying file from offset zero, as required by
// Scan.reset().
func (c *CsvChopper) Reset() error {
	return c.reopen()
}

// Close releases the chopper's file handle.
func (c *CsvChopper) Close() error {
	if c.r == nil {
		return nil
	}
	return c.r.Close()
}

type multiCloser struct {
	gz *gzip.Reader
	f  *os.File
}

func (m multiCloser) Close() error {
	gzErr := m.gz.Close()
	fErr := m.f.Close()
	if gzErr != nil {
		return gzErr
	}
	return fErr
}
