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
	"bufio"
	"io"

	"github.com/outlierdb/sqlcsv/row"
)

// Writer emits one CSV line per Tuple, fields separated by ", " and
// newline-terminated, with no header row (spec.md §6). It is not
// encoding/csv: that package has no ", "-separated mode, and spec.md's
// output format does not quote or escape fields (table data is always
// a signed integer or whitespace-trimmed text with no embedded
// delimiters).
type Writer struct {
	w *bufio.Writer
}

// NewWriter wraps w for buffered tuple-at-a-time output.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteTuple writes one output row.
func (w *Writer) WriteTuple(t row.Tuple) error {
	for i, v := range t {
		if i > 0 {
			if _, err := w.w.WriteString(", "); err != nil {
				return err
			}
		}
		if _, err := w.w.WriteString(v.String()); err != nil {
			return err
		}
	}
	return w.w.WriteByte('\n')
}

// Flush flushes any buffered output; callers must call it after the
// last WriteTuple.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
