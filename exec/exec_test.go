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

package exec

import (
	"io"

	"github.com/outlierdb/sqlcsv/row"
	"github.com/outlierdb/sqlcsv/schema"
)

// fakeOp is an in-memory Op used by tests that need a child without
// reading a CSV file.
type fakeOp struct {
	mapping *schema.Mapping
	rows    []row.Tuple
	cursor  int
}

func newFakeOp(columns []string, rows []row.Tuple) *fakeOp {
	return &fakeOp{mapping: schema.New(columns), rows: rows}
}

func (f *fakeOp) Mapping() *schema.Mapping { return f.mapping }

func (f *fakeOp) Next() (row.Tuple, error) {
	if f.cursor >= len(f.rows) {
		return nil, io.EOF
	}
	t := f.rows[f.cursor]
	f.cursor++
	return t, nil
}

func (f *fakeOp) Reset() error {
	f.cursor = 0
	return nil
}

func ints(vals ...int64) row.Tuple {
	t := make(row.Tuple, len(vals))
	for i, v := range vals {
		t[i] = row.Int(v)
	}
	return t
}

func drain(t interface {
	Next() (row.Tuple, error)
}) ([]row.Tuple, error) {
	var out []row.Tuple
	for {
		r, err := t.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, r)
	}
}
