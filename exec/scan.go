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
	"github.com/outlierdb/sqlcsv/catalog"
	"github.com/outlierdb/sqlcsv/row"
	"github.com/outlierdb/sqlcsv/schema"
	"github.com/outlierdb/sqlcsv/xsv"
)

// Scan streams tuples from one table's CSV file, one Tuple per
// non-empty line, in file order. Its output mapping is
// {Table.Column -> i} for the Catalog's declared column order; Scan
// performs no filtering and no column pruning.
type Scan struct {
	table   string
	chopper *xsv.CsvChopper
	mapping *schema.Mapping
}

// NewScan opens file (the path the Catalog resolved for table) and
// builds the scan's output mapping from columns. Construction fails
// with a catalog-phase error if the file cannot be opened.
func NewScan(table, file string, columns []string) (*Scan, error) {
	chopper, err := xsv.Open(file)
	if err != nil {
		return nil, &catalog.Error{Table: table, Msg: err.Error()}
	}
	qualified := make([]string, len(columns))
	for i, c := range columns {
		qualified[i] = table + "." + c
	}
	return &Scan{
		table:   table,
		chopper: chopper,
		mapping: schema.New(qualified),
	}, nil
}

func (s *Scan) Mapping() *schema.Mapping { return s.mapping }

func (s *Scan) Next() (row.Tuple, error) {
	fields, err := s.chopper.GetNext()
	if err != nil {
		return nil, err
	}
	t := make(row.Tuple, len(fields))
	for i, f := range fields {
		t[i] = row.Text(f)
	}
	return t, nil
}

// Reset re-opens the file from offset zero.
func (s *Scan) Reset() error {
	return s.chopper.Reset()
}

func (s *Scan) Explain() map[string]any {
	return map[string]any{
		"op":      "Scan",
		"table":   s.table,
		"columns": s.mapping.Columns(),
	}
}
