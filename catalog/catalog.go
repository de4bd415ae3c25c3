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

// Package catalog maps table names to the file and schema that back
// them. It is created once at query start from a database directory
// and is read-only thereafter; there is no teardown beyond process
// exit (spec: "no hidden global state" — the Catalog is an explicitly
// constructed value threaded into the planner).
package catalog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// Error is returned when a table's file or schema line cannot be
// found; it is always a plan-phase error.
type Error struct {
	Table string
	Msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("catalog: table %q: %s", e.Table, e.Msg)
}

type table struct {
	file    string
	columns []string
}

// Catalog resolves table names to an on-disk file path and an ordered
// column list, per the <db>/schema.txt layout fixed by spec.md §6.
type Catalog struct {
	dir    string
	tables map[string]table
}

// Load reads <dir>/schema.txt and builds a Catalog. It does not check
// that each table's data file exists; that check happens lazily in
// Resolve, at the point each Scan operator is constructed, matching
// the teacher CLI's pattern of resolving inputs on demand rather than
// eagerly validating an entire database up front.
func Load(dir string) (*Catalog, error) {
	f, err := os.Open(filepath.Join(dir, "schema.txt"))
	if err != nil {
		return nil, &Error{Msg: err.Error()}
	}
	defer f.Close()

	c := &Catalog{dir: dir, tables: make(map[string]table)}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := splitWhitespace(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, &Error{Table: fields[0], Msg: "schema.txt line declares no columns"}
		}
		name := fields[0]
		if _, dup := c.tables[name]; dup {
			return nil, &Error{Table: name, Msg: "duplicate table in schema.txt"}
		}
		c.tables[name] = table{
			file:    filepath.Join(dir, "data", name+".csv"),
			columns: append([]string(nil), fields[1:]...),
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &Error{Msg: err.Error()}
	}
	return c, nil
}

func splitWhitespace(line string) []string {
	var out []string
	start := -1
	for i, r := range line {
		if r == ' ' || r == '\t' {
			if start >= 0 {
				out = append(out, line[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, line[start:])
	}
	return out
}

// Resolve returns the data file path and ordered column list for
// table, or a catalog Error if the table is unknown or its backing
// file is missing. A ".csv.gz" file is accepted in place of ".csv";
// see exec.Scan for the transparent decompression.
func (c *Catalog) Resolve(tableName string) (file string, columns []string, err error) {
	t, ok := c.tables[tableName]
	if !ok {
		return "", nil, &Error{Table: tableName, Msg: "not declared in schema.txt"}
	}
	if _, statErr := os.Stat(t.file); statErr == nil {
		return t.file, t.columns, nil
	}
	gz := t.file + ".gz"
	if _, statErr := os.Stat(gz); statErr == nil {
		return gz, t.columns, nil
	}
	return "", nil, &Error{Table: tableName, Msg: "data file not found: " + t.file}
}

// Tables returns the declared table names, for diagnostics.
func (c *Catalog) Tables() []string {
	names := make([]string, 0, len(c.tables))
	for n := range c.tables {
		names = append(names, n)
	}
	return names
}
