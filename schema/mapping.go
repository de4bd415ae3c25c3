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

// Package schema carries the one piece of bookkeeping every operator in
// the tree must agree on: the mapping from a qualified column name to
// its zero-based position in the tuples an operator produces.
package schema

import "fmt"

// Mapping is an immutable map from a fully qualified column name
// (Table.Column, or a synthetic name such as Group or SUM_0) to a
// zero-based index into the tuples produced by one operator. A Mapping
// is built once, by the operator that owns it, and never mutated
// afterward; every rewrite produces a new Mapping instead.
type Mapping struct {
	index   map[string]int
	columns []string // columns[i] is the qualified name at index i
}

// New builds a Mapping from an ordered list of qualified column names.
// It panics if a name repeats, since the invariant that keys are unique
// within one mapping must hold by construction.
func New(columns []string) *Mapping {
	m := &Mapping{
		index:   make(map[string]int, len(columns)),
		columns: append([]string(nil), columns...),
	}
	for i, c := range columns {
		if _, dup := m.index[c]; dup {
			panic(fmt.Sprintf("schema: duplicate column %q in mapping", c))
		}
		m.index[c] = i
	}
	return m
}

// Lookup resolves a qualified column name to its tuple index.
func (m *Mapping) Lookup(qualified string) (int, bool) {
	i, ok := m.index[qualified]
	return i, ok
}

// Arity is the number of fields a tuple produced under this mapping
// carries.
func (m *Mapping) Arity() int {
	return len(m.columns)
}

// Columns returns the mapping's column names in index order.
func (m *Mapping) Columns() []string {
	return append([]string(nil), m.columns...)
}

// Combine builds the mapping for a Join whose left child uses 'left'
// and whose right child uses 'right': left's columns keep their
// indices, right's columns are shifted by left's arity.
func Combine(left, right *Mapping) *Mapping {
	cols := make([]string, 0, left.Arity()+right.Arity())
	cols = append(cols, left.columns...)
	cols = append(cols, right.columns...)
	return New(cols)
}

// Append returns a new Mapping with one additional column at the next
// free index, used when a literal-SUM rewrite inserts a synthetic
// constant column ahead of Sum.
func (m *Mapping) Append(column string) *Mapping {
	cols := append(append([]string(nil), m.columns...), column)
	return New(cols)
}
