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

	"golang.org/x/exp/slices"

	"github.com/outlierdb/sqlcsv/row"
	"github.com/outlierdb/sqlcsv/schema"
	"github.com/outlierdb/sqlcsv/sorting"
)

// SortKey is one ORDER BY key, already resolved to a field index against
// the child's mapping.
type SortKey struct {
	Index     int
	Direction sorting.Direction
}

// Sort is a blocking total-order operator: it buffers every child tuple
// on the first Next call, sorts the buffer in place by its key chain,
// and streams from the buffer on every subsequent call. Reset rewinds
// the cursor without touching the child again.
type Sort struct {
	Child Op
	Keys  []SortKey

	buf     []row.Tuple
	cursor  int
	drained bool
}

// NewSort validates that every key index is in range for child's
// mapping and constructs the operator.
func NewSort(child Op, keys []SortKey) (*Sort, error) {
	arity := child.Mapping().Arity()
	for _, k := range keys {
		if k.Index < 0 || k.Index >= arity {
			return nil, &PlanError{Msg: "ORDER BY key index out of range"}
		}
	}
	return &Sort{Child: child, Keys: keys}, nil
}

func (s *Sort) Mapping() *schema.Mapping { return s.Child.Mapping() }

func (s *Sort) Next() (row.Tuple, error) {
	if !s.drained {
		if err := s.materialize(); err != nil {
			return nil, err
		}
	}
	if s.cursor >= len(s.buf) {
		return nil, io.EOF
	}
	t := s.buf[s.cursor]
	s.cursor++
	return t, nil
}

func (s *Sort) materialize() error {
	for {
		t, err := s.Child.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		s.buf = append(s.buf, t)
	}
	slices.SortFunc(s.buf, func(a, b row.Tuple) bool {
		return s.less(a, b)
	})
	s.drained = true
	return nil
}

// less implements the multi-key lexicographic comparator: it evaluates
// keys in order and stops at the first one that discriminates.
func (s *Sort) less(a, b row.Tuple) bool {
	for _, k := range s.Keys {
		av, _ := a[k.Index].Int64()
		bv, _ := b[k.Index].Int64()
		c := sorting.CompareInt64(av, bv, k.Direction)
		if c != 0 {
			return c < 0
		}
	}
	return false
}

func (s *Sort) Reset() error {
	s.cursor = 0
	return nil
}

func (s *Sort) Explain() map[string]any {
	return map[string]any{
		"op":    "Sort",
		"keys":  len(s.Keys),
		"child": explainChild(s.Child),
	}
}
