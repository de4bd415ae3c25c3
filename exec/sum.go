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
	"fmt"
	"io"

	"github.com/dchest/siphash"

	"github.com/outlierdb/sqlcsv/expr"
	"github.com/outlierdb/sqlcsv/row"
	"github.com/outlierdb/sqlcsv/schema"
)

// Sum is the blocking group-by aggregation operator. With no group-by
// expressions it computes one row of global sums; with one or more
// group-by expressions it maintains one accumulator vector per distinct
// group key. See exec.LiteralAppend for how a constant SUM argument
// reaches this operator as an ordinary column reference.
type Sum struct {
	Child   Op
	GroupBy []expr.Node
	Sums    []expr.Node

	in      *schema.Mapping
	mapping *schema.Mapping

	groups  map[uint64][]*sumGroup
	order   []*sumGroup
	cursor  int
	drained bool
}

type sumGroup struct {
	key   row.Tuple
	accum []int64
}

// NewSum builds the operator's output mapping: group-by columns first,
// labeled Group (single key) or Group_0..Group_n-1 (more than one key),
// then SUM_i for each
// sum expression, and validates every expression's columns against in.
func NewSum(child Op, groupBy, sums []expr.Node) (*Sum, error) {
	in := child.Mapping()
	for _, g := range groupBy {
		if err := checkResolvable(g, in); err != nil {
			return nil, err
		}
	}
	for _, s := range sums {
		if err := checkResolvable(s, in); err != nil {
			return nil, err
		}
	}

	var columns []string
	if len(groupBy) == 1 {
		columns = append(columns, "Group")
	} else {
		for i := range groupBy {
			columns = append(columns, fmt.Sprintf("Group_%d", i))
		}
	}
	for i := range sums {
		columns = append(columns, fmt.Sprintf("SUM_%d", i))
	}

	return &Sum{
		Child:   child,
		GroupBy: groupBy,
		Sums:    sums,
		in:      in,
		mapping: schema.New(columns),
		groups:  map[uint64][]*sumGroup{},
	}, nil
}

func checkResolvable(n expr.Node, m *schema.Mapping) error {
	required := map[string]bool{}
	expr.RequiredColumns(n, required)
	for col := range required {
		if _, ok := m.Lookup(col); !ok {
			return &PlanError{Msg: "Sum references unknown column " + col}
		}
	}
	return nil
}

func (s *Sum) Mapping() *schema.Mapping { return s.mapping }

func (s *Sum) Next() (row.Tuple, error) {
	if !s.drained {
		if err := s.materialize(); err != nil {
			return nil, err
		}
	}
	if s.cursor >= len(s.order) {
		return nil, io.EOF
	}
	g := s.order[s.cursor]
	s.cursor++
	out := make(row.Tuple, 0, len(g.key)+len(g.accum))
	out = append(out, g.key...)
	for _, a := range g.accum {
		out = append(out, row.Int(a))
	}
	return out, nil
}

func (s *Sum) materialize() error {
	if len(s.GroupBy) == 0 {
		// Global aggregation always produces exactly one row, even over
		// an empty input: seed its accumulator group up front so a
		// table with zero rows still yields a row of zero sums.
		s.lookupGroup(row.Tuple{})
	}
	for {
		t, err := s.Child.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := s.accumulate(t); err != nil {
			return err
		}
	}
	s.drained = true
	return nil
}

func (s *Sum) accumulate(t row.Tuple) error {
	key, err := s.evalGroupKey(t)
	if err != nil {
		return err
	}
	g := s.lookupGroup(key)
	for i, sumExpr := range s.Sums {
		v, err := expr.Eval(sumExpr, s.in, t)
		if err != nil {
			return err
		}
		n, ok := v.Int64()
		if !ok {
			return &expr.TypeError{At: sumExpr, Msg: "SUM argument is not an integer"}
		}
		g.accum[i] += n
	}
	return nil
}

func (s *Sum) evalGroupKey(t row.Tuple) (row.Tuple, error) {
	key := make(row.Tuple, len(s.GroupBy))
	for i, g := range s.GroupBy {
		v, err := expr.Eval(g, s.in, t)
		if err != nil {
			return nil, err
		}
		key[i] = v
	}
	return key, nil
}

func (s *Sum) lookupGroup(key row.Tuple) *sumGroup {
	h := siphash.Hash(distinctKey0, distinctKey1, []byte(key.Canonical()))
	for _, g := range s.groups[h] {
		if row.Equal(g.key, key) {
			return g
		}
	}
	g := &sumGroup{key: key, accum: make([]int64, len(s.Sums))}
	s.groups[h] = append(s.groups[h], g)
	s.order = append(s.order, g)
	return g
}

// Reset rewinds the cursor over the already-materialized group table;
// it does not re-run aggregation.
func (s *Sum) Reset() error {
	s.cursor = 0
	return nil
}

func (s *Sum) Explain() map[string]any {
	return map[string]any{
		"op":      "Sum",
		"groupBy": len(s.GroupBy),
		"sums":    len(s.Sums),
		"child":   explainChild(s.Child),
	}
}
