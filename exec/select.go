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
	"github.com/outlierdb/sqlcsv/expr"
	"github.com/outlierdb/sqlcsv/row"
	"github.com/outlierdb/sqlcsv/schema"
)

// Select wraps a child operator and filters its output by a predicate,
// preserving the child's order.
type Select struct {
	Child Op
	Pred  expr.Node
}

// NewSelect validates that every column Pred references resolves
// against child's mapping (a predicate referencing an absent column is
// a plan error raised here, not per-tuple) and returns the operator.
func NewSelect(child Op, pred expr.Node) (*Select, error) {
	required := map[string]bool{}
	expr.RequiredColumns(pred, required)
	m := child.Mapping()
	for col := range required {
		if _, ok := m.Lookup(col); !ok {
			return nil, &PlanError{Msg: "Select predicate references unknown column " + col}
		}
	}
	return &Select{Child: child, Pred: pred}, nil
}

func (s *Select) Mapping() *schema.Mapping { return s.Child.Mapping() }

func (s *Select) Next() (row.Tuple, error) {
	m := s.Child.Mapping()
	for {
		t, err := s.Child.Next()
		if err != nil {
			return nil, err
		}
		ok, err := expr.EvalBool(s.Pred, m, t)
		if err != nil {
			return nil, err
		}
		if ok {
			return t, nil
		}
	}
}

func (s *Select) Reset() error {
	return s.Child.Reset()
}

func (s *Select) Explain() map[string]any {
	return map[string]any{
		"op":    "Select",
		"pred":  expr.ToString(s.Pred),
		"child": explainChild(s.Child),
	}
}
