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

	"github.com/outlierdb/sqlcsv/expr"
	"github.com/outlierdb/sqlcsv/row"
	"github.com/outlierdb/sqlcsv/schema"
)

// Join is a tuple-nested-loop join over a left (outer) and right
// (inner) child, with an optional predicate; nil means a Cartesian
// product. Output arity is len(left)+len(right); the combined mapping
// shifts every right-hand index by the left's arity. Output order is
// lexicographic by (outer-position, inner-position): for each outer
// tuple the inner is reset and iterated in full before the outer
// advances.
type Join struct {
	Left, Right Op
	Pred        expr.Node // may be nil (Cartesian product)

	mapping *schema.Mapping
	outer   row.Tuple
	started bool
}

// NewJoin validates pred (if any) against the combined mapping and
// constructs the operator.
func NewJoin(left, right Op, pred expr.Node) (*Join, error) {
	m := schema.Combine(left.Mapping(), right.Mapping())
	if pred != nil {
		required := map[string]bool{}
		expr.RequiredColumns(pred, required)
		for col := range required {
			if _, ok := m.Lookup(col); !ok {
				return nil, &PlanError{Msg: "Join predicate references unknown column " + col}
			}
		}
	}
	return &Join{Left: left, Right: right, Pred: pred, mapping: m}, nil
}

func (j *Join) Mapping() *schema.Mapping { return j.mapping }

func (j *Join) Next() (row.Tuple, error) {
	for {
		if !j.started {
			outer, err := j.Left.Next()
			if err != nil {
				return nil, err
			}
			j.outer = outer
			if err := j.Right.Reset(); err != nil {
				return nil, err
			}
			j.started = true
		}

		inner, err := j.Right.Next()
		if err == io.EOF {
			j.started = false
			continue
		}
		if err != nil {
			return nil, err
		}

		combined := row.Concat(j.outer, inner)
		if j.Pred == nil {
			return combined, nil
		}
		ok, err := expr.EvalBool(j.Pred, j.mapping, combined)
		if err != nil {
			return nil, err
		}
		if ok {
			return combined, nil
		}
	}
}

// Reset resets both children and drops the current outer tuple.
func (j *Join) Reset() error {
	j.started = false
	j.outer = nil
	if err := j.Left.Reset(); err != nil {
		return err
	}
	return j.Right.Reset()
}

func (j *Join) Explain() map[string]any {
	e := map[string]any{
		"op":    "Join",
		"left":  explainChild(j.Left),
		"right": explainChild(j.Right),
	}
	if j.Pred != nil {
		e["pred"] = expr.ToString(j.Pred)
	}
	return e
}
