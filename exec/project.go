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
	"golang.org/x/exp/slices"

	"github.com/outlierdb/sqlcsv/row"
	"github.com/outlierdb/sqlcsv/schema"
)

// Projection rearranges and prunes a child's fields per an ordered list
// of qualified column names, silently deduplicating repeats while
// preserving first-occurrence order.
type Projection struct {
	Child    Op
	indices  []int
	mapping  *schema.Mapping
	passthru bool
}

// NewProjection resolves columns against child's mapping (an
// unresolvable name is a plan error) and builds the output mapping,
// re-indexed 0..n-1.
func NewProjection(child Op, columns []string) (*Projection, error) {
	in := child.Mapping()
	var deduped []string
	var indices []int
	for _, c := range columns {
		if slices.Contains(deduped, c) {
			continue
		}
		idx, ok := in.Lookup(c)
		if !ok {
			return nil, &PlanError{Msg: "Projection references unknown column " + c}
		}
		deduped = append(deduped, c)
		indices = append(indices, idx)
	}
	p := &Projection{
		Child:   child,
		indices: indices,
		mapping: schema.New(deduped),
	}
	// Spec rule is arity equality only, not identity-permutation: a
	// reordering projection over every input column still counts as a
	// passthrough.
	p.passthru = len(indices) == in.Arity()
	return p, nil
}

func (p *Projection) Mapping() *schema.Mapping { return p.mapping }

func (p *Projection) Next() (row.Tuple, error) {
	t, err := p.Child.Next()
	if err != nil {
		return nil, err
	}
	if p.passthru {
		return t, nil
	}
	out := make(row.Tuple, len(p.indices))
	for i, idx := range p.indices {
		out[i] = t[idx]
	}
	return out, nil
}

func (p *Projection) Reset() error {
	return p.Child.Reset()
}

func (p *Projection) Explain() map[string]any {
	return map[string]any{
		"op":      "Projection",
		"columns": p.mapping.Columns(),
		"child":   explainChild(p.Child),
	}
}
