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
	"github.com/dchest/siphash"

	"github.com/outlierdb/sqlcsv/row"
	"github.com/outlierdb/sqlcsv/schema"
)

// distinctKey0, distinctKey1 are a fixed siphash keypair. DuplicateElimination
// only needs a stable, cheap keyed hash to bucket the seen-set within a
// single query run; there is no adversarial input to defend against, so
// the key does not need to vary per run.
const (
	distinctKey0 = 0x646973746b657930
	distinctKey1 = 0x646973746b657931
)

// DuplicateElimination is the streaming DISTINCT operator. It keeps a
// set of the canonical form of every tuple already emitted and passes
// through only tuples not yet seen, preserving the child's order.
type DuplicateElimination struct {
	Child Op

	seen map[uint64][]row.Tuple
}

// NewDuplicateElimination constructs the operator.
func NewDuplicateElimination(child Op) *DuplicateElimination {
	return &DuplicateElimination{Child: child, seen: map[uint64][]row.Tuple{}}
}

func (d *DuplicateElimination) Mapping() *schema.Mapping { return d.Child.Mapping() }

func (d *DuplicateElimination) Next() (row.Tuple, error) {
	for {
		t, err := d.Child.Next()
		if err != nil {
			return nil, err
		}
		h := siphash.Hash(distinctKey0, distinctKey1, []byte(t.Canonical()))
		bucket := d.seen[h]
		if seenAlready(bucket, t) {
			continue
		}
		d.seen[h] = append(bucket, t)
		return t, nil
	}
}

func seenAlready(bucket []row.Tuple, t row.Tuple) bool {
	for _, b := range bucket {
		if row.Equal(b, t) {
			return true
		}
	}
	return false
}

// Reset clears the seen-set and cascades to the child.
func (d *DuplicateElimination) Reset() error {
	d.seen = map[uint64][]row.Tuple{}
	return d.Child.Reset()
}

func (d *DuplicateElimination) Explain() map[string]any {
	return map[string]any{
		"op":    "DuplicateElimination",
		"child": explainChild(d.Child),
	}
}
