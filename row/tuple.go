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

package row

import "strings"

// Tuple is an ordered sequence of field values carrying one row. Its
// arity is fixed by the operator that produced it and is invariant
// along any single operator chain.
type Tuple []Value

// Concat returns a new Tuple with the fields of l followed by the
// fields of r, as produced by Join (left fields first, right fields
// shifted by len(l)).
func Concat(l, r Tuple) Tuple {
	out := make(Tuple, 0, len(l)+len(r))
	out = append(out, l...)
	out = append(out, r...)
	return out
}

// Append returns a new Tuple with v appended as its final field, used
// when a literal-SUM rewrite appends a synthetic constant column ahead
// of the Sum operator.
func (t Tuple) Append(v Value) Tuple {
	out := make(Tuple, 0, len(t)+1)
	out = append(out, t...)
	out = append(out, v)
	return out
}

// Equal reports whether two tuples carry the same field values in the
// same order. Used by DuplicateElimination and by group-by key
// comparison in Sum: a proper equality on the field vector, rather than
// a comparison of each tuple's textual rendering.
func Equal(a, b Tuple) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Canonical returns a delimiter-joined textual form of the tuple. It is
// the input to the seen-set hash in DuplicateElimination and to the
// group-key hash in Sum; both also keep Equal/Tuple-level comparison to
// resolve the rare hash collision, so no semantics depend on this
// encoding being collision-free.
func (t Tuple) Canonical() string {
	var b strings.Builder
	for i, v := range t {
		if i > 0 {
			b.WriteByte('\x1f')
		}
		b.WriteString(v.text)
	}
	return b.String()
}
