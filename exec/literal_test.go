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
	"testing"

	"github.com/outlierdb/sqlcsv/row"
)

func TestLiteralAppendExtendsMappingAndTuples(t *testing.T) {
	child := newFakeOp([]string{"R.A"}, []row.Tuple{ints(1), ints(2)})
	l := NewLiteralAppend(child, "LITERAL_SUM_0", row.Int(1))

	cols := l.Mapping().Columns()
	if len(cols) != 2 || cols[1] != "LITERAL_SUM_0" {
		t.Fatalf("unexpected mapping: %v", cols)
	}
	out, err := drain(l)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	for _, tup := range out {
		if len(tup) != 2 {
			t.Fatalf("expected arity 2 after append, got %d", len(tup))
		}
	}
	if !row.Equal(out[0], ints(1, 1)) {
		t.Fatalf("got %v, want (1, 1)", out[0])
	}
}
