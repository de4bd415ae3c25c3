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

func TestProjectionPrunesAndReorders(t *testing.T) {
	child := newFakeOp([]string{"R.A", "R.B", "R.C"}, []row.Tuple{ints(1, 2, 3)})
	p, err := NewProjection(child, []string{"R.C", "R.A"})
	if err != nil {
		t.Fatalf("NewProjection: %v", err)
	}
	if p.passthru {
		t.Fatal("pruning projection should not be a passthrough")
	}
	out, err := p.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	want := ints(3, 1)
	if !row.Equal(out, want) {
		t.Fatalf("got %v, want %v", out, want)
	}
}

func TestProjectionDedupesRepeats(t *testing.T) {
	child := newFakeOp([]string{"R.A", "R.B"}, nil)
	p, err := NewProjection(child, []string{"R.A", "R.A", "R.B"})
	if err != nil {
		t.Fatalf("NewProjection: %v", err)
	}
	if got := p.Mapping().Columns(); len(got) != 2 {
		t.Fatalf("expected deduplicated column list of length 2, got %v", got)
	}
}

func TestProjectionArityEqualityIsPassthrough(t *testing.T) {
	child := newFakeOp([]string{"R.A", "R.B"}, nil)
	// Full arity, reordered: per spec this still counts as a passthrough.
	p, err := NewProjection(child, []string{"R.B", "R.A"})
	if err != nil {
		t.Fatalf("NewProjection: %v", err)
	}
	if !p.passthru {
		t.Fatal("a projection covering every input column should be a passthrough by arity rule")
	}
}

func TestProjectionUnknownColumnIsPlanError(t *testing.T) {
	child := newFakeOp([]string{"R.A"}, nil)
	_, err := NewProjection(child, []string{"R.Z"})
	if err == nil {
		t.Fatal("expected a plan error for an unresolvable column")
	}
}
