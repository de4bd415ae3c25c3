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

	"github.com/outlierdb/sqlcsv/expr"
	"github.com/outlierdb/sqlcsv/row"
)

func TestSumGlobalAggregation(t *testing.T) {
	child := newFakeOp([]string{"R.A"}, []row.Tuple{ints(1), ints(3), ints(5)})
	s, err := NewSum(child, nil, []expr.Node{&expr.Column{Table: "R", Name: "A"}})
	if err != nil {
		t.Fatalf("NewSum: %v", err)
	}
	out, err := drain(s)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("global aggregation must emit exactly one row, got %d", len(out))
	}
	if !row.Equal(out[0], ints(9)) {
		t.Fatalf("got %v, want (9)", out[0])
	}
}

func TestSumGlobalAggregationOverEmptyInput(t *testing.T) {
	child := newFakeOp([]string{"R.A"}, nil)
	s, err := NewSum(child, nil, []expr.Node{&expr.Column{Table: "R", Name: "A"}})
	if err != nil {
		t.Fatalf("NewSum: %v", err)
	}
	out, err := drain(s)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("global aggregation over empty input must still emit exactly one row, got %d", len(out))
	}
	if !row.Equal(out[0], ints(0)) {
		t.Fatalf("got %v, want (0)", out[0])
	}
}

func TestSumLiteralTimesCardinality(t *testing.T) {
	child := newFakeOp([]string{"R.A", "R.LITERAL_SUM_0"}, []row.Tuple{
		ints(1, 1), ints(3, 1), ints(5, 1),
	})
	s, err := NewSum(child, nil, []expr.Node{&expr.Column{Table: "R", Name: "LITERAL_SUM_0"}})
	if err != nil {
		t.Fatalf("NewSum: %v", err)
	}
	out, err := drain(s)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if !row.Equal(out[0], ints(3)) {
		t.Fatalf("SUM(1) over 3 rows must equal 3, got %v", out[0])
	}
}

func TestSumGroupBy(t *testing.T) {
	child := newFakeOp([]string{"T.E", "T.F"}, []row.Tuple{
		ints(1, 100), ints(3, 100), ints(1, 200),
	})
	s, err := NewSum(child,
		[]expr.Node{&expr.Column{Table: "T", Name: "E"}},
		[]expr.Node{&expr.Column{Table: "T", Name: "F"}},
	)
	if err != nil {
		t.Fatalf("NewSum: %v", err)
	}
	out, err := drain(s)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 groups, got %d: %v", len(out), out)
	}
	want := map[int64]int64{1: 300, 3: 100}
	for _, o := range out {
		key, _ := o[0].Int64()
		sum, _ := o[1].Int64()
		if want[key] != sum {
			t.Fatalf("group %d: got sum %d, want %d", key, sum, want[key])
		}
	}
	cols := s.Mapping().Columns()
	if cols[0] != "Group" || cols[1] != "SUM_0" {
		t.Fatalf("unexpected output mapping: %v", cols)
	}
}

func TestSumResetReplaysWithoutReaggregating(t *testing.T) {
	child := newFakeOp([]string{"R.A"}, []row.Tuple{ints(1), ints(2)})
	s, err := NewSum(child, nil, []expr.Node{&expr.Column{Table: "R", Name: "A"}})
	if err != nil {
		t.Fatalf("NewSum: %v", err)
	}
	first, err := drain(s)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	second, err := drain(s)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if !row.Equal(first[0], second[0]) {
		t.Fatalf("reset must replay the same materialized result: %v vs %v", first, second)
	}
}
