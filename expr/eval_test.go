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

package expr

import (
	"testing"

	"github.com/outlierdb/sqlcsv/row"
	"github.com/outlierdb/sqlcsv/schema"
)

func TestEvalBoolComparison(t *testing.T) {
	m := schema.New([]string{"R.A", "R.B"})
	tup := row.Tuple{row.Text("3"), row.Text("4")}

	pred := &Comparison{Op: Greater, Left: &Column{Table: "R", Name: "A"}, Right: Integer(2)}
	ok, err := EvalBool(pred, m, tup)
	if err != nil || !ok {
		t.Fatalf("EvalBool = %v, %v; want true, nil", ok, err)
	}

	pred2 := &Comparison{Op: Equals, Left: &Column{Table: "R", Name: "A"}, Right: &Column{Table: "R", Name: "B"}}
	ok, err = EvalBool(pred2, m, tup)
	if err != nil || ok {
		t.Fatalf("EvalBool = %v, %v; want false, nil", ok, err)
	}
}

func TestEvalArithmetic(t *testing.T) {
	m := schema.New([]string{"R.A"})
	tup := row.Tuple{row.Text("5")}
	n := &Arithmetic{Op: MulOp, Left: &Column{Table: "R", Name: "A"}, Right: Integer(2)}
	v, err := Eval(n, m, tup)
	if err != nil {
		t.Fatal(err)
	}
	got, _ := v.Int64()
	if got != 10 {
		t.Errorf("Eval(R.A * 2) = %d, want 10", got)
	}
}

func TestEvalTypeError(t *testing.T) {
	m := schema.New([]string{"R.A"})
	tup := row.Tuple{row.Text("not-a-number")}
	n := &Comparison{Op: Greater, Left: &Column{Table: "R", Name: "A"}, Right: Integer(2)}
	if _, err := EvalBool(n, m, tup); err == nil {
		t.Fatal("expected a TypeError for a non-integer comparison operand")
	} else if _, ok := err.(*TypeError); !ok {
		t.Errorf("expected *TypeError, got %T", err)
	}
}

func TestEvalAndShortCircuitsOnLeftFalse(t *testing.T) {
	m := schema.New([]string{"R.A"})
	tup := row.Tuple{row.Text("1")}
	// the right side would be a TypeError if evaluated; AND must not evaluate it
	// once the left side is already false.
	left := &Comparison{Op: Greater, Left: &Column{Table: "R", Name: "A"}, Right: Integer(5)}
	right := &Comparison{Op: Greater, Left: &Column{Table: "R", Name: "Missing"}, Right: Integer(0)}
	ok, err := EvalBool(And(left, right), m, tup)
	if err != nil || ok {
		t.Fatalf("EvalBool(AND) = %v, %v; want false, nil", ok, err)
	}
}
