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
	"github.com/outlierdb/sqlcsv/row"
	"github.com/outlierdb/sqlcsv/schema"
)

// Eval evaluates n against tuple t using mapping m to resolve column
// references, and returns the resulting field value. It is the single
// recursive evaluator the expression-applying operators (Select's
// predicate, Join's predicate, Sum's group-by and SUM arguments) call
// into; there is no duplicated per-operator evaluation logic. Sort does
// not call it: its keys are already resolved to field indices.
//
// A *Column that does not resolve against m is a plan error and must
// be caught at operator construction time, before Eval is ever called
// (see exec.NewSelect, exec.NewJoin and exec.NewSum); Eval itself
// treats an unresolved column as a runtime invariant violation.
func Eval(n Node, m *schema.Mapping, t row.Tuple) (row.Value, error) {
	switch e := n.(type) {
	case Integer:
		return row.Int(int64(e)), nil
	case *Column:
		idx, ok := m.Lookup(e.Qualified())
		if !ok {
			return row.Value{}, errType(n, "unresolved column "+e.Qualified())
		}
		return t[idx], nil
	case *Arithmetic:
		return evalArith(e, m, t)
	case *Comparison:
		ok, err := EvalBool(e, m, t)
		if err != nil {
			return row.Value{}, err
		}
		if ok {
			return row.Int(1), nil
		}
		return row.Int(0), nil
	case *Logical:
		ok, err := EvalBool(e, m, t)
		if err != nil {
			return row.Value{}, err
		}
		if ok {
			return row.Int(1), nil
		}
		return row.Int(0), nil
	default:
		return row.Value{}, errType(n, "not a value expression")
	}
}

func evalArith(a *Arithmetic, m *schema.Mapping, t row.Tuple) (row.Value, error) {
	lv, err := Eval(a.Left, m, t)
	if err != nil {
		return row.Value{}, err
	}
	rv, err := Eval(a.Right, m, t)
	if err != nil {
		return row.Value{}, err
	}
	li, ok := lv.Int64()
	if !ok {
		return row.Value{}, errType(a.Left, "non-integer operand to arithmetic")
	}
	ri, ok := rv.Int64()
	if !ok {
		return row.Value{}, errType(a.Right, "non-integer operand to arithmetic")
	}
	switch a.Op {
	case AddOp:
		return row.Int(li + ri), nil
	case MulOp:
		return row.Int(li * ri), nil
	default:
		return row.Value{}, errType(a, "unsupported arithmetic operator")
	}
}

// EvalBool evaluates a predicate expression (Comparison or Logical, or
// any node nested under them) to a boolean. Select and Join both
// funnel through this entry point since WHERE clauses are
// boolean-shaped, unlike SELECT items.
func EvalBool(n Node, m *schema.Mapping, t row.Tuple) (bool, error) {
	switch e := n.(type) {
	case *Comparison:
		lv, err := Eval(e.Left, m, t)
		if err != nil {
			return false, err
		}
		rv, err := Eval(e.Right, m, t)
		if err != nil {
			return false, err
		}
		return compare(e.Op, lv, rv, e)
	case *Logical:
		lb, err := EvalBool(e.Left, m, t)
		if err != nil {
			return false, err
		}
		if e.Op == OpAnd && !lb {
			return false, nil
		}
		if e.Op == OpOr && lb {
			return true, nil
		}
		return EvalBool(e.Right, m, t)
	default:
		v, err := Eval(n, m, t)
		if err != nil {
			return false, err
		}
		i, ok := v.Int64()
		return ok && i != 0, nil
	}
}

func compare(op CmpOp, l, r row.Value, at Node) (bool, error) {
	if op == Equals || op == NotEquals {
		if li, lok := l.Int64(); lok {
			if ri, rok := r.Int64(); rok {
				eq := li == ri
				return eq == (op == Equals), nil
			}
		}
		eq := l.String() == r.String()
		return eq == (op == Equals), nil
	}
	li, ok := l.Int64()
	if !ok {
		return false, errType(at, "non-integer operand to comparison")
	}
	ri, ok := r.Int64()
	if !ok {
		return false, errType(at, "non-integer operand to comparison")
	}
	switch op {
	case Less:
		return li < ri, nil
	case LessEquals:
		return li <= ri, nil
	case Greater:
		return li > ri, nil
	case GreaterEquals:
		return li >= ri, nil
	default:
		return false, errType(at, "unsupported comparison operator")
	}
}

// RequiredColumns collects every *Column referenced anywhere under n.
// The planner uses it to find the tables a WHERE atom references, and
// the exec constructors use it to validate column references; no
// intermediate projection pruning is derived from it.
func RequiredColumns(n Node, into map[string]bool) {
	if n == nil {
		return
	}
	if c, ok := n.(*Column); ok {
		into[c.Qualified()] = true
		return
	}
	Walk(collectVisitor{into}, n)
}

type collectVisitor struct{ into map[string]bool }

func (c collectVisitor) Visit(n Node) Visitor {
	if n == nil {
		return nil
	}
	if col, ok := n.(*Column); ok {
		c.into[col.Qualified()] = true
		return nil
	}
	return c
}
