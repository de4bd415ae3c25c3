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

package plan

import (
	"github.com/outlierdb/sqlcsv/exec"
	"github.com/outlierdb/sqlcsv/expr"
	"github.com/outlierdb/sqlcsv/sql"
)

// qualifier rewrites every unqualified *expr.Column in a parsed
// statement to its Table.Column form, resolving it against the set of
// columns declared by the query's FROM tables. An ambiguous or unknown
// column, or a column qualified by a table absent from FROM, is a plan
// error raised here rather than as a runtime type error.
type qualifier struct {
	colTables map[string][]string
	from      map[string]bool
	err       error
}

func (q *qualifier) qualifyStmt(stmt *sql.SelectStmt) error {
	for i, item := range stmt.Items {
		stmt.Items[i] = expr.Rewrite(q, item)
		if q.err != nil {
			return q.err
		}
	}
	if stmt.Where != nil {
		stmt.Where = expr.Rewrite(q, stmt.Where)
		if q.err != nil {
			return q.err
		}
	}
	for i, g := range stmt.GroupBy {
		stmt.GroupBy[i] = expr.Rewrite(q, g)
		if q.err != nil {
			return q.err
		}
	}
	for i, k := range stmt.OrderBy {
		stmt.OrderBy[i].Expr = expr.Rewrite(q, k.Expr)
		if q.err != nil {
			return q.err
		}
	}
	return nil
}

func (q *qualifier) Walk(expr.Node) expr.Rewriter { return q }

func (q *qualifier) Rewrite(n expr.Node) expr.Node {
	c, ok := n.(*expr.Column)
	if !ok || q.err != nil {
		return n
	}
	if c.Table != "" {
		if !q.from[c.Table] {
			q.err = &exec.PlanError{Msg: "unknown table " + c.Table + " in column " + c.Qualified()}
		}
		return n
	}
	tables := q.colTables[c.Name]
	switch len(tables) {
	case 0:
		q.err = &exec.PlanError{Msg: "unresolvable column " + c.Name}
	case 1:
		c.Table = tables[0]
	default:
		q.err = &exec.PlanError{Msg: "ambiguous column " + c.Name}
	}
	return c
}
