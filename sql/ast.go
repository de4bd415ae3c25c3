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

package sql

import "github.com/outlierdb/sqlcsv/expr"

// SelectStmt is the parsed form of the single SELECT statement the
// engine accepts. Every projection item, WHERE atom, GROUP BY key and
// ORDER BY key is already an expr.Node; the planner is what resolves
// column references against a schema mapping, not the parser.
type SelectStmt struct {
	Distinct bool
	Items    []expr.Node // Star, *expr.Column, or *expr.Sum
	From     []string    // table names, FROM-clause order
	Where    expr.Node   // nil if no WHERE clause
	GroupBy  []expr.Node
	OrderBy  []OrderKey
}

// OrderKey is one ORDER BY key: an expression plus its direction.
type OrderKey struct {
	Expr expr.Node
	Desc bool
}
