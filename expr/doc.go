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

// Package expr implements the AST representation of query expressions:
// column references, integer literals, arithmetic, comparisons,
// conjunctions/disjunctions and SUM.
//
// Each AST node type satisfies the Node interface. The critical entry
// points for this package are Walk, Rewrite and Eval: Walk lets a
// caller examine an expression tree, Rewrite lets a caller rewrite it,
// and Eval is the single recursive
// evaluator that every operator in exec uses to apply a Node to a tuple
// and a schema mapping.
package expr
