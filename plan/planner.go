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

// Package plan turns a parsed SELECT statement into a tree of exec.Op
// physical operators plus the schema mapping the tree's root exposes.
package plan

import (
	"fmt"
	"strings"

	"github.com/outlierdb/sqlcsv/catalog"
	"github.com/outlierdb/sqlcsv/exec"
	"github.com/outlierdb/sqlcsv/expr"
	"github.com/outlierdb/sqlcsv/row"
	"github.com/outlierdb/sqlcsv/schema"
	"github.com/outlierdb/sqlcsv/sorting"
	"github.com/outlierdb/sqlcsv/sql"
)

// Planner builds an operator tree against a fixed Catalog. It carries
// no per-query state between calls to Plan; every call starts fresh.
type Planner struct {
	Catalog *catalog.Catalog
}

// New constructs a Planner over cat.
func New(cat *catalog.Catalog) *Planner {
	return &Planner{Catalog: cat}
}

// Plan parses query and builds its operator tree. The returned Op's
// Mapping exactly describes the tuples its Next will produce; the
// caller (the CLI) only needs to drain it.
func (p *Planner) Plan(query string) (exec.Op, error) {
	stmt, err := sql.Parse(query)
	if err != nil {
		return nil, err
	}

	colTables, err := p.columnTables(stmt.From)
	if err != nil {
		return nil, err
	}
	q := &qualifier{colTables: colTables, from: toSet(stmt.From)}
	if err := q.qualifyStmt(stmt); err != nil {
		return nil, err
	}

	root, err := p.buildJoinTree(stmt)
	if err != nil {
		return nil, err
	}

	aggregated := len(stmt.GroupBy) > 0 || hasSum(stmt.Items)
	var sumExprs []expr.Node
	var origSumExprs []expr.Node
	var groupExprs []expr.Node
	if aggregated {
		root, sumExprs, origSumExprs, groupExprs, err = rewriteAggregation(root, stmt)
		if err != nil {
			return nil, err
		}
	}

	if len(stmt.OrderBy) > 0 {
		root, err = p.buildSort(root, stmt.OrderBy, aggregated, origSumExprs, groupExprs)
		if err != nil {
			return nil, err
		}
	}

	if !isStarOnly(stmt.Items) {
		root, err = p.buildProjection(root, stmt.Items, aggregated, sumExprs, groupExprs)
		if err != nil {
			return nil, err
		}
	}

	if stmt.Distinct || len(stmt.GroupBy) > 0 {
		root = exec.NewDuplicateElimination(root)
	}

	return root, nil
}

// columnTables maps every column name declared by any FROM table to
// the list of tables declaring it, used to resolve unqualified column
// references.
func (p *Planner) columnTables(from []string) (map[string][]string, error) {
	out := map[string][]string{}
	for _, t := range from {
		_, cols, err := p.Catalog.Resolve(t)
		if err != nil {
			return nil, err
		}
		for _, c := range cols {
			out[c] = append(out[c], t)
		}
	}
	return out, nil
}

func toSet(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

func hasSum(items []expr.Node) bool {
	for _, it := range items {
		if _, ok := it.(*expr.Sum); ok {
			return true
		}
	}
	return false
}

func isStarOnly(items []expr.Node) bool {
	if len(items) != 1 {
		return false
	}
	_, ok := items[0].(expr.Star)
	return ok
}

func conjoin(a, b expr.Node) expr.Node {
	if a == nil {
		return b
	}
	return expr.And(a, b)
}

// atomTables pairs a WHERE atom with the set of base tables its
// columns reference.
type atomTables struct {
	atom   expr.Node
	tables map[string]bool
}

// buildJoinTree implements spec steps 2-4: per-table scans, predicate
// decomposition and pushdown, and left-deep join construction. A WHERE
// atom local to a single table is pushed onto that table's Select; an
// atom is attached to the first (structurally deepest) Join whose
// combined mapping covers every table the atom references, which
// handles both the ordinary two-table equi-join case and a residual
// atom spanning three or more tables identically.
func (p *Planner) buildJoinTree(stmt *sql.SelectStmt) (exec.Op, error) {
	scans := make([]exec.Op, len(stmt.From))
	for i, t := range stmt.From {
		file, cols, err := p.Catalog.Resolve(t)
		if err != nil {
			return nil, err
		}
		s, err := exec.NewScan(t, file, cols)
		if err != nil {
			return nil, err
		}
		scans[i] = s
	}

	localPreds := map[string]expr.Node{}
	var constantPred expr.Node
	var remaining []atomTables
	for _, atom := range expr.Conjuncts(stmt.Where) {
		required := map[string]bool{}
		expr.RequiredColumns(atom, required)
		tables := map[string]bool{}
		for col := range required {
			tables[tableOf(col)] = true
		}
		switch len(tables) {
		case 0:
			// A constant atom (e.g. "1 = 1") references no table and is
			// trivially covered by every operator in the tree; it is
			// applied once, against the fully built root, below.
			constantPred = conjoin(constantPred, atom)
		case 1:
			for t := range tables {
				localPreds[t] = conjoin(localPreds[t], atom)
			}
		default:
			remaining = append(remaining, atomTables{atom: atom, tables: tables})
		}
	}

	root := scans[0]
	if pred := localPreds[stmt.From[0]]; pred != nil {
		sel, err := exec.NewSelect(root, pred)
		if err != nil {
			return nil, err
		}
		root = sel
	}
	covered := map[string]bool{stmt.From[0]: true}

	for i := 1; i < len(stmt.From); i++ {
		t := stmt.From[i]
		right := scans[i]
		if pred := localPreds[t]; pred != nil {
			sel, err := exec.NewSelect(right, pred)
			if err != nil {
				return nil, err
			}
			right = sel
		}
		covered[t] = true

		var joinPred expr.Node
		var stillRemaining []atomTables
		for _, rem := range remaining {
			allCovered := true
			for tb := range rem.tables {
				if !covered[tb] {
					allCovered = false
					break
				}
			}
			if allCovered {
				joinPred = conjoin(joinPred, rem.atom)
			} else {
				stillRemaining = append(stillRemaining, rem)
			}
		}
		remaining = stillRemaining

		j, err := exec.NewJoin(root, right, joinPred)
		if err != nil {
			return nil, err
		}
		root = j
	}

	if len(remaining) > 0 {
		return nil, &exec.PlanError{Msg: "WHERE references a table combination outside the FROM list"}
	}

	if constantPred != nil {
		sel, err := exec.NewSelect(root, constantPred)
		if err != nil {
			return nil, err
		}
		root = sel
	}
	return root, nil
}

func tableOf(qualified string) string {
	i := strings.IndexByte(qualified, '.')
	if i < 0 {
		return ""
	}
	return qualified[:i]
}

// rewriteAggregation implements spec step 6: it rewrites every
// constant SUM argument into a reference to a synthetic
// LITERAL_SUM_i column (inserting an exec.LiteralAppend ahead of
// Sum), then wraps root in exec.Sum. It returns the Sum inputs in the
// exact order used to build the operator, so callers can later
// translate a SELECT item or ORDER BY key into the operator's
// synthetic Group/SUM_i output names. The pre-rewrite argument list is
// returned alongside it (same order, same indices) so an ORDER BY key
// such as SUM(1) can still be matched against the literal text the
// query actually wrote, instead of the synthetic alias it was rewritten
// to internally.
func rewriteAggregation(root exec.Op, stmt *sql.SelectStmt) (exec.Op, []expr.Node, []expr.Node, []expr.Node, error) {
	literalIdx := 0
	var sumExprs []expr.Node
	var origSumExprs []expr.Node
	for _, item := range stmt.Items {
		s, ok := item.(*expr.Sum)
		if !ok {
			continue
		}
		origSumExprs = append(origSumExprs, s.Arg)
		if lit, ok := s.Arg.(expr.Integer); ok {
			alias := &expr.Column{Name: fmt.Sprintf("LITERAL_SUM_%d", literalIdx)}
			literalIdx++
			root = exec.NewLiteralAppend(root, alias.Qualified(), row.Int(int64(lit)))
			s.Arg = alias
		}
		sumExprs = append(sumExprs, s.Arg)
	}

	sum, err := exec.NewSum(root, stmt.GroupBy, sumExprs)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return sum, sumExprs, origSumExprs, stmt.GroupBy, nil
}

// buildSort implements spec step 9, applied against the mapping the
// join tree (or, for an aggregated query, exec.Sum) produces — before
// the final Projection narrows it — since an ORDER BY key need not
// appear in the SELECT list.
func (p *Planner) buildSort(root exec.Op, keys []sql.OrderKey, aggregated bool, sumExprs, groupExprs []expr.Node) (exec.Op, error) {
	m := root.Mapping()
	sortKeys := make([]exec.SortKey, len(keys))
	for i, k := range keys {
		idx, err := resolveOrderKey(m, k.Expr, aggregated, sumExprs, groupExprs)
		if err != nil {
			return nil, err
		}
		dir := sorting.Ascending
		if k.Desc {
			dir = sorting.Descending
		}
		sortKeys[i] = exec.SortKey{Index: idx, Direction: dir}
	}
	return exec.NewSort(root, sortKeys)
}

func resolveOrderKey(m *schema.Mapping, key expr.Node, aggregated bool, sumExprs, groupExprs []expr.Node) (int, error) {
	if s, ok := key.(*expr.Sum); ok {
		want := strings.ToLower(expr.ToString(s.Arg))
		for i, se := range sumExprs {
			if strings.ToLower(expr.ToString(se)) == want {
				idx, ok := m.Lookup(sumName(i))
				if ok {
					return idx, nil
				}
			}
		}
		return 0, &exec.PlanError{Msg: "ORDER BY references an unknown SUM expression: " + expr.ToString(s)}
	}
	if c, ok := key.(*expr.Column); ok && aggregated {
		for i, ge := range groupExprs {
			if expr.Equal(ge, c) {
				idx, ok := m.Lookup(groupName(i, len(groupExprs)))
				if ok {
					return idx, nil
				}
			}
		}
	}
	if c, ok := key.(*expr.Column); ok {
		if idx, ok := m.Lookup(c.Qualified()); ok {
			return idx, nil
		}
	}
	return 0, &exec.PlanError{Msg: "ORDER BY references an unresolvable key: " + expr.ToString(key)}
}

// buildProjection implements spec step 7. For an aggregated query, a
// SELECT item must be one of the GROUP BY expressions or a SUM item;
// both translate to exec.Sum's synthetic Group/SUM_i output names.
func (p *Planner) buildProjection(root exec.Op, items []expr.Node, aggregated bool, sumExprs, groupExprs []expr.Node) (exec.Op, error) {
	names := make([]string, len(items))
	sumPos := 0
	for i, item := range items {
		switch v := item.(type) {
		case *expr.Sum:
			names[i] = sumName(sumPos)
			sumPos++
		case *expr.Column:
			if aggregated {
				found := false
				for g, ge := range groupExprs {
					if expr.Equal(ge, v) {
						names[i] = groupName(g, len(groupExprs))
						found = true
						break
					}
				}
				if !found {
					return nil, &exec.PlanError{Msg: "SELECT column " + v.Qualified() + " is neither grouped nor aggregated"}
				}
			} else {
				names[i] = v.Qualified()
			}
		default:
			return nil, &exec.PlanError{Msg: "unsupported SELECT item " + expr.ToString(item)}
		}
	}
	return exec.NewProjection(root, names)
}

func sumName(i int) string { return fmt.Sprintf("SUM_%d", i) }

func groupName(i, n int) string {
	if n == 1 {
		return "Group"
	}
	return fmt.Sprintf("Group_%d", i)
}
