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

// Package exec implements the iterator-model physical operators: Scan,
// Select, Join, Projection, Sort, DuplicateElimination and Sum. Every
// operator is pull-based, single-threaded and stateful, and every
// operator owns its children's reset and teardown.
package exec

import (
	"io"

	"github.com/outlierdb/sqlcsv/row"
	"github.com/outlierdb/sqlcsv/schema"
)

// Op is satisfied by every physical operator in the tree.
type Op interface {
	// Next returns the next output tuple, or io.EOF once the
	// operator's output sequence is exhausted.
	Next() (row.Tuple, error)

	// Reset places the operator back at the beginning of its output
	// sequence. It must be idempotent and cascade to children as
	// defined per-operator; for a blocking operator it rewinds the
	// materialized result instead of re-running its child.
	Reset() error

	// Mapping is this operator's output schema mapping: it exactly
	// describes the tuples Next will produce.
	Mapping() *schema.Mapping
}

// ErrExhausted is an alias for io.EOF, used as the pull-interface
// end-of-stream signal throughout exec, matching the convention
// database/sql's driver.Rows.Next and bufio.Scanner already establish
// in the standard library for a pull loop with no more work to do.
var ErrExhausted = io.EOF

// Explainer is implemented by operators that can describe themselves
// for the -explain CLI flag's operator-tree dump.
type Explainer interface {
	Explain() map[string]any
}

func explainChild(child Op) map[string]any {
	if e, ok := child.(Explainer); ok {
		return e.Explain()
	}
	return map[string]any{"op": "unknown"}
}

// PlanError is returned when an operator is constructed with a
// predicate, projection list or key list that does not resolve
// against its input's schema mapping. It is always raised at
// construction time, never per-tuple.
type PlanError struct {
	Msg string
}

func (e *PlanError) Error() string { return "plan error: " + e.Msg }
