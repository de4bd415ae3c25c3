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
	"github.com/outlierdb/sqlcsv/row"
	"github.com/outlierdb/sqlcsv/schema"
)

// LiteralAppend appends a constant field to every child tuple. The
// planner inserts one of these above a Scan (or join tree) for every
// literal SUM argument, so a SUM(k) with constant k can be evaluated by
// Sum as an ordinary column reference against a synthetic
// LITERAL_SUM_i column, rather than Sum needing a special case for
// constant arguments.
type LiteralAppend struct {
	Child Op
	Value row.Value
	Alias string

	mapping *schema.Mapping
}

// NewLiteralAppend extends child's mapping with alias at the next free
// index.
func NewLiteralAppend(child Op, alias string, value row.Value) *LiteralAppend {
	return &LiteralAppend{
		Child:   child,
		Value:   value,
		Alias:   alias,
		mapping: child.Mapping().Append(alias),
	}
}

func (l *LiteralAppend) Mapping() *schema.Mapping { return l.mapping }

func (l *LiteralAppend) Next() (row.Tuple, error) {
	t, err := l.Child.Next()
	if err != nil {
		return nil, err
	}
	return t.Append(l.Value), nil
}

func (l *LiteralAppend) Reset() error {
	return l.Child.Reset()
}

func (l *LiteralAppend) Explain() map[string]any {
	return map[string]any{
		"op":    "LiteralAppend",
		"alias": l.Alias,
		"child": explainChild(l.Child),
	}
}
