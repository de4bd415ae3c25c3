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

import "fmt"

// TypeError is returned when Eval encounters an operand that cannot be
// interpreted as the type its operation demands (spec: "Type error").
// It is always a runtime error: Eval is only ever called once a node
// has already passed plan-time column resolution.
type TypeError struct {
	At  Node
	Msg string
}

func (t *TypeError) Error() string {
	return fmt.Sprintf("%q is ill-typed: %s", ToString(t.At), t.Msg)
}

// SyntaxError is returned from the parser for input that does not
// belong to the supported query grammar.
type SyntaxError struct {
	Msg string
}

func (s *SyntaxError) Error() string {
	return s.Msg
}

func errType(at Node, msg string) *TypeError {
	return &TypeError{At: at, Msg: msg}
}
