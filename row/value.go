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

// Package row defines the Tuple type that flows between operators.
package row

import "strconv"

// Value is a single field of a Tuple. A field read from a CSV file is
// parsed as a signed 64-bit integer if it looks like one; otherwise it
// is kept as text. This decision is made once, at Scan time, instead of
// being re-attempted at every comparison or arithmetic operation that
// touches the field.
type Value struct {
	text    string
	integer int64
	isInt   bool
}

// Text returns a Value for a field read as text. If s parses as a
// signed 64-bit integer the Value is also marked as that integer;
// otherwise it carries the text only.
func Text(s string) Value {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Value{text: s, integer: n, isInt: true}
	}
	return Value{text: s}
}

// Int returns a Value constructed directly from an integer, such as a
// literal that appears in a query or the result of an arithmetic
// expression.
func Int(n int64) Value {
	return Value{integer: n, isInt: true, text: strconv.FormatInt(n, 10)}
}

// Int64 returns the value as a signed integer and reports whether the
// value could be interpreted as one.
func (v Value) Int64() (int64, bool) {
	return v.integer, v.isInt
}

// String returns the field's textual representation, which is always
// available regardless of whether the value parses as an integer.
func (v Value) String() string {
	return v.text
}

// Equal reports whether two values carry the same field, comparing as
// integers when both sides parse as one and falling back to text
// equality otherwise. This replaces the toString()-hash-in-disguise
// approach of comparing via an ad hoc textual form computed downstream:
// the comparison happens directly on the typed Value.
func (v Value) Equal(o Value) bool {
	if v.isInt && o.isInt {
		return v.integer == o.integer
	}
	return v.text == o.text
}
