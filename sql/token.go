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

// Package sql implements a lexer and recursive-descent parser for the
// single-statement SELECT subset the engine accepts.
package sql

// tokenType identifies a lexical token kind.
type tokenType int

const (
	tokIllegal tokenType = iota
	tokEOF

	tokIdent // table or column name
	tokInt   // integer literal

	tokPlus   // +
	tokStar   // *
	tokEq     // =
	tokNeq    // != or <>
	tokLt     // <
	tokLte    // <=
	tokGt     // >
	tokGte    // >=
	tokComma  // ,
	tokDot    // .
	tokLParen // (
	tokRParen // )

	keywordBeg
	tokSelect
	tokDistinct
	tokFrom
	tokWhere
	tokGroup
	tokBy
	tokOrder
	tokAnd
	tokOr
	tokSum
	tokAsc
	tokDesc
	keywordEnd
)

var keywords = map[string]tokenType{
	"SELECT":   tokSelect,
	"DISTINCT": tokDistinct,
	"FROM":     tokFrom,
	"WHERE":    tokWhere,
	"GROUP":    tokGroup,
	"BY":       tokBy,
	"ORDER":    tokOrder,
	"AND":      tokAnd,
	"OR":       tokOr,
	"SUM":      tokSum,
	"ASC":      tokAsc,
	"DESC":     tokDesc,
}

// token is one lexical unit produced by the lexer.
type token struct {
	typ     tokenType
	literal string
	pos     int
}
