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

import (
	"strconv"

	"github.com/outlierdb/sqlcsv/expr"
)

// parser is a straightforward recursive-descent parser over the
// lexer's token stream with one token of lookahead.
type parser struct {
	l    *lexer
	cur  token
	peek token
}

func newParser(input string) *parser {
	p := &parser{l: newLexer(input)}
	p.cur = p.l.next()
	p.peek = p.l.next()
	return p
}

func (p *parser) advance() {
	p.cur = p.peek
	p.peek = p.l.next()
}

// Parse parses a single SELECT statement. A malformed or unsupported
// construct is reported as an *expr.SyntaxError.
func Parse(query string) (stmt *SelectStmt, err error) {
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(*expr.SyntaxError); ok {
				err = se
				return
			}
			panic(r)
		}
	}()
	p := newParser(query)
	stmt = p.parseSelect()
	if p.cur.typ != tokEOF {
		return nil, &expr.SyntaxError{Msg: "unexpected trailing input near " + strconv.Quote(p.cur.literal)}
	}
	return stmt, nil
}

func (p *parser) expect(t tokenType, what string) token {
	if p.cur.typ != t {
		panic(&expr.SyntaxError{Msg: "expected " + what + ", got " + p.cur.literal})
	}
	tok := p.cur
	p.advance()
	return tok
}

func (p *parser) parseSelect() *SelectStmt {
	p.expect(tokSelect, "SELECT")

	stmt := &SelectStmt{}
	if p.cur.typ == tokDistinct {
		stmt.Distinct = true
		p.advance()
	}

	stmt.Items = p.parseProjectionList()
	p.expect(tokFrom, "FROM")
	stmt.From = p.parseTableList()

	if p.cur.typ == tokWhere {
		p.advance()
		stmt.Where = p.parseOrExpr()
	}
	if p.cur.typ == tokGroup {
		p.advance()
		p.expect(tokBy, "BY")
		stmt.GroupBy = p.parseColumnList()
	}
	if p.cur.typ == tokOrder {
		p.advance()
		p.expect(tokBy, "BY")
		stmt.OrderBy = p.parseOrderList()
	}
	return stmt
}

func (p *parser) parseProjectionList() []expr.Node {
	items := []expr.Node{p.parseProjectionItem()}
	for p.cur.typ == tokComma {
		p.advance()
		items = append(items, p.parseProjectionItem())
	}
	return items
}

func (p *parser) parseProjectionItem() expr.Node {
	switch p.cur.typ {
	case tokStar:
		p.advance()
		return expr.Star{}
	case tokSum:
		p.advance()
		p.expect(tokLParen, "(")
		arg := p.parseArith()
		p.expect(tokRParen, ")")
		return &expr.Sum{Arg: arg}
	default:
		return p.parseColumnRef()
	}
}

func (p *parser) parseTableList() []string {
	names := []string{p.expect(tokIdent, "table name").literal}
	for p.cur.typ == tokComma {
		p.advance()
		names = append(names, p.expect(tokIdent, "table name").literal)
	}
	return names
}

func (p *parser) parseColumnList() []expr.Node {
	cols := []expr.Node{p.parseColumnRef()}
	for p.cur.typ == tokComma {
		p.advance()
		cols = append(cols, p.parseColumnRef())
	}
	return cols
}

func (p *parser) parseColumnRef() expr.Node {
	first := p.expect(tokIdent, "column name").literal
	if p.cur.typ == tokDot {
		p.advance()
		second := p.expect(tokIdent, "column name").literal
		return &expr.Column{Table: first, Name: second}
	}
	return &expr.Column{Name: first}
}

func (p *parser) parseOrderList() []OrderKey {
	keys := []OrderKey{p.parseOrderKey()}
	for p.cur.typ == tokComma {
		p.advance()
		keys = append(keys, p.parseOrderKey())
	}
	return keys
}

func (p *parser) parseOrderKey() OrderKey {
	var k OrderKey
	if p.cur.typ == tokSum {
		p.advance()
		p.expect(tokLParen, "(")
		arg := p.parseArith()
		p.expect(tokRParen, ")")
		k.Expr = &expr.Sum{Arg: arg}
	} else {
		k.Expr = p.parseColumnRef()
	}
	switch p.cur.typ {
	case tokAsc:
		p.advance()
	case tokDesc:
		k.Desc = true
		p.advance()
	}
	return k
}

// parseOrExpr -> parseAndExpr (OR parseAndExpr)*
func (p *parser) parseOrExpr() expr.Node {
	left := p.parseAndExpr()
	for p.cur.typ == tokOr {
		p.advance()
		right := p.parseAndExpr()
		left = expr.Or(left, right)
	}
	return left
}

// parseAndExpr -> parseComparison (AND parseComparison)*
func (p *parser) parseAndExpr() expr.Node {
	left := p.parseComparison()
	for p.cur.typ == tokAnd {
		p.advance()
		right := p.parseComparison()
		left = expr.And(left, right)
	}
	return left
}

var cmpOps = map[tokenType]expr.CmpOp{
	tokEq:  expr.Equals,
	tokNeq: expr.NotEquals,
	tokLt:  expr.Less,
	tokLte: expr.LessEquals,
	tokGt:  expr.Greater,
	tokGte: expr.GreaterEquals,
}

// parseComparison -> parseArith (cmpOp parseArith)?
func (p *parser) parseComparison() expr.Node {
	left := p.parseArith()
	if op, ok := cmpOps[p.cur.typ]; ok {
		p.advance()
		right := p.parseArith()
		return &expr.Comparison{Op: op, Left: left, Right: right}
	}
	return left
}

// parseArith -> parseAtom (('+' | '*') parseAtom)*, left-associative.
func (p *parser) parseArith() expr.Node {
	left := p.parseAtom()
	for p.cur.typ == tokPlus || p.cur.typ == tokStar {
		op := expr.AddOp
		if p.cur.typ == tokStar {
			op = expr.MulOp
		}
		p.advance()
		right := p.parseAtom()
		left = &expr.Arithmetic{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *parser) parseAtom() expr.Node {
	switch p.cur.typ {
	case tokInt:
		n, err := strconv.ParseInt(p.cur.literal, 10, 64)
		if err != nil {
			panic(&expr.SyntaxError{Msg: "invalid integer literal " + p.cur.literal})
		}
		p.advance()
		return expr.Integer(n)
	case tokIdent:
		return p.parseColumnRef()
	case tokLParen:
		p.advance()
		inner := p.parseOrExpr()
		p.expect(tokRParen, ")")
		return inner
	default:
		panic(&expr.SyntaxError{Msg: "unexpected token " + p.cur.literal})
	}
}
