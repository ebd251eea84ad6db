// This file is part of intercal72 - https://github.com/sgreben/intercal72
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parser

import (
	"github.com/pkg/errors"
	"github.com/sgreben/intercal72/ast"
	"github.com/sgreben/intercal72/lexer"
)

// parseExpr parses a left-to-right fold of mingle ($) and select (~)
// operators over unary-or-primary operands. INTERCAL-72 assigns these no
// relative precedence beyond left-to-right association (spec.md §4.3).
func (p *Parser) parseExpr() (ast.Expr, error) {
	lhs, err := p.parseUnaryOrPrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Kind {
		case lexer.Dollar:
			p.advance()
			rhs, err := p.parseUnaryOrPrimary()
			if err != nil {
				return nil, err
			}
			lhs = &ast.MingleExpr{A: lhs, B: rhs}
		case lexer.Tilde:
			p.advance()
			rhs, err := p.parseUnaryOrPrimary()
			if err != nil {
				return nil, err
			}
			lhs = &ast.SelectExpr{A: lhs, B: rhs}
		default:
			return lhs, nil
		}
	}
}

// parseUnaryOrPrimary parses an optional chain of unary prefix operators
// (&, V, ?) applied to a primary: a number literal, a variable reference, or
// a spark/rabbit-ears-grouped sub-expression. Sparks and rabbit-ears are
// plain matching-pair grouping delimiters: the AST carries no separate
// grouping node, so a parenthesized sub-expression simply becomes that
// sub-expression's own tree (spec.md §4.3, "Design Notes").
func (p *Parser) parseUnaryOrPrimary() (ast.Expr, error) {
	switch p.cur().Kind {
	case lexer.Amp:
		p.advance()
		x, err := p.parseUnaryOrPrimary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: ast.UnAnd, X: x}, nil
	case lexer.VOp:
		p.advance()
		x, err := p.parseUnaryOrPrimary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: ast.UnOr, X: x}, nil
	case lexer.QMark:
		p.advance()
		x, err := p.parseUnaryOrPrimary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: ast.UnXor, X: x}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch p.cur().Kind {
	case lexer.Mesh:
		p.advance()
		if p.cur().Kind != lexer.Number {
			return nil, errors.Errorf("%s: expected a number after #", p.cur().Pos)
		}
		n := p.advance().Num
		if n < 0 || n > 0xFFFF {
			return nil, errors.Errorf("%s: literal %d out of 16-bit range", p.cur().Pos, n)
		}
		return &ast.NumExpr{Value: uint16(n)}, nil
	case lexer.Dot, lexer.Colon, lexer.Comma, lexer.Semi:
		lv, err := p.parseLValue()
		if err != nil {
			return nil, err
		}
		return &ast.VarExpr{LValue: lv}, nil
	case lexer.Spark:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.cur().Kind != lexer.Spark {
			return nil, errors.Errorf("%s: unmatched spark", p.cur().Pos)
		}
		p.advance()
		return e, nil
	case lexer.Rabbit:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.cur().Kind != lexer.Rabbit {
			return nil, errors.Errorf("%s: unmatched rabbit-ears", p.cur().Pos)
		}
		p.advance()
		return e, nil
	default:
		return nil, errors.Errorf("%s: expected an expression, got %q", p.cur().Pos, p.cur().Text)
	}
}
