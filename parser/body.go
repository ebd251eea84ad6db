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

func (p *Parser) wordIs(text string) bool {
	return p.cur().Kind == lexer.Word && p.cur().Text == text
}

func (p *Parser) expectWord(text string) error {
	if !p.wordIs(text) {
		return errors.Errorf("%s: expected %s, got %q", p.cur().Pos, text, p.cur().Text)
	}
	p.advance()
	return nil
}

var gerundWords = map[string]ast.GerundClass{
	lexer.KwAssigning:  ast.GerundAssigning,
	lexer.KwNexting:    ast.GerundNexting,
	lexer.KwForgetting: ast.GerundForgetting,
	lexer.KwResuming:   ast.GerundResuming,
	lexer.KwStashing:   ast.GerundStashing,
	lexer.KwRetrieving: ast.GerundRetrieving,
	lexer.KwIgnoring:   ast.GerundIgnoring,
	lexer.KwRemembring: ast.GerundRemembering,
	lexer.KwAbstaining: ast.GerundAbstaining,
	lexer.KwReinstatng: ast.GerundReinstating,
	lexer.KwTrying:     ast.GerundTryingAgain,
}

// parseBody dispatches on the leading keyword of a statement body. Returning
// an error here never aborts the parse: the caller captures it as a
// BadStmt.
func (p *Parser) parseBody() (ast.Body, error) {
	switch {
	case p.cur().Kind == lexer.LParen:
		return p.parseNext()
	case p.wordIs(lexer.KwCome):
		return p.parseComeFrom()
	case p.wordIs(lexer.KwForget):
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Forget{N: e}, nil
	case p.wordIs(lexer.KwResume):
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Resume{N: e}, nil
	case p.wordIs(lexer.KwStash):
		p.advance()
		vs, err := p.parseVarList()
		if err != nil {
			return nil, err
		}
		return &ast.StashStmt{Vars: vs}, nil
	case p.wordIs(lexer.KwRetrieve):
		p.advance()
		vs, err := p.parseVarList()
		if err != nil {
			return nil, err
		}
		return &ast.RetrieveStmt{Vars: vs}, nil
	case p.wordIs(lexer.KwIgnore):
		p.advance()
		vs, err := p.parseVarList()
		if err != nil {
			return nil, err
		}
		return &ast.IgnoreStmt{Vars: vs}, nil
	case p.wordIs(lexer.KwRemember):
		p.advance()
		vs, err := p.parseVarList()
		if err != nil {
			return nil, err
		}
		return &ast.RememberStmt{Vars: vs}, nil
	case p.wordIs(lexer.KwAbstain):
		p.advance()
		if err := p.expectWord(lexer.KwFrom); err != nil {
			return nil, err
		}
		t, err := p.parseTarget()
		if err != nil {
			return nil, err
		}
		return &ast.Abstain{Target: t}, nil
	case p.wordIs(lexer.KwReinstate):
		p.advance()
		t, err := p.parseTarget()
		if err != nil {
			return nil, err
		}
		return &ast.Reinstate{Target: t}, nil
	case p.wordIs(lexer.KwWrite):
		p.advance()
		if err := p.expectWord(lexer.KwIn); err != nil {
			return nil, err
		}
		var lvs []ast.LValue
		for p.isVarSigil() {
			lv, err := p.parseLValue()
			if err != nil {
				return nil, err
			}
			lvs = append(lvs, lv)
		}
		if len(lvs) == 0 {
			return nil, errors.Errorf("%s: WRITE IN needs at least one variable", p.cur().Pos)
		}
		return &ast.WriteIn{LVals: lvs}, nil
	case p.wordIs(lexer.KwRead):
		p.advance()
		if err := p.expectWord(lexer.KwOut); err != nil {
			return nil, err
		}
		var es []ast.Expr
		for p.canStartExpr() {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			es = append(es, e)
		}
		if len(es) == 0 {
			return nil, errors.Errorf("%s: READ OUT needs at least one expression", p.cur().Pos)
		}
		return &ast.ReadOut{Exprs: es}, nil
	case p.wordIs(lexer.KwGive):
		p.advance()
		if err := p.expectWord(lexer.KwUp); err != nil {
			return nil, err
		}
		return &ast.GiveUp{}, nil
	case p.wordIs(lexer.KwTry):
		p.advance()
		if err := p.expectWord(lexer.KwAgain); err != nil {
			return nil, err
		}
		return &ast.TryAgain{}, nil
	case p.isVarSigil():
		return p.parseCalc()
	default:
		return nil, errors.Errorf("%s: unrecognized statement body starting with %q", p.cur().Pos, p.cur().Text)
	}
}

func (p *Parser) parseNext() (ast.Body, error) {
	label, err := p.parseLabelMarker()
	if err != nil {
		return nil, err
	}
	if err := p.expectWord(lexer.KwNext); err != nil {
		return nil, err
	}
	return &ast.Next{Label: label}, nil
}

func (p *Parser) parseComeFrom() (ast.Body, error) {
	p.advance() // COME
	if err := p.expectWord(lexer.KwFrom); err != nil {
		return nil, err
	}
	t, err := p.parseTarget()
	if err != nil {
		return nil, err
	}
	return &ast.ComeFrom{Target: t}, nil
}

// parseTarget parses the target grammar shared by ABSTAIN/REINSTATE/COME
// FROM: one or more "(label)" markers, a gerund (one word, or two for
// COMING FROM, WRITING IN, READING OUT and TRYING AGAIN), or a computed
// expression.
func (p *Parser) parseTarget() (ast.Target, error) {
	if p.cur().Kind == lexer.LParen {
		var labels []int
		for p.cur().Kind == lexer.LParen {
			l, err := p.parseLabelMarker()
			if err != nil {
				return ast.Target{}, err
			}
			labels = append(labels, l)
		}
		return ast.LabelSetTarget(labels), nil
	}
	if p.cur().Kind == lexer.Word {
		if g, ok := gerundWords[p.cur().Text]; ok {
			p.advance()
			if g == ast.GerundTryingAgain {
				if err := p.expectWord(lexer.KwAgain); err != nil {
					return ast.Target{}, err
				}
			}
			return ast.GerundTarget(g), nil
		}
		if p.wordIs(lexer.KwComing) {
			p.advance()
			if err := p.expectWord(lexer.KwFrom); err != nil {
				return ast.Target{}, err
			}
			return ast.GerundTarget(ast.GerundComingFrom), nil
		}
		if p.wordIs(lexer.KwWriting) {
			p.advance()
			if err := p.expectWord(lexer.KwIn); err != nil {
				return ast.Target{}, err
			}
			return ast.GerundTarget(ast.GerundWritingIn), nil
		}
		if p.wordIs(lexer.KwReading) {
			p.advance()
			if err := p.expectWord(lexer.KwOut); err != nil {
				return ast.Target{}, err
			}
			return ast.GerundTarget(ast.GerundReadingOut), nil
		}
	}
	e, err := p.parseExpr()
	if err != nil {
		return ast.Target{}, err
	}
	return ast.ExprTarget(e), nil
}

func (p *Parser) parseVarList() ([]ast.VarRef, error) {
	var vs []ast.VarRef
	for p.isVarSigil() {
		v, err := p.parseVarRef()
		if err != nil {
			return nil, err
		}
		vs = append(vs, v)
	}
	if len(vs) == 0 {
		return nil, errors.Errorf("%s: expected at least one variable", p.cur().Pos)
	}
	return vs, nil
}

func (p *Parser) isVarSigil() bool {
	switch p.cur().Kind {
	case lexer.Dot, lexer.Colon, lexer.Comma, lexer.Semi:
		return true
	default:
		return false
	}
}

func (p *Parser) canStartExpr() bool {
	switch p.cur().Kind {
	case lexer.Mesh, lexer.Dot, lexer.Colon, lexer.Comma, lexer.Semi,
		lexer.Amp, lexer.VOp, lexer.QMark, lexer.Spark, lexer.Rabbit:
		return true
	default:
		return false
	}
}

func (p *Parser) parseVarRef() (ast.VarRef, error) {
	var kind ast.VarKind
	switch p.cur().Kind {
	case lexer.Dot:
		kind = ast.Spot
	case lexer.Colon:
		kind = ast.TwoSpot
	case lexer.Comma:
		kind = ast.Tail
	case lexer.Semi:
		kind = ast.Hybrid
	default:
		return ast.VarRef{}, errors.Errorf("%s: expected a variable sigil, got %q", p.cur().Pos, p.cur().Text)
	}
	pos := p.cur().Pos
	p.advance()
	if p.cur().Kind != lexer.Number {
		return ast.VarRef{}, errors.Errorf("%s: expected a number after sigil", pos)
	}
	n := p.advance().Num
	if n <= 0 {
		return ast.VarRef{}, errors.Errorf("%s: variable number must be positive", pos)
	}
	return ast.VarRef{Kind: kind, N: n}, nil
}

func (p *Parser) parseLValue() (ast.LValue, error) {
	v, err := p.parseVarRef()
	if err != nil {
		return ast.LValue{}, err
	}
	lv := ast.LValue{Var: v}
	if v.Kind.IsArray() && p.wordIs(lexer.KwSub) {
		p.advance()
		for p.canStartExpr() {
			e, err := p.parseExpr()
			if err != nil {
				return ast.LValue{}, err
			}
			lv.Subs = append(lv.Subs, e)
		}
		if len(lv.Subs) == 0 {
			return ast.LValue{}, errors.Errorf("%s: SUB needs at least one subscript", p.cur().Pos)
		}
	}
	if p.cur().Kind == lexer.Mesh {
		p.advance()
		if p.cur().Kind != lexer.Number {
			return ast.LValue{}, errors.Errorf("%s: expected a number after #", p.cur().Pos)
		}
		n := uint16(p.advance().Num)
		lv.Sharp = &n
	}
	return lv, nil
}

func (p *Parser) parseCalc() (ast.Body, error) {
	lv, err := p.parseLValue()
	if err != nil {
		return nil, err
	}
	return p.parseCalcOrDim(lv)
}

func (p *Parser) parseCalcOrDim(lv ast.LValue) (ast.Body, error) {
	if p.cur().Kind != lexer.Arrow {
		return nil, errors.Errorf("%s: expected <-, got %q", p.cur().Pos, p.cur().Text)
	}
	p.advance()
	if lv.Var.Kind.IsArray() && len(lv.Subs) == 0 && p.wordIs(lexer.KwDim) {
		p.advance()
		var dims []ast.Expr
		for p.canStartExpr() {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			dims = append(dims, e)
		}
		if len(dims) == 0 {
			return nil, errors.Errorf("%s: DIM needs at least one dimension", p.cur().Pos)
		}
		return &ast.CalcDim{Var: lv.Var, Dims: dims}, nil
	}
	rhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Calc{LHS: lv, RHS: rhs}, nil
}
