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

// Package parser implements the top-down recursive-descent grammar that
// turns a lexer.Token stream into an ast.Program, plus the two post-parse
// linking passes of spec.md §4.2 (label resolution and COME FROM linking).
//
// Unparseable statement bodies are captured into ast.BadStmt rather than
// failing the parse: only a failure to recognize the statement boundary
// itself (label marker / DO-or-PLEASE / probability) is fatal, mirroring
// the teacher's asm.parser, which collects up to maxErrors diagnosable
// problems into an ErrAsm rather than bailing on the first one — except
// here a bad body is not even an error, just a deferred runtime one.
package parser

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sgreben/intercal72/ast"
	"github.com/sgreben/intercal72/diagnostic"
	"github.com/sgreben/intercal72/lexer"
)

// Parser holds the token cursor and accumulated program.
type Parser struct {
	toks []lexer.Token
	pos  int
	prog *ast.Program

	politeCount int
	totalCount  int // non-BadStmt statements
}

// Parse lexes and parses src into a Program. It returns a fatal error only
// for statement-boundary failures, duplicate/invalid labels, an invalid
// politeness ratio, an unresolved literal label reference (E139), or a
// duplicate literal COME FROM target — all
// compile-time rejections per spec.md §7 class 1.
func Parse(name string, src []byte) (*ast.Program, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", name)
	}
	p := &Parser{toks: toks, prog: ast.New()}
	if err := p.parseProgram(); err != nil {
		return nil, err
	}
	if err := checkPoliteness(p.politeCount, p.totalCount); err != nil {
		return nil, err
	}
	if err := link(p.prog); err != nil {
		return nil, err
	}
	return p.prog, nil
}

func checkPoliteness(polite, total int) error {
	if total == 0 {
		return nil
	}
	// n/5 <= p <= n/3  <=>  5p >= n  &&  3p <= n
	if 5*polite < total {
		return diagnostic.New(diagnostic.E099, diagnostic.Pos{}, "")
	}
	if 3*polite > total {
		return diagnostic.New(diagnostic.E079, diagnostic.Pos{}, "")
	}
	return nil
}

func (p *Parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *Parser) atEOF() bool       { return p.cur().Kind == lexer.EOF }
func (p *Parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) parseProgram() error {
	for !p.atEOF() {
		if err := p.parseStatement(); err != nil {
			return err
		}
	}
	return nil
}

// isStmtStart reports whether the token at index i looks like the start of
// a new statement: a label marker, or a DO/PLEASE opener. Used to
// resynchronize after a BadStmt.
func (p *Parser) isStmtStartAt(i int) bool {
	if i >= len(p.toks) {
		return true
	}
	t := p.toks[i]
	if t.Kind == lexer.EOF {
		return true
	}
	if t.Kind == lexer.LParen {
		return true
	}
	if t.Kind == lexer.Word && (t.Text == lexer.KwDo || t.Text == lexer.KwPlease) {
		return true
	}
	return false
}

// parseStatement parses one statement's boundary (label, opener, NOT,
// probability) — a failure here is fatal — then attempts to parse a body;
// a body failure is captured as a BadStmt instead of propagating.
func (p *Parser) parseStatement() error {
	stmt := ast.NewStmt(nil)
	stmt.Pos = p.cur().Pos
	stmt.Line = p.cur().Line

	// optional label marker (n)
	if p.cur().Kind == lexer.LParen {
		label, err := p.parseLabelMarker()
		if err != nil {
			return err
		}
		if _, exists := p.prog.LabelIndex(label); exists {
			return errors.Errorf("%s: duplicate label (%d)", stmt.Pos, label)
		}
		if label == 0 {
			return errors.Errorf("%s: label 0 is not allowed", stmt.Pos)
		}
		stmt.Label = label
	}

	sawDo := false
	if p.cur().Kind == lexer.Word && p.cur().Text == lexer.KwPlease {
		p.advance()
		stmt.Polite = true
		if p.cur().Kind == lexer.Word && p.cur().Text == lexer.KwDo {
			p.advance()
			sawDo = true
		}
	} else if p.cur().Kind == lexer.Word && p.cur().Text == lexer.KwDo {
		p.advance()
		sawDo = true
	}
	if !sawDo && !stmt.Polite {
		return errors.Errorf("%s: expected DO or PLEASE, got %q", p.cur().Pos, p.cur().Text)
	}

	if p.cur().Kind == lexer.Word && p.cur().Text == lexer.KwNot {
		p.advance()
		stmt.Negate = true
	}

	if p.cur().Kind == lexer.Percent {
		p.advance()
		if p.cur().Kind != lexer.Number {
			return errors.Errorf("%s: expected a number after %%", p.cur().Pos)
		}
		n := p.advance().Num
		if n < 1 || n > 100 {
			return errors.Errorf("%s: probability %d out of range 1..100", stmt.Pos, n)
		}
		stmt.Probability = n
	}

	bodyStartTok := p.pos
	body, err := p.parseBody()
	if err != nil {
		raw := p.resyncBadStmt(bodyStartTok)
		stmt.Body = &ast.BadStmt{Raw: raw}
	} else {
		stmt.Body = body
		p.totalCount++
		if stmt.Polite {
			p.politeCount++
		}
	}

	p.prog.Add(stmt)
	return nil
}

// resyncBadStmt advances the cursor to the next recognizable statement
// boundary and returns the raw source text spanned by the bad body.
func (p *Parser) resyncBadStmt(start int) string {
	var words []string
	for !p.isStmtStartAt(p.pos) {
		words = append(words, p.toks[p.pos].Text)
		p.advance()
	}
	_ = start
	return strings.Join(words, " ")
}

func (p *Parser) parseLabelMarker() (int, error) {
	openPos := p.cur().Pos
	p.advance() // (
	if p.cur().Kind != lexer.Number {
		return 0, errors.Errorf("%s: expected a number inside label marker", openPos)
	}
	n := p.advance().Num
	if p.cur().Kind != lexer.RParen {
		return 0, errors.Errorf("%s: unterminated label marker", openPos)
	}
	p.advance() // )
	if n < 1 || n > 65535 {
		return 0, errors.Errorf("%s: label %d out of range 1..65535", openPos, n)
	}
	return n, nil
}
