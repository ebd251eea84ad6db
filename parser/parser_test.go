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

package parser_test

import (
	"strings"
	"testing"

	"github.com/sgreben/intercal72/ast"
	"github.com/sgreben/intercal72/diagnostic"
	"github.com/sgreben/intercal72/parser"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.Parse(t.Name(), []byte(src))
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	return prog
}

func errCode(t *testing.T, err error) diagnostic.Code {
	t.Helper()
	de, ok := err.(*diagnostic.Error)
	if !ok {
		t.Fatalf("expected *diagnostic.Error, got %T (%v)", err, err)
	}
	return de.Code
}

func TestParse_basicProgram(t *testing.T) {
	src := `
	DO (1) NEXT
	(1) DO .1 <- #4
	DO ,1 <- DIM #3
	PLEASE READ OUT .1
	`
	prog := mustParse(t, src)
	if prog.Len() != 4 {
		t.Fatalf("expected 4 statements, got %d", prog.Len())
	}
	if _, ok := prog.At(0).Body.(*ast.Next); !ok {
		t.Errorf("statement 0: expected *ast.Next, got %T", prog.At(0).Body)
	}
	calc, ok := prog.At(1).Body.(*ast.Calc)
	if !ok {
		t.Fatalf("statement 1: expected *ast.Calc, got %T", prog.At(1).Body)
	}
	if calc.LHS.Var != (ast.VarRef{Kind: ast.Spot, N: 1}) {
		t.Errorf("statement 1: unexpected LHS %+v", calc.LHS.Var)
	}
	if prog.At(1).Label != 1 {
		t.Errorf("statement 1: expected label 1, got %d", prog.At(1).Label)
	}
	if _, ok := prog.At(2).Body.(*ast.CalcDim); !ok {
		t.Errorf("statement 2: expected *ast.CalcDim, got %T", prog.At(2).Body)
	}
	if _, ok := prog.At(3).Body.(*ast.ReadOut); !ok {
		t.Errorf("statement 3: expected *ast.ReadOut, got %T", prog.At(3).Body)
	}
}

func TestParse_badStmtCapture(t *testing.T) {
	// the third statement's body is gibberish: the parser still accepts the
	// program, capturing it as a BadStmt rather than failing outright.
	src := `
	DO .1 <- #1
	DO .2 <- #1
	DO .3 <- #1
	DO FROB BAZ QUUX
	PLEASE .4 <- #1
	`
	prog := mustParse(t, src)
	if prog.Len() != 5 {
		t.Fatalf("expected 5 statements, got %d", prog.Len())
	}
	bad, ok := prog.At(3).Body.(*ast.BadStmt)
	if !ok {
		t.Fatalf("statement 3: expected *ast.BadStmt, got %T", prog.At(3).Body)
	}
	if !strings.Contains(bad.Raw, "FROB") {
		t.Errorf("BadStmt.Raw = %q, want it to contain FROB", bad.Raw)
	}
}

func TestParse_politenessTooLow(t *testing.T) {
	// 1 polite out of 6: 1/6 < 1/5, insufficiently polite.
	src := strings.Repeat("DO .1 <- #1\n", 5) + "PLEASE .1 <- #1\n"
	_, err := parser.Parse(t.Name(), []byte(src))
	if err == nil {
		t.Fatal("expected a politeness error, got nil")
	}
	if got := errCode(t, err); got != diagnostic.E099 {
		t.Errorf("expected E099, got %s", got)
	}
}

func TestParse_politenessTooHigh(t *testing.T) {
	// 2 polite out of 3: 2/3 > 1/3, excessively polite.
	src := "PLEASE .1 <- #1\nPLEASE .2 <- #1\nDO .3 <- #1\n"
	_, err := parser.Parse(t.Name(), []byte(src))
	if err == nil {
		t.Fatal("expected a politeness error, got nil")
	}
	if got := errCode(t, err); got != diagnostic.E079 {
		t.Errorf("expected E079, got %s", got)
	}
}

func TestParse_duplicateComeFrom(t *testing.T) {
	src := `
	DO (1) NEXT
	(1) DO .1 <- #1
	DO COME FROM (1)
	DO COME FROM (1)
	PLEASE .2 <- #1
	`
	_, err := parser.Parse(t.Name(), []byte(src))
	if err == nil {
		t.Fatal("expected a duplicate COME FROM error, got nil")
	}
	if got := errCode(t, err); got != diagnostic.E182 {
		t.Errorf("expected E182, got %s", got)
	}
}

func TestParse_undefinedLabel(t *testing.T) {
	src := `
	DO (99) NEXT
	PLEASE .1 <- #1
	DO .2 <- #1
	DO .3 <- #1
	DO .4 <- #1
	`
	_, err := parser.Parse(t.Name(), []byte(src))
	if err == nil {
		t.Fatal("expected an undefined-label error, got nil")
	}
	if got := errCode(t, err); got != diagnostic.E139 {
		t.Errorf("expected E139, got %s", got)
	}
}

func TestParse_expressionFold(t *testing.T) {
	// mingle then select, left-to-right with no precedence: (#1 $ #2) ~ #3
	src := `
	DO .2 <- #1
	DO .3 <- #1
	PLEASE .1 <- #1 $ #2 ~ #3
	DO .4 <- #1
	`
	prog := mustParse(t, src)
	calc := prog.At(2).Body.(*ast.Calc)
	sel, ok := calc.RHS.(*ast.SelectExpr)
	if !ok {
		t.Fatalf("expected top-level *ast.SelectExpr, got %T", calc.RHS)
	}
	if _, ok := sel.A.(*ast.MingleExpr); !ok {
		t.Errorf("expected select's A operand to be *ast.MingleExpr, got %T", sel.A)
	}
}

func TestParse_sparkGrouping(t *testing.T) {
	src := `
	DO .2 <- #1
	DO .3 <- #1
	PLEASE .1 <- '#1 $ #2'
	DO .4 <- #1
	`
	prog := mustParse(t, src)
	calc := prog.At(2).Body.(*ast.Calc)
	if _, ok := calc.RHS.(*ast.MingleExpr); !ok {
		t.Errorf("expected *ast.MingleExpr inside sparks, got %T", calc.RHS)
	}
}

func TestParse_abstainGerund(t *testing.T) {
	src := `
	PLEASE .1 <- #1
	DO ABSTAIN FROM ASSIGNING
	DO REINSTATE ASSIGNING
	`
	prog := mustParse(t, src)
	ab, ok := prog.At(1).Body.(*ast.Abstain)
	if !ok {
		t.Fatalf("expected *ast.Abstain, got %T", prog.At(1).Body)
	}
	if ab.Target.Kind != ast.TargetGerund || ab.Target.Gerund != ast.GerundAssigning {
		t.Errorf("unexpected target %+v", ab.Target)
	}
}

func TestParse_computedComeFrom(t *testing.T) {
	src := `
	PLEASE .1 <- #1
	DO .2 <- #1
	DO COME FROM .1
	`
	prog := mustParse(t, src)
	if len(prog.ComputedComeFrom) != 1 {
		t.Fatalf("expected 1 computed COME FROM, got %d", len(prog.ComputedComeFrom))
	}
	cf := prog.At(prog.ComputedComeFrom[0]).Body.(*ast.ComeFrom)
	if cf.Target.Kind != ast.TargetExpr {
		t.Errorf("expected TargetExpr, got %v", cf.Target.Kind)
	}
}

func TestParse_notSetsNegate(t *testing.T) {
	src := `
	PLEASE .1 <- #1
	DO N'T ABSTAIN FROM ASSIGNING
	DO ABSTAIN FROM ASSIGNING
	`
	prog := mustParse(t, src)
	if !prog.At(1).Negate {
		t.Errorf("statement 1: expected Negate true after N'T, got false")
	}
	if prog.At(2).Negate {
		t.Errorf("statement 2: expected Negate false without N'T, got true")
	}
}
