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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/sgreben/intercal72/ast"
	"github.com/sgreben/intercal72/parser"
)

// golden ignores the surface-diagnostic fields (source position, raw line
// text) that every statement carries for §7 error rendering but that carry
// no parse-tree semantics: a golden comparison of the tree shape shouldn't
// break every time a fixture gains a leading blank line.
var golden = cmp.Options{
	cmpopts.IgnoreFields(ast.Stmt{}, "Pos", "Line"),
}

func TestParse_goldenProgramShape(t *testing.T) {
	src := `
	DO (1) NEXT
	(1) PLEASE .1 <- #1
	DO .2 <- .1 $ #2
	DO READ OUT .1
	`
	got := mustParse(t, src)

	want := ast.New()
	want.Add(ast.NewStmt(&ast.Next{Label: 1}))

	labeled := ast.NewStmt(&ast.Calc{
		LHS: ast.LValue{Var: ast.VarRef{Kind: ast.Spot, N: 1}},
		RHS: &ast.NumExpr{Value: 1},
	})
	labeled.Label = 1
	labeled.Polite = true
	want.Add(labeled)

	want.Add(ast.NewStmt(&ast.Calc{
		LHS: ast.LValue{Var: ast.VarRef{Kind: ast.Spot, N: 2}},
		RHS: &ast.MingleExpr{
			A: &ast.VarExpr{LValue: ast.LValue{Var: ast.VarRef{Kind: ast.Spot, N: 1}}},
			B: &ast.NumExpr{Value: 2},
		},
	}))

	want.Add(ast.NewStmt(&ast.ReadOut{
		Exprs: []ast.Expr{&ast.VarExpr{LValue: ast.LValue{Var: ast.VarRef{Kind: ast.Spot, N: 1}}}},
	}))
	want.Labels[1] = 1

	if diff := cmp.Diff(want.Stmts, got.Stmts, golden); diff != "" {
		t.Errorf("parsed program shape mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want.Labels, got.Labels); diff != "" {
		t.Errorf("label table mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_goldenComeFromLink(t *testing.T) {
	src := `
	DO (1) NEXT
	(1) DO .1 <- #1
	DO COME FROM (1)
	PLEASE .2 <- #1
	`
	got := mustParse(t, src)

	// The literal COME FROM at statement index 2 targets label 1 (statement
	// index 1); ComeFromLinks maps the target index to the COME FROM site.
	want := map[int]int{1: 2}
	if diff := cmp.Diff(want, got.ComeFromLinks); diff != "" {
		t.Errorf("come-from link table mismatch (-want +got):\n%s", diff)
	}
}
