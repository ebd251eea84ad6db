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

package runtime_test

import (
	"bytes"
	"testing"

	"github.com/sgreben/intercal72/diagnostic"
	rt "github.com/sgreben/intercal72/runtime"
)

func numExpr(n uint16) *rt.Expr { return &rt.Expr{Kind: rt.ExprNum, Num: n} }

// TestMachine_calcAndReadOut builds the same program interp_test's
// TestRun_calcAndReadOut exercises, by hand, directly against the
// data-driven runtime.Program a translated binary would embed.
func TestMachine_calcAndReadOut(t *testing.T) {
	prog := &rt.Program{
		Stmts: []rt.Statement{
			{Kind: rt.BodyCalc, Probability: 100, LHS: rt.LValue{Var: rt.VarRef{Kind: rt.Spot, N: 1}}, RHS: numExpr(170)},
			{Kind: rt.BodyCalc, Probability: 100, LHS: rt.LValue{Var: rt.VarRef{Kind: rt.Spot, N: 2}}, RHS: numExpr(85)},
			{Kind: rt.BodyReadOut, Probability: 100, Exprs: []rt.Expr{{Kind: rt.ExprVar, LValue: rt.LValue{Var: rt.VarRef{Kind: rt.Spot, N: 1}}}}},
			{Kind: rt.BodyReadOut, Probability: 100, Exprs: []rt.Expr{{Kind: rt.ExprVar, LValue: rt.LValue{Var: rt.VarRef{Kind: rt.Spot, N: 2}}}}},
			{Kind: rt.BodyGiveUp, Probability: 100},
		},
		Labels:        map[int]int{},
		ComeFromLinks: map[int]int{},
	}
	var out bytes.Buffer
	m, err := rt.New(prog, rt.WithOutput(&out))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := "CLXX\nLXXXV\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestMachine_comeFromRedirection(t *testing.T) {
	prog := &rt.Program{
		Stmts: []rt.Statement{
			{Label: 1, Kind: rt.BodyCalc, Probability: 100, LHS: rt.LValue{Var: rt.VarRef{Kind: rt.Spot, N: 1}}, RHS: numExpr(1)},
			{Kind: rt.BodyCalc, Probability: 100, LHS: rt.LValue{Var: rt.VarRef{Kind: rt.Spot, N: 1}}, RHS: numExpr(99)},
			{Kind: rt.BodyComeFrom, Probability: 100, Target: rt.Target{Kind: rt.TargetLabels, Labels: []int{1}}},
			{Kind: rt.BodyReadOut, Probability: 100, Exprs: []rt.Expr{{Kind: rt.ExprVar, LValue: rt.LValue{Var: rt.VarRef{Kind: rt.Spot, N: 1}}}}},
			{Kind: rt.BodyGiveUp, Probability: 100},
		},
		Labels:        map[int]int{1: 0},
		ComeFromLinks: map[int]int{0: 2}, // leaving index 0 (label 1) redirects to index 2's (COME FROM's) successor
	}
	var out bytes.Buffer
	m, err := rt.New(prog, rt.WithOutput(&out))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "I\n" {
		t.Errorf("output = %q, want %q (the .1<-#99 statement should have been skipped)", out.String(), "I\n")
	}
}

func TestMachine_fallOffEndIsE633(t *testing.T) {
	prog := &rt.Program{
		Stmts: []rt.Statement{
			{Kind: rt.BodyCalc, Probability: 100, LHS: rt.LValue{Var: rt.VarRef{Kind: rt.Spot, N: 1}}, RHS: numExpr(1)},
		},
		Labels:        map[int]int{},
		ComeFromLinks: map[int]int{},
	}
	m, err := rt.New(prog, rt.WithOutput(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = m.Run()
	de, ok := err.(*diagnostic.Error)
	if !ok || de.Code != diagnostic.E633 {
		t.Fatalf("expected E633, got %v", err)
	}
}

func TestMachine_badStmtIsE000(t *testing.T) {
	prog := &rt.Program{
		Stmts: []rt.Statement{
			{Kind: rt.BodyBad, Probability: 100, Raw: "FROBNICATE THE WIDGET"},
		},
		Labels:        map[int]int{},
		ComeFromLinks: map[int]int{},
	}
	m, err := rt.New(prog, rt.WithOutput(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = m.Run()
	de, ok := err.(*diagnostic.Error)
	if !ok || de.Code != diagnostic.E000 {
		t.Fatalf("expected E000, got %v", err)
	}
}

func TestMachine_bugRateZeroNeverFires(t *testing.T) {
	prog := &rt.Program{
		Stmts: []rt.Statement{
			{Kind: rt.BodyCalc, Probability: 100, BugCandidate: true, LHS: rt.LValue{Var: rt.VarRef{Kind: rt.Spot, N: 1}}, RHS: numExpr(1)},
			{Kind: rt.BodyGiveUp, Probability: 100, BugCandidate: true},
		},
		Labels:        map[int]int{},
		ComeFromLinks: map[int]int{},
	}
	m, err := rt.New(prog, rt.WithOutput(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.Run(); err != nil {
		t.Fatalf("Run with bug rate 0: unexpected error %v", err)
	}
}
