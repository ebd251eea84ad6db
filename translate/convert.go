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

package translate

import (
	"github.com/sgreben/intercal72/ast"
	"github.com/sgreben/intercal72/runtime"
)

// Convert walks prog's statement arena once and produces the equivalent
// runtime.Program value: the same logical content, reduced from ast's
// interface-typed Body/Expr sum types to runtime's flat, codegen-literal
// Statement/Expr structs. Label and COME FROM link tables carry over
// unchanged, since both packages key them the same way (target statement
// index, not label value; see runtime's doc comments).
func Convert(prog *ast.Program) *runtime.Program {
	out := &runtime.Program{
		Stmts:            make([]runtime.Statement, prog.Len()),
		Labels:           copyIntMap(prog.Labels),
		ComeFromLinks:    copyIntMap(prog.ComeFromLinks),
		ComputedComeFrom: append([]int(nil), prog.ComputedComeFrom...),
		ComputedAbstain:  append([]int(nil), prog.ComputedAbstain...),
	}
	for i := 0; i < prog.Len(); i++ {
		out.Stmts[i] = convertStmt(prog.At(i), isBugCandidate(prog.At(i)))
	}
	return out
}

func copyIntMap(m map[int]int) map[int]int {
	out := make(map[int]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// isBugCandidate reports whether translate should mark this statement
// eligible for -b's simulated-compiler-bug injection (E774): any statement
// whose execution does real work. A passive COME FROM marker and an
// already-unparseable BadStmt are excluded, since E774 simulates a
// mistranslated compiled statement, not a parse failure or a no-op.
func isBugCandidate(s *ast.Stmt) bool {
	switch s.Body.(type) {
	case *ast.ComeFrom, *ast.BadStmt:
		return false
	default:
		return true
	}
}

func convertVarKind(k ast.VarKind) runtime.VarKind {
	switch k {
	case ast.TwoSpot:
		return runtime.TwoSpot
	case ast.Tail:
		return runtime.Tail
	case ast.Hybrid:
		return runtime.Hybrid
	default:
		return runtime.Spot
	}
}

func convertVarRef(v ast.VarRef) runtime.VarRef {
	return runtime.VarRef{Kind: convertVarKind(v.Kind), N: v.N}
}

func convertVarRefs(vs []ast.VarRef) []runtime.VarRef {
	if len(vs) == 0 {
		return nil
	}
	out := make([]runtime.VarRef, len(vs))
	for i, v := range vs {
		out[i] = convertVarRef(v)
	}
	return out
}

func convertLValue(lv ast.LValue) runtime.LValue {
	out := runtime.LValue{Var: convertVarRef(lv.Var), Subs: convertExprs(lv.Subs)}
	if lv.Sharp != nil {
		out.HasSharp = true
		out.Sharp = *lv.Sharp
	}
	return out
}

func convertLValues(lvs []ast.LValue) []runtime.LValue {
	if len(lvs) == 0 {
		return nil
	}
	out := make([]runtime.LValue, len(lvs))
	for i, lv := range lvs {
		out[i] = convertLValue(lv)
	}
	return out
}

func convertUnOp(op ast.UnOp) runtime.UnOp {
	switch op {
	case ast.UnAnd:
		return runtime.UnAnd
	case ast.UnOr:
		return runtime.UnOr
	default:
		return runtime.UnXor
	}
}

func convertExpr(e ast.Expr) *runtime.Expr {
	switch x := e.(type) {
	case *ast.NumExpr:
		return &runtime.Expr{Kind: runtime.ExprNum, Num: x.Value}
	case *ast.VarExpr:
		return &runtime.Expr{Kind: runtime.ExprVar, LValue: convertLValue(x.LValue)}
	case *ast.MingleExpr:
		return &runtime.Expr{Kind: runtime.ExprMingle, A: convertExpr(x.A), B: convertExpr(x.B)}
	case *ast.SelectExpr:
		return &runtime.Expr{Kind: runtime.ExprSelect, A: convertExpr(x.A), B: convertExpr(x.B)}
	case *ast.UnaryExpr:
		return &runtime.Expr{Kind: runtime.ExprUnary, Op: convertUnOp(x.Op), X: convertExpr(x.X)}
	default:
		return &runtime.Expr{Kind: runtime.ExprNum, Num: 0}
	}
}

func convertExprs(es []ast.Expr) []runtime.Expr {
	if len(es) == 0 {
		return nil
	}
	out := make([]runtime.Expr, len(es))
	for i, e := range es {
		out[i] = *convertExpr(e)
	}
	return out
}

func convertGerund(g ast.GerundClass) runtime.GerundClass {
	return runtime.GerundClass(g)
}

func convertTarget(t ast.Target) runtime.Target {
	switch t.Kind {
	case ast.TargetLabels:
		return runtime.Target{Kind: runtime.TargetLabels, Labels: append([]int(nil), t.Labels...)}
	case ast.TargetGerund:
		return runtime.Target{Kind: runtime.TargetGerund, Gerund: convertGerund(t.Gerund)}
	default:
		return runtime.Target{Kind: runtime.TargetExpr, Expr: convertExpr(t.Expr)}
	}
}

// convertStmt translates one ast.Stmt into its runtime.Statement
// equivalent. A BadStmt keeps its raw text so the emitted program can call
// runtime.Unparseable verbatim at the same point interp would have raised
// E000.
func convertStmt(s *ast.Stmt, bugCandidate bool) runtime.Statement {
	out := runtime.Statement{
		Label:        s.Label,
		Probability:  s.Probability,
		Negate:       s.Negate,
		Pos:          runtime.Pos{Line: s.Pos.Line, Col: s.Pos.Col, Offset: s.Pos.Offset},
		Line:         s.Line,
		Disabled:     s.Disabled,
		BugCandidate: bugCandidate,
	}
	switch body := s.Body.(type) {
	case *ast.Calc:
		out.Kind = runtime.BodyCalc
		out.LHS = convertLValue(body.LHS)
		out.RHS = convertExpr(body.RHS)
	case *ast.CalcDim:
		out.Kind = runtime.BodyCalcDim
		out.Var = convertVarRef(body.Var)
		out.Dims = convertExprs(body.Dims)
	case *ast.Next:
		out.Kind = runtime.BodyNext
		out.NextLabel = body.Label
	case *ast.Forget:
		out.Kind = runtime.BodyForget
		out.N = convertExpr(body.N)
	case *ast.Resume:
		out.Kind = runtime.BodyResume
		out.N = convertExpr(body.N)
	case *ast.StashStmt:
		out.Kind = runtime.BodyStash
		out.Vars = convertVarRefs(body.Vars)
	case *ast.RetrieveStmt:
		out.Kind = runtime.BodyRetrieve
		out.Vars = convertVarRefs(body.Vars)
	case *ast.IgnoreStmt:
		out.Kind = runtime.BodyIgnore
		out.Vars = convertVarRefs(body.Vars)
	case *ast.RememberStmt:
		out.Kind = runtime.BodyRemember
		out.Vars = convertVarRefs(body.Vars)
	case *ast.Abstain:
		out.Kind = runtime.BodyAbstain
		out.Target = convertTarget(body.Target)
	case *ast.Reinstate:
		out.Kind = runtime.BodyReinstate
		out.Target = convertTarget(body.Target)
	case *ast.ComeFrom:
		out.Kind = runtime.BodyComeFrom
		out.Target = convertTarget(body.Target)
	case *ast.WriteIn:
		out.Kind = runtime.BodyWriteIn
		out.LVals = convertLValues(body.LVals)
	case *ast.ReadOut:
		out.Kind = runtime.BodyReadOut
		out.Exprs = convertExprs(body.Exprs)
	case *ast.GiveUp:
		out.Kind = runtime.BodyGiveUp
	case *ast.TryAgain:
		out.Kind = runtime.BodyTryAgain
	case *ast.LiteralOutput:
		out.Kind = runtime.BodyLiteralOutput
		out.Bytes = append([]byte(nil), body.Bytes...)
	case *ast.BadStmt:
		out.Kind = runtime.BodyBad
		out.Raw = body.Raw
	default:
		out.Kind = runtime.BodyBad
		out.Raw = "unrecognized statement body"
	}
	return out
}
