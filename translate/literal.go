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
	"fmt"
	"strconv"
	"strings"

	"github.com/sgreben/intercal72/runtime"
)

// programLiteral renders prog (already produced by Convert) as the Go
// source text of a runtime.Program composite literal: the statement table
// first, then the label/come-from link tables.
func programLiteral(prog *runtime.Program) string {
	var b strings.Builder
	b.WriteString("runtime.Program{\n\tStmts: []runtime.Statement{\n")
	for i := range prog.Stmts {
		b.WriteString("\t\t")
		b.WriteString(statementLiteral(&prog.Stmts[i]))
		b.WriteString(",\n")
	}
	b.WriteString("\t},\n")
	b.WriteString("\tLabels: ")
	b.WriteString(intMapLiteral(prog.Labels))
	b.WriteString(",\n\tComeFromLinks: ")
	b.WriteString(intMapLiteral(prog.ComeFromLinks))
	b.WriteString(",\n\tComputedComeFrom: ")
	b.WriteString(intSliceLiteral(prog.ComputedComeFrom))
	b.WriteString(",\n\tComputedAbstain: ")
	b.WriteString(intSliceLiteral(prog.ComputedAbstain))
	b.WriteString(",\n}")
	return b.String()
}

func intMapLiteral(m map[int]int) string {
	if len(m) == 0 {
		return "map[int]int{}"
	}
	var b strings.Builder
	b.WriteString("map[int]int{")
	for k, v := range m {
		fmt.Fprintf(&b, "%d: %d, ", k, v)
	}
	b.WriteString("}")
	return b.String()
}

func intSliceLiteral(s []int) string {
	if len(s) == 0 {
		return "nil"
	}
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = strconv.Itoa(v)
	}
	return "[]int{" + strings.Join(parts, ", ") + "}"
}

func posLiteral(p runtime.Pos) string {
	return fmt.Sprintf("runtime.Pos{Line: %d, Col: %d, Offset: %d}", p.Line, p.Col, p.Offset)
}

func varKindName(k runtime.VarKind) string {
	switch k {
	case runtime.TwoSpot:
		return "runtime.TwoSpot"
	case runtime.Tail:
		return "runtime.Tail"
	case runtime.Hybrid:
		return "runtime.Hybrid"
	default:
		return "runtime.Spot"
	}
}

func varRefLiteral(v runtime.VarRef) string {
	return fmt.Sprintf("runtime.VarRef{Kind: %s, N: %d}", varKindName(v.Kind), v.N)
}

func varRefSliceLiteral(vs []runtime.VarRef) string {
	if len(vs) == 0 {
		return "nil"
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = varRefLiteral(v)
	}
	return "[]runtime.VarRef{" + strings.Join(parts, ", ") + "}"
}

func lvalueLiteral(lv runtime.LValue) string {
	var b strings.Builder
	fmt.Fprintf(&b, "runtime.LValue{Var: %s", varRefLiteral(lv.Var))
	if len(lv.Subs) > 0 {
		b.WriteString(", Subs: ")
		b.WriteString(exprSliceLiteral(lv.Subs))
	}
	if lv.HasSharp {
		fmt.Fprintf(&b, ", HasSharp: true, Sharp: %d", lv.Sharp)
	}
	b.WriteString("}")
	return b.String()
}

func lvalueSliceLiteral(lvs []runtime.LValue) string {
	if len(lvs) == 0 {
		return "nil"
	}
	parts := make([]string, len(lvs))
	for i, lv := range lvs {
		parts[i] = lvalueLiteral(lv)
	}
	return "[]runtime.LValue{" + strings.Join(parts, ", ") + "}"
}

func unOpName(op runtime.UnOp) string {
	switch op {
	case runtime.UnAnd:
		return "runtime.UnAnd"
	case runtime.UnOr:
		return "runtime.UnOr"
	default:
		return "runtime.UnXor"
	}
}

// exprLiteral renders e as a *runtime.Expr literal (a pointer, since
// runtime.Expr nests its operands as *Expr fields).
func exprLiteral(e *runtime.Expr) string {
	if e == nil {
		return "nil"
	}
	switch e.Kind {
	case runtime.ExprNum:
		return fmt.Sprintf("&runtime.Expr{Kind: runtime.ExprNum, Num: %d}", e.Num)
	case runtime.ExprVar:
		return fmt.Sprintf("&runtime.Expr{Kind: runtime.ExprVar, LValue: %s}", lvalueLiteral(e.LValue))
	case runtime.ExprMingle:
		return fmt.Sprintf("&runtime.Expr{Kind: runtime.ExprMingle, A: %s, B: %s}", exprLiteral(e.A), exprLiteral(e.B))
	case runtime.ExprSelect:
		return fmt.Sprintf("&runtime.Expr{Kind: runtime.ExprSelect, A: %s, B: %s}", exprLiteral(e.A), exprLiteral(e.B))
	case runtime.ExprUnary:
		return fmt.Sprintf("&runtime.Expr{Kind: runtime.ExprUnary, Op: %s, X: %s}", unOpName(e.Op), exprLiteral(e.X))
	default:
		return "&runtime.Expr{Kind: runtime.ExprNum, Num: 0}"
	}
}

// exprSliceLiteral renders a []runtime.Expr (held by value in LValue.Subs
// and Statement.Dims/Exprs, since those slices are never shared the way a
// Mingle/Select/Unary operand's *Expr is).
func exprSliceLiteral(es []runtime.Expr) string {
	if len(es) == 0 {
		return "nil"
	}
	parts := make([]string, len(es))
	for i := range es {
		parts[i] = "*" + exprLiteral(&es[i])
	}
	return "[]runtime.Expr{" + strings.Join(parts, ", ") + "}"
}

var gerundNames = [...]string{
	"runtime.GerundAssigning", "runtime.GerundNexting", "runtime.GerundForgetting",
	"runtime.GerundResuming", "runtime.GerundStashing", "runtime.GerundRetrieving",
	"runtime.GerundIgnoring", "runtime.GerundRemembering", "runtime.GerundAbstaining",
	"runtime.GerundReinstating", "runtime.GerundComingFrom", "runtime.GerundWritingIn",
	"runtime.GerundReadingOut", "runtime.GerundTryingAgain",
}

func gerundName(g runtime.GerundClass) string {
	if int(g) >= 0 && int(g) < len(gerundNames) {
		return gerundNames[g]
	}
	return "runtime.GerundAssigning"
}

func targetLiteral(t runtime.Target) string {
	switch t.Kind {
	case runtime.TargetLabels:
		return fmt.Sprintf("runtime.Target{Kind: runtime.TargetLabels, Labels: %s}", intSliceLiteral(t.Labels))
	case runtime.TargetGerund:
		return fmt.Sprintf("runtime.Target{Kind: runtime.TargetGerund, Gerund: %s}", gerundName(t.Gerund))
	default:
		return fmt.Sprintf("runtime.Target{Kind: runtime.TargetExpr, Expr: %s}", exprLiteral(t.Expr))
	}
}

func bytesLiteral(bs []byte) string {
	if len(bs) == 0 {
		return "nil"
	}
	parts := make([]string, len(bs))
	for i, b := range bs {
		parts[i] = strconv.Itoa(int(b))
	}
	return "[]byte{" + strings.Join(parts, ", ") + "}"
}

var bodyKindNames = [...]string{
	"runtime.BodyCalc", "runtime.BodyCalcDim", "runtime.BodyNext", "runtime.BodyForget",
	"runtime.BodyResume", "runtime.BodyStash", "runtime.BodyRetrieve", "runtime.BodyIgnore",
	"runtime.BodyRemember", "runtime.BodyAbstain", "runtime.BodyReinstate", "runtime.BodyComeFrom",
	"runtime.BodyWriteIn", "runtime.BodyReadOut", "runtime.BodyGiveUp", "runtime.BodyTryAgain",
	"runtime.BodyLiteralOutput", "runtime.BodyBad",
}

func bodyKindName(k runtime.BodyKind) string {
	if int(k) >= 0 && int(k) < len(bodyKindNames) {
		return bodyKindNames[k]
	}
	return "runtime.BodyBad"
}

// statementLiteral renders one runtime.Statement as Go source text. Every
// field is printed by name so zero-value fields for body variants the
// statement doesn't use are simply omitted.
func statementLiteral(s *runtime.Statement) string {
	var b strings.Builder
	fmt.Fprintf(&b, "{Kind: %s, Label: %d, Probability: %d, Negate: %t, Pos: %s, Line: %s, Disabled: %t, BugCandidate: %t",
		bodyKindName(s.Kind), s.Label, s.Probability, s.Negate, posLiteral(s.Pos), strconv.Quote(s.Line), s.Disabled, s.BugCandidate)

	switch s.Kind {
	case runtime.BodyCalc:
		fmt.Fprintf(&b, ", LHS: %s, RHS: %s", lvalueLiteral(s.LHS), exprLiteral(s.RHS))
	case runtime.BodyCalcDim:
		fmt.Fprintf(&b, ", Var: %s, Dims: %s", varRefLiteral(s.Var), exprSliceLiteral(s.Dims))
	case runtime.BodyNext:
		fmt.Fprintf(&b, ", NextLabel: %d", s.NextLabel)
	case runtime.BodyForget, runtime.BodyResume:
		fmt.Fprintf(&b, ", N: %s", exprLiteral(s.N))
	case runtime.BodyStash, runtime.BodyRetrieve, runtime.BodyIgnore, runtime.BodyRemember:
		fmt.Fprintf(&b, ", Vars: %s", varRefSliceLiteral(s.Vars))
	case runtime.BodyAbstain, runtime.BodyReinstate, runtime.BodyComeFrom:
		fmt.Fprintf(&b, ", Target: %s", targetLiteral(s.Target))
	case runtime.BodyWriteIn:
		fmt.Fprintf(&b, ", LVals: %s", lvalueSliceLiteral(s.LVals))
	case runtime.BodyReadOut:
		fmt.Fprintf(&b, ", Exprs: %s", exprSliceLiteral(s.Exprs))
	case runtime.BodyLiteralOutput:
		fmt.Fprintf(&b, ", Bytes: %s", bytesLiteral(s.Bytes))
	case runtime.BodyBad:
		fmt.Fprintf(&b, ", Raw: %s", strconv.Quote(s.Raw))
	case runtime.BodyGiveUp, runtime.BodyTryAgain:
		// no extra fields
	}
	b.WriteString("}")
	return b.String()
}
