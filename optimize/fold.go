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

package optimize

import "github.com/sgreben/intercal72/ast"

// foldConstants replaces pure operator subtrees over Num constants with
// the computed Num, everywhere an Expr appears in the program. Mingle is
// never folded: its result packs two operands into a 32-bit quantity the
// surface grammar has no literal syntax to hold (a Num literal is always
// 16-bit, per ast.NumExpr), so folding it would need a new literal kind
// rather than collapsing an existing one — left as a representability gap,
// not a correctness one, since E533 can never trigger between two literal
// operands (both always fit in 16 bits by construction).
func foldConstants(prog *ast.Program, _ *config) (*ast.Program, bool) {
	changed := false
	for i := 0; i < prog.Len(); i++ {
		stmt := prog.At(i)
		newBody, bodyChanged := foldBody(stmt.Body)
		if bodyChanged {
			stmt.Body = newBody
			changed = true
		}
	}
	if !changed {
		return prog, false
	}
	return prog, true
}

func foldBody(b ast.Body) (ast.Body, bool) {
	switch body := b.(type) {
	case *ast.Calc:
		lhs, lc := foldLValue(body.LHS)
		rhs, rc := foldExpr(body.RHS)
		if !lc && !rc {
			return b, false
		}
		return &ast.Calc{LHS: lhs, RHS: rhs}, true
	case *ast.CalcDim:
		dims, c := foldExprs(body.Dims)
		if !c {
			return b, false
		}
		return &ast.CalcDim{Var: body.Var, Dims: dims}, true
	case *ast.Forget:
		n, c := foldExpr(body.N)
		if !c {
			return b, false
		}
		return &ast.Forget{N: n}, true
	case *ast.Resume:
		n, c := foldExpr(body.N)
		if !c {
			return b, false
		}
		return &ast.Resume{N: n}, true
	case *ast.ReadOut:
		exprs, c := foldExprs(body.Exprs)
		if !c {
			return b, false
		}
		return &ast.ReadOut{Exprs: exprs}, true
	case *ast.WriteIn:
		lvals := make([]ast.LValue, len(body.LVals))
		c := false
		for i, lv := range body.LVals {
			folded, lc := foldLValue(lv)
			lvals[i] = folded
			c = c || lc
		}
		if !c {
			return b, false
		}
		return &ast.WriteIn{LVals: lvals}, true
	case *ast.Abstain:
		t, c := foldTarget(body.Target)
		if !c {
			return b, false
		}
		return &ast.Abstain{Target: t}, true
	case *ast.Reinstate:
		t, c := foldTarget(body.Target)
		if !c {
			return b, false
		}
		return &ast.Reinstate{Target: t}, true
	case *ast.ComeFrom:
		t, c := foldTarget(body.Target)
		if !c {
			return b, false
		}
		return &ast.ComeFrom{Target: t}, true
	default:
		return b, false
	}
}

func foldTarget(t ast.Target) (ast.Target, bool) {
	if t.Kind != ast.TargetExpr {
		return t, false
	}
	e, c := foldExpr(t.Expr)
	if !c {
		return t, false
	}
	return ast.ExprTarget(e), true
}

func foldExprs(exprs []ast.Expr) ([]ast.Expr, bool) {
	out := make([]ast.Expr, len(exprs))
	changed := false
	for i, e := range exprs {
		folded, c := foldExpr(e)
		out[i] = folded
		changed = changed || c
	}
	return out, changed
}

func foldLValue(lv ast.LValue) (ast.LValue, bool) {
	if len(lv.Subs) == 0 {
		return lv, false
	}
	subs, c := foldExprs(lv.Subs)
	if !c {
		return lv, false
	}
	return ast.LValue{Var: lv.Var, Subs: subs, Sharp: lv.Sharp}, true
}

// foldExpr folds e bottom-up, returning the (possibly rewritten) Expr and
// whether anything changed.
func foldExpr(e ast.Expr) (ast.Expr, bool) {
	switch x := e.(type) {
	case *ast.NumExpr:
		return x, false

	case *ast.VarExpr:
		lv, c := foldLValue(x.LValue)
		if !c {
			return x, false
		}
		return &ast.VarExpr{LValue: lv}, true

	case *ast.MingleExpr:
		a, ac := foldExpr(x.A)
		b, bc := foldExpr(x.B)
		if !ac && !bc {
			return x, false
		}
		return &ast.MingleExpr{A: a, B: b}, true

	case *ast.SelectExpr:
		a, ac := foldExpr(x.A)
		b, bc := foldExpr(x.B)
		an, aok := a.(*ast.NumExpr)
		bn, bok := b.(*ast.NumExpr)
		if aok && bok {
			return &ast.NumExpr{Value: selectConst(an.Value, bn.Value)}, true
		}
		if !ac && !bc {
			return x, false
		}
		return &ast.SelectExpr{A: a, B: b}, true

	case *ast.UnaryExpr:
		inner, c := foldExpr(x.X)
		if n, ok := inner.(*ast.NumExpr); ok {
			return &ast.NumExpr{Value: unaryConst(x.Op, n.Value)}, true
		}
		if !c {
			return x, false
		}
		return &ast.UnaryExpr{Op: x.Op, X: inner}, true

	default:
		return e, false
	}
}

// selectConst is selectOp restricted to two 16-bit operands, which always
// yields a 16-bit result (interp.selectOp's own FitsIn16 check on both
// operands is unconditionally true here).
func selectConst(a, b uint16) uint16 {
	var result uint16
	var out uint
	for i := 0; i < 16; i++ {
		if (b>>i)&1 != 0 {
			bit := (a >> i) & 1
			result |= bit << out
			out++
		}
	}
	return result
}

// unaryConst is interp.unary restricted to a 16-bit operand.
func unaryConst(op ast.UnOp, v uint16) uint16 {
	rot := (v >> 1) | (v << 15)
	switch op {
	case ast.UnAnd:
		return v & rot
	case ast.UnOr:
		return v | rot
	default: // UnXor
		return v ^ rot
	}
}
