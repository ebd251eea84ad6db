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

package ast

// Expr is the closed set of expression node kinds: Num, Var, Mingle,
// Select and the three unary bit operators. Avoid a visitor: a type
// switch on Expr at the few call sites that need to dispatch (interp's
// evaluator, optimize's folder, translate's emitter) is the natural fit
// and adds no extra machinery, per the design note in spec.md §9.
type Expr interface {
	exprNode()
}

// NumExpr is a literal numeric constant, always parsed as 16 bits wide;
// it is promoted to 32 bits only where an operation demands it.
type NumExpr struct {
	Value uint16
}

func (*NumExpr) exprNode() {}

// VarExpr reads the current value of a variable reference (a scalar read,
// or an array read through Subs subscripts).
type VarExpr struct {
	LValue LValue
}

func (*VarExpr) exprNode() {}

// MingleExpr is the `$` binary operator: interleave the bits of A and B
// into a 32-bit result, A supplying the high bit of each pair.
type MingleExpr struct {
	A, B Expr
}

func (*MingleExpr) exprNode() {}

// SelectExpr is the `~` binary operator: extract from A the bits selected
// by 1-bits in B, right-aligned and zero-filled.
type SelectExpr struct {
	A, B Expr
}

func (*SelectExpr) exprNode() {}

// UnOp is one of the three unary bit operators.
type UnOp int

const (
	UnAnd UnOp = iota // &
	UnOr              // V
	UnXor             // ?
)

func (op UnOp) String() string {
	switch op {
	case UnAnd:
		return "&"
	case UnOr:
		return "V"
	case UnXor:
		return "?"
	default:
		return "?unop?"
	}
}

// UnaryExpr applies a unary bit operator to X: the bitwise Op of X with
// its one-bit right rotation, width preserved.
type UnaryExpr struct {
	Op UnOp
	X  Expr
}

func (*UnaryExpr) exprNode() {}

// LValue is a variable reference with optional array subscripts and an
// optional literal "#n" suffix, the latter used only in WRITE IN targets
// (spec.md §3); its exact surface meaning is a single literal attached to
// the reference, not a subscript, so it is carried separately.
type LValue struct {
	Var   VarRef
	Subs  []Expr
	Sharp *uint16
}
