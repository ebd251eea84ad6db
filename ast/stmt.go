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

import "github.com/sgreben/intercal72/diagnostic"

// Body is the closed set of statement body variants.
type Body interface {
	bodyNode()
}

// Calc is "DO <lvalue> <- <expr>": an assignment to a scalar or array
// element.
type Calc struct {
	LHS LValue
	RHS Expr
}

func (*Calc) bodyNode() {}

// CalcDim is "DO <var> <- DIM <exprs>": (re)dimensions an array variable.
// All dimensions must be non-zero (spec.md §3 invariant).
type CalcDim struct {
	Var  VarRef
	Dims []Expr
}

func (*CalcDim) bodyNode() {}

// Next is "DO (label) NEXT": push the return address and jump.
type Next struct {
	Label int
}

func (*Next) bodyNode() {}

// Forget is "DO FORGET <expr>": pop min(n, depth) next-stack frames.
type Forget struct {
	N Expr
}

func (*Forget) bodyNode() {}

// Resume is "DO RESUME <expr>": pop n frames and jump to the last one's
// saved address.
type Resume struct {
	N Expr
}

func (*Resume) bodyNode() {}

// StashStmt is "DO STASH <vars>": push a deep copy of each variable.
type StashStmt struct {
	Vars []VarRef
}

func (*StashStmt) bodyNode() {}

// RetrieveStmt is "DO RETRIEVE <vars>": pop and restore each variable.
type RetrieveStmt struct {
	Vars []VarRef
}

func (*RetrieveStmt) bodyNode() {}

// IgnoreStmt is "DO IGNORE <vars>": set the ignored bit.
type IgnoreStmt struct {
	Vars []VarRef
}

func (*IgnoreStmt) bodyNode() {}

// RememberStmt is "DO REMEMBER <vars>": clear the ignored bit.
type RememberStmt struct {
	Vars []VarRef
}

func (*RememberStmt) bodyNode() {}

// Abstain is "DO ABSTAIN FROM <target>": disable a statement, statement
// set, or gerund class.
type Abstain struct {
	Target Target
}

func (*Abstain) bodyNode() {}

// Reinstate is "DO REINSTATE <target>": re-enable.
type Reinstate struct {
	Target Target
}

func (*Reinstate) bodyNode() {}

// ComeFrom is "DO <label> COME FROM <target>" or a computed form: control
// transfers here whenever execution would otherwise leave Target's
// statement.
type ComeFrom struct {
	Target Target
}

func (*ComeFrom) bodyNode() {}

// WriteIn is "DO WRITE IN <lvalues>": read from standard input.
type WriteIn struct {
	LVals []LValue
}

func (*WriteIn) bodyNode() {}

// ReadOut is "DO READ OUT <exprs>": write to standard output.
type ReadOut struct {
	Exprs []Expr
}

func (*ReadOut) bodyNode() {}

// GiveUp is "DO GIVE UP": terminate successfully.
type GiveUp struct{}

func (*GiveUp) bodyNode() {}

// TryAgain is "DO TRY AGAIN": restart execution at statement 0 without
// clearing state. Only valid as the program's last statement (E993
// otherwise).
type TryAgain struct{}

func (*TryAgain) bodyNode() {}

// LiteralOutput writes Bytes to standard output verbatim. It never appears
// in parsed source; the optimizer's whole-program-collapse pass introduces
// it to replace an entire side-effect-free program with its captured
// output (spec.md §4.5).
type LiteralOutput struct {
	Bytes []byte
}

func (*LiteralOutput) bodyNode() {}

// BadStmt captures a statement body the parser could not make sense of,
// verbatim. This is not a parse failure: the statement boundary (DO/PLEASE,
// label, NOT, probability) parsed fine, only the body didn't. Executing it
// raises E000 with Raw as the offending text.
type BadStmt struct {
	Raw string
}

func (*BadStmt) bodyNode() {}

// Stmt is a single program statement with its full surface-syntax
// metadata plus the runtime-mutable bits ABSTAIN/REINSTATE and the
// COME FROM linker toggle.
type Stmt struct {
	Label       int  // 0 if absent
	Polite      bool // PLEASE was present
	Negate      bool // NOT/N'T was present (ABSTAIN-family grammar)
	Probability int  // 1..100, default 100
	Pos         diagnostic.Pos
	Line        string // raw source line, for diagnostic rendering
	Body        Body

	// Runtime-mutable bits (spec.md §3).
	Disabled       bool // toggled by ABSTAIN/REINSTATE
	InitDisabled   bool // the Disabled state restored by REINSTATE of ABSTAINING (bulk)
	ComeFromTarget int  // index of the literal COME FROM statement targeting this
	// statement's label, or -1 if none. Populated at link time (spec.md §4.2).
}

// NewStmt builds a Stmt with sane defaults (probability 100, no literal
// COME FROM link yet).
func NewStmt(body Body) *Stmt {
	return &Stmt{Probability: 100, Body: body, ComeFromTarget: -1}
}
