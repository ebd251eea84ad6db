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

// GerundClass bulk-addresses every statement whose body variant matches,
// for ABSTAIN/REINSTATE (spec.md §4.4).
type GerundClass int

const (
	GerundAssigning GerundClass = iota
	GerundNexting
	GerundForgetting
	GerundResuming
	GerundStashing
	GerundRetrieving
	GerundIgnoring
	GerundRemembering
	GerundAbstaining
	GerundReinstating
	GerundComingFrom
	GerundWritingIn
	GerundReadingOut
	GerundTryingAgain
)

var gerundNames = [...]string{
	GerundAssigning:    "ASSIGNING",
	GerundNexting:      "NEXTING",
	GerundForgetting:   "FORGETTING",
	GerundResuming:     "RESUMING",
	GerundStashing:     "STASHING",
	GerundRetrieving:   "RETRIEVING",
	GerundIgnoring:     "IGNORING",
	GerundRemembering:  "REMEMBERING",
	GerundAbstaining:   "ABSTAINING",
	GerundReinstating:  "REINSTATING",
	GerundComingFrom:   "COMING FROM",
	GerundWritingIn:    "WRITING IN",
	GerundReadingOut:   "READING OUT",
	GerundTryingAgain:  "TRYING AGAIN",
}

func (g GerundClass) String() string {
	if int(g) >= 0 && int(g) < len(gerundNames) {
		return gerundNames[g]
	}
	return "UNKNOWN GERUND"
}

// Matches reports whether a statement body of the given variant belongs to
// this gerund class, used by bulk ABSTAIN/REINSTATE.
func (g GerundClass) Matches(b Body) bool {
	switch b.(type) {
	case *Calc, *CalcDim:
		return g == GerundAssigning
	case *Next:
		return g == GerundNexting
	case *Forget:
		return g == GerundForgetting
	case *Resume:
		return g == GerundResuming
	case *StashStmt:
		return g == GerundStashing
	case *RetrieveStmt:
		return g == GerundRetrieving
	case *IgnoreStmt:
		return g == GerundIgnoring
	case *RememberStmt:
		return g == GerundRemembering
	case *Abstain:
		return g == GerundAbstaining
	case *Reinstate:
		return g == GerundReinstating
	case *ComeFrom:
		return g == GerundComingFrom
	case *WriteIn:
		return g == GerundWritingIn
	case *ReadOut:
		return g == GerundReadingOut
	case *TryAgain:
		return g == GerundTryingAgain
	default:
		return false
	}
}

// TargetKind discriminates the three shapes a Target can take.
type TargetKind int

const (
	// TargetLabels addresses one or more literal labels (a single literal
	// label for NEXT/COME FROM, or a comma-separated set for ABSTAIN/
	// REINSTATE's "plain" form).
	TargetLabels TargetKind = iota
	// TargetGerund bulk-addresses every statement of a given gerund class.
	TargetGerund
	// TargetExpr is a computed target: an expression evaluated to a label
	// at execution time (computed ABSTAIN / computed COME FROM).
	TargetExpr
)

// Target is either a literal label, a label set, a gerund class, or a
// computed expression, per spec.md §3.
type Target struct {
	Kind   TargetKind
	Labels []int
	Gerund GerundClass
	Expr   Expr
}

// LabelTarget builds a Target addressing a single literal label.
func LabelTarget(label int) Target {
	return Target{Kind: TargetLabels, Labels: []int{label}}
}

// LabelSetTarget builds a Target addressing a set of literal labels.
func LabelSetTarget(labels []int) Target {
	return Target{Kind: TargetLabels, Labels: labels}
}

// GerundTarget builds a Target addressing a gerund class.
func GerundTarget(g GerundClass) Target {
	return Target{Kind: TargetGerund, Gerund: g}
}

// ExprTarget builds a computed Target.
func ExprTarget(e Expr) Target {
	return Target{Kind: TargetExpr, Expr: e}
}
