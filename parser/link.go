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

package parser

import (
	"strconv"

	"github.com/sgreben/intercal72/ast"
	"github.com/sgreben/intercal72/diagnostic"
)

// link performs the two post-parse passes of spec.md §4.2: literal label
// resolution (every Next/ComeFrom/Abstain/Reinstate target naming a literal
// label must resolve against prog.Labels; a computed target is left
// unchecked here and resolved per-step by the control machine instead) and
// literal COME FROM linking (at most one literal COME FROM may target a
// given label).
func link(prog *ast.Program) error {
	for i := 0; i < prog.Len(); i++ {
		stmt := prog.At(i)
		switch b := stmt.Body.(type) {
		case *ast.Next:
			if _, ok := prog.LabelIndex(b.Label); !ok {
				return diagnostic.New(diagnostic.E139, stmt.Pos, stmt.Line).
					WithExtra("no such label (" + strconv.Itoa(b.Label) + ")")
			}
		case *ast.ComeFrom:
			if b.Target.Kind == ast.TargetLabels {
				if err := linkComeFrom(prog, i, stmt, b.Target.Labels); err != nil {
					return err
				}
			}
		case *ast.Abstain:
			if b.Target.Kind == ast.TargetLabels {
				if err := checkLabels(prog, stmt, b.Target.Labels); err != nil {
					return err
				}
			}
		case *ast.Reinstate:
			if b.Target.Kind == ast.TargetLabels {
				if err := checkLabels(prog, stmt, b.Target.Labels); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func checkLabels(prog *ast.Program, stmt *ast.Stmt, labels []int) error {
	for _, l := range labels {
		if _, ok := prog.LabelIndex(l); !ok {
			return diagnostic.New(diagnostic.E139, stmt.Pos, stmt.Line).
				WithExtra("no such label (" + strconv.Itoa(l) + ")")
		}
	}
	return nil
}

// linkComeFrom resolves a literal COME FROM's label targets and records the
// back-link in prog.ComeFromLinks, rejecting a second literal COME FROM
// aimed at an already-claimed label (E182).
func linkComeFrom(prog *ast.Program, idx int, stmt *ast.Stmt, labels []int) error {
	for _, l := range labels {
		targetIdx, ok := prog.LabelIndex(l)
		if !ok {
			return diagnostic.New(diagnostic.E139, stmt.Pos, stmt.Line).
				WithExtra("no such label (" + strconv.Itoa(l) + ")")
		}
		if other, taken := prog.ComeFromLinks[targetIdx]; taken && other != idx {
			return diagnostic.New(diagnostic.E182, stmt.Pos, stmt.Line).
				WithExtra("label (" + strconv.Itoa(l) + ") already has a COME FROM")
		}
		prog.ComeFromLinks[targetIdx] = idx
		prog.At(targetIdx).ComeFromTarget = idx
	}
	return nil
}

