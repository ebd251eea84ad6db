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

// Program is the whole parsed (and, after linking, resolved) source file:
// an arena of statements addressed by integer index, a label table, and
// the COME FROM link tables described in spec.md §3/§4.2.
//
// Statements and expressions are allocated once at parse time and never
// individually freed; every cross-reference into this arena (label
// targets, COME FROM links, NEXT targets) is carried as an int index
// rather than a pointer, so that the optimizer can freely drop, reorder
// or rewrite statements without chasing live pointers (spec.md §9).
type Program struct {
	Stmts []*Stmt

	// Labels maps a label (1..65535, unique, non-zero) to its statement
	// index.
	Labels map[int]int

	// ComeFromLinks maps a target statement index to the statement index
	// of the literal COME FROM targeting it. At most one literal COME FROM
	// may target a given label (E182 at link time); computed forms are
	// resolved per step instead and listed in ComputedComeFrom.
	ComeFromLinks map[int]int

	// ComputedComeFrom holds the indices of statements whose body is a
	// ComeFrom with a computed (TargetExpr) target. These cannot be
	// linked statically (spec.md §4.2, §9) and are scanned by the control
	// machine on every step.
	ComputedComeFrom []int

	// ComputedAbstain holds the indices of Abstain/Reinstate statements
	// with a computed (TargetExpr) target.
	ComputedAbstain []int
}

// New builds an empty Program ready to be populated by the parser.
func New() *Program {
	return &Program{
		Labels:        make(map[int]int),
		ComeFromLinks: make(map[int]int),
	}
}

// Add appends a statement to the arena and returns its index.
func (p *Program) Add(s *Stmt) int {
	p.Stmts = append(p.Stmts, s)
	idx := len(p.Stmts) - 1
	if s.Label != 0 {
		p.Labels[s.Label] = idx
	}
	if cf, ok := s.Body.(*ComeFrom); ok {
		if cf.Target.Kind == TargetExpr {
			p.ComputedComeFrom = append(p.ComputedComeFrom, idx)
		}
	}
	if a, ok := s.Body.(*Abstain); ok && a.Target.Kind == TargetExpr {
		p.ComputedAbstain = append(p.ComputedAbstain, idx)
	}
	if r, ok := s.Body.(*Reinstate); ok && r.Target.Kind == TargetExpr {
		p.ComputedAbstain = append(p.ComputedAbstain, idx)
	}
	return idx
}

// Len returns the number of statements in the program.
func (p *Program) Len() int { return len(p.Stmts) }

// At returns the statement at index idx.
func (p *Program) At(idx int) *Stmt { return p.Stmts[idx] }

// LabelIndex returns the statement index for label, and whether it exists.
func (p *Program) LabelIndex(label int) (int, bool) {
	idx, ok := p.Labels[label]
	return idx, ok
}
