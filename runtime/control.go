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

package runtime

import (
	"github.com/pkg/errors"
	"github.com/sgreben/intercal72/diagnostic"
)

func (m *Machine) execCalcDim(stmt *Statement) error {
	if m.ignored[stmt.Var] {
		return nil
	}
	dims := make([]int, len(stmt.Dims))
	total := 1
	for i := range stmt.Dims {
		v, err := m.eval(&stmt.Dims[i], stmt.Pos, stmt.Line)
		if err != nil {
			return err
		}
		n := int(v.Uint32())
		if n <= 0 {
			return errors.Errorf("runtime: %v: array dimension must be positive, got %d", stmt.Pos, n)
		}
		dims[i] = n
		total *= n
	}
	arr := &arrayVar{kind: stmt.Var.Kind, dims: dims, cells: make([]Value, total)}
	width := stmt.Var.Kind.Width()
	for i := range arr.cells {
		arr.cells[i] = Value{W: width}
	}
	if stmt.Var.Kind == Tail {
		m.tails[stmt.Var.N] = arr
	} else {
		m.hybrids[stmt.Var.N] = arr
	}
	return nil
}

func (m *Machine) execNext(stmt *Statement) error {
	if len(m.nextStack) >= nextStackLimit {
		return diagnostic.New(diagnostic.E123, stmt.Pos, stmt.Line)
	}
	target, ok := m.prog.LabelIndex(stmt.NextLabel)
	if !ok {
		return errors.Errorf("runtime: %v: no such label (%d)", stmt.Pos, stmt.NextLabel)
	}
	m.nextStack = append(m.nextStack, m.ip+1)
	m.ip = target
	m.jumped = true
	return nil
}

func (m *Machine) execForget(stmt *Statement) error {
	v, err := m.eval(stmt.N, stmt.Pos, stmt.Line)
	if err != nil {
		return err
	}
	n := int(v.Uint32())
	if n > len(m.nextStack) {
		n = len(m.nextStack)
	}
	m.nextStack = m.nextStack[:len(m.nextStack)-n]
	return nil
}

func (m *Machine) execResume(stmt *Statement) error {
	v, err := m.eval(stmt.N, stmt.Pos, stmt.Line)
	if err != nil {
		return err
	}
	n := int(v.Uint32())
	if n == 0 {
		return diagnostic.New(diagnostic.E621, stmt.Pos, stmt.Line)
	}
	if n > len(m.nextStack) {
		return diagnostic.New(diagnostic.E632, stmt.Pos, stmt.Line)
	}
	target := m.nextStack[len(m.nextStack)-n]
	m.nextStack = m.nextStack[:len(m.nextStack)-n]
	m.ip = target
	m.jumped = true
	return nil
}

func (m *Machine) execStash(stmt *Statement) error {
	for _, v := range stmt.Vars {
		if m.ignored[v] {
			return diagnostic.New(diagnostic.E997, stmt.Pos, stmt.Line)
		}
		if len(m.stash[v]) >= stashLimit {
			return errors.Errorf("runtime: %v: stash depth exceeded for %s", stmt.Pos, v)
		}
		m.stash[v] = append(m.stash[v], m.snapshot(v))
	}
	return nil
}

func (m *Machine) execRetrieve(stmt *Statement) error {
	for _, v := range stmt.Vars {
		if m.ignored[v] {
			return diagnostic.New(diagnostic.E997, stmt.Pos, stmt.Line)
		}
		frames := m.stash[v]
		if len(frames) == 0 {
			return errors.Errorf("runtime: %v: retrieve from empty stash for %s", stmt.Pos, v)
		}
		f := frames[len(frames)-1]
		m.stash[v] = frames[:len(frames)-1]
		m.restore(v, f)
	}
	return nil
}

func (m *Machine) snapshot(v VarRef) stashFrame {
	if v.Kind.IsArray() {
		arr, ok := m.arrayFor(v)
		if !ok {
			return stashFrame{}
		}
		dims := append([]int(nil), arr.dims...)
		cells := append([]Value(nil), arr.cells...)
		return stashFrame{dims: dims, cells: cells}
	}
	switch v.Kind {
	case Spot:
		return stashFrame{scalar: m.spots[v.N]}
	default:
		return stashFrame{scalar: m.twoSpots[v.N]}
	}
}

func (m *Machine) restore(v VarRef, f stashFrame) {
	if v.Kind.IsArray() {
		arr := &arrayVar{kind: v.Kind, dims: f.dims, cells: f.cells}
		if v.Kind == Tail {
			m.tails[v.N] = arr
		} else {
			m.hybrids[v.N] = arr
		}
		return
	}
	switch v.Kind {
	case Spot:
		m.spots[v.N] = f.scalar
	default:
		m.twoSpots[v.N] = f.scalar
	}
}

// execAbstainReinstate bulk-toggles Disabled across a label set, a gerund
// class, or a computed target.
func (m *Machine) execAbstainReinstate(t Target, disable bool, stmt *Statement) error {
	switch t.Kind {
	case TargetLabels:
		for _, l := range t.Labels {
			idx, ok := m.prog.LabelIndex(l)
			if !ok {
				return diagnostic.New(diagnostic.E139, stmt.Pos, stmt.Line)
			}
			m.prog.Stmts[idx].Disabled = disable
		}
	case TargetGerund:
		for i := range m.prog.Stmts {
			if t.Gerund.Matches(m.prog.Stmts[i].Kind) {
				m.prog.Stmts[i].Disabled = disable
			}
		}
	case TargetExpr:
		v, err := m.eval(t.Expr, stmt.Pos, stmt.Line)
		if err != nil {
			return err
		}
		idx, ok := m.prog.LabelIndex(int(v.Uint32()))
		if !ok {
			return diagnostic.New(diagnostic.E139, stmt.Pos, stmt.Line)
		}
		m.prog.Stmts[idx].Disabled = disable
	}
	return nil
}

// resolveComeFrom implements §4.4 step 2, identically to interp's version,
// over the Program's plain int-keyed link tables.
func (m *Machine) resolveComeFrom(ip int) (int, error) {
	stmt := &m.prog.Stmts[ip]
	matchSite := -1

	if cfIdx, ok := m.prog.ComeFromLinks[ip]; ok {
		if !m.prog.Stmts[cfIdx].Disabled {
			matchSite = cfIdx
		}
	}
	if stmt.Label != 0 {
		for _, cfIdx := range m.prog.ComputedComeFrom {
			cfStmt := &m.prog.Stmts[cfIdx]
			if cfStmt.Disabled {
				continue
			}
			v, err := m.eval(cfStmt.Target.Expr, cfStmt.Pos, cfStmt.Line)
			if err != nil {
				return 0, err
			}
			if int(v.Uint32()) != stmt.Label {
				continue
			}
			if matchSite != -1 && matchSite != cfIdx {
				return 0, diagnostic.New(diagnostic.E555, stmt.Pos, stmt.Line)
			}
			matchSite = cfIdx
		}
	}

	if matchSite != -1 {
		return matchSite + 1, nil
	}
	return ip + 1, nil
}
