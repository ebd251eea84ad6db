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

package interp

import (
	"github.com/pkg/errors"
	"github.com/sgreben/intercal72/ast"
	"github.com/sgreben/intercal72/diagnostic"
)

func (m *Machine) execCalc(b *ast.Calc) error {
	stmt := m.prog.At(m.ip)
	v, err := m.eval(b.RHS, stmt.Pos, stmt.Line)
	if err != nil {
		return err
	}
	return m.store(b.LHS, v, stmt.Pos, stmt.Line)
}

func (m *Machine) execCalcDim(b *ast.CalcDim) error {
	stmt := m.prog.At(m.ip)
	if m.ignored[b.Var] {
		return nil
	}
	dims := make([]int, len(b.Dims))
	total := 1
	for i, e := range b.Dims {
		v, err := m.eval(e, stmt.Pos, stmt.Line)
		if err != nil {
			return err
		}
		n := int(v.Uint32())
		if n <= 0 {
			return errors.Errorf("interp: %s: array dimension must be positive, got %d", stmt.Pos, n)
		}
		dims[i] = n
		total *= n
	}
	arr := &arrayVar{kind: b.Var.Kind, dims: dims, cells: make([]ast.Value, total)}
	width := b.Var.Kind.Width()
	for i := range arr.cells {
		arr.cells[i] = ast.Value{W: width}
	}
	if b.Var.Kind == ast.Tail {
		m.tails[b.Var.N] = arr
	} else {
		m.hybrids[b.Var.N] = arr
	}
	return nil
}

func (m *Machine) execNext(b *ast.Next, stmt *ast.Stmt) error {
	if len(m.nextStack) >= nextStackLimit {
		return diagnostic.New(diagnostic.E123, stmt.Pos, stmt.Line)
	}
	target, ok := m.prog.LabelIndex(b.Label)
	if !ok {
		return errors.Errorf("interp: %s: no such label (%d)", stmt.Pos, b.Label)
	}
	m.nextStack = append(m.nextStack, m.ip+1)
	m.ip = target
	m.jumped = true
	return nil
}

func (m *Machine) execForget(b *ast.Forget) error {
	stmt := m.prog.At(m.ip)
	v, err := m.eval(b.N, stmt.Pos, stmt.Line)
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

func (m *Machine) execResume(b *ast.Resume, stmt *ast.Stmt) error {
	v, err := m.eval(b.N, stmt.Pos, stmt.Line)
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

func (m *Machine) execStash(vars []ast.VarRef) error {
	stmt := m.prog.At(m.ip)
	for _, v := range vars {
		if m.ignored[v] {
			return diagnostic.New(diagnostic.E997, stmt.Pos, stmt.Line)
		}
		if len(m.stash[v]) >= stashLimit {
			return errors.Errorf("interp: %s: stash depth exceeded for %s", stmt.Pos, v)
		}
		m.stash[v] = append(m.stash[v], m.snapshot(v))
	}
	return nil
}

func (m *Machine) execRetrieve(vars []ast.VarRef, stmt *ast.Stmt) error {
	for _, v := range vars {
		if m.ignored[v] {
			return diagnostic.New(diagnostic.E997, stmt.Pos, stmt.Line)
		}
		frames := m.stash[v]
		if len(frames) == 0 {
			return errors.Errorf("interp: %s: retrieve from empty stash for %s", stmt.Pos, v)
		}
		f := frames[len(frames)-1]
		m.stash[v] = frames[:len(frames)-1]
		m.restore(v, f)
	}
	return nil
}

func (m *Machine) snapshot(v ast.VarRef) stashFrame {
	if v.Kind.IsArray() {
		arr, ok := m.arrayFor(v)
		if !ok {
			return stashFrame{}
		}
		dims := append([]int(nil), arr.dims...)
		cells := append([]ast.Value(nil), arr.cells...)
		return stashFrame{dims: dims, cells: cells}
	}
	switch v.Kind {
	case ast.Spot:
		return stashFrame{scalar: m.spots[v.N]}
	default:
		return stashFrame{scalar: m.twoSpots[v.N]}
	}
}

func (m *Machine) restore(v ast.VarRef, f stashFrame) {
	if v.Kind.IsArray() {
		arr := &arrayVar{kind: v.Kind, dims: f.dims, cells: f.cells}
		if v.Kind == ast.Tail {
			m.tails[v.N] = arr
		} else {
			m.hybrids[v.N] = arr
		}
		return
	}
	switch v.Kind {
	case ast.Spot:
		m.spots[v.N] = f.scalar
	default:
		m.twoSpots[v.N] = f.scalar
	}
}

// execAbstainReinstate bulk-toggles Disabled across a label set, a single
// gerund class, or a computed (expression) target.
func (m *Machine) execAbstainReinstate(t ast.Target, disable bool, stmt *ast.Stmt) error {
	switch t.Kind {
	case ast.TargetLabels:
		for _, l := range t.Labels {
			idx, ok := m.prog.LabelIndex(l)
			if !ok {
				return diagnostic.New(diagnostic.E139, stmt.Pos, stmt.Line)
			}
			m.prog.At(idx).Disabled = disable
		}
	case ast.TargetGerund:
		for i := 0; i < m.prog.Len(); i++ {
			if t.Gerund.Matches(m.prog.At(i).Body) {
				m.prog.At(i).Disabled = disable
			}
		}
	case ast.TargetExpr:
		v, err := m.eval(t.Expr, stmt.Pos, stmt.Line)
		if err != nil {
			return err
		}
		idx, ok := m.prog.LabelIndex(int(v.Uint32()))
		if !ok {
			return diagnostic.New(diagnostic.E139, stmt.Pos, stmt.Line)
		}
		m.prog.At(idx).Disabled = disable
	}
	return nil
}

// resolveComeFrom implements §4.4 step 2: after executing the statement at
// ip, find any enabled COME FROM (literal or computed) whose target is
// ip's label, and redirect control to its successor. Two or more matches
// is E555.
func (m *Machine) resolveComeFrom(ip int) (int, error) {
	stmt := m.prog.At(ip)
	var matchSite = -1

	if cfIdx, ok := m.prog.ComeFromLinks[ip]; ok {
		if !m.prog.At(cfIdx).Disabled {
			matchSite = cfIdx
		}
	}
	if stmt.Label != 0 {
		for _, cfIdx := range m.prog.ComputedComeFrom {
			cfStmt := m.prog.At(cfIdx)
			if cfStmt.Disabled {
				continue
			}
			cf := cfStmt.Body.(*ast.ComeFrom)
			v, err := m.eval(cf.Target.Expr, cfStmt.Pos, cfStmt.Line)
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
