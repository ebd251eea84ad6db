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

// eval evaluates an expression to a Value, per spec.md §4.3.
func (m *Machine) eval(e ast.Expr, pos diagnostic.Pos, line string) (ast.Value, error) {
	switch x := e.(type) {
	case *ast.NumExpr:
		return ast.Val16(x.Value), nil
	case *ast.VarExpr:
		return m.load(x.LValue, pos, line)
	case *ast.MingleExpr:
		a, err := m.eval(x.A, pos, line)
		if err != nil {
			return ast.Value{}, err
		}
		b, err := m.eval(x.B, pos, line)
		if err != nil {
			return ast.Value{}, err
		}
		return mingle(a, b, pos, line)
	case *ast.SelectExpr:
		a, err := m.eval(x.A, pos, line)
		if err != nil {
			return ast.Value{}, err
		}
		b, err := m.eval(x.B, pos, line)
		if err != nil {
			return ast.Value{}, err
		}
		return selectOp(a, b), nil
	case *ast.UnaryExpr:
		v, err := m.eval(x.X, pos, line)
		if err != nil {
			return ast.Value{}, err
		}
		return unary(x.Op, v), nil
	default:
		return ast.Value{}, errors.Errorf("interp: unhandled expr type %T", e)
	}
}

// mingle interleaves the bits of a and b, A supplying the high bit of each
// pair; operands whose bits don't fit in 16 bits raise E533.
func mingle(a, b ast.Value, pos diagnostic.Pos, line string) (ast.Value, error) {
	if !a.FitsIn16() || !b.FitsIn16() {
		return ast.Value{}, diagnostic.New(diagnostic.E533, pos, line)
	}
	var result uint32
	for i := 0; i < 16; i++ {
		abit := (a.Uint32() >> i) & 1
		bbit := (b.Uint32() >> i) & 1
		result |= abit << (2*i + 1)
		result |= bbit << (2 * i)
	}
	return ast.Val32(result), nil
}

// selectOp extracts from A the bits selected by 1-bits in B, right-aligned
// and zero-filled; the result is 16-bit only if both operands fit in 16
// bits.
func selectOp(a, b ast.Value) ast.Value {
	var result uint32
	var out uint
	for i := 0; i < 32; i++ {
		if (b.Uint32()>>i)&1 != 0 {
			bit := (a.Uint32() >> i) & 1
			result |= bit << out
			out++
		}
	}
	if a.FitsIn16() && b.FitsIn16() {
		return ast.Val16(uint16(result))
	}
	return ast.Val32(result)
}

// unary applies one of the three unary bit operators: the op of the
// operand with its one-bit right rotation, width preserved.
func unary(op ast.UnOp, v ast.Value) ast.Value {
	width := uint(16)
	if v.Is32() {
		width = 32
	}
	mask := uint32(1)<<width - 1
	bits := v.Uint32() & mask
	rot := ((bits >> 1) | (bits << (width - 1))) & mask
	var result uint32
	switch op {
	case ast.UnAnd:
		result = bits & rot
	case ast.UnOr:
		result = bits | rot
	case ast.UnXor:
		result = bits ^ rot
	}
	if width == 32 {
		return ast.Val32(result)
	}
	return ast.Val16(uint16(result))
}

// load reads the current value of an LValue, applying array subscripts if
// present. Reading an ignored variable still returns its current value
// (only writes are suppressed, per spec.md §4.4).
func (m *Machine) load(lv ast.LValue, pos diagnostic.Pos, line string) (ast.Value, error) {
	if lv.Var.Kind.IsArray() {
		return m.loadArray(lv, pos, line)
	}
	switch lv.Var.Kind {
	case ast.Spot:
		return m.spots[lv.Var.N], nil
	case ast.TwoSpot:
		return m.twoSpots[lv.Var.N], nil
	default:
		return ast.Value{}, errors.Errorf("interp: unreachable var kind %v", lv.Var.Kind)
	}
}

func (m *Machine) loadArray(lv ast.LValue, pos diagnostic.Pos, line string) (ast.Value, error) {
	arr, ok := m.arrayFor(lv.Var)
	if !ok {
		return ast.Value{}, errors.Errorf("interp: %s: array %s not dimensioned", pos, lv.Var)
	}
	idx, err := m.flatIndex(arr, lv.Subs, pos, line)
	if err != nil {
		return ast.Value{}, err
	}
	return arr.cells[idx], nil
}

func (m *Machine) arrayFor(v ast.VarRef) (*arrayVar, bool) {
	if v.Kind == ast.Tail {
		a, ok := m.tails[v.N]
		return a, ok
	}
	a, ok := m.hybrids[v.N]
	return a, ok
}

func (m *Machine) flatIndex(arr *arrayVar, subs []ast.Expr, pos diagnostic.Pos, line string) (int, error) {
	if len(subs) != len(arr.dims) {
		return 0, errors.Errorf("interp: %s: wrong number of subscripts", pos)
	}
	idx := 0
	for i, s := range subs {
		v, err := m.eval(s, pos, line)
		if err != nil {
			return 0, err
		}
		// Subscripts are 1-based (spec.md §3 invariant).
		n := int(v.Uint32())
		if n < 1 || n > arr.dims[i] {
			return 0, errors.Errorf("interp: %s: subscript %d out of range 1..%d", pos, n, arr.dims[i])
		}
		idx = idx*arr.dims[i] + (n - 1)
	}
	return idx, nil
}

// store writes a value to an LValue, enforcing width and checking the
// ignored flag. Assignment to an ignored variable is a silent no-op.
func (m *Machine) store(lv ast.LValue, v ast.Value, pos diagnostic.Pos, line string) error {
	if m.ignored[lv.Var] {
		return nil
	}
	if lv.Var.Kind.IsArray() {
		return m.storeArray(lv, v, pos, line)
	}
	width := lv.Var.Kind.Width()
	stored, err := fitWidth(v, width, pos, line)
	if err != nil {
		return err
	}
	switch lv.Var.Kind {
	case ast.Spot:
		m.spots[lv.Var.N] = stored
	case ast.TwoSpot:
		m.twoSpots[lv.Var.N] = stored
	}
	return nil
}

func (m *Machine) storeArray(lv ast.LValue, v ast.Value, pos diagnostic.Pos, line string) error {
	arr, ok := m.arrayFor(lv.Var)
	if !ok {
		return errors.Errorf("interp: %s: array %s not dimensioned", pos, lv.Var)
	}
	idx, err := m.flatIndex(arr, lv.Subs, pos, line)
	if err != nil {
		return err
	}
	stored, err := fitWidth(v, lv.Var.Kind.Width(), pos, line)
	if err != nil {
		return err
	}
	arr.cells[idx] = stored
	return nil
}

// fitWidth validates/narrows v into width, raising E275 if a 16-bit
// destination cannot hold the value.
func fitWidth(v ast.Value, width ast.Width, pos diagnostic.Pos, line string) (ast.Value, error) {
	if width == ast.Width32 {
		return ast.Val32(v.Uint32()), nil
	}
	if v.Uint32() > 0xFFFF {
		return ast.Value{}, diagnostic.New(diagnostic.E275, pos, line)
	}
	return ast.Val16(uint16(v.Uint32())), nil
}
