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

// eval evaluates an expression to a Value, per spec.md §4.3. This is the
// "inline operator code for hot paths" §4.6 describes: translate emits a
// literal *Expr tree per statement and calls straight into this evaluator
// rather than re-deriving per-statement Go expressions, since INTERCAL's
// left-to-right, no-precedence fold doesn't map onto Go's own operator
// grammar cleanly enough to be worth the emitter complexity.
func (m *Machine) eval(e *Expr, pos Pos, line string) (Value, error) {
	switch e.Kind {
	case ExprNum:
		return Val16(e.Num), nil
	case ExprVar:
		return m.load(e.LValue, pos, line)
	case ExprMingle:
		a, err := m.eval(e.A, pos, line)
		if err != nil {
			return Value{}, err
		}
		b, err := m.eval(e.B, pos, line)
		if err != nil {
			return Value{}, err
		}
		return mingle(a, b, pos, line)
	case ExprSelect:
		a, err := m.eval(e.A, pos, line)
		if err != nil {
			return Value{}, err
		}
		b, err := m.eval(e.B, pos, line)
		if err != nil {
			return Value{}, err
		}
		return selectOp(a, b), nil
	case ExprUnary:
		v, err := m.eval(e.X, pos, line)
		if err != nil {
			return Value{}, err
		}
		return unary(e.Op, v), nil
	default:
		return Value{}, errors.Errorf("runtime: unhandled expr kind %v", e.Kind)
	}
}

// mingle interleaves the bits of a and b, A supplying the high bit of each
// pair; operands that don't fit in 16 bits raise E533.
func mingle(a, b Value, pos Pos, line string) (Value, error) {
	if !a.FitsIn16() || !b.FitsIn16() {
		return Value{}, diagnostic.New(diagnostic.E533, diagnostic.Pos{Line: pos.Line, Col: pos.Col, Offset: pos.Offset}, line)
	}
	var result uint32
	for i := 0; i < 16; i++ {
		abit := (a.Uint32() >> i) & 1
		bbit := (b.Uint32() >> i) & 1
		result |= abit << (2*i + 1)
		result |= bbit << (2 * i)
	}
	return Val32(result), nil
}

// selectOp extracts from A the bits selected by 1-bits in B, right-aligned
// and zero-filled.
func selectOp(a, b Value) Value {
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
		return Val16(uint16(result))
	}
	return Val32(result)
}

// unary applies one of the three unary bit operators: the op of the operand
// with its one-bit right rotation, width preserved.
func unary(op UnOp, v Value) Value {
	width := uint(16)
	if v.Is32() {
		width = 32
	}
	mask := uint32(1)<<width - 1
	bits := v.Uint32() & mask
	rot := ((bits >> 1) | (bits << (width - 1))) & mask
	var result uint32
	switch op {
	case UnAnd:
		result = bits & rot
	case UnOr:
		result = bits | rot
	case UnXor:
		result = bits ^ rot
	}
	if width == 32 {
		return Val32(result)
	}
	return Val16(uint16(result))
}

func (m *Machine) load(lv LValue, pos Pos, line string) (Value, error) {
	if lv.Var.Kind.IsArray() {
		return m.loadArray(lv, pos, line)
	}
	switch lv.Var.Kind {
	case Spot:
		return m.spots[lv.Var.N], nil
	case TwoSpot:
		return m.twoSpots[lv.Var.N], nil
	default:
		return Value{}, errors.Errorf("runtime: unreachable var kind %v", lv.Var.Kind)
	}
}

func (m *Machine) loadArray(lv LValue, pos Pos, line string) (Value, error) {
	arr, ok := m.arrayFor(lv.Var)
	if !ok {
		return Value{}, errors.Errorf("runtime: %v: array %s not dimensioned", pos, lv.Var)
	}
	idx, err := m.flatIndex(arr, lv.Subs, pos, line)
	if err != nil {
		return Value{}, err
	}
	return arr.cells[idx], nil
}

func (m *Machine) arrayFor(v VarRef) (*arrayVar, bool) {
	if v.Kind == Tail {
		a, ok := m.tails[v.N]
		return a, ok
	}
	a, ok := m.hybrids[v.N]
	return a, ok
}

func (m *Machine) flatIndex(arr *arrayVar, subs []Expr, pos Pos, line string) (int, error) {
	if len(subs) != len(arr.dims) {
		return 0, errors.Errorf("runtime: %v: wrong number of subscripts", pos)
	}
	idx := 0
	for i := range subs {
		v, err := m.eval(&subs[i], pos, line)
		if err != nil {
			return 0, err
		}
		// Subscripts are 1-based (spec.md §3 invariant).
		n := int(v.Uint32())
		if n < 1 || n > arr.dims[i] {
			return 0, errors.Errorf("runtime: %v: subscript %d out of range 1..%d", pos, n, arr.dims[i])
		}
		idx = idx*arr.dims[i] + (n - 1)
	}
	return idx, nil
}

// store writes a value to an LValue, enforcing width and the ignored flag.
func (m *Machine) store(lv LValue, v Value, pos Pos, line string) error {
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
	case Spot:
		m.spots[lv.Var.N] = stored
	case TwoSpot:
		m.twoSpots[lv.Var.N] = stored
	}
	return nil
}

func (m *Machine) storeArray(lv LValue, v Value, pos Pos, line string) error {
	arr, ok := m.arrayFor(lv.Var)
	if !ok {
		return errors.Errorf("runtime: %v: array %s not dimensioned", pos, lv.Var)
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
func fitWidth(v Value, width Width, pos Pos, line string) (Value, error) {
	if width == Width32 {
		return Val32(v.Uint32()), nil
	}
	if v.Uint32() > 0xFFFF {
		return Value{}, diagnostic.New(diagnostic.E275, diagnostic.Pos{Line: pos.Line, Col: pos.Col, Offset: pos.Offset}, line)
	}
	return Val16(uint16(v.Uint32())), nil
}
