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
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sgreben/intercal72/ast"
)

var digitWords = map[string]int{
	"ZERO": 0, "OH": 0,
	"ONE": 1, "TWO": 2, "THREE": 3, "FOUR": 4, "FIVE": 5,
	"SIX": 6, "SEVEN": 7, "EIGHT": 8, "NINE": 9,
}

// execWriteIn reads one value per LValue: a numeric value (English digit
// words) for scalars, or a raw butterfly-encoded byte stream for arrays
// (spec.md §6).
func (m *Machine) execWriteIn(b *ast.WriteIn, stmt *ast.Stmt) error {
	for _, lv := range b.LVals {
		if m.ignored[lv.Var] {
			if lv.Var.Kind.IsArray() {
				if _, err := m.readArrayBytes(lv, stmt); err != nil {
					return err
				}
			} else if _, err := m.readNumericLine(stmt); err != nil {
				return err
			}
			continue
		}
		if lv.Var.Kind.IsArray() {
			bytes, err := m.readArrayBytes(lv, stmt)
			if err != nil {
				return err
			}
			if err := m.storeArrayBytes(lv, bytes, stmt); err != nil {
				return err
			}
			continue
		}
		n, err := m.readNumericLine(stmt)
		if err != nil {
			return err
		}
		if err := m.store(lv, ast.Val16(uint16(n)), stmt.Pos, stmt.Line); err != nil {
			return err
		}
	}
	return nil
}

// readNumericLine reads one newline-terminated line of space-separated
// English digit words (ZERO..NINE, OH for 0) and decodes it as a decimal
// number.
func (m *Machine) readNumericLine(stmt *ast.Stmt) (int, error) {
	line, err := m.in.ReadString('\n')
	if err != nil && line == "" {
		return 0, errors.Wrap(err, "interp: WRITE IN: reading numeric input")
	}
	fields := strings.Fields(line)
	n := 0
	for _, w := range fields {
		d, ok := digitWords[strings.ToUpper(w)]
		if !ok {
			return 0, errors.Errorf("interp: %s: WRITE IN: unrecognized digit word %q", stmt.Pos, w)
		}
		n = n*10 + d
	}
	return n, nil
}

// readArrayBytes reads as many raw bytes as the destination array has
// cells and returns them still butterfly-encoded (wire[0] = (-orig[0]) mod
// 256, wire[i] = (orig[i-1]-orig[i]) mod 256 for i>=1); storeArrayBytes
// inverts the encoding.
func (m *Machine) readArrayBytes(lv ast.LValue, stmt *ast.Stmt) ([]byte, error) {
	arr, ok := m.arrayFor(lv.Var)
	if !ok {
		return nil, errors.Errorf("interp: %s: array %s not dimensioned", stmt.Pos, lv.Var)
	}
	wire := make([]byte, len(arr.cells))
	for i := range wire {
		b, err := m.in.ReadByte()
		if err != nil {
			return nil, errors.Wrap(err, "interp: WRITE IN: reading array input")
		}
		wire[i] = b
	}
	return wire, nil
}

func (m *Machine) storeArrayBytes(lv ast.LValue, wire []byte, stmt *ast.Stmt) error {
	arr, ok := m.arrayFor(lv.Var)
	if !ok {
		return errors.Errorf("interp: %s: array %s not dimensioned", stmt.Pos, lv.Var)
	}
	width := lv.Var.Kind.Width()
	prev := byte(0)
	for i, w := range wire {
		orig := prev - w
		prev = orig
		arr.cells[i] = valueForWidth(uint32(orig), width)
	}
	return nil
}

func valueForWidth(bits uint32, w ast.Width) ast.Value {
	if w == ast.Width32 {
		return ast.Val32(bits)
	}
	return ast.Val16(uint16(bits))
}

// execReadOut writes each expression's value: a scalar as an extended
// Roman numeral, an array as the inverse butterfly encoding of its cells.
func (m *Machine) execReadOut(b *ast.ReadOut, stmt *ast.Stmt) error {
	for _, e := range b.Exprs {
		if ve, ok := e.(*ast.VarExpr); ok && ve.LValue.Var.Kind.IsArray() && len(ve.LValue.Subs) == 0 {
			if err := m.writeArray(ve.LValue.Var, stmt); err != nil {
				return err
			}
			continue
		}
		v, err := m.eval(e, stmt.Pos, stmt.Line)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(m.out, "%s\n", roman(v.Uint32())); err != nil {
			return errors.Wrap(err, "interp: READ OUT: writing output")
		}
	}
	return nil
}

func (m *Machine) writeArray(v ast.VarRef, stmt *ast.Stmt) error {
	arr, ok := m.arrayFor(v)
	if !ok {
		return errors.Errorf("interp: %s: array %s not dimensioned", stmt.Pos, v)
	}
	wire := make([]byte, len(arr.cells))
	prev := byte(0)
	for i, c := range arr.cells {
		orig := byte(c.Uint32())
		wire[i] = prev - orig
		prev = orig
	}
	if _, err := m.out.Write(wire); err != nil {
		return errors.Wrap(err, "interp: READ OUT: writing array output")
	}
	return nil
}

var romanTable = []struct {
	value  uint32
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// roman renders n as an extended Roman numeral: for n of 4000 or more the
// thousands place is rendered as the roman numeral for n/1000
// wrapped in underscores (this module's ASCII stand-in for INTERCAL's
// overline-for-1000x convention), followed by the roman numeral for the
// remainder.
func roman(n uint32) string {
	if n == 0 {
		return "N" // nulla: classical placeholder for zero
	}
	var b strings.Builder
	if n >= 4000 {
		fmt.Fprintf(&b, "_%s_", roman(n/1000))
		n %= 1000
	}
	for _, r := range romanTable {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String()
}
