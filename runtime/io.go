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
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var digitWords = map[string]int{
	"ZERO": 0, "OH": 0,
	"ONE": 1, "TWO": 2, "THREE": 3, "FOUR": 4, "FIVE": 5,
	"SIX": 6, "SEVEN": 7, "EIGHT": 8, "NINE": 9,
}

func (m *Machine) execWriteIn(stmt *Statement) error {
	for _, lv := range stmt.LVals {
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
			if err := m.storeArrayBytes(lv, bytes); err != nil {
				return err
			}
			continue
		}
		n, err := m.readNumericLine(stmt)
		if err != nil {
			return err
		}
		if err := m.store(lv, Val16(uint16(n)), stmt.Pos, stmt.Line); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) readNumericLine(stmt *Statement) (int, error) {
	line, err := m.in.ReadString('\n')
	if err != nil && line == "" {
		return 0, errors.Wrap(err, "runtime: WRITE IN: reading numeric input")
	}
	fields := strings.Fields(line)
	n := 0
	for _, w := range fields {
		d, ok := digitWords[strings.ToUpper(w)]
		if !ok {
			return 0, errors.Errorf("runtime: %v: WRITE IN: unrecognized digit word %q", stmt.Pos, w)
		}
		n = n*10 + d
	}
	return n, nil
}

// readArrayBytes reads as many raw bytes as the destination array has cells;
// the butterfly decode itself happens in storeArrayBytes.
func (m *Machine) readArrayBytes(lv LValue, stmt *Statement) ([]byte, error) {
	arr, ok := m.arrayFor(lv.Var)
	if !ok {
		return nil, errors.Errorf("runtime: %v: array %s not dimensioned", stmt.Pos, lv.Var)
	}
	wire := make([]byte, len(arr.cells))
	for i := range wire {
		b, err := m.in.ReadByte()
		if err != nil {
			return nil, errors.Wrap(err, "runtime: WRITE IN: reading array input")
		}
		wire[i] = b
	}
	return wire, nil
}

func (m *Machine) storeArrayBytes(lv LValue, wire []byte) error {
	arr, ok := m.arrayFor(lv.Var)
	if !ok {
		return errors.Errorf("runtime: array %s not dimensioned", lv.Var)
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

func valueForWidth(bits uint32, w Width) Value {
	if w == Width32 {
		return Val32(bits)
	}
	return Val16(uint16(bits))
}

func (m *Machine) execReadOut(stmt *Statement) error {
	for i := range stmt.Exprs {
		e := &stmt.Exprs[i]
		if e.Kind == ExprVar && e.LValue.Var.Kind.IsArray() && len(e.LValue.Subs) == 0 {
			if err := m.writeArray(e.LValue.Var, stmt); err != nil {
				return err
			}
			continue
		}
		v, err := m.eval(e, stmt.Pos, stmt.Line)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(m.out, "%s\n", roman(v.Uint32())); err != nil {
			return errors.Wrap(err, "runtime: READ OUT: writing output")
		}
	}
	return nil
}

func (m *Machine) writeArray(v VarRef, stmt *Statement) error {
	arr, ok := m.arrayFor(v)
	if !ok {
		return errors.Errorf("runtime: %v: array %s not dimensioned", stmt.Pos, v)
	}
	wire := make([]byte, len(arr.cells))
	prev := byte(0)
	for i, c := range arr.cells {
		orig := byte(c.Uint32())
		wire[i] = prev - orig
		prev = orig
	}
	if _, err := m.out.Write(wire); err != nil {
		return errors.Wrap(err, "runtime: READ OUT: writing array output")
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

// roman renders n as an extended Roman numeral, identically to interp's
// rendering (spec.md §6).
func roman(n uint32) string {
	if n == 0 {
		return "N"
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
