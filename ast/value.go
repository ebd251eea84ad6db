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

// Package ast defines the INTERCAL-72/CF/TA abstract syntax tree: the
// tagged Value type, the four variable storage classes, statements and
// expressions as closed interface sum types, and the arena-backed Program
// that owns them. Cross references (label targets, COME FROM links) are
// plain int indices into Program.Stmts, never pointers, per the design
// note on arena allocation.
package ast

import "fmt"

// Width is the bit width of a scalar Value: 16 for spots, 32 for two-spots.
// Mingle/Select results may also be 32-bit even when built from two 16-bit
// operands.
type Width int

const (
	Width16 Width = 16
	Width32 Width = 32
)

// Value is a tagged scalar: Val16(u16) or Val32(u32). Operations only
// promote a 16-bit value to 32 bits when a 32-bit destination explicitly
// demands it; assignment-width policing happens at the store, not here.
type Value struct {
	W    Width
	Bits uint32
}

// Val16 constructs a 16-bit value.
func Val16(v uint16) Value { return Value{W: Width16, Bits: uint32(v)} }

// Val32 constructs a 32-bit value.
func Val32(v uint32) Value { return Value{W: Width32, Bits: v} }

// Is32 reports whether v is tagged as a 32-bit value.
func (v Value) Is32() bool { return v.W == Width32 }

// Uint32 returns the raw bits, regardless of tagged width.
func (v Value) Uint32() uint32 { return v.Bits }

// FitsIn16 reports whether v's bits fit in an untagged 16-bit quantity,
// irrespective of v's own width tag. Used by Mingle/Select per spec.md §4.3.
func (v Value) FitsIn16() bool { return v.Bits <= 0xFFFF }

func (v Value) String() string {
	if v.Is32() {
		return fmt.Sprintf("%d:32", v.Bits)
	}
	return fmt.Sprintf("%d:16", v.Bits)
}

// VarKind is one of the four INTERCAL storage classes.
type VarKind int

const (
	Spot    VarKind = iota // .n  - 16-bit scalar
	TwoSpot                // :n  - 32-bit scalar
	Tail                   // ,n  - n-dim array of 16-bit cells
	Hybrid                 // ;n  - n-dim array of 32-bit cells
)

// Sigil returns the surface-syntax sigil character for the storage class.
func (k VarKind) Sigil() byte {
	switch k {
	case Spot:
		return '.'
	case TwoSpot:
		return ':'
	case Tail:
		return ','
	case Hybrid:
		return ';'
	default:
		return '?'
	}
}

// IsArray reports whether the storage class is an array (Tail/Hybrid) as
// opposed to a scalar (Spot/TwoSpot).
func (k VarKind) IsArray() bool { return k == Tail || k == Hybrid }

// Width is the cell width used by the storage class.
func (k VarKind) Width() Width {
	if k == TwoSpot || k == Hybrid {
		return Width32
	}
	return Width16
}

func (k VarKind) String() string {
	switch k {
	case Spot:
		return "spot"
	case TwoSpot:
		return "two-spot"
	case Tail:
		return "tail"
	case Hybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// VarRef identifies a variable by storage class and its declared number
// (the n in .n, :n, ,n, ;n).
type VarRef struct {
	Kind VarKind
	N    int
}

func (r VarRef) String() string {
	return fmt.Sprintf("%c%d", r.Kind.Sigil(), r.N)
}
