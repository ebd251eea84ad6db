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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgreben/intercal72/ast"
	"github.com/sgreben/intercal72/diagnostic"
)

func TestMingleSelectRoundtrip(t *testing.T) {
	a := ast.Val16(0x1234)
	b := ast.Val16(0x5678)
	m, err := mingle(a, b, diagnostic.Pos{}, "")
	require.NoError(t, err)

	// ~(A $ B) #0x55555555 extracts B's bits back out (B supplies the low
	// bit of each interleaved pair).
	got := selectOp(m, ast.Val32(0x55555555))
	assert.Equal(t, uint32(b.Uint32()), got.Uint32())

	// ~(A $ B) #0xAAAAAAAA extracts A's bits back out.
	got = selectOp(m, ast.Val32(0xAAAAAAAA))
	assert.Equal(t, uint32(a.Uint32()), got.Uint32())
}

func TestMingleOverflow(t *testing.T) {
	_, err := mingle(ast.Val32(0x10000), ast.Val16(1), diagnostic.Pos{}, "")
	de := requireDiagnostic(t, err)
	assert.Equal(t, diagnostic.E533, de.Code)
}

func TestUnaryRoundsTripOnRotation(t *testing.T) {
	// Unary AND of a value with all bits set, with its own rotation, is
	// itself (rotating 0xFFFF right by one bit is still 0xFFFF).
	got := unary(ast.UnAnd, ast.Val16(0xFFFF))
	assert.Equal(t, uint32(0xFFFF), got.Uint32())
}

func TestFitWidthOverflow(t *testing.T) {
	_, err := fitWidth(ast.Val32(0x10000), ast.Width16, diagnostic.Pos{}, "")
	de := requireDiagnostic(t, err)
	assert.Equal(t, diagnostic.E275, de.Code)
}

func requireDiagnostic(t *testing.T, err error) *diagnostic.Error {
	t.Helper()
	de, ok := err.(*diagnostic.Error)
	require.True(t, ok, "expected *diagnostic.Error, got %T (%v)", err, err)
	return de
}

func TestRoman(t *testing.T) {
	cases := map[uint32]string{
		0:    "N",
		1:    "I",
		4:    "IV",
		9:    "IX",
		14:   "XIV",
		2341: "MMCCCXLI",
	}
	for n, want := range cases {
		if got := roman(n); got != want {
			t.Errorf("roman(%d) = %q, want %q", n, got, want)
		}
	}
}
