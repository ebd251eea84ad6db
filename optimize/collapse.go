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

package optimize

import (
	"bytes"

	"github.com/sgreben/intercal72/ast"
	"github.com/sgreben/intercal72/interp"
)

// collapseWholeProgram implements spec.md §4.5's whole-program collapse:
// if nothing in the program can observe input, randomness, or a runtime
// error path, the optimizer may run it once, capture its output, and
// replace it outright with that captured output followed by GIVE UP.
//
// The pass is a no-op (c.budget == 0, the WithBudget default) unless the
// caller opted in, since simulating a whole run at optimization time is
// strictly more expensive than any other pass here.
func collapseWholeProgram(prog *ast.Program, c *config) (*ast.Program, bool) {
	if c.budget <= 0 || !collapsible(prog) {
		return prog, false
	}

	// The speculative run executes ABSTAIN/REINSTATE against prog itself;
	// save the Disabled bits so a failed run leaves prog as it was.
	saved := make([]bool, prog.Len())
	for i := range saved {
		saved[i] = prog.At(i).Disabled
	}
	var out bytes.Buffer
	m, err := interp.New(prog, interp.WithOutput(&out), interp.WithMaxSteps(c.budget))
	if err != nil {
		return prog, false
	}
	if err := m.Run(); err != nil {
		for i, d := range saved {
			prog.At(i).Disabled = d
		}
		return prog, false
	}

	captured := append([]byte(nil), out.Bytes()...)
	collapsed := rebuild([]*ast.Stmt{
		ast.NewStmt(&ast.LiteralOutput{Bytes: captured}),
		ast.NewStmt(&ast.GiveUp{}),
	})
	return collapsed, true
}

// collapsible reports whether prog has no WriteIn, TryAgain, BadStmt,
// sub-100 probability, or computed control flow — the static conditions
// spec.md §4.5 requires before a speculative run is even attempted.
func collapsible(prog *ast.Program) bool {
	if len(prog.ComputedComeFrom) > 0 || len(prog.ComputedAbstain) > 0 {
		return false
	}
	for i := 0; i < prog.Len(); i++ {
		stmt := prog.At(i)
		if stmt.Probability != 100 {
			return false
		}
		switch stmt.Body.(type) {
		case *ast.WriteIn, *ast.TryAgain, *ast.BadStmt:
			return false
		}
	}
	return true
}
