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
	"github.com/samber/lo"
	"github.com/sgreben/intercal72/ast"
)

// pruneDeadStatements removes statements unreachable from entry by plain
// fallthrough, a literal NEXT target, or a literal COME FROM, per spec.md
// §4.5. Any computed
// COME FROM or computed ABSTAIN in the program makes reachability
// indeterminate (a computed target could name any label at runtime), so
// the whole pass is skipped rather than risk dropping a live statement.
func pruneDeadStatements(prog *ast.Program, _ *config) (*ast.Program, bool) {
	if len(prog.ComputedComeFrom) > 0 || len(prog.ComputedAbstain) > 0 {
		return prog, false
	}
	if prog.Len() == 0 {
		return prog, false
	}

	reachable := reachableSet(prog)
	kept := lo.Filter(prog.Stmts, func(_ *ast.Stmt, i int) bool { return reachable[i] })
	if len(kept) == len(prog.Stmts) {
		return prog, false
	}
	return rebuild(kept), true
}

// reachableSet computes the statements reachable from entry via
// fallthrough edges (i -> i+1, absent after GiveUp or a final TryAgain)
// literal NEXT edges (i -> label target) and literal COME FROM edges
// (a targeted statement -> the COME FROM that claims it, whose own
// fallthrough then reaches its successor). RESUME/FORGET targets need
// no separate edge: a RESUME always returns to some NEXT's successor,
// which fallthrough from that NEXT statement already marks reachable.
func reachableSet(prog *ast.Program) map[int]bool {
	reachable := make(map[int]bool, prog.Len())
	queue := []int{0}
	reachable[0] = true
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		stmt := prog.At(i)

		if next, ok := stmt.Body.(*ast.Next); ok {
			if target, ok := prog.LabelIndex(next.Label); ok && !reachable[target] {
				reachable[target] = true
				queue = append(queue, target)
			}
		}
		if cfIdx, ok := prog.ComeFromLinks[i]; ok && !reachable[cfIdx] {
			reachable[cfIdx] = true
			queue = append(queue, cfIdx)
		}

		if _, isGiveUp := stmt.Body.(*ast.GiveUp); isGiveUp {
			continue
		}
		if _, isTry := stmt.Body.(*ast.TryAgain); isTry {
			continue
		}
		if i+1 < prog.Len() && !reachable[i+1] {
			reachable[i+1] = true
			queue = append(queue, i+1)
		}
	}
	return reachable
}
