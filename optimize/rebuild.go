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

import "github.com/sgreben/intercal72/ast"

// rebuild assembles a fresh Program from stmts in order. ast.Program.Add
// already derives Labels/ComputedComeFrom/ComputedAbstain from each
// statement's body; the one thing it does not do is resolve literal COME
// FROM links, so relinkComeFrom does that afterward — a pared-down version
// of the parser's own link pass with no E182/E139 checking, since a
// rewritten program only ever drops statements, it never introduces a new
// label conflict that wasn't already valid in the source program.
func rebuild(stmts []*ast.Stmt) *ast.Program {
	prog := ast.New()
	for _, s := range stmts {
		s.ComeFromTarget = -1
		prog.Add(s)
	}
	relinkComeFrom(prog)
	return prog
}

func relinkComeFrom(prog *ast.Program) {
	for i := 0; i < prog.Len(); i++ {
		cf, ok := prog.At(i).Body.(*ast.ComeFrom)
		if !ok || cf.Target.Kind != ast.TargetLabels {
			continue
		}
		for _, label := range cf.Target.Labels {
			targetIdx, ok := prog.LabelIndex(label)
			if !ok {
				continue // the come-from's target was pruned away
			}
			prog.ComeFromLinks[targetIdx] = i
			prog.At(targetIdx).ComeFromTarget = i
		}
	}
}
