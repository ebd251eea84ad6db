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

// Package optimize implements the optional AST-level passes of spec.md
// §4.5: constant folding, whole-program collapse, and dead-statement
// pruning. Every pass is conservative — indeterminate cases leave the
// program untouched — and the pipeline runs to a fixpoint the way the
// teacher composes small independent passes (asm.Disassemble,
// vm.Image.Disassemble) over a shared representation rather than a single
// monolithic rewrite.
package optimize

import "github.com/sgreben/intercal72/ast"

// Option configures the optimization run.
type Option func(*config)

type config struct {
	budget int
}

// WithBudget bounds the number of dispatch-loop steps the whole-program
// collapse pass will simulate before giving up. Zero (the default) means
// no collapse attempt is made.
func WithBudget(steps int) Option {
	return func(c *config) { c.budget = steps }
}

// pass is one optimization step: it returns a possibly-rewritten program
// and whether it changed anything.
type pass func(*ast.Program, *config) (*ast.Program, bool)

var passes = []pass{
	foldConstants,
	collapseWholeProgram,
	pruneDeadStatements,
}

// Run applies every pass to a fixpoint (no pass reports a change), bounded
// to avoid runaway iteration on a pathological program.
func Run(prog *ast.Program, opts ...Option) *ast.Program {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	const maxRounds = 64
	for round := 0; round < maxRounds; round++ {
		changed := false
		for _, p := range passes {
			next, didChange := p(prog, c)
			if didChange {
				prog = next
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return prog
}
