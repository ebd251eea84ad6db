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

// Package translate emits a standalone Go program from an *ast.Program: a
// `package main` source file that embeds the same statement table as a
// runtime.Program composite literal and a dispatch loop built on
// runtime.Machine, per spec.md §4.6. The emitted program, once built, is
// observably equivalent to interp running the same *ast.Program — same
// output, same E-codes, same statement-indexed diagnostics — because both
// walk the identical control-machine logic (interp.Machine and
// runtime.Machine are deliberately kept in lockstep; see DESIGN.md).
//
// Conversion (ast.Program -> runtime.Program) and rendering (runtime.Program
// -> Go source text) are kept separate: Convert produces a plain
// runtime.Program value, and Emit's text/template (translate/templates.go,
// loaded via embed) only ever sees a pre-rendered literal string for the
// `var program = ...` declaration plus a handful of scalar knobs (seed, bug
// rate, optimization hints) — the same division of labor asm's own output
// path uses (build a value, then serialize it), rather than asking a
// template engine to walk a recursive AST field by field.
package translate
