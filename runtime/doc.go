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

// Package runtime is the small library a program emitted by the translate
// package links against (spec.md §4.6, §6): a plain-data Statement/Expr
// table shape suitable for embedding as Go composite literals, and a Machine
// that walks it exactly the way interp.Machine walks an *ast.Program. It is
// deliberately independent of ast/lexer/parser: an emitted program is
// `package main` plus a `var program = runtime.Program{...}` literal and a
// call to Machine.Run, so it must not drag the whole compiler front end into
// its own build.
//
// The control machine logic here is the same statement-dispatch loop as
// interp.Machine, generalized from *ast.Stmt (an interface sum type, good
// for an AST built by a recursive-descent parser) to Statement (a single
// tagged struct, good for being assembled once by a code generator and
// printed back out as Go source) — the same "flat, pointer-free, int-
// indexed" discipline behind both, grounded on vm/core.go's Cell-indexed
// memory (see DESIGN.md).
package runtime
