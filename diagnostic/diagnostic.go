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

// Package diagnostic renders the E-code error catalog to the §7 stderr
// contract: the source line, a caret under the offending span, and the
// canonical message for the code.
package diagnostic

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Pos locates a byte offset in the source file.
type Pos struct {
	Line   int
	Col    int
	Offset int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Class distinguishes the three error classes of spec.md §7.
type Class int

const (
	// Runtime is a trappable error raised while executing a statement.
	Runtime Class = iota
	// CompileTime aborts before any statement executes.
	CompileTime
	// Voluntary is GIVE UP: not an error, but shares the plumbing.
	Voluntary
)

// Error is a single diagnosed condition, tagged with its canonical E-code.
type Error struct {
	Code  Code
	Class Class
	Pos   Pos
	Line  string // the raw source line the error occurred on, for caret rendering
	Extra string // additional context appended to the canonical message (e.g. raw BadStmt text)
	cause error
}

func (e *Error) Error() string {
	msg := e.Code.Message()
	if e.Extra != "" {
		msg = msg + ": " + e.Extra
	}
	return fmt.Sprintf("%s %s", e.Code.String(), msg)
}

// Unwrap exposes an underlying cause, if any, to errors.Is/As and to
// github.com/pkg/errors.Cause.
func (e *Error) Unwrap() error { return e.cause }

// New builds a diagnosed Error at pos with no extra context.
func New(code Code, pos Pos, line string) *Error {
	return &Error{Code: code, Class: code.Class(), Pos: pos, Line: line}
}

// Wrap attaches cause as the diagnosed error's underlying cause, the way
// the rest of this module wraps with github.com/pkg/errors.
func Wrap(code Code, pos Pos, line string, cause error) *Error {
	e := New(code, pos, line)
	e.cause = errors.WithStack(cause)
	return e
}

// WithExtra returns a copy of e with Extra set, used for BadStmt raw-text
// payloads and similar per-occurrence detail.
func (e *Error) WithExtra(extra string) *Error {
	c := *e
	c.Extra = extra
	return &c
}

// Render writes the §7 stderr rendering of err to w: the canonical message,
// the offending source line, and a caret under the column.
func Render(w io.Writer, err *Error) error {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s\n", err.Error())
	if err.Line != "" {
		fmt.Fprintf(&b, "    %s\n", err.Line)
		col := err.Pos.Col
		if col < 1 {
			col = 1
		}
		fmt.Fprintf(&b, "    %s^\n", strings.Repeat(" ", col-1))
	}
	_, werr := w.Write(b.Bytes())
	return errors.Wrap(werr, "diagnostic: render failed")
}
