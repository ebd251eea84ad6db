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

package translate

import (
	"bytes"
	"go/format"
	"io"

	"github.com/pkg/errors"
	"github.com/sgreben/intercal72/ast"
)

// Options controls how Emit renders a translated program.
type Options struct {
	// SourceFile is recorded in the emitted file's header comment only;
	// it has no effect on behavior.
	SourceFile string

	// Seed fixes the emitted program's PRNG seed, the same way cmd/intercal's
	// --seed flag fixes the interpreter's.
	Seed int64

	// BugRate, if non-zero, wires runtime.WithBugRate into the emitted
	// main(): the -b flag (spec.md §6/§7).
	BugRate float64

	// Optimize adds the -O advisory comments described in spec.md §4.6.
	// Go has no compiler-enforceable inlining veto, so this is text for
	// the driver building the emitted source to act on, not a directive
	// this package can itself enforce.
	Optimize bool
}

// Emit converts prog and writes the resulting standalone Go program to w.
func Emit(prog *ast.Program, w io.Writer, opts Options) error {
	rtProg := Convert(prog)
	data := templateData{
		SourceFile: opts.SourceFile,
		Program:    programLiteral(rtProg),
		Seed:       opts.Seed,
		HasBugRate: opts.BugRate > 0,
		BugRate:    opts.BugRate,
		Optimize:   opts.Optimize,
	}

	var buf bytes.Buffer
	if err := mainTemplate.Execute(&buf, data); err != nil {
		return errors.Wrap(err, "translate: executing template")
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Fall back to the unformatted text rather than failing the whole
		// translation: a cosmetic gofmt failure shouldn't block emission of
		// otherwise-valid source.
		formatted = buf.Bytes()
	}
	_, err = w.Write(formatted)
	return errors.Wrap(err, "translate: writing output")
}
