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

package translate_test

import (
	"bytes"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	intercalParser "github.com/sgreben/intercal72/parser"
	"github.com/sgreben/intercal72/translate"
)

func mustParseIntercal(t *testing.T, src string) *bytes.Buffer {
	t.Helper()
	prog, err := intercalParser.Parse(t.Name(), []byte(src))
	if err != nil {
		t.Fatalf("parser.Parse: unexpected error: %v", err)
	}
	var out bytes.Buffer
	if err := translate.Emit(prog, &out, translate.Options{SourceFile: t.Name(), Seed: 1}); err != nil {
		t.Fatalf("Emit: unexpected error: %v", err)
	}
	return &out
}

// TestEmit_producesValidGoSource checks that the emitted text parses as Go
// source (go/parser, not go/build - this module never invokes the Go
// toolchain on itself) and that the expected runtime call sites are present.
func TestEmit_producesValidGoSource(t *testing.T) {
	src := `
	DO .1 <- #170
	PLEASE READ OUT .1
	DO GIVE UP
	`
	out := mustParseIntercal(t, src)

	fset := token.NewFileSet()
	if _, err := parser.ParseFile(fset, "main.go", out.Bytes(), 0); err != nil {
		t.Fatalf("emitted source does not parse as Go: %v\n---\n%s", err, out.String())
	}
	text := out.String()
	for _, want := range []string{"package main", "var program", "runtime.New", "runtime.BodyCalc", "runtime.BodyGiveUp"} {
		if !strings.Contains(text, want) {
			t.Errorf("emitted source missing %q", want)
		}
	}
}

func TestEmit_bugRateWiring(t *testing.T) {
	prog, err := intercalParser.Parse(t.Name(), []byte("DO .1 <- #1\nDO GIVE UP\n"))
	if err != nil {
		t.Fatalf("parser.Parse: %v", err)
	}
	var out bytes.Buffer
	if err := translate.Emit(prog, &out, translate.Options{Seed: 1, BugRate: 0.001}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(out.String(), "WithBugRate") {
		t.Errorf("expected WithBugRate call when BugRate > 0, got:\n%s", out.String())
	}
}

func TestEmit_badStatementCallsUnparseable(t *testing.T) {
	prog, err := intercalParser.Parse(t.Name(), []byte("DO NOTHING IN PARTICULAR\n"))
	if err != nil {
		t.Fatalf("parser.Parse: %v", err)
	}
	var out bytes.Buffer
	if err := translate.Emit(prog, &out, translate.Options{Seed: 1}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(out.String(), "runtime.BodyBad") {
		t.Errorf("expected a BodyBad statement in emitted source, got:\n%s", out.String())
	}
}
