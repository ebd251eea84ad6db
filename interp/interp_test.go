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

package interp_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sgreben/intercal72/diagnostic"
	"github.com/sgreben/intercal72/interp"
	"github.com/sgreben/intercal72/parser"
)

func mustRun(t *testing.T, src string, opts ...interp.Option) (string, error) {
	t.Helper()
	prog, err := parser.Parse("test", []byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var out bytes.Buffer
	m, err := interp.New(prog, append([]interp.Option{interp.WithOutput(&out)}, opts...)...)
	if err != nil {
		t.Fatalf("interp.New: %v", err)
	}
	return out.String(), m.Run()
}

func errCode(t *testing.T, err error) diagnostic.Code {
	t.Helper()
	de, ok := err.(*diagnostic.Error)
	if !ok {
		t.Fatalf("expected *diagnostic.Error, got %T (%v)", err, err)
	}
	return de.Code
}

// n/5 <= p <= n/3 must hold across every fixture below: pad with plain DO
// statements to land on a valid ratio before the behavior under test.

func TestRun_calcAndReadOut(t *testing.T) {
	src := `
DO .1 <- #170
DO .2 <- #85
PLEASE READ OUT .1
DO READ OUT .2
DO GIVE UP
`
	out, err := mustRun(t, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "CLXX\nLXXXV\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRun_giveUpStopsExecution(t *testing.T) {
	src := `
PLEASE .1 <- #1
DO GIVE UP
DO .1 <- #2
DO READ OUT .1
`
	out, err := mustRun(t, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "" {
		t.Errorf("expected no output past GIVE UP, got %q", out)
	}
}

func TestRun_fallOffEndIsE633(t *testing.T) {
	src := `
PLEASE .1 <- #1
DO .2 <- #2
DO .3 <- #3
`
	_, err := mustRun(t, src)
	if err == nil {
		t.Fatal("expected E633, got nil")
	}
	if code := errCode(t, err); code != diagnostic.E633 {
		t.Errorf("code = %v, want E633", code)
	}
}

func TestRun_emptyProgramIsE129(t *testing.T) {
	_, err := mustRun(t, "")
	if err == nil {
		t.Fatal("expected E129, got nil")
	}
	if code := errCode(t, err); code != diagnostic.E129 {
		t.Errorf("code = %v, want E129", code)
	}
}

func TestRun_nextStackDepthInvariant(t *testing.T) {
	// depth after NEXT(5) is 1; RESUME #1 pops it back to 0 and returns
	// control to the statement right after the NEXT.
	src := `
PLEASE (5) NEXT
DO GIVE UP
(5) DO .1 <- #7
DO RESUME #1
`
	_, err := mustRun(t, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRun_nextStackDepthExceeded(t *testing.T) {
	var b strings.Builder
	b.WriteString("(1) PLEASE .1 <- #1\n")
	for i := 0; i < 80; i++ {
		if i%4 == 0 {
			b.WriteString("PLEASE (1) NEXT\n")
		} else {
			b.WriteString("DO (1) NEXT\n")
		}
	}
	_, err := mustRun(t, b.String())
	if err == nil {
		t.Fatal("expected E123, got nil")
	}
	if code := errCode(t, err); code != diagnostic.E123 {
		t.Errorf("code = %v, want E123", code)
	}
}

func TestRun_resumeWithNothingToResumeIsE632(t *testing.T) {
	src := `
PLEASE .1 <- #1
DO .2 <- #2
DO RESUME #1
`
	_, err := mustRun(t, src)
	if err == nil {
		t.Fatal("expected E632, got nil")
	}
	if code := errCode(t, err); code != diagnostic.E632 {
		t.Errorf("code = %v, want E632", code)
	}
}

func TestRun_comeFromRedirection(t *testing.T) {
	// (1)'s successor is skipped: COME FROM (1) redirects there instead.
	src := `
(1) PLEASE .1 <- #1
DO .1 <- #99
DO COME FROM (1)
DO READ OUT .1
DO GIVE UP
`
	out, err := mustRun(t, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "I\n" {
		t.Errorf("output = %q, want %q (the .1<-#99 statement should have been skipped)", out, "I\n")
	}
}

func TestRun_stashRetrieveRoundTrip(t *testing.T) {
	src := `
PLEASE .1 <- #42
DO STASH .1
DO .1 <- #7
PLEASE RETRIEVE .1
DO READ OUT .1
DO GIVE UP
`
	out, err := mustRun(t, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "XLII\n" {
		t.Errorf("output = %q, want %q", out, "XLII\n")
	}
}

func TestRun_ignoreSuppressesAssignment(t *testing.T) {
	src := `
PLEASE IGNORE .1
DO .1 <- #5
DO REMEMBER .1
DO READ OUT .1
DO GIVE UP
`
	out, err := mustRun(t, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "N\n" {
		t.Errorf("output = %q, want %q (assignment while ignored should be a no-op)", out, "N\n")
	}
}

func TestRun_retrieveOfIgnoredIsE997(t *testing.T) {
	src := `
PLEASE .1 <- #1
DO STASH .1
DO IGNORE .1
DO RETRIEVE .1
`
	_, err := mustRun(t, src)
	if err == nil {
		t.Fatal("expected E997, got nil")
	}
	if code := errCode(t, err); code != diagnostic.E997 {
		t.Errorf("code = %v, want E997", code)
	}
}

func TestRun_abstainDisablesThenReinstateReenables(t *testing.T) {
	src := `
PLEASE ABSTAIN FROM (20)
DO (10) NEXT
DO READ OUT .1
DO GIVE UP
(10) DO REINSTATE (20)
(20) PLEASE .1 <- #9
DO RESUME #1
`
	// Label 20's statement starts abstained; by the time NEXT(10) reaches
	// it, REINSTATE has re-enabled it, so the assignment takes effect.
	out, err := mustRun(t, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "IX\n" {
		t.Errorf("output = %q, want %q", out, "IX\n")
	}
}

func TestRun_badStmtIsE000(t *testing.T) {
	src := `
PLEASE .1 <- #1
DO .2 <- #2
DO .3 <- #3
DO FROBNICATE THE WIDGET
`
	_, err := mustRun(t, src)
	if err == nil {
		t.Fatal("expected E000, got nil")
	}
	if code := errCode(t, err); code != diagnostic.E000 {
		t.Errorf("code = %v, want E000", code)
	}
}

func TestRun_seedReproducibility(t *testing.T) {
	src := `
DO (1) NEXT
PLEASE .1 <- #1
DO READ OUT .2
DO GIVE UP
(1) PLEASE %50 .2 <- #2
DO RESUME #1
`
	out1, err := mustRun(t, src, interp.WithSeed(7))
	if err != nil {
		t.Fatalf("run 1: %v", err)
	}
	out2, err := mustRun(t, src, interp.WithSeed(7))
	if err != nil {
		t.Fatalf("run 2: %v", err)
	}
	if out1 != out2 {
		t.Errorf("same seed produced different output: %q vs %q", out1, out2)
	}
}

func TestRun_writeInNumericAndReadOutRoundTrip(t *testing.T) {
	src := `
PLEASE WRITE IN .1
DO .2 <- #0
DO READ OUT .1
DO GIVE UP
`
	prog, err := parser.Parse("test", []byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var out bytes.Buffer
	m, err := interp.New(prog,
		interp.WithOutput(&out),
		interp.WithInput(strings.NewReader("TWO THREE\n")))
	if err != nil {
		t.Fatalf("interp.New: %v", err)
	}
	if err := m.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "XXIII\n" {
		t.Errorf("output = %q, want %q", out.String(), "XXIII\n")
	}
}

func TestRun_writeInArrayButterflyRoundTrip(t *testing.T) {
	src := `
PLEASE ,1 <- DIM #3
DO WRITE IN ,1
DO READ OUT ,1
DO GIVE UP
`
	prog, err := parser.Parse("test", []byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	orig := []byte{10, 20, 30}
	wire := make([]byte, len(orig))
	prev := byte(0)
	for i, o := range orig {
		wire[i] = prev - o
		prev = o
	}
	var out bytes.Buffer
	m, err := interp.New(prog, interp.WithOutput(&out), interp.WithInput(bytes.NewReader(wire)))
	if err != nil {
		t.Fatalf("interp.New: %v", err)
	}
	if err := m.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !bytes.Equal(out.Bytes(), wire) {
		t.Errorf("array read-out = %v, want %v (butterfly encoding of %v)", out.Bytes(), wire, orig)
	}
}

func TestRun_notIgnoreActsAsRemember(t *testing.T) {
	src := `
PLEASE IGNORE .1
DO .1 <- #5
DO N'T IGNORE .1
PLEASE .1 <- #9
DO READ OUT .1
DO GIVE UP
`
	out, err := mustRun(t, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "IX\n" {
		t.Errorf("output = %q, want %q (N'T IGNORE should act as REMEMBER)", out, "IX\n")
	}
}

func TestRun_notRememberActsAsIgnore(t *testing.T) {
	src := `
DO .1 <- #5
PLEASE REMEMBER .1
DO N'T REMEMBER .1
DO .1 <- #9
PLEASE READ OUT .1
DO GIVE UP
`
	out, err := mustRun(t, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "V\n" {
		t.Errorf("output = %q, want %q (N'T REMEMBER should act as IGNORE)", out, "V\n")
	}
}

func TestRun_notStashActsAsRetrieve(t *testing.T) {
	src := `
PLEASE .1 <- #42
DO STASH .1
DO .1 <- #7
DO N'T STASH .1
PLEASE READ OUT .1
DO GIVE UP
`
	out, err := mustRun(t, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "XLII\n" {
		t.Errorf("output = %q, want %q (N'T STASH should act as RETRIEVE)", out, "XLII\n")
	}
}

func TestRun_notRetrieveActsAsStash(t *testing.T) {
	src := `
PLEASE .1 <- #42
DO N'T RETRIEVE .1
DO .1 <- #7
PLEASE RETRIEVE .1
DO READ OUT .1
DO GIVE UP
`
	out, err := mustRun(t, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "XLII\n" {
		t.Errorf("output = %q, want %q (N'T RETRIEVE should act as STASH)", out, "XLII\n")
	}
}

func TestRun_notAbstainActsAsReinstate(t *testing.T) {
	src := `
PLEASE ABSTAIN FROM (20)
DO (10) NEXT
DO READ OUT .1
DO GIVE UP
(10) DO N'T ABSTAIN FROM (20)
(20) PLEASE .1 <- #9
DO RESUME #1
`
	// Label 20's statement starts abstained; the N'T ABSTAIN FROM at label
	// 10 re-enables it exactly as a REINSTATE would.
	out, err := mustRun(t, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "IX\n" {
		t.Errorf("output = %q, want %q (N'T ABSTAIN FROM should act as REINSTATE)", out, "IX\n")
	}
}

func TestRun_notReinstateActsAsAbstain(t *testing.T) {
	src := `
DO (10) NEXT
PLEASE READ OUT .1
DO GIVE UP
(10) DO N'T REINSTATE (20)
(20) PLEASE .1 <- #9
DO RESUME #1
`
	// Label 20's statement starts enabled; the N'T REINSTATE at label 10
	// disables it exactly as an ABSTAIN FROM would, so .1 is never assigned.
	out, err := mustRun(t, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "N\n" {
		t.Errorf("output = %q, want %q (N'T REINSTATE should act as ABSTAIN FROM)", out, "N\n")
	}
}
