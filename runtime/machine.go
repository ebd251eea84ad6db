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

package runtime

import (
	"bufio"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sgreben/intercal72/diagnostic"
)

// Option configures a Machine at construction time, mirroring interp.Option.
type Option func(*Machine) error

// WithSeed fixes the PRNG seed.
func WithSeed(seed int64) Option {
	return func(m *Machine) error { m.rng = rand.New(rand.NewSource(seed)); return nil }
}

// WithInput sets the reader WRITE IN reads from.
func WithInput(r io.Reader) Option {
	return func(m *Machine) error { m.in = bufio.NewReader(r); return nil }
}

// WithOutput sets the writer READ OUT writes to.
func WithOutput(w io.Writer) Option {
	return func(m *Machine) error { m.out = w; return nil }
}

// WithBugRate enables the simulated-compiler-bug injection (E774) at the
// given per-statement probability (the CLI's default is 1/1000, spec.md
// §7) for every Statement translate marked BugCandidate. A zero rate (the
// default) disables injection entirely; this is how the translator's `-b`
// flag (disable the deliberate compiler bug) is wired through to the
// emitted program. The bug's own randomness is deliberately independent of
// WithSeed's PRNG: E774 is a property of a specific translation+run, not of
// the interpreter's seed-reproducible execution path (spec.md §4.6, §8).
func WithBugRate(rate float64) Option {
	return func(m *Machine) error {
		m.bugRate = rate
		if rate > 0 {
			m.bugRand = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		return nil
	}
}

type arrayVar struct {
	kind  VarKind
	dims  []int
	cells []Value
}

type stashFrame struct {
	scalar Value
	dims   []int
	cells  []Value
}

const (
	nextStackLimit = 79
	stashLimit     = 79
)

// Machine is the emitted program's execution state: the same shape as
// interp.Machine, operating on a *Program of plain Statement data instead of
// an *ast.Program of interface-typed *ast.Stmt nodes.
type Machine struct {
	prog *Program

	spots    map[int]Value
	twoSpots map[int]Value
	tails    map[int]*arrayVar
	hybrids  map[int]*arrayVar
	ignored  map[VarRef]bool
	stash    map[VarRef][]stashFrame

	nextStack []int

	ip     int
	jumped bool
	rng    *rand.Rand
	in     *bufio.Reader
	out    io.Writer

	bugRate float64
	bugRand *rand.Rand

	gaveUp bool
}

// Step returns the index of the statement the machine is currently at,
// exposed for -O-driven instrumentation hooks in generated code.
func (m *Machine) Step() int { return m.ip }

// New builds a Machine ready to Run prog.
func New(prog *Program, opts ...Option) (*Machine, error) {
	m := &Machine{
		prog:     prog,
		spots:    make(map[int]Value),
		twoSpots: make(map[int]Value),
		tails:    make(map[int]*arrayVar),
		hybrids:  make(map[int]*arrayVar),
		ignored:  make(map[VarRef]bool),
		stash:    make(map[VarRef][]stashFrame),
		rng:      rand.New(rand.NewSource(1)),
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, errors.Wrap(err, "runtime: applying option")
		}
	}
	return m, nil
}

// Run executes the program to completion, following spec.md §4.4's loop
// exactly: dispatch, then resolve any firing COME FROM, then advance.
func (m *Machine) Run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("runtime: internal error: %v", r)
		}
	}()

	if m.prog.Len() == 0 {
		return diagnostic.New(diagnostic.E129, diagnostic.Pos{}, "")
	}

	m.ip = 0
	for {
		stmt := &m.prog.Stmts[m.ip]
		m.jumped = false
		if err := m.execStatement(stmt); err != nil {
			return err
		}
		if m.gaveUp {
			return nil
		}
		if stmt.Kind == BodyTryAgain {
			m.ip = 0
			continue
		}
		if m.jumped {
			if m.ip >= m.prog.Len() {
				return diagnostic.New(diagnostic.E633, stmt.Pos, stmt.Line)
			}
			continue
		}

		nextIP, err := m.resolveComeFrom(m.ip)
		if err != nil {
			return err
		}
		m.ip = nextIP
		if m.ip >= m.prog.Len() {
			return diagnostic.New(diagnostic.E633, stmt.Pos, stmt.Line)
		}
	}
}

func (m *Machine) execStatement(stmt *Statement) error {
	if stmt.Kind == BodyTryAgain && m.ip != m.prog.Len()-1 {
		return diagnostic.New(diagnostic.E993, stmt.Pos, stmt.Line)
	}
	if stmt.Disabled {
		return nil
	}
	if stmt.Probability < 100 && m.rng.Intn(100) >= stmt.Probability {
		return nil
	}
	if stmt.BugCandidate && m.bugRate > 0 && m.bugRand.Float64() < m.bugRate {
		return diagnostic.New(diagnostic.E774, stmt.Pos, stmt.Line)
	}
	return m.execBody(stmt)
}

func (m *Machine) execBody(stmt *Statement) error {
	switch stmt.Kind {
	case BodyCalc:
		v, err := m.eval(stmt.RHS, stmt.Pos, stmt.Line)
		if err != nil {
			return err
		}
		return m.store(stmt.LHS, v, stmt.Pos, stmt.Line)
	case BodyCalcDim:
		return m.execCalcDim(stmt)
	case BodyNext:
		return m.execNext(stmt)
	case BodyForget:
		return m.execForget(stmt)
	case BodyResume:
		return m.execResume(stmt)
	case BodyStash:
		// N'T STASH behaves as RETRIEVE (spec.md §4.1).
		if stmt.Negate {
			return m.execRetrieve(stmt)
		}
		return m.execStash(stmt)
	case BodyRetrieve:
		// N'T RETRIEVE behaves as STASH.
		if stmt.Negate {
			return m.execStash(stmt)
		}
		return m.execRetrieve(stmt)
	case BodyIgnore:
		// N'T IGNORE behaves as REMEMBER.
		ignore := !stmt.Negate
		for _, v := range stmt.Vars {
			m.ignored[v] = ignore
		}
		return nil
	case BodyRemember:
		// N'T REMEMBER behaves as IGNORE.
		ignore := stmt.Negate
		for _, v := range stmt.Vars {
			m.ignored[v] = ignore
		}
		return nil
	case BodyAbstain:
		// N'T ABSTAIN FROM behaves as REINSTATE.
		return m.execAbstainReinstate(stmt.Target, !stmt.Negate, stmt)
	case BodyReinstate:
		// N'T REINSTATE behaves as ABSTAIN FROM.
		return m.execAbstainReinstate(stmt.Target, stmt.Negate, stmt)
	case BodyComeFrom:
		return nil // passive: consulted by resolveComeFrom
	case BodyWriteIn:
		return m.execWriteIn(stmt)
	case BodyReadOut:
		return m.execReadOut(stmt)
	case BodyGiveUp:
		m.gaveUp = true
		return nil
	case BodyTryAgain:
		return nil
	case BodyLiteralOutput:
		_, err := m.out.Write(stmt.Bytes)
		return errors.Wrap(err, "runtime: writing literal output")
	case BodyBad:
		return Unparseable(stmt.Pos, stmt.Line, stmt.Raw)
	default:
		return errors.Errorf("runtime: unhandled statement kind %v", stmt.Kind)
	}
}

// Unparseable builds the E000 diagnostic a BadStmt's call site raises;
// translate never inlines a BadStmt's (nonexistent) semantics, it always
// emits a call here (spec.md §4.6).
func Unparseable(pos Pos, line, raw string) error {
	return diagnostic.New(diagnostic.E000, diagnostic.Pos{Line: pos.Line, Col: pos.Col, Offset: pos.Offset}, line).WithExtra(raw)
}

// Fatal renders err to stderr per the §7 contract and exits with the
// appropriate code: 1 for a runtime *diagnostic.Error, 2 if it is somehow a
// compile-time one (translate never emits code that can raise those, but
// the check is kept in case a future pass does), 0 if err is nil.
func Fatal(err error) {
	if err == nil {
		return
	}
	de, ok := err.(*diagnostic.Error)
	if !ok {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	diagnostic.Render(os.Stderr, de)
	if de.Class == diagnostic.CompileTime {
		os.Exit(2)
	}
	os.Exit(1)
}
