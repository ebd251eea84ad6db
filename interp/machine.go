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

// Package interp is the control machine of §4.4: it walks an *ast.Program
// statement by statement, resolving come-from links on every step, and
// owns the single mutable execution record (variable banks, next-stack,
// abstain map, PRNG, I/O cursors) described in spec.md §5 as "a single
// mutable execution state... owned by the control machine".
//
// The functional-options construction and the panic-recovery-to-error Run
// method follow vm.New/vm.Instance.Run in the teacher package.
package interp

import (
	"bufio"
	"io"
	"math/rand"
	"os"

	"github.com/pkg/errors"
	"github.com/sgreben/intercal72/ast"
	"github.com/sgreben/intercal72/diagnostic"
	"go.uber.org/zap"
)

// Option configures a Machine at construction time.
type Option func(*Machine) error

// WithSeed fixes the PRNG seed, making probability rolls and `?`-adjacent
// randomness reproducible (spec.md §5).
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

// WithLogger attaches a structured logger for step-level diagnostics,
// deliberately kept separate from the §7 stderr E-code protocol: this is
// ambient observability, not part of the program's output contract.
func WithLogger(l *zap.Logger) Option {
	return func(m *Machine) error { m.log = l; return nil }
}

// WithMaxSteps bounds the number of dispatch-loop iterations, used by the
// optimizer's whole-program-collapse pass to cap speculative execution.
func WithMaxSteps(n int) Option {
	return func(m *Machine) error { m.maxSteps = n; return nil }
}

// Machine holds the complete execution state for one program run: the
// program arena, every variable storage bank, the next-stack, and the I/O
// and randomness cursors.
type Machine struct {
	prog *ast.Program

	spots    map[int]ast.Value
	twoSpots map[int]ast.Value
	tails    map[int]*arrayVar
	hybrids  map[int]*arrayVar
	ignored  map[ast.VarRef]bool
	stash    map[ast.VarRef][]stashFrame

	nextStack []int

	ip       int
	jumped   bool // set by Next/Resume: the generic come-from post-processing step is skipped
	rng      *rand.Rand
	in       *bufio.Reader
	out      io.Writer
	log      *zap.Logger
	maxSteps int
	steps    int

	gaveUp bool
}

type arrayVar struct {
	kind  ast.VarKind
	dims  []int
	cells []ast.Value
}

type stashFrame struct {
	scalar ast.Value
	dims   []int
	cells  []ast.Value
}

const (
	nextStackLimit = 79
	stashLimit     = 79
)

// New builds a Machine ready to Run prog. Defaults: os.Stdin/os.Stdout,
// a PRNG seeded with 1, no step limit.
func New(prog *ast.Program, opts ...Option) (*Machine, error) {
	m := &Machine{
		prog:     prog,
		spots:    make(map[int]ast.Value),
		twoSpots: make(map[int]ast.Value),
		tails:    make(map[int]*arrayVar),
		hybrids:  make(map[int]*arrayVar),
		ignored:  make(map[ast.VarRef]bool),
		stash:    make(map[ast.VarRef][]stashFrame),
		rng:      rand.New(rand.NewSource(1)),
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, errors.Wrap(err, "interp: applying option")
		}
	}
	return m, nil
}

// Run executes the program to completion: a voluntary GIVE UP, or a
// trappable *diagnostic.Error. Any unexpected panic (e.g. an internal
// invariant violation) is recovered and reported as a wrapped error rather
// than crashing the process, mirroring vm.Instance.Run's recovery pattern.
func (m *Machine) Run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("interp: internal error: %v", r)
		}
	}()

	if m.prog.Len() == 0 {
		return diagnostic.New(diagnostic.E129, diagnostic.Pos{}, "")
	}

	m.ip = 0
	for {
		if m.maxSteps > 0 && m.steps >= m.maxSteps {
			return errors.New("interp: step budget exceeded")
		}
		m.steps++

		stmt := m.prog.At(m.ip)
		m.jumped = false
		if err := m.execStatement(stmt); err != nil {
			return err
		}
		if m.gaveUp {
			return nil
		}
		if _, isTry := stmt.Body.(*ast.TryAgain); isTry {
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

// execStatement runs one statement's body if it is enabled and its
// probability roll succeeds; TryAgain is validated as the final statement.
func (m *Machine) execStatement(stmt *ast.Stmt) error {
	if _, isTry := stmt.Body.(*ast.TryAgain); isTry {
		if m.ip != m.prog.Len()-1 {
			return diagnostic.New(diagnostic.E993, stmt.Pos, stmt.Line)
		}
	}
	if stmt.Disabled {
		return nil
	}
	if stmt.Probability < 100 && m.rng.Intn(100) >= stmt.Probability {
		return nil
	}
	m.log.Debug("exec", zap.Int("ip", m.ip), zap.Int("label", stmt.Label))
	return m.execBody(stmt)
}

func (m *Machine) execBody(stmt *ast.Stmt) error {
	switch b := stmt.Body.(type) {
	case *ast.Calc:
		return m.execCalc(b)
	case *ast.CalcDim:
		return m.execCalcDim(b)
	case *ast.Next:
		return m.execNext(b, stmt)
	case *ast.Forget:
		return m.execForget(b)
	case *ast.Resume:
		return m.execResume(b, stmt)
	case *ast.StashStmt:
		// N'T STASH behaves as RETRIEVE (spec.md §4.1).
		if stmt.Negate {
			return m.execRetrieve(b.Vars, stmt)
		}
		return m.execStash(b.Vars)
	case *ast.RetrieveStmt:
		// N'T RETRIEVE behaves as STASH.
		if stmt.Negate {
			return m.execStash(b.Vars)
		}
		return m.execRetrieve(b.Vars, stmt)
	case *ast.IgnoreStmt:
		// N'T IGNORE behaves as REMEMBER.
		ignore := !stmt.Negate
		for _, v := range b.Vars {
			m.ignored[v] = ignore
		}
		return nil
	case *ast.RememberStmt:
		// N'T REMEMBER behaves as IGNORE.
		ignore := stmt.Negate
		for _, v := range b.Vars {
			m.ignored[v] = ignore
		}
		return nil
	case *ast.Abstain:
		// N'T ABSTAIN FROM behaves as REINSTATE.
		return m.execAbstainReinstate(b.Target, !stmt.Negate, stmt)
	case *ast.Reinstate:
		// N'T REINSTATE behaves as ABSTAIN FROM.
		return m.execAbstainReinstate(b.Target, stmt.Negate, stmt)
	case *ast.ComeFrom:
		return nil // passive: consulted by resolveComeFrom, not executed
	case *ast.WriteIn:
		return m.execWriteIn(b, stmt)
	case *ast.ReadOut:
		return m.execReadOut(b, stmt)
	case *ast.GiveUp:
		m.gaveUp = true
		return nil
	case *ast.TryAgain:
		return nil
	case *ast.LiteralOutput:
		_, err := m.out.Write(b.Bytes)
		return errors.Wrap(err, "interp: writing literal output")
	case *ast.BadStmt:
		return diagnostic.New(diagnostic.E000, stmt.Pos, stmt.Line).WithExtra(b.Raw)
	default:
		return errors.Errorf("interp: unhandled body type %T", b)
	}
}
