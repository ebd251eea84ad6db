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

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sgreben/intercal72/ast"
	"github.com/sgreben/intercal72/diagnostic"
	"github.com/sgreben/intercal72/interp"
	"github.com/sgreben/intercal72/optimize"
	"github.com/sgreben/intercal72/parser"
	"github.com/sgreben/intercal72/translate"
)

type cliOptions struct {
	interpretOnly bool // -i
	astOptimize   bool // -o
	hostOptimize  bool // -O
	noBug         bool // -b
	output        string
	seed          int64
	logLevel      string
}

// newRootCommand builds the intercal72 command tree: a single command
// carrying the flag table of spec.md §6 plus the ambient --seed and
// --log-level knobs described in SPEC_FULL.md §6. cobra is used the way
// the rest of the retrieved corpus wires multi-flag CLIs, in place of the
// teacher's own flag-package front end (DESIGN.md).
func newRootCommand() *cobra.Command {
	var opts cliOptions

	cmd := &cobra.Command{
		Use:   "intercal [flags] <source.i>",
		Short: "Interpret or translate an INTERCAL-72/CF/TA program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], opts)
		},
		SilenceUsage: true,
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.interpretOnly, "interpret", "i", false, "interpret only, skip translation")
	flags.BoolVarP(&opts.astOptimize, "optimize", "o", false, "enable INTERCAL-level optimizations")
	flags.BoolVarP(&opts.hostOptimize, "hint", "O", false, "emit optimization hints for the host compiler driver")
	flags.BoolVarP(&opts.noBug, "no-bug", "b", false, "disable the deliberate simulated compiler bug (E774)")
	flags.StringVar(&opts.output, "output", "", "output path for translated Go source (default: stdout)")
	flags.Int64Var(&opts.seed, "seed", 1, "PRNG seed")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "zap log level for non-protocol diagnostics (debug, info, warn, error)")

	return cmd
}

func newLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrapf(err, "invalid --log-level %q", level)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return cfg.Build()
}

func run(cmd *cobra.Command, path string, opts cliOptions) error {
	log, err := newLogger(opts.logLevel)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	prog, err := parser.Parse(path, src)
	if err != nil {
		return renderAndWrap(err)
	}
	log.Debug("parsed program", zap.Int("statements", prog.Len()))

	if opts.astOptimize {
		prog = optimize.Run(prog)
		log.Debug("optimized program", zap.Int("statements", prog.Len()))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.interpretOnly {
		return interpretProgram(ctx, cmd, prog, opts, log)
	}
	return translateProgram(path, prog, opts)
}

func interpretProgram(ctx context.Context, cmd *cobra.Command, prog *ast.Program, opts cliOptions, log *zap.Logger) error {
	m, err := interp.New(prog,
		interp.WithSeed(opts.seed),
		interp.WithInput(cmd.InOrStdin()),
		interp.WithOutput(cmd.OutOrStdout()),
		interp.WithLogger(log),
	)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- m.Run() }()

	select {
	case <-ctx.Done():
		return diagnostic.New(diagnostic.E778, diagnostic.Pos{}, "")
	case err := <-done:
		return renderAndWrap(err)
	}
}

func translateProgram(path string, prog *ast.Program, opts cliOptions) error {
	out := os.Stdout
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return errors.Wrapf(err, "creating %s", opts.output)
		}
		defer f.Close()
		out = f
	}

	bugRate := 0.001
	if opts.noBug {
		bugRate = 0
	}
	err := translate.Emit(prog, out, translate.Options{
		SourceFile: path,
		Seed:       opts.seed,
		BugRate:    bugRate,
		Optimize:   opts.hostOptimize,
	})
	return renderAndWrap(err)
}

// renderAndWrap renders a *diagnostic.Error to stderr per §7's contract and
// exits with the code its Class implies, rather than letting cobra print
// its own "Error:" line over the caret-indicator rendering.
func renderAndWrap(err error) error {
	if err == nil {
		return nil
	}
	de, ok := err.(*diagnostic.Error)
	if !ok {
		return err
	}
	if renderErr := diagnostic.Render(os.Stderr, de); renderErr != nil {
		return renderErr
	}
	code := 1
	if de.Class == diagnostic.CompileTime {
		code = 2
	}
	os.Exit(code)
	return nil
}
