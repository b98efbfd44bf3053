package compiler

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/lgfh98/kotlin/internal/checker"
	"github.com/lgfh98/kotlin/internal/diagnostic"
	"github.com/lgfh98/kotlin/internal/forloop"
	"github.com/lgfh98/kotlin/internal/interp"
	"github.com/lgfh98/kotlin/internal/ir"
	"github.com/lgfh98/kotlin/internal/parser"
)

// Options configures the pipeline
type Options struct {
	Optimize    bool // run the for-loop lowering
	Report      bool // add one info diagnostic per for-loop
	Parallelism int  // functions lowered concurrently; <= 0 means GOMAXPROCS
	MaxSteps    int  // statement budget for Run; 0 means unlimited
}

// DefaultOptions returns the options the CLI starts from
func DefaultOptions() Options {
	return Options{
		Optimize:    true,
		Parallelism: runtime.GOMAXPROCS(0),
	}
}

// Result holds the output of a compilation
type Result struct {
	Diagnostics *diagnostic.Diagnostics
	Module      *ir.Module
	Reports     []forloop.Report // declaration order, then source order
}

// Compile runs the full pipeline: parse -> check -> lower -> forloop.
// The returned Module is nil when diagnostics contain errors.
func Compile(ctx context.Context, source string, opts Options) (*Result, error) {
	res := &Result{}

	// Parse
	p := parser.New(source)
	prog := p.Parse()

	if p.Diagnostics().HasErrors() {
		res.Diagnostics = p.Diagnostics()
		return res, nil
	}

	// Type check with result (needed for IR lowering)
	checkResult := checker.CheckWithResult(prog)
	if checkResult.Diagnostics.HasErrors() {
		res.Diagnostics = checkResult.Diagnostics
		return res, nil
	}
	res.Diagnostics = checkResult.Diagnostics

	mod := ir.Lower(prog, checkResult)
	if errs := ir.Validate(mod); len(errs) > 0 {
		return nil, fmt.Errorf("invalid IR after lowering:\n%s", strings.Join(errs, "\n"))
	}

	if opts.Optimize {
		reports, err := lowerLoops(ctx, mod, opts.Parallelism)
		if err != nil {
			return nil, err
		}
		res.Reports = reports
		if opts.Report {
			for _, r := range reports {
				res.Diagnostics.Infof(r.Pos.Line, r.Pos.Column, "%s", r.Message())
			}
		}
	}

	res.Module = mod
	return res, nil
}

// lowerLoops runs the for-loop lowering over every function of mod. Each
// function gets its own Builder, so functions are independent and are
// processed concurrently.
func lowerLoops(ctx context.Context, mod *ir.Module, parallelism int) ([]forloop.Report, error) {
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	perFunc := make([][]forloop.Report, len(mod.Functions))
	sem := make(chan struct{}, parallelism)
	g, gctx := errgroup.WithContext(ctx)

	for i, fn := range mod.Functions {
		i, fn := i, fn
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			select {
			case sem <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-sem }()

			perFunc[i] = forloop.LowerLoops(fn, ir.NewBuilder())
			if errs := ir.ValidateFunction(fn); len(errs) > 0 {
				return fmt.Errorf("invalid IR after lowering loops in %s:\n%s", fn.Name, strings.Join(errs, "\n"))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var reports []forloop.Report
	for _, rs := range perFunc {
		reports = append(reports, rs...)
	}
	return reports, nil
}

// Check runs parse + check only (no lowering).
func Check(source string) *diagnostic.Diagnostics {
	p := parser.New(source)
	prog := p.Parse()

	if p.Diagnostics().HasErrors() {
		return p.Diagnostics()
	}

	return checker.Check(prog)
}

// Lower runs the pipeline and returns the printed IR.
func Lower(ctx context.Context, source string, opts Options) (string, *diagnostic.Diagnostics, error) {
	res, err := Compile(ctx, source, opts)
	if err != nil {
		return "", nil, err
	}
	if res.Module == nil {
		return "", res.Diagnostics, nil
	}
	return ir.Print(res.Module), res.Diagnostics, nil
}

// Run compiles source and evaluates its main function, writing program
// output to out. Compilation errors are returned as an error carrying the
// formatted diagnostics.
func Run(ctx context.Context, source, filename string, out io.Writer, opts Options) error {
	res, err := Compile(ctx, source, opts)
	if err != nil {
		return err
	}
	if res.Module == nil {
		return fmt.Errorf("compilation errors:\n%s", res.Diagnostics.Format(filename))
	}
	return interp.Run(res.Module, out, interp.Options{MaxSteps: opts.MaxSteps})
}
