package testgen

import (
	"bytes"
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/lgfh98/kotlin/internal/compiler"
)

// Outcome is what one generated program printed with generic iteration and
// with lowered loops.
type Outcome struct {
	Case    Case
	Generic string
	Lowered string
}

// Agrees reports whether both runs printed the same output
func (o Outcome) Agrees() bool {
	return o.Generic == o.Lowered
}

// Run executes c twice, once without and once with the for-loop lowering.
// A runtime error in either run is returned as an error.
func Run(ctx context.Context, c Case, opts compiler.Options) (Outcome, error) {
	out := Outcome{Case: c}

	generic := opts
	generic.Optimize = false
	var buf bytes.Buffer
	if err := compiler.Run(ctx, c.Source, c.Name, &buf, generic); err != nil {
		return out, fmt.Errorf("%s (generic): %w", c.Name, err)
	}
	out.Generic = buf.String()

	lowered := opts
	lowered.Optimize = true
	buf.Reset()
	if err := compiler.Run(ctx, c.Source, c.Name, &buf, lowered); err != nil {
		return out, fmt.Errorf("%s (lowered): %w", c.Name, err)
	}
	out.Lowered = buf.String()

	return out, nil
}

// RunAll runs every case, up to opts.Parallelism at a time, and returns the
// outcomes in case order.
func RunAll(ctx context.Context, cases []Case, opts compiler.Options) ([]Outcome, error) {
	outcomes := make([]Outcome, len(cases))

	g, gctx := errgroup.WithContext(ctx)
	if opts.Parallelism > 0 {
		g.SetLimit(opts.Parallelism)
	}
	for i, c := range cases {
		i, c := i, c
		g.Go(func() error {
			o, err := Run(gctx, c, opts)
			if err != nil {
				return err
			}
			outcomes[i] = o
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
