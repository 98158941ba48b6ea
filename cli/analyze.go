// SPDX-License-Identifier: MIT
package cli

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/spectra/csvio"
	"github.com/katalvlaran/spectra/generator"
	"github.com/katalvlaran/spectra/gershgorin"
	"github.com/katalvlaran/spectra/matrix"
)

// ErrNotContained marks a report with an eigenvalue outside every disk. It
// can only happen when the eigensolver is wrong.
var ErrNotContained = errors.New("eigenvalue outside every Gershgorin disk")

// source is one matrix to analyze: a CSV path or an in-memory matrix.
type source struct {
	name string
	m    *matrix.Dense
}

func (a *app) analyzeCmd() *cobra.Command {
	var (
		solver   string
		epsilon  float64
		generate int
		seed     int64
		check    bool
		jobs     int
	)

	c := &cobra.Command{
		Use:   "analyze [FILE...]",
		Short: "Print Gershgorin disks and the exact spectrum of CSV matrices",
		Long: "Analyze loads every FILE (comma-separated rows, no header) concurrently and\n" +
			"prints one report per file in argument order. With --generate N a fresh\n" +
			"N×N test matrix is analyzed instead.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("solver") {
				a.cfg.Solver = solver
			}
			if cmd.Flags().Changed("epsilon") {
				a.cfg.Epsilon = epsilon
			}
			a.seedFlag(cmd, seed)
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			if len(args) == 0 && generate == 0 {
				return errors.New("analyze: need at least one FILE or --generate N")
			}
			if len(args) > 0 && generate != 0 {
				return errors.New("analyze: FILE arguments and --generate are exclusive")
			}

			s, err := a.cfg.NewSolver()
			if err != nil {
				return err
			}
			an := gershgorin.NewAnalyzer(
				gershgorin.WithSolver(s),
				gershgorin.WithEpsilon(a.cfg.Epsilon),
				gershgorin.WithLogger(a.log),
			)

			sources := make([]source, len(args))
			for i, p := range args {
				sources[i] = source{name: p}
			}
			if generate != 0 {
				policy, err := a.cfg.BoostPolicy()
				if err != nil {
					return err
				}
				m, err := generator.Generate(a.rng(), generate, generator.WithBoost(policy))
				if err != nil {
					return err
				}
				sources = []source{{name: fmt.Sprintf("generated %dx%d", generate, generate), m: m}}
			}

			outs, err := a.analyzeAll(cmd, an, sources, jobs, check)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for i, out := range outs {
				if len(outs) > 1 {
					if i > 0 {
						fmt.Fprintln(w)
					}
					fmt.Fprintf(w, "== %s ==\n", sources[i].name)
				}
				if _, err := w.Write(out); err != nil {
					return err
				}
			}

			return nil
		},
	}

	c.Flags().StringVar(&solver, "solver", gershgorin.SolverGeneral, "eigensolver: general|symmetric|jacobi")
	c.Flags().Float64Var(&epsilon, "epsilon", gershgorin.DefaultEpsilon, "relative containment tolerance")
	c.Flags().IntVar(&generate, "generate", 0, "analyze a generated N×N matrix instead of files")
	c.Flags().Int64Var(&seed, "seed", 0, "random seed for --generate")
	c.Flags().BoolVar(&check, "check", false, "also print per-eigenvalue containment")
	c.Flags().IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "matrices analyzed in parallel")

	return c
}

// analyzeAll renders one report per source concurrently. Results keep the
// order of sources; the first failure cancels the rest.
func (a *app) analyzeAll(cmd *cobra.Command, an *gershgorin.Analyzer, sources []source, jobs int, check bool) ([][]byte, error) {
	g, ctx := errgroup.WithContext(cmd.Context())
	if jobs < 1 {
		jobs = 1
	}
	g.SetLimit(jobs)

	outs := make([][]byte, len(sources))
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m := src.m
			if m == nil {
				var err error
				if m, err = csvio.LoadMatrix(src.name); err != nil {
					return err
				}
			}

			r, err := an.Report(m)
			if err != nil {
				return fmt.Errorf("%s: %w", src.name, err)
			}
			var buf bytes.Buffer
			if err := r.WriteText(&buf); err != nil {
				return err
			}
			if check {
				if err := r.WriteContainment(&buf); err != nil {
					return err
				}
			}
			if !r.AllContained() {
				return fmt.Errorf("%s: %w", src.name, ErrNotContained)
			}
			a.log.Info("analyze.done", slog.String("source", src.name), slog.Int("n", len(r.Disks)))
			outs[i] = buf.Bytes()

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return outs, nil
}
