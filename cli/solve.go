// SPDX-License-Identifier: MIT
package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/spectra/csvio"
	"github.com/katalvlaran/spectra/generator"
	"github.com/katalvlaran/spectra/matrix"
)

func (a *app) solveCmd() *cobra.Command {
	var (
		size int
		seed int64
		path string
	)

	c := &cobra.Command{
		Use:   "solve",
		Short: "Solve A·x = f by LU decomposition against a known random solution",
		Long: "Solve builds f = A·x for a random x, factors A = L·U without pivoting,\n" +
			"recovers x by substitution and prints the max-norm error and the solve time.\n" +
			"A comes from --matrix FILE or is generated with --size N.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("size") {
				a.cfg.Size = size
			}
			a.seedFlag(cmd, seed)
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			rng := a.rng()

			var (
				m   *matrix.Dense
				err error
			)
			if path != "" {
				m, err = csvio.LoadMatrix(path)
			} else {
				var policy generator.Boost
				if policy, err = a.cfg.BoostPolicy(); err == nil {
					m, err = generator.Generate(rng, a.cfg.Size, generator.WithBoost(policy))
				}
			}
			if err != nil {
				return err
			}
			if err = matrix.ValidateFinite(m); err != nil {
				return err
			}

			p, err := generator.NewProblemFrom(rng, m, a.cfg.Vector.Low, a.cfg.Vector.High)
			if err != nil {
				return err
			}
			l, u, err := matrix.LU(p.A)
			if err != nil {
				return err
			}

			start := time.Now()
			xs, err := matrix.SolveLU(l, u, p.F)
			elapsed := time.Since(start)
			if err != nil {
				return err
			}
			norm, err := p.ErrorNorm(xs)
			if err != nil {
				return err
			}
			a.log.Debug("solve.done", slog.Int("n", p.A.Rows()), slog.Float64("error", norm), slog.Duration("elapsed", elapsed))

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "||x_true - x_computed|| = %g\n", norm)
			fmt.Fprintf(w, "time in microseconds spent to find solution: %d\n", elapsed.Microseconds())

			return nil
		},
	}

	c.Flags().IntVarP(&size, "size", "n", 0, "generate an N×N system (default: configured size)")
	c.Flags().Int64Var(&seed, "seed", 0, "random seed (default: configured seed or clock)")
	c.Flags().StringVarP(&path, "matrix", "m", "", "load A from this CSV file instead of generating it")
	c.MarkFlagsMutuallyExclusive("size", "matrix")

	return c
}
