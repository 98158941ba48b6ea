// SPDX-License-Identifier: MIT
package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/spectra/config"
	"github.com/katalvlaran/spectra/csvio"
	"github.com/katalvlaran/spectra/generator"
)

func (a *app) generateCmd() *cobra.Command {
	var (
		size  int
		seed  int64
		boost string
		out   string
	)

	c := &cobra.Command{
		Use:   "generate",
		Short: "Generate a symmetric, strictly diagonally dominant integer matrix as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("size") {
				a.cfg.Size = size
			}
			if cmd.Flags().Changed("boost") {
				a.cfg.Boost = boost
			}
			a.seedFlag(cmd, seed)

			policy, err := a.cfg.BoostPolicy()
			if err != nil {
				return err
			}
			m, err := generator.Generate(a.rng(), a.cfg.Size, generator.WithBoost(policy))
			if err != nil {
				return err
			}
			a.log.Debug("generate.done",
				slog.Int("size", a.cfg.Size),
				slog.String("boost", policy.String()),
				slog.String("out", out))

			return writeOutput(cmd, out, func(w io.Writer) error {
				return csvio.WriteMatrix(w, m)
			})
		},
	}

	c.Flags().IntVarP(&size, "size", "n", config.DefaultSize, "matrix size")
	c.Flags().Int64Var(&seed, "seed", 0, "random seed (default: configured seed or clock)")
	c.Flags().StringVar(&boost, "boost", generator.BoostSize.String(), "diagonal boost: size|tight")
	c.Flags().StringVarP(&out, "out", "o", "", "write CSV here instead of stdout")

	return c
}
