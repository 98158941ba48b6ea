// SPDX-License-Identifier: MIT
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/spectra/csvio"
)

func (a *app) curveCmd() *cobra.Command {
	var xPath, yPath, out string

	c := &cobra.Command{
		Use:   "curve",
		Short: "Pair an iteration log with its error norms, dropping NaN errors",
		Long: "Curve reads the iteration-index file (--x) and the second-norm error file (--y),\n" +
			"checks they have the same length, drops every point whose error is NaN and\n" +
			"writes iteration,error CSV for a chart renderer. A summary goes to stderr.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := csvio.LoadCurve(xPath, yPath)
			if err != nil {
				return err
			}
			sum := s.Summarize()
			a.log.Debug("curve.loaded", slog.Int("points", sum.Points), slog.Int("dropped", sum.Dropped))

			if err := writeOutput(cmd, out, func(w io.Writer) error {
				return csvio.WriteSeries(w, s)
			}); err != nil {
				return err
			}

			ew := cmd.ErrOrStderr()
			fmt.Fprintf(ew, "points: %d (dropped %d NaN)\n", sum.Points, sum.Dropped)
			if sum.Points > 0 {
				fmt.Fprintf(ew, "error: first %g, last %g, min %g at iteration %g\n",
					sum.First, sum.Last, sum.Min, sum.MinAt)
			}

			return nil
		},
	}

	c.Flags().StringVar(&xPath, "x", "", "iteration-number CSV (required)")
	c.Flags().StringVar(&yPath, "y", "", "second-norm error CSV (required)")
	c.Flags().StringVarP(&out, "out", "o", "", "write pairs here instead of stdout")
	_ = c.MarkFlagRequired("x")
	_ = c.MarkFlagRequired("y")

	return c
}
