// SPDX-License-Identifier: MIT

// Package cli wires the spectra commands: generate, analyze, solve and curve.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/spectra/config"
	"github.com/katalvlaran/spectra/logger"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	configPath string
	logFile    string
	debug      bool

	cfg     config.Config
	log     *slog.Logger
	runID   string
	cleanup func() error

	// now is the seed fallback when no seed is configured.
	now func() time.Time
}

// Execute runs the CLI against os.Args and exits non-zero on failure.
func Execute() {
	if err := Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// Run executes one CLI invocation with explicit arguments and streams.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{now: time.Now}
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if cerr := a.close(); cerr != nil && err == nil {
		err = cerr
	}

	return err
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "spectra",
		Short:        "Gershgorin disks, exact spectra and test matrices",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging with source locations")
	cmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "append JSON logs to this file instead of stderr")

	cmd.AddCommand(
		a.generateCmd(),
		a.analyzeCmd(),
		a.solveCmd(),
		a.curveCmd(),
	)

	return cmd
}

// setup loads configuration and installs the logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command) error {
	a.cfg = config.Default()
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	cleanup, err := logger.Setup(logger.Config{
		Path:   a.logFile,
		Writer: cmd.ErrOrStderr(),
		Debug:  a.debug,
	})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	a.cleanup = cleanup
	a.runID = uuid.NewString()
	a.log = logger.L().With(slog.String("run_id", a.runID), slog.String("cmd", cmd.Name()))
	a.log.Debug("cli.start", slog.String("config", a.configPath))

	return nil
}

func (a *app) close() error {
	if a.cleanup == nil {
		return nil
	}
	err := a.cleanup()
	a.cleanup = nil

	return err
}

// rng returns the seeded random source, logging the seed so any run can be
// replayed with --seed.
func (a *app) rng() *rand.Rand {
	seed := a.cfg.SeedOr(a.now().UnixNano())
	a.log.Info("random source", slog.Int64("seed", seed))

	return rand.New(rand.NewSource(seed))
}

// seedFlag overrides the configured seed when --seed was given explicitly.
func (a *app) seedFlag(cmd *cobra.Command, seed int64) {
	if cmd.Flags().Changed("seed") {
		a.cfg.Seed = &seed
	}
}

// writeOutput writes through fn to path, or to the command's stdout when
// path is empty.
func writeOutput(cmd *cobra.Command, path string, fn func(io.Writer) error) (err error) {
	if path == "" {
		return fn(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(f)
}
