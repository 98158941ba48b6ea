// SPDX-License-Identifier: MIT

// Package config holds the run configuration shared by every spectra
// command and loads it from YAML.
//
// Precedence: Default() < YAML file < explicit command-line flags. The CLI
// applies the last step; this package only merges file values over defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/spectra/generator"
	"github.com/katalvlaran/spectra/gershgorin"
)

// ErrInvalidConfig wraps every load or validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// DefaultSize matches the 5×5 demo system.
const DefaultSize = 5

// Config is the merged run configuration.
type Config struct {
	// Seed fixes the random source; nil draws a seed from the clock.
	Seed    *int64       `yaml:"seed,omitempty"`
	Size    int          `yaml:"size"`
	Boost   string       `yaml:"boost"`
	Solver  string       `yaml:"solver"`
	Epsilon float64      `yaml:"epsilon"`
	Jacobi  JacobiConfig `yaml:"jacobi"`
	Vector  VectorConfig `yaml:"vector"`
}

// JacobiConfig tunes the Jacobi solver; zero values select its defaults.
type JacobiConfig struct {
	Tol     float64 `yaml:"tol"`
	MaxIter int     `yaml:"max_iter"`
}

// VectorConfig is the half-open range [Low, High) of generated solution vectors.
type VectorConfig struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Size:    DefaultSize,
		Boost:   generator.BoostSize.String(),
		Solver:  gershgorin.SolverGeneral,
		Epsilon: gershgorin.DefaultEpsilon,
		Jacobi:  JacobiConfig{Tol: gershgorin.DefaultJacobiTol},
		Vector:  VectorConfig{Low: generator.SolutionLow, High: generator.SolutionHigh},
	}
}

// Load reads path over Default() and validates the result. Unknown keys are
// rejected; an empty file yields the defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config.load %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("config.load %s: %w", path, err)
	}

	return cfg, nil
}

// Decode reads YAML from r over Default() and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports every problem at once, joined under ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	if c.Size < 1 {
		errs = append(errs, fmt.Errorf("size %d: must be >= 1", c.Size))
	}
	if _, err := generator.ParseBoost(c.Boost); err != nil {
		errs = append(errs, err)
	}
	if _, err := gershgorin.NewSolver(c.Solver, gershgorin.JacobiSolver{}); err != nil {
		errs = append(errs, err)
	}
	if !finiteNonNegative(c.Epsilon) {
		errs = append(errs, fmt.Errorf("epsilon %v: must be finite and >= 0", c.Epsilon))
	}
	if !finiteNonNegative(c.Jacobi.Tol) {
		errs = append(errs, fmt.Errorf("jacobi.tol %v: must be finite and >= 0", c.Jacobi.Tol))
	}
	if c.Jacobi.MaxIter < 0 {
		errs = append(errs, fmt.Errorf("jacobi.max_iter %d: must be >= 0", c.Jacobi.MaxIter))
	}
	if math.IsNaN(c.Vector.Low) || math.IsInf(c.Vector.Low, 0) ||
		math.IsNaN(c.Vector.High) || math.IsInf(c.Vector.High, 0) ||
		c.Vector.Low >= c.Vector.High {
		errs = append(errs, fmt.Errorf("vector [%v, %v): need finite low < high", c.Vector.Low, c.Vector.High))
	}
	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// BoostPolicy parses Boost.
func (c Config) BoostPolicy() (generator.Boost, error) {
	return generator.ParseBoost(c.Boost)
}

// NewSolver builds the configured eigensolver.
func (c Config) NewSolver() (gershgorin.Solver, error) {
	return gershgorin.NewSolver(c.Solver, gershgorin.JacobiSolver{Tol: c.Jacobi.Tol, MaxIter: c.Jacobi.MaxIter})
}

// SeedOr returns the configured seed, or fallback when none is set.
func (c Config) SeedOr(fallback int64) int64 {
	if c.Seed == nil {
		return fallback
	}

	return *c.Seed
}

func finiteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
