// Package spectra localizes matrix eigenvalues with Gershgorin disks and
// checks the localization against exact spectra.
//
// What is in the box?
//
//	generator/  - random symmetric, strictly diagonally dominant integer matrices,
//	              random vectors and ready-made A·x = f problems
//	gershgorin/ - disks, pluggable eigensolvers (gonum general/symmetric, Jacobi),
//	              containment reports and the plain-text report format
//	matrix/     - dense matrix, validators, MatVec, LU solve, Jacobi eigen kernel
//	csvio/      - CSV matrices and convergence-curve series
//	config/     - YAML run configuration
//	logger/     - process-wide slog setup
//	cli/        - cobra commands behind cmd/spectra
//
// Quick example:
//
//	rng := rand.New(rand.NewSource(1))
//	a, _ := generator.Generate(rng, 5)
//	r, _ := gershgorin.NewAnalyzer().Report(a)
//	_ = r.WriteText(os.Stdout)
//	fmt.Println(r.AllContained()) // true
//
// The circle theorem guarantees every eigenvalue lies in the union of the
// disks; Report keeps one flag per eigenvalue so callers can assert it.
package spectra
