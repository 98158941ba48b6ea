// SPDX-License-Identifier: MIT

// Package generator produces synthetic test input for the spectra tools:
// random symmetric, strictly diagonally dominant integer matrices and
// uniform random vectors.
//
// 🚀 What does it build?
//
//	Generate draws an n×n matrix R with entries uniform on [0,1), forms the
//	symmetric average S = (R + Rᵀ)/2, rounds every entry half-to-even and
//	adds a diagonal boost. Off-diagonal entries end up in {0, 1}, so any row's
//	off-diagonal mass is at most n−1, and the default boost of n keeps every
//	row strictly dominant. Symmetric + strictly dominant + positive diagonal
//	⇒ positive definite.
//
// ✨ Key features:
//   - explicit randomness: every call takes a *rand.Rand, so a fixed seed
//     reproduces the exact matrix
//   - two boost policies: BoostSize (add n, the classic recipe) and
//     BoostTight (the smallest integer that still guarantees dominance)
//   - NewProblem bundles A, a random exact solution x on [-1,1) and f = A·x
//     for linear-solver experiments
//
// ⚙️ Usage:
//
//	rng := rand.New(rand.NewSource(42))
//	a, err := generator.Generate(rng, 5)
//	x, err := generator.GenerateVector(rng, 5)
//
// Complexity:
//
//   - Generate: O(n²) time and memory
//   - GenerateVector: O(n)
package generator
