// SPDX-License-Identifier: MIT

// Command spectra generates test matrices, prints Gershgorin disks next to
// exact spectra, checks LU solves and prepares convergence curves.
package main

import "github.com/katalvlaran/spectra/cli"

func main() {
	cli.Execute()
}
