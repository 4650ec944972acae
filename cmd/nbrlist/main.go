// SPDX-License-Identifier: MIT

// Command nbrlist builds periodic neighbor lists from structure files.
//
// Usage:
//
//	nbrlist [flags] <command> [args]
//
// Commands:
//
//	build       - neighbor list of one structure file
//	components  - atom clusters connected within the cutoff
//	version     - print the build version
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/nbrlist/cmd/nbrlist/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
