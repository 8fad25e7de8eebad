// Package main provides the entry point for vcsim.
// vcsim simulates an L1 / victim cache / L2 memory hierarchy.
//
// For the full CLI, use: go run ./cmd/vcsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("vcsim - L1 / Victim Cache / L2 Hierarchy Simulator")
	fmt.Println("Built on Akita simulation framework")
	fmt.Println("")
	fmt.Println("Usage: vcsim [options] <trace.txt>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -d, --debug    Print every cache decision")
	fmt.Println("  -c, --config   Path to timing configuration JSON file")
	fmt.Println("  -v, --verbose  Print raw counters")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/vcsim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/vcsim' instead.")
	}
}
