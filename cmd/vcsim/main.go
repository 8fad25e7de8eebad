// Package main provides the entry point for vcsim.
// vcsim replays a memory trace through an L1 / victim cache / L2 hierarchy
// and prints the miss rates and average access time.
package main

func main() {
	Execute()
}
