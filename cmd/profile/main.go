// Package main provides a profiling wrapper for vcsim to identify performance bottlenecks.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sarchlab/vcsim/benchmarks"
	"github.com/sarchlab/vcsim/loader"
	"github.com/sarchlab/vcsim/timing/core"
)

var (
	cpuProfile = flag.String("cpuprofile", "", "write cpu profile to file")
	memProfile = flag.String("memprofile", "", "write memory profile to file")
	duration   = flag.Duration("duration", 30*time.Second, "max duration to run (for profiling)")
	repeat     = flag.Int("repeat", 100, "number of times to replay the trace")
	workload   = flag.String("workload", "", "replay a built-in workload instead of a trace file")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 && *workload == "" {
		fmt.Fprintf(os.Stderr, "Usage: profile [options] <trace.txt>\n")
		fmt.Fprintf(os.Stderr, "       profile [options] -workload <name>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	trace, name, err := loadTrace()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading trace: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loaded: %s (%d operations)\n", name, trace.Len())

	// Start CPU profiling if requested
	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	start := time.Now()

	// Set timeout
	go func() {
		time.Sleep(*duration)
		fmt.Printf("\nTimeout reached after %v - stopping execution\n", *duration)
		os.Exit(2)
	}()

	var replayed uint64
	for i := 0; i < *repeat; i++ {
		c := core.NewCore()
		c.Run(trace)
		replayed += c.Replayed()
	}

	elapsed := time.Since(start)

	// Write memory profile if requested
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating memory profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing memory profile: %v\n", err)
		}
	}

	fmt.Printf("\nProfiling Results:\n")
	fmt.Printf("Replays: %d\n", *repeat)
	fmt.Printf("Operations executed: %d\n", replayed)
	fmt.Printf("Elapsed time: %v\n", elapsed)
	if replayed > 0 {
		fmt.Printf("Operations/second: %.0f\n", float64(replayed)/elapsed.Seconds())
	}
}

// loadTrace returns the trace selected on the command line and its name.
func loadTrace() (*loader.Trace, string, error) {
	if *workload == "" {
		path := flag.Arg(0)
		trace, err := loader.Load(path)
		return trace, path, err
	}

	for _, w := range benchmarks.GetWorkloads() {
		if w.Name == *workload {
			return w.Build(), w.Name, nil
		}
	}

	return nil, "", fmt.Errorf("unknown workload %q", *workload)
}
