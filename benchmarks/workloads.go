// Package benchmarks provides synthetic trace workloads and a harness that
// replays them through the cache hierarchy.
package benchmarks

import (
	"github.com/sarchlab/vcsim/loader"
	"github.com/sarchlab/vcsim/timing/cache"
)

// Workload defines a single synthetic trace.
type Workload struct {
	// Name identifies the workload
	Name string

	// Description explains what the workload exercises
	Description string

	// Build generates the trace. It must be deterministic.
	Build func() *loader.Trace
}

// GetWorkloads returns the standard set of workloads. Each one targets a
// specific part of the hierarchy.
func GetWorkloads() []Workload {
	return []Workload{
		sequentialSweep(),
		indexConflict(),
		victimOverflow(),
		l2SetThrash(),
		readAfterWrite(),
		pseudoRandom(),
	}
}

// addr builds an address from its tag and index.
func addr(tag, index uint32) cache.Address {
	return cache.Address(tag<<6 | index<<2)
}

// 1. Sequential sweep - every word read twice, mostly L1 hits
func sequentialSweep() Workload {
	return Workload{
		Name:        "sequential_sweep",
		Description: "Reads words 0..255 twice in order - L1 capacity misses",
		Build: func() *loader.Trace {
			t := &loader.Trace{}
			for pass := 0; pass < 2; pass++ {
				for a := 0; a < 256; a++ {
					t.Append(cache.OpRead, cache.Address(a), 0)
				}
			}
			return t
		},
	}
}

// 2. Index conflict - two tags ping-pong on one L1 index
func indexConflict() Workload {
	return Workload{
		Name:        "index_conflict",
		Description: "Alternates two tags on one L1 index - served by the victim cache",
		Build: func() *loader.Trace {
			t := &loader.Trace{}
			for i := 0; i < 64; i++ {
				t.Append(cache.OpRead, addr(uint32(i%2), 3), 0)
			}
			return t
		},
	}
}

// 3. Victim overflow - more conflicting tags than the victim cache holds
func victimOverflow() Workload {
	return Workload{
		Name:        "victim_overflow",
		Description: "Cycles 8 tags on one L1 index - victim cache spills into L2",
		Build: func() *loader.Trace {
			t := &loader.Trace{}
			for i := 0; i < 128; i++ {
				t.Append(cache.OpRead, addr(uint32(i%8), 5), 0)
			}
			return t
		},
	}
}

// 4. L2 set thrash - more tags than L1 + VC + one L2 set can hold
func l2SetThrash() Workload {
	return Workload{
		Name:        "l2_set_thrash",
		Description: "Cycles 16 tags on one index - exceeds L1, VC and the L2 set",
		Build: func() *loader.Trace {
			t := &loader.Trace{}
			for i := 0; i < 256; i++ {
				t.Append(cache.OpRead, addr(uint32(i%16), 9), 0)
			}
			return t
		},
	}
}

// 5. Read after write - writes never allocate, reads then fetch the data
func readAfterWrite() Workload {
	return Workload{
		Name:        "read_after_write",
		Description: "Writes then reads 64 words - write-no-allocate then cold reads",
		Build: func() *loader.Trace {
			t := &loader.Trace{}
			for a := 0; a < 64; a++ {
				t.Append(cache.OpWrite, cache.Address(a*4), int32(a))
			}
			for a := 0; a < 64; a++ {
				t.Append(cache.OpRead, cache.Address(a*4), 0)
			}
			return t
		},
	}
}

// 6. Pseudo random - fixed-seed LCG over a small working set
func pseudoRandom() Workload {
	return Workload{
		Name:        "pseudo_random",
		Description: "1024 LCG-generated reads and writes over 512 words",
		Build: func() *loader.Trace {
			t := &loader.Trace{}
			state := uint32(12345)
			for i := 0; i < 1024; i++ {
				state = state*1103515245 + 12345
				a := cache.Address((state >> 8) % 512)
				if (state>>4)%4 == 0 {
					t.Append(cache.OpWrite, a, int32(state>>16))
				} else {
					t.Append(cache.OpRead, a, 0)
				}
			}
			return t
		},
	}
}
