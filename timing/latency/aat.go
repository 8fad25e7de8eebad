// Package latency turns the raw hierarchy counters into miss rates and an
// average access time (AAT).
//
// The model is the usual recursive one:
//
//	VCMissPenalty = L2HitTime + L2MissRate*L2MissPenalty
//	L1MissPenalty = VCHitTime + VCMissRate*VCMissPenalty
//	AAT           = L1HitTime + L1MissRate*L1MissPenalty
package latency

import (
	"fmt"
	"math"

	"github.com/sarchlab/vcsim/timing/cache"
)

// Report holds the metrics derived from one run.
type Report struct {
	L1MissRate float64
	VCMissRate float64
	L2MissRate float64

	VCMissPenalty float64
	L1MissPenalty float64
	AAT           float64
}

// Compute derives the report from the counters. A level that was never
// accessed has a NaN miss rate, which propagates into every value that uses
// it.
func Compute(stats cache.Stats, config *TimingConfig) Report {
	r := Report{
		L1MissRate: MissRate(stats.MissL1, stats.AccL1),
		VCMissRate: MissRate(stats.MissVC, stats.AccVC),
		L2MissRate: MissRate(stats.MissL2, stats.AccL2),
	}

	r.VCMissPenalty = config.L2HitTime + r.L2MissRate*config.L2MissPenalty
	r.L1MissPenalty = config.VCHitTime + r.VCMissRate*r.VCMissPenalty
	r.AAT = config.L1HitTime + r.L1MissRate*r.L1MissPenalty

	return r
}

// MissRate returns misses/accesses, or NaN if there were no accesses.
func MissRate(misses, accesses uint64) float64 {
	if accesses == 0 {
		return math.NaN()
	}
	return float64(misses) / float64(accesses)
}

// String formats the report as (L1MissRate,L2MissRate,AAT) with 10
// significant digits.
func (r Report) String() string {
	return fmt.Sprintf("(%.10g,%.10g,%.10g)", r.L1MissRate, r.L2MissRate, r.AAT)
}
