package benchmarks

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/rs/xid"

	"github.com/sarchlab/vcsim/loader"
	"github.com/sarchlab/vcsim/timing/cache"
	"github.com/sarchlab/vcsim/timing/core"
	"github.com/sarchlab/vcsim/timing/latency"
)

// Rate is a ratio or a time that may be undefined (NaN). It encodes NaN as
// JSON null.
type Rate float64

// MarshalJSON implements json.Marshaler.
func (r Rate) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(r)) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(float64(r), 'g', -1, 64)), nil
}

// Result holds the results of replaying a single workload.
type Result struct {
	// Name identifies the workload
	Name string `json:"name"`

	// Description explains what the workload exercises
	Description string `json:"description"`

	// Reads and Writes count the operations of the trace
	Reads  uint64 `json:"reads"`
	Writes uint64 `json:"writes"`

	// Stats are the raw hierarchy counters
	Stats cache.Stats `json:"stats"`

	L1MissRate Rate `json:"l1_miss_rate"`
	VCMissRate Rate `json:"vc_miss_rate"`
	L2MissRate Rate `json:"l2_miss_rate"`
	AAT        Rate `json:"aat"`

	// WallTime is the actual time taken to replay the trace
	WallTime time.Duration `json:"wall_time_ns"`
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// Timing holds the hit times and penalties used for AAT
	Timing *latency.TimingConfig

	// Output is where to write results (default: os.Stdout)
	Output io.Writer
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		Timing: latency.DefaultTimingConfig(),
		Output: os.Stdout,
	}
}

// Harness replays workloads and reports results.
type Harness struct {
	config    HarnessConfig
	workloads []Workload
}

// NewHarness creates a new benchmark harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	if config.Timing == nil {
		config.Timing = latency.DefaultTimingConfig()
	}
	return &Harness{
		config:    config,
		workloads: []Workload{},
	}
}

// AddWorkload adds a workload to the harness.
func (h *Harness) AddWorkload(w Workload) {
	h.workloads = append(h.workloads, w)
}

// AddWorkloads adds multiple workloads to the harness.
func (h *Harness) AddWorkloads(workloads []Workload) {
	h.workloads = append(h.workloads, workloads...)
}

// RunAll replays every workload on a fresh hierarchy and returns results.
func (h *Harness) RunAll() []Result {
	results := make([]Result, 0, len(h.workloads))

	for _, w := range h.workloads {
		results = append(results, h.runWorkload(w))
	}

	return results
}

func (h *Harness) runWorkload(w Workload) Result {
	trace := w.Build()
	result := Result{
		Name:        w.Name,
		Description: w.Description,
	}
	countOps(trace, &result)

	start := time.Now()
	stats := core.NewCore().Run(trace)
	result.WallTime = time.Since(start)

	report := latency.Compute(stats, h.config.Timing)
	result.Stats = stats
	result.L1MissRate = Rate(report.L1MissRate)
	result.VCMissRate = Rate(report.VCMissRate)
	result.L2MissRate = Rate(report.L2MissRate)
	result.AAT = Rate(report.AAT)

	return result
}

func countOps(trace *loader.Trace, result *Result) {
	for _, op := range trace.Ops {
		if op.Op == cache.OpWrite {
			result.Writes++
		} else {
			result.Reads++
		}
	}
}

// PrintResults outputs results in a human-readable format.
func (h *Harness) PrintResults(results []Result) {
	_, _ = fmt.Fprintln(h.config.Output, "=== vcsim Workload Results ===")
	_, _ = fmt.Fprintln(h.config.Output, "")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "Workload: %s\n", r.Name)
		_, _ = fmt.Fprintf(h.config.Output, "  Description: %s\n", r.Description)
		_, _ = fmt.Fprintf(h.config.Output, "  Reads/Writes: %d/%d\n", r.Reads, r.Writes)
		_, _ = fmt.Fprintln(h.config.Output, "  --- L1 ---")
		_, _ = fmt.Fprintf(h.config.Output, "  Accesses:  %d\n", r.Stats.AccL1)
		_, _ = fmt.Fprintf(h.config.Output, "  Misses:    %d\n", r.Stats.MissL1)
		_, _ = fmt.Fprintf(h.config.Output, "  Miss Rate: %.4f\n", r.L1MissRate)
		_, _ = fmt.Fprintln(h.config.Output, "  --- Victim Cache ---")
		_, _ = fmt.Fprintf(h.config.Output, "  Accesses:  %d\n", r.Stats.AccVC)
		_, _ = fmt.Fprintf(h.config.Output, "  Misses:    %d\n", r.Stats.MissVC)
		_, _ = fmt.Fprintf(h.config.Output, "  Miss Rate: %.4f\n", r.VCMissRate)
		_, _ = fmt.Fprintln(h.config.Output, "  --- L2 ---")
		_, _ = fmt.Fprintf(h.config.Output, "  Accesses:  %d\n", r.Stats.AccL2)
		_, _ = fmt.Fprintf(h.config.Output, "  Misses:    %d\n", r.Stats.MissL2)
		_, _ = fmt.Fprintf(h.config.Output, "  Miss Rate: %.4f\n", r.L2MissRate)
		_, _ = fmt.Fprintf(h.config.Output, "  AAT: %.4f cycles\n", r.AAT)
		_, _ = fmt.Fprintf(h.config.Output, "  Wall Time: %v\n", r.WallTime)
		_, _ = fmt.Fprintln(h.config.Output, "")
	}
}

// PrintCSV outputs results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []Result) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,reads,writes,acc_l1,miss_l1,acc_vc,miss_vc,acc_l2,miss_l2,l1_miss_rate,vc_miss_rate,l2_miss_rate,aat")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%d,%d,%d,%d,%d,%d,%d,%.10g,%.10g,%.10g,%.10g\n",
			r.Name,
			r.Reads,
			r.Writes,
			r.Stats.AccL1,
			r.Stats.MissL1,
			r.Stats.AccVC,
			r.Stats.MissVC,
			r.Stats.AccL2,
			r.Stats.MissL2,
			r.L1MissRate,
			r.VCMissRate,
			r.L2MissRate,
			r.AAT,
		)
	}
}

// Report is the JSON document written by PrintJSON.
type Report struct {
	Metadata ReportMetadata `json:"metadata"`
	Results  []Result       `json:"results"`
}

// ReportMetadata identifies one harness run.
type ReportMetadata struct {
	RunID     string                `json:"run_id"`
	Timestamp string                `json:"timestamp"`
	Timing    *latency.TimingConfig `json:"timing"`
}

// PrintJSON outputs results in JSON format for automated comparison.
func (h *Harness) PrintJSON(results []Result) error {
	report := Report{
		Metadata: ReportMetadata{
			RunID:     xid.New().String(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Timing:    h.config.Timing,
		},
		Results: results,
	}

	encoder := json.NewEncoder(h.config.Output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
