package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/vcsim/loader"
	"github.com/sarchlab/vcsim/timing/cache"
	"github.com/sarchlab/vcsim/timing/core"
	"github.com/sarchlab/vcsim/timing/latency"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vcsim <trace>",
	Short: "Replay a memory trace through an L1 / victim cache / L2 hierarchy.",
	Long: `vcsim replays a trace of memR,memW,adr,data lines through a ` +
		`direct-mapped L1, a 4-entry victim cache and an 8-way L2, then ` +
		`prints (L1 miss rate,L2 miss rate,AAT).`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := runOptions{}
		opts.debug, _ = cmd.Flags().GetBool("debug")
		opts.verbose, _ = cmd.Flags().GetBool("verbose")
		opts.configPath, _ = cmd.Flags().GetString("config")

		return run(args[0], opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.Flags().BoolP("debug", "d", false,
		"Print every cache decision to stderr")
	rootCmd.Flags().BoolP("verbose", "v", false,
		"Print raw access and miss counters")
	rootCmd.Flags().StringP("config", "c", "",
		"Path to timing configuration JSON file")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

type runOptions struct {
	debug      bool
	verbose    bool
	configPath string
	// debugOutput receives the decision trace. Defaults to stderr.
	debugOutput io.Writer
}

func run(tracePath string, opts runOptions, out io.Writer) error {
	timingConfig := latency.DefaultTimingConfig()
	if opts.configPath != "" {
		var err error
		timingConfig, err = latency.LoadConfig(opts.configPath)
		if err != nil {
			return err
		}
	}

	if err := timingConfig.Validate(); err != nil {
		return fmt.Errorf("invalid timing config: %w", err)
	}

	trace, err := loader.Load(tracePath)
	if err != nil {
		return fmt.Errorf("error loading trace %s: %w", tracePath, err)
	}

	var coreOpts []core.Option
	if opts.debug {
		w := opts.debugOutput
		if w == nil {
			w = os.Stderr
		}
		coreOpts = append(coreOpts,
			core.WithHook(cache.NewDebugHook(log.New(w, "", 0))))
	}

	c := core.NewCore(coreOpts...)
	stats := c.Run(trace)
	report := latency.Compute(stats, timingConfig)

	if opts.verbose {
		printStats(out, stats, report)
	}

	_, err = fmt.Fprintln(out, report)
	return err
}

func printStats(out io.Writer, stats cache.Stats, report latency.Report) {
	_, _ = fmt.Fprintf(out, "L1: %d accesses, %d misses (%.4f)\n",
		stats.AccL1, stats.MissL1, report.L1MissRate)
	_, _ = fmt.Fprintf(out, "VC: %d accesses, %d misses (%.4f)\n",
		stats.AccVC, stats.MissVC, report.VCMissRate)
	_, _ = fmt.Fprintf(out, "L2: %d accesses, %d misses (%.4f)\n",
		stats.AccL2, stats.MissL2, report.L2MissRate)
	_, _ = fmt.Fprintf(out, "AAT: %.4f cycles\n", report.AAT)
}
