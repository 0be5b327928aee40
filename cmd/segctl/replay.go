package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/segheap/internal/trace"
)

var (
	replayNoVerify bool
	replayCheck    bool
)

func init() {
	cmd := newReplayCmd()
	cmd.Flags().BoolVar(&replayNoVerify, "no-verify", false, "Skip writing and checking block contents")
	cmd.Flags().BoolVar(&replayCheck, "check", false, "Run the heap checker after every request")
	rootCmd.AddCommand(cmd)
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <trace>...",
		Short: "Replay traces and report utilization",
		Long: `The replay command runs each trace against a fresh heap and reports
request counts, peak payload, heap size, utilization and call latency.

Example:
  segctl replay short1.rep
  segctl replay traces/*.rep --set max_heap=256MiB
  segctl replay short1.rep --check --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(args)
		},
	}
	return cmd
}

// ReplayReport is the per-trace output of replay.
type ReplayReport struct {
	Trace       string         `json:"trace"`
	Ops         int            `json:"ops"`
	Counts      map[string]int `json:"counts"`
	PeakPayload int64          `json:"peak_payload"`
	HeapSize    int            `json:"heap_size"`
	Utilization float64        `json:"utilization"`
	MeanNs      int64          `json:"mean_ns"`
	P50Ns       int64          `json:"p50_ns"`
	P99Ns       int64          `json:"p99_ns"`
	MaxNs       int64          `json:"max_ns"`
	GrowCalls   int            `json:"grow_calls"`
	Splits      int            `json:"splits"`
	Coalesces   int            `json:"coalesces"`
}

// replayOne parses and replays a single trace on a fresh heap.
func replayOne(path string, opts trace.Options) (*trace.Result, error) {
	tr, err := trace.ParseFile(path)
	if err != nil {
		return nil, err
	}
	printVerbose("Replaying %s: %s requests, %d ids\n", tr.Name, formatNumber(int64(len(tr.Ops))), tr.NumIDs)

	a, release, err := newHeap()
	if err != nil {
		return nil, err
	}
	defer release()

	res, err := trace.Replay(a, tr, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tr.Name, err)
	}
	return res, nil
}

func newReport(res *trace.Result) ReplayReport {
	counts := make(map[string]int, len(res.Counts))
	for k, n := range res.Counts {
		counts[k.String()] = n
	}
	st := res.Stats
	return ReplayReport{
		Trace:       res.Trace,
		Ops:         res.Ops,
		Counts:      counts,
		PeakPayload: res.PeakPayload,
		HeapSize:    res.HeapSize,
		Utilization: res.Utilization,
		MeanNs:      res.Latency.Mean.Nanoseconds(),
		P50Ns:       res.Latency.P50.Nanoseconds(),
		P99Ns:       res.Latency.P99.Nanoseconds(),
		MaxNs:       res.Latency.Max.Nanoseconds(),
		GrowCalls:   st.GrowCalls,
		Splits:      st.SplitCount,
		Coalesces:   st.CoalesceNext + st.CoalescePrev + st.CoalesceBoth,
	}
}

func runReplay(args []string) error {
	opts := trace.Options{Check: replayCheck, SkipPayload: replayNoVerify}

	reports := make([]ReplayReport, 0, len(args))
	for _, path := range args {
		res, err := replayOne(path, opts)
		if err != nil {
			return err
		}
		reports = append(reports, newReport(res))
	}

	if jsonOut {
		return printJSON(reports)
	}

	printInfo("%-20s %10s %12s %12s %7s %10s %10s\n",
		"trace", "ops", "peak", "heap", "util", "p50", "p99")
	printInfo("%s\n", strings.Repeat("-", 87))
	var util float64
	for _, r := range reports {
		printInfo("%-20s %10s %12s %12s %6.1f%% %10s %10s\n",
			r.Trace,
			formatNumber(int64(r.Ops)),
			formatBytes(r.PeakPayload),
			formatBytes(int64(r.HeapSize)),
			100*r.Utilization,
			fmt.Sprintf("%dns", r.P50Ns),
			fmt.Sprintf("%dns", r.P99Ns))
		util += r.Utilization
	}
	if len(reports) > 1 {
		printInfo("%s\n", strings.Repeat("-", 87))
		printInfo("%-20s %10s %12s %12s %6.1f%%\n", "mean", "", "", "", 100*util/float64(len(reports)))
	}
	return nil
}
