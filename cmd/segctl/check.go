package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joshuapare/segheap/internal/trace"
)

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <trace>...",
		Short: "Replay traces with the heap checker after every request",
		Long: `The check command replays each trace and runs the full heap
consistency check after every request, stopping at the first violation.

Example:
  segctl check short1.rep
  segctl check traces/*.rep --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args)
		},
	}
	return cmd
}

// CheckReport is the per-trace output of check.
type CheckReport struct {
	Trace  string `json:"trace"`
	Ops    int    `json:"ops"`
	Checks int    `json:"checks"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}

func runCheck(args []string) error {
	var (
		reports  []CheckReport
		firstErr error
	)
	for _, path := range args {
		res, err := replayOne(path, trace.Options{Check: true})
		if err != nil {
			reports = append(reports, CheckReport{Trace: filepath.Base(path), Error: err.Error()})
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		reports = append(reports, CheckReport{
			Trace:  res.Trace,
			Ops:    res.Ops,
			Checks: res.Stats.CheckRuns,
			OK:     true,
		})
	}

	if jsonOut {
		if err := printJSON(reports); err != nil {
			return err
		}
		return firstErr
	}

	for _, r := range reports {
		if r.OK {
			printInfo("%s: OK (%s requests, %s checks)\n", r.Trace, formatNumber(int64(r.Ops)), formatNumber(int64(r.Checks)))
		} else {
			printInfo("%s: FAILED\n  %s\n", r.Trace, r.Error)
		}
	}
	return firstErr
}
