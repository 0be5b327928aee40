package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/segheap/heap/alloc"
	"github.com/joshuapare/segheap/internal/trace"
)

var (
	dumpLimit    int
	dumpFreeOnly bool
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().IntVar(&dumpLimit, "limit", 0, "Print at most this many blocks (0 = all)")
	cmd.Flags().BoolVar(&dumpFreeOnly, "free", false, "Print free blocks only")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <trace>",
		Short: "Replay a trace and print the block chain",
		Long: `The dump command replays a trace, then prints every block between
the prologue and the epilogue followed by the length of each free list.

Example:
  segctl dump short1.rep
  segctl dump short1.rep --free --limit 20
  segctl dump short1.rep --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

// DumpBlock is one block in dump output.
type DumpBlock struct {
	Addr      uint64 `json:"addr"`
	Size      int    `json:"size"`
	Alloc     bool   `json:"alloc"`
	PrevAlloc bool   `json:"prev_alloc"`
}

// DumpReport is the output of dump.
type DumpReport struct {
	Trace    string      `json:"trace"`
	HeapSize int         `json:"heap_size"`
	Blocks   []DumpBlock `json:"blocks"`
	Lists    []int       `json:"lists"`
}

func runDump(args []string) error {
	tr, err := trace.ParseFile(args[0])
	if err != nil {
		return err
	}
	a, release, err := newHeap()
	if err != nil {
		return err
	}
	defer release()

	if _, err := trace.Replay(a, tr, trace.Options{}); err != nil {
		return fmt.Errorf("%s: %w", tr.Name, err)
	}

	report := DumpReport{Trace: tr.Name, HeapSize: a.HeapSize()}
	a.Walk(func(bi alloc.BlockInfo) bool {
		if dumpFreeOnly && bi.Alloc {
			return true
		}
		report.Blocks = append(report.Blocks, DumpBlock{
			Addr:      uint64(bi.Addr),
			Size:      bi.Size,
			Alloc:     bi.Alloc,
			PrevAlloc: bi.PrevAlloc,
		})
		return dumpLimit <= 0 || len(report.Blocks) < dumpLimit
	})
	lengths := a.ListLengths()
	report.Lists = lengths[:]

	if jsonOut {
		return printJSON(report)
	}

	printInfo("Heap after %s: %s\n", tr.Name, formatBytes(int64(report.HeapSize)))
	printInfo("%s\n", strings.Repeat("-", 44))
	printInfo("%-12s %10s  %-6s %s\n", "addr", "size", "state", "prev")
	for _, b := range report.Blocks {
		state, prev := "free", "free"
		if b.Alloc {
			state = "alloc"
		}
		if b.PrevAlloc {
			prev = "alloc"
		}
		printInfo("0x%010x %10d  %-6s %s\n", b.Addr, b.Size, state, prev)
	}

	printInfo("\nFree lists:\n")
	for i, n := range report.Lists {
		if n == 0 && !verbose {
			continue
		}
		printInfo("  %2d %-16s %s\n", i, bucketLabel(i), formatNumber(int64(n)))
	}
	return nil
}
