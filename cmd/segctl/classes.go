package main

import (
	"math"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/segheap/heap/alloc"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "classes",
		Short: "Print the free-list size classes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClasses()
		},
	})
}

// SizeClass is one bucket in classes output. Max is 0 for the unbounded bucket.
type SizeClass struct {
	Bucket int `json:"bucket"`
	Min    int `json:"min"`
	Max    int `json:"max"`
}

// bucketLabel renders bucket i's size range.
func bucketLabel(i int) string {
	lo, hi := alloc.BucketRange(i)
	if hi == math.MaxInt {
		return humanize.Comma(int64(lo)) + "+"
	}
	return humanize.Comma(int64(lo)) + "-" + humanize.Comma(int64(hi))
}

func runClasses() error {
	classes := make([]SizeClass, alloc.NumBuckets)
	for i := range classes {
		lo, hi := alloc.BucketRange(i)
		if hi == math.MaxInt {
			hi = 0
		}
		classes[i] = SizeClass{Bucket: i, Min: lo, Max: hi}
	}

	if jsonOut {
		return printJSON(classes)
	}

	printInfo("Size classes (block sizes, headers included):\n")
	for i := range classes {
		printInfo("  %2d  %s\n", i, bucketLabel(i))
	}
	printVerbose("\nChunk size: %s, max heap: %s\n", settings.ChunkSize, settings.MaxHeap)
	return nil
}
