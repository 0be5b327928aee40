package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/segheap/heap/alloc"
	"github.com/joshuapare/segheap/internal/config"
	"github.com/joshuapare/segheap/internal/logger"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	configPath string
	overrides  []string

	// Effective settings, resolved before any command runs
	settings = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "segctl",
	Short: "Replay allocation traces against a segregated-list heap",
	Long: `segctl drives the segheap allocator with malloc-lab style traces.
It verifies block contents during replay, can run the heap consistency
checker after every request, and reports utilization and latency.`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logging")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML settings file")
	rootCmd.PersistentFlags().
		StringArrayVar(&overrides, "set", nil, "Override a setting (key=value, repeatable)")
}

// loadSettings resolves the config file and overrides, then starts logging.
func loadSettings(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Apply(overrides); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	settings = cfg

	opts := cfg.LoggerOptions(verbose)
	if verbose {
		opts.Level = "debug"
	}
	return logger.Init(opts)
}

func execute() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newHeap builds an initialized allocator from the effective settings.
// Call release when done with the heap.
func newHeap() (*alloc.Allocator, func() error, error) {
	mem, release, err := settings.NewProvider()
	if err != nil {
		return nil, nil, err
	}
	a := alloc.New(mem, settings.AllocOptions()...)
	if err := a.Init(); err != nil {
		_ = release()
		return nil, nil, err
	}
	return a, release, nil
}

// Helper functions for output

var numbers = message.NewPrinter(language.English)

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// formatNumber groups digits, e.g. 1234567 -> "1,234,567".
func formatNumber(n int64) string {
	return numbers.Sprintf("%d", n)
}

// formatBytes renders a byte count in IEC units.
func formatBytes(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}
