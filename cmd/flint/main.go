package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"flint/internal/trace"
	"flint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "flint",
	Short:         "Python source checker",
	Long:          `flint tokenizes Python files, assembles logical lines and syntax trees, and runs registered checks over them`,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		stop, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		profCleanup = stop
		return nil
	},
}

// traceCleanup и profCleanup вызываются после Execute, в том числе при ошибке.
var (
	traceCleanup = func() {}
	profCleanup  = func() {}
)

// errFindings: проверка нашла замечания; код выхода 1 без сообщения.
var errFindings = errors.New("findings reported")

// main registers subcommands and persistent flags and executes the root
// command. On failure the trace ring, if any, is dumped to stderr and the
// process exits with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(logicalCmd)
	rootCmd.AddCommand(astCmd)
	rootCmd.AddCommand(versionCmd)

	addRootFlags(rootCmd)

	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errFindings) {
		fmt.Fprintf(os.Stderr, "flint: %v\n", err)
		dumpTraceRing()
	}
	profCleanup()
	traceCleanup()
	if err != nil {
		os.Exit(1)
	}
}

// addRootFlags registers the persistent flags shared by every subcommand.
func addRootFlags(cmd *cobra.Command) {
	// Глобальные флаги
	cmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	cmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	cmd.PersistentFlags().Bool("timings", false, "show timing information")
	cmd.PersistentFlags().String("config", "", "config file (default: nearest flint.toml or pyproject.toml)")

	cmd.PersistentFlags().String("trace", "", "trace output file (\"-\" for stderr)")
	cmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	cmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	cmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	cmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")
	cmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 = off)")

	cmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	cmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	cmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")
}

func dumpTraceRing() {
	ctx := rootCmd.Context()
	if ctx == nil {
		return
	}
	if ok, err := trace.DumpRing(trace.FromContext(ctx), os.Stderr, trace.FormatText); ok && err != nil {
		fmt.Fprintf(os.Stderr, "trace: dump error: %v\n", err)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color for output going to f.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch value {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return isTerminal(f), nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
}
