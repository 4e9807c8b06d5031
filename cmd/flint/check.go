package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"flint/internal/checker"
	"flint/internal/diag"
	"flint/internal/diagfmt"
	"flint/internal/driver"
	"flint/internal/observ"
	"flint/internal/processor"
	"flint/internal/project"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path...]",
	Short: "Check Python files",
	Long: `Check discovers Python files under the given paths (default: the current
directory), runs every registered check over them and prints the findings.
"-" reads standard input.`,
	RunE: runCheck,
}

func init() {
	addCheckFlags(checkCmd)
}

// addCheckFlags registers the flags that override config keys, plus the run controls.
func addCheckFlags(cmd *cobra.Command) {
	defaults := project.Defaults()
	cmd.Flags().Int("max-line-length", defaults.MaxLineLength, "maximum allowed physical line length")
	cmd.Flags().Int("max-doc-length", defaults.MaxDocLength, "maximum allowed doc/comment line length (0 = off)")
	cmd.Flags().Bool("hang-closing", false, "hang closing brackets instead of matching the opening line's indentation")
	cmd.Flags().Int("indent-size", defaults.IndentSize, "number of spaces per indentation level")
	cmd.Flags().Bool("show-source", false, "print the offending line with a caret under the column")
	cmd.Flags().String("format", defaults.Format, "output format ("+strings.Join(diagfmt.Formats(), "|")+")")
	cmd.Flags().String("output-file", "", "write findings to this file instead of stdout")
	cmd.Flags().IntP("jobs", "j", 0, "number of files checked in parallel (0 = GOMAXPROCS)")
	cmd.Flags().StringSlice("exclude", defaults.Exclude, "glob patterns of files and directories to skip")
	cmd.Flags().StringSlice("filename", defaults.Filename, "glob patterns of files to check in directories")
	cmd.Flags().Bool("cache", false, "reuse results of unchanged files from the on-disk cache")
	cmd.Flags().Bool("clear-cache", false, "drop every on-disk cache entry before the run")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	cmd.Flags().Bool("exit-zero", false, "exit with status 0 even if findings were reported")
	cmd.Flags().CountP("verbose", "v", "increase verbosity, exposed to checks as 'verbose'")
	cmd.Flags().Bool("statistics", false, "print the number of findings per code")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	verbose, err := cmd.Flags().GetCount("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	exitZero, err := cmd.Flags().GetBool("exit-zero")
	if err != nil {
		return fmt.Errorf("failed to get exit-zero flag: %w", err)
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	statistics, err := cmd.Flags().GetBool("statistics")
	if err != nil {
		return fmt.Errorf("failed to get statistics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	colorOn, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}

	timer := observ.NewTimer()

	discoverIdx := timer.Begin("discover")
	discovery := driver.Discovery{Filename: cfg.Filename, Exclude: cfg.Exclude}
	files, err := discovery.Discover(args)
	timer.End(discoverIdx, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return fmt.Errorf("discover: %w", err)
	}

	formatter, err := diagfmt.New(diagfmt.Options{
		Format:     cfg.Format,
		ShowSource: cfg.ShowSource,
		OutputFile: cfg.OutputFile,
		Color:      colorOn,
		Stdout:     cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	opts := driver.Options{
		Jobs: cfg.Jobs,
		Processor: processor.Options{
			MaxLineLength: cfg.MaxLineLength,
			MaxDocLength:  cfg.MaxDocLength,
			HangClosing:   cfg.HangClosing,
			IndentSize:    cfg.IndentSize,
			Verbose:       verbose,
		},
		Timer: timer,
	}
	if cfg.Cache || clearCache {
		cache, err := driver.OpenDiskCache("flint")
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		if clearCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
		}
		if cfg.Cache {
			opts.Cache = cache
		}
	}

	reg := checker.NewRegistry()

	runIdx := timer.Begin("run")
	var results []checker.FileResult
	if shouldUseTUI(mode) && len(files) > 1 && !slices.Contains(files, "-") {
		results, err = runCheckWithUI(cmd.Context(), "flint check", reg, opts, files)
	} else {
		results, err = driver.NewManager(reg, opts).Run(cmd.Context(), files)
	}
	timer.End(runIdx, "")
	if err != nil {
		return err
	}

	reportIdx := timer.Begin("report")
	if err := formatter.Start(); err != nil {
		return err
	}
	for _, res := range results {
		if err := formatter.HandleAll(res.Diagnostics); err != nil {
			_ = formatter.Stop()
			return err
		}
	}
	if err := formatter.Stop(); err != nil {
		return err
	}
	timer.End(reportIdx, "")

	summary := driver.Summarize(results)
	if statistics {
		printStatistics(cmd.OutOrStdout(), results)
	}
	if showTimings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d files, %d skipped, %d logical lines, %d findings (%d errors)\n",
			summary.Files, summary.Skipped, summary.LogicalLines, summary.Findings, summary.Errors)
	}

	if summary.Findings > 0 && !exitZero {
		return errFindings
	}
	return nil
}

// printStatistics prints one line per code: count, code and the first message seen.
func printStatistics(out io.Writer, results []checker.FileResult) {
	type stat struct {
		count   int
		message string
	}
	stats := make(map[diag.Code]*stat)
	for _, res := range results {
		for _, d := range res.Diagnostics {
			s, ok := stats[d.Code]
			if !ok {
				s = &stat{message: d.Message}
				stats[d.Code] = s
			}
			s.count++
		}
	}
	codes := make([]diag.Code, 0, len(stats))
	for code := range stats {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	for _, code := range codes {
		fmt.Fprintf(out, "%-5d %s %s\n", stats[code].count, code, stats[code].message)
	}
}
