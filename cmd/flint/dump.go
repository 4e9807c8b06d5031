package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"flint/internal/diagfmt"
	"flint/internal/lexer"
	"flint/internal/processor"
	"flint/internal/trace"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.py",
	Short: "Tokenize a Python source file",
	Long:  `Tokenize breaks a Python source file ("-" for stdin) into its tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

var logicalCmd = &cobra.Command{
	Use:   "logical [flags] file.py",
	Short: "Print the logical lines of a Python source file",
	Long: `Logical joins the physical lines of each statement, replaces string
contents with "x" and drops comments, exactly as line checks see it`,
	Args: cobra.ExactArgs(1),
	RunE: runLogical,
}

var astCmd = &cobra.Command{
	Use:   "ast [flags] file.py",
	Short: "Print the syntax tree of a Python source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runAST,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	logicalCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	logicalCmd.Flags().Bool("mapping", false, "print the offset mapping of every logical line")
	astCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

// openProcessor loads path with the configured options.
func openProcessor(cmd *cobra.Command, path string) (*processor.FileProcessor, string, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return nil, "", fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return nil, "", fmt.Errorf("unknown format: %s", format)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, "", err
	}
	cmd.SilenceUsage = true
	proc, err := processor.New(path, processor.Options{
		MaxLineLength: cfg.MaxLineLength,
		MaxDocLength:  cfg.MaxDocLength,
		HangClosing:   cfg.HangClosing,
		IndentSize:    cfg.IndentSize,
		Tracer:        trace.FromContext(cmd.Context()),
	})
	if err != nil {
		return nil, "", err
	}
	return proc, format, nil
}

func runTokenize(cmd *cobra.Command, args []string) error {
	proc, format, err := openProcessor(cmd, args[0])
	if err != nil {
		return err
	}
	tokens, tokErr := lexer.Tokenize(proc.Lines(), lexer.Options{})

	// Выводим токены в выбранном формате, даже если токенизация оборвалась
	switch format {
	case "json":
		err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), tokens)
	default:
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), tokens)
	}
	if err != nil {
		return err
	}
	if tokErr != nil {
		return fmt.Errorf("tokenization failed: %s: %w", proc.Filename, tokErr)
	}
	return nil
}

// logicalCollector собирает логические строки, физические игнорирует.
type logicalCollector struct {
	proc  *processor.FileProcessor
	lines []diagfmt.LogicalOutput
}

func (c *logicalCollector) PhysicalLine(string) {}

func (c *logicalCollector) LogicalLine(line processor.LogicalLine) {
	c.lines = append(c.lines, diagfmt.LogicalFromLine(line, c.proc.IndentLevel))
}

func runLogical(cmd *cobra.Command, args []string) error {
	proc, format, err := openProcessor(cmd, args[0])
	if err != nil {
		return err
	}
	mapping, err := cmd.Flags().GetBool("mapping")
	if err != nil {
		return fmt.Errorf("failed to get mapping flag: %w", err)
	}
	collector := &logicalCollector{proc: proc}
	tokErr := proc.ProcessTokens(collector)

	switch format {
	case "json":
		err = diagfmt.FormatLogicalJSON(cmd.OutOrStdout(), collector.lines)
	default:
		err = diagfmt.FormatLogicalPretty(cmd.OutOrStdout(), collector.lines, mapping)
	}
	if err != nil {
		return err
	}
	if tokErr != nil {
		return fmt.Errorf("tokenization failed: %s: %w", proc.Filename, tokErr)
	}
	return nil
}

func runAST(cmd *cobra.Command, args []string) error {
	proc, format, err := openProcessor(cmd, args[0])
	if err != nil {
		return err
	}
	tree, err := proc.BuildAST()
	if err != nil {
		return fmt.Errorf("%s: %w", proc.Filename, err)
	}
	switch format {
	case "json":
		return diagfmt.FormatASTJSON(cmd.OutOrStdout(), tree)
	default:
		return diagfmt.FormatASTPretty(cmd.OutOrStdout(), tree)
	}
}
