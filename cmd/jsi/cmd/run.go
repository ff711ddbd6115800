package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/jsi/internal/config"
	"github.com/cwbudde/jsi/internal/errors"
	"github.com/cwbudde/jsi/internal/gcheap"
	"github.com/cwbudde/jsi/internal/interp"
	"github.com/cwbudde/jsi/internal/lexer"
	"github.com/cwbudde/jsi/internal/parser"
)

var (
	flagEval    string
	flagDumpAST bool
	flagTrace   bool
	flagConfig  string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a script",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRunCmd,
}

func init() {
	runCmd.Flags().StringVarP(&flagEval, "eval", "e", "", "evaluate a script passed as a string instead of a file")
	runCmd.Flags().BoolVar(&flagDumpAST, "dump-ast", false, "print the parsed AST instead of running it")
	runCmd.Flags().BoolVar(&flagTrace, "trace", false, "print a line for every garbage collection")
	runCmd.Flags().StringVar(&flagConfig, "config", "", "path to a YAML config file (gc thresholds, random seed)")
}

func runRunCmd(c *cobra.Command, args []string) error {
	source, err := readSource(args)
	if err != nil {
		return err
	}

	cfg := config.Default()
	if flagConfig != "" {
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()

	if diags := collectSyntaxDiagnostics(p); len(diags) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatAll(diags, source))
		return fmt.Errorf("%d syntax error(s)", len(diags))
	}

	if flagDumpAST {
		fmt.Fprintln(c.OutOrStdout(), program.String())
		return nil
	}

	heap := gcheap.NewWithThreshold(cfg.GC.ThresholdBytes, cfg.GC.GrowthFactor)
	opts := []interp.Option{interp.WithTrace(flagTrace)}
	if cfg.RandomSeed != 0 {
		opts = append(opts, interp.WithSeed(cfg.RandomSeed))
	}
	evaluator := interp.New(c.OutOrStdout(), heap, opts...)

	if _, err := evaluator.Eval(program); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return fmt.Errorf("script raised an error")
	}
	return nil
}

func readSource(args []string) (string, error) {
	if flagEval != "" {
		return flagEval, nil
	}
	if len(args) == 0 {
		return "", fmt.Errorf("expected a script file, or --eval")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}

func collectSyntaxDiagnostics(p *parser.Parser) []errors.Diagnostic {
	var diags []errors.Diagnostic
	for _, e := range p.LexerErrors() {
		diags = append(diags, errors.Diagnostic{Kind: e.Kind.String(), Message: e.Message, Pos: e.Pos})
	}
	for _, e := range p.Errors() {
		diags = append(diags, errors.Diagnostic{Kind: e.Kind.String(), Message: e.Message, Pos: e.Pos})
	}
	return diags
}
