package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/golox/internal/diag"
	"github.com/cwbudde/golox/internal/loxlog"
)

var (
	evalExpr string
	dumpAST  bool
	trace    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Lox file or expression",
	Long: `Execute a Lox program from a file or inline expression.

Examples:
  # Run a script file
  golox run script.lox

  # Evaluate an inline expression
  golox run -e "print \"Hello, World!\";"

  # Run with AST dump (for debugging)
  golox run --dump-ast script.lox

  # Run with execution trace
  golox run --trace script.lox`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace execution (for debugging)")
}

func runScript(_ *cobra.Command, args []string) error {
	var input string
	var filename string

	if evalExpr != "" {
		input = evalExpr
		filename = "<eval>"
	} else if len(args) == 1 {
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		input = string(content)
	} else {
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	reporter := diag.NewReporter()
	stmts, bindings, localSlots, ok := compile(input, reporter)
	if !ok {
		diag.PrintAll(os.Stderr, reporter.Errors(), true)
		return &diag.CompileError{Count: len(reporter.Errors())}
	}

	if dumpAST {
		fmt.Println("AST:")
		for _, stmt := range stmts {
			fmt.Printf("%+v\n", stmt)
		}
		fmt.Println()
	}

	logger := loxlog.New(os.Stderr, trace)
	logger.Tracef("running %s", filename)

	it := newInterpreter(os.Stdout)
	it.MergeResolution(bindings, localSlots)

	if err := it.Interpret(stmts); err != nil {
		if reportExit(err) {
			return nil
		}
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	return nil
}
