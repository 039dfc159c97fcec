// Package replline implements golox's interactive read-eval-print loop: line
// editing and history via chzyer/readline, colored diagnostics via
// fatih/color, and a single Interpreter kept alive across lines so that
// variables, functions and classes declared on one line stay visible on the
// next.
package replline

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/diag"
	"github.com/cwbudde/golox/internal/resolver"
)

// exiter is satisfied by *interp.ExitError, matched structurally so this
// package doesn't need to import internal/interp just to special-case the
// quit() native's unwind.
type exiter interface {
	ExitCode() int
}

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Interpreter is the slice of *interp.Interpreter the REPL drives. It's
// expressed as an interface here so this package never imports internal/gc
// or internal/interp directly, matching the one-way dependency the rest of
// the pipeline follows (cmd wires the concrete interpreter in).
type Interpreter interface {
	Interpret(stmts []ast.Stmt) error
	MergeResolution(bindings map[ast.Expr]resolver.Binding, localSlots map[ast.Stmt]int)
}

// Compiler turns one line of source into statements and a resolver's side
// tables, or reports diagnostics and returns ok=false.
type Compiler func(source string, reporter *diag.Reporter) (stmts []ast.Stmt, bindings map[ast.Expr]resolver.Binding, localSlots map[ast.Stmt]int, ok bool)

// Repl holds the banner text and prompt for an interactive session.
type Repl struct {
	Banner  string
	Version string
	Line    string
	Prompt  string

	Compile Compiler
}

// New creates a Repl ready to Start.
func New(banner, version, line, prompt string, compile Compiler) *Repl {
	return &Repl{Banner: banner, Version: version, Line: line, Prompt: prompt, Compile: compile}
}

// PrintBannerInfo writes the welcome banner and usage instructions.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Type Lox statements and press enter.")
	cyanColor.Fprintf(writer, "%s\n", "Type 'exit' or press Ctrl+D to quit.")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the main loop, reading lines from an interactive terminal and
// driving it (which persists state across lines) until the user quits.
func (r *Repl) Start(writer io.Writer, it Interpreter) error {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Fprintln(writer, "Good bye!")
			return nil
		}

		if line == "" {
			continue
		}
		if line == "exit" {
			fmt.Fprintln(writer, "Good bye!")
			return nil
		}

		rl.SaveHistory(line)
		r.executeWithRecovery(writer, line, it)
	}
}

// executeWithRecovery compiles and runs one line, recovering from any panic
// that escapes the pipeline (an internal bug, not a Lox-level fault) so a
// single bad line can't kill the session.
func (r *Repl) executeWithRecovery(writer io.Writer, line string, it Interpreter) {
	defer func() {
		if rec := recover(); rec != nil {
			redColor.Fprintf(writer, "[internal error] %v\n", rec)
		}
	}()

	reporter := diag.NewReporter()
	stmts, bindings, localSlots, ok := r.Compile(line, reporter)
	if !ok {
		for _, e := range reporter.Errors() {
			redColor.Fprintln(writer, e.Format())
		}
		return
	}

	it.MergeResolution(bindings, localSlots)
	if err := it.Interpret(stmts); err != nil {
		if ee, ok := err.(exiter); ok {
			fmt.Fprintln(writer, "Good bye!")
			os.Exit(ee.ExitCode())
		}
		redColor.Fprintln(writer, err)
	}
}
