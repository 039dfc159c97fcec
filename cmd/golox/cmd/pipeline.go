package cmd

import (
	"io"
	"os"

	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/diag"
	"github.com/cwbudde/golox/internal/gc"
	"github.com/cwbudde/golox/internal/interp"
	"github.com/cwbudde/golox/internal/natives"
	"github.com/cwbudde/golox/internal/parser"
	"github.com/cwbudde/golox/internal/resolver"
	"github.com/cwbudde/golox/internal/scanner"
)

// newInterpreter builds a fresh Interpreter with every native installed,
// writing program output to out.
func newInterpreter(out io.Writer) *interp.Interpreter {
	it := interp.New(gc.New(), make(map[ast.Expr]resolver.Binding), make(map[ast.Stmt]int), out)
	natives.Register(it)
	return it
}

// compile scans, parses and resolves source, reporting every diagnostic it
// collects along the way through reporter. It returns the parsed statements
// and the resolver's side tables; ok is false if scanning, parsing or
// resolving failed, in which case stmts should not be interpreted.
func compile(source string, reporter *diag.Reporter) (stmts []ast.Stmt, bindings map[ast.Expr]resolver.Binding, localSlots map[ast.Stmt]int, ok bool) {
	sc := scanner.New(source, reporter)
	tokens := sc.ScanTokens()
	if reporter.HadError() {
		return nil, nil, nil, false
	}

	p := parser.New(tokens, reporter)
	stmts = p.Parse()
	if reporter.HadError() {
		return nil, nil, nil, false
	}

	res := resolver.New(reporter)
	res.Resolve(stmts)
	if reporter.HadError() {
		return nil, nil, nil, false
	}

	return stmts, res.Bindings(), res.LocalSlots(), true
}

// reportExit recognizes the `quit` native's unwind and terminates the
// process cleanly instead of printing it as a runtime fault; it returns
// false if err is some other (reportable) error.
func reportExit(err error) bool {
	exit, ok := err.(*interp.ExitError)
	if !ok {
		return false
	}
	os.Exit(exit.Code)
	return true
}
