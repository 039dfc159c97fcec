// Package diag formats and accumulates the interpreter's compile-time and
// runtime diagnostics. It is modeled on the teacher's internal/errors
// package: each diagnostic is one line naming the source line and the
// offending lexeme (no caret or source excerpt is printed), with an
// optional ANSI-colored variant for terminal output.
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/cwbudde/golox/internal/token"
)

// ExitDataErr is the process exit status cmd/golox reports when a program
// fails to scan, parse or resolve, matching sysexits.h's EX_DATAERR (the
// convention the reference build's CLI driver follows for a compile error).
const ExitDataErr = 65

// CompileError reports that scanning, parsing or resolving a program
// collected one or more diagnostics; cmd/golox maps it to ExitDataErr
// instead of the generic failure code.
type CompileError struct {
	Count int
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compilation failed with %d error(s)", e.Count)
}

// ExitCode satisfies the exitCoder interface cmd/golox's main uses to pick
// the process exit status without printing the error again.
func (e *CompileError) ExitCode() int { return ExitDataErr }

// Error is a single compile-time diagnostic (scan, parse, or resolve error).
type Error struct {
	Line    int
	Where   string // "", " at end", or " at '<lexeme>'"
	Message string
}

// Format renders the diagnostic in the spec's wire format:
//
//	[line N] Error<location>: <message>
func (e Error) Format() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, e.Where, e.Message)
}

// Reporter accumulates compile-time errors across a single scan/parse/resolve
// pass and exposes the process-level had-error flag described by the spec.
type Reporter struct {
	errors []Error
}

// NewReporter returns an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// HadError reports whether any diagnostic has been recorded since the last
// Clear.
func (r *Reporter) HadError() bool {
	return len(r.errors) > 0
}

// Errors returns the accumulated diagnostics in report order.
func (r *Reporter) Errors() []Error {
	return r.errors
}

// Clear resets the reporter so it can be reused for the next REPL line.
func (r *Reporter) Clear() {
	r.errors = r.errors[:0]
}

// ScanError records a diagnostic with no token context (used by the scanner,
// which has not yet produced a token for the offending character).
func (r *Reporter) ScanError(line int, message string) {
	r.errors = append(r.errors, Error{Line: line, Message: message})
}

// TokenError records a diagnostic anchored to tok, choosing "at end" or
// "at '<lexeme>'" the way the reference implementation does.
func (r *Reporter) TokenError(tok token.Token, message string) {
	where := fmt.Sprintf(" at '%s'", tok.Lexeme)
	if tok.Type == token.EOF {
		where = " at end"
	}
	r.errors = append(r.errors, Error{Line: tok.Line, Where: where, Message: message})
}

// PrintAll writes every accumulated diagnostic to w, one per line, colorized
// in bold red when color is enabled.
func PrintAll(w io.Writer, errs []Error, useColor bool) {
	for _, e := range errs {
		line := e.Format()
		if useColor {
			line = color.New(color.FgRed, color.Bold).Sprint(line)
		}
		fmt.Fprintln(w, line)
	}
}

// RuntimeMessage renders a runtime error in the spec's wire format:
//
//	<message>
//	[line N]
func RuntimeMessage(message string, line int) string {
	var sb strings.Builder
	sb.WriteString(message)
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "[line %d]", line)
	return sb.String()
}
