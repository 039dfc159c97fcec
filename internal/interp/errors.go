package interp

import (
	"fmt"

	"github.com/cwbudde/golox/internal/diag"
	"github.com/cwbudde/golox/internal/gc/gcvalue"
)

// RuntimeError is a Lox runtime fault: a type error, an undefined name, a
// call arity mismatch. It is returned as an ordinary Go error and threaded
// back up through execute/evaluate, the idiomatic substitute for the
// reference interpreter's interpreter_throwError longjmp.
type RuntimeError struct {
	Message string
	Line    int
}

func (e *RuntimeError) Error() string {
	return diag.RuntimeMessage(e.Message, e.Line)
}

// ExitSoftware is the process exit status cmd/golox reports when a program
// compiles but faults at runtime, matching sysexits.h's EX_SOFTWARE.
const ExitSoftware = 70

// ExitCode satisfies the exitCoder interface cmd/golox's main uses to pick
// the process exit status without printing the error again.
func (e *RuntimeError) ExitCode() int { return ExitSoftware }

// returnSignal carries a `return` statement's value back up to the call
// site that's executing the function body. It satisfies error purely so it
// can travel the same execute/evaluate return channel as a RuntimeError;
// callFunction is the only place that type-asserts for it and strips it
// back out into a normal value.
type returnSignal struct {
	Value gcvalue.Value
}

func (returnSignal) Error() string { return "return" }

// ExitError unwinds the whole interpreter the way the reference
// implementation's interpreter_throwExit does for the `quit` native: it
// travels the same execute/evaluate error channel as a RuntimeError, but
// cmd/golox treats it as a clean request to stop rather than a fault to
// report, reading Code as the process exit status.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("quit(%d)", e.Code)
}

// ExitCode satisfies the unexported exiter interface internal/replline uses
// to recognize an ExitError without importing this package's concrete type;
// cmd/golox type-asserts *ExitError directly.
func (e *ExitError) ExitCode() int { return e.Code }

