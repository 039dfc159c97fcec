// Package natives installs the interpreter's host-provided global
// functions: clock, env, quit and help. Each is grounded on a debugging or
// lifecycle facility the reference "loxi" build exposes to scripts
// (env_printReportAll, interpreter_throwExit) rather than on anything
// Lox's own published grammar defines.
package natives

import (
	"fmt"
	"time"

	"github.com/cwbudde/golox/internal/gc/gcvalue"
	"github.com/cwbudde/golox/internal/interp"
)

// Register installs every native global on it.
func Register(it *interp.Interpreter) {
	it.DefineNative("clock", 0, clock)
	it.DefineNative("env", 0, env(it))
	it.DefineNative("quit", 0, quit)
	it.DefineNative("help", 0, help(it))
}

// clock returns the number of seconds since the Unix epoch as a Lox
// number, the same fractional-seconds wall clock the reference
// implementation's native exposes for crude benchmarking.
func clock(_ []gcvalue.Value) (gcvalue.Value, error) {
	return gcvalue.Number(float64(time.Now().UnixNano()) / 1e9), nil
}

// env reports the current scope chain to the interpreter's output writer,
// for inspecting closures interactively from the REPL.
func env(it *interp.Interpreter) func([]gcvalue.Value) (gcvalue.Value, error) {
	return func(_ []gcvalue.Value) (gcvalue.Value, error) {
		fmt.Fprint(it.Out(), it.DescribeEnvironment())
		return gcvalue.Nil{}, nil
	}
}

// quit terminates the running program with status 0, matching the reference
// build's lox_quit (interpreter.c:912, lox_callable.c:61-72), which takes no
// arguments. Unlike a RuntimeError it isn't a fault: cmd/golox's top level
// recognizes *interp.ExitError and exits cleanly instead of printing a
// diagnostic.
func quit(_ []gcvalue.Value) (gcvalue.Value, error) {
	return nil, &interp.ExitError{Code: 0}
}

// help lists the natives this build provides.
func help(it *interp.Interpreter) func([]gcvalue.Value) (gcvalue.Value, error) {
	return func(_ []gcvalue.Value) (gcvalue.Value, error) {
		fmt.Fprintln(it.Out(), "Native functions:")
		fmt.Fprintln(it.Out(), "  clock()      seconds since the Unix epoch")
		fmt.Fprintln(it.Out(), "  env()        print the current scope chain")
		fmt.Fprintln(it.Out(), "  quit()       exit the program")
		fmt.Fprintln(it.Out(), "  help()       print this message")
		return gcvalue.Nil{}, nil
	}
}
