// Command golox runs the Lox interpreter: a file or inline expression via
// `golox run`, or an interactive session via `golox repl`.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/cwbudde/golox/cmd/golox/cmd"
)

// exitCoder is implemented by *diag.CompileError (exit 65) and
// *interp.RuntimeError (exit 70); cmd/golox/cmd has already printed either
// one by the time it reaches here, so main only needs to pick the status.
type exitCoder interface {
	ExitCode() int
}

func main() {
	if err := cmd.Execute(); err != nil {
		var ec exitCoder
		if errors.As(err, &ec) {
			os.Exit(ec.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
