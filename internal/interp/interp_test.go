package interp_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/golox/internal/diag"
	"github.com/cwbudde/golox/internal/gc"
	"github.com/cwbudde/golox/internal/interp"
	"github.com/cwbudde/golox/internal/natives"
	"github.com/cwbudde/golox/internal/parser"
	"github.com/cwbudde/golox/internal/resolver"
	"github.com/cwbudde/golox/internal/scanner"
)

// run compiles and interprets source, returning everything printed to
// stdout. It fails the test immediately on any compile or runtime error.
func run(t *testing.T, source string) string {
	t.Helper()

	reporter := diag.NewReporter()
	tokens := scanner.New(source, reporter).ScanTokens()
	require.False(t, reporter.HadError(), "scan errors: %v", reporter.Errors())

	stmts := parser.New(tokens, reporter).Parse()
	require.False(t, reporter.HadError(), "parse errors: %v", reporter.Errors())

	res := resolver.New(reporter)
	res.Resolve(stmts)
	require.False(t, reporter.HadError(), "resolve errors: %v", reporter.Errors())

	var out bytes.Buffer
	it := interp.New(gc.New(), res.Bindings(), res.LocalSlots(), &out)
	err := it.Interpret(stmts)
	require.NoError(t, err)

	return out.String()
}

// runErr is like run but expects Interpret to fail, returning the error.
func runErr(t *testing.T, source string) error {
	t.Helper()

	reporter := diag.NewReporter()
	tokens := scanner.New(source, reporter).ScanTokens()
	require.False(t, reporter.HadError())
	stmts := parser.New(tokens, reporter).Parse()
	require.False(t, reporter.HadError())
	res := resolver.New(reporter)
	res.Resolve(stmts)
	require.False(t, reporter.HadError())

	var out bytes.Buffer
	it := interp.New(gc.New(), res.Bindings(), res.LocalSlots(), &out)
	return it.Interpret(stmts)
}

func TestInterpretArithmeticAndPrint(t *testing.T) {
	out := run(t, `print 1 + 2 * 3;`)
	assert.Equal(t, "7\n", out)
}

func TestInterpretStringConcatenation(t *testing.T) {
	out := run(t, `print "foo" + "bar";`)
	assert.Equal(t, "foobar\n", out)
}

func TestInterpretClosureCapturesByReference(t *testing.T) {
	out := run(t, `
		fun makeCounter() {
			var count = 0;
			fun counter() {
				count = count + 1;
				return count;
			}
			return counter;
		}
		var counter = makeCounter();
		print counter();
		print counter();
		print counter();`)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestInterpretClassInstantiationAndMethods(t *testing.T) {
	out := run(t, `
		class Greeter {
			init(name) {
				this.name = name;
			}
			greet() {
				return "Hello, " + this.name + "!";
			}
		}
		var g = Greeter("world");
		print g.greet();`)
	assert.Equal(t, "Hello, world!\n", out)
}

func TestInterpretSingleInheritanceAndSuper(t *testing.T) {
	out := run(t, `
		class Pastry {
			taste() {
				return "generic pastry";
			}
		}
		class Cake < Pastry {
			taste() {
				return super.taste() + " but better";
			}
		}
		print Cake().taste();`)
	assert.Equal(t, "generic pastry but better\n", out)
}

func TestInterpretForLoop(t *testing.T) {
	out := run(t, `
		for (var i = 0; i < 3; i = i + 1) {
			print i;
		}`)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestInterpretLogicalShortCircuit(t *testing.T) {
	out := run(t, `
		fun sideEffect() {
			print "called";
			return true;
		}
		print false and sideEffect();
		print true or sideEffect();`)
	assert.Equal(t, "false\ntrue\n", out, "neither branch should call sideEffect")
}

func TestInterpretUndefinedVariableIsRuntimeError(t *testing.T) {
	err := runErr(t, `print undefined_name;`)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Undefined variable"))
}

func TestInterpretOperandTypeErrors(t *testing.T) {
	err := runErr(t, `print "a" - 1;`)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Operands must be numbers."))
}

func TestInterpretStringAndNumberConcatenation(t *testing.T) {
	out := run(t, `
		print "count: " + 3;
		print 3 + " items";`)
	assert.Equal(t, "count: 3\n3 items\n", out)
}

func TestInterpretDivisionByZeroIsRuntimeError(t *testing.T) {
	err := runErr(t, `print 1 / 0;`)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Division by zero."))
}

func TestInterpretDeepRecursionReportsStackOverflow(t *testing.T) {
	err := runErr(t, `
		fun recurse(n) { return recurse(n + 1); }
		recurse(0);`)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Stack overflow."))
}

func TestInterpretCallArityMismatch(t *testing.T) {
	err := runErr(t, `
		fun f(a, b) { return a + b; }
		f(1);`)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Expected 2 arguments but got 1."))
}

func TestInterpretQuitNativeUnwindsAsExitError(t *testing.T) {
	reporter := diag.NewReporter()
	tokens := scanner.New(`quit();`, reporter).ScanTokens()
	require.False(t, reporter.HadError())
	stmts := parser.New(tokens, reporter).Parse()
	require.False(t, reporter.HadError())
	res := resolver.New(reporter)
	res.Resolve(stmts)
	require.False(t, reporter.HadError())

	var out bytes.Buffer
	it := interp.New(gc.New(), res.Bindings(), res.LocalSlots(), &out)
	natives.Register(it)

	err := it.Interpret(stmts)
	var exitErr *interp.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 0, exitErr.Code)
}
