// Package interp evaluates a resolved Lox program: it walks the AST built
// by the parser, consulting the resolver's side table for variable
// lookups, and produces either a value (for expressions) or a RuntimeError
// (for faults the reference implementation would longjmp out of).
package interp

import (
	"fmt"
	"io"
	"strings"

	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/gc"
	"github.com/cwbudde/golox/internal/gc/gcvalue"
	"github.com/cwbudde/golox/internal/resolver"
)

// Interpreter walks a program's statements against a tracked global
// environment, consulting the resolver's bindings to avoid re-walking
// enclosing scopes on every variable access.
type Interpreter struct {
	Globals     *gcvalue.Environment
	environment *gcvalue.Environment

	collector *gc.Collector

	bindings   map[ast.Expr]resolver.Binding
	localSlots map[ast.Stmt]int

	out io.Writer
}

// New creates an Interpreter over a fresh global environment tracked by
// collector, consulting bindings/localSlots (the resolver's output) to
// resolve every variable reference and declaration.
func New(collector *gc.Collector, bindings map[ast.Expr]resolver.Binding, localSlots map[ast.Stmt]int, out io.Writer) *Interpreter {
	globals := collector.SetGlobalEnvironment(gcvalue.NewGlobalEnvironment())
	return &Interpreter{
		Globals:     globals,
		environment: globals,
		collector:   collector,
		bindings:    bindings,
		localSlots:  localSlots,
		out:         out,
	}
}

// Collector exposes the underlying collector, e.g. to read its Stats.
func (i *Interpreter) Collector() *gc.Collector { return i.collector }

// Out exposes the interpreter's output writer, for natives that print
// (env, help) rather than only returning a value.
func (i *Interpreter) Out() io.Writer { return i.out }

// DescribeEnvironment renders the active scope chain from innermost to the
// global scope, the way the reference implementation's env_printReportAll
// reports the runtime environment for debugging.
func (i *Interpreter) DescribeEnvironment() string {
	var sb strings.Builder
	depth := 0
	for env := i.environment; env != nil; env = env.Enclosing {
		if env.Globals != nil {
			fmt.Fprintf(&sb, "depth %d (global): %d names\n", depth, len(env.Globals))
			for name, v := range env.Globals {
				fmt.Fprintf(&sb, "  %s = %s\n", name, gcvalue.Stringify(v))
			}
		} else {
			fmt.Fprintf(&sb, "depth %d: %d slot(s)\n", depth, len(env.Slots))
			for slot, v := range env.Slots {
				fmt.Fprintf(&sb, "  [%d] = %s\n", slot, gcvalue.Stringify(v))
			}
		}
		depth++
	}
	return sb.String()
}

// DefineNative installs a host function as a global, as internal/natives
// does for clock/env/quit/help.
func (i *Interpreter) DefineNative(name string, arity int, fn func(args []gcvalue.Value) (gcvalue.Value, error)) {
	i.Globals.DefineGlobal(name, &gcvalue.Native{Name: name, Arity: arity, Fn: fn})
}

// MergeResolution adds a resolver pass's side tables to the interpreter's
// own, so a REPL session (one Resolve pass per line, sharing a single
// Interpreter across lines) accumulates bindings instead of losing the
// earlier lines' when each new line's resolver runs.
func (i *Interpreter) MergeResolution(bindings map[ast.Expr]resolver.Binding, localSlots map[ast.Stmt]int) {
	for k, v := range bindings {
		i.bindings[k] = v
	}
	for k, v := range localSlots {
		i.localSlots[k] = v
	}
}

// Interpret executes a whole program's statements in the global scope,
// stopping at and returning the first RuntimeError.
func (i *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.Block:
		child := i.collector.TrackEnvironment(gcvalue.NewEnvironment(i.environment, 0))
		defer child.Deactivate()
		return i.executeBlock(s.Stmts, child)

	case *ast.Class:
		return i.executeClass(s)

	case *ast.Expression:
		_, err := i.evaluate(s.Expr)
		return err

	case *ast.Function:
		fn := i.collector.TrackFunction(gcvalue.NewFunction(s, i.environment, false))
		i.defineVariable(s, s.Name.Lexeme, fn)
		return nil

	case *ast.If:
		cond, err := i.evaluate(s.Cond)
		if err != nil {
			return err
		}
		if gcvalue.Truthy(cond) {
			return i.execute(s.Then)
		}
		if s.Else != nil {
			return i.execute(s.Else)
		}
		return nil

	case *ast.Print:
		v, err := i.evaluate(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.out, gcvalue.Stringify(v))
		return nil

	case *ast.Return:
		var value gcvalue.Value = gcvalue.Nil{}
		if s.Value != nil {
			v, err := i.evaluate(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return returnSignal{Value: value}

	case *ast.Var:
		var value gcvalue.Value = gcvalue.Nil{}
		if s.Init != nil {
			v, err := i.evaluate(s.Init)
			if err != nil {
				return err
			}
			value = v
		}
		i.defineVariable(s, s.Name.Lexeme, value)
		return nil

	case *ast.While:
		for {
			cond, err := i.evaluate(s.Cond)
			if err != nil {
				return err
			}
			if !gcvalue.Truthy(cond) {
				return nil
			}
			if err := i.execute(s.Body); err != nil {
				return err
			}
		}

	default:
		return &RuntimeError{Message: fmt.Sprintf("unhandled statement type %T", stmt)}
	}
}

// executeBlock runs stmts against env, restoring the previous environment
// before returning (including on an error or return-signal unwind).
func (i *Interpreter) executeBlock(stmts []ast.Stmt, env *gcvalue.Environment) error {
	previous := i.environment
	i.environment = env
	defer func() { i.environment = previous }()

	for _, stmt := range stmts {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) executeClass(s *ast.Class) error {
	var superclass *gcvalue.Class
	if s.Superclass != nil {
		v, err := i.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		cls, ok := v.(*gcvalue.Class)
		if !ok {
			return &RuntimeError{Message: "Superclass must be a class.", Line: s.Superclass.Name.Line}
		}
		superclass = cls
	}

	classEnv := i.environment
	if superclass != nil {
		classEnv = i.collector.TrackEnvironment(gcvalue.NewEnvironment(i.environment, 1))
		classEnv.Define(0, superclass)
	}

	methods := make(map[string]*gcvalue.Function, len(s.Methods))
	for _, m := range s.Methods {
		fn := i.collector.TrackFunction(gcvalue.NewFunction(m, classEnv, m.Name.Lexeme == "init"))
		methods[m.Name.Lexeme] = fn
	}

	class := i.collector.TrackClass(gcvalue.NewClass(s.Name.Lexeme, superclass, methods))
	i.defineVariable(s, s.Name.Lexeme, class)
	return nil
}

// defineVariable stores value at the slot the resolver assigned stmt, or
// as a named global if stmt was never resolved to a local slot.
func (i *Interpreter) defineVariable(stmt ast.Stmt, name string, value gcvalue.Value) {
	if slot, ok := i.localSlots[stmt]; ok {
		i.environment.Define(slot, value)
		return
	}
	i.environment.DefineGlobal(name, value)
}

func (i *Interpreter) lookUpVariable(name string, expr ast.Expr, line int) (gcvalue.Value, error) {
	if b, ok := i.bindings[expr]; ok {
		return i.environment.GetAt(b.Depth, b.Slot), nil
	}
	if v, ok := i.Globals.GetGlobal(name); ok {
		return v, nil
	}
	return nil, &RuntimeError{Message: "Undefined variable '" + name + "'.", Line: line}
}

func (i *Interpreter) assignVariable(name string, expr ast.Expr, value gcvalue.Value, line int) error {
	if b, ok := i.bindings[expr]; ok {
		i.environment.AssignAt(b.Depth, b.Slot, value)
		return nil
	}
	if i.Globals.AssignGlobal(name, value) {
		return nil
	}
	return &RuntimeError{Message: "Undefined variable '" + name + "'.", Line: line}
}
