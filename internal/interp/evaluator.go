package interp

import (
	"fmt"

	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/gc/gcvalue"
	"github.com/cwbudde/golox/internal/token"
)

// maxArguments mirrors parser.MaxArgCount; evaluateCall checks a call
// expression's argument count against it again, so a call node built
// without going through the parser is held to the same limit.
const maxArguments = 8

func (i *Interpreter) evaluate(expr ast.Expr) (gcvalue.Value, error) {
	switch e := expr.(type) {
	case *ast.Assign:
		value, err := i.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if err := i.assignVariable(e.Name, e, value, e.Tok.Line); err != nil {
			return nil, err
		}
		return value, nil

	case *ast.Binary:
		return i.evaluateBinary(e)

	case *ast.Call:
		return i.evaluateCall(e)

	case *ast.Get:
		obj, err := i.evaluate(e.Object)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*gcvalue.Instance)
		if !ok {
			return nil, &RuntimeError{Message: "Only instances have properties.", Line: e.Tok.Line}
		}
		v, ok := inst.Get(i.collector, e.Name)
		if !ok {
			return nil, &RuntimeError{Message: "Undefined property '" + e.Name + "'.", Line: e.Tok.Line}
		}
		return v, nil

	case *ast.Grouping:
		return i.evaluate(e.Inner)

	case *ast.Literal:
		return literalValue(e.Value), nil

	case *ast.Logical:
		left, err := i.evaluate(e.Left)
		if err != nil {
			return nil, err
		}
		if e.Op.Lexeme == "or" {
			if gcvalue.Truthy(left) {
				return left, nil
			}
		} else {
			if !gcvalue.Truthy(left) {
				return left, nil
			}
		}
		return i.evaluate(e.Right)

	case *ast.Set:
		obj, err := i.evaluate(e.Object)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*gcvalue.Instance)
		if !ok {
			return nil, &RuntimeError{Message: "Only instances have fields.", Line: e.Tok.Line}
		}
		value, err := i.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		inst.Set(e.Name, value)
		return value, nil

	case *ast.Super:
		return i.evaluateSuper(e)

	case *ast.This:
		return i.lookUpVariable("this", e, e.Keyword.Line)

	case *ast.Unary:
		return i.evaluateUnary(e)

	case *ast.Variable:
		return i.lookUpVariable(e.Name.Lexeme, e, e.Name.Line)

	default:
		return nil, &RuntimeError{Message: fmt.Sprintf("unhandled expression type %T", expr)}
	}
}

func literalValue(v any) gcvalue.Value {
	switch val := v.(type) {
	case nil:
		return gcvalue.Nil{}
	case bool:
		return gcvalue.Bool(val)
	case float64:
		return gcvalue.Number(val)
	case string:
		return gcvalue.Str(val)
	default:
		return gcvalue.Nil{}
	}
}

func (i *Interpreter) evaluateUnary(e *ast.Unary) (gcvalue.Value, error) {
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case token.Bang:
		return gcvalue.Bool(!gcvalue.Truthy(right)), nil
	case token.Minus:
		n, ok := right.(gcvalue.Number)
		if !ok {
			return nil, &RuntimeError{Message: "Operand must be a number.", Line: e.Op.Line}
		}
		return -n, nil
	default:
		return nil, &RuntimeError{Message: "Unknown unary operator.", Line: e.Op.Line}
	}
}

func (i *Interpreter) evaluateBinary(e *ast.Binary) (gcvalue.Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case token.Plus:
		// Numbers and strings combine with their own kind; a string mixed
		// with a number stringifies the number (but not a bool or nil),
		// matching original_source/src/interpreter.c's TT_PLUS case.
		if ln, ok := left.(gcvalue.Number); ok {
			if rn, ok := right.(gcvalue.Number); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(gcvalue.Str); ok {
			if rs, ok := right.(gcvalue.Str); ok {
				return ls + rs, nil
			}
			if rn, ok := right.(gcvalue.Number); ok {
				return ls + gcvalue.Str(gcvalue.Stringify(rn)), nil
			}
		}
		if rs, ok := right.(gcvalue.Str); ok {
			if ln, ok := left.(gcvalue.Number); ok {
				return gcvalue.Str(gcvalue.Stringify(ln)) + rs, nil
			}
		}
		return nil, &RuntimeError{Message: "Operands must be two numbers or two strings.", Line: e.Op.Line}

	case token.Minus:
		ln, rn, err := i.numberOperands(left, right, e.Op.Line)
		if err != nil {
			return nil, err
		}
		return ln - rn, nil

	case token.Star:
		ln, rn, err := i.numberOperands(left, right, e.Op.Line)
		if err != nil {
			return nil, err
		}
		return ln * rn, nil

	case token.Slash:
		ln, rn, err := i.numberOperands(left, right, e.Op.Line)
		if err != nil {
			return nil, err
		}
		if rn == 0 {
			return nil, &RuntimeError{Message: "Division by zero.", Line: e.Op.Line}
		}
		return ln / rn, nil

	case token.Greater:
		ln, rn, err := i.numberOperands(left, right, e.Op.Line)
		if err != nil {
			return nil, err
		}
		return gcvalue.Bool(ln > rn), nil

	case token.GreaterEqual:
		ln, rn, err := i.numberOperands(left, right, e.Op.Line)
		if err != nil {
			return nil, err
		}
		return gcvalue.Bool(ln >= rn), nil

	case token.Less:
		ln, rn, err := i.numberOperands(left, right, e.Op.Line)
		if err != nil {
			return nil, err
		}
		return gcvalue.Bool(ln < rn), nil

	case token.LessEqual:
		ln, rn, err := i.numberOperands(left, right, e.Op.Line)
		if err != nil {
			return nil, err
		}
		return gcvalue.Bool(ln <= rn), nil

	case token.BangEqual:
		return gcvalue.Bool(!gcvalue.Equal(left, right)), nil

	case token.EqualEqual:
		return gcvalue.Bool(gcvalue.Equal(left, right)), nil

	default:
		return nil, &RuntimeError{Message: "Unknown binary operator.", Line: e.Op.Line}
	}
}

func (i *Interpreter) numberOperands(left, right gcvalue.Value, line int) (gcvalue.Number, gcvalue.Number, error) {
	ln, lok := left.(gcvalue.Number)
	rn, rok := right.(gcvalue.Number)
	if !lok || !rok {
		return 0, 0, &RuntimeError{Message: "Operands must be numbers.", Line: line}
	}
	return ln, rn, nil
}

func (i *Interpreter) evaluateCall(e *ast.Call) (gcvalue.Value, error) {
	callee, err := i.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	if len(e.Args) > maxArguments {
		return nil, &RuntimeError{Message: "Can't have more than 8 arguments.", Line: e.Paren.Line}
	}

	args := make([]gcvalue.Value, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := i.evaluate(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	return i.call(callee, args, e.Paren.Line)
}

func (i *Interpreter) call(callee gcvalue.Value, args []gcvalue.Value, line int) (gcvalue.Value, error) {
	switch c := callee.(type) {
	case *gcvalue.Native:
		if len(args) != c.Arity {
			return nil, &RuntimeError{
				Message: fmt.Sprintf("Expected %d arguments but got %d.", c.Arity, len(args)),
				Line:    line,
			}
		}
		return c.Fn(args)

	case *gcvalue.Function:
		return i.callFunction(c, args, line)

	case *gcvalue.Class:
		return i.instantiate(c, args, line)

	default:
		return nil, &RuntimeError{Message: "Can only call functions and classes.", Line: line}
	}
}

func (i *Interpreter) callFunction(fn *gcvalue.Function, args []gcvalue.Value, line int) (gcvalue.Value, error) {
	if len(args) != fn.Arity() {
		return nil, &RuntimeError{
			Message: fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args)),
			Line:    line,
		}
	}

	// Every nested call pushes fn onto the collector's lock stack, which
	// doubles as a call-depth counter bounded by gc.MaxLockDepth: a Go call
	// stack overflow would crash the process, so unbounded recursion must
	// surface as a Lox runtime error first.
	if !i.collector.Lock(fn) {
		return nil, &RuntimeError{Message: "Stack overflow.", Line: line}
	}
	defer i.collector.Unlock()

	env := i.collector.TrackEnvironment(gcvalue.NewEnvironment(fn.Closure, len(args)))
	defer env.Deactivate()
	for idx := range fn.Decl.Params {
		env.Define(idx, args[idx])
	}

	err := i.executeBlock(fn.Decl.Body, env)
	if err == nil {
		if fn.IsInitializer {
			return fn.Closure.GetAt(0, 0), nil
		}
		return gcvalue.Nil{}, nil
	}

	if ret, ok := err.(returnSignal); ok {
		if fn.IsInitializer {
			return fn.Closure.GetAt(0, 0), nil
		}
		return ret.Value, nil
	}
	return nil, err
}

func (i *Interpreter) instantiate(class *gcvalue.Class, args []gcvalue.Value, line int) (gcvalue.Value, error) {
	instance := i.collector.TrackInstance(gcvalue.NewInstance(class))

	if init, ok := class.FindMethod("init"); ok {
		bound := init.Bind(i.collector, instance)
		if _, err := i.callFunction(bound, args, line); err != nil {
			return nil, err
		}
	} else if len(args) != 0 {
		return nil, &RuntimeError{
			Message: fmt.Sprintf("Expected 0 arguments but got %d.", len(args)),
			Line:    line,
		}
	}

	return instance, nil
}

func (i *Interpreter) evaluateSuper(e *ast.Super) (gcvalue.Value, error) {
	b, ok := i.bindings[e]
	if !ok {
		return nil, &RuntimeError{Message: "Can't use 'super' outside of a class.", Line: e.Keyword.Line}
	}

	superclass, ok := i.environment.GetAt(b.Depth, b.Slot).(*gcvalue.Class)
	if !ok {
		return nil, &RuntimeError{Message: "Can't use 'super' outside of a class.", Line: e.Keyword.Line}
	}

	// "this" lives one scope in from "super": resolver.go pushes the "this"
	// scope immediately inside the "super" scope, and both synthetic
	// bindings are always the sole (slot 0) entry in their scope.
	instance, ok := i.environment.GetAt(b.Depth-1, 0).(*gcvalue.Instance)
	if !ok {
		return nil, &RuntimeError{Message: "Can't use 'super' outside of a class.", Line: e.Keyword.Line}
	}

	method, ok := superclass.FindMethod(e.Method)
	if !ok {
		return nil, &RuntimeError{Message: "Undefined property '" + e.Method + "'.", Line: e.Keyword.Line}
	}

	return method.Bind(i.collector, instance), nil
}
