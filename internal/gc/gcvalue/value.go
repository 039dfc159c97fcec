// Package gcvalue defines the runtime value model: the Value interface and
// its leaf implementations (nil, boolean, number, string), plus the
// Tracked interface implemented by every heap-allocated value the collector
// in internal/gc has to trace (Function, Class, Instance). Environment is
// tracked separately, through its own intrusive list, the same split the
// reference collector makes between its object list and its environment
// list.
package gcvalue

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is implemented by every runtime value a Lox expression can produce.
type Value interface {
	loxValue()
}

// Nil is the single Lox nil value.
type Nil struct{}

func (Nil) loxValue() {}

// Bool is a Lox boolean.
type Bool bool

func (Bool) loxValue() {}

// Number is a Lox number: Lox has no separate integer type, every number is
// a float64 as in the reference implementation.
type Number float64

func (Number) loxValue() {}

// Str is a Lox string. Strings are immutable Go strings; unlike the
// reference implementation's interned heap strings, Go's own string
// interning of identical literals is left to the compiler and runtime,
// which is the idiomatic substitute for the string pool described for
// native code.
type Str string

func (Str) loxValue() {}

// Truthy implements Lox's truthiness rule: nil and false are falsey,
// everything else (including 0 and "") is truthy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case Nil, nil:
		return false
	case Bool:
		return bool(val)
	default:
		return true
	}
}

// Equal implements Lox's `==`: values of different dynamic type are never
// equal (unlike e.g. Python/JS, no implicit coercion happens here).
func Equal(a, b Value) bool {
	if a == nil {
		a = Nil{}
	}
	if b == nil {
		b = Nil{}
	}
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case Str:
		bv, ok := b.(Str)
		return ok && av == bv
	default:
		return a == b
	}
}

// Stringify renders a value the way `print` and string concatenation do.
func Stringify(v Value) string {
	switch val := v.(type) {
	case nil, Nil:
		return "nil"
	case Bool:
		if val {
			return "true"
		}
		return "false"
	case Number:
		return formatNumber(float64(val))
	case Str:
		return string(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

func formatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	return strings.TrimSuffix(s, ".0")
}

// TypeName names a value's dynamic type for diagnostics.
func TypeName(v Value) string {
	switch v.(type) {
	case nil, Nil:
		return "nil"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case Str:
		return "string"
	case *Function:
		return "function"
	case *Class:
		return "class"
	case *Instance:
		return "instance"
	case *Native:
		return "native function"
	default:
		return "value"
	}
}

// Header is embedded by every Tracked value to carry the collector's mark
// bit and intrusive-list link. GCClear is the sentinel "unmarked" value the
// reference collector uses so that a freshly allocated object never matches
// whatever mark generation happens to be current.
const GCClear int32 = -1

type Header struct {
	marked int32
	next   Tracked
}

func (h *Header) Marked() int32     { return h.marked }
func (h *Header) SetMarked(m int32) { h.marked = m }
func (h *Header) Next() Tracked     { return h.next }
func (h *Header) SetNext(n Tracked) { h.next = n }

// Tracked is implemented by every Value the collector must trace: it can
// report whether it has been visited this cycle and can visit its own
// children through the two callbacks the collector supplies (one for Value
// children, one for Environment children).
type Tracked interface {
	Value
	Marked() int32
	SetMarked(int32)
	Next() Tracked
	SetNext(Tracked)
	MarkChildren(markValue func(Value), markEnv func(*Environment))
}

// Native is a host-implemented function (clock, env, quit, help, ...). It
// holds no references into the tracked heap, so unlike Function/Class it is
// never registered with the collector — it lives exactly as long as the
// interpreter that owns it, the same way the reference VM's native
// callables are allocated once and never swept.
type Native struct {
	Name  string
	Arity int
	Fn    func(args []Value) (Value, error)
}

func (*Native) loxValue() {}

func (n *Native) String() string { return "<native fn " + n.Name + ">" }
