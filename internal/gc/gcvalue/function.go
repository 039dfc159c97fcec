package gcvalue

import "github.com/cwbudde/golox/internal/ast"

// Function is a Lox function or method: its declaration plus the
// environment it closed over at definition time.
type Function struct {
	Header

	Decl          *ast.Function
	Closure       *Environment
	IsInitializer bool
}

// NewFunction allocates an (untracked) Function value. Callers that want it
// collected register it with the collector via gc.Collector.TrackFunction.
func NewFunction(decl *ast.Function, closure *Environment, isInitializer bool) *Function {
	f := &Function{Decl: decl, Closure: closure, IsInitializer: isInitializer}
	f.SetMarked(GCClear)
	return f
}

// Tracker is the subset of gc.Collector's API Bind needs to allocate the
// bound method's closure environment and the bound Function itself under
// collection, rather than off it. It's declared here instead of imported
// from internal/gc to avoid a gcvalue -> gc -> gcvalue import cycle;
// *gc.Collector satisfies it structurally.
type Tracker interface {
	TrackFunction(*Function) *Function
	TrackEnvironment(*Environment) *Environment
}

func (*Function) loxValue() {}

// Arity is the function's declared parameter count.
func (f *Function) Arity() int { return len(f.Decl.Params) }

func (f *Function) String() string { return "<fn " + f.Decl.Name.Lexeme + ">" }

// Bind produces a copy of f whose closure is a new scope, enclosing f's own
// closure, that holds `this` at slot 0 — the same scheme resolver.go uses
// for the synthetic "this" binding it installs when resolving a method.
// Both the closure and the bound Function are registered with tracker so
// they're collected like every other heap value instead of escaping the
// collector's bookkeeping.
func (f *Function) Bind(tracker Tracker, instance *Instance) *Function {
	env := tracker.TrackEnvironment(NewEnvironment(f.Closure, 1))
	env.Define(0, instance)
	return tracker.TrackFunction(NewFunction(f.Decl, env, f.IsInitializer))
}

func (f *Function) MarkChildren(markValue func(Value), markEnv func(*Environment)) {
	markEnv(f.Closure)
}
