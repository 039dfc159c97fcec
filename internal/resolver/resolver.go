// Package resolver performs a static analysis pass between parsing and
// evaluation: it walks the AST once, resolving every variable reference to
// a (depth, slot) pair relative to the scope it is used in, and rejects a
// handful of statically-detectable misuses (a bare "return" of a value from
// an initializer, "this"/"super" outside a class, self-referential
// initializers, inheriting from yourself).
//
// The pass never touches source values: its sole output is a side table,
// Bindings, that the evaluator consults by AST node identity rather than by
// re-walking enclosing scopes at every variable access.
package resolver

import (
	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/diag"
	"github.com/cwbudde/golox/internal/token"
)

// Binding records where a resolved variable lives: Depth scopes out from the
// point of use, at Slot within that scope.
type Binding struct {
	Depth int
	Slot  int
}

type functionType int

const (
	ftNone functionType = iota
	ftFunction
	ftInitializer
	ftMethod
)

type classType int

const (
	ctNone classType = iota
	ctClass
	ctSubclass
)

type variable struct {
	slot    int
	defined bool
}

type scope struct {
	vars  map[string]*variable
	count int
}

func newScope() *scope {
	return &scope{vars: make(map[string]*variable)}
}

// Resolver carries the scope stack and accumulates the Bindings side table.
type Resolver struct {
	reporter   *diag.Reporter
	bindings   map[ast.Expr]Binding
	localSlots map[ast.Stmt]int
	scopes     []*scope

	currentFunction functionType
	currentClass    classType
}

// New creates a Resolver reporting errors through reporter.
func New(reporter *diag.Reporter) *Resolver {
	return &Resolver{
		reporter:   reporter,
		bindings:   make(map[ast.Expr]Binding),
		localSlots: make(map[ast.Stmt]int),
	}
}

// Bindings returns the side table accumulated by Resolve, mapping a
// variable reference (Assign, Variable, This, Super) to the (depth, slot)
// it resolves to. It is only valid to consult after Resolve has returned.
func (r *Resolver) Bindings() map[ast.Expr]Binding {
	return r.bindings
}

// LocalSlots maps a Var, Function or Class declaration that occurs inside
// some local scope to the slot it was assigned in that scope. A
// declaration absent from this map is a global, stored by name instead.
func (r *Resolver) LocalSlots() map[ast.Stmt]int {
	return r.localSlots
}

// Resolve walks a whole program at the top-level (global) scope.
func (r *Resolver) Resolve(stmts []ast.Stmt) {
	r.resolveStmts(stmts)
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()

	case *ast.Class:
		r.resolveClass(s)

	case *ast.Expression:
		r.resolveExpr(s.Expr)

	case *ast.Function:
		slot, local := r.declare(s.Name)
		r.define(s.Name.Lexeme)
		if local {
			r.localSlots[s] = slot
		}
		r.resolveFunction(s, ftFunction)

	case *ast.If:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *ast.Print:
		r.resolveExpr(s.Expr)

	case *ast.Return:
		if r.currentFunction == ftNone {
			r.reporter.TokenError(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == ftInitializer {
				r.reporter.TokenError(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}

	case *ast.Var:
		slot, local := r.declare(s.Name)
		if s.Init != nil {
			r.resolveExpr(s.Init)
		}
		r.define(s.Name.Lexeme)
		if local {
			r.localSlots[s] = slot
		}

	case *ast.While:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)

	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveClass(s *ast.Class) {
	enclosingClass := r.currentClass
	r.currentClass = ctClass

	slot, local := r.declare(s.Name)
	r.define(s.Name.Lexeme)
	if local {
		r.localSlots[s] = slot
	}

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.reporter.TokenError(s.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = ctSubclass
		r.resolveExpr(s.Superclass)

		r.beginScope()
		r.defineSynthetic("super")
	}

	r.beginScope()
	r.defineSynthetic("this")

	for _, method := range s.Methods {
		kind := ftMethod
		if method.Name.Lexeme == "init" {
			kind = ftInitializer
		}
		r.resolveFunction(method, kind)
	}

	r.endScope()

	if s.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
}

func (r *Resolver) resolveFunction(fn *ast.Function, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param.Lexeme)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)

	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpr(arg)
		}

	case *ast.Get:
		r.resolveExpr(e.Object)

	case *ast.Grouping:
		r.resolveExpr(e.Inner)

	case *ast.Literal:
		// no variables to resolve

	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)

	case *ast.Super:
		if r.currentClass == ctNone {
			r.reporter.TokenError(e.Keyword, "Can't use 'super' outside of a class.")
		} else if r.currentClass != ctSubclass {
			r.reporter.TokenError(e.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e, "super")

	case *ast.This:
		if r.currentClass == ctNone {
			r.reporter.TokenError(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, "this")

	case *ast.Unary:
		r.resolveExpr(e.Right)

	case *ast.Variable:
		if len(r.scopes) > 0 {
			if v, ok := r.scopes[len(r.scopes)-1].vars[e.Name.Lexeme]; ok && !v.defined {
				r.reporter.TokenError(e.Name, "Cannot read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name.Lexeme)

	default:
		panic("resolver: unhandled expression type")
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, newScope())
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// maxLocals bounds how many distinct locals a single scope may declare, the
// same limit the reference implementation's locals table enforces.
const maxLocals = 255

// declare reserves name's slot in the innermost scope, reporting whether
// the declaration is local at all (false at global scope, where binding is
// by name instead of by slot).
func (r *Resolver) declare(name token.Token) (slot int, local bool) {
	if len(r.scopes) == 0 {
		return 0, false
	}
	sc := r.scopes[len(r.scopes)-1]
	if _, ok := sc.vars[name.Lexeme]; ok {
		r.reporter.TokenError(name, "Already a variable with this name in this scope.")
	}
	if sc.count >= maxLocals {
		r.reporter.TokenError(name, "Too many local variables in scope.")
		return 0, true
	}
	slot = sc.count
	sc.vars[name.Lexeme] = &variable{slot: slot}
	sc.count++
	return slot, true
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	sc := r.scopes[len(r.scopes)-1]
	if v, ok := sc.vars[name]; ok {
		v.defined = true
	}
}

// defineSynthetic installs a compiler-generated binding ("this", "super")
// directly into the innermost scope, already defined, with no declare/define
// split since there is no initializer expression to guard against.
func (r *Resolver) defineSynthetic(name string) {
	sc := r.scopes[len(r.scopes)-1]
	sc.vars[name] = &variable{slot: sc.count, defined: true}
	sc.count++
}

// resolveLocal walks the scope stack from innermost outward looking for
// name, recording (depth, slot) in the side table keyed by node. A name
// found nowhere in the stack is left unresolved: the evaluator treats it as
// a global lookup.
func (r *Resolver) resolveLocal(node ast.Expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if v, ok := r.scopes[i].vars[name]; ok {
			r.bindings[node] = Binding{Depth: len(r.scopes) - 1 - i, Slot: v.slot}
			return
		}
	}
	// unresolved: treated as global at evaluation time
}
