package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/diag"
	"github.com/cwbudde/golox/internal/parser"
	"github.com/cwbudde/golox/internal/scanner"
)

func resolveSource(t *testing.T, source string) ([]ast.Stmt, *Resolver, *diag.Reporter) {
	t.Helper()
	reporter := diag.NewReporter()
	tokens := scanner.New(source, reporter).ScanTokens()
	stmts := parser.New(tokens, reporter).Parse()
	res := New(reporter)
	res.Resolve(stmts)
	return stmts, res, reporter
}

func TestResolveBlockLocalAndGlobalReference(t *testing.T) {
	stmts, res, reporter := resolveSource(t, `
		var a = 1;
		{
			var b = 2;
			print a + b;
		}`)
	assert.False(t, reporter.HadError())

	block := stmts[1].(*ast.Block)
	printStmt := block.Stmts[1].(*ast.Print)
	bin := printStmt.Expr.(*ast.Binary)

	// "a" is declared one block out (the global scope is unresolved/by-name,
	// so this reference never appears in bindings at all).
	aRef := bin.Left.(*ast.Variable)
	_, ok := res.Bindings()[aRef]
	assert.False(t, ok, "a global reference should be left unresolved")

	// "b" is declared in the same block it's used in: depth 0.
	bRef := bin.Right.(*ast.Variable)
	binding, ok := res.Bindings()[bRef]
	assert.True(t, ok)
	assert.Equal(t, Binding{Depth: 0, Slot: 0}, binding)
}

func TestResolveSelfReferentialInitializerIsError(t *testing.T) {
	_, _, reporter := resolveSource(t, `{ var a = a; }`)
	assert.True(t, reporter.HadError())
}

func TestResolveReturnValueFromInitializerIsError(t *testing.T) {
	_, _, reporter := resolveSource(t, `
		class Foo {
			init() { return 1; }
		}`)
	assert.True(t, reporter.HadError())
}

func TestResolveClassInheritingFromItselfIsError(t *testing.T) {
	_, _, reporter := resolveSource(t, `class Foo < Foo {}`)
	assert.True(t, reporter.HadError())
}

func TestResolveThisOutsideClassIsError(t *testing.T) {
	_, _, reporter := resolveSource(t, `print this;`)
	assert.True(t, reporter.HadError())
}

func TestResolveSuperOutsideClassIsError(t *testing.T) {
	_, _, reporter := resolveSource(t, `fun f() { super.method(); }`)
	assert.True(t, reporter.HadError())
}

func TestResolveThisAndSuperSlotInvariant(t *testing.T) {
	stmts, res, reporter := resolveSource(t, `
		class A {
			greet() { return "a"; }
		}
		class B < A {
			greet() { return super.greet() + this; }
		}`)
	assert.False(t, reporter.HadError())

	classB := stmts[1].(*ast.Class)
	greet := classB.Methods[0]
	bin := greet.Body[0].(*ast.Return).Value.(*ast.Binary)

	superCall := bin.Left.(*ast.Call)
	superExpr := superCall.Callee.(*ast.Super)
	superBinding, ok := res.Bindings()[superExpr]
	assert.True(t, ok)

	thisExpr := bin.Right.(*ast.This)
	thisBinding, ok := res.Bindings()[thisExpr]
	assert.True(t, ok)

	assert.Equal(t, superBinding.Depth-1, thisBinding.Depth,
		"this must resolve exactly one scope closer than super")
	assert.Equal(t, 0, superBinding.Slot)
	assert.Equal(t, 0, thisBinding.Slot)
}

func TestResolveFunctionDeclarationRecordsLocalSlot(t *testing.T) {
	stmts, res, reporter := resolveSource(t, `
		{
			fun f() {}
		}`)
	assert.False(t, reporter.HadError())

	block := stmts[0].(*ast.Block)
	fnDecl := block.Stmts[0].(*ast.Function)

	slot, ok := res.LocalSlots()[fnDecl]
	assert.True(t, ok)
	assert.Equal(t, 0, slot)
}

func TestResolveGlobalDeclarationHasNoLocalSlot(t *testing.T) {
	stmts, res, reporter := resolveSource(t, `var x = 1;`)
	assert.False(t, reporter.HadError())

	varDecl := stmts[0].(*ast.Var)
	_, ok := res.LocalSlots()[varDecl]
	assert.False(t, ok, "a global declaration should not be recorded as a local slot")
}
