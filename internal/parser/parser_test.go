package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/diag"
	"github.com/cwbudde/golox/internal/scanner"
)

func parse(t *testing.T, source string) ([]ast.Stmt, *diag.Reporter) {
	t.Helper()
	reporter := diag.NewReporter()
	tokens := scanner.New(source, reporter).ScanTokens()
	stmts := New(tokens, reporter).Parse()
	return stmts, reporter
}

func TestParseExpressionStatementPrecedence(t *testing.T) {
	stmts, reporter := parse(t, "1 + 2 * 3;")
	assert.False(t, reporter.HadError())
	assert.Len(t, stmts, 1)

	exprStmt, ok := stmts[0].(*ast.Expression)
	assert.True(t, ok)

	bin, ok := exprStmt.Expr.(*ast.Binary)
	assert.True(t, ok)
	assert.Equal(t, float64(1), bin.Left.(*ast.Literal).Value)

	rightBin, ok := bin.Right.(*ast.Binary)
	assert.True(t, ok)
	assert.Equal(t, float64(2), rightBin.Left.(*ast.Literal).Value)
	assert.Equal(t, float64(3), rightBin.Right.(*ast.Literal).Value)
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts, reporter := parse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	assert.False(t, reporter.HadError())
	assert.Len(t, stmts, 1)

	outer, ok := stmts[0].(*ast.Block)
	assert.True(t, ok)
	assert.Len(t, outer.Stmts, 2)

	_, isVar := outer.Stmts[0].(*ast.Var)
	assert.True(t, isVar, "first desugared statement should be the initializer")

	whileStmt, ok := outer.Stmts[1].(*ast.While)
	assert.True(t, ok, "second desugared statement should be the while loop")

	body, ok := whileStmt.Body.(*ast.Block)
	assert.True(t, ok)
	assert.Len(t, body.Stmts, 2, "body should be [original body, increment]")
}

func TestParseAssignmentRewritesVariableTarget(t *testing.T) {
	stmts, reporter := parse(t, "x = 5;")
	assert.False(t, reporter.HadError())

	exprStmt := stmts[0].(*ast.Expression)
	assign, ok := exprStmt.Expr.(*ast.Assign)
	assert.True(t, ok)
	assert.Equal(t, "x", assign.Name)
}

func TestParseAssignmentRewritesGetTargetToSet(t *testing.T) {
	stmts, reporter := parse(t, "a.b = 5;")
	assert.False(t, reporter.HadError())

	exprStmt := stmts[0].(*ast.Expression)
	set, ok := exprStmt.Expr.(*ast.Set)
	assert.True(t, ok)
	assert.Equal(t, "b", set.Name)
}

func TestParseInvalidAssignmentTargetReportsError(t *testing.T) {
	_, reporter := parse(t, "1 + 2 = 3;")
	assert.True(t, reporter.HadError())
}

func TestParseClassWithSuperclassAndMethods(t *testing.T) {
	stmts, reporter := parse(t, `class Cake < Pastry { taste() { return "sweet"; } }`)
	assert.False(t, reporter.HadError())

	class, ok := stmts[0].(*ast.Class)
	assert.True(t, ok)
	assert.Equal(t, "Cake", class.Name.Lexeme)
	assert.NotNil(t, class.Superclass)
	assert.Equal(t, "Pastry", class.Superclass.Name.Lexeme)
	assert.Len(t, class.Methods, 1)
	assert.Equal(t, "taste", class.Methods[0].Name.Lexeme)
}

func TestParseTooManyArgumentsReportsError(t *testing.T) {
	src := "f(1, 2, 3, 4, 5, 6, 7, 8, 9);"
	_, reporter := parse(t, src)
	assert.True(t, reporter.HadError())
}

func TestParseSynchronizeRecoversAfterError(t *testing.T) {
	// The first statement is malformed; the parser should still recover and
	// parse the second one rather than abandoning the whole program.
	stmts, reporter := parse(t, "var ; print 1;")
	assert.True(t, reporter.HadError())

	found := false
	for _, s := range stmts {
		if p, ok := s.(*ast.Print); ok {
			assert.Equal(t, float64(1), p.Expr.(*ast.Literal).Value)
			found = true
		}
	}
	assert.True(t, found, "expected the parser to recover and still parse the print statement")
}
