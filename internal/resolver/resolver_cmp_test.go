package resolver

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cwbudde/golox/internal/ast"
)

// TestResolveNestedBlockBindingsStructurally resolves three nested block
// scopes and diffs the whole Bindings() map against the expected depth/slot
// table in one shot with go-cmp, rather than asserting on each lookup in
// isolation the way resolver_test.go's other cases do.
func TestResolveNestedBlockBindingsStructurally(t *testing.T) {
	stmts, r, reporter := resolveSource(t, `
		{
			var a = 1;
			{
				var b = 2;
				{
					var c = 3;
					print a + b + c;
				}
			}
		}`)
	if reporter.HadError() {
		t.Fatalf("unexpected resolve errors: %v", reporter.Errors())
	}

	outer := stmts[0].(*ast.Block)
	middle := outer.Stmts[1].(*ast.Block)
	inner := middle.Stmts[1].(*ast.Block)
	printStmt := inner.Stmts[1].(*ast.Print)
	sum := printStmt.Expr.(*ast.Binary)   // (a + b) + c
	ab := sum.Left.(*ast.Binary)          // a + b
	aRef := ab.Left.(*ast.Variable)
	bRef := ab.Right.(*ast.Variable)
	cRef := sum.Right.(*ast.Variable)

	got := map[string]Binding{
		"a": r.Bindings()[aRef],
		"b": r.Bindings()[bRef],
		"c": r.Bindings()[cRef],
	}
	want := map[string]Binding{
		"a": {Depth: 2, Slot: 0},
		"b": {Depth: 1, Slot: 0},
		"c": {Depth: 0, Slot: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Bindings() mismatch (-want +got):\n%s", diff)
	}
}
