package diag

import (
	"testing"

	"github.com/cwbudde/golox/internal/token"
)

func TestScanErrorFormat(t *testing.T) {
	r := NewReporter()
	r.ScanError(3, "Unexpected character.")

	errs := r.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	want := "[line 3] Error: Unexpected character."
	if got := errs[0].Format(); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestTokenErrorAtEnd(t *testing.T) {
	r := NewReporter()
	r.TokenError(token.New(token.EOF, "", nil, 5), "Expect expression.")

	want := "[line 5] Error at end: Expect expression."
	if got := r.Errors()[0].Format(); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestTokenErrorAtLexeme(t *testing.T) {
	r := NewReporter()
	r.TokenError(token.New(token.Identifier, "foo", "foo", 2), "Expect ';' after value.")

	want := "[line 2] Error at 'foo': Expect ';' after value."
	if got := r.Errors()[0].Format(); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestHadErrorAndClear(t *testing.T) {
	r := NewReporter()
	if r.HadError() {
		t.Fatal("a fresh reporter should have no errors")
	}
	r.ScanError(1, "boom")
	if !r.HadError() {
		t.Fatal("expected HadError to be true after recording an error")
	}
	r.Clear()
	if r.HadError() {
		t.Fatal("expected HadError to be false after Clear")
	}
}

func TestRuntimeMessage(t *testing.T) {
	want := "Undefined variable 'x'.\n[line 7]"
	if got := RuntimeMessage("Undefined variable 'x'.", 7); got != want {
		t.Errorf("RuntimeMessage() = %q, want %q", got, want)
	}
}
