package gcvalue

import "testing"

// passthroughTracker satisfies Tracker without bringing in internal/gc (which
// would cycle back to this package); it tracks nothing, just allocates.
type passthroughTracker struct{}

func (passthroughTracker) TrackFunction(f *Function) *Function       { return f }
func (passthroughTracker) TrackEnvironment(e *Environment) *Environment { return e }

func TestFindMethodWalksSuperclassChain(t *testing.T) {
	greet := NewFunction(nil, nil, false)
	base := NewClass("Base", nil, map[string]*Function{"greet": greet})
	derived := NewClass("Derived", base, map[string]*Function{})

	fn, ok := derived.FindMethod("greet")
	if !ok || fn != greet {
		t.Fatalf("expected to find greet inherited from Base, got %v, %v", fn, ok)
	}

	_, ok = derived.FindMethod("missing")
	if ok {
		t.Fatal("expected missing method to not be found")
	}
}

func TestInstanceGetFieldShadowsMethod(t *testing.T) {
	method := NewFunction(nil, nil, false)
	class := NewClass("Widget", nil, map[string]*Function{"size": method})
	inst := NewInstance(class)
	inst.Set("size", Number(42))

	v, ok := inst.Get(passthroughTracker{}, "size")
	if !ok {
		t.Fatal("expected to find the field")
	}
	if v != Value(Number(42)) {
		t.Fatalf("expected the field to shadow the method, got %v", v)
	}
}

func TestInstanceGetBindsMethod(t *testing.T) {
	method := NewFunction(nil, nil, false)
	class := NewClass("Widget", nil, map[string]*Function{"describe": method})
	inst := NewInstance(class)

	v, ok := inst.Get(passthroughTracker{}, "describe")
	if !ok {
		t.Fatal("expected to find the method")
	}
	bound, ok := v.(*Function)
	if !ok {
		t.Fatalf("expected a bound *Function, got %T", v)
	}
	if bound == method {
		t.Fatal("Bind should allocate a fresh Function, not return the original")
	}
	if got := bound.Closure.GetAt(0, 0); got != Value(inst) {
		t.Fatalf("expected the bound closure's slot 0 to hold the instance, got %v", got)
	}
}

func TestFunctionBindAllocatesDistinctFunctionsEachCall(t *testing.T) {
	method := NewFunction(nil, nil, false)
	class := NewClass("Widget", nil, map[string]*Function{"describe": method})
	inst := NewInstance(class)

	a, _ := inst.Get(passthroughTracker{}, "describe")
	b, _ := inst.Get(passthroughTracker{}, "describe")
	if a == b {
		t.Fatal("two lookups of a bound method should not be identical, matching reference bindMethod behavior")
	}
}
