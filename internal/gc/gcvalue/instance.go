package gcvalue

// Instance is a runtime instance of a Class: a field table plus a pointer
// back to the class that defines its methods. Unlike the reference
// implementation's LoxInstance, fields and methods don't share a single
// flat array — field access and method lookup are distinct steps, the way
// interpreter.c's get-property logic tries the field table first and only
// then falls back to FindMethod.
type Instance struct {
	Header

	Class  *Class
	Fields map[string]Value
}

// NewInstance allocates an (untracked) Instance; register it with
// gc.Collector.TrackInstance to bring it under collection.
func NewInstance(class *Class) *Instance {
	i := &Instance{Class: class, Fields: make(map[string]Value)}
	i.SetMarked(GCClear)
	return i
}

func (*Instance) loxValue() {}

func (i *Instance) String() string { return i.Class.Name + " instance" }

// Get resolves a property: fields shadow methods, and a matching method is
// bound to this instance before being returned. tracker is threaded through
// to Bind so the bound method is allocated under collection.
func (i *Instance) Get(tracker Tracker, name string) (Value, bool) {
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	if fn, ok := i.Class.FindMethod(name); ok {
		return fn.Bind(tracker, i), true
	}
	return nil, false
}

// Set assigns a field, creating it if it doesn't already exist — Lox
// classes have no field declarations to check against.
func (i *Instance) Set(name string, value Value) {
	i.Fields[name] = value
}

func (i *Instance) MarkChildren(markValue func(Value), markEnv func(*Environment)) {
	for _, v := range i.Fields {
		markValue(v)
	}
	markValue(i.Class)
}
