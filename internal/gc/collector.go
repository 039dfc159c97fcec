// Package gc implements the mark-sweep collector that owns every Function,
// Class and Instance the interpreter allocates, plus every Environment.
// It is grounded on the reference collector (garbage_collector.c/.h): a
// lock stack that protects values not yet reachable from any root during a
// multi-step allocation, a mark phase that walks locked values and active
// environments, and a sweep phase that unlinks anything left unmarked.
//
// Go already reclaims memory once nothing references it, so unlike the
// reference collector this one never calls free or recycles storage — its
// sweep just drops dead nodes from its own bookkeeping lists so Go's
// garbage collector can do the actual reclamation, and so Stats reports
// accurate liveness counts. See DESIGN.md
// for why the two-pass "laundry list" free scheme in the reference
// implementation has no equivalent here.
package gc

import "github.com/cwbudde/golox/internal/gc/gcvalue"

const (
	initialObjectThreshold      = 64
	initialEnvironmentThreshold = 64

	// MaxLockDepth bounds the lock stack the way the reference collector's
	// fixed-size GC_LOCKS_STACK_SIZE array does. Lock reports false once it
	// is reached; internal/interp turns that into a "Stack overflow." runtime
	// error, so it also bounds the depth of nested Lox calls.
	MaxLockDepth = 4096
)

// Stats is a snapshot of collector liveness, read by tests that assert on
// collection behavior.
type Stats struct {
	ActiveObjects      int
	MaxObjects         int
	ActiveEnvironments int
	MaxEnvironments    int
	Collections        int
}

// Collector owns the tracked object and environment lists and runs mark and
// sweep over them on demand.
type Collector struct {
	firstObject gcvalue.Tracked
	firstEnv    *gcvalue.Environment

	activeObjects int
	maxObjects    int

	activeEnvironments int
	maxEnvironments    int

	visitedMark int32
	collections int

	locked []gcvalue.Value

	// DebugEveryAlloc, when set, runs a full Collect before every
	// allocation instead of only when a threshold is crossed. It trades
	// throughput for the earliest possible detection of a value that
	// outlives its roots, the same purpose GC_DEBUG serves in the
	// reference build.
	DebugEveryAlloc bool
}

// New returns a Collector with empty object/environment lists.
func New() *Collector {
	return &Collector{
		maxObjects:      initialObjectThreshold,
		maxEnvironments: initialEnvironmentThreshold,
		visitedMark:     0,
	}
}

// Stats returns a snapshot of the collector's current bookkeeping.
func (c *Collector) Stats() Stats {
	return Stats{
		ActiveObjects:      c.activeObjects,
		MaxObjects:         c.maxObjects,
		ActiveEnvironments: c.activeEnvironments,
		MaxEnvironments:    c.maxEnvironments,
		Collections:        c.collections,
	}
}

// --- allocation ---

func (c *Collector) maybeCollect() {
	if c.DebugEveryAlloc || c.activeObjects >= c.maxObjects {
		c.Collect()
	}
}

func (c *Collector) trackObject(o gcvalue.Tracked) {
	o.SetMarked(gcvalue.GCClear)
	o.SetNext(c.firstObject)
	c.firstObject = o
	c.activeObjects++
}

// TrackFunction brings f under collection and returns it, so call sites can
// write `fn := collector.TrackFunction(gcvalue.NewFunction(...))`.
func (c *Collector) TrackFunction(f *gcvalue.Function) *gcvalue.Function {
	c.maybeCollect()
	c.trackObject(f)
	return f
}

// TrackClass brings cls under collection and returns it.
func (c *Collector) TrackClass(cls *gcvalue.Class) *gcvalue.Class {
	c.maybeCollect()
	c.trackObject(cls)
	return cls
}

// TrackInstance brings inst under collection and returns it.
func (c *Collector) TrackInstance(inst *gcvalue.Instance) *gcvalue.Instance {
	c.maybeCollect()
	c.trackObject(inst)
	return inst
}

// TrackEnvironment brings env under collection and returns it.
func (c *Collector) TrackEnvironment(env *gcvalue.Environment) *gcvalue.Environment {
	if c.DebugEveryAlloc || c.activeEnvironments >= c.maxEnvironments {
		c.Collect()
	}
	env.SetMarked(gcvalue.GCClear)
	env.SetNext(c.firstEnv)
	c.firstEnv = env
	c.activeEnvironments++
	return env
}

// SetGlobalEnvironment registers the program's single root environment. It
// is tracked like any other environment but, being always reachable, is
// never the target of a sweep.
func (c *Collector) SetGlobalEnvironment(env *gcvalue.Environment) *gcvalue.Environment {
	return c.TrackEnvironment(env)
}

// --- lock stack ---

// Lock pins v as a temporary root so a Collect triggered by a later
// allocation in the same expression can't sweep it out from under the
// caller before it's stored anywhere reachable. It reports false, the same
// way gcLock does, if the stack is already at MaxLockDepth.
func (c *Collector) Lock(v gcvalue.Value) bool {
	if len(c.locked) >= MaxLockDepth {
		return false
	}
	c.locked = append(c.locked, v)
	return true
}

// Unlock pops the most recently locked value.
func (c *Collector) Unlock() {
	if len(c.locked) == 0 {
		return
	}
	c.locked = c.locked[:len(c.locked)-1]
}

// UnlockN pops n locked values.
func (c *Collector) UnlockN(n int) {
	if n > len(c.locked) {
		n = len(c.locked)
	}
	c.locked = c.locked[:len(c.locked)-n]
}

// ClearLocks empties the lock stack, used when unwinding after a runtime
// error so a half-finished expression doesn't leak locks.
func (c *Collector) ClearLocks() {
	c.locked = c.locked[:0]
}

// --- mark & sweep ---

// Collect runs one full mark-and-sweep pass: every locked value and every
// active environment (and whatever they transitively reference) is marked
// live, then both bookkeeping lists are swept of anything left unmarked.
func (c *Collector) Collect() {
	c.visitedMark++

	for _, v := range c.locked {
		c.markValue(v)
	}
	for env := c.firstEnv; env != nil; env = env.Next() {
		if env.Active() {
			c.markEnvironment(env)
		}
	}

	c.sweepObjects()
	c.sweepEnvironments()

	c.maxObjects = max2(2*c.activeObjects, initialObjectThreshold)
	c.maxEnvironments = max2(2*c.activeEnvironments, initialEnvironmentThreshold)
	c.collections++
}

func (c *Collector) markValue(v gcvalue.Value) {
	if v == nil {
		return
	}
	t, ok := v.(gcvalue.Tracked)
	if !ok {
		return
	}
	if t.Marked() == c.visitedMark {
		return
	}
	t.SetMarked(c.visitedMark)
	t.MarkChildren(c.markValue, c.markEnvironment)
}

func (c *Collector) markEnvironment(env *gcvalue.Environment) {
	if env == nil || env.Marked() == c.visitedMark {
		return
	}
	env.SetMarked(c.visitedMark)
	for _, v := range env.Slots {
		c.markValue(v)
	}
	for _, v := range env.Globals {
		c.markValue(v)
	}
	c.markEnvironment(env.Enclosing)
}

func (c *Collector) sweepObjects() {
	var prev gcvalue.Tracked
	cur := c.firstObject
	for cur != nil {
		next := cur.Next()
		if cur.Marked() == c.visitedMark {
			prev = cur
		} else {
			if prev == nil {
				c.firstObject = next
			} else {
				prev.SetNext(next)
			}
			c.activeObjects--
		}
		cur = next
	}
}

func (c *Collector) sweepEnvironments() {
	var prev *gcvalue.Environment
	cur := c.firstEnv
	for cur != nil {
		next := cur.Next()
		if cur.Marked() == c.visitedMark {
			prev = cur
		} else {
			if prev == nil {
				c.firstEnv = next
			} else {
				prev.SetNext(next)
			}
			c.activeEnvironments--
		}
		cur = next
	}
}

func max2(a, b int) int {
	if a > b {
		return a
	}
	return b
}
