package onetrack

import "github.com/delaneyj/onetrack/registry"

// ReadonlySignal is a read-only cell: either a derived value created by
// Computed, or the read view of a WriteableSignal.
type ReadonlySignal[T any] struct {
	st      *registry.Store
	id      registry.ID
	dispose func()
}

// Computed creates a derived cell. fn runs once immediately under
// MonitorSignals and re-runs whenever one of the signals it read during
// that first run changes, writing its result through the equality check.
// Reads inside branches not taken on the first run are never tracked, so a
// conditional computed only follows the branch it evaluated first.
func Computed[T any](st *registry.Store, fn func() T, equal ...func(a, b T) bool) *ReadonlySignal[T] {
	c := &ReadonlySignal[T]{st: st, id: st.NextID()}
	eq := wrapEquals(equal)
	c.dispose = MonitorSignals(st, func() {
		st.SetValue(c.id, eq, fn())
	})
	return c
}

// Value returns the current value, announcing the read to any discovery
// session in progress.
func (c *ReadonlySignal[T]) Value() T {
	v, _ := c.ValueOK()
	return v
}

// ValueOK is Value plus an explicit report of whether the cell still
// exists.
func (c *ReadonlySignal[T]) ValueOK() (T, bool) {
	v, ok := c.st.GetValue(c.id)
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// Destroy stops recomputation by dropping the dependency subscriptions. The
// last computed value stays readable but frozen. On a read view obtained
// from AsReadonly, Destroy does nothing. Destroying twice is a no-op.
func (c *ReadonlySignal[T]) Destroy() {
	if c.dispose != nil {
		c.dispose()
	}
}
