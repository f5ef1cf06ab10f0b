package onetrack

import "github.com/delaneyj/onetrack/registry"

// WriteableSignal is a writable reactive cell.
type WriteableSignal[T any] struct {
	st    *registry.Store
	id    registry.ID
	equal registry.EqualsFunc
}

// Signal creates a writable cell holding initial. The optional equal
// predicate decides whether a write actually changed the value; the default
// is registry.SameValue.
func Signal[T any](st *registry.Store, initial T, equal ...func(a, b T) bool) *WriteableSignal[T] {
	s := &WriteableSignal[T]{
		st:    st,
		id:    st.NextID(),
		equal: wrapEquals(equal),
	}
	s.st.SetValue(s.id, s.equal, initial)
	return s
}

func wrapEquals[T any](equal []func(a, b T) bool) registry.EqualsFunc {
	if len(equal) == 0 || equal[0] == nil {
		return registry.SameValue
	}
	eq := equal[0]
	return func(a, b any) bool {
		return eq(a.(T), b.(T))
	}
}

// Value returns the current value, announcing the read to any discovery
// session in progress. After Destroy it returns the zero value.
func (s *WriteableSignal[T]) Value() T {
	v, _ := s.ValueOK()
	return v
}

// ValueOK is Value plus an explicit report of whether the cell still
// exists.
func (s *WriteableSignal[T]) ValueOK() (T, bool) {
	v, ok := s.st.GetValue(s.id)
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// SetValue writes v through the equality check. Writing after Destroy
// resurrects the cell as a fresh entry with no subscribers.
func (s *WriteableSignal[T]) SetValue(v T) {
	s.st.SetValue(s.id, s.equal, v)
}

// Update reads the current value, applies fn and writes the result. The
// read participates in dependency discovery like any other; read and write
// are not atomic.
func (s *WriteableSignal[T]) Update(fn func(old T) T) {
	s.SetValue(fn(s.Value()))
}

// Destroy removes the cell. Further reads report no value and existing
// write-subscriptions for this cell become permanently inert. Destroying
// twice is a no-op.
func (s *WriteableSignal[T]) Destroy() {
	s.st.Remove(s.id)
}

// AsReadonly returns a read accessor over the same cell with no mutation
// surface.
func (s *WriteableSignal[T]) AsReadonly() *ReadonlySignal[T] {
	return &ReadonlySignal[T]{st: s.st, id: s.id}
}
