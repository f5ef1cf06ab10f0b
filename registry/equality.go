package registry

import "reflect"

// EqualsFunc reports whether two stored values are to be considered the
// same. When it returns true a write is dropped without touching the store
// or notifying anyone.
type EqualsFunc func(a, b any) bool

// SameValue is the default equality policy: same-value comparison, so
// rewriting an identical value never fires write-subscribers.
func SameValue(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
