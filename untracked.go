package onetrack

import "github.com/delaneyj/onetrack/registry"

// Untracked runs fn with dependency discovery suppressed: reads return
// values normally but are invisible to any MonitorSignals session in
// progress. Untracked scopes nest.
func Untracked[T any](st *registry.Store, fn func() T) T {
	var out T
	st.Untracked(func() {
		out = fn()
	})
	return out
}
