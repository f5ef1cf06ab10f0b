package onetrack

import "github.com/delaneyj/onetrack/registry"

// SideEffect is a tracked side-effect subscription.
type SideEffect struct {
	dispose     func()
	lastCleanup func()
	destroyed   bool
}

// Effect runs fn once under MonitorSignals and again whenever a signal read
// during that first run changes. fn receives onCleanup, which registers a
// cleanup for the current run. The cleanup is invoked immediately after fn
// returns, not right before the following run; a run that registers no
// cleanup invokes nothing and leaves the previous registration in place for
// Destroy.
func Effect(st *registry.Store, fn func(onCleanup func(cleanup func()))) *SideEffect {
	e := &SideEffect{}
	e.dispose = MonitorSignals(st, func() {
		var registered func()
		fn(func(cleanup func()) { registered = cleanup })
		if registered != nil {
			e.lastCleanup = registered
			registered()
		}
	})
	return e
}

// Destroy drops the dependency subscriptions and invokes the last
// registered cleanup one more time. Destroying twice neither re-invokes the
// cleanup nor faults.
func (e *SideEffect) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	e.dispose()
	if e.lastCleanup != nil {
		e.lastCleanup()
	}
}
