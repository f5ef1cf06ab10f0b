// Package onetrack is a minimal fine-grained reactive engine: writable
// signals, derived computeds and side-effect subscriptions wired together
// by automatic dependency discovery. Discovery is deliberately single-shot:
// the signals a body reads on its first run are its dependencies for life.
//
// The engine is single-threaded and fully synchronous. A write that changes
// a value re-runs every dependent before the write returns; there is no
// batching, no scheduling and no glitch-free guarantee under diamond
// shaped graphs.
package onetrack

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/delaneyj/onetrack/registry"
)

// MonitorSignals runs body exactly once, recording every signal id it reads
// from st, then subscribes body itself to the write-subscriber list of each
// distinct recorded id so that any later change to one of them re-runs
// body. Re-runs are bare invocations, not tracked sessions: a dependency
// read only inside a branch not taken on the first run is never discovered,
// and the dependency set never grows. Each changed dependency triggers its
// own re-run; near-simultaneous writes are not deduplicated.
//
// The returned disposer removes all subscriptions made here. It only
// prevents future re-runs, it can not cancel one already in flight.
//
// If body panics the panic propagates to the caller. Ids recorded before
// the panic are kept and the read recorder stays registered; nothing is
// cleaned up on the way out.
func MonitorSignals(st *registry.Store, body func()) (dispose func()) {
	seen := mapset.NewThreadUnsafeSet[registry.ID]()
	var collected []registry.ID
	unsub := st.OnGet(func(id registry.ID) {
		if seen.Add(id) {
			collected = append(collected, id)
		}
	})
	body()
	unsub()

	disposers := make([]func(), len(collected))
	for i, id := range collected {
		disposers[i] = st.OnSet(id, body)
	}
	return func() {
		for _, d := range disposers {
			d()
		}
	}
}
