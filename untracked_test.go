package onetrack_test

import (
	"testing"

	"github.com/delaneyj/onetrack"
	"github.com/delaneyj/onetrack/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUntrackedReadsAreInvisibleToDiscovery(t *testing.T) {
	st := registry.NewStore()
	s := onetrack.Signal(st, 1)
	u := onetrack.Signal(st, 100)

	runs := 0
	onetrack.Effect(st, func(_ func(func())) {
		runs++
		s.Value()
		onetrack.Untracked(st, func() int {
			return u.Value()
		})
	})
	require.Equal(t, 1, runs)

	u.SetValue(200)
	assert.Equal(t, 1, runs)

	s.SetValue(2)
	assert.Equal(t, 2, runs)
}

func TestUntrackedReturnsTheResult(t *testing.T) {
	st := registry.NewStore()
	s := onetrack.Signal(st, 21)

	got := onetrack.Untracked(st, func() int {
		return s.Value() * 2
	})
	assert.Equal(t, 42, got)
}

func TestUntrackedScopesNest(t *testing.T) {
	st := registry.NewStore()
	s := onetrack.Signal(st, 1)
	inner := onetrack.Signal(st, 2)
	outer := onetrack.Signal(st, 3)

	runs := 0
	onetrack.Effect(st, func(_ func(func())) {
		runs++
		s.Value()
		onetrack.Untracked(st, func() int {
			onetrack.Untracked(st, func() int {
				return inner.Value()
			})
			// Still untracked: the inner scope ending must not turn
			// discovery back on for the outer one.
			return outer.Value()
		})
	})
	require.Equal(t, 1, runs)

	inner.SetValue(20)
	outer.SetValue(30)
	assert.Equal(t, 1, runs)

	s.SetValue(10)
	assert.Equal(t, 2, runs)
}
