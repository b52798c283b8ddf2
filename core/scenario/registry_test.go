package scenario

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/co2dash/core/emissions"
)

func TestRegistry_InsertionOrder(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add(Snapshot{Plant: "Alpha Steel", Baseline: 3}))
	require.NoError(t, r.Add(Snapshot{Plant: "Beta Steel", Baseline: 2}))
	require.NoError(t, r.Add(Snapshot{Plant: " Alpha Steel ", Baseline: 5}))

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha Steel", list[0].Plant)
	assert.Equal(t, 5.0, list[0].Baseline)
	assert.Equal(t, "Beta Steel", list[1].Plant)

	assert.True(t, r.Remove("Alpha Steel"))
	assert.False(t, r.Remove("Alpha Steel"))
	assert.Equal(t, 1, r.Len())

	r.Clear()
	assert.Empty(t, r.List())
}

func TestRegistry_EmptyName(t *testing.T) {
	r := NewRegistry()
	assert.ErrorIs(t, r.Add(Snapshot{Plant: "  "}), ErrEmptyPlantName)
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = r.Add(Snapshot{Plant: string(rune('a' + i%5)), Baseline: float64(i)})
			_ = r.List()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 5, r.Len())
}

func TestSession_SaveCurrent(t *testing.T) {
	s := NewSession(referenceScenario())
	snap, err := s.SaveCurrent("")
	require.NoError(t, err)
	assert.Equal(t, "Reference", snap.Plant)
	assert.InDelta(t, 15720, snap.Baseline, 1e-9)
	assert.InDelta(t, 13047.6, snap.PostTotal, 1e-9)

	sc := s.Scenario()
	sc.Actions = sc.Actions.Toggle(emissions.ActionScrap)
	ev := s.SetScenario(sc)
	assert.False(t, ev.Scenario.Actions.Scrap)

	snap, err = s.SaveCurrent("Second")
	require.NoError(t, err)
	assert.Equal(t, "Second", snap.Plant)
	assert.Equal(t, 2, s.Plants().Len())
}
