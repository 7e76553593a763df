package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventList_RemovesInFireTimeOrder(t *testing.T) {
	// GIVEN events inserted out of fire-time order
	el := NewEventList()
	el.Insert(&EndOfSimulationEvent{time: 30})
	el.Insert(&EndOfSimulationEvent{time: 10})
	el.Insert(&EndOfSimulationEvent{time: 20})

	// WHEN all events are removed
	var times []int64
	for el.Len() > 0 {
		ev, err := el.RemoveEarliest()
		require.NoError(t, err)
		times = append(times, ev.Timestamp())
	}

	// THEN they come out earliest first
	assert.Equal(t, []int64{10, 20, 30}, times)
}

func TestEventList_EqualFireTimes_DequeueInInsertionOrder(t *testing.T) {
	// GIVEN three arrivals inserted at the same fire time
	el := NewEventList()
	for id := int64(0); id < 3; id++ {
		el.Insert(&ArrivalEvent{time: 5, Customer: &Customer{ID: id}})
	}
	// and one earlier event inserted afterwards
	el.Insert(&EndOfSimulationEvent{time: 1})

	// WHEN all events are removed
	ev, err := el.RemoveEarliest()
	require.NoError(t, err)
	assert.Equal(t, int64(1), ev.Timestamp(), "earlier event fires first regardless of insertion order")

	var ids []int64
	for el.Len() > 0 {
		ev, err := el.RemoveEarliest()
		require.NoError(t, err)
		arrival, ok := ev.(*ArrivalEvent)
		require.True(t, ok)
		ids = append(ids, arrival.Customer.ID)
	}

	// THEN the equal-time events fire in insertion order
	assert.Equal(t, []int64{0, 1, 2}, ids)
}

func TestEventList_RemoveEarliest_Empty_ReturnsUnderflow(t *testing.T) {
	// GIVEN an empty event list
	el := NewEventList()

	// WHEN RemoveEarliest is called
	ev, err := el.RemoveEarliest()

	// THEN it reports the underflow sentinel
	require.ErrorIs(t, err, ErrEventListUnderflow)
	assert.Nil(t, ev)
}

func TestEventList_EmptyAndSingleElementTransitions(t *testing.T) {
	el := NewEventList()
	assert.Equal(t, 0, el.Len())
	assert.Nil(t, el.PeekEarliest())

	// Single element in, single element out
	el.Insert(&EndOfSimulationEvent{time: 7})
	require.Equal(t, 1, el.Len())
	require.NotNil(t, el.PeekEarliest())
	assert.Equal(t, int64(7), el.PeekEarliest().Timestamp())

	ev, err := el.RemoveEarliest()
	require.NoError(t, err)
	assert.Equal(t, int64(7), ev.Timestamp())
	assert.Equal(t, 0, el.Len())
	assert.Nil(t, el.PeekEarliest())

	// The list is reusable after draining
	el.Insert(&EndOfSimulationEvent{time: 3})
	ev, err = el.RemoveEarliest()
	require.NoError(t, err)
	assert.Equal(t, int64(3), ev.Timestamp())
}

func TestEventList_PeekEarliest_DoesNotRemove(t *testing.T) {
	el := NewEventList()
	el.Insert(&EndOfSimulationEvent{time: 4})
	el.Insert(&EndOfSimulationEvent{time: 2})

	assert.Equal(t, int64(2), el.PeekEarliest().Timestamp())
	assert.Equal(t, 2, el.Len(), "Peek must not remove")
}

func TestEventList_RandomizedInsertions_NonDecreasingRemoval(t *testing.T) {
	// GIVEN 500 events with random fire times
	rng := rand.New(rand.NewSource(1))
	el := NewEventList()
	for i := 0; i < 500; i++ {
		el.Insert(&EndOfSimulationEvent{time: rng.Int63n(100)})
	}

	// WHEN all events are removed
	prev := int64(-1)
	for el.Len() > 0 {
		ev, err := el.RemoveEarliest()
		require.NoError(t, err)
		// THEN fire times never decrease
		require.GreaterOrEqual(t, ev.Timestamp(), prev)
		prev = ev.Timestamp()
	}
}
