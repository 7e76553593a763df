// Implements the EventList, the time-ordered collection of pending events
// that drives the dispatch loop.

package sim

import (
	"container/heap"
	"errors"
)

// ErrEventListUnderflow reports a removal from an empty event list. The end
// sentinel is always scheduled before any arrival and halts the loop, so the
// list can never drain mid-run; hitting this error means the sentinel was
// mishandled and the run must abort.
var ErrEventListUnderflow = errors.New("event list underflow: remove on empty list")

// eventEntry pairs an event with its insertion sequence number so that
// events with equal fire times dequeue in insertion order.
type eventEntry struct {
	event Event
	seq   uint64
}

// eventHeap implements heap.Interface ordered by (fire time, insertion seq).
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type eventHeap []eventEntry

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].event.Timestamp() != h[j].event.Timestamp() {
		return h[i].event.Timestamp() < h[j].event.Timestamp()
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(eventEntry))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// EventList holds pending events ordered by fire time, earliest first.
// Among events with equal fire times, the first inserted fires first.
type EventList struct {
	heap eventHeap
	seq  uint64
}

// NewEventList returns an empty EventList.
func NewEventList() *EventList {
	return &EventList{heap: make(eventHeap, 0)}
}

// Insert adds ev to the list, preserving fire-time order.
func (el *EventList) Insert(ev Event) {
	heap.Push(&el.heap, eventEntry{event: ev, seq: el.seq})
	el.seq++
}

// RemoveEarliest removes and returns the earliest pending event.
// Returns ErrEventListUnderflow if the list is empty.
func (el *EventList) RemoveEarliest() (Event, error) {
	if len(el.heap) == 0 {
		return nil, ErrEventListUnderflow
	}
	entry := heap.Pop(&el.heap).(eventEntry)
	return entry.event, nil
}

// PeekEarliest returns the earliest pending event without removing it.
// Returns nil if the list is empty.
func (el *EventList) PeekEarliest() Event {
	if len(el.heap) == 0 {
		return nil
	}
	return el.heap[0].event
}

// Len returns the number of pending events.
func (el *EventList) Len() int {
	return len(el.heap)
}
