// Implements the WaitQueue, which holds all customers waiting for the server.
// Customers are enqueued on arrival and dequeued when service starts.

package sim

import (
	"container/heap"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrQueueUnderflow reports a dequeue from an empty wait queue. Callers only
// dequeue after checking non-emptiness (or immediately after an arrival
// enqueued), so hitting this error means the busy/queue bookkeeping diverged
// and the run must abort.
var ErrQueueUnderflow = errors.New("wait queue underflow: dequeue on empty queue")

// queueEntry pairs a waiting customer with its ordering key and insertion
// sequence number. The key is evaluated once at enqueue time; customers
// with equal keys dequeue in insertion order.
type queueEntry struct {
	customer *Customer
	key      int64
	seq      uint64
}

// customerHeap implements heap.Interface ordered by (key, insertion seq).
type customerHeap []queueEntry

func (h customerHeap) Len() int { return len(h) }

func (h customerHeap) Less(i, j int) bool {
	if h[i].key != h[j].key {
		return h[i].key < h[j].key
	}
	return h[i].seq < h[j].seq
}

func (h customerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *customerHeap) Push(x any) {
	*h = append(*h, x.(queueEntry))
}

func (h *customerHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// WaitQueue holds customers awaiting service, ordered by the discipline's
// key, smallest first. Under shortest-job-first the key is the service
// burst; customers with equal keys dequeue in arrival order.
type WaitQueue struct {
	discipline Discipline
	heap       customerHeap
	seq        uint64
}

// NewWaitQueue returns an empty WaitQueue ordered by d.
func NewWaitQueue(d Discipline) *WaitQueue {
	return &WaitQueue{
		discipline: d,
		heap:       make(customerHeap, 0),
	}
}

// Enqueue adds c to the queue in discipline order.
func (wq *WaitQueue) Enqueue(c *Customer) {
	heap.Push(&wq.heap, queueEntry{
		customer: c,
		key:      wq.discipline.Key(c),
		seq:      wq.seq,
	})
	wq.seq++
}

// Dequeue removes and returns the customer with the smallest key.
// Returns ErrQueueUnderflow if the queue is empty.
func (wq *WaitQueue) Dequeue() (*Customer, error) {
	if len(wq.heap) == 0 {
		return nil, ErrQueueUnderflow
	}
	entry := heap.Pop(&wq.heap).(queueEntry)
	return entry.customer, nil
}

// Peek returns the customer at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Peek() *Customer {
	if len(wq.heap) == 0 {
		return nil
	}
	return wq.heap[0].customer
}

// Len returns the number of customers in the queue.
func (wq *WaitQueue) Len() int {
	return len(wq.heap)
}

// String renders the queue contents as id:key pairs in dequeue order.
func (wq *WaitQueue) String() string {
	entries := append([]queueEntry(nil), wq.heap...)
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].key != entries[j].key {
			return entries[i].key < entries[j].key
		}
		return entries[i].seq < entries[j].seq
	})
	var sb strings.Builder
	sb.WriteString("[")
	for i, e := range entries {
		sb.WriteString(fmt.Sprintf("%d:%d", e.customer.ID, e.key))
		if i < len(entries)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
