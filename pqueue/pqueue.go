package pqueue

import (
	"container/heap"
	"errors"
)

// ErrEmptyQueue is returned when removing from an empty queue.
var ErrEmptyQueue = errors.New("pqueue: queue is empty")

// Queue is a stable min-priority queue of comparable items.
// The zero value is not usable; call New.
type Queue[T comparable] struct {
	entries entryHeap[T]
	counts  map[T]int
	seq     uint64
}

// New returns an empty queue with room for capacity entries.
func New[T comparable](capacity int) *Queue[T] {
	return &Queue[T]{
		entries: make(entryHeap[T], 0, capacity),
		counts:  make(map[T]int, capacity),
	}
}

// Enqueue inserts item with the given priority. Duplicates are kept.
func (q *Queue[T]) Enqueue(item T, priority float64) {
	heap.Push(&q.entries, entry[T]{item: item, priority: priority, seq: q.seq})
	q.seq++
	q.counts[item]++
}

// Dequeue removes and returns the item with the lowest priority,
// breaking ties by earliest insertion.
func (q *Queue[T]) Dequeue() (T, float64, error) {
	if len(q.entries) == 0 {
		var zero T
		return zero, 0, ErrEmptyQueue
	}
	e := heap.Pop(&q.entries).(entry[T])
	if q.counts[e.item]--; q.counts[e.item] == 0 {
		delete(q.counts, e.item)
	}

	return e.item, e.priority, nil
}

// Peek returns the item Dequeue would return, without removing it.
func (q *Queue[T]) Peek() (T, float64, error) {
	if len(q.entries) == 0 {
		var zero T
		return zero, 0, ErrEmptyQueue
	}
	return q.entries[0].item, q.entries[0].priority, nil
}

// Contains reports whether at least one entry for item is queued.
func (q *Queue[T]) Contains(item T) bool {
	return q.counts[item] > 0
}

// Len returns the number of queued entries, duplicates included.
func (q *Queue[T]) Len() int { return len(q.entries) }

// entry is one queued item. seq is the global insertion counter used to
// keep equal priorities in FIFO order.
type entry[T comparable] struct {
	item     T
	priority float64
	seq      uint64
}

// entryHeap is a min-heap of entries ordered by (priority, seq).
type entryHeap[T comparable] []entry[T]

// Len returns the number of entries in the heap.
func (h entryHeap[T]) Len() int { return len(h) }

// Less orders by priority, then by insertion sequence.
func (h entryHeap[T]) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}

// Swap swaps two entries.
func (h entryHeap[T]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

// Push appends x; called by heap.Push.
func (h *entryHeap[T]) Push(x any) { *h = append(*h, x.(entry[T])) }

// Pop removes the last entry; called by heap.Pop.
func (h *entryHeap[T]) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]

	return e
}
