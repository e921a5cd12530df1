// Package pqueue provides a stable min-priority queue.
//
// Items are ordered by a float64 priority; items with equal priority leave
// the queue in the order they entered it. Search engines depend on that
// tie-break for reproducible path shapes.
//
// The queue never deduplicates: enqueuing an item that is already present
// adds a second entry. Contains reports whether any entry for an item is
// still queued. A* uses this for its lazy decrease-key: an improved score
// is pushed as a fresh entry and the stale one is skipped when popped.
//
// Complexity:
//
//   - Enqueue, Dequeue: O(log n)   (binary heap keyed by (priority, sequence)).
//   - Peek, Len, Contains: O(1).
//   - Memory: O(n) entries plus one counter per distinct queued item.
//
// Errors:
//
//   - ErrEmptyQueue: Dequeue or Peek on an empty queue.
package pqueue
