// Package search runs breadth-first search and A* over a grid.Grid as
// step-driven state machines that report every action as an Event.
//
// What
//
//   - New(strategy, g) returns an Engine; each Step performs one
//     dequeue-and-expand and returns the events it produced, in order.
//   - Event kinds: Expanded, Discovered, PathFound, NotFound, Rejected.
//   - BFS keeps a FIFO frontier and reports no scores.
//   - A* keeps a stable pqueue.Queue keyed by fScore = gScore + Manhattan
//     distance, reports gScore on Expanded and fScore on Discovered.
//   - BuildPath turns an engine's parent map into the start→end sequence.
//
// Why
//
//   - A caller (a renderer, an HTTP handler, a test) decides the pace. Running
//     all steps back-to-back yields exactly the same events as a paced run.
//
// State machine
//
//	Ready ──Step──▶ Running ──Step…──▶ Succeeded | Failed
//	  │                 │
//	  └──▶ Rejected     └──Cancel──▶ Cancelled
//
//	The first Step checks preconditions in the order NoStart, NoEnd,
//	StartBlocked, EndBlocked. A failing check yields a single Rejected
//	event and no exploration.
//
// Determinism
//
//	Neighbors come from grid.Neighbors4 in the fixed order up, down, left,
//	right, and the A* queue breaks fScore ties by insertion order, so the
//	event sequence and path shape are fully reproducible.
//
// A* open set
//
//	The open set has no decrease-key. When a queued coordinate is reached
//	again with a strictly lower gScore, a second entry is pushed at the new
//	fScore and the Discovered event is flagged Requeued. The older entry is
//	skipped when it surfaces because the coordinate is closed by then.
//
// Complexity (N = W×H cells)
//
//   - BFS:  Time O(N),        Memory O(N).
//   - A*:   Time O(N log N),  Memory O(N).
//
// Errors
//
//   - ErrUnknownStrategy  for an unrecognised strategy name or value.
//   - ErrGridNil          when New is given a nil grid.
//   - ErrOptionViolation  for an invalid Option.
//   - ErrNoParentChain    when BuildPath is called without a chain to end.
package search
