// Package session drives search engines on behalf of a caller and owns the
// grid they run on.
//
// What:
//
//   - Session wraps one search.Engine. Step advances it by one unit of work,
//     forwards every event to the registered Observers in order and, on
//     success, appends the terminal PathFound event carrying the
//     reconstructed path. Run drives Step back-to-back until the run is
//     terminal or the context is cancelled.
//   - Result summarises a run: strategy, outcome, path and event counts.
//     A not-found run labels the grid regions and records in Separated
//     whether start and end were cut off from each other.
//   - Controller owns a grid.Grid and at most one active Session. While a
//     session is active every grid command and StartSession fail with
//     ErrSessionBusy; the session releases the controller when it reaches a
//     terminal state or is cancelled.
//
// Pacing:
//
//	Nothing in this package sleeps or schedules. A renderer that wants one
//	step per frame calls Step once per frame; a batch caller calls Run. Both
//	observe the same event sequence.
//
// Concurrency:
//
//	Session and Controller are safe for concurrent use. Observers are called
//	synchronously from the goroutine that calls Step, never concurrently for
//	the same session, and without any session lock held: an observer may
//	read Result, call Cancel or Controller.CancelSession, but must not call
//	Step.
//
// Errors:
//
//   - ErrSessionBusy  a grid command or StartSession while a session runs.
//   - ErrNoSession    CancelSession without an active session.
//   - Errors from grid and search are returned wrapped or as-is.
package session
