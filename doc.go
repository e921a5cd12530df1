// Package gridpath finds shortest paths on bounded 4-connected grids and
// reports every step of the search as it happens.
//
// What is gridpath?
//
//	A small stack for interactive path finding:
//		• grid/      the board: walkable and blocked cells, one start, one end
//		• pqueue/    stable generic min-priority queue (ties by insertion order)
//		• search/    BFS and A* as step-driven state machines emitting Events
//		• session/   runs, observers, results and the Controller that owns a grid
//		• telemetry/ Prometheus counters and histograms fed by session observers
//		• geo/       found paths as orb geometry and GeoJSON
//		• httpapi/   gin routes for editing the grid and stepping a search
//		• cmd/gridpath  the solve and serve commands
//
// Why step-driven?
//
//   - A renderer, a test or an HTTP client decides the pace; the event
//     sequence is identical whether steps are spaced out or run back-to-back.
//   - Every decision the search makes (which cell it expanded, which it
//     discovered, with what score) is observable without hooks into the
//     algorithm itself.
//
// Quick ASCII example:
//
//	..E        **E
//	.#.   ->   *#.      (first line is the top row, y grows upward)
//	S..        S..
//
//	go run ./cmd/gridpath solve --map maze.txt --strategy astar
package gridpath
