package search

import (
	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/pqueue"
)

// stepCost is the uniform cost of moving to a 4-connected neighbor.
const stepCost = 1.0

// astarEngine explores in order of fScore = gScore + heuristic(·, goal).
type astarEngine struct {
	base
	open   *pqueue.Queue[grid.Coord]
	closed map[grid.Coord]bool
	gScore map[grid.Coord]float64
	fScore map[grid.Coord]float64
}

// Step expands the open coordinate with the lowest fScore (ties by
// insertion order), stops if it is the goal, and otherwise relaxes its
// neighbors that are not closed.
//
// A neighbor whose gScore improves is enqueued again even when it is
// already open, and its Discovered event carries Requeued. The fresh entry
// ranks by the new fScore and the stale one is skipped once the coordinate
// is closed. Compared with enqueueing only coordinates not yet open, the
// expansion order can therefore differ when such an improvement happens.
func (a *astarEngine) Step() []Event {
	switch a.state {
	case StateReady:
		if ev, ok := a.begin(); !ok {
			return []Event{ev}
		}
		a.seed()
	case StateRunning:
	default:
		return nil
	}

	cur, ok := a.nextOpen()
	if !ok {
		return a.fail()
	}
	a.closed[cur] = true
	events := []Event{a.emit(ExpandedScored(cur, a.gScore[cur]))}
	if cur == a.end {
		a.state = StateSucceeded
		return events
	}

	for nb := range a.g.Neighbors4(cur) {
		if a.closed[nb] {
			continue
		}
		tentative := a.gScore[cur] + stepCost
		if old, seen := a.gScore[nb]; seen && tentative >= old {
			continue
		}
		a.parent[nb] = cur
		a.gScore[nb] = tentative
		a.fScore[nb] = tentative + a.opts.Heuristic(nb, a.end)

		// no decrease-key: an improved coordinate gets a second entry and
		// the stale one is dropped by nextOpen once the coordinate is closed
		requeued := a.open.Contains(nb)
		a.open.Enqueue(nb, a.fScore[nb])
		events = append(events, a.emit(DiscoveredScored(nb, a.fScore[nb], requeued)))
	}
	return events
}

func (a *astarEngine) seed() {
	n := a.g.Width() * a.g.Height()
	a.open = pqueue.New[grid.Coord](n)
	a.closed = make(map[grid.Coord]bool, n)
	a.gScore = map[grid.Coord]float64{a.start: 0}
	a.fScore = map[grid.Coord]float64{a.start: a.opts.Heuristic(a.start, a.end)}
	a.open.Enqueue(a.start, a.fScore[a.start])
}

// nextOpen pops entries until it finds a coordinate that is not closed.
// It reports false when the open set is exhausted.
func (a *astarEngine) nextOpen() (grid.Coord, bool) {
	for a.open.Len() > 0 {
		cur, _, err := a.open.Dequeue()
		if err != nil {
			break
		}
		if !a.closed[cur] {
			return cur, true
		}
	}
	return grid.Coord{}, false
}
