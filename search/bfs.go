package search

import "github.com/katalvlaran/gridpath/grid"

// bfsEngine explores the grid level by level with a FIFO frontier.
// A coordinate is marked visited when it is discovered, so each one
// enters the queue at most once.
type bfsEngine struct {
	base
	queue   []grid.Coord
	visited map[grid.Coord]bool
}

// Step dequeues one coordinate, reports it as Expanded, stops if it is the
// goal, and otherwise discovers its unvisited neighbors in Neighbors4 order.
func (w *bfsEngine) Step() []Event {
	switch w.state {
	case StateReady:
		if ev, ok := w.begin(); !ok {
			return []Event{ev}
		}
		w.visited = map[grid.Coord]bool{w.start: true}
		w.queue = append(w.queue, w.start)
	case StateRunning:
	default:
		return nil
	}

	if len(w.queue) == 0 {
		return w.fail()
	}
	cur := w.dequeue()
	events := []Event{w.emit(Expanded(cur))}
	if cur == w.end {
		w.state = StateSucceeded
		return events
	}

	for nb := range w.g.Neighbors4(cur) {
		if w.visited[nb] {
			continue
		}
		w.visited[nb] = true
		w.parent[nb] = cur
		events = append(events, w.emit(Discovered(nb)))
		w.queue = append(w.queue, nb)
	}
	return events
}

// dequeue pops the first coordinate of the FIFO.
func (w *bfsEngine) dequeue() grid.Coord {
	cur := w.queue[0]
	w.queue = w.queue[1:]
	return cur
}
