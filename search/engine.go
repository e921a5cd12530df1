package search

import (
	"fmt"
	"maps"

	"github.com/katalvlaran/gridpath/grid"
)

// Engine is a step-driven search over a grid.
type Engine interface {
	// Strategy reports the algorithm.
	Strategy() Strategy
	// State reports the lifecycle stage.
	State() State
	// Step performs one unit of work and returns the events it produced.
	// It returns nil once the engine is terminal.
	Step() []Event
	// Cancel stops a non-terminal engine; later Steps return nil.
	Cancel()
	// Parents returns a copy of the parent map. The start maps to grid.NoParent.
	Parents() map[grid.Coord]grid.Coord
	// Start returns the start coordinate captured at construction, if any.
	Start() (grid.Coord, bool)
	// Goal returns the end coordinate captured at construction, if any.
	Goal() (grid.Coord, bool)
}

// New builds an engine for strategy over g. The start and end cells are
// captured now (from the grid roles unless WithStart or WithGoal is given);
// their walkability is checked by the first Step, so an out-of-bounds
// override is rejected as blocked.
// Returns ErrGridNil, ErrUnknownStrategy or ErrOptionViolation.
func New(strategy Strategy, g *grid.Grid, opts ...Option) (Engine, error) {
	if g == nil {
		return nil, ErrGridNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	b := newBase(strategy, g, o)
	switch strategy {
	case BFS:
		return &bfsEngine{base: b}, nil
	case AStar:
		return &astarEngine{base: b}, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, strategy)
	}
}

// base encapsulates the state shared by both engines.
type base struct {
	strategy Strategy
	g        *grid.Grid
	opts     Options
	start    grid.Coord
	end      grid.Coord
	hasStart bool
	hasEnd   bool
	state    State
	parent   map[grid.Coord]grid.Coord
}

func newBase(strategy Strategy, g *grid.Grid, o Options) base {
	b := base{strategy: strategy, g: g, opts: o, state: StateReady}
	b.start, b.hasStart = g.Start()
	b.end, b.hasEnd = g.End()
	if o.Start != nil {
		b.start, b.hasStart = *o.Start, true
	}
	if o.Goal != nil {
		b.end, b.hasEnd = *o.Goal, true
	}
	return b
}

func (b *base) Strategy() Strategy { return b.strategy }

func (b *base) State() State { return b.state }

func (b *base) Start() (grid.Coord, bool) { return b.start, b.hasStart }

func (b *base) Goal() (grid.Coord, bool) { return b.end, b.hasEnd }

func (b *base) Parents() map[grid.Coord]grid.Coord {
	return maps.Clone(b.parent)
}

func (b *base) Cancel() {
	if !b.state.Terminal() {
		b.state = StateCancelled
	}
}

// begin validates preconditions and moves Ready to Running. On failure the
// engine becomes Rejected and the returned event explains why.
func (b *base) begin() (Event, bool) {
	var reason Reason
	switch {
	case !b.hasStart:
		reason = ReasonNoStart
	case !b.hasEnd:
		reason = ReasonNoEnd
	case !b.g.Walkable(b.start):
		reason = ReasonStartBlocked
	case !b.g.Walkable(b.end):
		reason = ReasonEndBlocked
	}
	if reason != ReasonNone {
		b.state = StateRejected
		return b.emit(Rejected(reason)), false
	}

	b.state = StateRunning
	b.parent = make(map[grid.Coord]grid.Coord, b.g.Width()*b.g.Height())
	b.parent[b.start] = grid.NoParent
	return Event{}, true
}

// fail marks the frontier exhausted.
func (b *base) fail() []Event {
	b.state = StateFailed
	return []Event{b.emit(NotFound())}
}

// emit passes e to the OnEvent hook and returns it.
func (b *base) emit(e Event) Event {
	b.opts.OnEvent(e)
	return e
}
