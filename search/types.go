// Package search provides tunable options, event types and error
// definitions for the grid search engines.
package search

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/gridpath/grid"
)

// Sentinel errors for search execution.
var (
	// ErrUnknownStrategy is returned for a strategy other than BFS or AStar.
	ErrUnknownStrategy = errors.New("search: unknown strategy")

	// ErrGridNil is returned if a nil grid pointer is passed.
	ErrGridNil = errors.New("search: grid is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("search: invalid option supplied")

	// ErrNoParentChain is returned when a path is requested for a goal
	// that was never reached.
	ErrNoParentChain = errors.New("search: no parent chain to goal")
)

// Strategy selects the search algorithm.
type Strategy int

const (
	// BFS is uninformed breadth-first search.
	BFS Strategy = iota
	// AStar is heuristic-guided A* with the Manhattan heuristic.
	AStar
)

// String returns the canonical lowercase name.
func (s Strategy) String() string {
	switch s {
	case BFS:
		return "bfs"
	case AStar:
		return "astar"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// MarshalText encodes the strategy by name.
func (s Strategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a name accepted by ParseStrategy.
func (s *Strategy) UnmarshalText(b []byte) error {
	v, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStrategy accepts "bfs", "astar", "a*" or "a-star" in any case.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bfs":
		return BFS, nil
	case "astar", "a*", "a-star":
		return AStar, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// State is the engine lifecycle stage.
type State int

const (
	// StateReady means no Step has run yet.
	StateReady State = iota
	// StateRunning means the frontier is being explored.
	StateRunning
	// StateSucceeded means the goal was expanded.
	StateSucceeded
	// StateFailed means the frontier emptied without reaching the goal.
	StateFailed
	// StateRejected means a precondition failed before exploration.
	StateRejected
	// StateCancelled means the driver stopped the run.
	StateCancelled
)

var stateNames = [...]string{"ready", "running", "succeeded", "failed", "rejected", "cancelled"}

// String returns a lowercase state name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Terminal reports whether no further events can be produced.
func (s State) Terminal() bool { return s >= StateSucceeded }

// Kind tags an Event.
type Kind int

const (
	// KindExpanded: a coordinate was taken from the frontier.
	KindExpanded Kind = iota
	// KindDiscovered: a coordinate was added to (or improved in) the frontier.
	KindDiscovered
	// KindPathFound: terminal, carries the start→end path.
	KindPathFound
	// KindNotFound: terminal, the reachable region holds no goal.
	KindNotFound
	// KindRejected: terminal, a precondition failed.
	KindRejected
)

var kindNames = [...]string{"expanded", "discovered", "path_found", "not_found", "rejected"}

// String returns the snake_case kind name used on the wire.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Terminal reports whether the kind ends a run.
func (k Kind) Terminal() bool { return k >= KindPathFound }

// Reason explains a Rejected event.
type Reason int

const (
	// ReasonNone is the zero value on non-Rejected events.
	ReasonNone Reason = iota
	// ReasonNoStart: the grid has no start cell.
	ReasonNoStart
	// ReasonNoEnd: the grid has no end cell.
	ReasonNoEnd
	// ReasonStartBlocked: the start cell is not walkable.
	ReasonStartBlocked
	// ReasonEndBlocked: the end cell is not walkable.
	ReasonEndBlocked
)

var reasonNames = [...]string{"", "no_start", "no_end", "start_blocked", "end_blocked"}

// String returns the snake_case reason name.
func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonNames) {
		return fmt.Sprintf("reason(%d)", int(r))
	}
	return reasonNames[r]
}

// MarshalText encodes the reason by name.
func (r Reason) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Event is one observable unit of search progress.
//
// Only the fields relevant to Kind are set:
//   - Expanded:   Coord; Score (gScore) when HasScore.
//   - Discovered: Coord; Score (fScore) when HasScore; Requeued.
//   - PathFound:  Path.
//   - Rejected:   Reason.
type Event struct {
	Kind     Kind
	Coord    grid.Coord
	Score    float64
	HasScore bool
	Requeued bool
	Path     []grid.Coord
	Reason   Reason
}

// Expanded builds an Expanded event without a score.
func Expanded(c grid.Coord) Event { return Event{Kind: KindExpanded, Coord: c} }

// ExpandedScored builds an Expanded event carrying gScore.
func ExpandedScored(c grid.Coord, g float64) Event {
	return Event{Kind: KindExpanded, Coord: c, Score: g, HasScore: true}
}

// Discovered builds a Discovered event without a score.
func Discovered(c grid.Coord) Event { return Event{Kind: KindDiscovered, Coord: c} }

// DiscoveredScored builds a Discovered event carrying fScore.
func DiscoveredScored(c grid.Coord, f float64, requeued bool) Event {
	return Event{Kind: KindDiscovered, Coord: c, Score: f, HasScore: true, Requeued: requeued}
}

// PathFound builds the terminal success event.
func PathFound(path []grid.Coord) Event { return Event{Kind: KindPathFound, Path: path} }

// NotFound builds the terminal exhaustion event.
func NotFound() Event { return Event{Kind: KindNotFound} }

// Rejected builds the terminal precondition-failure event.
func Rejected(r Reason) Event { return Event{Kind: KindRejected, Reason: r} }

// String renders the event compactly, e.g. "expanded(1,2) g=3".
func (e Event) String() string {
	switch e.Kind {
	case KindExpanded, KindDiscovered:
		s := e.Kind.String() + e.Coord.String()
		if e.HasScore {
			label := "g"
			if e.Kind == KindDiscovered {
				label = "f"
			}
			s += fmt.Sprintf(" %s=%g", label, e.Score)
		}
		return s
	case KindPathFound:
		return fmt.Sprintf("path_found len=%d", len(e.Path))
	case KindRejected:
		return "rejected(" + e.Reason.String() + ")"
	default:
		return e.Kind.String()
	}
}

// eventJSON is the wire shape of an Event.
type eventJSON struct {
	Kind     string       `json:"kind"`
	X        *int         `json:"x,omitempty"`
	Y        *int         `json:"y,omitempty"`
	Score    *float64     `json:"score,omitempty"`
	Requeued bool         `json:"requeued,omitempty"`
	Path     []grid.Coord `json:"path,omitempty"`
	Reason   string       `json:"reason,omitempty"`
}

// MarshalJSON encodes only the fields relevant to the event kind.
func (e Event) MarshalJSON() ([]byte, error) {
	out := eventJSON{Kind: e.Kind.String(), Requeued: e.Requeued, Reason: e.Reason.String()}
	if e.Kind == KindExpanded || e.Kind == KindDiscovered {
		x, y := e.Coord.X, e.Coord.Y
		out.X, out.Y = &x, &y
	}
	if e.HasScore {
		s := e.Score
		out.Score = &s
	}
	if e.Kind == KindPathFound {
		out.Path = e.Path
		if out.Path == nil {
			out.Path = []grid.Coord{}
		}
	}
	return json.Marshal(out)
}

// Heuristic estimates the remaining cost from a to b.
type Heuristic func(a, b grid.Coord) float64

// Option configures an Engine via functional arguments.
// If an Option is invalid it is recorded and surfaced as
// ErrOptionViolation by New.
type Option func(*Options)

// Options holds engine parameters.
type Options struct {
	// Heuristic is used by A* only. Defaults to Manhattan.
	Heuristic Heuristic

	// OnEvent, if set, is called for every event as it is produced.
	OnEvent func(Event)

	// Start and Goal override the grid's start and end roles when set.
	Start *grid.Coord
	Goal  *grid.Coord

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with the Manhattan heuristic and no hook.
func DefaultOptions() Options {
	return Options{
		Heuristic: Manhattan,
		OnEvent:   func(Event) {},
	}
}

// WithHeuristic replaces the A* heuristic. A nil heuristic is invalid.
// Non-admissible heuristics void the shortest-path guarantee.
func WithHeuristic(h Heuristic) Option {
	return func(o *Options) {
		if h == nil {
			o.err = fmt.Errorf("%w: heuristic is nil", ErrOptionViolation)
			return
		}
		o.Heuristic = h
	}
}

// WithOnEvent registers a callback invoked for each event in order.
func WithOnEvent(fn func(Event)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEvent = fn
		}
	}
}

// WithStart searches from c instead of the grid's start cell, e.g. to
// re-plan from an agent's current position.
func WithStart(c grid.Coord) Option {
	return func(o *Options) { o.Start = &c }
}

// WithGoal searches toward c instead of the grid's end cell.
func WithGoal(c grid.Coord) Option {
	return func(o *Options) { o.Goal = &c }
}
