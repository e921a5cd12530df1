package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/search"
)

// Sentinel errors for session and controller commands.
var (
	// ErrSessionBusy is returned when a command needs the grid while a
	// session is running on it.
	ErrSessionBusy = errors.New("session: a session is already running")

	// ErrNoSession is returned when a command needs an active session.
	ErrNoSession = errors.New("session: no active session")
)

// Outcome is the final disposition of a run.
type Outcome int

const (
	// OutcomePending means the run has not reached a terminal state.
	OutcomePending Outcome = iota
	// OutcomeFound means a path was reconstructed.
	OutcomeFound
	// OutcomeNotFound means the reachable region holds no goal.
	OutcomeNotFound
	// OutcomeRejected means a precondition failed before exploration.
	OutcomeRejected
	// OutcomeCancelled means the run was stopped by the caller.
	OutcomeCancelled
)

var outcomeNames = [...]string{"pending", "found", "not_found", "rejected", "cancelled"}

// String returns the snake_case outcome name.
func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Result summarises a run. Separated is set on a not-found run whose start
// and end lie in different walkable regions.
type Result struct {
	Strategy   search.Strategy `json:"strategy"`
	Outcome    Outcome         `json:"outcome"`
	Path       []grid.Coord    `json:"path,omitempty"`
	Steps      int             `json:"steps"`
	Expanded   int             `json:"expanded"`
	Discovered int             `json:"discovered"`
	Reason     search.Reason   `json:"reason,omitempty"`
	Separated  bool            `json:"separated,omitempty"`
}

// Option configures a Session.
type Option func(*Options)

// Options holds session parameters.
type Options struct {
	// Observers are notified of every event, in registration order.
	Observers []Observer

	// Logger receives start and outcome at Info and per-step detail at Debug.
	// Defaults to a logger that discards everything.
	Logger *slog.Logger

	// Search is passed through to search.New.
	Search []search.Option
}

// DefaultOptions returns Options with no observers and a discarding logger.
func DefaultOptions() Options {
	return Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithObserver registers o. It may be given more than once; nil is ignored.
func WithObserver(o Observer) Option {
	return func(opts *Options) {
		if o != nil {
			opts.Observers = append(opts.Observers, o)
		}
	}
}

// WithLogger sets the session logger; nil keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(opts *Options) {
		if l != nil {
			opts.Logger = l
		}
	}
}

// WithSearchOptions forwards engine options such as search.WithHeuristic.
func WithSearchOptions(so ...search.Option) Option {
	return func(opts *Options) {
		opts.Search = append(opts.Search, so...)
	}
}
