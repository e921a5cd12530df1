package session

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/search"
)

// Session is a single search run over a grid.
//
// stepMu serialises Step and owns the engine. mu guards result only, so
// observers and the engine's OnEvent hook may read or cancel the session
// while a step is in flight.
type Session struct {
	stepMu   sync.Mutex
	mu       sync.Mutex
	engine   search.Engine
	grid     *grid.Grid
	opts     Options
	log      *slog.Logger
	result   Result
	once     sync.Once
	released func(*Session)
}

// New builds a session running strategy over g.
// Returns search.ErrGridNil, search.ErrUnknownStrategy or
// search.ErrOptionViolation from the engine constructor.
func New(g *grid.Grid, strategy search.Strategy, opts ...Option) (*Session, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	engine, err := search.New(strategy, g, o.Search...)
	if err != nil {
		return nil, err
	}

	s := &Session{
		engine: engine,
		grid:   g,
		opts:   o,
		log:    o.Logger.With(slog.String("strategy", strategy.String())),
		result: Result{Strategy: strategy, Outcome: OutcomePending},
	}
	s.log.Info("session started", slog.Int("width", g.Width()), slog.Int("height", g.Height()))
	return s, nil
}

// Strategy reports the algorithm this session runs.
func (s *Session) Strategy() search.Strategy { return s.result.Strategy }

// Step advances the engine by one unit of work and returns the events it
// produced, after forwarding them to the observers. When the engine succeeds
// the path is reconstructed and a PathFound event is appended. done is true
// once the run is terminal; later calls return no events.
//
// Observers run without the session lock held: they may call Result, Done,
// Cancel or Controller.CancelSession, but not Step. Result read from an
// observer already includes every event of the current step. Once the
// session is cancelled the remaining events of the step are not delivered.
func (s *Session) Step() (events []search.Event, done bool) {
	s.stepMu.Lock()
	defer s.stepMu.Unlock()

	if s.Done() {
		s.engine.Cancel()
		return nil, true
	}

	events = s.engine.Step()
	var separated bool
	switch s.engine.State() {
	case search.StateSucceeded:
		end, _ := s.engine.Goal()
		path, err := search.BuildPath(s.engine.Parents(), end)
		if err != nil {
			// unreachable for a succeeded engine; report as exhausted
			s.log.Error("path reconstruction failed", slog.Any("error", err))
			events = append(events, search.NotFound())
		} else {
			events = append(events, search.PathFound(path))
		}
	case search.StateFailed:
		if !s.cancelled() {
			separated = s.explainNotFound()
		}
	}

	s.mu.Lock()
	if s.result.Outcome != OutcomePending {
		// cancelled by the OnEvent hook while the engine was stepping
		s.mu.Unlock()
		s.engine.Cancel()
		return nil, true
	}
	s.result.Steps++
	for _, ev := range events {
		s.record(ev)
	}
	s.result.Separated = separated
	step := s.result.Steps
	finished := s.result.Outcome != OutcomePending
	s.mu.Unlock()

	s.log.Debug("step", slog.Int("step", step), slog.Int("events", len(events)))
	s.notify(events)
	if finished {
		s.finish()
		return events, true
	}
	if s.Done() {
		s.engine.Cancel()
		return events, true
	}
	return events, false
}

// record folds ev into the result. It runs with s.mu held.
func (s *Session) record(ev search.Event) {
	switch ev.Kind {
	case search.KindExpanded:
		s.result.Expanded++
	case search.KindDiscovered:
		s.result.Discovered++
	case search.KindPathFound:
		s.result.Outcome = OutcomeFound
		s.result.Path = ev.Path
	case search.KindNotFound:
		s.result.Outcome = OutcomeNotFound
	case search.KindRejected:
		s.result.Outcome = OutcomeRejected
		s.result.Reason = ev.Reason
	}
}

// notify forwards events to the observers in order, stopping once the
// session has been cancelled.
func (s *Session) notify(events []search.Event) {
	for _, ev := range events {
		if s.cancelled() {
			return
		}
		for _, o := range s.opts.Observers {
			o.OnEvent(ev)
		}
	}
}

// explainNotFound labels the walkable regions of the grid and reports
// whether start and end ended up in different ones.
func (s *Session) explainNotFound() bool {
	start, _ := s.engine.Start()
	end, _ := s.engine.Goal()
	separated := !s.grid.Connected(start, end)
	s.log.Info("no path",
		slog.String("start", start.String()),
		slog.String("end", end.String()),
		slog.Int("regions", len(s.grid.Regions())),
		slog.Bool("separated", separated),
	)
	return separated
}

// Run drives Step until the run is terminal. Cancellation of ctx is checked
// between steps; on cancellation the session is cancelled and ctx.Err() is
// returned together with the cancelled Result.
func (s *Session) Run(ctx context.Context) (Result, error) {
	for {
		if err := ctx.Err(); err != nil {
			s.Cancel()
			return s.Result(), err
		}
		if _, done := s.Step(); done {
			return s.Result(), nil
		}
	}
}

// Cancel stops a pending run. No terminal event is emitted. Cancel on a
// finished session is a no-op. The engine itself is stopped by the next or
// in-flight Step.
func (s *Session) Cancel() {
	s.mu.Lock()
	pending := s.result.Outcome == OutcomePending
	if pending {
		s.result.Outcome = OutcomeCancelled
	}
	s.mu.Unlock()

	if pending {
		s.finish()
	}
}

// Done reports whether the run is terminal.
func (s *Session) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result.Outcome != OutcomePending
}

func (s *Session) cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result.Outcome == OutcomeCancelled
}

// Result returns a copy of the current summary.
func (s *Session) Result() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.result
	r.Path = slices.Clone(r.Path)
	return r
}

// finish logs the outcome, notifies finishers and releases the controller.
// It runs once, without s.mu held.
func (s *Session) finish() {
	s.once.Do(func() {
		r := s.Result()
		s.log.Info("session finished",
			slog.String("outcome", r.Outcome.String()),
			slog.Int("steps", r.Steps),
			slog.Int("expanded", r.Expanded),
			slog.Int("path_len", len(r.Path)),
		)
		for _, o := range s.opts.Observers {
			if f, ok := o.(Finisher); ok {
				f.OnFinish(r)
			}
		}
		if s.released != nil {
			s.released(s)
		}
	})
}
