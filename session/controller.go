package session

import (
	"sync"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/search"
)

// Controller owns a grid and serialises commands against it with at most
// one running Session.
type Controller struct {
	mu       sync.Mutex
	grid     *grid.Grid
	defaults []Option
	active   *Session
	last     *Session
}

// NewController wraps g. defaults are applied to every session before the
// options passed to StartSession.
// Returns search.ErrGridNil if g is nil.
func NewController(g *grid.Grid, defaults ...Option) (*Controller, error) {
	if g == nil {
		return nil, search.ErrGridNil
	}
	return &Controller{grid: g, defaults: defaults}, nil
}

// mutate runs fn on the grid unless a session is active.
func (c *Controller) mutate(fn func(*grid.Grid) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil {
		return ErrSessionBusy
	}
	return fn(c.grid)
}

// Configure resizes the grid, dropping walls and roles.
func (c *Controller) Configure(width, height int) error {
	return c.mutate(func(g *grid.Grid) error { return g.Configure(width, height) })
}

// ToggleBlocked flips the walkability of cell.
func (c *Controller) ToggleBlocked(cell grid.Coord) error {
	return c.mutate(func(g *grid.Grid) error { return g.ToggleBlocked(cell) })
}

// SetStart moves the start role to cell.
func (c *Controller) SetStart(cell grid.Coord) error {
	return c.mutate(func(g *grid.Grid) error { return g.SetStart(cell) })
}

// SetEnd moves the end role to cell.
func (c *Controller) SetEnd(cell grid.Coord) error {
	return c.mutate(func(g *grid.Grid) error { return g.SetEnd(cell) })
}

// Reset clears walls and roles.
func (c *Controller) Reset() error {
	return c.mutate(func(g *grid.Grid) error {
		g.Reset()
		return nil
	})
}

// StartSession creates a session over the grid and marks it active.
// Returns ErrSessionBusy if another session is still running.
func (c *Controller) StartSession(strategy search.Strategy, opts ...Option) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil {
		return nil, ErrSessionBusy
	}

	all := append(append([]Option(nil), c.defaults...), opts...)
	s, err := New(c.grid, strategy, all...)
	if err != nil {
		return nil, err
	}
	s.released = c.release
	c.active, c.last = s, s
	return s, nil
}

// CancelSession cancels the active session.
// Returns ErrNoSession if none is running.
func (c *Controller) CancelSession() error {
	c.mu.Lock()
	s := c.active
	c.active = nil
	c.mu.Unlock()

	if s == nil {
		return ErrNoSession
	}
	s.Cancel()
	return nil
}

// release clears s as the active session.
func (c *Controller) release(s *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == s {
		c.active = nil
	}
}

// Active returns the running session, if any.
func (c *Controller) Active() (*Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active, c.active != nil
}

// Last returns the most recently started session, running or not.
func (c *Controller) Last() (*Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last, c.last != nil
}

// Grid returns a snapshot of the grid that later commands do not affect.
func (c *Controller) Grid() *grid.Grid {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.grid.Clone()
}
