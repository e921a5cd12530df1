package httpapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/search"
	"github.com/katalvlaran/gridpath/session"
)

// gridView is the JSON snapshot of a grid.
type gridView struct {
	Width   int          `json:"width"`
	Height  int          `json:"height"`
	Start   *grid.Coord  `json:"start,omitempty"`
	End     *grid.Coord  `json:"end,omitempty"`
	Blocked []grid.Coord `json:"blocked"`
	ASCII   string       `json:"ascii"`
}

func viewOf(g *grid.Grid) gridView {
	v := gridView{Width: g.Width(), Height: g.Height(), Blocked: g.Blocked(), ASCII: g.String()}
	if c, ok := g.Start(); ok {
		v.Start = &c
	}
	if c, ok := g.End(); ok {
		v.End = &c
	}
	if v.Blocked == nil {
		v.Blocked = []grid.Coord{}
	}
	return v
}

type sizeRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type cellRequest struct {
	X *int `json:"x" binding:"required"`
	Y *int `json:"y" binding:"required"`
}

type sessionRequest struct {
	Strategy string `json:"strategy"`
	Mode     string `json:"mode"`
}

// stepResponse is returned by every call that advances a session.
type stepResponse struct {
	Events []search.Event `json:"events"`
	Done   bool           `json:"done"`
	Result session.Result `json:"result"`
}

func (s *Server) getGrid(c *gin.Context) {
	c.JSON(http.StatusOK, viewOf(s.ctrl.Grid()))
}

func (s *Server) configureGrid(c *gin.Context) {
	var req sizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if err := s.ctrl.Configure(req.Width, req.Height); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(s.ctrl.Grid()))
}

// cellCommand adapts a single-coordinate controller command to a handler.
func (s *Server) cellCommand(cmd func(grid.Coord) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cellRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			s.fail(c, fmt.Errorf("%w: %v", ErrBadRequest, err))
			return
		}
		if err := cmd(grid.Coord{X: *req.X, Y: *req.Y}); err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, viewOf(s.ctrl.Grid()))
	}
}

func (s *Server) resetGrid(c *gin.Context) {
	if err := s.ctrl.Reset(); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(s.ctrl.Grid()))
}

// startSession creates a session. In "run" mode it is driven to completion
// within the request and every event is returned.
func (s *Server) startSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	strategy, err := search.ParseStrategy(req.Strategy)
	if err != nil {
		s.fail(c, err)
		return
	}

	opts := s.sessionOptions(strategy)
	switch req.Mode {
	case "", "step":
		sess, err := s.ctrl.StartSession(strategy, opts...)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, stepResponse{Events: []search.Event{}, Result: sess.Result()})

	case "run":
		events := []search.Event{}
		opts = append(opts, session.WithObserver(session.ObserverFunc(func(e search.Event) {
			events = append(events, e)
		})))
		sess, err := s.ctrl.StartSession(strategy, opts...)
		if err != nil {
			s.fail(c, err)
			return
		}
		res, err := sess.Run(c.Request.Context())
		if err != nil {
			s.opts.Logger.Warn("run interrupted", slog.Any("error", err))
		}
		c.JSON(http.StatusOK, stepResponse{Events: events, Done: true, Result: res})

	default:
		s.fail(c, fmt.Errorf("%w: mode %q", ErrBadRequest, req.Mode))
	}
}

// stepSession advances the active session by up to n steps (default 1).
func (s *Server) stepSession(c *gin.Context) {
	n := 1
	if raw := c.Query("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			s.fail(c, fmt.Errorf("%w: n must be a positive integer", ErrBadRequest))
			return
		}
		n = min(v, s.opts.MaxSteps)
	}

	sess, ok := s.ctrl.Active()
	if !ok {
		s.fail(c, session.ErrNoSession)
		return
	}
	resp := stepResponse{Events: []search.Event{}}
	for i := 0; i < n && !resp.Done; i++ {
		events, done := sess.Step()
		resp.Events = append(resp.Events, events...)
		resp.Done = done
	}
	resp.Result = sess.Result()
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getSession(c *gin.Context) {
	sess, ok := s.ctrl.Last()
	if !ok {
		s.fail(c, session.ErrNoSession)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": !sess.Done(), "result": sess.Result()})
}

func (s *Server) cancelSession(c *gin.Context) {
	sess, ok := s.ctrl.Active()
	if !ok {
		s.fail(c, session.ErrNoSession)
		return
	}
	if err := s.ctrl.CancelSession(); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": sess.Result()})
}

// pathGeoJSON serves the latest found path as a GeoJSON Feature.
func (s *Server) pathGeoJSON(c *gin.Context) {
	res, ok := s.foundResult(c)
	if !ok {
		return
	}
	f, err := s.opts.Projection.PathFeature(res.Path, map[string]any{"strategy": res.Strategy.String()})
	if err != nil {
		s.fail(c, err)
		return
	}
	s.geoJSON(c, f)
}

// mapGeoJSON serves the latest found path together with the current walls.
func (s *Server) mapGeoJSON(c *gin.Context) {
	res, ok := s.foundResult(c)
	if !ok {
		return
	}
	fc, err := s.opts.Projection.Collection(s.ctrl.Grid(), res.Path, map[string]any{"strategy": res.Strategy.String()})
	if err != nil {
		s.fail(c, err)
		return
	}
	s.geoJSON(c, fc)
}

// foundResult returns the latest session result if it found a path, and
// fails the request otherwise.
func (s *Server) foundResult(c *gin.Context) (session.Result, bool) {
	sess, ok := s.ctrl.Last()
	if !ok {
		s.fail(c, session.ErrNoSession)
		return session.Result{}, false
	}
	res := sess.Result()
	if res.Outcome != session.OutcomeFound {
		s.fail(c, fmt.Errorf("%w: latest session is %s", ErrNoPath, res.Outcome))
		return session.Result{}, false
	}
	return res, true
}

func (s *Server) geoJSON(c *gin.Context, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/geo+json", body)
}
