package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/gridpath/geo"
	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/search"
	"github.com/katalvlaran/gridpath/session"
)

// Sentinel errors for request handling.
var (
	// ErrBadRequest wraps malformed bodies and query parameters.
	ErrBadRequest = errors.New("httpapi: bad request")

	// ErrNoPath is returned when the latest session has no found path.
	ErrNoPath = errors.New("httpapi: no path found yet")
)

// statusOf maps an error to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, grid.ErrInvalidDimensions),
		errors.Is(err, grid.ErrOutOfBounds),
		errors.Is(err, search.ErrUnknownStrategy),
		errors.Is(err, geo.ErrBadCellSize):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrSessionBusy):
		return http.StatusConflict
	case errors.Is(err, session.ErrNoSession), errors.Is(err, ErrNoPath):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail aborts the request with a JSON error body.
func (s *Server) fail(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.opts.Logger.Error("handler failed", slog.String("path", c.Request.URL.Path), slog.Any("error", err))
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
