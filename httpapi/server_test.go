package httpapi_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/httpapi"
	"github.com/katalvlaran/gridpath/session"
	"github.com/katalvlaran/gridpath/telemetry"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

//----------------------------------------------------------------------------//
// helpers
//----------------------------------------------------------------------------//

func newRouter(t *testing.T, m string, opts ...httpapi.Option) http.Handler {
	t.Helper()
	g, err := grid.Parse(strings.NewReader(m))
	require.NoError(t, err)
	ctrl, err := session.NewController(g)
	require.NoError(t, err)
	return httpapi.New(ctrl, opts...).Router()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type gridBody struct {
	Width   int          `json:"width"`
	Height  int          `json:"height"`
	Start   *grid.Coord  `json:"start"`
	End     *grid.Coord  `json:"end"`
	Blocked []grid.Coord `json:"blocked"`
	ASCII   string       `json:"ascii"`
}

type resultBody struct {
	Strategy string       `json:"strategy"`
	Outcome  string       `json:"outcome"`
	Path     []grid.Coord `json:"path"`
	Reason   string       `json:"reason"`
}

type stepBody struct {
	Events []struct {
		Kind string       `json:"kind"`
		Path []grid.Coord `json:"path"`
	} `json:"events"`
	Done   bool       `json:"done"`
	Result resultBody `json:"result"`
}

//----------------------------------------------------------------------------//
// grid routes
//----------------------------------------------------------------------------//

// TestGetGrid returns the snapshot.
func TestGetGrid(t *testing.T) {
	h := newRouter(t, "..E\nS#.\n")
	w := do(t, h, http.MethodGet, "/grid", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[gridBody](t, w)
	assert.Equal(t, 3, body.Width)
	assert.Equal(t, 2, body.Height)
	assert.Equal(t, &grid.Coord{X: 0, Y: 0}, body.Start)
	assert.Equal(t, &grid.Coord{X: 2, Y: 1}, body.End)
	assert.Equal(t, []grid.Coord{{X: 1, Y: 0}}, body.Blocked)
	assert.Equal(t, "..E\nS#.\n", body.ASCII)
}

// TestGridCommands covers success and the 400 mapping.
func TestGridCommands(t *testing.T) {
	h := newRouter(t, "...\n...\n")

	cases := []struct {
		name, path, body string
		status           int
	}{
		{"Toggle", "/grid/toggle", `{"x":1,"y":0}`, http.StatusOK},
		{"Start", "/grid/start", `{"x":0,"y":0}`, http.StatusOK},
		{"End", "/grid/end", `{"x":2,"y":1}`, http.StatusOK},
		{"OutOfBounds", "/grid/toggle", `{"x":3,"y":0}`, http.StatusBadRequest},
		{"MissingY", "/grid/start", `{"x":1}`, http.StatusBadRequest},
		{"NotJSON", "/grid/end", `x=1`, http.StatusBadRequest},
		{"ZeroWidth", "/grid", `{"width":0,"height":3}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		w := do(t, h, http.MethodPost, tc.path, tc.body)
		assert.Equal(t, tc.status, w.Code, "%s: %s", tc.name, w.Body.String())
	}

	body := decode[gridBody](t, do(t, h, http.MethodGet, "/grid", ""))
	assert.Equal(t, "..E\nS#.\n", body.ASCII)

	w := do(t, h, http.MethodPost, "/grid/reset", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "...\n...\n", decode[gridBody](t, w).ASCII)

	w = do(t, h, http.MethodPost, "/grid", `{"width":4,"height":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "....\n", decode[gridBody](t, w).ASCII)
}

//----------------------------------------------------------------------------//
// session routes
//----------------------------------------------------------------------------//

// TestSession_StepMode steps a session to completion and checks the grid is
// locked meanwhile.
func TestSession_StepMode(t *testing.T) {
	h := newRouter(t, "..E\n...\nS..\n")

	w := do(t, h, http.MethodPost, "/session", `{"strategy":"bfs"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "pending", decode[stepBody](t, w).Result.Outcome)

	assert.Equal(t, http.StatusConflict, do(t, h, http.MethodPost, "/grid/toggle", `{"x":1,"y":1}`).Code)
	assert.Equal(t, http.StatusConflict, do(t, h, http.MethodPost, "/session", `{"strategy":"astar"}`).Code)

	w = do(t, h, http.MethodPost, "/session/step", "")
	require.Equal(t, http.StatusOK, w.Code)
	first := decode[stepBody](t, w)
	assert.False(t, first.Done)
	require.NotEmpty(t, first.Events)
	assert.Equal(t, "expanded", first.Events[0].Kind)

	w = do(t, h, http.MethodPost, "/session/step?n=1000", "")
	require.Equal(t, http.StatusOK, w.Code)
	rest := decode[stepBody](t, w)
	assert.True(t, rest.Done)
	assert.Equal(t, "found", rest.Result.Outcome)
	assert.Equal(t, "bfs", rest.Result.Strategy)
	last := rest.Events[len(rest.Events)-1]
	assert.Equal(t, "path_found", last.Kind)
	assert.Len(t, last.Path, 5)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/session/step", "").Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/grid/toggle", `{"x":1,"y":1}`).Code)

	w = do(t, h, http.MethodGet, "/session", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"active":false`)
}

// TestSession_RunMode drives a session within the request.
func TestSession_RunMode(t *testing.T) {
	h := newRouter(t, "S.#\n..E\n")

	w := do(t, h, http.MethodPost, "/session", `{"strategy":"A*","mode":"run"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[stepBody](t, w)
	assert.True(t, body.Done)
	assert.Equal(t, "astar", body.Result.Strategy)
	assert.Equal(t, "found", body.Result.Outcome)
	assert.Equal(t, []grid.Coord{{X: 0, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}, body.Result.Path)
	assert.Equal(t, "path_found", body.Events[len(body.Events)-1].Kind)
}

// TestSession_Rejected reports the precondition reason.
func TestSession_Rejected(t *testing.T) {
	h := newRouter(t, "S..\n")
	w := do(t, h, http.MethodPost, "/session", `{"strategy":"bfs","mode":"run"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[stepBody](t, w)
	assert.Equal(t, "rejected", body.Result.Outcome)
	assert.Equal(t, "no_end", body.Result.Reason)
	require.Len(t, body.Events, 1)
	assert.Equal(t, "rejected", body.Events[0].Kind)
}

// TestSession_BadRequests covers invalid strategy, mode and n.
func TestSession_BadRequests(t *testing.T) {
	h := newRouter(t, "S.E\n")
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/session", `{"strategy":"dfs"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/session", `{"strategy":"bfs","mode":"turbo"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/session", ``).Code)

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/session", `{"strategy":"bfs"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/session/step?n=0", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/session/step?n=abc", "").Code)
}

// TestSession_Cancel cancels over DELETE.
func TestSession_Cancel(t *testing.T) {
	h := newRouter(t, "S...E\n")
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/session", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/session", "").Code)

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/session", `{"strategy":"astar"}`).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/session/step", "").Code)

	w := do(t, h, http.MethodDelete, "/session", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"outcome":"cancelled"`)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/session/step", "").Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/grid/reset", "").Code)
}

//----------------------------------------------------------------------------//
// GeoJSON and metrics
//----------------------------------------------------------------------------//

// TestPathGeoJSON serves only found paths.
func TestPathGeoJSON(t *testing.T) {
	h := newRouter(t, "S#.\n..E\n")
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/session/path.geojson", "").Code)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/session", `{"strategy":"bfs","mode":"run"}`).Code)
	w := do(t, h, http.MethodGet, "/session/path.geojson", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/geo+json", w.Header().Get("Content-Type"))

	f, err := geojson.UnmarshalFeature(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, orb.LineString{{0, 1}, {0, 0}, {1, 0}, {2, 0}}, f.Geometry)
	assert.Equal(t, "bfs", f.Properties.MustString("strategy"))

	w = do(t, h, http.MethodGet, "/session/map.geojson", "")
	require.Equal(t, http.StatusOK, w.Code)
	fc, err := geojson.UnmarshalFeatureCollection(w.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, orb.MultiPoint{{1, 1}}, fc.Features[1].Geometry)

	// a NotFound run replaces the latest session
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/grid/toggle", `{"x":1,"y":0}`).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/session", `{"strategy":"bfs","mode":"run"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/session/path.geojson", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/session/map.geojson", "").Code)
}

// TestMetrics exposes collector output.
func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := newRouter(t, "S.E\n", httpapi.WithTelemetry(telemetry.NewCollector(reg), reg))

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/session", `{"strategy":"astar","mode":"run"}`).Code)

	w := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `gridpath_sessions_total{outcome="found",strategy="astar"} 1`)
	assert.Contains(t, w.Body.String(), `gridpath_search_events_total{kind="path_found",strategy="astar"} 1`)
}

//----------------------------------------------------------------------------//
// brotli
//----------------------------------------------------------------------------//

// TestBrotli_Negotiated compresses only when the client asks.
func TestBrotli_Negotiated(t *testing.T) {
	h := newRouter(t, "S.E\n")

	req := httptest.NewRequest(http.MethodGet, "/grid", nil)
	req.Header.Set("Accept-Encoding", "gzip, br")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "br", w.Header().Get("Content-Encoding"))

	plain, err := io.ReadAll(brotli.NewReader(w.Body))
	require.NoError(t, err)
	var body gridBody
	require.NoError(t, json.Unmarshal(plain, &body))
	assert.Equal(t, "S.E\n", body.ASCII)

	w = do(t, h, http.MethodGet, "/grid", "")
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, "S.E\n", decode[gridBody](t, w).ASCII)
}

// TestBrotli_ErrorBody compresses aborted responses too.
func TestBrotli_ErrorBody(t *testing.T) {
	h := newRouter(t, "S.E\n")
	req := httptest.NewRequest(http.MethodPost, "/session/step", nil)
	req.Header.Set("Accept-Encoding", "br")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	plain, err := io.ReadAll(brotli.NewReader(w.Body))
	require.NoError(t, err)
	assert.Contains(t, string(plain), session.ErrNoSession.Error())
}
