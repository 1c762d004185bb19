package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lintang/cityroute/pkg/citymap"
	"lintang/cityroute/pkg/datastructure"
	"lintang/cityroute/pkg/engine/routingalgorithm"
	"lintang/cityroute/pkg/server/rest/service"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, opts ...routingalgorithm.Option) *chi.Mux {
	t.Helper()
	m := citymap.NewCityMap(0, 0)
	ids := map[string]datastructure.LocationID{}
	for i, name := range []string{"A", "B", "C", "D", "E", "F"} {
		id, err := m.Registry.GetOrCreate(name)
		require.NoError(t, err)
		require.NoError(t, m.Registry.SetPosition(id, i*10, i*10))
		ids[name] = id
	}
	require.NoError(t, m.Adjacency.AddRoad(ids["A"], ids["B"], 10))
	require.NoError(t, m.Adjacency.AddRoad(ids["B"], ids["C"], 5))
	require.NoError(t, m.Adjacency.AddRoad(ids["A"], ids["C"], 20))
	require.NoError(t, m.Adjacency.AddRoad(ids["C"], ids["E"], 20))
	require.NoError(t, m.Adjacency.AddRoad(ids["E"], ids["F"], 20))

	svc := service.NewNavigationService(m, nil, "test", 2, nil, opts...)
	return NewRouter(svc, prometheus.NewRegistry(), RouterOptions{})
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestShortestPathHandler(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		check      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:       "route found",
			body:       `{"start":"A","goal":"C"}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp ShortestPathResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.True(t, resp.Found)
				assert.Equal(t, 15, resp.TotalCost)
				assert.Equal(t, []string{"A", "B", "C"}, datastructure.RouteReport{Path: resp.Path}.Names())
				assert.NotEmpty(t, resp.Polyline)
			},
		},
		{
			name:       "no path is not an error",
			body:       `{"start":"A","goal":"D"}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp ShortestPathResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.False(t, resp.Found)
				assert.Empty(t, resp.Path)
			},
		},
		{
			name:       "unknown location",
			body:       `{"start":"A","goal":"Atlantis"}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "missing goal",
			body:       `{"start":"A"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "name too long",
			body:       `{"start":"A","goal":"` + strings.Repeat("x", 65) + `"}`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp ErrResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				require.Len(t, resp.ErrValidation, 1)
				assert.Contains(t, resp.ErrValidation[0], "Goal")
			},
		},
		{
			name:       "broken json",
			body:       `{"start":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, r, http.MethodPost, "/api/routes/shortest-path", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.check != nil {
				tt.check(t, rec)
			}
		})
	}
}

func TestShortestPathHandlerIterationLimit(t *testing.T) {
	r := newTestRouter(t, routingalgorithm.WithMaxIterations(2))

	rec := doJSON(t, r, http.MethodPost, "/api/routes/shortest-path", `{"start":"A","goal":"F"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestBatchHandler(t *testing.T) {
	r := newTestRouter(t)

	body := `{"pairs":[{"start":"A","goal":"C"},{"start":"A","goal":"Nope"},{"start":"F","goal":"A"}]}`
	rec := doJSON(t, r, http.MethodPost, "/api/routes/batch", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp BatchShortestPathResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.BatchID)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, 15, resp.Results[0].TotalCost)
	assert.True(t, resp.Results[0].Found)
	assert.NotEmpty(t, resp.Results[1].Error)
	assert.Equal(t, 55, resp.Results[2].TotalCost)

	rec = doJSON(t, r, http.MethodPost, "/api/routes/batch", `{"pairs":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNearestHandler(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/routes/nearest", `{"lon":21,"lat":19,"k":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp NearestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Locations, 2)
	assert.Equal(t, "C", resp.Locations[0].Name)

	rec = doJSON(t, r, http.MethodPost, "/api/routes/nearest", `{"lon":0,"lat":0,"k":1000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLocationHandlers(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/api/locations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all LocationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Equal(t, 6, all.Count)
	assert.Equal(t, 50.0, all.Bounds.MaxLon)

	rec = doJSON(t, r, http.MethodGet, "/api/locations/B", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var loc LocationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loc))
	assert.Equal(t, "B", loc.Name)
	assert.Len(t, loc.Neighbours, 2)

	rec = doJSON(t, r, http.MethodGet, "/api/locations/Nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/api/routes/shortest-path", `{"start":"A","goal":"C"}`)

	req := httptest.NewRequest(http.MethodGet, "/metrics", &bytes.Buffer{})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cityroute_shortestpath_query_count")
	assert.Contains(t, rec.Body.String(), `path="/api/routes/shortest-path"`)
}
