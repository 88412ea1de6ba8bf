package router_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/cosmic-api/internal/config"
	"github.com/deppfellow/cosmic-api/internal/handler"
	"github.com/deppfellow/cosmic-api/internal/middleware"
	"github.com/deppfellow/cosmic-api/internal/model"
	"github.com/deppfellow/cosmic-api/internal/repository/repositorytest"
	"github.com/deppfellow/cosmic-api/internal/router"
	"github.com/deppfellow/cosmic-api/internal/server"
	"github.com/deppfellow/cosmic-api/internal/service"
)

func strPtr(s string) *string { return &s }
func intPtr(i int64) *int64   { return &i }

func newTestRouter(t *testing.T, mutate ...func(*config.Config)) (*echo.Echo, *repositorytest.Store) {
	t.Helper()

	cfg := config.Default()
	cfg.Primary.Env = "test"
	cfg.Observability.Environment = "test"
	for _, m := range mutate {
		m(cfg)
	}

	logger := zerolog.Nop()
	srv := &server.Server{Config: cfg, Logger: &logger}

	store := repositorytest.NewStore()
	services, err := service.NewServices(srv, store)
	require.NoError(t, err)

	return router.NewRouter(srv, handler.NewHandlers(srv, services)), store
}

func do(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type errorsBody struct {
	Errors []string `json:"errors"`
}

type notFoundBody struct {
	Error string `json:"error"`
}

func TestRootReturnsEmptyOK(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(t, e, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestRequestIDIsEchoed(t *testing.T) {
	e, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(middleware.RequestIDHeader))
}

func TestUnknownRoute(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(t, e, http.MethodGet, "/galaxies", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, notFoundBody{Error: "Route not found"}, decode[notFoundBody](t, rec))
}

func TestCreateScientist(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(t, e, http.MethodPost, "/scientists", `{"name":"Mel T. Valent","field_of_study":"xenobiology"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, model.Scientist{ID: 1, Name: "Mel T. Valent", FieldOfStudy: "xenobiology"}, decode[model.Scientist](t, rec))

	list := do(t, e, http.MethodGet, "/scientists", "")
	require.Equal(t, http.StatusOK, list.Code)
	assert.Equal(t, []model.Scientist{{ID: 1, Name: "Mel T. Valent", FieldOfStudy: "xenobiology"}}, decode[[]model.Scientist](t, list))
}

func TestCreateScientistMissingFields(t *testing.T) {
	e, _ := newTestRouter(t)

	tests := []struct {
		name string
		body string
		want []string
	}{
		{name: "missing field_of_study", body: `{"name":"Ada"}`, want: []string{"field_of_study is required"}},
		{name: "missing name", body: `{"field_of_study":"Math"}`, want: []string{"name is required"}},
		{name: "empty body", body: `{}`, want: []string{"name is required", "field_of_study is required"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, e, http.MethodPost, "/scientists", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, decode[errorsBody](t, rec).Errors)
		})
	}

	list := do(t, e, http.MethodGet, "/scientists", "")
	assert.Equal(t, []model.Scientist{}, decode[[]model.Scientist](t, list))
}

func TestCreateScientistMalformedJSON(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(t, e, http.MethodPost, "/scientists", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, decode[errorsBody](t, rec).Errors, 1)
}

func TestListScientistsEmpty(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(t, e, http.MethodGet, "/scientists", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetScientistNotFound(t *testing.T) {
	e, _ := newTestRouter(t)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		rec := do(t, e, method, "/scientists/999", "")

		assert.Equal(t, http.StatusNotFound, rec.Code, method)
		assert.Equal(t, notFoundBody{Error: "Scientist not found"}, decode[notFoundBody](t, rec), method)
	}

	rec := do(t, e, http.MethodPatch, "/scientists/999", `{"name":"A","field_of_study":"B"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, notFoundBody{Error: "Scientist not found"}, decode[notFoundBody](t, rec))
}

func TestGetScientistNonNumericID(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(t, e, http.MethodGet, "/scientists/abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, decode[errorsBody](t, rec).Errors)
}

func TestGetScientistWithMissions(t *testing.T) {
	e, store := newTestRouter(t)

	sc := store.SeedScientist("P. Legrange", "Orbital Mechanics")
	planet := store.SeedPlanet(model.Planet{Name: "TauCeti F", DistanceFromEarth: intPtr(1187), NearestStar: strPtr("TauCeti")})
	store.SeedMission("Survey", sc.ID, planet.ID)

	rec := do(t, e, http.MethodGet, "/scientists/1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	detail := decode[model.ScientistDetail](t, rec)
	assert.Equal(t, sc, detail.Scientist)
	require.Len(t, detail.Missions, 1)
	assert.Equal(t, "Survey", detail.Missions[0].Name)
	assert.Equal(t, planet, detail.Missions[0].Planet)

	// Missions never embed their scientist.
	var raw struct {
		Missions []map[string]json.RawMessage `json:"missions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	require.Len(t, raw.Missions, 1)
	assert.NotContains(t, raw.Missions[0], "scientist")
	assert.Contains(t, raw.Missions[0], "planet")
}

func TestGetScientistWithoutMissions(t *testing.T) {
	e, store := newTestRouter(t)
	store.SeedScientist("Vera Rubin", "Astronomy")

	rec := do(t, e, http.MethodGet, "/scientists/1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"Vera Rubin","field_of_study":"Astronomy","missions":[]}`, rec.Body.String())
}

func TestUpdateScientist(t *testing.T) {
	e, store := newTestRouter(t)
	store.SeedScientist("Vera", "Astronomy")

	rec := do(t, e, http.MethodPatch, "/scientists/1", `{"name":"Vera Rubin","field_of_study":"Astrophysics"}`)

	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"id":1,"name":"Vera Rubin","field_of_study":"Astrophysics","missions":[]}`, rec.Body.String())

	get := do(t, e, http.MethodGet, "/scientists/1", "")
	assert.Equal(t, "Astrophysics", decode[model.ScientistDetail](t, get).FieldOfStudy)
}

func TestUpdateScientistRequiresBothFields(t *testing.T) {
	e, store := newTestRouter(t)
	store.SeedScientist("Vera", "Astronomy")

	rec := do(t, e, http.MethodPatch, "/scientists/1", `{"name":"Vera Rubin"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"field_of_study is required"}, decode[errorsBody](t, rec).Errors)

	get := do(t, e, http.MethodGet, "/scientists/1", "")
	assert.Equal(t, "Vera", decode[model.ScientistDetail](t, get).Name)
}

func TestDeleteScientistCascades(t *testing.T) {
	e, store := newTestRouter(t)
	sc := store.SeedScientist("Vera", "Astronomy")
	planet := store.SeedPlanet(model.Planet{Name: "Proxima b"})
	store.SeedMission("Flyby", sc.ID, planet.ID)

	rec := do(t, e, http.MethodDelete, "/scientists/1", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, 0, store.MissionCount())

	get := do(t, e, http.MethodGet, "/scientists/1", "")
	assert.Equal(t, http.StatusNotFound, get.Code)
}

func TestListPlanets(t *testing.T) {
	e, store := newTestRouter(t)
	store.SeedPlanet(model.Planet{Name: "TauCeti F", DistanceFromEarth: intPtr(1187), NearestStar: strPtr("TauCeti")})
	store.SeedPlanet(model.Planet{Name: "Rogue"})

	rec := do(t, e, http.MethodGet, "/planets", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"id":1,"name":"TauCeti F","distance_from_earth":1187,"nearest_star":"TauCeti"},
		{"id":2,"name":"Rogue","distance_from_earth":null,"nearest_star":null}
	]`, rec.Body.String())
}

func TestCreateMission(t *testing.T) {
	e, store := newTestRouter(t)
	store.SeedScientist("Vera", "Astronomy")
	store.SeedPlanet(model.Planet{Name: "Proxima b"})

	rec := do(t, e, http.MethodPost, "/missions", `{"name":"Flyby","scientist_id":1,"planet_id":1}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, model.Mission{ID: 1, Name: "Flyby", ScientistID: 1, PlanetID: 1}, decode[model.Mission](t, rec))

	list := do(t, e, http.MethodGet, "/missions", "")
	require.Equal(t, http.StatusOK, list.Code)
	assert.Equal(t, []model.Mission{{ID: 1, Name: "Flyby", ScientistID: 1, PlanetID: 1}}, decode[[]model.Mission](t, list))
}

func TestCreateMissionDanglingReference(t *testing.T) {
	e, store := newTestRouter(t)
	store.SeedScientist("Vera", "Astronomy")
	store.SeedPlanet(model.Planet{Name: "Proxima b"})

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "scientist", body: `{"name":"Flyby","scientist_id":42,"planet_id":1}`, want: "The referenced Scientist does not exist"},
		{name: "planet", body: `{"name":"Flyby","scientist_id":1,"planet_id":42}`, want: "The referenced Planet does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, e, http.MethodPost, "/missions", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, []string{tt.want}, decode[errorsBody](t, rec).Errors)
		})
	}

	assert.Equal(t, 0, store.MissionCount())
	assert.Equal(t, 2, store.Rollbacks)
}

func TestCreateMissionMissingFields(t *testing.T) {
	e, store := newTestRouter(t)

	rec := do(t, e, http.MethodPost, "/missions", `{"name":"Flyby"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"scientist_id is required", "planet_id is required"}, decode[errorsBody](t, rec).Errors)
	assert.Equal(t, 0, store.MissionCount())
}

func TestCreateMissionWrongType(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(t, e, http.MethodPost, "/missions", `{"name":"Flyby","scientist_id":"one","planet_id":1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"scientist_id has an invalid type"}, decode[errorsBody](t, rec).Errors)
}

func TestUnexpectedErrorIsSanitized(t *testing.T) {
	e, store := newTestRouter(t)
	store.Err = errors.New("connection reset by peer")

	rec := do(t, e, http.MethodGet, "/scientists", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, []string{"Internal Server Error"}, decode[errorsBody](t, rec).Errors)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestStatusReportsMissingDatabase(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(t, e, http.MethodGet, "/status", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode[handler.HealthResponse](t, rec)
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "unhealthy", body.Checks["database"].Status)
}

func TestStatusWithChecksDisabled(t *testing.T) {
	e, _ := newTestRouter(t, func(cfg *config.Config) {
		cfg.Observability.HealthChecks.Enabled = false
	})

	rec := do(t, e, http.MethodGet, "/status", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode[handler.HealthResponse](t, rec)
	assert.Equal(t, "healthy", body.Status)
	assert.Empty(t, body.Checks)
}

func TestMetricsEndpoint(t *testing.T) {
	e, _ := newTestRouter(t)

	do(t, e, http.MethodGet, "/scientists", "")
	rec := do(t, e, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `cosmic_http_requests_total{code="200",method="GET",route="/scientists"} 1`)
}

func TestRateLimit(t *testing.T) {
	e, _ := newTestRouter(t, func(cfg *config.Config) {
		cfg.Server.RateLimit = 0.001 // burst of one
	})

	first := do(t, e, http.MethodGet, "/", "")
	second := do(t, e, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, []string{"Too many requests"}, decode[errorsBody](t, second).Errors)
}
