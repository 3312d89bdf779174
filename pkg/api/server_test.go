package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picogrid/cosim-input/cmd/echo"
	"github.com/picogrid/cosim-input/pkg/editor"
	"github.com/picogrid/cosim-input/pkg/metrics"
	"github.com/picogrid/cosim-input/pkg/models"
	"github.com/picogrid/cosim-input/pkg/session"
	"github.com/picogrid/cosim-input/pkg/simulation"
)

type testEnv struct {
	handler  http.Handler
	sessions *session.Manager
	metrics  *metrics.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	sims := simulation.NewRegistry()
	require.NoError(t, sims.Register(echo.Name, echo.NewEchoSimulation))

	m := metrics.New()
	mgr := session.NewManager(zerolog.Nop(), m)
	srv, err := New(Deps{
		Listen:      "127.0.0.1:0",
		Logger:      zerolog.Nop(),
		Sessions:    mgr,
		Simulations: sims,
		Metrics:     m,
		Simulation:  echo.Name,
	})
	require.NoError(t, err)

	return &testEnv{handler: srv.Handler(), sessions: mgr, metrics: m}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) openSession(t *testing.T) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/v1/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	return "/api/v1/sessions/" + resp.ID
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) Error {
	t.Helper()

	var e Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	assert.Equal(t, rec.Code, e.Status)
	return e
}

func TestNewRequiresDeps(t *testing.T) {
	_, err := New(Deps{Simulations: simulation.NewRegistry()})
	assert.Error(t, err)

	_, err = New(Deps{Sessions: session.NewManager(zerolog.Nop(), nil)})
	assert.Error(t, err)
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t)
	env.openSession(t)

	rec := env.do(t, http.MethodGet, "/api/v1/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","sessions":1}`, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cosim_active_sessions 1")
}

func TestDefaultConfiguration(t *testing.T) {
	env := newTestEnv(t)
	base := env.openSession(t)

	rec := env.do(t, http.MethodGet, base+"/configuration", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var cfg models.Configuration
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.Len(t, cfg.Turbines, 1)
	assert.Len(t, cfg.SolarPanels, 1)
	assert.Len(t, cfg.EVCars, 1)
	assert.Equal(t, models.DefaultTurbine(), cfg.Turbines[0])
}

func TestPutRecords(t *testing.T) {
	env := newTestEnv(t)
	base := env.openSession(t)

	rec := env.do(t, http.MethodPut, base+"/records/turbines",
		`{"count": 2, "records": [{"hub_height": 80}, {"nominal_power": 2000000, "number_of_turbines": 4}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Kind    string               `json:"kind"`
		Count   int                  `json:"count"`
		Records []models.TurbineSpec `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "turbines", resp.Kind)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, 80.0, resp.Records[0].HubHeight)
	assert.Equal(t, 4, resp.Records[1].NumberOfTurbines)

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.EditorCommits.WithLabelValues("turbines", "ok")))
}

func TestPutRecordsRejectsInvalidAtomically(t *testing.T) {
	env := newTestEnv(t)
	base := env.openSession(t)

	rec := env.do(t, http.MethodPut, base+"/records/solar_panels",
		`{"count": 2, "records": [{"latitude": 45}, {"longitude": 200}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrCodeValidation, decodeError(t, rec).Code)

	rec = env.do(t, http.MethodGet, base+"/records/solar_panels", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count   int                `json:"count"`
		Records []models.SolarSpec `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, models.DefaultSolar(), resp.Records[0])
}

func TestPutRecordsCountBounds(t *testing.T) {
	env := newTestEnv(t)
	base := env.openSession(t)

	tooMany := fmt.Sprintf(`{"count": %d}`, editor.MaxCount+1)
	for _, body := range []string{`{"count": 0}`, `{"count": -3}`, tooMany} {
		rec := env.do(t, http.MethodPut, base+"/records/ev_cars", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, ErrCodeValidation, decodeError(t, rec).Code)
	}

	rec := env.do(t, http.MethodGet, base+"/records/ev_cars", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp recordsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)

	rec = env.do(t, http.MethodPut, base+"/records/ev_cars", fmt.Sprintf(`{"count": %d}`, editor.MaxCount))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, editor.MaxCount, resp.Count)

	// omitted count keeps the current size
	rec = env.do(t, http.MethodPut, base+"/records/ev_cars", `{"records": [{"id": "first"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, editor.MaxCount, resp.Count)
}

func TestRecordsUnknownKind(t *testing.T) {
	env := newTestEnv(t)
	base := env.openSession(t)

	rec := env.do(t, http.MethodGet, base+"/records/batteries", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPut, base+"/records/batteries", `{"count": 1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSettings(t *testing.T) {
	env := newTestEnv(t)
	base := env.openSession(t)

	rec := env.do(t, http.MethodPut, base+"/settings", `{"price_high": 0.1, "price_low": 0.4}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrCodeValidation, decodeError(t, rec).Code)

	rec = env.do(t, http.MethodPut, base+"/settings", `{"storage_capacity": 5000, "config_name": "base"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, base+"/settings", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var settings models.ScalarSettings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.Equal(t, 5000.0, settings.StorageCapacity)
	assert.Equal(t, "base", settings.ConfigName)
	assert.Equal(t, 0.0, settings.PriceHigh)

	rec = env.do(t, http.MethodPut, base+"/settings", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrCodeBadRequest, decodeError(t, rec).Code)
}

func TestSaveLoadDelete(t *testing.T) {
	env := newTestEnv(t)
	base := env.openSession(t)

	rec := env.do(t, http.MethodPost, base+"/configs", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrCodeValidation, decodeError(t, rec).Code)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPut, base+"/settings", `{"config_name": "summer"}`).Code)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPut, base+"/records/ev_cars",
		`{"count": 2, "records": [{"id": "ev-1"}, {"id": "ev-2", "departure_time": "07:30"}]}`).Code)

	rec = env.do(t, http.MethodPost, base+"/configs", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"name":"summer"}`, rec.Body.String())

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPut, base+"/records/ev_cars", `{"count": 1}`).Code)

	rec = env.do(t, http.MethodGet, base+"/configs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"configs":["summer"],"current":"summer"}`, rec.Body.String())

	rec = env.do(t, http.MethodPost, base+"/configs/summer/load", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var cfg models.Configuration
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	require.Len(t, cfg.EVCars, 2)
	assert.Equal(t, "ev-2", cfg.EVCars[1].ID)
	assert.Equal(t, models.TimeOfDay{Hour: 7, Minute: 30}, cfg.EVCars[1].DepartureTime)
	assert.Equal(t, "summer", cfg.System.ConfigName)

	rec = env.do(t, http.MethodDelete, base+"/configs/summer", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodPost, base+"/configs/summer/load", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrCodeNotFound, decodeError(t, rec).Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.ConfigOperations.WithLabelValues("save", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.ConfigOperations.WithLabelValues("load", "error")))
}

func TestConfigNameWithSlash(t *testing.T) {
	env := newTestEnv(t)
	base := env.openSession(t)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPut, base+"/settings", `{"config_name": "2024/summer"}`).Code)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, base+"/configs", "").Code)

	rec := env.do(t, http.MethodPost, base+"/configs/"+url.PathEscape("2024/summer")+"/load", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var cfg models.Configuration
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.Equal(t, "2024/summer", cfg.System.ConfigName)

	rec = env.do(t, http.MethodDelete, base+"/configs/2024%2Fsummer", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, base+"/configs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"configs":[],"current":""}`, rec.Body.String())
}

func TestSessionsAreIsolated(t *testing.T) {
	env := newTestEnv(t)
	a := env.openSession(t)
	b := env.openSession(t)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPut, a+"/settings", `{"config_name": "mine"}`).Code)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, a+"/configs", "").Code)

	rec := env.do(t, http.MethodGet, b+"/configs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"configs":[],"current":""}`, rec.Body.String())

	rec = env.do(t, http.MethodPost, b+"/configs/mine/load", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionLifecycle(t *testing.T) {
	env := newTestEnv(t)
	base := env.openSession(t)

	rec := env.do(t, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, env.sessions.Len())

	rec = env.do(t, http.MethodGet, base+"/configuration", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/sessions/not-a-uuid/configuration", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrCodeBadRequest, decodeError(t, rec).Code)
}

func TestLocate(t *testing.T) {
	env := newTestEnv(t)
	base := env.openSession(t)

	tests := []struct {
		name   string
		body   string
		region string
		target session.Target
	}{
		{"settings", `{"x": 300, "y": 200}`, "Settings", session.TargetSettings},
		{"ev", `{"x": 500, "y": 400}`, "EV", session.TargetEV},
		{"wind", `{"x": 600, "y": 100}`, "Wind", session.TargetWind},
		{"solar", `{"x": 100, "y": 100}`, "Solar", session.TargetSolar},
		{"outside", `{"x": 10, "y": 690}`, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, base+"/locate", tt.body)
			require.Equal(t, http.StatusOK, rec.Code)

			var resp locateResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.region, resp.Region)
			assert.Equal(t, tt.target, resp.Target)
		})
	}
}

func TestSimulate(t *testing.T) {
	env := newTestEnv(t)
	base := env.openSession(t)

	rec := env.do(t, http.MethodPost, base+"/simulate", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp simulateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, echo.Name, resp.Simulation)

	var cfg models.Configuration
	require.NoError(t, json.Unmarshal([]byte(resp.Output), &cfg))
	assert.Len(t, cfg.Turbines, 1)

	rec = env.do(t, http.MethodPost, base+"/simulate", `{"simulation": "missing"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.Simulations.WithLabelValues(echo.Name, "ok")))
}
