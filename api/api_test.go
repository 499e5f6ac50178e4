package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gctu-smartcampus/smartride-backend/booking"
	"github.com/gctu-smartcampus/smartride-backend/internal/boarding"
	"github.com/gctu-smartcampus/smartride-backend/internal/o11y"
	"github.com/gctu-smartcampus/smartride-backend/route"
	"github.com/gctu-smartcampus/smartride-backend/shuttle"
	"github.com/gctu-smartcampus/smartride-backend/stop"
)

// newTestAPI builds an API over a sqlmock database. Handlers that go through
// the allocator run against the in-memory fakes instead, so booking tests
// don't need SQL expectations.
func newTestAPI(t *testing.T) (*API, sqlmock.Sqlmock, *booking.FakeShuttleStore, *booking.FakeStore) {
	return newTestAPIWithMetricsAuth(t, "", "")
}

func newTestAPIWithMetricsAuth(t *testing.T, metricsUsername, metricsPassword string) (*API, sqlmock.Sqlmock, *booking.FakeShuttleStore, *booking.FakeStore) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	sqlxDB := sqlx.NewDb(db, "sqlmock")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	shuttles := booking.NewFakeShuttleStore()
	bookings := booking.NewFakeStore()
	alloc := booking.NewAllocator(shuttles, bookings, boarding.NewSigner("api-test-secret"), logger)

	obs := &o11y.Observability{
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
	}

	a := New(sqlxDB,
		stop.NewRepository(sqlxDB),
		route.NewRepository(sqlxDB),
		shuttle.NewRepository(sqlxDB),
		booking.NewRepository(sqlxDB),
		alloc, obs, metricsUsername, metricsPassword)

	return a, mock, shuttles, bookings
}

func doGET(a *API, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)
	return w
}

func doPOST(t *testing.T, a *API, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)
	return w
}

func TestBanner(t *testing.T) {
	a, _, _, _ := newTestAPI(t)

	w := doGET(a, "/")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SmartRide API running", resp["message"])
}

func TestHealth(t *testing.T) {
	a, mock, _, _ := newTestAPI(t)

	mock.ExpectPing()
	mock.ExpectQuery("SELECT table_name FROM information_schema.tables").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).
			AddRow("bookings").AddRow("routes").AddRow("shuttles").AddRow("stops"))

	w := doGET(a, "/health")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status   string   `json:"status"`
		Database string   `json:"database"`
		Tables   []string `json:"tables"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "connected", resp.Database)
	assert.Equal(t, []string{"bookings", "routes", "shuttles", "stops"}, resp.Tables)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthDatabaseDown(t *testing.T) {
	a, mock, _, _ := newTestAPI(t)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	w := doGET(a, "/health")

	// Still 200: the status page renders the body either way.
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status   string   `json:"status"`
		Database string   `json:"database"`
		Tables   []string `json:"tables"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "unavailable", resp.Database)
	assert.Empty(t, resp.Tables)
}

func TestSchema(t *testing.T) {
	a, _, _, _ := newTestAPI(t)

	w := doGET(a, "/schema")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Collections []string                  `json:"collections"`
		Models      map[string]map[string]any `json:"models"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.ElementsMatch(t, []string{"campusstop", "route", "shuttle", "booking"}, resp.Collections)
	assert.Contains(t, resp.Models["Booking"], "qr_token")
	assert.Contains(t, resp.Models["Shuttle"], "battery_level")
}

func TestMetricsExposition(t *testing.T) {
	a, _, _, _ := newTestAPI(t)

	// Drive one request through the middleware so a series exists.
	doGET(a, "/")

	w := doGET(a, "/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "smartride_http_requests_total")
	assert.Contains(t, w.Body.String(), "smartride_http_request_duration_seconds")
}

func TestMetricsBasicAuth(t *testing.T) {
	a, _, _, _ := newTestAPIWithMetricsAuth(t, "metrics", "s3cret")

	w := doGET(a, "/metrics")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.SetBasicAuth("metrics", "s3cret")
	w = httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
