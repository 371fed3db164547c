package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveness(t *testing.T) {
	rr := httptest.NewRecorder()
	Liveness().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestReadinessAllHealthy(t *testing.T) {
	ok := func(context.Context) error { return nil }
	handler := Readiness(time.Second, Check{Name: "redis", Ping: ok}, Check{Name: "gotenberg", Ping: ok}, Check{Name: "skipped"})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ready","checks":{"redis":"ok","gotenberg":"ok"}}`, rr.Body.String())
}

func TestReadinessReportsFailures(t *testing.T) {
	handler := Readiness(time.Second,
		Check{Name: "redis", Ping: func(context.Context) error { return errors.New("connection refused") }},
		Check{Name: "gotenberg", Ping: func(context.Context) error { return nil }},
	)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &problem))
	assert.Equal(t, "Not Ready", problem.Title)
	assert.Equal(t, "unavailable: redis", problem.Detail)
}
