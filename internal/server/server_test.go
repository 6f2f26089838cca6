package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"folio/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readiness struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func TestLivenessCheck(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.do(t, http.MethodGet, "/health/live", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"status":"up"`)
}

func TestReadinessCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		env := newTestEnv(t)
		status, body := env.do(t, http.MethodGet, "/health/ready", nil, "")
		require.Equal(t, http.StatusOK, status)
		res := decode[readiness](t, body)
		assert.Equal(t, "healthy", res.Checks["database"])
		assert.Equal(t, "healthy", res.Checks["redis"])
	})

	t.Run("redis down", func(t *testing.T) {
		env := newTestEnv(t)
		env.mr.Close()
		status, body := env.do(t, http.MethodGet, "/health/ready", nil, "")
		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.Equal(t, "unhealthy", decode[readiness](t, body).Checks["redis"])
	})

	t.Run("database down", func(t *testing.T) {
		env := newTestEnv(t)
		sqlDB, err := env.db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())

		status, body := env.do(t, http.MethodGet, "/health/ready", nil, "")
		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.Equal(t, "unhealthy", decode[readiness](t, body).Checks["database"])
	})

	t.Run("without redis", func(t *testing.T) {
		t.Setenv("APP_ENV", "test")
		srv, err := NewServerWithDeps(testConfig(t), setupTestDB(t), nil)
		require.NoError(t, err)

		resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil), -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestNewServerWithDeps_RequiresDependencies(t *testing.T) {
	_, err := NewServerWithDeps(nil, nil, nil)
	assert.Error(t, err)

	_, err = NewServerWithDeps(testConfig(t), nil, nil)
	assert.Error(t, err)
}

func TestUnknownRouteUsesErrorShape(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.do(t, http.MethodGet, "/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, models.CodeNotFound, errorOf(t, body).Code)
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/projects", nil)
	req.Header.Set(fiber.HeaderOrigin, "http://localhost:3000")
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, http.MethodPatch)

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Contains(t, resp.Header.Get(fiber.HeaderAccessControlAllowMethods), http.MethodPatch)
}

func TestResponsesCarryRequestAndTraceIDs(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/projects", nil), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}
