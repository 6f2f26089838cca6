package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"folio/internal/cache"
	"folio/internal/config"
	"folio/internal/database"
	"folio/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

type testEnv struct {
	srv *Server
	app *fiber.App
	db  *gorm.DB
	mr  *miniredis.Miniredis
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:            "0",
		Env:             "test",
		JWTSecret:       testSecret,
		JWTTTLHours:     1,
		AllowedOrigins:  "http://localhost:3000",
		UploadDir:       t.TempDir(),
		UploadMaxSizeMB: 2,
	}
}

func newTestEnv(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db := setupTestDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := testConfig(t)
	for _, m := range mutate {
		m(cfg)
	}

	srv, err := NewServerWithDeps(cfg, db, cache.NewStore(client))
	require.NoError(t, err)

	return &testEnv{srv: srv, app: srv.App(), db: db, mr: mr}
}

func (e *testEnv) send(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return e.send(t, req)
}

// login registers an operator account and returns a bearer token for it.
func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	status, _ := e.do(t, http.MethodPost, "/auth/register", map[string]string{
		"name":     "Operator",
		"email":    "operator@example.com",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, status)

	status, body := e.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "operator@example.com",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, status)

	var res struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(body, &res))
	require.NotEmpty(t, res.AccessToken)
	return res.AccessToken
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

func errorOf(t *testing.T, body []byte) models.ErrorResponse {
	t.Helper()
	return decode[models.ErrorResponse](t, body)
}
