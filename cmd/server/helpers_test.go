package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tarefas-api/internal/config"
	"github.com/phrazzld/tarefas-api/internal/platform/logger"
	"github.com/phrazzld/tarefas-api/internal/platform/memory"
	"github.com/phrazzld/tarefas-api/internal/service/auth"
)

// Hash of "senha123" at bcrypt cost 10.
const usuario1Hash = "$2b$10$z/tZJvWT2g/mmB0fLMnlVuS.ezQXJfzCkYZ3t4.dO6HZ5n02JVQge"

func testConfig(importURL string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            8080,
			LogLevel:        "debug",
			RequestTimeout:  5 * time.Second,
			ShutdownTimeout: time.Second,
		},
		Database: config.DatabaseConfig{URL: "postgres://localhost/tarefas", MaxOpenConns: 1, ConnMaxLifetime: time.Minute},
		Auth: config.AuthConfig{
			JWTSecret:            auth.TestJWTSecret,
			Algorithm:            "HS256",
			TokenLifetimeMinutes: 30,
			BcryptCost:           10,
			UserStore:            "static",
			Users:                []config.StaticUser{{Username: "usuario1", PasswordHash: usuario1Hash}},
		},
		Cache:     config.CacheConfig{Enabled: true, ListTTL: time.Minute, ItemTTL: 30 * time.Second},
		Importer:  config.ImporterConfig{SourceURL: importURL, Timeout: 2 * time.Second},
		RateLimit: config.RateLimitConfig{Enabled: false, LoginPerSecond: 1, LoginBurst: 5},
	}
}

type testServer struct {
	handler http.Handler
	mock    sqlmock.Sqlmock
	tasks   *memory.TaskStore
	logs    *logger.TestLogBuffer
}

// newTestServer wires the real router and services over in-memory stores.
// The sqlmock database only sees the import transaction.
func newTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log, logs := logger.NewTestLogger()
	tasks := memory.NewTaskStore()
	app := &application{
		config:    cfg,
		logger:    log,
		db:        db,
		userStore: newUserStore(cfg, log, db),
		taskStore: tasks,
	}
	require.NoError(t, app.initServices())

	return &testServer{handler: app.setupRouter(), mock: mock, tasks: tasks, logs: logs}
}

func (s *testServer) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, username, password string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = "203.0.113.7:5555"
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) token(t *testing.T) string {
	t.Helper()

	rec := s.login(t, "usuario1", "senha123")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "bearer", resp.TokenType)
	return resp.AccessToken
}
