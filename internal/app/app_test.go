package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRandSeeded(t *testing.T) {
	seed := uint64(42)
	a, b := createRand(&seed), createRand(&seed)
	for range 10 {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
	assert.NotNil(t, createRand(nil))
}

func TestRoutesWithoutDatabase(t *testing.T) {
	for _, key := range []string{"DATABASE_URL", "POSTGRES_HOST", "APP_BASE_PATH"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("MAZE_ROWS", "4")
	t.Setenv("MAZE_COLS", "5")

	a := New(slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	require.NoError(t, a.setup(context.Background()))
	assert.Nil(t, a.db)
	a.loadRoutes()

	tests := []struct {
		method, target string
		code           int
	}{
		{http.MethodGet, "/maze", http.StatusOK},
		{http.MethodPost, "/maze/advance?steps=5", http.StatusOK},
		{http.MethodGet, "/runs", http.StatusServiceUnavailable},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodDelete, "/maze", http.StatusMethodNotAllowed},
	}
	for _, test := range tests {
		rec := httptest.NewRecorder()
		a.router.ServeHTTP(rec, httptest.NewRequest(test.method, test.target, nil))
		assert.Equal(t, test.code, rec.Code, test.method+" "+test.target)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "maze_ticks_total")
}
