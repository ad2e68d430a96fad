package http

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/connect4-cpu/backend/internal/repository/memory"
	"github.com/iamasit07/connect4-cpu/backend/internal/service/bot"
	"github.com/iamasit07/connect4-cpu/backend/internal/service/game"
)

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestStaticFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>board</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "favicon.ico"), []byte("icon"), 0o644))

	svc := game.NewService(memory.NewSessionStore(), bot.NewRegistry(1))
	r := NewRouter(RouterDeps{Games: svc, StaticDir: dir})

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	w := get("/games/abc")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "board")

	w = get("/favicon.ico")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "icon", w.Body.String())

	assert.Equal(t, http.StatusNotFound, get("/missing.js").Code)
	assert.Equal(t, http.StatusNotFound, get("/api/nothing").Code)
}
