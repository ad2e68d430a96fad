package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect4-cpu/backend/internal/transport/http/middleware"
)

// RouterDeps groups everything the HTTP surface is built from.
type RouterDeps struct {
	Games          GameService
	Archive        HistoryReader
	Stats          StatsReader
	WebSocket      http.Handler
	AllowedOrigins []string
	IsProduction   bool
	// StaticDir, when it exists, is served as a single page app.
	StaticDir      string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CORSMiddleware(deps.AllowedOrigins))

	gameHandler := NewGameHandler(deps.Games, deps.IsProduction)
	historyHandler := NewHistoryHandler(deps.Games, deps.Archive, deps.Stats)
	watchHandler := NewWatchHandler(deps.Games)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/game", gameHandler.Create)
		api.GET("/game", gameHandler.Get)
		api.POST("/game/move", gameHandler.Move)
		api.POST("/game/cpu-move", gameHandler.OpponentMove)
		api.POST("/game/reset", gameHandler.Reset)
		api.GET("/game/history", historyHandler.GetHistory)
		api.GET("/games", watchHandler.GetLiveGames)
		api.GET("/stats", historyHandler.GetStats)
	}

	if deps.WebSocket != nil {
		r.GET("/ws", gin.WrapH(deps.WebSocket))
	}

	if deps.StaticDir != "" {
		serveStatic(r, deps.StaticDir)
	}

	return r
}

func serveStatic(r *gin.Engine, dir string) {
	if _, err := os.Stat(dir); err != nil {
		return
	}
	index := filepath.Join(dir, "index.html")

	r.Static("/assets", filepath.Join(dir, "assets"))
	r.GET("/", func(c *gin.Context) {
		c.File(index)
	})

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "not found"})
			return
		}

		path := filepath.Join(dir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			c.File(path)
			return
		}

		if strings.HasPrefix(c.Request.URL.Path, "/assets/") || strings.HasSuffix(c.Request.URL.Path, ".css") || strings.HasSuffix(c.Request.URL.Path, ".js") {
			c.Status(http.StatusNotFound)
			return
		}

		c.File(index)
	})
}
