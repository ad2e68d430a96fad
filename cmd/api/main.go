package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/iamasit07/connect4-cpu/backend/internal/config"
	"github.com/iamasit07/connect4-cpu/backend/internal/repository/memory"
	"github.com/iamasit07/connect4-cpu/backend/internal/repository/postgres"
	"github.com/iamasit07/connect4-cpu/backend/internal/repository/redis"
	"github.com/iamasit07/connect4-cpu/backend/internal/repository/sqlite"
	"github.com/iamasit07/connect4-cpu/backend/internal/service/bot"
	"github.com/iamasit07/connect4-cpu/backend/internal/service/game"
	"github.com/iamasit07/connect4-cpu/backend/internal/service/monitor"
	transportHttp "github.com/iamasit07/connect4-cpu/backend/internal/transport/http"
	"github.com/iamasit07/connect4-cpu/backend/internal/transport/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Live game state
	store := memory.NewSessionStore()
	defer store.Close()

	bots := bot.NewRegistry(cfg.OpponentSeed)
	if !bots.Has(cfg.OpponentStrategy) {
		log.Fatalf("Unknown OPPONENT_STRATEGY %q", cfg.OpponentStrategy)
	}

	connManager := websocket.NewConnectionManager()
	defer connManager.CloseAll()

	opts := []game.Option{
		game.WithPublisher(connManager),
		game.WithDefaultOpponent(cfg.OpponentStrategy),
	}

	// 2. Round archive (optional)
	var archive transportHttp.HistoryReader
	var stats transportHttp.StatsReader

	switch cfg.DBDriver {
	case "postgres":
		db, err := postgres.Open(ctx, cfg.DatabaseURL, postgres.PoolConfig{
			MaxOpenConns:       cfg.DBMaxOpenConns,
			MaxIdleConns:       cfg.DBMaxIdleConns,
			ConnMaxLifetimeMin: cfg.DBConnMaxLifetimeMin,
		})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		repo := postgres.NewResultRepo(db)
		archive = repo
		stats = repo
		opts = append(opts, game.WithRecorder(repo))
	case "sqlite":
		repo, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to open SQLite archive: %v", err)
		}
		defer repo.Close()

		archive = repo
		stats = repo
		opts = append(opts, game.WithRecorder(repo))
	default:
		log.Println("[DB] No round archive configured")
	}

	// 3. Global counters (optional, preferred over SQLite totals)
	if cfg.RedisEnabled {
		client, err := redis.InitRedis(ctx, cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			log.Printf("[REDIS] Warning: %v. Stats come from the archive only.", err)
		} else {
			defer client.Close()
			scoreBoard := redis.NewScoreBoard(client)
			stats = scoreBoard
			opts = append(opts, game.WithRecorder(scoreBoard))
		}
	}

	gameService := game.NewService(store, bots, opts...)

	// 4. Background workers
	go monitor.NewWorker(store, cfg.MonitorInterval, cfg.SessionWarnThreshold).Start(ctx)

	// 5. HTTP
	router := transportHttp.NewRouter(transportHttp.RouterDeps{
		Games:          gameService,
		Archive:        archive,
		Stats:          stats,
		WebSocket:      websocket.NewHandler(connManager, gameService, cfg.AllowedOrigins),
		AllowedOrigins: cfg.AllowedOrigins,
		IsProduction:   cfg.IsProduction(),
		StaticDir:      cfg.StaticDir,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// let in-flight archive writes land before the connections close
	gameService.Wait()
	log.Println("Server exited gracefully")
}
