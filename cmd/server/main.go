package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lukeringworm/dynameter-deploy/db"
	"github.com/lukeringworm/dynameter-deploy/internal/auth"
	"github.com/lukeringworm/dynameter-deploy/internal/config"
	"github.com/lukeringworm/dynameter-deploy/internal/feed"
	"github.com/lukeringworm/dynameter-deploy/internal/handler"
	"github.com/lukeringworm/dynameter-deploy/internal/milestone"
	"github.com/lukeringworm/dynameter-deploy/internal/pipeline"
	"github.com/lukeringworm/dynameter-deploy/internal/repository"
	"github.com/lukeringworm/dynameter-deploy/internal/scorer"
	"github.com/lukeringworm/dynameter-deploy/internal/stats"
	"github.com/lukeringworm/dynameter-deploy/pkg/llm"
)

// storage is the union of what the handlers and the milestone service read.
type storage interface {
	handler.IndexStore
	milestone.Store
}

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store storage
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("error connecting to DB: %v", err)
		}
		defer pool.Close()

		pg := repository.NewPostgresStore(pool)
		if err := pg.EnsureSchema(); err != nil {
			log.Fatalf("error preparing DB schema: %v", err)
		}
		store = pg
	} else {
		slog.Warn("DATABASE_URL not set, using in-memory storage")
		store = repository.NewMemoryStore()
	}

	var sessions auth.SessionStore
	if cfg.RedisURL != "" {
		redisClient, err := db.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("error connecting to Redis: %v", err)
		}
		defer redisClient.Close()
		sessions = auth.NewRedisStore(redisClient)
	} else {
		mem := auth.NewMemoryStore()
		mem.StartSweeper(ctx, time.Hour)
		sessions = mem
	}

	var client llm.Client
	switch {
	case cfg.OpenAIKey != "":
		client = llm.NewOpenAIClient(cfg.OpenAIKey)
	case cfg.AnthropicKey != "":
		client = llm.NewAnthropicClient(cfg.AnthropicKey)
	}

	tracker := stats.NewTracker()
	milestones := milestone.NewService(client, store)
	pipe := pipeline.New(pipeline.Config{
		Feeds:         config.DefaultFeeds(),
		FetchInterval: cfg.FetchInterval,
		ScoreGap:      cfg.ScoreGap,
	}, feed.NewFetcher(), scorer.New(client, tracker), tracker, milestones)
	pipe.Start(ctx)

	authenticator := auth.NewAuthenticator(cfg.AdminPassword, sessions)
	newsHandler := handler.NewNewsHandler(pipe, store)
	adminHandler := handler.NewAdminHandler(authenticator, tracker, milestones, pipe, client != nil)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/api/score", newsHandler.GetIndex)
	r.GET("/api/category/:categoryKey", newsHandler.GetCategoryDetails)
	r.GET("/api/news", newsHandler.GetNews)
	r.GET("/api/news/:category", newsHandler.GetCategoryNews)
	r.GET("/api/category-scores", newsHandler.GetCategoryScores)
	r.POST("/api/refresh-feeds", newsHandler.RefreshFeeds)
	r.GET("/health", newsHandler.GetHealth)

	r.POST("/api/admin/login", adminHandler.Login)

	admin := r.Group("/api/admin", authenticator.Middleware())
	admin.POST("/logout", adminHandler.Logout)
	admin.GET("/stats", adminHandler.GetStats)
	admin.POST("/reset-stats", adminHandler.ResetStats)
	admin.POST("/refresh-feeds", adminHandler.RefreshFeeds)
	admin.GET("/system-info", adminHandler.GetSystemInfo)
	admin.POST("/check-milestones", adminHandler.CheckMilestones)
	admin.POST("/update-milestones", adminHandler.UpdateMilestones)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
