package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/taskboard/backend/internal/config"
	"github.com/taskboard/backend/internal/db"
	"github.com/taskboard/backend/internal/handler"
	"github.com/taskboard/backend/internal/model"
	"github.com/taskboard/backend/internal/service"
)

func main() {
	_ = godotenv.Load()

	seed := flag.Bool("seed", false, "wipe and insert demo data, then exit")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		slog.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := db.NewPostgres(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		slog.Error("schema setup failed", "error", err)
		os.Exit(1)
	}

	authSvc, err := service.NewAuthService(store, cfg.Auth)
	if err != nil {
		slog.Error("auth setup failed", "error", err)
		os.Exit(1)
	}
	taskSvc := service.NewTaskService(store)
	profileSvc := service.NewProfileService(store)

	if *seed {
		if err := seedDemoData(ctx, store, authSvc, taskSvc); err != nil {
			slog.Error("seeding failed", "error", err)
			os.Exit(1)
		}
		slog.Info("demo data seeded")
		return
	}

	rateRequests, err := strconv.Atoi(cfg.RateLimit.Requests)
	if err != nil || rateRequests <= 0 {
		slog.Error("invalid RATE_LIMIT_REQUESTS", "value", cfg.RateLimit.Requests)
		os.Exit(1)
	}
	rateWindow, err := time.ParseDuration(cfg.RateLimit.Window)
	if err != nil || rateWindow <= 0 {
		slog.Error("invalid RATE_LIMIT_WINDOW", "value", cfg.RateLimit.Window)
		os.Exit(1)
	}

	authHandler := handler.NewAuthHandler(authSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	taskHandler := handler.NewTaskHandler(taskSvc)

	rateLimiter := handler.NewRateLimiter(rateRequests, rateWindow)
	defer rateLimiter.Stop()

	router := gin.Default()
	router.Use(handler.CORSMiddleware(strings.Split(cfg.CORS.AllowedOrigins, ",")))
	router.Use(rateLimiter.Middleware())

	// /api/v1 is canonical; /api remains as an alias for older clients.
	registerRoutes(router.Group("/api/v1"), authSvc, authHandler, profileHandler, taskHandler)
	registerRoutes(router.Group("/api"), authSvc, authHandler, profileHandler, taskHandler)

	slog.Info("server starting", "port", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func registerRoutes(g *gin.RouterGroup, authSvc *service.AuthService, ah *handler.AuthHandler, ph *handler.ProfileHandler, th *handler.TaskHandler) {
	g.GET("/health", handler.Health)

	auth := g.Group("/auth")
	auth.POST("/signup", ah.Signup)
	auth.POST("/login", ah.Login)

	authed := g.Group("", handler.AuthMiddleware(authSvc))
	authed.GET("/me", ph.Me)
	authed.PUT("/me", ph.UpdateMe)
	authed.POST("/tasks", th.CreateTask)
	authed.GET("/tasks", th.ListTasks)
	authed.GET("/tasks/:id", th.GetTask)
	authed.PUT("/tasks/:id", th.UpdateTask)
	authed.DELETE("/tasks/:id", th.DeleteTask)
}

// seedDemoData reproduces the demo dataset: one demo account and four
// tasks in assorted states.
func seedDemoData(ctx context.Context, store *db.Postgres, authSvc *service.AuthService, taskSvc *service.TaskService) error {
	if err := store.ResetData(ctx); err != nil {
		return err
	}

	user, _, err := authSvc.Register(ctx, "Demo User", "demo@example.com", "demo123")
	if err != nil {
		return err
	}

	if _, err := store.UpdateUserProfile(ctx, user.ID, nil, ptr("I am a demo user.")); err != nil {
		return err
	}

	demoTasks := []model.CreateTaskRequest{
		{
			Title:       "Review Project Requirements",
			Description: "Check all the features requested in the assignment.",
			Status:      model.StatusCompleted,
			Priority:    model.PriorityHigh,
		},
		{
			Title:       "Setup Database",
			Description: "Configure PostgreSQL connection and schema.",
			Status:      model.StatusCompleted,
			Priority:    model.PriorityHigh,
		},
		{
			Title:       "Implement Authentication",
			Description: "Create signup and login APIs with JWT.",
			Status:      model.StatusInProgress,
			Priority:    model.PriorityMedium,
		},
		{
			Title:       "Design Dashboard",
			Description: "Create a responsive dashboard using TailwindCSS.",
			Status:      model.StatusPending,
			Priority:    model.PriorityMedium,
		},
	}

	for _, t := range demoTasks {
		if _, err := taskSvc.Create(ctx, user.ID, t); err != nil {
			return err
		}
	}
	return nil
}

func ptr(s string) *string {
	return &s
}
