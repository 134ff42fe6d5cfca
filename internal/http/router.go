package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/geocoder89/taskhub/internal/auth"
	"github.com/geocoder89/taskhub/internal/config"
	"github.com/geocoder89/taskhub/internal/http/handlers"
	"github.com/geocoder89/taskhub/internal/http/middlewares"
	"github.com/geocoder89/taskhub/internal/observability"
	"github.com/geocoder89/taskhub/internal/repo/memory"
	"github.com/geocoder89/taskhub/internal/repo/postgres"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter wires the full API. A nil pool swaps in the in-memory repos,
// which is how the end-to-end tests run without a database.
func NewRouter(log *slog.Logger, pool *pgxpool.Pool, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(otelgin.Middleware("taskhub"))

	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	r.Use(prom.GinHandleMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	r.Use(middlewares.RequireJSON())

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	// wire up repositories
	var (
		usersRepo    handlers.UserStore
		sessionsRepo auth.SessionStore
		tasksRepo    handlers.TaskStore
	)

	if pool != nil {
		usersRepo = postgres.NewUsersRepo(pool, prom)
		sessionsRepo = postgres.NewSessionsRepo(pool, prom)
		tasksRepo = postgres.NewTasksRepo(pool, prom)
	} else {
		usersRepo = memory.NewUsersRepo()
		sessionsRepo = memory.NewSessionsRepo()
		tasksRepo = memory.NewTasksRepo()
	}

	sessions := auth.NewManager(sessionsRepo, cfg.SessionTTL())

	// wire up handlers
	h := handlers.NewHealthHandler(ping)
	authHandler := handlers.NewAuthHandler(usersRepo, sessions, cfg)
	tasksHandler := handlers.NewTasksHandler(tasksRepo)
	authmw := middlewares.NewAuthMiddleware(sessions)

	// routes
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	r.POST("/signup", authHandler.SignUp)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)

	authed := r.Group("/", authmw.RequireAuth())
	authed.GET("/me", authHandler.Me)
	authed.GET("/tasks", tasksHandler.ListTasks)
	authed.POST("/tasks", tasksHandler.CreateTask)
	authed.PATCH("/tasks/:id", tasksHandler.UpdateTaskDone)
	authed.DELETE("/tasks/:id", tasksHandler.DeleteTask)

	return r
}
