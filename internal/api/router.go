package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fieldserve/jobs-system/internal/api/handler"
	"github.com/fieldserve/jobs-system/internal/api/middleware"
	"github.com/fieldserve/jobs-system/internal/core/service"
	"github.com/fieldserve/jobs-system/internal/infrastructure/config"
	mongodb "github.com/fieldserve/jobs-system/internal/infrastructure/db/mongo"
	redisdb "github.com/fieldserve/jobs-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("fieldserve"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	jobRepo := mongodb.NewJobRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	statsRepo := mongodb.NewStatsRepository(db)
	statsCache := redisdb.NewStatsCache(rdb, log)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authService := service.NewAuthService(userRepo, tokenService, log)
	userService := service.NewUserService(userRepo, jobRepo, log)
	jobService := service.NewJobService(jobRepo, userRepo, log)
	clientService := service.NewClientService(clientRepo, jobRepo, log)
	statsService := service.NewStatsService(statsRepo, userRepo, statsCache, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	jobHandler := handler.NewJobHandler(jobService)
	clientHandler := handler.NewClientHandler(clientService)
	statsHandler := handler.NewStatsHandler(statsService)

	authMiddleware := middleware.Auth(tokenService, userRepo)

	// --- API routes ---
	api := e.Group("/api")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	users := api.Group("/users", authMiddleware)
	users.GET("", userHandler.List)
	users.GET("/profile", userHandler.Profile)
	users.PUT("/profile", userHandler.UpdateProfile)

	clients := api.Group("/clients", authMiddleware)
	clients.POST("", clientHandler.Create)
	clients.GET("", clientHandler.List)
	clients.GET("/:id", clientHandler.Get)
	clients.PUT("/:id", clientHandler.Update)
	clients.DELETE("/:id", clientHandler.Remove)
	clients.GET("/:id/jobs", clientHandler.Jobs)

	jobs := api.Group("/jobs", authMiddleware)
	jobs.POST("", jobHandler.Create)
	jobs.GET("", jobHandler.List)
	jobs.GET("/:id", jobHandler.Get)
	jobs.PUT("/:id", jobHandler.Update)
	jobs.DELETE("/:id", jobHandler.Remove)
	jobs.PUT("/:id/status", jobHandler.ChangeStatus)
	jobs.PUT("/:id/assign", jobHandler.Assign)
	jobs.PUT("/:id/unassign", jobHandler.Unassign)

	stats := api.Group("/stats", authMiddleware)
	stats.GET("/overview", statsHandler.Overview)
	stats.GET("/jobs-by-user", statsHandler.JobsByUser)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
