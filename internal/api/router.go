package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fintrust/auth-service/internal/api/handler"
	"github.com/fintrust/auth-service/internal/api/middleware"
	"github.com/fintrust/auth-service/internal/core/domain"
	"github.com/fintrust/auth-service/internal/core/ports"
	"github.com/fintrust/auth-service/internal/core/service"
	mongodb "github.com/fintrust/auth-service/internal/infrastructure/db/mongo"
	redisdb "github.com/fintrust/auth-service/internal/infrastructure/db/redis"
	"github.com/fintrust/auth-service/internal/infrastructure/security"
	"github.com/fintrust/auth-service/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AuditRecorder, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	hasher := security.NewBcryptHasher()
	tokens := security.NewJWTProvider(roleRepo, cfg.JWTSecret, cfg.TokenTTL)
	tx := mongodb.NewSessionTransactor(db.Client(), log)
	lockout := redisdb.NewLoginLockout(rdb, cfg.Lockout.MaxAttempts, cfg.Lockout.Window)

	authService := service.NewAuthService(userRepo, roleRepo, hasher, tokens, tx, lockout, audit, log)
	userService := service.NewUserService(userRepo, roleRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	// The gate runs on every request; public routes simply never look at
	// the principal. Protected routes add RequireAuth + RequireRoles.
	e.Use(middleware.Authenticate(tokens, roleRepo))
	requireAuth := middleware.RequireAuth(log)

	v1 := e.Group("/api/v1")
	v1.POST("/users", authHandler.Register)
	v1.POST("/login", authHandler.Login)
	v1.POST("/users/document", userHandler.FindByDocument,
		requireAuth, middleware.RequireRoles(domain.RoleAdmin, domain.RoleAdviser))
	v1.POST("/users/batch", userHandler.FindByIDs,
		requireAuth, middleware.RequireRoles(domain.RoleAdmin, domain.RoleAdviser, domain.RoleReport))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
