package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bookvault/bookstore-api/internal/api/handler"
	"github.com/bookvault/bookstore-api/internal/api/middleware"
	"github.com/bookvault/bookstore-api/internal/core/domain"
	"github.com/bookvault/bookstore-api/internal/core/service"
	mongodb "github.com/bookvault/bookstore-api/internal/infrastructure/db/mongo"
	redisdb "github.com/bookvault/bookstore-api/internal/infrastructure/db/redis"
	"github.com/bookvault/bookstore-api/internal/infrastructure/queue"
	"github.com/bookvault/bookstore-api/internal/pkg/config"
)

// Deps bundles the external collaborators the router wires together.
type Deps struct {
	Mongo     *mongo.Database
	Client    *mongo.Client // nil disables multi-document transactions
	Redis     *redis.Client
	Config    *config.Config
	Log       zerolog.Logger
	Audit     *service.AuditService // read side; shares the dispatcher's instance
	AuditSink *queue.Dispatcher
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("bookstore"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(d.Mongo)
	bookRepo := mongodb.NewBookRepository(d.Mongo)
	guard := mongodb.NewGuard(d.Client, d.Log)

	tokens := service.NewTokenService(d.Config.JWTSecret, d.Config.TokenTTL())
	authorizer := service.NewAuthorizer(tokens)
	limiter := redisdb.NewLoginLimiter(d.Redis, d.Config.RateLimit.MaxAttempts, d.Config.RateLimit.Window())

	authService := service.NewAuthService(userRepo, guard, tokens, limiter, d.Log)
	userService := service.NewUserService(userRepo, guard, d.Log)
	bookService := service.NewBookService(bookRepo, guard, d.AuditSink, d.Log)

	authHandler := handler.NewAuthHandler(authService, userService)
	bookHandler := handler.NewBookHandler(bookService)
	userHandler := handler.NewUserHandler(userService)
	auditHandler := handler.NewAuditHandler(d.Audit)

	authMW := middleware.Auth(authorizer)
	anyRole := middleware.RBAC(domain.RoleStandard, domain.RoleAdmin)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authMW)
	e.PUT("/auth/me", authHandler.UpdateMe, authMW)

	// --- Catalog routes ---
	v1 := e.Group("/v1")
	v1.GET("/books", bookHandler.List)
	v1.GET("/books/:id", bookHandler.Get)
	v1.POST("/books", bookHandler.Create, authMW, anyRole)
	v1.PUT("/books/:id", bookHandler.Update, authMW, anyRole)
	v1.DELETE("/books/:id", bookHandler.Delete, authMW, adminOnly)

	// --- Admin routes ---
	v1.GET("/users", userHandler.List, authMW, adminOnly)
	v1.PATCH("/users/:id/role", userHandler.ChangeRole, authMW, adminOnly)
	v1.GET("/audit/:isbn", auditHandler.ListByISBN, authMW, adminOnly)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
