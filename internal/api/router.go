package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/TinLeaves/members-portal/internal/api/handler"
	"github.com/TinLeaves/members-portal/internal/api/middleware"
	"github.com/TinLeaves/members-portal/internal/api/token"
	"github.com/TinLeaves/members-portal/internal/core/domain"
	"github.com/TinLeaves/members-portal/internal/core/service"
	"github.com/TinLeaves/members-portal/internal/infrastructure/config"
	"github.com/TinLeaves/members-portal/internal/infrastructure/crypto"
	mongostore "github.com/TinLeaves/members-portal/internal/infrastructure/db/mongo"
	redisstore "github.com/TinLeaves/members-portal/internal/infrastructure/db/redis"
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
	e.Use(echoprometheus.NewMiddleware("members"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	sessionStore := redisstore.NewSessionStore(rdb)
	hasher := crypto.NewBcryptHasher(crypto.DefaultCost)
	sessions := service.NewSessionManager(sessionStore, cfg.SessionTTL)
	authService := service.NewAuthService(userRepo, hasher, sessions)
	accountService := service.NewAccountService(userRepo)

	codec := token.NewCodec(cfg.SessionSecret)
	authHandler := handler.NewAuthHandler(authService, codec)
	adminHandler := handler.NewAdminHandler(accountService)
	pagesHandler := handler.NewPagesHandler()

	e.Use(middleware.Session(codec, authService))

	// --- Public pages ---
	e.GET("/", pagesHandler.Home)
	e.GET("/signup", authHandler.SignupForm)
	e.POST("/signup", authHandler.Signup)
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)
	e.Static("/public", "public")

	// --- Authenticated area ---
	e.GET("/members", pagesHandler.Members, middleware.RequireAuth())

	// --- Admin area: the listing and both role mutations sit behind the
	// same admin gate. ---
	admin := e.Group("/admin", middleware.RequireAuth(), middleware.RequireRole(domain.RoleAdmin))
	admin.GET("", adminHandler.Dashboard)
	admin.GET("/promote", adminHandler.Promote)
	admin.GET("/demote", adminHandler.Demote)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
