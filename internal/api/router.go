package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/primetradeai/pricetrack/docs"
	"github.com/primetradeai/pricetrack/internal/api/handler"
	"github.com/primetradeai/pricetrack/internal/api/middleware"
	"github.com/primetradeai/pricetrack/internal/core/service"
	"github.com/primetradeai/pricetrack/internal/infrastructure/config"
	mongodb "github.com/primetradeai/pricetrack/internal/infrastructure/db/mongo"
	redisdb "github.com/primetradeai/pricetrack/internal/infrastructure/db/redis"
	"github.com/primetradeai/pricetrack/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the tick dispatcher, which the caller must Start.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("pricetrack"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	instrumentRepo := mongodb.NewInstrumentRepository(db)
	historyRepo := mongodb.NewPriceHistoryRepository(db)
	quoteCache := redisdb.NewQuoteCache(rdb)
	tickDedup := redisdb.NewTickDedup(rdb)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenService)
	instrumentService := service.NewInstrumentService(instrumentRepo, historyRepo, quoteCache, log)
	tickService := service.NewTickService(instrumentRepo, historyRepo, tickDedup, quoteCache, log)
	dispatcher := queue.NewDispatcher(cfg.TickWorkers, tickService, log)

	authHandler := handler.NewAuthHandler(authService)
	instrumentHandler := handler.NewInstrumentHandler(instrumentService)
	tickHandler := handler.NewTickHandler(dispatcher)
	auth := middleware.NewAuth(tokenService, log)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Instruments: reads need a session, writes need admin ---
	v1 := e.Group("/v1")
	v1.GET("/instruments", instrumentHandler.List, auth.Required())
	v1.GET("/instruments/:id/history", instrumentHandler.History, auth.Required())
	v1.POST("/instruments", instrumentHandler.Create, auth.AdminOnly())
	v1.PUT("/instruments/:id", instrumentHandler.Update, auth.AdminOnly())
	v1.DELETE("/instruments/:id", instrumentHandler.Delete, auth.AdminOnly())

	// --- Tick ingestion (admin only) ---
	v1.POST("/ticks", tickHandler.Receive, auth.AdminOnly())
	v1.POST("/ticks/batch", tickHandler.ReceiveBatch, auth.AdminOnly())

	// --- Ops endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, dispatcher
}
