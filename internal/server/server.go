package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"handcrafted-haven/internal/catalog"
	"handcrafted-haven/internal/config"
	"handcrafted-haven/internal/database"
	custommiddleware "handcrafted-haven/internal/middleware"
	"handcrafted-haven/internal/repository"
	"handcrafted-haven/internal/service"
	"handcrafted-haven/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     database.Service
	redis  *redis.Client
}

// NewServer wires repositories, services and handlers onto a chi router.
// redisClient may be nil, in which case write routes are not rate limited.
func NewServer(cfg *config.Config, logger *zap.Logger, db database.Service, redisClient *redis.Client) *Server {
	s := &Server{
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	s.Server = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      s.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

func (s *Server) routes() http.Handler {
	cfg := s.config
	sqlDB := s.db.DB()

	router := chi.NewRouter()
	router.Use(custommiddleware.DefaultMiddlewareStack(cfg.Server.RequestTimeout)...)
	router.Use(custommiddleware.CORSMiddleware(cfg.Server))
	router.Use(custommiddleware.LoggingMiddleware(s.logger.Named("http")))
	router.Use(custommiddleware.ErrorHandlingMiddleware(s.logger))

	router.Get("/health", s.health)

	userRepo := repository.NewUserRepository(sqlDB)
	sessionRepo := repository.NewSessionRepository(sqlDB)
	sellerRepo := repository.NewSellerRepository(sqlDB)
	productRepo := repository.NewProductRepository(sqlDB)
	reviewRepo := repository.NewReviewRepository(sqlDB)
	categoryRepo := repository.NewCategoryRepository(sqlDB)

	catalogService := catalog.NewService(productRepo, categoryRepo, s.logger.Named("catalog"))
	userService := service.NewUserService(userRepo, sessionRepo, sellerRepo, cfg.JWT, s.logger.Named("users"))
	productService := service.NewProductService(productRepo, s.logger.Named("products"))
	reviewService := service.NewReviewService(reviewRepo, productRepo, s.logger.Named("reviews"))
	sellerService := service.NewSellerService(sellerRepo, s.logger.Named("sellers"))

	auth := custommiddleware.AuthMiddleware(cfg.JWT.Secret, s.logger)
	writeLimit := s.writeLimiter()

	transport.NewUserHandler(userService, s.logger).RegisterRoutes(router, auth)
	transport.NewCatalogHandler(catalogService, cfg.Catalog, s.logger).RegisterRoutes(router)
	transport.NewProductHandler(productService, reviewService, s.logger).RegisterRoutes(router, auth, writeLimit)
	transport.NewSellerHandler(sellerService, catalogService, s.logger).RegisterRoutes(router, auth, writeLimit)

	return router
}

func (s *Server) writeLimiter() func(http.Handler) http.Handler {
	if s.redis == nil {
		return nil
	}
	return custommiddleware.RateLimitMiddleware(s.redis, custommiddleware.RateLimitConfig{
		RequestsPerWindow: s.config.RateLimit.RequestsPerWindow,
		Window:            s.config.RateLimit.Window(),
		KeyPrefix:         "haven:ratelimit:write",
	}, s.logger.Named("ratelimit"))
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"database": s.db.Health(r.Context()),
	}

	code := http.StatusOK
	if dbHealth, _ := status["database"].(map[string]string); dbHealth["status"] != "up" {
		code = http.StatusServiceUnavailable
	}

	if s.redis != nil {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()
		if err := s.redis.Ping(ctx).Err(); err != nil {
			status["redis"] = map[string]string{"status": "down", "error": err.Error()}
		} else {
			status["redis"] = map[string]string{"status": "up"}
		}
	}

	if code == http.StatusOK {
		status["status"] = "ok"
	} else {
		status["status"] = "degraded"
	}
	custommiddleware.RespondWithJSON(w, code, status)
}

// Close releases the database pool and the redis client.
func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
			return err
		}
	}

	return nil
}
