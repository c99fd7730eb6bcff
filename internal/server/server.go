package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/aliffy-benevides/restaurants-manager-api/internal/config"
	"github.com/aliffy-benevides/restaurants-manager-api/internal/database"
	custommiddleware "github.com/aliffy-benevides/restaurants-manager-api/internal/middleware"
	"github.com/aliffy-benevides/restaurants-manager-api/internal/repository"
	"github.com/aliffy-benevides/restaurants-manager-api/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config    *config.Config
	logger    *zap.Logger
	dbService *database.Service
}

func NewServer(cfg *config.Config, logger *zap.Logger, dbService *database.Service) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env != "production"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Rate limiting is optional; the API works without Redis
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.RequestsPerMinute,
			Window:            time.Minute,
			KeyPrefix:         "rate_limit",
		}, logger))
	}

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithJSON(w, http.StatusOK, dbService.Health())
	})

	// Initialize repositories
	restaurantRepo := repository.NewRestaurantRepository(dbService.DB())
	productRepo := repository.NewProductRepository(dbService.DB())

	// Initialize handlers
	restaurantHandler := transport.NewRestaurantHandler(restaurantRepo, productRepo, logger)
	productHandler := transport.NewProductHandler(productRepo, logger)

	// Both handlers share the /restaurants subrouter; products nest under a
	// restaurant id.
	router.Route("/restaurants", func(r chi.Router) {
		restaurantHandler.RegisterRoutes(r)
		productHandler.RegisterRoutes(r)
	})

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:    cfg,
		logger:    logger,
		dbService: dbService,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.dbService != nil {
		if err := s.dbService.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
