package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"shelfmatch/internal/config"
	"shelfmatch/internal/database"
	"shelfmatch/internal/engine"
	"shelfmatch/internal/match"
	custommiddleware "shelfmatch/internal/middleware"
	"shelfmatch/internal/normalize"
	"shelfmatch/internal/repository"
	"shelfmatch/internal/service"
	"shelfmatch/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *database.Service
	redis  *redis.Client
}

// NewServer wires repositories, the resolution engine and HTTP routes.
// The engine's indexes are rebuilt from the catalog before the server
// is returned, so the first request already sees existing entries.
func NewServer(cfg *config.Config, logger *zap.Logger, db *database.Service, redisClient *redis.Client) (*Server, error) {
	router := chi.NewRouter()

	for _, mw := range custommiddleware.DefaultMiddlewareStack() {
		router.Use(mw)
	}
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	if redisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: 100,
			Window:            time.Minute,
			KeyPrefix:         "ratelimit",
		}, logger))
	}

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := db.Health(r.Context())
		status := http.StatusOK
		if health["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		custommiddleware.RespondWithJSON(w, status, health)
	})

	catalogRepo := repository.NewCatalogRepository(db.DB())
	listingRepo := repository.NewListingRepository(db.DB())

	norm := normalize.New()
	fuzzy := match.NewFuzzyMatcher(match.Thresholds{
		MatchThreshold: cfg.Matching.MatchThreshold,
		AmbiguousFloor: cfg.Matching.AmbiguousFloor,
		AmbiguousCeil:  cfg.Matching.AmbiguousCeil,
	})
	eng := engine.New(catalogRepo, norm, fuzzy, logger)
	if err := eng.Rebuild(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to build resolution indexes: %w", err)
	}

	resolutionService := service.NewResolutionService(eng, catalogRepo, listingRepo, logger)

	handler := transport.NewResolutionHandler(resolutionService, logger)
	handler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server, nil
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
