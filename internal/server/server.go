package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"civic-sights/internal/core"
	"civic-sights/internal/features/articles"
	"civic-sights/internal/gateway"
)

// Server assembles configuration, storage, features and the HTTP stack
type Server struct {
	config     *core.Config
	logger     *slog.Logger
	coreLogger *core.Logger
	db         *core.Database
	registry   *core.Registry
	articles   *articles.Feature
	server     *http.Server
}

// New builds the server from environment configuration
func New(logger *slog.Logger) *Server {
	config, err := core.LoadConfig()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	coreLogger := core.NewLoggerWith(logger)

	db, err := core.OpenDatabase(config.Database, coreLogger)
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		os.Exit(1)
	}

	registry := core.NewRegistry(coreLogger)
	articlesFeature := articles.NewFeature(coreLogger, db, config)
	if err := registry.Register(articlesFeature); err != nil {
		logger.Error("Failed to register articles feature", "error", err)
		os.Exit(1)
	}

	srv := &Server{
		config:     config,
		logger:     logger,
		coreLogger: coreLogger,
		db:         db,
		registry:   registry,
		articles:   articlesFeature,
	}

	srv.setupRoutes()
	return srv
}

func (s *Server) setupRoutes() {
	mux := chi.NewRouter()

	mux.Use(middleware.Recoverer)
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.Security.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	gatewayFilter := gateway.NewFilter(gateway.NewConfig(s.config.Security), s.coreLogger)
	mux.Use(gatewayFilter.Middleware)

	// Feature routes via the registry
	for _, route := range s.registry.GetAllRoutes() {
		mux.Method(route.Method, route.Path, route.Handler)
	}

	// Operational endpoints, bypassed by the gateway filter
	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "ok", "store_tier": "%s"}`, s.articles.LastTier())
	})
	mux.Handle("/metrics", promhttp.Handler())

	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler: mux,
	}
}

// Start initializes all features and serves HTTP
func (s *Server) Start() error {
	ctx := context.Background()
	if err := s.registry.InitAll(ctx); err != nil {
		s.logger.Error("Failed to initialize features", "error", err)
		return err
	}

	s.logger.Info("Starting server",
		"host", s.config.Server.Host,
		"port", s.config.Server.Port,
		"gateway_only", s.config.Security.GatewayOnly,
	)

	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server, features and database
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	if err := s.registry.ShutdownAll(ctx); err != nil {
		s.logger.Error("Failed to shutdown features", "error", err)
	}

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
