package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nomadreads/nomadreads-server/internal/config"
	"github.com/nomadreads/nomadreads-server/internal/domain/recommendation"
	"github.com/nomadreads/nomadreads-server/internal/interfaces/httpserver/handlers"
	middleware "github.com/nomadreads/nomadreads-server/internal/interfaces/httpserver/middlewares"
	v1 "github.com/nomadreads/nomadreads-server/internal/interfaces/httpserver/routes/v1"
	"github.com/nomadreads/nomadreads-server/internal/utils/platformerrors"
)

// NetlifyFunctionPath is the Netlify Functions route the endpoint is also served on.
const NetlifyFunctionPath = "/.netlify/functions/recommend"

// HttpServer wraps the gin engine with graceful shutdown helpers.
type HttpServer struct {
	cfg         *config.Config
	engine      *gin.Engine
	log         zerolog.Logger
	handlerProv *handlers.Provider
}

// New constructs the HTTP server with default middleware and routes.
func New(cfg *config.Config, log zerolog.Logger, recommendationService recommendation.Service) *HttpServer {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.Use(gin.CustomRecovery(recoveryHandler(log)))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.TracingMiddleware(cfg.ServiceName))
	engine.Use(middleware.LoggingMiddleware(log))
	engine.Use(middleware.MetricsMiddleware())
	engine.NoMethod(platformerrors.WriteMethodNotAllowed)

	handlerProvider := handlers.NewProvider(cfg, recommendationService, log)
	rateLimit := middleware.RateLimitMiddleware(cfg.RateLimitPerMinute)
	registerCoreRoutes(engine, cfg, handlerProvider, rateLimit)
	v1.NewRoutes(handlerProvider, rateLimit).Register(engine)

	return &HttpServer{
		cfg:         cfg,
		engine:      engine,
		log:         log,
		handlerProv: handlerProvider,
	}
}

// Handler exposes the engine for the serverless adapter and tests.
func (s *HttpServer) Handler() http.Handler {
	return s.engine
}

// Run starts the HTTP listener and handles graceful shutdown via context cancellation.
func (s *HttpServer) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.HTTPPort)
	server := &http.Server{
		Addr:    addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("HTTP server listening")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("HTTP server error")
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("Context cancelled, shutting down HTTP server")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func registerCoreRoutes(engine *gin.Engine, cfg *config.Config, handlerProvider *handlers.Provider, rateLimit gin.HandlerFunc) {
	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": cfg.ServiceName,
			"status":  "ok",
		})
	})

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	engine.GET("/readyz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	engine.POST(NetlifyFunctionPath, rateLimit, handlerProvider.Recommend.PostRecommend)
}

func recoveryHandler(log zerolog.Logger) gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		log.Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Str("request_id", middleware.RequestIDFromContext(c)).
			Msg("recovered from panic")
		c.String(http.StatusInternalServerError, handlers.InternalErrorMessage)
		c.Abort()
	}
}
