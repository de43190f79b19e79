package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/screenloom/screenloom/internal/api/middleware"
	"github.com/screenloom/screenloom/internal/api/ws"
	"github.com/screenloom/screenloom/internal/infrastructure/config"
	"github.com/screenloom/screenloom/internal/infrastructure/logging"
	"github.com/screenloom/screenloom/internal/infrastructure/monitoring"
	"github.com/screenloom/screenloom/internal/providers"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	router  *gin.Engine
	httpSrv *http.Server
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// New creates a server instance from configuration.
func New(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("initializing server",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port))

	metrics := monitoring.NewMetrics()

	provider := providers.ForConfig(cfg.Provider, logger)
	if cfg.Provider.APIKey == "" {
		logger.Info("no provider API key configured, using mock provider")
	} else {
		logger.Info("provider configured",
			zap.String("base_url", cfg.Provider.BaseURL),
			zap.String("model", cfg.Provider.Model))
	}
	wsHandler := ws.NewHandler(provider, "", metrics, logger)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst))
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	router.GET("/health", func(c *gin.Context) {
		metrics.UpdateUptime()
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/ws", wsHandler.HandleConnection)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Gatherer(), promhttp.HandlerOpts{})))

	return &Server{
		router:  router,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("starting HTTP server", zap.String("addr", addr))
	s.httpSrv = &http.Server{Addr: addr, Handler: s.router}
	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Close shuts the server down, waiting briefly for in-flight requests.
func (s *Server) Close() error {
	s.logger.Info("shutting down server")
	defer s.logger.Sync()
	if s.httpSrv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpSrv.Shutdown(ctx)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
