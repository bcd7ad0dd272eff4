// Package http wires the public API and the metrics endpoint onto gin servers.
package http

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accountDomain "github.com/hajjcare/accounts/internal/account/domain"
	accountHTTP "github.com/hajjcare/accounts/internal/account/http"
	authHTTP "github.com/hajjcare/accounts/internal/auth/http"
	authService "github.com/hajjcare/accounts/internal/auth/service"
	"github.com/hajjcare/accounts/internal/config"
	apperrors "github.com/hajjcare/accounts/internal/errors"
	"github.com/hajjcare/accounts/internal/httputil"
	"github.com/hajjcare/accounts/internal/metrics"
)

// ReadinessCheck reports whether a dependency can serve requests.
type ReadinessCheck func(ctx context.Context) error

// Server is the public API server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
	checks map[string]ReadinessCheck
}

// NewServer creates a server bound to host:port. The database is always part of
// the readiness check; AddReadinessCheck adds others such as the redis ledger.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		checks: make(map[string]ReadinessCheck),
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// AddReadinessCheck registers a named dependency reported by /ready.
func (s *Server) AddReadinessCheck(name string, check ReadinessCheck) {
	s.checks[name] = check
}

// SetupRouter registers middleware and routes.
//
//	POST /v1/token          grant (per-IP rate limited)
//	POST /v1/token/revoke   bearer
//	GET  /v1/me             bearer
//	GET  /v1/accounts/:id   bearer, admin or moderator
//
// ctx bounds background work started by middleware.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	codec authService.TokenCodec,
	tokenHandler *authHTTP.TokenHandler,
	accountHandler *accountHTTP.AccountHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.CustomRecovery(s.recoveryHandler))
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(
			metricsProvider.MeterProvider(),
			cfg.MetricsNamespace,
			"/health",
			"/ready",
		))
	}

	router.NoRoute(func(c *gin.Context) {
		httputil.HandleErrorGin(c, apperrors.ErrNotFound, nil)
	})

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	grant := []gin.HandlerFunc{tokenHandler.GrantHandler}
	if cfg.RateLimitTokenEnabled {
		grant = append([]gin.HandlerFunc{authHTTP.TokenRateLimitMiddleware(
			ctx,
			cfg.RateLimitTokenRequestsPerSec,
			cfg.RateLimitTokenBurst,
			s.logger,
		)}, grant...)
	}
	v1.POST("/token", grant...)

	authenticated := v1.Group("", authHTTP.AuthenticationMiddleware(codec, s.logger))
	authenticated.POST("/token/revoke", tokenHandler.RevokeHandler)
	authenticated.GET("/me", accountHandler.MeHandler)
	authenticated.GET(
		"/accounts/:id",
		authHTTP.RequireRoles(s.logger, accountDomain.RoleAdmin, accountDomain.RoleModerator),
		accountHandler.GetHandler,
	)

	s.router = router
}

// GetHandler returns the configured router.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return errors.New("router is not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler pings the database and every registered dependency.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	components := map[string]string{"database": "ok"}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("database not ready", slog.Any("error", err))
		components["database"] = "error"
		ready = false
	}

	for name, check := range s.checks {
		components[name] = "ok"
		if err := check(ctx); err != nil {
			s.logger.Warn("dependency not ready", slog.String("component", name), slog.Any("error", err))
			components[name] = "error"
			ready = false
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}

func (s *Server) recoveryHandler(c *gin.Context, recovered any) {
	s.logger.Error("panic recovered",
		slog.Any("panic", recovered),
		slog.String("path", c.Request.URL.Path),
		slog.String("request_id", requestid.Get(c)))
	httputil.HandleErrorGin(c, fmt.Errorf("panic: %v", recovered), nil)
	c.Abort()
}
