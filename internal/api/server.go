package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/youto/internal/auth"
	"github.com/nao1215/youto/internal/config"
	"github.com/nao1215/youto/internal/resource"
	"github.com/nao1215/youto/internal/rowgateway"
	"github.com/nao1215/youto/pkg/middleware"
	"github.com/nao1215/youto/pkg/token"
)

// serviceName is reported by /health and prefixes the metric names.
const serviceName = "youto"

// shutdownTimeout bounds the drain of in-flight requests on shutdown.
const shutdownTimeout = 10 * time.Second

// Server is the youto HTTP server.
type Server struct {
	// router is the gin engine serving every route.
	router *gin.Engine
	// port is the listen port.
	port int
	// rows is the relational store.
	rows rowgateway.Gateway
	// tokens issues and verifies access tokens.
	tokens *token.Service
	// authenticator checks login credentials.
	authenticator *auth.Authenticator
	// metrics collects per-route request metrics.
	metrics *middleware.Metrics
	// loginLimiter throttles /login per client. Nil when disabled.
	loginLimiter *middleware.RateLimiter
	// gateWrites puts the access gate in front of every write route.
	gateWrites bool
	logger     *slog.Logger
}

// NewServer builds the server over rows. The schema is expected to exist.
func NewServer(cfg *config.Config, rows rowgateway.Gateway, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	passwords, err := auth.NewPasswordVerifier(cfg.Auth.PasswordScheme)
	if err != nil {
		return nil, fmt.Errorf("failed to set up password verification: %w", err)
	}

	tokens := token.NewService(cfg.Auth.TokenSecret, token.WithTTL(cfg.Auth.TokenTTL))

	var limiter *middleware.RateLimiter
	if cfg.Auth.LoginRateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateBurst)
	}

	metrics := middleware.NewMetrics(serviceName)

	router := gin.New()
	// client IPs come from the peer address; forwarding headers are not trusted
	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("failed to configure trusted proxies: %w", err)
	}
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestLog(logger))
	router.Use(metrics.Middleware())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	s := &Server{
		router:        router,
		port:          cfg.Server.Port,
		rows:          rows,
		tokens:        tokens,
		authenticator: auth.NewAuthenticator(rows, tokens, passwords),
		metrics:       metrics,
		loginLimiter:  limiter,
		gateWrites:    cfg.Auth.GateWrites,
		logger:        logger,
	}
	s.setupRoutes()

	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is done, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.loginLimiter != nil {
		go s.loginLimiter.Run(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// setupRoutes builds the route table.
func (s *Server) setupRoutes() {
	gate := middleware.JWTAuth(s.tokens)

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": serviceName})
	})
	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	if s.loginLimiter != nil {
		s.router.POST("/login", s.loginLimiter.Middleware(), s.handleLogin())
	} else {
		s.router.POST("/login", s.handleLogin())
	}

	for _, def := range definitions() {
		gates := resource.Gates{}
		if s.gateWrites {
			gates.Write = gate
		}
		// category listing is the one read guarded by default
		if def.Path == pathAPCategories {
			gates.List = gate
		}
		resource.New(def, s.rows, s.logger).Register(s.router, gates)
	}

	resource.NewReport(userTrackingReport, s.rows, s.logger).Register(s.router, nil)
	resource.NewReport(userTaskReport, s.rows, s.logger).Register(s.router, nil)
}
