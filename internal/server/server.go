package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/Bossforge_Go/internal/auth"
	"github.com/osse101/Bossforge_Go/internal/catalog"
	"github.com/osse101/Bossforge_Go/internal/database"
	"github.com/osse101/Bossforge_Go/internal/handler"
	"github.com/osse101/Bossforge_Go/internal/leaderboard"
	"github.com/osse101/Bossforge_Go/internal/logger"
	"github.com/osse101/Bossforge_Go/internal/metrics"
	"github.com/osse101/Bossforge_Go/internal/player"
)

type Server struct {
	httpServer *http.Server
}

// Dependencies groups the services the HTTP surface is built on. Board may be
// nil when the leaderboard is disabled.
type Dependencies struct {
	DBPool         database.Pool
	Version        string
	TrustedProxies []string
	Auth           auth.Service
	Players        player.Service
	Catalog        catalog.Service
	Board          leaderboard.Board
}

// NewServer creates a new Server instance
func NewServer(port int, deps Dependencies) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(deps),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// NewRouter builds the routed handler with the full middleware stack
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(SecurityLoggingMiddleware(deps.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBytes))
	r.Use(metrics.Middleware)
	r.Use(AuthMiddleware(deps.Auth, deps.TrustedProxies, detector))

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DBPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion(deps.Version))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/auth/login", handler.HandleLogin(deps.Auth))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/players", func(r chi.Router) {
			r.Post("/", handler.HandleRegister(deps.Players))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", handler.HandleGetPlayer(deps.Players))
				r.Get("/inventory", handler.HandleGetInventory(deps.Players))
				r.Post("/inventory", handler.HandleAcquireItem(deps.Players))
				r.Delete("/inventory/{itemID}", handler.HandleRemoveItem(deps.Players))
				r.Get("/achievements", handler.HandleListAchievements(deps.Players))
				r.Get("/battles", handler.HandleListBattles(deps.Players))
				r.Post("/phases/{phaseID}/complete", handler.HandleCompletePhase(deps.Players))
			})
		})

		r.Post("/battles", handler.HandleRecordBattle(deps.Players))

		r.Route("/admin", func(r chi.Router) {
			r.Patch("/players/{id}", handler.HandleOverride(deps.Players))
		})

		// Catalog routes
		catalogHandlers := handler.NewCatalogHandlers(deps.Catalog)
		r.Route("/bosses", func(r chi.Router) {
			r.Get("/", catalogHandlers.ListBosses())
			r.Post("/", catalogHandlers.CreateBoss())
			r.Get("/{id}", catalogHandlers.GetBoss())
		})
		r.Route("/phases", func(r chi.Router) {
			r.Get("/", catalogHandlers.ListPhases())
			r.Post("/", catalogHandlers.CreatePhase())
			r.Get("/{id}", catalogHandlers.GetPhase())
		})
		r.Route("/rarities", func(r chi.Router) {
			r.Get("/", catalogHandlers.ListRarities())
			r.Post("/", catalogHandlers.CreateRarity())
			r.Get("/{id}", catalogHandlers.GetRarity())
		})
		r.Route("/items", func(r chi.Router) {
			r.Get("/", catalogHandlers.ListItems())
			r.Post("/", catalogHandlers.CreateItem())
			r.Get("/{id}", catalogHandlers.GetItem())
			r.Put("/{id}", catalogHandlers.UpdateItem())
		})
		r.Route("/achievements", func(r chi.Router) {
			r.Get("/", catalogHandlers.ListAchievements())
			r.Post("/", catalogHandlers.CreateAchievement())
			r.Get("/{id}", catalogHandlers.GetAchievement())
			r.Put("/{id}", catalogHandlers.UpdateAchievement())
			r.Delete("/{id}", catalogHandlers.DeleteAchievement())
		})

		r.Get("/leaderboard", handler.HandleLeaderboard(deps.Board))
		r.Get("/leaderboard/{id}", handler.HandleLeaderboardRank(deps.Board))
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAccessToken) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
