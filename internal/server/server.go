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

	"github.com/tervalon/delveforge/internal/affix"
	"github.com/tervalon/delveforge/internal/catalog"
	"github.com/tervalon/delveforge/internal/database"
	"github.com/tervalon/delveforge/internal/dungeon"
	"github.com/tervalon/delveforge/internal/handler"
	"github.com/tervalon/delveforge/internal/logger"
	"github.com/tervalon/delveforge/internal/loot"
	"github.com/tervalon/delveforge/internal/metrics"
)

type Server struct {
	httpServer     *http.Server
	dbPool         database.Pool
	lootService    loot.Service
	dungeonService dungeon.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, lootService loot.Service, dungeonService dungeon.Service, index *catalog.Index, affixes *affix.Database) *Server {
	r := chi.NewRouter()

	// Middleware stack, outermost to innermost
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(RateLimitMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		lootHandler := handler.NewLootHandler(lootService)
		r.Route("/loot", func(r chi.Router) {
			r.Post("/generate", lootHandler.HandleGenerateLoot)
		})

		catalogHandler := handler.NewCatalogHandler(index, affixes)
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/templates", catalogHandler.HandleListTemplates)
			r.Get("/affixes", catalogHandler.HandleListAffixes)
		})

		mapHandler := handler.NewMapHandler(dungeonService)
		r.Route("/maps", func(r chi.Router) {
			r.Post("/", mapHandler.HandleUploadMap)
			r.Get("/", mapHandler.HandleListMaps)
			r.Get("/{mapID}", mapHandler.HandleGetMap)
			r.Delete("/{mapID}", mapHandler.HandleDeleteMap)
			r.Post("/{mapID}/populate", mapHandler.HandlePopulateMap)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:         dbPool,
		lootService:    lootService,
		dungeonService: dungeonService,
	}
}

// Handler exposes the assembled router, used by tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
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
		statusCode:     http.StatusOK,
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

		// Health checks and metrics scrapes would drown out real traffic.
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
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
