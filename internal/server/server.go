package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/storage"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	backend     storage.Storage
	sessions    *registry
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	exporter    *export.Exporter
}

// Config holds server configuration
type Config struct {
	Port       int
	Storage    storage.Options
	ChromePath string
	Verbose    bool
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	backend, err := storage.Open(context.Background(), cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		backend.Close() //nolint:errcheck
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	exporter := export.NewExporter(export.NewChromeRenderer(cfg.ChromePath, cfg.Verbose), cfg.Verbose)

	return newServer(
		backend,
		NewJWTService(jwtConfig),
		exporter,
		ratelimit.NewLimiter(ratelimit.LoadConfig()),
		cfg.Port,
	), nil
}

// newServer wires the routes over already constructed dependencies
func newServer(backend storage.Storage, jwtService *JWTService, exporter *export.Exporter, limiter *ratelimit.Limiter, port int) *Server {
	s := &Server{
		backend:     backend,
		sessions:    newRegistry(backend),
		rateLimiter: limiter,
		jwtService:  jwtService,
		exporter:    exporter,
	}

	auth := middleware.AuthMiddleware(jwtService.AsTokenValidator())
	authed := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /templates", s.handleTemplates)
	mux.HandleFunc("GET /skills/suggestions", s.handleSkillSuggestions)
	mux.HandleFunc("POST /sessions", s.handleCreateSession)

	// Session state and navigation
	mux.Handle("GET /session", authed(s.handleGetSession))
	mux.Handle("POST /session/advance", authed(s.handleAdvance))
	mux.Handle("POST /session/retreat", authed(s.handleRetreat))
	mux.Handle("POST /session/reset", authed(s.handleReset))

	// Single-valued fields
	mux.Handle("PUT /session/fields/{field}", authed(s.handleSetField))

	// Repeatable sections
	mux.Handle("POST /session/entries/{category}", authed(s.handleAddEntry))
	mux.Handle("DELETE /session/entries/{category}/{position}", authed(s.handleRemoveEntry))
	mux.Handle("PUT /session/entries/{category}/{position}/fields/{field}", authed(s.handleSetEntryField))
	mux.Handle("PUT /session/entries/{category}/order", authed(s.handleReorderEntries))
	mux.Handle("POST /session/entries/{category}/move", authed(s.handleMoveEntry))

	// Skills, extras, template and zoom
	mux.Handle("POST /session/skills", authed(s.handleAddSkill))
	mux.Handle("DELETE /session/skills/{skill}", authed(s.handleRemoveSkill))
	mux.Handle("PUT /session/extras/{extra}", authed(s.handleSetExtra))
	mux.Handle("PUT /session/template", authed(s.handleSelectTemplate))
	mux.Handle("POST /session/zoom/in", authed(s.handleZoomIn))
	mux.Handle("POST /session/zoom/out", authed(s.handleZoomOut))

	// Preview, export and live updates
	mux.Handle("GET /session/preview", authed(s.handlePreview))
	mux.Handle("GET /session/export/{format}", authed(s.handleExport))
	mux.Handle("GET /session/events", authed(s.handleEvents))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // event streams stay open
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	s.sessions.startCleanup(sessionSweepInterval, sessionIdleTTL)

	go func() {
		log.Printf("[server] starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[server] error: %v", err)
		}
	}()

	<-stop
	log.Println("[server] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return s.Close()
}

// Close stops the session sweep and releases the rate limiter and the storage backend
func (s *Server) Close() error {
	s.sessions.stopCleanup()
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if err := s.backend.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	log.Println("[server] stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[server] error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps err to a status code and writes it
func (s *Server) handleError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[server] request failed: %v", err)
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier from the request.
// It uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
