package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/capture"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/config"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/db"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/drafts"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/llm"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/rendering"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/server/middleware"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/server/ratelimit"
)

// Request body limits.
const (
	maxJSONBody   = 2 << 20
	maxUploadBody = 10 << 20
)

// ResumeStore is the slice of *db.DB the résumé endpoints need.
type ResumeStore interface {
	SaveResume(ctx context.Context, userID uuid.UUID, title, templateID string, data []byte) (*db.Resume, error)
	UpdateResume(ctx context.Context, id, userID uuid.UUID, title, templateID string, data []byte) (*db.Resume, error)
	GetResume(ctx context.Context, id, userID uuid.UUID) (*db.Resume, error)
	ListResumes(ctx context.Context, userID uuid.UUID) ([]db.ResumeSummary, error)
	DeleteResume(ctx context.Context, id, userID uuid.UUID) error
}

// DBClient is everything the server reads from the database.
type DBClient interface {
	UserStore
	ResumeStore
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          DBClient
	llm         llm.Client
	capturer    capture.Capturer
	drafts      drafts.Store
	templates   *rendering.Registry
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	origins     []string
	closers     []func()
}

// Config holds server configuration
type Config struct {
	Addr           string
	AllowedOrigins []string // empty or "*" allows any origin
	Auth           config.AuthConfig
	RateLimit      *ratelimit.Config // nil reads RATE_LIMIT_* from the environment
}

// Dependencies are the collaborators behind the endpoints. DB, LLM and
// Capturer may be nil; the endpoints that need them answer 503.
type Dependencies struct {
	DB        DBClient
	LLM       llm.Client
	Capturer  capture.Capturer
	Drafts    drafts.Store        // defaults to an in-memory store
	Templates *rendering.Registry // defaults to rendering.DefaultRegistry()
}

// New creates a new server instance
func New(cfg Config, deps Dependencies) (*Server, error) {
	if err := cfg.Auth.JWT.Validate(); err != nil {
		return nil, fmt.Errorf("invalid JWT config: %w", err)
	}
	if cfg.Addr == "" {
		cfg.Addr = config.DefaultAddr
	}

	s := &Server{
		db:        deps.DB,
		llm:       deps.LLM,
		capturer:  deps.Capturer,
		drafts:    deps.Drafts,
		templates: deps.Templates,
		origins:   cfg.AllowedOrigins,
	}
	if s.drafts == nil {
		s.drafts = drafts.NewMemoryStore()
	}
	if s.templates == nil {
		s.templates = rendering.DefaultRegistry()
	}

	rateConfig := cfg.RateLimit
	if rateConfig == nil {
		rateConfig = ratelimit.LoadConfig()
	}
	s.rateLimiter = ratelimit.NewLimiter(rateConfig)

	passwordConfig := cfg.Auth.Password
	s.userService = NewUserService(deps.DB, &passwordConfig)
	jwtConfig := cfg.Auth.JWT
	s.jwtService = NewJWTService(&jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // model calls and PDF capture
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

func (s *Server) routes() *http.ServeMux {
	protected := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	auth := func(h http.HandlerFunc) http.Handler { return protected(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /templates", s.handleListTemplates)

	// Rendering needs no account: the builder previews unsaved documents.
	mux.HandleFunc("POST /render/preview", s.handleRenderPreview)
	mux.HandleFunc("POST /render/html", s.handleRenderHTML)

	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.Handle("GET /auth/me", auth(s.authHandler.Me))
	mux.Handle("PUT /auth/password", auth(s.authHandler.UpdatePassword))

	mux.Handle("POST /resume/upload", auth(s.handleUpload))
	mux.Handle("POST /resume/optimize", auth(s.handleOptimize))
	mux.Handle("POST /resume/save", auth(s.handleSaveResume))
	mux.Handle("GET /resume/my", auth(s.handleListResumes))
	mux.Handle("GET /resume/{id}", auth(s.handleGetResume))
	mux.Handle("PUT /resume/{id}", auth(s.handleUpdateResume))
	mux.Handle("DELETE /resume/{id}", auth(s.handleDeleteResume))
	mux.Handle("GET /resume/{id}/html", auth(s.handleResumeHTML))
	mux.Handle("GET /resume/{id}/pdf", auth(s.handleResumePDF))

	mux.Handle("GET /drafts", auth(s.handleLoadDraft))
	mux.Handle("PUT /drafts", auth(s.handleSaveDraft))

	return mux
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// OnShutdown registers fn to run after the server stops, in reverse order.
func (s *Server) OnShutdown(fn func()) {
	s.closers = append(s.closers, fn)
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.close()
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("[server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.close()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Println("[server] stopped")
	return nil
}

func (s *Server) close() {
	s.rateLimiter.Stop()
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := s.allowedOrigin(r.Header.Get("Origin")); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			if origin != "*" {
				w.Header().Add("Vary", "Origin")
			}
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, Retry-After")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allowedOrigin returns the Access-Control-Allow-Origin value for a request
// origin, or "" when the origin is not allowed.
func (s *Server) allowedOrigin(origin string) string {
	if len(s.origins) == 0 || slices.Contains(s.origins, "*") {
		return "*"
	}
	if origin != "" && slices.Contains(s.origins, origin) {
		return origin
	}
	return ""
}

// statusRecorder remembers the status code for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[%s] %s %d in %v (%s)", r.Method, r.URL.Path, rec.status, time.Since(start), r.RemoteAddr)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth reports the server and its optional collaborators.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status":    "ok",
		"templates": len(s.templates.List()),
		"database":  "unavailable",
		"ai":        s.llm != nil,
		"pdf":       s.capturer != nil,
	}
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.Ping(ctx); err != nil {
			log.Printf("[server] health: database ping failed: %v", err)
			resp["database"] = "error"
			resp["status"] = "degraded"
		} else {
			resp["database"] = "ok"
		}
	}
	jsonResponse(w, http.StatusOK, resp)
}

// extractClientID extracts the client identifier from the request.
// X-Forwarded-For is ignored because it can be spoofed without a trusted proxy.
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
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	log.Printf("[rate-limit] limit exceeded: Limit=%d Remaining=%d", info.Limit, info.Remaining)
	jsonResponse(w, http.StatusTooManyRequests, response)
}

// jsonResponse writes a JSON response
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[server] error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}
