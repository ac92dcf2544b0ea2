package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobad-assistant/internal/generation"
	"github.com/jonathan/jobad-assistant/internal/server/middleware"
	"github.com/jonathan/jobad-assistant/internal/server/ratelimit"
	"github.com/jonathan/jobad-assistant/internal/types"
)

// Server represents the HTTP server
type Server struct {
	httpServer    *http.Server
	generator     *generation.Generator
	style         types.StyleOptions
	params        generation.Params
	credentialErr error
	rateLimiter   *ratelimit.Limiter
	templates     *template.Template
	logger        *slog.Logger
}

// Config holds server configuration
type Config struct {
	Port      int
	Generator *generation.Generator
	// Style and Params are the values preselected in the form and used when API requests omit them.
	Style  types.StyleOptions
	Params generation.Params
	// CredentialErr is non-nil when the completion client could not be created at startup.
	CredentialErr error
	RateLimit     *ratelimit.Config
	Logger        *slog.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Generator == nil {
		return nil, errors.New("server requires a generator")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Params == (generation.Params{}) {
		cfg.Params = cfg.Generator.DefaultParams()
	}
	if cfg.Style.Tones == nil {
		cfg.Style = types.DefaultStyleOptions()
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		generator:     cfg.Generator,
		style:         cfg.Style,
		params:        cfg.Params,
		credentialErr: cfg.CredentialErr,
		rateLimiter:   ratelimit.NewLimiter(cfg.RateLimit),
		templates:     tmpl,
		logger:        cfg.Logger,
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      300 * time.Second, // Long timeout for model calls
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Handler returns the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleFormPage)
	mux.HandleFunc("POST /{$}", s.handleFormSubmit)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/generate/stream", s.handleGenerateStream)
	mux.HandleFunc("POST /export/{format}", s.handleExport)
	mux.HandleFunc("GET /api/options", s.handleOptions)
	mux.HandleFunc("GET /health", s.handleHealth)

	return middleware.RequestID(middleware.Logging(s.logger)(middleware.CORS(s.withRateLimit(mux))))
}

// Run serves on the configured port until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.rateLimiter.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server starting", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.logger.Info("server stopped")
	return err
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(extractClientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID uses the IP address from RemoteAddr.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitMessage is shown to throttled clients.
const rateLimitMessage = "Troppe richieste. Riprova più tardi."

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
// Form submissions get the form page back with the submitted values; API calls get JSON.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   rateLimitMessage,
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn("rate limit exceeded",
		"request_id", middleware.GetRequestID(r.Context()),
		"client", extractClientID(r),
		"path", r.URL.Path,
		"limit", info.Limit)

	if r.URL.Path == "/" {
		req, _ := s.readForm(r)
		data := s.newPageData(req)
		data.Error = rateLimitMessage
		s.renderPage(w, http.StatusTooManyRequests, data)
		return
	}
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// ErrorResponse is the JSON body of failed API calls.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, ErrorResponse{Error: message, Status: status})
}

// failure maps err onto its status and user message.
func (s *Server) failure(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", middleware.GetRequestID(r.Context()), "status", status, "error", err)
	}
	s.errorResponse(w, status, UserMessage(err))
}
