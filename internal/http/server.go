// Package http exposes the ledger over a JSON API. Handlers are thin: they
// parse, call the service or the pure stats/report functions, and encode.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"messbook/internal/assistant"
	"messbook/internal/log"
	"messbook/internal/services"
)

type Server struct {
	http.Server
	svc         *services.LedgerService
	parser      assistant.Parser // nil when no assistant is configured
	rateLimiter *rateLimiter

	shutdownOnce sync.Once
}

// NewServer configures all routes and returns a ready-to-run server.
func NewServer(addr string, svc *services.LedgerService, parser assistant.Parser, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		svc:         svc,
		parser:      parser,
		rateLimiter: newRateLimiter(),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /members", s.withSecurityHeaders(s.handleListMembers))
	mux.HandleFunc("POST /members", s.withSecurityHeaders(s.handleAddMember))
	mux.HandleFunc("DELETE /members/{id}", s.withSecurityHeaders(s.handleDeleteMember))

	mux.HandleFunc("GET /deposits", s.withSecurityHeaders(s.handleListDeposits))
	mux.HandleFunc("POST /deposits", s.withSecurityHeaders(s.handleAddDeposit))
	mux.HandleFunc("DELETE /deposits/{id}", s.withSecurityHeaders(s.handleDeleteDeposit))

	mux.HandleFunc("GET /expenses", s.withSecurityHeaders(s.handleListExpenses))
	mux.HandleFunc("POST /expenses", s.withSecurityHeaders(s.handleAddExpense))
	mux.HandleFunc("DELETE /expenses/{id}", s.withSecurityHeaders(s.handleDeleteExpense))

	mux.HandleFunc("GET /categories", s.withSecurityHeaders(s.handleListCategories))
	mux.HandleFunc("POST /categories", s.withSecurityHeaders(s.handleAddCategory))
	mux.HandleFunc("DELETE /categories/{name}", s.withSecurityHeaders(s.handleDeleteCategory))
	mux.HandleFunc("POST /categories/rename", s.withSecurityHeaders(s.handleRenameCategory))

	mux.HandleFunc("GET /meals", s.withSecurityHeaders(s.handleMealDay))
	mux.HandleFunc("POST /meals/toggle", s.withSecurityHeaders(s.handleToggleMeal))

	mux.HandleFunc("GET /stats", s.withSecurityHeaders(s.handleStats))
	mux.HandleFunc("GET /balances", s.withSecurityHeaders(s.handleBalances))
	mux.HandleFunc("GET /balances/{memberID}", s.withSecurityHeaders(s.handleMemberBalance))
	mux.HandleFunc("GET /report", s.withSecurityHeaders(s.handleReport))

	mux.HandleFunc("POST /assistant/parse", s.withSecurityHeaders(s.handleAssistantParse))
	mux.HandleFunc("POST /assistant/confirm", s.withSecurityHeaders(s.handleAssistantConfirm))

	mux.HandleFunc("GET /settings/language", s.withSecurityHeaders(s.handleGetLanguage))
	mux.HandleFunc("PUT /settings/language", s.withSecurityHeaders(s.handleSetLanguage))

	handler := log.Middleware(logger.WithComponent(log.ComponentHTTP))(
		log.RequestIDMiddleware(requestIDFromRequest)(mux))

	s.Server = http.Server{
		Addr:    addr,
		Handler: handler,
	}
	return s
}

// Shutdown stops the rate limiter cleanup goroutine before draining the
// HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withSecurityHeaders adds security headers, POST rate limiting and request
// logging to a handler.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ip := clientIP(r)
		logger := log.FromContext(r.Context())

		logger.InfoContext(r.Context(), "Request started",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldClientIP, ip)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(ip) {
			logger.WarnContext(r.Context(), "Rate limit exceeded",
				log.FieldClientIP, ip, log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		logger.InfoContext(r.Context(), "Request completed",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatus, rw.statusCode,
			log.FieldDuration, time.Since(start).Milliseconds(),
			log.FieldClientIP, ip)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
