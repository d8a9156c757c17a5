package httpx

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/khalifa1337/newsboard/internal/auth"
	"github.com/khalifa1337/newsboard/internal/metrics"
)

const (
	CookieName = "session_id"
	LoginPath  = "/auth/login"
)

// withSession resolves the session cookie to a user id in the request
// context. Invalid or expired sessions leave the request anonymous.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
			if uid, err2 := s.auth.UserFromSession(r.Context(), c.Value); err2 == nil {
				r = r.WithContext(auth.WithUserID(r.Context(), uid))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requireAuth sends anonymous callers to the login page with a next
// parameter carrying the originally requested URI, query string included.
// Slashes stay literal so a plain path survives the round trip unchanged.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.UserIDFrom(r.Context()); !ok {
			nextURI := strings.ReplaceAll(url.QueryEscape(r.URL.RequestURI()), "%2F", "/")
			http.Redirect(w, r, LoginPath+"?next="+nextURI, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRW struct {
	http.ResponseWriter
	status int
}

func (w *statusRW) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// WithAccessLog logs METHOD PATH -> STATUS (duration) for every request.
func WithAccessLog(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusRW{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.Duration("took", time.Since(start).Truncate(time.Millisecond)),
		)
	})
}

// WithMetrics counts requests by method, path and status.
func WithMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusRW{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		metrics.RequestsTotal.
			WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(sw.status)).
			Inc()
	})
}

// WithTimeout caps the whole request at 5s.
func WithTimeout(next http.Handler) http.Handler {
	return http.TimeoutHandler(next, 5*time.Second, "request timeout")
}
