package httpx

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/khalifa1337/newsboard/internal/app"
	"github.com/khalifa1337/newsboard/internal/auth"
	"github.com/khalifa1337/newsboard/internal/metrics"
	"github.com/khalifa1337/newsboard/internal/storage"
)

type Server struct {
	store storage.Store
	auth  *auth.Service
	cfg   app.Config
	log   *zap.Logger
	mux   *http.ServeMux
}

func NewServer(store storage.Store, authSvc *auth.Service, cfg app.Config, log *zap.Logger) *Server {
	s := &Server{store: store, auth: authSvc, cfg: cfg, log: log, mux: http.NewServeMux()}

	public := func(h http.HandlerFunc) http.Handler {
		return s.withSession(h)
	}
	private := func(h http.HandlerFunc) http.Handler {
		return s.withSession(s.requireAuth(h))
	}

	// news
	s.mux.Handle("GET /{$}", public(s.handleHome))
	s.mux.Handle("GET /news/{id}", public(s.handleNewsDetail))
	s.mux.Handle("POST /news/{id}", private(s.handleCommentCreate))
	s.mux.Handle("GET /comment/{id}/edit", private(s.handleCommentEditPage))
	s.mux.Handle("POST /comment/{id}/edit", private(s.handleCommentEdit))
	s.mux.Handle("GET /comment/{id}/delete", private(s.handleCommentDeletePage))
	s.mux.Handle("POST /comment/{id}/delete", private(s.handleCommentDelete))

	// notes
	s.mux.Handle("GET /notes", private(s.handleNoteList))
	s.mux.Handle("GET /notes/add", private(s.handleNoteAddPage))
	s.mux.Handle("POST /notes/add", private(s.handleNoteAdd))
	s.mux.Handle("GET /notes/done", private(s.handleNoteDone))
	s.mux.Handle("GET /notes/{slug}", private(s.handleNoteDetail))
	s.mux.Handle("GET /notes/{slug}/edit", private(s.handleNoteEditPage))
	s.mux.Handle("POST /notes/{slug}/edit", private(s.handleNoteEdit))
	s.mux.Handle("GET /notes/{slug}/delete", private(s.handleNoteDeletePage))
	s.mux.Handle("POST /notes/{slug}/delete", private(s.handleNoteDelete))
	s.mux.Handle("DELETE /notes/{slug}/delete", private(s.handleNoteDelete))

	// auth
	s.mux.Handle("GET /auth/login", public(s.handleLoginPage))
	s.mux.Handle("POST /auth/login", public(s.handleLogin))
	s.mux.Handle("GET /auth/signup", public(s.handleSignupPage))
	s.mux.Handle("POST /auth/signup", public(s.handleSignup))
	s.mux.Handle("GET /auth/logout", public(s.handleLogout))

	if cfg.Metrics.Enabled {
		s.mux.Handle("GET /metrics", metrics.Handler())
	}

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.mux.ServeHTTP(w, r) }

// Handler wraps the mux with the operational middleware for real serving.
// Tests hit ServeHTTP directly.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.cfg.Metrics.Enabled {
		h = WithMetrics(h)
	}
	return WithAccessLog(s.log, WithTimeout(h))
}

// currentUser loads the authenticated user for rendering, if any.
func (s *Server) currentUser(r *http.Request) *string {
	uid, ok := auth.UserIDFrom(r.Context())
	if !ok {
		return nil
	}
	u, err := s.store.UserByID(r.Context(), uid)
	if err != nil {
		return nil
	}
	return &u.Username
}
