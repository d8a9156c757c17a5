package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khalifa1337/newsboard/internal/app"
	"github.com/khalifa1337/newsboard/internal/auth"
	"github.com/khalifa1337/newsboard/internal/models"
	"github.com/khalifa1337/newsboard/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	cfg := app.Default()
	logger := zap.NewNop()
	svc := auth.NewService(store, logger, time.Hour)
	return NewServer(store, svc, cfg, logger), store
}

func createUser(t *testing.T, store *storage.MemoryStore, username string) *models.User {
	t.Helper()
	u := &models.User{Email: username + "@example.com", Username: username}
	if _, err := store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("create user %q: %v", username, err)
	}
	return u
}

// loginAs plants a session directly in the store and returns the cookie,
// sidestepping the login form the way force_login-style helpers do.
func loginAs(t *testing.T, store *storage.MemoryStore, u *models.User) *http.Cookie {
	t.Helper()
	sess := &models.Session{
		ID:        uuid.New().String(),
		UserID:    u.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := store.CreateSession(context.Background(), sess); err != nil {
		t.Fatalf("create session: %v", err)
	}
	return &http.Cookie{Name: CookieName, Value: sess.ID}
}

func seedNews(t *testing.T, store *storage.MemoryStore) *models.News {
	t.Helper()
	n := &models.News{Title: "Headline", Text: "News body"}
	if _, err := store.CreateNews(context.Background(), n); err != nil {
		t.Fatalf("create news: %v", err)
	}
	return n
}

func seedComment(t *testing.T, store *storage.MemoryStore, news *models.News, author *models.User, text string) *models.Comment {
	t.Helper()
	c := &models.Comment{NewsID: news.ID, AuthorID: author.ID, Text: text}
	if _, err := store.CreateComment(context.Background(), c); err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return c
}

func seedNote(t *testing.T, store *storage.MemoryStore, author *models.User, title, slugVal string) *models.Note {
	t.Helper()
	n := &models.Note{AuthorID: author.ID, Title: title, Text: "Note body", Slug: slugVal}
	if _, err := store.CreateNote(context.Background(), n); err != nil {
		t.Fatalf("create note: %v", err)
	}
	return n
}

// get performs a GET request, optionally authenticated.
func get(t *testing.T, srv *Server, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

// postForm performs a form POST, optionally authenticated.
func postForm(t *testing.T, srv *Server, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}

func wantRedirect(t *testing.T, rec *httptest.ResponseRecorder, target string) {
	t.Helper()
	if rec.Code != http.StatusFound && rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want redirect; body: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != target {
		t.Fatalf("redirect target = %q, want %q", got, target)
	}
}
