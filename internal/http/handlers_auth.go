package httpx

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/khalifa1337/newsboard/internal/auth"
)

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "login.html", map[string]any{
		"Title": "Log in",
		"Email": "",
		"Next":  r.URL.Query().Get("next"),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	next := r.FormValue("next")

	sid, _, err := s.auth.Login(r.Context(), email, password)
	if errors.Is(err, auth.ErrInvalidLogin) {
		s.render(w, http.StatusOK, "login.html", map[string]any{
			"Title": "Log in",
			"Error": "Invalid email or password",
			"Email": email,
			"Next":  next,
		})
		return
	}
	if err != nil {
		s.serverError(w, "login", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(s.auth.Lifetime()),
	})
	http.Redirect(w, r, safeNext(next), http.StatusSeeOther)
}

func (s *Server) handleSignupPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "signup.html", map[string]any{
		"Title":    "Sign up",
		"Email":    "",
		"UserName": "",
	})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	_, err := s.auth.Register(r.Context(), email, username, password)
	if err != nil {
		msg := "Could not sign up"
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			msg = "Email already taken"
		case errors.Is(err, auth.ErrUsernameTaken):
			msg = "Username already taken"
		case errors.Is(err, auth.ErrWeakPassword):
			msg = "Password must be at least 6 characters"
		}
		s.render(w, http.StatusOK, "signup.html", map[string]any{
			"Title":    "Sign up",
			"Error":    msg,
			"Email":    email,
			"UserName": username,
		})
		return
	}
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(CookieName); err == nil {
		_ = s.auth.Logout(r.Context(), c.Value)
		c.MaxAge = -1
		c.Path = "/"
		http.SetCookie(w, c)
	}
	s.render(w, http.StatusOK, "logged_out.html", map[string]any{
		"Title": "Logged out",
	})
}

// safeNext only honors local paths to keep the redirect on this site.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}
