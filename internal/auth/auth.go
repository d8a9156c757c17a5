package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/khalifa1337/newsboard/internal/models"
	"github.com/khalifa1337/newsboard/internal/storage"
)

var (
	ErrEmailTaken    = errors.New("email already taken")
	ErrUsernameTaken = errors.New("username already taken")
	ErrInvalidLogin  = errors.New("invalid email or password")
	ErrNoSession     = errors.New("session not found")
	ErrWeakPassword  = errors.New("password must be at least 6 characters")
)

// ----------------------------
// Context helpers (for middleware and handlers)
// ----------------------------

type ctxKeyUserID struct{}

func WithUserID(ctx context.Context, uid int64) context.Context {
	return context.WithValue(ctx, ctxKeyUserID{}, uid)
}

func UserIDFrom(ctx context.Context) (int64, bool) {
	v := ctx.Value(ctxKeyUserID{})
	if v == nil {
		return 0, false
	}
	id, _ := v.(int64)
	return id, id != 0
}

// Service handles registration, login and session resolution on top of the
// storage layer.
type Service struct {
	store    storage.Store
	log      *zap.Logger
	lifetime time.Duration
}

func NewService(store storage.Store, log *zap.Logger, lifetime time.Duration) *Service {
	return &Service{store: store, log: log, lifetime: lifetime}
}

// Register creates a user with a bcrypt password hash. Email comparison is
// case-insensitive; duplicates are rejected before insert.
func (s *Service) Register(ctx context.Context, email, username, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	username = strings.TrimSpace(username)

	if email == "" || username == "" || password == "" {
		return nil, errors.New("email, username and password are required")
	}
	if len(password) < 6 {
		return nil, ErrWeakPassword
	}

	if _, err := s.store.UserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	if _, err := s.store.UserByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{Email: email, Username: username, PasswordHash: string(hash)}
	if _, err := s.store.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.Int64("uid", u.ID), zap.String("username", username))
	return u, nil
}

// Login verifies credentials and mints a fresh session, replacing any
// previous sessions of the user.
func (s *Service) Login(ctx context.Context, email, password string) (string, int64, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	u, err := s.store.UserByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		s.log.Debug("login failed, no such user", zap.String("email", email))
		return "", 0, ErrInvalidLogin
	}
	if err != nil {
		return "", 0, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.log.Debug("login failed, bad password", zap.String("email", email))
		return "", 0, ErrInvalidLogin
	}

	if err := s.store.DeleteUserSessions(ctx, u.ID); err != nil {
		return "", 0, err
	}

	sess := &models.Session{
		ID:        uuid.New().String(),
		UserID:    u.ID,
		ExpiresAt: time.Now().Add(s.lifetime),
	}
	if err := s.store.CreateSession(ctx, sess); err != nil {
		return "", 0, err
	}

	s.log.Info("login ok", zap.Int64("uid", u.ID))
	return sess.ID, u.ID, nil
}

func (s *Service) Logout(ctx context.Context, sid string) error {
	return s.store.DeleteSession(ctx, sid)
}

// UserFromSession resolves a session cookie value to a user id.
// Expired sessions count as absent.
func (s *Service) UserFromSession(ctx context.Context, sid string) (int64, error) {
	sess, err := s.store.SessionByID(ctx, sid)
	if errors.Is(err, models.ErrNotFound) {
		return 0, ErrNoSession
	}
	if err != nil {
		return 0, err
	}
	if !sess.ExpiresAt.After(time.Now()) {
		return 0, ErrNoSession
	}
	return sess.UserID, nil
}

// Lifetime reports the configured session duration, used for cookie expiry.
func (s *Service) Lifetime() time.Duration { return s.lifetime }
