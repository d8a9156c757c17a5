package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/khalifa1337/newsboard/internal/models"
)

// MemoryStore keeps everything in maps behind a RWMutex. It backs tests and
// the storage.use_memory config toggle.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[int64]*models.User
	sessions map[string]*models.Session
	news     map[int64]*models.News
	comments map[int64]*models.Comment
	notes    map[int64]*models.Note

	nextUserID    int64
	nextNewsID    int64
	nextCommentID int64
	nextNoteID    int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[int64]*models.User),
		sessions: make(map[string]*models.Session),
		news:     make(map[int64]*models.News),
		comments: make(map[int64]*models.Comment),
		notes:    make(map[int64]*models.Note),
	}
}

// Users

func (s *MemoryStore) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextUserID++
	u.ID = s.nextUserID
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	cp := *u
	s.users[u.ID] = &cp
	return u.ID, nil
}

func (s *MemoryStore) UserByID(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, ok := s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, models.ErrNotFound
}

func (s *MemoryStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *MemoryStore) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

// Sessions

func (s *MemoryStore) CreateSession(ctx context.Context, sess *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now()
	}
	cp := *sess
	s.sessions[sess.ID] = &cp
	return nil
}

func (s *MemoryStore) SessionByID(ctx context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sess, ok := s.sessions[id]; ok {
		cp := *sess
		return &cp, nil
	}
	return nil, models.ErrNotFound
}

func (s *MemoryStore) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) DeleteUserSessions(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, id)
		}
	}
	return nil
}

// News

func (s *MemoryStore) CreateNews(ctx context.Context, n *models.News) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextNewsID++
	n.ID = s.nextNewsID
	if n.Date.IsZero() {
		n.Date = time.Now()
	}
	cp := *n
	s.news[n.ID] = &cp
	return n.ID, nil
}

func (s *MemoryStore) NewsByID(ctx context.Context, id int64) (*models.News, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n, ok := s.news[id]; ok {
		cp := *n
		return &cp, nil
	}
	return nil, models.ErrNotFound
}

func (s *MemoryStore) ListNews(ctx context.Context, limit int) ([]models.News, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.News, 0, len(s.news))
	for _, n := range s.news {
		out = append(out, *n)
	}
	// newest first, id as the stable tie-breaker
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Comments

func (s *MemoryStore) CreateComment(ctx context.Context, c *models.Comment) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCommentID++
	c.ID = s.nextCommentID
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	cp := *c
	s.comments[c.ID] = &cp
	return c.ID, nil
}

func (s *MemoryStore) CommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.comments[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *c
	s.fillAuthor(&cp)
	return &cp, nil
}

func (s *MemoryStore) UpdateComment(ctx context.Context, id int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return models.ErrNotFound
	}
	c.Text = text
	return nil
}

func (s *MemoryStore) DeleteComment(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.comments, id)
	return nil
}

func (s *MemoryStore) ListComments(ctx context.Context, newsID int64) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Comment
	for _, c := range s.comments {
		if c.NewsID == newsID {
			cp := *c
			s.fillAuthor(&cp)
			out = append(out, cp)
		}
	}
	// oldest first, id as the stable tie-breaker
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) CountComments(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.comments), nil
}

func (s *MemoryStore) fillAuthor(c *models.Comment) {
	if u, ok := s.users[c.AuthorID]; ok {
		c.Author = u.Username
	}
}

// Notes

func (s *MemoryStore) CreateNote(ctx context.Context, n *models.Note) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.notes {
		if existing.Slug == n.Slug {
			return 0, models.ErrSlugTaken
		}
	}
	s.nextNoteID++
	n.ID = s.nextNoteID
	cp := *n
	s.notes[n.ID] = &cp
	return n.ID, nil
}

func (s *MemoryStore) NoteBySlug(ctx context.Context, slug string) (*models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, n := range s.notes {
		if n.Slug == slug {
			cp := *n
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *MemoryStore) UpdateNote(ctx context.Context, n *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.notes[n.ID]
	if !ok {
		return models.ErrNotFound
	}
	for _, other := range s.notes {
		if other.ID != n.ID && other.Slug == n.Slug {
			return models.ErrSlugTaken
		}
	}
	existing.Title = n.Title
	existing.Text = n.Text
	existing.Slug = n.Slug
	return nil
}

func (s *MemoryStore) DeleteNote(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.notes, id)
	return nil
}

func (s *MemoryStore) ListNotes(ctx context.Context, authorID int64) ([]models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Note
	for _, n := range s.notes {
		if n.AuthorID == authorID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) CountNotes(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.notes), nil
}

func (s *MemoryStore) Close() error {
	// nothing to close for in-memory storage
	return nil
}
