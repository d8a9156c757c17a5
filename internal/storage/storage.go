package storage

import (
	"context"

	"github.com/khalifa1337/newsboard/internal/models"
)

// Store is the persistence boundary. Two implementations exist: Postgres for
// deployments and an in-memory one for tests and local runs.
//
// Lookups return models.ErrNotFound for missing rows; CreateNote and
// UpdateNote return models.ErrSlugTaken on slug collisions.
type Store interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	UserByID(ctx context.Context, id int64) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)

	CreateSession(ctx context.Context, s *models.Session) error
	SessionByID(ctx context.Context, id string) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteUserSessions(ctx context.Context, userID int64) error

	CreateNews(ctx context.Context, n *models.News) (int64, error)
	NewsByID(ctx context.Context, id int64) (*models.News, error)
	// ListNews returns at most limit items, newest first.
	ListNews(ctx context.Context, limit int) ([]models.News, error)

	CreateComment(ctx context.Context, c *models.Comment) (int64, error)
	CommentByID(ctx context.Context, id int64) (*models.Comment, error)
	UpdateComment(ctx context.Context, id int64, text string) error
	DeleteComment(ctx context.Context, id int64) error
	// ListComments returns the comments of one news item, oldest first.
	ListComments(ctx context.Context, newsID int64) ([]models.Comment, error)
	CountComments(ctx context.Context) (int, error)

	CreateNote(ctx context.Context, n *models.Note) (int64, error)
	NoteBySlug(ctx context.Context, slug string) (*models.Note, error)
	UpdateNote(ctx context.Context, n *models.Note) error
	DeleteNote(ctx context.Context, id int64) error
	// ListNotes returns only the given author's notes.
	ListNotes(ctx context.Context, authorID int64) ([]models.Note, error)
	CountNotes(ctx context.Context) (int, error)

	Close() error
}
