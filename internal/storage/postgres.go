package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/khalifa1337/newsboard/internal/models"
)

const pgUniqueViolation = "23505"

// PostgresStore implements Store on top of database/sql with the pgx driver.
type PostgresStore struct {
	db  *sql.DB
	log *zap.Logger
}

func NewPostgresStore(databaseURL string, log *zap.Logger) (*PostgresStore, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("connected to postgres")
	return &PostgresStore{db: db, log: log}, nil
}

func (s *PostgresStore) Close() error { return s.db.Close() }

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// Users

func (s *PostgresStore) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	query := `
		INSERT INTO users (email, username, password_hash, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`
	err := s.db.QueryRowContext(ctx, query, u.Email, u.Username, u.PasswordHash).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return u.ID, nil
}

func (s *PostgresStore) userBy(ctx context.Context, field string, value any) (*models.User, error) {
	query, args, err := squirrel.
		Select("id", "email", "username", "password_hash", "created_at").
		From("users").
		Where(squirrel.Eq{field: value}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	u := &models.User{}
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by %s: %w", field, err)
	}
	return u, nil
}

func (s *PostgresStore) UserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userBy(ctx, "id", id)
}

func (s *PostgresStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userBy(ctx, "email", email)
}

func (s *PostgresStore) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.userBy(ctx, "username", username)
}

// Sessions

func (s *PostgresStore) CreateSession(ctx context.Context, sess *models.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	if _, err := s.db.ExecContext(ctx, query, sess.ID, sess.UserID, sess.ExpiresAt); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (s *PostgresStore) SessionByID(ctx context.Context, id string) (*models.Session, error) {
	sess := &models.Session{}
	query := `SELECT id, user_id, expires_at, created_at FROM sessions WHERE id = $1`
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&sess.ID, &sess.UserID, &sess.ExpiresAt, &sess.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return sess, nil
}

func (s *PostgresStore) DeleteSession(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteUserSessions(ctx context.Context, userID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete sessions for user %d: %w", userID, err)
	}
	return nil
}

// News

func (s *PostgresStore) CreateNews(ctx context.Context, n *models.News) (int64, error) {
	query := `
		INSERT INTO news (title, text, date)
		VALUES ($1, $2, COALESCE(NULLIF($3::timestamptz, '0001-01-01'::timestamptz), NOW()))
		RETURNING id, date
	`
	err := s.db.QueryRowContext(ctx, query, n.Title, n.Text, n.Date).Scan(&n.ID, &n.Date)
	if err != nil {
		return 0, fmt.Errorf("failed to create news: %w", err)
	}
	return n.ID, nil
}

func (s *PostgresStore) NewsByID(ctx context.Context, id int64) (*models.News, error) {
	n := &models.News{}
	query := `SELECT id, title, text, date FROM news WHERE id = $1`
	err := s.db.QueryRowContext(ctx, query, id).Scan(&n.ID, &n.Title, &n.Text, &n.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get news %d: %w", id, err)
	}
	return n, nil
}

func (s *PostgresStore) ListNews(ctx context.Context, limit int) ([]models.News, error) {
	builder := squirrel.
		Select("id", "title", "text", "date").
		From("news").
		OrderBy("date DESC", "id").
		PlaceholderFormat(squirrel.Dollar)
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query news: %w", err)
	}
	defer rows.Close()

	var out []models.News
	for rows.Next() {
		var n models.News
		if err := rows.Scan(&n.ID, &n.Title, &n.Text, &n.Date); err != nil {
			return nil, fmt.Errorf("failed to scan news: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Comments

func (s *PostgresStore) CreateComment(ctx context.Context, c *models.Comment) (int64, error) {
	query := `
		INSERT INTO comments (news_id, author_id, text, created_at)
		VALUES ($1, $2, $3, COALESCE(NULLIF($4::timestamptz, '0001-01-01'::timestamptz), NOW()))
		RETURNING id, created_at
	`
	err := s.db.QueryRowContext(ctx, query, c.NewsID, c.AuthorID, c.Text, c.CreatedAt).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to create comment: %w", err)
	}
	return c.ID, nil
}

func (s *PostgresStore) CommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	c := &models.Comment{}
	query := `
		SELECT c.id, c.news_id, c.author_id, u.username, c.text, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.id = $1
	`
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.NewsID, &c.AuthorID, &c.Author, &c.Text, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment %d: %w", id, err)
	}
	return c, nil
}

func (s *PostgresStore) UpdateComment(ctx context.Context, id int64, text string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE comments SET text = $1 WHERE id = $2`, text, id)
	if err != nil {
		return fmt.Errorf("failed to update comment %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteComment(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListComments(ctx context.Context, newsID int64) ([]models.Comment, error) {
	query, args, err := squirrel.
		Select("c.id", "c.news_id", "c.author_id", "u.username", "c.text", "c.created_at").
		From("comments c").
		Join("users u ON u.id = c.author_id").
		Where(squirrel.Eq{"c.news_id": newsID}).
		OrderBy("c.created_at", "c.id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var out []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.NewsID, &c.AuthorID, &c.Author, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountComments(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return n, nil
}

// Notes

func (s *PostgresStore) CreateNote(ctx context.Context, n *models.Note) (int64, error) {
	query := `
		INSERT INTO notes (author_id, title, text, slug)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query, n.AuthorID, n.Title, n.Text, n.Slug).Scan(&n.ID)
	if isUniqueViolation(err) {
		return 0, models.ErrSlugTaken
	}
	if err != nil {
		return 0, fmt.Errorf("failed to create note: %w", err)
	}
	return n.ID, nil
}

func (s *PostgresStore) NoteBySlug(ctx context.Context, slug string) (*models.Note, error) {
	n := &models.Note{}
	query := `SELECT id, author_id, title, text, slug FROM notes WHERE slug = $1`
	err := s.db.QueryRowContext(ctx, query, slug).
		Scan(&n.ID, &n.AuthorID, &n.Title, &n.Text, &n.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note %q: %w", slug, err)
	}
	return n, nil
}

func (s *PostgresStore) UpdateNote(ctx context.Context, n *models.Note) error {
	query := `UPDATE notes SET title = $1, text = $2, slug = $3 WHERE id = $4`
	res, err := s.db.ExecContext(ctx, query, n.Title, n.Text, n.Slug, n.ID)
	if isUniqueViolation(err) {
		return models.ErrSlugTaken
	}
	if err != nil {
		return fmt.Errorf("failed to update note %d: %w", n.ID, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteNote(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListNotes(ctx context.Context, authorID int64) ([]models.Note, error) {
	query, args, err := squirrel.
		Select("id", "author_id", "title", "text", "slug").
		From("notes").
		Where(squirrel.Eq{"author_id": authorID}).
		OrderBy("id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var out []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.AuthorID, &n.Title, &n.Text, &n.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountNotes(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return n, nil
}
