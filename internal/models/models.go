package models

import (
	"errors"
	"time"
)

var (
	// ErrNotFound covers both missing records and records the requester does
	// not own. The two cases must stay indistinguishable to callers.
	ErrNotFound = errors.New("record not found")

	// ErrSlugTaken signals a note slug collision with an existing note.
	ErrSlugTaken = errors.New("slug already taken")
)

type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// News is created by an administrative process and is read-only to end users.
type News struct {
	ID    int64
	Title string
	Text  string
	Date  time.Time
}

type Comment struct {
	ID        int64
	NewsID    int64
	AuthorID  int64
	Author    string // username, filled on reads
	Text      string
	CreatedAt time.Time
}

// Note belongs to exactly one user. Slug is unique across all notes,
// not just per owner.
type Note struct {
	ID       int64
	AuthorID int64
	Title    string
	Text     string
	Slug     string
}
