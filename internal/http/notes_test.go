package httpx

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/khalifa1337/newsboard/internal/forms"
)

func TestAnonymousCannotCreateNote(t *testing.T) {
	srv, store := newTestServer(t)

	rec := postForm(t, srv, "/notes/add",
		url.Values{"title": {"Title"}, "text": {"Text"}}, nil)

	wantStatus(t, rec, http.StatusFound)
	if n, _ := store.CountNotes(context.Background()); n != 0 {
		t.Fatalf("note count = %d, want 0", n)
	}
}

func TestAuthenticatedUserCanCreateNote(t *testing.T) {
	srv, store := newTestServer(t)
	author := createUser(t, store, "author")
	cookie := loginAs(t, store, author)

	rec := postForm(t, srv, "/notes/add",
		url.Values{"title": {"Title"}, "text": {"Text"}, "slug": {"test-create-slug"}}, cookie)

	wantRedirect(t, rec, "/notes/done")
	note, err := store.NoteBySlug(context.Background(), "test-create-slug")
	if err != nil {
		t.Fatalf("note lookup: %v", err)
	}
	if note.Title != "Title" || note.Text != "Text" {
		t.Fatalf("stored note = %+v", note)
	}
	if note.AuthorID != author.ID {
		t.Fatalf("note author = %d, want %d", note.AuthorID, author.ID)
	}
}

func TestNoteSlugDerivedFromTitle(t *testing.T) {
	srv, store := newTestServer(t)
	author := createUser(t, store, "author")
	cookie := loginAs(t, store, author)

	rec := postForm(t, srv, "/notes/add",
		url.Values{"title": {"Hello World"}, "text": {"Text"}}, cookie)

	wantRedirect(t, rec, "/notes/done")
	if _, err := store.NoteBySlug(context.Background(), "hello-world"); err != nil {
		t.Fatalf("derived slug not stored: %v", err)
	}
}

func TestDuplicateSlugRejected(t *testing.T) {
	srv, store := newTestServer(t)
	author := createUser(t, store, "author")
	cookie := loginAs(t, store, author)
	seedNote(t, store, author, "First", "test-slug")

	rec := postForm(t, srv, "/notes/add",
		url.Values{"title": {"Second"}, "text": {"Text"}, "slug": {"test-slug"}}, cookie)

	wantStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "test-slug"+forms.SlugTakenSuffix) {
		t.Fatalf("body does not name the conflicting slug; got: %s", rec.Body.String())
	}
	if n, _ := store.CountNotes(context.Background()); n != 1 {
		t.Fatalf("note count = %d, want 1", n)
	}
}

func TestDuplicateDerivedSlugRejected(t *testing.T) {
	srv, store := newTestServer(t)
	author := createUser(t, store, "author")
	cookie := loginAs(t, store, author)

	form := url.Values{"title": {"Hello World"}, "text": {"Text"}}
	wantRedirect(t, postForm(t, srv, "/notes/add", form, cookie), "/notes/done")

	rec := postForm(t, srv, "/notes/add", form, cookie)
	wantStatus(t, rec, http.StatusOK)
	if n, _ := store.CountNotes(context.Background()); n != 1 {
		t.Fatalf("note count = %d, want 1", n)
	}
}

func TestAuthorCanEditNote(t *testing.T) {
	srv, store := newTestServer(t)
	author := createUser(t, store, "author")
	cookie := loginAs(t, store, author)
	note := seedNote(t, store, author, "Title", "test-slug")

	rec := postForm(t, srv, "/notes/"+note.Slug+"/edit",
		url.Values{"title": {"Title"}, "text": {"Keeping watch."}, "slug": {note.Slug}}, cookie)

	wantRedirect(t, rec, "/notes/done")
	got, _ := store.NoteBySlug(context.Background(), note.Slug)
	if got.Text != "Keeping watch." {
		t.Fatalf("note text = %q", got.Text)
	}
}

func TestOtherUserCannotEditNote(t *testing.T) {
	srv, store := newTestServer(t)
	author := createUser(t, store, "author")
	reader := createUser(t, store, "reader")
	cookie := loginAs(t, store, reader)
	note := seedNote(t, store, author, "Title", "test-slug")

	rec := postForm(t, srv, "/notes/"+note.Slug+"/edit",
		url.Values{"title": {"X"}, "text": {"hijacked"}, "slug": {note.Slug}}, cookie)

	wantStatus(t, rec, http.StatusNotFound)
	got, _ := store.NoteBySlug(context.Background(), note.Slug)
	if got.Text != "Note body" {
		t.Fatalf("note text changed to %q", got.Text)
	}
}

func TestAuthorCanDeleteNote(t *testing.T) {
	srv, store := newTestServer(t)
	author := createUser(t, store, "author")
	cookie := loginAs(t, store, author)
	note := seedNote(t, store, author, "Title", "test-slug")

	rec := postForm(t, srv, "/notes/"+note.Slug+"/delete", url.Values{}, cookie)

	wantRedirect(t, rec, "/notes/done")
	if n, _ := store.CountNotes(context.Background()); n != 0 {
		t.Fatalf("note count = %d, want 0", n)
	}
}

func TestOtherUserCannotDeleteNote(t *testing.T) {
	srv, store := newTestServer(t)
	author := createUser(t, store, "author")
	reader := createUser(t, store, "reader")
	cookie := loginAs(t, store, reader)
	note := seedNote(t, store, author, "Title", "test-slug")

	rec := postForm(t, srv, "/notes/"+note.Slug+"/delete", url.Values{}, cookie)

	wantStatus(t, rec, http.StatusNotFound)
	if n, _ := store.CountNotes(context.Background()); n != 1 {
		t.Fatalf("note count = %d, want 1", n)
	}
}

func TestEditKeepsSlugWhenOmitted(t *testing.T) {
	srv, store := newTestServer(t)
	author := createUser(t, store, "author")
	cookie := loginAs(t, store, author)
	note := seedNote(t, store, author, "Title", "test-slug")

	rec := postForm(t, srv, "/notes/"+note.Slug+"/edit",
		url.Values{"title": {"New title"}, "text": {"New text"}}, cookie)

	wantRedirect(t, rec, "/notes/done")
	got, err := store.NoteBySlug(context.Background(), "test-slug")
	if err != nil {
		t.Fatalf("slug changed unexpectedly: %v", err)
	}
	if got.Title != "New title" {
		t.Fatalf("title = %q", got.Title)
	}
}
