package httpx

import (
	"errors"
	"net/http"

	"github.com/khalifa1337/newsboard/internal/auth"
	"github.com/khalifa1337/newsboard/internal/forms"
	"github.com/khalifa1337/newsboard/internal/metrics"
	"github.com/khalifa1337/newsboard/internal/models"
	"github.com/khalifa1337/newsboard/internal/slug"
)

const notesDonePath = "/notes/done"

func (s *Server) handleNoteList(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFrom(r.Context())
	notes, err := s.store.ListNotes(r.Context(), uid)
	if err != nil {
		s.serverError(w, "list notes", err)
		return
	}
	s.render(w, http.StatusOK, "notes_list.html", map[string]any{
		"Title":    "My notes",
		"Notes":    notes,
		"Username": s.currentUser(r),
	})
}

func (s *Server) handleNoteAddPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "note_form.html", map[string]any{
		"Title":   "New note",
		"Heading": "New note",
		"Action":  "/notes/add",
		"Form":    &forms.NoteForm{},
	})
}

func (s *Server) handleNoteAdd(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFrom(r.Context())

	form := &forms.NoteForm{
		Title: r.FormValue("title"),
		Text:  r.FormValue("text"),
		Slug:  r.FormValue("slug"),
	}
	renderAgain := func() {
		s.render(w, http.StatusOK, "note_form.html", map[string]any{
			"Title":   "New note",
			"Heading": "New note",
			"Action":  "/notes/add",
			"Form":    form,
		})
	}
	if !form.Validate() {
		renderAgain()
		return
	}

	noteSlug := form.Slug
	if noteSlug == "" {
		noteSlug = slug.Make(form.Title)
	}
	if noteSlug == "" {
		form.Errors["slug"] = "A slug could not be derived from the title, please provide one"
		renderAgain()
		return
	}

	n := &models.Note{AuthorID: uid, Title: form.Title, Text: form.Text, Slug: noteSlug}
	_, err := s.store.CreateNote(r.Context(), n)
	if errors.Is(err, models.ErrSlugTaken) {
		form.SetSlugTaken(noteSlug)
		renderAgain()
		return
	}
	if err != nil {
		s.serverError(w, "create note", err)
		return
	}
	metrics.NotesCreated.Inc()
	http.Redirect(w, r, notesDonePath, http.StatusSeeOther)
}

func (s *Server) handleNoteDone(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "notes_done.html", map[string]any{
		"Title":    "Done",
		"Username": s.currentUser(r),
	})
}

func (s *Server) handleNoteDetail(w http.ResponseWriter, r *http.Request) {
	n, ok := s.ownNoteFromPath(w, r)
	if !ok {
		return
	}
	s.render(w, http.StatusOK, "note_detail.html", map[string]any{
		"Title":    n.Title,
		"Note":     n,
		"Username": s.currentUser(r),
	})
}

func (s *Server) handleNoteEditPage(w http.ResponseWriter, r *http.Request) {
	n, ok := s.ownNoteFromPath(w, r)
	if !ok {
		return
	}
	s.render(w, http.StatusOK, "note_form.html", map[string]any{
		"Title":   "Edit note",
		"Heading": "Edit note",
		"Action":  "/notes/" + n.Slug + "/edit",
		"Form":    &forms.NoteForm{Title: n.Title, Text: n.Text, Slug: n.Slug},
	})
}

func (s *Server) handleNoteEdit(w http.ResponseWriter, r *http.Request) {
	n, ok := s.ownNoteFromPath(w, r)
	if !ok {
		return
	}

	form := &forms.NoteForm{
		Title: r.FormValue("title"),
		Text:  r.FormValue("text"),
		Slug:  r.FormValue("slug"),
	}
	renderAgain := func() {
		s.render(w, http.StatusOK, "note_form.html", map[string]any{
			"Title":   "Edit note",
			"Heading": "Edit note",
			"Action":  "/notes/" + n.Slug + "/edit",
			"Form":    form,
		})
	}
	if !form.Validate() {
		renderAgain()
		return
	}

	// an omitted slug keeps the existing one rather than re-deriving
	newSlug := form.Slug
	if newSlug == "" {
		newSlug = n.Slug
	}

	updated := &models.Note{ID: n.ID, AuthorID: n.AuthorID, Title: form.Title, Text: form.Text, Slug: newSlug}
	err := s.store.UpdateNote(r.Context(), updated)
	if errors.Is(err, models.ErrSlugTaken) {
		form.SetSlugTaken(newSlug)
		renderAgain()
		return
	}
	if err != nil {
		s.serverError(w, "update note", err)
		return
	}
	http.Redirect(w, r, notesDonePath, http.StatusSeeOther)
}

func (s *Server) handleNoteDeletePage(w http.ResponseWriter, r *http.Request) {
	n, ok := s.ownNoteFromPath(w, r)
	if !ok {
		return
	}
	s.render(w, http.StatusOK, "note_delete.html", map[string]any{
		"Title": "Delete note",
		"Note":  n,
	})
}

func (s *Server) handleNoteDelete(w http.ResponseWriter, r *http.Request) {
	n, ok := s.ownNoteFromPath(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteNote(r.Context(), n.ID); err != nil {
		s.serverError(w, "delete note", err)
		return
	}
	http.Redirect(w, r, notesDonePath, http.StatusSeeOther)
}

// ownNoteFromPath loads the note and enforces ownership. A foreign note is
// reported exactly like a missing one.
func (s *Server) ownNoteFromPath(w http.ResponseWriter, r *http.Request) (*models.Note, bool) {
	n, err := s.store.NoteBySlug(r.Context(), r.PathValue("slug"))
	if errors.Is(err, models.ErrNotFound) {
		http.NotFound(w, r)
		return nil, false
	}
	if err != nil {
		s.serverError(w, "get note", err)
		return nil, false
	}
	uid, _ := auth.UserIDFrom(r.Context())
	if n.AuthorID != uid {
		http.NotFound(w, r)
		return nil, false
	}
	return n, true
}
