package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/khalifa1337/newsboard/internal/auth"
	"github.com/khalifa1337/newsboard/internal/forms"
	"github.com/khalifa1337/newsboard/internal/metrics"
	"github.com/khalifa1337/newsboard/internal/models"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	news, err := s.store.ListNews(r.Context(), s.cfg.News.PageSize)
	if err != nil {
		s.serverError(w, "list news", err)
		return
	}
	s.render(w, http.StatusOK, "home.html", map[string]any{
		"Title":    "News",
		"News":     news,
		"Username": s.currentUser(r),
	})
}

func (s *Server) handleNewsDetail(w http.ResponseWriter, r *http.Request) {
	news, ok := s.newsFromPath(w, r)
	if !ok {
		return
	}
	var form *forms.CommentForm
	if _, authed := auth.UserIDFrom(r.Context()); authed {
		form = &forms.CommentForm{}
	}
	s.renderNewsDetail(w, r, http.StatusOK, news, form)
}

func (s *Server) handleCommentCreate(w http.ResponseWriter, r *http.Request) {
	news, ok := s.newsFromPath(w, r)
	if !ok {
		return
	}
	uid, _ := auth.UserIDFrom(r.Context())

	form := &forms.CommentForm{Text: r.FormValue("text")}
	if !form.Validate(s.cfg.Comments.BadWords) {
		metrics.CommentsRejected.Inc()
		s.renderNewsDetail(w, r, http.StatusOK, news, form)
		return
	}

	c := &models.Comment{NewsID: news.ID, AuthorID: uid, Text: form.Text}
	if _, err := s.store.CreateComment(r.Context(), c); err != nil {
		s.serverError(w, "create comment", err)
		return
	}
	http.Redirect(w, r, newsDetailPath(news.ID)+"#comments", http.StatusSeeOther)
}

func (s *Server) handleCommentEditPage(w http.ResponseWriter, r *http.Request) {
	c, ok := s.ownCommentFromPath(w, r)
	if !ok {
		return
	}
	s.render(w, http.StatusOK, "comment_edit.html", map[string]any{
		"Title":   "Edit comment",
		"Comment": c,
		"Form":    &forms.CommentForm{Text: c.Text},
	})
}

func (s *Server) handleCommentEdit(w http.ResponseWriter, r *http.Request) {
	c, ok := s.ownCommentFromPath(w, r)
	if !ok {
		return
	}

	form := &forms.CommentForm{Text: r.FormValue("text")}
	if !form.Validate(s.cfg.Comments.BadWords) {
		metrics.CommentsRejected.Inc()
		s.render(w, http.StatusOK, "comment_edit.html", map[string]any{
			"Title":   "Edit comment",
			"Comment": c,
			"Form":    form,
		})
		return
	}

	if err := s.store.UpdateComment(r.Context(), c.ID, form.Text); err != nil {
		s.serverError(w, "update comment", err)
		return
	}
	http.Redirect(w, r, newsDetailPath(c.NewsID)+"#comments", http.StatusSeeOther)
}

func (s *Server) handleCommentDeletePage(w http.ResponseWriter, r *http.Request) {
	c, ok := s.ownCommentFromPath(w, r)
	if !ok {
		return
	}
	s.render(w, http.StatusOK, "comment_delete.html", map[string]any{
		"Title":   "Delete comment",
		"Comment": c,
	})
}

func (s *Server) handleCommentDelete(w http.ResponseWriter, r *http.Request) {
	c, ok := s.ownCommentFromPath(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteComment(r.Context(), c.ID); err != nil {
		s.serverError(w, "delete comment", err)
		return
	}
	http.Redirect(w, r, newsDetailPath(c.NewsID)+"#comments", http.StatusSeeOther)
}

// helpers

func newsDetailPath(id int64) string {
	return fmt.Sprintf("/news/%d", id)
}

func (s *Server) renderNewsDetail(w http.ResponseWriter, r *http.Request, status int, news *models.News, form *forms.CommentForm) {
	comments, err := s.store.ListComments(r.Context(), news.ID)
	if err != nil {
		s.serverError(w, "list comments", err)
		return
	}
	s.render(w, status, "news_detail.html", map[string]any{
		"Title":    news.Title,
		"News":     news,
		"Comments": comments,
		"Form":     form,
		"Username": s.currentUser(r),
	})
}

func (s *Server) newsFromPath(w http.ResponseWriter, r *http.Request) (*models.News, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	news, err := s.store.NewsByID(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		http.NotFound(w, r)
		return nil, false
	}
	if err != nil {
		s.serverError(w, "get news", err)
		return nil, false
	}
	return news, true
}

// ownCommentFromPath loads the comment and enforces authorship. A foreign
// comment is reported exactly like a missing one.
func (s *Server) ownCommentFromPath(w http.ResponseWriter, r *http.Request) (*models.Comment, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	c, err := s.store.CommentByID(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		http.NotFound(w, r)
		return nil, false
	}
	if err != nil {
		s.serverError(w, "get comment", err)
		return nil, false
	}
	uid, _ := auth.UserIDFrom(r.Context())
	if c.AuthorID != uid {
		http.NotFound(w, r)
		return nil, false
	}
	return c, true
}

func (s *Server) serverError(w http.ResponseWriter, msg string, err error) {
	s.log.Error(msg, zap.Error(err))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
