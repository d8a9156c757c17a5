// Package forms holds the request forms and their validation rules.
// Validation failures are attached to fields so handlers can re-render the
// submitted form with errors instead of persisting anything.
package forms

import "strings"

// Warning is the field error attached to comment text containing a
// forbidden word.
const Warning = "Watch your language!"

// SlugTakenSuffix is appended to the conflicting slug in the field error for
// a duplicate note slug.
const SlugTakenSuffix = " - this slug is already taken, please pick a unique value"

type CommentForm struct {
	Text   string
	Errors map[string]string
}

// Validate checks the text against the configured forbidden word list.
// Matching is a case-insensitive substring search.
func (f *CommentForm) Validate(badWords []string) bool {
	f.Errors = map[string]string{}
	text := strings.TrimSpace(f.Text)
	if text == "" {
		f.Errors["text"] = "Text is required"
		return false
	}
	lower := strings.ToLower(text)
	for _, w := range badWords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" && strings.Contains(lower, w) {
			f.Errors["text"] = Warning
			break
		}
	}
	return len(f.Errors) == 0
}

type NoteForm struct {
	Title  string
	Text   string
	Slug   string
	Errors map[string]string
}

func (f *NoteForm) Validate() bool {
	f.Errors = map[string]string{}
	if strings.TrimSpace(f.Title) == "" {
		f.Errors["title"] = "Title is required"
	}
	if strings.TrimSpace(f.Text) == "" {
		f.Errors["text"] = "Text is required"
	}
	return len(f.Errors) == 0
}

// SetSlugTaken records the duplicate-slug error, naming the conflicting slug.
func (f *NoteForm) SetSlugTaken(slug string) {
	if f.Errors == nil {
		f.Errors = map[string]string{}
	}
	f.Errors["slug"] = slug + SlugTakenSuffix
}
