package forms

import (
	"strings"
	"testing"
)

var badWords = []string{"scoundrel", "villain"}

func TestCommentFormValid(t *testing.T) {
	f := CommentForm{Text: "Perfectly polite remark"}
	if !f.Validate(badWords) {
		t.Fatalf("expected valid form, got errors: %v", f.Errors)
	}
}

func TestCommentFormForbiddenWord(t *testing.T) {
	f := CommentForm{Text: "You absolute SCOUNDREL, sir"}
	if f.Validate(badWords) {
		t.Fatal("expected validation failure for forbidden word")
	}
	if f.Errors["text"] != Warning {
		t.Fatalf("text error = %q, want %q", f.Errors["text"], Warning)
	}
}

func TestCommentFormForbiddenSubstring(t *testing.T) {
	// boundary rule is plain substring match
	f := CommentForm{Text: "villainous behaviour"}
	if f.Validate(badWords) {
		t.Fatal("expected substring match to fail validation")
	}
}

func TestCommentFormEmptyText(t *testing.T) {
	f := CommentForm{Text: "   "}
	if f.Validate(badWords) {
		t.Fatal("expected empty text to fail validation")
	}
	if _, ok := f.Errors["text"]; !ok {
		t.Fatal("expected error on text field")
	}
}

func TestNoteFormRequiredFields(t *testing.T) {
	f := NoteForm{Title: "", Text: "body"}
	if f.Validate() {
		t.Fatal("expected missing title to fail validation")
	}
	if _, ok := f.Errors["title"]; !ok {
		t.Fatal("expected error on title field")
	}

	f = NoteForm{Title: "t", Text: "x", Slug: ""}
	if !f.Validate() {
		t.Fatalf("slug is optional, got errors: %v", f.Errors)
	}
}

func TestNoteFormSetSlugTaken(t *testing.T) {
	f := NoteForm{}
	f.SetSlugTaken("test-slug")
	got := f.Errors["slug"]
	if !strings.HasPrefix(got, "test-slug") || !strings.HasSuffix(got, SlugTakenSuffix) {
		t.Fatalf("slug error = %q, want conflicting slug plus suffix", got)
	}
}
