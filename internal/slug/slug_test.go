package slug

import (
	"strings"
	"testing"
)

func TestMake(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Hello, World!", "hello-world"},
		{"  spaced   out  ", "spaced-out"},
		{"Already-Slugged", "already-slugged"},
		{"Заголовок", "zagolovok"},
		{"Ещё одна заметка", "esche-odna-zametka"},
		{"Йод и ёлка", "jod-i-elka"},
		{"Crème Brûlée", "creme-brulee"},
		{"MixedЗаметка2024", "mixedzametka2024"},
		{"!!!", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := Make(c.title); got != c.want {
			t.Errorf("Make(%q) = %q, want %q", c.title, got, c.want)
		}
	}
}

func TestMakeDeterministic(t *testing.T) {
	a := Make("Hello World")
	b := Make("Hello World")
	if a != b {
		t.Fatalf("same title produced different slugs: %q vs %q", a, b)
	}
}

func TestMakeTruncates(t *testing.T) {
	got := Make(strings.Repeat("a ", 200))
	if len(got) > MaxLen {
		t.Fatalf("slug length %d exceeds %d", len(got), MaxLen)
	}
	if strings.HasSuffix(got, "-") {
		t.Fatalf("truncated slug ends with dash: %q", got)
	}
}
