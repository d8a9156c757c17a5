// Package slug derives URL-safe identifiers from note titles.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLen caps derived slugs; uniqueness is checked on the truncated value.
const MaxLen = 100

// cyrillic holds the transliteration table for Russian letters. Lowercase
// only; input is lowercased before lookup.
var cyrillic = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "e", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "j", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "h", 'ц': "c", 'ч': "ch",
	'ш': "sh", 'щ': "sch", 'ъ': "", 'ы': "y", 'ь': "",
	'э': "e", 'ю': "yu", 'я': "ya",
}

// stripMarks folds accented latin characters down to plain ASCII by
// decomposing and dropping combining marks.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make turns a title into a slug: lowercase, transliterate, fold accents,
// collapse every run of non-alphanumeric characters into a single dash.
// Deterministic, so equal titles always collide.
//
// Transliteration runs before mark-stripping: й and ё decompose into и/е plus
// a combining mark under NFD, which would bypass their table entries.
func Make(title string) string {
	var lat strings.Builder
	for _, r := range strings.ToLower(title) {
		if tr, ok := cyrillic[r]; ok {
			lat.WriteString(tr)
		} else {
			lat.WriteRune(r)
		}
	}

	folded, _, err := transform.String(stripMarks, lat.String())
	if err != nil {
		folded = lat.String()
	}

	var b strings.Builder
	dash := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}

	s := strings.TrimRight(b.String(), "-")
	if len(s) > MaxLen {
		// output is pure ASCII, byte slicing is safe
		s = strings.TrimRight(s[:MaxLen], "-")
	}
	return s
}
