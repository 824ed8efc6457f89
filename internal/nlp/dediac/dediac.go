package dediac

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/rangetable"
)

// Arabic diacritic marks.
const (
	Fathatan   = '\u064B'
	Dammatan   = '\u064C'
	Kasratan   = '\u064D'
	Fatha      = '\u064E'
	Damma      = '\u064F'
	Kasra      = '\u0650'
	Shadda     = '\u0651'
	Sukun      = '\u0652'
	DaggerAlef = '\u0670'
	Tatweel    = '\u0640'
)

// DiacriticCharset is the set of runes removed by Dediac: the harakat,
// tanwin, shadda, sukun, dagger alef and tatweel. It holds no letters.
var DiacriticCharset = rangetable.New(
	Fathatan, Dammatan, Kasratan,
	Fatha, Damma, Kasra,
	Shadda, Sukun,
	DaggerAlef, Tatweel,
)

// IsDiacritic reports whether r is an Arabic diacritic.
func IsDiacritic(r rune) bool {
	return unicode.Is(DiacriticCharset, r)
}

// Dediac removes Arabic diacritics from s. The result never contains a
// diacritic, so Dediac(Dediac(s)) == Dediac(s).
func Dediac(s string) string {
	out, _, err := transform.String(runes.Remove(runes.In(DiacriticCharset)), s)
	if err != nil {
		return s
	}
	return out
}

// HasDiacritics reports whether s contains at least one Arabic diacritic.
func HasDiacritics(s string) bool {
	for _, r := range s {
		if IsDiacritic(r) {
			return true
		}
	}
	return false
}
