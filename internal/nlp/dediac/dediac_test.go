package dediac

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

func TestDediac(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"no diacritics", "كتب", "كتب"},
		{"short vowels", "كَتَبَ", "كتب"},
		{"shadda and tanween", "مُحَمَّدٌ", "محمد"},
		{"dagger alef", "هٰذا", "هذا"},
		{"tatweel", "كــتب", "كتب"},
		{"latin untouched", "Hello world", "Hello world"},
		{"mixed", "قَرَأَ 3 books", "قرأ 3 books"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dediac(tt.in))
		})
	}
}

func TestDediacIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"كَتَبَ الْوَلَدُ",
		"ّّّ",
		"plain ascii",
		"ـًٰx",
	}

	for _, in := range inputs {
		once := Dediac(in)
		assert.Equal(t, once, Dediac(once), "input %q", in)
		assert.False(t, HasDiacritics(once), "input %q", in)
	}
}

func TestIsDiacritic(t *testing.T) {
	for _, r := range []rune{Fathatan, Dammatan, Kasratan, Fatha, Damma, Kasra, Shadda, Sukun, DaggerAlef, Tatweel} {
		assert.True(t, IsDiacritic(r), "%U", r)
	}
	assert.False(t, IsDiacritic('ك'))
	assert.False(t, IsDiacritic('a'))
	assert.False(t, IsDiacritic('ٓ')) // maddah above is not in the set
}

func TestDiacriticCharset_ExcludesLetters(t *testing.T) {
	for r := rune(0x0621); r <= 0x064A; r++ {
		if r == Tatweel {
			continue
		}
		assert.False(t, unicode.Is(DiacriticCharset, r), "%U", r)
	}
	for _, r := range []rune{Fathatan, Dammatan, Kasratan, Fatha, Damma, Kasra, Shadda, Sukun, DaggerAlef, Tatweel} {
		assert.True(t, unicode.Is(DiacriticCharset, r), "%U", r)
	}
}
