// Package tokenizer splits raw text into word tokens.
package tokenizer

import (
	"strings"
	"unicode"
)

type runeClass int

const (
	classSpace runeClass = iota
	classPunct
	classDigit
	classWord
)

func classify(r rune) runeClass {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case unicode.IsPunct(r) || unicode.IsSymbol(r):
		return classPunct
	case unicode.IsDigit(r):
		return classDigit
	default:
		// letters, combining marks (diacritics) and other numerics
		return classWord
	}
}

// SimpleWordTokenize splits text on whitespace and punctuation. Every
// punctuation or symbol rune becomes its own token; runs of letters,
// marks and digits stay together. Token order follows the input.
func SimpleWordTokenize(text string) []string {
	return tokenize(text, false)
}

// SimpleWordTokenizeSplitDigits behaves like SimpleWordTokenize but also
// separates digit runs from adjacent letters, so "3rd" yields "3", "rd".
func SimpleWordTokenizeSplitDigits(text string) []string {
	return tokenize(text, true)
}

func tokenize(text string, splitDigits bool) []string {
	tokens := make([]string, 0, len(text)/4)
	var current strings.Builder
	prev := classSpace

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range text {
		class := classify(r)
		if !splitDigits && class == classDigit {
			class = classWord
		}

		switch class {
		case classSpace:
			flush()
		case classPunct:
			flush()
			tokens = append(tokens, string(r))
		default:
			if current.Len() > 0 && class != prev {
				flush()
			}
			current.WriteRune(r)
		}
		prev = class
	}
	flush()

	return tokens
}
