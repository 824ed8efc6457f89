package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/camel-tools-api/camel-api/internal/nlp/dediac"
	"github.com/camel-tools-api/camel-api/internal/nlp/disambig"
	"github.com/camel-tools-api/camel-api/internal/nlp/morphology"
	"github.com/camel-tools-api/camel-api/internal/nlp/tagger"
	"github.com/camel-tools-api/camel-api/internal/nlp/tokenizer"
)

// Tokenizer splits text into word tokens.
type Tokenizer func(text string) []string

// Dediacritizer strips diacritics from text.
type Dediacritizer func(text string) string

// Tagger returns one tag per token.
type Tagger interface {
	Tag(tokens []string) []string
}

// ContextTagger is a Tagger that can be interrupted through ctx.
type ContextTagger interface {
	Tagger
	TagContext(ctx context.Context, tokens []string) ([]string, error)
}

// MorphAnalyzer returns the analyses of a word, best first.
type MorphAnalyzer interface {
	Analyze(word string) []morphology.Analysis
}

// Toolkit bundles the NLP capabilities the dispatcher calls. Every member
// must be safe for concurrent use; none is mutated after construction.
type Toolkit struct {
	Tokenize      Tokenizer
	Dediacritize  Dediacritizer
	Disambiguator disambig.Disambiguator
	Tagger        Tagger
	Analyzer      MorphAnalyzer
}

var errIncompleteToolkit = errors.New("incomplete toolkit")

// Validate reports the first missing capability.
func (tk Toolkit) Validate() error {
	switch {
	case tk.Tokenize == nil:
		return fmt.Errorf("%w: tokenizer", errIncompleteToolkit)
	case tk.Dediacritize == nil:
		return fmt.Errorf("%w: dediacritizer", errIncompleteToolkit)
	case tk.Disambiguator == nil:
		return fmt.Errorf("%w: disambiguator", errIncompleteToolkit)
	case tk.Tagger == nil:
		return fmt.Errorf("%w: tagger", errIncompleteToolkit)
	case tk.Analyzer == nil:
		return fmt.Errorf("%w: analyzer", errIncompleteToolkit)
	}
	return nil
}

// NewToolkit builds the default toolkit over db: simple word tokenizer,
// Arabic dediacritizer, MLE disambiguator and a POS tagger on top of it.
func NewToolkit(db *morphology.DB) (Toolkit, error) {
	return NewToolkitWith(disambig.NewMLEDisambiguator(morphology.NewAnalyzer(db)))
}

// NewToolkitWith builds the default toolkit around an existing
// disambiguator, such as disambig.Pretrained, reusing its analyzer.
func NewToolkitWith(mle *disambig.MLEDisambiguator) (Toolkit, error) {
	posTagger, err := tagger.New(mle, morphology.FeaturePOS)
	if err != nil {
		return Toolkit{}, err
	}

	return Toolkit{
		Tokenize:      tokenizer.SimpleWordTokenize,
		Dediacritize:  dediac.Dediac,
		Disambiguator: mle,
		Tagger:        posTagger,
		Analyzer:      mle.Analyzer(),
	}, nil
}
