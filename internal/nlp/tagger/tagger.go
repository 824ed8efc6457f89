// Package tagger maps each token to one feature of its best analysis.
package tagger

import (
	"context"
	"errors"
	"fmt"

	"github.com/camel-tools-api/camel-api/internal/nlp/disambig"
	"github.com/camel-tools-api/camel-api/internal/nlp/morphology"
)

var ErrUnknownFeature = errors.New("unknown tagger feature")

// DefaultTagger tags tokens with a feature of the top disambiguated analysis.
type DefaultTagger struct {
	disambiguator disambig.Disambiguator
	feature       string
}

// New creates a DefaultTagger for feature, one of morphology.Features.
func New(d disambig.Disambiguator, feature string) (*DefaultTagger, error) {
	if _, ok := (morphology.Analysis{}).Feature(feature); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFeature, feature)
	}
	return &DefaultTagger{disambiguator: d, feature: feature}, nil
}

// Feature returns the tagged feature name.
func (t *DefaultTagger) Feature() string {
	return t.feature
}

// Tag returns one tag per token, in token order.
func (t *DefaultTagger) Tag(tokens []string) []string {
	tags, _ := t.TagContext(context.Background(), tokens)
	return tags
}

// TagContext is Tag with cancellation. The disambiguator is interrupted
// between words when it supports it.
func (t *DefaultTagger) TagContext(ctx context.Context, tokens []string) ([]string, error) {
	var words []disambig.DisambiguatedWord
	if cd, ok := t.disambiguator.(disambig.ContextDisambiguator); ok {
		var err error
		if words, err = cd.DisambiguateContext(ctx, tokens); err != nil {
			return nil, err
		}
	} else {
		words = t.disambiguator.Disambiguate(tokens)
	}

	tags := make([]string, len(words))
	for i, w := range words {
		tags[i], _ = w.Top().Feature(t.feature)
	}
	return tags, nil
}
