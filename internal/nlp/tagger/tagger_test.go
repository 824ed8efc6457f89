package tagger

import (
	"context"
	"strings"
	"testing"

	"github.com/camel-tools-api/camel-api/internal/nlp/disambig"
	"github.com/camel-tools-api/camel-api/internal/nlp/morphology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTagger(t *testing.T, feature string) *DefaultTagger {
	t.Helper()
	d, err := disambig.Pretrained()
	require.NoError(t, err)
	tg, err := New(d, feature)
	require.NoError(t, err)
	return tg
}

func TestTag_POS(t *testing.T) {
	tg := newTagger(t, morphology.FeaturePOS)

	tags := tg.Tag(strings.Fields("ذهب الولد إلى المدرسة"))
	assert.Equal(t, []string{"verb", "noun", "prep", "noun"}, tags)
}

func TestTag_LengthMatchesTokens(t *testing.T) {
	tg := newTagger(t, morphology.FeaturePOS)

	for _, text := range []string{"", "Hello world", "كتب", "  a  b   c ", "هذا كتاب جميل جدا"} {
		tokens := strings.Fields(text)
		assert.Len(t, tg.Tag(tokens), len(tokens), text)
	}
}

func TestTag_OtherFeatures(t *testing.T) {
	assert.Equal(t, []string{"ك.ت.ب"}, newTagger(t, morphology.FeatureRoot).Tag([]string{"كتاب"}))
	assert.Equal(t, []string{"كِتاب"}, newTagger(t, morphology.FeatureDiac).Tag([]string{"كتاب"}))
	assert.Equal(t, []string{"book"}, newTagger(t, morphology.FeatureGloss).Tag([]string{"كتاب"}))
}

func TestNew_UnknownFeature(t *testing.T) {
	d, err := disambig.Pretrained()
	require.NoError(t, err)

	_, err = New(d, "aspect")
	assert.ErrorIs(t, err, ErrUnknownFeature)

	tg, err := New(d, morphology.FeatureLex)
	require.NoError(t, err)
	assert.Equal(t, morphology.FeatureLex, tg.Feature())
}

// plainDisambiguator hides the context-aware methods of the MLE disambiguator.
type plainDisambiguator struct{ d disambig.Disambiguator }

func (p plainDisambiguator) Disambiguate(words []string) []disambig.DisambiguatedWord {
	return p.d.Disambiguate(words)
}

func TestTagContext(t *testing.T) {
	tg := newTagger(t, morphology.FeaturePOS)
	tokens := strings.Fields("ذهب الولد إلى المدرسة")

	tags, err := tg.TagContext(context.Background(), tokens)
	require.NoError(t, err)
	assert.Equal(t, tg.Tag(tokens), tags)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tags, err = tg.TagContext(ctx, tokens)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, tags)
}

func TestTagContext_PlainDisambiguator(t *testing.T) {
	d, err := disambig.Pretrained()
	require.NoError(t, err)
	tg, err := New(plainDisambiguator{d: d}, morphology.FeaturePOS)
	require.NoError(t, err)

	// without cancellation support the whole input is tagged
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tags, err := tg.TagContext(ctx, []string{"إلى"})
	require.NoError(t, err)
	assert.Equal(t, []string{"prep"}, tags)
}
