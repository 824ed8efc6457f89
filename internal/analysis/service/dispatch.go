package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/camel-tools-api/camel-api/internal/analysis/domain"
	"github.com/camel-tools-api/camel-api/internal/nlp/disambig"
)

// handlerFunc runs one operation against the toolkit. Long-running handlers
// stop between tokens once ctx is done.
type handlerFunc func(ctx context.Context, tk *Toolkit, text string) (any, error)

// dispatchTable has one handler per domain.Operation.
var dispatchTable = map[domain.Operation]handlerFunc{
	domain.OpTokenizer: tokenizeText,
	domain.OpTagger:    tagText,
	domain.OpDisambig:  disambiguateText,
	domain.OpDediac:    dediacText,
	domain.OpRootStem:  rootStemText,
}

func checkDispatchTable(table map[domain.Operation]handlerFunc) error {
	for _, op := range domain.Operations {
		if table[op] == nil {
			return fmt.Errorf("no handler registered for operation %q", op)
		}
	}
	return nil
}

func tokenizeText(_ context.Context, tk *Toolkit, text string) (any, error) {
	tokens := tk.Tokenize(text)
	if tokens == nil {
		tokens = []string{}
	}
	return tokens, nil
}

func tagText(ctx context.Context, tk *Toolkit, text string) (any, error) {
	tokens := strings.Fields(text)
	var tags []string
	if ct, ok := tk.Tagger.(ContextTagger); ok {
		var err error
		if tags, err = ct.TagContext(ctx, tokens); err != nil {
			return nil, err
		}
	} else {
		tags = tk.Tagger.Tag(tokens)
	}
	if len(tags) != len(tokens) {
		return nil, fmt.Errorf("%w: tagger returned %d tags for %d tokens", domain.ErrCapabilityFailed, len(tags), len(tokens))
	}

	pairs := make([]domain.TaggedToken, len(tokens))
	for i, tok := range tokens {
		pairs[i] = domain.TaggedToken{Token: tok, Tag: tags[i]}
	}
	return pairs, nil
}

// disambiguateText keeps only the first analysis of each token.
func disambiguateText(ctx context.Context, tk *Toolkit, text string) (any, error) {
	tokens := strings.Fields(text)
	var words []disambig.DisambiguatedWord
	if cd, ok := tk.Disambiguator.(disambig.ContextDisambiguator); ok {
		var err error
		if words, err = cd.DisambiguateContext(ctx, tokens); err != nil {
			return nil, err
		}
	} else {
		words = tk.Disambiguator.Disambiguate(tokens)
	}

	diacritized := make([]string, len(words))
	for i, w := range words {
		if len(w.Analyses) == 0 {
			diacritized[i] = w.Word
			continue
		}
		diacritized[i] = w.Analyses[0].Analysis.Diac
	}
	return strings.Join(diacritized, " "), nil
}

func dediacText(_ context.Context, tk *Toolkit, text string) (any, error) {
	return tk.Dediacritize(text), nil
}

// rootStemText analyzes the whole text as one word and reports the first analysis.
func rootStemText(_ context.Context, tk *Toolkit, text string) (any, error) {
	analyses := tk.Analyzer.Analyze(text)
	if len(analyses) == 0 {
		return nil, fmt.Errorf("%w for %q", domain.ErrNoAnalysis, text)
	}
	first := analyses[0]
	return fmt.Sprintf("root: %s, stem: %s", first.Root, first.Stem), nil
}
