// Package disambig ranks the analyses of each word and picks the most
// likely one.
package disambig

import (
	"context"
	"fmt"
	"sync"

	"github.com/camel-tools-api/camel-api/internal/nlp/morphology"
)

// BackoffPOS is the part of speech given to words the analyzer cannot read.
const BackoffPOS = "noun_prop"

// ScoredAnalysis is an analysis with its probability among the readings of
// the same word.
type ScoredAnalysis struct {
	Score    float64             `json:"score"`
	Analysis morphology.Analysis `json:"analysis"`
}

// DisambiguatedWord holds the ranked analyses of one input word. Analyses
// is never empty: unknown words carry a single backoff analysis.
type DisambiguatedWord struct {
	Word     string           `json:"word"`
	Analyses []ScoredAnalysis `json:"analyses"`
}

// Top returns the best analysis.
func (w DisambiguatedWord) Top() morphology.Analysis {
	return w.Analyses[0].Analysis
}

// Disambiguator ranks analyses for a sequence of words.
type Disambiguator interface {
	Disambiguate(words []string) []DisambiguatedWord
}

// ContextDisambiguator is a Disambiguator that stops between words once ctx
// is done.
type ContextDisambiguator interface {
	Disambiguator
	DisambiguateContext(ctx context.Context, words []string) ([]DisambiguatedWord, error)
}

// MLEDisambiguator scores analyses by their relative lexical frequency.
// It holds no per-call state and is safe for concurrent use.
type MLEDisambiguator struct {
	analyzer *morphology.Analyzer
}

// NewMLEDisambiguator creates a disambiguator over analyzer.
func NewMLEDisambiguator(analyzer *morphology.Analyzer) *MLEDisambiguator {
	return &MLEDisambiguator{analyzer: analyzer}
}

// Pretrained returns the process-wide disambiguator over the builtin lexicon.
var Pretrained = sync.OnceValues(func() (*MLEDisambiguator, error) {
	db, err := morphology.BuiltinDB()
	if err != nil {
		return nil, fmt.Errorf("load pretrained disambiguator: %w", err)
	}
	return NewMLEDisambiguator(morphology.NewAnalyzer(db)), nil
})

// Analyzer returns the analyzer backing d.
func (d *MLEDisambiguator) Analyzer() *morphology.Analyzer {
	return d.analyzer
}

// Disambiguate returns one entry per input word, in input order.
func (d *MLEDisambiguator) Disambiguate(words []string) []DisambiguatedWord {
	out, _ := d.DisambiguateContext(context.Background(), words)
	return out
}

// DisambiguateContext is Disambiguate with cancellation checked before each
// word. On cancellation it returns ctx.Err() and no results.
func (d *MLEDisambiguator) DisambiguateContext(ctx context.Context, words []string) ([]DisambiguatedWord, error) {
	out := make([]DisambiguatedWord, len(words))
	for i, w := range words {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = d.DisambiguateWord(w)
	}
	return out, nil
}

// DisambiguateWord ranks the analyses of a single word.
func (d *MLEDisambiguator) DisambiguateWord(word string) DisambiguatedWord {
	analyses := d.analyzer.Analyze(word)
	if len(analyses) == 0 {
		return DisambiguatedWord{
			Word:     word,
			Analyses: []ScoredAnalysis{{Score: 1, Analysis: backoff(word)}},
		}
	}

	var total float64
	for _, a := range analyses {
		total += a.Score
	}

	scored := make([]ScoredAnalysis, len(analyses))
	for i, a := range analyses {
		p := 1 / float64(len(analyses))
		if total > 0 {
			p = a.Score / total
		}
		scored[i] = ScoredAnalysis{Score: p, Analysis: a}
	}

	return DisambiguatedWord{Word: word, Analyses: scored}
}

func backoff(word string) morphology.Analysis {
	return morphology.Analysis{
		Diac:  word,
		Lex:   word,
		Root:  morphology.NoRoot,
		Stem:  word,
		POS:   BackoffPOS,
		Gloss: word,
	}
}
