package service

import (
	"context"
	"testing"

	"github.com/camel-tools-api/camel-api/internal/analysis/domain"
	"github.com/camel-tools-api/camel-api/internal/nlp/disambig"
	"github.com/camel-tools-api/camel-api/internal/nlp/morphology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToolkitWith_Pretrained(t *testing.T) {
	mle, err := disambig.Pretrained()
	require.NoError(t, err)
	tk, err := NewToolkitWith(mle)
	require.NoError(t, err)
	require.NoError(t, tk.Validate())

	assert.Equal(t, []string{"verb"}, tk.Tagger.Tag([]string{"كتب"}))
}

func TestToolkitValidate(t *testing.T) {
	full := testToolkit(t)
	require.NoError(t, full.Validate())

	tests := map[string]func(tk *Toolkit){
		"tokenizer":     func(tk *Toolkit) { tk.Tokenize = nil },
		"dediacritizer": func(tk *Toolkit) { tk.Dediacritize = nil },
		"disambiguator": func(tk *Toolkit) { tk.Disambiguator = nil },
		"tagger":        func(tk *Toolkit) { tk.Tagger = nil },
		"analyzer":      func(tk *Toolkit) { tk.Analyzer = nil },
	}
	for missing, mutate := range tests {
		t.Run(missing, func(t *testing.T) {
			tk := full
			mutate(&tk)
			err := tk.Validate()
			require.ErrorIs(t, err, errIncompleteToolkit)
			assert.Contains(t, err.Error(), missing)
		})
	}
}

func TestDispatch_WhitespaceText(t *testing.T) {
	tk := testToolkit(t)

	out, err := dispatchTable[domain.OpTokenizer](context.Background(), &tk, "   ")
	require.NoError(t, err)
	assert.Equal(t, []string{}, out)

	out, err = dispatchTable[domain.OpTagger](context.Background(), &tk, " \t ")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = dispatchTable[domain.OpDisambig](context.Background(), &tk, "  ")
	require.NoError(t, err)
	assert.Equal(t, "", out)

	out, err = dispatchTable[domain.OpDediac](context.Background(), &tk, "  ")
	require.NoError(t, err)
	assert.Equal(t, "  ", out)

	_, err = dispatchTable[domain.OpRootStem](context.Background(), &tk, "  ")
	assert.ErrorIs(t, err, domain.ErrNoAnalysis)
}

func TestRootStemText_UsesFirstAnalysis(t *testing.T) {
	tk := testToolkit(t)
	db, err := morphology.BuiltinDB()
	require.NoError(t, err)

	first := morphology.NewAnalyzer(db).Analyze("الكتاب")[0]
	out, err := rootStemText(context.Background(), &tk, "الكتاب")
	require.NoError(t, err)
	assert.Equal(t, "root: "+first.Root+", stem: "+first.Stem, out)
}
