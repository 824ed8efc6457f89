package morphology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builtinAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	db, err := BuiltinDB()
	require.NoError(t, err)
	return NewAnalyzer(db)
}

func TestAnalyze_RanksByFrequency(t *testing.T) {
	a := builtinAnalyzer(t)

	analyses := a.Analyze("كتب")
	require.Len(t, analyses, 2)

	assert.Equal(t, "كَتَبَ", analyses[0].Diac)
	assert.Equal(t, "verb", analyses[0].POS)
	assert.Equal(t, "ك.ت.ب", analyses[0].Root)
	assert.Equal(t, "كَتَب", analyses[0].Stem)

	assert.Equal(t, "كُتُب", analyses[1].Diac)
	assert.Equal(t, "noun", analyses[1].POS)
	assert.Greater(t, analyses[0].Score, analyses[1].Score)
}

func TestAnalyze_Clitics(t *testing.T) {
	a := builtinAnalyzer(t)

	t.Run("definite article", func(t *testing.T) {
		analyses := a.Analyze("الكتاب")
		require.NotEmpty(t, analyses)
		assert.Equal(t, "الْكِتاب", analyses[0].Diac)
		assert.Equal(t, "الْ", analyses[0].Prefix)
		assert.Equal(t, "the+book", analyses[0].Gloss)
		assert.Equal(t, "كِتاب", analyses[0].Stem)
	})

	t.Run("conjunction on verb", func(t *testing.T) {
		analyses := a.Analyze("وكتب")
		require.NotEmpty(t, analyses)
		assert.Equal(t, "وَكَتَبَ", analyses[0].Diac)
		assert.Equal(t, "and+write", analyses[0].Gloss)
	})

	t.Run("pronominal suffix", func(t *testing.T) {
		analyses := a.Analyze("كتابه")
		require.NotEmpty(t, analyses)
		assert.Equal(t, "كِتابهُ", analyses[0].Diac)
		assert.Equal(t, "هُ", analyses[0].Suffix)
	})

	t.Run("article excludes pronoun suffix", func(t *testing.T) {
		assert.Empty(t, a.Analyze("الكتابه"))
	})

	t.Run("article does not attach to verbs", func(t *testing.T) {
		for _, an := range a.Analyze("الكتب") {
			assert.NotEqual(t, "verb", an.POS)
		}
	})
}

func TestAnalyze_NormalizesInput(t *testing.T) {
	a := builtinAnalyzer(t)

	plain := a.Analyze("كتب")
	assert.Equal(t, plain, a.Analyze("كَتَبَ"))
	assert.Equal(t, plain, a.Analyze("كـتـب"))
	assert.Equal(t, plain, a.Analyze("  كتب "))

	// hamza forms fold to bare alef on both sides
	assert.Equal(t, a.Analyze("إلى"), a.Analyze("الى"))
	assert.NotEmpty(t, a.Analyze("الى"))
}

func TestAnalyze_NoAnalysis(t *testing.T) {
	a := builtinAnalyzer(t)

	assert.Empty(t, a.Analyze(""))
	assert.Empty(t, a.Analyze("   "))
	assert.Empty(t, a.Analyze("Hello"))
	assert.Empty(t, a.Analyze("فلسطين"))
	assert.NotNil(t, a.Analyze("Hello"))
}

func TestAnalyze_FunctionWordRoot(t *testing.T) {
	a := builtinAnalyzer(t)

	analyses := a.Analyze("في")
	require.NotEmpty(t, analyses)
	assert.Equal(t, NoRoot, analyses[0].Root)
	assert.Equal(t, "prep", analyses[0].POS)
}

func TestAnalysisFeature(t *testing.T) {
	an := Analysis{Diac: "d", Lex: "l", Root: "r", Stem: "s", POS: "p", Gloss: "g"}

	want := map[string]string{
		FeatureDiac: "d", FeatureLex: "l", FeatureRoot: "r",
		FeatureStem: "s", FeaturePOS: "p", FeatureGloss: "g",
	}
	for _, name := range Features {
		got, ok := an.Feature(name)
		assert.True(t, ok, name)
		assert.Equal(t, want[name], got, name)
	}

	_, ok := an.Feature("case")
	assert.False(t, ok)
}
