package morphology

import (
	"sort"
	"strings"
)

// Analysis is one reading of a word.
type Analysis struct {
	Diac   string  `json:"diac"`
	Lex    string  `json:"lex"`
	Root   string  `json:"root"`
	Stem   string  `json:"stem"`
	POS    string  `json:"pos"`
	Gloss  string  `json:"gloss"`
	Prefix string  `json:"prefix,omitempty"`
	Suffix string  `json:"suffix,omitempty"`
	Score  float64 `json:"score"`
}

// Feature names accepted by Analysis.Feature.
const (
	FeatureDiac  = "diac"
	FeatureLex   = "lex"
	FeatureRoot  = "root"
	FeatureStem  = "stem"
	FeaturePOS   = "pos"
	FeatureGloss = "gloss"
)

// Features lists every feature name in a stable order.
var Features = []string{FeatureDiac, FeatureLex, FeatureRoot, FeatureStem, FeaturePOS, FeatureGloss}

// Feature returns the value of the named feature.
func (a Analysis) Feature(name string) (string, bool) {
	switch name {
	case FeatureDiac:
		return a.Diac, true
	case FeatureLex:
		return a.Lex, true
	case FeatureRoot:
		return a.Root, true
	case FeatureStem:
		return a.Stem, true
	case FeaturePOS:
		return a.POS, true
	case FeatureGloss:
		return a.Gloss, true
	}
	return "", false
}

// Analyzer produces analyses from a DB.
type Analyzer struct {
	db *DB
}

// NewAnalyzer creates a new Analyzer over db.
func NewAnalyzer(db *DB) *Analyzer {
	return &Analyzer{db: db}
}

// DB returns the underlying lexicon.
func (a *Analyzer) DB() *DB {
	return a.db
}

// Analyze returns every valid segmentation of word, best score first.
// Ties are broken by diacritized form so the order is deterministic.
// A word with no reading yields an empty slice.
func (a *Analyzer) Analyze(word string) []Analysis {
	key := Normalize(word)
	if key == "" {
		return []Analysis{}
	}

	out := []Analysis{}
	for _, p := range a.db.prefixes {
		if !strings.HasPrefix(key, p.Form) {
			continue
		}
		rest := key[len(p.Form):]

		for _, s := range a.db.suffixes {
			if !strings.HasSuffix(rest, s.Form) || len(rest) == len(s.Form) {
				continue
			}
			if p.Definite && s.Pronominal {
				continue
			}
			stemKey := rest[:len(rest)-len(s.Form)]

			for _, st := range a.db.stems[stemKey] {
				if !p.allows(st.POS) || !s.allows(st.POS) {
					continue
				}
				out = append(out, compose(p, st, s))
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Diac < out[j].Diac
	})

	return out
}

func compose(p Affix, st Stem, s Affix) Analysis {
	glosses := make([]string, 0, 3)
	for _, g := range []string{p.Gloss, st.Gloss, s.Gloss} {
		if g != "" {
			glosses = append(glosses, g)
		}
	}

	return Analysis{
		Diac:   p.Diac + st.Diac + s.Diac,
		Lex:    st.Lex,
		Root:   st.Root,
		Stem:   st.Stem,
		POS:    st.POS,
		Gloss:  strings.Join(glosses, "+"),
		Prefix: p.Diac,
		Suffix: s.Diac,
		Score:  st.Freq * p.Weight * s.Weight,
	}
}
