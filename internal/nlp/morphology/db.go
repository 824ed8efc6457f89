// Package morphology holds the lexicon (prefixes, stems and suffixes) and the
// analyzer that segments a word into every valid prefix+stem+suffix reading.
package morphology

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/camel-tools-api/camel-api/internal/nlp/dediac"
)

// NoRoot is the root reported for function words and backoff analyses.
const NoRoot = "NTWS"

var (
	ErrEmptyDB     = errors.New("morphology db has no stems")
	ErrInvalidStem = errors.New("invalid stem entry")
)

// Affix is a proclitic or enclitic entry.
type Affix struct {
	Form       string   `json:"form" yaml:"form"`
	Diac       string   `json:"diac" yaml:"diac"`
	Gloss      string   `json:"gloss,omitempty" yaml:"gloss"`
	POS        []string `json:"pos,omitempty" yaml:"pos"` // stem POS values this affix attaches to; empty means any
	Definite   bool     `json:"definite,omitempty" yaml:"definite"`
	Pronominal bool     `json:"pronominal,omitempty" yaml:"pronominal"`
	Weight     float64  `json:"weight,omitempty" yaml:"weight"`
}

func (a Affix) allows(pos string) bool {
	if len(a.POS) == 0 {
		return true
	}
	for _, p := range a.POS {
		if p == pos {
			return true
		}
	}
	return false
}

// Stem is a lexical entry.
type Stem struct {
	Form  string  `json:"form" yaml:"form"`
	Diac  string  `json:"diac" yaml:"diac"`
	Stem  string  `json:"stem" yaml:"stem"`
	Lex   string  `json:"lex" yaml:"lex"`
	Root  string  `json:"root" yaml:"root"`
	POS   string  `json:"pos" yaml:"pos"`
	Gloss string  `json:"gloss,omitempty" yaml:"gloss"`
	Freq  float64 `json:"freq" yaml:"freq"`
}

// DB is an immutable lexicon. It is safe for concurrent use.
type DB struct {
	prefixes []Affix
	suffixes []Affix
	stems    map[string][]Stem
	size     int
	digest   string
}

// Normalize returns the lookup key of a word: diacritics and tatweel are
// removed and hamzated alef forms are folded to bare alef.
func Normalize(word string) string {
	return alefFolder.Replace(dediac.Dediac(strings.TrimSpace(word)))
}

var alefFolder = strings.NewReplacer(
	"أ", "ا",
	"إ", "ا",
	"آ", "ا",
	"ٱ", "ا",
)

// NewDB validates the given entries and builds the lookup index. The null
// prefix and null suffix are always present and need not be listed.
func NewDB(prefixes []Affix, stems []Stem, suffixes []Affix) (*DB, error) {
	db := &DB{
		prefixes: normalizeAffixes(prefixes),
		suffixes: normalizeAffixes(suffixes),
		stems:    make(map[string][]Stem, len(stems)),
	}

	for i, s := range stems {
		if s.Diac == "" || s.POS == "" {
			return nil, fmt.Errorf("%w: entry %d needs diac and pos", ErrInvalidStem, i)
		}
		if s.Freq < 0 {
			return nil, fmt.Errorf("%w: entry %d (%s) has negative freq", ErrInvalidStem, i, s.Diac)
		}
		if s.Form == "" {
			s.Form = s.Diac
		}
		s.Form = Normalize(s.Form)
		if s.Stem == "" {
			s.Stem = s.Diac
		}
		if s.Lex == "" {
			s.Lex = s.Stem
		}
		if s.Root == "" {
			s.Root = NoRoot
		}
		db.stems[s.Form] = append(db.stems[s.Form], s)
		db.size++
	}

	if db.size == 0 {
		return nil, ErrEmptyDB
	}

	digest, err := db.fingerprint()
	if err != nil {
		return nil, err
	}
	db.digest = digest

	return db, nil
}

// fingerprint hashes the normalized entries in a fixed order, so that two
// DBs with the same content share a fingerprint however they were loaded.
func (db *DB) fingerprint() (string, error) {
	prefixes := db.Prefixes()
	suffixes := db.Suffixes()
	sortAffixes(prefixes)
	sortAffixes(suffixes)

	data, err := json.Marshal(struct {
		Prefixes []Affix `json:"prefixes"`
		Suffixes []Affix `json:"suffixes"`
		Stems    []Stem  `json:"stems"`
	}{prefixes, suffixes, db.Stems()})
	if err != nil {
		return "", fmt.Errorf("fingerprint morphology db: %w", err)
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8]), nil
}

func sortAffixes(affixes []Affix) {
	sort.Slice(affixes, func(i, j int) bool {
		if affixes[i].Form != affixes[j].Form {
			return affixes[i].Form < affixes[j].Form
		}
		return affixes[i].Diac < affixes[j].Diac
	})
}

// normalizeAffixes puts the null affix first, fills missing forms and
// weights and drops duplicates by form+diac.
func normalizeAffixes(in []Affix) []Affix {
	out := make([]Affix, 0, len(in)+1)
	out = append(out, Affix{Weight: 1})
	seen := map[string]bool{"\x00": true}

	for _, a := range in {
		if a.Form == "" {
			a.Form = a.Diac
		}
		a.Form = Normalize(a.Form)
		if a.Form == "" {
			continue
		}
		if a.Weight <= 0 {
			a.Weight = 1
		}
		key := a.Form + "\x00" + a.Diac
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, a)
	}

	return out
}

// Lookup returns the stems indexed under the normalized form of word.
func (db *DB) Lookup(word string) []Stem {
	entries := db.stems[Normalize(word)]
	out := make([]Stem, len(entries))
	copy(out, entries)
	return out
}

// Fingerprint identifies the lexicon content. It changes whenever any
// affix or stem entry does.
func (db *DB) Fingerprint() string {
	return db.digest
}

// Size returns the number of stem entries.
func (db *DB) Size() int {
	return db.size
}

// Prefixes returns the non-null prefixes.
func (db *DB) Prefixes() []Affix {
	return append([]Affix(nil), db.prefixes[1:]...)
}

// Suffixes returns the non-null suffixes.
func (db *DB) Suffixes() []Affix {
	return append([]Affix(nil), db.suffixes[1:]...)
}

// Stems returns every stem entry ordered by form, then by descending frequency.
func (db *DB) Stems() []Stem {
	out := make([]Stem, 0, db.size)
	for _, entries := range db.stems {
		out = append(out, entries...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Form != out[j].Form {
			return out[i].Form < out[j].Form
		}
		if out[i].Freq != out[j].Freq {
			return out[i].Freq > out[j].Freq
		}
		return out[i].Diac < out[j].Diac
	})
	return out
}
