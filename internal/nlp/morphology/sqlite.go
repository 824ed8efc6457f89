package morphology

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const (
	affixPrefix = "prefix"
	affixSuffix = "suffix"
)

const schema = `
CREATE TABLE IF NOT EXISTS affixes (
	kind TEXT NOT NULL,
	form TEXT NOT NULL,
	diac TEXT NOT NULL,
	gloss TEXT NOT NULL DEFAULT '',
	pos TEXT NOT NULL DEFAULT '',
	definite INTEGER NOT NULL DEFAULT 0,
	pronominal INTEGER NOT NULL DEFAULT 0,
	weight REAL NOT NULL DEFAULT 1,
	UNIQUE(kind, form, diac)
);

CREATE TABLE IF NOT EXISTS stems (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	form TEXT NOT NULL,
	diac TEXT NOT NULL,
	stem TEXT NOT NULL,
	lex TEXT NOT NULL,
	root TEXT NOT NULL,
	pos TEXT NOT NULL,
	gloss TEXT NOT NULL DEFAULT '',
	freq REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_stems_form ON stems(form);
`

// LoadSQLite reads a lexicon from a SQLite file written by SaveSQLite.
func LoadSQLite(ctx context.Context, path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open morphology db %s: %w", path, err)
	}
	defer conn.Close()

	prefixes, suffixes, err := readAffixes(ctx, conn)
	if err != nil {
		return nil, err
	}

	stems, err := readStems(ctx, conn)
	if err != nil {
		return nil, err
	}

	return NewDB(prefixes, stems, suffixes)
}

func readAffixes(ctx context.Context, conn *sql.DB) ([]Affix, []Affix, error) {
	rows, err := conn.QueryContext(ctx,
		`SELECT kind, form, diac, gloss, pos, definite, pronominal, weight FROM affixes ORDER BY rowid`)
	if err != nil {
		return nil, nil, fmt.Errorf("query affixes: %w", err)
	}
	defer rows.Close()

	var prefixes, suffixes []Affix
	for rows.Next() {
		var (
			kind, pos            string
			definite, pronominal int
			a                    Affix
		)
		if err := rows.Scan(&kind, &a.Form, &a.Diac, &a.Gloss, &pos, &definite, &pronominal, &a.Weight); err != nil {
			return nil, nil, fmt.Errorf("scan affix: %w", err)
		}
		a.POS = splitPOS(pos)
		a.Definite = definite != 0
		a.Pronominal = pronominal != 0

		switch kind {
		case affixPrefix:
			prefixes = append(prefixes, a)
		case affixSuffix:
			suffixes = append(suffixes, a)
		default:
			return nil, nil, fmt.Errorf("unknown affix kind %q", kind)
		}
	}

	return prefixes, suffixes, rows.Err()
}

func readStems(ctx context.Context, conn *sql.DB) ([]Stem, error) {
	rows, err := conn.QueryContext(ctx,
		`SELECT form, diac, stem, lex, root, pos, gloss, freq FROM stems ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query stems: %w", err)
	}
	defer rows.Close()

	var stems []Stem
	for rows.Next() {
		var s Stem
		if err := rows.Scan(&s.Form, &s.Diac, &s.Stem, &s.Lex, &s.Root, &s.POS, &s.Gloss, &s.Freq); err != nil {
			return nil, fmt.Errorf("scan stem: %w", err)
		}
		stems = append(stems, s)
	}

	return stems, rows.Err()
}

// SaveSQLite writes db to a SQLite file, creating the schema if needed.
// Existing rows in the target file are replaced.
func SaveSQLite(ctx context.Context, path string, db *DB) error {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open morphology db %s: %w", path, err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM affixes`); err != nil {
		return fmt.Errorf("clear affixes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM stems`); err != nil {
		return fmt.Errorf("clear stems: %w", err)
	}

	for kind, affixes := range map[string][]Affix{affixPrefix: db.Prefixes(), affixSuffix: db.Suffixes()} {
		for _, a := range affixes {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO affixes (kind, form, diac, gloss, pos, definite, pronominal, weight) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				kind, a.Form, a.Diac, a.Gloss, strings.Join(a.POS, ","), boolToInt(a.Definite), boolToInt(a.Pronominal), a.Weight)
			if err != nil {
				return fmt.Errorf("insert %s %s: %w", kind, a.Form, err)
			}
		}
	}

	for _, s := range db.Stems() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO stems (form, diac, stem, lex, root, pos, gloss, freq) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			s.Form, s.Diac, s.Stem, s.Lex, s.Root, s.POS, s.Gloss, s.Freq)
		if err != nil {
			return fmt.Errorf("insert stem %s: %w", s.Diac, err)
		}
	}

	return tx.Commit()
}

func splitPOS(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
