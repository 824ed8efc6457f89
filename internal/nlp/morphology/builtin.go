package morphology

import (
	"context"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

//go:embed builtin.yaml
var builtinYAML []byte

// BuiltinDB returns the lexicon shipped with the binary. It is parsed on
// first use and shared afterwards.
var BuiltinDB = sync.OnceValues(func() (*DB, error) {
	db, err := ParseYAML(builtinYAML)
	if err != nil {
		return nil, fmt.Errorf("builtin db: %w", err)
	}
	return db, nil
})

// Open loads a lexicon by path. An empty path selects the builtin DB;
// otherwise the extension picks the format (.yaml/.yml or .db/.sqlite/.sqlite3).
func Open(ctx context.Context, path string) (*DB, error) {
	if path == "" {
		return BuiltinDB()
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("unsupported morphology db format: %s", path)
	}
}
