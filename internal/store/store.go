// Package store keeps imported word corpora in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/bananatype/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNoCorpus is returned when a language has no imported words.
var ErrNoCorpus = errors.New("no corpus for language")

// Store wraps SQLite access for word corpora.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS corpora (
			lang TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			imported_at TEXT NOT NULL,
			word_count INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS words (
			lang TEXT NOT NULL,
			rank INTEGER NOT NULL,
			word TEXT NOT NULL,
			PRIMARY KEY (lang, rank)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceCorpus swaps the words stored for lang in one transaction. Words keep
// their order as rank.
func (s *Store) ReplaceCorpus(ctx context.Context, lang, source string, words []string) (err error) {
	if lang == "" {
		return fmt.Errorf("corpus language is empty")
	}
	if len(words) == 0 {
		return fmt.Errorf("corpus for %s is empty", lang)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM words WHERE lang = ?`, lang); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO words (lang, rank, word) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for rank, word := range words {
		if _, err = stmt.ExecContext(ctx, lang, rank, word); err != nil {
			return err
		}
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO corpora (lang, source, imported_at, word_count) VALUES (?, ?, ?, ?)
		 ON CONFLICT(lang) DO UPDATE SET source = excluded.source, imported_at = excluded.imported_at, word_count = excluded.word_count`,
		lang, source, time.Now().UTC().Format(time.RFC3339Nano), len(words))
	if err != nil {
		return err
	}
	return tx.Commit()
}

// Words returns the corpus for lang ordered by rank. ErrNoCorpus is returned when
// nothing was imported.
func (s *Store) Words(ctx context.Context, lang string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word FROM words WHERE lang = ? ORDER BY rank ASC`, lang)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var words []string
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w %q", ErrNoCorpus, lang)
	}
	return words, nil
}

// HasCorpus reports whether lang has imported words.
func (s *Store) HasCorpus(ctx context.Context, lang string) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM corpora WHERE lang = ?`, lang).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListCorpora returns every imported corpus ordered by language.
func (s *Store) ListCorpora(ctx context.Context) ([]model.CorpusInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT lang, source, imported_at, word_count FROM corpora ORDER BY lang ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.CorpusInfo
	for rows.Next() {
		var info model.CorpusInfo
		var importedAt string
		if err := rows.Scan(&info.Lang, &info.Source, &importedAt, &info.WordCount); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, importedAt)
		if err != nil {
			return nil, err
		}
		info.ImportedAt = parsed
		result = append(result, info)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
