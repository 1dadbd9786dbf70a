// Package sqlitesrc serves module text from a single SQLite database
// with three tables: verses, lexicon, and translations.
package sqlitesrc

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/FocuswithJustin/SwordFlex/core/errors"
	"github.com/FocuswithJustin/SwordFlex/internal/logging"
)

// DriverType reports which SQLite driver variant this binary was built
// with: "purego" (modernc) or "cgo" (mattn, cgo_sqlite build tag).
func DriverType() string {
	return driverType
}

// DB is a SQLite-backed module source.
type DB struct {
	db           *sql.DB
	translations []string
}

// Open opens the module database at path and preloads the translation
// module list. The verses table must exist; translations are optional.
func Open(path string) (*DB, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open module database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open module database %s: %w", path, err)
	}

	logging.Debug("module database opened", "path", path, "driver", driverType)

	s := &DB{db: db}
	s.translations = s.loadTranslations()
	return s, nil
}

func (s *DB) loadTranslations() []string {
	rows, err := s.db.Query(`SELECT DISTINCT translation_id FROM translations`)
	if err != nil {
		// The table is optional in word-study-only modules.
		logging.Debug("no translation table in module database", "error", err)
		return nil
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RawTaggedVerse returns the stored tagged text for one verse. A verse
// absent from the database is a BackendError wrapping ErrNotFound.
func (s *DB) RawTaggedVerse(ctx context.Context, book string, chapter, verse int) (string, error) {
	ref := fmt.Sprintf("%s %d:%d", book, chapter, verse)
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT raw_text FROM verses WHERE book = ? AND chapter = ? AND verse = ?`,
		book, chapter, verse).Scan(&raw)
	if err == sql.ErrNoRows {
		return "", &errors.BackendError{Operation: "fetch verse", Ref: ref, Err: errors.ErrNotFound}
	}
	if err != nil {
		return "", &errors.BackendError{Operation: "fetch verse", Ref: ref, Err: err}
	}
	return raw, nil
}

// LexiconEntry returns raw lexicon text for a digit-only Strong's key.
// A missing entry is not an error: the gloss resolver falls through to
// its next strategy.
func (s *DB) LexiconEntry(ctx context.Context, digitKey string) (string, error) {
	var def string
	err := s.db.QueryRowContext(ctx,
		`SELECT definition FROM lexicon WHERE strongs = ?`, digitKey).Scan(&def)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", &errors.BackendError{Operation: "fetch lexicon entry", Ref: digitKey, Err: err}
	}
	return def, nil
}

// PhraseTranslation returns the named translation's text for one verse,
// or empty when unavailable. Lookup failures degrade to empty.
func (s *DB) PhraseTranslation(ctx context.Context, translationID, book string, chapter, verse int) string {
	var text string
	err := s.db.QueryRowContext(ctx,
		`SELECT text FROM translations WHERE translation_id = ? AND book = ? AND chapter = ? AND verse = ?`,
		translationID, book, chapter, verse).Scan(&text)
	if err != nil {
		return ""
	}
	return text
}

// Translations lists translation module IDs found at open time.
func (s *DB) Translations() []string {
	return s.translations
}

// Close closes the underlying database handle.
func (s *DB) Close() error {
	return s.db.Close()
}

// CreateSchema creates the module tables if absent. Module build
// tooling and tests use it; Open never mutates an existing database.
func (s *DB) CreateSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS verses (
			book TEXT NOT NULL,
			chapter INTEGER NOT NULL,
			verse INTEGER NOT NULL,
			raw_text TEXT NOT NULL,
			PRIMARY KEY (book, chapter, verse)
		)`,
		`CREATE TABLE IF NOT EXISTS lexicon (
			strongs TEXT PRIMARY KEY,
			definition TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS translations (
			translation_id TEXT NOT NULL,
			book TEXT NOT NULL,
			chapter INTEGER NOT NULL,
			verse INTEGER NOT NULL,
			text TEXT NOT NULL,
			PRIMARY KEY (translation_id, book, chapter, verse)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create module schema: %w", err)
		}
	}
	return nil
}

// PutVerse stores raw tagged text for one verse, replacing any prior row.
func (s *DB) PutVerse(ctx context.Context, book string, chapter, verse int, raw string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO verses (book, chapter, verse, raw_text) VALUES (?, ?, ?, ?)`,
		book, chapter, verse, raw)
	return err
}

// PutLexiconEntry stores a lexicon definition keyed by digit-only
// Strong's number.
func (s *DB) PutLexiconEntry(ctx context.Context, digitKey, definition string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO lexicon (strongs, definition) VALUES (?, ?)`,
		digitKey, definition)
	return err
}

// PutTranslation stores one verse of a translation module.
func (s *DB) PutTranslation(ctx context.Context, translationID, book string, chapter, verse int, text string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO translations (translation_id, book, chapter, verse, text) VALUES (?, ?, ?, ?, ?)`,
		translationID, book, chapter, verse, text)
	if err == nil && !contains(s.translations, translationID) {
		s.translations = append(s.translations, translationID)
		sort.Strings(s.translations)
	}
	return err
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
