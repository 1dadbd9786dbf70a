// Package source defines the text-source capability consumed by the
// interlinear core: raw tagged verse text, lexicon entries, and phrase
// translations.
//
// Two interchangeable implementations exist: a SQLite module database
// (sqlitesrc) and a flat-file repository (dirsrc). Open picks one at
// startup and callers never branch on which is active.
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/FocuswithJustin/SwordFlex/internal/logging"
	"github.com/FocuswithJustin/SwordFlex/internal/source/dirsrc"
	"github.com/FocuswithJustin/SwordFlex/internal/source/sqlitesrc"
)

// Source supplies raw module data for one installed text module.
type Source interface {
	// RawTaggedVerse returns raw tagged text for one verse. An error
	// signals "verse unavailable".
	RawTaggedVerse(ctx context.Context, book string, chapter, verse int) (string, error)

	// LexiconEntry returns raw lexicon text for a digit-only Strong's
	// key. An empty string signals "no entry".
	LexiconEntry(ctx context.Context, digitKey string) (string, error)

	// PhraseTranslation returns a plain-text translation of one verse
	// from the named translation module. Empty signals "unavailable",
	// never an error.
	PhraseTranslation(ctx context.Context, translationID, book string, chapter, verse int) string

	// Translations lists the available translation module IDs.
	Translations() []string

	// Close releases backend resources.
	Close() error
}

// Config selects and locates the backing module data.
type Config struct {
	// Path is a SQLite module database file or a module repository
	// directory.
	Path string
}

// moduleDBName is the database file probed inside a repository directory.
const moduleDBName = "module.db"

// Open probes cfg.Path and opens the matching implementation: a regular
// file opens as a SQLite module database; a directory opens as a SQLite
// database if it contains one, otherwise as a flat-file repository.
func Open(cfg Config) (Source, error) {
	info, err := os.Stat(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot open module source %s: %w", cfg.Path, err)
	}

	if !info.IsDir() {
		logging.SourceEvent("open", "sqlite", "path", cfg.Path)
		return sqlitesrc.Open(cfg.Path)
	}

	dbPath := filepath.Join(cfg.Path, moduleDBName)
	if _, err := os.Stat(dbPath); err == nil {
		logging.SourceEvent("open", "sqlite", "path", dbPath)
		return sqlitesrc.Open(dbPath)
	}

	logging.SourceEvent("open", "dir", "path", cfg.Path)
	return dirsrc.Open(cfg.Path)
}
