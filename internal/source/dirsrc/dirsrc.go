// Package dirsrc serves module text from a flat-file repository
// directory. It is the fallback backend when no SQLite module
// database is present.
//
// Repository layout:
//
//	mods.d/*.conf                     module metadata (optional)
//	texts/<Book>/<chapter>/<verse>.txt    raw tagged verse text
//	lexicon/<digits>.txt              lexicon entries by Strong's number
//	translations/<ID>/<Book>/<chapter>/<verse>.txt
package dirsrc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/SwordFlex/core/errors"
	"github.com/FocuswithJustin/SwordFlex/internal/logging"
)

// Dir is a flat-file module source rooted at one repository directory.
type Dir struct {
	root         string
	modules      []*ModuleInfo
	translations []string
}

// Open opens the repository rooted at root. A missing texts/ directory
// is an error; mods.d/ and translations/ are optional.
func Open(root string) (*Dir, error) {
	if _, err := os.Stat(filepath.Join(root, "texts")); err != nil {
		return nil, fmt.Errorf("not a module repository (no texts directory): %s", root)
	}

	d := &Dir{root: root}
	d.modules = d.loadModules()
	d.translations = d.loadTranslations()
	return d, nil
}

func (d *Dir) loadModules() []*ModuleInfo {
	entries, err := os.ReadDir(filepath.Join(d.root, "mods.d"))
	if err != nil {
		return nil
	}

	var mods []*ModuleInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".conf") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(d.root, "mods.d", e.Name()))
		if err != nil {
			continue
		}
		info, err := parseConf(data)
		if err != nil {
			logging.Warn("skipping unparseable module conf", "file", e.Name(), "error", err)
			continue
		}
		mods = append(mods, info)
	}
	return mods
}

func (d *Dir) loadTranslations() []string {
	entries, err := os.ReadDir(filepath.Join(d.root, "translations"))
	if err != nil {
		return nil
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids
}

// Modules lists metadata parsed from mods.d.
func (d *Dir) Modules() []*ModuleInfo {
	return d.modules
}

func versePath(base, book string, chapter, verse int) string {
	return filepath.Join(base, book, strconv.Itoa(chapter), strconv.Itoa(verse)+".txt")
}

// RawTaggedVerse reads the tagged text file for one verse. A missing
// file is a BackendError wrapping ErrNotFound.
func (d *Dir) RawTaggedVerse(ctx context.Context, book string, chapter, verse int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ref := fmt.Sprintf("%s %d:%d", book, chapter, verse)
	data, err := os.ReadFile(versePath(filepath.Join(d.root, "texts"), book, chapter, verse))
	if os.IsNotExist(err) {
		return "", &errors.BackendError{Operation: "fetch verse", Ref: ref, Err: errors.ErrNotFound}
	}
	if err != nil {
		return "", &errors.BackendError{Operation: "fetch verse", Ref: ref, Err: err}
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// LexiconEntry reads the lexicon file for a digit-only Strong's key.
// A missing entry is not an error.
func (d *Dir) LexiconEntry(ctx context.Context, digitKey string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(filepath.Join(d.root, "lexicon", digitKey+".txt"))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", &errors.BackendError{Operation: "fetch lexicon entry", Ref: digitKey, Err: err}
	}
	return string(data), nil
}

// PhraseTranslation reads one verse of a translation module, or empty
// when unavailable.
func (d *Dir) PhraseTranslation(ctx context.Context, translationID, book string, chapter, verse int) string {
	if ctx.Err() != nil {
		return ""
	}

	data, err := os.ReadFile(versePath(filepath.Join(d.root, "translations", translationID), book, chapter, verse))
	if err != nil {
		return ""
	}
	return strings.TrimRight(string(data), "\r\n")
}

// Translations lists translation module IDs found at open time.
func (d *Dir) Translations() []string {
	return d.translations
}

// Close is a no-op; the repository holds no open handles.
func (d *Dir) Close() error {
	return nil
}
