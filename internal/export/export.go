// Package export writes generated documents to disk: FlexText files
// and per-book interlinear JSON datasets.
package export

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/SwordFlex/core/errors"
	"github.com/FocuswithJustin/SwordFlex/internal/logging"
)

// Extension is the FlexText interchange file extension.
const Extension = ".flextext"

// Result describes one completed export.
type Result struct {
	Path  string // final absolute or caller-relative path
	Bytes int    // bytes written
	Hash  string // BLAKE3 content hash, lowercase hex
}

var filenameReplacer = strings.NewReplacer(" ", "_", ":", "-")

// SuggestedFilename derives a filesystem-safe FlexText filename from a
// passage reference: spaces become underscores, colons become hyphens.
func SuggestedFilename(ref string) string {
	name := filenameReplacer.Replace(strings.TrimSpace(ref))
	if name == "" {
		name = "interlinear"
	}
	return name + Extension
}

// resolveTarget normalizes the save path: a directory target gets the
// suggested filename inside it, and the FlexText extension is enforced.
func resolveTarget(path, ref string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, SuggestedFilename(ref))
	}
	if !strings.HasSuffix(strings.ToLower(path), Extension) {
		path += Extension
	}
	return path
}

// WriteFlexText writes document to the target path derived from path
// and ref. Parent directories are created. The write is atomic: a temp
// file in the target directory renamed into place, so a failed export
// never leaves partial output behind.
func WriteFlexText(path, ref, document string) (*Result, error) {
	target := resolveTarget(path, ref)

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &errors.DocumentBuildError{
			Stage:   "create export directory",
			Path:    dir,
			Message: "cannot create parent directories",
			Err:     err,
		}
	}

	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return nil, &errors.DocumentBuildError{
			Stage:   "resolve export path",
			Path:    target,
			Message: "target is a directory",
		}
	}

	data := []byte(document)
	if err := atomicWrite(target, data); err != nil {
		return nil, &errors.DocumentBuildError{
			Stage:   "write document",
			Path:    target,
			Message: "cannot write export file",
			Err:     err,
		}
	}

	sum := blake3.Sum256(data)
	hash := hex.EncodeToString(sum[:])
	logging.Info("export complete", "path", target, "bytes", len(data), "blake3", hash)

	return &Result{Path: target, Bytes: len(data), Hash: hash}, nil
}

// writeDataset writes an encoded dataset (book JSON) to path with the
// same guarantees as WriteFlexText: parents created, atomic rename,
// BLAKE3 hash in the result.
func writeDataset(path string, data []byte, label string) (*Result, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &errors.DocumentBuildError{
			Stage:   "create export directory",
			Path:    dir,
			Message: "cannot create parent directories",
			Err:     err,
		}
	}
	if err := atomicWrite(path, data); err != nil {
		return nil, &errors.DocumentBuildError{
			Stage:   "write dataset",
			Path:    path,
			Message: "cannot write export file",
			Err:     err,
		}
	}

	sum := blake3.Sum256(data)
	hash := hex.EncodeToString(sum[:])
	logging.Info("dataset export complete", "label", label, "path", path, "bytes", len(data), "blake3", hash)
	return &Result{Path: path, Bytes: len(data), Hash: hash}, nil
}

// atomicWrite writes data via a temp file in the target directory and
// renames it into place.
func atomicWrite(target string, data []byte) error {
	dir := filepath.Dir(target)
	tempFile, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tempPath, target); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
