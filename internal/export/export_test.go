package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FocuswithJustin/SwordFlex/core/errors"
)

func TestSuggestedFilename(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"John 1:1", "John_1-1.flextext"},
		{"John 1:1-18", "John_1-1-18.flextext"},
		{"1 John 2:3", "1_John_2-3.flextext"},
		{"  John 1:1  ", "John_1-1.flextext"},
		{"", "interlinear.flextext"},
	}
	for _, tt := range tests {
		if got := SuggestedFilename(tt.ref); got != tt.want {
			t.Errorf("SuggestedFilename(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestWriteFlexText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.flextext")

	res, err := WriteFlexText(path, "John 1:1", "<document/>")
	if err != nil {
		t.Fatalf("WriteFlexText failed: %v", err)
	}
	if res.Path != path {
		t.Errorf("Path = %q, want %q", res.Path, path)
	}
	if res.Bytes != len("<document/>") {
		t.Errorf("Bytes = %d", res.Bytes)
	}
	if len(res.Hash) != 64 {
		t.Errorf("Hash = %q, want 64 hex chars", res.Hash)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if string(data) != "<document/>" {
		t.Errorf("file content = %q", data)
	}
}

func TestWriteFlexTextEnforcesExtension(t *testing.T) {
	dir := t.TempDir()

	res, err := WriteFlexText(filepath.Join(dir, "out"), "John 1:1", "x")
	if err != nil {
		t.Fatalf("WriteFlexText failed: %v", err)
	}
	if !strings.HasSuffix(res.Path, ".flextext") {
		t.Errorf("Path = %q, want .flextext suffix", res.Path)
	}
}

func TestWriteFlexTextDirectoryTarget(t *testing.T) {
	dir := t.TempDir()

	res, err := WriteFlexText(dir, "John 1:1-18", "x")
	if err != nil {
		t.Fatalf("WriteFlexText failed: %v", err)
	}
	want := filepath.Join(dir, "John_1-1-18.flextext")
	if res.Path != want {
		t.Errorf("Path = %q, want %q", res.Path, want)
	}
}

func TestWriteFlexTextCreatesParents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "out.flextext")

	if _, err := WriteFlexText(path, "John 1:1", "x"); err != nil {
		t.Fatalf("WriteFlexText failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("export missing: %v", err)
	}
}

func TestWriteFlexTextHashIsStable(t *testing.T) {
	dir := t.TempDir()

	a, err := WriteFlexText(filepath.Join(dir, "a.flextext"), "John 1:1", "same content")
	if err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	b, err := WriteFlexText(filepath.Join(dir, "b.flextext"), "John 1:1", "same content")
	if err != nil {
		t.Fatalf("second write failed: %v", err)
	}
	if a.Hash != b.Hash {
		t.Errorf("same content hashed differently: %q vs %q", a.Hash, b.Hash)
	}

	c, err := WriteFlexText(filepath.Join(dir, "c.flextext"), "John 1:1", "other content")
	if err != nil {
		t.Fatalf("third write failed: %v", err)
	}
	if c.Hash == a.Hash {
		t.Error("different content produced the same hash")
	}
}

func TestWriteFlexTextUnwritableParent(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocker, []byte("file"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	// Parent path component is a regular file: mkdir must fail.
	_, err := WriteFlexText(filepath.Join(blocker, "out.flextext"), "John 1:1", "x")
	if err == nil {
		t.Fatal("expected error for unwritable parent")
	}
	var dbe *errors.DocumentBuildError
	if !errors.As(err, &dbe) {
		t.Fatalf("expected DocumentBuildError, got %T: %v", err, err)
	}

	// No partial output anywhere under the blocked path.
	if _, statErr := os.Stat(filepath.Join(blocker, "out.flextext")); !os.IsNotExist(statErr) {
		t.Error("partial output left behind")
	}
}

func TestWriteFlexTextNoPartialOnFailure(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "John_1-1.flextext"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	// The resolved default filename exists as a directory: export must
	// refuse, not half-write.
	_, err := WriteFlexText(dir, "John 1:1", "x")
	if err == nil {
		t.Fatal("expected error when target is a directory")
	}
	var dbe *errors.DocumentBuildError
	if !errors.As(err, &dbe) {
		t.Fatalf("expected DocumentBuildError, got %T: %v", err, err)
	}

	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("readdir: %v", readErr)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".export-") {
			t.Errorf("stray temp file left behind: %s", e.Name())
		}
	}
}
