package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FocuswithJustin/SwordFlex/core/errors"
	"github.com/FocuswithJustin/SwordFlex/core/interlinear"
)

// mapFetcher serves verses from a map keyed by "chapter:verse".
type mapFetcher struct {
	book   string
	verses map[string][]interlinear.Word
	probes int
}

func (m *mapFetcher) FetchVerse(_ context.Context, book string, chapter, verse int) (*interlinear.Verse, error) {
	m.probes++
	words, ok := m.verses[fmt.Sprintf("%d:%d", chapter, verse)]
	if !ok {
		return nil, &errors.BackendError{Operation: "fetch verse", Ref: "x", Err: errors.ErrNotFound}
	}
	return &interlinear.Verse{Book: book, Chapter: chapter, Verse: verse, Words: words}, nil
}

func word(surface, strongs, gloss, lemma string) []interlinear.Word {
	return []interlinear.Word{{Surface: surface, StrongsKey: strongs, Gloss: gloss, Lemma: lemma}}
}

func TestExportBook(t *testing.T) {
	fetcher := &mapFetcher{
		book: "John",
		verses: map[string][]interlinear.Word{
			"1:1": word("λόγος", "G3056", "word", "λόγος"),
			"1:2": word("οὗτος", "G3778", "this", "οὗτος"),
			"2:1": word("καί", "G2532", "and", "καί"),
		},
	}
	translate := func(book string, chapter, verse int) string {
		if chapter == 1 && verse == 1 {
			return "In the beginning was the Word"
		}
		return ""
	}

	path := filepath.Join(t.TempDir(), "john.json")
	res, err := ExportBook(context.Background(), fetcher, translate, "John", path)
	if err != nil {
		t.Fatalf("ExportBook failed: %v", err)
	}
	if res.Path != path || len(res.Hash) != 64 {
		t.Errorf("Result = %+v", res)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading dataset: %v", err)
	}
	var data map[string]struct {
		Words []struct {
			Greek   string `json:"g"`
			Strongs string `json:"S"`
			Gloss   string `json:"gls"`
			Lemma   string `json:"l"`
		} `json:"words"`
		Translation string `json:"translation"`
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("dataset not valid JSON: %v", err)
	}

	if len(data) != 3 {
		t.Fatalf("dataset has %d verses, want 3", len(data))
	}
	v11, ok := data["1:1"]
	if !ok {
		t.Fatal("dataset missing verse 1:1")
	}
	if len(v11.Words) != 1 {
		t.Fatalf("1:1 has %d words", len(v11.Words))
	}
	w := v11.Words[0]
	if w.Greek != "λόγος" || w.Strongs != "G3056" || w.Gloss != "word" || w.Lemma != "λόγος" {
		t.Errorf("1:1 word = %+v", w)
	}
	if v11.Translation != "In the beginning was the Word" {
		t.Errorf("1:1 translation = %q", v11.Translation)
	}
	if v11.Words[0].Lemma == "logos" {
		t.Error("field 'l' carries a transliteration, want the lemma")
	}

	// The translation field is always emitted, empty included.
	if !strings.Contains(string(raw), `"1:2":{"words":[{"g":"οὗτος","S":"G3778","gls":"this","l":"οὗτος"}],"translation":""}`) {
		t.Errorf("1:2 record lacks an explicit empty translation:\n%s", raw)
	}
}

func TestExportBookSkipsVerseGaps(t *testing.T) {
	// Verse 1:3 is missing but 1:4 exists: one gap must not end the
	// chapter, three consecutive gaps must.
	fetcher := &mapFetcher{
		verses: map[string][]interlinear.Word{
			"1:1": word("α", "G1", "a", "a"),
			"1:2": word("β", "G2", "b", "b"),
			"1:4": word("δ", "G4", "d", "d"),
		},
	}

	path := filepath.Join(t.TempDir(), "book.json")
	if _, err := ExportBook(context.Background(), fetcher, nil, "Test", path); err != nil {
		t.Fatalf("ExportBook failed: %v", err)
	}

	raw, _ := os.ReadFile(path)
	var data map[string]json.RawMessage
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range []string{"1:1", "1:2", "1:4"} {
		if _, ok := data[k]; !ok {
			t.Errorf("dataset missing %s", k)
		}
	}
	if len(data) != 3 {
		t.Errorf("dataset has %d verses, want 3", len(data))
	}
}

func TestExportBookStopsAfterEmptyChapters(t *testing.T) {
	fetcher := &mapFetcher{
		verses: map[string][]interlinear.Word{
			"1:1": word("α", "G1", "a", "a"),
		},
	}

	path := filepath.Join(t.TempDir(), "book.json")
	if _, err := ExportBook(context.Background(), fetcher, nil, "Test", path); err != nil {
		t.Fatalf("ExportBook failed: %v", err)
	}

	// Chapters 2 and 3 come up empty; chapter 4 must never be probed.
	// Each empty chapter costs exactly maxEmptyVerses probes.
	maxProbes := 1 + maxEmptyVerses + 2*maxEmptyVerses
	if fetcher.probes > maxProbes {
		t.Errorf("probes = %d, want <= %d", fetcher.probes, maxProbes)
	}
}

func TestExportBookEmpty(t *testing.T) {
	fetcher := &mapFetcher{verses: map[string][]interlinear.Word{}}
	_, err := ExportBook(context.Background(), fetcher, nil, "Nothing", filepath.Join(t.TempDir(), "x.json"))
	if err == nil {
		t.Fatal("expected error for a book with no verses")
	}
}

func TestExportBookCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := &mapFetcher{verses: map[string][]interlinear.Word{"1:1": word("α", "G1", "a", "a")}}
	_, err := ExportBook(ctx, fetcher, nil, "Test", filepath.Join(t.TempDir(), "x.json"))
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
