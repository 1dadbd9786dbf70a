package export

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/FocuswithJustin/SwordFlex/core/interlinear"
	"github.com/FocuswithJustin/SwordFlex/core/passage"
	"github.com/FocuswithJustin/SwordFlex/internal/logging"
)

// Book discovery stops after this many consecutive missing verses in a
// chapter, and after this many consecutive chapters with no verses.
const (
	maxEmptyVerses   = 3
	maxEmptyChapters = 2
)

// bookWord is the compact per-word record of the book dataset.
type bookWord struct {
	Greek   string `json:"g"`
	Strongs string `json:"S"`
	Gloss   string `json:"gls"`
	Lemma   string `json:"l"`
}

// bookVerse is one verse of the book dataset, keyed by "chapter:verse".
// Translation is always present, empty when no module is selected.
type bookVerse struct {
	Words       []bookWord `json:"words"`
	Translation string     `json:"translation"`
}

// TranslateFunc supplies an optional plain-text translation per verse.
type TranslateFunc func(book string, chapter, verse int) string

// ExportBook walks an entire book by probing chapters and verses from 1
// upward and writes the compact JSON dataset to path. Chapter and verse
// extents are discovered, not configured: a run of missing verses ends
// the chapter, a run of empty chapters ends the book.
func ExportBook(ctx context.Context, fetcher passage.VerseFetcher, translate TranslateFunc, book, path string) (*Result, error) {
	data := map[string]bookVerse{}

	emptyChapters := 0
	for chapter := 1; emptyChapters < maxEmptyChapters; chapter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		found := 0
		emptyVerses := 0
		for verse := 1; emptyVerses < maxEmptyVerses; verse++ {
			v, err := fetcher.FetchVerse(ctx, book, chapter, verse)
			if err != nil || v == nil || v.Empty() {
				emptyVerses++
				continue
			}
			emptyVerses = 0
			found++
			data[fmt.Sprintf("%d:%d", chapter, verse)] = convertVerse(v, translate)
		}

		if found == 0 {
			emptyChapters++
		} else {
			emptyChapters = 0
			logging.Debug("book chapter collected", "book", book, "chapter", chapter, "verses", found)
		}
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("no verses found for book %s", book)
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode book dataset: %w", err)
	}
	return writeDataset(path, encoded, book)
}

func convertVerse(v *interlinear.Verse, translate TranslateFunc) bookVerse {
	bv := bookVerse{Words: make([]bookWord, 0, len(v.Words))}
	for _, w := range v.Words {
		bv.Words = append(bv.Words, bookWord{
			Greek:   w.Surface,
			Strongs: w.StrongsKey,
			Gloss:   w.Gloss,
			Lemma:   w.Lemma,
		})
	}
	if translate != nil {
		bv.Translation = translate(v.Book, v.Chapter, v.Verse)
	}
	return bv
}
