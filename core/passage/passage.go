// Package passage aggregates ordered runs of verses across chapter
// boundaries.
//
// The text source exposes no chapter/verse manifest, so the aggregator
// walks verse by verse and infers chapter ends: a fetch failure or a verse
// with zero words rolls the cursor to the next chapter. The walk is bounded
// by a hard iteration cap, the sole liveness safeguard for malformed
// ranges or a source that never signals exhaustion.
package passage

import (
	"context"

	"github.com/FocuswithJustin/SwordFlex/core/errors"
	"github.com/FocuswithJustin/SwordFlex/core/interlinear"
	"github.com/FocuswithJustin/SwordFlex/core/reference"
)

// MaxAttempts caps the number of verse fetch attempts in one range walk.
const MaxAttempts = 5000

// VerseFetcher fetches and parses one verse. An error means the verse is
// unavailable; a verse with zero words means it does not exist.
type VerseFetcher interface {
	FetchVerse(ctx context.Context, book string, chapter, verse int) (*interlinear.Verse, error)
}

// chapterExhausted is the single decision point of the rollover heuristic.
// It deliberately conflates "fetch failed" with "verse does not exist";
// distinguishing the two only requires changing this classifier, not the
// walk itself.
func chapterExhausted(v *interlinear.Verse, err error) bool {
	return err != nil || v == nil || v.Empty()
}

// FetchRange fetches every verse of rng in order, rolling to the next
// chapter when the current one is exhausted. It fails with an error
// unwrapping to errors.ErrNoDataFound when the walk produces no verses.
func FetchRange(ctx context.Context, fetcher VerseFetcher, rng *reference.PassageRange) ([]*interlinear.Verse, error) {
	var verses []*interlinear.Verse

	chapter, verse := rng.StartChapter, rng.StartVerse
	attempts := 0
	for chapter < rng.EndChapter || (chapter == rng.EndChapter && verse <= rng.EndVerse) {
		attempts++
		if attempts > MaxAttempts {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		v, err := fetcher.FetchVerse(ctx, rng.Book, chapter, verse)
		if chapterExhausted(v, err) {
			chapter, verse = chapter+1, 1
			continue
		}
		verses = append(verses, v)
		verse++
	}

	if len(verses) == 0 {
		return nil, &errors.NoDataError{Ref: rng.String()}
	}
	return verses, nil
}
