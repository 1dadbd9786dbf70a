// Package interlinear defines the data model for word-aligned interlinear
// verse content: one source-language word per Word, one verse per Verse.
//
// Words are created by the tag parser and are not modified afterward. Word
// order within a Verse is source order and is never re-sorted.
package interlinear

import "fmt"

// Word holds all extracted interlinear data for a single Greek word.
type Word struct {
	// Surface is the word text exactly as it appears in the source, trimmed.
	Surface string
	// Lemma is the dictionary form, empty if the source carries none.
	Lemma string
	// Morphology is the grammatical parsing code (e.g., "N-NSM"), may be empty.
	Morphology string
	// StrongsKey is the canonical lexical key ("G" + digits, no leading
	// zeros), empty if unresolved.
	StrongsKey string
	// Gloss is a short English equivalent. Never empty for a word with a
	// known key; at worst it is the key itself as a visible placeholder.
	Gloss string
	// Transliteration is a deterministic Latin rendering of Surface.
	Transliteration string
}

// Verse holds the interlinear content of one Bible verse.
type Verse struct {
	Book    string
	Chapter int
	Verse   int
	// Words in source order.
	Words []Word
	// FreeTranslation is an idiomatic phrase-level translation, may be empty.
	FreeTranslation string
	// LiteralTranslation is a word-order-preserving translation, may be empty.
	LiteralTranslation string
}

// Ref returns the canonical "Book Chapter:Verse" reference string.
func (v *Verse) Ref() string {
	return fmt.Sprintf("%s %d:%d", v.Book, v.Chapter, v.Verse)
}

// Empty reports whether the verse carries no words. An empty verse means
// "verse not found" to the passage aggregator.
func (v *Verse) Empty() bool {
	return len(v.Words) == 0
}
