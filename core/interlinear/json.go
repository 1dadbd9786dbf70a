package interlinear

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/SwordFlex/core/errors"
)

// wordJSON is the fixed wire schema for one word. Field names are part of
// the shell contract and must not change.
type wordJSON struct {
	GreekWord       string `json:"greek_word"`
	Lemma           string `json:"lemma"`
	Morphology      string `json:"morphology"`
	StrongsNumber   string `json:"strongs_number"`
	EnGloss         string `json:"en_gloss"`
	Transliteration string `json:"tr_transliteration"`
}

// verseJSON is the fixed wire schema for one verse.
type verseJSON struct {
	VerseRef           string     `json:"verse_ref"`
	FreeTranslation    string     `json:"free_translation"`
	LiteralTranslation string     `json:"literal_translation"`
	Words              []wordJSON `json:"words"`
}

// Passage is the wire shape for a multi-verse result.
type Passage struct {
	PassageRef string
	Verses     []*Verse
}

// passageJSON is the fixed wire schema for a passage.
type passageJSON struct {
	PassageRef string            `json:"passage_ref"`
	Verses     []json.RawMessage `json:"verses"`
}

// MarshalJSON serializes the verse into the wire schema consumed by the
// surrounding shell.
func (v *Verse) MarshalJSON() ([]byte, error) {
	out := verseJSON{
		VerseRef:           v.Ref(),
		FreeTranslation:    v.FreeTranslation,
		LiteralTranslation: v.LiteralTranslation,
		Words:              make([]wordJSON, 0, len(v.Words)),
	}
	for _, w := range v.Words {
		out.Words = append(out.Words, wordJSON{
			GreekWord:       w.Surface,
			Lemma:           w.Lemma,
			Morphology:      w.Morphology,
			StrongsNumber:   w.StrongsKey,
			EnGloss:         w.Gloss,
			Transliteration: w.Transliteration,
		})
	}
	return json.Marshal(out)
}

// MarshalJSON serializes the passage into the wire schema.
func (p *Passage) MarshalJSON() ([]byte, error) {
	out := struct {
		PassageRef string   `json:"passage_ref"`
		Verses     []*Verse `json:"verses"`
	}{PassageRef: p.PassageRef, Verses: p.Verses}
	if out.Verses == nil {
		out.Verses = []*Verse{}
	}
	return json.Marshal(out)
}

// VerseFromJSON reconstructs a Verse from its wire form. The schema is
// validated strictly: unknown fields are rejected, verse_ref is required
// and must parse as "Book Chapter:Verse" with positive chapter and verse.
func VerseFromJSON(data []byte) (*Verse, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var raw verseJSON
	if err := dec.Decode(&raw); err != nil {
		return nil, &errors.ParseError{Format: "JSON", Message: "malformed verse payload", Err: err}
	}

	book, chapter, verse, err := SplitRef(raw.VerseRef)
	if err != nil {
		return nil, err
	}

	v := &Verse{
		Book:               book,
		Chapter:            chapter,
		Verse:              verse,
		FreeTranslation:    raw.FreeTranslation,
		LiteralTranslation: raw.LiteralTranslation,
		Words:              make([]Word, 0, len(raw.Words)),
	}
	for _, w := range raw.Words {
		v.Words = append(v.Words, Word{
			Surface:         w.GreekWord,
			Lemma:           w.Lemma,
			Morphology:      w.Morphology,
			StrongsKey:      w.StrongsNumber,
			Gloss:           w.EnGloss,
			Transliteration: w.Transliteration,
		})
	}
	return v, nil
}

// PassageFromJSON reconstructs a Passage from its wire form, validating
// every contained verse.
func PassageFromJSON(data []byte) (*Passage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var raw passageJSON
	if err := dec.Decode(&raw); err != nil {
		return nil, &errors.ParseError{Format: "JSON", Message: "malformed passage payload", Err: err}
	}

	p := &Passage{PassageRef: raw.PassageRef, Verses: make([]*Verse, 0, len(raw.Verses))}
	for i, rv := range raw.Verses {
		v, err := VerseFromJSON(rv)
		if err != nil {
			return nil, &errors.ParseError{
				Format:  "JSON",
				Message: fmt.Sprintf("verse %d: %v", i, err),
				Err:     err,
			}
		}
		p.Verses = append(p.Verses, v)
	}
	return p, nil
}

// SplitRef splits a canonical "Book Chapter:Verse" reference string back
// into its three components. This is the reconstruction counterpart of
// Verse.Ref and rejects anything that does not round-trip.
func SplitRef(ref string) (book string, chapter, verse int, err error) {
	parts := strings.FieldsFunc(strings.TrimSpace(ref), func(r rune) bool {
		return r == ' ' || r == ':'
	})
	if len(parts) != 3 {
		return "", 0, 0, &errors.ParseError{
			Format:  "verse reference",
			Message: fmt.Sprintf("expected 'Book Chapter:Verse', got %q", ref),
		}
	}
	chapter, cerr := strconv.Atoi(parts[1])
	verse, verr := strconv.Atoi(parts[2])
	if cerr != nil || verr != nil || chapter < 1 || verse < 1 {
		return "", 0, 0, &errors.ParseError{
			Format:  "verse reference",
			Message: fmt.Sprintf("chapter and verse must be positive integers in %q", ref),
		}
	}
	return parts[0], chapter, verse, nil
}
