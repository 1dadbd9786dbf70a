package interlinear

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/FocuswithJustin/SwordFlex/core/errors"
)

func sampleVerse() *Verse {
	return &Verse{
		Book:               "John",
		Chapter:            1,
		Verse:              1,
		LiteralTranslation: "In beginning was the Word",
		Words: []Word{
			{Surface: "Ἐν", Lemma: "ἐν", Morphology: "P", StrongsKey: "G1722", Gloss: "in, on, with", Transliteration: "en"},
			{Surface: "ἀρχῇ", Lemma: "ἀρχή", Morphology: "N-DSF", StrongsKey: "G746", Gloss: "beginning", Transliteration: "archē"},
		},
	}
}

func TestVerseRef(t *testing.T) {
	v := sampleVerse()
	if got := v.Ref(); got != "John 1:1" {
		t.Errorf("Ref() = %q, want %q", got, "John 1:1")
	}
}

func TestVerseJSONRoundTrip(t *testing.T) {
	v := sampleVerse()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	// Wire field names are a fixed contract.
	for _, field := range []string{"verse_ref", "free_translation", "literal_translation", "words",
		"greek_word", "lemma", "morphology", "strongs_number", "en_gloss", "tr_transliteration"} {
		if !strings.Contains(string(data), `"`+field+`"`) {
			t.Errorf("serialized verse missing field %q: %s", field, data)
		}
	}

	got, err := VerseFromJSON(data)
	if err != nil {
		t.Fatalf("VerseFromJSON failed: %v", err)
	}
	if got.Book != v.Book || got.Chapter != v.Chapter || got.Verse != v.Verse {
		t.Errorf("reference did not round-trip: got %s, want %s", got.Ref(), v.Ref())
	}
	if len(got.Words) != len(v.Words) {
		t.Fatalf("word count = %d, want %d", len(got.Words), len(v.Words))
	}
	if got.Words[1] != v.Words[1] {
		t.Errorf("word did not round-trip: got %+v, want %+v", got.Words[1], v.Words[1])
	}
	if got.LiteralTranslation != v.LiteralTranslation {
		t.Errorf("literal translation did not round-trip")
	}
}

func TestVerseFromJSONRejectsUnknownFields(t *testing.T) {
	payload := `{"verse_ref":"John 1:1","free_translation":"","literal_translation":"","words":[],"extra":true}`
	if _, err := VerseFromJSON([]byte(payload)); err == nil {
		t.Errorf("expected error for unknown field, got nil")
	}
}

func TestVerseFromJSONRejectsBadRef(t *testing.T) {
	tests := []struct {
		name string
		ref  string
	}{
		{name: "missing verse", ref: "John 1"},
		{name: "empty", ref: ""},
		{name: "zero chapter", ref: "John 0:1"},
		{name: "non-numeric", ref: "John one:1"},
		{name: "trailing garbage", ref: "John 1:1:9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := `{"verse_ref":"` + tt.ref + `","free_translation":"","literal_translation":"","words":[]}`
			_, err := VerseFromJSON([]byte(payload))
			if err == nil {
				t.Fatalf("expected error for ref %q, got nil", tt.ref)
			}
			if !errors.Is(err, errors.ErrInvalidInput) {
				t.Errorf("error should unwrap to ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestPassageJSONRoundTrip(t *testing.T) {
	p := &Passage{
		PassageRef: "John 1:1-1:2",
		Verses: []*Verse{
			sampleVerse(),
			{Book: "John", Chapter: 1, Verse: 2, Words: []Word{{Surface: "οὗτος", Gloss: "this"}}},
		},
	}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	got, err := PassageFromJSON(data)
	if err != nil {
		t.Fatalf("PassageFromJSON failed: %v", err)
	}
	if got.PassageRef != p.PassageRef {
		t.Errorf("PassageRef = %q, want %q", got.PassageRef, p.PassageRef)
	}
	if len(got.Verses) != 2 {
		t.Fatalf("verse count = %d, want 2", len(got.Verses))
	}
	if got.Verses[1].Ref() != "John 1:2" {
		t.Errorf("second verse ref = %q, want %q", got.Verses[1].Ref(), "John 1:2")
	}
}

func TestPassageMarshalEmptyVerses(t *testing.T) {
	p := &Passage{PassageRef: "John 1:1"}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"verses":[]`) {
		t.Errorf("nil verse slice should serialize as empty array: %s", data)
	}
}
