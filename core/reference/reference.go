// Package reference parses free-text scripture references into canonical
// passage ranges.
//
// Accepted grammars, tried as one combined grammar with the range suffix
// optional:
//   - "Book Ch:V-Ch:V"  cross-chapter range
//   - "Book Ch:V-V"     same-chapter range
//   - "Book Ch:V"       single verse (start == end)
//
// A book name is an optional leading numeral 1-3 followed by letters
// ("John", "1John"). Chapter and verse are unsigned integers; whether the
// reference exists in real scripture is the text source's concern, not
// this package's.
package reference

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/SwordFlex/core/errors"
)

// usageHint is surfaced verbatim with every rejected reference.
const usageHint = "try formats like 'John 1:1', 'John 1:1-18', or 'John 1:1-5:14'"

// PassageRange is a canonical parsed reference: an inclusive run of verses
// within one book. Single-verse references have start == end.
type PassageRange struct {
	Book         string
	StartChapter int
	StartVerse   int
	EndChapter   int
	EndVerse     int
}

// rangeEnd is the optional portion after the dash: either "V" (same
// chapter) or "Ch:V" (cross chapter).
type rangeEnd struct {
	First  int  `parser:"@Number"`
	Second *int `parser:"( \":\" @Number )?"`
}

// scriptureRef is the participle grammar for an accepted reference.
type scriptureRef struct {
	Book    string    `parser:"@Book"`
	Chapter int       `parser:"@Number \":\""`
	Verse   int       `parser:"@Number"`
	End     *rangeEnd `parser:"( \"-\" @@ )?"`
}

// referenceLexer tokenizes scripture references. Book must come before
// Number so that ordinal book names ("1John") lex as a single token.
var referenceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Book", Pattern: `[1-3]?[A-Za-z]+`},
	{Name: "Number", Pattern: `\d+`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var referenceParser = participle.MustBuild[scriptureRef](
	participle.Lexer(referenceLexer),
	participle.Elide("Whitespace"),
)

// Parse parses a reference string into a PassageRange. It fails with an
// error unwrapping to errors.ErrInvalidReference when the string matches
// no accepted grammar or when the range runs backwards.
func Parse(input string) (*PassageRange, error) {
	// Collapse internal whitespace runs to a single space.
	normalized := strings.Join(strings.Fields(input), " ")
	if normalized == "" {
		return nil, &errors.ReferenceError{Input: input, Hint: usageHint}
	}

	ref, err := referenceParser.ParseString("", normalized)
	if err != nil {
		return nil, &errors.ReferenceError{Input: input, Hint: usageHint}
	}

	rng := &PassageRange{
		Book:         ref.Book,
		StartChapter: ref.Chapter,
		StartVerse:   ref.Verse,
		EndChapter:   ref.Chapter,
		EndVerse:     ref.Verse,
	}
	if ref.End != nil {
		if ref.End.Second != nil {
			rng.EndChapter = ref.End.First
			rng.EndVerse = *ref.End.Second
		} else {
			rng.EndVerse = ref.End.First
		}
	}

	if rng.StartChapter < 1 || rng.StartVerse < 1 || rng.EndChapter < 1 || rng.EndVerse < 1 {
		return nil, &errors.ReferenceError{Input: input, Hint: usageHint}
	}
	// Invariant: start <= end in (chapter, verse) lexicographic order.
	if rng.EndChapter < rng.StartChapter ||
		(rng.EndChapter == rng.StartChapter && rng.EndVerse < rng.StartVerse) {
		return nil, &errors.ReferenceError{Input: input, Hint: usageHint}
	}
	return rng, nil
}

// SingleVerse reports whether the range covers exactly one verse.
func (r *PassageRange) SingleVerse() bool {
	return r.StartChapter == r.EndChapter && r.StartVerse == r.EndVerse
}

// String returns the canonical string form of the range.
func (r *PassageRange) String() string {
	switch {
	case r.SingleVerse():
		return fmt.Sprintf("%s %d:%d", r.Book, r.StartChapter, r.StartVerse)
	case r.StartChapter == r.EndChapter:
		return fmt.Sprintf("%s %d:%d-%d", r.Book, r.StartChapter, r.StartVerse, r.EndVerse)
	default:
		return fmt.Sprintf("%s %d:%d-%d:%d", r.Book, r.StartChapter, r.StartVerse, r.EndChapter, r.EndVerse)
	}
}

// StartRef returns the canonical "Book Chapter:Verse" string of the
// range's first verse.
func (r *PassageRange) StartRef() string {
	return fmt.Sprintf("%s %d:%d", r.Book, r.StartChapter, r.StartVerse)
}
