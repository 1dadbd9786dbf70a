package reference

import (
	"testing"

	"github.com/FocuswithJustin/SwordFlex/core/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PassageRange
		wantErr bool
	}{
		{
			name:  "single verse",
			input: "John 1:1",
			want:  PassageRange{Book: "John", StartChapter: 1, StartVerse: 1, EndChapter: 1, EndVerse: 1},
		},
		{
			name:  "same chapter range",
			input: "John 1:1-18",
			want:  PassageRange{Book: "John", StartChapter: 1, StartVerse: 1, EndChapter: 1, EndVerse: 18},
		},
		{
			name:  "cross chapter range",
			input: "John 1:1-5:14",
			want:  PassageRange{Book: "John", StartChapter: 1, StartVerse: 1, EndChapter: 5, EndVerse: 14},
		},
		{
			name:  "ordinal book name",
			input: "1John 2:3",
			want:  PassageRange{Book: "1John", StartChapter: 2, StartVerse: 3, EndChapter: 2, EndVerse: 3},
		},
		{
			name:  "whitespace runs collapsed",
			input: "  John   1:1 -  18 ",
			want:  PassageRange{Book: "John", StartChapter: 1, StartVerse: 1, EndChapter: 1, EndVerse: 18},
		},
		{
			name:    "not a reference",
			input:   "Not A Reference",
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "missing verse",
			input:   "John 1",
			wantErr: true,
		},
		{
			name:    "trailing garbage",
			input:   "John 1:1 extra",
			wantErr: true,
		},
		{
			name:    "backwards cross chapter range",
			input:   "John 5:1-1:1",
			wantErr: true,
		},
		{
			name:    "backwards verse range",
			input:   "John 1:9-3",
			wantErr: true,
		},
		{
			name:    "chapter zero",
			input:   "John 0:1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) succeeded, want error", tt.input)
				}
				if !errors.Is(err, errors.ErrInvalidReference) {
					t.Errorf("error should unwrap to ErrInvalidReference, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.input, err)
			}
			if *got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, *got, tt.want)
			}
		})
	}
}

func TestPassageRangeString(t *testing.T) {
	tests := []struct {
		name string
		rng  PassageRange
		want string
	}{
		{
			name: "single verse",
			rng:  PassageRange{Book: "John", StartChapter: 1, StartVerse: 1, EndChapter: 1, EndVerse: 1},
			want: "John 1:1",
		},
		{
			name: "same chapter",
			rng:  PassageRange{Book: "John", StartChapter: 1, StartVerse: 1, EndChapter: 1, EndVerse: 18},
			want: "John 1:1-18",
		},
		{
			name: "cross chapter",
			rng:  PassageRange{Book: "John", StartChapter: 1, StartVerse: 1, EndChapter: 5, EndVerse: 14},
			want: "John 1:1-5:14",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rng.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseStringRoundTrip(t *testing.T) {
	for _, input := range []string{"John 1:1", "John 1:1-18", "John 1:1-5:14", "1John 2:3"} {
		rng, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", input, err)
		}
		again, err := Parse(rng.String())
		if err != nil {
			t.Fatalf("Parse(%q) failed on round-trip: %v", rng.String(), err)
		}
		if *again != *rng {
			t.Errorf("round-trip mismatch for %q: %+v vs %+v", input, *again, *rng)
		}
	}
}
