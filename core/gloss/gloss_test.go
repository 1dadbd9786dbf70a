package gloss

import (
	"context"
	"errors"
	"testing"
)

func lexiconFrom(entries map[string]string) LookupFunc {
	return func(_ context.Context, digitKey string) (string, error) {
		entry, ok := entries[digitKey]
		if !ok {
			return "", errors.New("no entry")
		}
		return entry, nil
	}
}

func TestResolvePriorityChain(t *testing.T) {
	lexicon := map[string]string{
		"3056": "word, reason\nfull definition follows here",
		"746":  "  beginning  ",
	}
	fallback := map[string]string{
		"3056": "should not win",
		"2316": "God, god",
	}
	r := NewResolver(
		NewLexiconStrategy(lexiconFrom(lexicon)),
		NewMapStrategy(fallback),
	)
	ctx := context.Background()

	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "lexicon wins, first line only", key: "G3056", want: "word, reason"},
		{name: "lexicon entry trimmed", key: "G746", want: "beginning"},
		{name: "fallback map when lexicon misses", key: "G2316", want: "God, god"},
		{name: "key itself when both miss", key: "G9999", want: "G9999"},
		{name: "digit-only key accepted", key: "3056", want: "word, reason"},
		{name: "surrounding whitespace trimmed", key: "  G2316 ", want: "God, god"},
		{name: "empty key resolves to empty string", key: "", want: ""},
		{name: "whitespace-only key resolves to empty string", key: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(ctx, tt.key); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestResolveWithoutLexicon(t *testing.T) {
	// Fallback-only configuration, the shape used when no lexicon module
	// is installed.
	r := NewResolver(NewMapStrategy(map[string]string{"3056": "word, message"}))
	ctx := context.Background()

	if got := r.Resolve(ctx, "G3056"); got != "word, message" {
		t.Errorf("Resolve = %q, want %q", got, "word, message")
	}
	if got := r.Resolve(ctx, "G1"); got != "G1" {
		t.Errorf("Resolve = %q, want placeholder %q", got, "G1")
	}
}

func TestResolveNilFallback(t *testing.T) {
	r := NewResolver(NewMapStrategy(nil))
	if got := r.Resolve(context.Background(), "G3056"); got != "G3056" {
		t.Errorf("Resolve with nil map = %q, want %q", got, "G3056")
	}
}

func TestLexiconStrategyCaches(t *testing.T) {
	calls := 0
	lookup := func(_ context.Context, digitKey string) (string, error) {
		calls++
		return "word, reason", nil
	}
	s := NewLexiconStrategy(lookup)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		gloss, ok := s.Lookup(ctx, "3056")
		if !ok || gloss != "word, reason" {
			t.Fatalf("Lookup returned (%q, %v)", gloss, ok)
		}
	}
	if calls != 1 {
		t.Errorf("lexicon called %d times, want 1 (cached)", calls)
	}
}

func TestLexiconStrategyEmptyEntryIsMiss(t *testing.T) {
	s := NewLexiconStrategy(func(_ context.Context, _ string) (string, error) {
		return "   \nmore text", nil
	})
	if _, ok := s.Lookup(context.Background(), "1"); ok {
		t.Errorf("empty first line should be a miss")
	}
}
