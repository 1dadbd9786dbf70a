// Package gloss resolves short English glosses for Strong's lexical keys.
//
// Resolution runs an explicit ordered chain of strategies; the first
// strategy producing a result wins. The shipped order is: external lexicon
// source, then the process-wide fallback map, then the key itself as a
// visible placeholder.
package gloss

import (
	"context"
	"strings"

	"github.com/FocuswithJustin/SwordFlex/core/cache"
)

// Strategy is one step of the resolution chain. Lookup receives the
// digit-only form of a lexical key and reports whether it produced a
// usable gloss.
type Strategy interface {
	Lookup(ctx context.Context, digitKey string) (string, bool)
}

// LookupFunc adapts an external lexicon collaborator: raw entry text for a
// digit-only key, error or empty string when no entry exists.
type LookupFunc func(ctx context.Context, digitKey string) (string, error)

// Resolver resolves glosses through its strategy chain. Resolve never
// fails: a non-empty key always yields a non-empty string.
type Resolver struct {
	strategies []Strategy
}

// NewResolver builds a resolver with the given strategies, consulted in
// order.
func NewResolver(strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies}
}

// Resolve returns a gloss for key. The key's letter prefix is stripped
// before strategies run. An empty key resolves to an empty string, which
// distinguishes "no key known" from "key known but undefined"; for any
// other key the trimmed key itself is the last-resort result.
func (r *Resolver) Resolve(ctx context.Context, key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return ""
	}
	digits := strings.TrimLeft(trimmed, "Gg")
	for _, s := range r.strategies {
		if gloss, ok := s.Lookup(ctx, digits); ok {
			return gloss
		}
	}
	return trimmed
}

// lexiconStrategy queries an external lexicon and keeps the first line of
// the entry. Results are cached; errors and empty entries are misses.
type lexiconStrategy struct {
	lookup LookupFunc
	cache  cache.Cache[string, string]
}

// NewLexiconStrategy wraps a lexicon lookup in a strategy with an LRU
// cache of cleaned entries.
func NewLexiconStrategy(lookup LookupFunc) Strategy {
	return &lexiconStrategy{
		lookup: lookup,
		cache:  cache.NewLRU[string, string](cache.Config{MaxSize: 4096}),
	}
}

func (s *lexiconStrategy) Lookup(ctx context.Context, digitKey string) (string, bool) {
	if digitKey == "" {
		return "", false
	}
	if cached, ok := s.cache.Get(digitKey); ok {
		return cached, true
	}
	entry, err := s.lookup(ctx, digitKey)
	if err != nil {
		return "", false
	}
	cleaned := strings.TrimSpace(strings.SplitN(entry, "\n", 2)[0])
	if cleaned == "" {
		return "", false
	}
	s.cache.Put(digitKey, cleaned)
	return cleaned, true
}

// mapStrategy looks keys up in a fixed map, typically the fallback map
// loaded at startup.
type mapStrategy struct {
	entries map[string]string
}

// NewMapStrategy wraps a key-to-gloss map in a strategy. A nil map is a
// valid strategy that never matches.
func NewMapStrategy(entries map[string]string) Strategy {
	return &mapStrategy{entries: entries}
}

func (s *mapStrategy) Lookup(_ context.Context, digitKey string) (string, bool) {
	gloss, ok := s.entries[digitKey]
	if !ok || gloss == "" {
		return "", false
	}
	return gloss, true
}
