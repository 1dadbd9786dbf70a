// Package session ties one open module source to the interlinear
// pipeline: fetch, parse, gloss, cache, and serialize.
//
// A Session is the unit of shared state. The selected translation and
// the verse cache live here rather than in package globals, so
// concurrent callers and tests each get their own isolated instance.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/FocuswithJustin/SwordFlex/core/cache"
	"github.com/FocuswithJustin/SwordFlex/core/errors"
	"github.com/FocuswithJustin/SwordFlex/core/flextext"
	"github.com/FocuswithJustin/SwordFlex/core/gloss"
	"github.com/FocuswithJustin/SwordFlex/core/interlinear"
	"github.com/FocuswithJustin/SwordFlex/core/passage"
	"github.com/FocuswithJustin/SwordFlex/core/reference"
	"github.com/FocuswithJustin/SwordFlex/core/tagparse"
	"github.com/FocuswithJustin/SwordFlex/internal/logging"
	"github.com/FocuswithJustin/SwordFlex/internal/source"
)

// verseCacheSize bounds the parsed-verse cache. A whole book fits.
const verseCacheSize = 2048

// Options configures a Session beyond its source.
type Options struct {
	// FallbackGlossPath points at a local fallback gloss map consulted
	// when the lexicon has no entry. Empty disables the fallback layer.
	FallbackGlossPath string

	// Translation preselects the phrase translation module.
	Translation string
}

// Session is the shared pipeline state for one open module source.
type Session struct {
	src      source.Source
	resolver *gloss.Resolver
	verses   cache.Cache[string, *interlinear.Verse]

	mu          sync.RWMutex
	translation string
}

// New builds a Session around an open source. The gloss chain is
// lexicon first, then the optional local fallback map, then the key
// itself (inside the resolver).
func New(src source.Source, opts Options) (*Session, error) {
	strategies := []gloss.Strategy{
		gloss.NewLexiconStrategy(src.LexiconEntry),
	}
	if opts.FallbackGlossPath != "" {
		fallback, err := gloss.LoadFallbackMap(opts.FallbackGlossPath)
		if err != nil {
			return nil, fmt.Errorf("load fallback glosses: %w", err)
		}
		if fallback != nil {
			strategies = append(strategies, gloss.NewMapStrategy(fallback))
		}
	}

	return &Session{
		src:         src,
		resolver:    gloss.NewResolver(strategies...),
		verses:      cache.NewLRU[string, *interlinear.Verse](cache.Config{MaxSize: verseCacheSize}),
		translation: opts.Translation,
	}, nil
}

// Source exposes the underlying module source.
func (s *Session) Source() source.Source {
	return s.src
}

// Close closes the underlying source.
func (s *Session) Close() error {
	return s.src.Close()
}

// SetTranslation selects the phrase translation module. An empty id
// disables phrase translations. An id the source does not carry is
// ErrInvalidInput.
func (s *Session) SetTranslation(id string) error {
	if id != "" {
		found := false
		for _, t := range s.src.Translations() {
			if t == id {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: unknown translation module %q", errors.ErrInvalidInput, id)
		}
	}

	s.mu.Lock()
	s.translation = id
	s.mu.Unlock()
	return nil
}

// Translation returns the currently selected translation module ID.
func (s *Session) Translation() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.translation
}

// Translations lists the translation modules the source carries.
func (s *Session) Translations() []string {
	return s.src.Translations()
}

func cacheKey(book string, chapter, verse int) string {
	return fmt.Sprintf("%s\x00%d\x00%d", book, chapter, verse)
}

// FetchVerse implements passage.VerseFetcher: fetch raw tagged text,
// parse it, and gloss each word. Parsed verses are cached; cache
// entries are never mutated by callers.
func (s *Session) FetchVerse(ctx context.Context, book string, chapter, verse int) (*interlinear.Verse, error) {
	key := cacheKey(book, chapter, verse)
	if cached, ok := s.verses.Get(key); ok {
		return cached, nil
	}

	raw, err := s.src.RawTaggedVerse(ctx, book, chapter, verse)
	if err != nil {
		return nil, err
	}

	v := &interlinear.Verse{
		Book:    book,
		Chapter: chapter,
		Verse:   verse,
		Words:   tagparse.ParseTaggedText(ctx, raw, s.resolver),
	}
	s.verses.Put(key, v)
	return v, nil
}

// Verse fetches and annotates a single verse. A verse the source does
// not carry, or one yielding zero words, is a NoDataError.
func (s *Session) Verse(ctx context.Context, book string, chapter, verse int) (*interlinear.Verse, error) {
	v, err := s.FetchVerse(ctx, book, chapter, verse)
	if err != nil {
		return nil, err
	}
	if v.Empty() {
		return nil, &errors.NoDataError{Ref: v.Ref()}
	}
	return v, nil
}

// Passage fetches every verse of rng with chapter rollover.
func (s *Session) Passage(ctx context.Context, rng *reference.PassageRange) (*interlinear.Passage, error) {
	verses, err := passage.FetchRange(ctx, s, rng)
	if err != nil {
		return nil, err
	}
	logging.Debug("passage assembled", "ref", rng.String(), "verses", len(verses))
	return &interlinear.Passage{PassageRef: rng.String(), Verses: verses}, nil
}

// PassageByReference parses ref and fetches the passage it names.
func (s *Session) PassageByReference(ctx context.Context, ref string) (*interlinear.Passage, error) {
	rng, err := reference.Parse(ref)
	if err != nil {
		return nil, err
	}
	if rng.SingleVerse() {
		v, err := s.Verse(ctx, rng.Book, rng.StartChapter, rng.StartVerse)
		if err != nil {
			return nil, err
		}
		return &interlinear.Passage{PassageRef: rng.String(), Verses: []*interlinear.Verse{v}}, nil
	}
	return s.Passage(ctx, rng)
}

// phraseTranslation adapts the selected translation module to the
// FlexText builder. Empty when no module is selected.
func (s *Session) phraseTranslation(ctx context.Context) flextext.TranslateFunc {
	id := s.Translation()
	if id == "" {
		return nil
	}
	return func(book string, chapter, verse int) string {
		return s.src.PhraseTranslation(ctx, id, book, chapter, verse)
	}
}

// BuildFlexText serializes a fetched passage into a FlexText document
// using the selected translation module for phrase translations.
func (s *Session) BuildFlexText(ctx context.Context, p *interlinear.Passage, cfg flextext.FieldSelection) (string, error) {
	b := &flextext.Builder{Translate: s.phraseTranslation(ctx)}
	return b.Build(p.Verses, cfg)
}
