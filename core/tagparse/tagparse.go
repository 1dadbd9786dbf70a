// Package tagparse extracts interlinear word records from raw tagged verse
// text.
//
// The input is not well-formed XML: word tags are embedded in otherwise
// untagged text, so extraction is a linear scan for <w ...>surface</w>
// occurrences rather than a document parse. Two attribute encodings are
// supported: the lexical key given directly in a strong attribute, and the
// key embedded inside the lemma attribute after a "strong:" sub-marker.
package tagparse

import (
	"context"
	"regexp"
	"strings"

	"github.com/FocuswithJustin/SwordFlex/core/interlinear"
)

// wordTag matches one word tag and captures its attribute run and surface
// text. Attributes are extracted separately so their order is free.
var wordTag = regexp.MustCompile(`<w([^>]*)>([^<]+)</w>`)

var (
	lemmaAttr  = regexp.MustCompile(`lemma="([^"]*)"`)
	morphAttr  = regexp.MustCompile(`morph="([^"]*)"`)
	strongAttr = regexp.MustCompile(`strong="([^"]*)"`)

	// lemma.Strong:λόγος marker inside the lemma attribute value.
	lemmaMarker = regexp.MustCompile(`lemma\.Strong:([^\s]+)`)
	// strong: G0746 sub-marker inside the lemma attribute value.
	strongMarker = regexp.MustCompile(`(?i)strong: *G0*(\d+)`)
	// direct attribute form: G0746, g746, ...
	strongDirect = regexp.MustCompile(`(?i)^([A-Z])0*(\d+)$`)
)

// Resolver supplies the gloss for a canonical lexical key.
type Resolver interface {
	Resolve(ctx context.Context, key string) string
}

// ParseTaggedText scans raw tagged verse text and produces one Word per
// word tag, in appearance order. Zero matches is valid and yields an empty
// slice; callers treat that as "verse not found". The function is pure in
// the input text and resolver state.
func ParseTaggedText(ctx context.Context, raw string, glosses Resolver) []interlinear.Word {
	matches := wordTag.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return nil
	}

	words := make([]interlinear.Word, 0, len(matches))
	for _, m := range matches {
		attrs, surface := m[1], strings.TrimSpace(m[2])

		lemmaVal := attrValue(lemmaAttr, attrs)
		morphVal := attrValue(morphAttr, attrs)

		lemma := ""
		if lm := lemmaMarker.FindStringSubmatch(lemmaVal); lm != nil {
			lemma = lm[1]
		}

		key := extractKey(attrs, lemmaVal)

		words = append(words, interlinear.Word{
			Surface:         surface,
			Lemma:           lemma,
			Morphology:      morphVal,
			StrongsKey:      key,
			Gloss:           glosses.Resolve(ctx, key),
			Transliteration: interlinear.Transliterate(surface),
		})
	}
	return words
}

// extractKey resolves the canonical lexical key (single uppercase letter +
// digits, leading zeros stripped) from either encoding, preferring the
// direct strong attribute.
func extractKey(attrs, lemmaVal string) string {
	if direct := attrValue(strongAttr, attrs); direct != "" {
		if m := strongDirect.FindStringSubmatch(strings.TrimSpace(direct)); m != nil {
			return strings.ToUpper(m[1]) + m[2]
		}
	}
	if m := strongMarker.FindStringSubmatch(lemmaVal); m != nil {
		return "G" + m[1]
	}
	return ""
}

func attrValue(re *regexp.Regexp, attrs string) string {
	if m := re.FindStringSubmatch(attrs); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
