package interlinear

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// greekLatin maps lowercase unaccented Greek letters to Latin renderings.
// Values follow the conventional romanization: eta and omega keep a macron,
// aspirates become digraphs.
var greekLatin = map[rune]string{
	'α': "a", 'β': "b", 'γ': "g", 'δ': "d", 'ε': "e", 'ζ': "z",
	'η': "ē", 'θ': "th", 'ι': "i", 'κ': "k", 'λ': "l", 'μ': "m",
	'ν': "n", 'ξ': "x", 'ο': "o", 'π': "p", 'ρ': "r", 'σ': "s",
	'ς': "s", 'τ': "t", 'υ': "u", 'φ': "ph", 'χ': "ch", 'ψ': "ps",
	'ω': "ō",
}

// deaccent decomposes to NFD and strips combining marks so that accented
// forms (λόγος) fold onto the base letters before table lookup.
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Transliterate renders Greek text into Latin letters using a fixed
// character-substitution table. Lookup is case-insensitive and accent-
// insensitive; mapped output is lowercase; unmapped runes pass through
// unchanged. The result is a pure function of the input.
func Transliterate(greek string) string {
	folded, _, err := transform.String(deaccent, greek)
	if err != nil {
		folded = greek
	}
	var b strings.Builder
	for _, r := range folded {
		if latin, ok := greekLatin[unicode.ToLower(r)]; ok {
			b.WriteString(latin)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
