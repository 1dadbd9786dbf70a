// Package flextext serializes interlinear verses into the FlexText
// interchange XML document and reads produced documents back.
//
// The document shape is fixed for downstream tool compatibility:
// document > interlinear-text > title items > paragraphs > paragraph >
// phrases > phrase > (txt/segnum items, words > word > txt/gls items,
// optional morphemes > morph > msa items, trailing gls item). Indentation
// is cosmetic only; consumers must use core/xml.Equivalent when comparing
// output.
package flextext

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/SwordFlex/core/errors"
	"github.com/FocuswithJustin/SwordFlex/core/interlinear"
)

// FieldKey names a Word field for baseline/gloss/analysis selection. The
// values match the JSON wire schema so shell configuration maps directly.
type FieldKey string

const (
	FieldSurface         FieldKey = "greek_word"
	FieldLemma           FieldKey = "lemma"
	FieldMorphology      FieldKey = "morphology"
	FieldStrongs         FieldKey = "strongs_number"
	FieldGloss           FieldKey = "en_gloss"
	FieldTransliteration FieldKey = "tr_transliteration"
)

// FieldSelection configures which Word fields feed each document layer.
type FieldSelection struct {
	// BaselineKey supplies the baseline written form. Default: surface text.
	BaselineKey FieldKey
	// GlossKey supplies the per-word gloss line. Default: gloss.
	GlossKey FieldKey
	// IncludeLiteral adds a phrase-level "lit" item carrying the literal
	// translation when one exists.
	IncludeLiteral bool
	// AnalysisMap adds per-word morpheme analysis items: field -> writing
	// system id emitted as <item type="msa" lang=...>.
	AnalysisMap map[FieldKey]string
}

func (s FieldSelection) withDefaults() FieldSelection {
	if s.BaselineKey == "" {
		s.BaselineKey = FieldSurface
	}
	if s.GlossKey == "" {
		s.GlossKey = FieldGloss
	}
	return s
}

// TranslateFunc is the optional phrase-translation collaborator: a
// plain-text translation for one verse, empty when unavailable.
type TranslateFunc func(book string, chapter, verse int) string

// Builder serializes verses into FlexText documents.
type Builder struct {
	// Translate supplies phrase-level translations; nil disables the
	// collaborator and falls through to literal translation or glosses.
	Translate TranslateFunc
}

// Build serializes verses into one FlexText document. An empty verse
// sequence produces a minimally valid empty-title document. Every
// structural element gets a freshly generated GUID; generation is safe
// under concurrent Build calls.
func (b *Builder) Build(verses []*interlinear.Verse, cfg FieldSelection) (string, error) {
	cfg = cfg.withDefaults()

	title, abbrev := passageTitle(verses)

	text := elem("interlinear-text", attr("guid", uuid.NewString()))
	text.add(item("title", "en", title))
	text.add(item("title-abbreviation", "en", abbrev))

	phrases := elem("phrases")
	if len(verses) == 0 {
		phrases.add(b.phrase(&interlinear.Verse{}, cfg))
	}
	for _, v := range verses {
		phrases.add(b.phrase(v, cfg))
	}

	paragraph := elem("paragraph")
	paragraph.add(phrases)
	paragraphs := elem("paragraphs")
	paragraphs.add(paragraph)
	text.add(paragraphs)

	doc := elem("document", attr("version", "2"))
	doc.add(text)

	out, err := render(doc)
	if err != nil {
		return "", &errors.DocumentBuildError{Stage: "serialize", Message: err.Error(), Err: err}
	}
	return out, nil
}

// phrase builds one phrase element for a verse.
func (b *Builder) phrase(v *interlinear.Verse, cfg FieldSelection) *element {
	p := elem("phrase", attr("guid", uuid.NewString()))

	baseline := joinFields(v.Words, cfg.BaselineKey)
	p.add(item("txt", "grc", baseline))
	p.add(item("segnum", "en", strconv.Itoa(v.Verse)))

	words := elem("words")
	for i := range v.Words {
		words.add(b.word(&v.Words[i], cfg))
	}
	p.add(words)

	p.add(item("gls", "en", b.phraseTranslation(v, cfg)))
	if cfg.IncludeLiteral && strings.TrimSpace(v.LiteralTranslation) != "" {
		p.add(item("lit", "en", strings.TrimSpace(v.LiteralTranslation)))
	}
	return p
}

// word builds one word element with its baseline and gloss items plus any
// requested analysis layers.
func (b *Builder) word(w *interlinear.Word, cfg FieldSelection) *element {
	word := elem("word", attr("guid", uuid.NewString()))
	word.add(item("txt", "grc", wordField(w, cfg.BaselineKey)))
	word.add(item("gls", "en", wordField(w, cfg.GlossKey)))

	if len(cfg.AnalysisMap) > 0 {
		morph := elem("morph")
		for _, key := range sortedKeys(cfg.AnalysisMap) {
			value := wordField(w, key)
			if value == "" {
				continue
			}
			morph.add(item("msa", cfg.AnalysisMap[key], value))
		}
		if len(morph.children) > 0 {
			morphemes := elem("morphemes")
			morphemes.add(morph)
			word.add(morphemes)
		}
	}
	return word
}

// phraseTranslation resolves the phrase-level translation line: the
// external collaborator first, then the verse's literal translation, then
// the concatenated per-word glosses as a synthesized fallback.
func (b *Builder) phraseTranslation(v *interlinear.Verse, cfg FieldSelection) string {
	if b.Translate != nil {
		if t := strings.TrimSpace(b.Translate(v.Book, v.Chapter, v.Verse)); t != "" {
			return t
		}
	}
	if t := strings.TrimSpace(v.LiteralTranslation); t != "" {
		return t
	}
	return joinFields(v.Words, cfg.GlossKey)
}

// passageTitle derives the document title and its filesystem-safe
// abbreviation from the verse span.
func passageTitle(verses []*interlinear.Verse) (title, abbrev string) {
	if len(verses) == 0 {
		return "", ""
	}
	first, last := verses[0], verses[len(verses)-1]
	title = first.Ref()
	if first.Chapter != last.Chapter || first.Verse != last.Verse {
		title = fmt.Sprintf("%s %d:%d-%d:%d", first.Book, first.Chapter, first.Verse, last.Chapter, last.Verse)
	}
	return title, abbreviate(title)
}

var abbrevReplacer = strings.NewReplacer(" ", "", ":", "_")

// abbreviate strips spaces and replaces colons so the title is safe as a
// file name fragment.
func abbreviate(title string) string {
	return abbrevReplacer.Replace(title)
}

func wordField(w *interlinear.Word, key FieldKey) string {
	switch key {
	case FieldSurface:
		return w.Surface
	case FieldLemma:
		return w.Lemma
	case FieldMorphology:
		return w.Morphology
	case FieldStrongs:
		return w.StrongsKey
	case FieldGloss:
		return w.Gloss
	case FieldTransliteration:
		return w.Transliteration
	default:
		return ""
	}
}

func joinFields(words []interlinear.Word, key FieldKey) string {
	parts := make([]string, 0, len(words))
	for i := range words {
		parts = append(parts, wordField(&words[i], key))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func sortedKeys(m map[FieldKey]string) []FieldKey {
	keys := make([]FieldKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// element is a minimal ordered XML element tree, rendered through
// xml.Encoder so escaping stays correct.
type element struct {
	name     string
	attrs    []xml.Attr
	text     string
	children []*element
}

func elem(name string, attrs ...xml.Attr) *element {
	return &element{name: name, attrs: attrs}
}

func item(itemType, lang, text string) *element {
	e := elem("item", attr("type", itemType), attr("lang", lang))
	e.text = text
	return e
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func (e *element) add(child *element) {
	e.children = append(e.children, child)
}

// render serializes the tree with an XML declaration and two-space
// cosmetic indentation.
func render(root *element) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := encodeElement(enc, root); err != nil {
		return "", err
	}
	if err := enc.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func encodeElement(enc *xml.Encoder, e *element) error {
	start := xml.StartElement{Name: xml.Name{Local: e.name}, Attr: e.attrs}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if e.text != "" {
		if err := enc.EncodeToken(xml.CharData(e.text)); err != nil {
			return err
		}
	}
	for _, child := range e.children {
		if err := encodeElement(enc, child); err != nil {
			return err
		}
	}
	return enc.EncodeToken(xml.EndElement{Name: start.Name})
}
