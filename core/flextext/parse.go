package flextext

import (
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/FocuswithJustin/SwordFlex/core/errors"
	swordxml "github.com/FocuswithJustin/SwordFlex/core/xml"
)

// ParsedDocument is the structural content of a FlexText document read
// back from its serialized form.
type ParsedDocument struct {
	Title   string
	Abbrev  string
	Phrases []ParsedPhrase
}

// ParsedPhrase is one phrase (one verse) of a parsed document.
type ParsedPhrase struct {
	// Segnum is the verse number carried by the phrase.
	Segnum int
	// Baseline is the phrase-level concatenated baseline text.
	Baseline string
	// Translation is the trailing phrase-level gls item.
	Translation string
	// Words are the per-word baseline/gloss entries in document order.
	Words []ParsedWord
}

// ParsedWord is one word entry of a parsed phrase.
type ParsedWord struct {
	Text  string
	Gloss string
}

// ParseDocument reads a produced FlexText document back into its
// structural content. It is the verification counterpart of Build:
// differently-indented serializations parse identically.
func ParseDocument(data []byte) (*ParsedDocument, error) {
	doc, err := swordxml.Parse(data)
	if err != nil {
		return nil, &errors.ParseError{Format: "FlexText", Message: "malformed document", Err: err}
	}
	root := doc.Root()

	text := xmlquery.FindOne(root, "//interlinear-text")
	if text == nil {
		return nil, &errors.ParseError{Format: "FlexText", Message: "missing interlinear-text element"}
	}

	out := &ParsedDocument{
		Title:  itemText(text, "title"),
		Abbrev: itemText(text, "title-abbreviation"),
	}

	for _, phrase := range xmlquery.Find(text, "paragraphs/paragraph/phrases/phrase") {
		parsed := ParsedPhrase{
			Baseline:    itemText(phrase, "txt"),
			Translation: itemText(phrase, "gls"),
		}
		if seg := itemText(phrase, "segnum"); seg != "" {
			n, err := strconv.Atoi(seg)
			if err != nil {
				return nil, &errors.ParseError{Format: "FlexText", Message: "non-numeric segnum " + seg}
			}
			parsed.Segnum = n
		}
		for _, word := range xmlquery.Find(phrase, "words/word") {
			parsed.Words = append(parsed.Words, ParsedWord{
				Text:  itemText(word, "txt"),
				Gloss: itemText(word, "gls"),
			})
		}
		out.Phrases = append(out.Phrases, parsed)
	}
	return out, nil
}

// itemText returns the text of the first direct child item of the given
// type. Direct-child lookup keeps phrase items distinct from the deeper
// word items.
func itemText(n *xmlquery.Node, itemType string) string {
	node := xmlquery.FindOne(n, "item[@type='"+itemType+"']")
	if node == nil {
		return ""
	}
	return strings.TrimSpace(node.InnerText())
}
