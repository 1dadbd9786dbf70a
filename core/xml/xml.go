// Package xml provides pure Go XML well-formedness checking and
// whitespace-insensitive document comparison.
//
// Security note: XXE (External Entity) attacks are mitigated by using
// Go's xml.Decoder, which does not fetch external entities, with entity
// expansion explicitly disabled.
package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Document represents a parsed XML document.
type Document struct {
	root *xmlquery.Node
}

// Parse parses XML data into a Document.
func Parse(data []byte) (*Document, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return &Document{root: root}, nil
}

// Root returns the underlying document node for XPath queries.
func (d *Document) Root() *xmlquery.Node {
	return d.root
}

// ValidationResult contains the result of a well-formedness check.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// Validate checks XML data for well-formedness. Entity expansion is
// disabled so hostile documents cannot smuggle external content in.
func Validate(data []byte) ValidationResult {
	result := ValidationResult{Valid: true}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Entity = map[string]string{}

	for {
		_, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, err.Error())
			break
		}
	}
	return result
}

// Equivalent reports whether two documents carry the same structure and
// content, ignoring indentation and other whitespace-only text. A parser
// must treat differently-indented serializations of the same document as
// equal; this is that comparison.
func Equivalent(a, b []byte) (bool, error) {
	da, err := Parse(a)
	if err != nil {
		return false, err
	}
	db, err := Parse(b)
	if err != nil {
		return false, err
	}
	return canonical(da.root) == canonical(db.root), nil
}

// canonical renders a node tree with sorted attributes and trimmed text,
// dropping whitespace-only text nodes.
func canonical(n *xmlquery.Node) string {
	var b strings.Builder
	writeCanonical(&b, n)
	return b.String()
}

func writeCanonical(b *strings.Builder, n *xmlquery.Node) {
	switch n.Type {
	case xmlquery.DocumentNode:
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			writeCanonical(b, child)
		}
	case xmlquery.ElementNode:
		b.WriteString("<")
		b.WriteString(n.Data)
		attrs := make([]string, 0, len(n.Attr))
		for _, a := range n.Attr {
			name := a.Name.Local
			if a.Name.Space != "" {
				name = a.Name.Space + ":" + name
			}
			attrs = append(attrs, fmt.Sprintf("%s=%q", name, a.Value))
		}
		sort.Strings(attrs)
		for _, a := range attrs {
			b.WriteString(" ")
			b.WriteString(a)
		}
		b.WriteString(">")
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			writeCanonical(b, child)
		}
		b.WriteString("</")
		b.WriteString(n.Data)
		b.WriteString(">")
	case xmlquery.TextNode, xmlquery.CharDataNode:
		if text := strings.TrimSpace(n.Data); text != "" {
			b.WriteString(text)
		}
	}
}
