package pemcsv

import (
	"encoding/xml"
	"fmt"
	"strings"

	"golang.org/x/net/html/charset"
)

// Element is a generic XML tree node: tag name, attributes in document
// order, direct text, and child elements in document order.
type Element struct {
	Name     string
	Attrs    []xml.Attr
	Text     string
	Children []*Element
}

// UnmarshalXML builds the subtree rooted at start. Only character data
// appearing before the first child element counts as the element's
// direct text, matching the usual DOM notion of leading text.
func (e *Element) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	e.Name = start.Name.Local
	e.Attrs = start.Attr
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.CharData:
			if len(e.Children) == 0 {
				e.Text += string(t)
			}
		case xml.StartElement:
			child := &Element{}
			if err := child.UnmarshalXML(d, t); err != nil {
				return err
			}
			e.Children = append(e.Children, child)
		case xml.EndElement:
			return nil
		}
	}
}

// ParseXML parses an XML document into an Element tree. The decoder
// tolerates non-UTF-8 encoding declarations via a charset-detecting
// reader.
func ParseXML(text string) (*Element, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	dec.CharsetReader = charset.NewReaderLabel
	root := &Element{}
	if err := dec.Decode(root); err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return root, nil
}

// StripNonPrintable removes characters outside the printable ASCII
// range, keeping tab, newline, and carriage return. Used for one
// cleanup retry when a located fragment fails to parse.
func StripNonPrintable(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 0x20 && r <= 0x7E || r == '\n' || r == '\r' || r == '\t' {
			return r
		}
		return -1
	}, s)
}
