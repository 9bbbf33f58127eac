package ods

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// ODF namespace URIs mapped to their canonical prefixes. The parser uses the
// document's own xmlns declarations when present; this table is the fallback
// for the namespaces a conforming producer declares on the root element.
var canonicalPrefixes = map[string]string{
	"urn:oasis:names:tc:opendocument:xmlns:office:1.0":            "office",
	"urn:oasis:names:tc:opendocument:xmlns:style:1.0":             "style",
	"urn:oasis:names:tc:opendocument:xmlns:text:1.0":              "text",
	"urn:oasis:names:tc:opendocument:xmlns:table:1.0":             "table",
	"urn:oasis:names:tc:opendocument:xmlns:drawing:1.0":           "draw",
	"urn:oasis:names:tc:opendocument:xmlns:xsl-fo-compatible:1.0": "fo",
	"urn:oasis:names:tc:opendocument:xmlns:svg-compatible:1.0":    "svg",
	"urn:oasis:names:tc:opendocument:xmlns:datastyle:1.0":         "number",
	"urn:oasis:names:tc:opendocument:xmlns:meta:1.0":              "meta",
	"urn:oasis:names:tc:opendocument:xmlns:chart:1.0":             "chart",
	"urn:oasis:names:tc:opendocument:xmlns:dr3d:1.0":              "dr3d",
	"urn:oasis:names:tc:opendocument:xmlns:form:1.0":              "form",
	"urn:oasis:names:tc:opendocument:xmlns:script:1.0":            "script",
	"urn:oasis:names:tc:opendocument:xmlns:presentation:1.0":      "presentation",
	"urn:oasis:names:tc:opendocument:xmlns:animation:1.0":         "anim",
	"urn:oasis:names:tc:opendocument:xmlns:of:1.2":                "of",
	"http://purl.org/dc/elements/1.1/":                            "dc",
	"http://www.w3.org/1999/xlink":                                "xlink",
	"http://www.w3.org/1998/Math/MathML":                          "math",
	"http://www.w3.org/XML/1998/namespace":                        "xml",
}

// ParseXML reads an XML document into an element tree. Element and attribute
// names are stored with their namespace prefix ("table:table-row"), resolved
// from the document's xmlns declarations with canonicalPrefixes as fallback.
// Undeclared prefixes are kept verbatim; a declared namespace URI that maps
// to no known prefix is an error rather than a silent rename.
func ParseXML(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)

	prefixes := make(map[string]string, len(canonicalPrefixes))
	for uri, p := range canonicalPrefixes {
		prefixes[uri] = p
	}

	qualify := func(n xml.Name) (string, error) {
		if n.Space == "" {
			return n.Local, nil
		}
		if p, ok := prefixes[n.Space]; ok {
			return p + ":" + n.Local, nil
		}
		// The decoder reports an undeclared prefix as the literal prefix
		// rather than a URI; keep it so the name survives a round trip.
		if !strings.ContainsAny(n.Space, ":/") {
			return n.Space + ":" + n.Local, nil
		}
		return "", fmt.Errorf("parsing xml: unresolvable namespace %q on %s", n.Space, n.Local)
	}

	var root *Element
	var stack []*Element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{}
			for _, a := range t.Attr {
				switch {
				case a.Name.Space == "xmlns":
					prefixes[a.Value] = a.Name.Local
					el.Attrs = append(el.Attrs, Attr{Name: "xmlns:" + a.Name.Local, Value: a.Value})
				case a.Name.Space == "" && a.Name.Local == "xmlns":
					el.Attrs = append(el.Attrs, Attr{Name: "xmlns", Value: a.Value})
				default:
					name, err := qualify(a.Name)
					if err != nil {
						return nil, err
					}
					el.Attrs = append(el.Attrs, Attr{Name: name, Value: a.Value})
				}
			}
			name, err := qualify(t.Name)
			if err != nil {
				return nil, err
			}
			el.Name = name
			if root == nil {
				root = el
			} else {
				top := stack[len(stack)-1]
				top.Children = append(top.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				top.Children = append(top.Children, Text(string(t)))
			}
		}
		// Comments, directives and processing instructions are dropped;
		// producers do not put them inside content.xml.
	}

	if root == nil {
		return nil, fmt.Errorf("parsing xml: no root element")
	}
	return root, nil
}

// SerializeXML writes the element tree as a standalone XML document.
func SerializeXML(root *Element) []byte {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	writeElement(&buf, root)
	return buf.Bytes()
}

func writeElement(buf *bytes.Buffer, e *Element) {
	buf.WriteByte('<')
	buf.WriteString(e.Name)
	for _, a := range e.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		escape(buf, a.Value)
		buf.WriteByte('"')
	}
	if len(e.Children) == 0 {
		buf.WriteString("/>")
		return
	}
	buf.WriteByte('>')
	for _, c := range e.Children {
		switch v := c.(type) {
		case Text:
			escape(buf, string(v))
		case *Element:
			writeElement(buf, v)
		default:
			panic(fmt.Sprintf("ods: cannot serialize node of type %T", c))
		}
	}
	buf.WriteString("</")
	buf.WriteString(e.Name)
	buf.WriteByte('>')
}

func escape(buf *bytes.Buffer, s string) {
	// xml.EscapeText covers <, >, &, quotes and the whitespace escapes.
	_ = xml.EscapeText(buf, []byte(s))
}
