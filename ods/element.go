// Package ods provides a mutable model of OpenDocument spreadsheet content.
// Rows and cells may be stored run-length compressed (number-rows-repeated /
// number-columns-repeated); the package exposes logical-index addressing that
// splits those runs on demand.
package ods

import "fmt"

// Node is a node in the content tree: an *Element or a Text.
type Node interface {
	node()
}

// Text is character data inside an element.
type Text string

func (Text) node() {}

// Attr is a single attribute with its prefixed name, e.g. "table:style-name".
type Attr struct {
	Name  string
	Value string
}

// Element is an XML element with ordered attributes and children.
// Names keep their ODF prefix ("table:table-row", "text:p", ...).
type Element struct {
	Name     string
	Attrs    []Attr
	Children []Node
}

func (*Element) node() {}

// Attr returns the value of the named attribute, or "" if absent.
func (e *Element) Attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present.
func (e *Element) HasAttr(name string) bool {
	for _, a := range e.Attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

// SetAttr sets an attribute, replacing an existing one in place to keep
// attribute order stable.
func (e *Element) SetAttr(name, value string) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
}

// RemoveAttr removes the named attribute if present.
func (e *Element) RemoveAttr(name string) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs = append(e.Attrs[:i], e.Attrs[i+1:]...)
			return
		}
	}
}

// AppendChild appends n to the element's children.
func (e *Element) AppendChild(n Node) {
	e.Children = append(e.Children, n)
}

// InsertBefore inserts n immediately before ref. If ref is nil or not a
// child of e, n is appended at the end.
func (e *Element) InsertBefore(n Node, ref *Element) {
	if ref != nil {
		for i, c := range e.Children {
			if c == Node(ref) {
				e.Children = append(e.Children, nil)
				copy(e.Children[i+1:], e.Children[i:])
				e.Children[i] = n
				return
			}
		}
	}
	e.Children = append(e.Children, n)
}

// RemoveChild removes n from the element's children. Removing a node that is
// not a child is a no-op.
func (e *Element) RemoveChild(n Node) {
	for i, c := range e.Children {
		if c == n {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			return
		}
	}
}

// ChildElements returns the child elements whose name is one of names, in
// document order. With no names it returns all child elements.
func (e *Element) ChildElements(names ...string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		el, ok := c.(*Element)
		if !ok {
			continue
		}
		if len(names) == 0 {
			out = append(out, el)
			continue
		}
		for _, n := range names {
			if el.Name == n {
				out = append(out, el)
				break
			}
		}
	}
	return out
}

// FirstChild returns the first child element with the given name, or nil.
func (e *Element) FirstChild(name string) *Element {
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok && el.Name == name {
			return el
		}
	}
	return nil
}

// Clone returns a structurally independent deep copy of the element: its
// attributes and its entire descendant content. Mutating the copy never
// affects the original.
func (e *Element) Clone() *Element {
	cp := &Element{Name: e.Name}
	if len(e.Attrs) > 0 {
		cp.Attrs = make([]Attr, len(e.Attrs))
		copy(cp.Attrs, e.Attrs)
	}
	if len(e.Children) > 0 {
		cp.Children = make([]Node, 0, len(e.Children))
		for _, c := range e.Children {
			cp.Children = append(cp.Children, CloneNode(c))
		}
	}
	return cp
}

// CloneNode deep-copies any node. An unrecognized node kind is a programmer
// error and panics rather than silently dropping content.
func CloneNode(n Node) Node {
	switch v := n.(type) {
	case Text:
		return v
	case *Element:
		return v.Clone()
	default:
		panic(fmt.Sprintf("ods: cannot clone node of type %T", n))
	}
}
