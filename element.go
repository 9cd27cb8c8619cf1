package xmldom

import "strings"

// Element is a handle to an element node. It embeds Node, so every
// Node method is available on it. Like Node, an Element is a cheap
// value tied to the Document that created it.
type Element struct {
	Node
}

// AsNode widens the element back to a plain node handle.
func (e Element) AsNode() Node { return e.Node }

// IsContainer reports whether this is the document's hidden container
// element.
func (e Element) IsContainer() bool { return e.id == containerID }

// elem resolves the handle and checks that it is an element.
func (d *Document) elem(e Element) (*nodeData, error) {
	data, err := d.data(e.Node)
	if err != nil {
		return nil, err
	}
	if data.kind != ElementNode {
		return nil, ErrNotElement
	}
	return data, nil
}

// SeparateName splits a full element or attribute name into its
// namespace prefix and local name. The prefix is "" when absent.
func SeparateName(full string) (prefix, local string) {
	if i := strings.IndexByte(full, ':'); i >= 0 {
		return full[:i], full[i+1:]
	}
	return "", full
}

// Name returns the element's full name, including any namespace prefix.
func (e Element) Name(d *Document) string {
	data, err := d.elem(e)
	if err != nil {
		return ""
	}
	return data.name
}

// LocalName returns the element's name without its namespace prefix.
func (e Element) LocalName(d *Document) string {
	_, local := SeparateName(e.Name(d))
	return local
}

// Prefix returns the element's namespace prefix, or "".
func (e Element) Prefix(d *Document) string {
	prefix, _ := SeparateName(e.Name(d))
	return prefix
}

// SetName replaces the element's full name.
func (e Element) SetName(d *Document, name string) error {
	data, err := d.elem(e)
	if err != nil {
		return err
	}
	data.name = name
	return nil
}

// Attrs returns a copy of the element's attributes in document order.
func (e Element) Attrs(d *Document) []Attr {
	data, err := d.elem(e)
	if err != nil || len(data.attrs) == 0 {
		return nil
	}
	out := make([]Attr, len(data.attrs))
	copy(out, data.attrs)
	return out
}

// Attr returns the value of the named attribute.
func (e Element) Attr(d *Document, name string) (string, bool) {
	data, err := d.elem(e)
	if err != nil {
		return "", false
	}
	for _, a := range data.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets an attribute. An existing name keeps its position and
// gets the new value; a new name is appended. The value is stored
// verbatim: normalization only ever applies to parsed source text.
func (e Element) SetAttr(d *Document, name, value string) error {
	data, err := d.elem(e)
	if err != nil {
		return err
	}
	for i := range data.attrs {
		if data.attrs[i].Name == name {
			data.attrs[i].Value = value
			return nil
		}
	}
	data.attrs = append(data.attrs, Attr{Name: name, Value: value})
	return nil
}

// RemoveAttr removes the named attribute, reporting whether it existed.
func (e Element) RemoveAttr(d *Document, name string) (bool, error) {
	data, err := d.elem(e)
	if err != nil {
		return false, err
	}
	for i := range data.attrs {
		if data.attrs[i].Name == name {
			data.attrs = append(data.attrs[:i], data.attrs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Children returns the element's child nodes in document order.
func (e Element) Children(d *Document) []Node {
	data, err := d.elem(e)
	if err != nil || len(data.children) == 0 {
		return nil
	}
	out := make([]Node, len(data.children))
	for i, id := range data.children {
		out[i] = d.node(id)
	}
	return out
}

// ChildCount returns the number of child nodes.
func (e Element) ChildCount(d *Document) int {
	data, err := d.elem(e)
	if err != nil {
		return 0
	}
	return len(data.children)
}

// ChildElements returns only the element children, in order.
func (e Element) ChildElements(d *Document) []Element {
	data, err := d.elem(e)
	if err != nil {
		return nil
	}
	var out []Element
	for _, id := range data.children {
		if d.nodes[id].kind == ElementNode {
			out = append(out, Element{d.node(id)})
		}
	}
	return out
}

// Find returns the first immediate child element whose local name is
// name.
func (e Element) Find(d *Document, name string) (Element, bool) {
	data, err := d.elem(e)
	if err != nil {
		return Element{}, false
	}
	for _, id := range data.children {
		if d.nodes[id].kind != ElementNode {
			continue
		}
		if _, local := SeparateName(d.nodes[id].name); local == name {
			return Element{d.node(id)}, true
		}
	}
	return Element{}, false
}

// FindAll returns every immediate child element whose local name is
// name.
func (e Element) FindAll(d *Document, name string) []Element {
	data, err := d.elem(e)
	if err != nil {
		return nil
	}
	var out []Element
	for _, id := range data.children {
		if d.nodes[id].kind != ElementNode {
			continue
		}
		if _, local := SeparateName(d.nodes[id].name); local == name {
			out = append(out, Element{d.node(id)})
		}
	}
	return out
}

// FindDeep returns the first element with the given local name found
// in a depth-first walk of the whole subtree.
func (e Element) FindDeep(d *Document, name string) (Element, bool) {
	data, err := d.elem(e)
	if err != nil {
		return Element{}, false
	}
	for _, id := range data.children {
		if d.nodes[id].kind != ElementNode {
			continue
		}
		child := Element{d.node(id)}
		if _, local := SeparateName(d.nodes[id].name); local == name {
			return child, true
		}
		if found, ok := child.FindDeep(d, name); ok {
			return found, true
		}
	}
	return Element{}, false
}

// SetTextContent removes all children and replaces them with a single
// text node.
func (e Element) SetTextContent(d *Document, text string) error {
	if _, err := e.ClearChildren(d); err != nil {
		return err
	}
	return e.AppendChild(d, d.CreateText(text))
}

// Namespace resolves the element's own namespace, i.e. the one bound
// to its prefix (or the default namespace for prefix-less elements).
func (e Element) Namespace(d *Document) (string, bool) {
	return e.NamespaceForPrefix(d, e.Prefix(d))
}

// NamespaceForPrefix resolves a namespace prefix by scanning xmlns
// declarations on this element and its ancestors. The "xml" and
// "xmlns" prefixes resolve to their fixed namespaces.
func (e Element) NamespaceForPrefix(d *Document, prefix string) (string, bool) {
	switch prefix {
	case "xml":
		return "http://www.w3.org/XML/1998/namespace", true
	case "xmlns":
		return "http://www.w3.org/2000/xmlns/", true
	}
	attr := "xmlns"
	if prefix != "" {
		attr = "xmlns:" + prefix
	}
	cur := e
	for {
		if v, ok := cur.Attr(d, attr); ok {
			return v, true
		}
		parent, ok := cur.Parent(d)
		if !ok || parent.IsContainer() {
			return "", false
		}
		cur = parent
	}
}
