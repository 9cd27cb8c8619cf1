package xmldom

import "strings"

// NodeKind identifies the variant stored behind a Node handle.
type NodeKind uint8

const (
	ElementNode NodeKind = iota + 1
	TextNode
	CDataNode
	CommentNode
	ProcInstNode
	DocTypeNode
)

// String returns the kind's name as used by Breakdown.
func (k NodeKind) String() string {
	switch k {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CDataNode:
		return "cdata"
	case CommentNode:
		return "comment"
	case ProcInstNode:
		return "pi"
	case DocTypeNode:
		return "doctype"
	}
	return "invalid"
}

// Node is a cheap, copyable handle to a node stored in a Document.
// The zero Node is invalid. A handle is only meaningful together with
// the Document that created it; using it with any other Document fails
// with ErrForeignDocument.
type Node struct {
	doc uint32
	id  int32
}

// Valid reports whether the handle was obtained from a document (as
// opposed to being the zero value).
func (n Node) Valid() bool { return n.doc != 0 }

// Kind returns the node's variant, or 0 for a foreign or invalid handle.
func (n Node) Kind(d *Document) NodeKind {
	data, err := d.data(n)
	if err != nil {
		return 0
	}
	return data.kind
}

// Parent returns the element this node is attached to. The second
// result is false for detached nodes, the container, and bad handles.
func (n Node) Parent(d *Document) (Element, bool) {
	data, err := d.data(n)
	if err != nil || data.parent < 0 {
		return Element{}, false
	}
	return Element{d.node(data.parent)}, true
}

// IsDetached reports whether the node is unreachable from the
// document's root level.
func (n Node) IsDetached(d *Document) bool {
	data, err := d.data(n)
	if err != nil {
		return false
	}
	for data.parent >= 0 {
		if data.parent == containerID {
			return false
		}
		data = &d.nodes[data.parent]
	}
	return n.id != containerID
}

// Text returns the node's character content: text, CDATA and comment
// content, a processing instruction's instruction part, or a doctype's
// literal declaration. Elements return "".
func (n Node) Text(d *Document) string {
	data, err := d.data(n)
	if err != nil || data.kind == ElementNode {
		return ""
	}
	return data.text
}

// SetText replaces the character content of a non-element node.
func (n Node) SetText(d *Document, text string) error {
	data, err := d.data(n)
	if err != nil {
		return err
	}
	if data.kind == ElementNode {
		return ErrNoContent
	}
	data.text = text
	return nil
}

// Target returns a processing instruction's target name, or "".
func (n Node) Target(d *Document) string {
	data, err := d.data(n)
	if err != nil || data.kind != ProcInstNode {
		return ""
	}
	return data.name
}

// AsElement narrows the handle to an Element.
func (n Node) AsElement(d *Document) (Element, bool) {
	data, err := d.data(n)
	if err != nil || data.kind != ElementNode {
		return Element{}, false
	}
	return Element{n}, true
}

// TextContent concatenates the text beneath this node the way DOM
// textContent does: elements recurse into their children, text, CDATA
// and processing instructions contribute their content, comments and
// doctypes contribute nothing.
func (n Node) TextContent(d *Document) string {
	var b strings.Builder
	n.buildTextContent(d, &b)
	return b.String()
}

func (n Node) buildTextContent(d *Document, b *strings.Builder) {
	data, err := d.data(n)
	if err != nil {
		return
	}
	switch data.kind {
	case ElementNode:
		for _, id := range data.children {
			d.node(id).buildTextContent(d, b)
		}
	case TextNode, CDataNode, ProcInstNode:
		b.WriteString(data.text)
	}
}
