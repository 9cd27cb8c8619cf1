package xmldom

// ElementBuilder stages an element subtree before any of it exists in a
// document. Nothing is allocated until Finish or AppendTo runs, so a
// half-built subtree never leaks orphan nodes into the store.
type ElementBuilder struct {
	name  string
	attrs []Attr
	items []builderItem
}

type builderItem struct {
	kind  NodeKind
	name  string // PI target
	text  string
	child *ElementBuilder
}

// NewElement starts building an element with the given full name.
func NewElement(name string) *ElementBuilder {
	return &ElementBuilder{name: name}
}

// Attr stages an attribute. A repeated name overwrites the staged value
// in place, matching SetAttr.
func (b *ElementBuilder) Attr(name, value string) *ElementBuilder {
	for i := range b.attrs {
		if b.attrs[i].Name == name {
			b.attrs[i].Value = value
			return b
		}
	}
	b.attrs = append(b.attrs, Attr{Name: name, Value: value})
	return b
}

// Text stages a text child.
func (b *ElementBuilder) Text(text string) *ElementBuilder {
	b.items = append(b.items, builderItem{kind: TextNode, text: text})
	return b
}

// CData stages a CDATA child.
func (b *ElementBuilder) CData(text string) *ElementBuilder {
	b.items = append(b.items, builderItem{kind: CDataNode, text: text})
	return b
}

// Comment stages a comment child.
func (b *ElementBuilder) Comment(text string) *ElementBuilder {
	b.items = append(b.items, builderItem{kind: CommentNode, text: text})
	return b
}

// PI stages a processing-instruction child.
func (b *ElementBuilder) PI(target, inst string) *ElementBuilder {
	b.items = append(b.items, builderItem{kind: ProcInstNode, name: target, text: inst})
	return b
}

// Child stages a prepared builder as a child element.
func (b *ElementBuilder) Child(child *ElementBuilder) *ElementBuilder {
	b.items = append(b.items, builderItem{kind: ElementNode, child: child})
	return b
}

// Element stages a child element built inline:
//
//	NewElement("book").Element("title", func(b *ElementBuilder) *ElementBuilder {
//		return b.Text("Slow Learner")
//	})
//
// A nil function stages an empty child.
func (b *ElementBuilder) Element(name string, f func(*ElementBuilder) *ElementBuilder) *ElementBuilder {
	child := NewElement(name)
	if f != nil {
		child = f(child)
	}
	return b.Child(child)
}

// Finish materializes the staged subtree in d and returns its detached
// root element.
func (b *ElementBuilder) Finish(d *Document) Element {
	e := d.CreateElement(b.name)
	data := &d.nodes[e.id]
	if len(b.attrs) > 0 {
		data.attrs = append([]Attr(nil), b.attrs...)
	}
	for _, item := range b.items {
		var n Node
		switch item.kind {
		case ElementNode:
			n = item.child.Finish(d).AsNode()
		case TextNode:
			n = d.CreateText(item.text)
		case CDataNode:
			n = d.CreateCData(item.text)
		case CommentNode:
			n = d.CreateComment(item.text)
		case ProcInstNode:
			n = d.CreateProcInst(item.name, item.text)
		}
		// Children are fresh orphans of the same document; attaching
		// them to a fresh element cannot fail.
		d.nodes[e.id].children = append(d.nodes[e.id].children, n.id)
		d.nodes[n.id].parent = e.id
	}
	return e
}

// AppendTo materializes the subtree and appends it to parent. On error
// (foreign parent, second root element) the materialized nodes remain
// in the store as detached orphans.
func (b *ElementBuilder) AppendTo(d *Document, parent Element) (Element, error) {
	e := b.Finish(d)
	if err := parent.AppendChild(d, e.AsNode()); err != nil {
		return Element{}, err
	}
	return e, nil
}
