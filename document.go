package xmldom

import "sync/atomic"

// docSeq issues process-unique document ids. Handles embed the id of
// the document that created them, which is how foreign handles are
// rejected instead of silently aliasing nodes in another tree.
var docSeq atomic.Uint32

// Document owns all nodes of one XML document in a flat, append-only
// store. Nodes are addressed by copyable handles (Node, Element) whose
// ids stay valid for the document's whole lifetime; detaching a node
// orphans it but never invalidates its handle.
//
// A Document is not safe for concurrent mutation. Concurrent reads are
// fine as long as no writer runs.
type Document struct {
	id    uint32
	nodes []nodeData

	version    string
	encoding   string
	standalone string
}

// nodeData is the arena record behind a handle.
type nodeData struct {
	kind     NodeKind
	name     string // element full name, or PI target
	text     string // character content for non-element kinds
	attrs    []Attr
	parent   int32 // -1 when detached or container
	children []int32
}

// An Attr is a single name/value attribute pair. Attribute order is
// significant and preserved from the source document.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

const containerID = 0

// New creates an empty document containing only the hidden container
// element that manages root-level nodes.
func New() *Document {
	d := &Document{
		id:    docSeq.Add(1),
		nodes: make([]nodeData, 1, 16),
	}
	d.nodes[containerID] = nodeData{kind: ElementNode, parent: -1}
	return d
}

// NewWithRoot creates a document and builds its root element in one
// call:
//
//	doc, root := xmldom.NewWithRoot("package", func(b *xmldom.ElementBuilder) *xmldom.ElementBuilder {
//		return b.Attr("id", "main").Element("name", func(b *xmldom.ElementBuilder) *xmldom.ElementBuilder {
//			return b.Text("Cool Name")
//		})
//	})
func NewWithRoot(name string, f func(*ElementBuilder) *ElementBuilder) (*Document, Element) {
	d := New()
	b := NewElement(name)
	if f != nil {
		b = f(b)
	}
	root := b.Finish(d)
	// Attaching a fresh orphan element to an empty document cannot fail.
	_ = d.AppendRoot(root.AsNode())
	return d, root
}

// alloc appends a record to the store and returns its id.
func (d *Document) alloc(data nodeData) int32 {
	id := int32(len(d.nodes))
	d.nodes = append(d.nodes, data)
	return id
}

// data resolves a handle, enforcing the single-document ownership rule.
func (d *Document) data(n Node) (*nodeData, error) {
	if n.doc != d.id {
		return nil, ErrForeignDocument
	}
	if n.id < 0 || int(n.id) >= len(d.nodes) {
		return nil, ErrUnknownNode
	}
	return &d.nodes[n.id], nil
}

func (d *Document) node(id int32) Node {
	return Node{doc: d.id, id: id}
}

// Len returns the number of nodes in the store, including the
// container and any detached nodes.
func (d *Document) Len() int {
	return len(d.nodes)
}

// Container returns the hidden container element whose children are
// the document's root-level nodes. It cannot be detached or moved.
func (d *Document) Container() Element {
	return Element{Node{doc: d.id, id: containerID}}
}

// RootNodes returns the document's root-level nodes in order.
func (d *Document) RootNodes() []Node {
	return d.Container().Children(d)
}

// Root returns the document's root element, if one exists.
func (d *Document) Root() (Element, bool) {
	for _, id := range d.nodes[containerID].children {
		if d.nodes[id].kind == ElementNode {
			return Element{d.node(id)}, true
		}
	}
	return Element{}, false
}

// AppendRoot appends a node to the document's root level. Attaching a
// second root element fails with ErrRootExists; comments, processing
// instructions and doctype nodes may always be added.
func (d *Document) AppendRoot(n Node) error {
	return d.Container().AppendChild(d, n)
}

// Version returns the version from the XML declaration, or "" if the
// document had none.
func (d *Document) Version() string { return d.version }

// SetVersion sets the declaration version. A non-empty version makes
// the writer emit an XML declaration by default.
func (d *Document) SetVersion(v string) { d.version = v }

// Encoding returns the encoding label the document declared or was
// detected with, or "" for plain UTF-8 input without a declaration.
func (d *Document) Encoding() string { return d.encoding }

// Standalone returns the declaration's standalone value ("yes", "no",
// or "").
func (d *Document) Standalone() string { return d.standalone }

// SetStandalone sets the declaration's standalone value.
func (d *Document) SetStandalone(v string) { d.standalone = v }

// CreateElement allocates a detached element with the given full name
// (an optional "prefix:" followed by the local name). Attach it with
// AppendChild, InsertChild or AppendRoot.
func (d *Document) CreateElement(name string) Element {
	id := d.alloc(nodeData{kind: ElementNode, name: name, parent: -1})
	return Element{d.node(id)}
}

// CreateText allocates a detached text node.
func (d *Document) CreateText(text string) Node {
	return d.node(d.alloc(nodeData{kind: TextNode, text: text, parent: -1}))
}

// CreateCData allocates a detached CDATA node. Its content is emitted
// verbatim, never escaped.
func (d *Document) CreateCData(text string) Node {
	return d.node(d.alloc(nodeData{kind: CDataNode, text: text, parent: -1}))
}

// CreateComment allocates a detached comment node. The text excludes
// the comment delimiters.
func (d *Document) CreateComment(text string) Node {
	return d.node(d.alloc(nodeData{kind: CommentNode, text: text, parent: -1}))
}

// CreateProcInst allocates a detached processing-instruction node.
func (d *Document) CreateProcInst(target, inst string) Node {
	return d.node(d.alloc(nodeData{kind: ProcInstNode, name: target, text: inst, parent: -1}))
}

// CreateDocType allocates a detached doctype node holding the literal
// directive content (everything between "<!" and ">").
func (d *Document) CreateDocType(content string) Node {
	return d.node(d.alloc(nodeData{kind: DocTypeNode, text: content, parent: -1}))
}
