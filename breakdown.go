package xmldom

// Breakdown is a plain, JSON-friendly snapshot of a document, useful
// for debugging and for diffing trees in tests. It is a copy: editing
// it does not touch the document.
type Breakdown struct {
	Version    string          `json:"version,omitempty"`
	Encoding   string          `json:"encoding,omitempty"`
	Standalone string          `json:"standalone,omitempty"`
	Nodes      []NodeBreakdown `json:"nodes"`
}

// NodeBreakdown is one node of a Breakdown tree.
type NodeBreakdown struct {
	Kind     string          `json:"kind"`
	Name     string          `json:"name,omitempty"` // element name or PI target
	Text     string          `json:"text,omitempty"`
	Attrs    []Attr          `json:"attrs,omitempty"`
	Children []NodeBreakdown `json:"children,omitempty"`
}

// Breakdown snapshots the document's root-level nodes and declaration
// state.
func (d *Document) Breakdown() Breakdown {
	b := Breakdown{
		Version:    d.version,
		Encoding:   d.encoding,
		Standalone: d.standalone,
	}
	for _, id := range d.nodes[containerID].children {
		b.Nodes = append(b.Nodes, d.breakdownNode(id))
	}
	return b
}

// Breakdown snapshots this node's subtree.
func (n Node) Breakdown(d *Document) (NodeBreakdown, error) {
	if _, err := d.data(n); err != nil {
		return NodeBreakdown{}, err
	}
	return d.breakdownNode(n.id), nil
}

func (d *Document) breakdownNode(id int32) NodeBreakdown {
	data := &d.nodes[id]
	nb := NodeBreakdown{
		Kind: data.kind.String(),
		Name: data.name,
		Text: data.text,
	}
	if len(data.attrs) > 0 {
		nb.Attrs = append([]Attr(nil), data.attrs...)
	}
	for _, cid := range data.children {
		nb.Children = append(nb.Children, d.breakdownNode(cid))
	}
	return nb
}
