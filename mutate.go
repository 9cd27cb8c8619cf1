package xmldom

import "sort"

// Tree mutation. Every operation validates all handles against the
// receiving Document before modifying anything, so a non-nil error
// always means the tree is untouched.

// attachCheck validates that child may become a child of parent.
func (d *Document) attachCheck(parent Element, child Node) (*nodeData, *nodeData, error) {
	pdata, err := d.elem(parent)
	if err != nil {
		return nil, nil, err
	}
	cdata, err := d.data(child)
	if err != nil {
		return nil, nil, err
	}
	if child.id == containerID {
		return nil, nil, ErrContainer
	}
	if cdata.parent >= 0 {
		return nil, nil, ErrHasParent
	}
	if cdata.kind == ElementNode {
		// Walking the new parent's ancestor chain catches both a direct
		// self-attach and attaching a detached subtree that contains the
		// target element.
		for cur := parent.id; cur >= 0; cur = d.nodes[cur].parent {
			if cur == child.id {
				return nil, nil, ErrCycle
			}
		}
		if parent.id == containerID {
			if _, ok := d.Root(); ok {
				return nil, nil, ErrRootExists
			}
		}
	}
	return pdata, cdata, nil
}

// AppendChild appends a detached node to the end of the element's
// child list.
func (e Element) AppendChild(d *Document, n Node) error {
	pdata, cdata, err := d.attachCheck(e, n)
	if err != nil {
		return err
	}
	pdata.children = append(pdata.children, n.id)
	cdata.parent = e.id
	return nil
}

// InsertChild inserts a detached node at position idx of the element's
// child list. idx may equal the current child count, which appends.
func (e Element) InsertChild(d *Document, idx int, n Node) error {
	pdata, cdata, err := d.attachCheck(e, n)
	if err != nil {
		return err
	}
	if idx < 0 || idx > len(pdata.children) {
		return ErrIndexRange
	}
	pdata.children = append(pdata.children, 0)
	copy(pdata.children[idx+1:], pdata.children[idx:])
	pdata.children[idx] = n.id
	cdata.parent = e.id
	return nil
}

// RemoveChild detaches and returns the child at position idx. The
// removed node stays in the document's store and can be reattached.
func (e Element) RemoveChild(d *Document, idx int) (Node, error) {
	data, err := d.elem(e)
	if err != nil {
		return Node{}, err
	}
	if idx < 0 || idx >= len(data.children) {
		return Node{}, ErrIndexRange
	}
	id := data.children[idx]
	data.children = append(data.children[:idx], data.children[idx+1:]...)
	d.nodes[id].parent = -1
	return d.node(id), nil
}

// PopChild detaches and returns the element's last child. The second
// result is false when the element has no children.
func (e Element) PopChild(d *Document) (Node, bool, error) {
	data, err := d.elem(e)
	if err != nil {
		return Node{}, false, err
	}
	if len(data.children) == 0 {
		return Node{}, false, nil
	}
	id := data.children[len(data.children)-1]
	data.children = data.children[:len(data.children)-1]
	d.nodes[id].parent = -1
	return d.node(id), true, nil
}

// ClearChildren detaches every child and returns them in their former
// order.
func (e Element) ClearChildren(d *Document) ([]Node, error) {
	data, err := d.elem(e)
	if err != nil {
		return nil, err
	}
	out := make([]Node, len(data.children))
	for i, id := range data.children {
		out[i] = d.node(id)
		d.nodes[id].parent = -1
	}
	data.children = data.children[:0]
	return out, nil
}

// Detach removes the node from its parent's child list, leaving it as
// an orphan in the store. Detaching an already detached node is a
// no-op.
func (n Node) Detach(d *Document) error {
	data, err := d.data(n)
	if err != nil {
		return err
	}
	if n.id == containerID {
		return ErrContainer
	}
	if data.parent < 0 {
		return nil
	}
	siblings := d.nodes[data.parent].children
	for i, id := range siblings {
		if id == n.id {
			d.nodes[data.parent].children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	data.parent = -1
	return nil
}

// Reparent moves the node to the end of parent's child list, detaching
// it from its current parent first. The move is atomic: if it would
// create a cycle or cross documents, nothing changes.
func (n Node) Reparent(d *Document, parent Element) error {
	data, err := d.data(n)
	if err != nil {
		return err
	}
	if _, err := d.elem(parent); err != nil {
		return err
	}
	if n.id == containerID {
		return ErrContainer
	}
	if data.kind == ElementNode {
		for cur := parent.id; cur >= 0; cur = d.nodes[cur].parent {
			if cur == n.id {
				return ErrCycle
			}
		}
		if parent.id == containerID {
			if root, ok := d.Root(); ok && root.id != n.id {
				return ErrRootExists
			}
		}
	}
	if err := n.Detach(d); err != nil {
		return err
	}
	pdata := &d.nodes[parent.id]
	pdata.children = append(pdata.children, n.id)
	data.parent = parent.id
	return nil
}

// SortChildren reorders the element's children using the given
// comparison. The sort is stable, so equal children keep their
// document order.
func (e Element) SortChildren(d *Document, less func(a, b Node) bool) error {
	data, err := d.elem(e)
	if err != nil {
		return err
	}
	sort.SliceStable(data.children, func(i, j int) bool {
		return less(d.node(data.children[i]), d.node(data.children[j]))
	})
	return nil
}
