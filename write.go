package xmldom

import (
	"bytes"
	"io"
	"strings"

	"github.com/KimNorgaard/go-xmldom/internal/charset"
	"github.com/KimNorgaard/go-xmldom/internal/escape"
)

// WriteTo serializes the whole document to w.
func (d *Document) WriteTo(w io.Writer, opts ...WriteOption) error {
	o := newWriteOptions()
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	d.writeDecl(&buf, &o)
	for _, id := range d.nodes[containerID].children {
		d.writeNode(&buf, id, &o, 0)
		if o.indent >= 0 {
			buf.WriteByte('\n')
		}
	}
	return emit(w, buf.Bytes(), d.outputLabel(&o))
}

// outputLabel picks the wire encoding: an explicit OutputEncoding wins,
// otherwise the document is written back in its own encoding. This
// keeps the declaration's encoding attribute and the actual bytes in
// agreement.
func (d *Document) outputLabel(o *writeOptions) string {
	if o.encoding != "" {
		return o.encoding
	}
	return d.encoding
}

// Bytes serializes the whole document.
func (d *Document) Bytes(opts ...WriteOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := d.WriteTo(&buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// String serializes the whole document as a string.
func (d *Document) String(opts ...WriteOption) (string, error) {
	b, err := d.Bytes(opts...)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteTo serializes just this node and its subtree, without any XML
// declaration.
func (n Node) WriteTo(d *Document, w io.Writer, opts ...WriteOption) error {
	o := newWriteOptions()
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return err
		}
	}
	if _, err := d.data(n); err != nil {
		return err
	}

	var buf bytes.Buffer
	d.writeNode(&buf, n.id, &o, 0)
	return emit(w, buf.Bytes(), d.outputLabel(&o))
}

// emit re-encodes the UTF-8 rendering when an output encoding was
// requested and writes it out.
func emit(w io.Writer, text []byte, label string) error {
	out := text
	if label != "" {
		var err error
		if out, err = charset.Encode(text, label); err != nil {
			return &WriteError{Err: err}
		}
	}
	if _, err := w.Write(out); err != nil {
		return &WriteError{Err: err}
	}
	return nil
}

func (d *Document) writeDecl(buf *bytes.Buffer, o *writeOptions) {
	write := d.version != ""
	if o.declaration != nil {
		write = *o.declaration
	}
	if !write {
		return
	}
	version := d.version
	if version == "" {
		version = "1.0"
	}
	buf.WriteString(`<?xml version="` + version + `"`)
	label := o.encoding
	if label == "" {
		label = d.encoding
	}
	if label != "" {
		buf.WriteString(` encoding="` + label + `"`)
	}
	if d.standalone != "" {
		buf.WriteString(` standalone="` + d.standalone + `"`)
	}
	buf.WriteString("?>\n")
}

func (d *Document) writeNode(buf *bytes.Buffer, id int32, o *writeOptions, depth int) {
	data := &d.nodes[id]
	switch data.kind {
	case ElementNode:
		d.writeElement(buf, id, o, depth)
	case TextNode:
		buf.WriteString(escape.Text(data.text, o.escapeHTML))
	case CDataNode:
		buf.WriteString("<![CDATA[")
		buf.WriteString(data.text)
		buf.WriteString("]]>")
	case CommentNode:
		buf.WriteString("<!--")
		buf.WriteString(data.text)
		buf.WriteString("-->")
	case ProcInstNode:
		buf.WriteString("<?")
		buf.WriteString(data.name)
		if data.text != "" {
			buf.WriteByte(' ')
			buf.WriteString(data.text)
		}
		buf.WriteString("?>")
	case DocTypeNode:
		buf.WriteString("<!")
		buf.WriteString(data.text)
		buf.WriteByte('>')
	}
}

func (d *Document) writeElement(buf *bytes.Buffer, id int32, o *writeOptions, depth int) {
	data := &d.nodes[id]
	buf.WriteByte('<')
	buf.WriteString(data.name)
	for _, a := range data.attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		buf.WriteString(escape.Attr(a.Value, o.escapeHTML))
		buf.WriteByte('"')
	}
	if len(data.children) == 0 {
		if o.selfClosing {
			buf.WriteString("/>")
		} else {
			buf.WriteString("></")
			buf.WriteString(data.name)
			buf.WriteByte('>')
		}
		return
	}
	buf.WriteByte('>')

	// Indenting inside mixed content would change the text, so pretty
	// printing applies only where every child is an element.
	pretty := o.indent >= 0 && d.elementOnly(data)
	for _, cid := range data.children {
		if pretty {
			buf.WriteByte('\n')
			buf.WriteString(strings.Repeat(" ", o.indent*(depth+1)))
		}
		d.writeNode(buf, cid, o, depth+1)
	}
	if pretty {
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(" ", o.indent*depth))
	}
	buf.WriteString("</")
	buf.WriteString(data.name)
	buf.WriteByte('>')
}

func (d *Document) elementOnly(data *nodeData) bool {
	for _, id := range data.children {
		if d.nodes[id].kind != ElementNode {
			return false
		}
	}
	return true
}
