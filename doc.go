/*
Package xmldom parses XML into a mutable in-memory document tree and
serializes it back, preserving the parts of the source that matter for
a faithful round trip: node order, attribute order, CDATA sections,
comments, processing instructions and the XML declaration.

All nodes of a document live in a flat store owned by the Document.
Code holds cheap, copyable handles (Node, Element) into that store, so
subtrees can be detached, kept aside, and reattached without any node
ever being destroyed. Handles are tied to the document that created
them; using one with another document fails with ErrForeignDocument.

The package offers two primary workflows:

1. Parsing and Editing

Parse reads bytes in any supported encoding, decodes them to UTF-8, and
builds the tree. The tree is then navigated and edited through handles:

	doc, err := xmldom.Parse(data)
	if err != nil {
		// handle error
	}
	root, _ := doc.Root()
	if title, ok := root.FindDeep(doc, "title"); ok {
		_ = title.SetTextContent(doc, "New Title")
	}
	out, err := doc.Bytes()

2. Building Documents from Scratch

NewWithRoot and ElementBuilder assemble a document without any source
text. Staged builders allocate nothing until they are materialized:

	doc, root := xmldom.NewWithRoot("library", nil)
	_, err := xmldom.NewElement("book").
		Attr("id", "b1").
		Element("title", func(b *xmldom.ElementBuilder) *xmldom.ElementBuilder {
			return b.Text("Gravity's Rainbow")
		}).
		AppendTo(doc, root)

Serialization is controlled per call with options such as Indent,
SelfClosing, EscapeHTML and OutputEncoding; parsing with options such
as SoftFail, TrimText and WithEncoding.
*/
package xmldom
