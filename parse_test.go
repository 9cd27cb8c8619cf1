package xmldom_test

import (
	"strings"
	"testing"

	xmldom "github.com/KimNorgaard/go-xmldom"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func TestParse(t *testing.T) {
	t.Run("Basic Document", func(t *testing.T) {
		doc, err := xmldom.ParseString(`<?xml version="1.0" encoding="UTF-8"?>
<library><book id="b1">Gravity's Rainbow</book></library>`)
		require.NoError(t, err)
		require.Equal(t, "1.0", doc.Version())
		require.Equal(t, "UTF-8", doc.Encoding())

		root, ok := doc.Root()
		require.True(t, ok)
		require.Equal(t, "library", root.Name(doc))

		book, ok := root.Find(doc, "book")
		require.True(t, ok)
		id, ok := book.Attr(doc, "id")
		require.True(t, ok)
		require.Equal(t, "b1", id)
		require.Equal(t, "Gravity's Rainbow", book.TextContent(doc))
	})

	t.Run("No Declaration", func(t *testing.T) {
		doc, err := xmldom.ParseString(`<a/>`)
		require.NoError(t, err)
		require.Equal(t, "", doc.Version())
		require.Equal(t, "", doc.Encoding())
		require.Equal(t, "", doc.Standalone())
	})

	t.Run("Standalone", func(t *testing.T) {
		doc, err := xmldom.ParseString(`<?xml version="1.1" standalone="yes"?><a/>`)
		require.NoError(t, err)
		require.Equal(t, "1.1", doc.Version())
		require.Equal(t, "yes", doc.Standalone())
	})

	t.Run("Prolog And Epilog Nodes", func(t *testing.T) {
		doc, err := xmldom.ParseString(
			`<?xml version="1.0"?><!DOCTYPE note SYSTEM "note.dtd"><!-- before --><?style sheet?><note/><!-- after -->`)
		require.NoError(t, err)

		nodes := doc.RootNodes()
		require.Len(t, nodes, 5)
		require.Equal(t, xmldom.DocTypeNode, nodes[0].Kind(doc))
		require.Equal(t, `DOCTYPE note SYSTEM "note.dtd"`, nodes[0].Text(doc))
		require.Equal(t, xmldom.CommentNode, nodes[1].Kind(doc))
		require.Equal(t, " before ", nodes[1].Text(doc))
		require.Equal(t, xmldom.ProcInstNode, nodes[2].Kind(doc))
		require.Equal(t, "style", nodes[2].Target(doc))
		require.Equal(t, "sheet", nodes[2].Text(doc))
		require.Equal(t, xmldom.ElementNode, nodes[3].Kind(doc))
		require.Equal(t, xmldom.CommentNode, nodes[4].Kind(doc))
	})

	t.Run("Root Whitespace Dropped", func(t *testing.T) {
		doc, err := xmldom.ParseString("\n\t<a/>\n")
		require.NoError(t, err)
		require.Len(t, doc.RootNodes(), 1)
	})

	t.Run("CDATA", func(t *testing.T) {
		doc, err := xmldom.ParseString(`<a>before<![CDATA[<raw> & "stuff"]]>after</a>`)
		require.NoError(t, err)
		root, _ := doc.Root()
		kids := root.Children(doc)
		require.Len(t, kids, 3)
		require.Equal(t, xmldom.TextNode, kids[0].Kind(doc))
		require.Equal(t, xmldom.CDataNode, kids[1].Kind(doc))
		require.Equal(t, `<raw> & "stuff"`, kids[1].Text(doc))
		require.Equal(t, xmldom.TextNode, kids[2].Kind(doc))
		require.Equal(t, `before<raw> & "stuff"after`, root.TextContent(doc))
	})

	t.Run("Character And Entity References", func(t *testing.T) {
		doc, err := xmldom.ParseString(`<a>&amp;&#65;&#x42;</a>`)
		require.NoError(t, err)
		root, _ := doc.Root()
		require.Equal(t, "&AB", root.TextContent(doc))
	})

	t.Run("Attribute Normalization", func(t *testing.T) {
		doc, err := xmldom.ParseString("<a v=\"x\ty\nz\"/>")
		require.NoError(t, err)
		root, _ := doc.Root()
		v, _ := root.Attr(doc, "v")
		require.Equal(t, "x y z", v)
	})

	t.Run("Attribute Normalization After References", func(t *testing.T) {
		// References resolve first; a tab arriving via &#9; is then
		// replaced like a literal one.
		doc, err := xmldom.ParseString(`<a v="A&amp;B&#9;C"/>`)
		require.NoError(t, err)
		root, _ := doc.Root()
		v, _ := root.Attr(doc, "v")
		require.Equal(t, "A&B C", v)
	})

	t.Run("Attribute Order Preserved", func(t *testing.T) {
		doc, err := xmldom.ParseString(`<a z="1" a="2" m="3"/>`)
		require.NoError(t, err)
		root, _ := doc.Root()
		attrs := root.Attrs(doc)
		require.Equal(t, []xmldom.Attr{{Name: "z", Value: "1"}, {Name: "a", Value: "2"}, {Name: "m", Value: "3"}}, attrs)
	})

	t.Run("Namespace Prefixes Kept Verbatim", func(t *testing.T) {
		doc, err := xmldom.ParseString(`<x:a xmlns:x="urn:x"><x:b/></x:a>`)
		require.NoError(t, err)
		root, _ := doc.Root()
		require.Equal(t, "x:a", root.Name(doc))
		require.Equal(t, "a", root.LocalName(doc))
		require.Equal(t, "x", root.Prefix(doc))
		b, ok := root.Find(doc, "b")
		require.True(t, ok)
		ns, ok := b.Namespace(doc)
		require.True(t, ok)
		require.Equal(t, "urn:x", ns)
	})

	t.Run("TrimText", func(t *testing.T) {
		doc, err := xmldom.ParseString("<a>\n  hello  \n<b>  </b></a>", xmldom.TrimText())
		require.NoError(t, err)
		root, _ := doc.Root()
		kids := root.Children(doc)
		require.Len(t, kids, 2)
		require.Equal(t, "hello", kids[0].Text(doc))
		b, _ := kids[1].AsElement(doc)
		require.Equal(t, 0, b.ChildCount(doc))
	})

	t.Run("RequireDecl", func(t *testing.T) {
		_, err := xmldom.ParseString(`<a/>`, xmldom.RequireDecl())
		require.Error(t, err)
		require.Contains(t, err.Error(), "missing XML declaration")

		_, err = xmldom.ParseString(`<?xml version="1.0"?><a/>`, xmldom.RequireDecl())
		require.NoError(t, err)
	})
}

func TestParseErrors(t *testing.T) {
	t.Run("Mismatched End Tag", func(t *testing.T) {
		_, err := xmldom.ParseString(`<a><b></a>`)
		require.Error(t, err)
		var serr *xmldom.SyntaxError
		require.ErrorAs(t, err, &serr)
		require.Contains(t, serr.Msg, "<b> closed by </a>")
	})

	t.Run("Unexpected End Tag", func(t *testing.T) {
		_, err := xmldom.ParseString(`<a/></b>`)
		require.Error(t, err)
		require.Contains(t, err.Error(), "unexpected end tag")
	})

	t.Run("Unclosed Element", func(t *testing.T) {
		_, err := xmldom.ParseString(`<a><b>`)
		require.Error(t, err)
		require.Contains(t, err.Error(), "not closed")
	})

	t.Run("Multiple Roots", func(t *testing.T) {
		_, err := xmldom.ParseString(`<a/><b/>`)
		require.Error(t, err)
		require.Contains(t, err.Error(), "multiple root elements")
	})

	t.Run("Missing Root", func(t *testing.T) {
		_, err := xmldom.ParseString(`<!-- nothing here -->`)
		require.Error(t, err)
		require.Contains(t, err.Error(), "missing root element")
	})

	t.Run("Text Outside Root", func(t *testing.T) {
		_, err := xmldom.ParseString(`<a/>trailing`)
		require.Error(t, err)
		require.Contains(t, err.Error(), "content outside root element")
	})

	t.Run("Duplicate Attribute", func(t *testing.T) {
		_, err := xmldom.ParseString(`<a id="1" id="2"/>`)
		require.Error(t, err)
		require.Contains(t, err.Error(), "duplicate attribute id")
	})

	t.Run("Misplaced Declaration", func(t *testing.T) {
		_, err := xmldom.ParseString(`<!-- c --><?xml version="1.0"?><a/>`)
		require.Error(t, err)
		require.Contains(t, err.Error(), "declaration must be the first")
	})

	t.Run("Offsets Reported", func(t *testing.T) {
		_, err := xmldom.ParseString(`<a><b></a>`)
		var serr *xmldom.SyntaxError
		require.ErrorAs(t, err, &serr)
		require.Greater(t, serr.Offset, int64(0))
	})
}

func TestParseReferences(t *testing.T) {
	t.Run("Unknown Entity Strict", func(t *testing.T) {
		_, err := xmldom.ParseString(`<a>&nope;</a>`)
		require.Error(t, err)
		var rerr *xmldom.ReferenceError
		require.ErrorAs(t, err, &rerr)
	})

	t.Run("Unknown Entity SoftFail", func(t *testing.T) {
		doc, err := xmldom.ParseString(`<a>&nope;</a>`, xmldom.SoftFail())
		require.NoError(t, err)
		root, _ := doc.Root()
		require.Equal(t, "&nope;", root.TextContent(doc))
	})

	t.Run("HTML Entities", func(t *testing.T) {
		_, err := xmldom.ParseString(`<a>&nbsp;</a>`)
		require.Error(t, err)

		doc, err := xmldom.ParseString(`<a>&nbsp;&copy;</a>`, xmldom.HTMLEntities())
		require.NoError(t, err)
		root, _ := doc.Root()
		require.Equal(t, "\u00a0©", root.TextContent(doc))
	})
}

func TestParseEncodings(t *testing.T) {
	utf16le := func(s string) []byte {
		enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
		out, err := enc.Bytes([]byte(s))
		require.NoError(t, err)
		return out
	}

	t.Run("UTF-16LE With BOM", func(t *testing.T) {
		doc, err := xmldom.Parse(utf16le(`<a>héllo</a>`))
		require.NoError(t, err)
		require.Equal(t, "utf-16le", doc.Encoding())
		root, _ := doc.Root()
		require.Equal(t, "héllo", root.TextContent(doc))
	})

	t.Run("UTF-16BE Without BOM", func(t *testing.T) {
		enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()
		data, err := enc.Bytes([]byte(`<?xml version="1.0"?><a/>`))
		require.NoError(t, err)
		doc, perr := xmldom.Parse(data)
		require.NoError(t, perr)
		require.Equal(t, "utf-16be", doc.Encoding())
	})

	t.Run("Declared Encoding", func(t *testing.T) {
		data := []byte(`<?xml version="1.0" encoding="ISO-8859-1"?><a v="caf` + "\xe9" + `"/>`)
		doc, err := xmldom.Parse(data)
		require.NoError(t, err)
		require.Equal(t, "ISO-8859-1", doc.Encoding())
		root, _ := doc.Root()
		v, _ := root.Attr(doc, "v")
		require.Equal(t, "café", v)
	})

	t.Run("Forced Encoding Override", func(t *testing.T) {
		data := []byte(`<a v="caf` + "\xe9" + `"/>`)
		_, err := xmldom.Parse(data)
		require.Error(t, err)

		doc, err := xmldom.Parse(data, xmldom.WithEncoding("ISO-8859-1"))
		require.NoError(t, err)
		root, _ := doc.Root()
		v, _ := root.Attr(doc, "v")
		require.Equal(t, "café", v)
	})

	t.Run("Invalid UTF-8 Strict", func(t *testing.T) {
		_, err := xmldom.Parse([]byte("<a>\xff\xfe\xfd</a>"))
		require.Error(t, err)
		var derr *xmldom.DecodeError
		require.ErrorAs(t, err, &derr)
	})

	t.Run("Invalid UTF-8 Lenient", func(t *testing.T) {
		doc, err := xmldom.Parse([]byte("<a>ok\xffok</a>"), xmldom.LenientDecode())
		require.NoError(t, err)
		root, _ := doc.Root()
		require.Contains(t, root.TextContent(doc), "ok")
	})

	t.Run("UTF-32 Rejected", func(t *testing.T) {
		_, err := xmldom.Parse([]byte{0xff, 0xfe, 0x00, 0x00, 0x3c, 0x00, 0x00, 0x00})
		require.Error(t, err)
		require.Contains(t, err.Error(), "UTF-32")
	})

	t.Run("BOM Conflicts With Declaration", func(t *testing.T) {
		enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
		data, err := enc.Bytes([]byte(`<?xml version="1.0" encoding="ISO-8859-1"?><a/>`))
		require.NoError(t, err)
		_, perr := xmldom.Parse(data)
		require.Error(t, perr)
		require.Contains(t, perr.Error(), "conflicts")
	})

	t.Run("Unsupported Label", func(t *testing.T) {
		_, err := xmldom.ParseString(`<a/>`, xmldom.WithEncoding("no-such-encoding"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "unsupported encoding")
	})
}

func TestParseReader(t *testing.T) {
	doc, err := xmldom.ParseReader(strings.NewReader(`<a><b/></a>`))
	require.NoError(t, err)
	root, _ := doc.Root()
	require.Equal(t, 1, root.ChildCount(doc))
}
