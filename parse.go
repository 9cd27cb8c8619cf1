package xmldom

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/KimNorgaard/go-xmldom/internal/charset"
	"github.com/KimNorgaard/go-xmldom/internal/escape"
)

// parseDoc decodes data to UTF-8, tokenizes it, and assembles the tree.
func parseDoc(data []byte, opts parseOptions) (*Document, error) {
	text, _, err := charset.Decode(data, opts.encoding, opts.lenient)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	sniffed, _, _ := charset.Detect(data)

	d := New()
	switch {
	case opts.encoding != "":
		d.encoding = opts.encoding
	case sniffed != "":
		d.encoding = sniffed
	}

	dec := xml.NewDecoder(bytes.NewReader(text))
	dec.Strict = !opts.softFail
	if opts.htmlEntities {
		dec.Entity = xml.HTMLEntity
	}
	// The input is already UTF-8; ignore whatever the declaration says.
	dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	var (
		stack    = []int32{containerID}
		sawDecl  bool
		rootSeen bool
		first    = true
	)
	attach := func(id int32) {
		parent := stack[len(stack)-1]
		d.nodes[parent].children = append(d.nodes[parent].children, id)
		d.nodes[id].parent = parent
	}

	for {
		start := dec.InputOffset()
		tok, terr := dec.RawToken()
		if terr == io.EOF {
			break
		}
		if terr != nil {
			return nil, translateTokenErr(terr, dec.InputOffset())
		}

		switch t := tok.(type) {
		case xml.ProcInst:
			if t.Target == "xml" {
				if !first {
					return nil, &SyntaxError{Msg: "XML declaration must be the first thing in the document", Offset: start}
				}
				decl := string(t.Inst)
				if v := charset.PseudoAttr(decl, "version"); v != "" {
					d.version = v
				} else {
					d.version = "1.0"
				}
				if enc := charset.PseudoAttr(decl, "encoding"); enc != "" {
					d.encoding = enc
				}
				d.standalone = charset.PseudoAttr(decl, "standalone")
				sawDecl = true
			} else {
				n := d.CreateProcInst(t.Target, string(t.Inst))
				attach(n.id)
			}

		case xml.StartElement:
			parent := stack[len(stack)-1]
			if parent == containerID {
				if rootSeen {
					return nil, &SyntaxError{Msg: "multiple root elements", Offset: start}
				}
				rootSeen = true
			}
			attrs, aerr := convertAttrs(t.Attr, start)
			if aerr != nil {
				return nil, aerr
			}
			e := d.CreateElement(rawName(t.Name))
			d.nodes[e.id].attrs = attrs
			attach(e.id)
			stack = append(stack, e.id)

		case xml.EndElement:
			if len(stack) == 1 {
				return nil, &SyntaxError{Msg: "unexpected end tag </" + rawName(t.Name) + ">", Offset: start}
			}
			open := d.nodes[stack[len(stack)-1]].name
			if got := rawName(t.Name); got != open {
				return nil, &SyntaxError{Msg: "element <" + open + "> closed by </" + got + ">", Offset: start}
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			end := dec.InputOffset()
			cdata := bytes.HasPrefix(text[start:end], []byte("<![CDATA["))
			s := string(t)
			if stack[len(stack)-1] == containerID {
				if cdata || strings.Trim(s, " \t\r\n") != "" {
					return nil, &SyntaxError{Msg: "content outside root element", Offset: start}
				}
				break
			}
			if cdata {
				attach(d.CreateCData(s).id)
				break
			}
			if opts.trimText {
				if s = strings.Trim(s, " \t\r\n"); s == "" {
					break
				}
			}
			attach(d.CreateText(s).id)

		case xml.Comment:
			attach(d.CreateComment(string(t)).id)

		case xml.Directive:
			attach(d.CreateDocType(string(t)).id)
		}
		first = false
	}

	if len(stack) > 1 {
		open := d.nodes[stack[len(stack)-1]].name
		return nil, &SyntaxError{Msg: "unexpected end of input: element <" + open + "> not closed", Offset: dec.InputOffset()}
	}
	if opts.requireDecl && !sawDecl {
		return nil, &SyntaxError{Msg: "missing XML declaration"}
	}
	if !rootSeen {
		return nil, &SyntaxError{Msg: "missing root element", Offset: dec.InputOffset()}
	}
	return d, nil
}

// rawName rebuilds the source spelling of a name. RawToken leaves the
// prefix in Space without resolving it.
func rawName(n xml.Name) string {
	if n.Space != "" {
		return n.Space + ":" + n.Local
	}
	return n.Local
}

// convertAttrs normalizes attribute values and rejects duplicates. The
// tokenizer has already resolved references, so only literal whitespace
// replacement remains.
func convertAttrs(in []xml.Attr, offset int64) ([]Attr, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]Attr, 0, len(in))
	for _, a := range in {
		name := rawName(a.Name)
		for _, prev := range out {
			if prev.Name == name {
				return nil, &SyntaxError{Msg: "duplicate attribute " + name, Offset: offset}
			}
		}
		out = append(out, Attr{Name: name, Value: escape.NormalizeAttr(a.Value)})
	}
	return out, nil
}

// translateTokenErr maps tokenizer failures onto this package's error
// types, keeping the byte offset.
func translateTokenErr(err error, offset int64) error {
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		if strings.Contains(se.Msg, "character entity") || strings.Contains(se.Msg, "character reference") {
			return &ReferenceError{Msg: se.Msg, Offset: offset}
		}
		return &SyntaxError{Msg: se.Msg, Offset: offset}
	}
	if err == io.ErrUnexpectedEOF {
		return &SyntaxError{Msg: "unexpected end of input", Offset: offset}
	}
	return &SyntaxError{Msg: err.Error(), Offset: offset}
}
