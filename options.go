package xmldom

import "fmt"

// ParseOption configures a single Parse call.
type ParseOption func(*parseOptions) error

// WriteOption configures a single write.
type WriteOption func(*writeOptions) error

type parseOptions struct {
	encoding     string // forced input encoding label
	softFail     bool
	htmlEntities bool
	lenient      bool
	trimText     bool
	requireDecl  bool
}

type writeOptions struct {
	encoding    string // output encoding label, "" means UTF-8
	selfClosing bool
	escapeHTML  bool
	indent      int // spaces per depth level, -1 means off
	declaration *bool
}

func newWriteOptions() writeOptions {
	return writeOptions{selfClosing: true, indent: -1}
}

// WithEncoding returns a ParseOption that forces the input to be
// decoded with the given IANA encoding label, ignoring any BOM or
// declared encoding. The label must be non-empty.
func WithEncoding(label string) ParseOption {
	return func(o *parseOptions) error {
		if label == "" {
			return fmt.Errorf("xmldom: encoding label must not be empty")
		}
		o.encoding = label
		return nil
	}
}

// SoftFail returns a ParseOption that passes unresolvable entity
// references through verbatim instead of failing the parse.
func SoftFail() ParseOption {
	return func(o *parseOptions) error {
		o.softFail = true
		return nil
	}
}

// HTMLEntities returns a ParseOption that resolves the HTML named
// entity set (&nbsp;, &copy;, ...) in addition to the five XML ones.
func HTMLEntities() ParseOption {
	return func(o *parseOptions) error {
		o.htmlEntities = true
		return nil
	}
}

// LenientDecode returns a ParseOption that replaces malformed byte
// sequences in the input with U+FFFD instead of failing the decode.
func LenientDecode() ParseOption {
	return func(o *parseOptions) error {
		o.lenient = true
		return nil
	}
}

// TrimText returns a ParseOption that trims leading and trailing
// whitespace from text nodes and drops the ones that become empty.
func TrimText() ParseOption {
	return func(o *parseOptions) error {
		o.trimText = true
		return nil
	}
}

// RequireDecl returns a ParseOption that rejects documents without an
// XML declaration.
func RequireDecl() ParseOption {
	return func(o *parseOptions) error {
		o.requireDecl = true
		return nil
	}
}

// OutputEncoding returns a WriteOption that re-encodes the serialized
// document with the given IANA encoding label. UTF-16 output starts
// with a BOM. The declaration, if written, names this label.
func OutputEncoding(label string) WriteOption {
	return func(o *writeOptions) error {
		if label == "" {
			return fmt.Errorf("xmldom: encoding label must not be empty")
		}
		o.encoding = label
		return nil
	}
}

// SelfClosing returns a WriteOption that controls whether childless
// elements are written as <name/>. It defaults to true; pass false to
// always write an explicit end-tag.
func SelfClosing(v bool) WriteOption {
	return func(o *writeOptions) error {
		o.selfClosing = v
		return nil
	}
}

// EscapeHTML returns a WriteOption that escapes characters with an HTML
// named entity (U+00A0 and up) using that entity instead of the raw
// character.
func EscapeHTML() WriteOption {
	return func(o *writeOptions) error {
		o.escapeHTML = true
		return nil
	}
}

// Indent returns a WriteOption that pretty-prints with n spaces per
// nesting level. Only elements whose children are all elements are
// indented, so mixed content survives a round trip byte for byte.
//
// The width n must not be negative.
func Indent(n int) WriteOption {
	return func(o *writeOptions) error {
		if n < 0 {
			return fmt.Errorf("xmldom: indent width must not be negative")
		}
		o.indent = n
		return nil
	}
}

// Declaration returns a WriteOption that forces the XML declaration on
// or off. Without it, the declaration is written exactly when the
// document has a version.
func Declaration(v bool) WriteOption {
	return func(o *writeOptions) error {
		o.declaration = &v
		return nil
	}
}
