package xmldom

import (
	"errors"
	"fmt"
)

// Mutation errors. Every mutation entry point validates its handles
// before touching the tree, so a returned error means the document is
// unchanged.
var (
	// ErrForeignDocument indicates a handle that belongs to a different
	// Document than the one it was used with.
	ErrForeignDocument = errors.New("xmldom: node belongs to a different document")

	// ErrUnknownNode indicates a handle whose id is not present in the
	// document's store.
	ErrUnknownNode = errors.New("xmldom: unknown node id")

	// ErrHasParent indicates an attempt to attach a node that is still
	// attached elsewhere. Detach it first, or use Reparent.
	ErrHasParent = errors.New("xmldom: node already has a parent")

	// ErrCycle indicates a reparent or attach that would make an element
	// its own ancestor.
	ErrCycle = errors.New("xmldom: operation would create a cycle")

	// ErrContainer indicates an attempt to move or detach the document's
	// container element.
	ErrContainer = errors.New("xmldom: container element cannot be moved")

	// ErrRootExists indicates an attempt to attach a second root element.
	ErrRootExists = errors.New("xmldom: document already has a root element")

	// ErrNotElement indicates a node handle used where an element is required.
	ErrNotElement = errors.New("xmldom: node is not an element")

	// ErrNoContent indicates a SetText call on a node kind that carries
	// no character content.
	ErrNoContent = errors.New("xmldom: node kind has no text content")

	// ErrIndexRange indicates a child index outside the valid range.
	ErrIndexRange = errors.New("xmldom: child index out of range")
)

// SyntaxError describes a structural parse failure: mismatched or
// unexpected end-tags, unterminated documents, malformed markup.
type SyntaxError struct {
	Msg    string
	Offset int64 // byte offset into the decoded input
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("xmldom: malformed XML at offset %d: %s", e.Offset, e.Msg)
}

// DecodeError describes a failure to convert the input byte stream into
// text: an unsupported encoding name, a malformed byte sequence, or a
// BOM/declaration conflict.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "xmldom: cannot decode input: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ReferenceError describes an unresolvable entity or character
// reference encountered under strict parsing.
type ReferenceError struct {
	Msg    string
	Offset int64
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("xmldom: bad reference at offset %d: %s", e.Offset, e.Msg)
}

// WriteError describes a serialization failure, such as an unsupported
// output encoding.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return "xmldom: cannot write document: " + e.Err.Error()
}

func (e *WriteError) Unwrap() error { return e.Err }
