package xmldom

import "io"

// Parse reads an XML document from data and builds its tree. The input
// may be in any supported encoding; it is decoded to UTF-8 before
// tokenization, following the byte-order mark and the declaration's
// encoding pseudo-attribute (see WithEncoding to force one).
func Parse(data []byte, opts ...ParseOption) (*Document, error) {
	var o parseOptions
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}
	return parseDoc(data, o)
}

// ParseString parses an XML document held in a string.
func ParseString(s string, opts ...ParseOption) (*Document, error) {
	return Parse([]byte(s), opts...)
}

// ParseReader reads all of r and parses it. The whole input must be in
// memory before decoding can start, since the encoding is resolved from
// the leading bytes.
func ParseReader(r io.Reader, opts ...ParseOption) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return Parse(data, opts...)
}
