// Package charset resolves XML document encodings and converts whole
// documents between their wire encoding and UTF-8.
//
// Resolution follows the priority order of the XML recommendation's
// appendix F: a byte-order mark wins, then the BOM-less UTF-16 byte
// patterns of an XML declaration, then the declaration's encoding
// pseudo-attribute, and finally the UTF-8 default.
package charset

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// Errors reported while resolving or applying an encoding.
var (
	// ErrUnsupported indicates an encoding label with no usable codec.
	ErrUnsupported = errors.New("unsupported encoding")

	// ErrUTF32 indicates UTF-32 input, which is deliberately rejected.
	ErrUTF32 = errors.New("UTF-32 is not supported")

	// ErrConflict indicates a byte-order mark that contradicts the XML
	// declaration's encoding pseudo-attribute.
	ErrConflict = errors.New("byte-order mark conflicts with declared encoding")
)

// InvalidByteError reports an input byte sequence that is not valid in
// the resolved encoding.
type InvalidByteError struct {
	Label  string // resolved encoding label
	Offset int    // byte offset into the undecoded input
}

func (e *InvalidByteError) Error() string {
	return "invalid byte sequence for " + e.Label + " at offset " + itoa(e.Offset)
}

// itoa avoids pulling strconv into the error path for a two-digit offset.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

const (
	labelUTF8    = "utf-8"
	labelUTF16LE = "utf-16le"
	labelUTF16BE = "utf-16be"
)

// Detect sniffs the byte-order mark and declaration byte patterns.
// It returns the detected label ("" if nothing was detected) and the
// length of the BOM to strip.
func Detect(data []byte) (label string, bomLen int, err error) {
	switch {
	case bytes.HasPrefix(data, []byte{0x00, 0x00, 0xfe, 0xff}),
		bytes.HasPrefix(data, []byte{0xff, 0xfe, 0x00, 0x00}):
		return "", 0, ErrUTF32
	case bytes.HasPrefix(data, []byte{0xef, 0xbb, 0xbf}):
		return labelUTF8, 3, nil
	case bytes.HasPrefix(data, []byte{0xfe, 0xff}):
		return labelUTF16BE, 2, nil
	case bytes.HasPrefix(data, []byte{0xff, 0xfe}):
		return labelUTF16LE, 2, nil
	case bytes.HasPrefix(data, []byte{0x00, 0x3c, 0x00, 0x3f}):
		return labelUTF16BE, 0, nil
	case bytes.HasPrefix(data, []byte{0x3c, 0x00, 0x3f, 0x00}):
		return labelUTF16LE, 0, nil
	}
	return "", 0, nil
}

// Lookup maps an encoding label to a codec. Labels are matched
// case-insensitively against the IANA registry.
func Lookup(label string) (encoding.Encoding, error) {
	switch normalize(label) {
	case "", labelUTF8, "utf8":
		return unicode.UTF8, nil
	case "utf-16", labelUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	case labelUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), nil
	case "utf-32", "utf-32le", "utf-32be":
		return nil, errors.Wrap(ErrUTF32, label)
	}
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		return nil, errors.Wrapf(ErrUnsupported, "encoding %q", label)
	}
	return enc, nil
}

func normalize(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// declEncoding scans an XML declaration at the start of text for the
// encoding pseudo-attribute. text must already be ASCII-compatible.
func declEncoding(text []byte) string {
	if !bytes.HasPrefix(text, []byte("<?xml")) {
		return ""
	}
	end := bytes.Index(text, []byte("?>"))
	if end < 0 {
		return ""
	}
	return PseudoAttr(string(text[5:end]), "encoding")
}

// PseudoAttr extracts a pseudo-attribute value from the body of an XML
// declaration, e.g. `version="1.0" encoding="UTF-8"`.
func PseudoAttr(decl, name string) string {
	rest := decl
	for {
		i := strings.Index(rest, name)
		if i < 0 {
			return ""
		}
		rest = rest[i+len(name):]
		j := strings.TrimLeft(rest, " \t\r\n")
		if !strings.HasPrefix(j, "=") {
			continue
		}
		j = strings.TrimLeft(j[1:], " \t\r\n")
		if len(j) == 0 || (j[0] != '"' && j[0] != '\'') {
			return ""
		}
		quote := j[0]
		k := strings.IndexByte(j[1:], quote)
		if k < 0 {
			return ""
		}
		return j[1 : 1+k]
	}
}

// Resolve determines the encoding of data. override, when non-empty,
// wins over everything else (a caller-supplied forced encoding).
// It returns the codec, the resolved label, and the BOM length.
func Resolve(data []byte, override string) (encoding.Encoding, string, int, error) {
	if override != "" {
		enc, err := Lookup(override)
		if err != nil {
			return nil, "", 0, err
		}
		_, bomLen, derr := Detect(data)
		if derr != nil {
			return nil, "", 0, derr
		}
		return enc, normalize(override), bomLen, nil
	}

	sniffed, bomLen, err := Detect(data)
	if err != nil {
		return nil, "", 0, err
	}

	// Scan the declaration in a provisional decoding of the prefix.
	prefix := data[bomLen:]
	if len(prefix) > 1024 {
		prefix = prefix[:1024]
	}
	declared := ""
	if sniffed == labelUTF16LE || sniffed == labelUTF16BE {
		enc, _ := Lookup(sniffed)
		if head, derr := enc.NewDecoder().Bytes(prefix); derr == nil {
			declared = normalize(declEncoding(head))
		}
	} else {
		declared = normalize(declEncoding(prefix))
	}

	if strings.HasPrefix(declared, "utf-32") {
		return nil, "", 0, ErrUTF32
	}

	switch {
	case sniffed == "" && declared == "":
		return unicode.UTF8, labelUTF8, bomLen, nil
	case sniffed == "":
		enc, lerr := Lookup(declared)
		if lerr != nil {
			return nil, "", 0, lerr
		}
		return enc, declared, bomLen, nil
	case declared == "" || compatible(sniffed, declared):
		enc, lerr := Lookup(sniffed)
		if lerr != nil {
			return nil, "", 0, lerr
		}
		return enc, sniffed, bomLen, nil
	}
	return nil, "", 0, errors.Wrapf(ErrConflict, "BOM %s, declared %q", sniffed, declared)
}

// compatible reports whether a declared label agrees with a sniffed one.
// A plain "utf-16" declaration is satisfied by either byte order.
func compatible(sniffed, declared string) bool {
	if sniffed == declared {
		return true
	}
	if strings.HasPrefix(sniffed, "utf-16") && declared == "utf-16" {
		return true
	}
	return false
}

// Decode converts data to UTF-8, resolving the encoding as Resolve does.
// In strict mode (lenient == false) invalid byte sequences fail with an
// InvalidByteError instead of being substituted.
func Decode(data []byte, override string, lenient bool) ([]byte, string, error) {
	enc, label, bomLen, err := Resolve(data, override)
	if err != nil {
		return nil, "", err
	}
	data = data[bomLen:]

	if label == labelUTF8 || label == "utf8" || label == "" {
		if !utf8.Valid(data) {
			if !lenient {
				return nil, "", &InvalidByteError{Label: labelUTF8, Offset: invalidOffset(data)}
			}
			return bytes.ToValidUTF8(data, []byte("\ufffd")), labelUTF8, nil
		}
		return data, labelUTF8, nil
	}

	out, derr := enc.NewDecoder().Bytes(data)
	if derr != nil {
		return nil, "", errors.Wrapf(derr, "decoding %s input", label)
	}
	if !lenient {
		// x/text decoders substitute U+FFFD rather than failing; treat a
		// replacement char the input could not have produced as an error.
		if bytes.Contains(out, []byte("\ufffd")) && !containsEncodedFFFD(data, label) {
			return nil, "", &InvalidByteError{Label: label, Offset: 0}
		}
	}
	// Strip a decoded BOM character left over from IgnoreBOM handling.
	out = bytes.TrimPrefix(out, []byte("\ufeff"))
	return out, label, nil
}

func invalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(data)
}

func containsEncodedFFFD(data []byte, label string) bool {
	switch label {
	case labelUTF16LE:
		return bytes.Contains(data, []byte{0xfd, 0xff})
	case labelUTF16BE:
		return bytes.Contains(data, []byte{0xff, 0xfd})
	}
	return bytes.Contains(data, []byte("\ufffd"))
}

// Encode converts UTF-8 text into the target encoding. UTF-16 output is
// prefixed with a byte-order mark.
func Encode(text []byte, label string) ([]byte, error) {
	switch normalize(label) {
	case "", labelUTF8, "utf8":
		return text, nil
	case "utf-16", labelUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes(text)
	case labelUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().Bytes(text)
	}
	enc, err := Lookup(label)
	if err != nil {
		return nil, err
	}
	out, eerr := enc.NewEncoder().Bytes(text)
	if eerr != nil {
		return nil, errors.Wrapf(eerr, "encoding output as %s", label)
	}
	return out, nil
}
