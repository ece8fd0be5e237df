package fileinfo

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding is a named character encoding.
type Encoding struct {
	Name  string
	codec encoding.Encoding
}

var (
	UTF8    = Encoding{Name: "UTF-8", codec: unicode.UTF8}
	UTF16LE = Encoding{Name: "UTF-16LE", codec: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)}
	UTF16BE = Encoding{Name: "UTF-16BE", codec: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)}
)

// bomTable lists recognised byte order marks. Longer marks must precede
// any mark that is a prefix of them.
var bomTable = []struct {
	mark []byte
	enc  Encoding
}{
	{[]byte{0xEF, 0xBB, 0xBF}, UTF8},
	{[]byte{0xFF, 0xFE}, UTF16LE},
	{[]byte{0xFE, 0xFF}, UTF16BE},
}

// detectorAliases maps detector charset names that the x/text indexes do
// not know to names they do.
var detectorAliases = map[string]string{
	"gb-18030":   "gb18030",
	"ibm420_rtl": "ibm420",
	"ibm420_ltr": "ibm420",
	"ibm424_rtl": "ibm424",
	"ibm424_ltr": "ibm424",
}

// DetectBOM returns the encoding announced by a leading byte order mark
// and the mark itself.
func DetectBOM(data []byte) (Encoding, []byte, bool) {
	for _, b := range bomTable {
		if bytes.HasPrefix(data, b.mark) {
			return b.enc, b.mark, true
		}
	}
	return Encoding{}, nil, false
}

// utf16Sample bounds the prefix inspected for BOM-less UTF-16.
const utf16Sample = 4096

// GuessEncoding returns the most likely encoding of data, which must not
// start with a byte order mark. Text whose code units are mostly NUL in
// one byte of each pair is UTF-16. Otherwise valid UTF-8 (including empty
// and pure ASCII input) is reported as UTF-8. When the detector has no
// usable answer UTF-8 is assumed.
func GuessEncoding(data []byte) Encoding {
	if enc, ok := guessUTF16(data); ok {
		return enc
	}
	if utf8.Valid(data) {
		return UTF8
	}
	res, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || res == nil {
		return UTF8
	}
	enc, err := LookupEncoding(res.Charset)
	if err != nil {
		return UTF8
	}
	return enc
}

// guessUTF16 looks for NUL bytes concentrated in the high or low half of
// each two-byte unit, as ASCII-range text produces in UTF-16.
func guessUTF16(data []byte) (Encoding, bool) {
	n := min(len(data), utf16Sample) &^ 1
	pairs := n / 2
	if pairs == 0 {
		return Encoding{}, false
	}
	var even, odd int
	for i := 0; i < n; i += 2 {
		if data[i] == 0 {
			even++
		}
		if data[i+1] == 0 {
			odd++
		}
	}
	switch {
	case 2*odd >= pairs && 4*even <= odd:
		return UTF16LE, true
	case 2*even >= pairs && 4*odd <= even:
		return UTF16BE, true
	}
	return Encoding{}, false
}

// LookupEncoding resolves an encoding by WHATWG or IANA name.
func LookupEncoding(name string) (Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "utf-8", "utf8":
		return UTF8, nil
	case "utf-16le":
		return UTF16LE, nil
	case "utf-16be":
		return UTF16BE, nil
	}
	if alias, ok := detectorAliases[key]; ok {
		key = alias
	}

	if codec, err := htmlindex.Get(key); err == nil {
		return Encoding{Name: name, codec: codec}, nil
	}
	if codec, err := ianaindex.IANA.Encoding(key); err == nil && codec != nil {
		return Encoding{Name: name, codec: codec}, nil
	}
	return Encoding{}, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}

// Decode converts data to UTF-8. Malformed sequences become U+FFFD; the
// second result counts them.
func (e Encoding) Decode(data []byte) (string, int) {
	codec := e.codec
	if codec == nil {
		codec = unicode.UTF8
	}
	before := bytes.Count(data, []byte(string(utf8.RuneError)))
	out, _, err := transform.Bytes(codec.NewDecoder(), data)
	if err != nil {
		// Decoders in x/text substitute instead of failing; fall back to a
		// lossy UTF-8 view if one does not.
		s := strings.ToValidUTF8(string(data), string(utf8.RuneError))
		return s, strings.Count(s, string(utf8.RuneError)) - before
	}
	return string(out), max(bytes.Count(out, []byte(string(utf8.RuneError)))-before, 0)
}

// Encode converts text from UTF-8 to e. Characters e cannot represent are
// replaced with the encoding's substitute byte.
func (e Encoding) Encode(text string) ([]byte, error) {
	if e.codec == nil || e.codec == unicode.UTF8 {
		return []byte(text), nil
	}
	out, _, err := transform.Bytes(encoding.ReplaceUnsupported(e.codec.NewEncoder()), []byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", e.Name, err)
	}
	return out, nil
}

// String returns the encoding name.
func (e Encoding) String() string {
	return e.Name
}
