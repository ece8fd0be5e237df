package fileinfo

import "runtime"

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Classic Mac: \r
)

// lineEndingScan bounds how many scalars DetectLineEnding inspects.
const lineEndingScan = 1000

// String returns the escaped form of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Name returns a short lower-case name: "lf", "crlf" or "cr".
func (le LineEnding) Name() string {
	switch le {
	case LineEndingCRLF:
		return "crlf"
	case LineEndingCR:
		return "cr"
	default:
		return "lf"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// ParseLineEnding maps "lf", "crlf" or "cr" to a LineEnding.
func ParseLineEnding(s string) (LineEnding, bool) {
	switch s {
	case "lf", "LF", "\n":
		return LineEndingLF, true
	case "crlf", "CRLF", "\r\n":
		return LineEndingCRLF, true
	case "cr", "CR", "\r":
		return LineEndingCR, true
	}
	return LineEndingLF, false
}

// PlatformLineEnding returns the native line ending of the host OS.
func PlatformLineEnding() LineEnding {
	if runtime.GOOS == "windows" {
		return LineEndingCRLF
	}
	return LineEndingLF
}

// DetectLineEnding tallies the breaks among the first 1000 scalars of text
// and returns the style that strictly outnumbers each of the others. Ties
// and text without breaks yield the platform default.
func DetectLineEnding(text string) LineEnding {
	var lf, crlf, cr int
	n := 0
	prevCR := false
	for _, ch := range text {
		if n >= lineEndingScan {
			break
		}
		n++
		switch {
		case ch == '\n' && prevCR:
			crlf++
			cr--
		case ch == '\n':
			lf++
		case ch == '\r':
			cr++
		}
		prevCR = ch == '\r'
	}

	switch {
	case lf > crlf && lf > cr:
		return LineEndingLF
	case crlf > lf && crlf > cr:
		return LineEndingCRLF
	case cr > lf && cr > crlf:
		return LineEndingCR
	default:
		return PlatformLineEnding()
	}
}
