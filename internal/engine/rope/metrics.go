package rope

import "unicode/utf8"

// TextSummary holds aggregated metrics for a text span.
// This is the "summary" type for the tree, implementing monoid operations.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Chars is the Unicode scalar value count.
	Chars int

	// Lines is the number of line breaks (LF, CR or CRLF).
	Lines int

	// Flags indicate text properties for fast paths.
	Flags TextFlags
}

// TextFlags indicate text properties for optimization fast paths.
type TextFlags uint8

const (
	// FlagASCII indicates all characters are ASCII (< 128).
	FlagASCII TextFlags = 1 << iota

	// FlagHasBreaks indicates the text contains line breaks.
	FlagHasBreaks

	// FlagHasTabs indicates the text contains tab characters.
	FlagHasTabs

	// FlagLeadingLF indicates the first byte is '\n'.
	FlagLeadingLF

	// FlagTrailingCR indicates the last byte is '\r'.
	FlagTrailingCR
)

// Add combines two summaries (monoid operation).
// This is called when concatenating rope sections.
func (s TextSummary) Add(other TextSummary) TextSummary {
	if s.Bytes == 0 {
		return other
	}
	if other.Bytes == 0 {
		return s
	}

	result := TextSummary{
		Bytes: s.Bytes + other.Bytes,
		Chars: s.Chars + other.Chars,
		Lines: s.Lines + other.Lines,
		Flags: (s.Flags & other.Flags) & FlagASCII,
	}

	result.Flags |= (s.Flags | other.Flags) & (FlagHasBreaks | FlagHasTabs)
	result.Flags |= s.Flags & FlagLeadingLF
	result.Flags |= other.Flags & FlagTrailingCR

	return result
}

// IsZero returns true if this is the zero/identity summary.
func (s TextSummary) IsZero() bool {
	return s.Bytes == 0
}

// get returns the value of a single metric.
func (s TextSummary) get(m metric) int {
	switch m {
	case metricChars:
		return s.Chars
	case metricLines:
		return s.Lines
	default:
		return s.Bytes
	}
}

// metric selects which summary field a tree descent is keyed on.
type metric uint8

const (
	metricBytes metric = iota
	metricChars
	metricLines
)

// ComputeSummary calculates metrics for a string.
func ComputeSummary(s string) TextSummary {
	if len(s) == 0 {
		return TextSummary{Flags: FlagASCII}
	}

	sum := TextSummary{
		Bytes: len(s),
		Chars: utf8.RuneCountInString(s),
		Flags: FlagASCII,
	}
	if sum.Chars != sum.Bytes {
		sum.Flags &^= FlagASCII
	}

	sum.Lines = breaksBefore(s, len(s))
	if sum.Lines > 0 {
		sum.Flags |= FlagHasBreaks
	}
	for i := 0; i < len(s); i++ {
		if s[i] == '\t' {
			sum.Flags |= FlagHasTabs
			break
		}
	}
	if s[0] == '\n' {
		sum.Flags |= FlagLeadingLF
	}
	if s[len(s)-1] == '\r' {
		sum.Flags |= FlagTrailingCR
	}

	return sum
}

// breaksBefore counts the line breaks that end at or before byte upTo.
// A CRLF pair counts once, when its LF is reached. A CR at the very end of s
// is counted as a lone CR.
func breaksBefore(s string, upTo int) int {
	if upTo > len(s) {
		upTo = len(s)
	}
	n := 0
	for i := 0; i < upTo; i++ {
		switch s[i] {
		case '\n':
			n++
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				continue
			}
			n++
		}
	}
	return n
}

// nthBreakEnd returns the byte offset just past the nth (1-indexed) line
// break in s, or -1 if s holds fewer than n breaks.
func nthBreakEnd(s string, n int) int {
	if n <= 0 {
		return 0
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			n--
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				continue
			}
			n--
		default:
			continue
		}
		if n == 0 {
			return i + 1
		}
	}
	return -1
}

// byteIndexOfChar returns the byte offset of the nth scalar in s.
// Returns len(s) if n is past the end.
func byteIndexOfChar(s string, n int) int {
	if n <= 0 {
		return 0
	}
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}

// CountLines returns the number of line breaks in a string.
func CountLines(s string) int {
	return breaksBefore(s, len(s))
}

// TrailingBreakLen returns the byte (and char) length of the line break that
// terminates s: 2 for CRLF, 1 for LF or CR, 0 otherwise.
func TrailingBreakLen(s string) int {
	n := len(s)
	switch {
	case n >= 2 && s[n-2] == '\r' && s[n-1] == '\n':
		return 2
	case n >= 1 && (s[n-1] == '\n' || s[n-1] == '\r'):
		return 1
	default:
		return 0
	}
}
