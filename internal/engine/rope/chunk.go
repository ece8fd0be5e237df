package rope

import (
	"strings"
	"unicode/utf8"
)

// Byte sizes of leaf chunks. Every chunk but the last of a build holds at
// least MinChunkSize bytes and none holds more than MaxChunkSize.
const (
	MinChunkSize    = 128
	MaxChunkSize    = 256
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// newlineWindow is how far from the target a split may move to land after
// a newline.
const newlineWindow = MinChunkSize / 4

// Chunk is an immutable run of text together with its summary.
type Chunk struct {
	data    string
	summary TextSummary
}

// NewChunk wraps s, summarising it once.
func NewChunk(s string) Chunk {
	return Chunk{data: s, summary: ComputeSummary(s)}
}

// String returns the chunk's text.
func (c Chunk) String() string { return c.data }

// Summary returns the chunk's metrics.
func (c Chunk) Summary() TextSummary { return c.summary }

// Len returns the byte length of the chunk.
func (c Chunk) Len() int { return len(c.data) }

// IsEmpty reports whether the chunk holds no text.
func (c Chunk) IsEmpty() bool { return c.data == "" }

// Split cuts the chunk at a byte offset on a UTF-8 boundary. Offsets
// outside the chunk yield an empty half.
func (c Chunk) Split(offset int) (Chunk, Chunk) {
	switch {
	case offset <= 0:
		return Chunk{}, c
	case offset >= len(c.data):
		return c, Chunk{}
	}
	return NewChunk(c.data[:offset]), NewChunk(c.data[offset:])
}

// splitIntoChunks cuts s into chunks no larger than MaxChunkSize.
func splitIntoChunks(s string) []Chunk {
	if s == "" {
		return nil
	}
	chunks := make([]Chunk, 0, len(s)/TargetChunkSize+1)
	for len(s) > MaxChunkSize {
		at := findSplitPoint(s, TargetChunkSize)
		chunks = append(chunks, NewChunk(s[:at]))
		s = s[at:]
	}
	return append(chunks, NewChunk(s))
}

// findSplitPoint returns a byte offset near target at which s may be cut.
// A newline within newlineWindow of target is preferred; otherwise the
// nearest rune start is used. The result never falls inside a CRLF pair.
func findSplitPoint(s string, target int) int {
	if target <= 0 {
		return 0
	}
	if target >= len(s) {
		return len(s)
	}

	hi := min(target+newlineWindow, len(s))
	if i := strings.IndexByte(s[target:hi], '\n'); i >= 0 {
		return target + i + 1
	}
	lo := max(target-newlineWindow, 0)
	if i := strings.LastIndexByte(s[lo:target], '\n'); i >= 0 {
		return lo + i + 1
	}

	pos := target
	for pos < len(s) && pos < target+utf8.UTFMax && !utf8.RuneStart(s[pos]) {
		pos++
	}
	if pos == len(s) || !utf8.RuneStart(s[pos]) {
		pos = target
		for pos > 0 && !utf8.RuneStart(s[pos]) {
			pos--
		}
		if pos == 0 {
			// no rune start at all; invalid bytes split anywhere
			pos = target
		}
	}
	if pos > 0 && pos < len(s) && s[pos-1] == '\r' && s[pos] == '\n' {
		pos++
	}
	return pos
}
