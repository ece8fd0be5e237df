// Package grapheme locates grapheme-cluster and word boundaries in a rope.
//
// All indices are char (Unicode scalar) indices into the rope. Cluster
// segmentation follows UAX #29 via uniseg and reads the rope one chunk at a
// time, pulling in neighbouring chunks only when a cluster runs up against
// the edge of the text seen so far.
package grapheme

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/inkwell/internal/engine/rope"
)

// NextBoundary returns the char index of the first grapheme boundary after
// charIdx. NextBoundary(r, r.LenChars()) is r.LenChars().
func NextBoundary(r rope.Rope, charIdx int) int {
	total := r.LenChars()
	if charIdx >= total {
		return total
	}
	charIdx = max(charIdx, 0)

	b := r.CharToByte(charIdx)
	chunk, start, _, _ := r.ChunkAtByte(b)
	window := chunk[b-start:]
	end := start + len(chunk)

	for {
		cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(window, -1)
		if rest != "" || end >= r.LenBytes() {
			return charIdx + utf8.RuneCountInString(cluster)
		}
		next, nextStart, _, _ := r.ChunkAtByte(end)
		if nextStart != end || next == "" {
			return charIdx + utf8.RuneCountInString(cluster)
		}
		window += next
		end += len(next)
	}
}

// PrevBoundary returns the char index of the last grapheme boundary before
// charIdx. PrevBoundary(r, 0) is 0.
func PrevBoundary(r rope.Rope, charIdx int) int {
	if charIdx <= 0 {
		return 0
	}
	charIdx = min(charIdx, r.LenChars())

	b := r.CharToByte(charIdx)
	// A line start is always a cluster boundary, so segmentation never needs
	// to look further back than the start of the line holding b-1.
	floor := r.LineToByte(r.ByteToLine(b - 1))

	chunk, start, _, _ := r.ChunkAtByte(b - 1)
	window := chunk[:b-start]
	for {
		if start <= floor {
			window = window[floor-start:]
			start = floor
			last, _ := lastBoundary(window)
			return charIdx - utf8.RuneCountInString(window[last:])
		}

		// Segmentation starting mid-cluster may report a spurious first
		// boundary; later boundaries are reliable.
		last, count := lastBoundary(window)
		if count >= 2 {
			return charIdx - utf8.RuneCountInString(window[last:])
		}

		prev, prevStart, _, _ := r.ChunkAtByte(start - 1)
		window = prev[:start-prevStart] + window
		start = prevStart
	}
}

// lastBoundary segments s and returns the byte offset of the last cluster
// boundary strictly before len(s), plus how many boundaries in (0, len(s))
// it passed, counting the returned one.
func lastBoundary(s string) (offset, count int) {
	state := -1
	pos := 0
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		if len(s) == 0 {
			break
		}
		pos += len(cluster)
		offset = pos
		count++
	}
	return offset, count
}

// IsBoundary reports whether charIdx falls on a grapheme boundary.
func IsBoundary(r rope.Rope, charIdx int) bool {
	if charIdx <= 0 || charIdx >= r.LenChars() {
		return true
	}
	return NextBoundary(r, PrevBoundary(r, charIdx)) == charIdx
}

// Count returns the number of grapheme clusters in s.
func Count(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Width returns the monospace display width of s.
func Width(s string) int {
	return uniseg.StringWidth(s)
}
