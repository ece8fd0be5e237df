package rope

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Rope is an immutable rope data structure for efficient text storage.
// Operations return new Rope values; the original is never modified.
// This enables cheap snapshots and thread-safe concurrent read access.
type Rope struct {
	root *Node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeafNode()}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return buildFromChunks(splitIntoChunks(s))
}

// FromReader creates a rope from an io.Reader.
// The input must be valid UTF-8.
func FromReader(r io.Reader) (Rope, error) {
	var builder Builder
	if _, err := builder.ReadFrom(r); err != nil {
		return Rope{}, err
	}
	return builder.Build(), nil
}

// buildFromChunks builds a rope from a slice of chunks.
func buildFromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}

	var leaves []*Node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		leafChunks := make([]Chunk, end-i)
		copy(leafChunks, chunks[i:end])
		leaves = append(leaves, newLeafNodeWithChunks(leafChunks))
	}

	// Build tree bottom-up
	nodes := leaves
	for len(nodes) > 1 {
		var parents []*Node
		for i := 0; i < len(nodes); i += MaxChildren {
			end := min(i+MaxChildren, len(nodes))
			children := make([]*Node, end-i)
			copy(children, nodes[i:end])
			parents = append(parents, newInternalNode(children))
		}
		nodes = parents
	}

	return Rope{root: nodes[0]}
}

func (r Rope) summary() TextSummary {
	if r.root == nil {
		return TextSummary{Flags: FlagASCII}
	}
	return r.root.summary
}

// Summary returns the aggregated metrics for the entire rope.
func (r Rope) Summary() TextSummary {
	return r.summary()
}

// LenBytes returns the total byte length.
func (r Rope) LenBytes() int {
	return r.summary().Bytes
}

// LenChars returns the number of Unicode scalar values.
func (r Rope) LenChars() int {
	return r.summary().Chars
}

// LenLines returns the number of lines (line breaks + 1).
// An empty rope has one empty line, as does the text after a final break.
func (r Rope) LenLines() int {
	return r.summary().Lines + 1
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.LenBytes() == 0
}

// String returns the full text as a string.
// Use sparingly for large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.LenBytes())
	r.root.appendTo(&sb)
	return sb.String()
}

// seek descends to the chunk holding target, measured in m, and returns it
// together with the summary of all text before it. For byte and char metrics
// the chunk is the one containing the unit at target; for lines it is the
// chunk containing the target-th line break.
func (r Rope) seek(m metric, target int) (Chunk, TextSummary) {
	before := TextSummary{Flags: FlagASCII}
	if r.root == nil {
		return Chunk{}, before
	}

	reaches := func(cum int) bool {
		if m == metricLines {
			return cum >= target
		}
		return cum > target
	}

	node := r.root
	for !node.IsLeaf() {
		last := len(node.children) - 1
		next := node.children[last]
		for i, cs := range node.childSummaries {
			if i == last || reaches(before.get(m)+cs.get(m)) {
				next = node.children[i]
				break
			}
			before = before.Add(cs)
		}
		node = next
	}

	last := len(node.chunks) - 1
	for i, c := range node.chunks {
		if i == last || reaches(before.get(m)+c.summary.get(m)) {
			return c, before
		}
		before = before.Add(c.summary)
	}
	return Chunk{}, before
}

// CharToByte converts a char index to a byte index.
func (r Rope) CharToByte(charIdx int) int {
	if charIdx <= 0 {
		return 0
	}
	if charIdx >= r.LenChars() {
		return r.LenBytes()
	}
	chunk, before := r.seek(metricChars, charIdx)
	return before.Bytes + byteIndexOfChar(chunk.data, charIdx-before.Chars)
}

// ByteToChar converts a byte index to a char index.
func (r Rope) ByteToChar(byteIdx int) int {
	if byteIdx <= 0 {
		return 0
	}
	if byteIdx >= r.LenBytes() {
		return r.LenChars()
	}
	chunk, before := r.seek(metricBytes, byteIdx)
	return before.Chars + utf8.RuneCountInString(chunk.data[:byteIdx-before.Bytes])
}

// CharToLine returns the line containing the given char index.
// A position between the CR and LF of a CRLF pair belongs to the line the
// pair terminates.
func (r Rope) CharToLine(charIdx int) int {
	if charIdx <= 0 {
		return 0
	}
	if charIdx >= r.LenChars() {
		return r.LenLines() - 1
	}
	chunk, before := r.seek(metricChars, charIdx)
	off := byteIndexOfChar(chunk.data, charIdx-before.Chars)
	return before.Lines + breaksBefore(chunk.data, off)
}

// ByteToLine returns the line containing the given byte index.
func (r Rope) ByteToLine(byteIdx int) int {
	if byteIdx <= 0 {
		return 0
	}
	if byteIdx >= r.LenBytes() {
		return r.LenLines() - 1
	}
	chunk, before := r.seek(metricBytes, byteIdx)
	return before.Lines + breaksBefore(chunk.data, byteIdx-before.Bytes)
}

// LineToChar returns the char index of the first character of line.
// Lines at or past LenLines map to LenChars.
func (r Rope) LineToChar(line int) int {
	if line <= 0 {
		return 0
	}
	if line >= r.LenLines() {
		return r.LenChars()
	}
	chunk, before := r.seek(metricLines, line)
	end := nthBreakEnd(chunk.data, line-before.Lines)
	if end < 0 {
		return r.LenChars()
	}
	return before.Chars + utf8.RuneCountInString(chunk.data[:end])
}

// LineToByte returns the byte index of the first byte of line.
func (r Rope) LineToByte(line int) int {
	if line <= 0 {
		return 0
	}
	if line >= r.LenLines() {
		return r.LenBytes()
	}
	chunk, before := r.seek(metricLines, line)
	end := nthBreakEnd(chunk.data, line-before.Lines)
	if end < 0 {
		return r.LenBytes()
	}
	return before.Bytes + end
}

// Line returns line i including its terminating break, as a rope.
func (r Rope) Line(i int) Rope {
	return r.sliceBytes(r.LineToByte(i), r.LineToByte(i+1))
}

// LineString returns the text of line i including its terminating break.
func (r Rope) LineString(i int) string {
	start, end := r.LineToByte(i), r.LineToByte(i+1)
	return r.byteString(start, end)
}

// Slice returns the chars in [start, end) as a rope sharing structure with r.
func (r Rope) Slice(start, end int) Rope {
	return r.sliceBytes(r.CharToByte(start), r.CharToByte(end))
}

// SliceString returns the chars in [start, end) as a string.
func (r Rope) SliceString(start, end int) string {
	return r.byteString(r.CharToByte(start), r.CharToByte(end))
}

func (r Rope) sliceBytes(start, end int) Rope {
	if start >= end {
		return New()
	}
	_, right := r.split(start)
	left, _ := right.split(end - start)
	return left
}

func (r Rope) byteString(start, end int) string {
	if r.root == nil || start >= end {
		return ""
	}
	var sb strings.Builder
	sb.Grow(end - start)
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// CharAt returns the scalar at charIdx, or false if out of range.
func (r Rope) CharAt(charIdx int) (rune, bool) {
	if charIdx < 0 || charIdx >= r.LenChars() {
		return 0, false
	}
	chunk, before := r.seek(metricChars, charIdx)
	off := byteIndexOfChar(chunk.data, charIdx-before.Chars)
	ch, _ := utf8.DecodeRuneInString(chunk.data[off:])
	return ch, true
}

// ChunkAtByte returns the chunk containing byteIdx together with the byte,
// char and line offsets of the chunk start. Indices past the end resolve to
// the last chunk. An empty rope yields an empty chunk at zero.
func (r Rope) ChunkAtByte(byteIdx int) (chunk string, byteStart, charStart, lineStart int) {
	c, before := r.seek(metricBytes, max(byteIdx, 0))
	return c.data, before.Bytes, before.Chars, before.Lines
}

// ChunkAtChar returns the chunk containing charIdx; see ChunkAtByte.
func (r Rope) ChunkAtChar(charIdx int) (chunk string, byteStart, charStart, lineStart int) {
	c, before := r.seek(metricChars, max(charIdx, 0))
	return c.data, before.Bytes, before.Chars, before.Lines
}

// Insert inserts text at the given char index.
// Returns a new rope; original is unchanged.
func (r Rope) Insert(charIdx int, text string) Rope {
	if len(text) == 0 {
		return r
	}
	if r.IsEmpty() {
		return FromString(text)
	}

	offset := r.CharToByte(charIdx)
	left, right := r.split(offset)
	return left.Concat(FromString(text)).Concat(right).rebalance()
}

// Remove removes the chars in [start, end).
// Returns a new rope; original is unchanged.
func (r Rope) Remove(start, end int) Rope {
	if start >= end || r.IsEmpty() {
		return r
	}
	bs, be := r.CharToByte(start), r.CharToByte(end)
	if bs >= be {
		return r
	}
	if bs == 0 && be >= r.LenBytes() {
		return New()
	}

	left, _ := r.split(bs)
	_, right := r.split(be)
	return left.Concat(right).rebalance()
}

// rebalance rechunks and rebuilds the tree when repeated edits have left it much taller
// than its size warrants.
func (r Rope) rebalance() Rope {
	if r.root == nil || int(r.root.height) <= maxHeight(r.LenBytes()) {
		return r
	}
	return FromString(r.String())
}

// maxHeight is the tallest tree tolerated for a text of n bytes: twice the
// height of a tree packed with minimum-size chunks, plus slack.
func maxHeight(n int) int {
	h := 0
	for leaves := n / (MinChunkSize * MaxChunksPerLeaf); leaves > 1; leaves /= MaxChildren {
		h++
	}
	return 2*h + 4
}

// split splits the rope at a byte offset. Left holds [0, offset), right
// holds [offset, end).
func (r Rope) split(offset int) (Rope, Rope) {
	if r.root == nil || offset <= 0 {
		return New(), r
	}
	if offset >= r.LenBytes() {
		return r, New()
	}
	leftRoot, rightRoot := r.root.split(offset)
	return Rope{root: leftRoot}, Rope{root: rightRoot}
}

// SplitAt splits the rope at a char index.
func (r Rope) SplitAt(charIdx int) (Rope, Rope) {
	return r.split(r.CharToByte(charIdx))
}

// Concat concatenates two ropes.
// If r ends with CR and other starts with LF the pair is rejoined into a
// single chunk so that no chunk seam ever separates a CRLF.
func (r Rope) Concat(other Rope) Rope {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}

	if r.summary().Flags&FlagTrailingCR != 0 && other.summary().Flags&FlagLeadingLF != 0 {
		left, _ := r.split(r.LenBytes() - 1)
		_, right := other.split(1)
		pair := newLeafNodeWithChunks([]Chunk{NewChunk("\r\n")})
		return Rope{root: concat(concat(left.root, pair), right.root)}
	}

	return Rope{root: concat(r.root, other.root)}
}

// Height returns the height of the rope tree.
// Useful for debugging and testing balance.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}

// ChunkCount returns the total number of chunks in the rope.
func (r Rope) ChunkCount() int {
	if r.root == nil {
		return 0
	}
	return countChunks(r.root)
}

func countChunks(n *Node) int {
	if n.IsLeaf() {
		return len(n.chunks)
	}
	count := 0
	for _, child := range n.children {
		count += countChunks(child)
	}
	return count
}

// Equals returns true if two ropes contain the same text.
// Chunk layouts may differ; only content is compared.
func (r Rope) Equals(other Rope) bool {
	if r.root == other.root {
		return true
	}
	if r.LenBytes() != other.LenBytes() || r.LenChars() != other.LenChars() {
		return false
	}

	a, b := r.Chunks(), other.Chunks()
	var as, bs string
	for {
		if len(as) == 0 {
			if !a.Next() {
				break
			}
			as = a.Chunk().String()
		}
		if len(bs) == 0 {
			if !b.Next() {
				return false
			}
			bs = b.Chunk().String()
		}
		n := min(len(as), len(bs))
		if as[:n] != bs[:n] {
			return false
		}
		as, bs = as[n:], bs[n:]
	}
	return len(bs) == 0 && !b.Next()
}
