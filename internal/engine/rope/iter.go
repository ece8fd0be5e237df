package rope

// chunkIterFrame represents a position in the tree traversal for chunk iteration.
type chunkIterFrame struct {
	node     *Node
	childIdx int // Next child index to visit (for internal nodes)
	chunkIdx int // Next chunk index to visit (for leaf nodes)
}

// ChunkIterator iterates over chunks in a rope.
type ChunkIterator struct {
	rope    Rope
	stack   []chunkIterFrame
	started bool
	chunk   Chunk
	next    TextSummary // summary of everything before the following chunk
	start   TextSummary // summary of everything before the current chunk
}

// Chunks returns an iterator over all chunks in the rope.
func (r Rope) Chunks() *ChunkIterator {
	return &ChunkIterator{
		rope:  r,
		stack: make([]chunkIterFrame, 0, 16),
		next:  TextSummary{Flags: FlagASCII},
	}
}

// Next advances to the next chunk.
// Returns true if there is a chunk, false if iteration is complete.
func (it *ChunkIterator) Next() bool {
	if !it.started {
		it.started = true
		if it.rope.root == nil {
			return false
		}
		it.stack = append(it.stack, chunkIterFrame{node: it.rope.root})
	}

	for len(it.stack) > 0 {
		frame := &it.stack[len(it.stack)-1]
		node := frame.node

		if node.IsLeaf() {
			if frame.chunkIdx < len(node.chunks) {
				it.chunk = node.chunks[frame.chunkIdx]
				frame.chunkIdx++
				it.start = it.next
				it.next = it.next.Add(it.chunk.summary)
				return true
			}
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}

		if frame.childIdx < len(node.children) {
			child := node.children[frame.childIdx]
			frame.childIdx++
			it.stack = append(it.stack, chunkIterFrame{node: child})
			continue
		}

		it.stack = it.stack[:len(it.stack)-1]
	}
	return false
}

// Chunk returns the current chunk.
func (it *ChunkIterator) Chunk() Chunk {
	return it.chunk
}

// ByteOffset returns the byte offset of the start of the current chunk.
func (it *ChunkIterator) ByteOffset() int {
	return it.start.Bytes
}

// CharOffset returns the char offset of the start of the current chunk.
func (it *ChunkIterator) CharOffset() int {
	return it.start.Chars
}

// LineIterator iterates over lines in a rope.
type LineIterator struct {
	rope    Rope
	line    int
	text    string
	started bool
}

// Lines returns an iterator over all lines in the rope. Each line's text
// includes its terminating break.
func (r Rope) Lines() *LineIterator {
	return &LineIterator{rope: r}
}

// Next advances to the next line.
func (it *LineIterator) Next() bool {
	if it.started {
		it.line++
	}
	it.started = true
	if it.line >= it.rope.LenLines() {
		return false
	}
	it.text = it.rope.LineString(it.line)
	return true
}

// Text returns the text of the current line.
func (it *LineIterator) Text() string {
	return it.text
}

// Line returns the current line number (0-indexed).
func (it *LineIterator) Line() int {
	return it.line
}
