package rope

import "unicode/utf8"

// Cursor walks the scalars of a rope in either direction. It caches the
// chunk under the current position so that local movement is O(1) and only
// crossing a chunk seam costs a tree descent.
type Cursor struct {
	rope Rope

	chunk     string
	chunkByte int // byte offset of chunk start
	chunkChar int // char offset of chunk start

	byteIdx int
	charIdx int
}

// CursorAt creates a cursor positioned before the scalar at charIdx.
func (r Rope) CursorAt(charIdx int) *Cursor {
	charIdx = min(max(charIdx, 0), r.LenChars())
	c := &Cursor{rope: r, charIdx: charIdx, byteIdx: r.CharToByte(charIdx)}
	c.load(c.byteIdx)
	return c
}

func (c *Cursor) load(byteIdx int) {
	c.chunk, c.chunkByte, c.chunkChar, _ = c.rope.ChunkAtByte(byteIdx)
}

// CharIndex returns the current char index.
func (c *Cursor) CharIndex() int {
	return c.charIdx
}

// ByteIndex returns the current byte index.
func (c *Cursor) ByteIndex() int {
	return c.byteIdx
}

// Peek returns the scalar after the cursor without moving.
func (c *Cursor) Peek() (rune, bool) {
	if c.byteIdx >= c.rope.LenBytes() {
		return 0, false
	}
	off := c.byteIdx - c.chunkByte
	if off >= len(c.chunk) || off < 0 {
		c.load(c.byteIdx)
		off = c.byteIdx - c.chunkByte
	}
	r, _ := utf8.DecodeRuneInString(c.chunk[off:])
	return r, true
}

// PeekPrev returns the scalar before the cursor without moving.
func (c *Cursor) PeekPrev() (rune, bool) {
	if c.byteIdx <= 0 {
		return 0, false
	}
	off := c.byteIdx - c.chunkByte
	if off <= 0 || off > len(c.chunk) {
		c.load(c.byteIdx - 1)
		off = c.byteIdx - c.chunkByte
	}
	r, _ := utf8.DecodeLastRuneInString(c.chunk[:off])
	return r, true
}

// Next returns the scalar after the cursor and advances past it.
func (c *Cursor) Next() (rune, bool) {
	if c.byteIdx >= c.rope.LenBytes() {
		return 0, false
	}
	off := c.byteIdx - c.chunkByte
	if off >= len(c.chunk) || off < 0 {
		c.load(c.byteIdx)
		off = c.byteIdx - c.chunkByte
	}
	r, size := utf8.DecodeRuneInString(c.chunk[off:])
	c.byteIdx += size
	c.charIdx++
	return r, true
}

// Prev returns the scalar before the cursor and moves back over it.
func (c *Cursor) Prev() (rune, bool) {
	if c.byteIdx <= 0 {
		return 0, false
	}
	off := c.byteIdx - c.chunkByte
	if off <= 0 || off > len(c.chunk) {
		c.load(c.byteIdx - 1)
		off = c.byteIdx - c.chunkByte
	}
	r, size := utf8.DecodeLastRuneInString(c.chunk[:off])
	c.byteIdx -= size
	c.charIdx--
	return r, true
}
