package rope

import (
	"io"
	"unicode/utf8"
)

// readBufSize is the read size used by ReadFrom.
const readBufSize = 64 << 10

// Builder accumulates text and turns it into a rope in one pass.
//
// Input may arrive in arbitrary pieces. A piece ending inside a UTF-8
// sequence or between the CR and LF of a pair is held back, so no chunk
// of the built rope splits either. The zero value is ready to use.
type Builder struct {
	chunks  []Chunk
	pending []byte
	n       int
}

// WriteString appends s.
func (b *Builder) WriteString(s string) {
	if s == "" {
		return
	}
	b.n += len(s)
	b.pending = append(b.pending, s...)
	if len(b.pending) >= 2*MaxChunkSize {
		b.flush(false)
	}
}

// Write implements io.Writer. It never fails.
func (b *Builder) Write(p []byte) (int, error) {
	b.WriteString(string(p))
	return len(p), nil
}

// WriteByte implements io.ByteWriter. It never fails.
func (b *Builder) WriteByte(c byte) error {
	b.n++
	b.pending = append(b.pending, c)
	if len(b.pending) >= 2*MaxChunkSize {
		b.flush(false)
	}
	return nil
}

// ReadFrom implements io.ReaderFrom.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, readBufSize)
	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.WriteString(string(buf[:n]))
			total += int64(n)
		}
		switch {
		case err == io.EOF:
			return total, nil
		case err != nil:
			return total, err
		}
	}
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int {
	return b.n
}

// Build returns the rope of everything written and empties the builder.
func (b *Builder) Build() Rope {
	b.flush(true)
	chunks := b.chunks
	*b = Builder{}
	return buildFromChunks(chunks)
}

// flush moves pending text into chunks. Unless final is set, the bytes
// that might join with the next write stay pending.
func (b *Builder) flush(final bool) {
	keep := 0
	if !final {
		keep = heldBack(b.pending)
	}
	ready := len(b.pending) - keep
	if ready == 0 {
		return
	}
	b.chunks = append(b.chunks, splitIntoChunks(string(b.pending[:ready]))...)
	b.pending = append(b.pending[:0], b.pending[ready:]...)
}

// heldBack returns the length of the suffix of p that is an incomplete
// scalar or a lone trailing CR.
func heldBack(p []byte) int {
	for i := len(p) - 1; i >= 0 && i >= len(p)-utf8.UTFMax; i-- {
		if utf8.RuneStart(p[i]) {
			if !utf8.FullRune(p[i:]) {
				return len(p) - i
			}
			break
		}
	}
	if len(p) > 0 && p[len(p)-1] == '\r' {
		return 1
	}
	return 0
}

// FromLines joins lines with LF.
func FromLines(lines []string) Rope {
	var b Builder
	for i, line := range lines {
		if i > 0 {
			_ = b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return b.Build()
}

// Join concatenates ropes with sep between each pair.
func Join(ropes []Rope, sep string) Rope {
	if len(ropes) == 0 {
		return New()
	}
	sepRope := FromString(sep)
	out := ropes[0]
	for _, r := range ropes[1:] {
		if sep != "" {
			out = out.Concat(sepRope)
		}
		out = out.Concat(r)
	}
	return out
}
