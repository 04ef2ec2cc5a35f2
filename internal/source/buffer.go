package source

import "errors"

// ErrNilBuffer is returned when a range is requested over a nil Buffer.
var ErrNilBuffer = errors.New("source: nil buffer")

// Buffer is an immutable piece of source text shared by every TextRange
// derived from it. Buffers are compared by pointer identity.
type Buffer struct {
	name string
	text string
}

// NewBuffer wraps text into a Buffer. The name is informational only
// (a path, "<stdin>", a test name).
func NewBuffer(name, text string) *Buffer {
	return &Buffer{name: name, text: text}
}

// Name returns the buffer's informational name.
func (b *Buffer) Name() string {
	if b == nil {
		return ""
	}
	return b.name
}

// Text returns the whole buffer content.
func (b *Buffer) Text() string {
	if b == nil {
		return ""
	}
	return b.text
}

// Len returns the buffer length in bytes.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.text)
}

// Range returns a TextRange covering the whole buffer.
func (b *Buffer) Range() TextRange {
	return TextRange{buf: b, pos: 0, end: b.Len()}
}
