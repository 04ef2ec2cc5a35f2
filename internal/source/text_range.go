package source

import "fmt"

// RangeError reports a range that violates 0 <= Pos <= End <= Len.
type RangeError struct {
	Pos int
	End int
	Len int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("source: invalid range [%d, %d) for buffer of length %d", e.Pos, e.End, e.Len)
}

// TextRange is a half-open byte range [Pos, End) over a Buffer.
// It owns nothing: String returns a substring that shares memory with the
// buffer, so every excerpt keeps exact source coordinates.
// Two ranges are equal (==) iff they reference the same Buffer and offsets.
type TextRange struct {
	buf *Buffer
	pos int
	end int
}

// NewRange validates the offsets and returns the range.
func NewRange(buf *Buffer, pos, end int) (TextRange, error) {
	if buf == nil {
		return TextRange{}, ErrNilBuffer
	}
	if pos < 0 || pos > end || end > len(buf.text) {
		return TextRange{}, &RangeError{Pos: pos, End: end, Len: len(buf.text)}
	}
	return TextRange{buf: buf, pos: pos, end: end}, nil
}

// MustRange is NewRange that panics on invalid input. Intended for tests and
// for offsets already validated by the caller.
func MustRange(buf *Buffer, pos, end int) TextRange {
	r, err := NewRange(buf, pos, end)
	if err != nil {
		panic(err)
	}
	return r
}

// FromString creates a fresh buffer and returns a range over all of it.
func FromString(name, text string) TextRange {
	return NewBuffer(name, text).Range()
}

// Buffer returns the underlying buffer (nil for the zero range).
func (r TextRange) Buffer() *Buffer { return r.buf }

// Pos returns the inclusive start offset.
func (r TextRange) Pos() int { return r.pos }

// End returns the exclusive end offset.
func (r TextRange) End() int { return r.end }

// Len returns End - Pos.
func (r TextRange) Len() int { return r.end - r.pos }

// IsEmpty reports whether the range covers no bytes.
func (r TextRange) IsEmpty() bool { return r.pos == r.end }

// IsZero reports whether r is the zero TextRange (no buffer).
func (r TextRange) IsZero() bool { return r.buf == nil }

// String returns the covered text without copying.
func (r TextRange) String() string {
	if r.buf == nil {
		return ""
	}
	return r.buf.text[r.pos:r.end]
}

// At returns the byte at absolute offset off, or 0 outside the range.
func (r TextRange) At(off int) byte {
	if r.buf == nil || off < r.pos || off >= r.end {
		return 0
	}
	return r.buf.text[off]
}

// Slice returns the sub-range [pos, end) given in absolute buffer offsets.
// Offsets are clamped to r.
func (r TextRange) Slice(pos, end int) TextRange {
	pos = min(max(pos, r.pos), r.end)
	end = min(max(end, pos), r.end)
	return TextRange{buf: r.buf, pos: pos, end: end}
}

// Sub returns the sub-range [from, to) given relative to r.Pos().
func (r TextRange) Sub(from, to int) TextRange {
	return r.Slice(r.pos+from, r.pos+to)
}

// Collapse returns the empty range at r.Pos().
func (r TextRange) Collapse() TextRange {
	return TextRange{buf: r.buf, pos: r.pos, end: r.pos}
}

// Cover returns the smallest range containing r and other. Ranges over
// different buffers are not merged.
func (r TextRange) Cover(other TextRange) TextRange {
	if r.buf == nil {
		return other
	}
	if other.buf != r.buf {
		return r
	}
	if other.pos < r.pos {
		r.pos = other.pos
	}
	if other.end > r.end {
		r.end = other.end
	}
	return r
}

// Contains reports whether other lies within r (same buffer).
func (r TextRange) Contains(other TextRange) bool {
	return r.buf != nil && r.buf == other.buf && other.pos >= r.pos && other.end <= r.end
}

// Debug renders the range as "name:pos-end".
func (r TextRange) Debug() string {
	return fmt.Sprintf("%s:%d-%d", r.buf.Name(), r.pos, r.end)
}
