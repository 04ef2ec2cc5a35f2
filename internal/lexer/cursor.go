package lexer

import (
	"tsdoc/internal/source"
)

// Cursor представляет собой позицию внутри одного TextRange.
// Off — абсолютное смещение в буфере, Limit — исключающая верхняя граница.
type Cursor struct {
	Range source.TextRange
	Off   int
	Limit int
}

// NewCursor creates a cursor positioned at the start of r.
func NewCursor(r source.TextRange) Cursor {
	return Cursor{
		Range: r,
		Off:   r.Pos(),
		Limit: r.End(),
	}
}

// EOF проверяет, достигнут ли конец диапазона
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Range.At(c.Off)
}

// Peek2 читает текущий и следующий байт, если есть, иначе возвращает 0, 0, false
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.Limit {
		return 0, 0, false
	}
	return c.Range.At(c.Off), c.Range.At(c.Off + 1), true
}

// Peek3 читает текущий, следующий и следующий за ним байт, если есть, иначе возвращает 0, 0, 0, false
func (c *Cursor) Peek3() (b0, b1, b2 byte, ok bool) {
	if c.Off+2 >= c.Limit {
		return 0, 0, 0, false
	}
	return c.Range.At(c.Off), c.Range.At(c.Off + 1), c.Range.At(c.Off + 2), true
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Range.At(c.Off)
	c.Off++
	return b
}

// Rest returns the unread part of the range.
func (c *Cursor) Rest() string {
	return c.Range.Slice(c.Off, c.Limit).String()
}

// Mark это метка, что бы быстро получать диапазон читаемого фрагмента
type Mark int

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// RangeFrom получает TextRange для фрагмента, начиная с метки
func (c *Cursor) RangeFrom(m Mark) source.TextRange {
	return c.Range.Slice(int(m), c.Off)
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = int(m)
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Range.At(c.Off) == b {
		c.Off++
		return true
	}
	return false
}

// EatString consumes s if the unread text starts with it.
func (c *Cursor) EatString(s string) bool {
	if c.Off+len(s) > c.Limit {
		return false
	}
	if c.Range.Slice(c.Off, c.Off+len(s)).String() != s {
		return false
	}
	c.Off += len(s)
	return true
}
