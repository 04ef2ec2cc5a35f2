package lexer

import (
	"testing"

	"tsdoc/internal/source"
)

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(source.FromString("test.ts", "a\nb"))

	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("Expected peek %q, got %q", want, got)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Expected bump %q, got %q", want, got)
		}
	}

	if !cursor.EOF() {
		t.Error("Expected EOF at end")
	}
	if cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Error("Expected zero bytes at EOF")
	}
}

// TestCursorStaysInsideRange проверяет, что курсор не выходит за пределы поддиапазона
func TestCursorStaysInsideRange(t *testing.T) {
	whole := source.FromString("test.ts", "xx/** ab */yy")
	cursor := NewCursor(whole.Sub(2, 11))

	if cursor.Off != 2 {
		t.Fatalf("expected absolute start offset 2, got %d", cursor.Off)
	}
	if !cursor.EatString("/**") {
		t.Fatalf("expected to eat opener")
	}
	if cursor.EatString("nope") {
		t.Fatalf("EatString must not match different text")
	}
	m := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	cursor.Bump()
	if got := cursor.RangeFrom(m).String(); got != " ab" {
		t.Fatalf("RangeFrom = %q", got)
	}
	if got := cursor.Rest(); got != " */" {
		t.Fatalf("Rest = %q", got)
	}
	cursor.Reset(m)
	if !cursor.Eat(' ') || cursor.Eat('x') {
		t.Fatalf("Eat mismatch")
	}

	for !cursor.EOF() {
		cursor.Bump()
	}
	if cursor.Off != 11 {
		t.Fatalf("cursor ran past the range: %d", cursor.Off)
	}
}

// TestPeek2Peek3 проверяет просмотр вперёд у границы диапазона
func TestPeek2Peek3(t *testing.T) {
	cursor := NewCursor(source.FromString("t", "abc"))

	if b0, b1, ok := cursor.Peek2(); !ok || b0 != 'a' || b1 != 'b' {
		t.Fatalf("Peek2 = %q %q %v", b0, b1, ok)
	}
	if b0, b1, b2, ok := cursor.Peek3(); !ok || b0 != 'a' || b1 != 'b' || b2 != 'c' {
		t.Fatalf("Peek3 = %q %q %q %v", b0, b1, b2, ok)
	}
	cursor.Bump()
	if _, _, _, ok := cursor.Peek3(); ok {
		t.Fatalf("Peek3 must fail with two bytes left")
	}
	cursor.Bump()
	if _, _, ok := cursor.Peek2(); ok {
		t.Fatalf("Peek2 must fail with one byte left")
	}
}
