package source

import (
	"errors"
	"testing"
)

func TestNewRangeValidation(t *testing.T) {
	buf := NewBuffer("t", "/** @alpha text */")

	tests := []struct {
		name     string
		buf      *Buffer
		pos, end int
		wantNil  bool
		wantErr  bool
	}{
		{name: "whole", buf: buf, pos: 0, end: buf.Len()},
		{name: "empty at end", buf: buf, pos: buf.Len(), end: buf.Len()},
		{name: "nil buffer", buf: nil, pos: 0, end: 0, wantNil: true},
		{name: "pos after end", buf: buf, pos: 5, end: 4, wantErr: true},
		{name: "negative", buf: buf, pos: -1, end: 4, wantErr: true},
		{name: "past buffer", buf: buf, pos: 0, end: buf.Len() + 1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRange(tt.buf, tt.pos, tt.end)
			switch {
			case tt.wantNil:
				if !errors.Is(err, ErrNilBuffer) {
					t.Fatalf("expected ErrNilBuffer, got %v", err)
				}
			case tt.wantErr:
				var rangeErr *RangeError
				if !errors.As(err, &rangeErr) {
					t.Fatalf("expected *RangeError, got %v", err)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if r.Pos() != tt.pos || r.End() != tt.end {
					t.Fatalf("got [%d,%d), want [%d,%d)", r.Pos(), r.End(), tt.pos, tt.end)
				}
			}
		})
	}
}

func TestTextRangeViews(t *testing.T) {
	buf := NewBuffer("t", "/** @alpha text */")
	whole := buf.Range()

	tag := whole.Sub(4, 10)
	if tag.String() != "@alpha" {
		t.Fatalf("Sub = %q", tag.String())
	}
	if tag.Buffer() != buf || tag.Pos() != 4 || tag.End() != 10 {
		t.Fatalf("unexpected coordinates %s", tag.Debug())
	}
	if buf.Text()[tag.Pos():tag.End()] != tag.String() {
		t.Fatalf("range text is not the buffer slice")
	}

	clamped := tag.Slice(0, 100)
	if clamped != tag {
		t.Fatalf("Slice should clamp to the parent range, got %s", clamped.Debug())
	}
	if !whole.Contains(tag) || tag.Contains(whole) {
		t.Fatalf("Contains is wrong")
	}

	text := whole.Sub(11, 15)
	if got := tag.Cover(text).String(); got != "@alpha text" {
		t.Fatalf("Cover = %q", got)
	}

	if tag.At(4) != '@' || tag.At(3) != 0 {
		t.Fatalf("At is wrong")
	}
	if !tag.Collapse().IsEmpty() {
		t.Fatalf("Collapse should be empty")
	}
}

func TestTextRangeIdentity(t *testing.T) {
	a := NewBuffer("a", "same")
	b := NewBuffer("b", "same")

	if a.Range() == b.Range() {
		t.Fatalf("ranges over different buffers must differ")
	}
	if a.Range() != MustRange(a, 0, 4) {
		t.Fatalf("ranges with same buffer and offsets must be equal")
	}
	if a.Range().Cover(b.Range()) != a.Range() {
		t.Fatalf("Cover must not merge different buffers")
	}

	var zero TextRange
	if !zero.IsZero() || zero.String() != "" {
		t.Fatalf("zero range misbehaves")
	}
}

func TestMustRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	MustRange(NewBuffer("x", "ab"), 1, 0)
}
