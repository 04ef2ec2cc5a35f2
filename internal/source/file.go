package source

import (
	"os"
	"path/filepath"
	"slices"

	"fortio.org/safecast"
)

// FileID identifies a file within its FileSet. IDs are dense and start at 0.
type FileID uint32

// FileFlags record how a file's content was obtained.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // из памяти: тест, stdin, сгенерированный текст
	FileHadBOM                               // UTF-8 BOM был снят
	FileNormalizedCRLF                       // CRLF заменены на LF
)

// File is one input registered in a FileSet. Every TextRange produced from
// this file points into Buf.
type File struct {
	ID    FileID
	Path  string
	Buf   *Buffer
	Hash  [32]byte
	Flags FileFlags
	// LineStarts holds the byte offset of each line; LineStarts[0] is 0.
	LineStarts []int
}

// LineCol is a 1-based line and byte column.
type LineCol struct {
	Line uint32
	Col  uint32
}

func lineStarts(text string) []int {
	starts := make([]int, 1, len(text)/32+1)
	for i := range len(text) {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// position maps a byte offset to its line and column. A newline belongs to
// the line it ends.
func (f *File) position(off int) (LineCol, bool) {
	if off < 0 || off > f.Buf.Len() {
		return LineCol{}, false
	}
	// индекс последней строки, начинающейся не позже off
	i, found := slices.BinarySearch(f.LineStarts, off)
	if !found {
		i--
	}
	line, err := safecast.Conv[uint32](i + 1)
	if err != nil {
		return LineCol{}, false
	}
	col, err := safecast.Conv[uint32](off - f.LineStarts[i] + 1)
	if err != nil {
		return LineCol{}, false
	}
	return LineCol{Line: line, Col: col}, true
}

// Line returns the text of the 1-based line n without its newline, or ""
// when there is no such line.
func (f *File) Line(n uint32) string {
	if n == 0 || int(n) > len(f.LineStarts) {
		return ""
	}
	text := f.Buf.Text()
	start := f.LineStarts[n-1]
	end := len(text)
	if int(n) < len(f.LineStarts) {
		end = f.LineStarts[n] - 1
	}
	return text[start:end]
}

// FormatPath renders the file path for output. mode is "absolute",
// "relative" (to baseDir, or the working directory when empty), "basename"
// or "auto"; anything else leaves the path as stored.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		// длинные абсолютные пути сокращаем до имени файла
		if filepath.IsAbs(f.Path) && len(f.Path) >= 40 {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}
