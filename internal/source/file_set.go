package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet owns the files of one run and maps TextRanges back to line and
// column. The parser never sees it: positions are for whoever prints the
// results.
//
// A FileSet is not safe for concurrent writes. Readers may share it once
// all files are added.
type FileSet struct {
	files   []*File
	latest  map[string]FileID // путь -> последняя версия
	owners  map[*Buffer]FileID
	baseDir string
}

// NewFileSet returns an empty FileSet with relative paths rendered against
// the working directory.
func NewFileSet() *FileSet {
	return NewFileSetWithBase("")
}

// NewFileSetWithBase returns an empty FileSet whose relative paths are
// rendered against baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{
		latest:  make(map[string]FileID),
		owners:  make(map[*Buffer]FileID),
		baseDir: baseDir,
	}
}

func (fs *FileSet) SetBaseDir(dir string) { fs.baseDir = dir }

// BaseDir returns the base directory, or the working directory if none
// was set.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir != "" {
		return fs.baseDir
	}
	wd, _ := os.Getwd()
	return wd
}

// Add registers content under path and returns a fresh FileID. Adding the
// same path twice keeps both versions; GetLatest returns the newer one.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("source: too many files: %w", err))
	}
	id := FileID(n)
	path = normalizePath(path)
	text := string(content)
	file := &File{
		ID:         id,
		Path:       path,
		Buf:        NewBuffer(path, text),
		Hash:       sha256.Sum256(content),
		Flags:      flags,
		LineStarts: lineStarts(text),
	}
	fs.files = append(fs.files, file)
	fs.latest[path] = id
	fs.owners[file.Buf] = id
	return id
}

// AddVirtual registers in-memory content with FileVirtual set.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Load reads path, strips a BOM, turns CRLF into LF and adds the result.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path comes from the command line or a directory walk
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags := normalize(raw)
	return fs.Add(path, content, flags), nil
}

// Get returns the file with the given ID, or nil.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) >= len(fs.files) {
		return nil
	}
	return fs.files[id]
}

func (fs *FileSet) Len() int { return len(fs.files) }

// GetLatest returns the newest FileID added under path.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.latest[normalizePath(path)]
	return id, ok
}

// FileOf returns the file whose buffer r points into.
func (fs *FileSet) FileOf(r TextRange) (*File, bool) {
	id, ok := fs.owners[r.Buffer()]
	if !ok {
		return nil, false
	}
	return fs.files[id], true
}

// Resolve returns the line and column of both ends of r. ok is false for
// ranges over buffers this FileSet does not own.
func (fs *FileSet) Resolve(r TextRange) (start, end LineCol, ok bool) {
	f, found := fs.FileOf(r)
	if !found {
		return LineCol{}, LineCol{}, false
	}
	start, okStart := f.position(r.Pos())
	end, okEnd := f.position(r.End())
	if !okStart || !okEnd {
		return LineCol{}, LineCol{}, false
	}
	return start, end, true
}
