package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"tsdoc/internal/diag"
	"tsdoc/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// noRange marks a diagnostic or note without a location.
const noRange = ^uint32(0)

// DiskCache хранит диагностики файлов на диске, ключ — CacheKey.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached outcome of parsing one file. Ranges are stored
// as offsets and rebuilt against the file's buffer on load.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path        string
	Comments    int
	Diagnostics []CachedDiagnostic
}

// CachedDiagnostic is the offset form of diag.Diagnostic.
type CachedDiagnostic struct {
	Code     uint16
	Severity uint8
	Message  string
	Pos      uint32
	End      uint32
	Notes    []CachedNote
}

// CachedNote is the offset form of diag.Note.
type CachedNote struct {
	Pos uint32
	End uint32
	Msg string
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir, creating it if needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первому байту, чтобы не держать тысячи файлов в одном месте
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// lookup restores a cached result for file. Any read or decode problem, a
// schema mismatch or an offset outside the buffer counts as a miss.
func (c *DiskCache) lookup(key Digest, file *source.File) (*FileResult, bool) {
	if c == nil {
		return nil, false
	}
	var payload DiskPayload
	ok, err := c.Get(key, &payload)
	if err != nil || !ok || payload.Schema != diskCacheSchemaVersion {
		return nil, false
	}

	log := diag.NewLog(0)
	for _, cd := range payload.Diagnostics {
		primary, ok := rangeFromCache(file.Buf, cd.Pos, cd.End)
		if !ok {
			return nil, false
		}
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  primary,
		}
		for _, n := range cd.Notes {
			r, ok := rangeFromCache(file.Buf, n.Pos, n.End)
			if !ok {
				return nil, false
			}
			d.Notes = append(d.Notes, diag.Note{Range: r, Msg: n.Msg})
		}
		log.Add(d)
	}
	return &FileResult{
		Path:   file.Path,
		FileID: file.ID,
		Log:    log,
		Cached: true,
		Count:  payload.Comments,
	}, true
}

// store writes res to the cache. Failures are ignored: the cache is an
// optimisation, the result is already computed.
func (c *DiskCache) store(key Digest, res *FileResult) {
	if c == nil {
		return
	}
	payload, ok := toDiskPayload(res)
	if !ok {
		return
	}
	_ = c.Put(key, payload)
}

func toDiskPayload(res *FileResult) (*DiskPayload, bool) {
	payload := &DiskPayload{
		Schema:   diskCacheSchemaVersion,
		Path:     res.Path,
		Comments: res.Count,
	}
	for _, d := range res.Log.Items() {
		pos, end, ok := rangeToCache(d.Primary)
		if !ok {
			return nil, false
		}
		cd := CachedDiagnostic{
			Code:     uint16(d.Code),
			Severity: uint8(d.Severity),
			Message:  d.Message,
			Pos:      pos,
			End:      end,
		}
		for _, n := range d.Notes {
			npos, nend, ok := rangeToCache(n.Range)
			if !ok {
				return nil, false
			}
			cd.Notes = append(cd.Notes, CachedNote{Pos: npos, End: nend, Msg: n.Msg})
		}
		payload.Diagnostics = append(payload.Diagnostics, cd)
	}
	return payload, true
}

func rangeToCache(r source.TextRange) (pos, end uint32, ok bool) {
	if r.IsZero() {
		return noRange, noRange, true
	}
	pos, err := safecast.Conv[uint32](r.Pos())
	if err != nil {
		return 0, 0, false
	}
	end, err = safecast.Conv[uint32](r.End())
	if err != nil {
		return 0, 0, false
	}
	return pos, end, true
}

func rangeFromCache(buf *source.Buffer, pos, end uint32) (source.TextRange, bool) {
	if pos == noRange && end == noRange {
		return source.TextRange{}, true
	}
	r, err := source.NewRange(buf, int(pos), int(end))
	if err != nil {
		return source.TextRange{}, false
	}
	return r, true
}
