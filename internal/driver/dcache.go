package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"flint/internal/checker"
	"flint/internal/diag"
	"flint/internal/processor"
	"flint/internal/project"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты проверки файлов по ключу
// (хеш содержимого + хеш настроек) на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached outcome of checking one file.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Skipped      bool
	LogicalLines int
	Tokens       int
	Diagnostics  []CachedDiagnostic
}

// CachedDiagnostic: диагностика без имени файла: оно подставляется при чтении.
type CachedDiagnostic struct {
	Severity     uint8
	Code         string
	Message      string
	Line         int
	Column       int
	PhysicalLine string
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
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens (creating if needed) a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// два символа ключа - подкаталог, чтобы не держать всё в одном каталоге
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
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
		// после Rename файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
// An entry written with another schema is reported as a miss.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
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
	defer func() { _ = f.Close() }()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "files"))
}

func payloadFromResult(res checker.FileResult) *DiskPayload {
	p := &DiskPayload{
		Skipped:      res.Skipped,
		LogicalLines: res.Statistics.LogicalLines,
		Tokens:       res.Statistics.Tokens,
		Diagnostics:  make([]CachedDiagnostic, len(res.Diagnostics)),
	}
	for i, d := range res.Diagnostics {
		p.Diagnostics[i] = CachedDiagnostic{
			Severity:     uint8(d.Severity),
			Code:         string(d.Code),
			Message:      d.Message,
			Line:         d.Line,
			Column:       d.Column,
			PhysicalLine: d.PhysicalLine,
		}
	}
	return p
}

func (p *DiskPayload) result(filename string) checker.FileResult {
	res := checker.FileResult{
		Filename:   filename,
		Skipped:    p.Skipped,
		Statistics: processor.Statistics{LogicalLines: p.LogicalLines, Tokens: p.Tokens},
	}
	for _, d := range p.Diagnostics {
		res.Diagnostics = append(res.Diagnostics, diag.Diagnostic{
			Severity:     diag.Severity(d.Severity),
			Code:         diag.Code(d.Code),
			Message:      d.Message,
			Filename:     filename,
			Line:         d.Line,
			Column:       d.Column,
			PhysicalLine: d.PhysicalLine,
		})
	}
	return res
}
