package filesystem

import (
	"bytes"
	"io"
	"io/fs"
	"path"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return false }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// MemoryFileSystem implements FileSystemProvider over a map of paths to contents.
// Safe for concurrent use.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	opens map[string]int
	open  int
}

// NewMemoryFileSystem creates an empty in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{
		files: make(map[string][]byte),
		opens: make(map[string]int),
	}
}

// AddFile stores content under path, replacing any previous content.
func (m *MemoryFileSystem) AddFile(p string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path.Clean(p)] = append([]byte(nil), content...)
}

func (m *MemoryFileSystem) Open(p string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = path.Clean(p)
	content, ok := m.files[p]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	m.opens[p]++
	m.open++
	return &memoryReader{Reader: bytes.NewReader(content), fs: m}, nil
}

func (m *MemoryFileSystem) ReadFile(p string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	content, ok := m.files[path.Clean(p)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), content...), nil
}

func (m *MemoryFileSystem) Stat(p string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	content, ok := m.files[path.Clean(p)]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
	}
	return &memoryFileInfo{name: path.Base(p), size: int64(len(content))}, nil
}

// OpenCount reports how many times path was opened.
func (m *MemoryFileSystem) OpenCount(p string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.opens[path.Clean(p)]
}

// OpenReaders reports readers returned by Open that have not been closed.
func (m *MemoryFileSystem) OpenReaders() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.open
}

type memoryReader struct {
	*bytes.Reader
	fs     *MemoryFileSystem
	closed bool
}

func (r *memoryReader) Close() error {
	if r.closed {
		return fs.ErrClosed
	}
	r.closed = true
	r.fs.mu.Lock()
	r.fs.open--
	r.fs.mu.Unlock()
	return nil
}
