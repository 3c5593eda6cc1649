package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// FileSystemProvider opens and inspects regular files.
type FileSystemProvider interface {
	// Open returns a reader positioned at the start of the file.
	// The caller must Close it.
	Open(path string) (io.ReadCloser, error)

	// ReadFile reads the whole file at the given path
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)
}
