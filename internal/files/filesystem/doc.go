// Package filesystem provides the file access kvload needs behind an interface,
// so loads can run against the OS filesystem or an in-memory one in tests.
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
package filesystem
