package kvload

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := loader.Load(ctx, config)
//	if errors.Is(err, kvload.ErrMissingKey) {
//	    // A record had no key field
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInputUnreadable indicates the input file could not be opened or read.
	ErrInputUnreadable = errors.New("input unreadable")

	// ErrMalformedInput indicates the input stream is not a valid sequence of records.
	ErrMalformedInput = errors.New("malformed input")

	// ErrMissingKey indicates a record lacks the field used as its key.
	ErrMissingKey = errors.New("missing key")

	// ErrInvalidKey indicates a record's key field cannot be used as a store key.
	ErrInvalidKey = errors.New("invalid key")

	// ErrConnectionFailed indicates the store could not be reached.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrStoreWrite indicates the store rejected a write.
	ErrStoreWrite = errors.New("store write failed")

	// ErrUnsupportedStore indicates the store URL names a backend kvload cannot talk to.
	ErrUnsupportedStore = errors.New("unsupported store")

	// ErrUnsupportedFormat indicates an unknown input format was requested.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// RecordError reports a failure tied to one record of the input stream.
// Index is the zero-based position of the record in the file.
// Key is empty when the failure happened before a key was extracted.
type RecordError struct {
	Index int
	Key   string
	Err   error
}

func (e *RecordError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("record %d (key %q): %v", e.Index, e.Key, e.Err)
	}
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// usageErrorPatterns are the message prefixes cobra uses for command line misuse.
var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"flag needs an argument",
	"if any flags in the group",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig),
		errors.Is(err, ErrUnsupportedStore),
		errors.Is(err, ErrUnsupportedFormat):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrInputUnreadable):
		return ExitInputError
	case errors.Is(err, ErrMalformedInput):
		return ExitDecodeError
	case errors.Is(err, ErrMissingKey), errors.Is(err, ErrInvalidKey):
		return ExitKeyError
	case errors.Is(err, ErrStoreWrite):
		return ExitStoreError
	}

	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.HasPrefix(errStr, pattern) {
			return ExitUsageError
		}
	}

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
