package kvload_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vvka-141/kvload/pkg/kvload"
)

func TestExitCodeForError_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown flag", errors.New("unknown flag: --foo"), kvload.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x' in -x"), kvload.ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 0"), kvload.ExitUsageError},
		{"invalid argument", errors.New("invalid argument \"abc\" for \"--port\""), kvload.ExitUsageError},
		{"general error", errors.New("something went wrong"), kvload.ExitGeneralError},
		{"nil error", nil, kvload.ExitSuccess},
		{"connection refused text", errors.New("dial tcp 127.0.0.1:6379: connection refused"), kvload.ExitConnectionError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := kvload.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeForError_Sentinels(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{kvload.ErrInvalidConfig, kvload.ExitConfigError},
		{kvload.ErrUnsupportedStore, kvload.ExitConfigError},
		{kvload.ErrUnsupportedFormat, kvload.ExitConfigError},
		{kvload.ErrConnectionFailed, kvload.ExitConnectionError},
		{kvload.ErrInputUnreadable, kvload.ExitInputError},
		{kvload.ErrMalformedInput, kvload.ExitDecodeError},
		{kvload.ErrMissingKey, kvload.ExitKeyError},
		{kvload.ErrInvalidKey, kvload.ExitKeyError},
		{kvload.ErrStoreWrite, kvload.ExitStoreError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			wrapped := fmt.Errorf("load failed: %w", &kvload.RecordError{Index: 3, Err: tt.err})
			if got := kvload.ExitCodeForError(wrapped); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", wrapped, got, tt.want)
			}
		})
	}
}

func TestRecordError(t *testing.T) {
	err := &kvload.RecordError{Index: 2, Err: kvload.ErrMissingKey}
	if got, want := err.Error(), "record 2: missing key"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	keyed := &kvload.RecordError{Index: 0, Key: "a", Err: kvload.ErrStoreWrite}
	if got, want := keyed.Error(), `record 0 (key "a"): store write failed`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	var recErr *kvload.RecordError
	if !errors.As(fmt.Errorf("outer: %w", keyed), &recErr) || recErr.Key != "a" {
		t.Errorf("errors.As did not find RecordError in chain")
	}
}
