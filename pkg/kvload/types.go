package kvload

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Format names the serialization used by the input file and by stored values.
type Format string

const (
	// FormatMsgPack is a concatenation of MessagePack maps.
	FormatMsgPack Format = "msgpack"

	// FormatJSONLines is one JSON object per line.
	FormatJSONLines Format = "jsonl"
)

// ParseFormat converts a user supplied format name. Empty means FormatMsgPack.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "msgpack", "messagepack", "MessagePack":
		return FormatMsgPack, nil
	case "jsonl", "jsonlines", "JSONLines", "ndjson":
		return FormatJSONLines, nil
	default:
		return "", fmt.Errorf("%q (want msgpack or jsonl): %w", s, ErrUnsupportedFormat)
	}
}

// KeyMode selects how the store key is derived from a record.
type KeyMode string

const (
	// KeyModeField uses the value of a named field (KeyField).
	KeyModeField KeyMode = "field"

	// KeyModeEntry uses the name of the record's only top-level entry,
	// for records shaped like {"Q42": {...}}.
	KeyModeEntry KeyMode = "entry"
)

// StoreConfig describes how to reach the key-value store.
type StoreConfig struct {
	// URL selects the backend by scheme: redis://, rediss://, unix://, postgres://, postgresql://
	URL string

	// Table is the key/value table for the PostgreSQL backend.
	Table string
}

// LoadConfig contains all parameters needed for a load operation.
type LoadConfig struct {
	// InputPath is the file holding the serialized records
	InputPath string

	// Format of the input file and of the values written to the store
	Format Format

	// KeyMode selects field or entry keys
	KeyMode KeyMode

	// KeyField is the record field used as key when KeyMode is KeyModeField
	KeyField string

	// Store is the target key-value store
	Store StoreConfig

	// Timeout bounds the whole load; zero means no deadline
	Timeout time.Duration

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the LoadConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *LoadConfig) Validate() error {
	var errs []error

	if c.InputPath == "" {
		errs = append(errs, fmt.Errorf("InputPath is required: %w", ErrInvalidConfig))
	}

	if c.Store.URL == "" {
		errs = append(errs, fmt.Errorf("Store.URL is required: %w", ErrInvalidConfig))
	}

	switch c.Format {
	case FormatMsgPack, FormatJSONLines:
	default:
		errs = append(errs, fmt.Errorf("format %q: %w", c.Format, ErrInvalidConfig))
	}

	switch c.KeyMode {
	case KeyModeField:
		if c.KeyField == "" {
			errs = append(errs, fmt.Errorf("KeyField is required in field key mode: %w", ErrInvalidConfig))
		}
	case KeyModeEntry:
	default:
		errs = append(errs, fmt.Errorf("key mode %q (want field or entry): %w", c.KeyMode, ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// Result summarizes a load. On failure it reports progress up to the failing record.
type Result struct {
	RunID    uuid.UUID
	Store    string
	Records  int
	Duration time.Duration
}
