package record

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/vvka-141/kvload/pkg/kvload"
)

// KeyExtractor derives the store key for a record.
type KeyExtractor interface {
	Key(r Record) (string, error)
}

// NewKeyExtractor builds the extractor for a key mode.
func NewKeyExtractor(mode kvload.KeyMode, field string) (KeyExtractor, error) {
	switch mode {
	case kvload.KeyModeField, "":
		if field == "" {
			field = kvload.DefaultKeyField
		}
		return FieldKey{Field: field}, nil
	case kvload.KeyModeEntry:
		return EntryKey{}, nil
	default:
		return nil, fmt.Errorf("key mode %q: %w", mode, kvload.ErrInvalidConfig)
	}
}

// FieldKey keys a record by the value of one of its fields.
type FieldKey struct {
	Field string
}

// Key returns the field value as a string key.
func (k FieldKey) Key(r Record) (string, error) {
	v, ok := r.Get(k.Field)
	if !ok {
		return "", fmt.Errorf("field %q not present: %w", k.Field, kvload.ErrMissingKey)
	}
	key, err := keyString(v)
	if err != nil {
		return "", fmt.Errorf("field %q: %w", k.Field, err)
	}
	return key, nil
}

// EntryKey keys a record by the name of its single top-level entry.
type EntryKey struct{}

// Key returns the name of the record's only entry.
func (EntryKey) Key(r Record) (string, error) {
	if len(r) != 1 {
		if len(r) == 0 {
			return "", fmt.Errorf("record has no entries: %w", kvload.ErrMissingKey)
		}
		return "", fmt.Errorf("record has %d entries, want exactly 1: %w", len(r), kvload.ErrInvalidKey)
	}
	for name := range r {
		if name == "" {
			return "", fmt.Errorf("entry name is empty: %w", kvload.ErrInvalidKey)
		}
		return name, nil
	}
	return "", nil
}

// keyString accepts the scalar types both decoders produce for a key.
func keyString(v interface{}) (string, error) {
	var key string
	switch t := v.(type) {
	case string:
		key = t
	case []byte:
		key = string(t)
	case int64:
		key = strconv.FormatInt(t, 10)
	case uint64:
		key = strconv.FormatUint(t, 10)
	case int:
		key = strconv.Itoa(t)
	case int32:
		key = strconv.FormatInt(int64(t), 10)
	case uint32:
		key = strconv.FormatUint(uint64(t), 10)
	case json.Number:
		if _, err := t.Int64(); err != nil {
			return "", fmt.Errorf("number %s is not an integer: %w", t, kvload.ErrInvalidKey)
		}
		key = t.String()
	case nil:
		return "", fmt.Errorf("value is nil: %w", kvload.ErrInvalidKey)
	default:
		return "", fmt.Errorf("value of type %T cannot be a key: %w", v, kvload.ErrInvalidKey)
	}
	if key == "" {
		return "", fmt.Errorf("value is empty: %w", kvload.ErrInvalidKey)
	}
	return key, nil
}
