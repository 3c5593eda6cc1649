// Package codec decodes a stream of serialized records and re-encodes single
// records for storage.
//
// Supported formats:
//   - kvload.FormatMsgPack: concatenated MessagePack maps (github.com/tinylib/msgp)
//   - kvload.FormatJSONLines: concatenated JSON objects, normally one per line
//
// Decoders are lazy: Next reads exactly one unit from the underlying reader and
// returns io.EOF once the stream ends cleanly between units. Anything else that
// goes wrong wraps kvload.ErrMalformedInput.
//
// MessagePack map keys may be str or bin; bin keys are read as strings and
// written back as str. Timestamps (extension type -1) are decoded to time.Time
// and written back as the same extension type.
//
// Encoders are deterministic: map keys are written in sorted order at every
// nesting level, so the same record always produces the same bytes.
package codec
